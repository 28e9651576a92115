// Package fs implements the file: transport, which reads a local file instead
// of contacting a remote endpoint.
package fs

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"

	"github.com/bft-labs/formship/internal/domain"
	"github.com/bft-labs/formship/internal/ports"
)

// Transport implements ports.Transport by opening the file addressed by a
// file: URI. Parameters are ignored.
type Transport struct {
	url string
}

// NewTransport creates a file transport for a file: URI.
func NewTransport(url string) *Transport {
	return &Transport{url: url}
}

// Send opens the file and returns it as the response stream.
func (t *Transport) Send(ctx context.Context, _ []domain.Parameter) (io.ReadCloser, error) {
	path, err := Path(t.url)
	if err != nil {
		return nil, &domain.TransportError{Op: "open", URL: t.url, Err: err}
	}
	if err := ctx.Err(); err != nil {
		return nil, &domain.TransportError{Op: "open", URL: t.url, Err: err}
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, &domain.TransportError{Op: "open", URL: t.url, Err: err}
	}
	return f, nil
}

// Path returns the local path of a file: URI. Both file:///abs/path and the
// opaque form file:relative/path are accepted.
func Path(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	p := u.Path
	if p == "" {
		p = u.Opaque
	}
	if p == "" {
		return "", fmt.Errorf("no path in %q", rawURL)
	}
	return filepath.FromSlash(p), nil
}

var _ ports.Transport = (*Transport)(nil)
