// Package stub implements the test: transport, which answers from in-memory
// fixtures so callers can exercise the transport contract offline.
package stub

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/bft-labs/formship/internal/domain"
	"github.com/bft-labs/formship/internal/ports"
)

// Transport implements ports.Transport with a fixed response per logical name.
type Transport struct {
	url      string
	name     string
	fixtures map[string][]byte

	mu       sync.Mutex
	requests [][]domain.Parameter
}

// NewTransport creates a stub answering with fixtures[name].
func NewTransport(url, name string, fixtures map[string][]byte) *Transport {
	return &Transport{url: url, name: name, fixtures: fixtures}
}

// Send records params and returns a fresh reader over the fixture. An unknown
// name fails with a *domain.TransportError wrapping domain.ErrNoFixture.
func (t *Transport) Send(ctx context.Context, params []domain.Parameter) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, &domain.TransportError{Op: "send", URL: t.url, Err: err}
	}
	data, ok := t.fixtures[t.name]
	if !ok {
		return nil, &domain.TransportError{Op: "send", URL: t.url, Err: domain.ErrNoFixture}
	}

	t.mu.Lock()
	t.requests = append(t.requests, append([]domain.Parameter(nil), params...))
	t.mu.Unlock()

	return io.NopCloser(bytes.NewReader(data)), nil
}

// Name returns the logical name the stub answers for.
func (t *Transport) Name() string { return t.name }

// Requests returns the parameter lists received so far, oldest first.
func (t *Transport) Requests() [][]domain.Parameter {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([][]domain.Parameter(nil), t.requests...)
}

var _ ports.Transport = (*Transport)(nil)
