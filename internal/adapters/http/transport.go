// Package http implements the HTTP(S) transport.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/net/http/httpguts"

	"github.com/bft-labs/formship/internal/domain"
	"github.com/bft-labs/formship/internal/multipart"
	"github.com/bft-labs/formship/internal/ports"
)

// DefaultUserAgent is sent when Config.UserAgent is empty.
const DefaultUserAgent = "formship/1.0"

// DefaultCharset encodes text parameters when Config.Charset is empty.
const DefaultCharset = "UTF-8"

// errorBodyLimit caps how much of a failed response is kept in the error.
const errorBodyLimit = 4 << 10

// Config holds per-transport request settings.
type Config struct {
	// UserAgent overrides DefaultUserAgent
	UserAgent string

	// Header holds extra request headers sent with every request. User-Agent,
	// Content-Type and Content-Length are set by the transport and win.
	Header http.Header

	// Charset encodes text parameters, DefaultCharset when empty
	Charset string
}

// Validate checks that every custom header is a legal HTTP field.
func (c Config) Validate() error {
	for k, vv := range c.Header {
		if !httpguts.ValidHeaderFieldName(k) {
			return fmt.Errorf("%w: invalid header name %q", domain.ErrInvalidConfig, k)
		}
		for _, v := range vv {
			if !httpguts.ValidHeaderFieldValue(v) {
				return fmt.Errorf("%w: invalid value for header %q", domain.ErrInvalidConfig, k)
			}
		}
	}
	return nil
}

func (c Config) userAgent() string {
	if c.UserAgent == "" {
		return DefaultUserAgent
	}
	return c.UserAgent
}

func (c Config) charset() string {
	if c.Charset == "" {
		return DefaultCharset
	}
	return c.Charset
}

// Transport implements ports.Transport over HTTP(S). Parameters are sent as a
// multipart/form-data POST whose Content-Length is computed before the body is
// streamed; without parameters a plain GET is made.
type Transport struct {
	url    string
	client ports.HTTPClient
	logger ports.Logger
	cfg    Config
}

// NewTransport creates a transport for url.
func NewTransport(url string, client ports.HTTPClient, logger ports.Logger, cfg Config) *Transport {
	return &Transport{url: url, client: client, logger: logger, cfg: cfg}
}

// Send performs one request and returns the response body.
// Any status outside 2xx is a *domain.TransportError carrying the status line.
func (t *Transport) Send(ctx context.Context, params []domain.Parameter) (io.ReadCloser, error) {
	method := http.MethodGet
	var (
		body          *io.PipeReader
		contentType   string
		contentLength int64
	)
	if len(params) > 0 {
		parts, err := multipart.PartsFor(params, t.cfg.charset())
		if err != nil {
			return nil, t.fail("encode", "", err)
		}
		enc := multipart.NewEncoder()
		contentType = enc.ContentType()
		contentLength = enc.ContentLength(parts)

		pr, pw := io.Pipe()
		go func() {
			pw.CloseWithError(enc.WriteAll(pw, parts))
		}()
		body = pr
		method = http.MethodPost
	}

	var reqBody io.Reader
	if body != nil {
		reqBody = body
	}
	req, err := http.NewRequestWithContext(ctx, method, t.url, reqBody)
	if err != nil {
		if body != nil {
			body.Close()
		}
		return nil, t.fail("request", "", err)
	}
	for k, vv := range t.cfg.Header {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	req.Close = true
	req.Header.Set("User-Agent", t.cfg.userAgent())
	if body != nil {
		req.Header.Set("Content-Type", contentType)
		req.ContentLength = contentLength
	}

	t.logger.Debug("http request",
		ports.String("method", method),
		ports.String("url", t.url),
		ports.Int("parts", len(params)),
		ports.Int64("content_length", contentLength),
	)

	resp, err := t.client.Do(req)
	if err != nil {
		if body != nil {
			body.CloseWithError(err)
		}
		return nil, t.fail("send", "", err)
	}
	if body != nil {
		// closing the response also stops a writer the client left behind
		resp.Body = bodyCloser{resp.Body, body}
	}

	statusLine := resp.Proto + " " + resp.Status
	t.logger.Debug("http response", ports.String("url", t.url), ports.String("status", statusLine))

	if resp.StatusCode/100 != 2 {
		defer resp.Body.Close()
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		var cause error
		if len(respBody) > 0 {
			cause = fmt.Errorf("response: %s", respBody)
		}
		return nil, t.fail("status", statusLine, cause)
	}
	return resp.Body, nil
}

type bodyCloser struct {
	io.ReadCloser
	request *io.PipeReader
}

func (b bodyCloser) Close() error {
	b.request.Close()
	return b.ReadCloser.Close()
}

func (t *Transport) fail(op, status string, err error) error {
	return &domain.TransportError{Op: op, URL: t.url, Status: status, Err: err}
}

var _ ports.Transport = (*Transport)(nil)
