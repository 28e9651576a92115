// Package formship submits named parameters and file attachments to an
// endpoint identified only by a URL. The scheme picks the transport:
// http and https post a multipart/form-data body, telnet writes the same
// body to a raw TCP connection, file reads a local file and test serves an
// in-memory fixture.
//
// Example usage:
//
//	body, err := formship.Send(ctx, formship.Config{}, "https://example.com/upload", "", []formship.Parameter{
//	    formship.Text("title", "report"),
//	    formship.File("doc", "/tmp/report.pdf"),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer body.Close()
package formship

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/bft-labs/formship/internal/domain"
	"github.com/bft-labs/formship/internal/factory"
	"github.com/bft-labs/formship/internal/ports"
)

// Parameter is one named entry submitted to an endpoint.
type Parameter = domain.Parameter

// Transport submits parameters to one endpoint.
type Transport = ports.Transport

// Logger is the interface for structured logging.
type Logger = ports.Logger

// LogField represents a structured log field.
type LogField = ports.Field

// HTTPClient is the interface for making HTTP requests.
// *http.Client satisfies this interface.
type HTTPClient = ports.HTTPClient

// TransportError describes an endpoint failure.
type TransportError = domain.TransportError

// Config configures the transports created by a Factory.
type Config = factory.Config

// Factory creates transports by URL scheme.
type Factory = factory.Factory

// Errors that can be checked with errors.Is.
var (
	ErrEncoding       = domain.ErrEncoding
	ErrLengthMismatch = domain.ErrLengthMismatch
	ErrNoFixture      = domain.ErrNoFixture
	ErrNoTransport    = domain.ErrNoTransport
	ErrInvalidConfig  = domain.ErrInvalidConfig
)

// Text creates a plain text parameter.
func Text(name, value string) Parameter { return domain.Text(name, value) }

// File creates a file attachment parameter.
func File(name, path string) Parameter { return domain.File(name, path) }

// FromValue creates a parameter from the default formatting of value.
func FromValue(name string, value interface{}, hint string) Parameter {
	return domain.FromValue(name, value, hint)
}

// Option adjusts a Config before the factory is built.
type Option func(*Config)

// WithLogger sets a custom logger for structured logging.
// If not provided, a no-op logger is used (no output).
func WithLogger(logger Logger) Option {
	return func(c *Config) { c.Logger = logger }
}

// WithHTTPClient sets a custom HTTP client for http and https URLs.
func WithHTTPClient(client HTTPClient) Option {
	return func(c *Config) { c.HTTPClient = client }
}

// WithHeader adds a custom request header for http and https URLs.
// User-Agent (see Config.UserAgent), Content-Type and Content-Length are
// always set by the transport and replace any value given here.
func WithHeader(key, value string) Option {
	return func(c *Config) {
		if c.Header == nil {
			c.Header = http.Header{}
		}
		c.Header.Add(key, value)
	}
}

// WithFixture registers the response of test: URLs with the given name.
func WithFixture(name string, body []byte) Option {
	return func(c *Config) {
		fx := make(map[string][]byte, len(c.Fixtures)+1)
		for k, v := range c.Fixtures {
			fx[k] = v
		}
		fx[name] = body
		c.Fixtures = fx
	}
}

// NewFactory builds a Factory from cfg and opts.
func NewFactory(cfg Config, opts ...Option) (*Factory, error) {
	for _, opt := range opts {
		opt(&cfg)
	}
	return factory.New(cfg)
}

// Send creates the transport for url and submits params in order. The caller
// must close the returned stream. A telnet: URL whose authority cannot be
// parsed yields a nil stream and a nil error.
func Send(ctx context.Context, cfg Config, url, name string, params []Parameter, opts ...Option) (io.ReadCloser, error) {
	f, err := NewFactory(cfg, opts...)
	if err != nil {
		return nil, err
	}
	t := f.Create(url, name)
	if t == nil {
		return nil, fmt.Errorf("%w: %q", ErrNoTransport, url)
	}
	return t.Send(ctx, params)
}
