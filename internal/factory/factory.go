// Package factory selects the transport implementation for a URL.
package factory

import (
	"net/http"
	"strings"
	"time"

	"github.com/bft-labs/formship/internal/adapters/fs"
	httpAdapter "github.com/bft-labs/formship/internal/adapters/http"
	logAdapter "github.com/bft-labs/formship/internal/adapters/log"
	"github.com/bft-labs/formship/internal/adapters/socket"
	"github.com/bft-labs/formship/internal/adapters/stub"
	"github.com/bft-labs/formship/internal/ports"
)

// Config is passed explicitly to every transport the factory creates.
type Config struct {
	// UserAgent is sent by HTTP transports (httpAdapter.DefaultUserAgent when empty)
	UserAgent string

	// Header holds custom HTTP request headers; User-Agent, Content-Type and
	// Content-Length in it are replaced by the transport
	Header http.Header

	// Charset encodes text parameters (UTF-8 when empty)
	Charset string

	// DialTimeout bounds socket connects; zero means no timeout
	DialTimeout time.Duration

	// HTTPTimeout is used for the default HTTP client; zero means no timeout
	HTTPTimeout time.Duration

	// HTTPClient overrides the default client built from HTTPTimeout
	HTTPClient ports.HTTPClient

	// Fixtures are the responses of test: transports, keyed by logical name
	Fixtures map[string][]byte

	// Logger receives transport logs; discarded when nil
	Logger ports.Logger
}

// Factory creates one transport per request. Transports are never pooled.
type Factory struct {
	cfg Config
}

// New validates cfg and returns a Factory.
func New(cfg Config) (*Factory, error) {
	httpCfg := httpAdapter.Config{UserAgent: cfg.UserAgent, Header: cfg.Header, Charset: cfg.Charset}
	if err := httpCfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{Timeout: cfg.HTTPTimeout}
	}
	if cfg.Logger == nil {
		cfg.Logger = logAdapter.NewNoopLogger()
	}
	return &Factory{cfg: cfg}, nil
}

// Scheme names recognized by Create.
const (
	SchemeHTTP   = "http:"
	SchemeHTTPS  = "https:"
	SchemeTelnet = "telnet:"
	SchemeFile   = "file:"
	SchemeTest   = "test:"
)

// Create returns the transport for rawURL, chosen by case-insensitive scheme
// prefix. name is the logical name used by test: transports; when empty the
// remainder of the URL is used. An empty URL or an unknown scheme returns nil,
// meaning no transport is available.
func (f *Factory) Create(rawURL, name string) ports.Transport {
	lower := strings.ToLower(strings.TrimSpace(rawURL))
	switch {
	case lower == "":
		return nil
	case strings.HasPrefix(lower, SchemeHTTP), strings.HasPrefix(lower, SchemeHTTPS):
		return httpAdapter.NewTransport(rawURL, f.cfg.HTTPClient, f.cfg.Logger, httpAdapter.Config{
			UserAgent: f.cfg.UserAgent,
			Header:    f.cfg.Header,
			Charset:   f.cfg.Charset,
		})
	case strings.HasPrefix(lower, SchemeTelnet):
		return socket.NewTransport(rawURL, f.cfg.DialTimeout, f.cfg.Logger, f.cfg.Charset)
	case strings.HasPrefix(lower, SchemeFile):
		return fs.NewTransport(rawURL)
	case strings.HasPrefix(lower, SchemeTest):
		if name == "" {
			name = strings.TrimPrefix(strings.TrimSpace(rawURL)[len(SchemeTest):], "//")
		}
		return stub.NewTransport(rawURL, name, f.cfg.Fixtures)
	}
	f.cfg.Logger.Debug("no transport for url", ports.String("url", rawURL))
	return nil
}
