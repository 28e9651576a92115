// Package socket implements the raw TCP transport used for telnet: endpoints
// that speak a line-oriented protocol instead of full HTTP.
package socket

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bft-labs/formship/internal/domain"
	"github.com/bft-labs/formship/internal/multipart"
	"github.com/bft-labs/formship/internal/ports"
)

// DefaultPort is used when the URL names no port.
const DefaultPort = "23"

// DefaultCharset encodes text parameters when no charset is configured.
const DefaultCharset = "UTF-8"

// Transport implements ports.Transport over a raw TCP stream. The request is a
// short header block followed by the multipart body:
//
//	Content-Type: multipart/form-data; boundary="..."\r\n
//	Content-Length: 1234\r\n
//	\r\n
//	--...
//
// After the body the write side is closed and the connection is returned as the
// response stream.
type Transport struct {
	url     string
	dialer  net.Dialer
	logger  ports.Logger
	charset string
}

// NewTransport creates a socket transport for a telnet: URL. A zero
// dialTimeout leaves connection timing to ctx.
func NewTransport(url string, dialTimeout time.Duration, logger ports.Logger, charset string) *Transport {
	if charset == "" {
		charset = DefaultCharset
	}
	return &Transport{
		url:     url,
		dialer:  net.Dialer{Timeout: dialTimeout},
		logger:  logger,
		charset: charset,
	}
}

// Send connects, writes params and returns the connection. A URL without a
// usable host or port is logged and yields a nil stream and a nil error.
func (t *Transport) Send(ctx context.Context, params []domain.Parameter) (io.ReadCloser, error) {
	addr, err := Address(t.url)
	if err != nil {
		t.logger.Warn("socket transport: malformed url, nothing sent",
			ports.String("url", t.url), ports.Err(err))
		return nil, nil
	}

	parts, err := multipart.PartsFor(params, t.charset)
	if err != nil {
		return nil, t.fail("encode", err)
	}

	conn, err := t.dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, t.fail("dial", err)
	}
	if err := t.write(conn, parts); err != nil {
		conn.Close()
		return nil, t.fail("write", err)
	}
	if tcp, ok := conn.(*net.TCPConn); ok {
		if err := tcp.CloseWrite(); err != nil {
			conn.Close()
			return nil, t.fail("write", err)
		}
	}
	t.logger.Debug("socket request sent", ports.String("addr", addr), ports.Int("parts", len(parts)))
	return conn, nil
}

func (t *Transport) write(w io.Writer, parts []multipart.Part) error {
	if len(parts) == 0 {
		return nil
	}
	enc := multipart.NewEncoder()
	bw := bufio.NewWriter(w)
	bw.WriteString("Content-Type: ")
	bw.WriteString(enc.ContentType())
	bw.WriteString("\r\nContent-Length: ")
	bw.WriteString(strconv.FormatInt(enc.ContentLength(parts), 10))
	bw.WriteString("\r\n\r\n")
	if err := enc.WriteAll(bw, parts); err != nil {
		return err
	}
	return bw.Flush()
}

func (t *Transport) fail(op string, err error) error {
	return &domain.TransportError{Op: op, URL: t.url, Err: err}
}

// Address extracts host:port from a telnet: URL. The scheme is rewritten to
// http: so the authority is parsed with HTTP rules; DefaultPort applies when no
// port is given.
func Address(rawURL string) (string, error) {
	const scheme = "telnet:"
	if len(rawURL) >= len(scheme) && strings.EqualFold(rawURL[:len(scheme)], scheme) {
		rawURL = "http:" + rawURL[len(scheme):]
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	host := u.Hostname()
	if host == "" {
		return "", fmt.Errorf("missing host in %q", rawURL)
	}
	port := u.Port()
	if port == "" {
		port = DefaultPort
	}
	if n, err := strconv.Atoi(port); err != nil || n < 1 || n > 65535 {
		return "", fmt.Errorf("invalid port %q", port)
	}
	return net.JoinHostPort(host, port), nil
}

var _ ports.Transport = (*Transport)(nil)
