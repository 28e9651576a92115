package socket

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net"
	"net/textproto"
	"os"
	"path/filepath"
	"strconv"
	"syscall"
	"testing"

	logAdapter "github.com/bft-labs/formship/internal/adapters/log"
	"github.com/bft-labs/formship/internal/domain"
)

type received struct {
	fields map[string]string
	err    error
}

// serveOnce accepts one connection, parses the request and answers "OK".
func serveOnce(t *testing.T) (string, <-chan received) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	out := make(chan received, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			out <- received{err: err}
			return
		}
		defer conn.Close()
		out <- parseRequest(conn)
		io.WriteString(conn, "OK\r\n")
	}()
	return ln.Addr().String(), out
}

func parseRequest(conn net.Conn) received {
	tp := textproto.NewReader(bufio.NewReader(conn))
	hdr, err := tp.ReadMIMEHeader()
	if err != nil {
		return received{err: err}
	}
	n, err := strconv.ParseInt(hdr.Get("Content-Length"), 10, 64)
	if err != nil {
		return received{err: err}
	}
	rest, err := io.ReadAll(tp.R)
	if err != nil {
		return received{err: err}
	}
	if int64(len(rest)) != n {
		return received{err: errors.New("Content-Length " + strconv.FormatInt(n, 10) + " but body has " + strconv.Itoa(len(rest)))}
	}
	_, params, err := mime.ParseMediaType(hdr.Get("Content-Type"))
	if err != nil {
		return received{err: err}
	}
	mr := multipart.NewReader(bytes.NewReader(rest), params["boundary"])
	fields := map[string]string{}
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return received{err: err}
		}
		data, _ := io.ReadAll(part)
		fields[part.FormName()] = string(data)
	}
	return received{fields: fields}
}

func TestSend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cmd.txt")
	if err := os.WriteFile(path, []byte("reboot\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	addr, got := serveOnce(t)

	tr := NewTransport("telnet://"+addr+"/console", 0, logAdapter.NewNoopLogger(), "")
	rc, err := tr.Send(context.Background(), []domain.Parameter{
		domain.Text("user", "admin"),
		domain.File("script", path),
	})
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	defer rc.Close()

	r := <-got
	if r.err != nil {
		t.Fatalf("server: %v", r.err)
	}
	if r.fields["user"] != "admin" || r.fields["script"] != "reboot\n" {
		t.Errorf("fields = %q", r.fields)
	}

	resp, err := io.ReadAll(rc)
	if err != nil {
		t.Fatal(err)
	}
	if string(resp) != "OK\r\n" {
		t.Errorf("response = %q", resp)
	}
}

func TestSend_MalformedURLIsNoStream(t *testing.T) {
	for _, raw := range []string{"telnet://", "telnet://host:notaport/", "telnet://host:70000"} {
		tr := NewTransport(raw, 0, logAdapter.NewNoopLogger(), "")
		rc, err := tr.Send(context.Background(), []domain.Parameter{domain.Text("a", "b")})
		if rc != nil || err != nil {
			t.Errorf("Send(%q) = %v, %v; want nil, nil", raw, rc, err)
		}
	}
}

func TestSend_Unreachable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := ln.Addr().String()
	ln.Close()

	tr := NewTransport("telnet://"+addr, 0, logAdapter.NewNoopLogger(), "")
	_, err = tr.Send(context.Background(), nil)
	var terr *domain.TransportError
	if !errors.As(err, &terr) || terr.Op != "dial" {
		t.Fatalf("Send() error = %v, want dial TransportError", err)
	}
}

func TestSend_AttachmentChangedWhileConnecting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	if err := os.WriteFile(path, []byte("short"), 0o644); err != nil {
		t.Fatal(err)
	}
	addr, _ := serveOnce(t)

	tr := NewTransport("telnet://"+addr, 0, logAdapter.NewNoopLogger(), "")
	// the file grows after it was measured but before the body is written
	tr.dialer.Control = func(network, address string, c syscall.RawConn) error {
		return os.WriteFile(path, []byte("considerably longer text"), 0o644)
	}

	_, err := tr.Send(context.Background(), []domain.Parameter{domain.File("doc", path)})
	var terr *domain.TransportError
	if !errors.As(err, &terr) || terr.Op != "write" {
		t.Fatalf("Send() error = %v, want write TransportError", err)
	}
	if !errors.Is(err, domain.ErrLengthMismatch) {
		t.Errorf("error %v does not wrap ErrLengthMismatch", err)
	}
}

func TestAddress(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "telnet://example.com:2323/x", want: "example.com:2323"},
		{in: "TELNET://example.com/x", want: "example.com:23"},
		{in: "telnet://[::1]:99", want: "[::1]:99"},
		{in: "telnet://:23", wantErr: true},
		{in: "telnet://host:0", wantErr: true},
	}
	for _, tt := range tests {
		got, err := Address(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("Address(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("Address(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
