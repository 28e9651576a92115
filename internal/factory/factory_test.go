package factory

import (
	"context"
	"errors"
	"io"
	"net/http"
	"testing"

	"github.com/bft-labs/formship/internal/adapters/fs"
	httpAdapter "github.com/bft-labs/formship/internal/adapters/http"
	"github.com/bft-labs/formship/internal/adapters/socket"
	"github.com/bft-labs/formship/internal/adapters/stub"
	"github.com/bft-labs/formship/internal/domain"
	"github.com/bft-labs/formship/internal/ports"
)

func newFactory(t *testing.T, cfg Config) *Factory {
	t.Helper()
	f, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return f
}

func TestCreate_Dispatch(t *testing.T) {
	f := newFactory(t, Config{})

	tests := []struct {
		url  string
		want string
	}{
		{url: "http://host/x", want: "http"},
		{url: "HTTPS://host/x", want: "http"},
		{url: "telnet://host/x", want: "socket"},
		{url: "Telnet://host:2323", want: "socket"},
		{url: "file://host/x", want: "file"},
		{url: "test://x", want: "test"},
		{url: "TEST:x", want: "test"},
		{url: "ftp://host/x", want: ""},
		{url: "mailto:someone@example.com", want: ""},
		{url: "host/x", want: ""},
		{url: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			tr := f.Create(tt.url, "name")
			var got string
			switch tr.(type) {
			case nil:
				got = ""
			case *httpAdapter.Transport:
				got = "http"
			case *socket.Transport:
				got = "socket"
			case *fs.Transport:
				got = "file"
			case *stub.Transport:
				got = "test"
			default:
				t.Fatalf("unexpected transport %T", tr)
			}
			if got != tt.want {
				t.Errorf("Create(%q) = %q, want %q", tt.url, got, tt.want)
			}
			if tt.want == "" && tr != nil {
				t.Errorf("Create(%q) returned non-nil interface %#v", tt.url, tr)
			}
		})
	}
}

func TestCreate_TestTransportName(t *testing.T) {
	f := newFactory(t, Config{Fixtures: map[string][]byte{
		"customers": []byte("by-name"),
		"orders":    []byte("by-url"),
	}})

	read := func(tr ports.Transport) string {
		t.Helper()
		rc, err := tr.Send(context.Background(), nil)
		if err != nil {
			t.Fatalf("Send: %v", err)
		}
		defer rc.Close()
		b, _ := io.ReadAll(rc)
		return string(b)
	}

	named := f.Create("test://anything", "customers")
	if got := named.(*stub.Transport).Name(); got != "customers" {
		t.Errorf("Name() = %q, want customers", got)
	}
	if got := f.Create("test://orders", "").(*stub.Transport).Name(); got != "orders" {
		t.Errorf("Name() from url = %q, want orders", got)
	}

	if got := read(named); got != "by-name" {
		t.Errorf("named stub = %q, want by-name", got)
	}
	if got := read(f.Create("test://orders", "")); got != "by-url" {
		t.Errorf("url-named stub = %q, want by-url", got)
	}
}

func TestCreate_FreshTransportPerCall(t *testing.T) {
	f := newFactory(t, Config{})
	a := f.Create("test://x", "x")
	b := f.Create("test://x", "x")
	if a == b {
		t.Error("Create returned the same transport twice")
	}
}

func TestNew_InvalidHeader(t *testing.T) {
	_, err := New(Config{Header: http.Header{"Bad Header": {"v"}}})
	if !errors.Is(err, domain.ErrInvalidConfig) {
		t.Fatalf("New() error = %v, want ErrInvalidConfig", err)
	}
}
