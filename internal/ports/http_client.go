package ports

import "net/http"

// HTTPClient performs the round trip for the HTTP(S) transport.
// *http.Client satisfies this interface; tests pass the client of an
// httptest.Server.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
