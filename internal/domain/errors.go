package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent error conditions in the formship domain.
// These errors are returned by the public API and can be checked with errors.Is.
var (
	// ErrEncoding is returned for invalid input to the byte codec, such as an
	// empty charset name or a malformed boundary. It signals a programming error
	// and should abort the current request.
	ErrEncoding = errors.New("formship: encoding error")

	// ErrLengthMismatch is returned when the bytes written for a body differ from
	// the length announced before writing.
	ErrLengthMismatch = errors.New("formship: encoded length mismatch")

	// ErrNoFixture is returned by the test transport when no fixture is
	// registered for its logical name.
	ErrNoFixture = errors.New("formship: no fixture registered")

	// ErrNoTransport is returned when no transport handles a URL's scheme.
	ErrNoTransport = errors.New("formship: no transport for url")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("formship: invalid configuration")
)

// TransportError is returned by every transport for endpoint-class failures:
// unreachable hosts, non-success status codes, missing files and I/O errors
// while streaming a request body.
type TransportError struct {
	// Op is the failed operation ("dial", "write", "status", "open", ...)
	Op string

	// URL is the endpoint the transport was created for
	URL string

	// Status is the HTTP status line, empty for non-HTTP failures
	Status string

	// Err is the underlying cause, if any
	Err error
}

func (e *TransportError) Error() string {
	msg := fmt.Sprintf("formship: %s %s", e.Op, e.URL)
	if e.Status != "" {
		msg += ": " + e.Status
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *TransportError) Unwrap() error { return e.Err }
