package ports

import (
	"context"
	"io"

	"github.com/bft-labs/formship/internal/domain"
)

// Transport submits parameters to the endpoint it was created for.
// Implementations exist for HTTP(S), raw TCP sockets, local files and an
// in-memory test stub; callers only see this interface.
type Transport interface {
	// Send submits params and returns the response byte stream, which the
	// caller must close. Send blocks for the whole round trip. Failures are
	// reported as *domain.TransportError.
	//
	// A nil stream with a nil error means the endpoint could not be addressed
	// and no request was made.
	Send(ctx context.Context, params []domain.Parameter) (io.ReadCloser, error)
}
