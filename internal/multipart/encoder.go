package multipart

import (
	"fmt"
	"io"

	"github.com/bft-labs/formship/internal/codec"
	"github.com/bft-labs/formship/internal/domain"
)

var (
	crlf   = []byte("\r\n")
	dashes = []byte("--")
)

// Encoder frames parts with a single boundary generated at construction.
// An Encoder serves one request and must not be shared between requests.
type Encoder struct {
	boundary []byte
}

// NewEncoder returns an Encoder with a freshly generated random boundary.
func NewEncoder() *Encoder {
	return &Encoder{boundary: codec.GenerateBoundary()}
}

// NewEncoderWithBoundary returns an Encoder using boundary, which must satisfy
// codec.ValidBoundary.
func NewEncoderWithBoundary(boundary string) (*Encoder, error) {
	b := []byte(boundary)
	if !codec.ValidBoundary(b) {
		return nil, fmt.Errorf("%w: invalid boundary %q", domain.ErrEncoding, boundary)
	}
	return &Encoder{boundary: b}, nil
}

// Boundary returns the boundary used by e.
func (e *Encoder) Boundary() string {
	return string(e.boundary)
}

// ContentType returns the Content-Type header value announcing e's boundary.
func (e *Encoder) ContentType() string {
	return `multipart/form-data; boundary="` + string(e.boundary) + `"`
}

// LengthOf returns the number of bytes WritePart writes for p: the boundary
// line, the part headers, the blank line, the body and the trailing CRLF.
func (e *Encoder) LengthOf(p Part) int64 {
	return int64(len(dashes)+len(e.boundary)+len(crlf)) +
		p.EncodedLength() +
		int64(3*len(crlf))
}

// WritePart writes p framed by e's boundary, e.g.:
//
//	--<boundary>\r\n
//	<headers>\r\n
//	\r\n
//	<body>\r\n
func (e *Encoder) WritePart(w io.Writer, p Part) error {
	if err := write(w, dashes, e.boundary, crlf); err != nil {
		return err
	}
	if err := p.WriteHeaders(w); err != nil {
		return err
	}
	if err := write(w, crlf, crlf); err != nil {
		return err
	}
	if err := p.WriteBody(w); err != nil {
		return err
	}
	return write(w, crlf)
}

// ClosingLength returns the length of the closing boundary line.
func (e *Encoder) ClosingLength() int64 {
	return int64(2*len(dashes) + len(e.boundary) + len(crlf))
}

// WriteClosing writes the closing boundary line --<boundary>--\r\n. It is never
// written implicitly.
func (e *Encoder) WriteClosing(w io.Writer) error {
	return write(w, dashes, e.boundary, dashes, crlf)
}

// ContentLength returns the length of a complete body made of parts followed
// by the closing boundary.
func (e *Encoder) ContentLength(parts []Part) int64 {
	total := e.ClosingLength()
	for _, p := range parts {
		total += e.LengthOf(p)
	}
	return total
}

// WriteAll writes every part and the closing boundary. It fails with
// domain.ErrLengthMismatch if the bytes written differ from ContentLength.
func (e *Encoder) WriteAll(w io.Writer, parts []Part) error {
	want := e.ContentLength(parts)
	cw := &countingWriter{w: w}
	for _, p := range parts {
		if err := e.WritePart(cw, p); err != nil {
			return err
		}
	}
	if err := e.WriteClosing(cw); err != nil {
		return err
	}
	if cw.n != want {
		return fmt.Errorf("%w: wrote %d bytes, announced %d", domain.ErrLengthMismatch, cw.n, want)
	}
	return nil
}

func write(w io.Writer, chunks ...[]byte) error {
	for _, c := range chunks {
		if _, err := w.Write(c); err != nil {
			return err
		}
	}
	return nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
