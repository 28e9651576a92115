// Package multipart encodes parameters as a multipart/form-data body whose exact
// length is known before the first byte is written.
//
// Every part is measured with [Part.EncodedLength] and later emitted with
// [Encoder.WritePart]; the two must agree byte for byte because transports send
// the total as Content-Length ahead of the body.
package multipart

import (
	"io"

	"github.com/bft-labs/formship/internal/codec"
)

// Part is one encodable body part.
type Part interface {
	// EncodedLength returns the number of bytes WriteHeaders and WriteBody
	// will write together. It performs no I/O.
	EncodedLength() int64

	// WriteHeaders writes the part headers without the trailing blank line.
	WriteHeaders(w io.Writer) error

	// WriteBody writes the part content.
	WriteBody(w io.Writer) error
}

// PartOption overrides one of the default part headers. Setting a value to ""
// removes the header.
type PartOption func(*header)

// WithContentType sets the Content-Type header value.
func WithContentType(contentType string) PartOption {
	return func(h *header) { h.contentType = contentType }
}

// WithCharset sets the charset parameter of the Content-Type header.
func WithCharset(charset string) PartOption {
	return func(h *header) { h.charset = charset }
}

// WithTransferEncoding sets the Content-Transfer-Encoding header value.
func WithTransferEncoding(encoding string) PartOption {
	return func(h *header) { h.transferEncoding = encoding }
}

// header is the field set shared by every part kind.
type header struct {
	name             string
	fileName         string
	contentType      string
	charset          string
	transferEncoding string
}

// encode renders the headers, e.g.:
//
//	Content-Disposition: form-data; name="doc"; filename="a.txt"\r\n
//	Content-Type: application/octet-stream; charset=ISO-8859-1\r\n
//	Content-Transfer-Encoding: binary
//
// Measuring and writing both go through this function.
func (h *header) encode() []byte {
	b := make([]byte, 0, 128)
	b = append(b, `Content-Disposition: form-data; name="`...)
	b = append(b, codec.ASCIIBytes(h.name)...)
	b = append(b, '"')
	if h.fileName != "" {
		b = append(b, `; filename="`...)
		b = append(b, codec.ASCIIBytes(h.fileName)...)
		b = append(b, '"')
	}
	if h.contentType != "" {
		b = append(b, crlf...)
		b = append(b, "Content-Type: "...)
		b = append(b, codec.ASCIIBytes(h.contentType)...)
		if h.charset != "" {
			b = append(b, "; charset="...)
			b = append(b, codec.ASCIIBytes(h.charset)...)
		}
	}
	if h.transferEncoding != "" {
		b = append(b, crlf...)
		b = append(b, "Content-Transfer-Encoding: "...)
		b = append(b, codec.ASCIIBytes(h.transferEncoding)...)
	}
	return b
}

func (h *header) length() int64 {
	return int64(len(h.encode()))
}

func (h *header) writeTo(w io.Writer) error {
	_, err := w.Write(h.encode())
	return err
}
