package multipart

import (
	"io"

	"github.com/bft-labs/formship/internal/codec"
)

// Default headers of a ValuePart.
const (
	DefaultValueContentType      = "text/plain"
	DefaultValueCharset          = "US-ASCII"
	DefaultValueTransferEncoding = "8bit"
)

// ValuePart is an inline text part. The content is encoded once at
// construction.
type ValuePart struct {
	header
	content []byte
}

// NewValuePart encodes value with charset (DefaultValueCharset when empty) and
// returns a part advertising that charset.
func NewValuePart(name, value, charset string, opts ...PartOption) (*ValuePart, error) {
	if charset == "" {
		charset = DefaultValueCharset
	}
	content, err := codec.Bytes(value, charset)
	if err != nil {
		return nil, err
	}
	p := &ValuePart{
		header: header{
			name:             name,
			contentType:      DefaultValueContentType,
			charset:          charset,
			transferEncoding: DefaultValueTransferEncoding,
		},
		content: content,
	}
	for _, opt := range opts {
		opt(&p.header)
	}
	return p, nil
}

func (p *ValuePart) EncodedLength() int64 {
	return p.header.length() + int64(len(p.content))
}

func (p *ValuePart) WriteHeaders(w io.Writer) error {
	return p.header.writeTo(w)
}

func (p *ValuePart) WriteBody(w io.Writer) error {
	_, err := w.Write(p.content)
	return err
}
