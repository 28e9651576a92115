package multipart

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bft-labs/formship/internal/domain"
)

// Default headers of a FilePart.
const (
	DefaultFileContentType      = "application/octet-stream"
	DefaultFileCharset          = "ISO-8859-1"
	DefaultFileTransferEncoding = "binary"
)

// chunkSize bounds the memory used to stream one attachment.
const chunkSize = 4096

// FilePart streams the content of a local file. The size is captured from file
// metadata at construction; WriteBody fails with domain.ErrLengthMismatch if the
// file no longer has that size.
type FilePart struct {
	header
	path string
	size int64
}

// NewFilePart creates a part for the regular file at path. The filename
// advertised in Content-Disposition is the base name of path.
func NewFilePart(name, path string, opts ...PartOption) (*FilePart, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if fi.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	p := &FilePart{
		header: header{
			name:             name,
			fileName:         filepath.Base(path),
			contentType:      DefaultFileContentType,
			charset:          DefaultFileCharset,
			transferEncoding: DefaultFileTransferEncoding,
		},
		path: path,
		size: fi.Size(),
	}
	for _, opt := range opts {
		opt(&p.header)
	}
	return p, nil
}

// Size returns the file size the part was measured with.
func (p *FilePart) Size() int64 { return p.size }

func (p *FilePart) EncodedLength() int64 {
	return p.header.length() + p.size
}

func (p *FilePart) WriteHeaders(w io.Writer) error {
	return p.header.writeTo(w)
}

func (p *FilePart) WriteBody(w io.Writer) error {
	f, err := os.Open(p.path)
	if err != nil {
		return err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return err
	}
	if fi.Size() != p.size {
		return fmt.Errorf("%w: %s was %d bytes when measured, %d when written",
			domain.ErrLengthMismatch, p.path, p.size, fi.Size())
	}

	buf := make([]byte, chunkSize)
	var written int64
	for written < p.size {
		chunk := buf
		if remaining := p.size - written; remaining < int64(len(chunk)) {
			chunk = chunk[:remaining]
		}
		n, rerr := f.Read(chunk)
		if n > 0 {
			if _, err := w.Write(chunk[:n]); err != nil {
				return err
			}
			written += int64(n)
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return fmt.Errorf("read %s: %w", p.path, rerr)
		}
	}
	if written != p.size {
		return fmt.Errorf("%w: %s truncated to %d of %d bytes",
			domain.ErrLengthMismatch, p.path, written, p.size)
	}
	return nil
}
