// Package codec converts strings to the byte sequences written on the wire.
//
// Protocol tokens (boundaries, header names and values) go through the strict
// ASCII codec. User content goes through a caller-named charset resolved from the
// IANA registry, falling back to UTF-8 when the charset is unknown.
package codec

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"

	"github.com/bft-labs/formship/internal/domain"
)

// ASCIIBytes encodes s as 7-bit ASCII. Each rune outside the ASCII range is
// replaced by a single '?', so the result always has one byte per rune.
func ASCIIBytes(s string) []byte {
	b := make([]byte, 0, len(s))
	for _, r := range s {
		if r < utf8.RuneSelf {
			b = append(b, byte(r))
		} else {
			b = append(b, '?')
		}
	}
	return b
}

// Bytes encodes s with the named charset. An empty charset is an ErrEncoding.
// Runes the charset cannot represent become '?', the same substitution
// ASCIIBytes makes. Charsets that are not registered or not supported fall back
// to UTF-8; callers must not rely on the output of the fallback path.
func Bytes(s, charset string) ([]byte, error) {
	charset = strings.TrimSpace(charset)
	if charset == "" {
		return nil, fmt.Errorf("%w: empty charset", domain.ErrEncoding)
	}
	enc := lookup(charset)
	if enc == nil {
		return []byte(s), nil
	}
	b, err := enc.NewEncoder().Bytes([]byte(replaceUnmappable(enc, s)))
	if err != nil {
		return []byte(s), nil
	}
	return b, nil
}

// replaceUnmappable substitutes '?' for every rune enc cannot encode.
// Invalid UTF-8 decodes to U+FFFD and is treated like any other rune.
func replaceUnmappable(enc encoding.Encoding, s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	mappable := map[rune]bool{}
	for _, r := range s {
		ok, seen := mappable[r]
		if !seen {
			_, err := enc.NewEncoder().String(string(r))
			ok = err == nil
			mappable[r] = ok
		}
		if ok {
			sb.WriteRune(r)
		} else {
			sb.WriteByte('?')
		}
	}
	return sb.String()
}

// Supported reports whether charset resolves to an encoding without falling back.
func Supported(charset string) bool {
	return lookup(strings.TrimSpace(charset)) != nil
}

func lookup(charset string) encoding.Encoding {
	enc, err := ianaindex.IANA.Encoding(charset)
	if err != nil || enc == nil {
		if enc, err = ianaindex.MIME.Encoding(charset); err != nil {
			return nil
		}
	}
	return enc
}
