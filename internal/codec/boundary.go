package codec

import (
	"crypto/rand"
)

// BoundaryLength is the number of bytes in a generated boundary.
const BoundaryLength = 32

// maxBoundaryLength is the RFC 2046 limit on boundary length.
const maxBoundaryLength = 70

// boundaryAlphabet holds exactly 64 symbols so a random byte masked with 63
// selects each of them with equal probability.
const boundaryAlphabet = "-_1234567890abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GenerateBoundary returns BoundaryLength random bytes drawn from [-_0-9a-zA-Z].
// No check is made against previously generated boundaries or part content.
func GenerateBoundary() []byte {
	b := make([]byte, BoundaryLength)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	for i := range b {
		b[i] = boundaryAlphabet[b[i]&63]
	}
	return b
}

// ValidBoundary reports whether b is non-empty, at most 70 bytes long and made
// of boundary alphabet symbols only.
func ValidBoundary(b []byte) bool {
	if len(b) == 0 || len(b) > maxBoundaryLength {
		return false
	}
	for _, c := range b {
		if !isBoundaryByte(c) {
			return false
		}
	}
	return true
}

func isBoundaryByte(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '-' || c == '_':
		return true
	}
	return false
}
