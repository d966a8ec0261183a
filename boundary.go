package formstream

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
)

// boundaryPrefix starts every generated boundary. The full boundary is the
// prefix plus a 10-digit zero-padded random suffix, 32 bytes total.
const boundaryPrefix = "--formstream-boundary-"

// Function variable for testing injection.
var randUint32 = func() uint32 {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		// crypto/rand.Read is documented never to fail on supported platforms.
		panic(err)
	}
	return binary.BigEndian.Uint32(b[:])
}

// generateBoundary produces a fresh delimiter string. It is called exactly
// once per Form, at construction time.
func generateBoundary() string {
	return fmt.Sprintf("%s%010d", boundaryPrefix, randUint32())
}

// validateBoundary checks a caller-supplied boundary against the grammar
// of rfc2046#section-5.1.1.
func validateBoundary(boundary string) error {
	if len(boundary) < 1 || len(boundary) > 69 {
		return fmt.Errorf("%w: length %d", ErrBoundary, len(boundary))
	}
	for _, b := range boundary {
		if 'A' <= b && b <= 'Z' || 'a' <= b && b <= 'z' || '0' <= b && b <= '9' {
			continue
		}
		switch b {
		case '\'', '(', ')', '+', '_', ',', '-', '.', '/', ':', '=', '?':
			continue
		}
		return fmt.Errorf("%w: character %q", ErrBoundary, b)
	}
	return nil
}
