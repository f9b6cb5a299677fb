package security

import (
	"crypto/rand"
	"fmt"
	"io"
)

// ReadRandom reads exactly n bytes from r. A nil reader means crypto/rand.
// Short reads are errors; nothing is retried.
func ReadRandom(r io.Reader, n int) ([]byte, error) {
	if r == nil {
		r = rand.Reader
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		ZeroBytes(b)
		return nil, fmt.Errorf("read %d random bytes: %w", n, err)
	}
	return b, nil
}
