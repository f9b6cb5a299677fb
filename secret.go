package argon2kdf

import (
	"log/slog"
	"runtime"
	"sync"

	"github.com/hengadev/argon2kdf/internal/security"
)

const redacted = "Secret(redacted)"

// Secret holds the optional Argon2 secret input (a pepper). It owns its
// buffer: the bytes are zeroed by Wipe, by VerifyWithSecret, and by a
// finalizer when the Secret becomes unreachable.
//
// A Secret never prints its contents through fmt or slog.
type Secret struct {
	mu    sync.RWMutex
	b     []byte
	wiped bool
}

// NewSecret takes ownership of b. The caller must not use b afterwards; it
// will be zeroed when the Secret is wiped.
func NewSecret(b []byte) *Secret {
	s := &Secret{b: b}
	runtime.SetFinalizer(s, (*Secret).Wipe)
	return s
}

// Len returns the secret length in bytes, or 0 once wiped.
func (s *Secret) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.b)
}

// Wipe zeroes and releases the buffer. Calling it more than once is safe.
func (s *Secret) Wipe() {
	s.mu.Lock()
	defer s.mu.Unlock()
	security.ZeroBytes(s.b)
	s.b = nil
	s.wiped = true
}

// Wiped reports whether Wipe has been called.
func (s *Secret) Wiped() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.wiped
}

// copyBytes returns a scoped copy the caller must zero. ok is false once the
// secret has been wiped.
func (s *Secret) copyBytes() (b []byte, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.wiped {
		return nil, false
	}
	return security.SecureCopy(s.b), true
}

func (s *Secret) String() string {
	return redacted
}

func (s *Secret) GoString() string {
	return redacted
}

// LogValue implements slog.LogValuer.
func (s *Secret) LogValue() slog.Value {
	return slog.StringValue(redacted)
}
