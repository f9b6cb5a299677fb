// Package security holds the byte-buffer hygiene shared by the hashing code:
// wiping, scoped copies and constant-time comparison.
//
// Sensitive data (passwords, peppers, derived keys) must be kept in []byte,
// never string: Go strings are immutable and cannot be erased.
package security

import (
	"crypto/subtle"
	"runtime"
)

// ZeroBytes overwrites data with zeros.
//
//	pepper := loadPepper()
//	defer security.ZeroBytes(pepper)
func ZeroBytes(data []byte) {
	if len(data) == 0 {
		return
	}
	clear(data)
	// keep the writes from being treated as dead stores
	runtime.KeepAlive(data)
}

// SecureCopy returns a private copy of src, or nil when src is empty.
// The caller owns the copy and is expected to wipe it with ZeroBytes.
func SecureCopy(src []byte) []byte {
	if len(src) == 0 {
		return nil
	}
	dst := make([]byte, len(src))
	copy(dst, src)
	return dst
}

// ConstantTimeEq reports whether a and b are equal. When the lengths match,
// every byte pair is examined regardless of where the first difference is.
func ConstantTimeEq(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}

// IsZero reports whether every byte of data is zero. The scan does not stop
// early.
func IsZero(data []byte) bool {
	var acc byte
	for _, b := range data {
		acc |= b
	}
	return acc == 0
}
