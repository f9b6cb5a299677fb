package argon2kdf

import (
	"bytes"
	"crypto/subtle"
	"errors"

	"github.com/hengadev/argon2kdf/internal/security"
)

// Hash is a derived key together with everything needed to re-derive it:
// algorithm, version, cost parameters and salt. A Hash is immutable and safe
// for concurrent use. Accessors return copies.
type Hash struct {
	algorithm Algorithm
	version   Version
	params    Params
	salt      []byte
	key       []byte
	deriver   Deriver
}

// Algorithm returns the Argon2 variant the record was derived with.
func (r *Hash) Algorithm() Algorithm { return r.algorithm }

// Version returns the Argon2 version.
func (r *Hash) Version() Version { return r.version }

// Params returns the cost parameters.
func (r *Hash) Params() Params { return r.params }

// MemoryCost returns the memory cost in KiB.
func (r *Hash) MemoryCost() uint32 { return r.params.MemoryCost }

// TimeCost returns the number of passes.
func (r *Hash) TimeCost() uint32 { return r.params.TimeCost }

// Parallelism returns the number of lanes.
func (r *Hash) Parallelism() uint32 { return r.params.Parallelism }

// Salt returns a copy of the salt.
func (r *Hash) Salt() []byte { return bytes.Clone(r.salt) }

// Key returns a copy of the derived key.
func (r *Hash) Key() []byte { return bytes.Clone(r.key) }

// Verify re-derives a key from password with the record's parameters and
// reports whether it matches. A wrong password is (false, nil); an error means
// the derivation itself failed.
//
// Records hashed with a secret never verify here; use VerifyWithSecret.
func (r *Hash) Verify(password []byte) (bool, error) {
	return r.verify(password, nil)
}

// VerifyWithSecret is Verify with the Argon2 secret input. It consumes
// secret: the Secret is wiped before returning, on every path.
func (r *Hash) VerifyWithSecret(password []byte, secret *Secret) (bool, error) {
	if secret == nil {
		return false, newFieldConfigurationError("secret", errNilSecret)
	}
	defer secret.Wipe()

	b, ok := secret.copyBytes()
	if !ok {
		return false, newFieldConfigurationError("secret", errWipedSecret)
	}
	defer security.ZeroBytes(b)

	return r.verify(password, b)
}

func (r *Hash) verify(password, secret []byte) (bool, error) {
	if r == nil {
		return false, newFieldConfigurationError("hash", errors.New("nil hash record"))
	}

	candidate, err := r.deriverOrDefault().Derive(DeriveRequest{
		Operation: OperationVerify,
		Algorithm: r.algorithm,
		Version:   r.version,
		Params:    r.params,
		Password:  password,
		Salt:      r.salt,
		Secret:    secret,
		KeyLength: uint32(len(r.key)),
	})
	if err != nil {
		return false, newDerivationError(OperationVerify, err)
	}
	defer security.ZeroBytes(candidate)

	return subtle.ConstantTimeCompare(candidate, r.key) == 1, nil
}

// Equal reports whether both records carry the same algorithm, version,
// parameters, salt and key. Keys are compared in constant time. The Deriver
// is not compared.
func (r *Hash) Equal(other *Hash) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.algorithm == other.algorithm &&
		r.version == other.version &&
		r.params == other.params &&
		bytes.Equal(r.salt, other.salt) &&
		security.ConstantTimeEq(r.key, other.key)
}

// NeedsRehash reports whether the record differs from what h would produce:
// another algorithm, version, cost parameters, hash length or salt length.
func (r *Hash) NeedsRehash(h Hasher) bool {
	return r.algorithm != h.Algorithm() ||
		r.version != h.Version() ||
		r.params != h.Params() ||
		uint32(len(r.key)) != h.HashLength() ||
		uint32(len(r.salt)) != h.SaltLength()
}

// WithDeriver returns a copy of the record that verifies through d. nil
// restores DefaultDeriver.
func (r *Hash) WithDeriver(d Deriver) *Hash {
	c := *r
	c.deriver = d
	return &c
}

func (r *Hash) deriverOrDefault() Deriver {
	if r.deriver == nil {
		return DefaultDeriver()
	}
	return r.deriver
}
