package argon2kdf

import (
	"crypto/rand"
	"fmt"
	"io"
	"math"

	"github.com/hengadev/errsx"

	"github.com/hengadev/argon2kdf/internal/security"
)

// Hasher configures and runs password hashing. It is a value type: every
// With method returns an updated copy and never modifies the receiver, so a
// Hasher can be shared between goroutines and used as a template.
//
// With methods check their argument immediately. A rejected argument is
// recorded under its field name (algorithm, version, memoryCost, timeCost,
// parallelism, hashLength, saltLength, salt, secret) and reported by
// Validate and Hash. A later valid call for the same field clears it.
type Hasher struct {
	algorithm  Algorithm
	version    Version
	params     Params
	hashLength uint32
	saltLength uint32
	salt       []byte
	secret     *Secret
	deriver    Deriver
	random     io.Reader
	errs       errsx.Map
}

// NewHasher returns a Hasher with the default configuration: Argon2id,
// version 0x13, m=19456 KiB, t=2, p=1, a 32-byte hash and a random 16-byte
// salt.
func NewHasher() Hasher {
	return Hasher{
		algorithm:  DefaultAlgorithm,
		version:    DefaultVersion,
		params:     DefaultParams(),
		hashLength: DefaultHashLength,
		saltLength: DefaultSaltLength,
	}
}

// DefaultHasher is an alias of NewHasher.
func DefaultHasher() Hasher {
	return NewHasher()
}

// WithAlgorithm selects the Argon2 variant.
func (h Hasher) WithAlgorithm(a Algorithm) Hasher {
	h.algorithm = a
	return h.record("algorithm", validateAlgorithm(a))
}

// WithVersion selects the Argon2 version (Version10 or Version13).
func (h Hasher) WithVersion(v Version) Hasher {
	h.version = v
	return h.record("version", validateVersion(v))
}

// WithMemoryCost sets the memory cost in KiB.
func (h Hasher) WithMemoryCost(kib uint32) Hasher {
	h.params.MemoryCost = kib
	return h.record("memoryCost", validateMemoryCost(kib))
}

// WithTimeCost sets the number of passes over memory.
func (h Hasher) WithTimeCost(t uint32) Hasher {
	h.params.TimeCost = t
	return h.record("timeCost", validateTimeCost(t))
}

// WithParallelism sets the number of lanes.
func (h Hasher) WithParallelism(p uint32) Hasher {
	h.params.Parallelism = p
	return h.record("parallelism", validateParallelism(p))
}

// WithParams sets memory, time and parallelism at once.
func (h Hasher) WithParams(p Params) Hasher {
	return h.WithMemoryCost(p.MemoryCost).WithTimeCost(p.TimeCost).WithParallelism(p.Parallelism)
}

// WithHashLength sets the derived key length in bytes.
func (h Hasher) WithHashLength(n uint32) Hasher {
	h.hashLength = n
	return h.record("hashLength", validateHashLength(n))
}

// WithSaltLength sets the length of generated salts. It has no effect while a
// custom salt is configured.
func (h Hasher) WithSaltLength(n uint32) Hasher {
	h.saltLength = n
	return h.record("saltLength", validateSaltLength(n))
}

// WithCustomSalt uses a copy of salt for every Hash call instead of a random
// one. A fixed salt makes hashing deterministic: use it for key derivation,
// not for storing passwords.
func (h Hasher) WithCustomSalt(salt []byte) Hasher {
	h.salt = security.SecureCopy(salt)
	var err error
	if uint64(len(salt)) > math.MaxUint32 {
		err = fmt.Errorf("salt must be at most %d bytes, got %d", uint64(math.MaxUint32), len(salt))
	} else if len(salt) < MinSaltLength {
		err = fmt.Errorf("salt must be at least %d bytes, got %d", MinSaltLength, len(salt))
	}
	return h.record("salt", err)
}

// WithSecret mixes s into every derivation as the Argon2 secret input. The
// Secret stays owned by the caller: Hash reads a scoped copy and never wipes
// s itself.
func (h Hasher) WithSecret(s *Secret) Hasher {
	h.secret = s
	var err error
	switch {
	case s == nil:
		err = errNilSecret
	case s.Wiped():
		err = errWipedSecret
	}
	return h.record("secret", err)
}

// WithDeriver replaces the Argon2 primitive. nil restores DefaultDeriver.
func (h Hasher) WithDeriver(d Deriver) Hasher {
	h.deriver = d
	return h
}

// WithRandom replaces the salt randomness source. nil restores crypto/rand.
func (h Hasher) WithRandom(r io.Reader) Hasher {
	h.random = r
	return h
}

// record replaces the error stored for field. The map is rebuilt so copies of
// the Hasher never share it.
func (h Hasher) record(field string, err error) Hasher {
	errs := make(errsx.Map, len(h.errs)+1)
	for k, v := range h.errs {
		if k != field {
			errs[k] = v
		}
	}
	if err != nil {
		errs.Set(field, err)
	}
	h.errs = errs
	return h
}

// Algorithm returns the configured variant.
func (h Hasher) Algorithm() Algorithm { return h.algorithm }

// Version returns the configured Argon2 version.
func (h Hasher) Version() Version { return h.version }

// Params returns the configured cost parameters.
func (h Hasher) Params() Params { return h.params }

// HashLength returns the configured key length in bytes.
func (h Hasher) HashLength() uint32 { return h.hashLength }

// SaltLength returns the length of the salts Hash will use.
func (h Hasher) SaltLength() uint32 {
	if h.salt != nil {
		return uint32(len(h.salt))
	}
	return h.saltLength
}

// Validate reports every recorded field error and re-checks the current
// value of each field, so a zero Hasher is rejected as well. It also applies
// the cross-field rule memoryCost >= 8*parallelism.
func (h Hasher) Validate() error {
	errs := make(errsx.Map, len(h.errs)+8)
	for k, v := range h.errs {
		errs[k] = v
	}
	check := func(field string, err error) {
		if _, ok := errs[field]; !ok && err != nil {
			errs.Set(field, err)
		}
	}

	check("algorithm", validateAlgorithm(h.algorithm))
	check("version", validateVersion(h.version))
	check("memoryCost", validateMemoryCost(h.params.MemoryCost))
	check("timeCost", validateTimeCost(h.params.TimeCost))
	check("parallelism", validateParallelism(h.params.Parallelism))
	check("hashLength", validateHashLength(h.hashLength))
	if h.salt == nil {
		check("saltLength", validateSaltLength(h.saltLength))
	}

	_, memErr := errs["memoryCost"]
	_, parErr := errs["parallelism"]
	if !memErr && !parErr {
		check("memoryCost", validateMemoryForLanes(h.params.MemoryCost, h.params.Parallelism))
	}
	if h.secret != nil && h.secret.Wiped() {
		errs.Set("secret", errWipedSecret)
	}
	return newConfigurationError(errs)
}

// Hash derives a key from password and returns the resulting record.
//
// The salt is either a copy of the custom salt or freshly read from the
// randomness source; a failed read is an ErrDerivationFailed error. The
// secret, when configured, is copied into a buffer that is zeroed before
// Hash returns, on every path.
func (h Hasher) Hash(password []byte) (*Hash, error) {
	if err := h.Validate(); err != nil {
		return nil, err
	}

	salt, err := h.resolveSalt()
	if err != nil {
		return nil, newDerivationError(OperationHash, err)
	}

	var secret []byte
	if h.secret != nil {
		var ok bool
		secret, ok = h.secret.copyBytes()
		if !ok {
			return nil, newFieldConfigurationError("secret", errWipedSecret)
		}
		defer security.ZeroBytes(secret)
	}

	deriver := h.deriverOrDefault()
	key, err := deriver.Derive(DeriveRequest{
		Operation: OperationHash,
		Algorithm: h.algorithm,
		Version:   h.version,
		Params:    h.params,
		Password:  password,
		Salt:      salt,
		Secret:    secret,
		KeyLength: h.hashLength,
	})
	if err != nil {
		return nil, newDerivationError(OperationHash, err)
	}
	if uint32(len(key)) != h.hashLength {
		security.ZeroBytes(key)
		return nil, newDerivationError(OperationHash,
			fmt.Errorf("deriver returned %d bytes, expected %d", len(key), h.hashLength))
	}

	return &Hash{
		algorithm: h.algorithm,
		version:   h.version,
		params:    h.params,
		salt:      salt,
		key:       key,
		deriver:   deriver,
	}, nil
}

func (h Hasher) resolveSalt() ([]byte, error) {
	if h.salt != nil {
		return security.SecureCopy(h.salt), nil
	}
	return security.ReadRandom(h.randomOrDefault(), int(h.saltLength))
}

func (h Hasher) deriverOrDefault() Deriver {
	if h.deriver == nil {
		return DefaultDeriver()
	}
	return h.deriver
}

func (h Hasher) randomOrDefault() io.Reader {
	if h.random == nil {
		return rand.Reader
	}
	return h.random
}
