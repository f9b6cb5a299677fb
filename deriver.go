package argon2kdf

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	xargon2 "golang.org/x/crypto/argon2"

	"github.com/hengadev/argon2kdf/internal/argon2"
)

// Operation names the caller of a derivation.
type Operation string

const (
	OperationHash   Operation = "hash"
	OperationVerify Operation = "verify"
)

// DeriveRequest carries everything the primitive needs for one derivation.
// Password, Salt and Secret are borrowed: a Deriver must not retain them.
type DeriveRequest struct {
	Operation Operation
	Algorithm Algorithm
	Version   Version
	Params    Params
	Password  []byte
	Salt      []byte
	Secret    []byte
	KeyLength uint32
}

// Deriver is the boundary to the Argon2 primitive. Implementations must be
// deterministic for identical requests and safe for concurrent use.
type Deriver interface {
	Derive(req DeriveRequest) ([]byte, error)
}

// DeriverFunc adapts a function to the Deriver interface.
type DeriverFunc func(req DeriveRequest) ([]byte, error)

func (f DeriverFunc) Derive(req DeriveRequest) ([]byte, error) {
	return f(req)
}

// DefaultDeriver returns the built-in primitive with the default memory
// ceiling of DefaultMaxMemoryCost KiB. Requests that
// golang.org/x/crypto/argon2 can serve (Argon2i or Argon2id, version 0x13, no
// secret, at most 255 lanes) go through it; everything else uses the
// internal RFC 9106 implementation.
func DefaultDeriver() Deriver {
	return NewDeriver()
}

// DeriverOption configures the built-in primitive.
type DeriverOption func(*primitiveDeriver)

// WithMaxMemoryCost sets the largest memory cost, in KiB, the primitive will
// allocate. Requests above it fail with ErrDerivationFailed before any memory
// is reserved. 0 restores DefaultMaxMemoryCost.
func WithMaxMemoryCost(kib uint32) DeriverOption {
	return func(d *primitiveDeriver) {
		d.maxMemory = kib
	}
}

// NewDeriver returns the built-in primitive configured by opts.
func NewDeriver(opts ...DeriverOption) Deriver {
	d := primitiveDeriver{maxMemory: DefaultMaxMemoryCost}
	for _, opt := range opts {
		opt(&d)
	}
	if d.maxMemory == 0 {
		d.maxMemory = DefaultMaxMemoryCost
	}
	return d
}

type primitiveDeriver struct {
	maxMemory uint32
}

func (d primitiveDeriver) Derive(req DeriveRequest) ([]byte, error) {
	mode := argon2.Mode(req.Algorithm)
	p := req.Params
	if err := argon2.CheckParams(mode, uint32(req.Version), p.TimeCost, p.MemoryCost, p.Parallelism, req.KeyLength); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDerivationFailed, err)
	}
	if p.MemoryCost > d.maxMemory {
		return nil, fmt.Errorf("%w: memory cost %d KiB exceeds the limit of %d KiB", ErrDerivationFailed, p.MemoryCost, d.maxMemory)
	}
	if len(req.Salt) < MinSaltLength {
		return nil, fmt.Errorf("%w: salt must be at least %d bytes, got %d", ErrDerivationFailed, MinSaltLength, len(req.Salt))
	}

	if !fitsXCrypto(req) {
		key, err := argon2.Key(mode, uint32(req.Version), req.Password, req.Salt, req.Secret, nil,
			p.TimeCost, p.MemoryCost, p.Parallelism, req.KeyLength)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDerivationFailed, err)
		}
		return key, nil
	}

	if req.Algorithm == Argon2i {
		return xargon2.Key(req.Password, req.Salt, p.TimeCost, p.MemoryCost, uint8(p.Parallelism), req.KeyLength), nil
	}
	return xargon2.IDKey(req.Password, req.Salt, p.TimeCost, p.MemoryCost, uint8(p.Parallelism), req.KeyLength), nil
}

func fitsXCrypto(req DeriveRequest) bool {
	return (req.Algorithm == Argon2i || req.Algorithm == Argon2id) &&
		req.Version == xargon2.Version &&
		len(req.Secret) == 0 &&
		req.Params.Parallelism <= 255
}

// ObservedDeriver reports every derivation of the wrapped Deriver to an
// ObservabilityHook. Only non-sensitive metadata is reported.
type ObservedDeriver struct {
	inner Deriver
	hook  ObservabilityHook
}

// NewObservedDeriver wraps inner, or the default primitive when inner is nil.
func NewObservedDeriver(inner Deriver, hook ObservabilityHook) *ObservedDeriver {
	if inner == nil {
		inner = DefaultDeriver()
	}
	if hook == nil {
		hook = &NoOpObservabilityHook{}
	}
	return &ObservedDeriver{inner: inner, hook: hook}
}

func (d *ObservedDeriver) Derive(req DeriveRequest) ([]byte, error) {
	ctx := context.Background()
	operation := string(req.Operation)
	metadata := requestMetadata(req)

	d.hook.OnProcessStart(ctx, operation, metadata)
	start := time.Now()
	key, err := d.inner.Derive(req)
	duration := time.Since(start)

	if err != nil {
		d.hook.OnError(ctx, operation, err, metadata)
	}
	d.hook.OnProcessComplete(ctx, operation, duration, err, metadata)
	return key, err
}

func requestMetadata(req DeriveRequest) map[string]any {
	return map[string]any{
		"operation_id": uuid.NewString(),
		"algorithm":    req.Algorithm.String(),
		"version":      uint32(req.Version),
		"memory_cost":  req.Params.MemoryCost,
		"time_cost":    req.Params.TimeCost,
		"parallelism":  req.Params.Parallelism,
		"salt_length":  len(req.Salt),
		"key_length":   req.KeyLength,
		"has_secret":   len(req.Secret) > 0,
	}
}
