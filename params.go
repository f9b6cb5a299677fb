package argon2kdf

import (
	"errors"
	"fmt"

	"github.com/hengadev/errsx"
)

// Params are the Argon2 cost parameters.
//
// The primitive rounds MemoryCost down to a multiple of 4*Parallelism while
// deriving; the encoded record always keeps the configured value.
type Params struct {
	// MemoryCost in KiB
	MemoryCost uint32
	// TimeCost is the number of passes over memory
	TimeCost uint32
	// Parallelism is the number of lanes
	Parallelism uint32
}

// DefaultParams returns the default cost parameters (m=19456, t=2, p=1).
func DefaultParams() Params {
	return Params{
		MemoryCost:  DefaultMemoryCost,
		TimeCost:    DefaultTimeCost,
		Parallelism: DefaultParallelism,
	}
}

// String renders the parameters as they appear in an encoded record.
func (p Params) String() string {
	return fmt.Sprintf("m=%d,t=%d,p=%d", p.MemoryCost, p.TimeCost, p.Parallelism)
}

// Validate checks every parameter against the Argon2 domain. The returned
// error is an errsx.Map keyed by memoryCost, timeCost and parallelism.
func (p Params) Validate() error {
	var errs errsx.Map
	if err := validateTimeCost(p.TimeCost); err != nil {
		errs.Set("timeCost", err)
	}
	if err := validateParallelism(p.Parallelism); err != nil {
		errs.Set("parallelism", err)
	}
	if err := validateMemoryCost(p.MemoryCost); err != nil {
		errs.Set("memoryCost", err)
	} else if err := validateMemoryForLanes(p.MemoryCost, p.Parallelism); err != nil {
		errs.Set("memoryCost", err)
	}
	return errs.AsError()
}

var (
	errNilSecret   = errors.New("secret must not be nil")
	errWipedSecret = errors.New("secret has been wiped")
)

func validateMemoryCost(m uint32) error {
	if m < MinMemoryPerLane {
		return fmt.Errorf("memory cost must be at least %d KiB, got %d", MinMemoryPerLane, m)
	}
	if m > MaxMemoryCost {
		return fmt.Errorf("memory cost must be at most %d KiB, got %d", MaxMemoryCost, m)
	}
	return nil
}

// validateMemoryForLanes checks the cross-field rule m >= 8*p.
func validateMemoryForLanes(m, p uint32) error {
	if uint64(m) < uint64(MinMemoryPerLane)*uint64(p) {
		return fmt.Errorf("memory cost must be at least %d KiB for parallelism %d, got %d",
			uint64(MinMemoryPerLane)*uint64(p), p, m)
	}
	return nil
}

func validateTimeCost(t uint32) error {
	if t < MinTimeCost {
		return fmt.Errorf("time cost must be at least %d, got %d", MinTimeCost, t)
	}
	return nil
}

func validateParallelism(p uint32) error {
	if p < MinParallelism || p > MaxParallelism {
		return fmt.Errorf("parallelism must be between %d and %d, got %d", MinParallelism, MaxParallelism, p)
	}
	return nil
}

func validateHashLength(n uint32) error {
	if n < MinHashLength {
		return fmt.Errorf("hash length must be at least %d bytes, got %d", MinHashLength, n)
	}
	return nil
}

func validateSaltLength(n uint32) error {
	if n < MinSaltLength {
		return fmt.Errorf("salt length must be at least %d bytes, got %d", MinSaltLength, n)
	}
	return nil
}

func validateAlgorithm(a Algorithm) error {
	if !a.Valid() {
		return fmt.Errorf("unknown algorithm %d", uint8(a))
	}
	return nil
}

func validateVersion(v Version) error {
	if !v.Valid() {
		return fmt.Errorf("unsupported version %d: must be %d or %d", uint32(v), uint32(Version10), uint32(Version13))
	}
	return nil
}
