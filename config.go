package argon2kdf

import (
	"fmt"

	"github.com/hengadev/errsx"
)

// Config holds hasher settings in a form that can be loaded from YAML files,
// environment variables or .env files.
//
// Example usage:
//
//	cfg, err := argon2kdf.LoadConfigFile("argon2kdf.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	hasher, err := cfg.Hasher()
//	if err != nil {
//	    log.Fatal(err)
//	}
type Config struct {
	// Algorithm is the wire tag of the variant: argon2d, argon2i or argon2id.
	Algorithm string `yaml:"algorithm"`

	// Version is 16 (0x10) or 19 (0x13).
	Version uint32 `yaml:"version"`

	// MemoryCost in KiB.
	MemoryCost uint32 `yaml:"memory_cost"`

	TimeCost    uint32 `yaml:"time_cost"`
	Parallelism uint32 `yaml:"parallelism"`

	// HashLength is the derived key length in bytes.
	HashLength uint32 `yaml:"hash_length"`

	// SaltLength is the random salt length in bytes.
	SaltLength uint32 `yaml:"salt_length"`
}

// DefaultConfig returns the configuration matching NewHasher.
func DefaultConfig() Config {
	return Config{
		Algorithm:   DefaultAlgorithm.String(),
		Version:     uint32(DefaultVersion),
		MemoryCost:  DefaultMemoryCost,
		TimeCost:    DefaultTimeCost,
		Parallelism: DefaultParallelism,
		HashLength:  DefaultHashLength,
		SaltLength:  DefaultSaltLength,
	}
}

// Validate checks every field. The error is an ErrInvalidConfiguration
// wrapping an errsx.Map keyed by algorithm, version, memoryCost, timeCost,
// parallelism, hashLength and saltLength.
func (c Config) Validate() error {
	var errs errsx.Map
	if _, err := ParseAlgorithm(c.Algorithm); err != nil {
		errs.Set("algorithm", err)
	}
	if err := validateVersion(Version(c.Version)); err != nil {
		errs.Set("version", err)
	}
	if err := validateTimeCost(c.TimeCost); err != nil {
		errs.Set("timeCost", err)
	}
	if err := validateParallelism(c.Parallelism); err != nil {
		errs.Set("parallelism", err)
	}
	if err := validateMemoryCost(c.MemoryCost); err != nil {
		errs.Set("memoryCost", err)
	} else if err := validateMemoryForLanes(c.MemoryCost, c.Parallelism); err != nil {
		errs.Set("memoryCost", err)
	}
	if err := validateHashLength(c.HashLength); err != nil {
		errs.Set("hashLength", err)
	}
	if err := validateSaltLength(c.SaltLength); err != nil {
		errs.Set("saltLength", err)
	}
	return newConfigurationError(errs)
}

// Hasher builds a Hasher from the configuration.
func (c Config) Hasher() (Hasher, error) {
	if err := c.Validate(); err != nil {
		return Hasher{}, err
	}
	alg, _ := ParseAlgorithm(c.Algorithm)
	h := NewHasher().
		WithAlgorithm(alg).
		WithVersion(Version(c.Version)).
		WithMemoryCost(c.MemoryCost).
		WithTimeCost(c.TimeCost).
		WithParallelism(c.Parallelism).
		WithHashLength(c.HashLength).
		WithSaltLength(c.SaltLength)
	return h, h.Validate()
}

// ConfigFromHasher captures the settings of h. Custom salts, secrets and
// derivers are not part of a Config.
func ConfigFromHasher(h Hasher) Config {
	p := h.Params()
	return Config{
		Algorithm:   h.Algorithm().String(),
		Version:     uint32(h.Version()),
		MemoryCost:  p.MemoryCost,
		TimeCost:    p.TimeCost,
		Parallelism: p.Parallelism,
		HashLength:  h.HashLength(),
		SaltLength:  h.SaltLength(),
	}
}

func (c Config) String() string {
	return fmt.Sprintf("%s v=%d m=%d,t=%d,p=%d hash=%d salt=%d",
		c.Algorithm, c.Version, c.MemoryCost, c.TimeCost, c.Parallelism, c.HashLength, c.SaltLength)
}
