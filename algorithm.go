package argon2kdf

import (
	"fmt"
	"strconv"
)

// Algorithm identifies an Argon2 variant. The numeric values are the type
// identifiers the primitive mixes into its initial hash.
type Algorithm uint8

const (
	// Argon2d uses data-dependent memory access. Fastest, but exposed to
	// side-channel attacks.
	Argon2d Algorithm = 0
	// Argon2i uses data-independent memory access.
	Argon2i Algorithm = 1
	// Argon2id runs Argon2i for the first half of the first pass and Argon2d
	// afterwards. Recommended for password hashing.
	Argon2id Algorithm = 2
)

var algorithmNames = [...]string{
	Argon2d:  "argon2d",
	Argon2i:  "argon2i",
	Argon2id: "argon2id",
}

// Valid reports whether a is one of the three Argon2 variants.
func (a Algorithm) Valid() bool {
	return int(a) < len(algorithmNames)
}

// String returns the wire tag of the algorithm.
func (a Algorithm) String() string {
	if !a.Valid() {
		return "Algorithm(" + strconv.Itoa(int(a)) + ")"
	}
	return algorithmNames[a]
}

// ParseAlgorithm parses a wire tag. Matching is exact: "Argon2id" is rejected.
func ParseAlgorithm(s string) (Algorithm, error) {
	for i, name := range algorithmNames {
		if s == name {
			return Algorithm(i), nil
		}
	}
	return 0, fmt.Errorf("unknown algorithm %q", s)
}

func (a Algorithm) MarshalText() ([]byte, error) {
	if !a.Valid() {
		return nil, fmt.Errorf("unknown algorithm %d", uint8(a))
	}
	return []byte(a.String()), nil
}

func (a *Algorithm) UnmarshalText(text []byte) error {
	alg, err := ParseAlgorithm(string(text))
	if err != nil {
		return err
	}
	*a = alg
	return nil
}

// Version is the Argon2 version number.
type Version uint32

const (
	// Version10 is the legacy 0x10 version, kept for records created by
	// older implementations.
	Version10 Version = 0x10
	// Version13 is version 0x13 (19), the one RFC 9106 standardizes.
	Version13 Version = 0x13

	CurrentVersion = Version13
)

// Valid reports whether v is a version the primitive implements.
func (v Version) Valid() bool {
	return v == Version10 || v == Version13
}

// String returns the decimal form used in encoded records.
func (v Version) String() string {
	return strconv.FormatUint(uint64(v), 10)
}
