package argon2kdf

import "github.com/hengadev/argon2kdf/internal/argon2"

// Default hasher settings
const (
	DefaultAlgorithm   = Argon2id
	DefaultVersion     = CurrentVersion
	DefaultMemoryCost  = 19456 // KiB
	DefaultTimeCost    = 2
	DefaultParallelism = 1
	DefaultHashLength  = 32
	DefaultSaltLength  = 16

	// DefaultMaxMemoryCost is the memory ceiling of DefaultDeriver, 1 GiB.
	DefaultMaxMemoryCost = 1 << 20 // KiB
)

// Domain limits of the Argon2 primitive
const (
	// MinMemoryPerLane is the minimum memory cost, in KiB, per unit of
	// parallelism.
	MinMemoryPerLane = argon2.MinMemoryPer

	MinTimeCost    = argon2.MinTime
	MinParallelism = argon2.MinLanes
	MaxParallelism = argon2.MaxLanes
	MinSaltLength  = argon2.MinSaltLen
	MinHashLength  = argon2.MinOutLen
)

// MaxMemoryCost is the largest memory cost in KiB accepted on this platform.
var MaxMemoryCost = argon2.MaxMemory

// Environment variable names
const (
	// EnvAlgorithm selects the variant: argon2d, argon2i or argon2id.
	EnvAlgorithm = "ARGON2KDF_ALGORITHM"

	// EnvVersion selects the Argon2 version as a decimal number (16 or 19).
	EnvVersion = "ARGON2KDF_VERSION"

	// EnvMemoryCost is the memory cost in KiB.
	EnvMemoryCost = "ARGON2KDF_MEMORY_COST"

	// EnvTimeCost is the number of passes over memory.
	EnvTimeCost = "ARGON2KDF_TIME_COST"

	// EnvParallelism is the number of lanes.
	EnvParallelism = "ARGON2KDF_PARALLELISM"

	// EnvHashLength is the derived key length in bytes.
	EnvHashLength = "ARGON2KDF_HASH_LENGTH"

	// EnvSaltLength is the random salt length in bytes.
	EnvSaltLength = "ARGON2KDF_SALT_LENGTH"

	// EnvSecretPrefix prefixes the variables EnvSecretSource reads peppers
	// from. Alias "user-service" maps to ARGON2KDF_SECRET_USER_SERVICE.
	EnvSecretPrefix = "ARGON2KDF_SECRET_"
)

// Storage path templates for secret providers
const (
	// AWSSecretPathTemplate is the secret name used in AWS Secrets Manager.
	// The %s placeholder is replaced with the secret alias.
	// Example: "argon2kdf/user-service/pepper"
	AWSSecretPathTemplate = "argon2kdf/%s/pepper"

	// VaultSecretPathTemplate is the path used in HashiCorp Vault KV v2.
	// The "/data/" segment is the KV v2 API convention.
	// Example: "secret/data/argon2kdf/user-service/pepper"
	VaultSecretPathTemplate = "secret/data/argon2kdf/%s/pepper"
)
