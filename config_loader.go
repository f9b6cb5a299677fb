package argon2kdf

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// LoadConfigFile loads configuration from a YAML file. Keys missing from the
// file keep their DefaultConfig value.
//
// Example file:
//
//	algorithm: argon2id
//	version: 19
//	memory_cost: 65536
//	time_cost: 3
//	parallelism: 4
//	hash_length: 32
//	salt_length: 16
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: failed to parse config file %s: %w", ErrInvalidConfiguration, path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// LoadConfigFromEnvironment loads configuration from environment variables.
//
// All variables are optional; unset or empty ones keep their DefaultConfig
// value:
//   - ARGON2KDF_ALGORITHM: argon2d, argon2i or argon2id
//   - ARGON2KDF_VERSION: 16 or 19
//   - ARGON2KDF_MEMORY_COST: memory cost in KiB
//   - ARGON2KDF_TIME_COST: number of passes
//   - ARGON2KDF_PARALLELISM: number of lanes
//   - ARGON2KDF_HASH_LENGTH: key length in bytes
//   - ARGON2KDF_SALT_LENGTH: salt length in bytes
//
// Example usage (12-factor app):
//
//	// export ARGON2KDF_MEMORY_COST=65536
//	// export ARGON2KDF_PARALLELISM=4
//	cfg, err := argon2kdf.LoadConfigFromEnvironment()
//	if err != nil {
//	    log.Fatal(err)
//	}
func LoadConfigFromEnvironment() (Config, error) {
	return loadConfig(os.LookupEnv)
}

// LoadConfigFromEnvFile loads configuration from a .env file using the same
// variable names as LoadConfigFromEnvironment. The process environment is
// neither read nor modified.
func LoadConfigFromEnvFile(path string) (Config, error) {
	env, err := godotenv.Read(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read env file: %w", err)
	}
	return loadConfig(func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	})
}

func loadConfig(lookup func(string) (string, bool)) (Config, error) {
	cfg := DefaultConfig()

	if v, ok := lookup(EnvAlgorithm); ok && v != "" {
		cfg.Algorithm = v
	}

	for _, field := range []struct {
		env string
		dst *uint32
	}{
		{EnvVersion, &cfg.Version},
		{EnvMemoryCost, &cfg.MemoryCost},
		{EnvTimeCost, &cfg.TimeCost},
		{EnvParallelism, &cfg.Parallelism},
		{EnvHashLength, &cfg.HashLength},
		{EnvSaltLength, &cfg.SaltLength},
	} {
		v, ok := lookup(field.env)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return Config{}, fmt.Errorf("%w: %s must be an unsigned 32-bit integer, got %q",
				ErrInvalidConfiguration, field.env, v)
		}
		*field.dst = uint32(n)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}
