package argon2kdf

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/hengadev/argon2kdf/internal/security"
)

// SecretSource loads the secret (pepper) registered under an alias.
//
// Implementations:
//   - EnvSecretSource: environment variables
//   - providers/secrets/hashicorp.KVStore: HashiCorp Vault KV v2
//   - providers/secrets/aws.SecretsManagerStore: AWS Secrets Manager
//
// Errors wrap ErrSecretUnavailable.
type SecretSource interface {
	LoadSecret(ctx context.Context, alias string) (*Secret, error)
}

// EnvSecretSource reads base64-encoded secrets from environment variables
// named Prefix followed by the upper-cased alias, with every character
// outside [A-Z0-9] replaced by '_'.
type EnvSecretSource struct {
	Prefix string
	lookup func(string) (string, bool)
}

// NewEnvSecretSource returns a source reading ARGON2KDF_SECRET_<ALIAS>.
func NewEnvSecretSource() *EnvSecretSource {
	return &EnvSecretSource{Prefix: EnvSecretPrefix}
}

// VariableName returns the environment variable holding the secret for alias.
func (s *EnvSecretSource) VariableName(alias string) string {
	var b strings.Builder
	b.WriteString(s.Prefix)
	for _, r := range strings.ToUpper(alias) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

func (s *EnvSecretSource) LoadSecret(ctx context.Context, alias string) (*Secret, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSecretUnavailable, err)
	}
	if strings.TrimSpace(alias) == "" {
		return nil, fmt.Errorf("%w: alias cannot be empty", ErrInvalidConfiguration)
	}

	lookup := s.lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}

	name := s.VariableName(alias)
	value, ok := lookup(name)
	if !ok || value == "" {
		return nil, fmt.Errorf("%w: %s is not set", ErrSecretUnavailable, name)
	}
	return DecodeSecret(value)
}

// DecodeSecret decodes a base64 (standard alphabet, padded) secret as stored
// by the secret providers. Empty and all-zero secrets are rejected.
func DecodeSecret(encoded string) (*Secret, error) {
	b, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode secret: %w", ErrSecretUnavailable, err)
	}
	if len(b) == 0 {
		return nil, fmt.Errorf("%w: secret is empty", ErrSecretUnavailable)
	}
	if security.IsZero(b) {
		return nil, fmt.Errorf("%w: secret is all zeros", ErrSecretUnavailable)
	}
	return NewSecret(b), nil
}

// EncodeSecret returns the storage form of a secret value, the inverse of
// DecodeSecret.
func EncodeSecret(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}
