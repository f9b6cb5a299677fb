package hashicorp

import (
	"context"
	"fmt"

	"github.com/hashicorp/vault/api"

	"github.com/hengadev/argon2kdf"
)

// logicalReader is the part of *api.Logical the store uses (allows mocking).
type logicalReader interface {
	ReadWithContext(ctx context.Context, path string) (*api.Secret, error)
}

// KVStore implements argon2kdf.SecretSource using the HashiCorp Vault KV v2
// engine. It only reads: secrets are provisioned out of band.
type KVStore struct {
	logical logicalReader
}

var _ argon2kdf.SecretSource = (*KVStore)(nil)

// NewKVStore creates a KVStore configured from the environment (VAULT_ADDR,
// VAULT_TOKEN or AppRole credentials, VAULT_NAMESPACE).
//
// The KV v2 engine must be enabled at "secret/":
//
//	vault secrets enable -path=secret kv-v2
func NewKVStore() (*KVStore, error) {
	client, err := newVaultClient()
	if err != nil {
		return nil, err
	}
	return NewKVStoreWithClient(client), nil
}

// NewKVStoreWithClient creates a KVStore on an existing Vault client.
func NewKVStoreWithClient(client *api.Client) *KVStore {
	return &KVStore{logical: client.Logical()}
}

// GetStoragePath returns the Vault KV v2 path for a given alias.
//
// Path format: "secret/data/argon2kdf/{alias}/pepper"
func (k *KVStore) GetStoragePath(alias string) string {
	return fmt.Sprintf(argon2kdf.VaultSecretPathTemplate, alias)
}

// LoadSecret reads the secret stored for alias. The KV v2 entry must hold a
// "value" key with the base64 encoding of the secret bytes:
//
//	vault kv put secret/argon2kdf/my-service/pepper value="$(head -c 32 /dev/urandom | base64)"
func (k *KVStore) LoadSecret(ctx context.Context, alias string) (*argon2kdf.Secret, error) {
	path := k.GetStoragePath(alias)

	secret, err := k.logical.ReadWithContext(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read secret from Vault KV: %w",
			argon2kdf.ErrSecretUnavailable, err)
	}

	value, err := kvValue(secret)
	if err != nil {
		return nil, fmt.Errorf("%w: %w for alias: %s", argon2kdf.ErrSecretUnavailable, err, alias)
	}
	return argon2kdf.DecodeSecret(value)
}

// SecretExists reports whether a secret is stored for alias. Returns an
// error only for read failures.
func (k *KVStore) SecretExists(ctx context.Context, alias string) (bool, error) {
	secret, err := k.logical.ReadWithContext(ctx, k.GetStoragePath(alias))
	if err != nil {
		return false, fmt.Errorf("%w: failed to check if secret exists: %w",
			argon2kdf.ErrSecretUnavailable, err)
	}
	_, err = kvValue(secret)
	return err == nil, nil
}

// kvValue extracts data.value from a KV v2 read. Vault returns a nil secret
// for missing paths.
func kvValue(secret *api.Secret) (string, error) {
	if secret == nil || secret.Data == nil {
		return "", errSecretNotFound
	}

	// KV v2 wraps the actual data in a "data" key
	data, ok := secret.Data["data"].(map[string]any)
	if !ok {
		return "", errInvalidKVFormat
	}

	value, ok := data["value"].(string)
	if !ok {
		return "", errMissingValue
	}
	return value, nil
}
