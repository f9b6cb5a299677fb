// Package hashicorp loads argon2kdf secrets (peppers) from the HashiCorp
// Vault KV v2 engine.
//
// # Basic Usage
//
//	import (
//	    "github.com/hengadev/argon2kdf"
//	    vaultkv "github.com/hengadev/argon2kdf/providers/secrets/hashicorp"
//	)
//
//	kv, err := vaultkv.NewKVStore()
//	if err != nil {
//	    // handle error
//	}
//
//	secret, err := kv.LoadSecret(ctx, "user-service")
//	if err != nil {
//	    // handle error
//	}
//	hash, err := argon2kdf.DefaultHasher().WithSecret(secret).Hash(password)
//
// # Configuration
//
//	export VAULT_ADDR="https://vault.example.com:8200"
//	export VAULT_TOKEN="hvs.your-token-here"      # or VAULT_ROLE_ID + VAULT_SECRET_ID
//	export VAULT_NAMESPACE="my-namespace"         # optional
//
// # Secret Storage
//
// Secrets are read from
//
//	secret/data/argon2kdf/{alias}/pepper
//
// and must carry a "value" key with the base64 encoding of the secret bytes.
// The store never writes. A read-only policy is enough:
//
//	path "secret/data/argon2kdf/*" {
//	    capabilities = ["read"]
//	}
//
// # Error Handling
//
// Read failures and missing or malformed entries wrap
// argon2kdf.ErrSecretUnavailable. Missing Vault configuration wraps
// argon2kdf.ErrInvalidConfiguration.
package hashicorp
