// Package argon2kdf hashes passwords and derives keys with the Argon2 family
// of memory-hard functions (Argon2d, Argon2i and Argon2id).
//
// A Hasher turns a password into a self-describing Hash record. The record
// encodes to the PHC-style string
//
//	$argon2id$v=19$m=19456,t=2,p=1$<base64 salt>$<base64 key>
//
// which can be stored and later decoded with ParseHash to verify a candidate
// password. Verification re-derives the key with the stored parameters and
// compares it in constant time.
//
// # Quick Start
//
//	hash, err := argon2kdf.DefaultHasher().Hash([]byte("password"))
//	if err != nil {
//	    // handle error
//	}
//	encoded := hash.String()
//
//	stored, err := argon2kdf.ParseHash(encoded)
//	if err != nil {
//	    // handle error
//	}
//	ok, err := stored.Verify([]byte("password"))
//
// # Secrets
//
// A Secret (often called a pepper) is mixed into the derivation as the Argon2
// secret input K. Records hashed with a secret must be verified with
// VerifyWithSecret; the secret itself is never encoded in the record.
//
//	hash, err := argon2kdf.DefaultHasher().
//	    WithSecret(argon2kdf.NewSecret(pepper)).
//	    Hash(password)
//
//	ok, err := hash.VerifyWithSecret(password, argon2kdf.NewSecret(pepperCopy))
//
// Secrets can be loaded from the environment (EnvSecretSource), HashiCorp
// Vault (providers/secrets/hashicorp) or AWS Secrets Manager
// (providers/secrets/aws).
//
// # Configuration
//
// Builder methods validate their argument immediately. Failures are collected
// per field and reported by Validate and Hash as an ErrInvalidConfiguration
// error wrapping an errsx.Map:
//
//	h := argon2kdf.NewHasher().WithMemoryCost(1).WithTimeCost(0)
//	err := h.Validate() // memoryCost and timeCost errors
//
// Configuration can also be loaded from YAML files, environment variables or
// .env files; see LoadConfigFile, LoadConfigFromEnvironment and
// LoadConfigFromEnvFile.
//
// # Observability
//
// NewObservedDeriver wraps the primitive with observability hooks (structured
// logging through log/slog, metrics). Passwords, secrets, salts and keys are
// never reported.
package argon2kdf
