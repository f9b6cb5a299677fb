package hashicorp

import "errors"

var (
	errSecretNotFound  = errors.New("secret not found")
	errInvalidKVFormat = errors.New("invalid KV v2 secret format")
	errMissingValue    = errors.New("secret value not found or not a string")
)
