package argon2kdf

import (
	"errors"
	"fmt"

	"github.com/hengadev/errsx"
)

var (
	// ErrInvalidConfiguration reports a hasher, config or argument outside the
	// Argon2 domain. Builder errors wrap an errsx.Map keyed by field.
	ErrInvalidConfiguration = errors.New("invalid configuration")

	// ErrInvalidFormat reports an encoded hash that cannot be decoded. It is
	// always delivered through a *FormatError.
	ErrInvalidFormat = errors.New("invalid hash format")

	// ErrDerivationFailed reports a failure of the primitive or of the
	// randomness source.
	ErrDerivationFailed = errors.New("key derivation failed")

	// ErrSecretUnavailable reports that a SecretSource could not supply a
	// secret.
	ErrSecretUnavailable = errors.New("secret unavailable")
)

// FormatError describes why an encoded hash was rejected. Field names the
// part of the string that failed: prefix, fields, algorithm, version, params,
// memoryCost, timeCost, parallelism, salt or hash.
type FormatError struct {
	Field string
	Err   error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrInvalidFormat, e.Field, e.Err)
}

func (e *FormatError) Unwrap() []error {
	return []error{ErrInvalidFormat, e.Err}
}

func newFormatError(field string, format string, args ...any) error {
	return &FormatError{Field: field, Err: fmt.Errorf(format, args...)}
}

// newConfigurationError wraps field errors into an ErrInvalidConfiguration
// error. It returns nil when errs is empty.
func newConfigurationError(errs errsx.Map) error {
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfiguration, errs.AsError())
}

func newFieldConfigurationError(field string, err error) error {
	var errs errsx.Map
	errs.Set(field, err)
	return newConfigurationError(errs)
}

// newDerivationError tags err with the operation. Errors that do not already
// wrap ErrDerivationFailed (from a custom Deriver) are wrapped with it.
func newDerivationError(op Operation, err error) error {
	if errors.Is(err, ErrDerivationFailed) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%w: %s: %w", ErrDerivationFailed, op, err)
}

// IsConfigurationError returns true if the error represents a configuration problem.
func IsConfigurationError(err error) bool {
	return errors.Is(err, ErrInvalidConfiguration)
}

// IsFormatError returns true if the error comes from decoding a malformed hash string.
func IsFormatError(err error) bool {
	return errors.Is(err, ErrInvalidFormat)
}

// IsDerivationError returns true if the primitive or the randomness source failed.
func IsDerivationError(err error) bool {
	return errors.Is(err, ErrDerivationFailed)
}

// IsSecretUnavailableError returns true if a secret source could not supply a secret.
func IsSecretUnavailableError(err error) bool {
	return errors.Is(err, ErrSecretUnavailable)
}
