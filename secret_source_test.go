package argon2kdf

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvSecretSource_VariableName(t *testing.T) {
	s := NewEnvSecretSource()
	assert.Equal(t, "ARGON2KDF_SECRET_USER_SERVICE", s.VariableName("user-service"))
	assert.Equal(t, "ARGON2KDF_SECRET_API_V2", s.VariableName("api.v2"))
	assert.Equal(t, "APP_BILLING", (&EnvSecretSource{Prefix: "APP_"}).VariableName("billing"))
}

func TestEnvSecretSource_LoadSecret(t *testing.T) {
	pepper := []byte("0123456789abcdef")
	t.Setenv("ARGON2KDF_SECRET_USER_SERVICE", EncodeSecret(pepper))

	secret, err := NewEnvSecretSource().LoadSecret(context.Background(), "user-service")
	require.NoError(t, err)
	assert.Equal(t, len(pepper), secret.Len())

	b, ok := secret.copyBytes()
	require.True(t, ok)
	assert.Equal(t, pepper, b)
}

func TestEnvSecretSource_Errors(t *testing.T) {
	ctx := context.Background()
	s := &EnvSecretSource{
		Prefix: "TEST_",
		lookup: func(key string) (string, bool) {
			switch key {
			case "TEST_INVALID":
				return "%%%", true
			case "TEST_EMPTY":
				return "", true
			case "TEST_BLANK":
				return "   ", true
			}
			return "", false
		},
	}

	for _, alias := range []string{"missing", "invalid", "empty", "blank"} {
		t.Run(alias, func(t *testing.T) {
			secret, err := s.LoadSecret(ctx, alias)
			assert.Nil(t, secret)
			assert.True(t, IsSecretUnavailableError(err))
		})
	}

	_, err := s.LoadSecret(ctx, " ")
	assert.True(t, IsConfigurationError(err))

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = s.LoadSecret(cancelled, "invalid")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDecodeSecret(t *testing.T) {
	secret, err := DecodeSecret(" " + EncodeSecret([]byte("pepper")) + "\n")
	require.NoError(t, err)
	assert.Equal(t, 6, secret.Len())

	_, err = DecodeSecret("")
	assert.ErrorIs(t, err, ErrSecretUnavailable)

	_, err = DecodeSecret("cGVwcGU") // missing padding
	assert.ErrorIs(t, err, ErrSecretUnavailable)

	secret, err = DecodeSecret(EncodeSecret(make([]byte, 32)))
	assert.Nil(t, secret)
	assert.ErrorIs(t, err, ErrSecretUnavailable)
}

func TestSecretSourceEndToEnd(t *testing.T) {
	t.Setenv("ARGON2KDF_SECRET_BILLING", EncodeSecret([]byte("billing pepper")))
	src := SecretSource(NewEnvSecretSource())
	ctx := context.Background()

	secret, err := src.LoadSecret(ctx, "billing")
	require.NoError(t, err)
	hash, err := fastHasher().WithSecret(secret).Hash([]byte("password"))
	require.NoError(t, err)

	again, err := src.LoadSecret(ctx, "billing")
	require.NoError(t, err)
	ok, err := hash.VerifyWithSecret([]byte("password"), again)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, again.Wiped())
	assert.False(t, secret.Wiped())
}
