package hashicorp

import (
	"context"
	"errors"
	"testing"

	"github.com/hashicorp/vault/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/hengadev/argon2kdf"
)

type mockLogical struct {
	mock.Mock
}

func (m *mockLogical) ReadWithContext(ctx context.Context, path string) (*api.Secret, error) {
	args := m.Called(ctx, path)
	secret, _ := args.Get(0).(*api.Secret)
	return secret, args.Error(1)
}

const testPath = "secret/data/argon2kdf/user-service/pepper"

func kvSecret(value any) *api.Secret {
	return &api.Secret{Data: map[string]any{
		"data": map[string]any{"value": value},
	}}
}

func TestGetStoragePath(t *testing.T) {
	kv := &KVStore{}
	assert.Equal(t, testPath, kv.GetStoragePath("user-service"))
}

func TestLoadSecret(t *testing.T) {
	pepper := []byte("0123456789abcdef0123456789abcdef")

	tests := []struct {
		name    string
		secret  *api.Secret
		err     error
		wantErr error
		wantLen int
	}{
		{
			name:    "stored secret",
			secret:  kvSecret(argon2kdf.EncodeSecret(pepper)),
			wantLen: len(pepper),
		},
		{
			name:    "read failure",
			err:     errors.New("connection refused"),
			wantErr: argon2kdf.ErrSecretUnavailable,
		},
		{
			name:    "missing path",
			wantErr: errSecretNotFound,
		},
		{
			name:    "kv v1 layout",
			secret:  &api.Secret{Data: map[string]any{"value": "AAAA"}},
			wantErr: errInvalidKVFormat,
		},
		{
			name:    "non-string value",
			secret:  kvSecret(42),
			wantErr: errMissingValue,
		},
		{
			name:    "invalid base64",
			secret:  kvSecret("not base64!"),
			wantErr: argon2kdf.ErrSecretUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logical := &mockLogical{}
			logical.On("ReadWithContext", mock.Anything, testPath).Return(tt.secret, tt.err).Once()
			kv := &KVStore{logical: logical}

			secret, err := kv.LoadSecret(context.Background(), "user-service")
			logical.AssertExpectations(t)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, argon2kdf.ErrSecretUnavailable)
				assert.Nil(t, secret)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLen, secret.Len())
		})
	}
}

func TestSecretExists(t *testing.T) {
	tests := []struct {
		name    string
		secret  *api.Secret
		err     error
		want    bool
		wantErr bool
	}{
		{name: "exists", secret: kvSecret("AAAA"), want: true},
		{name: "missing", want: false},
		{name: "malformed", secret: &api.Secret{Data: map[string]any{}}, want: false},
		{name: "read failure", err: errors.New("forbidden"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logical := &mockLogical{}
			logical.On("ReadWithContext", mock.Anything, testPath).Return(tt.secret, tt.err).Once()
			kv := &KVStore{logical: logical}

			exists, err := kv.SecretExists(context.Background(), "user-service")
			if tt.wantErr {
				assert.ErrorIs(t, err, argon2kdf.ErrSecretUnavailable)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, exists)
		})
	}
}

func TestNewKVStore_RequiresAuthentication(t *testing.T) {
	t.Setenv("VAULT_ADDR", "http://127.0.0.1:8200")
	t.Setenv("VAULT_TOKEN", "")
	t.Setenv("VAULT_ROLE_ID", "")
	t.Setenv("VAULT_SECRET_ID", "")

	_, err := NewKVStore()
	assert.ErrorIs(t, err, argon2kdf.ErrInvalidConfiguration)
}

func TestNewKVStore_WithToken(t *testing.T) {
	t.Setenv("VAULT_ADDR", "http://127.0.0.1:8200")
	t.Setenv("VAULT_TOKEN", "test-token")

	kv, err := NewKVStore()
	require.NoError(t, err)
	assert.NotNil(t, kv.logical)
}
