package argon2kdf

import (
	"bytes"
	"errors"
	"testing"
	"testing/iotest"

	"github.com/hengadev/errsx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fastHasher keeps derivations cheap in tests.
func fastHasher() Hasher {
	return NewHasher().WithMemoryCost(64).WithTimeCost(1).WithParallelism(1)
}

func fieldErrors(t *testing.T, err error) errsx.Map {
	t.Helper()
	require.Error(t, err)
	assert.True(t, IsConfigurationError(err))

	var errs errsx.Map
	require.True(t, errors.As(err, &errs), "expected error to wrap errsx.Map")
	return errs
}

func TestNewHasher_Defaults(t *testing.T) {
	h := NewHasher()

	assert.Equal(t, Argon2id, h.Algorithm())
	assert.Equal(t, Version13, h.Version())
	assert.Equal(t, Params{MemoryCost: 19456, TimeCost: 2, Parallelism: 1}, h.Params())
	assert.Equal(t, uint32(32), h.HashLength())
	assert.Equal(t, uint32(16), h.SaltLength())
	assert.NoError(t, h.Validate())
	assert.Equal(t, NewHasher(), DefaultHasher())
}

func TestHasher_Validate(t *testing.T) {
	tests := []struct {
		name    string
		hasher  Hasher
		errKeys []string
	}{
		{"defaults", NewHasher(), nil},
		{"unknown algorithm", NewHasher().WithAlgorithm(Algorithm(3)), []string{"algorithm"}},
		{"unknown version", NewHasher().WithVersion(Version(0x12)), []string{"version"}},
		{"memory below minimum", NewHasher().WithMemoryCost(7), []string{"memoryCost"}},
		{"zero time cost", NewHasher().WithTimeCost(0), []string{"timeCost"}},
		{"zero parallelism", NewHasher().WithParallelism(0), []string{"parallelism"}},
		{"parallelism above maximum", NewHasher().WithParallelism(1 << 24), []string{"parallelism"}},
		{"hash too short", NewHasher().WithHashLength(3), []string{"hashLength"}},
		{"salt length too short", NewHasher().WithSaltLength(7), []string{"saltLength"}},
		{"custom salt too short", NewHasher().WithCustomSalt([]byte("short")), []string{"salt"}},
		{"nil secret", NewHasher().WithSecret(nil), []string{"secret"}},
		{"memory below 8 per lane", NewHasher().WithMemoryCost(64).WithParallelism(9), []string{"memoryCost"}},
		{
			"multiple errors",
			NewHasher().WithMemoryCost(1).WithTimeCost(0).WithHashLength(1),
			[]string{"memoryCost", "timeCost", "hashLength"},
		},
		{"later valid value clears error", NewHasher().WithTimeCost(0).WithTimeCost(3), nil},
		{"boundary values", NewHasher().WithMemoryCost(8).WithTimeCost(1).WithHashLength(4).WithSaltLength(8), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.hasher.Validate()
			if tt.errKeys == nil {
				assert.NoError(t, err)
				return
			}

			errs := fieldErrors(t, err)
			assert.Equal(t, len(tt.errKeys), len(errs))
			for _, key := range tt.errKeys {
				if _, ok := errs[key]; !ok {
					t.Errorf("expected key '%s' in errsx.Map", key)
				}
			}
		})
	}
}

func TestHasher_ValidateZeroValue(t *testing.T) {
	var h Hasher

	errs := fieldErrors(t, h.Validate())
	assert.Len(t, errs, 6)
	for _, key := range []string{"version", "memoryCost", "timeCost", "parallelism", "hashLength", "saltLength"} {
		assert.Contains(t, errs, key)
	}

	called := false
	d := DeriverFunc(func(req DeriveRequest) ([]byte, error) {
		called = true
		return nil, nil
	})
	hash, err := h.WithDeriver(d).Hash([]byte("password"))
	assert.Nil(t, hash)
	assert.True(t, IsConfigurationError(err))
	assert.False(t, IsDerivationError(err))
	assert.False(t, called)

	// a custom salt replaces the generated salt length
	errs = fieldErrors(t, h.WithCustomSalt([]byte("somesalt")).Validate())
	assert.NotContains(t, errs, "saltLength")
}

func TestHasher_WithDoesNotMutateReceiver(t *testing.T) {
	base := fastHasher()
	bad := base.WithTimeCost(0)

	assert.NoError(t, base.Validate())
	assert.Error(t, bad.Validate())
	assert.Equal(t, uint32(1), base.Params().TimeCost)

	// errors recorded on one branch never leak into a sibling
	other := bad.WithHashLength(2)
	assert.Len(t, fieldErrors(t, bad.Validate()), 1)
	assert.Len(t, fieldErrors(t, other.Validate()), 2)
}

func TestHasher_HashRejectsInvalidConfiguration(t *testing.T) {
	called := false
	d := DeriverFunc(func(req DeriveRequest) ([]byte, error) {
		called = true
		return nil, nil
	})

	hash, err := NewHasher().WithTimeCost(0).WithDeriver(d).Hash([]byte("password"))
	assert.Nil(t, hash)
	assert.True(t, IsConfigurationError(err))
	assert.False(t, called)
}

func TestHasher_Hash(t *testing.T) {
	password := []byte("password")
	hash, err := fastHasher().Hash(password)
	require.NoError(t, err)

	assert.Equal(t, Argon2id, hash.Algorithm())
	assert.Equal(t, Version13, hash.Version())
	assert.Equal(t, Params{MemoryCost: 64, TimeCost: 1, Parallelism: 1}, hash.Params())
	assert.Len(t, hash.Salt(), 16)
	assert.Len(t, hash.Key(), 32)

	ok, err := hash.Verify(password)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestHasher_AllAlgorithmsAndVersions(t *testing.T) {
	for _, alg := range []Algorithm{Argon2d, Argon2i, Argon2id} {
		for _, v := range []Version{Version10, Version13} {
			for _, p := range []uint32{1, 3} {
				t.Run(alg.String()+"/v="+v.String(), func(t *testing.T) {
					h := fastHasher().WithAlgorithm(alg).WithVersion(v).WithParallelism(p)
					hash, err := h.Hash([]byte("password"))
					require.NoError(t, err)

					parsed, err := ParseHash(hash.String())
					require.NoError(t, err)

					ok, err := parsed.Verify([]byte("password"))
					require.NoError(t, err)
					assert.True(t, ok)

					ok, err = parsed.Verify([]byte("Password"))
					require.NoError(t, err)
					assert.False(t, ok)
				})
			}
		}
	}
}

func TestHasher_CustomSaltIsDeterministic(t *testing.T) {
	salt := []byte("customsalt")
	h := fastHasher().WithCustomSalt(salt)

	first, err := h.Hash([]byte("password"))
	require.NoError(t, err)
	second, err := h.Hash([]byte("password"))
	require.NoError(t, err)

	assert.Equal(t, salt, first.Salt())
	assert.True(t, first.Equal(second))
	assert.Equal(t, first.String(), second.String())
	assert.Equal(t, uint32(len(salt)), h.SaltLength())

	// the hasher keeps its own copy
	salt[0] = 'X'
	third, err := h.Hash([]byte("password"))
	require.NoError(t, err)
	assert.Equal(t, first.String(), third.String())
}

func TestHasher_RandomSaltsDiffer(t *testing.T) {
	h := fastHasher()
	first, err := h.Hash([]byte("password"))
	require.NoError(t, err)
	second, err := h.Hash([]byte("password"))
	require.NoError(t, err)

	assert.NotEqual(t, first.Salt(), second.Salt())
	assert.NotEqual(t, first.Key(), second.Key())
}

func TestHasher_SaltLength(t *testing.T) {
	hash, err := fastHasher().WithSaltLength(24).WithHashLength(64).Hash([]byte("password"))
	require.NoError(t, err)
	assert.Len(t, hash.Salt(), 24)
	assert.Len(t, hash.Key(), 64)
}

func TestHasher_RandomSourceFailure(t *testing.T) {
	hash, err := fastHasher().WithRandom(iotest.ErrReader(errors.New("entropy exhausted"))).Hash([]byte("password"))
	assert.Nil(t, hash)
	assert.True(t, IsDerivationError(err))
	assert.Contains(t, err.Error(), "entropy exhausted")

	// a short read is a failure too
	hash, err = fastHasher().WithRandom(bytes.NewReader(make([]byte, 4))).Hash([]byte("password"))
	assert.Nil(t, hash)
	assert.True(t, IsDerivationError(err))
}

func TestHasher_RandomSource(t *testing.T) {
	src := bytes.NewReader(bytes.Repeat([]byte{0xAB}, 16))
	hash, err := fastHasher().WithRandom(src).Hash([]byte("password"))
	require.NoError(t, err)
	assert.Equal(t, bytes.Repeat([]byte{0xAB}, 16), hash.Salt())
}

func TestHasher_DeriverFailure(t *testing.T) {
	boom := errors.New("boom")
	h := fastHasher().WithDeriver(DeriverFunc(func(req DeriveRequest) ([]byte, error) {
		return nil, boom
	}))

	hash, err := h.Hash([]byte("password"))
	assert.Nil(t, hash)
	assert.ErrorIs(t, err, ErrDerivationFailed)
	assert.ErrorIs(t, err, boom)
}

func TestHasher_DeriverWrongLength(t *testing.T) {
	h := fastHasher().WithDeriver(DeriverFunc(func(req DeriveRequest) ([]byte, error) {
		return make([]byte, req.KeyLength-1), nil
	}))

	_, err := h.Hash([]byte("password"))
	assert.True(t, IsDerivationError(err))
}

func TestHasher_DeriveRequest(t *testing.T) {
	var got DeriveRequest
	h := fastHasher().
		WithAlgorithm(Argon2i).
		WithVersion(Version10).
		WithHashLength(20).
		WithCustomSalt([]byte("12345678")).
		WithDeriver(DeriverFunc(func(req DeriveRequest) ([]byte, error) {
			got = req
			return make([]byte, req.KeyLength), nil
		}))

	_, err := h.Hash([]byte("pw"))
	require.NoError(t, err)

	assert.Equal(t, OperationHash, got.Operation)
	assert.Equal(t, Argon2i, got.Algorithm)
	assert.Equal(t, Version10, got.Version)
	assert.Equal(t, Params{MemoryCost: 64, TimeCost: 1, Parallelism: 1}, got.Params)
	assert.Equal(t, []byte("pw"), got.Password)
	assert.Equal(t, []byte("12345678"), got.Salt)
	assert.Nil(t, got.Secret)
	assert.Equal(t, uint32(20), got.KeyLength)
}

func TestHasher_SecretIsScopedAndWiped(t *testing.T) {
	tests := []struct {
		name    string
		failing bool
	}{
		{"success", false},
		{"primitive failure", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen []byte
			h := fastHasher().
				WithSecret(NewSecret([]byte("pepper"))).
				WithDeriver(DeriverFunc(func(req DeriveRequest) ([]byte, error) {
					seen = req.Secret
					assert.Equal(t, []byte("pepper"), req.Secret)
					if tt.failing {
						return nil, errors.New("boom")
					}
					return make([]byte, req.KeyLength), nil
				}))

			_, err := h.Hash([]byte("password"))
			if tt.failing {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			require.Len(t, seen, 6)
			assert.Equal(t, make([]byte, 6), seen, "scoped secret copy must be zeroed")

			// the configured secret stays usable
			_, err = h.WithDeriver(nil).Hash([]byte("password"))
			assert.NoError(t, err)
		})
	}
}

func TestHasher_WipedSecret(t *testing.T) {
	secret := NewSecret([]byte("pepper"))
	secret.Wipe()
	errs := fieldErrors(t, fastHasher().WithSecret(secret).Validate())
	assert.Contains(t, errs, "secret")

	// wiped after being configured
	secret = NewSecret([]byte("pepper"))
	h := fastHasher().WithSecret(secret)
	require.NoError(t, h.Validate())
	secret.Wipe()

	hash, err := h.Hash([]byte("password"))
	assert.Nil(t, hash)
	assert.True(t, IsConfigurationError(err))
}

func TestHasher_WithParams(t *testing.T) {
	h := NewHasher().WithParams(Params{MemoryCost: 256, TimeCost: 3, Parallelism: 2})
	assert.NoError(t, h.Validate())
	assert.Equal(t, Params{MemoryCost: 256, TimeCost: 3, Parallelism: 2}, h.Params())

	errs := fieldErrors(t, NewHasher().WithParams(Params{}).Validate())
	assert.Len(t, errs, 3)
}
