package argon2kdf

import (
	"bytes"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSecret_Wipe(t *testing.T) {
	buf := []byte("pepper")
	s := NewSecret(buf)
	assert.Equal(t, 6, s.Len())
	assert.False(t, s.Wiped())

	s.Wipe()
	assert.True(t, s.Wiped())
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, make([]byte, 6), buf)

	// idempotent
	s.Wipe()
	assert.True(t, s.Wiped())
}

func TestSecret_CopyBytes(t *testing.T) {
	s := NewSecret([]byte("pepper"))
	b, ok := s.copyBytes()
	assert.True(t, ok)
	assert.Equal(t, []byte("pepper"), b)

	b[0] = 'X'
	c, _ := s.copyBytes()
	assert.Equal(t, []byte("pepper"), c)

	s.Wipe()
	b, ok = s.copyBytes()
	assert.False(t, ok)
	assert.Nil(t, b)
}

func TestSecret_EmptyIsUsable(t *testing.T) {
	s := NewSecret(nil)
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.Wiped())
	assert.NoError(t, NewHasher().WithSecret(s).Validate())
}

func TestSecret_Redacted(t *testing.T) {
	s := NewSecret([]byte("hunter2"))

	assert.Equal(t, "Secret(redacted)", s.String())
	assert.Equal(t, "Secret(redacted)", fmt.Sprintf("%v", s))
	assert.Equal(t, "Secret(redacted)", fmt.Sprintf("%#v", s))
	assert.NotContains(t, fmt.Sprintf("%s %+v", s, s), "hunter2")

	var buf bytes.Buffer
	slog.New(slog.NewTextHandler(&buf, nil)).Info("loaded", "secret", s)
	assert.Contains(t, buf.String(), "Secret(redacted)")
	assert.NotContains(t, buf.String(), "hunter2")
}
