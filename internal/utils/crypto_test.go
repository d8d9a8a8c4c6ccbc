package utils

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSecretKey(t *testing.T) {
	key1, err := GenerateSecretKey()
	require.NoError(t, err)

	decoded, err := base64.StdEncoding.DecodeString(key1)
	require.NoError(t, err)
	assert.Len(t, decoded, SecretKeyLength)

	key2, err := GenerateSecretKey()
	require.NoError(t, err)
	assert.NotEqual(t, key1, key2, "secrets must be random per principal")
}

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{name: "simple password", password: "password123"},
		{name: "complex password", password: "MyC0mpl3x!P@ssw0rd"},
		{name: "long password", password: strings.Repeat("a", 100)},
		{name: "unicode password", password: "пароль123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPassword(tt.password)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))

			hash2, err := HashPassword(tt.password)
			require.NoError(t, err)
			assert.NotEqual(t, hash, hash2, "salts must differ per hash")
		})
	}
}

func TestVerifyPassword(t *testing.T) {
	password := "testpassword123"
	hash, err := HashPassword(password)
	require.NoError(t, err)

	ok, err := VerifyPassword(password, hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword("wrongpassword", hash)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = VerifyPassword(password, "not-a-hash")
	assert.Error(t, err)
}
