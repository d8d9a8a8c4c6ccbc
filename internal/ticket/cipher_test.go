package ticket

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cart-ticketing-service/internal/models"
)

func testKey(t *testing.T, userSecret, orderSecret string) []byte {
	t.Helper()
	key, err := DeriveKey([]byte(userSecret), []byte(orderSecret))
	require.NoError(t, err)
	return key
}

func TestCipher_RoundTrip(t *testing.T) {
	c := NewCipher()
	key := testKey(t, "u-secret-16byte", "o-secret-16byte")

	tests := []struct {
		name      string
		plaintext string
	}{
		{name: "display name payload", plaintext: "John|1|1"},
		{name: "empty payload", plaintext: ""},
		{name: "unicode payload", plaintext: "Jürgen Müller|42|7"},
		{name: "binary-looking payload", plaintext: "\x00\x01\xff payload"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blob, err := c.Encrypt(key, tt.plaintext)
			require.NoError(t, err)
			assert.NotEmpty(t, blob)

			plaintext, err := c.Decrypt(key, blob)
			require.NoError(t, err)
			assert.Equal(t, tt.plaintext, plaintext)
		})
	}
}

func TestCipher_FreshNonces(t *testing.T) {
	c := NewCipher()
	key := testKey(t, "u-secret-16byte", "o-secret-16byte")

	b1, err := c.Encrypt(key, "same payload")
	require.NoError(t, err)
	b2, err := c.Encrypt(key, "same payload")
	require.NoError(t, err)

	assert.NotEqual(t, b1, b2, "each encryption must draw fresh initialization material")
}

func TestCipher_DecryptFailures(t *testing.T) {
	c := NewCipher()
	key := testKey(t, "u-secret-16byte", "o-secret-16byte")
	wrongKey := testKey(t, "u-secret-16byte", "another-order-secret")

	blob, err := c.Encrypt(key, "John|1|1")
	require.NoError(t, err)

	corrupted, err := base64.StdEncoding.DecodeString(blob)
	require.NoError(t, err)
	corrupted[len(corrupted)-1] ^= 0xff

	tests := []struct {
		name string
		key  []byte
		blob string
	}{
		{name: "wrong key", key: wrongKey, blob: blob},
		{name: "corrupted ciphertext", key: key, blob: base64.StdEncoding.EncodeToString(corrupted)},
		{name: "truncated blob", key: key, blob: base64.StdEncoding.EncodeToString([]byte("short"))},
		{name: "not base64", key: key, blob: "%%% not base64 %%%"},
		{name: "empty blob", key: key, blob: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plaintext, err := c.Decrypt(tt.key, tt.blob)
			assert.ErrorIs(t, err, models.ErrInvalidTicket)
			assert.Empty(t, plaintext)
		})
	}
}

func TestCipher_RejectsBadKeySize(t *testing.T) {
	c := NewCipher()

	_, err := c.Encrypt([]byte("too short"), "payload")
	assert.Error(t, err)

	_, err = c.Decrypt([]byte("too short"), "whatever")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, models.ErrInvalidTicket, "a bad key size is a programming error, not a ticket failure")
}
