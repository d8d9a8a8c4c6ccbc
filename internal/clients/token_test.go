package clients

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenProvider_MintsValidToken(t *testing.T) {
	provider := NewTokenProvider("shared-secret", 5*time.Minute)

	token, err := provider.Token()
	require.NoError(t, err)
	require.NotEmpty(t, token)

	assert.NoError(t, VerifyToken("shared-secret", token))
}

func TestTokenProvider_CachesUntilNearExpiry(t *testing.T) {
	provider := NewTokenProvider("shared-secret", 5*time.Minute)

	t1, err := provider.Token()
	require.NoError(t, err)
	t2, err := provider.Token()
	require.NoError(t, err)

	assert.Equal(t, t1, t2, "a fresh token should be served from cache")
}

func TestVerifyToken_Failures(t *testing.T) {
	provider := NewTokenProvider("shared-secret", 5*time.Minute)
	token, err := provider.Token()
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		assert.Error(t, VerifyToken("other-secret", token))
	})

	t.Run("garbage token", func(t *testing.T) {
		assert.Error(t, VerifyToken("shared-secret", "not.a.jwt"))
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"iss": "someone-else",
			"exp": time.Now().Add(time.Minute).Unix(),
		}).SignedString([]byte("shared-secret"))
		require.NoError(t, err)
		assert.Error(t, VerifyToken("shared-secret", other))
	})

	t.Run("expired", func(t *testing.T) {
		expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"iss": TokenIssuer,
			"exp": time.Now().Add(-time.Minute).Unix(),
		}).SignedString([]byte("shared-secret"))
		require.NoError(t, err)
		assert.Error(t, VerifyToken("shared-secret", expired))
	})
}
