package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken(42, "amy@example.com", TokenTTL())
	require.NoError(t, err)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "amy@example.com", claims.Email)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestParseTokenRejects(t *testing.T) {
	expired, err := GenerateToken(1, "a@example.com", -time.Minute)
	require.NoError(t, err)

	foreign, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: 1, Email: "a@example.com"}).
		SignedString([]byte("someone-else"))
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: 1}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"expired":        expired,
		"foreign secret": foreign,
		"alg none":       unsigned,
		"garbage":        "not.a.token",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseToken(token)
			assert.Error(t, err)
		})
	}
}

func TestTokenBlacklistInMemory(t *testing.T) {
	BlacklistToken("revoked-token", time.Now().Add(time.Hour))
	BlacklistToken("already-expired", time.Now().Add(-time.Second))

	assert.True(t, IsTokenBlacklisted("revoked-token"))
	assert.False(t, IsTokenBlacklisted("already-expired"))
	assert.False(t, IsTokenBlacklisted("never-seen"))
}
