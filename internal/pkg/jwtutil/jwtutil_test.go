package jwtutil

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-12345678901234567890"

func TestGenerateAndParse(t *testing.T) {
	token, err := GenerateToken(testSecret, 24*time.Hour, 42, "alice")
	require.NoError(t, err)

	claims, err := ParseToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "42", claims.Subject)
	assert.NotEmpty(t, claims.ID)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, 5*time.Second)
	assert.InDelta(t, (24 * time.Hour).Seconds(), claims.RemainingTTL().Seconds(), 5)
}

func TestTokensHaveDistinctIDs(t *testing.T) {
	a, err := GenerateToken(testSecret, time.Hour, 1, "alice")
	require.NoError(t, err)
	b, err := GenerateToken(testSecret, time.Hour, 1, "alice")
	require.NoError(t, err)

	ca, err := ParseToken(testSecret, a)
	require.NoError(t, err)
	cb, err := ParseToken(testSecret, b)
	require.NoError(t, err)
	assert.NotEqual(t, ca.ID, cb.ID)
}

func TestParseRejects(t *testing.T) {
	valid, err := GenerateToken(testSecret, time.Hour, 1, "alice")
	require.NoError(t, err)

	expired, err := generate(testSecret, time.Now().Add(-48*time.Hour), 24*time.Hour, 1, "alice")
	require.NoError(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		UserID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{UserID: 1}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	noUser, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := []struct {
		name   string
		secret string
		token  string
	}{
		{name: "wrong secret", secret: "another-secret", token: valid},
		{name: "expired", secret: testSecret, token: expired},
		{name: "malformed", secret: testSecret, token: "malformed.token.here"},
		{name: "empty", secret: testSecret, token: ""},
		{name: "other hmac alg", secret: testSecret, token: hs512},
		{name: "alg none", secret: testSecret, token: none},
		{name: "missing exp", secret: testSecret, token: noExpiry},
		{name: "missing user id", secret: testSecret, token: noUser},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := ParseToken(tt.secret, tt.token)
			assert.Nil(t, claims)
			assert.True(t, errors.Is(err, ErrInvalidToken), "got %v", err)
		})
	}
}

func TestGenerateRequiresSecret(t *testing.T) {
	_, err := GenerateToken("", time.Hour, 1, "alice")
	assert.Error(t, err)
}
