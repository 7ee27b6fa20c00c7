package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestGenerateAndParseJWT(t *testing.T) {
	tok, err := GenerateJWT("a@x.com", testSecret, time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(tok, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", claims.Subject)
	assert.NotEmpty(t, claims.ID)
	assert.InDelta(t, time.Hour.Seconds(), claims.Remaining().Seconds(), 5)
}

func TestParseJWTRejects(t *testing.T) {
	valid, err := GenerateJWT("a@x.com", testSecret, time.Hour)
	require.NoError(t, err)

	expired, err := GenerateJWT("a@x.com", testSecret, -time.Minute)
	require.NoError(t, err)

	otherKey, err := GenerateJWT("a@x.com", "another-secret", time.Hour)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "a@x.com"}).
		SignedString([]byte(testSecret))
	require.NoError(t, err)

	noSubject, err := GenerateJWT("", testSecret, time.Hour)
	require.NoError(t, err)

	tests := map[string]string{
		"garbage":       "not-a-token",
		"tampered":      valid[:len(valid)-2] + "xx",
		"expired":       expired,
		"wrong secret":  otherKey,
		"no expiry":     noExpiry,
		"empty subject": noSubject,
	}
	for name, tok := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseJWT(tok, testSecret)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestIDsAreUnique(t *testing.T) {
	a, err := GenerateJWT("a@x.com", testSecret, time.Hour)
	require.NoError(t, err)
	b, err := GenerateJWT("a@x.com", testSecret, time.Hour)
	require.NoError(t, err)

	ca, err := ParseJWT(a, testSecret)
	require.NoError(t, err)
	cb, err := ParseJWT(b, testSecret)
	require.NoError(t, err)
	assert.NotEqual(t, ca.ID, cb.ID)
}
