package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateJWT(t *testing.T) {
	SetJWTSecret("unit-test-secret")

	token, err := GenerateJWT("user-1", 1)
	require.NoError(t, err)

	claims, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "expiryeaze", claims.Issuer)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestValidateJWTRejects(t *testing.T) {
	SetJWTSecret("unit-test-secret")

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, JWTClaims{
		UserID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	expiredToken, err := expired.SignedString([]byte("unit-test-secret"))
	require.NoError(t, err)

	anonymous := jwt.NewWithClaims(jwt.SigningMethodHS256, JWTClaims{})
	anonymousToken, err := anonymous.SignedString([]byte("unit-test-secret"))
	require.NoError(t, err)

	SetJWTSecret("other-secret")
	foreign, err := GenerateJWT("user-1", 1)
	require.NoError(t, err)
	SetJWTSecret("unit-test-secret")

	for name, token := range map[string]string{
		"garbage":      "not.a.token",
		"expired":      expiredToken,
		"no user id":   anonymousToken,
		"wrong secret": foreign,
	} {
		_, err := ValidateJWT(token)
		assert.Error(t, err, name)
	}
}
