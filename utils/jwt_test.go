package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndValidateToken(t *testing.T) {
	tok, err := CreateToken("s3cret", "user-1", "nimal@example.com", "Nimal", "guest")
	require.NoError(t, err)

	claims, err := ValidateJWT("s3cret", tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "nimal@example.com", claims.Email)
	assert.Equal(t, "guest", claims.Role)
	assert.WithinDuration(t, time.Now().Add(TokenTTL), claims.ExpiresAt.Time, time.Minute)
}

func TestValidateJWT_Rejects(t *testing.T) {
	tok, err := CreateToken("s3cret", "user-1", "a@b.c", "", "admin")
	require.NoError(t, err)

	_, err = ValidateJWT("other", tok)
	assert.Error(t, err)

	_, err = ValidateJWT("s3cret", "")
	assert.Error(t, err)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, MyClaims{
		Role: "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})
	raw, err := expired.SignedString([]byte("s3cret"))
	require.NoError(t, err)
	_, err = ValidateJWT("s3cret", raw)
	assert.Error(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, MyClaims{RegisteredClaims: jwt.RegisteredClaims{Subject: "x"}})
	raw, err = none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = ValidateJWT("s3cret", raw)
	assert.Error(t, err)
}

func TestCreateToken_NeedsSecret(t *testing.T) {
	_, err := CreateToken("", "user-1", "a@b.c", "", "guest")
	assert.Error(t, err)
}
