package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	tok, err := GenerateToken(9, true, "sess-1", "k", time.Now(), time.Hour)
	require.NoError(t, err)

	c, err := ParseToken(tok, "k")
	require.NoError(t, err)
	assert.Equal(t, uint(9), c.UserID)
	assert.True(t, c.Staff)
	assert.Equal(t, "sess-1", c.ID)
}

func TestParseTokenRejects(t *testing.T) {
	expired, err := GenerateToken(9, false, "s", "k", time.Now().Add(-2*time.Hour), time.Hour)
	require.NoError(t, err)
	_, err = ParseToken(expired, "k")
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)

	good, err := GenerateToken(9, false, "s", "k", time.Now(), time.Hour)
	require.NoError(t, err)
	_, err = ParseToken(good, "wrong")
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)

	noSession, err := GenerateToken(9, false, "", "k", time.Now(), time.Hour)
	require.NoError(t, err)
	_, err = ParseToken(noSession, "k")
	assert.Error(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: 9, RegisteredClaims: jwt.RegisteredClaims{
		ID: "s", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = ParseToken(unsigned, "k")
	assert.Error(t, err)
}
