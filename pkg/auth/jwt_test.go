package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	tokens := NewTokens("test-secret", time.Hour)

	raw, err := tokens.Generate(Principal{ID: 7, Username: "mgr", Role: "Manager"})
	require.NoError(t, err)

	claims, err := tokens.Validate(raw)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "mgr", claims.Username)
	assert.Equal(t, "Manager", claims.Role)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	raw, err := NewTokens("one", time.Hour).Generate(Principal{ID: 1, Role: "Admin"})
	require.NoError(t, err)

	_, err = NewTokens("two", time.Hour).Validate(raw)
	assert.Error(t, err)
}

func TestValidateRejectsExpired(t *testing.T) {
	tokens := NewTokens("s", time.Minute)
	issued := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	tokens.now = func() time.Time { return issued }

	raw, err := tokens.Generate(Principal{ID: 1, Role: "Clerk"})
	require.NoError(t, err)

	tokens.now = func() time.Time { return issued.Add(2 * time.Minute) }
	_, err = tokens.Validate(raw)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestValidateRejectsNoneAlgorithm(t *testing.T) {
	claims := Claims{UserID: 1, Role: "Admin"}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewTokens("s", time.Hour).Validate(raw)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)

	assert.NotEqual(t, "hunter22", hash)
	assert.True(t, CheckPassword(hash, "hunter22"))
	assert.False(t, CheckPassword(hash, "hunter23"))
}

func TestPrincipalRoundTrip(t *testing.T) {
	_, ok := PrincipalFrom(context.Background())
	assert.False(t, ok)

	ctx := WithPrincipal(context.Background(), Principal{ID: 3, Role: "Clerk"})
	p, ok := PrincipalFrom(ctx)
	require.True(t, ok)
	assert.Equal(t, uint(3), p.ID)
}
