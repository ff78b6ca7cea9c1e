package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, method jwt.SigningMethod, key any, claims Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func validClaims() Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			Issuer:    "officepool-auth",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Name:      "John Doe",
		AvatarURL: "https://github.com/mateusasf.png",
	}
}

func TestJWTVerifier_Verify(t *testing.T) {
	verifier := NewJWTVerifier(testSecret, "officepool-auth", "")

	identity, err := verifier.Verify(context.Background(), signToken(t, jwt.SigningMethodHS256, []byte(testSecret), validClaims()))

	require.NoError(t, err)
	assert.Equal(t, "user-1", identity.UserID)
	assert.Equal(t, "John Doe", identity.Name)
	require.NotNil(t, identity.AvatarURL)
	assert.Equal(t, "https://github.com/mateusasf.png", *identity.AvatarURL)
	assert.Nil(t, identity.Email)
}

func TestJWTVerifier_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		token func(t *testing.T) string
	}{
		{
			name:  "empty token",
			token: func(t *testing.T) string { return "" },
		},
		{
			name:  "garbage",
			token: func(t *testing.T) string { return "not-a-jwt" },
		},
		{
			name: "wrong secret",
			token: func(t *testing.T) string {
				return signToken(t, jwt.SigningMethodHS256, []byte("other"), validClaims())
			},
		},
		{
			name: "expired",
			token: func(t *testing.T) string {
				c := validClaims()
				c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
				return signToken(t, jwt.SigningMethodHS256, []byte(testSecret), c)
			},
		},
		{
			name: "missing expiry",
			token: func(t *testing.T) string {
				c := validClaims()
				c.ExpiresAt = nil
				return signToken(t, jwt.SigningMethodHS256, []byte(testSecret), c)
			},
		},
		{
			name: "missing subject",
			token: func(t *testing.T) string {
				c := validClaims()
				c.Subject = ""
				return signToken(t, jwt.SigningMethodHS256, []byte(testSecret), c)
			},
		},
		{
			name: "wrong issuer",
			token: func(t *testing.T) string {
				c := validClaims()
				c.Issuer = "someone-else"
				return signToken(t, jwt.SigningMethodHS256, []byte(testSecret), c)
			},
		},
		{
			name: "unsigned",
			token: func(t *testing.T) string {
				return signToken(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, validClaims())
			},
		},
	}

	verifier := NewJWTVerifier(testSecret, "officepool-auth", "")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity, err := verifier.Verify(context.Background(), tt.token(t))
			assert.Nil(t, identity)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
