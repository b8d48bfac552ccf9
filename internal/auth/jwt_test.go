package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestJWTGenerateValidate(t *testing.T) {
	manager := NewJWTManager("secret", time.Hour, "issuer")
	token, err := manager.Generate("alice")
	require.NoError(t, err)

	claims, err := manager.Validate(token)
	require.NoError(t, err)
	require.Equal(t, "alice", claims.Username)
	require.Equal(t, "alice", claims.Subject)
	require.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestJWTGenerateInvalid(t *testing.T) {
	manager := NewJWTManager("secret", time.Hour, "issuer")
	if _, err := manager.Generate(""); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected invalid token error, got %v", err)
	}
}

func TestJWTValidateMissing(t *testing.T) {
	manager := NewJWTManager("secret", time.Hour, "issuer")
	if _, err := manager.Validate(""); !errors.Is(err, ErrMissingToken) {
		t.Fatalf("expected missing token error, got %v", err)
	}
}

func TestJWTValidateWrongSecret(t *testing.T) {
	token, err := NewJWTManager("other-secret", time.Hour, "issuer").Generate("alice")
	require.NoError(t, err)

	_, err = NewJWTManager("secret", time.Hour, "issuer").Validate(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTValidateExpired(t *testing.T) {
	manager := NewJWTManager("secret", time.Hour, "issuer")
	manager.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := manager.Generate("alice")
	require.NoError(t, err)

	manager.now = time.Now
	_, err = manager.Validate(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTValidateRejectsNoneAlgorithm(t *testing.T) {
	claims := &Claims{
		Username: "alice",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewJWTManager("secret", time.Hour, "issuer").Validate(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTValidateRequiresExpiry(t *testing.T) {
	claims := &Claims{Username: "alice"}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = NewJWTManager("secret", time.Hour, "issuer").Validate(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenFromHeader(t *testing.T) {
	tests := []struct {
		header string
		token  string
		err    error
	}{
		{"Bearer token", "token", nil},
		{"Bearer   spaced  ", "spaced", nil},
		{"nope", "", ErrMissingToken},
		{"bearer token", "", ErrMissingToken},
		{"Basic dXNlcjpwYXNz", "", ErrMissingToken},
		{"Bearer ", "", ErrMissingToken},
		{"", "", ErrMissingToken},
	}
	for _, tt := range tests {
		token, err := TokenFromHeader(tt.header)
		require.ErrorIs(t, err, tt.err, "header %q", tt.header)
		require.Equal(t, tt.token, token, "header %q", tt.header)
	}
}
