package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/cropcraft/server/internal/api/problem"
	"github.com/cropcraft/server/internal/auth"
)

type contextKeyAuth string

const adminClaimsKey contextKeyAuth = "adminClaims"

// Messages returned by the bearer gate.
const (
	MsgMalformedHeader = "No token provided or malformed header"
	MsgMissingToken    = "No token provided"
	MsgInvalidToken    = "Invalid token"
)

// TokenValidator verifies a bearer token and returns its claims.
type TokenValidator interface {
	Validate(token string) (*auth.Claims, error)
}

// JWTAuth admits requests carrying "Authorization: Bearer <token>" with a
// token the validator accepts. The claims are available to handlers via
// AdminClaims.
func JWTAuth(validator TokenValidator, env string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if validator == nil {
				writeUnauthorized(w, r, MsgInvalidToken, auth.ErrInvalidToken, env)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				writeUnauthorized(w, r, MsgMalformedHeader, auth.ErrMissingToken, env)
				return
			}

			token, err := auth.TokenFromHeader(authHeader)
			if err != nil {
				writeUnauthorized(w, r, MsgMissingToken, err, env)
				return
			}

			claims, err := validator.Validate(token)
			if err != nil {
				writeUnauthorized(w, r, MsgInvalidToken, err, env)
				return
			}

			ctx := contextWithAdminClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, r *http.Request, message string, err error, env string) {
	problem.Write(w, r, http.StatusUnauthorized, problem.TypeUnauthorized, "Unauthorized", err, env,
		problem.WithMessage(message))
}

func contextWithAdminClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, adminClaimsKey, claims)
}

// AdminClaims returns the claims stored by JWTAuth, or nil.
func AdminClaims(r *http.Request) *auth.Claims {
	if r == nil {
		return nil
	}
	if claims, ok := r.Context().Value(adminClaimsKey).(*auth.Claims); ok {
		return claims
	}
	return nil
}
