package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/sentra-hq/sentra-cms/internal/http/httpx"
	"github.com/sentra-hq/sentra-cms/internal/user"
)

type contextKey string

const claimsKey contextKey = "claims"

// TokenValidator verifies a session token and returns its claims.
type TokenValidator interface {
	ValidateToken(token string) (*user.Claims, error)
}

// RequireAuth rejects requests without a valid bearer token and stores
// the claims on the request context.
func RequireAuth(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				httpx.Error(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			claims, err := validator.ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				httpx.Error(w, http.StatusUnauthorized, "invalid token")
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey, claims)))
		})
	}
}

// ClaimsFrom returns the authenticated claims, if any.
func ClaimsFrom(ctx context.Context) (*user.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*user.Claims)
	return claims, ok
}
