package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/utafrali/artfolio/pkg/httputil"
)

type contextKey int

const claimsKey contextKey = iota

// Claims is the verified identity of the caller. Subject is the identity
// provider's user id and doubles as the artist id.
type Claims struct {
	Subject string
	Email   string
	Name    string
}

// TokenValidator verifies a bearer token and returns its claims.
type TokenValidator func(ctx context.Context, token string) (*Claims, error)

// Auth rejects requests without a valid bearer token and stores the claims
// in the request context.
func Auth(validate TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				httputil.WriteErrorCode(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "missing authorization header")
				return
			}

			scheme, token, ok := strings.Cut(header, " ")
			if !ok || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(token) == "" {
				httputil.WriteErrorCode(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "invalid authorization header format")
				return
			}

			claims, err := validate(r.Context(), strings.TrimSpace(token))
			if err != nil || claims == nil || claims.Subject == "" {
				httputil.WriteErrorCode(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

func WithClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(claimsKey).(*Claims)
	return c, ok && c != nil
}

// UserIDFromContext returns the authenticated subject, or "".
func UserIDFromContext(ctx context.Context) string {
	if c, ok := ClaimsFromContext(ctx); ok {
		return c.Subject
	}
	return ""
}
