package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/rohanwest/pancake/pkg/response"
)

// Claims describes the user a bearer token resolved to.
type Claims struct {
	UserID   string
	Email    string
	IsAdmin  bool
	IsMaster bool
}

// TokenResolver maps a bearer token to the user it belongs to.
// Returns false for unknown, empty, or expired tokens.
type TokenResolver func(token string) (Claims, bool)

type claimsKey struct{}

// BearerToken extracts the token from the Authorization header or, for
// websocket upgrades where headers are awkward, the ?token query parameter.
func BearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h != "" {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return r.URL.Query().Get("token")
}

// ClaimsFromCtx returns the claims stored by RequireAdmin/RequireMaster.
func ClaimsFromCtx(ctx context.Context) (Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(Claims)
	return c, ok
}

// RequireAdmin gates a route on a valid token belonging to any admin.
// An absent, unknown, expired, or non-admin token gets a 403 — the same
// shape for every failure so callers cannot probe which tokens exist.
func RequireAdmin(resolve TokenResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := resolve(BearerToken(r))
			if !ok || !claims.IsAdmin {
				response.Forbidden(w, "Unauthorized. Admin access required.")
				return
			}
			ctx := context.WithValue(r.Context(), claimsKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireMaster gates a route on the master admin's token.
func RequireMaster(resolve TokenResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := resolve(BearerToken(r))
			if !ok || !claims.IsMaster {
				response.Forbidden(w, "Only the master admin can perform this action.")
				return
			}
			ctx := context.WithValue(r.Context(), claimsKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
