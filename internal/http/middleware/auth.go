// Package middleware holds the HTTP guards wrapped around protected
// routes.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"siakad/internal/apperrors"
	"siakad/internal/util"
	"siakad/internal/util/response"
)

type claimsKey struct{}

// ClaimsFrom returns the verified token claims placed by RequireAuth.
func ClaimsFrom(ctx context.Context) (*util.Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(*util.Claims)
	return c, ok
}

// RequireAuth verifies the bearer token and stores its claims in the
// request context.
func RequireAuth(signer *util.TokenSigner) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authz := r.Header.Get("Authorization")
			parts := strings.SplitN(authz, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				response.WriteError(w, apperrors.Unauthorized("missing bearer token"))
				return
			}

			claims, err := signer.Parse(strings.TrimSpace(parts[1]))
			if err != nil {
				response.WriteError(w, apperrors.Unauthorized("invalid token"))
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
