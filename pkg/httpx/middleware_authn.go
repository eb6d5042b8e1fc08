package httpx

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/athleteone/athleteone/pkg/jwtx"
)

type claimsKey struct{}

// ClaimsFromContext returns the verified token claims attached by the
// auth middleware. The second return is false for unauthenticated
// requests, which only happens on routes missing the middleware.
func ClaimsFromContext(ctx context.Context) (*jwtx.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*jwtx.Claims)
	return claims, ok
}

// RequireAuth rejects requests without a valid bearer token. A missing
// token is a 401; a present but unverifiable or expired token is a 403.
func RequireAuth(verifier jwtx.Verifier) Middleware {
	return requireBearer(func(token string) (*jwtx.Claims, error) {
		return verifier.Verify(token)
	})
}

// RequireAuthAllowExpired is RequireAuth but tolerates tokens expired
// within the grace window. Used on the refresh endpoint, where an
// expired-but-authentic token is the whole point.
func RequireAuthAllowExpired(verifier jwtx.Verifier, grace time.Duration) Middleware {
	return requireBearer(func(token string) (*jwtx.Claims, error) {
		return verifier.VerifyAllowExpired(token, grace)
	})
}

func requireBearer(verify func(string) (*jwtx.Claims, error)) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				WriteError(w, http.StatusUnauthorized, "Access token required")
				return
			}

			claims, err := verify(token)
			if err != nil {
				WriteError(w, http.StatusForbidden, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", false
	}
	return token, true
}
