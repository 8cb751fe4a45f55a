package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
)

type contextKey struct{}

// AccountFromContext returns the account id set by AuthMiddleware.
func AccountFromContext(ctx context.Context) (string, bool) {
	accountID, ok := ctx.Value(contextKey{}).(string)
	return accountID, ok && accountID != ""
}

// WithAccount stores accountID the way AuthMiddleware does.
func WithAccount(ctx context.Context, accountID string) context.Context {
	return context.WithValue(ctx, contextKey{}, accountID)
}

func AuthMiddleware(jwtSecret string) func(http.Handler) http.Handler {
	secret := []byte(jwtSecret)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "authorization header missing", http.StatusUnauthorized)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				http.Error(w, "invalid authorization header", http.StatusUnauthorized)
				return
			}

			accountID, err := ValidateJWT(secret, parts[1])
			if err != nil {
				slog.Warn("rejected bearer token", "path", r.URL.Path, "error", err)
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithAccount(r.Context(), accountID)))
		})
	}
}
