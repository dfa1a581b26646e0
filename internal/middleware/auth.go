package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/passgen/passgen-go/internal/crypto"
)

type contextKey string

const accountIDKey contextKey = "accountID"

// JWTAuth rejects requests without a valid bearer token.
func JWTAuth(tokens *crypto.TokenIssuer) func(http.Handler) http.Handler {
	return bearerAuth(tokens, true)
}

// OptionalJWTAuth lets anonymous requests through but rejects a malformed or invalid token.
func OptionalJWTAuth(tokens *crypto.TokenIssuer) func(http.Handler) http.Handler {
	return bearerAuth(tokens, false)
}

func bearerAuth(tokens *crypto.TokenIssuer, required bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				if required {
					writeJSONError(w, http.StatusUnauthorized, "missing authorization header")
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			token, found := strings.CutPrefix(authHeader, "Bearer ")
			if !found || token == "" {
				writeJSONError(w, http.StatusUnauthorized, "invalid authorization format")
				return
			}

			claims, err := tokens.Validate(token)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), accountIDKey, claims.AccountID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AccountIDFromContext returns the authenticated account ID, if any.
func AccountIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(accountIDKey).(int64)
	return id, ok
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
