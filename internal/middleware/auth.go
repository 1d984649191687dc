package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/kiwari-pos/qrcounter/internal/auth"
)

type contextKey string

const claimsKey contextKey = "claims"

// TokenCookie carries the operator session for browser form posts.
const TokenCookie = "operator_token"

// RequireOperator guards catalog edits. When enabled is false (no operator
// PIN configured) every request passes through unchanged.
func RequireOperator(jwtSecret string, enabled bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if !enabled {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, msg := tokenFromRequest(r)
			if token == "" {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"error": msg})
				return
			}

			claims, err := auth.ValidateToken(jwtSecret, token)
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid token"})
				return
			}
			if claims.Role != auth.RoleOperator {
				writeJSON(w, http.StatusForbidden, map[string]string{"error": "insufficient permissions"})
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// tokenFromRequest prefers the Authorization header and falls back to the
// session cookie. On failure the second value explains why.
func tokenFromRequest(r *http.Request) (string, string) {
	if header := r.Header.Get("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			return "", "invalid authorization format"
		}
		return parts[1], ""
	}
	if c, err := r.Cookie(TokenCookie); err == nil && c.Value != "" {
		return c.Value, ""
	}
	return "", "operator login required"
}

func ClaimsFromContext(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(claimsKey).(*auth.Claims)
	return claims
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
