package auth

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rentalhub/rentalhub/internal/identity"
	"github.com/rentalhub/rentalhub/internal/user"
)

// publicPaths may be reached without a bearer token.
func isPublicPath(path string) bool {
	return path == "/api/auth/register" || path == "/api/auth/login" || path == "/health"
}

// RequireToken is middleware that validates Bearer tokens on /api/ routes,
// loads the account, and stores the actor on the request context.
// Inactive accounts are rejected the same way as bad tokens.
func RequireToken(tokens *Tokens, users *user.Store, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isPublicPath(r.URL.Path) || !strings.HasPrefix(r.URL.Path, "/api/") {
			next.ServeHTTP(w, r)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			unauthorized(w, "authorization required")
			return
		}

		userID, err := tokens.Verify(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			unauthorized(w, "invalid or expired token")
			return
		}

		u, err := users.GetByID(userID)
		if err != nil || !u.IsActive {
			unauthorized(w, "invalid or expired token")
			return
		}

		ctx := identity.WithActor(r.Context(), u.Actor())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	if err := json.NewEncoder(w).Encode(map[string]string{"error": msg}); err != nil {
		http.Error(w, `{"error":"encode failed"}`, http.StatusInternalServerError)
	}
}
