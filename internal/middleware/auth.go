// internal/middleware/auth.go
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dangerclosesec/passport/internal/model"
	"github.com/dangerclosesec/passport/internal/service"
)

type contextKey string

const (
	userKey    contextKey = "passport_user"
	sessionKey contextKey = "passport_session"
)

// UserFrom returns the authenticated user placed in the context by
// SessionAuth, or nil outside an authenticated request.
func UserFrom(ctx context.Context) *model.User {
	u, _ := ctx.Value(userKey).(*model.User)
	return u
}

// SessionFrom returns the live session for the request, or nil.
func SessionFrom(ctx context.Context) *model.Session {
	s, _ := ctx.Value(sessionKey).(*model.Session)
	return s
}

// SessionAuth authenticates requests with "Authorization: Bearer
// <session token>". Unknown and revoked tokens get the same 401. The
// session's access time is stamped on the way through.
func SessionAuth(sessions *service.SessionService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				respondWithError(w, http.StatusUnauthorized, "No authorization header")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				respondWithError(w, http.StatusUnauthorized, "Invalid authorization header")
				return
			}

			user, session, err := sessions.Authenticate(r.Context(), parts[1])
			if err != nil {
				respondWithError(w, http.StatusUnauthorized, "Invalid session")
				return
			}
			sessions.Access(r.Context(), session)

			ctx := context.WithValue(r.Context(), userKey, user)
			ctx = context.WithValue(ctx, sessionKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// respondWithError sends a JSON error response
func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

// respondWithJSON sends a JSON response
func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(payload)
}
