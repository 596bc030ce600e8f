package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/mwhitford/deskchat/internal/domain"
	"github.com/mwhitford/deskchat/internal/service"
)

type contextKey string

const (
	UserKey contextKey = "user"
)

// SessionCookieName is the cookie carrying the opaque session token.
const SessionCookieName = "session_token"

// TokenFromRequest pulls the session token from the session cookie,
// falling back to a bearer Authorization header for non-browser
// clients.
func TokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := r.Header.Get("Authorization")
	if parts := strings.Split(authHeader, " "); len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

// Auth resolves the session token to a user and stores the user on the
// request context. Requests without a valid session get a 401.
func Auth(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := TokenFromRequest(r)
			if token == "" {
				http.Error(w, "Authentication required", http.StatusUnauthorized)
				return
			}

			user, err := authService.Validate(r.Context(), token)
			if err != nil {
				if !errors.Is(err, domain.ErrInvalidToken) {
					log.Printf("ERROR [middleware.Auth] token validation failed: %v", err)
				}
				http.Error(w, "Invalid session", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), UserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUser returns the authenticated user stored by Auth.
func GetUser(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(UserKey).(*domain.User)
	return user, ok
}
