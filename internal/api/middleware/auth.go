package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/alex/deckshare/internal/service"
	"github.com/google/uuid"
)

type contextKey string

const (
	UserIDKey contextKey = "userID"
)

// extractUserID pulls and verifies the bearer token, returning the claimed
// user id. Both auth modes share this; they differ only in how they treat
// a missing or invalid token.
func extractUserID(r *http.Request, authService *service.AuthService) (uuid.UUID, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return uuid.Nil, false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return uuid.Nil, false
	}

	userID, err := authService.ValidateToken(parts[1])
	if err != nil {
		return uuid.Nil, false
	}

	return userID, true
}

// Auth rejects requests without a valid bearer token.
func Auth(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := extractUserID(r, authService)
			if !ok {
				log.Printf("ERROR [middleware.Auth] missing or invalid token")
				http.Error(w, "missing or invalid token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth attaches the caller's identity when a valid token is
// present and silently continues without one otherwise. Used on endpoints
// that are sometimes public (share links, public decks).
func OptionalAuth(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userID, ok := extractUserID(r, authService); ok {
				r = r.WithContext(context.WithValue(r.Context(), UserIDKey, userID))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}
