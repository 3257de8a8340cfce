package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/dom/todo-api/internal/repository"
	"github.com/dom/todo-api/internal/token"
)

type contextKey string

const (
	claimsKey contextKey = "claims"
)

// Auth rejects requests that do not carry a valid bearer token. Checks run
// cheapest first: header shape, then signature, then expiry, and only then
// the revocation lookup, so obviously bad tokens never touch shared state.
// On success the token claims are attached to the request context.
func Auth(issuer *token.Issuer, revocations repository.RevocationRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				log.Printf("ERROR [middleware.Auth] missing authorization header")
				unauthorized(w)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				log.Printf("ERROR [middleware.Auth] invalid authorization header format")
				unauthorized(w)
				return
			}

			claims, err := issuer.Decode(parts[1])
			if err != nil {
				log.Printf("ERROR [middleware.Auth] token validation failed: %v", err)
				unauthorized(w)
				return
			}

			if claims.ExpiresAt.Before(time.Now()) {
				log.Printf("ERROR [middleware.Auth] token expired")
				unauthorized(w)
				return
			}

			revoked, err := revocations.IsRevoked(r.Context(), claims.ID)
			if err != nil {
				log.Printf("ERROR [middleware.Auth] revocation check failed: %v", err)
				internalError(w)
				return
			}
			if revoked {
				log.Printf("ERROR [middleware.Auth] token has been revoked")
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"unauthenticated","message":"missing or invalid token"}`))
}

func internalError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	w.Write([]byte(`{"error":"internal_error","message":"internal server error"}`))
}

// GetClaims returns the authenticated token claims set by Auth.
func GetClaims(ctx context.Context) (*token.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*token.Claims)
	return claims, ok
}

// GetUserID returns the authenticated user's ID set by Auth.
func GetUserID(ctx context.Context) (uint, bool) {
	claims, ok := GetClaims(ctx)
	if !ok {
		return 0, false
	}
	return claims.UserID, true
}
