// Package middleware provides HTTP middleware for dashboard authentication.
package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/joblify/employer-console/internal/auth"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

const (
	// tokenKey is the context key for the caller's bearer token.
	tokenKey ContextKey = "token"
	// identityKey is the context key for the identity decoded from the token.
	identityKey ContextKey = "identity"
)

// TokenCookie is the cookie the dashboard reads when no Authorization header is sent.
const TokenCookie = "token"

// LoginPath is where unauthenticated callers are sent.
const LoginPath = "/login"

// TokenValidator checks a bearer token and returns the identity it carries.
// A nil identity with no error accepts the token without naming the user.
type TokenValidator interface {
	ValidateToken(tokenString string) (*auth.Identity, error)
}

// UnauthorizedResponse is the body of a 401 from a protected route.
type UnauthorizedResponse struct {
	Error    string `json:"error"`
	Redirect string `json:"redirect"`
}

// AuthMiddleware creates middleware that requires a bearer token from the
// Authorization header or the token cookie and adds it to the request context.
func AuthMiddleware(validator TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := ExtractToken(r)
			if tokenString == "" {
				Unauthorized(w)
				return
			}

			identity, err := validator.ValidateToken(tokenString)
			if err != nil {
				log.Printf("[auth] rejected token for %s %s: %v", r.Method, r.URL.Path, err)
				Unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), tokenKey, tokenString)
			if identity != nil {
				ctx = context.WithValue(ctx, identityKey, identity)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ExtractToken returns the bearer token of r, preferring the Authorization
// header over the token cookie. A malformed header is ignored.
func ExtractToken(r *http.Request) string {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		// Handle case-insensitive "Bearer" prefix
		parts := strings.Fields(authHeader)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	if c, err := r.Cookie(TokenCookie); err == nil {
		return strings.TrimSpace(c.Value)
	}
	return ""
}

// Unauthorized writes a 401 that tells the client to go to the login view.
func Unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	if err := json.NewEncoder(w).Encode(UnauthorizedResponse{Error: "Unauthorized", Redirect: LoginPath}); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// GetToken extracts the authenticated caller's token from the request context.
func GetToken(r *http.Request) (string, error) {
	token, ok := r.Context().Value(tokenKey).(string)
	if !ok || token == "" {
		return "", fmt.Errorf("token not found in request context")
	}
	return token, nil
}

// GetIdentity extracts the caller's identity, if the token carried one.
func GetIdentity(r *http.Request) (*auth.Identity, bool) {
	id, ok := r.Context().Value(identityKey).(*auth.Identity)
	return id, ok && id != nil
}

// WithToken returns a copy of ctx carrying token (for testing purposes).
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}
