package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoUserID is returned for a well-formed token that names no user.
var ErrNoUserID = errors.New("auth token carries no user id")

// Identity is the account information carried in the token payload.
type Identity struct {
	UserID string
	Role   string
}

// tokenClaims mirrors the backend token payload, which nests the user as
// {"user": {"id": ...}} on newer tokens and uses a top-level "id" on older ones.
type tokenClaims struct {
	User *struct {
		ID   string `json:"id"`
		Role string `json:"role"`
	} `json:"user,omitempty"`
	ID   string `json:"id,omitempty"`
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// DecodeIdentity reads the identity from token without verifying its signature;
// the backend remains the authority on validity. A malformed token is logged and
// treated as no identity.
func DecodeIdentity(token string, logger *slog.Logger) (*Identity, bool) {
	if token == "" {
		return nil, false
	}
	if logger == nil {
		logger = slog.Default()
	}

	claims := &tokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		logger.Warn("failed to decode auth token", "error", err)
		return nil, false
	}

	id := claims.identity()
	if id.UserID == "" {
		logger.Warn("auth token carries no user id")
		return nil, false
	}
	return id, true
}

func (c *tokenClaims) identity() *Identity {
	id := &Identity{UserID: c.ID, Role: c.Role}
	if c.User != nil {
		if c.User.ID != "" {
			id.UserID = c.User.ID
		}
		if c.User.Role != "" {
			id.Role = c.User.Role
		}
	}
	return id
}

// VerifyIdentity checks the HMAC signature and time claims of token against
// secret and returns the identity it carries.
func VerifyIdentity(token, secret string, leeway time.Duration) (*Identity, error) {
	if token == "" {
		return nil, fmt.Errorf("token string is empty")
	}

	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithLeeway(leeway))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, fmt.Errorf("token expired: %w", err)
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, fmt.Errorf("invalid token signature: %w", err)
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, fmt.Errorf("malformed token: %w", err)
		}
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !parsed.Valid {
		return nil, fmt.Errorf("token is not valid")
	}

	id := claims.identity()
	if id.UserID == "" {
		return nil, ErrNoUserID
	}
	return id, nil
}
