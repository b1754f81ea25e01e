package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// JWTConfig enables signature checks on incoming dashboard tokens. Without it
// the server only decodes tokens and leaves validity to the backend.
type JWTConfig struct {
	Secret        string
	LeewaySeconds int
}

// NewJWTConfig creates a JWT configuration from environment variables.
// It reads JOBLIFY_JWT_SECRET and JOBLIFY_JWT_LEEWAY_SECONDS (default: 30).
// A nil config with no error means verification is disabled.
func NewJWTConfig() (*JWTConfig, error) {
	secret := os.Getenv("JOBLIFY_JWT_SECRET")
	if secret == "" {
		return nil, nil
	}

	leewayStr := os.Getenv("JOBLIFY_JWT_LEEWAY_SECONDS")
	if leewayStr == "" {
		leewayStr = "30" // default
	}

	leeway, err := strconv.Atoi(leewayStr)
	if err != nil {
		return nil, fmt.Errorf("invalid JOBLIFY_JWT_LEEWAY_SECONDS: %v", err)
	}

	config := &JWTConfig{
		Secret:        secret,
		LeewaySeconds: leeway,
	}

	if err := config.normalize(); err != nil {
		return nil, err
	}

	return config, nil
}

// Leeway returns the allowed clock skew.
func (c *JWTConfig) Leeway() time.Duration {
	return time.Duration(c.LeewaySeconds) * time.Second
}

// normalize validates the configuration.
func (c *JWTConfig) normalize() error {
	if len(c.Secret) < 16 {
		return fmt.Errorf("JOBLIFY_JWT_SECRET must be at least 16 characters")
	}
	if c.LeewaySeconds < 0 {
		return fmt.Errorf("JOBLIFY_JWT_LEEWAY_SECONDS must be non-negative, got: %d", c.LeewaySeconds)
	}
	return nil
}
