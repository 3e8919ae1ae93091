package config

import (
	"fmt"
	"time"
)

// JWTConfig holds configuration for JWT token generation and validation.
type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

// JWT returns the token settings, or an error when no secret is configured.
func (c *Config) JWT() (*JWTConfig, error) {
	return NewJWTConfig(c.JWTSecret, c.JWTExpirationHours)
}

// NewJWTConfig validates secret and expiration hours.
func NewJWTConfig(secret string, expirationHours int) (*JWTConfig, error) {
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but not set")
	}
	if expirationHours < 1 {
		return nil, fmt.Errorf("JWT_EXPIRATION_HOURS must be at least 1 hour, got: %d", expirationHours)
	}
	return &JWTConfig{
		Secret: secret,
		TTL:    time.Duration(expirationHours) * time.Hour,
	}, nil
}
