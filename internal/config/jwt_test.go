package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJWTConfig(t *testing.T) {
	tests := []struct {
		name    string
		secret  string
		hours   int
		wantTTL time.Duration
		wantErr string
	}{
		{name: "default expiration", secret: "s", hours: 24, wantTTL: 24 * time.Hour},
		{name: "minimum expiration", secret: "s", hours: 1, wantTTL: time.Hour},
		{name: "missing secret", hours: 24, wantErr: "JWT_SECRET is required"},
		{name: "zero expiration", secret: "s", hours: 0, wantErr: "at least 1 hour"},
		{name: "negative expiration", secret: "s", hours: -5, wantErr: "at least 1 hour"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := NewJWTConfig(tt.secret, tt.hours)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.secret, cfg.Secret)
			assert.Equal(t, tt.wantTTL, cfg.TTL)
		})
	}
}

func TestConfig_JWT(t *testing.T) {
	cfg := Defaults()
	_, err := cfg.JWT()
	assert.Error(t, err)

	cfg.JWTSecret = "secret"
	jwtCfg, err := cfg.JWT()
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, jwtCfg.TTL)
}
