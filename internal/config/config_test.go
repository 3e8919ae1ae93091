package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestDefaults_AreValid(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, ":8080", cfg.Addr())
	assert.False(t, cfg.AuthEnabled())
}

func TestLoadFile_ValidYAML(t *testing.T) {
	content := `
port: 9090
log_level: debug
log_format: console
base_day_rate: 2200
pdf_timeout: 45s
cors_origins:
  - https://app.example.com
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, 2200.0, cfg.BaseDayRate)
	assert.Equal(t, 45*time.Second, cfg.PDFTimeout)
	assert.Equal(t, []string{"https://app.example.com"}, cfg.CORSOrigins)
}

func TestLoadFile_Errors(t *testing.T) {
	_, err := LoadFile("")
	assert.ErrorContains(t, err, "config path is empty")

	_, err = LoadFile("/nonexistent/path/config.yaml")
	assert.ErrorContains(t, err, "failed to read config file")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: [1, 2"), 0644))
	_, err = LoadFile(path)
	assert.ErrorContains(t, err, "failed to parse config YAML")
}

func TestMergeWithDefaults(t *testing.T) {
	partial := Config{Port: 9000, JWTSecret: "s"}
	merged := partial.MergeWithDefaults(Defaults())

	assert.Equal(t, 9000, merged.Port)
	assert.Equal(t, "s", merged.JWTSecret)
	assert.Equal(t, "info", merged.LogLevel)
	assert.Equal(t, 12, merged.BcryptCost)
	assert.Equal(t, 30*time.Second, merged.PDFTimeout)
}

func TestApplyEnv(t *testing.T) {
	cfg, err := Defaults().ApplyEnv(envMap(map[string]string{
		"PORT":                 "7000",
		"LOG_LEVEL":            "warn",
		"BASE_DAY_RATE":        "2500.5",
		"PDF_TIMEOUT":          "10s",
		"CORS_ALLOWED_ORIGINS": "https://a.example, ,https://b.example",
		"DATABASE_URL":         "postgres://localhost/mandates",
		"JWT_SECRET":           "secret",
		"JWT_EXPIRATION_HOURS": "8",
		"BCRYPT_COST":          "10",
		"PASSWORD_PEPPER":      "pepper",
	}))
	require.NoError(t, err)

	assert.Equal(t, 7000, cfg.Port)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat, "unset variables keep the current value")
	assert.Equal(t, 2500.5, cfg.BaseDayRate)
	assert.Equal(t, 10*time.Second, cfg.PDFTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.True(t, cfg.AuthEnabled())
	assert.Equal(t, 8, cfg.JWTExpirationHours)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, "pepper", cfg.PasswordPepper)
}

func TestApplyEnv_InvalidValues(t *testing.T) {
	_, err := Defaults().ApplyEnv(envMap(map[string]string{
		"PORT":          "eighty",
		"BASE_DAY_RATE": "lots",
		"PDF_TIMEOUT":   "5 minutes",
	}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid PORT")
	assert.Contains(t, err.Error(), "invalid BASE_DAY_RATE")
	assert.Contains(t, err.Error(), "invalid PDF_TIMEOUT")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"port too high", func(c *Config) { c.Port = 70000 }, "'Port' failed 'max'"},
		{"unknown log level", func(c *Config) { c.LogLevel = "verbose" }, "'LogLevel' failed 'oneof'"},
		{"unknown log format", func(c *Config) { c.LogFormat = "xml" }, "'LogFormat' failed 'oneof'"},
		{"negative day rate", func(c *Config) { c.BaseDayRate = -1 }, "'BaseDayRate' failed 'gte'"},
		{"zero pdf timeout", func(c *Config) { c.PDFTimeout = 0 }, "'PDFTimeout' failed 'gt'"},
		{"bcrypt cost too low", func(c *Config) { c.BcryptCost = 4 }, "'BcryptCost' failed 'min'"},
		{"missing catalog", func(c *Config) { c.CatalogPath = "/nonexistent/catalog.yaml" }, "catalog file not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: 9090\nlog_level: debug\n"), 0644))

	t.Setenv("PORT", "9191")
	t.Setenv("LOG_LEVEL", "")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9191, cfg.Port, "environment wins over the file")
	assert.Equal(t, "debug", cfg.LogLevel, "file wins over defaults")
	assert.Equal(t, "json", cfg.LogFormat)

	t.Setenv("LOG_FORMAT", "xml")
	_, err = Load("")
	assert.ErrorContains(t, err, "LogFormat")
}
