// Package config loads the service configuration. Values come from built-in
// defaults, an optional YAML file and environment variables, in that order of
// increasing precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the service configuration.
type Config struct {
	// Server
	Port        int      `yaml:"port" validate:"min=1,max=65535"`
	CORSOrigins []string `yaml:"cors_origins"`

	// Logging
	LogLevel  string `yaml:"log_level" validate:"oneof=debug info warn error"`
	LogFormat string `yaml:"log_format" validate:"oneof=json console"`

	// Engine. An empty CatalogPath uses the embedded catalog; a zero BaseDayRate
	// keeps the catalog rate.
	CatalogPath string  `yaml:"catalog_path"`
	BaseDayRate float64 `yaml:"base_day_rate" validate:"gte=0"`

	// PDF
	PDFTimeout time.Duration `yaml:"pdf_timeout" validate:"gt=0"`
	ChromePath string        `yaml:"chrome_path"`

	// Storage. Empty disables persistence and auth.
	DatabaseURL string `yaml:"database_url"`

	// Auth
	JWTSecret          string `yaml:"jwt_secret"`
	JWTExpirationHours int    `yaml:"jwt_expiration_hours" validate:"min=1"`
	BcryptCost         int    `yaml:"bcrypt_cost" validate:"min=10,max=14"`
	PasswordPepper     string `yaml:"password_pepper"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Port:               8080,
		LogLevel:           "info",
		LogFormat:          "json",
		PDFTimeout:         30 * time.Second,
		JWTExpirationHours: 24,
		BcryptCost:         12,
	}
}

// Load builds the configuration from defaults, the YAML file at path (optional)
// and the environment, then validates it.
func Load(path string) (*Config, error) {
	cfg := Defaults()
	if path != "" {
		file, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		cfg = file.MergeWithDefaults(cfg)
	}

	cfg, err := cfg.ApplyEnv(os.Getenv)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFile loads configuration from a YAML file.
// Returns an error if the file cannot be read or parsed.
func LoadFile(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	return &cfg, nil
}

// MergeWithDefaults returns a new Config with zero-valued fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if len(result.CORSOrigins) == 0 {
		result.CORSOrigins = defaults.CORSOrigins
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.LogFormat == "" {
		result.LogFormat = defaults.LogFormat
	}
	if result.CatalogPath == "" {
		result.CatalogPath = defaults.CatalogPath
	}
	if result.BaseDayRate == 0 {
		result.BaseDayRate = defaults.BaseDayRate
	}
	if result.PDFTimeout == 0 {
		result.PDFTimeout = defaults.PDFTimeout
	}
	if result.ChromePath == "" {
		result.ChromePath = defaults.ChromePath
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.JWTSecret == "" {
		result.JWTSecret = defaults.JWTSecret
	}
	if result.JWTExpirationHours == 0 {
		result.JWTExpirationHours = defaults.JWTExpirationHours
	}
	if result.BcryptCost == 0 {
		result.BcryptCost = defaults.BcryptCost
	}
	if result.PasswordPepper == "" {
		result.PasswordPepper = defaults.PasswordPepper
	}
	return result
}

// ApplyEnv overrides fields from environment variables read through getenv.
// Unset variables leave the current value.
func (c Config) ApplyEnv(getenv func(string) string) (Config, error) {
	var errs []string

	str := func(key string, dst *string) {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			*dst = v
		}
	}
	num := func(key string, dst *int) {
		v := strings.TrimSpace(getenv(key))
		if v == "" {
			return
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Sprintf("invalid %s: %v", key, err))
			return
		}
		*dst = n
	}

	num("PORT", &c.Port)
	if v := strings.TrimSpace(getenv("CORS_ALLOWED_ORIGINS")); v != "" {
		c.CORSOrigins = splitList(v)
	}
	str("LOG_LEVEL", &c.LogLevel)
	str("LOG_FORMAT", &c.LogFormat)
	str("CATALOG_PATH", &c.CatalogPath)
	if v := strings.TrimSpace(getenv("BASE_DAY_RATE")); v != "" {
		rate, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, fmt.Sprintf("invalid BASE_DAY_RATE: %v", err))
		} else {
			c.BaseDayRate = rate
		}
	}
	if v := strings.TrimSpace(getenv("PDF_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Sprintf("invalid PDF_TIMEOUT: %v", err))
		} else {
			c.PDFTimeout = d
		}
	}
	str("CHROME_PATH", &c.ChromePath)
	str("DATABASE_URL", &c.DatabaseURL)
	str("JWT_SECRET", &c.JWTSecret)
	num("JWT_EXPIRATION_HOURS", &c.JWTExpirationHours)
	num("BCRYPT_COST", &c.BcryptCost)
	str("PASSWORD_PEPPER", &c.PasswordPepper)

	if len(errs) > 0 {
		return c, fmt.Errorf("config error: %s", strings.Join(errs, "; "))
	}
	return c, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("'%s' failed '%s' (got %v)", fe.Field(), fe.Tag(), fe.Value()))
			}
			return fmt.Errorf("config error: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("config error: %w", err)
	}

	if c.CatalogPath != "" {
		if _, err := os.Stat(c.CatalogPath); os.IsNotExist(err) {
			return fmt.Errorf("config error: catalog file not found: %s", c.CatalogPath)
		}
	}
	return nil
}

// AuthEnabled reports whether accounts and stored offers can be served.
func (c *Config) AuthEnabled() bool {
	return c.DatabaseURL != "" && c.JWTSecret != ""
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
