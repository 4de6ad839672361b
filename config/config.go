// Package config provides environment-based configuration for inkwell.
//
// Configuration is loaded from environment variables using Viper, with
// sensible defaults for development. Token-signing settings are validated
// at load time: a missing secret, issuer, audience or TTL aborts startup
// rather than failing a later request.
//
// # Environment Variables
//
//   - DB_TYPE: Database type (sqlite, postgres, mysql). Default: sqlite
//   - DSN: Database connection string. Default: inkwell.db
//   - LOG_LEVEL: Logging level (debug, info, warn, error). Default: info
//   - PORT: HTTP server port. Default: 8080
//   - JWT_SECRET: HMAC signing secret (required)
//   - JWT_ISSUER / JWT_AUDIENCE: claim values (required)
//   - JWT_ACCESS_TTL / JWT_REFRESH_TTL: token lifetimes (e.g. 15m, 720h)
//   - GOOGLE_CLIENT_ID / GOOGLE_CLIENT_SECRET: federation credentials
//   - S3_*: upload object-store settings
//   - REDIS_ADDR: optional, enables the Redis sign-in lockout store
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	DBType          string `mapstructure:"DB_TYPE"` // sqlite, postgres, mysql
	DSN             string `mapstructure:"DSN"`
	SkipAutoMigrate bool   `mapstructure:"SKIP_AUTO_MIGRATE"`
	LogLevel        string `mapstructure:"LOG_LEVEL"`
	Port            int    `mapstructure:"PORT"`

	JWT     JWT     `mapstructure:",squash"`
	Google  Google  `mapstructure:",squash"`
	S3      S3      `mapstructure:",squash"`
	Lockout Lockout `mapstructure:",squash"`

	RedisAddr string `mapstructure:"REDIS_ADDR"`
}

// JWT holds the token-signing configuration. Immutable after load.
type JWT struct {
	Secret     string        `mapstructure:"JWT_SECRET"`
	Issuer     string        `mapstructure:"JWT_ISSUER"`
	Audience   string        `mapstructure:"JWT_AUDIENCE"`
	AccessTTL  time.Duration `mapstructure:"JWT_ACCESS_TTL"`
	RefreshTTL time.Duration `mapstructure:"JWT_REFRESH_TTL"`
}

type Google struct {
	ClientID     string `mapstructure:"GOOGLE_CLIENT_ID"`
	ClientSecret string `mapstructure:"GOOGLE_CLIENT_SECRET"`
}

type S3 struct {
	AccessKeyID string `mapstructure:"S3_ACCESS_KEY_ID"`
	SecretKey   string `mapstructure:"S3_SECRET_ACCESS_KEY"`
	Bucket      string `mapstructure:"S3_BUCKET"`
	Region      string `mapstructure:"S3_REGION"`
	CDNBaseURL  string `mapstructure:"S3_CDN_BASE_URL"`
}

type Lockout struct {
	MaxFailures  int           `mapstructure:"LOCKOUT_MAX_FAILURES"`
	Window       time.Duration `mapstructure:"LOCKOUT_WINDOW"`
	LockDuration time.Duration `mapstructure:"LOCKOUT_DURATION"`
}

func LoadConfig() (*Config, error) {
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("PORT", 8080)
	viper.SetDefault("DB_TYPE", "sqlite")
	viper.SetDefault("DSN", "inkwell.db")
	viper.SetDefault("SKIP_AUTO_MIGRATE", false)
	viper.SetDefault("JWT_ACCESS_TTL", "15m")
	viper.SetDefault("JWT_REFRESH_TTL", "720h")
	viper.SetDefault("LOCKOUT_MAX_FAILURES", 5)
	viper.SetDefault("LOCKOUT_WINDOW", "15m")
	viper.SetDefault("LOCKOUT_DURATION", "15m")

	// Keys without defaults must still be registered for AutomaticEnv to
	// surface them through Unmarshal.
	for _, key := range []string{
		"JWT_SECRET", "JWT_ISSUER", "JWT_AUDIENCE",
		"GOOGLE_CLIENT_ID", "GOOGLE_CLIENT_SECRET",
		"S3_ACCESS_KEY_ID", "S3_SECRET_ACCESS_KEY", "S3_BUCKET", "S3_REGION", "S3_CDN_BASE_URL",
		"REDIS_ADDR",
	} {
		viper.SetDefault(key, "")
	}

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that every setting required to mint or verify tokens is
// present. The process must not serve traffic with a partial signing config.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("config: JWT_SECRET is required")
	}
	if c.JWT.Issuer == "" {
		return errors.New("config: JWT_ISSUER is required")
	}
	if c.JWT.Audience == "" {
		return errors.New("config: JWT_AUDIENCE is required")
	}
	if c.JWT.AccessTTL <= 0 {
		return fmt.Errorf("config: JWT_ACCESS_TTL must be positive, got %v", c.JWT.AccessTTL)
	}
	if c.JWT.RefreshTTL <= 0 {
		return fmt.Errorf("config: JWT_REFRESH_TTL must be positive, got %v", c.JWT.RefreshTTL)
	}
	if c.Google.ClientID == "" {
		return errors.New("config: GOOGLE_CLIENT_ID is required")
	}
	if c.Google.ClientSecret == "" {
		return errors.New("config: GOOGLE_CLIENT_SECRET is required")
	}
	if c.Lockout.MaxFailures <= 0 {
		return fmt.Errorf("config: LOCKOUT_MAX_FAILURES must be positive, got %d", c.Lockout.MaxFailures)
	}
	return nil
}
