// Package config handles configuration loading for the server.
// Values come from an optional YAML file with environment variable
// overrides; business logic never reads the environment directly.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

// Version is the application version reported by /system/version.
const Version = "0.1.0"

// Config holds all configuration values for the application.
type Config struct {
	// Database connection string
	DatabaseURL string

	// HTTP server port
	HTTPPort int

	// Administrator bootstrap credentials. The admin account and user
	// are created idempotently at startup.
	AdminEmail    string
	AdminPassword string
	AdminAccount  string

	// Token signing
	SecretKey         string
	Algorithm         string
	AccessTokenExpire time.Duration

	// Password hashing cost factor
	BcryptCost int

	// Per-user request rate limiting; 0 disables the limiter.
	RateLimit      float64
	RateLimitBurst int

	// OTLP trace collector endpoint
	OTELEndpoint string
}

// Load reads configuration from the given YAML file (optional) and
// from environment variables. Environment variables take precedence.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("port", 8080)
	v.SetDefault("algorithm", "HS256")
	v.SetDefault("access_token_expire_minutes", 30)
	v.SetDefault("bcrypt_cost", bcrypt.DefaultCost)
	v.SetDefault("rate_limit", 0.0)
	v.SetDefault("rate_limit_burst", 10)
	v.SetDefault("otel_endpoint", "localhost:4317")

	for key, env := range map[string]string{
		"database_url":                "DATABASE_URL",
		"port":                        "PORT",
		"admin_email":                 "ADMIN_EMAIL",
		"admin_password":              "ADMIN_PASSWORD",
		"admin_account":               "ADMIN_ACCOUNT",
		"secret_key":                  "SECRET_KEY",
		"algorithm":                   "ALGORITHM",
		"access_token_expire_minutes": "ACCESS_TOKEN_EXPIRE_MINUTES",
		"bcrypt_cost":                 "BCRYPT_COST",
		"rate_limit":                  "RATE_LIMIT",
		"rate_limit_burst":            "RATE_LIMIT_BURST",
		"otel_endpoint":               "OTEL_ENDPOINT",
	} {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		v.SetConfigName("jobmanager")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		// A config file is optional when no path is given.
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	for key, env := range map[string]string{
		"database_url":   "DATABASE_URL",
		"admin_email":    "ADMIN_EMAIL",
		"admin_password": "ADMIN_PASSWORD",
		"admin_account":  "ADMIN_ACCOUNT",
		"secret_key":     "SECRET_KEY",
	} {
		if v.GetString(key) == "" {
			return nil, fmt.Errorf("%s is required (env: %s)", key, env)
		}
	}

	return &Config{
		DatabaseURL:       v.GetString("database_url"),
		HTTPPort:          v.GetInt("port"),
		AdminEmail:        v.GetString("admin_email"),
		AdminPassword:     v.GetString("admin_password"),
		AdminAccount:      v.GetString("admin_account"),
		SecretKey:         v.GetString("secret_key"),
		Algorithm:         v.GetString("algorithm"),
		AccessTokenExpire: time.Duration(v.GetInt("access_token_expire_minutes")) * time.Minute,
		BcryptCost:        v.GetInt("bcrypt_cost"),
		RateLimit:         v.GetFloat64("rate_limit"),
		RateLimitBurst:    v.GetInt("rate_limit_burst"),
		OTELEndpoint:      v.GetString("otel_endpoint"),
	}, nil
}
