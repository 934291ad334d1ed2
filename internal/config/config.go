package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	HTTP struct {
		Addr string
	}
	DB struct {
		Driver string
		DSN    string
	}
	Auth struct {
		JWTSecret     string
		TokenLifetime time.Duration
		BcryptCost    int
	}
}

// Load reads config from environment (BIOLINK_ prefix) and optional biolink.yaml.
// The JWT secret is required at startup: the server refuses to run rather than
// sign tokens with an empty key.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("BIOLINK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigName("biolink")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional config file

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("auth.token_lifetime", "24h")
	v.SetDefault("auth.bcrypt_cost", 10)

	cfg := &Config{}
	cfg.HTTP.Addr = v.GetString("http.addr")
	cfg.DB.Driver = v.GetString("db.driver")
	cfg.DB.DSN = v.GetString("db.dsn")
	cfg.Auth.JWTSecret = v.GetString("auth.jwt_secret")
	cfg.Auth.BcryptCost = v.GetInt("auth.bcrypt_cost")

	lifetime, err := time.ParseDuration(v.GetString("auth.token_lifetime"))
	if err != nil {
		return nil, fmt.Errorf("invalid BIOLINK_AUTH_TOKEN_LIFETIME: %w", err)
	}
	cfg.Auth.TokenLifetime = lifetime

	if cfg.DB.Driver == "" {
		return nil, fmt.Errorf("BIOLINK_DB_DRIVER is required (sqlite3, mysql, postgres)")
	}
	if cfg.DB.DSN == "" {
		return nil, fmt.Errorf("BIOLINK_DB_DSN is required")
	}
	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("BIOLINK_AUTH_JWT_SECRET is required")
	}

	return cfg, nil
}
