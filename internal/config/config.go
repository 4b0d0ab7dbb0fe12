// Package config loads server and CLI settings.
//
// Sources, lowest priority first:
//  1. built-in defaults
//  2. collabspace.yaml in the working directory or ./config (optional)
//  3. a .env file in the working directory (optional)
//  4. COLLAB_* environment variables, e.g. COLLAB_JWT_SECRET
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "COLLAB"

// Store backends for projects and tasks.
const (
	StoreSQLite = "sqlite"
	StoreLocal  = "local"
)

type Config struct {
	Port     int    `mapstructure:"port"`
	LogLevel string `mapstructure:"log_level"`

	DBPath    string `mapstructure:"db_path"`
	Store     string `mapstructure:"store"`
	LocalPath string `mapstructure:"local_path"`

	JWTSecret    string        `mapstructure:"jwt_secret"`
	SessionTTL   time.Duration `mapstructure:"session_ttl"`
	SecureCookie bool          `mapstructure:"secure_cookie"`

	GitHubToken  string `mapstructure:"github_token"`
	GitHubAPIURL string `mapstructure:"github_api_url"`
	SyncLimit    int    `mapstructure:"sync_limit"`
	DetailLimit  int    `mapstructure:"detail_limit"`

	CORSOrigins []string `mapstructure:"cors_origins"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", 8080)
	v.SetDefault("log_level", "info")
	v.SetDefault("db_path", "data/collabspace.db")
	v.SetDefault("store", StoreSQLite)
	v.SetDefault("local_path", "data/db.json")
	v.SetDefault("jwt_secret", "")
	v.SetDefault("session_ttl", 2*time.Hour)
	v.SetDefault("secure_cookie", false)
	v.SetDefault("github_token", "")
	v.SetDefault("github_api_url", "")
	v.SetDefault("sync_limit", 20)
	v.SetDefault("detail_limit", 10)
	v.SetDefault("cors_origins", []string{"http://localhost:3000"})
}

// Load reads the configuration. configFile may name an explicit YAML file;
// when empty, collabspace.yaml is looked up and silently skipped if absent.
func Load(configFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug(".env file not found, using environment and defaults")
	}

	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("collabspace")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: reading %s: %w", v.ConfigFileUsed(), err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decoding: %w", err)
	}
	cfg.CORSOrigins = splitList(cfg.CORSOrigins)
	return &cfg, nil
}

// Validate checks the settings the HTTP server cannot start without.
func (c *Config) Validate() error {
	if len(c.JWTSecret) < 16 {
		return fmt.Errorf("config: %s_JWT_SECRET must be at least 16 characters", envPrefix)
	}
	if c.Store != StoreSQLite && c.Store != StoreLocal {
		return fmt.Errorf("config: store must be %q or %q, got %q", StoreSQLite, StoreLocal, c.Store)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config: invalid port %d", c.Port)
	}
	return nil
}

// SlogLevel maps log_level to a slog level. Unknown names mean info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// splitList flattens comma-separated entries, as they arrive from a single
// environment variable, and drops blanks.
func splitList(items []string) []string {
	var out []string
	for _, item := range items {
		for _, part := range strings.Split(item, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
