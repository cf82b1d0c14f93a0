package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix for environment variable overrides.
// A double underscore separates nesting levels, e.g.
// EXECWATCH_POSTGRESQL__DB_NAME maps to postgresql.db_name.
const EnvPrefix = "EXECWATCH_"

// DefaultPort is used when no HTTP listen port is configured.
const DefaultPort = 3000

// Config represents the entire application configuration.
type Config struct {
	Debug      Debug      `koanf:"debug"`
	PostgreSQL PostgreSQL `koanf:"postgresql"`
	Discord    Discord    `koanf:"discord"`
	HTTP       HTTP       `koanf:"http"`
}

// Debug contains debug-related configuration.
type Debug struct {
	// Log level (debug, info, warn, error).
	LogLevel string `koanf:"log_level"`
}

// PostgreSQL contains database connection configuration.
type PostgreSQL struct {
	// Database hostname.
	Host string `koanf:"host"`
	// Database port.
	Port int `koanf:"port"`
	// Database username.
	User string `koanf:"user"`
	// Database password.
	Password string `koanf:"password"`
	// Database name.
	DBName string `koanf:"db_name"`
	// Maximum open connections.
	MaxOpenConns int `koanf:"max_open_conns"`
	// Maximum idle connections.
	MaxIdleConns int `koanf:"max_idle_conns"`
	// Connection lifetime in minutes.
	MaxLifetime int `koanf:"max_lifetime"`
	// Idle timeout in minutes.
	MaxIdleTime int `koanf:"max_idle_time"`
}

// Discord contains Discord bot configuration.
type Discord struct {
	// Discord bot token for authentication.
	Token string `koanf:"token"`
	// Channel ID that receives execution alerts.
	AlertChannelID uint64 `koanf:"alert_channel_id"`
}

// HTTP contains tracker server configuration.
type HTTP struct {
	// Listen port for the tracker server.
	Port int `koanf:"port"`
	// Base URL used by the keepalive self-pinger (empty disables it).
	SelfURL string `koanf:"self_url"`
}

// LoadConfig loads configuration from an optional config.toml overlaid with
// environment variables. Environment values always win so deployments can be
// configured without a config file at all.
func LoadConfig() (*Config, error) {
	k := koanf.New(".")

	// Config file is optional
	configPaths := []string{
		"config.toml",
		"config/config.toml",
		"/etc/execwatch/config.toml",
	}
	for _, path := range configPaths {
		if err := k.Load(file.Provider(path), toml.Parser()); err == nil {
			break
		}
	}

	// Environment overrides
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("error loading environment config: %w", err)
	}

	var config Config
	if err := k.Unmarshal("", &config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if config.HTTP.Port == 0 {
		config.HTTP.Port = DefaultPort
	}

	if config.Debug.LogLevel == "" {
		config.Debug.LogLevel = "info"
	}

	return &config, nil
}
