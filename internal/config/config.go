package config

import (
	"fmt"
	"time"
)

type Config struct {
	Server ServerConfig `json:"server"`

	// Database Configuration
	Database DatabaseConfig `json:"database"`

	// Chat / messaging core configuration
	Chat ChatConfig `json:"chat"`

	// Redis Configuration (optional cross-process fan-out)
	Redis RedisConfig `json:"redis"`

	// Logging Configuration
	Logging LoggingConfig `json:"logging"`
}

// ServerConfig contains server-related configuration
type ServerConfig struct {
	Port         string `json:"port"`
	Host         string `json:"host"`
	ReadTimeout  int    `json:"read_timeout"`
	WriteTimeout int    `json:"write_timeout"`
	Environment  string `json:"environment"` // development, staging, production
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Host         string `json:"host"`
	Port         string `json:"port"`
	Username     string `json:"username"`
	Password     string `json:"password"`
	DatabaseName string `json:"database_name"`
	MaxOpenConns int    `json:"max_open_conns"`
	MaxIdleConns int    `json:"max_idle_conns"`
}

// ChatConfig contains messaging core configuration
type ChatConfig struct {
	DefaultPageSize int `json:"default_page_size"` // messages per page when unspecified
	MaxPageSize     int `json:"max_page_size"`     // hard cap on page size
	SearchLimit     int `json:"search_limit"`      // max search results
	IdleTimeout     int `json:"idle_timeout"`      // websocket idle timeout, seconds
	SendBufferSize  int `json:"send_buffer_size"`  // per-session outbound frame buffer
}

// RedisConfig contains the optional pub-sub fabric configuration
type RedisConfig struct {
	Addr    string `json:"addr"`
	Enabled bool   `json:"enabled"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level      string `json:"level"`       // debug, info, warn, error
	Format     string `json:"format"`      // json, text
	OutputPath string `json:"output_path"` // stdout, stderr, or file path
}

func (cfg *Config) DSN() string {
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == "" {
		cfg.Database.Port = "3306"
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DatabaseName,
	)
}

// IdleTimeout returns the websocket idle timeout as a duration, defaulting
// to 120 seconds.
func (cfg *Config) IdleTimeout() time.Duration {
	if cfg.Chat.IdleTimeout <= 0 {
		return 120 * time.Second
	}
	return time.Duration(cfg.Chat.IdleTimeout) * time.Second
}
