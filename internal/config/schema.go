// Package config defines the configuration schema for mailbridge.
//
// JSON keys use camelCase; YAML and TOML files use the same key names.
package config

import (
	"log/slog"
	"strings"
	"time"
)

// Config is the root configuration.
type Config struct {
	Mail   MailConfig   `json:"mail" yaml:"mail" toml:"mail"`
	Log    LogConfig    `json:"log" yaml:"log" toml:"log"`
	Server ServerConfig `json:"server" yaml:"server" toml:"server"`
}

// MailConfig configures script execution against the Mail application.
type MailConfig struct {
	Interpreter    string `json:"interpreter" yaml:"interpreter" toml:"interpreter"`
	StagingDir     string `json:"stagingDir,omitempty" yaml:"stagingDir,omitempty" toml:"stagingDir,omitempty"`
	Timeout        int    `json:"timeout" yaml:"timeout" toml:"timeout"` // seconds, 0 = none
	MaxOutputBytes int64  `json:"maxOutputBytes" yaml:"maxOutputBytes" toml:"maxOutputBytes"`
	CheckSchedule  string `json:"checkSchedule,omitempty" yaml:"checkSchedule,omitempty" toml:"checkSchedule,omitempty"`
}

func defaultMailConfig() MailConfig {
	return MailConfig{
		Interpreter:    "osascript",
		MaxOutputBytes: 50 << 20,
	}
}

// TimeoutDuration returns Timeout as a duration; zero means no timeout.
func (m MailConfig) TimeoutDuration() time.Duration {
	if m.Timeout <= 0 {
		return 0
	}
	return time.Duration(m.Timeout) * time.Second
}

// LogConfig configures the slog handler installed at startup.
type LogConfig struct {
	Level  string `json:"level" yaml:"level" toml:"level"`
	Format string `json:"format" yaml:"format" toml:"format"` // text | json
}

func defaultLogConfig() LogConfig {
	return LogConfig{Level: "info", Format: "text"}
}

// SlogLevel maps Level onto a slog.Level, defaulting to info.
func (l LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(l.Level)) {
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

// ServerConfig is what the server reports about itself during the MCP handshake.
type ServerConfig struct {
	Name    string `json:"name" yaml:"name" toml:"name"`
	Version string `json:"version" yaml:"version" toml:"version"`
}

func defaultServerConfig() ServerConfig {
	return ServerConfig{Name: "mailbridge", Version: "0.1.0"}
}

// DefaultConfig returns a Config with every default filled in.
func DefaultConfig() Config {
	return Config{
		Mail:   defaultMailConfig(),
		Log:    defaultLogConfig(),
		Server: defaultServerConfig(),
	}
}
