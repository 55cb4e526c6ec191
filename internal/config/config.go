package config

import "time"

// Config holds server configuration values.
type Config struct {
	Addr              string        `mapstructure:"addr" yaml:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	LogLevel          string        `mapstructure:"log_level" yaml:"log_level"`
	PresenceTimeout   time.Duration `mapstructure:"presence_timeout" yaml:"presence_timeout"`
	HistoryLimit      int           `mapstructure:"history_limit" yaml:"history_limit"`
	MaxMessageBytes   int64         `mapstructure:"max_message_bytes" yaml:"max_message_bytes"`
}

// Default returns configuration with reasonable starter defaults. The
// presence and history defaults match the documented store policy.
func Default() Config {
	return Config{
		Addr:              ":8080",
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   5 * time.Second,
		LogLevel:          "info",
		PresenceTimeout:   30 * time.Second,
		HistoryLimit:      100,
		MaxMessageBytes:   1 << 20,
	}
}
