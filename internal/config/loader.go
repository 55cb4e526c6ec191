package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	envConfigDefaultPath = "DUOCHAT_CONFIG_DEFAULT_PATH"
	defaultConfigName    = "config.yaml"
)

// Load builds configuration from defaults, an optional config file, and
// env vars (DUOCHAT_ prefix), returning the resolved config file path.
// Precedence: defaults < config file < env vars. A missing config file is
// written out with the defaults so operators have something to edit.
func Load(logger *zerolog.Logger, explicitPath string) (Config, string, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigType("yaml")
	for key, val := range map[string]any{
		"addr":                cfg.Addr,
		"read_header_timeout": cfg.ReadHeaderTimeout,
		"shutdown_timeout":    cfg.ShutdownTimeout,
		"log_level":           cfg.LogLevel,
		"presence_timeout":    cfg.PresenceTimeout,
		"history_limit":       cfg.HistoryLimit,
		"max_message_bytes":   cfg.MaxMessageBytes,
	} {
		v.SetDefault(key, val)
	}

	v.SetEnvPrefix("DUOCHAT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	configPath := resolveConfigPath(explicitPath)
	v.SetConfigFile(configPath)

	switch err := v.ReadInConfig(); {
	case err == nil:
	case isConfigNotFound(err):
		if writeErr := writeDefaultConfig(configPath, cfg); writeErr != nil {
			logger.Warn().Err(writeErr).Str("path", configPath).Msg("failed to write default config")
		} else {
			logger.Info().Str("path", configPath).Msg("created default config")
			if readErr := v.ReadInConfig(); readErr != nil {
				logger.Warn().Err(readErr).Str("path", configPath).Msg("failed to read config after writing default")
			}
		}
	default:
		return cfg, configPath, fmt.Errorf("read config: %w", err)
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, configPath, fmt.Errorf("unmarshal config: %w", err)
	}

	return cfg, configPath, nil
}

func isConfigNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist)
}

func resolveConfigPath(explicitPath string) string {
	if explicitPath != "" {
		return explicitPath
	}

	if base := os.Getenv(envConfigDefaultPath); base != "" {
		if err := os.MkdirAll(base, 0o755); err == nil {
			return filepath.Join(base, defaultConfigName)
		}
	}

	cwd, err := os.Getwd()
	if err != nil {
		return defaultConfigName
	}
	return filepath.Join(cwd, defaultConfigName)
}

func writeDefaultConfig(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}
