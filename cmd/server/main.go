package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/duochat/duochat-server/internal/app"
	"github.com/duochat/duochat-server/internal/config"
	"github.com/duochat/duochat-server/internal/log"
)

func main() {
	var (
		configPath string
		logLevel   string
	)
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	cfg := config.Default()
	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP listen address")
	flag.DurationVar(&cfg.PresenceTimeout, "presence-timeout", cfg.PresenceTimeout, "staleness window before a user is considered offline")
	flag.DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", cfg.ShutdownTimeout, "graceful shutdown timeout")
	flag.Parse()

	bootLogger := log.New("info")
	loaded, path, err := config.Load(bootLogger, configPath)
	if err != nil {
		bootLogger.Fatal().Err(err).Str("path", path).Msg("failed to load config")
	}

	// Flags passed explicitly win over file and env values.
	overrides := cfg
	cfg = loaded
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "addr":
			cfg.Addr = overrides.Addr
		case "presence-timeout":
			cfg.PresenceTimeout = overrides.PresenceTimeout
		case "shutdown-timeout":
			cfg.ShutdownTimeout = overrides.ShutdownTimeout
		case "log-level":
			cfg.LogLevel = logLevel
		}
	})

	logger := log.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application := app.New(cfg, logger)

	logger.Info().Str("addr", cfg.Addr).Msg("starting duochat server")
	if err := application.Run(ctx); err != nil {
		logger.Fatal().Err(err).Msg("server exited with error")
	}
	logger.Info().Msg("server stopped")
}
