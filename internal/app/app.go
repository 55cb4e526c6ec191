// Package app wires together the store, hub, and transport layers.
package app

import (
	"context"
	stdhttp "net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/duochat/duochat-server/internal/chat"
	"github.com/duochat/duochat-server/internal/config"
	"github.com/duochat/duochat-server/internal/core"
	transporthttp "github.com/duochat/duochat-server/internal/transport/http"
)

// App owns the process-wide chat state and the HTTP server serving both
// transports over it.
type App struct {
	server          *stdhttp.Server
	shutdownTimeout time.Duration
	hub             *core.Hub
	log             *zerolog.Logger
}

// New constructs the application with provided configuration. The store is
// created exactly once here and injected into every adapter.
func New(cfg config.Config, logger *zerolog.Logger) *App {
	store := chat.NewStore(cfg.PresenceTimeout, cfg.HistoryLimit)
	hub := core.NewHub(store, logger)
	server := transporthttp.NewServer(hub, store, cfg, logger)

	return &App{
		server:          server,
		shutdownTimeout: cfg.ShutdownTimeout,
		hub:             hub,
		log:             logger,
	}
}

// Run starts the hub and HTTP server and blocks until context cancellation
// or fatal error.
func (a *App) Run(ctx context.Context) error {
	serverErr := make(chan error, 1)

	go a.hub.Run(ctx)

	go func() {
		if err := a.server.ListenAndServe(); err != nil && err != stdhttp.ErrServerClosed {
			serverErr <- err
			return
		}
		serverErr <- nil
	}()

	select {
	case err := <-serverErr:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
		defer cancel()

		a.log.Info().Msg("shutting down http server")
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return <-serverErr
	}
}
