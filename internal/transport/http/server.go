// Package http exposes the chat service over its two transports: a
// stateless polling REST API and a WebSocket event channel. Both are thin
// adapters around the shared store; validation happens here, never inside
// the store.
package http

import (
	stdhttp "net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/duochat/duochat-server/internal/chat"
	"github.com/duochat/duochat-server/internal/config"
	"github.com/duochat/duochat-server/internal/core"
)

// NewServer builds the HTTP server with both transport adapters mounted.
func NewServer(hub *core.Hub, store *chat.Store, cfg config.Config, logger *zerolog.Logger) *stdhttp.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery(), LoggerMiddleware(logger))

	router.GET("/health", healthHandler)
	router.GET("/ws", gin.WrapH(NewWSHandler(hub, cfg.MaxMessageBytes, logger)))

	poll := NewPollHandlers(store, logger)
	api := router.Group("/api")
	api.POST("/join", poll.Join)
	api.POST("/messages", poll.Send)
	api.GET("/messages", poll.Poll)
	api.POST("/leave", poll.Leave)
	api.GET("/stats", poll.Stats)

	return &stdhttp.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}
}

func healthHandler(c *gin.Context) {
	c.String(stdhttp.StatusOK, "ok")
}
