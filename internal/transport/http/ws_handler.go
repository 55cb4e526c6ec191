package http

import (
	"context"
	"errors"
	"io"
	stdhttp "net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/duochat/duochat-server/internal/core"
	"github.com/duochat/duochat-server/internal/proto"
)

// WSHandler upgrades HTTP connections and bridges them to core.Client.
type WSHandler struct {
	hub             *core.Hub
	maxMessageBytes int64
	log             *zerolog.Logger
}

// NewWSHandler builds a new WebSocket handler.
func NewWSHandler(hub *core.Hub, maxMessageBytes int64, logger *zerolog.Logger) stdhttp.Handler {
	return &WSHandler{hub: hub, maxMessageBytes: maxMessageBytes, log: logger}
}

func (h *WSHandler) ServeHTTP(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	ctx := r.Context()

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true,
	})
	if err != nil {
		h.log.Error().Err(err).Msg("ws accept error")
		return
	}
	defer conn.Close(websocket.StatusInternalError, "internal error")

	if h.maxMessageBytes > 0 {
		conn.SetReadLimit(h.maxMessageBytes)
	}

	client := core.NewClient(uuid.NewString())
	h.hub.RegisterClient(client)
	defer h.hub.UnregisterClient(client)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 2)
	go func() {
		errCh <- h.readLoop(ctx, conn, client)
	}()
	go func() {
		errCh <- h.writeLoop(ctx, conn, client)
	}()

	err = <-errCh
	cancel() // stop the other goroutine
	<-errCh

	status, reason := closeStatus(err)
	if status == websocket.StatusInternalError {
		h.log.Warn().Err(err).Str("session_id", client.SessionID).Msg("ws connection closed with error")
	}
	conn.Close(status, reason)
}

// closeStatus maps a loop error to the close frame to send. Normal client
// departures (EOF, normal/going-away closes, context cancellation) are not
// errors.
func closeStatus(err error) (websocket.StatusCode, string) {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
		return websocket.StatusNormalClosure, "closing"
	}
	switch s := websocket.CloseStatus(err); s {
	case websocket.StatusNormalClosure, websocket.StatusGoingAway:
		return websocket.StatusNormalClosure, "closing"
	case -1:
		return websocket.StatusInternalError, err.Error()
	default:
		return s, err.Error()
	}
}

func (h *WSHandler) readLoop(ctx context.Context, conn *websocket.Conn, client *core.Client) error {
	for {
		var inbound proto.Inbound
		if err := wsjson.Read(ctx, conn, &inbound); err != nil {
			return err
		}

		cmd, protoErr, err := inboundToCommand(client, inbound)
		if err != nil {
			h.log.Warn().Err(err).Str("session_id", client.SessionID).Msg("failed to map inbound")
			return err
		}
		if protoErr != nil {
			if writeErr := wsjson.Write(ctx, conn, proto.Outbound{
				Type:  proto.OutboundTypeError,
				Error: protoErr,
			}); writeErr != nil {
				return writeErr
			}
			continue
		}
		if cmd != nil {
			h.hub.Dispatch(*cmd)
		}
	}
}

func (h *WSHandler) writeLoop(ctx context.Context, conn *websocket.Conn, client *core.Client) error {
	for {
		select {
		case event, ok := <-client.Events:
			if !ok {
				return nil
			}
			if err := wsjson.Write(ctx, conn, outboundFromEvent(event)); err != nil {
				h.log.Error().Err(err).Str("session_id", client.SessionID).Msg("write ws event")
				return err
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
