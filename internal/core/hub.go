// Package core coordinates event-channel sessions around the shared chat
// store: registration, join/leave bookkeeping, and fan-out of messages,
// presence updates and typing notices.
package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/duochat/duochat-server/internal/chat"
)

// Hub owns the set of connected sessions. All state is confined to the
// Run goroutine; transports talk to it through channels only.
type Hub struct {
	store *chat.Store
	log   *zerolog.Logger

	register   chan *Client
	unregister chan *Client
	commands   chan Command

	clients map[*Client]struct{}
}

// NewHub creates a hub over the given store.
func NewHub(store *chat.Store, logger *zerolog.Logger) *Hub {
	return &Hub{
		store:      store,
		log:        logger,
		register:   make(chan *Client),
		unregister: make(chan *Client),
		commands:   make(chan Command),
		clients:    make(map[*Client]struct{}),
	}
}

// RegisterClient adds a session to the hub. The session receives the
// current history snapshot and presence list right away.
func (h *Hub) RegisterClient(c *Client) {
	h.register <- c
}

// UnregisterClient removes a session. If it had joined, its user record is
// removed and a leave notice is broadcast.
func (h *Hub) UnregisterClient(c *Client) {
	h.unregister <- c
}

// Dispatch hands a session command to the hub goroutine.
func (h *Hub) Dispatch(cmd Command) {
	h.commands <- cmd
}

// Run processes registrations and commands until the context is done.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case c := <-h.register:
			h.handleRegister(c)
		case c := <-h.unregister:
			h.handleUnregister(c)
		case cmd := <-h.commands:
			h.handleCommand(cmd)
		}
	}
}

func (h *Hub) handleRegister(c *Client) {
	h.clients[c] = struct{}{}
	h.send(c, &Event{Kind: EventHistory, Messages: h.store.Messages()})
	h.send(c, &Event{Kind: EventPresence, Users: h.store.OnlineUsers()})
	h.log.Debug().Str("session_id", c.SessionID).Int("sessions", len(h.clients)).Msg("session registered")
}

func (h *Hub) handleUnregister(c *Client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)

	if c.joined() {
		h.store.RemoveUser(c.UserID)
		sys := h.store.AddSystemMessage(fmt.Sprintf("%s left the chat", c.Username))
		h.broadcast(&Event{Kind: EventMessage, Message: sys})
		h.broadcast(&Event{Kind: EventPresence, Users: h.store.OnlineUsers()})
		h.log.Info().Str("username", c.Username).Msg("user left")
	}
	h.log.Debug().Str("session_id", c.SessionID).Int("sessions", len(h.clients)).Msg("session unregistered")
}

func (h *Hub) handleCommand(cmd Command) {
	switch cmd.Kind {
	case CommandJoin:
		h.handleJoin(cmd.Client, cmd.Username)
	case CommandSendMessage:
		h.handleMessage(cmd.Client, cmd.Content)
	case CommandTyping:
		h.handleTyping(cmd.Client)
	}
}

func (h *Hub) handleJoin(c *Client, username string) {
	username = strings.TrimSpace(username)
	if username == "" {
		h.send(c, &Event{Kind: EventError, Error: coreError(ErrCodeBadRequest, "username is required")})
		return
	}

	user := h.store.AddUser(username)
	c.UserID = user.ID
	c.Username = user.Username
	c.Color = user.Color

	h.send(c, &Event{Kind: EventJoined, User: user})

	sys := h.store.AddSystemMessage(fmt.Sprintf("%s joined the chat", user.Username))
	h.broadcast(&Event{Kind: EventMessage, Message: sys})
	h.broadcast(&Event{Kind: EventPresence, Users: h.store.OnlineUsers()})
	h.log.Info().Str("username", user.Username).Str("user_id", user.ID).Msg("user joined")
}

func (h *Hub) handleMessage(c *Client, content string) {
	if !c.joined() {
		h.send(c, &Event{Kind: EventError, Error: coreError(ErrCodeNotJoined, "join before sending messages")})
		return
	}
	content = strings.TrimSpace(content)
	if content == "" {
		h.send(c, &Event{Kind: EventError, Error: coreError(ErrCodeBadRequest, "message content is required")})
		return
	}

	h.store.TouchUser(c.UserID)
	msg := h.store.AddMessage(c.Username, content, c.Color, chat.MessageTypeUser)
	h.broadcast(&Event{Kind: EventMessage, Message: msg})
}

func (h *Hub) handleTyping(c *Client) {
	if !c.joined() {
		return
	}
	ev := &Event{Kind: EventTyping, Username: c.Username}
	for client := range h.clients {
		if client == c {
			continue
		}
		h.send(client, ev)
	}
}

func (h *Hub) broadcast(ev *Event) {
	for client := range h.clients {
		h.send(client, ev)
	}
}

func (h *Hub) send(c *Client, ev *Event) {
	select {
	case c.Events <- ev:
	default:
		// Drop if slow consumer.
	}
}
