// Package proto defines the JSON envelopes exchanged over the event
// channel. Payloads are explicit schema types; nothing duck-typed crosses
// this boundary.
package proto

import (
	"encoding/json"
	"time"
)

// Inbound is the envelope for messages coming from the client.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

const (
	InboundTypeJoin   = "join"
	InboundTypeMsg    = "msg"
	InboundTypeTyping = "typing"

	OutboundTypeHistory  = "history"
	OutboundTypeJoined   = "joined"
	OutboundTypeMessage  = "message"
	OutboundTypePresence = "presence"
	OutboundTypeTyping   = "typing"
	OutboundTypeError    = "error"
)

// JoinData announces the client's display name.
type JoinData struct {
	Username string `json:"username"`
}

// MsgData is a chat message from the client.
type MsgData struct {
	Content string `json:"content"`
}

// Outbound is the envelope for messages sent to the client.
type Outbound struct {
	Type  string `json:"type"`
	Data  any    `json:"data,omitempty"`
	Error *Error `json:"error,omitempty"`
}

// MessagePayload is a single chat log entry on the wire.
type MessagePayload struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	Type      string    `json:"type"`
	Color     string    `json:"color"`
}

// UserPayload is an online participant on the wire.
type UserPayload struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Color    string `json:"color"`
}

// HistoryPayload delivers the log snapshot on connect.
type HistoryPayload struct {
	Messages []MessagePayload `json:"messages"`
}

// PresencePayload delivers the online-user list.
type PresencePayload struct {
	Users []UserPayload `json:"users"`
}

// TypingPayload relays who is currently typing.
type TypingPayload struct {
	Username string `json:"username"`
}

// Error describes a protocol-level error response.
type Error struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}
