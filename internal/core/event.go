package core

import "github.com/duochat/duochat-server/internal/chat"

// EventKind is a notification the hub emits to sessions.
type EventKind int

const (
	// EventHistory delivers the current message log to a newly connected
	// session.
	EventHistory EventKind = iota
	// EventJoined acknowledges a join to the session that requested it,
	// carrying its user record.
	EventJoined
	// EventMessage notifies sessions about a new chat or system message.
	EventMessage
	// EventPresence delivers the current online-user list.
	EventPresence
	// EventTyping relays a transient typing notice.
	EventTyping
	// EventError notifies a session about a rejected command.
	EventError
)

// Event is sent to sessions to describe what happened in the lobby.
type Event struct {
	Kind     EventKind
	Message  chat.Message
	Messages []chat.Message // for EventHistory
	Users    []chat.User    // for EventPresence
	User     chat.User      // for EventJoined
	Username string         // for EventTyping
	Error    *CoreError
}
