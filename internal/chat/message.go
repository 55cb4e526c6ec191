package chat

import "time"

// MessageType distinguishes human messages from synthetic notices.
type MessageType string

const (
	// MessageTypeUser marks a message authored by a participant.
	MessageTypeUser MessageType = "user"
	// MessageTypeSystem marks a synthetic join/leave notice.
	MessageTypeSystem MessageType = "system"
)

// SystemUsername is the sentinel author of system messages.
const SystemUsername = "System"

// Message is a single entry in the chat log. Messages are created only by
// the store; ID and Timestamp never change after creation.
type Message struct {
	ID        string      `json:"id"`
	Username  string      `json:"username"`
	Content   string      `json:"content"`
	Timestamp time.Time   `json:"timestamp"`
	Type      MessageType `json:"type"`
	Color     string      `json:"color"`
}
