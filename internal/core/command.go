package core

// CommandKind describes what the session wants to do.
type CommandKind int

const (
	// CommandJoin announces the session's display name to the lobby.
	CommandJoin CommandKind = iota
	// CommandSendMessage delivers a chat message to all participants.
	CommandSendMessage
	// CommandTyping signals a transient typing notice to the other peers.
	CommandTyping
)

// Command is an action requested by a connected session.
type Command struct {
	Kind     CommandKind
	Client   *Client
	Username string
	Content  string
}
