package core

// Client is one connected event-channel session as seen by the hub. The
// user fields stay empty until the session sends a join command; only the
// hub goroutine touches them afterwards.
type Client struct {
	SessionID string
	UserID    string
	Username  string
	Color     string
	Events    chan *Event
}

// NewClient constructs a session with a buffered event channel.
func NewClient(sessionID string) *Client {
	return &Client{
		SessionID: sessionID,
		Events:    make(chan *Event, 16),
	}
}

func (c *Client) joined() bool {
	return c.UserID != ""
}
