package chat

import "time"

// User is an online chat participant. A record exists for as long as the
// user is considered present; it is removed on explicit leave or when the
// presence sweep finds it stale.
type User struct {
	ID       string    `json:"id"`
	Username string    `json:"username"`
	Color    string    `json:"color"`
	LastSeen time.Time `json:"lastSeen"`

	// seq orders users by join time so presence lists are stable.
	seq uint64
}

// palette is the fixed set of colors assigned to new users.
var palette = []string{
	"#e21400", "#91580f", "#f8a700", "#f78b00",
	"#58dc00", "#287b00", "#a8f07a", "#4ae8c4",
	"#3b88eb", "#3824aa", "#a700ff", "#d300e7",
}

// systemColor is used for synthetic join/leave notices.
const systemColor = "#888888"
