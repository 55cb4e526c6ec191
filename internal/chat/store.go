// Package chat holds the shared chat state: who is online and what has
// been said. Both transport adapters read and mutate it through Store, so
// it is the single source of truth for presence and history.
package chat

import (
	"math/rand/v2"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultPresenceTimeout is the staleness window after which an unseen
	// user is purged by the presence sweep.
	DefaultPresenceTimeout = 30 * time.Second
	// DefaultHistoryLimit bounds the message log; the oldest entry is
	// evicted once the bound is exceeded.
	DefaultHistoryLimit = 100
)

// Stats are derived counts over the current state.
type Stats struct {
	OnlineUsers   int `json:"onlineUsers"`
	TotalMessages int `json:"totalMessages"`
	UserMessages  int `json:"userMessages"`
}

// Store owns the user set and the bounded message log. Every operation is
// a short synchronous mutation or query under one mutex; adapters may call
// from parallel goroutines. The store performs no input validation - empty
// usernames and contents are the adapters' problem to reject.
type Store struct {
	mu              sync.Mutex
	users           map[string]*User // by id
	messages        []Message
	presenceTimeout time.Duration
	historyLimit    int
	joinSeq         uint64
}

// NewStore builds an empty store. Non-positive arguments fall back to the
// defaults, which match the documented presence and retention policy.
func NewStore(presenceTimeout time.Duration, historyLimit int) *Store {
	if presenceTimeout <= 0 {
		presenceTimeout = DefaultPresenceTimeout
	}
	if historyLimit <= 0 {
		historyLimit = DefaultHistoryLimit
	}
	return &Store{
		users:           make(map[string]*User),
		presenceTimeout: presenceTimeout,
		historyLimit:    historyLimit,
	}
}

// AddUser registers a user by display name. A second join with the same
// username refreshes the existing record instead of creating a duplicate,
// so the call is idempotent and never fails.
func (s *Store) AddUser(username string) User {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username {
			u.LastSeen = time.Now()
			return *u
		}
	}

	s.joinSeq++
	u := &User{
		ID:       uuid.NewString(),
		Username: username,
		Color:    palette[rand.IntN(len(palette))],
		LastSeen: time.Now(),
		seq:      s.joinSeq,
	}
	s.users[u.ID] = u
	return *u
}

// RemoveUser deletes the user with the given id. Removing an unknown id is
// a no-op.
func (s *Store) RemoveUser(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
}

// User looks up a user by id without touching presence.
func (s *Store) User(id string) (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return User{}, false
	}
	return *u, true
}

// UserByName looks up a user by display name without touching presence.
func (s *Store) UserByName(username string) (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username {
			return *u, true
		}
	}
	return User{}, false
}

// TouchUser refreshes LastSeen for the given user, keeping a polling
// session alive without a chat action. Unknown ids are ignored.
func (s *Store) TouchUser(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u, ok := s.users[id]; ok {
		u.LastSeen = time.Now()
	}
}

// OnlineUsers returns the current participants in join order. Before
// returning it deletes every user not seen within the presence timeout.
// This sweep is the only mechanism that reclaims stale presence; there is
// no background timer, so expiry stays coupled to this call.
func (s *Store) OnlineUsers() []User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sweepLocked()
}

func (s *Store) sweepLocked() []User {
	cutoff := time.Now().Add(-s.presenceTimeout)

	online := make([]User, 0, len(s.users))
	for id, u := range s.users {
		if u.LastSeen.Before(cutoff) {
			delete(s.users, id)
			continue
		}
		online = append(online, *u)
	}
	sort.Slice(online, func(i, j int) bool { return online[i].seq < online[j].seq })
	return online
}

// AddMessage appends a message authored by username and evicts the oldest
// entry once the log exceeds the history limit. Content is stored as given.
func (s *Store) AddMessage(username, content, color string, typ MessageType) Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg := Message{
		ID:        uuid.NewString(),
		Username:  username,
		Content:   content,
		Timestamp: time.Now(),
		Type:      typ,
		Color:     color,
	}
	s.messages = append(s.messages, msg)
	if len(s.messages) > s.historyLimit {
		s.messages = s.messages[len(s.messages)-s.historyLimit:]
	}
	return msg
}

// AddSystemMessage appends a synthetic notice authored by the System
// sentinel.
func (s *Store) AddSystemMessage(content string) Message {
	return s.AddMessage(SystemUsername, content, systemColor, MessageTypeSystem)
}

// Messages returns the current log, oldest first.
func (s *Store) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// MessagesAfter returns the entries strictly after the message with the
// given id. An empty or unknown cursor yields the full log, so clients
// that fell behind the eviction window simply resync.
func (s *Store) MessagesAfter(lastID string) []Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := 0
	if lastID != "" {
		for i, m := range s.messages {
			if m.ID == lastID {
				start = i + 1
				break
			}
		}
	}
	out := make([]Message, len(s.messages)-start)
	copy(out, s.messages[start:])
	return out
}

// Stats reports derived counts. The online count runs the presence sweep,
// same as OnlineUsers.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	userMessages := 0
	for _, m := range s.messages {
		if m.Type == MessageTypeUser {
			userMessages++
		}
	}
	return Stats{
		OnlineUsers:   len(s.sweepLocked()),
		TotalMessages: len(s.messages),
		UserMessages:  userMessages,
	}
}
