package chat

import (
	"fmt"
	"testing"
	"time"
)

func TestAddMessageKeepsCallOrder(t *testing.T) {
	s := NewStore(0, 0)

	for i := 0; i < 10; i++ {
		s.AddMessage("alice", fmt.Sprintf("msg-%d", i), "#e21400", MessageTypeUser)
	}

	msgs := s.Messages()
	if len(msgs) != 10 {
		t.Fatalf("expected 10 messages, got %d", len(msgs))
	}
	for i, m := range msgs {
		if m.Content != fmt.Sprintf("msg-%d", i) {
			t.Fatalf("message %d out of order: %q", i, m.Content)
		}
	}
}

func TestHistoryEvictsOldest(t *testing.T) {
	s := NewStore(0, 0)

	for i := 0; i < DefaultHistoryLimit+1; i++ {
		s.AddMessage("alice", fmt.Sprintf("msg-%d", i), "#e21400", MessageTypeUser)
	}

	msgs := s.Messages()
	if len(msgs) != DefaultHistoryLimit {
		t.Fatalf("expected log capped at %d, got %d", DefaultHistoryLimit, len(msgs))
	}
	if msgs[0].Content != "msg-1" {
		t.Fatalf("expected oldest entry evicted, first is %q", msgs[0].Content)
	}
	if msgs[len(msgs)-1].Content != fmt.Sprintf("msg-%d", DefaultHistoryLimit) {
		t.Fatalf("unexpected newest entry %q", msgs[len(msgs)-1].Content)
	}
}

func TestHistoryLimitConfigurable(t *testing.T) {
	s := NewStore(0, 3)

	for i := 0; i < 5; i++ {
		s.AddMessage("alice", fmt.Sprintf("msg-%d", i), "#e21400", MessageTypeUser)
	}

	msgs := s.Messages()
	if len(msgs) != 3 {
		t.Fatalf("expected 3 retained messages, got %d", len(msgs))
	}
	if msgs[0].Content != "msg-2" {
		t.Fatalf("expected msg-2 first, got %q", msgs[0].Content)
	}
}

func TestAddUserIdempotentByUsername(t *testing.T) {
	s := NewStore(0, 0)

	first := s.AddUser("alice")
	second := s.AddUser("alice")

	if first.ID != second.ID {
		t.Fatalf("expected same id for repeated join, got %s and %s", first.ID, second.ID)
	}
	if second.LastSeen.Before(first.LastSeen) {
		t.Fatalf("expected refreshed LastSeen, got %v before %v", second.LastSeen, first.LastSeen)
	}
	if len(s.OnlineUsers()) != 1 {
		t.Fatalf("expected a single online user, got %d", len(s.OnlineUsers()))
	}
}

func TestAddUserAssignsPaletteColor(t *testing.T) {
	s := NewStore(0, 0)

	u := s.AddUser("alice")
	found := false
	for _, c := range palette {
		if u.Color == c {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("color %q not drawn from the palette", u.Color)
	}
}

func TestOnlineUsersSweepsAndDeletes(t *testing.T) {
	s := NewStore(0, 0)

	alice := s.AddUser("alice")
	bob := s.AddUser("bob")

	// Age alice past the presence timeout.
	s.mu.Lock()
	s.users[alice.ID].LastSeen = time.Now().Add(-DefaultPresenceTimeout - time.Second)
	s.mu.Unlock()

	online := s.OnlineUsers()
	if len(online) != 1 || online[0].ID != bob.ID {
		t.Fatalf("expected only bob online, got %+v", online)
	}

	// The sweep removes, it does not merely filter.
	if _, ok := s.User(alice.ID); ok {
		t.Fatal("expected swept user to be gone from the store")
	}
}

func TestOnlineUsersKeepsJoinOrder(t *testing.T) {
	s := NewStore(0, 0)

	s.AddUser("alice")
	s.AddUser("bob")
	s.AddUser("carol")

	online := s.OnlineUsers()
	want := []string{"alice", "bob", "carol"}
	if len(online) != len(want) {
		t.Fatalf("expected %d users, got %d", len(want), len(online))
	}
	for i, name := range want {
		if online[i].Username != name {
			t.Fatalf("position %d: expected %s, got %s", i, name, online[i].Username)
		}
	}
}

func TestTouchUserRefreshesPresence(t *testing.T) {
	s := NewStore(0, 0)

	u := s.AddUser("alice")
	s.mu.Lock()
	s.users[u.ID].LastSeen = time.Now().Add(-DefaultPresenceTimeout - time.Second)
	s.mu.Unlock()

	s.TouchUser(u.ID)

	if len(s.OnlineUsers()) != 1 {
		t.Fatal("expected touched user to survive the sweep")
	}

	// Touching an unknown id must not panic or create anything.
	s.TouchUser("nope")
	if len(s.OnlineUsers()) != 1 {
		t.Fatal("unexpected user count after touching unknown id")
	}
}

func TestRemoveUserIdempotent(t *testing.T) {
	s := NewStore(0, 0)

	u := s.AddUser("alice")
	s.RemoveUser(u.ID)
	s.RemoveUser(u.ID) // second call is a no-op

	if _, ok := s.User(u.ID); ok {
		t.Fatal("expected user removed")
	}
	if len(s.OnlineUsers()) != 0 {
		t.Fatal("expected no online users")
	}
}

func TestStatsMatchLog(t *testing.T) {
	s := NewStore(0, 0)

	s.AddUser("alice")
	s.AddSystemMessage("alice joined the chat")
	s.AddMessage("alice", "hi", "#e21400", MessageTypeUser)
	s.AddMessage("alice", "there", "#e21400", MessageTypeUser)

	stats := s.Stats()
	if stats.TotalMessages != len(s.Messages()) {
		t.Fatalf("totalMessages %d != log length %d", stats.TotalMessages, len(s.Messages()))
	}
	if stats.UserMessages != 2 {
		t.Fatalf("expected 2 user messages, got %d", stats.UserMessages)
	}
	if stats.OnlineUsers != 1 {
		t.Fatalf("expected 1 online user, got %d", stats.OnlineUsers)
	}
}

func TestMessagesAfterCursor(t *testing.T) {
	s := NewStore(0, 0)

	m1 := s.AddMessage("alice", "one", "#e21400", MessageTypeUser)
	m2 := s.AddMessage("alice", "two", "#e21400", MessageTypeUser)
	m3 := s.AddMessage("alice", "three", "#e21400", MessageTypeUser)

	delta := s.MessagesAfter(m1.ID)
	if len(delta) != 2 || delta[0].ID != m2.ID || delta[1].ID != m3.ID {
		t.Fatalf("expected [two three], got %+v", delta)
	}

	if got := s.MessagesAfter(m3.ID); len(got) != 0 {
		t.Fatalf("expected empty delta at log head, got %d entries", len(got))
	}

	// Unknown or absent cursors resync with the full log.
	if got := s.MessagesAfter("unknown"); len(got) != 3 {
		t.Fatalf("expected full log for unknown cursor, got %d entries", len(got))
	}
	if got := s.MessagesAfter(""); len(got) != 3 {
		t.Fatalf("expected full log for absent cursor, got %d entries", len(got))
	}
}

func TestSystemMessageShape(t *testing.T) {
	s := NewStore(0, 0)

	m := s.AddSystemMessage("alice joined the chat")
	if m.Type != MessageTypeSystem {
		t.Fatalf("expected system type, got %q", m.Type)
	}
	if m.Username != SystemUsername {
		t.Fatalf("expected %q author, got %q", SystemUsername, m.Username)
	}
	if m.Color != systemColor {
		t.Fatalf("expected neutral color, got %q", m.Color)
	}
}

func TestJoinSendTimeoutScenario(t *testing.T) {
	s := NewStore(0, 0)

	alice := s.AddUser("Alice")
	s.AddSystemMessage("Alice joined the chat")

	if len(s.OnlineUsers()) != 1 {
		t.Fatal("expected 1 online user after Alice joins")
	}
	if msgs := s.Messages(); len(msgs) != 1 || msgs[0].Type != MessageTypeSystem {
		t.Fatalf("expected a single system message, got %+v", msgs)
	}

	s.AddMessage(alice.Username, "hi", alice.Color, MessageTypeUser)
	msgs := s.Messages()
	if len(msgs) != 2 || msgs[1].Type != MessageTypeUser || msgs[1].Content != "hi" {
		t.Fatalf("unexpected log after send: %+v", msgs)
	}

	bob := s.AddUser("Bob")
	s.AddSystemMessage("Bob joined the chat")
	if len(s.OnlineUsers()) != 2 {
		t.Fatal("expected 2 online users after Bob joins")
	}
	if msgs := s.Messages(); len(msgs) != 3 || msgs[2].Content != "Bob joined the chat" {
		t.Fatalf("unexpected third log entry: %+v", msgs)
	}

	// Alice goes quiet for longer than the presence window.
	s.mu.Lock()
	s.users[alice.ID].LastSeen = time.Now().Add(-31 * time.Second)
	s.mu.Unlock()

	online := s.OnlineUsers()
	if len(online) != 1 || online[0].ID != bob.ID {
		t.Fatalf("expected only Bob online, got %+v", online)
	}
}

func BenchmarkAddMessage(b *testing.B) {
	s := NewStore(0, 0)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.AddMessage("bench", "payload", "#e21400", MessageTypeUser)
	}
}
