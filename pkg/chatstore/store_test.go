package chatstore

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"studenthub/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "chat.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.Conversation{}, &models.Message{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return New(db)
}

func TestFindOrCreateConversationIdempotentAndSymmetric(t *testing.T) {
	s := newTestStore(t)

	c1, err := s.FindOrCreateConversation("u1", "u2")
	if err != nil {
		t.Fatalf("first find-or-create: %v", err)
	}
	c2, err := s.FindOrCreateConversation("u1", "u2")
	if err != nil {
		t.Fatalf("second find-or-create: %v", err)
	}
	if c1.ID != c2.ID {
		t.Fatalf("expected same conversation for same pair, got %s and %s", c1.ID, c2.ID)
	}

	c3, err := s.FindOrCreateConversation("u2", "u1")
	if err != nil {
		t.Fatalf("swapped find-or-create: %v", err)
	}
	if c3.ID != c1.ID {
		t.Fatalf("expected same conversation for swapped pair, got %s and %s", c3.ID, c1.ID)
	}

	other, err := s.FindOrCreateConversation("u1", "u3")
	if err != nil {
		t.Fatalf("different pair: %v", err)
	}
	if other.ID == c1.ID {
		t.Fatalf("expected a new conversation for a different pair")
	}
}

func TestFindOrCreateConversationRejectsBadParticipants(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.FindOrCreateConversation("u1", "u1"); err != ErrBadParticipants {
		t.Fatalf("same user: expected ErrBadParticipants, got %v", err)
	}
	if _, err := s.FindOrCreateConversation("", "u2"); err != ErrBadParticipants {
		t.Fatalf("empty user: expected ErrBadParticipants, got %v", err)
	}
}

func TestFindOrCreateConversationConcurrent(t *testing.T) {
	s := newTestStore(t)

	const n = 8
	ids := make([]string, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			a, b := "u1", "u2"
			if i%2 == 1 {
				a, b = b, a
			}
			conv, err := s.FindOrCreateConversation(a, b)
			if err != nil {
				t.Errorf("concurrent find-or-create: %v", err)
				return
			}
			ids[i] = conv.ID
		}(i)
	}
	wg.Wait()

	for i := 1; i < n; i++ {
		if ids[i] != ids[0] {
			t.Fatalf("expected one conversation, got %s and %s", ids[0], ids[i])
		}
	}
}

func TestAppendAndListMessages(t *testing.T) {
	s := newTestStore(t)
	conv, err := s.FindOrCreateConversation("u1", "u2")
	if err != nil {
		t.Fatalf("find-or-create: %v", err)
	}

	m1, err := s.AppendMessage(conv.ID, "u1", "Hello", "text")
	if err != nil {
		t.Fatalf("append m1: %v", err)
	}
	msgs, err := s.ListMessages(conv.ID)
	if err != nil {
		t.Fatalf("list after m1: %v", err)
	}
	if len(msgs) != 1 || msgs[0].ID != m1.ID {
		t.Fatalf("expected [m1], got %d messages", len(msgs))
	}

	m2, err := s.AppendMessage(conv.ID, "u2", "Hi back", "text")
	if err != nil {
		t.Fatalf("append m2: %v", err)
	}
	msgs, err = s.ListMessages(conv.ID)
	if err != nil {
		t.Fatalf("list after m2: %v", err)
	}
	if len(msgs) != 2 || msgs[0].ID != m1.ID || msgs[1].ID != m2.ID {
		t.Fatalf("expected [m1, m2] in order, got %d messages", len(msgs))
	}
	if msgs[1].CreatedAt.Before(msgs[0].CreatedAt) {
		t.Fatalf("expected non-decreasing creation times")
	}
	if msgs[0].MessageType != "text" {
		t.Fatalf("expected messageType text, got %q", msgs[0].MessageType)
	}
}

func TestAppendMessageValidation(t *testing.T) {
	s := newTestStore(t)
	conv, err := s.FindOrCreateConversation("u1", "u2")
	if err != nil {
		t.Fatalf("find-or-create: %v", err)
	}

	if _, err := s.AppendMessage("no-such-conv", "u1", "hi", "text"); err != ErrNotFound {
		t.Fatalf("missing conversation: expected ErrNotFound, got %v", err)
	}
	if _, err := s.AppendMessage(conv.ID, "u3", "hi", "text"); err != ErrInvalidSender {
		t.Fatalf("outsider sender: expected ErrInvalidSender, got %v", err)
	}
	if _, err := s.AppendMessage(conv.ID, "u1", "   ", "text"); err != ErrEmptyContent {
		t.Fatalf("blank content: expected ErrEmptyContent, got %v", err)
	}

	msgs, err := s.ListMessages(conv.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(msgs) != 0 {
		t.Fatalf("expected no messages persisted by rejected appends, got %d", len(msgs))
	}
}

func TestAppendMessageDefaultsKindToText(t *testing.T) {
	s := newTestStore(t)
	conv, _ := s.FindOrCreateConversation("u1", "u2")
	m, err := s.AppendMessage(conv.ID, "u1", "hello", "")
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if m.MessageType != "text" {
		t.Fatalf("expected default messageType text, got %q", m.MessageType)
	}
}

func TestListMessagesMissingConversation(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.ListMessages("ghost"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListConversationsOrderedByActivity(t *testing.T) {
	s := newTestStore(t)

	ab, _ := s.FindOrCreateConversation("a", "b")
	ac, _ := s.FindOrCreateConversation("a", "c")

	if _, err := s.AppendMessage(ab.ID, "a", "first", "text"); err != nil {
		t.Fatalf("append to ab: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, err := s.AppendMessage(ac.ID, "c", "second", "text"); err != nil {
		t.Fatalf("append to ac: %v", err)
	}

	convs, err := s.ListConversations("a")
	if err != nil {
		t.Fatalf("list conversations: %v", err)
	}
	if len(convs) != 2 {
		t.Fatalf("expected 2 conversations, got %d", len(convs))
	}
	if convs[0].ID != ac.ID || convs[1].ID != ab.ID {
		t.Fatalf("expected most recently active first")
	}

	// b participates in one conversation only
	bconvs, err := s.ListConversations("b")
	if err != nil {
		t.Fatalf("list for b: %v", err)
	}
	if len(bconvs) != 1 || bconvs[0].ID != ab.ID {
		t.Fatalf("expected b to see exactly the ab conversation")
	}
}

func TestAppendBumpsLastMessageAt(t *testing.T) {
	s := newTestStore(t)
	conv, _ := s.FindOrCreateConversation("u1", "u2")
	before := conv.LastMessageAt

	time.Sleep(5 * time.Millisecond)
	m, err := s.AppendMessage(conv.ID, "u1", "bump", "text")
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	got, err := s.GetConversation(conv.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.LastMessageAt.After(before) {
		t.Fatalf("expected lastMessageAt to advance")
	}
	// sqlite datetime storage truncates sub-millisecond precision
	if d := got.LastMessageAt.Sub(m.CreatedAt); d < -time.Second || d > time.Second {
		t.Fatalf("expected lastMessageAt near the message creation time, off by %v", d)
	}
}
