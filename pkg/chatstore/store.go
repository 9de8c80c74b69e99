// Package chatstore persists conversations and their messages. A
// conversation is unique per unordered pair of users; messages are ordered
// by creation time within their conversation.
package chatstore

import (
	"errors"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"studenthub/models"
)

var (
	ErrNotFound        = errors.New("chatstore: conversation not found")
	ErrBadParticipants = errors.New("chatstore: conversation requires two distinct users")
	ErrInvalidSender   = errors.New("chatstore: sender is not a participant")
	ErrEmptyContent    = errors.New("chatstore: message content is empty")
)

type Store struct {
	db *gorm.DB

	// one lock per normalized pair so concurrent find-or-create calls for
	// the same two users cannot race past the existence check
	mu        sync.Mutex
	pairLocks map[string]*sync.Mutex
}

func New(db *gorm.DB) *Store {
	return &Store{db: db, pairLocks: make(map[string]*sync.Mutex)}
}

// PairKey normalizes an unordered user pair into a stable key.
func PairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + ":" + b
}

func (s *Store) lockPair(key string) func() {
	s.mu.Lock()
	l := s.pairLocks[key]
	if l == nil {
		l = &sync.Mutex{}
		s.pairLocks[key] = l
	}
	s.mu.Unlock()
	l.Lock()
	return l.Unlock
}

// FindOrCreateConversation returns the conversation for the unordered pair
// (user1ID, user2ID), creating it when absent. Argument order does not
// matter; the stored user1/user2 keep the order of the creating call.
func (s *Store) FindOrCreateConversation(user1ID, user2ID string) (*models.Conversation, error) {
	user1ID = strings.TrimSpace(user1ID)
	user2ID = strings.TrimSpace(user2ID)
	if user1ID == "" || user2ID == "" || user1ID == user2ID {
		return nil, ErrBadParticipants
	}

	key := PairKey(user1ID, user2ID)
	unlock := s.lockPair(key)
	defer unlock()

	var conv models.Conversation
	err := s.db.Where("pair_key = ?", key).First(&conv).Error
	if err == nil {
		return &conv, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	conv = models.Conversation{
		User1ID:       user1ID,
		User2ID:       user2ID,
		PairKey:       key,
		LastMessageAt: time.Now(),
	}
	if err := s.db.Create(&conv).Error; err != nil {
		return nil, err
	}
	return &conv, nil
}

// GetConversation returns the conversation with the given id.
func (s *Store) GetConversation(id string) (*models.Conversation, error) {
	var conv models.Conversation
	if err := s.db.First(&conv, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &conv, nil
}

// AppendMessage stores a new message and bumps the conversation's
// lastMessageAt to the message's creation time. The sender must be one of
// the two participants.
func (s *Store) AppendMessage(conversationID, senderID, content, messageType string) (*models.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	if messageType == "" {
		messageType = models.MessageTypeText
	}

	conv, err := s.GetConversation(conversationID)
	if err != nil {
		return nil, err
	}
	if !conv.HasParticipant(senderID) {
		return nil, ErrInvalidSender
	}

	msg := models.Message{
		ConversationID: conv.ID,
		SenderID:       senderID,
		Content:        content,
		MessageType:    messageType,
		CreatedAt:      time.Now(),
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&msg).Error; err != nil {
			return err
		}
		return tx.Model(&models.Conversation{}).
			Where("id = ?", conv.ID).
			Update("last_message_at", msg.CreatedAt).Error
	})
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// ListMessages returns the conversation's messages in ascending creation
// order. The sequence is empty when the conversation has no messages yet.
func (s *Store) ListMessages(conversationID string) ([]models.Message, error) {
	if _, err := s.GetConversation(conversationID); err != nil {
		return nil, err
	}
	msgs := []models.Message{}
	if err := s.db.Where("conversation_id = ?", conversationID).
		Order("created_at ASC").Find(&msgs).Error; err != nil {
		return nil, err
	}
	return msgs, nil
}

// ListConversations returns every conversation the user participates in,
// most recently active first.
func (s *Store) ListConversations(userID string) ([]models.Conversation, error) {
	convs := []models.Conversation{}
	if err := s.db.Where("user1_id = ? OR user2_id = ?", userID, userID).
		Order("last_message_at DESC").Find(&convs).Error; err != nil {
		return nil, err
	}
	return convs, nil
}
