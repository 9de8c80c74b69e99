package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Conversation is the unique message thread between exactly two users.
// PairKey is the normalized unordered pair (min:max of the two user ids);
// its unique index guarantees at most one conversation per pair.
type Conversation struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	User1ID       string    `gorm:"size:36;not null;index" json:"user1Id"`
	User2ID       string    `gorm:"size:36;not null;index" json:"user2Id"`
	PairKey       string    `gorm:"size:80;not null;uniqueIndex" json:"-"`
	LastMessageAt time.Time `json:"lastMessageAt"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (c *Conversation) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// OtherParticipant returns the participant that is not userID.
func (c *Conversation) OtherParticipant(userID string) string {
	if c.User1ID == userID {
		return c.User2ID
	}
	return c.User1ID
}

// HasParticipant reports whether userID is one of the two participants.
func (c *Conversation) HasParticipant(userID string) bool {
	return c.User1ID == userID || c.User2ID == userID
}
