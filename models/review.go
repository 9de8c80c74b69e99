package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review targets.
const (
	ReviewTargetRoom   = "room"
	ReviewTargetTiffin = "tiffin"
)

type Review struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	UserID     string    `gorm:"size:36;not null;index" json:"userId"`
	TargetID   string    `gorm:"size:36;not null;index" json:"targetId"`
	TargetType string    `gorm:"size:20;not null" json:"targetType"`
	Rating     int       `gorm:"not null" json:"rating"`
	Comment    string    `gorm:"type:text" json:"comment"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
