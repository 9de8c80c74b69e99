package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Requirement is a student's wanted-ad for a room or a tiffin service.
type Requirement struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	StudentID   string    `gorm:"size:36;not null;index" json:"studentId"`
	Type        string    `gorm:"size:20;not null" json:"type"` // "room" or "tiffin"
	Location    string    `gorm:"size:120;not null" json:"location"`
	BudgetMin   int       `json:"budgetMin"`
	BudgetMax   int       `json:"budgetMax"`
	Description string    `gorm:"type:text;not null" json:"description"`
	IsActive    bool      `gorm:"default:true" json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (r *Requirement) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
