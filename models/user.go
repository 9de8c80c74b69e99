package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Account types accepted at sign-in.
const (
	UserTypeStudent        = "student"
	UserTypeRoomOwner      = "room_owner"
	UserTypeTiffinProvider = "tiffin_provider"
)

type User struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Email        string    `gorm:"uniqueIndex;size:120;not null" json:"email"`
	Name         string    `gorm:"size:120;not null" json:"name"`
	UserType     string    `gorm:"size:20;not null" json:"userType"`
	College      string    `gorm:"size:120" json:"college"`
	ProfileImage string    `gorm:"size:500" json:"profileImage"`
	PhoneNumber  string    `gorm:"size:20" json:"phoneNumber"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// ValidUserType reports whether t is one of the known account types.
func ValidUserType(t string) bool {
	return t == UserTypeStudent || t == UserTypeRoomOwner || t == UserTypeTiffinProvider
}
