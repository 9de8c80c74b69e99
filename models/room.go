package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Room types offered by listings.
const (
	RoomTypeSingle  = "single"
	RoomTypeDouble  = "double"
	RoomTypeTriple  = "triple"
	RoomTypePrivate = "private"
)

type RoomListing struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	OwnerID     string    `gorm:"size:36;not null;index" json:"ownerId"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Rent        int       `gorm:"not null" json:"rent"`
	Location    string    `gorm:"size:120;not null" json:"location"`
	Area        string    `gorm:"size:120;not null" json:"area"`
	RoomType    string    `gorm:"size:20;not null" json:"roomType"`
	Amenities   []string  `gorm:"serializer:json" json:"amenities"`
	Images      []string  `gorm:"serializer:json" json:"images"`
	Latitude    string    `gorm:"size:20" json:"latitude"`
	Longitude   string    `gorm:"size:20" json:"longitude"`
	Available   bool      `gorm:"default:true" json:"available"`
	Rating      string    `gorm:"size:10;default:0" json:"rating"`
	ReviewCount int       `gorm:"default:0" json:"reviewCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (r *RoomListing) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// ValidRoomType reports whether t is a known room type.
func ValidRoomType(t string) bool {
	switch t {
	case RoomTypeSingle, RoomTypeDouble, RoomTypeTriple, RoomTypePrivate:
		return true
	}
	return false
}
