package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Food types offered by tiffin services. "both" matches any foodType filter.
const (
	FoodTypeVegetarian    = "vegetarian"
	FoodTypeNonVegetarian = "non_vegetarian"
	FoodTypeBoth          = "both"
	FoodTypeJain          = "jain"
)

// MenuItem is one dish on a tiffin service's menu.
type MenuItem struct {
	Name  string `json:"name"`
	Price int    `json:"price"`
}

type TiffinService struct {
	ID            string     `gorm:"primaryKey;size:36" json:"id"`
	ProviderID    string     `gorm:"size:36;not null;index" json:"providerId"`
	Name          string     `gorm:"size:200;not null" json:"name"`
	Description   string     `gorm:"type:text;not null" json:"description"`
	FoodType      string     `gorm:"size:20;not null" json:"foodType"`
	LunchPrice    int        `json:"lunchPrice"`
	DinnerPrice   int        `json:"dinnerPrice"`
	MonthlyPrice  int        `gorm:"not null" json:"monthlyPrice"`
	DeliveryAreas []string   `gorm:"serializer:json" json:"deliveryAreas"`
	DeliveryFee   int        `gorm:"default:0" json:"deliveryFee"`
	MenuItems     []MenuItem `gorm:"serializer:json" json:"menuItems"`
	Images        []string   `gorm:"serializer:json" json:"images"`
	Available     bool       `gorm:"default:true" json:"available"`
	Rating        string     `gorm:"size:10;default:0" json:"rating"`
	ReviewCount   int        `gorm:"default:0" json:"reviewCount"`
	CreatedAt     time.Time  `json:"createdAt"`
}

func (t *TiffinService) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// ValidFoodType reports whether t is a known food type.
func ValidFoodType(t string) bool {
	switch t {
	case FoodTypeVegetarian, FoodTypeNonVegetarian, FoodTypeBoth, FoodTypeJain:
		return true
	}
	return false
}
