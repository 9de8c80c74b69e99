// Package seed populates a fresh database with a few sample listings so the
// app is browsable on first run. It is a no-op once any user exists.
package seed

import (
	"log"

	"gorm.io/gorm"

	"studenthub/models"
)

func Run(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	users := []models.User{
		{
			ID:          "user-1",
			Email:       "amit.singh@example.com",
			Name:        "Amit Singh",
			UserType:    models.UserTypeRoomOwner,
			PhoneNumber: "+91 98765 43210",
		},
		{
			ID:          "user-2",
			Email:       "maakirasoi@example.com",
			Name:        "Maa Ki Rasoi",
			UserType:    models.UserTypeTiffinProvider,
			PhoneNumber: "+91 98765 43211",
		},
		{
			ID:          "user-3",
			Email:       "zaika.express@example.com",
			Name:        "Zaika Express",
			UserType:    models.UserTypeTiffinProvider,
			PhoneNumber: "+91 98765 43212",
		},
	}

	rooms := []models.RoomListing{
		{
			OwnerID:     "user-1",
			Title:       "Spacious PG near Engineering College",
			Description: "Well-ventilated single room with attached bathroom, 5 minutes from the college gate.",
			Location:    "Ranjhi",
			Area:        "Near Engineering College",
			RoomType:    models.RoomTypeSingle,
			Rent:        4500,
			Amenities:   []string{"WiFi", "Attached Bathroom", "Study Table", "Power Backup"},
			Available:   true,
			Rating:      "0",
		},
		{
			OwnerID:     "user-1",
			Title:       "Shared room for students in Napier Town",
			Description: "Twin-sharing room in a quiet locality with mess facility nearby.",
			Location:    "Napier Town",
			Area:        "Wright Town Road",
			RoomType:    models.RoomTypeDouble,
			Rent:        2800,
			Amenities:   []string{"WiFi", "Mess Nearby", "Parking"},
			Available:   true,
			Rating:      "0",
		},
	}

	tiffins := []models.TiffinService{
		{
			ProviderID:    "user-2",
			Name:          "Maa Ki Rasoi",
			Description:   "Homestyle vegetarian thali with fresh rotis, dal, sabzi and rice.",
			FoodType:      models.FoodTypeVegetarian,
			LunchPrice:    60,
			DinnerPrice:   60,
			MonthlyPrice:  3200,
			DeliveryAreas: []string{"Ranjhi", "Napier Town", "Wright Town"},
			DeliveryFee:   0,
			MenuItems: []models.MenuItem{
				{Name: "Veg Thali", Price: 60},
				{Name: "Special Thali", Price: 90},
			},
			Available: true,
			Rating:    "0",
		},
		{
			ProviderID:    "user-3",
			Name:          "Zaika Express",
			Description:   "Veg and non-veg tiffins delivered hot, monthly plans available.",
			FoodType:      models.FoodTypeBoth,
			LunchPrice:    70,
			DinnerPrice:   80,
			MonthlyPrice:  3800,
			DeliveryAreas: []string{"Civil Lines", "Napier Town"},
			DeliveryFee:   10,
			MenuItems: []models.MenuItem{
				{Name: "Veg Tiffin", Price: 70},
				{Name: "Chicken Tiffin", Price: 110},
			},
			Available: true,
			Rating:    "0",
		},
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&users).Error; err != nil {
			return err
		}
		if err := tx.Create(&rooms).Error; err != nil {
			return err
		}
		if err := tx.Create(&tiffins).Error; err != nil {
			return err
		}
		log.Printf("[seed] inserted %d users, %d rooms, %d tiffin services",
			len(users), len(rooms), len(tiffins))
		return nil
	})
}
