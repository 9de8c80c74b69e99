package main

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"studenthub/middleware"
	"studenthub/models"
	"studenthub/pkg/cache"
	"studenthub/pkg/chatstore"
	"studenthub/pkg/config"
	"studenthub/pkg/relay"
	"studenthub/pkg/seed"
	"studenthub/routes"
)

func main() {
	// config is loaded in pkg/config's init

	db, err := gorm.Open(sqlite.Open(config.DBPath), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Conversation{},
		&models.Message{},
		&models.RoomListing{},
		&models.TiffinService{},
		&models.Requirement{},
		&models.Review{},
	); err != nil {
		log.Fatalf("failed migrate: %v", err)
	}

	if err := seed.Run(db); err != nil {
		log.Fatalf("failed seed: %v", err)
	}

	cache.SetMaxItems(config.ListingCacheMaxItems)
	middleware.SetRateLimitConfig(
		time.Duration(config.RateLimitWindowSeconds)*time.Second,
		config.RateLimitCapacity,
	)

	store := chatstore.New(db)
	registry := relay.NewRegistry()

	r := gin.Default()

	// CORS configuration
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000", "http://localhost:5173", "http://127.0.0.1:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, db, store, registry)
	if err := r.Run(":" + config.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
