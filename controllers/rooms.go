package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"studenthub/middleware"
	"studenthub/models"
	"studenthub/pkg/cache"
	"studenthub/pkg/config"
)

const roomCachePrefix = "rooms"

// ListRooms returns available room listings, newest first, filtered by
// location (substring on location or area), roomType, minRent and maxRent.
// Results are cached per filter set until a listing write invalidates them.
func ListRooms(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		location := strings.ToLower(strings.TrimSpace(c.Query("location")))
		roomType := strings.ToLower(strings.TrimSpace(c.Query("roomType")))
		minRent := strings.TrimSpace(c.Query("minRent"))
		maxRent := strings.TrimSpace(c.Query("maxRent"))

		key := cache.KeyFromStrings(roomCachePrefix, location, roomType, minRent, maxRent)
		if v, ok := cache.Default().Get(key); ok {
			if rooms, ok2 := v.([]models.RoomListing); ok2 {
				c.JSON(http.StatusOK, rooms)
				return
			}
		}

		q := db.Where("available = ?", true)
		if location != "" {
			p := "%" + location + "%"
			q = q.Where("LOWER(location) LIKE ? OR LOWER(area) LIKE ?", p, p)
		}
		if roomType != "" {
			q = q.Where("room_type = ?", roomType)
		}
		if v, err := strconv.Atoi(minRent); err == nil && v > 0 {
			q = q.Where("rent >= ?", v)
		}
		if v, err := strconv.Atoi(maxRent); err == nil && v > 0 {
			q = q.Where("rent <= ?", v)
		}

		rooms := []models.RoomListing{}
		if err := q.Order("created_at DESC").Find(&rooms).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "db error"})
			return
		}

		cache.Default().Set(key, rooms, time.Duration(config.ListingCacheTTLSeconds)*time.Second)
		c.JSON(http.StatusOK, rooms)
	}
}

func GetRoom(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var room models.RoomListing
		if err := db.First(&room, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"msg": "room not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "db error"})
			return
		}
		c.JSON(http.StatusOK, room)
	}
}

func ListRoomsByOwner(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		rooms := []models.RoomListing{}
		if err := db.Where("owner_id = ?", c.Param("id")).Find(&rooms).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "db error"})
			return
		}
		c.JSON(http.StatusOK, rooms)
	}
}

// CreateRoom creates a listing owned by the authenticated user.
func CreateRoom(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		uidRaw, _ := c.Get(middleware.ContextUserIDKey)
		uid, _ := uidRaw.(string)

		var body struct {
			Title       string   `json:"title"`
			Description string   `json:"description"`
			Rent        int      `json:"rent"`
			Location    string   `json:"location"`
			Area        string   `json:"area"`
			RoomType    string   `json:"roomType"`
			Amenities   []string `json:"amenities"`
			Images      []string `json:"images"`
			Latitude    string   `json:"latitude"`
			Longitude   string   `json:"longitude"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid room data"})
			return
		}
		if strings.TrimSpace(body.Title) == "" || strings.TrimSpace(body.Description) == "" ||
			body.Rent <= 0 || strings.TrimSpace(body.Location) == "" ||
			strings.TrimSpace(body.Area) == "" || !models.ValidRoomType(body.RoomType) {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid room data"})
			return
		}

		room := models.RoomListing{
			OwnerID:     uid,
			Title:       strings.TrimSpace(body.Title),
			Description: strings.TrimSpace(body.Description),
			Rent:        body.Rent,
			Location:    strings.TrimSpace(body.Location),
			Area:        strings.TrimSpace(body.Area),
			RoomType:    body.RoomType,
			Amenities:   body.Amenities,
			Images:      body.Images,
			Latitude:    body.Latitude,
			Longitude:   body.Longitude,
			Available:   true,
			Rating:      "0",
		}
		if err := db.Create(&room).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "failed to create room"})
			return
		}

		cache.Default().InvalidatePrefix(roomCachePrefix)
		c.JSON(http.StatusCreated, room)
	}
}

func UpdateRoom(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Title       *string   `json:"title"`
			Description *string   `json:"description"`
			Rent        *int      `json:"rent"`
			Location    *string   `json:"location"`
			Area        *string   `json:"area"`
			RoomType    *string   `json:"roomType"`
			Amenities   *[]string `json:"amenities"`
			Images      *[]string `json:"images"`
			Available   *bool     `json:"available"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid room data"})
			return
		}

		var room models.RoomListing
		if err := db.First(&room, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"msg": "room not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "db error"})
			return
		}

		if body.Title != nil {
			room.Title = strings.TrimSpace(*body.Title)
		}
		if body.Description != nil {
			room.Description = strings.TrimSpace(*body.Description)
		}
		if body.Rent != nil && *body.Rent > 0 {
			room.Rent = *body.Rent
		}
		if body.Location != nil {
			room.Location = strings.TrimSpace(*body.Location)
		}
		if body.Area != nil {
			room.Area = strings.TrimSpace(*body.Area)
		}
		if body.RoomType != nil {
			if !models.ValidRoomType(*body.RoomType) {
				c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid room data"})
				return
			}
			room.RoomType = *body.RoomType
		}
		if body.Amenities != nil {
			room.Amenities = *body.Amenities
		}
		if body.Images != nil {
			room.Images = *body.Images
		}
		if body.Available != nil {
			room.Available = *body.Available
		}

		if err := db.Save(&room).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "failed to update room"})
			return
		}

		cache.Default().InvalidatePrefix(roomCachePrefix)
		c.JSON(http.StatusOK, room)
	}
}

func DeleteRoom(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		res := db.Delete(&models.RoomListing{}, "id = ?", c.Param("id"))
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "db error"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"msg": "room not found"})
			return
		}
		cache.Default().InvalidatePrefix(roomCachePrefix)
		c.Status(http.StatusNoContent)
	}
}
