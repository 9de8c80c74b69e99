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

const tiffinCachePrefix = "tiffin"

// ListTiffinServices returns available tiffin services, newest first,
// filtered by foodType (a service offering "both" matches any foodType),
// deliveryArea (substring match against the service's delivery areas) and
// maxPrice (against the monthly price).
func ListTiffinServices(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		foodType := strings.ToLower(strings.TrimSpace(c.Query("foodType")))
		deliveryArea := strings.ToLower(strings.TrimSpace(c.Query("deliveryArea")))
		maxPrice := strings.TrimSpace(c.Query("maxPrice"))

		key := cache.KeyFromStrings(tiffinCachePrefix, foodType, deliveryArea, maxPrice)
		if v, ok := cache.Default().Get(key); ok {
			if services, ok2 := v.([]models.TiffinService); ok2 {
				c.JSON(http.StatusOK, services)
				return
			}
		}

		q := db.Where("available = ?", true)
		if foodType != "" {
			q = q.Where("food_type = ? OR food_type = ?", foodType, models.FoodTypeBoth)
		}
		if v, err := strconv.Atoi(maxPrice); err == nil && v > 0 {
			q = q.Where("monthly_price <= ?", v)
		}

		services := []models.TiffinService{}
		if err := q.Order("created_at DESC").Find(&services).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "db error"})
			return
		}

		// delivery areas live in a JSON column; filter in memory
		if deliveryArea != "" {
			filtered := services[:0]
			for _, s := range services {
				for _, area := range s.DeliveryAreas {
					if strings.Contains(strings.ToLower(area), deliveryArea) {
						filtered = append(filtered, s)
						break
					}
				}
			}
			services = filtered
		}

		cache.Default().Set(key, services, time.Duration(config.ListingCacheTTLSeconds)*time.Second)
		c.JSON(http.StatusOK, services)
	}
}

func GetTiffinService(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var service models.TiffinService
		if err := db.First(&service, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"msg": "tiffin service not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "db error"})
			return
		}
		c.JSON(http.StatusOK, service)
	}
}

func ListTiffinServicesByProvider(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		services := []models.TiffinService{}
		if err := db.Where("provider_id = ?", c.Param("id")).Find(&services).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "db error"})
			return
		}
		c.JSON(http.StatusOK, services)
	}
}

// CreateTiffinService creates a service provided by the authenticated user.
func CreateTiffinService(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		uidRaw, _ := c.Get(middleware.ContextUserIDKey)
		uid, _ := uidRaw.(string)

		var body struct {
			Name          string            `json:"name"`
			Description   string            `json:"description"`
			FoodType      string            `json:"foodType"`
			LunchPrice    int               `json:"lunchPrice"`
			DinnerPrice   int               `json:"dinnerPrice"`
			MonthlyPrice  int               `json:"monthlyPrice"`
			DeliveryAreas []string          `json:"deliveryAreas"`
			DeliveryFee   int               `json:"deliveryFee"`
			MenuItems     []models.MenuItem `json:"menuItems"`
			Images        []string          `json:"images"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid tiffin service data"})
			return
		}
		if strings.TrimSpace(body.Name) == "" || strings.TrimSpace(body.Description) == "" ||
			body.MonthlyPrice <= 0 || !models.ValidFoodType(body.FoodType) {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid tiffin service data"})
			return
		}

		service := models.TiffinService{
			ProviderID:    uid,
			Name:          strings.TrimSpace(body.Name),
			Description:   strings.TrimSpace(body.Description),
			FoodType:      body.FoodType,
			LunchPrice:    body.LunchPrice,
			DinnerPrice:   body.DinnerPrice,
			MonthlyPrice:  body.MonthlyPrice,
			DeliveryAreas: body.DeliveryAreas,
			DeliveryFee:   body.DeliveryFee,
			MenuItems:     body.MenuItems,
			Images:        body.Images,
			Available:     true,
			Rating:        "0",
		}
		if err := db.Create(&service).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "failed to create tiffin service"})
			return
		}

		cache.Default().InvalidatePrefix(tiffinCachePrefix)
		c.JSON(http.StatusCreated, service)
	}
}

func UpdateTiffinService(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Name          *string            `json:"name"`
			Description   *string            `json:"description"`
			FoodType      *string            `json:"foodType"`
			LunchPrice    *int               `json:"lunchPrice"`
			DinnerPrice   *int               `json:"dinnerPrice"`
			MonthlyPrice  *int               `json:"monthlyPrice"`
			DeliveryAreas *[]string          `json:"deliveryAreas"`
			DeliveryFee   *int               `json:"deliveryFee"`
			MenuItems     *[]models.MenuItem `json:"menuItems"`
			Images        *[]string          `json:"images"`
			Available     *bool              `json:"available"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid tiffin service data"})
			return
		}

		var service models.TiffinService
		if err := db.First(&service, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"msg": "tiffin service not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "db error"})
			return
		}

		if body.Name != nil {
			service.Name = strings.TrimSpace(*body.Name)
		}
		if body.Description != nil {
			service.Description = strings.TrimSpace(*body.Description)
		}
		if body.FoodType != nil {
			if !models.ValidFoodType(*body.FoodType) {
				c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid tiffin service data"})
				return
			}
			service.FoodType = *body.FoodType
		}
		if body.LunchPrice != nil {
			service.LunchPrice = *body.LunchPrice
		}
		if body.DinnerPrice != nil {
			service.DinnerPrice = *body.DinnerPrice
		}
		if body.MonthlyPrice != nil && *body.MonthlyPrice > 0 {
			service.MonthlyPrice = *body.MonthlyPrice
		}
		if body.DeliveryAreas != nil {
			service.DeliveryAreas = *body.DeliveryAreas
		}
		if body.DeliveryFee != nil {
			service.DeliveryFee = *body.DeliveryFee
		}
		if body.MenuItems != nil {
			service.MenuItems = *body.MenuItems
		}
		if body.Images != nil {
			service.Images = *body.Images
		}
		if body.Available != nil {
			service.Available = *body.Available
		}

		if err := db.Save(&service).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "failed to update tiffin service"})
			return
		}

		cache.Default().InvalidatePrefix(tiffinCachePrefix)
		c.JSON(http.StatusOK, service)
	}
}

func DeleteTiffinService(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		res := db.Delete(&models.TiffinService{}, "id = ?", c.Param("id"))
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "db error"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"msg": "tiffin service not found"})
			return
		}
		cache.Default().InvalidatePrefix(tiffinCachePrefix)
		c.Status(http.StatusNoContent)
	}
}
