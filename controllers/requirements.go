package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"studenthub/middleware"
	"studenthub/models"
)

// ListRequirements returns requirements, newest first, optionally filtered by
// type, location substring and active state. Without an isActive filter only
// active requirements are returned.
func ListRequirements(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := db.Model(&models.Requirement{})

		if t := strings.TrimSpace(c.Query("type")); t != "" {
			q = q.Where("type = ?", t)
		}
		if loc := strings.ToLower(strings.TrimSpace(c.Query("location"))); loc != "" {
			q = q.Where("LOWER(location) LIKE ?", "%"+loc+"%")
		}
		switch c.Query("isActive") {
		case "false":
			q = q.Where("is_active = ?", false)
		case "all":
		default:
			q = q.Where("is_active = ?", true)
		}

		reqs := []models.Requirement{}
		if err := q.Order("created_at DESC").Find(&reqs).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "db error"})
			return
		}
		c.JSON(http.StatusOK, reqs)
	}
}

func ListRequirementsByStudent(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqs := []models.Requirement{}
		if err := db.Where("student_id = ?", c.Param("id")).Order("created_at DESC").Find(&reqs).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "db error"})
			return
		}
		c.JSON(http.StatusOK, reqs)
	}
}

// CreateRequirement posts a wanted-ad for the authenticated student.
func CreateRequirement(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		uidRaw, _ := c.Get(middleware.ContextUserIDKey)
		uid, _ := uidRaw.(string)

		var body struct {
			Type        string `json:"type"`
			Location    string `json:"location"`
			BudgetMin   int    `json:"budgetMin"`
			BudgetMax   int    `json:"budgetMax"`
			Description string `json:"description"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid requirement data"})
			return
		}
		if body.Type != "room" && body.Type != "tiffin" {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid requirement data"})
			return
		}
		if strings.TrimSpace(body.Location) == "" || strings.TrimSpace(body.Description) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid requirement data"})
			return
		}

		req := models.Requirement{
			StudentID:   uid,
			Type:        body.Type,
			Location:    strings.TrimSpace(body.Location),
			BudgetMin:   body.BudgetMin,
			BudgetMax:   body.BudgetMax,
			Description: strings.TrimSpace(body.Description),
			IsActive:    true,
		}
		if err := db.Create(&req).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "failed to create requirement"})
			return
		}
		c.JSON(http.StatusCreated, req)
	}
}

func UpdateRequirement(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Location    *string `json:"location"`
			BudgetMin   *int    `json:"budgetMin"`
			BudgetMax   *int    `json:"budgetMax"`
			Description *string `json:"description"`
			IsActive    *bool   `json:"isActive"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid requirement data"})
			return
		}

		var req models.Requirement
		if err := db.First(&req, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"msg": "requirement not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "db error"})
			return
		}

		if body.Location != nil && strings.TrimSpace(*body.Location) != "" {
			req.Location = strings.TrimSpace(*body.Location)
		}
		if body.BudgetMin != nil {
			req.BudgetMin = *body.BudgetMin
		}
		if body.BudgetMax != nil {
			req.BudgetMax = *body.BudgetMax
		}
		if body.Description != nil && strings.TrimSpace(*body.Description) != "" {
			req.Description = strings.TrimSpace(*body.Description)
		}
		if body.IsActive != nil {
			req.IsActive = *body.IsActive
		}

		if err := db.Save(&req).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "failed to update requirement"})
			return
		}
		c.JSON(http.StatusOK, req)
	}
}
