package controllers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"studenthub/middleware"
	"studenthub/models"
	"studenthub/pkg/cache"
)

// ListReviewsByTarget returns the reviews for one room or tiffin service,
// newest first.
func ListReviewsByTarget(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		reviews := []models.Review{}
		if err := db.Where("target_id = ? AND target_type = ?", c.Param("id"), c.Param("targetType")).
			Order("created_at DESC").Find(&reviews).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "db error"})
			return
		}
		c.JSON(http.StatusOK, reviews)
	}
}

// CreateReview stores a review by the authenticated user and recomputes the
// target's aggregate rating and review count in the same transaction.
func CreateReview(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		uidRaw, _ := c.Get(middleware.ContextUserIDKey)
		uid, _ := uidRaw.(string)

		var body struct {
			TargetID   string `json:"targetId"`
			TargetType string `json:"targetType"`
			Rating     int    `json:"rating"`
			Comment    string `json:"comment"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid review data"})
			return
		}
		if body.Rating < 1 || body.Rating > 5 || strings.TrimSpace(body.TargetID) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid review data"})
			return
		}
		if body.TargetType != models.ReviewTargetRoom && body.TargetType != models.ReviewTargetTiffin {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid review data"})
			return
		}

		review := models.Review{
			UserID:     uid,
			TargetID:   body.TargetID,
			TargetType: body.TargetType,
			Rating:     body.Rating,
			Comment:    strings.TrimSpace(body.Comment),
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&review).Error; err != nil {
				return err
			}

			var agg struct {
				Avg   float64
				Count int
			}
			if err := tx.Model(&models.Review{}).
				Select("AVG(rating) AS avg, COUNT(*) AS count").
				Where("target_id = ? AND target_type = ?", review.TargetID, review.TargetType).
				Scan(&agg).Error; err != nil {
				return err
			}

			updates := map[string]any{
				"rating":       fmt.Sprintf("%.2f", agg.Avg),
				"review_count": agg.Count,
			}
			if review.TargetType == models.ReviewTargetRoom {
				return tx.Model(&models.RoomListing{}).Where("id = ?", review.TargetID).Updates(updates).Error
			}
			return tx.Model(&models.TiffinService{}).Where("id = ?", review.TargetID).Updates(updates).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "failed to create review"})
			return
		}

		// listing payloads embed the aggregate rating
		if review.TargetType == models.ReviewTargetRoom {
			cache.Default().InvalidatePrefix(roomCachePrefix)
		} else {
			cache.Default().InvalidatePrefix(tiffinCachePrefix)
		}
		c.JSON(http.StatusCreated, review)
	}
}
