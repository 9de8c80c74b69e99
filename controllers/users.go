package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"studenthub/models"
)

func GetUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user models.User
		if err := db.First(&user, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"msg": "user not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "db error"})
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

// UpdateUser applies a partial profile update. Absent fields keep their
// current values.
func UpdateUser(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Name         *string `json:"name"`
			UserType     *string `json:"userType"`
			College      *string `json:"college"`
			ProfileImage *string `json:"profileImage"`
			PhoneNumber  *string `json:"phoneNumber"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid user data"})
			return
		}

		var user models.User
		if err := db.First(&user, "id = ?", c.Param("id")).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"msg": "user not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "db error"})
			return
		}

		updates := map[string]any{}
		if body.Name != nil && strings.TrimSpace(*body.Name) != "" {
			updates["name"] = strings.TrimSpace(*body.Name)
		}
		if body.UserType != nil {
			if !models.ValidUserType(*body.UserType) {
				c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid user type"})
				return
			}
			updates["user_type"] = *body.UserType
		}
		if body.College != nil {
			updates["college"] = strings.TrimSpace(*body.College)
		}
		if body.ProfileImage != nil {
			updates["profile_image"] = strings.TrimSpace(*body.ProfileImage)
		}
		if body.PhoneNumber != nil {
			updates["phone_number"] = strings.TrimSpace(*body.PhoneNumber)
		}

		if len(updates) > 0 {
			if err := db.Model(&user).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"msg": "failed to update user"})
				return
			}
		}
		c.JSON(http.StatusOK, user)
	}
}
