package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"studenthub/middleware"
	"studenthub/models"
	"studenthub/pkg/config"
	tokenstore "studenthub/pkg/token"
)

// GoogleSignIn is the mock sign-in: it trusts the profile the client claims
// to have obtained from Google, finds or creates the matching user by
// email, and hands back a session token. No identity proof is checked.
func GoogleSignIn(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Email        string `json:"email"`
			Name         string `json:"name"`
			UserType     string `json:"userType"`
			College      string `json:"college"`
			ProfileImage string `json:"profileImage"`
			PhoneNumber  string `json:"phoneNumber"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid request"})
			return
		}

		email := strings.TrimSpace(strings.ToLower(body.Email))
		name := strings.TrimSpace(body.Name)
		if email == "" || name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "email and name are required"})
			return
		}
		if !models.ValidUserType(body.UserType) {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid user type"})
			return
		}

		var user models.User
		err := db.Where("email = ?", email).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			user = models.User{
				Email:        email,
				Name:         name,
				UserType:     body.UserType,
				College:      strings.TrimSpace(body.College),
				ProfileImage: strings.TrimSpace(body.ProfileImage),
				PhoneNumber:  strings.TrimSpace(body.PhoneNumber),
			}
			if err := db.Create(&user).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"msg": "failed to create user"})
				return
			}
		} else if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "db error"})
			return
		}

		token, err := issueToken(user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "failed to issue token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"user": user, "token": token})
	}
}

// Logout revokes the current session token.
func Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		jtiRaw, _ := c.Get(middleware.ContextJTIKey)
		jti, _ := jtiRaw.(string)
		tokenstore.Revoke(jti)
		c.JSON(http.StatusOK, gin.H{"msg": "logged out"})
	}
}

func issueToken(userID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": userID,
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": now.Add(7 * 24 * time.Hour).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(config.JWTSecret))
}
