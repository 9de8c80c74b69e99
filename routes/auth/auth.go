package auth

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"studenthub/controllers"
	"studenthub/middleware"
)

// RegisterPublic registers the sign-in route.
func RegisterPublic(g *gin.RouterGroup, db *gorm.DB) {
	g.POST("/auth/google", middleware.RateLimit(), controllers.GoogleSignIn(db))
}

// RegisterProtected registers auth routes that need a valid token.
func RegisterProtected(g *gin.RouterGroup, db *gorm.DB) {
	g.POST("/auth/logout", controllers.Logout())
}
