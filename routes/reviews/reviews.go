package reviews

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"studenthub/controllers"
	"studenthub/middleware"
)

func RegisterPublic(g *gin.RouterGroup, db *gorm.DB) {
	g.GET("/reviews/:id/:targetType", controllers.ListReviewsByTarget(db))
}

func RegisterProtected(g *gin.RouterGroup, db *gorm.DB) {
	g.POST("/reviews", middleware.RateLimit(), controllers.CreateReview(db))
}
