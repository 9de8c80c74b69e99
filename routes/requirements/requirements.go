package requirements

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"studenthub/controllers"
	"studenthub/middleware"
)

func RegisterPublic(g *gin.RouterGroup, db *gorm.DB) {
	g.GET("/requirements", controllers.ListRequirements(db))
}

func RegisterProtected(g *gin.RouterGroup, db *gorm.DB) {
	g.POST("/requirements", middleware.RateLimit(), controllers.CreateRequirement(db))
	g.PUT("/requirements/:id", controllers.UpdateRequirement(db))
}
