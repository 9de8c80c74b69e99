package rooms

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"studenthub/controllers"
	"studenthub/middleware"
)

func RegisterPublic(g *gin.RouterGroup, db *gorm.DB) {
	g.GET("/rooms", controllers.ListRooms(db))
	g.GET("/rooms/:id", controllers.GetRoom(db))
}

func RegisterProtected(g *gin.RouterGroup, db *gorm.DB) {
	g.POST("/rooms", middleware.RateLimit(), controllers.CreateRoom(db))
	g.PUT("/rooms/:id", controllers.UpdateRoom(db))
	g.DELETE("/rooms/:id", controllers.DeleteRoom(db))
}
