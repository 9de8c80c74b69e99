package tiffin

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"studenthub/controllers"
	"studenthub/middleware"
)

func RegisterPublic(g *gin.RouterGroup, db *gorm.DB) {
	g.GET("/tiffin", controllers.ListTiffinServices(db))
	g.GET("/tiffin/:id", controllers.GetTiffinService(db))
}

func RegisterProtected(g *gin.RouterGroup, db *gorm.DB) {
	g.POST("/tiffin", middleware.RateLimit(), controllers.CreateTiffinService(db))
	g.PUT("/tiffin/:id", controllers.UpdateTiffinService(db))
	g.DELETE("/tiffin/:id", controllers.DeleteTiffinService(db))
}
