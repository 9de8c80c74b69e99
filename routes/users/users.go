package users

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"studenthub/controllers"
)

// RegisterPublic registers the user profile read plus the nested
// listing reads keyed by user id.
func RegisterPublic(g *gin.RouterGroup, db *gorm.DB) {
	g.GET("/users/:id", controllers.GetUser(db))
	g.GET("/users/:id/rooms", controllers.ListRoomsByOwner(db))
	g.GET("/users/:id/tiffin", controllers.ListTiffinServicesByProvider(db))
	g.GET("/users/:id/requirements", controllers.ListRequirementsByStudent(db))
}

func RegisterProtected(g *gin.RouterGroup, db *gorm.DB) {
	g.PUT("/users/:id", controllers.UpdateUser(db))
}
