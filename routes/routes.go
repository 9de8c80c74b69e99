package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"studenthub/middleware"
	"studenthub/pkg/chatstore"
	"studenthub/pkg/relay"

	authRoutes "studenthub/routes/auth"
	convRoutes "studenthub/routes/conversation"
	requirementRoutes "studenthub/routes/requirements"
	reviewRoutes "studenthub/routes/reviews"
	roomRoutes "studenthub/routes/rooms"
	tiffinRoutes "studenthub/routes/tiffin"
	userRoutes "studenthub/routes/users"
	websocketRoutes "studenthub/routes/websocket"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, store *chatstore.Store, registry *relay.Registry) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"msg": "Student Hub Jabalpur backend running"})
	})

	websocketRoutes.Register(r, store, registry)

	api := r.Group("/api")
	authRoutes.RegisterPublic(api, db)
	userRoutes.RegisterPublic(api, db)
	roomRoutes.RegisterPublic(api, db)
	tiffinRoutes.RegisterPublic(api, db)
	requirementRoutes.RegisterPublic(api, db)
	reviewRoutes.RegisterPublic(api, db)
	convRoutes.RegisterPublic(api, store)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware())
	authRoutes.RegisterProtected(protected, db)
	userRoutes.RegisterProtected(protected, db)
	roomRoutes.RegisterProtected(protected, db)
	tiffinRoutes.RegisterProtected(protected, db)
	requirementRoutes.RegisterProtected(protected, db)
	reviewRoutes.RegisterProtected(protected, db)
	convRoutes.RegisterProtected(protected, store)
}
