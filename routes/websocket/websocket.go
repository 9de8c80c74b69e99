package websocket

import (
	"github.com/gin-gonic/gin"

	"studenthub/controllers"
	"studenthub/middleware"
	"studenthub/pkg/chatstore"
	"studenthub/pkg/relay"
)

func Register(r *gin.Engine, store *chatstore.Store, registry *relay.Registry) {
	r.GET("/ws", middleware.RateLimit(), controllers.ChatWS(store, registry))
}
