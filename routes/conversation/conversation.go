package conversation

import (
	"github.com/gin-gonic/gin"

	"studenthub/controllers"
	"studenthub/middleware"
	"studenthub/pkg/chatstore"
)

// RegisterPublic registers the conversation reads.
func RegisterPublic(g *gin.RouterGroup, store *chatstore.Store) {
	g.GET("/conversations/:id/messages", controllers.ListConversationMessages(store))
	g.GET("/users/:id/conversations", controllers.ListUserConversations(store))
}

// RegisterProtected registers the conversation create.
func RegisterProtected(g *gin.RouterGroup, store *chatstore.Store) {
	g.POST("/conversations", middleware.RateLimit(), controllers.CreateConversation(store))
}
