package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"studenthub/pkg/chatstore"
)

// CreateConversation finds or creates the conversation between two users.
// The same conversation is returned no matter which order the ids arrive in.
func CreateConversation(store *chatstore.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			User1ID string `json:"user1Id"`
			User2ID string `json:"user2Id"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid conversation data"})
			return
		}

		conv, err := store.FindOrCreateConversation(body.User1ID, body.User2ID)
		if err != nil {
			if errors.Is(err, chatstore.ErrBadParticipants) {
				c.JSON(http.StatusBadRequest, gin.H{"msg": "two distinct participants are required"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "failed to create conversation"})
			return
		}
		c.JSON(http.StatusOK, conv)
	}
}

// ListConversationMessages returns a conversation's messages oldest first.
func ListConversationMessages(store *chatstore.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		msgs, err := store.ListMessages(c.Param("id"))
		if err != nil {
			if errors.Is(err, chatstore.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"msg": "conversation not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "db error"})
			return
		}
		c.JSON(http.StatusOK, msgs)
	}
}

// ListUserConversations returns a user's conversations, most recently
// active first.
func ListUserConversations(store *chatstore.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		convs, err := store.ListConversations(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "db error"})
			return
		}
		c.JSON(http.StatusOK, convs)
	}
}
