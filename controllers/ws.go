package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"studenthub/pkg/chatstore"
	"studenthub/pkg/config"
	"studenthub/pkg/relay"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS handled at HTTP level; allow WS here
		return true
	},
}

// ChatWS is the relay endpoint. The client identifies itself with a
// ?userId= query parameter on the handshake and then exchanges JSON
// envelopes:
//
//	-> {type: "send_message", conversationId, senderId, content, messageType?}
//	-> {type: "ping"}
//	<- {type: "new_message", message: Message}
//	<- {type: "message_sent", message: Message}
//	<- {type: "pong"}
//	<- {type: "error", error: string}
//
// A bad envelope is answered with an error envelope and the connection
// stays open for future valid ones.
func ChatWS(store *chatstore.Store, registry *relay.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.Query("userId"))

		ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("[ws] upgrade error: %v", err)
			return
		}
		conn := relay.NewConn(ws)
		defer func() {
			if userID != "" {
				registry.Unregister(userID, conn)
			}
			_ = conn.Close()
		}()

		if userID != "" {
			registry.Register(userID, conn)
		}

		readTimeout := time.Duration(config.WSReadTimeoutSeconds) * time.Second
		ws.SetReadLimit(int64(config.WSReadLimitBytes))
		_ = ws.SetReadDeadline(time.Now().Add(readTimeout))
		ws.SetPongHandler(func(string) error {
			return ws.SetReadDeadline(time.Now().Add(readTimeout))
		})

		for {
			_, data, err := ws.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					log.Printf("[ws] read error for %q: %v", userID, err)
				}
				return
			}
			_ = ws.SetReadDeadline(time.Now().Add(readTimeout))

			var env relay.Inbound
			if err := json.Unmarshal(data, &env); err != nil {
				log.Printf("[ws] malformed envelope from %q: %v", userID, err)
				_ = conn.WriteJSON(relay.Outbound{Type: relay.TypeError, Error: "malformed envelope"})
				continue
			}

			switch env.Type {
			case relay.TypeSendMessage:
				relaySend(store, registry, conn, env)
			case relay.TypePing:
				_ = conn.WriteJSON(relay.Outbound{Type: relay.TypePong})
			default:
				log.Printf("[ws] unknown envelope type %q from %q", env.Type, userID)
				_ = conn.WriteJSON(relay.Outbound{Type: relay.TypeError, Error: "unknown envelope type"})
			}
		}
	}
}

// relaySend persists the message, forwards it to the other participant when
// they are online, and acknowledges the sender. An offline recipient is not
// an error: the message stays persisted and shows up on their next fetch.
func relaySend(store *chatstore.Store, registry *relay.Registry, sender *relay.Conn, env relay.Inbound) {
	msg, err := store.AppendMessage(env.ConversationID, env.SenderID, env.Content, env.MessageType)
	if err != nil {
		log.Printf("[ws] send rejected: %v", err)
		_ = sender.WriteJSON(relay.Outbound{Type: relay.TypeError, Error: sendErrorText(err)})
		return
	}

	conv, err := store.GetConversation(env.ConversationID)
	if err == nil {
		recipientID := conv.OtherParticipant(env.SenderID)
		if rc, ok := registry.Lookup(recipientID); ok && rc.Open() {
			if err := rc.WriteJSON(relay.Outbound{Type: relay.TypeNewMessage, Message: msg}); err != nil {
				log.Printf("[ws] forward to %q failed: %v", recipientID, err)
			}
		}
	}

	if err := sender.WriteJSON(relay.Outbound{Type: relay.TypeMessageSent, Message: msg}); err != nil {
		log.Printf("[ws] ack to %q failed: %v", env.SenderID, err)
	}
}

func sendErrorText(err error) string {
	switch {
	case errors.Is(err, chatstore.ErrNotFound):
		return "conversation not found"
	case errors.Is(err, chatstore.ErrInvalidSender):
		return "sender is not a participant"
	case errors.Is(err, chatstore.ErrEmptyContent):
		return "message content is required"
	default:
		return "failed to save message"
	}
}
