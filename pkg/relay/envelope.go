// Package relay holds the wire protocol and the connection registry for the
// real-time messaging channel between clients and the server.
package relay

import "studenthub/models"

// Envelope types carried over the relay connection.
const (
	// client -> server
	TypeSendMessage = "send_message"
	TypePing        = "ping"

	// server -> client
	TypeNewMessage  = "new_message"
	TypeMessageSent = "message_sent"
	TypePong        = "pong"
	TypeError       = "error"
)

// Inbound is a client-to-server envelope. Type selects which of the other
// fields are meaningful; for send_message all of them are.
type Inbound struct {
	Type           string `json:"type"`
	ConversationID string `json:"conversationId,omitempty"`
	SenderID       string `json:"senderId,omitempty"`
	Content        string `json:"content,omitempty"`
	MessageType    string `json:"messageType,omitempty"`
}

// Outbound is a server-to-client envelope.
type Outbound struct {
	Type    string          `json:"type"`
	Message *models.Message `json:"message,omitempty"`
	Error   string          `json:"error,omitempty"`
}
