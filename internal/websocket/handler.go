package websocket

import (
	"context"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// SessionKey groups sockets that should see the same replies.
func SessionKey(userID string) string {
	if userID == "" {
		return "anon:" + uuid.NewString()
	}
	return "user:" + userID
}

// ServeWs runs a chat session until the peer disconnects.
func ServeWs(ctx context.Context, hub *Hub, c *websocket.Conn, userID string, handle MessageHandler) {
	client := &Client{
		Hub:        hub,
		Conn:       c,
		UserID:     userID,
		SessionKey: SessionKey(userID),
		Send:       make(chan []byte, 16),
		handle:     handle,
	}
	if !hub.join(ctx, client) {
		c.Close()
		return
	}

	go client.writePump()
	client.readPump(ctx)
}
