// Package handler provides the WebSocket transport for the realtime
// broadcaster.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"codesage_backend/internal/feature/realtime"
)

const (
	// writeWait bounds a single frame write to a slow peer.
	writeWait = 10 * time.Second

	// maxMessageSize caps inbound frames.
	maxMessageSize = 4096
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The identifier is client-supplied and unauthenticated, so origin
	// restrictions would add nothing here.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WSHandler upgrades connections and bridges them to the hub.
type WSHandler struct {
	hub *realtime.Hub
}

// NewWSHandler creates a new WSHandler instance.
func NewWSHandler(hub *realtime.Hub) *WSHandler {
	return &WSHandler{hub: hub}
}

// Serve handles GET /ws/:client_id. It registers the connection under the
// path identifier and relays frames until the peer disconnects.
func (h *WSHandler) Serve(c *gin.Context) {
	clientID := c.Param("client_id")
	if clientID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "client_id is required"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Warn("websocket upgrade failed", "error", err, "remote_addr", c.ClientIP())
		return
	}

	client := h.hub.Register(clientID)

	// Write pump: drain the hub's queue in order until it closes.
	go func() {
		for msg := range client.Receive() {
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				break
			}
		}
		_ = conn.Close()
	}()

	// Read pump: relay inbound text frames until the peer goes away,
	// gracefully or not.
	conn.SetReadLimit(maxMessageSize)
	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			break
		}
		if msgType != websocket.TextMessage {
			continue
		}
		h.hub.Broadcast(client, string(data))
	}

	h.hub.Unregister(client)
	_ = conn.Close()
}
