package websocket

import (
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// ServeWs attaches conn to the hub as a viewer of contentID and blocks until
// the peer disconnects.
func ServeWs(hub *Hub, conn *websocket.Conn, contentID uuid.UUID) {
	client := &Client{Hub: hub, Conn: conn, ContentID: contentID, Send: make(chan []byte, 256)}
	if !hub.add(client) {
		conn.Close()
		return
	}

	go client.writePump()
	client.readPump()
}
