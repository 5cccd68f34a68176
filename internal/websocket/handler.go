package websocket

import (
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// ServeWs registers the connection and writes greeting frames before any
// broadcast reaches it.
func ServeWs(hub *Hub, c *websocket.Conn, greeting ...[]byte) {
	client := &Client{Hub: hub, Conn: c, ID: uuid.New(), Send: make(chan []byte, 256)}
	for _, frame := range greeting {
		client.Send <- frame
	}
	select {
	case hub.register <- client:
	case <-hub.done:
		return
	}

	go client.writePump()
	client.readPump()
}
