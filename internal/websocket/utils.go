package websocket

import (
	"time"

	"github.com/gorilla/websocket"
)

// WriteRaw sends a pre-encoded JSON message with a write deadline. Monitor
// relays pass Redis payloads through without re-encoding.
func WriteRaw(conn *websocket.Conn, payload []byte) error {
	conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return conn.WriteMessage(websocket.TextMessage, payload)
}
