package ws

import (
	"time"

	"github.com/gorilla/websocket"
)

const wsWriteTimeout = 10 * time.Second

// connTransport adapts a gorilla connection to the Transport interface,
// applying a write deadline per frame.
type connTransport struct {
	conn    *websocket.Conn
	timeout time.Duration
}

func newConnTransport(conn *websocket.Conn) *connTransport {
	return &connTransport{
		conn:    conn,
		timeout: wsWriteTimeout,
	}
}

func (t *connTransport) WriteFrame(f Frame) error {
	if err := t.conn.SetWriteDeadline(time.Now().Add(t.timeout)); err != nil {
		return err
	}
	return t.conn.WriteJSON(f)
}
