package notify

import (
	"context"

	"github.com/gorilla/websocket"
)

// transport is the minimal surface the client needs from a duplex connection.
// The production implementation wraps a gorilla WebSocket; tests substitute an
// in-memory pipe through the dial function.
type transport interface {
	// ReadMessage blocks until the next frame arrives or the transport closes.
	ReadMessage() ([]byte, error)

	// WriteMessage transmits one frame.
	WriteMessage(data []byte) error

	// Close tears the transport down. Safe to call more than once.
	Close() error
}

// dialFunc establishes a transport to the given URL.
type dialFunc func(ctx context.Context, url string) (transport, error)

type wsTransport struct {
	conn *websocket.Conn
}

func dialWebSocket(ctx context.Context, url string) (transport, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, err
	}
	return &wsTransport{conn: conn}, nil
}

func (t *wsTransport) ReadMessage() ([]byte, error) {
	_, data, err := t.conn.ReadMessage()
	return data, err
}

func (t *wsTransport) WriteMessage(data []byte) error {
	return t.conn.WriteMessage(websocket.TextMessage, data)
}

func (t *wsTransport) Close() error {
	return t.conn.Close()
}
