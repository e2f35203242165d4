package wsserver

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"studio-notify/internal/event"
	"studio-notify/pkg/log"
)

// Connection represents one WebSocket connection for a user (one dashboard tab).
type Connection struct {
	hub  *Hub
	conn *websocket.Conn

	// Identity from the verified token.
	userID int64
	roles  []string

	// Buffered channel of outbound frames.
	send chan []byte

	// Rooms this connection joined; owned by the hub, guarded by hub.mu.
	rooms map[string]bool

	cfg    WSConfig
	logger log.Logger

	done      chan struct{}
	closeOnce sync.Once
}

// NewConnection creates a new Connection instance.
func NewConnection(hub *Hub, conn *websocket.Conn, userID int64, roles []string, cfg WSConfig, logger log.Logger) *Connection {
	return &Connection{
		hub:    hub,
		conn:   conn,
		userID: userID,
		roles:  roles,
		send:   make(chan []byte, 256),
		rooms:  make(map[string]bool),
		cfg:    cfg,
		logger: logger,
		done:   make(chan struct{}),
	}
}

// readPump pumps frames from the WebSocket connection to the hub.
//
// The application runs readPump in a per-connection goroutine, ensuring at
// most one reader per connection.
func (c *Connection) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
		return nil
	})
	c.conn.SetReadLimit(c.cfg.MaxMessageSize)

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Errorf(context.Background(), "read error for user %d: %v", c.userID, err)
			}
			break
		}
		c.handleClientFrame(data)
	}
}

// handleClientFrame processes one frame sent by the dashboard client:
// heartbeats and room subscription intents. Anything else is logged and
// dropped.
func (c *Connection) handleClientFrame(data []byte) {
	frame, err := event.ParseOutbound(data)
	if err != nil {
		c.logger.Warnf(context.Background(), "malformed frame from user %d: %v", c.userID, err)
		return
	}

	switch frame.Type {
	case event.TypePing:
		// One-way heartbeat: logged, never answered at the protocol level.
		// Transport-level ping/pong keeps the liveness deadlines fresh.
		c.logger.Debugf(context.Background(), "heartbeat from user %d", c.userID)

	case event.TypeJoinRoom:
		room, err := frame.Room()
		if err != nil {
			c.logger.Warnf(context.Background(), "bad join_room from user %d: %v", c.userID, err)
			return
		}
		c.hub.joinRoom(c, room.RoomID)

	case event.TypeLeaveRoom:
		room, err := frame.Room()
		if err != nil {
			c.logger.Warnf(context.Background(), "bad leave_room from user %d: %v", c.userID, err)
			return
		}
		c.hub.leaveRoom(c, room.RoomID)

	default:
		c.logger.Debugf(context.Background(), "unhandled %s frame from user %d", frame.Type, c.userID)
	}
}

// writePump pumps frames from the hub to the WebSocket connection.
//
// A goroutine running writePump is started for each connection, ensuring at
// most one writer per connection.
func (c *Connection) writePump() {
	ticker := time.NewTicker(c.cfg.PingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteWait))

			if !ok {
				// The hub closed the channel.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.done:
			return
		}
	}
}

// Start starts the connection's read and write pumps.
func (c *Connection) Start() {
	go c.writePump()
	go c.readPump()
}

// Close closes the connection. Safe to call concurrently.
func (c *Connection) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		if c.conn != nil {
			c.conn.Close()
		}
	})
}
