package wsserver

import (
	"context"
	"sync"
	"sync/atomic"

	"studio-notify/internal/event"
	"studio-notify/pkg/log"
)

// Hub maintains the set of active connections and fans events out to them.
// Every dashboard tab is one Connection; a user may hold several.
type Hub struct {
	// Registered connections (userID -> connections for multiple tabs).
	connections map[int64][]*Connection
	// Room subscriptions (roomID -> member connections).
	rooms map[string]map[*Connection]bool
	mu    sync.RWMutex

	register   chan *Connection
	unregister chan *Connection
	events     chan *event.Inbound

	totalEventsReceived atomic.Int64
	totalFramesSent     atomic.Int64
	totalFramesFailed   atomic.Int64

	maxConnections int

	logger log.Logger

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
}

// NewHub creates a new Hub instance.
func NewHub(logger log.Logger, maxConnections int) *Hub {
	ctx, cancel := context.WithCancel(context.Background())

	return &Hub{
		connections:    make(map[int64][]*Connection),
		rooms:          make(map[string]map[*Connection]bool),
		register:       make(chan *Connection, 100),
		unregister:     make(chan *Connection, 100),
		events:         make(chan *event.Inbound, 1000),
		maxConnections: maxConnections,
		logger:         logger,
		ctx:            ctx,
		cancel:         cancel,
		done:           make(chan struct{}),
	}
}

// Run starts the hub's main loop.
func (h *Hub) Run() {
	defer close(h.done)

	for {
		select {
		case <-h.ctx.Done():
			h.logger.Info(context.Background(), "hub shutting down")
			h.closeAllConnections()
			return

		case conn := <-h.register:
			h.registerConnection(conn)

		case conn := <-h.unregister:
			h.unregisterConnection(conn)

		case ev := <-h.events:
			h.broadcastEvent(ev)
		}
	}
}

// Publish queues a business event for fan-out to all connections. The
// routing policy runs client-side; the hub only delivers frames.
func (h *Hub) Publish(ev *event.Inbound) {
	select {
	case h.events <- ev:
	default:
		h.logger.Warnf(context.Background(), "event queue full, dropping %s", ev.Type)
		h.totalFramesFailed.Add(1)
	}
}

func (h *Hub) registerConnection(conn *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.totalConnectionsLocked() >= h.maxConnections {
		h.logger.Warnf(context.Background(), "max connections reached, rejecting user %d", conn.userID)
		go conn.Close()
		return
	}

	h.connections[conn.userID] = append(h.connections[conn.userID], conn)
	h.logger.Infof(context.Background(), "user %d connected (connections: %d)",
		conn.userID, len(h.connections[conn.userID]))
}

func (h *Hub) unregisterConnection(conn *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()

	connections, exists := h.connections[conn.userID]
	if !exists {
		return
	}

	for i, c := range connections {
		if c == conn {
			h.connections[conn.userID] = append(connections[:i], connections[i+1:]...)
			close(conn.send)

			h.leaveAllRoomsLocked(conn)

			if len(h.connections[conn.userID]) == 0 {
				delete(h.connections, conn.userID)
				h.logger.Infof(context.Background(), "user %d disconnected (all tabs closed)", conn.userID)
			} else {
				h.logger.Infof(context.Background(), "user %d connection closed (remaining: %d)",
					conn.userID, len(h.connections[conn.userID]))
			}
			break
		}
	}
}

// broadcastEvent sends the event to every connection; room-scoped frames are
// not produced here, see BroadcastRoom.
func (h *Hub) broadcastEvent(ev *event.Inbound) {
	data, err := ev.Encode()
	if err != nil {
		h.logger.Errorf(context.Background(), "failed to encode event: %v", err)
		h.totalFramesFailed.Add(1)
		return
	}
	h.totalEventsReceived.Add(1)

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, connections := range h.connections {
		for _, conn := range connections {
			h.sendLocked(conn, data)
		}
	}
}

// BroadcastRoom sends the event to the members of one room only.
func (h *Hub) BroadcastRoom(roomID string, ev *event.Inbound) {
	data, err := ev.Encode()
	if err != nil {
		h.logger.Errorf(context.Background(), "failed to encode event: %v", err)
		h.totalFramesFailed.Add(1)
		return
	}
	h.totalEventsReceived.Add(1)

	h.mu.RLock()
	defer h.mu.RUnlock()

	for conn := range h.rooms[roomID] {
		h.sendLocked(conn, data)
	}
}

// SendToUser sends the event to all connections of a specific user.
func (h *Hub) SendToUser(userID int64, ev *event.Inbound) {
	data, err := ev.Encode()
	if err != nil {
		h.logger.Errorf(context.Background(), "failed to encode event: %v", err)
		h.totalFramesFailed.Add(1)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, conn := range h.connections[userID] {
		h.sendLocked(conn, data)
	}
}

func (h *Hub) sendLocked(conn *Connection, data []byte) {
	select {
	case conn.send <- data:
		h.totalFramesSent.Add(1)
	default:
		// Send buffer full, skip this tab.
		h.logger.Warnf(context.Background(), "send buffer full for user %d", conn.userID)
		h.totalFramesFailed.Add(1)
	}
}

func (h *Hub) joinRoom(conn *Connection, roomID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.rooms[roomID] == nil {
		h.rooms[roomID] = make(map[*Connection]bool)
	}
	h.rooms[roomID][conn] = true
	conn.rooms[roomID] = true
	h.logger.Debugf(context.Background(), "user %d joined room %s", conn.userID, roomID)
}

func (h *Hub) leaveRoom(conn *Connection, roomID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.leaveRoomLocked(conn, roomID)
	h.logger.Debugf(context.Background(), "user %d left room %s", conn.userID, roomID)
}

func (h *Hub) leaveRoomLocked(conn *Connection, roomID string) {
	if members, ok := h.rooms[roomID]; ok {
		delete(members, conn)
		if len(members) == 0 {
			delete(h.rooms, roomID)
		}
	}
	delete(conn.rooms, roomID)
}

func (h *Hub) leaveAllRoomsLocked(conn *Connection) {
	for roomID := range conn.rooms {
		h.leaveRoomLocked(conn, roomID)
	}
}

func (h *Hub) closeAllConnections() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for userID, connections := range h.connections {
		for _, conn := range connections {
			conn.Close()
		}
		h.logger.Infof(context.Background(), "closed all connections for user %d", userID)
	}

	h.connections = make(map[int64][]*Connection)
	h.rooms = make(map[string]map[*Connection]bool)
}

// GetStats returns hub statistics.
func (h *Hub) GetStats() Stats {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return Stats{
		ActiveConnections:   h.totalConnectionsLocked(),
		UniqueUsers:         len(h.connections),
		ActiveRooms:         len(h.rooms),
		TotalEventsReceived: h.totalEventsReceived.Load(),
		TotalFramesSent:     h.totalFramesSent.Load(),
		TotalFramesFailed:   h.totalFramesFailed.Load(),
	}
}

func (h *Hub) totalConnectionsLocked() int {
	total := 0
	for _, connections := range h.connections {
		total += len(connections)
	}
	return total
}

// Shutdown gracefully shuts down the hub.
func (h *Hub) Shutdown(ctx context.Context) error {
	h.cancel()

	select {
	case <-h.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
