package notify

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"time"

	"studio-notify/internal/event"
	"studio-notify/pkg/log"
)

// Reconnect policy. The delay is a fixed interval, matching the behavior the
// dashboard has always shipped with; it is not an exponential backoff.
const (
	DefaultReconnectDelay       = 3 * time.Second
	DefaultMaxReconnectAttempts = 10
)

// ErrReconnectExhausted is reported through OnError once the maximum number of
// consecutive reconnect attempts has been used up. No further attempts are
// made until Connect is called again.
var ErrReconnectExhausted = errors.New("websocket reconnect attempts exhausted, reload required")

// Config holds client connection configuration.
type Config struct {
	// URL is the WebSocket endpoint, e.g. "ws://host:port/ws".
	URL string

	// Token authenticates the connection; it is appended to the URL as a
	// query parameter. Connect is a no-op while the token is empty.
	Token string

	// AutoReconnect enables reconnection after an unexpected close.
	AutoReconnect bool

	// ReconnectDelay is the fixed wait between attempts.
	ReconnectDelay time.Duration

	// MaxReconnectAttempts bounds consecutive failed attempts.
	MaxReconnectAttempts int
}

// Callbacks are the named observer hooks of the connection state machine.
// All of them are optional and are invoked outside the client's lock.
type Callbacks struct {
	OnConnect    func()
	OnDisconnect func()
	OnMessage    func(*event.Inbound)
	OnError      func(error)
}

// Client owns one persistent WebSocket connection to the notification server
// and manages its lifecycle: connect, disconnect, and timed reconnection.
// There is at most one live transport per client at any time.
type Client struct {
	cfg       Config
	callbacks Callbacks
	logger    log.Logger
	dial      dialFunc

	ctx    context.Context
	cancel context.CancelFunc

	mu             sync.Mutex
	state          State
	conn           transport
	gen            uint64 // transport generation, guards against stale events
	attempts       int
	manualClose    bool
	reconnectTimer *time.Timer
}

// NewClient creates a client. It does not connect.
func NewClient(cfg Config, callbacks Callbacks, logger log.Logger) *Client {
	if cfg.ReconnectDelay <= 0 {
		cfg.ReconnectDelay = DefaultReconnectDelay
	}
	if cfg.MaxReconnectAttempts <= 0 {
		cfg.MaxReconnectAttempts = DefaultMaxReconnectAttempts
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Client{
		cfg:       cfg,
		callbacks: callbacks,
		logger:    logger,
		dial:      dialWebSocket,
		ctx:       ctx,
		cancel:    cancel,
		state:     StateDisconnected,
	}
}

// SetToken replaces the auth token used by subsequent connect attempts.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cfg.Token = token
}

// State returns the current connection state.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// IsConnected reports whether the transport is open.
func (c *Client) IsConnected() bool {
	return c.State() == StateConnected
}

// Attempts returns the current reconnect attempt counter.
func (c *Client) Attempts() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.attempts
}

// Connect establishes the connection. It is idempotent: while a transport is
// connecting or connected it does nothing. A missing token is logged and
// swallowed. The call returns immediately; completion is observed through the
// OnConnect callback.
func (c *Client) Connect() {
	c.mu.Lock()

	if c.state == StateConnecting || c.state == StateConnected {
		c.mu.Unlock()
		return
	}
	if c.cfg.Token == "" {
		c.mu.Unlock()
		c.logger.Error(c.ctx, "websocket connect skipped: no auth token")
		return
	}

	// An explicit connect clears a previous user-initiated close and gives
	// the reconnect schedule a fresh start.
	c.manualClose = false
	c.stopReconnectTimerLocked()

	target, err := c.buildURLLocked()
	if err != nil {
		// Construction failure: no transport was created, so there is
		// nothing to retry.
		c.state = StateDisconnected
		c.mu.Unlock()
		c.logger.Errorf(c.ctx, "websocket endpoint invalid: %v", err)
		return
	}

	// Connecting out of StateDisconnecting: the generation bump below makes
	// the old transport's pending close event stale, so drop the reference
	// now rather than leave it pointing at a dead transport.
	c.conn = nil
	c.state = StateConnecting
	c.gen++
	gen := c.gen
	c.mu.Unlock()

	c.logger.Debugf(c.ctx, "websocket connecting to %s", c.cfg.URL)
	go c.establish(gen, target)
}

// Disconnect closes the connection on behalf of the user. The pending
// reconnect timer is canceled first, so a disconnect always wins the race
// against a timer about to fire. Idempotent.
func (c *Client) Disconnect() {
	c.mu.Lock()
	c.manualClose = true
	c.stopReconnectTimerLocked()

	if c.conn == nil {
		// Covers both the idle case and a dial still in flight; bumping the
		// generation makes the eventual dial result a stale no-op.
		c.gen++
		c.state = StateDisconnected
		c.mu.Unlock()
		return
	}

	c.state = StateDisconnecting
	conn := c.conn
	c.mu.Unlock()

	c.logger.Debug(c.ctx, "websocket disconnecting")
	// The read loop observes the close and drives the transition to
	// StateDisconnected through handleTransportEvent.
	conn.Close()
}

// Close disconnects and releases the client. The client cannot be reused.
func (c *Client) Close() {
	c.Disconnect()
	c.cancel()
}

// SendMessage serializes the frame and transmits it if the connection is
// open. It returns false, without error, when the transport is not available
// so callers can degrade gracefully.
func (c *Client) SendMessage(frame *event.Outbound) bool {
	data, err := frame.Encode()
	if err != nil {
		c.logger.Errorf(c.ctx, "websocket frame encode failed: %v", err)
		return false
	}

	c.mu.Lock()
	if c.state != StateConnected || c.conn == nil {
		c.mu.Unlock()
		c.logger.Warnf(c.ctx, "websocket not connected, dropping %s frame", frame.Type)
		return false
	}
	conn := c.conn
	c.mu.Unlock()

	if err := conn.WriteMessage(data); err != nil {
		c.logger.Errorf(c.ctx, "websocket write failed: %v", err)
		return false
	}
	return true
}

// SendPing sends a heartbeat frame with the current client timestamp.
// Liveness is inferred from transport close events, not from pong accounting.
func (c *Client) SendPing() {
	c.SendMessage(event.NewPing())
}

// JoinRoom subscribes this connection to a room. Fire-and-forget.
func (c *Client) JoinRoom(roomID string) {
	c.SendMessage(event.NewJoinRoom(roomID))
}

// LeaveRoom unsubscribes this connection from a room. Fire-and-forget.
func (c *Client) LeaveRoom(roomID string) {
	c.SendMessage(event.NewLeaveRoom(roomID))
}

func (c *Client) buildURLLocked() (string, error) {
	u, err := url.Parse(c.cfg.URL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("token", c.cfg.Token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// establish dials the transport and feeds the resulting events into the state
// machine. It runs in its own goroutine per connect attempt.
func (c *Client) establish(gen uint64, target string) {
	conn, err := c.dial(c.ctx, target)
	if err != nil {
		c.logger.Errorf(c.ctx, "websocket dial failed: %v", err)
		c.handleTransportEvent(transportEvent{gen: gen, kind: eventError, err: err})
		c.handleTransportEvent(transportEvent{gen: gen, kind: eventClosed})
		return
	}

	if !c.handleTransportEvent(transportEvent{gen: gen, kind: eventOpen, conn: conn}) {
		// A disconnect raced the dial; this transport is already stale.
		conn.Close()
		return
	}

	c.readLoop(gen, conn)
}

// readLoop delivers inbound frames in transport order until the connection
// closes.
func (c *Client) readLoop(gen uint64, conn transport) {
	for {
		data, err := conn.ReadMessage()
		if err != nil {
			c.handleTransportEvent(transportEvent{gen: gen, kind: eventClosed})
			return
		}

		frame, err := event.ParseInbound(data)
		if err != nil {
			// A malformed frame is dropped; the connection stays up.
			c.logger.Errorf(c.ctx, "websocket frame decode failed: %v", err)
			continue
		}
		c.handleTransportEvent(transportEvent{gen: gen, kind: eventMessage, frame: frame})
	}
}

type transportEventKind int

const (
	eventOpen transportEventKind = iota
	eventMessage
	eventClosed
	eventError
)

type transportEvent struct {
	gen   uint64
	kind  transportEventKind
	conn  transport
	frame *event.Inbound
	err   error
}

// handleTransportEvent is the single entry point of the connection state
// machine. Events carrying a stale generation are ignored; the return value
// reports whether the event was accepted.
func (c *Client) handleTransportEvent(ev transportEvent) bool {
	c.mu.Lock()
	if ev.gen != c.gen {
		c.mu.Unlock()
		return false
	}

	switch ev.kind {
	case eventOpen:
		c.conn = ev.conn
		c.state = StateConnected
		c.attempts = 0
		c.stopReconnectTimerLocked()
		c.mu.Unlock()
		c.logger.Info(c.ctx, "websocket connected")
		if c.callbacks.OnConnect != nil {
			c.callbacks.OnConnect()
		}

	case eventMessage:
		c.mu.Unlock()
		if c.callbacks.OnMessage != nil {
			c.callbacks.OnMessage(ev.frame)
		}

	case eventClosed:
		c.conn = nil
		c.state = StateDisconnected
		retry := !c.manualClose && c.cfg.AutoReconnect
		var exhausted bool
		if retry {
			if c.attempts < c.cfg.MaxReconnectAttempts {
				c.attempts++
				c.scheduleReconnectLocked()
			} else {
				exhausted = true
			}
		}
		attempt := c.attempts
		c.mu.Unlock()

		c.logger.Info(c.ctx, "websocket disconnected")
		if c.callbacks.OnDisconnect != nil {
			c.callbacks.OnDisconnect()
		}
		if retry && !exhausted {
			c.logger.Infof(c.ctx, "websocket reconnecting in %s (attempt %d/%d)",
				c.cfg.ReconnectDelay, attempt, c.cfg.MaxReconnectAttempts)
		}
		if exhausted {
			c.logger.Error(c.ctx, "websocket max reconnect attempts reached")
			if c.callbacks.OnError != nil {
				c.callbacks.OnError(ErrReconnectExhausted)
			}
		}

	case eventError:
		c.mu.Unlock()
		if c.callbacks.OnError != nil {
			c.callbacks.OnError(ev.err)
		}
	}

	return true
}

func (c *Client) scheduleReconnectLocked() {
	c.stopReconnectTimerLocked()
	c.reconnectTimer = time.AfterFunc(c.cfg.ReconnectDelay, c.reconnect)
}

func (c *Client) stopReconnectTimerLocked() {
	if c.reconnectTimer != nil {
		c.reconnectTimer.Stop()
		c.reconnectTimer = nil
	}
}

// reconnect is the timer callback. Unlike Connect it preserves the attempt
// counter and re-checks that the user has not disconnected meanwhile.
func (c *Client) reconnect() {
	c.mu.Lock()
	if c.manualClose || c.state != StateDisconnected {
		c.mu.Unlock()
		return
	}
	if c.cfg.Token == "" {
		c.mu.Unlock()
		c.logger.Error(c.ctx, "websocket reconnect skipped: no auth token")
		return
	}
	target, err := c.buildURLLocked()
	if err != nil {
		c.state = StateDisconnected
		c.mu.Unlock()
		c.logger.Errorf(c.ctx, "websocket endpoint invalid: %v", err)
		return
	}
	c.state = StateConnecting
	c.gen++
	gen := c.gen
	c.mu.Unlock()

	go c.establish(gen, target)
}
