package wsserver

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"studio-notify/internal/event"
	"studio-notify/pkg/jwt"
	"studio-notify/pkg/log"
	"studio-notify/pkg/response"
)

// TokenVerifier resolves a bearer token to an authenticated principal.
type TokenVerifier interface {
	ExtractPrincipal(token string) (*jwt.Principal, error)
}

// Handler upgrades dashboard requests to WebSocket connections.
type Handler struct {
	hub      *Hub
	verifier TokenVerifier
	logger   log.Logger
	cfg      WSConfig
	upgrader websocket.Upgrader
}

// NewHandler creates a new WebSocket handler.
func NewHandler(hub *Hub, verifier TokenVerifier, logger log.Logger, cfg WSConfig) *Handler {
	return &Handler{
		hub:      hub,
		verifier: verifier,
		logger:   logger,
		cfg:      cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  cfg.ReadBufferSize,
			WriteBufferSize: cfg.WriteBufferSize,
			// The token in the query string authenticates the client;
			// dashboards are served from multiple hosts.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// HandleWebSocket handles WebSocket connection requests on GET /ws.
// Authentication is a JWT carried in the token query parameter.
func (h *Handler) HandleWebSocket(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		h.logger.Warn(context.Background(), "connection rejected: missing token")
		response.Unauthorized(c)
		return
	}

	principal, err := h.verifier.ExtractPrincipal(token)
	if err != nil {
		h.logger.Warnf(context.Background(), "connection rejected: invalid token: %v", err)
		response.Unauthorized(c)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Errorf(context.Background(), "upgrade failed: %v", err)
		return
	}

	connection := NewConnection(h.hub, conn, principal.UserID, principal.Roles, h.cfg, h.logger)

	// Handshake acknowledgement; clients log it but never surface it. It is
	// queued before registration: once the read pump runs, an instant client
	// drop makes the hub close the send channel, and a later write would
	// panic.
	ack, err := event.NewInbound(event.TypeConnected, event.ConnectedData{
		Message: "connected to notification stream",
		UserID:  principal.UserID,
	})
	if err == nil {
		if data, err := ack.Encode(); err == nil {
			connection.send <- data
		}
	}

	h.hub.register <- connection
	connection.Start()

	h.logger.Infof(context.Background(), "connection established for user %d", principal.UserID)
}

// SetupRoutes registers the WebSocket route.
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.GET("/ws", h.HandleWebSocket)
}
