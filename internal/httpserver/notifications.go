package httpserver

import (
	"encoding/json"

	"github.com/gin-gonic/gin"

	"studio-notify/internal/event"
	"studio-notify/pkg/response"
)

// publishRequest is the body of POST /api/notifications.
type publishRequest struct {
	Type event.Type      `json:"type" binding:"required"`
	Data json.RawMessage `json:"data" binding:"required"`
}

// publishNotification accepts a notification event and publishes it to the
// Redis channel. Delivery goes through Redis rather than straight to the
// hub so every service instance fans it out to its own connections.
func (srv *HTTPServer) publishNotification(c *gin.Context) {
	ctx := c.Request.Context()

	var req publishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "type and data are required")
		return
	}

	frame, err := event.NewInbound(req.Type, req.Data)
	if err != nil {
		response.BadRequest(c, "invalid event payload")
		return
	}
	data, err := frame.Encode()
	if err != nil {
		response.BadRequest(c, "invalid event payload")
		return
	}

	if err := srv.redis.Publish(ctx, srv.notifyChannel, data).Err(); err != nil {
		srv.logger.Errorf(ctx, "failed to publish notification: %v", err)
		response.Internal(c)
		return
	}

	srv.logger.Infof(ctx, "published %s notification", req.Type)
	response.Created(c, gin.H{"type": req.Type})
}

// getStats returns current hub statistics.
func (srv *HTTPServer) getStats(c *gin.Context) {
	response.OK(c, srv.hub.GetStats())
}
