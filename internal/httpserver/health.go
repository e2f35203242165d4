package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"studio-notify/pkg/response"
)

// healthCheck reports overall service health including hub statistics.
func (srv *HTTPServer) healthCheck(c *gin.Context) {
	ctx := c.Request.Context()

	if err := srv.redis.Ping(ctx).Err(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"redis":  "disconnected",
		})
		return
	}

	stats := srv.hub.GetStats()
	subActive, lastMessageAt, channel := srv.subscriber.HealthInfo()

	response.OK(c, gin.H{
		"status":             "healthy",
		"service":            "studio-notify",
		"redis":              "connected",
		"active_connections": stats.ActiveConnections,
		"unique_users":       stats.UniqueUsers,
		"subscriber": gin.H{
			"active":          subActive,
			"channel":         channel,
			"last_message_at": lastMessageAt,
		},
	})
}

// readyCheck reports whether the service can accept traffic.
func (srv *HTTPServer) readyCheck(c *gin.Context) {
	ctx := c.Request.Context()

	if err := srv.redis.Ping(ctx).Err(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"redis":  "disconnected",
		})
		return
	}

	response.OK(c, gin.H{
		"status":  "ready",
		"service": "studio-notify",
		"redis":   "connected",
	})
}

// liveCheck reports process liveness only.
func (srv *HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":  "alive",
		"service": "studio-notify",
	})
}
