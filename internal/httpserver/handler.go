package httpserver

import (
	"studio-notify/internal/middleware"
	internalRedis "studio-notify/internal/redis"
	"studio-notify/internal/wsserver"
)

const Api = "/api"

func (srv *HTTPServer) mapHandlers() error {
	srv.gin.Use(middleware.Recovery(srv.logger))
	srv.gin.Use(middleware.CORS(middleware.DefaultCORSConfig()))

	// Health check endpoints (no auth required)
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)

	// WebSocket hub and handler
	srv.hub = wsserver.NewHub(srv.logger, srv.wsConfig.MaxConnections)
	srv.wsHandler = wsserver.NewHandler(srv.hub, srv.jwtMgr, srv.logger, wsserver.WSConfig{
		PongWait:        srv.wsConfig.PongWait,
		PingPeriod:      srv.wsConfig.PingInterval,
		WriteWait:       srv.wsConfig.WriteWait,
		MaxMessageSize:  srv.wsConfig.MaxMessageSize,
		ReadBufferSize:  srv.wsConfig.ReadBufferSize,
		WriteBufferSize: srv.wsConfig.WriteBufferSize,
	})
	srv.wsHandler.SetupRoutes(srv.gin)

	// Redis subscriber feeding the hub
	srv.subscriber = internalRedis.NewSubscriber(srv.redis, srv.hub, srv.notifyChannel, srv.logger)

	// Authenticated API
	mw := middleware.New(srv.logger, srv.jwtMgr)
	api := srv.gin.Group(Api)
	api.Use(mw.Auth())
	api.GET("/stats", mw.RequireRole("admin"), srv.getStats)
	api.POST("/notifications", mw.RequireRole("admin"), srv.publishNotification)

	return nil
}
