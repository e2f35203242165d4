package httpserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	"studio-notify/config"
	internalRedis "studio-notify/internal/redis"
	"studio-notify/internal/wsserver"
	"studio-notify/pkg/jwt"
	"studio-notify/pkg/log"
	pkgRedis "studio-notify/pkg/redis"
)

// HTTPServer wires the notification service: the WebSocket hub and handler,
// the Redis subscriber that feeds it, and the HTTP API around them.
// New() only wires dependencies; Run() (in httpserver.go) starts the
// background services and serves.
type HTTPServer struct {
	gin    *gin.Engine
	logger log.Logger
	port   int
	mode   string

	hub        *wsserver.Hub
	wsHandler  *wsserver.Handler
	subscriber *internalRedis.Subscriber
	wsConfig   config.WebSocketConfig

	jwtMgr *jwt.Manager

	redis         *pkgRedis.Client
	notifyChannel string
}

// Config is the constructor input for HTTPServer.
type Config struct {
	Port int
	Mode string

	WSConfig config.WebSocketConfig

	JWTManager *jwt.Manager

	Redis         *pkgRedis.Client
	NotifyChannel string
}

// New creates a new HTTPServer instance with the provided configuration.
// It does not start any goroutines; use Run.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		gin:           gin.New(),
		logger:        logger,
		port:          cfg.Port,
		mode:          cfg.Mode,
		wsConfig:      cfg.WSConfig,
		jwtMgr:        cfg.JWTManager,
		redis:         cfg.Redis,
		notifyChannel: cfg.NotifyChannel,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv *HTTPServer) validate() error {
	if srv.logger == nil {
		return errors.New("logger is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.jwtMgr == nil {
		return errors.New("JWT manager is required")
	}
	if srv.redis == nil {
		return errors.New("redis client is required")
	}
	if srv.notifyChannel == "" {
		return errors.New("notify channel is required")
	}

	return nil
}
