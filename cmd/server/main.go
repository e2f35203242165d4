package main

import (
	"context"
	"fmt"

	"studio-notify/config"
	configRedis "studio-notify/config/redis"
	"studio-notify/internal/httpserver"
	"studio-notify/pkg/jwt"
	"studio-notify/pkg/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config:", err)
		return
	}

	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx := context.Background()
	logger.Info(ctx, "starting studio notification service")

	redisClient, err := configRedis.Connect(cfg.Redis)
	if err != nil {
		logger.Errorf(ctx, "failed to connect to redis: %v", err)
		return
	}
	defer configRedis.Disconnect()
	logger.Info(ctx, "redis client initialized")

	jwtMgr := jwt.NewManager(jwt.Config{
		SecretKey: cfg.JWT.SecretKey,
		Issuer:    cfg.JWT.Issuer,
		TTL:       cfg.JWT.TTL,
	})

	srv, err := httpserver.New(logger, httpserver.Config{
		Port:          cfg.Server.Port,
		Mode:          cfg.Server.Mode,
		WSConfig:      cfg.WebSocket,
		JWTManager:    jwtMgr,
		Redis:         redisClient,
		NotifyChannel: cfg.Notify.Channel,
	})
	if err != nil {
		logger.Errorf(ctx, "failed to create server: %v", err)
		return
	}

	if err := srv.Run(); err != nil {
		logger.Errorf(ctx, "server error: %v", err)
	}
}
