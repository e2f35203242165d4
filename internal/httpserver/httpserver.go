package httpserver

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// Run starts the HTTP server and all background services, then blocks
// until a shutdown signal:
//  1. Map HTTP handlers and routes
//  2. Start the hub and the Redis subscriber
//  3. Start the HTTP server
//  4. Wait for shutdown signal, then drain
func (srv *HTTPServer) Run() error {
	ctx := context.Background()

	if err := srv.mapHandlers(); err != nil {
		srv.logger.Errorf(ctx, "failed to map handlers: %v", err)
		return err
	}

	go srv.hub.Run()
	srv.logger.Info(ctx, "notification hub started")

	if err := srv.subscriber.Start(); err != nil {
		srv.logger.Errorf(ctx, "failed to start redis subscriber: %v", err)
		return err
	}

	go func() {
		if err := srv.gin.Run(fmt.Sprintf(":%d", srv.port)); err != nil {
			srv.logger.Errorf(ctx, "http server error: %v", err)
		}
	}()

	srv.logger.Infof(ctx, "http server started on port %d", srv.port)

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	sig := <-ch
	srv.logger.Infof(ctx, "received %s, stopping notification service", sig)

	if err := srv.subscriber.Shutdown(ctx); err != nil {
		srv.logger.Errorf(ctx, "redis subscriber shutdown error: %v", err)
	}
	if err := srv.hub.Shutdown(ctx); err != nil {
		srv.logger.Errorf(ctx, "hub shutdown error: %v", err)
	}

	return nil
}
