package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"recipe-admin-backend/pkg/container"
)

const (
	poolMonitorInterval = time.Minute
	shutdownTimeout     = 15 * time.Second
)

// Serve dựng container, chạy HTTP server và chặn tới khi nhận SIGINT/SIGTERM
func Serve() error {
	appContainer, err := container.NewContainer()
	if err != nil {
		return fmt.Errorf("init container: %w", err)
	}
	defer appContainer.Cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go appContainer.DB.MonitorPoolHealth(ctx, poolMonitorInterval)

	port := appContainer.Config.App.Port
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           SetupRouter(appContainer),
		ReadHeaderTimeout: 10 * time.Second,
		// upload ảnh recipe tối đa 5MB
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Printf("🚀 %s %s listening on :%s (env=%s)",
			appContainer.Config.App.Name, appContainer.Config.App.Version, port, appContainer.Config.App.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("🛑 Shutting down API server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}
	log.Println("✅ API server stopped")
	return nil
}
