package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"recipe-admin-backend/pkg/container"
	"recipe-admin-backend/pkg/logger"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("[Worker] No .env file found, using system environment variables")
	}

	c, err := container.NewContainer()
	if err != nil {
		log.Fatalf("[Container] Failed to initialize: %v", err)
	}
	defer c.Cleanup()

	logger.Init(c.Config.App.Environment)
	cfg := loadConfig(c.Config)

	srv := setupAsynqServer(c, cfg, initializeHandlers(c, cfg))
	scheduler := setupScheduler(c, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	// scheduler dừng trước để không enqueue thêm audit trong lúc server drain
	log.Println("[Shutdown] Gracefully stopping...")
	scheduler.Shutdown()
	srv.Shutdown()
	log.Println("[Shutdown] ✓ Stopped")
}
