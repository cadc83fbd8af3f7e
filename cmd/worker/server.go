package main

import (
	"context"
	"log"

	"recipe-admin-backend/pkg/container"

	"github.com/hibiken/asynq"
	zlog "github.com/rs/zerolog/log"
)

type asynqServer struct {
	*asynq.Server
}

// setupAsynqServer tạo asynq server và start processors (không block)
func setupAsynqServer(c *container.Container, cfg *Config, handlers *HandlerRegistry) *asynqServer {
	mux := asynq.NewServeMux()
	handlers.RegisterHandlers(mux)

	srv := asynq.NewServer(c.RedisOpt(), asynq.Config{
		Queues:          cfg.Queues,
		Concurrency:     cfg.Concurrency,
		ShutdownTimeout: cfg.ShutdownTimeout,
		ErrorHandler:    asynq.ErrorHandlerFunc(reportTaskError),
	})

	if err := srv.Start(mux); err != nil {
		log.Fatalf("[Worker] Failed to start: %v", err)
	}
	log.Printf("[Worker] Started with queues %v", cfg.Queues)

	return &asynqServer{Server: srv}
}

// reportTaskError log lỗi kèm số lần retry, lần cuối thì log ở mức error
func reportTaskError(ctx context.Context, task *asynq.Task, err error) {
	retried, _ := asynq.GetRetryCount(ctx)
	maxRetry, _ := asynq.GetMaxRetry(ctx)
	taskID, _ := asynq.GetTaskID(ctx)

	event := zlog.Warn()
	if retried >= maxRetry {
		event = zlog.Error()
	}
	event.Err(err).
		Str("task_id", taskID).
		Str("task_type", task.Type()).
		Int("retried", retried).
		Int("max_retry", maxRetry).
		Msg("Task failed")
}

func (s *asynqServer) Shutdown() {
	log.Println("[Worker] Shutting down...")
	s.Server.Shutdown()
	log.Println("[Worker] ✓ Stopped")
}
