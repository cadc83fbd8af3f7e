package main

import (
	"log"

	"recipe-admin-backend/internal/infrastructure/queue"
	"recipe-admin-backend/pkg/container"
)

// setupScheduler đăng ký cron jobs rồi start scheduler
func setupScheduler(c *container.Container, cfg *Config) *queue.Scheduler {
	scheduler := queue.NewScheduler(c.RedisOpt(), cfg.Worker)

	if err := scheduler.RegisterJobs(); err != nil {
		log.Fatalf("[Scheduler] Failed to register: %v", err)
	}

	if err := scheduler.Start(); err != nil {
		log.Fatalf("[Scheduler] Failed to start: %v", err)
	}
	log.Printf("[Scheduler] Started (audit cron %q)", cfg.Worker.AuditCron)

	return scheduler
}
