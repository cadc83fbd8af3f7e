package main

import (
	"log"
	"time"

	"recipe-admin-backend/internal/config"
	"recipe-admin-backend/internal/shared"
)

// Config là phần cấu hình worker cần, lấy từ config chung của container
type Config struct {
	Concurrency     int
	AuditLimit      int
	ShutdownTimeout time.Duration
	Queues          map[string]int
	Worker          config.WorkerConfig
}

// queueWeights: ảnh recipe ưu tiên hơn audit định kỳ
var queueWeights = map[string]int{
	shared.QueueRecipe:  6,
	shared.QueueDefault: 3,
	shared.QueueLow:     1,
}

// loadConfig đọc worker config từ config đã load của container
func loadConfig(cfg *config.Config) *Config {
	wc := &Config{
		Concurrency:     cfg.Worker.Concurrency,
		AuditLimit:      cfg.Worker.AuditLimit,
		ShutdownTimeout: time.Duration(cfg.Worker.ShutdownTimeout) * time.Second,
		Queues:          queueWeights,
		Worker:          cfg.Worker,
	}
	if wc.ShutdownTimeout <= 0 {
		wc.ShutdownTimeout = 30 * time.Second
	}

	log.Printf("[Config] Redis: %s, concurrency: %d, audit cron: %q, shutdown timeout: %s",
		cfg.Redis.Host, wc.Concurrency, cfg.Worker.AuditCron, wc.ShutdownTimeout)

	return wc
}
