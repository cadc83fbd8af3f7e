package queue

import (
	"encoding/json"
	"time"

	"recipe-admin-backend/internal/config"
	"recipe-admin-backend/internal/shared"
	"recipe-admin-backend/pkg/logger"

	"github.com/hibiken/asynq"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
	workerCfg config.WorkerConfig
}

func NewScheduler(redisOpt asynq.RedisClientOpt, workerCfg config.WorkerConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		redisOpt,
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
		workerCfg: workerCfg,
	}
}

func (s *Scheduler) RegisterJobs() error {
	if err := s.registerCompletenessAuditJob(); err != nil {
		return err
	}
	return nil
}

// ================================================
// JOB: Recipe completeness audit (mặc định mỗi giờ)
// ================================================
func (s *Scheduler) registerCompletenessAuditJob() error {
	payload, err := json.Marshal(shared.CompletenessAuditPayload{Limit: s.workerCfg.AuditLimit})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeRecipeCompletenessJob, payload)

	entryID, err := s.scheduler.Register(
		s.workerCfg.AuditCron,
		task,
		asynq.Queue(shared.QueueLow),
		asynq.MaxRetry(1),
		asynq.Timeout(5*time.Minute),
		// Không chạy chồng nếu lần trước chưa xong
		asynq.Unique(30*time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register CompletenessAudit job", err)
		return err
	}

	logger.Info("Registered CompletenessAudit job", map[string]interface{}{
		"entry_id": entryID,
		"cron":     s.workerCfg.AuditCron,
		"limit":    s.workerCfg.AuditLimit,
	})
	return nil
}

// Start không block, signal do cmd/worker xử lý
func (s *Scheduler) Start() error {
	return s.scheduler.Start()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
