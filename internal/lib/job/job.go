// Package job provides background job processing using Asynq.
//
// Asynq is a Redis-backed job queue:
//   - Producers enqueue tasks using asynq.Client.
//   - A server runs workers that process those tasks using asynq.Server.
//   - A scheduler enqueues recurring tasks on a cron spec.
package job

import (
	"github.com/donorops/backend/internal/config"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// JobService holds the Asynq client (enqueue), server (worker
// execution), and scheduler (recurring tasks).
type JobService struct {
	// Client is used to enqueue tasks into Redis.
	Client *asynq.Client

	server    *asynq.Server
	scheduler *asynq.Scheduler
	logger    *zerolog.Logger
}

// NewJobService creates a JobService configured to use Redis from cfg.
//
// Queue weights distribute worker share by ratio, so receipt emails in
// "critical" win over the nightly sweep in "low" when both are queued.
func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Address}

	client := asynq.NewClient(redisOpt)

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
		},
	)

	scheduler := asynq.NewScheduler(redisOpt, nil)

	return &JobService{
		Client:    client,
		server:    server,
		scheduler: scheduler,
		logger:    logger,
	}
}

// Start registers task handlers and recurring tasks, then starts the
// worker server and scheduler. Both run in background goroutines, so
// Start returns once they are up.
func (j *JobService) Start() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskWelcome, j.handleWelcomeEmailTask)
	mux.HandleFunc(TaskReceipt, j.handleReceiptEmailTask)
	mux.HandleFunc(TaskOverdueSweep, j.handleOverdueSweepTask)

	// Mark overdue installments once a day, shortly after midnight UTC.
	if _, err := j.scheduler.Register("10 0 * * *", asynq.NewTask(TaskOverdueSweep, nil, asynq.Queue("low"))); err != nil {
		return err
	}

	j.logger.Info().Msg("starting background job server")

	if err := j.server.Start(mux); err != nil {
		return err
	}

	if err := j.scheduler.Start(); err != nil {
		return err
	}

	return nil
}

// Stop gracefully stops the scheduler and job server, waits for
// in-flight tasks, then closes the enqueue client.
func (j *JobService) Stop() {
	j.logger.Info().Msg("stopping background job server")
	j.scheduler.Shutdown()
	j.server.Shutdown()
	j.Client.Close()
}
