// Package workflow runs the bounded worker pool that drains the job queue.
// Each worker claims the oldest queued job, drives it through the pipeline,
// and polls again; the pool size bounds how many jobs dub concurrently.
package workflow

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"revoice/internal/config"
	"revoice/internal/logging"
	"revoice/internal/queue"
)

// JobRunner executes one claimed job to completion or failure.
type JobRunner interface {
	Run(ctx context.Context, job *queue.Job) error
}

// Manager coordinates queue processing across a fixed pool of workers.
type Manager struct {
	store         *queue.Store
	runner        JobRunner
	logger        *slog.Logger
	workers       int
	pollInterval  time.Duration
	retryInterval time.Duration

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewManager constructs a workflow manager from configuration.
func NewManager(cfg *config.Config, store *queue.Store, runner JobRunner, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = logging.NewNop()
	}
	workers := cfg.Workflow.Workers
	if workers <= 0 {
		workers = 1
	}
	return &Manager{
		store:         store,
		runner:        runner,
		logger:        logging.NewComponentLogger(logger, "workflow"),
		workers:       workers,
		pollInterval:  time.Duration(cfg.Workflow.QueuePollInterval) * time.Second,
		retryInterval: time.Duration(cfg.Workflow.ErrorRetryInterval) * time.Second,
	}
}

// Start launches the worker pool.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running {
		return errors.New("workflow already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel
	m.running = true

	m.wg.Add(m.workers)
	for i := 0; i < m.workers; i++ {
		go m.runWorker(runCtx, i)
	}
	m.logger.Info("workflow started", logging.Int("workers", m.workers))
	return nil
}

// Stop terminates background processing and waits for in-flight jobs to
// wind down.
func (m *Manager) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return
	}
	cancel := m.cancel
	m.running = false
	m.cancel = nil
	m.mu.Unlock()

	cancel()
	m.wg.Wait()
	m.logger.Info("workflow stopped")
}

func (m *Manager) runWorker(ctx context.Context, id int) {
	defer m.wg.Done()
	logger := m.logger.With(logging.Int("worker", id))

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		job, err := m.store.ClaimNext(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Error("claim next job failed", logging.Error(err))
			m.sleep(ctx, m.retryInterval)
			continue
		}
		if job == nil {
			m.sleep(ctx, m.pollInterval)
			continue
		}

		logger.Info("job claimed",
			logging.String(logging.FieldJobID, job.ID),
			logging.String("target_language", job.TargetLanguage))

		if err := m.runner.Run(ctx, job); err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				m.failStoppedJob(job, logger)
				return
			}
			// The runner already recorded the failure; nothing left to do
			// beyond moving on to the next job.
			continue
		}
	}
}

// failStoppedJob marks a job that was interrupted by shutdown so it does not
// linger in the processing state.
func (m *Manager) failStoppedJob(job *queue.Job, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	job.SetFailed(queue.DaemonStopReason)
	if err := m.store.Update(ctx, job); err != nil {
		logger.Error("record stopped job failed",
			logging.String(logging.FieldJobID, job.ID),
			logging.Error(err))
		return
	}
	logger.Info("job failed due to shutdown", logging.String(logging.FieldJobID, job.ID))
}

func (m *Manager) sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		d = time.Second
	}
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
