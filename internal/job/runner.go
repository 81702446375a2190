package job

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// RunnerConfig holds configuration for the runner
type RunnerConfig struct {
	// WorkerCount determines how many concurrent workers process jobs
	WorkerCount int

	// QueueSize determines the buffer size for the in-memory job queue
	QueueSize int

	// JobTimeout bounds a single job's execution. Zero means no limit.
	JobTimeout time.Duration
}

// DefaultRunnerConfig returns a RunnerConfig with reasonable defaults
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		WorkerCount: 4,
		QueueSize:   256,
		JobTimeout:  30 * time.Second,
	}
}

// Runner executes submitted jobs on a fixed pool of workers.
type Runner struct {
	queue      *Queue
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
	config     RunnerConfig
	logger     *slog.Logger
	errHandler func(job Job, err error)
	startOnce  sync.Once
	stopOnce   sync.Once
}

var _ Submitter = (*Runner)(nil)

// NewRunner creates a new Runner. Jobs may be submitted before Start.
func NewRunner(config RunnerConfig, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	if config.WorkerCount <= 0 {
		logger.Warn("invalid worker count specified, using default",
			"specified_count", config.WorkerCount,
			"default_count", 1)
		config.WorkerCount = 1
	}
	if config.QueueSize <= 0 {
		config.QueueSize = DefaultRunnerConfig().QueueSize
	}

	log := logger.With("component", "job_runner")
	ctx, cancel := context.WithCancel(context.Background())

	return &Runner{
		queue:      NewQueue(config.QueueSize, log),
		ctx:        ctx,
		cancelFunc: cancel,
		config:     config,
		logger:     log,
		errHandler: func(job Job, err error) {
			log.Error("job execution failed",
				"job_id", job.ID(),
				"job_type", job.Type(),
				"error", err)
		},
	}
}

// SetErrorHandler allows setting a custom error handler function.
// It must be called before Start.
func (r *Runner) SetErrorHandler(handler func(job Job, err error)) {
	r.errHandler = handler
}

// Submit adds a job to the queue without blocking.
func (r *Runner) Submit(_ context.Context, job Job) error {
	if r.ctx.Err() != nil {
		return ErrQueueClosed
	}
	if err := r.queue.Enqueue(job); err != nil {
		r.logger.Warn("rejected job",
			"job_id", job.ID(),
			"job_type", job.Type(),
			"error", err)
		return err
	}
	return nil
}

// Start launches the workers.
func (r *Runner) Start() {
	r.startOnce.Do(func() {
		for i := 0; i < r.config.WorkerCount; i++ {
			r.wg.Add(1)
			go r.worker(i)
		}
		r.logger.Info("job runner started", "worker_count", r.config.WorkerCount)
	})
}

// Stop stops accepting jobs and waits for the workers to drain what is
// already queued. Each queued job is still bounded by JobTimeout.
func (r *Runner) Stop() {
	r.stopOnce.Do(func() {
		r.queue.Close()
		r.wg.Wait()
		r.cancelFunc()
		r.logger.Info("job runner stopped")
	})
}

// worker processes jobs from the queue
func (r *Runner) worker(id int) {
	defer r.wg.Done()

	r.logger.Debug("starting worker", "worker_id", id)
	for job := range r.queue.Channel() {
		r.process(job, id)
	}
	r.logger.Debug("job channel closed, stopping worker", "worker_id", id)
}

// process handles execution of a single job
func (r *Runner) process(job Job, workerID int) {
	logger := r.logger.With(
		"job_id", job.ID(),
		"job_type", job.Type(),
		"worker_id", workerID,
	)

	ctx := r.ctx
	if r.config.JobTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.config.JobTimeout)
		defer cancel()
	}

	started := time.Now()
	err := r.execute(ctx, job)
	if err != nil {
		r.errHandler(job, err)
		return
	}
	logger.Debug("job completed", "duration_ms", time.Since(started).Milliseconds())
}

func (r *Runner) execute(ctx context.Context, job Job) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("job panicked: %v", p)
		}
	}()
	return job.Execute(ctx)
}
