package job

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// ErrDuplicateJob is returned when a periodic job name is registered twice.
var ErrDuplicateJob = errors.New("periodic job already registered")

// PeriodicFunc is the body of a periodic job.
type PeriodicFunc func(ctx context.Context) error

type periodicJob struct {
	name     string
	interval time.Duration
	fn       PeriodicFunc
}

// Scheduler triggers named jobs on fixed intervals. A run that is still in
// progress when its next tick arrives delays that tick rather than
// overlapping with it. A failed run is logged and retried on the next tick.
type Scheduler struct {
	mu      sync.Mutex
	jobs    []periodicJob
	timeout time.Duration
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	logger  *slog.Logger
}

// NewScheduler creates a scheduler. timeout bounds each run; zero means no limit.
func NewScheduler(timeout time.Duration, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		timeout: timeout,
		logger:  logger.With("component", "scheduler"),
	}
}

// Register adds a named job. It must be called before Start.
func (s *Scheduler) Register(name string, interval time.Duration, fn PeriodicFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if interval <= 0 {
		return errors.New("periodic job interval must be positive")
	}
	for _, j := range s.jobs {
		if j.name == name {
			return ErrDuplicateJob
		}
	}
	s.jobs = append(s.jobs, periodicJob{name: name, interval: interval, fn: fn})
	s.logger.Debug("registered periodic job", "job", name, "interval", interval.String())
	return nil
}

// Start runs every registered job on its own ticker until Stop is called or
// ctx is cancelled. Calling Start twice has no effect.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		return
	}
	ctx, s.cancel = context.WithCancel(ctx)

	for _, j := range s.jobs {
		s.wg.Add(1)
		go s.loop(ctx, j)
	}
	s.logger.Info("scheduler started", "job_count", len(s.jobs))
}

// Stop cancels the scheduler and waits for running jobs to return.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	s.wg.Wait()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) loop(ctx context.Context, j periodicJob) {
	defer s.wg.Done()

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.run(ctx, j)
		}
	}
}

func (s *Scheduler) run(ctx context.Context, j periodicJob) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	log := s.logger.With("job", j.name)
	started := time.Now()
	if err := j.fn(ctx); err != nil {
		log.Error("periodic job failed", "error", err)
		return
	}
	log.Debug("periodic job finished", "duration_ms", time.Since(started).Milliseconds())
}

// RunNow runs the named job once in the caller's goroutine.
func (s *Scheduler) RunNow(ctx context.Context, name string) error {
	s.mu.Lock()
	var found *periodicJob
	for i := range s.jobs {
		if s.jobs[i].name == name {
			found = &s.jobs[i]
			break
		}
	}
	s.mu.Unlock()

	if found == nil {
		return errors.New("unknown periodic job " + name)
	}
	return found.fn(ctx)
}
