// Package scheduler runs periodic background jobs on gocron.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/ghuser/stockroom/pkg/logger"
)

// Scheduler wraps a gocron.Scheduler. Each job is a singleton: a run that is
// still going when the next tick fires causes that tick to be skipped.
type Scheduler struct {
	s   gocron.Scheduler
	log logger.Logger
}

// New returns a stopped Scheduler. gocron's own diagnostics go to log.
func New(log logger.Logger) (*Scheduler, error) {
	s, err := gocron.NewScheduler(gocron.WithLogger(log))
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}
	return &Scheduler{s: s, log: log}, nil
}

// Every schedules fn to run once immediately after Start and then every
// interval. Errors and panics from fn are logged; the job stays scheduled.
func (s *Scheduler) Every(ctx context.Context, name string, interval time.Duration, fn func(context.Context) error) error {
	if interval <= 0 {
		return fmt.Errorf("job %s: interval must be positive, got %s", name, interval)
	}
	_, err := s.s.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() { s.run(ctx, name, fn) }),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return fmt.Errorf("schedule job %s: %w", name, err)
	}
	s.log.Info("job scheduled", "job", name, "interval", interval.String())
	return nil
}

func (s *Scheduler) run(ctx context.Context, name string, fn func(context.Context) error) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			s.log.ErrorContext(ctx, "job panicked", "job", name, "panic", fmt.Sprint(r))
		}
	}()

	if err := fn(ctx); err != nil {
		s.log.ErrorContext(ctx, "job failed", "job", name, "error", err, "duration_ms", time.Since(start).Milliseconds())
		return
	}
	s.log.DebugContext(ctx, "job finished", "job", name, "duration_ms", time.Since(start).Milliseconds())
}

// Start begins running scheduled jobs. It does not block.
func (s *Scheduler) Start() {
	s.s.Start()
}

// Shutdown stops scheduling and waits for running jobs to return.
func (s *Scheduler) Shutdown() error {
	if err := s.s.Shutdown(); err != nil {
		return fmt.Errorf("shutdown scheduler: %w", err)
	}
	return nil
}
