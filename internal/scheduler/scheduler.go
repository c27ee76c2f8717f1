// Package scheduler runs background jobs for `mf serve`.
package scheduler

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Job represents a scheduled job
type Job interface {
	Run(ctx context.Context) error
	Name() string
}

// Scheduler manages background jobs
type Scheduler struct {
	cron *cron.Cron
	ctx  context.Context
	log  zerolog.Logger
}

// New creates a new scheduler. Schedules use the standard five-field cron
// syntax. Jobs receive ctx and should stop when it is cancelled.
func New(ctx context.Context, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron: cron.New(),
		ctx:  ctx,
		log:  log.With().Str("component", "scheduler").Logger(),
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() {
	s.cron.Start()
	s.log.Info().Msg("scheduler started")
}

// Stop stops the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info().Msg("scheduler stopped")
}

// AddJob registers a job with a cron schedule.
// Schedule examples:
//   - "0 20 * * 1-5"   - 8 PM weekdays
//   - "@daily"         - midnight
//   - "@every 1h"      - every hour
func (s *Scheduler) AddJob(schedule string, job Job) error {
	_, err := s.cron.AddFunc(schedule, func() {
		if err := s.RunNow(job); err != nil {
			s.log.Error().Err(err).Str("job", job.Name()).Msg("job failed")
		}
	})
	if err != nil {
		return fmt.Errorf("invalid schedule %q for %s: %w", schedule, job.Name(), err)
	}

	s.log.Info().
		Str("schedule", schedule).
		Str("job", job.Name()).
		Msg("job registered")

	return nil
}

// Entries returns the number of registered jobs.
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}

// RunNow executes a job immediately (outside schedule)
func (s *Scheduler) RunNow(job Job) error {
	s.log.Debug().Str("job", job.Name()).Msg("running job")
	if err := job.Run(s.ctx); err != nil {
		return err
	}
	s.log.Debug().Str("job", job.Name()).Msg("job completed")
	return nil
}
