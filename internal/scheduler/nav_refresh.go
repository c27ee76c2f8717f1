package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/ndewijer/mutualfund-tracker/internal/service"
)

// NavUpdater stores NAV snapshots from a live source.
type NavUpdater interface {
	UpdateSnapshots(ctx context.Context, sourceName string, asOf time.Time) (*service.NavUpdateResult, error)
}

// NavRefreshJob stores today's NAV of every fund from the configured source.
type NavRefreshJob struct {
	updater NavUpdater
	timeout time.Duration
	now     func() time.Time
	log     zerolog.Logger
}

// NewNavRefreshJob creates the NAV refresh job. A zero timeout means the
// fetch is bounded only by the scheduler's context.
func NewNavRefreshJob(updater NavUpdater, timeout time.Duration, log zerolog.Logger) *NavRefreshJob {
	return &NavRefreshJob{
		updater: updater,
		timeout: timeout,
		now:     time.Now,
		log:     log,
	}
}

func (j *NavRefreshJob) Name() string { return "nav_refresh" }

// Run fetches and stores the snapshots.
func (j *NavRefreshJob) Run(ctx context.Context) error {
	if j.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.timeout)
		defer cancel()
	}

	result, err := j.updater.UpdateSnapshots(ctx, "", j.now().UTC())
	if err != nil {
		return err
	}

	j.log.Info().
		Str("source", result.Source).
		Int("snapshots", len(result.Snapshots)).
		Msg("nav snapshots refreshed")
	return nil
}
