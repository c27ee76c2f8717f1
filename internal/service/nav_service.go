package service

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ndewijer/mutualfund-tracker/internal/apperrors"
	"github.com/ndewijer/mutualfund-tracker/internal/model"
	"github.com/ndewijer/mutualfund-tracker/internal/quote"
	"github.com/ndewijer/mutualfund-tracker/internal/repository"
	"github.com/ndewijer/mutualfund-tracker/internal/valuation"
)

// NavUpdateResult summarises one snapshot refresh.
type NavUpdateResult struct {
	Source    string              `json:"source"`
	Snapshots []model.NavSnapshot `json:"snapshots"`
}

// NavService stores NAV snapshots fetched from a live source.
type NavService struct {
	db       *sql.DB
	fundRepo *repository.FundRepository
	navRepo  *repository.NavRepository
	sources  SourceFactory
	logger   zerolog.Logger
}

// NewNavService creates a new NavService with the provided dependencies.
func NewNavService(
	db *sql.DB,
	fundRepo *repository.FundRepository,
	navRepo *repository.NavRepository,
	sources SourceFactory,
	logger zerolog.Logger,
) *NavService {
	return &NavService{
		db:       db,
		fundRepo: fundRepo,
		navRepo:  navRepo,
		sources:  sources,
		logger:   logger,
	}
}

// UpdateSnapshots fetches the latest NAV of every fund as of asOf and stores
// one snapshot per fund dated with the quote's own date, replacing any
// snapshot already held for that fund and date.
//
// sourceName selects the source; empty uses the configured one. The stored
// snapshots themselves cannot be a source for this operation.
//
// All snapshots are written in one transaction; a missing quote for any fund
// stores nothing.
func (s *NavService) UpdateSnapshots(ctx context.Context, sourceName string, asOf time.Time) (*NavUpdateResult, error) {
	source, err := s.sources.New(sourceName)
	if err != nil {
		return nil, err
	}
	if source.Name() == quote.SourceSnapshot {
		return nil, fmt.Errorf("%w: source %q", apperrors.ErrSnapshotSourceNotRefreshable, source.Name())
	}

	funds, err := s.fundRepo.GetFunds(ctx)
	if err != nil {
		return nil, err
	}
	result := &NavUpdateResult{Source: source.Name(), Snapshots: []model.NavSnapshot{}}
	if len(funds) == 0 {
		return result, nil
	}

	quotes, err := source.Quotes(ctx, funds, asOf)
	if err != nil {
		return nil, fmt.Errorf("%s quotes: %w", source.Name(), err)
	}
	for _, f := range funds {
		if _, ok := quotes[f.ID]; !ok {
			return nil, &valuation.MissingQuoteError{FundID: f.ID, FundName: f.Name}
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	navRepo := s.navRepo.WithTx(tx)
	for _, f := range funds {
		q := quotes[f.ID]
		snap := model.NavSnapshot{
			FundID: f.ID,
			Date:   q.Date,
			NAV:    q.NAV,
			Source: q.Source,
		}
		if err := navRepo.UpsertSnapshot(ctx, &snap); err != nil {
			return nil, err
		}
		s.logger.Info().
			Str("fund", f.Name).
			Str("nav_date", q.Date.Format("2006-01-02")).
			Float64("nav", q.NAV).
			Msg("setting NAV")
		result.Snapshots = append(result.Snapshots, snap)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return result, nil
}

// GetSnapshotDates lists the dates that have stored snapshots, newest first.
func (s *NavService) GetSnapshotDates(ctx context.Context) ([]model.NavSnapshotDate, error) {
	return s.navRepo.GetSnapshotDates(ctx)
}
