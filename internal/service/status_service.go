package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ndewijer/mutualfund-tracker/internal/model"
	"github.com/ndewijer/mutualfund-tracker/internal/quote"
	"github.com/ndewijer/mutualfund-tracker/internal/repository"
	"github.com/ndewijer/mutualfund-tracker/internal/valuation"
)

// SourceFactory returns the quote source with a given name; empty selects
// the configured default.
type SourceFactory interface {
	New(name string) (quote.Source, error)
}

// StatusRequest describes one status report.
type StatusRequest struct {
	Filter model.LotFilter
	Sort   valuation.SortKey
	// Source overrides the configured quote source when non-empty.
	Source string
}

// StatusReport is a valued portfolio as of one date.
type StatusReport struct {
	AsOf      time.Time                  `json:"asOf"`
	Source    string                     `json:"source"`
	Positions []valuation.Position       `json:"positions"`
	Total     valuation.Total            `json:"total"`
	Quotes    map[string]model.FundQuote `json:"quotes"`
}

// StatusService values the portfolio against live or stored NAVs.
type StatusService struct {
	purchaseRepo *repository.PurchaseRepository
	fundRepo     *repository.FundRepository
	sources      SourceFactory
	logger       zerolog.Logger
}

// NewStatusService creates a new StatusService with the provided dependencies.
func NewStatusService(
	purchaseRepo *repository.PurchaseRepository,
	fundRepo *repository.FundRepository,
	sources SourceFactory,
	logger zerolog.Logger,
) *StatusService {
	return &StatusService{
		purchaseRepo: purchaseRepo,
		fundRepo:     fundRepo,
		sources:      sources,
		logger:       logger,
	}
}

// GetStatus computes the status report for req.
//
// Pipeline:
//  1. Resolve fund ID prefixes in the filter and load the matching lots
//  2. Look up one quote per fund held, concurrently, from the chosen source
//  3. Value each fund and sort the positions
//  4. Aggregate the portfolio total
//
// A report over no lots (or a zero invested amount) is not an error: the
// total carries not applicable rates. Any missing quote aborts the report.
func (s *StatusService) GetStatus(ctx context.Context, req StatusRequest) (*StatusReport, error) {
	filter, err := resolveLotFilter(ctx, s.fundRepo, req.Filter)
	if err != nil {
		return nil, err
	}
	if filter.AsOf.IsZero() {
		filter.AsOf = time.Now().UTC()
	}

	lots, err := s.purchaseRepo.GetLots(ctx, filter)
	if err != nil {
		return nil, err
	}

	source, err := s.sources.New(req.Source)
	if err != nil {
		return nil, err
	}

	quotes, err := s.quotesFor(ctx, source, lots, filter.AsOf)
	if err != nil {
		return nil, err
	}

	positions, err := valuation.ComputePositions(lots, quotes, filter.AsOf)
	if err != nil {
		return nil, err
	}
	valuation.SortPositions(positions, req.Sort)

	total, err := valuation.ComputeTotal(positions)
	if err != nil && !errors.Is(err, valuation.ErrNothingInvested) {
		return nil, err
	}

	return &StatusReport{
		AsOf:      filter.AsOf,
		Source:    source.Name(),
		Positions: positions,
		Total:     total,
		Quotes:    quotes,
	}, nil
}

// GetDistribution reports the amount invested per fund type for the lots
// matching filter.
func (s *StatusService) GetDistribution(ctx context.Context, filter model.LotFilter) ([]valuation.TypeShare, error) {
	resolved, err := resolveLotFilter(ctx, s.fundRepo, filter)
	if err != nil {
		return nil, err
	}
	lots, err := s.purchaseRepo.GetLots(ctx, resolved)
	if err != nil {
		return nil, err
	}
	return valuation.ComputeDistribution(lots)
}

func (s *StatusService) quotesFor(ctx context.Context, source quote.Source, lots []model.PurchaseLot, asOf time.Time) (map[string]model.FundQuote, error) {
	ids := fundIDsOf(lots)
	if len(ids) == 0 {
		return map[string]model.FundQuote{}, nil
	}

	funds, err := s.fundRepo.GetFunds(ctx, ids...)
	if err != nil {
		return nil, err
	}

	quotes, err := source.Quotes(ctx, funds, asOf)
	if err != nil {
		return nil, fmt.Errorf("%s quotes: %w", source.Name(), err)
	}

	for _, f := range funds {
		if q, ok := quotes[f.ID]; ok {
			s.logger.Info().
				Str("fund", f.Name).
				Str("nav_date", q.Date.Format("2006-01-02")).
				Float64("nav", q.NAV).
				Msg("using NAV")
		}
	}
	return quotes, nil
}
