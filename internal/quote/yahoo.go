package quote

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ndewijer/mutualfund-tracker/internal/apperrors"
	"github.com/ndewijer/mutualfund-tracker/internal/fetch"
	"github.com/ndewijer/mutualfund-tracker/internal/model"
	"github.com/ndewijer/mutualfund-tracker/internal/yahoo"
)

// yahooLookback is how far before the as-of date closes are requested, so
// weekends and market holidays still yield a NAV.
const yahooLookback = 10

// YahooSource reads daily closes from the Yahoo Finance chart API using each
// fund's Symbol.
type YahooSource struct {
	client yahoo.Client
	limit  int
	logger zerolog.Logger
}

// NewYahooSource creates a Yahoo Finance source.
func NewYahooSource(client yahoo.Client, limit int, logger zerolog.Logger) *YahooSource {
	return &YahooSource{
		client: client,
		limit:  limit,
		logger: logger.With().Str("source", SourceYahoo).Logger(),
	}
}

func (s *YahooSource) Name() string { return SourceYahoo }

func (s *YahooSource) Quotes(ctx context.Context, funds []model.Fund, asOf time.Time) (map[string]model.FundQuote, error) {
	day := civilDate(asOf)
	start := day.AddDate(0, 0, -yahooLookback)
	end := day.AddDate(0, 0, 1)

	byID := make(map[string]model.Fund, len(funds))
	ids := make([]string, 0, len(funds))
	for _, f := range funds {
		if f.Symbol == "" {
			return nil, fmt.Errorf("%s: %w", f.Name, ErrNoSymbol)
		}
		byID[f.ID] = f
		ids = append(ids, f.ID)
	}

	return fetch.All(ctx, ids, s.limit, func(ctx context.Context, id string) (model.FundQuote, error) {
		f := byID[id]
		s.logger.Debug().Str("symbol", f.Symbol).Msg("fetching chart")
		resp, err := s.client.QuerySymbolByDateRange(ctx, f.Symbol, start, end)
		if err != nil {
			return model.FundQuote{}, fmt.Errorf("%s: %w", f.Name, err)
		}
		chart, err := yahoo.ParseChart(resp)
		if err != nil {
			return model.FundQuote{}, fmt.Errorf("%s: %w", f.Name, err)
		}
		ind, ok := chart.LatestOnOrBefore(day)
		if !ok {
			return model.FundQuote{}, fmt.Errorf("%s: %w", f.Name, apperrors.ErrNAVNotFound)
		}
		return model.FundQuote{
			FundID: f.ID,
			NAV:    ind.PriceClose,
			Date:   ind.Date,
			Source: SourceYahoo,
		}, nil
	})
}
