package testutil

import (
	"context"
	"time"

	"github.com/ndewijer/mutualfund-tracker/internal/model"
	"github.com/ndewijer/mutualfund-tracker/internal/quote"
)

// StubSource is a quote.Source returning fixed NAVs.
//
// Example usage:
//
//	src := testutil.NewStubSource("amfi").WithNAV(fund.ID, 12.5, testutil.Date(2024, 3, 1))
//	svc := testutil.NewTestStatusService(t, db, &testutil.StubSources{Source: src})
type StubSource struct {
	SourceName string
	NAVs       map[string]model.FundQuote
	Err        error
	// Calls counts Quotes invocations
	Calls int
}

// NewStubSource creates an empty StubSource reporting name.
func NewStubSource(name string) *StubSource {
	return &StubSource{SourceName: name, NAVs: map[string]model.FundQuote{}}
}

// WithNAV sets the quote returned for fundID.
func (s *StubSource) WithNAV(fundID string, nav float64, date time.Time) *StubSource {
	s.NAVs[fundID] = model.FundQuote{FundID: fundID, NAV: nav, Date: date, Source: s.SourceName}
	return s
}

// WithError makes every lookup fail with err.
func (s *StubSource) WithError(err error) *StubSource {
	s.Err = err
	return s
}

func (s *StubSource) Name() string { return s.SourceName }

// Quotes returns the configured NAVs of the requested funds.
func (s *StubSource) Quotes(_ context.Context, funds []model.Fund, _ time.Time) (map[string]model.FundQuote, error) {
	s.Calls++
	if s.Err != nil {
		return nil, s.Err
	}
	out := make(map[string]model.FundQuote, len(funds))
	for _, f := range funds {
		if q, ok := s.NAVs[f.ID]; ok {
			out[f.ID] = q
		}
	}
	return out, nil
}

// StubSources resolves every source name to Source. Requested names are
// recorded in Requested.
type StubSources struct {
	Source    quote.Source
	Requested []string
}

func (f *StubSources) New(name string) (quote.Source, error) {
	f.Requested = append(f.Requested, name)
	return f.Source, nil
}
