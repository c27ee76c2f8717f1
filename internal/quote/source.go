package quote

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/ndewijer/mutualfund-tracker/internal/apperrors"
	"github.com/ndewijer/mutualfund-tracker/internal/config"
	"github.com/ndewijer/mutualfund-tracker/internal/yahoo"
)

// Factory builds sources by name from one configuration.
type Factory struct {
	cfg    config.QuoteConfig
	store  SnapshotStore
	client *http.Client
	logger zerolog.Logger
}

// NewFactory creates a Factory. store backs the snapshot source.
func NewFactory(cfg config.QuoteConfig, store SnapshotStore, logger zerolog.Logger) *Factory {
	return &Factory{
		cfg:    cfg,
		store:  store,
		client: &http.Client{Timeout: cfg.HTTPTimeout},
		logger: logger,
	}
}

// Default returns the source named by the configuration.
func (f *Factory) Default() (Source, error) {
	return f.New(f.cfg.Source)
}

// New returns the source with the given name; empty selects the default.
func (f *Factory) New(name string) (Source, error) {
	if name == "" {
		name = f.cfg.Source
	}
	switch name {
	case SourceAMFI:
		return NewAMFISource(f.client, f.cfg.AMFIURL, f.cfg.AMFIWindowDays, f.cfg.MaxConcurrent, f.logger), nil
	case SourceMoneycontrol:
		return NewMoneycontrolSource(f.client, f.cfg.MaxConcurrent, f.logger), nil
	case SourceYahoo:
		client := yahoo.NewFinanceClient(f.cfg.YahooURL, f.client)
		return NewYahooSource(client, f.cfg.MaxConcurrent, f.logger), nil
	case SourceSnapshot:
		return NewSnapshotSource(f.store), nil
	default:
		return nil, fmt.Errorf("%w: %q", apperrors.ErrUnknownQuoteSource, name)
	}
}
