// Package cli implements the mf subcommands.
package cli

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/subcommands"
	"github.com/rs/zerolog"

	"github.com/ndewijer/mutualfund-tracker/internal/api"
	"github.com/ndewijer/mutualfund-tracker/internal/api/request"
	"github.com/ndewijer/mutualfund-tracker/internal/apperrors"
	"github.com/ndewijer/mutualfund-tracker/internal/config"
	"github.com/ndewijer/mutualfund-tracker/internal/database"
	"github.com/ndewijer/mutualfund-tracker/internal/model"
	"github.com/ndewijer/mutualfund-tracker/internal/quote"
	"github.com/ndewijer/mutualfund-tracker/internal/repository"
	"github.com/ndewijer/mutualfund-tracker/internal/service"
	"github.com/ndewijer/mutualfund-tracker/internal/version"
)

var errNotInitialized = errors.New("database schema is not up to date, run 'mf init' first")

// App carries what every subcommand needs: configuration, logger, output
// streams and the lazily opened database.
type App struct {
	cfg    *config.Config
	logger zerolog.Logger
	out    io.Writer
	errOut io.Writer
	now    func() time.Time

	db *sql.DB
	// sources builds the quote source factory; replaced in tests
	sources func(store quote.SnapshotStore, logger zerolog.Logger) service.SourceFactory
}

// NewApp creates an App. Reports go to out, errors to errOut.
func NewApp(cfg *config.Config, logger zerolog.Logger, out, errOut io.Writer) *App {
	return &App{
		cfg:    cfg,
		logger: logger,
		out:    out,
		errOut: errOut,
		now:    time.Now,
		sources: func(store quote.SnapshotStore, logger zerolog.Logger) service.SourceFactory {
			return quote.NewFactory(cfg.Quotes, store, logger)
		},
	}
}

// Register adds every mf subcommand, with its short aliases, to c.
func Register(c *subcommands.Commander, app *App) {
	register := func(group string, cmd subcommands.Command, aliases ...string) {
		c.Register(cmd, group)
		for _, alias := range aliases {
			c.Register(subcommands.Alias(alias, cmd), group)
		}
	}

	register("database", &initCmd{app: app})

	register("funds", &addFundCmd{app: app}, "imf")
	register("funds", &fundsCmd{app: app}, "lmf", "smf")
	register("funds", &rmFundCmd{app: app}, "rmf")

	register("purchases", &buyCmd{app: app}, "imfp")
	register("purchases", &purchasesCmd{app: app}, "lmfp", "smfp")
	register("purchases", &rmPurchaseCmd{app: app}, "rmfp")

	register("reports", &statusCmd{app: app}, "smfs")
	register("reports", &distCmd{app: app}, "dis")

	register("navs", &updateNavCmd{app: app}, "uln")
	register("navs", &navsCmd{app: app}, "snav")
	register("navs", &amfiURLsCmd{app: app}, "pamfurl")

	register("deposits", &addFDCmd{app: app}, "ifd")
	register("deposits", &fdsCmd{app: app}, "sfd")

	register("server", &serveCmd{app: app})
}

// Close releases the database, if one was opened.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	err := a.db.Close()
	a.db = nil
	return err
}

// open returns the database, refusing a schema with pending migrations.
func (a *App) open(ctx context.Context) (*sql.DB, error) {
	if a.db != nil {
		return a.db, nil
	}

	db, err := database.Open(a.cfg.Database.Path)
	if err != nil {
		return nil, err
	}
	pending, err := database.HasPending(ctx, db)
	if err != nil {
		db.Close()
		return nil, err
	}
	if pending {
		db.Close()
		return nil, errNotInitialized
	}

	a.db = db
	return db, nil
}

// services wires the service layer on the database. logger is handed to
// services and quote sources, so callers can quieten a single command.
func (a *App) services(ctx context.Context, logger zerolog.Logger) (api.Services, error) {
	db, err := a.open(ctx)
	if err != nil {
		return api.Services{}, err
	}

	fundRepo := repository.NewFundRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	navRepo := repository.NewNavRepository(db)
	sources := a.sources(navRepo, logger)

	return api.Services{
		System:   service.NewSystemService(db, version.Version),
		Fund:     service.NewFundService(fundRepo, logger),
		Purchase: service.NewPurchaseService(purchaseRepo, fundRepo, logger),
		Status:   service.NewStatusService(purchaseRepo, fundRepo, sources, logger),
		Nav:      service.NewNavService(db, fundRepo, navRepo, sources, logger),
		Deposit:  service.NewDepositService(repository.NewDepositRepository(db), logger),
	}, nil
}

func (a *App) fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(a.errOut, "Error: %v\n", err)
	return subcommands.ExitFailure
}

// failSource reports a service error, treating a source the command cannot
// use as bad input.
func (a *App) failSource(err error) subcommands.ExitStatus {
	if errors.Is(err, apperrors.ErrUnknownQuoteSource) ||
		errors.Is(err, apperrors.ErrSnapshotSourceNotRefreshable) {
		return a.usageError("%v", err)
	}
	return a.fail(err)
}

func (a *App) usageError(format string, args ...any) subcommands.ExitStatus {
	fmt.Fprintf(a.errOut, "Error: "+format+"\n", args...)
	return subcommands.ExitUsageError
}

// listFlag collects comma-separated values. The flag may be repeated.
type listFlag []string

func (l *listFlag) String() string { return strings.Join(*l, ",") }

func (l *listFlag) Set(v string) error {
	*l = append(*l, request.SplitList(v)...)
	return nil
}

// filterFlags are the lot selection flags shared by purchases, status and dist.
type filterFlags struct {
	types        listFlag
	excludeTypes listFlag
	funds        listFlag
	excludeFunds listFlag
	date         string
}

func (ff *filterFlags) register(f *flag.FlagSet) {
	f.Var(&ff.types, "t", "only funds of these types (comma list)")
	f.Var(&ff.excludeTypes, "e", "exclude funds of these types (comma list)")
	f.Var(&ff.funds, "f", "only these fund IDs or ID prefixes (comma list)")
	f.Var(&ff.excludeFunds, "n", "exclude these fund IDs or ID prefixes (comma list)")
	f.StringVar(&ff.date, "d", "", "as-of date, YYYY-MM-DD (default today)")
}

func (ff *filterFlags) filter(now time.Time) (model.LotFilter, error) {
	return request.ParseLotFilter(
		ff.types.String(),
		ff.excludeTypes.String(),
		ff.funds.String(),
		ff.excludeFunds.String(),
		ff.date,
		now,
	)
}
