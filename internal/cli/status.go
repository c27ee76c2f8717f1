package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/rs/zerolog"

	"github.com/ndewijer/mutualfund-tracker/internal/render"
	"github.com/ndewijer/mutualfund-tracker/internal/service"
	"github.com/ndewijer/mutualfund-tracker/internal/valuation"
)

type statusCmd struct {
	app    *App
	filter filterFlags
	sort   string
	source string
	json   bool
	quiet  bool
}

func (*statusCmd) Name() string     { return "status" }
func (*statusCmd) Synopsis() string { return "value the portfolio against current NAVs" }
func (*statusCmd) Usage() string {
	return `status [-t types | -e types | -f funds | -n funds] [-d date] [-sort key] [-source name] [-json] [-q]

  Values every fund held on the as-of date and prints one row per fund
  followed by the portfolio total. Sort keys:
  - appr:  appreciation (default)
  - amt:   amount invested
  - name:  fund name
  - type:  fund type
  - yappr: projected yearly return, not applicable last
`
}

func (c *statusCmd) SetFlags(f *flag.FlagSet) {
	c.filter.register(f)
	f.StringVar(&c.sort, "sort", string(valuation.SortByAppreciation), "sort key: appr, amt, name, type or yappr")
	f.StringVar(&c.source, "source", "", "quote source: amfi, moneycontrol, yahoo or snapshot (default from MF_QUOTE_SOURCE)")
	f.BoolVar(&c.json, "json", false, "print JSON instead of a table")
	f.BoolVar(&c.quiet, "q", false, "do not log the NAV used for each fund")
}

func (c *statusCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	filter, err := c.filter.filter(c.app.now())
	if err != nil {
		return c.app.usageError("%v", err)
	}
	sortKey, err := valuation.ParseSortKey(c.sort)
	if err != nil {
		return c.app.usageError("%v", err)
	}

	logger := c.app.logger
	if c.quiet && logger.GetLevel() < zerolog.WarnLevel {
		logger = logger.Level(zerolog.WarnLevel)
	}
	svcs, err := c.app.services(ctx, logger)
	if err != nil {
		return c.app.fail(err)
	}

	report, err := svcs.Status.GetStatus(ctx, service.StatusRequest{
		Filter: filter,
		Sort:   sortKey,
		Source: c.source,
	})
	if err != nil {
		return c.app.failSource(err)
	}

	if c.json {
		if err := render.JSON(c.app.out, report); err != nil {
			return c.app.fail(err)
		}
		return subcommands.ExitSuccess
	}
	render.Status(c.app.out, report.Positions, report.Total)
	return subcommands.ExitSuccess
}

type distCmd struct {
	app    *App
	filter filterFlags
	json   bool
}

func (*distCmd) Name() string     { return "dist" }
func (*distCmd) Synopsis() string { return "show the amount invested per fund type" }
func (*distCmd) Usage() string {
	return `dist [-t types | -e types | -f funds | -n funds] [-d date] [-json]
`
}

func (c *distCmd) SetFlags(f *flag.FlagSet) {
	c.filter.register(f)
	f.BoolVar(&c.json, "json", false, "print JSON instead of a table")
}

func (c *distCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	filter, err := c.filter.filter(c.app.now())
	if err != nil {
		return c.app.usageError("%v", err)
	}

	svcs, err := c.app.services(ctx, c.app.logger)
	if err != nil {
		return c.app.fail(err)
	}
	shares, err := svcs.Status.GetDistribution(ctx, filter)
	if err != nil {
		return c.app.fail(fmt.Errorf("distribution: %w", err))
	}

	if c.json {
		if err := render.JSON(c.app.out, shares); err != nil {
			return c.app.fail(err)
		}
		return subcommands.ExitSuccess
	}
	render.Distribution(c.app.out, shares)
	return subcommands.ExitSuccess
}
