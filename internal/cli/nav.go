package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/ndewijer/mutualfund-tracker/internal/api/request"
	"github.com/ndewijer/mutualfund-tracker/internal/quote"
	"github.com/ndewijer/mutualfund-tracker/internal/render"
)

type updateNavCmd struct {
	app    *App
	source string
	date   string
}

func (*updateNavCmd) Name() string     { return "update-nav" }
func (*updateNavCmd) Synopsis() string { return "store today's NAV of every fund" }
func (*updateNavCmd) Usage() string {
	return `update-nav [-source name] [-d date]

  Fetches the NAV of every registered fund from a live source and stores one
  snapshot per fund, replacing snapshots already stored for the NAV date.
  Nothing is stored if any fund has no NAV.
`
}

func (c *updateNavCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.source, "source", "", "quote source: amfi, moneycontrol or yahoo (default from MF_QUOTE_SOURCE)")
	f.StringVar(&c.date, "d", "", "as-of date, YYYY-MM-DD (default today)")
}

func (c *updateNavCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	asOf, err := request.ParseDate(c.date, c.app.now())
	if err != nil {
		return c.app.usageError("%v", err)
	}

	svcs, err := c.app.services(ctx, c.app.logger)
	if err != nil {
		return c.app.fail(err)
	}
	result, err := svcs.Nav.UpdateSnapshots(ctx, c.source, asOf)
	if err != nil {
		return c.app.failSource(err)
	}

	fmt.Fprintf(c.app.out, "Stored %d NAV snapshots from %s\n", len(result.Snapshots), result.Source)
	return subcommands.ExitSuccess
}

type navsCmd struct {
	app *App
}

func (*navsCmd) Name() string     { return "navs" }
func (*navsCmd) Synopsis() string { return "list dates with stored NAV snapshots" }
func (*navsCmd) Usage() string {
	return `navs
`
}

func (*navsCmd) SetFlags(*flag.FlagSet) {}

func (c *navsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svcs, err := c.app.services(ctx, c.app.logger)
	if err != nil {
		return c.app.fail(err)
	}
	dates, err := svcs.Nav.GetSnapshotDates(ctx)
	if err != nil {
		return c.app.fail(err)
	}

	render.NavDates(c.app.out, dates)
	return subcommands.ExitSuccess
}

type amfiURLsCmd struct {
	app  *App
	from string
	to   string
}

func (*amfiURLsCmd) Name() string     { return "amfi-urls" }
func (*amfiURLsCmd) Synopsis() string { return "print the AMFI NAV history URL of every fund house" }
func (*amfiURLsCmd) Usage() string {
	return `amfi-urls [-from date] [-to date]

  Prints, for every known fund house, the AMFI report URL covering the
  window. The window defaults to the last MF_AMFI_WINDOW_DAYS days.
`
}

func (c *amfiURLsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "first day of the window, YYYY-MM-DD")
	f.StringVar(&c.to, "to", "", "last day of the window, YYYY-MM-DD (default today)")
}

func (c *amfiURLsCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	to, err := request.ParseDate(c.to, c.app.now())
	if err != nil {
		return c.app.usageError("%v", err)
	}
	from := to.AddDate(0, 0, -c.app.cfg.Quotes.AMFIWindowDays)
	if c.from != "" {
		if from, err = request.ParseDate(c.from, c.app.now()); err != nil {
			return c.app.usageError("%v", err)
		}
	}
	if from.After(to) {
		return c.app.usageError("-from %s is after -to %s", from.Format("2006-01-02"), to.Format("2006-01-02"))
	}

	base := c.app.cfg.Quotes.AMFIURL
	if base == "" {
		base = quote.DefaultAMFIURL
	}
	names := quote.FundHouseNames()
	urls := make([]render.HouseURL, 0, len(names))
	for _, name := range names {
		urls = append(urls, render.HouseURL{
			House: name,
			URL:   quote.HistoryURL(base, quote.FundHouses[name], from, to),
		})
	}

	if err := render.AMFIURLs(c.app.out, urls); err != nil {
		return c.app.fail(err)
	}
	return subcommands.ExitSuccess
}
