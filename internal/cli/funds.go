package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/ndewijer/mutualfund-tracker/internal/api/request"
	"github.com/ndewijer/mutualfund-tracker/internal/render"
	"github.com/ndewijer/mutualfund-tracker/internal/validation"
)

type addFundCmd struct {
	app    *App
	url    string
	symbol string
}

func (*addFundCmd) Name() string     { return "add-fund" }
func (*addFundCmd) Synopsis() string { return "register a mutual fund" }
func (*addFundCmd) Usage() string {
	return `add-fund [-url <moneycontrol page>] [-symbol <yahoo symbol>] <name> <type> <folio> <scheme code>

  Registers a fund. The AMFI scheme code selects the fund's line in the AMFI
  NAV feed; -url and -symbol are only needed for the moneycontrol and yahoo
  quote sources.
`
}

func (c *addFundCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.url, "url", "", "Moneycontrol page of the fund")
	f.StringVar(&c.symbol, "symbol", "", "Yahoo Finance symbol of the fund")
}

func (c *addFundCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 4 {
		return c.app.usageError("add-fund requires exactly 4 arguments, got %d", f.NArg())
	}
	req := request.CreateFundRequest{
		Name:            f.Arg(0),
		Type:            f.Arg(1),
		Folio:           f.Arg(2),
		SchemeCode:      f.Arg(3),
		MoneycontrolURL: c.url,
		Symbol:          c.symbol,
	}
	if err := validation.ValidateCreateFund(req); err != nil {
		return c.app.usageError("%v", err)
	}

	svcs, err := c.app.services(ctx, c.app.logger)
	if err != nil {
		return c.app.fail(err)
	}
	fund, err := svcs.Fund.CreateFund(ctx, req)
	if err != nil {
		return c.app.fail(err)
	}

	fmt.Fprintf(c.app.out, "Added fund %s %s\n", render.ShortID(fund.ID), fund.Name)
	return subcommands.ExitSuccess
}

type fundsCmd struct {
	app      *App
	showURLs bool
	json     bool
}

func (*fundsCmd) Name() string     { return "funds" }
func (*fundsCmd) Synopsis() string { return "list registered funds" }
func (*fundsCmd) Usage() string {
	return `funds [-url] [-json]

  Lists every fund ordered by name.
`
}

func (c *fundsCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.showURLs, "url", false, "show Moneycontrol URL and Yahoo symbol")
	f.BoolVar(&c.json, "json", false, "print JSON instead of a table")
}

func (c *fundsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svcs, err := c.app.services(ctx, c.app.logger)
	if err != nil {
		return c.app.fail(err)
	}
	funds, err := svcs.Fund.GetAllFunds(ctx)
	if err != nil {
		return c.app.fail(err)
	}

	if c.json {
		if err := render.JSON(c.app.out, funds); err != nil {
			return c.app.fail(err)
		}
		return subcommands.ExitSuccess
	}
	render.Funds(c.app.out, funds, c.showURLs)
	return subcommands.ExitSuccess
}

type rmFundCmd struct {
	app *App
}

func (*rmFundCmd) Name() string     { return "rm-fund" }
func (*rmFundCmd) Synopsis() string { return "remove a fund" }
func (*rmFundCmd) Usage() string {
	return `rm-fund <fund id or unique prefix>

  Removes a fund and its stored NAV snapshots. Refused while purchases of
  the fund exist.
`
}

func (*rmFundCmd) SetFlags(*flag.FlagSet) {}

func (c *rmFundCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return c.app.usageError("rm-fund requires exactly 1 argument, got %d", f.NArg())
	}

	svcs, err := c.app.services(ctx, c.app.logger)
	if err != nil {
		return c.app.fail(err)
	}
	fund, err := svcs.Fund.DeleteFund(ctx, f.Arg(0))
	if err != nil {
		return c.app.fail(err)
	}

	fmt.Fprintf(c.app.out, "Removed fund %s %s\n", render.ShortID(fund.ID), fund.Name)
	return subcommands.ExitSuccess
}
