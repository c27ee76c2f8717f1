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

type buyCmd struct {
	app *App
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "record a purchase of a fund" }
func (*buyCmd) Usage() string {
	return `buy <fund id or prefix> <nav> <amount> <YYYY-MM-DD>

  Records a purchase. Units bought are amount / nav rounded to 3 places.
`
}

func (*buyCmd) SetFlags(*flag.FlagSet) {}

func (c *buyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 4 {
		return c.app.usageError("buy requires exactly 4 arguments, got %d", f.NArg())
	}
	req := request.CreatePurchaseRequest{
		FundID: f.Arg(0),
		NAV:    f.Arg(1),
		Amount: f.Arg(2),
		Date:   f.Arg(3),
	}
	if err := validation.ValidateCreatePurchase(req); err != nil {
		return c.app.usageError("%v", err)
	}

	svcs, err := c.app.services(ctx, c.app.logger)
	if err != nil {
		return c.app.fail(err)
	}
	lot, err := svcs.Purchase.CreatePurchase(ctx, req)
	if err != nil {
		return c.app.fail(err)
	}

	fmt.Fprintf(c.app.out, "Recorded purchase %s: %.3f units of %s\n", render.ShortID(lot.ID), lot.Units, lot.FundName)
	return subcommands.ExitSuccess
}

type purchasesCmd struct {
	app    *App
	filter filterFlags
	json   bool
}

func (*purchasesCmd) Name() string     { return "purchases" }
func (*purchasesCmd) Synopsis() string { return "list purchases" }
func (*purchasesCmd) Usage() string {
	return `purchases [-t types | -e types | -f funds | -n funds] [-d date] [-json]

  Lists purchases made on or before the as-of date, oldest first. At most one
  of -t, -e, -f and -n may be given.
`
}

func (c *purchasesCmd) SetFlags(f *flag.FlagSet) {
	c.filter.register(f)
	f.BoolVar(&c.json, "json", false, "print JSON instead of a table")
}

func (c *purchasesCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	filter, err := c.filter.filter(c.app.now())
	if err != nil {
		return c.app.usageError("%v", err)
	}

	svcs, err := c.app.services(ctx, c.app.logger)
	if err != nil {
		return c.app.fail(err)
	}
	lots, err := svcs.Purchase.GetPurchases(ctx, filter)
	if err != nil {
		return c.app.fail(err)
	}

	if c.json {
		if err := render.JSON(c.app.out, lots); err != nil {
			return c.app.fail(err)
		}
		return subcommands.ExitSuccess
	}
	render.Purchases(c.app.out, lots)
	return subcommands.ExitSuccess
}

type rmPurchaseCmd struct {
	app *App
}

func (*rmPurchaseCmd) Name() string     { return "rm-purchase" }
func (*rmPurchaseCmd) Synopsis() string { return "remove a purchase" }
func (*rmPurchaseCmd) Usage() string {
	return `rm-purchase <purchase id or unique prefix>
`
}

func (*rmPurchaseCmd) SetFlags(*flag.FlagSet) {}

func (c *rmPurchaseCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		return c.app.usageError("rm-purchase requires exactly 1 argument, got %d", f.NArg())
	}

	svcs, err := c.app.services(ctx, c.app.logger)
	if err != nil {
		return c.app.fail(err)
	}
	id, err := svcs.Purchase.DeletePurchase(ctx, f.Arg(0))
	if err != nil {
		return c.app.fail(err)
	}

	fmt.Fprintf(c.app.out, "Removed purchase %s\n", render.ShortID(id))
	return subcommands.ExitSuccess
}
