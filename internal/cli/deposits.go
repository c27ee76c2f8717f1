package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/google/subcommands"

	"github.com/ndewijer/mutualfund-tracker/internal/api/request"
	"github.com/ndewijer/mutualfund-tracker/internal/render"
	"github.com/ndewijer/mutualfund-tracker/internal/service"
	"github.com/ndewijer/mutualfund-tracker/internal/validation"
)

type addFDCmd struct {
	app *App
}

func (*addFDCmd) Name() string     { return "add-fd" }
func (*addFDCmd) Synopsis() string { return "record a fixed deposit" }
func (*addFDCmd) Usage() string {
	return `add-fd <name> <amount> <rate> <tenure days> <deposit date> <maturity date> <maturity amount>
`
}

func (*addFDCmd) SetFlags(*flag.FlagSet) {}

func (c *addFDCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 7 {
		return c.app.usageError("add-fd requires exactly 7 arguments, got %d", f.NArg())
	}
	req := request.CreateDepositRequest{
		Name:           f.Arg(0),
		Amount:         f.Arg(1),
		Rate:           f.Arg(2),
		Tenure:         f.Arg(3),
		DepositDate:    f.Arg(4),
		MaturityDate:   f.Arg(5),
		MaturityAmount: f.Arg(6),
	}
	if err := validation.ValidateCreateDeposit(req); err != nil {
		return c.app.usageError("%v", err)
	}

	svcs, err := c.app.services(ctx, c.app.logger)
	if err != nil {
		return c.app.fail(err)
	}
	fd, err := svcs.Deposit.CreateDeposit(ctx, req)
	if err != nil {
		return c.app.fail(err)
	}

	fmt.Fprintf(c.app.out, "Added fixed deposit %s %s\n", render.ShortID(fd.ID), fd.Name)
	return subcommands.ExitSuccess
}

type fdsCmd struct {
	app  *App
	sort string
}

func (*fdsCmd) Name() string     { return "fds" }
func (*fdsCmd) Synopsis() string { return "list fixed deposits" }
func (*fdsCmd) Usage() string {
	return `fds [-sort amt|name|rate|date]
`
}

func (c *fdsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.sort, "sort", "amt", "sort key: "+strings.Join(service.DepositSortKeys, ", "))
}

func (c *fdsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svcs, err := c.app.services(ctx, c.app.logger)
	if err != nil {
		return c.app.fail(err)
	}
	deposits, err := svcs.Deposit.GetDeposits(ctx, c.sort)
	if err != nil {
		return c.app.fail(err)
	}

	render.Deposits(c.app.out, deposits)
	return subcommands.ExitSuccess
}
