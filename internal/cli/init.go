package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/ndewijer/mutualfund-tracker/internal/database"
)

type initCmd struct {
	app *App
}

func (*initCmd) Name() string     { return "init" }
func (*initCmd) Synopsis() string { return "create or upgrade the mutual fund database" }
func (*initCmd) Usage() string {
	return `init

  Creates the database at $MFDB and applies every pending schema migration.
  Safe to run repeatedly.
`
}

func (*initCmd) SetFlags(*flag.FlagSet) {}

func (c *initCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	db := c.app.db
	if db == nil {
		var err error
		if db, err = database.Open(c.app.cfg.Database.Path); err != nil {
			return c.app.fail(err)
		}
		c.app.db = db
	}

	results, err := database.Migrate(ctx, db)
	if err != nil {
		return c.app.fail(err)
	}
	for _, r := range results {
		c.app.logger.Info().
			Int64("version", r.Source.Version).
			Str("migration", r.Source.Path).
			Dur("duration", r.Duration).
			Msg("applied migration")
	}

	v, err := database.Version(ctx, db)
	if err != nil {
		return c.app.fail(err)
	}
	fmt.Fprintf(c.app.out, "Database %s at schema version %d\n", c.app.cfg.Database.Path, v)
	return subcommands.ExitSuccess
}
