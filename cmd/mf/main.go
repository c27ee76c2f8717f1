package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/google/subcommands"

	"github.com/ndewijer/mutualfund-tracker/internal/cli"
	"github.com/ndewijer/mutualfund-tracker/internal/config"
	"github.com/ndewijer/mutualfund-tracker/internal/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(int(subcommands.ExitUsageError))
	}

	log := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Pretty: cfg.Log.Pretty,
	})

	app := cli.NewApp(cfg, log, os.Stdout, os.Stderr)

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cli.Register(commander, app)

	flag.Parse()
	status := commander.Execute(context.Background())

	if err := app.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close database")
	}
	os.Exit(int(status))
}
