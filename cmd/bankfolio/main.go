package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"bankfolio/internal/backend"
	"bankfolio/internal/cli"
	"bankfolio/internal/config"
	"bankfolio/internal/services"
)

var (
	// Version contains the application version number. It's set via ldflags
	// when building.
	Version = "dev"

	commands struct {
		Version kong.VersionFlag `help:"Show version information"`
		cli.Commands
	}
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	cli.LoadEnvFile()

	parser, err := cli.NewParser(&commands, kong.Vars{"version": Version})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	kctx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)

	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// The API server logs to stdout at the configured level; the other
	// commands keep stdout for their output.
	logOut, level := os.Stderr, cfg.SlogLevel()
	if kctx.Command() != "serve" {
		level = max(level, slog.LevelWarn)
	} else {
		logOut = os.Stdout
	}
	logger := cli.SetupLogger(level, logOut)

	repo, err := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	ledger := services.NewLedgerService(repo, cli.InitPublisher(logger, cfg))
	defer ledger.Close()

	env := &cli.Env{
		Ledger:    ledger,
		Settings:  config.LoadSettings(cfg.SettingsPath),
		Config:    cfg,
		Logger:    logger,
		Exporters: backend.NewFactory(logger.Logger),
		Lang:      commands.Lang,
	}

	if err := kctx.Run(env); err != nil {
		env.ReportError(err)
		ledger.Close()
		os.Exit(1)
	}
}
