package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/stridehq/stride/internal/cli"
	"github.com/stridehq/stride/internal/constants"
	"github.com/stridehq/stride/internal/errors"
	"github.com/stridehq/stride/internal/keyring"
	"github.com/stridehq/stride/internal/logger"
	"github.com/stridehq/stride/internal/storage"
	"github.com/stridehq/stride/internal/tracker"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Database path, PostgreSQL connection string, or 'memory'. PostgreSQL credentials must NOT be embedded in the connection string; use the OS keyring or environment instead." default:"~/.config/stride/stride.db"`
	Debug   bool   `help:"Enable debug logging."`

	Init   cli.InitCmd   `cmd:"" help:"Initialize stride storage."`
	Serve  cli.ServeCmd  `cmd:"" help:"Run the HTTP API server."`
	Habit  cli.HabitCmd  `cmd:"" help:"Manage habits."`
	Mark   cli.MarkCmd   `cmd:"" help:"Mark a habit done for a day."`
	Unmark cli.UnmarkCmd `cmd:"" help:"Remove a completion for a day."`
	Today  cli.TodayCmd  `cmd:"" help:"Show today's habits and streaks."`
	Log    cli.LogCmd    `cmd:"" help:"Show habit history (ASCII grid)."`
	Stats  cli.StatsCmd  `cmd:"" help:"Show daily stats and completion rates."`
	Cfg    cli.ConfigCmd `cmd:"" name:"config" help:"Manage stored configuration."`
}

func buildStore(config string) (storage.Provider, error) {
	if config == "memory" {
		return storage.NewMemoryStore(), nil
	}
	if strings.HasPrefix(config, "postgres://") || strings.HasPrefix(config, "postgresql://") {
		if storage.HasEmbeddedCredentials(config) {
			return nil, fmt.Errorf("connection strings with embedded credentials are not allowed; use 'stride config set-dsn' or STRIDE_DB_CONNECTION")
		}
		return storage.NewPostgresStore(config), nil
	}
	// A stored or env-provided DSN overrides the default file path.
	if config == constants.DefaultConfigPath {
		if dsn := os.Getenv("STRIDE_DB_CONNECTION"); dsn != "" {
			return storage.NewPostgresStore(dsn), nil
		}
		if dsn, err := keyring.GetConnectionString(); err == nil {
			return storage.NewPostgresStore(dsn), nil
		}
	}
	return storage.NewSQLiteStore(cli.ExpandPath(config)), nil
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Habit tracker with streaks and schedule-aware analytics"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	if err := logger.Init(logger.Config{
		Debug:     CLI.Debug,
		ConfigDir: filepath.Dir(cli.ExpandPath(constants.DefaultConfigPath)),
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}

	store, err := buildStore(CLI.Config)
	if err != nil {
		errors.Fatal(err)
	}

	appCtx := &cli.Context{
		Store:   store,
		Tracker: tracker.New(store),
	}

	// Init handles its own setup; everything else needs the store loaded.
	if ctx.Selected() != nil && ctx.Selected().Name != "init" {
		if err := store.Load(); err != nil {
			errors.Fatal(err)
		}
	}
	defer store.Close()

	errors.Fatal(ctx.Run(appCtx))
}
