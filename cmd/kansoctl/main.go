package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"github.com/comitanigiacomo/kanso-habits/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-habits/internal/cli"
	"github.com/comitanigiacomo/kanso-habits/internal/config"
	"github.com/comitanigiacomo/kanso-habits/internal/core/services"
	"github.com/comitanigiacomo/kanso-habits/internal/logger"
)

var CLI struct {
	Version    kong.VersionFlag
	LogLevel   string `help:"Log level." default:"warn" env:"LOG_LEVEL"`
	Migrations string `help:"Directory with migration files; empty uses the embedded set." type:"path" env:"MIGRATIONS_PATH"`

	Migrate struct {
		Up      cli.MigrateUpCmd      `cmd:"" help:"Apply all pending migrations."`
		Down    cli.MigrateDownCmd    `cmd:"" help:"Roll back every migration."`
		Version cli.MigrateVersionCmd `cmd:"" help:"Print the applied schema version."`
	} `cmd:"" help:"Manage the database schema."`

	Stats   cli.StatsCmd   `cmd:"" help:"Show a user's dashboard for a day."`
	Preview cli.PreviewCmd `cmd:"" help:"Show the daily reminder a user would receive."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("kansoctl"),
		kong.Description("Operator tool for the Kanso habits database"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx *kong.Context) error {
	cfg, err := config.LoadOffline()
	if err != nil {
		return err
	}
	if CLI.Migrations != "" {
		cfg.MigrationsPath = CLI.Migrations
	}

	log := logger.New(CLI.LogLevel)

	opts, err := cfg.EngineOptions()
	if err != nil {
		return err
	}

	connectCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := repository.OpenPostgres(connectCtx, cfg.Database.DSN())
	if err != nil {
		return err
	}
	defer db.Close()

	migrator, err := repository.NewMigrator(db, cfg.MigrationsPath, log)
	if err != nil {
		return err
	}

	return ctx.Run(&cli.Context{
		Out:      os.Stdout,
		Stats:    services.NewStatsService(repository.NewPostgresHabitRepository(db), opts),
		Migrator: migrator,
	})
}
