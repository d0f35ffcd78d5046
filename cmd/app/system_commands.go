package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/cube/simple/cmd/app/commands"
	"github.com/cube/simple/internal/app"
	"github.com/cube/simple/internal/config"
)

func getSystemCommands(version string) []*cli.Command {
	serve := &cli.Command{
		Name:  "server",
		Usage: "Serve the member API (and /metrics when METRICS_ENABLED)",
		Action: func(ctx context.Context, _ *cli.Command) error {
			return commands.RunServer(ctx, version)
		},
	}

	migrate := &cli.Command{
		Name:  "migrate",
		Usage: "Apply pending migrations for DB_DRIVER",
		Action: func(ctx context.Context, _ *cli.Command) error {
			cfg := config.Load()
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			container := app.NewContainer(cfg)
			defer func() { _ = container.Shutdown(ctx) }()

			return commands.RunMigrations(container.Logger(), cfg.DBDriver, cfg.DBConnectionString)
		},
	}

	return []*cli.Command{serve, migrate}
}
