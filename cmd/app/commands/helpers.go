// Package commands implements the actions behind the CLI subcommands. Each
// Run function takes its collaborators and an output writer so tests can
// drive it without a container.
package commands

import (
	"context"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"

	"github.com/cube/simple/internal/app"
)

func closeContainer(container *app.Container, logger *slog.Logger) {
	if err := container.Shutdown(context.Background()); err != nil {
		logger.Error("container shutdown failed", slog.Any("error", err))
	}
}

func closeMigrate(m *migrate.Migrate, logger *slog.Logger) {
	srcErr, dbErr := m.Close()
	if srcErr == nil && dbErr == nil {
		return
	}
	logger.Error("failed to close migrate",
		slog.Any("source_error", srcErr),
		slog.Any("database_error", dbErr),
	)
}
