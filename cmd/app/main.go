// Command simple runs the member API and its operator tooling.
package main

import (
	"context"
	"log/slog"
	"os"
	"slices"

	"github.com/urfave/cli/v3"
)

// Set with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	root := &cli.Command{
		Name:    "simple",
		Usage:   "Member API with token authentication and field-level encryption",
		Version: version,
		Commands: slices.Concat(
			getSystemCommands(version),
			getKeyCommands(),
			getAuthCommands(),
		),
	}

	if err := root.Run(context.Background(), os.Args); err != nil {
		slog.Error("command failed", slog.Any("error", err))
		os.Exit(1)
	}
}
