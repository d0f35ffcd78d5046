package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/cube/simple/cmd/app/commands"
	"github.com/cube/simple/internal/app"
	"github.com/cube/simple/internal/config"
)

func getAuthCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "issue-token",
			Usage: "Sign a bearer token for a subject without logging in",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "subject",
					Aliases:  []string{"u"},
					Required: true,
					Usage:    "Member ID placed in the sub claim",
				},
				&cli.StringFlag{
					Name:    "role",
					Aliases: []string{"r"},
					Value:   "USER",
					Usage:   "Role claim: ADMIN, OWNER or USER",
				},
				&cli.BoolFlag{
					Name:  "refresh",
					Value: false,
					Usage: "Issue a refresh token instead of an access token",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				tokenService, err := container.TokenService()
				if err != nil {
					return err
				}

				return commands.RunIssueToken(
					tokenService,
					container.Logger(),
					os.Stdout,
					cmd.String("subject"),
					cmd.String("role"),
					cmd.Bool("refresh"),
					cmd.String("format"),
				)
			},
		},
	}
}
