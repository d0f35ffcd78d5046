package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/cube/simple/cmd/app/commands"
	"github.com/cube/simple/internal/app"
	"github.com/cube/simple/internal/config"
)

func kmsKeyURIFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "kms-key-uri",
		Value: "",
		Usage: "Wrap the output with this KMS key (base64key://, gcpkms://, awskms://, azurekeyvault://, hashivault://)",
	}
}

func getKeyCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-signing-secret",
			Usage: "Generate a JWT_SECRET for token signing",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:    "size",
					Aliases: []string{"s"},
					Value:   32,
					Usage:   "Secret size in bytes",
				},
				kmsKeyURIFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunCreateSigningSecret(
					ctx,
					container.KMSService(),
					container.Logger(),
					os.Stdout,
					int(cmd.Int("size")),
					cmd.String("kms-key-uri"),
				)
			},
		},
		{
			Name:  "create-encryption-key",
			Usage: "Generate an AES_KEY for field encryption",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:    "size",
					Aliases: []string{"s"},
					Value:   32,
					Usage:   "Key size in bytes (16, 24 or 32)",
				},
				kmsKeyURIFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunCreateEncryptionKey(
					ctx,
					container.KMSService(),
					container.Logger(),
					os.Stdout,
					int(cmd.Int("size")),
					cmd.String("kms-key-uri"),
				)
			},
		},
	}
}
