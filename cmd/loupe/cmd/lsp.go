package cmd

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"

	"github.com/loupelabs/loupe/internal/config"
	"github.com/loupelabs/loupe/internal/lspserver"
)

func lspCommand() *cli.Command {
	return &cli.Command{
		Name:  "lsp",
		Usage: "Run the language server",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "stdio",
				Usage: "Use stdin/stdout for the JSON-RPC transport",
				Value: true,
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to loupe.toml",
				Value:   "loupe.toml",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Override the configured log level",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			overrides := map[string]interface{}{}
			if lvl := cmd.String("log-level"); lvl != "" {
				overrides["log-level"] = lvl
			}

			cfg, err := config.Load(cmd.String("config"), overrides)
			if err != nil {
				return err
			}

			log := logrus.New()
			// stdout carries the protocol; logs go to stderr.
			log.SetOutput(os.Stderr)
			if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
				log.SetLevel(level)
			}
			entry := logrus.NewEntry(log)
			if ci := config.CIName(); ci != "" {
				entry = entry.WithField("ci", ci)
			}

			return lspserver.New(cfg, entry).RunStdio(ctx)
		},
	}
}
