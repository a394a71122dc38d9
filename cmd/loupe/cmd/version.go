package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/loupelabs/loupe/internal/version"
)

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print the loupe version",
		Action: func(_ context.Context, cmd *cli.Command) error {
			fmt.Fprintln(cmd.Writer, version.Version())
			return nil
		},
	}
}
