package cmd

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/loupelabs/loupe/internal/version"
)

// NewApp creates the CLI application
func NewApp() *cli.Command {
	return &cli.Command{
		Name:    "loupe",
		Usage:   "A lightweight source-analysis language server for Go files",
		Version: version.Version(),
		Description: `loupe tracks source files, applies editor edits incrementally,
re-parses on every change and reports syntax problems as LSP
diagnostics.

Examples:
  loupe lsp --stdio
  loupe check main.go
  loupe check ./pkg`,
		Commands: []*cli.Command{
			lspCommand(),
			checkCommand(),
			versionCommand(),
		},
	}
}

// Execute runs the CLI application
func Execute() error {
	return NewApp().Run(context.Background(), os.Args)
}
