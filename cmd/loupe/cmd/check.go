package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/loupelabs/loupe/internal/reporter"
	"github.com/loupelabs/loupe/internal/syntax"
)

func checkCommand() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Parse files and report syntax errors",
		ArgsUsage: "[FILE|DIR...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: text, sarif",
				Value:   "text",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			args := cmd.Args().Slice()
			if len(args) == 0 {
				args = []string{"."}
			}

			files, err := collectFiles(args)
			if err != nil {
				return err
			}

			parser := syntax.NewGoParser()
			defer parser.Close()

			var allErrors []syntax.Error
			sources := make(map[string][]byte, len(files))
			for _, file := range files {
				content, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("read %s: %w", file, err)
				}
				res, err := parser.Parse(content, file)
				if err != nil {
					return err
				}
				res.Tree.Close()
				sources[file] = content
				allErrors = append(allErrors, res.Errors...)
			}

			switch cmd.String("format") {
			case "sarif":
				if err := reporter.PrintSARIF(cmd.Writer, allErrors); err != nil {
					return err
				}
			default:
				if err := reporter.PrintText(cmd.Writer, allErrors, sources); err != nil {
					return err
				}
			}

			if len(allErrors) > 0 {
				return cli.Exit("", 1)
			}
			return nil
		},
	}
}

// collectFiles expands arguments: files are taken as-is, directories
// contribute their top-level .go files.
func collectFiles(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if entry.Type().IsRegular() && filepath.Ext(entry.Name()) == ".go" {
				files = append(files, filepath.Join(arg, entry.Name()))
			}
		}
	}
	return files, nil
}
