// Package reporter renders syntax errors for the check command: a
// human text format with source snippets, and SARIF 2.1.0 for CI
// upload.
package reporter

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/loupelabs/loupe/internal/syntax"
)

var errorHeader = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))

// colorEnabled reports whether styled output should be produced.
// NO_COLOR and dumb terminals disable it.
func colorEnabled() bool {
	return !termenv.EnvNoColor()
}

// PrintText writes errors grouped per file with a highlighted source
// snippet around each reported line.
//
// Example output:
//
//	ERROR: syntax error
//	main.go:3
//	--------------------
//	   2 |   fn broken(
//	   3 | >>> }
//	--------------------
func PrintText(w io.Writer, errs []syntax.Error, sources map[string][]byte) error {
	sorted := make([]syntax.Error, len(errs))
	copy(sorted, errs)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].File != sorted[j].File {
			return sorted[i].File < sorted[j].File
		}
		return sorted[i].Line < sorted[j].Line
	})

	color := colorEnabled()
	for _, e := range sorted {
		header := "ERROR: " + e.Message
		if color {
			header = errorHeader.Render(header)
		}
		fmt.Fprintf(w, "\n%s\n", header)
		fmt.Fprintf(w, "%s:%d\n", e.File, e.Line)
		printSnippet(w, e, sources[e.File], color)
	}
	return nil
}

// printSnippet renders the source lines around the error, marking the
// reported line with ">>>". Two lines of context on each side.
func printSnippet(w io.Writer, e syntax.Error, source []byte, color bool) {
	if len(source) == 0 || e.Line < 1 {
		return
	}
	lines := strings.Split(string(source), "\n")
	if e.Line > len(lines) {
		return
	}

	first := e.Line - 2
	if first < 1 {
		first = 1
	}
	last := e.Line + 2
	if last > len(lines) {
		last = len(lines)
	}

	fmt.Fprintln(w, strings.Repeat("-", 20))
	for n := first; n <= last; n++ {
		marker := "    "
		if n == e.Line {
			marker = " >>>"
		}
		fmt.Fprintf(w, "%4d |%s %s\n", n, marker, renderLine(lines[n-1], color))
	}
	fmt.Fprintln(w, strings.Repeat("-", 20))
}

// renderLine syntax-highlights one snippet line when color is on.
func renderLine(line string, color bool) string {
	if !color || strings.TrimSpace(line) == "" {
		return line
	}
	var sb strings.Builder
	if err := quick.Highlight(&sb, line, "go", "terminal256", "monokai"); err != nil {
		return line
	}
	return strings.TrimSuffix(sb.String(), "\n")
}
