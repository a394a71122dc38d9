// Package ignore loads .loupeignore patterns and answers whether a
// workspace entry should be skipped during directory loading.
package ignore

import (
	"os"
	"path/filepath"

	"github.com/moby/patternmatcher"
	"github.com/moby/patternmatcher/ignorefile"
)

const ignoreFileName = ".loupeignore"

// Matcher reports whether paths relative to a workspace root are
// excluded from loading.
type Matcher struct {
	pm *patternmatcher.PatternMatcher
}

// Load reads ignore patterns from dir's .loupeignore, if present.
// A missing file yields a matcher that excludes nothing; an existing
// empty file is valid and likewise excludes nothing.
func Load(dir string) (*Matcher, error) {
	patterns, err := loadIgnoreFile(filepath.Join(dir, ignoreFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return &Matcher{}, nil
		}
		return nil, err
	}
	return New(patterns)
}

// New builds a matcher from explicit patterns.
func New(patterns []string) (*Matcher, error) {
	if len(patterns) == 0 {
		return &Matcher{}, nil
	}
	pm, err := patternmatcher.New(patterns)
	if err != nil {
		return nil, err
	}
	return &Matcher{pm: pm}, nil
}

// Excluded reports whether the path (relative to the ignore root)
// matches an ignore pattern.
func (m *Matcher) Excluded(relPath string) bool {
	if m == nil || m.pm == nil {
		return false
	}
	matched, err := m.pm.MatchesOrParentMatches(filepath.ToSlash(relPath))
	if err != nil {
		return false
	}
	return matched
}

func loadIgnoreFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ignorefile.ReadAll(f)
}
