package docstate

import (
	"fmt"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/sirupsen/logrus"

	"github.com/loupelabs/loupe/internal/ignore"
	"github.com/loupelabs/loupe/internal/locator"
)

// LoadDirectory bulk-populates the store from a directory:
// non-recursive, bounded by the configured fan-out, filtered by the
// include globs and the directory's .loupeignore. Entries already
// tracked are skipped. The first per-file failure aborts and is
// returned; documents created before it remain tracked.
//
// Loading never runs the pipeline; files not under active editing
// are not diagnosed.
func (s *Store) LoadDirectory(dir string) error {
	dir = locator.Canonical(dir)

	entries, err := s.fs.ListDir(dir, s.cfg.MaxDirEntries)
	if err != nil {
		return fmt.Errorf("list %s: %w", dir, err)
	}

	matcher, err := ignore.Load(dir)
	if err != nil {
		return fmt.Errorf("ignore patterns in %s: %w", dir, err)
	}

	loaded := 0
	for _, entry := range entries {
		name := filepath.Base(entry)
		if !s.includes(name) || matcher.Excluded(name) {
			continue
		}
		if s.docs[locator.Canonical(entry)] != nil {
			continue
		}
		if err := s.CreateFromFile(entry); err != nil {
			return err
		}
		loaded++
	}

	s.log.WithFields(logrus.Fields{
		"dir":    dir,
		"loaded": loaded,
	}).Debug("directory loaded")
	return nil
}

// includes reports whether a base name matches any configured include
// glob. No patterns means everything matches.
func (s *Store) includes(name string) bool {
	if len(s.cfg.Include) == 0 {
		return true
	}
	for _, pattern := range s.cfg.Include {
		if ok, err := doublestar.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}
