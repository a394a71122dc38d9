// Package docstate is the document-state core of the loupe server: it
// owns the in-memory content of every tracked source file, applies
// editor-originated incremental edits, re-parses on every mutation,
// and decides when to publish or retract diagnostics.
//
// The store is single-threaded by contract: the request dispatcher
// serializes all operations, so there is no locking here, and a
// Document reference is valid only until the next mutating operation.
package docstate

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/loupelabs/loupe/internal/config"
	"github.com/loupelabs/loupe/internal/fsys"
	"github.com/loupelabs/loupe/internal/locator"
	"github.com/loupelabs/loupe/internal/syntax"
)

// Store owns all tracked documents, unique by canonical path, and the
// package index grouping them by declared package name.
type Store struct {
	fs        fsys.FS
	parser    syntax.Parser
	publisher Publisher
	cfg       *config.Config
	log       *logrus.Entry

	docs     map[string]*Document
	packages map[string]*Package
}

// NewStore creates an empty registry. Tests construct several
// independent stores; nothing here is process-global.
func NewStore(fs fsys.FS, parser syntax.Parser, publisher Publisher, cfg *config.Config, log *logrus.Entry) *Store {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Store{
		fs:        fs,
		parser:    parser,
		publisher: publisher,
		cfg:       cfg,
		log:       log.WithField("component", "docstate"),
		docs:      make(map[string]*Document),
		packages:  make(map[string]*Package),
	}
}

// Get resolves a locator and returns the tracked document, or nil if
// the locator is unresolvable or the document is not tracked.
func (s *Store) Get(loc string) *Document {
	path, ok := locator.Resolve(loc)
	if !ok {
		return nil
	}
	return s.docs[path]
}

// PackageByName returns the package grouping for name, or nil.
func (s *Store) PackageByName(name string) *Package {
	return s.packages[name]
}

// Open tracks loc with text as a client-owned document. Opening a
// document the client already owns fails and leaves the existing
// buffer untouched; opening over a file-backed record overwrites its
// content and locator. On success the document is refreshed and
// diagnostics are published or retracted as usual.
func (s *Store) Open(loc, text string) error {
	path, ok := locator.Resolve(loc)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnresolvableLocator, loc)
	}

	doc := s.docs[path]
	if doc == nil {
		doc = &Document{Path: path}
		s.docs[path] = doc
	} else if doc.clientOwned {
		return fmt.Errorf("%w: %s", ErrAlreadyOpen, loc)
	}

	doc.URI = loc
	doc.buf.SetContent([]byte(text))
	doc.clientOwned = true

	s.refresh(doc)
	return nil
}

// ApplyChanges applies an ordered batch of changes to a client-owned
// document, then refreshes it once. Each change is resolved against
// the buffer state the previous change produced. A range failure
// mid-batch aborts without rolling back prior changes and without
// refreshing.
func (s *Store) ApplyChanges(loc string, changes []Change) error {
	path, ok := locator.Resolve(loc)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnresolvableLocator, loc)
	}
	doc := s.docs[path]
	if doc == nil || !doc.clientOwned {
		return fmt.Errorf("%w: %s", ErrNotOpen, loc)
	}

	for _, change := range changes {
		if err := applyChange(&doc.buf, change); err != nil {
			return err
		}
	}

	s.refresh(doc)
	return nil
}

// Close releases client ownership: the buffer is freed, the syntax
// tree is closed, and still-published diagnostics are retracted. The
// record itself stays tracked so a later open reuses it.
func (s *Store) Close(loc string) error {
	path, ok := locator.Resolve(loc)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnresolvableLocator, loc)
	}
	doc := s.docs[path]
	if doc == nil || !doc.clientOwned {
		return fmt.Errorf("%w: %s", ErrNotOpen, loc)
	}

	doc.buf.Release()
	doc.releaseTree()
	doc.clientOwned = false
	s.retract(doc)
	return nil
}

// CreateFromFile reads path from disk and tracks it as a file-backed
// document. No parse and no diagnostics: the pipeline only runs for
// documents under active editing.
func (s *Store) CreateFromFile(path string) error {
	path = locator.Canonical(path)
	if existing := s.docs[path]; existing != nil && existing.clientOwned {
		// The editor copy is authoritative; keep it.
		return nil
	}
	content, err := s.fs.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	doc := &Document{
		Path: path,
		URI:  locator.Build(path),
	}
	doc.buf.SetContent(content)
	s.docs[path] = doc
	return nil
}

// Documents returns the number of tracked documents.
func (s *Store) Documents() int { return len(s.docs) }

// regroup moves doc into the package named pkgName, removing it from
// its previous grouping. Empty names leave the document ungrouped.
func (s *Store) regroup(doc *Document, pkgName string) {
	if doc.Package == pkgName {
		return
	}
	if prev := s.packages[doc.Package]; prev != nil {
		delete(prev.docs, doc.Path)
		if len(prev.docs) == 0 {
			delete(s.packages, prev.Name)
		}
	}
	doc.Package = pkgName
	if pkgName == "" {
		return
	}
	pkg := s.packages[pkgName]
	if pkg == nil {
		pkg = &Package{Name: pkgName, docs: make(map[string]*Document)}
		s.packages[pkgName] = pkg
	}
	pkg.docs[doc.Path] = doc
}
