package docstate

import "github.com/loupelabs/loupe/internal/syntax"

// Document is the in-memory record of one tracked source file: its
// byte buffer and the parse state derived from it.
//
// A Document pointer returned by the store is valid only until the
// next mutating store operation on the same path.
type Document struct {
	// Path is the canonical filesystem path, the store key.
	Path string

	// URI is the locator string the document was last referred to by.
	URI string

	buf            Buffer
	clientOwned    bool
	hasDiagnostics bool
	tree           syntax.Tree

	// Package and Imports are best-effort metadata from the last
	// refresh; empty for file-backed documents that were never parsed.
	Package string
	Imports []string
}

// Content returns the live buffer content. The slice is invalidated by
// the next mutation.
func (d *Document) Content() []byte { return d.buf.Bytes() }

// ClientOwned reports whether an editor currently holds the
// authoritative content.
func (d *Document) ClientOwned() bool { return d.clientOwned }

// HasDiagnostics reports whether the last published diagnostics for
// this document were non-empty.
func (d *Document) HasDiagnostics() bool { return d.hasDiagnostics }

// releaseTree closes the owned syntax tree, if any. Each tree is
// closed exactly once: either here on replacement/close or never if it
// was never set.
func (d *Document) releaseTree() {
	if d.tree != nil {
		d.tree.Close()
		d.tree = nil
	}
}

// Package groups documents that declare the same package name. It holds
// non-owning references; lifetime is derivative of the store.
type Package struct {
	Name string
	docs map[string]*Document
}

// Documents returns the member documents keyed by path.
func (p *Package) Documents() map[string]*Document { return p.docs }
