// Package syntax defines the parser contract consumed by the document
// store and provides a tree-sitter backed implementation for Go source.
//
// Parsers return their error list as part of the parse result; there is
// no shared error channel, so parsing is reentrant and safe to exercise
// from parallel tests.
package syntax

// Error is one parser-reported syntax problem. Lines and columns are
// 1-based and 0-based respectively, matching tree-sitter points shifted
// to the convention diagnostics use.
type Error struct {
	Message string
	Line    int
	Column  int
	File    string
	Offset  int
}

// Tree is an owned parse result. Close releases its resources and must
// be called exactly once.
type Tree interface {
	Close()
}

// Result carries everything a single parse produced: the owned tree,
// best-effort source metadata, and the collected syntax errors.
type Result struct {
	Tree    Tree
	Package string
	Imports []string
	Errors  []Error
}

// Parser parses one source buffer at a time.
type Parser interface {
	Parse(src []byte, path string) (*Result, error)
}
