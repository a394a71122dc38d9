package docstate

import (
	"go.lsp.dev/protocol"

	"github.com/loupelabs/loupe/internal/syntax"
)

// Publisher is the notification transport for diagnostics. Sends are
// fire-and-forget; the store guarantees their order equals the order
// refreshes occurred, and the editor treats the latest notification
// per document as authoritative.
type Publisher interface {
	PublishDiagnostics(uri string, diagnostics []protocol.Diagnostic)
}

const diagnosticSource = "loupe"

// refresh re-parses a document, swaps its syntax tree (closing the
// previous one), updates derived metadata, and drives the diagnostics
// state machine:
//
//	errors present          → publish, document is dirty
//	no errors, was dirty    → publish empty (retraction), clean
//	no errors, was clean    → nothing
func (s *Store) refresh(doc *Document) {
	res, err := s.parser.Parse(doc.buf.Bytes(), doc.Path)
	if err != nil {
		// Parser infrastructure failure, not a syntax problem. Keep
		// the previous tree and diagnostics state.
		s.log.WithError(err).WithField("path", doc.Path).Warn("parse failed")
		return
	}

	doc.releaseTree()
	doc.tree = res.Tree
	doc.Imports = res.Imports
	s.regroup(doc, res.Package)

	if len(res.Errors) > 0 {
		s.publisher.PublishDiagnostics(doc.URI, toDiagnostics(res.Errors))
		doc.hasDiagnostics = true
		return
	}
	s.retract(doc)
}

// retract publishes an empty diagnostics list if the document still
// has published diagnostics. Idempotent: a clean document sends
// nothing.
func (s *Store) retract(doc *Document) {
	if !doc.hasDiagnostics {
		return
	}
	s.publisher.PublishDiagnostics(doc.URI, []protocol.Diagnostic{})
	doc.hasDiagnostics = false
}

// toDiagnostics maps parser errors to wire diagnostics. Each entry
// spans the reported line only: parser lines are 1-based, the wire is
// 0-based, so the span is [{line-1, 0}, {line, 0}).
func toDiagnostics(errs []syntax.Error) []protocol.Diagnostic {
	diagnostics := make([]protocol.Diagnostic, 0, len(errs))
	for _, e := range errs {
		line := uint32(0)
		if e.Line > 0 {
			line = uint32(e.Line - 1)
		}
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{Line: line, Character: 0},
				End:   protocol.Position{Line: line + 1, Character: 0},
			},
			Severity: protocol.DiagnosticSeverityError,
			Source:   diagnosticSource,
			Code:     "syntax",
			Message:  e.Message,
		})
	}
	return diagnostics
}
