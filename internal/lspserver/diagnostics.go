package lspserver

import (
	"context"

	"go.lsp.dev/protocol"

	"github.com/loupelabs/loupe/internal/locator"
)

// PublishDiagnostics implements docstate.Publisher over the JSON-RPC
// connection. Fire-and-forget: a transport failure is logged, never
// surfaced to the triggering operation.
func (s *Server) PublishDiagnostics(uri string, diagnostics []protocol.Diagnostic) {
	if err := s.conn.Notify(context.Background(), protocol.MethodTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         protocol.DocumentURI(uri),
		Diagnostics: diagnostics,
	}); err != nil {
		s.log.WithError(err).WithField("uri", uri).Warn("failed to publish diagnostics")
	}
}

// preloadWorkspace bulk-loads the workspace root directory into the
// store. Preloaded files are tracked but not diagnosed.
func (s *Server) preloadWorkspace(rootURI string) {
	path, ok := locator.Resolve(rootURI)
	if !ok {
		s.log.WithField("root", rootURI).Warn("unresolvable workspace root")
		return
	}
	if err := s.store.LoadDirectory(path); err != nil {
		s.log.WithError(err).WithField("root", path).Warn("workspace preload failed")
	}
}
