// Package lspserver implements the loupe language server: document
// synchronization over LSP with syntax diagnostics on every edit.
//
// The server is a thin dispatcher around the document-state core in
// internal/docstate; it owns the JSON-RPC connection and acts as the
// core's diagnostics transport.
//
// Transport: stdio (--stdio).
// Protocol: LSP 3.16 types via go.lsp.dev/protocol, JSON-RPC via go.lsp.dev/jsonrpc2.
package lspserver

import (
	"context"
	"encoding/json"
	"os"

	"github.com/sirupsen/logrus"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"

	"github.com/loupelabs/loupe/internal/config"
	"github.com/loupelabs/loupe/internal/docstate"
	"github.com/loupelabs/loupe/internal/fsys"
	"github.com/loupelabs/loupe/internal/syntax"
	"github.com/loupelabs/loupe/internal/version"
)

const serverName = "loupe"

// Server is the loupe LSP server.
type Server struct {
	conn  jsonrpc2.Conn
	store *docstate.Store
	cfg   *config.Config
	log   *logrus.Entry
}

// New creates a server with a fresh document store wired to the real
// filesystem and the tree-sitter Go parser.
func New(cfg *config.Config, log *logrus.Entry) *Server {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	s := &Server{
		cfg: cfg,
		log: log.WithField("component", "lsp"),
	}
	s.store = docstate.NewStore(fsys.OS{}, syntax.NewGoParser(), s, cfg, log)
	return s
}

// RunStdio starts the server on stdin/stdout. It blocks until the
// connection is closed or the context is cancelled.
func (s *Server) RunStdio(ctx context.Context) error {
	stream := jsonrpc2.NewStream(stdioReadWriteCloser{})
	return s.Serve(ctx, jsonrpc2.NewConn(stream))
}

// Serve attaches the server to an established connection and blocks
// until it closes. The connection doubles as the diagnostics transport.
func (s *Server) Serve(ctx context.Context, conn jsonrpc2.Conn) error {
	s.conn = conn
	conn.Go(ctx, jsonrpc2.ReplyHandler(s.handle))

	select {
	case <-ctx.Done():
		return conn.Close()
	case <-conn.Done():
		return conn.Err()
	}
}

// handle dispatches incoming JSON-RPC messages. Document mutations run
// on the connection goroutine so operations stay serialized, which the
// store's single-threaded contract requires.
func (s *Server) handle(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	switch req.Method() {
	// Lifecycle
	case protocol.MethodInitialize:
		return s.handleInitialize(ctx, reply, req)
	case protocol.MethodInitialized:
		return reply(ctx, nil, nil)
	case protocol.MethodShutdown:
		return reply(ctx, nil, nil)
	case protocol.MethodExit:
		return s.conn.Close()
	case protocol.MethodSetTrace:
		return reply(ctx, nil, nil)

	// Document sync
	case protocol.MethodTextDocumentDidOpen:
		return s.handleDidOpen(ctx, reply, req)
	case protocol.MethodTextDocumentDidChange:
		return s.handleDidChange(ctx, reply, req)
	case protocol.MethodTextDocumentDidSave:
		return s.handleDidSave(ctx, reply, req)
	case protocol.MethodTextDocumentDidClose:
		return s.handleDidClose(ctx, reply, req)

	// Workspace
	case protocol.MethodWorkspaceDidChangeConfiguration:
		return reply(ctx, nil, nil)

	default:
		return jsonrpc2.MethodNotFoundHandler(ctx, reply, req)
	}
}

// handleInitialize answers with capabilities and preloads the
// workspace root through the loader (no diagnostics for preloaded
// files).
func (s *Server) handleInitialize(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.InitializeParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return replyParseError(ctx, reply, err)
	}

	s.log.WithField("client", clientInfoString(params.ClientInfo)).Info("initialize")

	if root := string(params.RootURI); root != "" && config.WorkspaceScanEnabled(s.cfg.WorkspaceScan) {
		s.preloadWorkspace(root)
	}

	result := protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: protocol.TextDocumentSyncOptions{
				OpenClose: true,
				Change:    protocol.TextDocumentSyncKindIncremental,
				Save: &protocol.SaveOptions{
					IncludeText: true,
				},
			},
		},
		ServerInfo: &protocol.ServerInfo{
			Name:    serverName,
			Version: version.Version(),
		},
	}

	return reply(ctx, result, nil)
}

// handleDidOpen tracks the document and publishes its first
// diagnostics.
func (s *Server) handleDidOpen(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidOpenTextDocumentParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return replyParseError(ctx, reply, err)
	}

	uri := string(params.TextDocument.URI)
	if err := s.store.Open(uri, params.TextDocument.Text); err != nil {
		s.log.WithError(err).WithField("uri", uri).Warn("didOpen rejected")
	}
	return reply(ctx, nil, nil)
}

// contentChangeEvent mirrors the wire shape with an optional range.
// go.lsp.dev/protocol uses a value Range, which cannot distinguish a
// full-text change from an edit at (0,0)-(0,0), so didChange params
// are decoded locally.
type contentChangeEvent struct {
	Range       *protocol.Range `json:"range,omitempty"`
	RangeLength uint32          `json:"rangeLength,omitempty"`
	Text        string          `json:"text"`
}

type didChangeParams struct {
	TextDocument   protocol.VersionedTextDocumentIdentifier `json:"textDocument"`
	ContentChanges []contentChangeEvent                     `json:"contentChanges"`
}

// handleDidChange applies the ordered change batch and re-publishes
// diagnostics.
func (s *Server) handleDidChange(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params didChangeParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return replyParseError(ctx, reply, err)
	}

	uri := string(params.TextDocument.URI)
	changes := make([]docstate.Change, 0, len(params.ContentChanges))
	for _, change := range params.ContentChanges {
		changes = append(changes, toChange(change))
	}

	if err := s.store.ApplyChanges(uri, changes); err != nil {
		s.log.WithError(err).WithField("uri", uri).Warn("didChange rejected")
	}
	return reply(ctx, nil, nil)
}

// handleDidSave re-syncs from the included text, when the client sends
// it, as a single full-text change.
func (s *Server) handleDidSave(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidSaveTextDocumentParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return replyParseError(ctx, reply, err)
	}

	if params.Text == "" {
		return reply(ctx, nil, nil)
	}
	uri := string(params.TextDocument.URI)
	if err := s.store.ApplyChanges(uri, []docstate.Change{{Text: params.Text}}); err != nil {
		s.log.WithError(err).WithField("uri", uri).Warn("didSave rejected")
	}
	return reply(ctx, nil, nil)
}

// handleDidClose releases client ownership; the store retracts any
// remaining diagnostics itself.
func (s *Server) handleDidClose(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params protocol.DidCloseTextDocumentParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return replyParseError(ctx, reply, err)
	}

	uri := string(params.TextDocument.URI)
	if err := s.store.Close(uri); err != nil {
		s.log.WithError(err).WithField("uri", uri).Warn("didClose rejected")
	}
	return reply(ctx, nil, nil)
}

// toChange converts a wire change event to a store change.
func toChange(c contentChangeEvent) docstate.Change {
	if c.Range == nil {
		return docstate.Change{Text: c.Text}
	}
	return docstate.Change{
		Range: &docstate.Range{
			Start: docstate.Position{Line: c.Range.Start.Line, Character: c.Range.Start.Character},
			End:   docstate.Position{Line: c.Range.End.Line, Character: c.Range.End.Character},
		},
		Text: c.Text,
	}
}

// replyParseError sends a JSON-RPC parse error.
func replyParseError(ctx context.Context, reply jsonrpc2.Replier, err error) error {
	return reply(ctx, nil, jsonrpc2.Errorf(jsonrpc2.ParseError, "invalid params: %v", err))
}

// clientInfoString formats client info for logging.
func clientInfoString(info *protocol.ClientInfo) string {
	if info == nil {
		return "unknown"
	}
	if info.Version != "" {
		return info.Name + " " + info.Version
	}
	return info.Name
}

// stdioReadWriteCloser wraps stdin/stdout as an io.ReadWriteCloser for JSON-RPC.
type stdioReadWriteCloser struct{}

func (stdioReadWriteCloser) Read(p []byte) (int, error)  { return os.Stdin.Read(p) }
func (stdioReadWriteCloser) Write(p []byte) (int, error) { return os.Stdout.Write(p) }
func (stdioReadWriteCloser) Close() error                { return nil }
