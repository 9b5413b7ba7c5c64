// Package lsp serves smf documents to editors over the Language Server
// Protocol: diagnostics on every change, completion, hover, go to
// definition, document outline, semantic tokens and formatting.
package lsp

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/yaklabco/gosmf/internal/logging"
	"github.com/yaklabco/gosmf/pkg/syntax"
)

// ErrNotOpen is returned for requests on documents the client never opened.
var ErrNotOpen = errors.New("document is not open")

const methodPublishDiagnostics = "textDocument/publishDiagnostics"

// Options configure a Server.
type Options struct {
	// Name and Version are reported to the client on initialize.
	Name    string
	Version string

	// Format controls textDocument/formatting.
	Format syntax.FormatOptions

	// Debug enables protocol logging in the transport.
	Debug bool

	// Logger receives document lifecycle events at debug level. Nil uses
	// the process-wide logger.
	Logger *log.Logger
}

// Server implements the smf language server.
type Server struct {
	opts    Options
	store   *DocumentStore
	handler protocol.Handler
}

// NewServer creates a language server with every handler registered.
func NewServer(opts Options) *Server {
	if opts.Name == "" {
		opts.Name = "gosmf"
	}
	if opts.Logger == nil {
		opts.Logger = logging.Default()
	}
	srv := &Server{opts: opts, store: NewDocumentStore()}

	srv.handler = protocol.Handler{
		Initialize:                     srv.initialize,
		Initialized:                    srv.initialized,
		Shutdown:                       srv.shutdown,
		SetTrace:                       srv.setTrace,
		TextDocumentDidOpen:            srv.didOpen,
		TextDocumentDidChange:          srv.didChange,
		TextDocumentDidSave:            srv.didSave,
		TextDocumentDidClose:           srv.didClose,
		TextDocumentCompletion:         srv.completion,
		TextDocumentHover:              srv.hover,
		TextDocumentDefinition:         srv.definition,
		TextDocumentDocumentSymbol:     srv.documentSymbol,
		TextDocumentFormatting:         srv.formatting,
		TextDocumentSemanticTokensFull: srv.semanticTokensFull,
	}

	return srv
}

// Store returns the open document store.
func (srv *Server) Store() *DocumentStore {
	return srv.store
}

// RunStdio serves the protocol on stdin and stdout until the client exits.
func (srv *Server) RunStdio() error {
	lspServer := server.NewServer(&srv.handler, srv.opts.Name, srv.opts.Debug)
	if err := lspServer.RunStdio(); err != nil {
		return fmt.Errorf("language server: %w", err)
	}
	return nil
}

// Capabilities returns what the server announces on initialize.
func (srv *Server) Capabilities() protocol.ServerCapabilities {
	capabilities := srv.handler.CreateServerCapabilities()
	capabilities.TextDocumentSync = protocol.TextDocumentSyncKindFull
	capabilities.SemanticTokensProvider = protocol.SemanticTokensOptions{
		Legend: protocol.SemanticTokensLegend{
			TokenTypes:     semanticTokenTypes,
			TokenModifiers: []string{},
		},
		Full: true,
	}
	return capabilities
}

func (srv *Server) initialize(_ *glsp.Context, _ *protocol.InitializeParams) (any, error) {
	version := srv.opts.Version

	return protocol.InitializeResult{
		Capabilities: srv.Capabilities(),
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    srv.opts.Name,
			Version: &version,
		},
	}, nil
}

func (srv *Server) initialized(_ *glsp.Context, _ *protocol.InitializedParams) error {
	return nil
}

func (srv *Server) shutdown(_ *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)

	return nil
}

func (srv *Server) setTrace(_ *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)

	return nil
}

func (srv *Server) didOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	item := params.TextDocument
	doc := srv.store.Open(item.URI, item.LanguageID, item.Version, item.Text)
	srv.opts.Logger.Debug("document opened",
		logging.FieldURI, item.URI,
		logging.FieldDocuments, srv.store.Len(),
	)
	srv.publishDiagnostics(ctx, doc)

	return nil
}

func (srv *Server) didChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI

	prev, ok := srv.store.Get(uri)
	if !ok {
		srv.opts.Logger.Debug("change for unknown document",
			logging.FieldMethod, "textDocument/didChange",
			logging.FieldURI, uri,
		)
		return fmt.Errorf("%w: %s", ErrNotOpen, uri)
	}

	content := prev.Content
	for _, change := range params.ContentChanges {
		content = applyContentChange(content, change)
	}

	doc, ok := srv.store.Update(uri, params.TextDocument.Version, content)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotOpen, uri)
	}
	srv.publishDiagnostics(ctx, doc)

	return nil
}

// applyContentChange applies one change event. Whole-document and ranged
// events are both accepted even though the server asks for full sync.
func applyContentChange(content string, change any) string {
	switch event := change.(type) {
	case protocol.TextDocumentContentChangeEventWhole:
		return event.Text
	case protocol.TextDocumentContentChangeEvent:
		if event.Range == nil {
			return event.Text
		}
		return applyChange(content, *event.Range, event.Text)
	case map[string]any:
		if text, ok := event["text"].(string); ok {
			return text
		}
	}
	return content
}

func (srv *Server) didSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if doc, ok := srv.store.Get(params.TextDocument.URI); ok {
		srv.publishDiagnostics(ctx, doc)
	}

	return nil
}

func (srv *Server) didClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI
	srv.store.Delete(uri)
	srv.opts.Logger.Debug("document closed",
		logging.FieldURI, uri,
		logging.FieldDocuments, srv.store.Len(),
	)

	ctx.Notify(methodPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: []protocol.Diagnostic{},
	})

	return nil
}

func (srv *Server) completion(_ *glsp.Context, params *protocol.CompletionParams) (any, error) {
	doc, ok := srv.store.Get(params.TextDocument.URI)
	if !ok {
		return nil, nil //nolint:nilnil // LSP expects null when no document is open.
	}

	return protocol.CompletionList{
		IsIncomplete: false,
		Items:        Completions(doc, params.Position),
	}, nil
}

func (srv *Server) hover(_ *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc, ok := srv.store.Get(params.TextDocument.URI)
	if !ok {
		return nil, nil //nolint:nilnil // LSP expects null hover when no document is open.
	}

	hover, _ := Hover(doc, params.Position)
	return hover, nil
}

func (srv *Server) definition(_ *glsp.Context, params *protocol.DefinitionParams) (any, error) {
	doc, ok := srv.store.Get(params.TextDocument.URI)
	if !ok {
		return nil, nil //nolint:nilnil // LSP expects null when no document is open.
	}

	location, ok := Definition(doc, params.Position)
	if !ok {
		return nil, nil //nolint:nilnil // LSP expects null when nothing resolves.
	}
	return location, nil
}

func (srv *Server) documentSymbol(_ *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	doc, ok := srv.store.Get(params.TextDocument.URI)
	if !ok {
		return []protocol.DocumentSymbol{}, nil
	}

	return Outline(doc), nil
}

func (srv *Server) formatting(_ *glsp.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	doc, ok := srv.store.Get(params.TextDocument.URI)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotOpen, params.TextDocument.URI)
	}

	edits, err := Format(doc, srv.opts.Format)
	if errors.Is(err, ErrNotFormattable) {
		return []protocol.TextEdit{}, nil
	}
	return edits, err
}

func (srv *Server) semanticTokensFull(_ *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	doc, ok := srv.store.Get(params.TextDocument.URI)
	if !ok {
		return &protocol.SemanticTokens{Data: []protocol.UInteger{}}, nil
	}

	return &protocol.SemanticTokens{Data: SemanticTokens(doc)}, nil
}

func (srv *Server) publishDiagnostics(ctx *glsp.Context, doc *Document) {
	ctx.Notify(methodPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         doc.URI,
		Diagnostics: Diagnostics(doc),
	})
}
