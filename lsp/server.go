package lsp

import (
	"fmt"
	"sync"

	"bennypowers.dev/csstree/internal/config"
	"bennypowers.dev/csstree/internal/documents"
	"bennypowers.dev/csstree/internal/log"
	"bennypowers.dev/csstree/lsp/methods/lifecycle"
	"bennypowers.dev/csstree/lsp/methods/textDocument"
	"bennypowers.dev/csstree/lsp/methods/textDocument/diagnostic"
	documentcolor "bennypowers.dev/csstree/lsp/methods/textDocument/documentColor"
	documentsymbol "bennypowers.dev/csstree/lsp/methods/textDocument/documentSymbol"
	"bennypowers.dev/csstree/lsp/methods/workspace"
	"bennypowers.dev/csstree/lsp/types"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"
)

var _ types.ServerContext = (*Server)(nil)

// Server is the CSS language server. It reports syntax errors of the strict
// parser, hex colors and a rule outline for CSS, HTML and JavaScript
// documents.
type Server struct {
	documents                  *documents.Manager
	glspServer                 *server.Server
	context                    *glsp.Context
	rootURI                    string         // Workspace root URI
	rootPath                   string         // Workspace root path (file system)
	config                     *config.Config // Effective configuration
	configMu                   sync.RWMutex   // Protects every field above except documents and glspServer
	clientDiagnosticCapability *bool          // nil until initialize
	usePullDiagnostics         bool
}

// NewServer creates a new CSS language server
func NewServer() (*Server, error) {
	s := &Server{
		documents: documents.NewManager(),
		config:    config.DefaultConfig(),
	}

	protocolHandler := protocol.Handler{
		Initialize:                      method(s, "initialize", lifecycle.Initialize),
		Initialized:                     notify(s, "initialized", lifecycle.Initialized),
		Shutdown:                        noParam(s, "shutdown", lifecycle.Shutdown),
		SetTrace:                        notify(s, "$/setTrace", lifecycle.SetTrace),
		WorkspaceDidChangeConfiguration: notify(s, "workspace/didChangeConfiguration", workspace.DidChangeConfiguration),
		WorkspaceDidChangeWatchedFiles:  notify(s, "workspace/didChangeWatchedFiles", workspace.DidChangeWatchedFiles),
		TextDocumentDidOpen:             notify(s, "textDocument/didOpen", textDocument.DidOpen),
		TextDocumentDidChange:           notify(s, "textDocument/didChange", textDocument.DidChange),
		TextDocumentDidClose:            notify(s, "textDocument/didClose", textDocument.DidClose),
		TextDocumentDocumentSymbol:      method(s, "textDocument/documentSymbol", documentsymbol.DocumentSymbol),
		TextDocumentColor:               method(s, "textDocument/documentColor", documentcolor.DocumentColor),
		TextDocumentColorPresentation:   method(s, "textDocument/colorPresentation", documentcolor.ColorPresentation),
	}

	// WORKAROUND: glsp v0.2.2 implements LSP 3.16; CustomHandler adds the
	// 3.17 pull diagnostics method in front of protocol.Handler.
	customHandler := &CustomHandler{
		Handler: &protocolHandler,
		server:  s,
	}

	s.glspServer = server.NewServer(customHandler, lifecycle.ServerName, log.Enabled(log.LevelDebug))
	return s, nil
}

// RunStdio starts the LSP server using stdio transport
func (s *Server) RunStdio() error {
	return s.glspServer.RunStdio()
}

// Close releases server resources. It is safe to call Close multiple times.
func (s *Server) Close() error {
	for _, doc := range s.documents.GetAll() {
		_ = s.documents.DidClose(doc.URI())
	}
	return nil
}

// Document returns the document with the given URI
func (s *Server) Document(uri string) *documents.Document {
	return s.documents.Get(uri)
}

// DocumentManager returns the document manager
func (s *Server) DocumentManager() *documents.Manager {
	return s.documents
}

// AllDocuments returns all tracked documents
func (s *Server) AllDocuments() []*documents.Document {
	return s.documents.GetAll()
}

// RootURI returns the workspace root URI
func (s *Server) RootURI() string {
	s.configMu.RLock()
	defer s.configMu.RUnlock()
	return s.rootURI
}

// RootPath returns the workspace root path
func (s *Server) RootPath() string {
	s.configMu.RLock()
	defer s.configMu.RUnlock()
	return s.rootPath
}

// SetRootURI sets the workspace root URI
func (s *Server) SetRootURI(uri string) {
	s.configMu.Lock()
	defer s.configMu.Unlock()
	s.rootURI = uri
}

// SetRootPath sets the workspace root path
func (s *Server) SetRootPath(path string) {
	s.configMu.Lock()
	defer s.configMu.Unlock()
	s.rootPath = path
}

// GLSPContext returns the context stored by the initialized handler
func (s *Server) GLSPContext() *glsp.Context {
	s.configMu.RLock()
	defer s.configMu.RUnlock()
	return s.context
}

// SetGLSPContext sets the GLSP context
func (s *Server) SetGLSPContext(ctx *glsp.Context) {
	s.configMu.Lock()
	defer s.configMu.Unlock()
	s.context = ctx
}

// ClientDiagnosticCapability returns the detected client diagnostic
// capability, or nil before initialize.
func (s *Server) ClientDiagnosticCapability() *bool {
	s.configMu.RLock()
	defer s.configMu.RUnlock()
	return s.clientDiagnosticCapability
}

// SetClientDiagnosticCapability records whether the client declared pull
// diagnostics support in its raw initialize params.
func (s *Server) SetClientDiagnosticCapability(hasCapability bool) {
	s.configMu.Lock()
	defer s.configMu.Unlock()
	s.clientDiagnosticCapability = &hasCapability
}

// UsePullDiagnostics reports whether the client requests diagnostics via
// textDocument/diagnostic instead of receiving them.
func (s *Server) UsePullDiagnostics() bool {
	s.configMu.RLock()
	defer s.configMu.RUnlock()
	return s.usePullDiagnostics
}

// SetUsePullDiagnostics sets the diagnostics model
func (s *Server) SetUsePullDiagnostics(use bool) {
	s.configMu.Lock()
	defer s.configMu.Unlock()
	s.usePullDiagnostics = use
}

// PublishDiagnostics pushes the diagnostics of a document to the client.
// It does nothing when the client pulls diagnostics.
func (s *Server) PublishDiagnostics(context *glsp.Context, uri string) error {
	if s.UsePullDiagnostics() {
		return nil
	}

	workingContext := context
	if workingContext == nil {
		workingContext = s.GLSPContext()
	}
	if workingContext == nil || workingContext.Notify == nil {
		return fmt.Errorf("cannot publish diagnostics: no client context available")
	}

	diagnostics, err := diagnostic.GetDiagnostics(s, uri)
	if err != nil {
		return err
	}
	if diagnostics == nil {
		diagnostics = []protocol.Diagnostic{}
	}

	log.Debug("Publishing %d diagnostics for: %s", len(diagnostics), uri)
	workingContext.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
	return nil
}
