package lifecycle

import (
	"bennypowers.dev/csstree/internal/log"
	"bennypowers.dev/csstree/internal/uriutil"
	"bennypowers.dev/csstree/internal/version"
	"bennypowers.dev/csstree/lsp/methods/textDocument/diagnostic"
	"bennypowers.dev/csstree/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// ServerName is reported to clients in serverInfo
const ServerName = "css-language-server"

// InitializeResult is protocol.InitializeResult with untyped capabilities,
// so that LSP 3.17 fields missing from glsp can be advertised.
type InitializeResult struct {
	Capabilities map[string]any                       `json:"capabilities"`
	ServerInfo   *protocol.InitializeResultServerInfo `json:"serverInfo,omitempty"`
}

// Initialize handles the LSP initialize request
func Initialize(req *types.RequestContext, params *protocol.InitializeParams) (any, error) {
	clientName := "unknown"
	if params.ClientInfo != nil {
		clientName = params.ClientInfo.Name
	}
	log.Info("Initializing for client: %s", clientName)

	// The custom handler detects the capability from the raw params
	usePull := false
	if capable := req.Server.ClientDiagnosticCapability(); capable != nil {
		usePull = *capable
	}
	req.Server.SetUsePullDiagnostics(usePull)
	if usePull {
		log.Info("Using pull diagnostics (LSP 3.17)")
	} else {
		log.Info("Using push diagnostics")
	}

	switch {
	case params.RootURI != nil:
		req.Server.SetRootURI(*params.RootURI)
		req.Server.SetRootPath(uriutil.URIToPath(*params.RootURI))
		log.Info("Workspace root: %s", req.Server.RootPath())
	case params.RootPath != nil:
		req.Server.SetRootPath(*params.RootPath)
		req.Server.SetRootURI(uriutil.PathToURI(*params.RootPath))
		log.Info("Workspace root (from rootPath): %s", req.Server.RootPath())
	}

	syncKind := protocol.TextDocumentSyncKindIncremental
	capabilities := map[string]any{
		"textDocumentSync": protocol.TextDocumentSyncOptions{
			OpenClose: boolPtr(true),
			Change:    &syncKind,
		},
		"colorProvider":          true,
		"documentSymbolProvider": true,
	}
	if usePull {
		capabilities["diagnosticProvider"] = diagnostic.DiagnosticOptions{
			Identifier:            diagnostic.Source,
			InterFileDependencies: false,
			WorkspaceDiagnostics:  false,
		}
	}

	return InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    ServerName,
			Version: strPtr(version.GetVersion()),
		},
	}, nil
}

func boolPtr(b bool) *bool {
	return &b
}

func strPtr(s string) *string {
	return &s
}
