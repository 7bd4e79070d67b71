package lifecycle

import (
	"bennypowers.dev/csstree/internal/log"
	"bennypowers.dev/csstree/lsp/methods/workspace"
	"bennypowers.dev/csstree/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Initialized handles the LSP initialized notification. Configuration
// problems are reported to the client but never fail initialization.
func Initialized(req *types.RequestContext, params *protocol.InitializedParams) error {
	log.Info("Server initialized")

	// Kept for publishing diagnostics outside of a request
	req.Server.SetGLSPContext(req.GLSP)

	if err := req.Server.LoadConfig(); err != nil {
		workspace.LogWarning(req.GLSP, "Failed to load configuration: %v", err)
	}

	if err := req.Server.RegisterFileWatchers(req.GLSP); err != nil {
		workspace.LogWarning(req.GLSP, "Failed to register file watchers: %v", err)
	}

	return nil
}
