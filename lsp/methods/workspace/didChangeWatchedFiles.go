package workspace

import (
	"bennypowers.dev/csstree/internal/log"
	"bennypowers.dev/csstree/internal/uriutil"
	"bennypowers.dev/csstree/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// DidChangeWatchedFiles handles the workspace/didChangeWatchedFiles
// notification. A change to a configuration file reloads the configuration
// and republishes diagnostics, since parser limits may have changed.
func DidChangeWatchedFiles(req *types.RequestContext, params *protocol.DidChangeWatchedFilesParams) error {
	log.Info("Watched files changed: %d files", len(params.Changes))

	needsReload := false
	for _, change := range params.Changes {
		path := uriutil.URIToPath(change.URI)
		log.Debug("File change: %s (type: %d)", path, change.Type)
		if req.Server.IsConfigFile(path) {
			needsReload = true
		}
	}

	if !needsReload {
		return nil
	}

	log.Info("Reloading configuration")
	if err := req.Server.LoadConfig(); err != nil {
		LogWarning(req.GLSP, "Failed to reload configuration: %v", err)
	}
	republishDiagnostics(req)
	return nil
}
