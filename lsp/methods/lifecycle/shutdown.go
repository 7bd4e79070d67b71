package lifecycle

import (
	"bennypowers.dev/csstree/internal/log"
	"bennypowers.dev/csstree/lsp/types"
)

// Shutdown handles the LSP shutdown request
func Shutdown(req *types.RequestContext) error {
	log.Info("Server shutting down")
	return nil
}
