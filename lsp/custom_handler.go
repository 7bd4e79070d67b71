package lsp

import (
	"encoding/json"

	"bennypowers.dev/csstree/lsp/methods/textDocument/diagnostic"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// CustomHandler wraps protocol.Handler to add LSP 3.17 methods.
//
// WORKAROUND: glsp v0.2.2 implements LSP 3.16 only, so protocol.Handler has
// no field for textDocument/diagnostic. This wrapper can go once glsp ships
// protocol_3_17.
type CustomHandler struct {
	*protocol.Handler // pointer, since the handler embeds a mutex
	server            *Server
}

// Handle implements glsp.Handler
func (h *CustomHandler) Handle(context *glsp.Context) (r any, validMethod bool, validParams bool, err error) {
	switch context.Method {
	case "initialize":
		// Record the capability, then let the regular handler initialize
		h.server.SetClientDiagnosticCapability(DetectPullDiagnosticsSupport(context.Params))

	case "textDocument/diagnostic":
		var params diagnostic.DocumentDiagnosticParams
		if err := json.Unmarshal(context.Params, &params); err != nil {
			return nil, true, false, err
		}
		handler := method(h.server, "textDocument/diagnostic", diagnostic.DocumentDiagnostic)
		result, err := handler(context, &params)
		if err != nil {
			return nil, true, true, err
		}
		return result, true, true, nil
	}

	return h.Handler.Handle(context)
}

var _ glsp.Handler = (*CustomHandler)(nil)
