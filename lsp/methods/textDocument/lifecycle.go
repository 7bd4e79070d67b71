package textDocument

import (
	"bennypowers.dev/csstree/internal/documents"
	"bennypowers.dev/csstree/internal/log"
	"bennypowers.dev/csstree/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// DidOpen handles the textDocument/didOpen notification
func DidOpen(req *types.RequestContext, params *protocol.DidOpenTextDocumentParams) error {
	doc := params.TextDocument
	log.Info("Document opened: %s (language: %s, version: %d)", doc.URI, doc.LanguageID, int(doc.Version))

	if err := req.Server.DocumentManager().DidOpen(doc.URI, doc.LanguageID, int(doc.Version), doc.Text); err != nil {
		return err
	}
	publish(req, doc.URI)
	return nil
}

// DidChange handles the textDocument/didChange notification. Both ranged
// and whole-document change events are applied in order.
func DidChange(req *types.RequestContext, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI
	version := int(params.TextDocument.Version)
	log.Debug("Document changed: %s (version: %d, changes: %d)", uri, version, len(params.ContentChanges))

	changes, err := documents.ContentChanges(params.ContentChanges)
	if err != nil {
		return err
	}
	if err := req.Server.DocumentManager().DidChange(uri, version, changes); err != nil {
		return err
	}
	publish(req, uri)
	return nil
}

// DidClose handles the textDocument/didClose notification. Pushed
// diagnostics of the document are cleared.
func DidClose(req *types.RequestContext, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI
	log.Info("Document closed: %s", uri)

	if err := req.Server.DocumentManager().DidClose(uri); err != nil {
		return err
	}

	if req.Server.UsePullDiagnostics() {
		return nil
	}
	if glspCtx := req.Server.GLSPContext(); glspCtx != nil && glspCtx.Notify != nil {
		glspCtx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
			URI:         uri,
			Diagnostics: []protocol.Diagnostic{},
		})
	}
	return nil
}

// publish pushes diagnostics unless the client pulls them (LSP 3.17)
func publish(req *types.RequestContext, uri string) {
	if req.Server.UsePullDiagnostics() {
		return
	}
	glspCtx := req.Server.GLSPContext()
	if glspCtx == nil {
		return
	}
	if err := req.Server.PublishDiagnostics(glspCtx, uri); err != nil {
		log.Warn("Failed to publish diagnostics for %s: %v", uri, err)
	}
}
