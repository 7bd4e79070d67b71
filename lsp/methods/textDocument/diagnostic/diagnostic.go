package diagnostic

import (
	"fmt"

	"bennypowers.dev/csstree/internal/log"
	"bennypowers.dev/csstree/lsp/helpers"
	"bennypowers.dev/csstree/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Source names this server in diagnostics
const Source = "csstree"

// DocumentDiagnostic handles the textDocument/diagnostic request (pull
// diagnostics). It is dispatched by the server's custom handler since the
// method is not part of LSP 3.16.
func DocumentDiagnostic(req *types.RequestContext, params *DocumentDiagnosticParams) (any, error) {
	uri := params.TextDocument.URI
	log.Info("Pull diagnostics requested for: %s", uri)

	id := resultID(req.Server, uri)
	if id != "" && id == params.PreviousResultID {
		return UnchangedDocumentDiagnosticReport{
			Kind:     string(DiagnosticUnchanged),
			ResultID: id,
		}, nil
	}

	diagnostics, err := GetDiagnostics(req.Server, uri)
	if err != nil {
		return nil, err
	}
	if diagnostics == nil {
		diagnostics = []protocol.Diagnostic{}
	}

	return RelatedFullDocumentDiagnosticReport{
		Kind:     string(DiagnosticFull),
		ResultID: id,
		Items:    diagnostics,
	}, nil
}

// resultID identifies a report by the document content and the parser
// limits it was produced with, or is empty for unknown documents.
func resultID(ctx types.ServerContext, uri string) string {
	doc := ctx.Document(uri)
	if doc == nil {
		return ""
	}
	cfg := ctx.GetConfig()
	return fmt.Sprintf("%s.%d.%d", doc.Hash(), cfg.MaxTokenLength, cfg.MaxDepth)
}

// GetDiagnostics returns one error diagnostic per CSS region of the document
// that failed to parse. Documents that aren't open or carry no CSS have none.
func GetDiagnostics(ctx types.ServerContext, uri string) ([]protocol.Diagnostic, error) {
	analysis, err := ctx.DocumentManager().Analyze(uri)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", uri, err)
	}
	if analysis == nil {
		return nil, nil
	}

	diagnostics := make([]protocol.Diagnostic, 0, len(analysis.Result.Errors))
	for _, regionErr := range analysis.Result.Errors {
		severity := protocol.DiagnosticSeverityError
		source := Source
		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range:    helpers.ToProtocolRange(regionErr.Range()),
			Severity: &severity,
			Source:   &source,
			Message:  regionErr.Err.Message,
		})
	}

	log.Debug("Found %d diagnostics for %s", len(diagnostics), uri)
	return diagnostics, nil
}
