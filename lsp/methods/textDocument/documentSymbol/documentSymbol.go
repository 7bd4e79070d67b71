package documentsymbol

import (
	"fmt"

	"bennypowers.dev/csstree/internal/log"
	"bennypowers.dev/csstree/internal/parser"
	"bennypowers.dev/csstree/internal/parser/css"
	"bennypowers.dev/csstree/lsp/helpers"
	"bennypowers.dev/csstree/lsp/types"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

var symbolKinds = map[css.SymbolKind]protocol.SymbolKind{
	css.RuleSymbol:        protocol.SymbolKindClass,
	css.AtRuleSymbol:      protocol.SymbolKindNamespace,
	css.DeclarationSymbol: protocol.SymbolKindProperty,
}

// DocumentSymbol handles the textDocument/documentSymbol request. The outline
// comes from the error tolerant tree-sitter grammar, so it stays available
// while the document has syntax errors.
func DocumentSymbol(req *types.RequestContext, params *protocol.DocumentSymbolParams) (any, error) {
	uri := params.TextDocument.URI
	log.Info("DocumentSymbol requested: %s", uri)

	doc := req.Server.Document(uri)
	if doc == nil || !doc.Supported() {
		return nil, nil
	}

	outline, err := parser.Outline(doc.Content(), doc.LanguageID())
	if err != nil {
		return nil, fmt.Errorf("failed to outline %s: %w", uri, err)
	}
	return toDocumentSymbols(outline), nil
}

func toDocumentSymbols(symbols []css.Symbol) []protocol.DocumentSymbol {
	result := make([]protocol.DocumentSymbol, 0, len(symbols))
	for _, sym := range symbols {
		ds := protocol.DocumentSymbol{
			Name:           sym.Name,
			Kind:           symbolKinds[sym.Kind],
			Range:          helpers.ToProtocolRange(sym.Range),
			SelectionRange: helpers.ToProtocolRange(sym.SelectionRange),
		}
		if sym.Detail != "" {
			detail := sym.Detail
			ds.Detail = &detail
		}
		if len(sym.Children) > 0 {
			ds.Children = toDocumentSymbols(sym.Children)
		}
		result = append(result, ds)
	}
	return result
}
