package lsp

import (
	"encoding/json"
)

// DetectPullDiagnosticsSupport reports whether the raw initialize params
// declare the LSP 3.17 textDocument.diagnostic client capability. glsp's
// 3.16 structs drop that field, so it is read from the JSON directly.
// Malformed params count as no support, which selects push diagnostics.
func DetectPullDiagnosticsSupport(rawParams json.RawMessage) bool {
	var initParams struct {
		Capabilities struct {
			TextDocument *struct {
				Diagnostic *json.RawMessage `json:"diagnostic"`
			} `json:"textDocument"`
		} `json:"capabilities"`
	}
	if err := json.Unmarshal(rawParams, &initParams); err != nil {
		return false
	}

	textDocument := initParams.Capabilities.TextDocument
	return textDocument != nil && textDocument.Diagnostic != nil
}
