package diagnostic

import (
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Pull diagnostics types from LSP 3.17, which glsp v0.2.2 does not define.

// DocumentDiagnosticParams represents the parameters for textDocument/diagnostic request
type DocumentDiagnosticParams struct {
	// The text document
	TextDocument protocol.TextDocumentIdentifier `json:"textDocument"`

	// The additional identifier provided during registration
	Identifier string `json:"identifier,omitempty"`

	// The result id of a previous response if provided
	PreviousResultID string `json:"previousResultId,omitempty"`
}

// DocumentDiagnosticReportKind represents the kind of diagnostic report
type DocumentDiagnosticReportKind string

const (
	// DiagnosticFull represents a full document diagnostic report
	DiagnosticFull DocumentDiagnosticReportKind = "full"
	// DiagnosticUnchanged represents an unchanged diagnostic report
	DiagnosticUnchanged DocumentDiagnosticReportKind = "unchanged"
)

// RelatedFullDocumentDiagnosticReport represents a full diagnostic report
type RelatedFullDocumentDiagnosticReport struct {
	// The kind of diagnostic report
	Kind string `json:"kind"`

	// An optional result id
	ResultID string `json:"resultId,omitempty"`

	// The actual items
	Items []protocol.Diagnostic `json:"items"`

	// Diagnostics of related documents; always empty here
	RelatedDocuments map[string]any `json:"relatedDocuments,omitempty"`
}

// DiagnosticOptions represents server capabilities for pull diagnostics
type DiagnosticOptions struct {
	// An optional identifier under which the diagnostics are managed
	Identifier string `json:"identifier,omitempty"`

	// Documents are parsed independently of each other
	InterFileDependencies bool `json:"interFileDependencies"`

	WorkspaceDiagnostics bool `json:"workspaceDiagnostics"`
}

// UnchangedDocumentDiagnosticReport tells the client its previous report
// still applies
type UnchangedDocumentDiagnosticReport struct {
	Kind     string `json:"kind"`
	ResultID string `json:"resultId"`
}
