package types

import (
	"github.com/tliron/glsp"
)

// RequestContext carries the data of one LSP method call: the server, the
// GLSP protocol context and the non-fatal warnings raised while handling it.
type RequestContext struct {
	Server   ServerContext // documents, configuration, workspace
	GLSP     *glsp.Context // Notify and Call
	warnings []error
}

// NewRequestContext creates a new request context
func NewRequestContext(server ServerContext, glsp *glsp.Context) *RequestContext {
	return &RequestContext{
		Server: server,
		GLSP:   glsp,
	}
}

// AddWarning records a non-fatal problem. Warnings are logged by the
// middleware once the handler has returned successfully.
func (r *RequestContext) AddWarning(err error) {
	if err != nil {
		r.warnings = append(r.warnings, err)
	}
}

// Warnings returns the warnings collected during this request, or nil
func (r *RequestContext) Warnings() []error {
	return r.warnings
}

// HasWarnings reports whether any warnings were collected
func (r *RequestContext) HasWarnings() bool {
	return len(r.warnings) > 0
}
