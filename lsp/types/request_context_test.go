package types_test

import (
	"errors"
	"testing"

	"bennypowers.dev/csstree/lsp/testutil"
	"bennypowers.dev/csstree/lsp/types"
	"github.com/stretchr/testify/assert"
	"github.com/tliron/glsp"
)

func TestRequestContextWarnings(t *testing.T) {
	req := types.NewRequestContext(testutil.NewMockServerContext(), &glsp.Context{Method: "test"})

	assert.False(t, req.HasWarnings())
	assert.Nil(t, req.Warnings())

	first := errors.New("warning 1")
	second := errors.New("warning 2")
	req.AddWarning(first)
	req.AddWarning(nil)
	req.AddWarning(second)

	assert.True(t, req.HasWarnings())
	assert.Equal(t, []error{first, second}, req.Warnings())
}

func TestRequestContextAccess(t *testing.T) {
	server := testutil.NewMockServerContext()
	glspCtx := &glsp.Context{Method: "textDocument/documentColor"}
	req := types.NewRequestContext(server, glspCtx)

	assert.Same(t, server, req.Server)
	assert.Same(t, glspCtx, req.GLSP)
	assert.Equal(t, "textDocument/documentColor", req.GLSP.Method)
}
