package workspace_test

import (
	"testing"

	"bennypowers.dev/csstree/lsp/methods/workspace"
	"bennypowers.dev/csstree/lsp/testutil"
	"bennypowers.dev/csstree/lsp/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestDidChangeWatchedFiles(t *testing.T) {
	tests := []struct {
		name   string
		uris   []string
		reload bool
	}{
		{"config file", []string{"file:///workspace/.csstree.yaml"}, true},
		{"yml config file", []string{"file:///workspace/.csstree.yml"}, true},
		{"package.json", []string{"file:///workspace/package.json"}, true},
		{"nested package.json", []string{"file:///workspace/node_modules/x/package.json"}, false},
		{"stylesheet", []string{"file:///workspace/main.css"}, false},
		{"mixed", []string{"file:///workspace/main.css", "file:///workspace/.csstree.yaml"}, true},
		{"no changes", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			captureLog(t)
			ctx := testutil.NewMockServerContext()
			ctx.SetRootPath("/workspace")
			ctx.SetGLSPContext(&glsp.Context{})
			require.NoError(t, ctx.DocumentManager().DidOpen("file:///workspace/main.css", "css", 1, "a {}"))

			params := &protocol.DidChangeWatchedFilesParams{}
			for _, uri := range tt.uris {
				params.Changes = append(params.Changes, protocol.FileEvent{
					URI:  uri,
					Type: protocol.FileChangeTypeChanged,
				})
			}

			require.NoError(t, workspace.DidChangeWatchedFiles(types.NewRequestContext(ctx, nil), params))
			assert.Equal(t, tt.reload, ctx.LoadConfigCalled)
			if tt.reload {
				assert.Equal(t, []string{"file:///workspace/main.css"}, ctx.Published)
			} else {
				assert.Empty(t, ctx.Published)
			}
		})
	}
}
