package workspace_test

import (
	"errors"
	"testing"

	"bennypowers.dev/csstree/lsp/methods/workspace"
	"bennypowers.dev/csstree/lsp/testutil"
	"bennypowers.dev/csstree/lsp/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestDidChangeConfiguration(t *testing.T) {
	tests := []struct {
		name     string
		settings any
		depth    int
		format   string
	}{
		{
			name:   "no settings",
			depth:  0,
			format: "yaml",
		},
		{
			name:     "other servers only",
			settings: map[string]any{"cssLanguageServer": map[string]any{"maxDepth": 3}},
			format:   "yaml",
		},
		{
			name: "overrides",
			settings: map[string]any{
				"csstree": map[string]any{"maxDepth": 12, "format": "json"},
			},
			depth:  12,
			format: "json",
		},
		{
			name:     "invalid settings are ignored",
			settings: map[string]any{"csstree": map[string]any{"maxDepth": -1}},
			format:   "yaml",
		},
		{
			name:     "malformed settings are ignored",
			settings: []any{"csstree"},
			format:   "yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			captureLog(t)
			ctx := testutil.NewMockServerContext()
			req := types.NewRequestContext(ctx, nil)

			err := workspace.DidChangeConfiguration(req, &protocol.DidChangeConfigurationParams{
				Settings: tt.settings,
			})
			require.NoError(t, err)

			assert.True(t, ctx.LoadConfigCalled)
			assert.Equal(t, tt.depth, ctx.GetConfig().MaxDepth)
			assert.Equal(t, tt.format, ctx.GetConfig().Format)
		})
	}
}

func TestDidChangeConfigurationRepublishes(t *testing.T) {
	captureLog(t)
	ctx := testutil.NewMockServerContext()
	ctx.SetGLSPContext(&glsp.Context{})
	require.NoError(t, ctx.DocumentManager().DidOpen("file:///a.css", "css", 1, "a {}"))
	require.NoError(t, ctx.DocumentManager().DidOpen("file:///b.html", "html", 1, "<p></p>"))

	ctx.LoadConfigFunc = func() error { return errors.New("broken yaml") }
	req := types.NewRequestContext(ctx, nil)
	require.NoError(t, workspace.DidChangeConfiguration(req, &protocol.DidChangeConfigurationParams{}))

	assert.ElementsMatch(t, []string{"file:///a.css", "file:///b.html"}, ctx.Published)
}
