package documentcolor_test

import (
	"testing"

	documentcolor "bennypowers.dev/csstree/lsp/methods/textDocument/documentColor"
	"bennypowers.dev/csstree/lsp/testutil"
	"bennypowers.dev/csstree/lsp/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func rng(startLine, startChar, endLine, endChar uint32) protocol.Range {
	return protocol.Range{
		Start: protocol.Position{Line: startLine, Character: startChar},
		End:   protocol.Position{Line: endLine, Character: endChar},
	}
}

func open(t *testing.T, uri, language, content string) *types.RequestContext {
	t.Helper()
	ctx := testutil.NewMockServerContext()
	require.NoError(t, ctx.DocumentManager().DidOpen(uri, language, 1, content))
	return types.NewRequestContext(ctx, nil)
}

func documentColors(t *testing.T, req *types.RequestContext, uri string) []protocol.ColorInformation {
	t.Helper()
	result, err := documentcolor.DocumentColor(req, &protocol.DocumentColorParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)
	return result
}

func TestDocumentColor(t *testing.T) {
	uri := "file:///test.css"
	req := open(t, uri, "css", "a { color: #f00; }\nb { border: 1px solid #00FF00; }")

	result := documentColors(t, req, uri)
	require.Len(t, result, 2)

	assert.Equal(t, rng(0, 11, 0, 15), result[0].Range)
	assert.Equal(t, protocol.Color{Red: 1, Green: 0, Blue: 0, Alpha: 1}, result[0].Color)

	assert.Equal(t, rng(1, 22, 1, 29), result[1].Range)
	assert.Equal(t, protocol.Color{Red: 0, Green: 1, Blue: 0, Alpha: 1}, result[1].Color)
	assert.False(t, req.HasWarnings())
}

func TestDocumentColorEmbedded(t *testing.T) {
	uri := "file:///index.html"
	req := open(t, uri, "html", "<style>\n  a { color: #00f }\n</style>\n<p style=\"color: #fff\">x</p>")

	result := documentColors(t, req, uri)
	require.Len(t, result, 2)
	assert.Equal(t, rng(1, 13, 1, 17), result[0].Range)
	assert.Equal(t, protocol.Decimal(1), result[0].Color.Blue)
	assert.Equal(t, rng(3, 17, 3, 21), result[1].Range)
}

func TestDocumentColorNoColors(t *testing.T) {
	uri := "file:///plain.css"
	req := open(t, uri, "css", "a { color: red; margin: 0 }")

	result := documentColors(t, req, uri)
	assert.NotNil(t, result)
	assert.Empty(t, result)
}

func TestDocumentColorUnsupported(t *testing.T) {
	t.Run("language", func(t *testing.T) {
		uri := "file:///test.json"
		req := open(t, uri, "json", `{"color": "#ff0000"}`)
		assert.Nil(t, documentColors(t, req, uri))
	})

	t.Run("not open", func(t *testing.T) {
		req := types.NewRequestContext(testutil.NewMockServerContext(), nil)
		assert.Nil(t, documentColors(t, req, "file:///missing.css"))
	})
}

func TestColorPresentation(t *testing.T) {
	uri := "file:///test.css"
	req := open(t, uri, "css", "a { color: #F00; }")

	labels := func(t *testing.T, c protocol.Color, r protocol.Range) []string {
		t.Helper()
		result, err := documentcolor.ColorPresentation(req, &protocol.ColorPresentationParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: uri},
			Color:        c,
			Range:        r,
		})
		require.NoError(t, err)
		var out []string
		for _, p := range result {
			require.NotNil(t, p.TextEdit)
			assert.Equal(t, r, p.TextEdit.Range)
			assert.Equal(t, p.Label, p.TextEdit.NewText)
			out = append(out, p.Label)
		}
		return out
	}

	red := protocol.Color{Red: 1, Alpha: 1}

	t.Run("literal as written comes first", func(t *testing.T) {
		assert.Equal(t, []string{
			"#F00",
			"#ff0000",
			"rgb(255, 0, 0)",
			"hsl(0, 100%, 50%)",
		}, labels(t, red, rng(0, 11, 0, 15)))
	})

	t.Run("picked a different color", func(t *testing.T) {
		blue := protocol.Color{Blue: 1, Alpha: 1}
		assert.Equal(t, []string{
			"#0000ff",
			"rgb(0, 0, 255)",
			"hsl(240, 100%, 50%)",
		}, labels(t, blue, rng(0, 11, 0, 15)))
	})

	t.Run("range without a literal", func(t *testing.T) {
		assert.Equal(t, []string{
			"#ff0000",
			"rgb(255, 0, 0)",
			"hsl(0, 100%, 50%)",
		}, labels(t, red, rng(0, 0, 0, 1)))
	})
}
