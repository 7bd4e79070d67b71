package css_test

import (
	"testing"

	"bennypowers.dev/csstree/internal/parser/css"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func outline(t *testing.T, source string) []css.Symbol {
	t.Helper()
	p := css.AcquireParser()
	defer css.ReleaseParser(p)
	symbols, err := p.Outline(source)
	require.NoError(t, err)
	return symbols
}

func TestOutlineRules(t *testing.T) {
	symbols := outline(t, `.button,
a:hover {
  color: #0000ff;
  margin: 0 auto;
}

p { display: block; }`)

	require.Len(t, symbols, 2)

	button := symbols[0]
	assert.Equal(t, ".button, a:hover", button.Name)
	assert.Equal(t, css.RuleSymbol, button.Kind)
	assert.Equal(t, css.Position{Line: 0, Character: 0}, button.Range.Start)
	assert.Equal(t, css.Position{Line: 4, Character: 1}, button.Range.End)
	assert.Equal(t, uint32(1), button.SelectionRange.End.Line)

	require.Len(t, button.Children, 2)
	assert.Equal(t, "color", button.Children[0].Name)
	assert.Equal(t, "#0000ff", button.Children[0].Detail)
	assert.Equal(t, css.DeclarationSymbol, button.Children[0].Kind)
	assert.Equal(t, "margin", button.Children[1].Name)
	assert.Equal(t, "0 auto", button.Children[1].Detail)

	assert.Equal(t, "p", symbols[1].Name)
	assert.Equal(t, uint32(6), symbols[1].Range.Start.Line)
}

func TestOutlineAtRules(t *testing.T) {
	symbols := outline(t, `@import url("base.css");
@media screen and (min-width: 600px) {
  a { color: red; }
}
@keyframes spin {
  from { rotate: 0deg; }
  to { rotate: 360deg; }
}`)

	require.Len(t, symbols, 3)

	assert.Equal(t, css.AtRuleSymbol, symbols[0].Kind)
	assert.Equal(t, `@import url("base.css")`, symbols[0].Name)
	assert.Empty(t, symbols[0].Children)

	media := symbols[1]
	assert.Equal(t, css.AtRuleSymbol, media.Kind)
	assert.Equal(t, "@media screen and (min-width: 600px)", media.Name)
	require.Len(t, media.Children, 1)
	assert.Equal(t, "a", media.Children[0].Name)

	keyframes := symbols[2]
	assert.Equal(t, "@keyframes spin", keyframes.Name)
	require.Len(t, keyframes.Children, 2)
	assert.Equal(t, "from", keyframes.Children[0].Name)
	assert.Equal(t, "to", keyframes.Children[1].Name)
	require.Len(t, keyframes.Children[1].Children, 1)
	assert.Equal(t, "rotate", keyframes.Children[1].Children[0].Name)
}

func TestOutlineTolerant(t *testing.T) {
	// The strict lexer reads #main as a malformed color; tree-sitter
	// outlines it as an id selector.
	symbols := outline(t, "#main { color: red; }\nb { color: blue; }")

	var names []string
	for _, s := range symbols {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"#main", "b"}, names)
}

func TestOutlineUTF16Columns(t *testing.T) {
	symbols := outline(t, `a::after { content: "👍"; color: red; }`)
	require.Len(t, symbols, 1)
	require.Len(t, symbols[0].Children, 2)

	// The emoji is two UTF-16 code units but four bytes
	color := symbols[0].Children[1]
	assert.Equal(t, "color", color.Name)
	assert.Equal(t, uint32(26), color.Range.Start.Character)
}

func TestOutlineEmpty(t *testing.T) {
	assert.Empty(t, outline(t, ""))
	assert.Empty(t, outline(t, "/* just a comment */"))
}

func TestRegionOffset(t *testing.T) {
	r := css.Region{StartLine: 3, StartCol: 10}

	t.Run("first line is shifted", func(t *testing.T) {
		assert.Equal(t, css.Position{Line: 3, Character: 15}, r.Offset(css.Position{Line: 0, Character: 5}))
	})

	t.Run("later lines keep their column", func(t *testing.T) {
		assert.Equal(t, css.Position{Line: 5, Character: 5}, r.Offset(css.Position{Line: 2, Character: 5}))
	})

	t.Run("range", func(t *testing.T) {
		got := r.OffsetRange(css.Range{
			Start: css.Position{Line: 0, Character: 0},
			End:   css.Position{Line: 1, Character: 2},
		})
		assert.Equal(t, css.Range{
			Start: css.Position{Line: 3, Character: 10},
			End:   css.Position{Line: 4, Character: 2},
		}, got)
	})
}

func TestRegionKindString(t *testing.T) {
	assert.Equal(t, "stylesheet", css.StylesheetRegion.String())
	assert.Equal(t, "declarations", css.DeclarationsRegion.String())
	assert.Equal(t, "unknown", css.UnknownRegion.String())
}
