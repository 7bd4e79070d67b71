package ast_test

import (
	"testing"

	"bennypowers.dev/csstree/css/ast"
	"bennypowers.dev/csstree/css/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "simple rule",
			src:  "a{color:red}",
			want: "a {\n  color: red;\n}\n",
		},
		{
			name: "alternatives and combinators",
			src:  "a,b>c+d e{x:y}",
			want: "a, b > c + d e {\n  x: y;\n}\n",
		},
		{
			name: "conditions",
			src:  `*.note:hover[title~=x][lang|="en"][type=text][hidden]{x:y}`,
			want: `.note:hover[title~="x"][lang|="en"][type="text"][hidden] {` + "\n  x: y;\n}\n",
		},
		{
			name: "universal",
			src:  "*{x:y}",
			want: "* {\n  x: y;\n}\n",
		},
		{
			name: "values",
			src:  `a{font:12px/1.5 "A \"b\"",serif;background:url(x.png) #fff linear-gradient(red,rgb(0,0,0))}`,
			want: "a {\n  font: 12px / 1.5 \"A \\\"b\\\"\", serif;\n  background: url() #ffffff linear-gradient(red, rgb(0, 0, 0));\n}\n",
		},
		{
			name: "empty block",
			src:  "a{}",
			want: "a {\n}\n",
		},
		{
			name: "several rules",
			src:  "a{x:y}b{x:y}",
			want: "a {\n  x: y;\n}\nb {\n  x: y;\n}\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules, err := parser.ParseStylesheet(nil, tt.src, "test.css")
			require.NoError(t, err)
			assert.Equal(t, tt.want, ast.Format(rules))
		})
	}
}

func TestFormatRoundTrip(t *testing.T) {
	// Rendering and reparsing yields the same rendering
	sources := []string{
		"a, b > c + d e { x: f(1, g(2)) 3px / 4%; y: z }",
		`p[title~="x y"]:first-child.c { content: "line\nbreak" }`,
		"* { margin: 0 } div * { padding: -1.5em }",
	}
	for _, src := range sources {
		t.Run(src, func(t *testing.T) {
			first, err := parser.ParseStylesheet(nil, src, "test.css")
			require.NoError(t, err)
			rendered := ast.Format(first)

			second, err := parser.ParseStylesheet(nil, rendered, "test.css")
			require.NoError(t, err)
			assert.Equal(t, rendered, ast.Format(second))
		})
	}
}

func TestFormatDeclarations(t *testing.T) {
	props, err := parser.ParseDeclarations("color: red; margin: 0 auto")
	require.NoError(t, err)
	assert.Equal(t, "color: red; margin: 0 auto", ast.FormatDeclarations(props))
	assert.Equal(t, "color: red", props.String())
	assert.Equal(t, "0 auto", props.Next.Value.String())
	assert.Empty(t, ast.FormatDeclarations(nil))
}

func TestFormatValue(t *testing.T) {
	props, err := parser.ParseDeclarations("background: rgb(0, 128, 255) #abc")
	require.NoError(t, err)

	fn := props.Value
	assert.Equal(t, "rgb(0, 128, 255)", ast.FormatValue(fn))
	assert.Equal(t, "rgb(0, 128, 255) #aabbcc", fn.String())
	assert.Equal(t, "#aabbcc", ast.FormatValue(fn.Next))
	assert.Empty(t, ast.FormatValue(nil))
}

func TestSelectorString(t *testing.T) {
	rules, err := parser.ParseStylesheet(nil, "a > b, .c { x: y }", "test.css")
	require.NoError(t, err)
	assert.Equal(t, "a > b, .c", rules.Selector.String())
	assert.Equal(t, ".c", rules.Selector.Next.Conditions.String())
}
