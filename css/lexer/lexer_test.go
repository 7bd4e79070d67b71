package lexer_test

import (
	"errors"
	"strings"
	"testing"

	"bennypowers.dev/csstree/css/lexer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// kinds returns the kinds of every token in src
func kinds(t *testing.T, src string) []lexer.Kind {
	t.Helper()
	tokens, err := lexer.Tokenize(src, "test.css")
	require.NoError(t, err)
	result := make([]lexer.Kind, len(tokens))
	for i, tok := range tokens {
		result[i] = tok.Kind
	}
	return result
}

// single lexes src and requires exactly one token
func single(t *testing.T, src string) lexer.Token {
	t.Helper()
	tokens, err := lexer.Tokenize(src, "test.css")
	require.NoError(t, err)
	require.Len(t, tokens, 1, "expected one token for %q", src)
	return tokens[0]
}

func TestPunctuation(t *testing.T) {
	got := kinds(t, "{ } : ; . [ ] = | ~ , / + - > * ! @ ( ) <")
	assert.Equal(t, []lexer.Kind{
		lexer.LeftBrace, lexer.RightBrace, lexer.Colon, lexer.Semicolon,
		lexer.Period, lexer.LeftBracket, lexer.RightBracket, lexer.Equals,
		lexer.Bar, lexer.Tilde, lexer.Comma, lexer.Slash, lexer.Plus,
		lexer.Minus, lexer.Greater, lexer.Asterisk, lexer.Bang, lexer.At,
		lexer.LeftParen, lexer.RightParen, lexer.Less,
	}, got)

	for _, k := range got {
		assert.True(t, k.IsPunctuation(), "%s should be punctuation", k)
	}
}

func TestDelim(t *testing.T) {
	tok := single(t, "$")
	assert.Equal(t, lexer.Delim, tok.Kind)
	assert.Equal(t, "$", tok.Text)
	assert.False(t, tok.Kind.IsPunctuation())
}

func TestKeywords(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"plain", "color", "color"},
		{"digits and dashes", "font-size2", "font-size2"},
		{"leading dash", "-webkit-box", "-webkit-box"},
		{"underscore", "_private", "_private"},
		{"backslash kept literally", `a\:b`, `a\`},
		{"utf-8 passes through", "café", "café"},
		{"u prefix", "underline", "underline"},
		{"ur prefix", "uri", "uri"},
		{"url without paren", "url", "url"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := lexer.Tokenize(tt.src, "test.css")
			require.NoError(t, err)
			require.NotEmpty(t, tokens)
			assert.Equal(t, lexer.Keyword, tokens[0].Kind)
			assert.Equal(t, tt.want, tokens[0].Text)
		})
	}
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind lexer.Kind
		text string
	}{
		{"integer", "42", lexer.Number, "42"},
		{"decimal", "1.5", lexer.Number, "1.5"},
		{"leading period", ".5", lexer.Number, ".5"},
		{"negative", "-3", lexer.Number, "-3"},
		{"plus sign is dropped", "+7", lexer.Number, "7"},
		{"percent", "50%", lexer.Percent, "50%"},
		{"length", "12px", lexer.Length, "12px"},
		{"negative length", "-1.25em", lexer.Length, "-1.25em"},
		{"unit with dash", "1x-foo", lexer.Length, "1x-foo"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := single(t, tt.src)
			assert.Equal(t, tt.kind, tok.Kind)
			assert.Equal(t, tt.text, tok.Text)
		})
	}
}

func TestSignsWithoutDigits(t *testing.T) {
	// A sign or period not followed by a digit is plain punctuation
	assert.Equal(t, []lexer.Kind{lexer.Minus, lexer.Plus, lexer.Period}, kinds(t, "- + ."))
}

func TestColors(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"#fff", "ffffff"},
		{"#ffffff", "ffffff"},
		{"#0a0", "00aa00"},
		{"#00aa00", "00aa00"},
		{"#ABC", "aabbcc"},
		{"#C0FFEE", "c0ffee"},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			tok := single(t, tt.src)
			assert.Equal(t, lexer.Color, tok.Kind)
			assert.Equal(t, tt.want, tok.Text)
		})
	}

	t.Run("invalid lengths", func(t *testing.T) {
		for _, src := range []string{"#", "#f", "#ff", "#ffff", "#fffff", "#fffffff", "#main"} {
			_, err := lexer.Tokenize(src, "test.css")
			require.Error(t, err, "expected %q to fail", src)
			assert.Contains(t, err.Error(), "invalid color")
		}
	})

	t.Run("digits stop at non-hex", func(t *testing.T) {
		// #abc followed by a keyword
		tokens, err := lexer.Tokenize("#abcxyz", "test.css")
		require.NoError(t, err)
		require.Len(t, tokens, 2)
		assert.Equal(t, "aabbcc", tokens[0].Text)
		assert.Equal(t, "xyz", tokens[1].Text)
	})
}

func TestStrings(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"double quoted", `"hello"`, "hello"},
		{"single quoted", `'hello'`, "hello"},
		{"other quote inside", `"it's"`, "it's"},
		{"escaped quote", `"a\"b"`, `a"b`},
		{"newline escape", `"a\nb"`, "a\nb"},
		{"carriage return escape", `"a\rb"`, "a\rb"},
		{"form feed escape", `"a\fb"`, "a\fb"},
		{"line continuation", "\"a\\\nb\"", "ab"},
		{"crlf continuation", "\"a\\\r\nb\"", "ab"},
		{"other escapes are literal", `"\x\\"`, `x\`},
		{"empty", `""`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := single(t, tt.src)
			assert.Equal(t, lexer.String, tok.Kind)
			assert.Equal(t, tt.want, tok.Text)
		})
	}

	t.Run("unterminated", func(t *testing.T) {
		_, err := lexer.Tokenize(`"abc`, "test.css")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unterminated string")
	})

	t.Run("backslash at end of input", func(t *testing.T) {
		_, err := lexer.Tokenize(`"abc\`, "test.css")
		require.Error(t, err)
	})
}

func TestURL(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"bare", "url(image.png)"},
		{"double quoted", `url("image.png")`},
		{"quoted paren", `url("a)b.png")`},
		{"empty", "url()"},
		{"escaped paren", `url(a\)b)`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tok := single(t, tt.src)
			assert.Equal(t, lexer.URI, tok.Kind)
			assert.Empty(t, tok.Text, "url contents are not captured")
		})
	}

	t.Run("followed by more tokens", func(t *testing.T) {
		assert.Equal(t, []lexer.Kind{lexer.URI, lexer.Keyword}, kinds(t, "url(x) no-repeat"))
	})

	t.Run("unterminated", func(t *testing.T) {
		_, err := lexer.Tokenize("url(image.png", "test.css")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unterminated url")
	})
}

func TestCommentsAndMarkers(t *testing.T) {
	t.Run("comments are skipped", func(t *testing.T) {
		assert.Equal(t, []lexer.Kind{lexer.Keyword, lexer.Keyword}, kinds(t, "a /* comment ** here */ b"))
	})

	t.Run("comment ending in stars", func(t *testing.T) {
		assert.Equal(t, []lexer.Kind{lexer.Keyword}, kinds(t, "/***/a/****/"))
	})

	t.Run("html comment markers are skipped", func(t *testing.T) {
		assert.Equal(t, []lexer.Kind{lexer.Keyword}, kinds(t, "<!-- a -->"))
	})

	t.Run("lone less-than", func(t *testing.T) {
		assert.Equal(t, []lexer.Kind{lexer.Less, lexer.Keyword}, kinds(t, "< a"))
	})

	t.Run("unterminated comment", func(t *testing.T) {
		_, err := lexer.Tokenize("a /* never closed", "test.css")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unterminated comment")
	})

	t.Run("incomplete open marker", func(t *testing.T) {
		_, err := lexer.Tokenize("<!x", "test.css")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected character")
	})

	t.Run("double dash without greater-than", func(t *testing.T) {
		_, err := lexer.Tokenize("--x", "test.css")
		require.Error(t, err)
	})
}

func TestLineCounting(t *testing.T) {
	tokens, err := lexer.Tokenize("a\nb\n\n/* x\ny */ c", "test.css")
	require.NoError(t, err)
	require.Len(t, tokens, 3)
	assert.Equal(t, 1, tokens[0].Line)
	assert.Equal(t, 2, tokens[1].Line)
	assert.Equal(t, 5, tokens[2].Line)

	t.Run("errors carry file and line", func(t *testing.T) {
		_, err := lexer.Tokenize("a\nb\n#ab", "sheet.css")
		require.Error(t, err)

		var syntaxErr *lexer.SyntaxError
		require.True(t, errors.As(err, &syntaxErr))
		assert.Equal(t, "sheet.css", syntaxErr.File)
		assert.Equal(t, 3, syntaxErr.Line)
		assert.Equal(t, "css syntax error: invalid color (sheet.css:3)", err.Error())
		assert.ErrorIs(t, err, lexer.ErrSyntax)
	})
}

func TestOffsets(t *testing.T) {
	src := "a { color: #fff }"
	tokens, err := lexer.Tokenize(src, "test.css")
	require.NoError(t, err)
	for _, tok := range tokens {
		if tok.Kind == lexer.Color {
			assert.Equal(t, "#fff", src[tok.Offset:tok.Offset+4])
		}
	}
	assert.Equal(t, 0, tokens[0].Offset)
	assert.Equal(t, 2, tokens[1].Offset)
}

func TestTokenLength(t *testing.T) {
	t.Run("default limit", func(t *testing.T) {
		_, err := lexer.Tokenize(strings.Repeat("a", lexer.DefaultMaxTokenLength), "test.css")
		require.NoError(t, err)

		_, err = lexer.Tokenize(strings.Repeat("a", lexer.DefaultMaxTokenLength+1), "test.css")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "token too long")
		assert.ErrorIs(t, err, lexer.ErrSyntax)
	})

	t.Run("configured limit", func(t *testing.T) {
		_, err := lexer.Tokenize(`"abcdef"`, "test.css", lexer.WithMaxTokenLength(4))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "token too long")

		tokens, err := lexer.Tokenize("abcd", "test.css", lexer.WithMaxTokenLength(4))
		require.NoError(t, err)
		assert.Equal(t, "abcd", tokens[0].Text)
	})

	t.Run("invalid limit falls back to default", func(t *testing.T) {
		l := lexer.New("", "test.css", lexer.WithMaxTokenLength(0))
		assert.Equal(t, lexer.DefaultMaxTokenLength, l.MaxTokenLength())
	})
}

func TestEOFRepeats(t *testing.T) {
	l := lexer.New("  ", "test.css")
	for range 3 {
		tok, err := l.Next()
		require.NoError(t, err)
		assert.Equal(t, lexer.EOF, tok.Kind)
	}
}

func TestReset(t *testing.T) {
	l := lexer.New("first", "a.css")
	tok, err := l.Next()
	require.NoError(t, err)
	assert.Equal(t, "first", tok.Text)

	l.Reset("\nsecond", "b.css")
	assert.Equal(t, "b.css", l.File())
	tok, err = l.Next()
	require.NoError(t, err)
	assert.Equal(t, "second", tok.Text)
	assert.Equal(t, 2, tok.Line)
}

func TestNulIsOrdinary(t *testing.T) {
	// An embedded NUL does not end the input
	tokens, err := lexer.Tokenize("a\x00b", "test.css")
	require.NoError(t, err)
	require.Len(t, tokens, 3)
	assert.Equal(t, lexer.Delim, tokens[1].Kind)
	assert.Equal(t, "b", tokens[2].Text)
}
