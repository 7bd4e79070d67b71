package lexer

import "fmt"

// Kind identifies the type of a token.
type Kind uint8

const (
	EOF Kind = iota

	Keyword
	Number
	Length
	Percent
	String
	Color
	URI

	LeftBrace
	RightBrace
	Colon
	Semicolon
	Period
	Hash
	LeftBracket
	RightBracket
	Equals
	Bar
	Tilde
	Comma
	Slash
	Plus
	Minus
	Greater
	Asterisk
	Bang
	At
	LeftParen
	RightParen
	Less

	// Delim is any other single character. The character is the token text.
	Delim
)

var kindNames = [...]string{
	EOF: "end of file",

	Keyword: "keyword",
	Number:  "number",
	Length:  "length",
	Percent: "percentage",
	String:  "string",
	Color:   "color",
	URI:     "url",

	LeftBrace:    `"{"`,
	RightBrace:   `"}"`,
	Colon:        `":"`,
	Semicolon:    `";"`,
	Period:       `"."`,
	Hash:         `"#"`,
	LeftBracket:  `"["`,
	RightBracket: `"]"`,
	Equals:       `"="`,
	Bar:          `"|"`,
	Tilde:        `"~"`,
	Comma:        `","`,
	Slash:        `"/"`,
	Plus:         `"+"`,
	Minus:        `"-"`,
	Greater:      `">"`,
	Asterisk:     `"*"`,
	Bang:         `"!"`,
	At:           `"@"`,
	LeftParen:    `"("`,
	RightParen:   `")"`,
	Less:         `"<"`,

	Delim: "delimiter",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// IsPunctuation reports whether k is one of the single character tokens
// with a kind of its own.
func (k Kind) IsPunctuation() bool {
	return k >= LeftBrace && k <= Less
}

var punctuation = map[int]Kind{
	'{': LeftBrace,
	'}': RightBrace,
	':': Colon,
	';': Semicolon,
	'.': Period,
	'#': Hash,
	'[': LeftBracket,
	']': RightBracket,
	'=': Equals,
	'|': Bar,
	'~': Tilde,
	',': Comma,
	'/': Slash,
	'+': Plus,
	'-': Minus,
	'>': Greater,
	'*': Asterisk,
	'!': Bang,
	'@': At,
	'(': LeftParen,
	')': RightParen,
	'<': Less,
}

// Token is a single lexical unit.
//
// Text holds the identifier, number (with its unit or percent sign),
// unescaped string contents, or the six lowercase hex digits of a color.
// Punctuation and delimiter tokens carry their character. URI and EOF
// tokens have no text.
type Token struct {
	Kind   Kind
	Text   string
	Line   int
	Offset int
}

func (t Token) String() string {
	switch t.Kind {
	case Keyword, Number, Length, Percent:
		return fmt.Sprintf("%s %q", t.Kind, t.Text)
	case Color:
		return fmt.Sprintf("color #%s", t.Text)
	case String:
		return fmt.Sprintf("string %q", t.Text)
	case Delim:
		return fmt.Sprintf("%q", t.Text)
	}
	return t.Kind.String()
}
