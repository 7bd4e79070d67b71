// Package lexer splits CSS source text into tokens.
//
// The lexer holds a single current character, counts lines from 1, and
// accumulates token text in a bounded per-instance buffer. Comments and the
// HTML comment markers "<!--" and "-->" are skipped between tokens.
package lexer

import "fmt"

// DefaultMaxTokenLength is the largest token text accepted when no limit is
// configured.
const DefaultMaxTokenLength = 1024

// Option configures a Lexer.
type Option func(*Lexer)

// WithMaxTokenLength limits the text of a single token to n bytes.
// Values below 1 select DefaultMaxTokenLength.
func WithMaxTokenLength(n int) Option {
	return func(l *Lexer) {
		if n < 1 {
			n = DefaultMaxTokenLength
		}
		l.max = n
	}
}

// Lexer produces tokens from a source string. A Lexer is not safe for
// concurrent use; Reset lets one instance scan many inputs.
type Lexer struct {
	src  string
	file string
	pos  int // index of the byte after c
	c    int
	line int

	buf     []byte
	max     int
	tooLong bool
	errLine int
}

// New returns a lexer positioned at the first token of src. The file label
// only appears in error messages.
func New(src, file string, opts ...Option) *Lexer {
	l := &Lexer{max: DefaultMaxTokenLength}
	for _, opt := range opts {
		opt(l)
	}
	l.buf = make([]byte, 0, min(l.max, 64))
	l.Reset(src, file)
	return l
}

// Reset rewinds the lexer onto new input, keeping its options.
func (l *Lexer) Reset(src, file string) {
	l.src = src
	l.file = file
	l.pos = 0
	l.line = 1
	l.buf = l.buf[:0]
	l.tooLong = false
	l.advance()
}

// File returns the label errors are reported against.
func (l *Lexer) File() string {
	return l.file
}

// Line returns the current line number.
func (l *Lexer) Line() int {
	return l.line
}

// MaxTokenLength returns the configured token text limit.
func (l *Lexer) MaxTokenLength() int {
	return l.max
}

// Errorf returns a SyntaxError located at the current line.
func (l *Lexer) Errorf(format string, args ...any) error {
	return NewSyntaxError(fmt.Sprintf(format, args...), l.file, l.line)
}

func (l *Lexer) advance() {
	if l.pos >= len(l.src) {
		l.c = eof
		l.pos = len(l.src) + 1
		return
	}
	l.c = int(l.src[l.pos])
	l.pos++
	if l.c == '\n' {
		l.line++
	}
}

func (l *Lexer) offset() int {
	if l.c == eof {
		return len(l.src)
	}
	return l.pos - 1
}

func (l *Lexer) accept(c int) bool {
	if l.c == c {
		l.advance()
		return true
	}
	return false
}

func (l *Lexer) expect(c int) error {
	if l.accept(c) {
		return nil
	}
	if l.c == eof {
		return l.Errorf("unexpected end of file")
	}
	return l.Errorf("unexpected character")
}

// push appends c to the token text. Overflow is remembered and reported
// when the token is emitted.
func (l *Lexer) push(c int) {
	if len(l.buf) >= l.max {
		if !l.tooLong {
			l.tooLong = true
			l.errLine = l.line
		}
		return
	}
	l.buf = append(l.buf, byte(c))
}

func (l *Lexer) emit(tok Token, kind Kind) (Token, error) {
	if l.tooLong {
		return Token{}, NewSyntaxError("token too long", l.file, l.errLine)
	}
	tok.Kind = kind
	tok.Text = string(l.buf)
	return tok, nil
}

// Next scans the next token. At the end of input it returns an EOF token
// on every call.
func (l *Lexer) Next() (Token, error) {
	for {
		for isWhite(l.c) {
			l.advance()
		}
		l.buf = l.buf[:0]
		l.tooLong = false

		tok := Token{Line: l.line, Offset: l.offset()}
		c := l.c
		switch {
		case c == eof:
			tok.Kind = EOF
			return tok, nil

		case c == '/':
			l.advance()
			if l.accept('*') {
				if err := l.skipComment(); err != nil {
					return Token{}, err
				}
				continue
			}
			return l.single(tok, Slash, c)

		case c == '<':
			l.advance()
			if l.accept('!') {
				if err := l.expect('-'); err != nil {
					return Token{}, err
				}
				if err := l.expect('-'); err != nil {
					return Token{}, err
				}
				continue
			}
			return l.single(tok, Less, c)

		case c == '-':
			l.advance()
			if l.accept('-') {
				if err := l.expect('>'); err != nil {
					return Token{}, err
				}
				continue
			}
			if isDigit(l.c) {
				l.push('-')
				return l.number(tok)
			}
			if isNameStart(l.c) {
				l.push('-')
				return l.keyword(tok)
			}
			return l.single(tok, Minus, c)

		case c == '+':
			l.advance()
			if isDigit(l.c) {
				return l.number(tok)
			}
			return l.single(tok, Plus, c)

		case c == '.':
			l.advance()
			if isDigit(l.c) {
				l.push('.')
				return l.number(tok)
			}
			return l.single(tok, Period, c)

		case c == '#':
			l.advance()
			return l.color(tok)

		case c == '"' || c == '\'':
			l.advance()
			return l.quoted(tok, c)

		case c == 'u':
			l.advance()
			return l.url(tok)

		case isDigit(c):
			return l.number(tok)

		case isNameStart(c):
			return l.keyword(tok)
		}

		l.advance()
		if kind, ok := punctuation[c]; ok {
			return l.single(tok, kind, c)
		}
		return l.single(tok, Delim, c)
	}
}

func (l *Lexer) single(tok Token, kind Kind, c int) (Token, error) {
	tok.Kind = kind
	tok.Text = string(rune(c))
	return tok, nil
}

func (l *Lexer) skipComment() error {
	for l.c != eof {
		if l.accept('*') {
			for l.c == '*' {
				l.advance()
			}
			if l.accept('/') {
				return nil
			}
			continue
		}
		l.advance()
	}
	return l.Errorf("unterminated comment")
}

func (l *Lexer) keyword(tok Token) (Token, error) {
	for isName(l.c) {
		l.push(l.c)
		l.advance()
	}
	return l.emit(tok, Keyword)
}

func (l *Lexer) number(tok Token) (Token, error) {
	for isDigit(l.c) {
		l.push(l.c)
		l.advance()
	}
	if l.accept('.') {
		l.push('.')
		for isDigit(l.c) {
			l.push(l.c)
			l.advance()
		}
	}
	if l.accept('%') {
		l.push('%')
		return l.emit(tok, Percent)
	}
	if isNameStart(l.c) {
		for isName(l.c) {
			l.push(l.c)
			l.advance()
		}
		return l.emit(tok, Length)
	}
	return l.emit(tok, Number)
}

const hexDigits = "0123456789abcdef"

// color reads the digits after '#'. Three digit colors expand each digit
// into both nibbles of its channel.
func (l *Lexer) color(tok Token) (Token, error) {
	var digits [6]int
	n := 0
	for {
		v, ok := hexValue(l.c)
		if !ok {
			break
		}
		if n == len(digits) {
			return Token{}, l.Errorf("invalid color")
		}
		digits[n] = v
		n++
		l.advance()
	}

	switch n {
	case 3:
		for _, d := range digits[:3] {
			l.push(int(hexDigits[d]))
			l.push(int(hexDigits[d]))
		}
	case 6:
		for _, d := range digits {
			l.push(int(hexDigits[d]))
		}
	default:
		return Token{}, l.Errorf("invalid color")
	}
	return l.emit(tok, Color)
}

func (l *Lexer) quoted(tok Token, q int) (Token, error) {
	for l.c != eof && l.c != q {
		if !l.accept('\\') {
			l.push(l.c)
			l.advance()
			continue
		}
		switch {
		case l.accept('n'):
			l.push('\n')
		case l.accept('r'):
			l.push('\r')
		case l.accept('f'):
			l.push('\f')
		case l.accept('\f'):
		case l.accept('\n'):
		case l.accept('\r'):
			l.accept('\n')
		case l.c == eof:
		default:
			l.push(l.c)
			l.advance()
		}
	}
	if err := l.expect(q); err != nil {
		return Token{}, l.Errorf("unterminated string")
	}
	return l.emit(tok, String)
}

// url finishes a token that began with 'u'. Anything other than "url("
// continues as a keyword with the consumed prefix kept.
func (l *Lexer) url(tok Token) (Token, error) {
	l.push('u')
	for _, want := range "rl" {
		if !l.accept(int(want)) {
			return l.keyword(tok)
		}
		l.push(int(want))
	}
	if !l.accept('(') {
		return l.keyword(tok)
	}
	l.buf = l.buf[:0]

	for l.c != eof && l.c != ')' {
		switch l.c {
		case '"', '\'':
			q := l.c
			l.advance()
			for l.c != eof && l.c != q {
				if l.accept('\\') && l.c == eof {
					break
				}
				l.advance()
			}
			if !l.accept(q) {
				return Token{}, l.Errorf("unterminated string")
			}
		case '\\':
			l.advance()
			if l.c != eof {
				l.advance()
			}
		default:
			l.advance()
		}
	}
	if !l.accept(')') {
		return Token{}, l.Errorf("unterminated url")
	}
	return l.emit(tok, URI)
}

// Tokenize scans all of src, stopping at the first error. The EOF token is
// not included.
func Tokenize(src, file string, opts ...Option) ([]Token, error) {
	l := New(src, file, opts...)
	var tokens []Token
	for {
		tok, err := l.Next()
		if err != nil {
			return tokens, err
		}
		if tok.Kind == EOF {
			return tokens, nil
		}
		tokens = append(tokens, tok)
	}
}
