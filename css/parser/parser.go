// Package parser builds rule trees from CSS source text.
//
// The grammar is parsed by recursive descent with one token of lookahead.
// Parsing stops at the first error; at-rules are the only construct that is
// skipped instead of parsed.
package parser

import (
	"fmt"

	"bennypowers.dev/csstree/css/ast"
	"bennypowers.dev/csstree/css/lexer"
	"bennypowers.dev/csstree/internal/log"
)

// SyntaxError is the error returned for malformed input.
type SyntaxError = lexer.SyntaxError

// ErrSyntax is the sentinel every SyntaxError unwraps to.
var ErrSyntax = lexer.ErrSyntax

// InlineLabel is the file label reported for errors in declaration lists.
const InlineLabel = "<inline>"

// DefaultMaxDepth bounds the nesting of selectors and function values.
const DefaultMaxDepth = 256

// Option configures a Parser.
type Option func(*Parser)

// WithMaxTokenLength limits the text of a single token to n bytes.
func WithMaxTokenLength(n int) Option {
	return func(p *Parser) {
		p.lexOpts = append(p.lexOpts, lexer.WithMaxTokenLength(n))
	}
}

// WithMaxDepth bounds recursion. Values below 1 select DefaultMaxDepth.
func WithMaxDepth(n int) Option {
	return func(p *Parser) {
		if n < 1 {
			n = DefaultMaxDepth
		}
		p.maxDepth = n
	}
}

// WithBuilder constructs nodes through b, so callers can account for every
// node of the trees the parser returns.
func WithBuilder(b *ast.Builder) Option {
	return func(p *Parser) {
		p.build = b
	}
}

// Parser parses stylesheets and declaration lists. A Parser is reusable but
// not safe for concurrent use.
type Parser struct {
	lex      *lexer.Lexer
	lexOpts  []lexer.Option
	tok      lexer.Token
	build    *ast.Builder
	depth    int
	maxDepth int
	pooled   bool
}

// New creates a new Parser
func New(opts ...Option) *Parser {
	p := &Parser{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(p)
	}
	if p.build == nil {
		p.build = ast.NewBuilder()
	}
	p.lex = lexer.New("", "", p.lexOpts...)
	return p
}

// Builder returns the builder nodes are constructed with.
func (p *Parser) Builder() *ast.Builder {
	return p.build
}

// ParseDeclarations parses src as a declaration list, as found in an inline
// style attribute. The entire input must be consumed.
func (p *Parser) ParseDeclarations(src string) (*ast.Property, error) {
	if err := p.reset(src, InlineLabel); err != nil {
		return nil, err
	}
	decls, err := p.parseDeclarationList()
	if err != nil {
		return nil, err
	}
	if p.tok.Kind != lexer.EOF {
		return nil, p.unexpected()
	}
	return decls, nil
}

// ParseStylesheet parses src and appends its rules to chain in source
// order. It returns the head of the combined chain: chain itself when it is
// non-nil, otherwise the first parsed rule. On error chain is left as it
// was and nil is returned.
func (p *Parser) ParseStylesheet(chain *ast.Rule, src, file string) (*ast.Rule, error) {
	if err := p.reset(src, file); err != nil {
		return nil, err
	}

	var head, tail *ast.Rule
	for p.tok.Kind != lexer.EOF {
		if p.tok.Kind == lexer.At {
			if err := p.skipAtRule(); err != nil {
				return nil, err
			}
			continue
		}
		rule, err := p.parseRule()
		if err != nil {
			return nil, err
		}
		if head == nil {
			head = rule
		} else {
			tail.Next = rule
		}
		tail = rule
	}
	return ast.Append(chain, head), nil
}

func (p *Parser) reset(src, file string) error {
	p.lex.Reset(src, file)
	p.depth = 0
	return p.next()
}

func (p *Parser) next() error {
	tok, err := p.lex.Next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *Parser) expect(kind lexer.Kind) error {
	if p.tok.Kind != kind {
		return p.errorf("expected %s, found %s", kind, p.tok)
	}
	return p.next()
}

// errorf reports at the line of the lookahead token. The lexer may
// already be on a later line.
func (p *Parser) errorf(format string, args ...any) error {
	return lexer.NewSyntaxError(fmt.Sprintf(format, args...), p.lex.File(), p.tok.Line)
}

func (p *Parser) unexpected() error {
	return p.errorf("unexpected token %s", p.tok)
}

func (p *Parser) enter() error {
	p.depth++
	if p.depth > p.maxDepth {
		return p.errorf("nesting too deep")
	}
	return nil
}

func (p *Parser) leave() {
	p.depth--
}

// skipAtRule discards an at-rule up to its terminating ';' or through its
// balanced block.
func (p *Parser) skipAtRule() error {
	line := p.tok.Line
	if err := p.next(); err != nil {
		return err
	}
	if p.tok.Kind != lexer.Keyword {
		return p.errorf("expected keyword after '@'")
	}
	log.Debug("Skipping @%s at %s:%d", p.tok.Text, p.lex.File(), line)

	for p.tok.Kind != lexer.EOF {
		switch p.tok.Kind {
		case lexer.Semicolon:
			return p.next()
		case lexer.LeftBrace:
			return p.skipBlock()
		}
		if err := p.next(); err != nil {
			return err
		}
	}
	return nil
}

func (p *Parser) skipBlock() error {
	depth := 0
	for p.tok.Kind != lexer.EOF {
		switch p.tok.Kind {
		case lexer.LeftBrace:
			depth++
		case lexer.RightBrace:
			depth--
		}
		if err := p.next(); err != nil {
			return err
		}
		if depth == 0 {
			return nil
		}
	}
	return nil
}

func (p *Parser) parseRule() (*ast.Rule, error) {
	sel, err := p.parseSelectorList()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.LeftBrace); err != nil {
		return nil, err
	}
	decls, err := p.parseDeclarationList()
	if err != nil {
		return nil, err
	}
	if err := p.expect(lexer.RightBrace); err != nil {
		return nil, err
	}
	return p.build.Rule(sel, decls), nil
}
