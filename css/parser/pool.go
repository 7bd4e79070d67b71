package parser

import (
	"sync"

	"bennypowers.dev/csstree/css/ast"
)

// parserPool is a pool of reusable parsers with default options
var parserPool = sync.Pool{
	New: func() any {
		p := New()
		p.pooled = true
		return p
	},
}

// AcquireParser gets a parser from the pool
func AcquireParser() *Parser {
	return parserPool.Get().(*Parser)
}

// ReleaseParser returns a parser to the pool. Parsers created with New are
// ignored.
func ReleaseParser(p *Parser) {
	if p != nil && p.pooled {
		p.build.Reset()
		p.lex.Reset("", "")
		parserPool.Put(p)
	}
}

// ParseDeclarations parses an inline declaration list with a pooled parser.
func ParseDeclarations(src string) (*ast.Property, error) {
	p := AcquireParser()
	defer ReleaseParser(p)
	return p.ParseDeclarations(src)
}

// ParseStylesheet parses a stylesheet with a pooled parser and appends its
// rules to chain.
func ParseStylesheet(chain *ast.Rule, src, file string) (*ast.Rule, error) {
	p := AcquireParser()
	defer ReleaseParser(p)
	return p.ParseStylesheet(chain, src, file)
}
