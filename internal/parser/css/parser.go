// Package css builds tolerant stylesheet outlines with tree-sitter. Unlike
// the strict parser in css/parser, tree-sitter recovers from errors, so an
// outline is available while a document is being edited.
package css

import (
	"fmt"
	"strings"
	"sync"

	"bennypowers.dev/csstree/internal/position"
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_css "github.com/tree-sitter/tree-sitter-css/bindings/go"
)

// Parser handles parsing CSS with tree-sitter
type Parser struct {
	parser *sitter.Parser
}

var cssLang = sitter.NewLanguage(tree_sitter_css.Language())

// parserPool is a pool of reusable tree-sitter CSS parsers
var parserPool = sync.Pool{
	New: func() any {
		parser := sitter.NewParser()
		if err := parser.SetLanguage(cssLang); err != nil {
			panic(fmt.Sprintf("failed to set CSS language: %v", err))
		}
		return &Parser{parser: parser}
	},
}

// AcquireParser gets a parser from the pool
func AcquireParser() *Parser {
	p := parserPool.Get().(*Parser)
	p.parser.Reset()
	return p
}

// ReleaseParser returns a parser to the pool
func ReleaseParser(p *Parser) {
	if p != nil {
		parserPool.Put(p)
	}
}

// Close closes the parser and releases its resources
func (p *Parser) Close() {
	if p.parser != nil {
		p.parser.Close()
	}
}

// Outline returns the rules and at-rules of source, with the declarations of
// each rule as children.
func (p *Parser) Outline(source string) ([]Symbol, error) {
	src := []byte(source)
	tree := p.parser.Parse(src, nil)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse CSS")
	}
	defer tree.Close()

	o := &outliner{src: src, index: position.NewIndex(source)}
	return o.children(tree.RootNode()), nil
}

// outliner converts tree-sitter nodes to symbols. Ranges are computed from
// byte offsets so columns are in UTF-16 code units.
type outliner struct {
	src   []byte
	index *position.Index
}

// children collects the symbols directly below node, descending
// through blocks and keyframe lists.
func (o *outliner) children(node *sitter.Node) []Symbol {
	var symbols []Symbol
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child == nil {
			continue
		}
		switch kind := child.Kind(); {
		case kind == "rule_set":
			symbols = append(symbols, o.ruleSymbol(child))
		case kind == "declaration":
			symbols = append(symbols, o.declarationSymbol(child))
		case kind == "keyframe_block":
			symbols = append(symbols, o.keyframeSymbol(child))
		case kind == "at_rule" || strings.HasSuffix(kind, "_statement"):
			symbols = append(symbols, o.atRuleSymbol(child))
		case kind == "block" || kind == "keyframe_block_list":
			symbols = append(symbols, o.children(child)...)
		}
	}
	return symbols
}

func (o *outliner) ruleSymbol(node *sitter.Node) Symbol {
	sym := Symbol{Kind: RuleSymbol, Range: o.rangeOf(node)}
	sym.SelectionRange = sym.Range
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		switch child.Kind() {
		case "selectors":
			sym.Name = collapse(o.text(child))
			sym.SelectionRange = o.rangeOf(child)
		case "block":
			sym.Children = o.children(child)
		}
	}
	if sym.Name == "" {
		sym.Name = "<rule>"
	}
	return sym
}

func (o *outliner) declarationSymbol(node *sitter.Node) Symbol {
	sym := Symbol{Kind: DeclarationSymbol, Range: o.rangeOf(node)}
	sym.SelectionRange = sym.Range

	var values []string
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		switch child.Kind() {
		case "property_name":
			sym.Name = o.text(child)
			sym.SelectionRange = o.rangeOf(child)
		case "comment":
		default:
			values = append(values, o.text(child))
		}
	}
	sym.Detail = strings.Join(values, " ")
	if sym.Name == "" {
		sym.Name = "<declaration>"
	}
	return sym
}

func (o *outliner) keyframeSymbol(node *sitter.Node) Symbol {
	sym := Symbol{Kind: RuleSymbol, Range: o.rangeOf(node)}
	sym.SelectionRange = sym.Range
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if child.Kind() == "block" {
			sym.Children = o.children(child)
			continue
		}
		if sym.Name == "" {
			sym.Name = o.text(child)
			sym.SelectionRange = o.rangeOf(child)
		}
	}
	return sym
}

// atRuleSymbol names an at-rule by its prelude, the text before its block
// or terminating semicolon.
func (o *outliner) atRuleSymbol(node *sitter.Node) Symbol {
	sym := Symbol{Kind: AtRuleSymbol, Range: o.rangeOf(node)}
	sym.SelectionRange = sym.Range

	end := node.EndByte()
	for i := uint(0); i < node.NamedChildCount(); i++ {
		child := node.NamedChild(i)
		if kind := child.Kind(); kind == "block" || kind == "keyframe_block_list" {
			end = child.StartByte()
			sym.Children = o.children(child)
			break
		}
	}
	prelude := strings.TrimSuffix(strings.TrimSpace(string(o.src[node.StartByte():end])), ";")
	sym.Name = collapse(prelude)
	return sym
}

func (o *outliner) text(node *sitter.Node) string {
	return string(o.src[node.StartByte():node.EndByte()])
}

func (o *outliner) rangeOf(node *sitter.Node) Range {
	return Range{Start: o.position(node.StartByte()), End: o.position(node.EndByte())}
}

func (o *outliner) position(offset uint) Position {
	line, char := o.index.Position(int(offset)) //nolint:gosec // G115: offsets are bounded by file size
	return Position{Line: line, Character: char}
}

// collapse replaces runs of whitespace with single spaces
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
