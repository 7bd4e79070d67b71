package html

import (
	"fmt"
	"slices"
	"sync"

	"bennypowers.dev/csstree/internal/parser/css"
	"bennypowers.dev/csstree/internal/position"
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_html "github.com/tree-sitter/tree-sitter-html/bindings/go"
)

// Parser finds stylesheet text in HTML
type Parser struct {
	parser     *sitter.Parser
	styleQuery *sitter.Query
	attrQuery  *sitter.Query
}

var htmlLang = sitter.NewLanguage(tree_sitter_html.Language())

// parserPool is a pool of reusable HTML parsers
var parserPool = sync.Pool{
	New: func() any {
		parser := sitter.NewParser()
		if err := parser.SetLanguage(htmlLang); err != nil {
			panic(fmt.Sprintf("failed to set HTML language: %v", err))
		}

		styleQuery, qerr := sitter.NewQuery(htmlLang, `(style_element (raw_text) @css)`)
		if qerr != nil {
			panic(fmt.Sprintf("failed to compile style query: %v", qerr))
		}

		attrQuery, qerr := sitter.NewQuery(htmlLang, `
			(attribute
				(attribute_name) @attr_name
				(quoted_attribute_value (attribute_value) @attr_value)
				(#eq? @attr_name "style"))
		`)
		if qerr != nil {
			panic(fmt.Sprintf("failed to compile attribute query: %v", qerr))
		}

		return &Parser{
			parser:     parser,
			styleQuery: styleQuery,
			attrQuery:  attrQuery,
		}
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
	if p.styleQuery != nil {
		p.styleQuery.Close()
	}
	if p.attrQuery != nil {
		p.attrQuery.Close()
	}
}

// located pairs a region with its byte offset for ordering
type located struct {
	offset uint
	region css.Region
}

// Regions returns the contents of <style> elements as stylesheet regions and
// the values of style attributes as declaration regions, in document order.
func (p *Parser) Regions(source string) []css.Region {
	src := []byte(source)
	tree := p.parser.Parse(src, nil)
	if tree == nil {
		return nil
	}
	defer tree.Close()

	root := tree.RootNode()
	index := position.NewIndex(source)
	var found []located

	collect := func(query *sitter.Query, capture string, kind css.RegionKind) {
		cursor := sitter.NewQueryCursor()
		defer cursor.Close()

		matches := cursor.Matches(query, root, src)
		for match := matches.Next(); match != nil; match = matches.Next() {
			for _, c := range match.Captures {
				if query.CaptureNames()[c.Index] != capture {
					continue
				}
				node := c.Node
				if node.StartByte() == node.EndByte() {
					continue
				}
				line, col := index.Position(int(node.StartByte())) //nolint:gosec // G115: offsets are bounded by file size
				found = append(found, located{
					offset: node.StartByte(),
					region: css.Region{
						Content:   string(src[node.StartByte():node.EndByte()]),
						StartLine: uint(line),
						StartCol:  uint(col),
						Kind:      kind,
					},
				})
			}
		}
	}

	collect(p.styleQuery, "css", css.StylesheetRegion)
	collect(p.attrQuery, "attr_value", css.DeclarationsRegion)

	slices.SortFunc(found, func(a, b located) int {
		return int(a.offset) - int(b.offset) //nolint:gosec // G115: offsets are bounded by file size
	})

	regions := make([]css.Region, len(found))
	for i, f := range found {
		regions[i] = f.region
	}
	return regions
}

// Regions extracts CSS regions from HTML source with a pooled parser
func Regions(source string) []css.Region {
	p := AcquireParser()
	defer ReleaseParser(p)
	return p.Regions(source)
}
