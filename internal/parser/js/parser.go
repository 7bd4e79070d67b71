package js

import (
	"fmt"
	"slices"
	"sync"

	"bennypowers.dev/csstree/internal/log"
	"bennypowers.dev/csstree/internal/parser/css"
	htmlparser "bennypowers.dev/csstree/internal/parser/html"
	"bennypowers.dev/csstree/internal/position"
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
)

// Parser finds css and html tagged template literals in JS/TS
type Parser struct {
	parser        *sitter.Parser
	templateQuery *sitter.Query
	genericQuery  *sitter.Query // matches css<Type>`...` (generic form parsed by JS grammar as binary_expression)
}

var jsLang = sitter.NewLanguage(tree_sitter_javascript.Language())

// parserPool is a pool of reusable JS parsers
var parserPool = sync.Pool{
	New: func() any {
		parser := sitter.NewParser()
		if err := parser.SetLanguage(jsLang); err != nil {
			panic(fmt.Sprintf("failed to set JS language: %v", err))
		}

		templateQuery, qerr := sitter.NewQuery(jsLang, `
			(call_expression
				function: (identifier) @tag
				arguments: (template_string) @template)
		`)
		if qerr != nil {
			panic(fmt.Sprintf("failed to compile template query: %v", qerr))
		}

		// css<Type>`...` is valid TypeScript, but the JS grammar reads it as
		// nested binary expressions.
		genericQuery, qerr := sitter.NewQuery(jsLang, `
			(binary_expression
				left: (binary_expression
					left: (identifier) @tag)
				right: (template_string) @template)
		`)
		if qerr != nil {
			panic(fmt.Sprintf("failed to compile generic query: %v", qerr))
		}

		return &Parser{
			parser:        parser,
			templateQuery: templateQuery,
			genericQuery:  genericQuery,
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
	if p.templateQuery != nil {
		p.templateQuery.Close()
	}
	if p.genericQuery != nil {
		p.genericQuery.Close()
	}
}

// Templates returns the css and html tagged templates of source in source
// order. Both css`...` and css<Type>`...` forms are recognized.
func (p *Parser) Templates(source string) []Template {
	src := []byte(source)
	tree := p.parser.Parse(src, nil)
	if tree == nil {
		return nil
	}
	defer tree.Close()

	root := tree.RootNode()
	index := position.NewIndex(source)

	type found struct {
		offset   uint
		template Template
	}
	var all []found

	for _, query := range []*sitter.Query{p.templateQuery, p.genericQuery} {
		cursor := sitter.NewQueryCursor()
		matches := cursor.Matches(query, root, src)
		for match := matches.Next(); match != nil; match = matches.Next() {
			var tag string
			var node *sitter.Node
			for _, capture := range match.Captures {
				switch query.CaptureNames()[capture.Index] {
				case "tag":
					tag = string(src[capture.Node.StartByte():capture.Node.EndByte()])
				case "template":
					n := capture.Node
					node = &n
				}
			}
			if node == nil || (tag != "css" && tag != "html") {
				continue
			}

			// Content excludes the backticks
			start, end := node.StartByte()+1, node.EndByte()-1
			if end < start {
				continue
			}
			line, col := index.Position(int(start)) //nolint:gosec // G115: offsets are bounded by file size
			all = append(all, found{
				offset: start,
				template: Template{
					Tag:           tag,
					Content:       string(src[start:end]),
					StartLine:     uint(line),
					StartCol:      uint(col),
					Substitutions: countSubstitutions(node),
				},
			})
		}
		cursor.Close()
	}

	slices.SortFunc(all, func(a, b found) int {
		return int(a.offset) - int(b.offset) //nolint:gosec // G115: offsets are bounded by file size
	})
	templates := make([]Template, len(all))
	for i, f := range all {
		templates[i] = f.template
	}
	return templates
}

func countSubstitutions(node *sitter.Node) int {
	n := 0
	for i := uint(0); i < node.NamedChildCount(); i++ {
		if node.NamedChild(i).Kind() == "template_substitution" {
			n++
		}
	}
	return n
}

// Regions returns the CSS regions of source. A css template is one
// stylesheet region; html templates contribute their <style> elements and
// style attributes. Templates with ${...} substitutions cannot be parsed
// statically and are skipped.
func (p *Parser) Regions(source string) []css.Region {
	var regions []css.Region
	for _, tmpl := range p.Templates(source) {
		if tmpl.Substitutions > 0 {
			log.Debug("Skipping %s template at %d:%d with %d substitutions",
				tmpl.Tag, tmpl.StartLine+1, tmpl.StartCol+1, tmpl.Substitutions)
			continue
		}
		origin := css.Region{StartLine: tmpl.StartLine, StartCol: tmpl.StartCol}
		switch tmpl.Tag {
		case "css":
			if tmpl.Content == "" {
				continue
			}
			regions = append(regions, css.Region{
				Content:   tmpl.Content,
				StartLine: tmpl.StartLine,
				StartCol:  tmpl.StartCol,
				Kind:      css.StylesheetRegion,
			})
		case "html":
			for _, r := range htmlparser.Regions(tmpl.Content) {
				start := origin.Offset(css.Position{
					Line:      uint32(r.StartLine), //nolint:gosec // G115: region positions are bounded by file size
					Character: uint32(r.StartCol),  //nolint:gosec // G115: region positions are bounded by file size
				})
				r.StartLine, r.StartCol = uint(start.Line), uint(start.Character)
				regions = append(regions, r)
			}
		}
	}
	return regions
}

// Regions extracts CSS regions from JS/TS source with a pooled parser
func Regions(source string) []css.Region {
	p := AcquireParser()
	defer ReleaseParser(p)
	return p.Regions(source)
}
