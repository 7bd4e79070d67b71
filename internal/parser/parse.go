package parser

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"bennypowers.dev/csstree/css/ast"
	"bennypowers.dev/csstree/css/lexer"
	cssparser "bennypowers.dev/csstree/css/parser"
	"bennypowers.dev/csstree/internal/parser/css"
	"bennypowers.dev/csstree/internal/parser/html"
	"bennypowers.dev/csstree/internal/parser/js"
	"bennypowers.dev/csstree/internal/position"
)

// cssLanguages maps language IDs to the parser category they use.
// "css" → direct CSS, "html" → HTML parser, "js" → JS parser.
var cssLanguages = map[string]string{
	"css":             "css",
	"html":            "html",
	"javascript":      "js",
	"javascriptreact": "js",
	"typescript":      "js",
	"typescriptreact": "js",
}

// extensionLanguages maps file extensions to language IDs
var extensionLanguages = map[string]string{
	".css":  "css",
	".html": "html",
	".htm":  "html",
	".js":   "javascript",
	".mjs":  "javascript",
	".cjs":  "javascript",
	".jsx":  "javascriptreact",
	".ts":   "typescript",
	".mts":  "typescript",
	".tsx":  "typescriptreact",
}

// IsCSSSupportedLanguage returns true if the language supports CSS extraction
func IsCSSSupportedLanguage(languageID string) bool {
	_, ok := cssLanguages[languageID]
	return ok
}

// LanguageForPath returns the language ID for a file path based on its
// extension, or "" when the file type is not supported.
func LanguageForPath(path string) string {
	return extensionLanguages[strings.ToLower(filepath.Ext(path))]
}

// Regions returns the CSS text of a document. For CSS files this is the
// entire content. For HTML/JS files, these are the extracted style elements,
// style attributes and css tagged templates.
func Regions(content, languageID string) []css.Region {
	switch cssLanguages[languageID] {
	case "css":
		return []css.Region{{Content: content, Kind: css.StylesheetRegion}}
	case "html":
		return html.Regions(content)
	case "js":
		return js.Regions(content)
	default:
		return nil
	}
}

// InlineStyle is the declaration list of one style attribute
type InlineStyle struct {
	Region       css.Region
	Declarations *ast.Property
}

// RegionError is a syntax error inside one region of a document
type RegionError struct {
	Region css.Region
	Err    *lexer.SyntaxError
}

func (e *RegionError) Error() string {
	return e.Err.Error()
}

func (e *RegionError) Unwrap() error {
	return e.Err
}

// Line returns the zero-based document line the error was reported on
func (e *RegionError) Line() uint32 {
	line := max(e.Err.Line-1, 0)
	return uint32(e.Region.StartLine) + uint32(line) //nolint:gosec // G115: lines are bounded by file size
}

// Range returns the document range of the error's line. Errors on the
// first line of a region start at the region's column.
func (e *RegionError) Range() css.Range {
	line := e.Line()
	start := css.Position{Line: line}
	if line == uint32(e.Region.StartLine) { //nolint:gosec // G115: lines are bounded by file size
		start.Character = uint32(e.Region.StartCol) //nolint:gosec // G115: columns are bounded by file size
	}
	return css.Range{Start: start, End: css.Position{Line: line + 1}}
}

// Result is the parse of every CSS region of one document
type Result struct {
	// Rules chains the rules of all stylesheet regions in document order
	Rules *ast.Rule
	// Inline holds the declaration lists of style attributes
	Inline []InlineStyle
	// Regions lists every region found, parsed or not
	Regions []css.Region
	// Errors holds one entry per region that failed to parse
	Errors []*RegionError
}

// Parse parses each CSS region of content with p. Stylesheet regions are
// appended to one chain in document order; a region with a syntax error
// contributes no rules and is recorded in Errors. label names the document
// in error messages.
func Parse(p *cssparser.Parser, content, languageID, label string) (*Result, error) {
	if !IsCSSSupportedLanguage(languageID) {
		return nil, fmt.Errorf("unsupported language %q", languageID)
	}

	result := &Result{Regions: Regions(content, languageID)}
	for _, region := range result.Regions {
		var err error
		switch region.Kind {
		case css.StylesheetRegion:
			var chain *ast.Rule
			chain, err = p.ParseStylesheet(result.Rules, region.Content, label)
			if err == nil {
				result.Rules = chain
			}
		case css.DeclarationsRegion:
			var decls *ast.Property
			decls, err = p.ParseDeclarations(region.Content)
			if err == nil {
				result.Inline = append(result.Inline, InlineStyle{Region: region, Declarations: decls})
			}
		}
		if err == nil {
			continue
		}
		var syntaxErr *lexer.SyntaxError
		if !errors.As(err, &syntaxErr) {
			return nil, fmt.Errorf("parsing %s: %w", label, err)
		}
		if region.Kind == css.DeclarationsRegion {
			// Inline errors carry the inline label; report the document
			syntaxErr.File = label
		}
		result.Errors = append(result.Errors, &RegionError{Region: region, Err: syntaxErr})
	}
	return result, nil
}

// ColorRef is a hex color literal found in a document
type ColorRef struct {
	// Hex holds six lowercase hex digits
	Hex string
	// Raw is the literal as written, including '#'
	Raw   string
	Range css.Range
}

// Colors returns the hex color literals in the CSS regions of content. A
// region is scanned up to its first lexical error.
func Colors(content, languageID string) []ColorRef {
	var refs []ColorRef
	for _, region := range Regions(content, languageID) {
		index := position.NewIndex(region.Content)
		lex := lexer.New(region.Content, "")
		for {
			tok, err := lex.Next()
			if err != nil || tok.Kind == lexer.EOF {
				break
			}
			if tok.Kind != lexer.Color {
				continue
			}
			end := tok.Offset + 1
			for end < len(region.Content) && isHexDigit(region.Content[end]) {
				end++
			}
			startLine, startChar := index.Position(tok.Offset)
			endLine, endChar := index.Position(end)
			refs = append(refs, ColorRef{
				Hex: tok.Text,
				Raw: region.Content[tok.Offset:end],
				Range: region.OffsetRange(css.Range{
					Start: css.Position{Line: startLine, Character: startChar},
					End:   css.Position{Line: endLine, Character: endChar},
				}),
			})
		}
	}
	return refs
}

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

// Outline returns the tolerant outline of every stylesheet region of
// content, with ranges mapped to document positions.
func Outline(content, languageID string) ([]css.Symbol, error) {
	var symbols []css.Symbol
	regions := Regions(content, languageID)
	if len(regions) == 0 {
		return nil, nil
	}

	p := css.AcquireParser()
	defer css.ReleaseParser(p)
	for _, region := range regions {
		if region.Kind != css.StylesheetRegion {
			continue
		}
		found, err := p.Outline(region.Content)
		if err != nil {
			return nil, fmt.Errorf("outlining %s region: %w", region.Kind, err)
		}
		for i := range found {
			offsetSymbol(&found[i], region)
		}
		symbols = append(symbols, found...)
	}
	return symbols, nil
}

func offsetSymbol(sym *css.Symbol, region css.Region) {
	sym.Range = region.OffsetRange(sym.Range)
	sym.SelectionRange = region.OffsetRange(sym.SelectionRange)
	for i := range sym.Children {
		offsetSymbol(&sym.Children[i], region)
	}
}
