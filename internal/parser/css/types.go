package css

// Position represents a zero-based position in a text document
type Position struct {
	Line      uint32
	Character uint32
}

// Range represents a range in a text document
type Range struct {
	Start Position
	End   Position
}

// RegionKind identifies how the text of a Region is parsed
type RegionKind int

const (
	// UnknownRegion is the zero value, indicating an uninitialized region kind
	UnknownRegion RegionKind = iota
	// StylesheetRegion holds rules, as in a .css file or a <style> element
	StylesheetRegion
	// DeclarationsRegion holds a bare declaration list, as in style="..."
	DeclarationsRegion
)

func (k RegionKind) String() string {
	switch k {
	case StylesheetRegion:
		return "stylesheet"
	case DeclarationsRegion:
		return "declarations"
	}
	return "unknown"
}

// Region is CSS text found inside a document. StartLine and StartCol locate
// its first character, zero-based, with the column in UTF-16 code units.
type Region struct {
	Content   string
	StartLine uint
	StartCol  uint
	Kind      RegionKind
}

// Offset maps a position inside the region's content to the document. Only
// positions on the first line of the region are shifted horizontally.
func (r Region) Offset(pos Position) Position {
	if pos.Line == 0 {
		pos.Character += uint32(r.StartCol) //nolint:gosec // G115: region positions from tree-sitter are bounded by file size
	}
	pos.Line += uint32(r.StartLine) //nolint:gosec // G115: region positions from tree-sitter are bounded by file size
	return pos
}

// OffsetRange maps both ends of a range inside the region to the document.
func (r Region) OffsetRange(rng Range) Range {
	return Range{Start: r.Offset(rng.Start), End: r.Offset(rng.End)}
}

// SymbolKind classifies outline entries
type SymbolKind int

const (
	// RuleSymbol is a style rule; its name is the selector text
	RuleSymbol SymbolKind = iota
	// AtRuleSymbol is an at-rule such as @media or @keyframes
	AtRuleSymbol
	// DeclarationSymbol is a property declaration inside a rule
	DeclarationSymbol
)

// Symbol is one entry of a stylesheet outline
type Symbol struct {
	Name           string
	Detail         string
	Kind           SymbolKind
	Range          Range
	SelectionRange Range
	Children       []Symbol
}
