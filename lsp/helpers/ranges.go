// Package helpers converts between internal positions and LSP protocol
// positions.
package helpers

import (
	"bennypowers.dev/csstree/internal/parser/css"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// ToProtocolPosition converts a zero-based UTF-16 position
func ToProtocolPosition(pos css.Position) protocol.Position {
	return protocol.Position{Line: pos.Line, Character: pos.Character}
}

// ToProtocolRange converts a range of zero-based UTF-16 positions
func ToProtocolRange(r css.Range) protocol.Range {
	return protocol.Range{
		Start: ToProtocolPosition(r.Start),
		End:   ToProtocolPosition(r.End),
	}
}

// RangesIntersect checks if two LSP ranges intersect.
// Ranges are half-open intervals [start, end). An empty range intersects a
// range that contains its position.
//
// Examples:
//   - [0:0, 0:5) and [0:3, 0:7) -> true
//   - [0:0, 0:5) and [0:5, 0:10) -> false
//   - [0:0, 1:0) and [0:5, 0:10) -> true
//   - [0:2, 0:2) and [0:0, 0:5) -> true
func RangesIntersect(a, b protocol.Range) bool {
	if isEmpty(a) {
		return contains(b, a.Start)
	}
	if isEmpty(b) {
		return contains(a, b.Start)
	}
	return before(a.Start, b.End) && before(b.Start, a.End)
}

func isEmpty(r protocol.Range) bool {
	return r.Start == r.End
}

// before reports whether a is strictly before b
func before(a, b protocol.Position) bool {
	return a.Line < b.Line || (a.Line == b.Line && a.Character < b.Character)
}

func contains(r protocol.Range, pos protocol.Position) bool {
	return !before(pos, r.Start) && before(pos, r.End)
}
