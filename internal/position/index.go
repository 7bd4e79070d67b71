package position

import (
	"sort"
	"strings"
)

// Index maps byte offsets in a text to zero-based lines and UTF-16 columns.
type Index struct {
	text       string
	lineStarts []int
}

// NewIndex records the line starts of text.
func NewIndex(text string) *Index {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &Index{text: text, lineStarts: starts}
}

// LineCount returns the number of lines, counting a trailing empty line.
func (x *Index) LineCount() int {
	return len(x.lineStarts)
}

// Line returns the text of a zero-based line without its newline, or ""
// when the line does not exist.
func (x *Index) Line(line int) string {
	if line < 0 || line >= len(x.lineStarts) {
		return ""
	}
	start := x.lineStarts[line]
	end := len(x.text)
	if line+1 < len(x.lineStarts) {
		end = x.lineStarts[line+1] - 1
	}
	return strings.TrimSuffix(x.text[start:end], "\r")
}

// Position converts a byte offset to a zero-based line and UTF-16 column.
func (x *Index) Position(offset int) (line, character uint32) {
	offset = min(max(offset, 0), len(x.text))
	l := sort.Search(len(x.lineStarts), func(i int) bool {
		return x.lineStarts[i] > offset
	}) - 1
	start := x.lineStarts[l]
	return clampUint32(l), ByteOffsetToUTF16Uint32(x.text[start:], offset-start)
}
