// Package position converts between Go byte offsets and the UTF-16 based
// line/character positions used by the Language Server Protocol.
package position

import (
	"math"
	"unicode/utf16"
	"unicode/utf8"
)

// UTF16ToByteOffset converts a UTF-16 code unit column to a byte offset in s.
// A column inside a surrogate pair clamps to the start of that rune.
func UTF16ToByteOffset(s string, utf16Col int) int {
	units, offset := 0, 0
	for offset < len(s) && units < utf16Col {
		r, size := utf8.DecodeRuneInString(s[offset:])
		n := 1
		if r != utf8.RuneError || size != 1 {
			n = utf16.RuneLen(r)
		}
		if units+n > utf16Col {
			break
		}
		units += n
		offset += size
	}
	return offset
}

// ByteOffsetToUTF16 converts a byte offset in s to a UTF-16 code unit column.
// Offsets inside a multi-byte rune count up to the start of that rune.
func ByteOffsetToUTF16(s string, byteOffset int) int {
	byteOffset = min(max(byteOffset, 0), len(s))
	units, offset := 0, 0
	for offset < byteOffset {
		r, size := utf8.DecodeRuneInString(s[offset:])
		if offset+size > byteOffset {
			break
		}
		if r == utf8.RuneError && size == 1 {
			units++
		} else {
			units += utf16.RuneLen(r)
		}
		offset += size
	}
	return units
}

// StringLengthUTF16 returns the length of s in UTF-16 code units.
func StringLengthUTF16(s string) int {
	return ByteOffsetToUTF16(s, len(s))
}

// ByteOffsetToUTF16Uint32 is like ByteOffsetToUTF16 but returns uint32 for LSP compatibility.
func ByteOffsetToUTF16Uint32(s string, byteOffset int) uint32 {
	return clampUint32(ByteOffsetToUTF16(s, byteOffset))
}

// StringLengthUTF16Uint32 is like StringLengthUTF16 but returns uint32 for LSP compatibility.
func StringLengthUTF16Uint32(s string) uint32 {
	return clampUint32(StringLengthUTF16(s))
}

func clampUint32(n int) uint32 {
	if n < 0 {
		return 0
	}
	if n > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(n)
}
