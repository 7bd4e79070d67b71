package lexer

// eof is the held character once the input is exhausted.
const eof = -1

func isWhite(c int) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f'
}

// isNameStart reports whether c may begin an identifier. Bytes >= 128 are
// accepted so UTF-8 sequences pass through untouched.
func isNameStart(c int) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') ||
		c == '_' || c == '\\' || c >= 128
}

func isName(c int) bool {
	return isNameStart(c) || isDigit(c) || c == '-'
}

func isDigit(c int) bool {
	return c >= '0' && c <= '9'
}

func hexValue(c int) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
