package lexer

import (
	"errors"
	"fmt"
)

// ErrSyntax is the sentinel every SyntaxError unwraps to.
var ErrSyntax = errors.New("css syntax error")

// SyntaxError reports malformed input at a source line.
type SyntaxError struct {
	Message string
	File    string
	Line    int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("css syntax error: %s (%s:%d)", e.Message, e.File, e.Line)
}

func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

// NewSyntaxError creates a new SyntaxError
func NewSyntaxError(message, file string, line int) *SyntaxError {
	return &SyntaxError{Message: message, File: file, Line: line}
}
