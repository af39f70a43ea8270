package equation

import (
	"errors"
	"fmt"
)

// ErrParse is the sentinel wrapped by every parse failure.
var ErrParse = errors.New("parse error")

// ParseError locates a parse failure. Pos is a byte offset into the input
// after whitespace has been removed.
type ParseError struct {
	Input string
	Pos   int
	Msg   string
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}
	if e.Pos < 0 {
		return fmt.Sprintf("%s: %s", ErrParse.Error(), e.Msg)
	}
	return fmt.Sprintf("%s at %d in %q: %s", ErrParse.Error(), e.Pos, e.Input, e.Msg)
}

func (e *ParseError) Unwrap() error { return ErrParse }

func parseErrorf(input string, pos int, format string, args ...any) error {
	return &ParseError{Input: input, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}
