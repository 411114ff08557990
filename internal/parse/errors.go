package parse

import "fmt"

// SyntaxError reports malformed input at a byte offset.
type SyntaxError struct {
	Pos int    // byte offset into the source
	Msg string // what went wrong
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at offset %d: %s", e.Pos, e.Msg)
}
