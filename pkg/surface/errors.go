package surface

import "fmt"

// SyntaxError is a parse or lex failure located at a Span. The parser
// and lexer never panic on malformed input — every failure path
// returns one of these instead.
type SyntaxError struct {
	Span Span
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %s: %s", e.Span, e.Msg)
}
