package parser

import (
	"fmt"

	"github.com/dhamidi/paskal/lexer"
)

// Error is a syntax error: the current token, or the end of input, did
// not match what the production expected. Found is nil at end of input.
type Error struct {
	Pos      lexer.Position
	Expected string
	Found    *lexer.Token
}

func (e *Error) Error() string {
	return fmt.Sprintf("SyntaxError at %s: %s", e.Pos, e.Message())
}

// Message is the error text without the position prefix.
func (e *Error) Message() string {
	if e.Found == nil {
		return fmt.Sprintf("expected %s, found EOF", e.Expected)
	}
	return fmt.Sprintf("expected %s, found %s '%s'", e.Expected, e.Found.Kind, e.Found.Text)
}

func (e *Error) Position() lexer.Position {
	return e.Pos
}
