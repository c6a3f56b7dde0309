package semantic

import (
	"fmt"

	"github.com/dhamidi/paskal/lexer"
)

// Error is a semantic error: an undeclared or duplicate identifier, a type
// mismatch, or a construct the analyzer does not support.
type Error struct {
	Pos     lexer.Position
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("SemanticError at %s: %s", e.Pos, e.Message)
}

func (e *Error) Position() lexer.Position {
	return e.Pos
}
