package lexer

import "fmt"

// Error is a lexical error: no transition was possible and the automaton
// never reached an accepting state for the current token.
type Error struct {
	Pos     Position
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("LexicalError at %s: %s", e.Pos, e.Message)
}

func (e *Error) Position() Position {
	return e.Pos
}
