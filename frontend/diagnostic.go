package frontend

import (
	"errors"

	"github.com/dhamidi/paskal/lexer"
	"github.com/dhamidi/paskal/parser"
	"github.com/dhamidi/paskal/semantic"
)

// Diagnostic is a stage error reduced to what an editor or printer needs.
type Diagnostic struct {
	Stage   Stage
	Pos     lexer.Position
	Message string
}

// Kind is the error kind shown to users, e.g. "SyntaxError".
func (d Diagnostic) Kind() string {
	switch d.Stage {
	case StageLex:
		return "LexicalError"
	case StageParse:
		return "SyntaxError"
	}
	return "SemanticError"
}

func (d Diagnostic) String() string {
	return d.Kind() + " at " + d.Pos.String() + ": " + d.Message
}

// Diagnose recognizes the errors returned by Run. It reports false for
// any other error.
func Diagnose(err error) (Diagnostic, bool) {
	var (
		lexErr   *lexer.Error
		parseErr *parser.Error
		semErr   *semantic.Error
	)
	switch {
	case errors.As(err, &lexErr):
		return Diagnostic{Stage: StageLex, Pos: lexErr.Pos, Message: lexErr.Message}, true
	case errors.As(err, &parseErr):
		return Diagnostic{Stage: StageParse, Pos: parseErr.Pos, Message: parseErr.Message()}, true
	case errors.As(err, &semErr):
		return Diagnostic{Stage: StageAnalyze, Pos: semErr.Pos, Message: semErr.Message}, true
	}
	return Diagnostic{}, false
}
