package lexer

import (
	"fmt"
	"strings"
)

type Position struct {
	Offset int
	Line   int
	Column int
}

// IsValid reports whether the position refers to a real source location.
func (p Position) IsValid() bool {
	return p.Line > 0
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Kind is the token kind named by a rule set's final states and lookup table.
type Kind string

const (
	KindIdentifier   Kind = "IDENTIFIER"
	KindNumber       Kind = "NUMBER"
	KindString       Kind = "STRING_LITERAL"
	KindChar         Kind = "CHAR_LITERAL"
	KindKeyword      Kind = "KEYWORD"
	KindComment      Kind = "COMMENT"
	KindAssign       Kind = "ASSIGN"
	KindColon        Kind = "COLON"
	KindSemicolon    Kind = "SEMICOLON"
	KindComma        Kind = "COMMA"
	KindDot          Kind = "DOT"
	KindRange        Kind = "RANGE"
	KindLParen       Kind = "LPAREN"
	KindRParen       Kind = "RPAREN"
	KindLBracket     Kind = "LBRACKET"
	KindRBracket     Kind = "RBRACKET"
	KindPlus         Kind = "PLUS"
	KindMinus        Kind = "MINUS"
	KindStar         Kind = "STAR"
	KindSlash        Kind = "SLASH"
	KindEqual        Kind = "EQUAL"
	KindNotEqual     Kind = "NOT_EQUAL"
	KindLess         Kind = "LESS"
	KindLessEqual    Kind = "LESS_EQUAL"
	KindGreater      Kind = "GREATER"
	KindGreaterEqual Kind = "GREATER_EQUAL"
)

var knownKinds = map[Kind]bool{
	KindIdentifier:   true,
	KindNumber:       true,
	KindString:       true,
	KindChar:         true,
	KindKeyword:      true,
	KindComment:      true,
	KindAssign:       true,
	KindColon:        true,
	KindSemicolon:    true,
	KindComma:        true,
	KindDot:          true,
	KindRange:        true,
	KindLParen:       true,
	KindRParen:       true,
	KindLBracket:     true,
	KindRBracket:     true,
	KindPlus:         true,
	KindMinus:        true,
	KindStar:         true,
	KindSlash:        true,
	KindEqual:        true,
	KindNotEqual:     true,
	KindLess:         true,
	KindLessEqual:    true,
	KindGreater:      true,
	KindGreaterEqual: true,
}

// IsKnown reports whether k belongs to the closed set of token kinds.
func (k Kind) IsKnown() bool {
	return knownKinds[k]
}

func (k Kind) String() string {
	return string(k)
}

type Token struct {
	Kind Kind
	Text string
	Pos  Position
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%s)", t.Kind, t.Text)
}

// Is reports whether t has the given kind and, for keywords, the given
// lowercase text. Keyword comparison ignores the case of the source lexeme.
func (t Token) Is(kind Kind, text string) bool {
	if t.Kind != kind {
		return false
	}
	return text == "" || strings.ToLower(t.Text) == text
}

