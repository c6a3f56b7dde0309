package lexer

import (
	"fmt"
	"strings"
)

// Lexer turns source text into tokens with a rule-driven finite automaton.
// A Lexer consumes its cursor; tokenizing again needs a new Lexer.
type Lexer struct {
	cursor *Cursor
	rules  *RuleSet
}

func New(src string, rules *RuleSet) *Lexer {
	return &Lexer{
		cursor: NewCursor(src),
		rules:  rules,
	}
}

type checkpoint struct {
	state  string
	pos    Position
	length int
}

// NextToken returns the next token. ok is false at end of input.
func (l *Lexer) NextToken() (tok Token, ok bool, err error) {
	l.skipWhitespace()
	if l.cursor.EOF() {
		return Token{}, false, nil
	}

	start := l.cursor.Position()
	state := l.rules.InitialState
	var lexeme strings.Builder
	var last *checkpoint

	for !l.cursor.EOF() {
		next, found := l.rules.Next(state, l.rules.Classify(l.cursor.Peek()))
		if !found {
			break
		}
		lexeme.WriteRune(l.cursor.Advance())
		state = next
		if _, final := l.rules.Accepting(state); final {
			last = &checkpoint{state: state, pos: l.cursor.Position(), length: lexeme.Len()}
		}
	}

	if last == nil {
		return Token{}, false, l.failure(start, lexeme.String())
	}

	l.cursor.Reset(last.pos)
	text := lexeme.String()[:last.length]
	kind, _ := l.rules.Accepting(last.state)
	if reserved, found := l.rules.Reserved(strings.ToLower(text)); found {
		kind = reserved
	}
	tok = Token{Kind: kind, Text: text, Pos: start}
	log.Debugf("%s %s", start, tok)
	return tok, true, nil
}

func (l *Lexer) failure(start Position, partial string) *Error {
	if l.cursor.EOF() && partial != "" {
		return &Error{
			Pos:     start,
			Message: fmt.Sprintf("unterminated token %q at end of input", partial),
		}
	}
	return &Error{
		Pos:     l.cursor.Position(),
		Message: fmt.Sprintf("unexpected character %q", l.cursor.Peek()),
	}
}

func (l *Lexer) skipWhitespace() {
	for !l.cursor.EOF() && l.rules.Classify(l.cursor.Peek()) == ClassWhitespace {
		l.cursor.Advance()
	}
}

// Tokenize drains the lexer. On error the tokens produced so far are
// returned with it.
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token
	for {
		tok, ok, err := l.NextToken()
		if err != nil {
			return tokens, err
		}
		if !ok {
			return tokens, nil
		}
		tokens = append(tokens, tok)
	}
}

// Tokenize is a convenience for New(src, rules).Tokenize().
func Tokenize(src string, rules *RuleSet) ([]Token, error) {
	return New(src, rules).Tokenize()
}
