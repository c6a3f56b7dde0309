package parser

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/exp/ebnf"

	"github.com/dhamidi/paskal/lexer"
)

// lexicalKinds maps the lexical productions of the grammar to the token
// kind the lexer produces for them.
var lexicalKinds = map[string]lexer.Kind{
	"identifier":     lexer.KindIdentifier,
	"number":         lexer.KindNumber,
	"string_literal": lexer.KindString,
	"char_literal":   lexer.KindChar,
}

// symbol is a nonterminal when rule is set, otherwise a terminal matching
// one token by kind or by text.
type symbol struct {
	rule    string
	kind    lexer.Kind
	literal string
}

func (s symbol) matches(tok lexer.Token) bool {
	switch {
	case s.kind != "":
		return tok.Kind == s.kind
	case tok.Kind == lexer.KindKeyword:
		return strings.ToLower(tok.Text) == s.literal
	case tok.Kind == lexer.KindIdentifier, tok.Kind == lexer.KindNumber,
		tok.Kind == lexer.KindString, tok.Kind == lexer.KindChar:
		return false
	}
	return tok.Text == s.literal
}

func (s symbol) String() string {
	if s.kind != "" {
		return string(s.kind)
	}
	return "'" + s.literal + "'"
}

type rule struct {
	lhs string
	rhs []symbol
}

// Recognizer checks token sequences against an EBNF grammar with an
// Earley chart. Options, repetitions and groups are rewritten into plain
// rules when the recognizer is built.
type Recognizer struct {
	start    string
	rules    []rule
	byLHS    map[string][]int
	nullable map[string]bool
	fresh    int
}

// NewRecognizer compiles the syntactic productions of g reachable from
// start. Lexical productions must be listed in lexicalKinds.
func NewRecognizer(g ebnf.Grammar, start string) (*Recognizer, error) {
	r := &Recognizer{
		start:    start,
		byLHS:    make(map[string][]int),
		nullable: make(map[string]bool),
	}
	for name, prod := range g {
		if isLexical(name) {
			continue
		}
		if err := r.alternatives(name, prod.Expr); err != nil {
			return nil, err
		}
	}
	if len(r.byLHS[start]) == 0 {
		return nil, fmt.Errorf("production %q not found in grammar", start)
	}
	r.computeNullable()
	return r, nil
}

// DefaultRecognizer recognizes programs of the embedded grammar.
func DefaultRecognizer() (*Recognizer, error) {
	g, err := Grammar()
	if err != nil {
		return nil, err
	}
	return NewRecognizer(g, StartProduction)
}

func (r *Recognizer) add(lhs string, rhs []symbol) {
	r.byLHS[lhs] = append(r.byLHS[lhs], len(r.rules))
	r.rules = append(r.rules, rule{lhs: lhs, rhs: rhs})
}

func (r *Recognizer) alternatives(lhs string, x ebnf.Expression) error {
	alts, ok := x.(ebnf.Alternative)
	if !ok {
		alts = ebnf.Alternative{x}
	}
	for _, alt := range alts {
		rhs, err := r.sequence(lhs, alt)
		if err != nil {
			return err
		}
		r.add(lhs, rhs)
	}
	return nil
}

func (r *Recognizer) sequence(lhs string, x ebnf.Expression) ([]symbol, error) {
	if x == nil {
		return nil, nil
	}
	seq, ok := x.(ebnf.Sequence)
	if !ok {
		seq = ebnf.Sequence{x}
	}
	var out []symbol
	for _, e := range seq {
		sym, err := r.symbol(lhs, e)
		if err != nil {
			return nil, err
		}
		out = append(out, sym)
	}
	return out, nil
}

func (r *Recognizer) symbol(lhs string, x ebnf.Expression) (symbol, error) {
	switch x := x.(type) {
	case *ebnf.Name:
		if !isLexical(x.String) {
			return symbol{rule: x.String}, nil
		}
		kind, ok := lexicalKinds[x.String]
		if !ok {
			return symbol{}, fmt.Errorf("lexical production %q has no token kind", x.String)
		}
		return symbol{kind: kind}, nil
	case *ebnf.Token:
		return symbol{literal: x.String}, nil
	case *ebnf.Group:
		name := r.freshName(lhs)
		return symbol{rule: name}, r.alternatives(name, x.Body)
	case ebnf.Alternative:
		name := r.freshName(lhs)
		return symbol{rule: name}, r.alternatives(name, x)
	case *ebnf.Option:
		name := r.freshName(lhs)
		r.add(name, nil)
		return symbol{rule: name}, r.alternatives(name, x.Body)
	case *ebnf.Repetition:
		// name = ε | body name
		name := r.freshName(lhs)
		r.add(name, nil)
		body := r.freshName(lhs)
		if err := r.alternatives(body, x.Body); err != nil {
			return symbol{}, err
		}
		r.add(name, []symbol{{rule: body}, {rule: name}})
		return symbol{rule: name}, nil
	}
	return symbol{}, fmt.Errorf("%s: unsupported expression %T", lhs, x)
}

func (r *Recognizer) freshName(lhs string) string {
	r.fresh++
	return fmt.Sprintf("%s#%d", lhs, r.fresh)
}

func (r *Recognizer) computeNullable() {
	for changed := true; changed; {
		changed = false
		for _, rl := range r.rules {
			if r.nullable[rl.lhs] {
				continue
			}
			empty := true
			for _, sym := range rl.rhs {
				if sym.rule == "" || !r.nullable[sym.rule] {
					empty = false
					break
				}
			}
			if empty {
				r.nullable[rl.lhs] = true
				changed = true
			}
		}
	}
}

type item struct {
	rule   int
	dot    int
	origin int
}

type itemSet struct {
	items []item
	seen  map[item]bool
}

func (s *itemSet) add(it item) {
	if s.seen[it] {
		return
	}
	s.seen[it] = true
	s.items = append(s.items, it)
}

// Recognize reports whether tokens form a sentence of the grammar. Comment
// tokens are skipped. The error is a *Error at the first token no item
// could consume.
func (r *Recognizer) Recognize(tokens []lexer.Token) error {
	input := make([]lexer.Token, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Kind != lexer.KindComment {
			input = append(input, tok)
		}
	}

	n := len(input)
	chart := make([]itemSet, n+1)
	for i := range chart {
		chart[i].seen = make(map[item]bool)
	}
	for _, idx := range r.byLHS[r.start] {
		chart[0].add(item{rule: idx})
	}

	for i := 0; i <= n; i++ {
		set := &chart[i]
		for j := 0; j < len(set.items); j++ {
			it := set.items[j]
			rl := r.rules[it.rule]

			if it.dot == len(rl.rhs) {
				r.complete(chart, i, rl.lhs, it.origin)
				continue
			}

			next := rl.rhs[it.dot]
			advanced := item{rule: it.rule, dot: it.dot + 1, origin: it.origin}
			switch {
			case next.rule != "":
				for _, idx := range r.byLHS[next.rule] {
					set.add(item{rule: idx, origin: i})
				}
				if r.nullable[next.rule] {
					set.add(advanced)
				}
			case i < n && next.matches(input[i]):
				chart[i+1].add(advanced)
			}
		}
	}

	for _, it := range chart[n].items {
		rl := r.rules[it.rule]
		if rl.lhs == r.start && it.origin == 0 && it.dot == len(rl.rhs) {
			return nil
		}
	}
	return r.failure(chart, input)
}

func (r *Recognizer) complete(chart []itemSet, i int, lhs string, origin int) {
	waiting := &chart[origin]
	// chart[i] may be the set being completed into, so iterate by index.
	for k := 0; k < len(waiting.items); k++ {
		it := waiting.items[k]
		rl := r.rules[it.rule]
		if it.dot < len(rl.rhs) && rl.rhs[it.dot].rule == lhs {
			chart[i].add(item{rule: it.rule, dot: it.dot + 1, origin: it.origin})
		}
	}
}

// failure builds the error for the furthest chart position that still
// held items.
func (r *Recognizer) failure(chart []itemSet, input []lexer.Token) error {
	furthest := 0
	for i := len(chart) - 1; i >= 0; i-- {
		if len(chart[i].items) > 0 {
			furthest = i
			break
		}
	}

	expected := make(map[string]bool)
	for _, it := range chart[furthest].items {
		rl := r.rules[it.rule]
		if it.dot < len(rl.rhs) && rl.rhs[it.dot].rule == "" {
			expected[rl.rhs[it.dot].String()] = true
		}
	}
	if len(expected) == 0 {
		expected["end of input"] = true
	}
	names := make([]string, 0, len(expected))
	for name := range expected {
		names = append(names, name)
	}
	sort.Strings(names)

	err := &Error{Pos: endPosition(input), Expected: strings.Join(names, " or ")}
	if furthest < len(input) {
		tok := input[furthest]
		err.Pos, err.Found = tok.Pos, &tok
	}
	return err
}
