package parser

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/exp/ebnf"
)

// StartProduction is the production a program is parsed from.
const StartProduction = "Program"

//go:embed grammar.ebnf
var grammarSource string

// GrammarSource returns the EBNF text of the grammar the parser accepts.
func GrammarSource() string {
	return grammarSource
}

// Grammar parses and verifies the embedded grammar.
func Grammar() (ebnf.Grammar, error) {
	return LoadGrammar("grammar.ebnf", grammarSource, StartProduction)
}

// LoadGrammar parses src as EBNF and verifies that every production is
// defined and reachable from start.
func LoadGrammar(name, src, start string) (ebnf.Grammar, error) {
	g, err := ebnf.Parse(name, strings.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	if err := ebnf.Verify(g, start); err != nil {
		return nil, fmt.Errorf("verify grammar: %w", err)
	}
	return g, nil
}

// Productions lists the non-lexical productions of the embedded grammar in
// source order.
func Productions() []string {
	g, err := Grammar()
	if err != nil {
		return nil
	}
	var names []string
	for name := range g {
		if !isLexical(name) {
			names = append(names, name)
		}
	}
	sort.Slice(names, func(i, j int) bool {
		return g[names[i]].Pos().Offset < g[names[j]].Pos().Offset
	})
	return names
}

func isLexical(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsLower(r)
}
