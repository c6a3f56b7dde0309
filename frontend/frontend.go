// Package frontend runs the lexer, parser and analyzer as one pipeline.
package frontend

import (
	"fmt"
	"os"
	"time"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/paskal/ast"
	"github.com/dhamidi/paskal/lexer"
	"github.com/dhamidi/paskal/parser"
	"github.com/dhamidi/paskal/semantic"
)

var log = commonlog.GetLogger("paskal.frontend")

// Stage names a step of the pipeline.
type Stage int

const (
	StageLex Stage = iota
	StageParse
	StageAnalyze
	// StageDone means every stage completed.
	StageDone
)

func (s Stage) String() string {
	switch s {
	case StageLex:
		return "lexer"
	case StageParse:
		return "parser"
	case StageAnalyze:
		return "semantic"
	case StageDone:
		return "done"
	}
	return fmt.Sprintf("Stage(%d)", int(s))
}

type options struct {
	rules    *lexer.RuleSet
	analysis []semantic.Option
	last     Stage
}

type Option func(*options)

// WithRules lexes with rs instead of the bundled rules.
func WithRules(rs *lexer.RuleSet) Option {
	return func(o *options) {
		o.rules = rs
	}
}

// WithLastStage stops the pipeline once stage s has completed.
func WithLastStage(s Stage) Option {
	return func(o *options) {
		o.last = s
	}
}

func WithBoundPolicy(p semantic.BoundPolicy) Option {
	return func(o *options) {
		o.analysis = append(o.analysis, semantic.WithBoundPolicy(p))
	}
}

// Result holds the output of every stage that completed. Reached is the
// stage that failed, the first stage that was not run, or StageDone.
type Result struct {
	Source  string
	Tokens  []lexer.Token
	Tree    *parser.Interior
	Program *ast.Program
	Tables  *semantic.Tables
	Reached Stage
}

// Run takes src through all stages. It stops at the first error and
// returns it together with the stages completed before it.
func Run(src string, opts ...Option) (*Result, error) {
	o := &options{last: StageAnalyze}
	for _, opt := range opts {
		opt(o)
	}
	if o.rules == nil {
		o.rules = lexer.DefaultRules()
	}

	res := &Result{Source: src, Reached: StageLex}

	start := time.Now()
	tokens, err := lexer.Tokenize(src, o.rules)
	if err != nil {
		return res, err
	}
	res.Tokens = tokens
	log.Debugf("lexed %d tokens in %s", len(tokens), time.Since(start))

	res.Reached = StageParse
	if o.last < StageParse {
		return res, nil
	}
	start = time.Now()
	tree, err := parser.Parse(tokens)
	if err != nil {
		return res, err
	}
	res.Tree = tree
	log.Debugf("parsed in %s", time.Since(start))

	res.Reached = StageAnalyze
	if o.last < StageAnalyze {
		return res, nil
	}
	start = time.Now()
	prog, tables, err := semantic.Analyze(tree, o.analysis...)
	if err != nil {
		return res, err
	}
	res.Program, res.Tables = prog, tables
	log.Debugf("analyzed in %s", time.Since(start))

	res.Reached = StageDone
	log.Infof("program %s: %d tokens, %d symbols", prog.Name, len(tokens), len(tables.UserEntries()))
	return res, nil
}

// RunFile reads path and runs the pipeline on its contents.
func RunFile(path string, opts ...Option) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	return Run(string(data), opts...)
}
