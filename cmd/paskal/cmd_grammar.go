package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"

	"github.com/spf13/cobra"
	"golang.org/x/exp/ebnf"

	"github.com/dhamidi/paskal/frontend"
	"github.com/dhamidi/paskal/lexer"
	"github.com/dhamidi/paskal/parser"
)

func newGrammarCmd(a *app) *cobra.Command {
	var productions bool
	var checkOnly bool
	var recognize string

	cmd := &cobra.Command{
		Use:   "grammar [file]",
		Short: "Print and verify the EBNF grammar of the language",
		Long: `Print the grammar the parser accepts and verify it with golang.org/x/exp/ebnf.
With a file argument, verify that file against the start production instead.
With --recognize, check that a source file is a sentence of the grammar.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()

			name, src := "grammar.ebnf", parser.GrammarSource()
			if len(args) == 1 {
				data, err := os.ReadFile(args[0])
				if err != nil {
					return fmt.Errorf("read grammar: %w", err)
				}
				name, src = args[0], string(data)
			}

			g, err := parser.LoadGrammar(name, src, parser.StartProduction)
			if err != nil {
				printErrors(cmd.ErrOrStderr(), err)
				return errReported
			}

			if recognize != "" {
				return a.recognize(cmd, g, recognize)
			}

			switch {
			case checkOnly:
				fmt.Fprintf(w, "%s: ok\n", name)
			case productions && len(args) == 0:
				for _, p := range parser.Productions() {
					fmt.Fprintln(w, p)
				}
			default:
				fmt.Fprint(w, src)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&productions, "productions", false, "list the syntactic productions only")
	cmd.Flags().BoolVar(&checkOnly, "check", false, "only verify the grammar")
	cmd.Flags().StringVar(&recognize, "recognize", "", "source file to check against the grammar")

	return cmd
}

// recognize lexes the source at path and runs it through an Earley
// recognizer built from g.
func (a *app) recognize(cmd *cobra.Command, g ebnf.Grammar, path string) error {
	r, err := parser.NewRecognizer(g, parser.StartProduction)
	if err != nil {
		return err
	}
	rs, err := a.ruleSet()
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read source: %w", err)
	}
	tokens, err := lexer.Tokenize(string(data), rs)
	if err == nil {
		err = r.Recognize(tokens)
	}
	if err != nil {
		msg := err.Error()
		if d, ok := frontend.Diagnose(err); ok {
			msg = d.String()
		}
		fmt.Fprintln(cmd.ErrOrStderr(), msg)
		return errReported
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", path)
	return nil
}

// printErrors prints each error of an ebnf error list on its own line.
func printErrors(w io.Writer, err error) {
	if inner := errors.Unwrap(err); inner != nil {
		err = inner
	}
	v := reflect.ValueOf(err)
	if v.Kind() == reflect.Slice {
		for i := 0; i < v.Len(); i++ {
			fmt.Fprintln(w, v.Index(i).Interface())
		}
	} else {
		fmt.Fprintln(w, err)
	}
}
