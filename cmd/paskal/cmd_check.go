package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/paskal/format"
	"github.com/dhamidi/paskal/frontend"
)

type outputFlags struct {
	format   string
	noColor  bool
	sections string
}

func (f *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "output format (text, json)")
	cmd.Flags().BoolVar(&f.noColor, "no-color", false, "disable colored output")
}

func newCheckCmd(a *app) *cobra.Command {
	var out outputFlags

	cmd := &cobra.Command{
		Use:   "check <file>",
		Short: "Lex, parse and analyze a program and print every stage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sections, err := format.ParseSections(out.sections)
			if err != nil {
				return err
			}
			return a.runStages(cmd, args[0], &out, sections, frontend.StageAnalyze)
		},
	}

	out.register(cmd)
	cmd.Flags().StringVarP(&out.sections, "sections", "s", "all", "sections to print (tokens, tree, tables, ast, all)")

	return cmd
}

func newTokensCmd(a *app) *cobra.Command {
	var out outputFlags

	cmd := &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the tokens of a program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runStages(cmd, args[0], &out, format.SectionTokens, frontend.StageLex)
		},
	}

	out.register(cmd)

	return cmd
}

func newParseCmd(a *app) *cobra.Command {
	var out outputFlags

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Print the parse tree of a program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runStages(cmd, args[0], &out, format.SectionTree, frontend.StageParse)
		},
	}

	out.register(cmd)

	return cmd
}

// runStages runs the pipeline on path up to last and prints sections.
// A failing stage is printed after the output of the stages before it.
func (a *app) runStages(cmd *cobra.Command, path string, out *outputFlags, sections format.Section, last frontend.Stage) error {
	opts, err := a.frontendOptions()
	if err != nil {
		return err
	}
	opts = append(opts, frontend.WithLastStage(last))

	res, runErr := frontend.RunFile(path, opts...)
	if res == nil {
		return runErr
	}

	outputFormat := a.cfg.Output.Format
	if out.format != "" {
		outputFormat = out.format
	}
	color := a.cfg.Output.Color && !out.noColor

	enc, err := format.New(outputFormat, cmd.OutOrStdout(), sections, color)
	if err != nil {
		return err
	}
	if err := enc.Encode(res, runErr); err != nil {
		return err
	}
	if runErr != nil {
		return errReported
	}
	return nil
}
