package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/paskal/config"
	"github.com/dhamidi/paskal/format"
	"github.com/dhamidi/paskal/frontend"
	"github.com/dhamidi/paskal/lexer"
)

const version = "0.1.0"

// errReported is returned by commands that already printed their error.
var errReported = errors.New("reported")

type app struct {
	configPath string
	verbosity  int
	rules      string
	bounds     string

	cfg *config.Config
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, format.ErrorStyle(true).Render("error: "+err.Error()))
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "paskal",
		Short:         "Lexer, parser and semantic analyzer for Indonesian Pascal",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default: nearest "+config.FileName+")")
	flags.CountVarP(&a.verbosity, "verbose", "v", "log more (repeatable)")
	flags.StringVar(&a.rules, "rules", "", "lexer rule file (JSON or YAML)")
	flags.StringVar(&a.bounds, "bounds", "", "non-constant array bounds: error or zero")

	rootCmd.AddCommand(newCheckCmd(a))
	rootCmd.AddCommand(newTokensCmd(a))
	rootCmd.AddCommand(newParseCmd(a))
	rootCmd.AddCommand(newGrammarCmd(a))
	rootCmd.AddCommand(newRulesCmd(a))
	rootCmd.AddCommand(newLSPCmd(a))
	rootCmd.AddCommand(newExploreCmd(a))

	return rootCmd
}

// load reads the configuration and applies the global flags on top of it.
func (a *app) load(cmd *cobra.Command) error {
	var err error
	if a.configPath != "" {
		a.cfg, err = config.Load(a.configPath)
	} else {
		a.cfg, err = config.Discover(".")
	}
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("rules") {
		a.cfg.Rules = a.rules
	}
	if flags.Changed("bounds") {
		a.cfg.Analysis.Bounds = a.bounds
	}
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	verbosity := max(a.verbosity, a.cfg.Log.Verbosity)
	var logPath *string
	if a.cfg.Log.File != "" {
		logPath = &a.cfg.Log.File
	}
	commonlog.Configure(verbosity, logPath)
	return nil
}

func (a *app) ruleSet() (*lexer.RuleSet, error) {
	if a.cfg.Rules == "" {
		return lexer.DefaultRules(), nil
	}
	return lexer.LoadRules(a.cfg.Rules)
}

func (a *app) frontendOptions() ([]frontend.Option, error) {
	rs, err := a.ruleSet()
	if err != nil {
		return nil, err
	}
	return []frontend.Option{
		frontend.WithRules(rs),
		frontend.WithBoundPolicy(a.cfg.BoundPolicy()),
	}, nil
}
