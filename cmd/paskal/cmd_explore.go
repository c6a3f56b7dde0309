package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/paskal/explore"
)

func newExploreCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "explore <file>",
		Short: "Browse the tokens, parse tree, tables and AST of a program",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := a.frontendOptions()
			if err != nil {
				return err
			}
			return explore.Run(args[0], opts...)
		},
	}
}
