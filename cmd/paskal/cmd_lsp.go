package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/paskal/lsp"
)

func newLSPCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := a.frontendOptions()
			if err != nil {
				return err
			}
			server := lsp.NewServer(version, opts...)
			return server.RunStdio()
		},
	}
}
