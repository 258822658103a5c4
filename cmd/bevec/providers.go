package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Aleph-Alpha/bevec/v1/bevec"
)

func NewProvidersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "List the registered providers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			names := bevec.Providers()
			if wantJSON(cmd) {
				return writeJSON(cmd, names)
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
