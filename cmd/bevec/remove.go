package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "remove <id>...",
		Aliases: []string{"rm"},
		Short:   "Delete records by ID",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			collection, _ := cmd.Flags().GetString("collection")

			client, err := openClient(cmd)
			if err != nil {
				return err
			}
			defer client.Close()

			if err := client.Delete(cmd.Context(), collection, args...); err != nil {
				return fmt.Errorf("remove: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %d records from %s\n", len(args), collection)
			return nil
		},
	}
	cmd.Flags().StringP("collection", "c", "", "Collection to delete from (required)")
	_ = cmd.MarkFlagRequired("collection")
	return cmd
}
