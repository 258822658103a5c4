package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewPurgeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Delete every record of a collection, keeping the collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			collection, _ := cmd.Flags().GetString("collection")

			client, err := openClient(cmd)
			if err != nil {
				return err
			}
			defer client.Close()

			if err := client.DeleteContents(cmd.Context(), collection); err != nil {
				return fmt.Errorf("purge: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "purged %s\n", collection)
			return nil
		},
	}
	cmd.Flags().StringP("collection", "c", "", "Collection to purge (required)")
	_ = cmd.MarkFlagRequired("collection")
	return cmd
}
