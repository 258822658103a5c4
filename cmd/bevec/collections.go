package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Aleph-Alpha/bevec/v1/bevec"
	"github.com/Aleph-Alpha/bevec/v1/vectordb"
)

// infoConcurrency bounds parallel GetCollection calls.
const infoConcurrency = 4

func NewCollectionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "collections",
		Aliases: []string{"indexes"},
		Short:   "Manage collections",
	}
	cmd.AddCommand(
		newCollectionsListCmd(),
		newCollectionsCreateCmd(),
		newCollectionsDeleteCmd(),
		newCollectionsInfoCmd(),
	)
	return cmd
}

func newCollectionsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List collections",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := openClient(cmd)
			if err != nil {
				return err
			}
			defer client.Close()

			names, err := client.ListCollections(cmd.Context())
			if err != nil {
				return fmt.Errorf("list collections: %w", err)
			}
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

func newCollectionsCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a collection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dim, _ := cmd.Flags().GetInt("dimension")
			rawMetric, _ := cmd.Flags().GetString("metric")
			metric, err := vectordb.ParseMetric(rawMetric)
			if err != nil {
				return err
			}

			client, err := openClient(cmd)
			if err != nil {
				return err
			}
			defer client.Close()

			if err := client.CreateCollection(cmd.Context(), args[0], dim, bevec.WithMetric(metric)); err != nil {
				return fmt.Errorf("create collection: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s (%d dims, %s)\n", args[0], dim, metric)
			return nil
		},
	}
	cmd.Flags().IntP("dimension", "d", 0, "Vector dimension (required)")
	cmd.Flags().StringP("metric", "m", string(vectordb.DefaultMetric), "Similarity metric: cosine, euclidean or dotproduct")
	_ = cmd.MarkFlagRequired("dimension")
	return cmd
}

func newCollectionsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "delete <name>",
		Aliases: []string{"rm"},
		Short:   "Delete a collection and all its records",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := openClient(cmd)
			if err != nil {
				return err
			}
			defer client.Close()

			if err := client.DeleteCollection(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("delete collection: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}
}

func newCollectionsInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info [name...]",
		Short: "Describe collections, all of them when no name is given",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := openClient(cmd)
			if err != nil {
				return err
			}
			defer client.Close()

			names := args
			if len(names) == 0 {
				if names, err = client.ListCollections(cmd.Context()); err != nil {
					return fmt.Errorf("list collections: %w", err)
				}
			}

			infos := make([]vectordb.Collection, len(names))
			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(infoConcurrency)
			for i, name := range names {
				g.Go(func() error {
					coll, err := client.GetCollection(ctx, name)
					if err != nil {
						return fmt.Errorf("describe %s: %w", name, err)
					}
					infos[i] = coll.Info()
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			if wantJSON(cmd) {
				return writeJSON(cmd, infos)
			}
			for _, info := range infos {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\tdim=%d\tmetric=%s\tpoints=%d\tstatus=%s\n",
					info.Name, info.Dimension, info.Metric, info.PointCount, info.Status)
			}
			return nil
		},
	}
}
