package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Aleph-Alpha/bevec/v1/bevec"
	"github.com/Aleph-Alpha/bevec/v1/vectordb"
)

func NewQueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Find the records nearest to a vector",
		Long: `Find the records nearest to a vector.

The optional --filter takes a JSON filter such as
{"must": [{"field": "genre", "equalTo": "jazz"}]}.`,
		Args: cobra.NoArgs,
		RunE: runQuery,
	}
	cmd.Flags().StringP("collection", "c", "", "Collection to search (required)")
	cmd.Flags().String("vector", "", "Comma separated query vector (required)")
	cmd.Flags().IntP("top-k", "k", vectordb.DefaultTopK, "Number of results")
	cmd.Flags().String("filter", "", "JSON metadata filter")
	_ = cmd.MarkFlagRequired("collection")
	_ = cmd.MarkFlagRequired("vector")
	return cmd
}

func runQuery(cmd *cobra.Command, _ []string) error {
	collection, _ := cmd.Flags().GetString("collection")
	rawVector, _ := cmd.Flags().GetString("vector")
	rawFilter, _ := cmd.Flags().GetString("filter")

	vector, err := parseVector(rawVector)
	if err != nil {
		return err
	}

	var opts []bevec.QueryOption
	if cmd.Flags().Changed("top-k") {
		k, _ := cmd.Flags().GetInt("top-k")
		opts = append(opts, bevec.WithTopK(k))
	}
	if rawFilter != "" {
		fs, err := vectordb.ParseFilterSet([]byte(rawFilter))
		if err != nil {
			return err
		}
		opts = append(opts, bevec.WithFilter(fs))
	}

	client, err := openClient(cmd)
	if err != nil {
		return err
	}
	defer client.Close()

	results, err := client.Query(cmd.Context(), collection, vector, opts...)
	if err != nil {
		return fmt.Errorf("query: %w", err)
	}

	if wantJSON(cmd) {
		return writeJSON(cmd, results)
	}
	for _, r := range results {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%.4f\t%v\n", r.ID, r.Score, r.Metadata)
	}
	return nil
}

// parseVector parses "0.1, 0.2,0.3" into a vector.
func parseVector(s string) ([]float32, error) {
	parts := strings.Split(s, ",")
	out := make([]float32, 0, len(parts))
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		f, err := strconv.ParseFloat(p, 32)
		if err != nil {
			return nil, vectordb.ValidationErrorf("query", "vector component %d (%q) is not a number", i, p)
		}
		out = append(out, float32(f))
	}
	return out, nil
}
