package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/Aleph-Alpha/bevec/v1/bevec"
	"github.com/Aleph-Alpha/bevec/v1/vectordb"
)

func NewUpsertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upsert",
		Short: "Insert or replace records from a JSON file",
		Long: `Insert or replace records read from a JSON array of
{"id": "...", "values": [...], "metadata": {...}} objects.
Use --file - to read from stdin.`,
		Args: cobra.NoArgs,
		RunE: runUpsert,
	}
	cmd.Flags().StringP("collection", "c", "", "Target collection (required)")
	cmd.Flags().StringP("file", "f", "", "Records file, - for stdin (required)")
	cmd.Flags().Bool("create", false, "Create the collection from the first record's dimension if missing")
	_ = cmd.MarkFlagRequired("collection")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func runUpsert(cmd *cobra.Command, _ []string) error {
	collection, _ := cmd.Flags().GetString("collection")
	file, _ := cmd.Flags().GetString("file")
	create, _ := cmd.Flags().GetBool("create")

	records, err := readRecords(cmd, file)
	if err != nil {
		return err
	}

	client, err := openClient(cmd)
	if err != nil {
		return err
	}
	defer client.Close()

	ctx := cmd.Context()
	if create {
		dim := 0
		if len(records) > 0 {
			dim = len(records[0].Values)
		}
		coll, err := client.GetOrCreateCollection(ctx, collection, bevec.WithDimension(dim))
		if err != nil {
			return fmt.Errorf("prepare collection: %w", err)
		}
		err = coll.Upsert(ctx, records)
		if err != nil {
			return fmt.Errorf("upsert: %w", err)
		}
	} else if err := client.Upsert(ctx, collection, records); err != nil {
		return fmt.Errorf("upsert: %w", err)
	}

	if wantJSON(cmd) {
		return writeJSON(cmd, map[string]any{"collection": collection, "upserted": len(records)})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "upserted %d records into %s\n", len(records), collection)
	return nil
}

func readRecords(cmd *cobra.Command, file string) ([]vectordb.Record, error) {
	var r io.Reader
	if file == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("open records: %w", err)
		}
		defer f.Close()
		r = f
	}

	dec := json.NewDecoder(r)
	dec.UseNumber()
	var records []vectordb.Record
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("parse records: %w", err)
	}
	for i := range records {
		normalizeMetadata(records[i].Metadata)
	}
	return records, nil
}

// normalizeMetadata keeps integers from JSON as int64 instead of float64.
func normalizeMetadata(meta map[string]any) {
	for k, v := range meta {
		n, ok := v.(json.Number)
		if !ok {
			continue
		}
		if i, err := n.Int64(); err == nil {
			meta[k] = i
		} else if f, err := n.Float64(); err == nil {
			meta[k] = f
		}
	}
}
