package main

import (
	"github.com/spf13/cobra"
)

func NewRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "bevec",
		Short:         "Work with vector databases through one interface",
		Long:          `Manage collections, upsert records and run similarity queries on Qdrant or an embedded chromem store.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}

	addPersistentFlags(rootCmd)
	rootCmd.AddCommand(
		NewProvidersCmd(),
		NewCollectionsCmd(),
		NewUpsertCmd(),
		NewQueryCmd(),
		NewRemoveCmd(),
		NewPurgeCmd(),
	)
	withSessions(rootCmd)
	return rootCmd
}

func addPersistentFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("config", "", "Path to a bevec YAML config file")
	cmd.PersistentFlags().String("provider", "", "Provider to use (overrides the config file)")
	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Log every backend call to stderr")
	cmd.PersistentFlags().Bool("stats", false, "Print per-operation counts to stderr when the command ends")
}
