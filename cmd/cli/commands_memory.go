package main

import (
	"github.com/spf13/cobra"
)

// buildMemoryCmd creates the "memory" command group for the long-term vector memory.
func buildMemoryCmd(verbose *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "memory",
		Short: "Inspect and seed long-term memory",
		Long: `Inspect and seed the long-term memory the assistant recalls from.

Memories are scoped to this installation and stored in Qdrant.`,
	}
	cmd.AddCommand(
		buildMemoryImportCmd(verbose),
		buildMemorySearchCmd(verbose),
	)
	return cmd
}

func buildMemoryImportCmd(verbose *bool) *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Store each paragraph of a text file as a memory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMemoryImport(cmd, *verbose, args[0], dryRun)
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the paragraphs without storing them")
	return cmd
}

func buildMemorySearchCmd(verbose *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "search [text]",
		Short: "Show the memories closest to a text",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMemorySearch(cmd, *verbose, args)
		},
	}
}
