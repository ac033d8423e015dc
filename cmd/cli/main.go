// Command recall talks to the assistant from a terminal.
//
//	recall ask "what is the tallest mountain in europe"
//	recall chat
//	recall memory import notes.txt
//	recall memory search "mountains"
//
// Configuration is read the same way as the API server (config.yaml, .env, environment).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := buildRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildRootCmd() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:           "recall",
		Short:         "Ask questions answered from the web and your past conversations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log pipeline activity to stderr")
	root.AddCommand(
		buildAskCmd(&verbose),
		buildChatCmd(&verbose),
		buildMemoryCmd(&verbose),
	)
	return root
}
