package main

import (
	"strings"

	"github.com/spf13/cobra"
)

func buildAskCmd(verbose *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask a single question and print the streamed answer",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAsk(cmd, *verbose, strings.Join(args, " "))
		},
	}
}

func buildChatCmd(verbose *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive conversation",
		Long: `Start an interactive conversation.

Type a question and press enter. Ctrl-C while an answer is streaming cancels it.
Commands: /reset cancels the current answer, /exit quits.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd, *verbose)
		},
	}
}
