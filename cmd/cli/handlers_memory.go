package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"recall-assistant/internal/memory"
	"recall-assistant/internal/model"
)

func runMemoryImport(cmd *cobra.Command, verbose bool, path string, dryRun bool) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	paragraphs := splitParagraphs(string(raw))
	out := cmd.OutOrStdout()

	if dryRun {
		for i, p := range paragraphs {
			fmt.Fprintf(out, "[%d] %s\n", i+1, p)
		}
		return nil
	}

	ctx := cmd.Context()
	a, err := setup(ctx, verbose)
	if err != nil {
		return err
	}
	defer a.Close(context.Background())

	stored, failed := importParagraphs(ctx, a.Memory, a.Scope, paragraphs, out)
	fmt.Fprintf(out, "Imported %d memories (%d failed)\n", stored, failed)
	if failed > 0 && stored == 0 {
		return fmt.Errorf("no memories stored")
	}
	return nil
}

// importParagraphs stores each paragraph and keeps going on failure.
func importParagraphs(ctx context.Context, mem memory.UseCase, sc model.Scope, paragraphs []string, out io.Writer) (stored, failed int) {
	for i, p := range paragraphs {
		if _, err := mem.Remember(ctx, sc, p); err != nil {
			fmt.Fprintf(out, "[%d] failed: %v\n", i+1, err)
			failed++
			continue
		}
		stored++
	}
	return stored, failed
}

func runMemorySearch(cmd *cobra.Command, verbose bool, args []string) error {
	ctx := cmd.Context()
	a, err := setup(ctx, verbose)
	if err != nil {
		return err
	}
	defer a.Close(context.Background())

	matches, err := a.Memory.Recall(ctx, a.Scope, strings.Join(args, " "))
	if err != nil {
		return err
	}
	printMatches(cmd.OutOrStdout(), matches)
	return nil
}

func printMatches(w io.Writer, matches []model.Match) {
	if len(matches) == 0 {
		fmt.Fprintln(w, "No memories found.")
		return
	}
	for _, m := range matches {
		content, ok := m.Content()
		if !ok {
			content = "(no content)"
		}
		fmt.Fprintf(w, "%.3f  %s\n", m.Score, content)
	}
}

// splitParagraphs splits on blank lines and folds each paragraph onto one line.
func splitParagraphs(text string) []string {
	var (
		out     []string
		current []string
	)
	flush := func() {
		if len(current) > 0 {
			out = append(out, strings.Join(current, " "))
			current = nil
		}
	}
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()
	return out
}
