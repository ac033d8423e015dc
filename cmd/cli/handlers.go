package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"recall-assistant/config"
	"recall-assistant/internal/app"
	"recall-assistant/internal/chat"
	"recall-assistant/internal/model"
	"recall-assistant/pkg/log"
)

const prompt = "> "

func setup(ctx context.Context, verbose bool) (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	level := "error"
	if verbose {
		level = cfg.Logger.Level
	}
	logger := log.Init(log.ZapConfig{
		Level:        level,
		Mode:         cfg.Logger.Mode,
		Encoding:     log.EncodingConsole,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})
	return app.Build(ctx, cfg, logger)
}

func runAsk(cmd *cobra.Command, verbose bool, question string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := setup(ctx, verbose)
	if err != nil {
		return err
	}
	defer a.Close(context.Background())

	events, err := a.Chat.Submit(ctx, a.Scope, chat.SubmitInput{Query: question})
	if err != nil {
		return err
	}
	r := renderer{w: cmd.OutOrStdout()}
	for ev := range events {
		r.render(ev)
	}
	return nil
}

func runChat(cmd *cobra.Command, verbose bool) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a, err := setup(ctx, verbose)
	if err != nil {
		return err
	}
	defer a.Close(context.Background())

	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt)
	defer signal.Stop(interrupts)

	return repl(ctx, a.Chat, a.Scope, cmd.InOrStdin(), cmd.OutOrStdout(), interrupts)
}

// repl reads one question per line. An interrupt cancels the streaming answer,
// or quits when idle.
func repl(ctx context.Context, uc chat.UseCase, sc model.Scope, in io.Reader, out io.Writer, interrupts <-chan os.Signal) error {
	lines := make(chan string)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-quit:
				return
			}
		}
	}()

	r := renderer{w: out}
	for {
		fmt.Fprint(out, prompt)

		var line string
		select {
		case l, ok := <-lines:
			if !ok {
				fmt.Fprintln(out)
				return nil
			}
			line = strings.TrimSpace(l)
		case <-interrupts:
			fmt.Fprintln(out)
			return nil
		case <-ctx.Done():
			return nil
		}

		switch line {
		case "":
			continue
		case "/exit", "/quit":
			return nil
		case "/reset":
			res, err := uc.Reset(ctx, sc)
			if err != nil {
				return err
			}
			if !res.Cancelled {
				fmt.Fprintln(out, "Nothing to cancel.")
			}
			continue
		}

		events, err := uc.Submit(ctx, sc, chat.SubmitInput{Query: line})
		if err != nil {
			if errors.Is(err, chat.ErrQueryTooLong) {
				fmt.Fprintln(out, "That question is too long.")
				continue
			}
			return err
		}
		if err := stream(ctx, uc, sc, events, interrupts, &r); err != nil {
			return err
		}
	}
}

func stream(ctx context.Context, uc chat.UseCase, sc model.Scope, events <-chan model.Event, interrupts <-chan os.Signal, r *renderer) error {
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			r.render(ev)
		case <-interrupts:
			if _, err := uc.Reset(ctx, sc); err != nil {
				return err
			}
		}
	}
}

type renderer struct {
	w io.Writer
}

func (r renderer) render(ev model.Event) {
	switch ev.Type {
	case model.EventDelta:
		fmt.Fprint(r.w, ev.Delta)
	case model.EventSources:
		if len(ev.Sources) == 0 {
			return
		}
		fmt.Fprint(r.w, "\n\nSources:")
		for _, s := range ev.Sources {
			fmt.Fprintf(r.w, "\n  - %s", s)
		}
	case model.EventError:
		fmt.Fprint(r.w, ev.Message)
	case model.EventReset:
		fmt.Fprintln(r.w, "\n[cancelled]")
	case model.EventDone:
		fmt.Fprintln(r.w)
	}
}
