package usecase

import (
	"context"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"recall-assistant/internal/chat"
	"recall-assistant/internal/completion"
	"recall-assistant/internal/model"
	"recall-assistant/internal/observability"
	"recall-assistant/internal/prompt"
)

// turn is the handle of the in-flight turn.
type turn struct {
	id     uint64
	cancel context.CancelFunc
	reset  atomic.Bool
}

// Submit implements chat.UseCase.
func (uc *implUseCase) Submit(ctx context.Context, sc model.Scope, input chat.SubmitInput) (<-chan model.Event, error) {
	if sc.UserID == "" {
		return nil, chat.ErrMissingUser
	}
	if utf8.RuneCountInString(input.Query) > chat.MaxQueryLength {
		return nil, chat.ErrQueryTooLong
	}

	turnCtx, t := uc.begin(ctx, input.Query)
	uc.l.Infof(ctx, "%s: turn %d for user %s", LogPrefixSubmit, t.id, sc.UserID)

	out := make(chan model.Event, eventBuffer)
	go func() {
		defer close(out)
		defer uc.end(t)

		start := time.Now()
		outcome := uc.runTurn(turnCtx, t, sc, input.Query, out)
		if outcome == "" {
			outcome = chat.OutcomeSuperseded
			if t.reset.Load() {
				outcome = chat.OutcomeReset
				// The caller may still be listening on the request context.
				select {
				case out <- model.Event{Type: model.EventReset}:
				case <-ctx.Done():
				}
			}
		}
		uc.deps.Metrics.ObserveTurn(outcome, time.Since(start))
		uc.l.Infof(ctx, "%s: turn %d finished: %s", LogPrefixTurn, t.id, outcome)
	}()
	return out, nil
}

// Reset implements chat.UseCase.
func (uc *implUseCase) Reset(ctx context.Context, sc model.Scope) (chat.ResetOutput, error) {
	uc.mu.Lock()
	t := uc.current
	uc.current = nil
	uc.mu.Unlock()

	if t == nil {
		return chat.ResetOutput{}, nil
	}
	t.reset.Store(true)
	t.cancel()
	uc.l.Infof(ctx, "%s: cancelled turn %d for user %s", LogPrefixReset, t.id, sc.UserID)
	return chat.ResetOutput{Cancelled: true}, nil
}

// begin supersedes the in-flight turn, registers a new one and records the
// user's query. Holding uc.mu keeps the query ordered against a late answer
// from the superseded turn.
func (uc *implUseCase) begin(ctx context.Context, query string) (context.Context, *turn) {
	turnCtx, cancel := context.WithCancel(ctx)

	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.current != nil {
		uc.current.cancel()
	}
	uc.seq++
	t := &turn{id: uc.seq, cancel: cancel}
	uc.current = t
	uc.deps.History.Append(model.Turn{Role: model.RoleUser, Content: query})
	return turnCtx, t
}

// commit records the answer only while t is still the in-flight turn.
func (uc *implUseCase) commit(ctx context.Context, t *turn, answer string) bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.current != t || ctx.Err() != nil {
		return false
	}
	uc.deps.History.Append(model.Turn{Role: model.RoleAssistant, Content: answer})
	return true
}

func (uc *implUseCase) end(t *turn) {
	t.cancel()
	uc.mu.Lock()
	if uc.current == t {
		uc.current = nil
	}
	uc.mu.Unlock()
}

// runTurn drives plan, retrieve+recall, assemble and stream, forwarding events to out.
// It returns the turn outcome, or "" when the turn was cancelled.
func (uc *implUseCase) runTurn(ctx context.Context, t *turn, sc model.Scope, query string, out chan<- model.Event) string {
	ctx, span := uc.deps.Tracer.Start(ctx, "chat.turn", attribute.String("user", sc.UserID))
	defer span.End()

	plan := uc.plan(ctx, query)

	var (
		sources []model.Source
		matches []model.Match
	)
	recallText := uc.deps.History.UserText()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sources = uc.retrieve(gctx, plan)
		return nil
	})
	g.Go(func() error {
		var err error
		matches, err = uc.recall(gctx, sc, recallText)
		return err
	})
	if err := g.Wait(); err != nil {
		if ctx.Err() != nil {
			return ""
		}
		uc.l.Errorf(ctx, "%s: recall failed, aborting turn: %v", LogPrefixTurn, err)
		send(ctx, out, model.Event{Type: model.EventError, Message: model.FallbackMessage})
		send(ctx, out, model.Event{Type: model.EventDone})
		return chat.OutcomeMemory
	}

	turns := prompt.Assemble(uc.deps.Preamble, matches, uc.deps.History.Window(), query, sources)
	uc.l.Debugf(ctx, "%s: prompt: %+v", LogPrefixTurn, turns)

	sctx, sspan := uc.deps.Tracer.Start(ctx, "completion.stream")
	defer sspan.End()
	events := uc.deps.Completion.Stream(sctx, completion.StreamInput{
		Scope:   sc,
		Turns:   turns,
		Sources: prompt.SourceURLs(sources),
		OnComplete: func(text string) {
			if !uc.commit(ctx, t, text) {
				uc.l.Debugf(ctx, "%s: turn %d superseded, answer dropped", LogPrefixTurn, t.id)
			}
		},
	})

	outcome := ""
	for ev := range events {
		switch ev.Type {
		case model.EventError:
			outcome = chat.OutcomeFailed
		case model.EventDone:
			if outcome == "" {
				outcome = chat.OutcomeCompleted
			}
		}
		send(ctx, out, ev)
	}
	return outcome
}

func (uc *implUseCase) plan(ctx context.Context, query string) model.SearchPlan {
	ctx, span := uc.deps.Tracer.Start(ctx, "planner.plan")
	defer span.End()
	plan := uc.deps.Planner.Plan(ctx, query)
	span.SetAttributes(attribute.String("plan.kind", plan.Kind().String()))
	return plan
}

func (uc *implUseCase) retrieve(ctx context.Context, plan model.SearchPlan) []model.Source {
	ctx, span := uc.deps.Tracer.Start(ctx, "source.retrieve")
	defer span.End()
	sources := uc.deps.Sources.Retrieve(ctx, plan, 0)
	span.SetAttributes(attribute.Int("sources", len(sources)))
	return sources
}

func (uc *implUseCase) recall(ctx context.Context, sc model.Scope, text string) ([]model.Match, error) {
	ctx, span := uc.deps.Tracer.Start(ctx, "memory.recall")
	matches, err := uc.deps.Memory.Recall(ctx, sc, text)
	observability.End(span, err)
	return matches, err
}

// send drops the event once the turn is cancelled.
func send(ctx context.Context, out chan<- model.Event, ev model.Event) bool {
	select {
	case out <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}
