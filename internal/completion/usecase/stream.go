package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"recall-assistant/internal/completion"
	"recall-assistant/internal/model"
	"recall-assistant/pkg/llmprovider"
	"recall-assistant/pkg/openaicompat"
	"recall-assistant/pkg/sse"
)

// Stream implements completion.UseCase.
func (uc *implUseCase) Stream(ctx context.Context, in completion.StreamInput) <-chan model.Event {
	out := make(chan model.Event, eventBuffer)
	go func() {
		defer close(out)
		r := &run{uc: uc, ctx: ctx, in: in, out: out, state: completion.StateIdle}
		r.execute()
	}()
	return out
}

// run is the state of one Stream call.
type run struct {
	uc    *implUseCase
	ctx   context.Context
	in    completion.StreamInput
	out   chan<- model.Event
	state completion.State
}

func (r *run) execute() {
	r.transition(completion.StateRequesting)
	stream, err := r.uc.llm.StreamContent(r.ctx, r.request())
	if err != nil {
		r.fail(fmt.Errorf("%w: %w", completion.ErrOpenStream, err))
		return
	}
	defer stream.Body.Close()
	stop := context.AfterFunc(r.ctx, func() { stream.Body.Close() })
	defer stop()

	r.transition(completion.StateStreaming)
	text, err := r.consume(stream)
	if err != nil {
		r.fail(fmt.Errorf("%w: %w", completion.ErrTransport, err))
		return
	}
	if r.ctx.Err() != nil {
		r.detached()
		return
	}

	if strings.TrimSpace(text) != "" {
		if _, err := r.uc.memory.Remember(r.ctx, r.in.Scope, text); err != nil {
			r.fail(fmt.Errorf("%w: %w", completion.ErrPersist, err))
			return
		}
		if r.in.OnComplete != nil {
			r.in.OnComplete(text)
		}
	}

	r.transition(completion.StateCompleted)
	r.emit(model.Event{Type: model.EventSources, Sources: r.in.Sources})
	r.emit(model.Event{Type: model.EventDone})
}

func (r *run) request() *llmprovider.Request {
	msgs := make([]llmprovider.Message, len(r.in.Turns))
	for i, t := range r.in.Turns {
		msgs[i] = llmprovider.Message{Role: string(t.Role), Content: t.Content}
	}
	return &llmprovider.Request{
		Messages:    msgs,
		Temperature: r.uc.cfg.Temperature,
		MaxTokens:   r.uc.cfg.MaxTokens,
	}
}

// consume forwards deltas in arrival order and returns their concatenation.
// The sentinel and a clean end of stream both complete the answer.
func (r *run) consume(stream *llmprovider.Stream) (string, error) {
	decode := stream.Decode
	if decode == nil {
		decode = openaicompat.DecodeDelta
	}

	reader := sse.NewReader(stream.Body)
	var sb strings.Builder
	for {
		frame, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return sb.String(), nil
		}
		if err != nil {
			return "", err
		}
		if frame.IsDone() {
			return sb.String(), nil
		}
		if !frame.HasData {
			continue
		}

		delta, err := decode([]byte(frame.Data))
		if err != nil {
			r.uc.metrics.ObserveFrame("malformed")
			r.uc.l.Warnf(r.ctx, "%s: skipping frame %q: %v", LogPrefixStream, frame.Raw, err)
			continue
		}
		if delta == "" {
			continue
		}

		r.uc.metrics.ObserveFrame("delta")
		sb.WriteString(delta)
		if !r.emit(model.Event{Type: model.EventDelta, Delta: delta}) {
			return "", r.ctx.Err()
		}
	}
}

// fail reports one fallback message unless the consumer has already gone away.
func (r *run) fail(err error) {
	if r.ctx.Err() != nil {
		r.detached()
		return
	}
	r.transition(completion.StateFailed)
	r.uc.l.Errorf(r.ctx, "%s: %v", LogPrefixStream, err)
	r.emit(model.Event{Type: model.EventError, Message: model.FallbackMessage})
	r.emit(model.Event{Type: model.EventDone})
}

func (r *run) detached() {
	r.uc.l.Infof(r.ctx, "%s: consumer detached in state %s", LogPrefixStream, r.state)
}

func (r *run) transition(to completion.State) {
	r.uc.l.Debugf(r.ctx, "%s: %s -> %s", LogPrefixStream, r.state, to)
	r.state = to
}

func (r *run) emit(ev model.Event) bool {
	select {
	case r.out <- ev:
		return true
	case <-r.ctx.Done():
		return false
	}
}
