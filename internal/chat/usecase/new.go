package usecase

import (
	"sync"

	"recall-assistant/internal/chat"
	"recall-assistant/internal/completion"
	"recall-assistant/internal/history"
	"recall-assistant/internal/memory"
	"recall-assistant/internal/observability"
	"recall-assistant/internal/planner"
	"recall-assistant/internal/source"
	pkgLog "recall-assistant/pkg/log"
)

const (
	LogPrefixSubmit = "internal.chat.usecase.Submit"
	LogPrefixTurn   = "internal.chat.usecase.turn"
	LogPrefixReset  = "internal.chat.usecase.Reset"

	eventBuffer = 32
)

// Deps are the collaborators of the pipeline.
type Deps struct {
	History    *history.Store
	Planner    planner.Planner
	Sources    source.UseCase
	Memory     memory.UseCase
	Completion completion.UseCase
	Tracer     *observability.Tracer
	Metrics    *observability.Metrics
	Preamble   string
}

type implUseCase struct {
	l    pkgLog.Logger
	deps Deps

	mu      sync.Mutex
	current *turn
	seq     uint64
}

// New creates the chat UseCase.
func New(l pkgLog.Logger, deps Deps) chat.UseCase {
	if deps.History == nil {
		deps.History = history.New(history.Config{})
	}
	if deps.Tracer == nil {
		deps.Tracer = observability.NoopTracer()
	}
	return &implUseCase{
		l:    l,
		deps: deps,
	}
}
