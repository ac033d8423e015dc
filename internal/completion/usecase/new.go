package usecase

import (
	"recall-assistant/internal/completion"
	"recall-assistant/internal/observability"
	pkgLog "recall-assistant/pkg/log"
)

const (
	LogPrefixStream = "internal.completion.usecase.Stream"

	eventBuffer = 16
)

type implUseCase struct {
	l       pkgLog.Logger
	llm     completion.Streamer
	memory  completion.Recorder
	cfg     completion.Config
	metrics *observability.Metrics
}

// New creates a completion UseCase.
func New(l pkgLog.Logger, llm completion.Streamer, memory completion.Recorder, cfg completion.Config, metrics *observability.Metrics) completion.UseCase {
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = completion.DefaultMaxTokens
	}
	return &implUseCase{
		l:       l,
		llm:     llm,
		memory:  memory,
		cfg:     cfg,
		metrics: metrics,
	}
}
