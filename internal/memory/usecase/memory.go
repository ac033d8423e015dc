package usecase

import (
	"context"
	"fmt"
	"strings"

	"recall-assistant/internal/memory"
	"recall-assistant/internal/model"
)

const (
	LogPrefixRemember = "internal.memory.usecase.Remember"
	LogPrefixRecall   = "internal.memory.usecase.Recall"
)

// Remember implements memory.UseCase.
func (uc *implUseCase) Remember(ctx context.Context, sc model.Scope, text string) (string, error) {
	vector, err := uc.embedder.Embed(ctx, text)
	if err != nil {
		uc.metrics.ObserveMemory("write", "error")
		uc.l.Errorf(ctx, "%s: embed: %v", LogPrefixRemember, err)
		return "", fmt.Errorf("%w: embed: %w", memory.ErrMemoryUnavailable, err)
	}

	id, err := uc.repo.Write(ctx, vector, text, sc.UserID)
	if err != nil {
		uc.metrics.ObserveMemory("write", "error")
		return "", fmt.Errorf("%w: write: %w", memory.ErrMemoryUnavailable, err)
	}

	uc.metrics.ObserveMemory("write", "ok")
	return id, nil
}

// Recall implements memory.UseCase.
func (uc *implUseCase) Recall(ctx context.Context, sc model.Scope, text string) ([]model.Match, error) {
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	vector, err := uc.embedder.Embed(ctx, text)
	if err != nil {
		uc.metrics.ObserveMemory("query", "error")
		uc.l.Errorf(ctx, "%s: embed: %v", LogPrefixRecall, err)
		return nil, fmt.Errorf("%w: embed: %w", memory.ErrMemoryUnavailable, err)
	}

	matches, err := uc.repo.Query(ctx, vector, sc.UserID, uc.cfg.TopK)
	if err != nil {
		uc.metrics.ObserveMemory("query", "error")
		return nil, fmt.Errorf("%w: query: %w", memory.ErrMemoryUnavailable, err)
	}

	uc.metrics.ObserveMemory("query", "ok")
	uc.l.Debugf(ctx, "%s: %d matches for user %s", LogPrefixRecall, len(matches), sc.UserID)
	return matches, nil
}
