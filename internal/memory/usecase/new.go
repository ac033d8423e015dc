package usecase

import (
	"recall-assistant/internal/memory"
	"recall-assistant/internal/memory/repository"
	"recall-assistant/internal/observability"
	"recall-assistant/pkg/embedding"
	pkgLog "recall-assistant/pkg/log"
)

type implUseCase struct {
	l        pkgLog.Logger
	embedder embedding.Embedder
	repo     repository.Repository
	cfg      memory.Config
	metrics  *observability.Metrics
}

// New creates a memory UseCase.
func New(l pkgLog.Logger, embedder embedding.Embedder, repo repository.Repository, cfg memory.Config, metrics *observability.Metrics) memory.UseCase {
	if cfg.TopK <= 0 {
		cfg.TopK = memory.DefaultTopK
	}
	return &implUseCase{
		l:        l,
		embedder: embedder,
		repo:     repo,
		cfg:      cfg,
		metrics:  metrics,
	}
}
