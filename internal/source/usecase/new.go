package usecase

import (
	"net/http"

	"recall-assistant/internal/observability"
	"recall-assistant/internal/source"
	pkgLog "recall-assistant/pkg/log"
)

type implUseCase struct {
	l       pkgLog.Logger
	engine  source.Engine
	client  *http.Client
	cfg     source.Config
	metrics *observability.Metrics
}

// New creates a source UseCase. client may be nil; per-fetch timeouts come from cfg.
func New(l pkgLog.Logger, engine source.Engine, client *http.Client, cfg source.Config, metrics *observability.Metrics) source.UseCase {
	if client == nil {
		client = &http.Client{}
	}
	return &implUseCase{
		l:       l,
		engine:  engine,
		client:  client,
		cfg:     cfg.WithDefaults(),
		metrics: metrics,
	}
}
