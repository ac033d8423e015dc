package planner

import (
	"context"

	"recall-assistant/internal/model"
	"recall-assistant/internal/observability"
	"recall-assistant/pkg/log"
)

// Planner decides whether a query needs web retrieval.
type Planner interface {
	Plan(ctx context.Context, query string) model.SearchPlan
}

// QueryPlanner asks the LLM for a search plan and never fails:
// any problem degrades to AnswerDirectly(query).
type QueryPlanner struct {
	llm     Generator
	cfg     Config
	l       log.Logger
	metrics *observability.Metrics
}

var _ Planner = (*QueryPlanner)(nil)

// New creates a QueryPlanner. The Generator should not retry; a failed call degrades immediately.
func New(llm Generator, cfg Config, l log.Logger, metrics *observability.Metrics) *QueryPlanner {
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	return &QueryPlanner{
		llm:     llm,
		cfg:     cfg,
		l:       l,
		metrics: metrics,
	}
}
