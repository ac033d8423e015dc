// Package app wires the conversation pipeline from configuration.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"recall-assistant/config"
	"recall-assistant/internal/chat"
	chatUC "recall-assistant/internal/chat/usecase"
	"recall-assistant/internal/completion"
	completionUC "recall-assistant/internal/completion/usecase"
	"recall-assistant/internal/history"
	"recall-assistant/internal/identity"
	"recall-assistant/internal/memory"
	memoryRepo "recall-assistant/internal/memory/repository/qdrant"
	memoryUC "recall-assistant/internal/memory/usecase"
	"recall-assistant/internal/model"
	"recall-assistant/internal/observability"
	"recall-assistant/internal/planner"
	"recall-assistant/internal/prompt"
	"recall-assistant/internal/source"
	"recall-assistant/internal/source/engine"
	sourceUC "recall-assistant/internal/source/usecase"
	"recall-assistant/pkg/embedding"
	"recall-assistant/pkg/llmprovider"
	"recall-assistant/pkg/log"
	pkgQdrant "recall-assistant/pkg/qdrant"
)

const ServiceVersion = "1.0.0"

// App is the assembled pipeline.
type App struct {
	Chat    chat.UseCase
	Memory  memory.UseCase
	Scope   model.Scope
	Metrics *observability.Metrics

	shutdown []func(context.Context) error
}

// Build constructs every pipeline component from cfg.
func Build(ctx context.Context, cfg *config.Config, l log.Logger) (*App, error) {
	// 1. Identity
	sc, err := identity.New(identity.Config{
		UserID:        cfg.Identity.UserID,
		MachineIDPath: cfg.Identity.MachineIDPath,
	}).Scope()
	if err != nil {
		return nil, fmt.Errorf("identity: %w", err)
	}
	l.Infof(ctx, "Installation scope: %s", sc.UserID)

	// 2. Observability
	metrics := observability.NewMetrics(cfg.Metrics.Namespace)
	tracer, stopTracer, err := observability.NewTracer(ctx, observability.TraceConfig{
		ServiceVersion: ServiceVersion,
		Environment:    cfg.Environment.Name,
		Endpoint:       cfg.Tracing.Endpoint,
		SamplingRate:   cfg.Tracing.SamplingRate,
		EnableInsecure: cfg.Tracing.Insecure,
	})
	if err != nil {
		return nil, fmt.Errorf("tracing: %w", err)
	}

	// 3. LLM providers
	providers, warnings, err := llmprovider.InitializeProviders(&cfg.LLM)
	for _, w := range warnings {
		l.Warnf(ctx, "LLM provider: %s", w)
	}
	if err != nil {
		return nil, fmt.Errorf("llm providers: %w", err)
	}
	// The planner degrades on the first failure; only the fallback chain applies.
	planLLM := llmprovider.NewManager(providers, &llmprovider.Config{
		FallbackEnabled: cfg.LLM.FallbackEnabled,
		RetryAttempts:   1,
		MaxTotalTimeout: cfg.LLM.MaxTotalTimeout,
	}, l)
	streamLLM := llmprovider.NewManager(providers, &llmprovider.Config{
		FallbackEnabled: cfg.LLM.FallbackEnabled,
		RetryAttempts:   cfg.LLM.RetryAttempts,
		RetryDelay:      cfg.LLM.RetryDelay,
		MaxTotalTimeout: cfg.LLM.MaxTotalTimeout,
	}, l)

	// 4. Memory index
	embedder, err := embedding.New(embedding.Config{
		Provider:   cfg.Embedding.Provider,
		APIKey:     cfg.Embedding.APIKey,
		Model:      cfg.Embedding.Model,
		BaseURL:    cfg.Embedding.BaseURL,
		Dimensions: cfg.Embedding.Dimensions,
	})
	if err != nil {
		return nil, fmt.Errorf("embedding: %w", err)
	}
	qdrantClient := pkgQdrant.NewClient(cfg.Qdrant.URL)
	if cfg.Qdrant.APIKey != "" {
		qdrantClient = qdrantClient.WithAPIKey(cfg.Qdrant.APIKey)
	}
	repo := memoryRepo.New(qdrantClient, memoryRepo.Config{
		CollectionName: cfg.Qdrant.CollectionName,
		VectorSize:     cfg.Qdrant.VectorSize,
		Namespace:      cfg.Qdrant.Namespace,
	}, l)
	mem := memoryUC.New(l, embedder, repo, memory.Config{TopK: cfg.Memory.TopK}, metrics)

	// 5. Source retriever
	eng, err := engine.New(ctx, engine.Config{
		Name:          cfg.Search.Engine,
		BaseURL:       cfg.Search.BaseURL,
		UserAgent:     cfg.Search.UserAgent,
		APIKey:        cfg.Search.CustomSearch.APIKey,
		EngineID:      cfg.Search.CustomSearch.EngineID,
		CacheSize:     cfg.Search.CacheSize,
		CacheTTL:      cfg.Search.CacheTTL,
		RatePerMinute: cfg.Search.RatePerMinute,
	})
	if err != nil {
		return nil, fmt.Errorf("search engine: %w", err)
	}
	l.Infof(ctx, "Search engine: %s", eng.Name())
	sources := sourceUC.New(l, eng, &http.Client{}, source.Config{
		MaxSources:    cfg.Search.MaxSources,
		FetchTimeout:  cfg.Search.FetchTimeout,
		FailureBudget: cfg.Search.FailureBudget,
		MaxChars:      cfg.Search.MaxChars,
		MinQueryWords: cfg.Search.MinQueryWords,
		ExcludedHosts: cfg.Search.ExcludedHosts,
		UserAgent:     cfg.Search.UserAgent,
	}, metrics)

	// 6. Planner, completion, conversation
	plan := planner.New(planLLM, planner.Config{
		Temperature: cfg.Planner.Temperature,
		MaxTokens:   cfg.Planner.MaxTokens,
	}, l, metrics)
	comp := completionUC.New(l, streamLLM, mem, completion.Config{
		Temperature: cfg.Completion.Temperature,
		MaxTokens:   cfg.Completion.MaxTokens,
	}, metrics)

	chatUseCase := chatUC.New(l, chatUC.Deps{
		History: history.New(history.Config{
			Cap:    cfg.Memory.HistoryCap,
			Window: cfg.Memory.HistoryWindow,
		}),
		Planner:    plan,
		Sources:    sources,
		Memory:     mem,
		Completion: comp,
		Tracer:     tracer,
		Metrics:    metrics,
		Preamble:   prompt.DefaultPreamble,
	})

	return &App{
		Chat:     chatUseCase,
		Memory:   mem,
		Scope:    sc,
		Metrics:  metrics,
		shutdown: []func(context.Context) error{stopTracer},
	}, nil
}

// Close flushes background exporters.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	for _, fn := range a.shutdown {
		errs = append(errs, fn(ctx))
	}
	return errors.Join(errs...)
}
