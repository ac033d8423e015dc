package source

import (
	"context"

	"recall-assistant/internal/model"
)

// UseCase turns a search plan into a few cleaned web page excerpts.
type UseCase interface {
	// Retrieve never fails: any problem yields fewer (possibly zero) sources.
	// maxSources caps this call; zero or less falls back to Config.MaxSources.
	Retrieve(ctx context.Context, plan model.SearchPlan, maxSources int) []model.Source
}

// Engine turns a search phrase into candidate destination URLs in ranked order.
type Engine interface {
	Name() string
	Search(ctx context.Context, phrase string) ([]string, error)
}
