package engine

import (
	"context"
	"fmt"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"

	"recall-assistant/internal/source"
)

// customSearch queries the Google Custom Search JSON API instead of scraping.
type customSearch struct {
	svc      *customsearch.Service
	engineID string
}

// NewCustomSearch creates an engine backed by the Custom Search JSON API.
// baseURL overrides the API endpoint and is mainly useful for tests.
func NewCustomSearch(ctx context.Context, apiKey, engineID, baseURL string) (source.Engine, error) {
	if apiKey == "" || engineID == "" {
		return nil, source.ErrMissingSearchKey
	}
	opts := []option.ClientOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithEndpoint(baseURL))
	}
	svc, err := customsearch.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("customsearch: create service: %w", err)
	}
	return &customSearch{svc: svc, engineID: engineID}, nil
}

func (e *customSearch) Name() string { return NameCustomSearch }

func (e *customSearch) Search(ctx context.Context, phrase string) ([]string, error) {
	res, err := e.svc.Cse.List().Cx(e.engineID).Q(phrase).Num(10).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("customsearch: list: %w", err)
	}

	seen := make(map[string]struct{}, len(res.Items))
	var links []string
	for _, item := range res.Items {
		if item.Link != "" {
			links = appendUnique(links, seen, item.Link)
		}
	}
	return links, nil
}
