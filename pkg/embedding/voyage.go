package embedding

import (
	"context"
	"fmt"
	"strings"

	"recall-assistant/pkg/voyage"
)

type voyageEmbedder struct {
	client voyage.IVoyage
}

func newVoyage(cfg Config) (*voyageEmbedder, error) {
	client, err := voyage.New(cfg.APIKey)
	if err != nil {
		return nil, ErrMissingAPIKey
	}
	client.WithModel(cfg.Model).WithBaseURL(cfg.BaseURL)
	return &voyageEmbedder{client: client}, nil
}

func (e *voyageEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	vectors, err := e.client.Embed(ctx, []string{text})
	if err != nil {
		return nil, fmt.Errorf("embedding: %w", err)
	}
	if len(vectors) == 0 || len(vectors[0]) == 0 {
		return nil, ErrEmptyResult
	}
	return vectors[0], nil
}

func (e *voyageEmbedder) Name() string {
	return ProviderVoyage + "/" + e.client.Model()
}
