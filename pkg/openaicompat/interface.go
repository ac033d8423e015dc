package openaicompat

import (
	"context"
	"io"
)

// IClient is an OpenAI-compatible /chat/completions client.
// Implementations are safe for concurrent use.
type IClient interface {
	// GenerateContent sends a non-streaming request.
	GenerateContent(ctx context.Context, req *Request) (*Response, error)

	// StreamContent sends a stream=true request and returns the raw
	// event-stream body. The caller must close it.
	StreamContent(ctx context.Context, req *Request) (io.ReadCloser, error)

	// Model returns the model being used.
	Model() string
}

// New creates a new client with the given configuration.
func New(cfg Config) (IClient, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &clientImpl{
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
		model:      cfg.Model,
		httpClient: cfg.HTTPClient,
	}, nil
}
