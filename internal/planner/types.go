package planner

import (
	"context"

	"recall-assistant/pkg/llmprovider"
)

// Generator is the non-streaming LLM surface the planner calls.
type Generator interface {
	GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error)
}

// Config holds the sampling parameters of the planning request.
type Config struct {
	Temperature float64
	MaxTokens   int
}

// planPayload is the model's two-field reply. Pointers distinguish absent from empty.
type planPayload struct {
	Text   *string `json:"text"`
	Search *string `json:"search"`
}
