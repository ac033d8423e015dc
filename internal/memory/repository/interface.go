package repository

import (
	"context"

	"recall-assistant/internal/model"
)

// Repository is the vector store side of the memory index.
// Implementations initialize lazily, at most once, before the first operation.
type Repository interface {
	// Write stores a new record under a fresh id and returns that id.
	Write(ctx context.Context, vector []float32, content, user string) (string, error)

	// Query returns up to topK of user's records nearest to vector, most similar first.
	Query(ctx context.Context, vector []float32, user string, topK int) ([]model.Match, error)
}
