package memory

import (
	"context"

	"recall-assistant/internal/model"
)

// UseCase is the embedding-aware face of the memory index.
type UseCase interface {
	// Remember embeds text and stores it under the scope's user.
	Remember(ctx context.Context, sc model.Scope, text string) (string, error)

	// Recall embeds text and returns the user's most similar past records, best first.
	// Blank text yields no matches and no backend calls.
	Recall(ctx context.Context, sc model.Scope, text string) ([]model.Match, error)
}
