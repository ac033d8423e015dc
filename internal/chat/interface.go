package chat

import (
	"context"

	"recall-assistant/internal/model"
)

// UseCase runs conversation turns. Only one turn is active at a time:
// a new Submit or a Reset cancels the turn in flight.
type UseCase interface {
	// Submit starts a turn and returns its event stream. The stream ends with a done event,
	// or with a reset event when the turn is cancelled by Reset.
	Submit(ctx context.Context, sc model.Scope, input SubmitInput) (<-chan model.Event, error)

	// Reset cancels the in-flight turn, if any. History is kept.
	Reset(ctx context.Context, sc model.Scope) (ResetOutput, error)
}
