package completion

import (
	"context"

	"recall-assistant/internal/model"
	"recall-assistant/pkg/llmprovider"
)

// UseCase drives one streamed completion.
type UseCase interface {
	// Stream emits zero or more delta events followed by either sources+done
	// (completed and persisted) or error+done (failed). The channel is closed afterwards.
	// If ctx is cancelled the transport is closed and the channel closes without a terminal event.
	Stream(ctx context.Context, in StreamInput) <-chan model.Event
}

// Streamer opens a streaming completion; *llmprovider.Manager satisfies it.
type Streamer interface {
	StreamContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Stream, error)
}

// Recorder persists a completed answer; memory.UseCase satisfies it.
type Recorder interface {
	Remember(ctx context.Context, sc model.Scope, text string) (string, error)
}
