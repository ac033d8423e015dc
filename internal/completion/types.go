package completion

import "recall-assistant/internal/model"

// State of a single completion.
type State string

const (
	StateIdle       State = "idle"
	StateRequesting State = "requesting"
	StateStreaming  State = "streaming"
	StateCompleted  State = "completed"
	StateFailed     State = "failed"
)

const (
	DefaultTemperature = 0.9
	DefaultMaxTokens   = 150
)

// Config holds the sampling parameters of the completion request.
type Config struct {
	Temperature float64
	MaxTokens   int
}

// StreamInput is one assembled request.
type StreamInput struct {
	Scope   model.Scope
	Turns   []model.Turn
	Sources []string

	// OnComplete runs with the full answer after it has been persisted,
	// before the sources and done events are emitted.
	OnComplete func(text string)
}
