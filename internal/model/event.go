package model

// FallbackMessage is the single user-visible apology for a failed turn.
const FallbackMessage = "I'm sorry, I'm having trouble understanding you right now."

// EventType is the kind of notification emitted toward the presentation layer.
type EventType string

const (
	EventDelta   EventType = "delta"
	EventSources EventType = "sources"
	EventError   EventType = "error"
	EventReset   EventType = "reset"
	EventDone    EventType = "done"
)

// Event is one notification of a conversation turn.
// A turn emits zero or more deltas, then either sources+done or error+done.
type Event struct {
	Type    EventType `json:"type"`
	Delta   string    `json:"delta,omitempty"`
	Sources []string  `json:"sources,omitempty"`
	Message string    `json:"message,omitempty"`
}
