package chat

// MaxQueryLength bounds a query in runes.
const MaxQueryLength = 4000

// SubmitInput is one user query.
type SubmitInput struct {
	Query string
}

// ResetOutput reports whether a turn was cancelled.
type ResetOutput struct {
	Cancelled bool
}

// Turn outcomes reported to metrics and logs.
const (
	OutcomeCompleted  = "completed"
	OutcomeFailed     = "failed"
	OutcomeMemory     = "memory_failed"
	OutcomeSuperseded = "superseded"
	OutcomeReset      = "reset"
)
