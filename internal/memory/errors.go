package memory

import "errors"

var (
	// ErrMemoryUnavailable wraps every embedding or vector store failure.
	ErrMemoryUnavailable = errors.New("memory unavailable")
)
