package source

import "errors"

var (
	ErrUnknownEngine    = errors.New("source: unknown search engine")
	ErrEngineStatus     = errors.New("source: search engine returned non-2xx status")
	ErrFetchStatus      = errors.New("source: page returned non-2xx status")
	ErrMissingSearchKey = errors.New("source: custom search requires api key and engine id")
)
