package embedding

import "errors"

const (
	ProviderOpenAI = "openai"
	ProviderVoyage = "voyage"

	DefaultOpenAIModel = "text-embedding-3-small"
)

var (
	ErrUnknownProvider = errors.New("embedding: unknown provider")
	ErrMissingAPIKey   = errors.New("embedding: API key is required")
	ErrEmptyText       = errors.New("embedding: text is empty")
	ErrEmptyResult     = errors.New("embedding: empty embedding response")
)
