package embedding

import "context"

// Embedder turns text into a fixed-dimension vector.
// Implementations are safe for concurrent use.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Name() string
}

// Config selects and configures an embedding provider.
type Config struct {
	Provider   string // "openai" or "voyage"
	APIKey     string
	Model      string
	BaseURL    string
	Dimensions int
}

// New builds the Embedder named by cfg.Provider.
func New(cfg Config) (Embedder, error) {
	switch cfg.Provider {
	case ProviderOpenAI, "":
		return newOpenAI(cfg)
	case ProviderVoyage:
		return newVoyage(cfg)
	default:
		return nil, ErrUnknownProvider
	}
}
