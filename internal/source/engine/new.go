package engine

import (
	"context"
	"net/http"
	"time"

	"recall-assistant/internal/source"
)

const (
	NameGoogle       = "google"
	NameDuckDuckGo   = "duckduckgo"
	NameCustomSearch = "customsearch"

	DefaultGoogleURL     = "https://www.google.com"
	DefaultDuckDuckGoURL = "https://html.duckduckgo.com"
	DefaultSearchTimeout = 5 * time.Second
)

// Config selects and tunes the search engine.
type Config struct {
	Name          string
	BaseURL       string
	UserAgent     string
	APIKey        string
	EngineID      string
	CacheSize     int
	CacheTTL      time.Duration
	RatePerMinute int
	HTTPClient    *http.Client
}

// New builds the configured engine wrapped with caching and rate limiting.
func New(ctx context.Context, cfg Config) (source.Engine, error) {
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: DefaultSearchTimeout}
	}

	var (
		e   source.Engine
		err error
	)
	switch cfg.Name {
	case "", NameGoogle:
		e = NewGoogle(cfg.BaseURL, cfg.UserAgent, client)
	case NameDuckDuckGo:
		e = NewDuckDuckGo(cfg.BaseURL, cfg.UserAgent, client)
	case NameCustomSearch:
		e, err = NewCustomSearch(ctx, cfg.APIKey, cfg.EngineID, cfg.BaseURL)
		if err != nil {
			return nil, err
		}
	default:
		return nil, source.ErrUnknownEngine
	}

	return Wrap(e, cfg.CacheSize, cfg.CacheTTL, cfg.RatePerMinute), nil
}
