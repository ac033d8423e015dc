package source

import "time"

// Config bounds one retrieval.
type Config struct {
	MaxSources    int
	FetchTimeout  time.Duration
	FailureBudget int // substitutions shared by the whole batch
	MaxChars      int
	MinQueryWords int // 1 turns the short-phrase check off
	ExcludedHosts []string
	UserAgent     string
}

const (
	DefaultMaxSources    = 4
	DefaultFetchTimeout  = time.Second
	DefaultFailureBudget = 3
	DefaultMaxChars      = 1500
	DefaultMinQueryWords = 2
)

// DefaultExcludedHosts are matched as substrings of the candidate host.
var DefaultExcludedHosts = []string{"google", "facebook", "twitter", "instagram", "youtube", "tiktok"}

// WithDefaults fills zero fields.
func (c Config) WithDefaults() Config {
	if c.MaxSources <= 0 {
		c.MaxSources = DefaultMaxSources
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = DefaultFetchTimeout
	}
	if c.FailureBudget < 0 {
		c.FailureBudget = 0
	}
	if c.MaxChars <= 0 {
		c.MaxChars = DefaultMaxChars
	}
	if c.MinQueryWords <= 0 {
		c.MinQueryWords = DefaultMinQueryWords
	}
	if len(c.ExcludedHosts) == 0 {
		c.ExcludedHosts = DefaultExcludedHosts
	}
	return c
}
