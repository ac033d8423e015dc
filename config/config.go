package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	Environment EnvironmentConfig
	HTTPServer  HTTPServerConfig
	Logger      LoggerConfig

	// Pipeline
	LLM        LLMConfig
	Planner    PlannerConfig
	Completion CompletionConfig
	Embedding  EmbeddingConfig
	Qdrant     QdrantConfig
	Search     SearchConfig
	Memory     MemoryConfig
	Identity   IdentityConfig

	// Delivery & observability
	RateLimit RateLimitConfig
	Tracing   TracingConfig
	Metrics   MetricsConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// LLMConfig holds configuration for the LLM provider abstraction layer
type LLMConfig struct {
	Providers       []ProviderConfig `yaml:"providers"`
	FallbackEnabled bool             `yaml:"fallback_enabled"`
	RetryAttempts   int              `yaml:"retry_attempts"`
	RetryDelay      time.Duration    `yaml:"retry_delay"`
	MaxTotalTimeout time.Duration    `yaml:"max_total_timeout"`
}

// ProviderConfig holds configuration for a single LLM provider
type ProviderConfig struct {
	Name     string `yaml:"name"` // openai | qwen | deepseek | gemini | any OpenAI-compatible name with base_url
	Enabled  bool   `yaml:"enabled"`
	Priority int    `yaml:"priority"`
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url,omitempty"`
	Model    string `yaml:"model"`
}

type PlannerConfig struct {
	Temperature float64
	MaxTokens   int
}

type CompletionConfig struct {
	Temperature float64
	MaxTokens   int
}

type EmbeddingConfig struct {
	Provider   string // openai | voyage
	APIKey     string
	Model      string
	BaseURL    string
	Dimensions int
}

type QdrantConfig struct {
	URL            string
	APIKey         string
	CollectionName string
	VectorSize     int
	Namespace      string
}

type SearchConfig struct {
	Engine        string // google | duckduckgo | customsearch
	BaseURL       string
	UserAgent     string
	MaxSources    int
	FetchTimeout  time.Duration
	FailureBudget int
	MaxChars      int
	MinQueryWords int
	ExcludedHosts []string
	CacheTTL      time.Duration
	CacheSize     int
	RatePerMinute int

	CustomSearch CustomSearchConfig
}

type CustomSearchConfig struct {
	APIKey   string
	EngineID string
}

type MemoryConfig struct {
	TopK          int
	HistoryCap    int
	HistoryWindow int
}

type IdentityConfig struct {
	UserID        string
	MachineIDPath string
}

type RateLimitConfig struct {
	Enabled         bool
	RequestsPerMin  int
	MaxTrackedUsers int
}

type TracingConfig struct {
	Endpoint     string
	Insecure     bool
	SamplingRate float64
}

type MetricsConfig struct {
	Namespace string
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, ., /etc/app/.
// A .env file in the working directory is loaded first when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// LLM Provider Abstraction
	cfg.LLM.FallbackEnabled = viper.GetBool("llm.fallback_enabled")
	cfg.LLM.RetryAttempts = viper.GetInt("llm.retry_attempts")
	cfg.LLM.RetryDelay = viper.GetDuration("llm.retry_delay")
	cfg.LLM.MaxTotalTimeout = viper.GetDuration("llm.max_total_timeout")
	cfg.LLM.Providers = loadProviders()
	if len(cfg.LLM.Providers) == 0 {
		if key := viper.GetString("openai_api_key"); key != "" {
			cfg.LLM.Providers = []ProviderConfig{{Name: "openai", Enabled: true, Priority: 1, APIKey: key}}
		}
	}

	cfg.Planner.Temperature = viper.GetFloat64("planner.temperature")
	cfg.Planner.MaxTokens = viper.GetInt("planner.max_tokens")
	cfg.Completion.Temperature = viper.GetFloat64("completion.temperature")
	cfg.Completion.MaxTokens = viper.GetInt("completion.max_tokens")

	// Embedding
	cfg.Embedding.Provider = viper.GetString("embedding.provider")
	cfg.Embedding.APIKey = expandEnvVar(viper.GetString("embedding.api_key"))
	cfg.Embedding.Model = viper.GetString("embedding.model")
	cfg.Embedding.BaseURL = viper.GetString("embedding.base_url")
	cfg.Embedding.Dimensions = viper.GetInt("embedding.dimensions")
	if cfg.Embedding.APIKey == "" {
		switch cfg.Embedding.Provider {
		case "voyage":
			cfg.Embedding.APIKey = viper.GetString("voyage_api_key")
		default:
			cfg.Embedding.APIKey = viper.GetString("openai_api_key")
		}
	}

	// Vector store
	cfg.Qdrant.URL = viper.GetString("qdrant.url")
	cfg.Qdrant.APIKey = expandEnvVar(viper.GetString("qdrant.api_key"))
	cfg.Qdrant.CollectionName = viper.GetString("qdrant.collection_name")
	cfg.Qdrant.VectorSize = viper.GetInt("qdrant.vector_size")
	cfg.Qdrant.Namespace = viper.GetString("qdrant.namespace")
	if qdrantURL := viper.GetString("qdrant_url"); qdrantURL != "" {
		cfg.Qdrant.URL = qdrantURL
	}

	// Search
	cfg.Search.Engine = viper.GetString("search.engine")
	cfg.Search.BaseURL = viper.GetString("search.base_url")
	cfg.Search.UserAgent = viper.GetString("search.user_agent")
	cfg.Search.MaxSources = viper.GetInt("search.max_sources")
	cfg.Search.FetchTimeout = viper.GetDuration("search.fetch_timeout")
	cfg.Search.FailureBudget = viper.GetInt("search.failure_budget")
	cfg.Search.MaxChars = viper.GetInt("search.max_chars")
	cfg.Search.MinQueryWords = viper.GetInt("search.min_query_words")
	cfg.Search.ExcludedHosts = splitList(viper.GetStringSlice("search.excluded_hosts"))
	cfg.Search.CacheTTL = viper.GetDuration("search.cache_ttl")
	cfg.Search.CacheSize = viper.GetInt("search.cache_size")
	cfg.Search.RatePerMinute = viper.GetInt("search.rate_per_minute")
	cfg.Search.CustomSearch.APIKey = expandEnvVar(viper.GetString("search.custom_search.api_key"))
	cfg.Search.CustomSearch.EngineID = viper.GetString("search.custom_search.engine_id")

	// Memory
	cfg.Memory.TopK = viper.GetInt("memory.top_k")
	cfg.Memory.HistoryCap = viper.GetInt("memory.history_cap")
	cfg.Memory.HistoryWindow = viper.GetInt("memory.history_window")

	cfg.Identity.UserID = viper.GetString("identity.user_id")
	cfg.Identity.MachineIDPath = viper.GetString("identity.machine_id_path")

	// Delivery & observability
	cfg.RateLimit.Enabled = viper.GetBool("rate_limit.enabled")
	cfg.RateLimit.RequestsPerMin = viper.GetInt("rate_limit.requests_per_min")
	cfg.RateLimit.MaxTrackedUsers = viper.GetInt("rate_limit.max_tracked_users")
	cfg.Tracing.Endpoint = viper.GetString("tracing.endpoint")
	cfg.Tracing.Insecure = viper.GetBool("tracing.insecure")
	cfg.Tracing.SamplingRate = viper.GetFloat64("tracing.sampling_rate")
	cfg.Metrics.Namespace = viper.GetString("metrics.namespace")

	if err := validateLLMConfig(&cfg.LLM); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	// LLM defaults
	viper.SetDefault("llm.fallback_enabled", true)
	viper.SetDefault("llm.retry_attempts", 1)
	viper.SetDefault("llm.retry_delay", "1s")
	viper.SetDefault("llm.max_total_timeout", "20s")
	viper.SetDefault("planner.temperature", 0.0)
	viper.SetDefault("planner.max_tokens", 50)
	viper.SetDefault("completion.temperature", 0.9)
	viper.SetDefault("completion.max_tokens", 150)

	viper.SetDefault("embedding.provider", "openai")
	viper.SetDefault("embedding.model", "text-embedding-ada-002")

	viper.SetDefault("qdrant.url", "http://localhost:6333")
	viper.SetDefault("qdrant.collection_name", "recall_memory")
	viper.SetDefault("qdrant.vector_size", 1536)
	viper.SetDefault("qdrant.namespace", "messages")

	viper.SetDefault("search.engine", "google")
	viper.SetDefault("search.user_agent", "Mozilla/5.0 (compatible; recall-assistant/1.0)")
	viper.SetDefault("search.max_sources", 4)
	viper.SetDefault("search.fetch_timeout", "1s")
	viper.SetDefault("search.failure_budget", 3)
	viper.SetDefault("search.max_chars", 1500)
	viper.SetDefault("search.min_query_words", 2)
	viper.SetDefault("search.excluded_hosts", []string{"google", "facebook", "twitter", "instagram", "youtube", "tiktok"})
	viper.SetDefault("search.cache_ttl", "10m")
	viper.SetDefault("search.cache_size", 256)
	viper.SetDefault("search.rate_per_minute", 30)

	viper.SetDefault("memory.top_k", 3)
	viper.SetDefault("memory.history_cap", 6)
	viper.SetDefault("memory.history_window", 4)

	viper.SetDefault("identity.machine_id_path", "/etc/machine-id")

	viper.SetDefault("rate_limit.enabled", true)
	viper.SetDefault("rate_limit.requests_per_min", 30)
	viper.SetDefault("rate_limit.max_tracked_users", 1000)
	viper.SetDefault("tracing.sampling_rate", 1.0)
	viper.SetDefault("metrics.namespace", "recall")
}

func loadProviders() []ProviderConfig {
	if !viper.IsSet("llm.providers") {
		return nil
	}
	providersList, ok := viper.Get("llm.providers").([]interface{})
	if !ok {
		return nil
	}

	var providers []ProviderConfig
	for _, p := range providersList {
		providerMap, ok := p.(map[string]interface{})
		if !ok {
			continue
		}
		providers = append(providers, ProviderConfig{
			Name:     getStringFromMap(providerMap, "name"),
			Enabled:  getBoolFromMap(providerMap, "enabled"),
			Priority: getIntFromMap(providerMap, "priority"),
			APIKey:   expandEnvVar(getStringFromMap(providerMap, "api_key")),
			BaseURL:  getStringFromMap(providerMap, "base_url"),
			Model:    getStringFromMap(providerMap, "model"),
		})
	}
	return providers
}

// expandEnvVar expands environment variables in the format ${VAR_NAME}
func expandEnvVar(value string) string {
	if !strings.HasPrefix(value, "${") || !strings.HasSuffix(value, "}") {
		return value
	}

	envVar := value[2 : len(value)-1]
	if envValue := viper.GetString(envVar); envValue != "" {
		return envValue
	}
	if envValue := viper.GetString(strings.ToLower(envVar)); envValue != "" {
		return envValue
	}
	return os.Getenv(envVar)
}

// validateLLMConfig validates the LLM configuration
func validateLLMConfig(cfg *LLMConfig) error {
	if len(cfg.Providers) == 0 {
		return fmt.Errorf("no LLM providers configured - add llm.providers to config.yaml or set OPENAI_API_KEY")
	}

	enabledCount := 0
	priorities := make(map[int]bool)
	for i, provider := range cfg.Providers {
		if provider.Name == "" {
			return fmt.Errorf("provider %d: name is required", i)
		}
		if !provider.Enabled {
			continue
		}
		enabledCount++
		if priorities[provider.Priority] {
			return fmt.Errorf("provider %s: duplicate priority %d", provider.Name, provider.Priority)
		}
		priorities[provider.Priority] = true
	}

	if enabledCount == 0 {
		return fmt.Errorf("no enabled LLM providers")
	}
	return nil
}

// splitList accepts both YAML lists and a single comma separated env value.
func splitList(raw []string) []string {
	var out []string
	for _, item := range raw {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Helper functions to safely extract values from map[string]interface{}
func getStringFromMap(m map[string]interface{}, key string) string {
	if val, ok := m[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}

func getBoolFromMap(m map[string]interface{}, key string) bool {
	if val, ok := m[key]; ok {
		if b, ok := val.(bool); ok {
			return b
		}
	}
	return false
}

func getIntFromMap(m map[string]interface{}, key string) int {
	if val, ok := m[key]; ok {
		switch v := val.(type) {
		case int:
			return v
		case float64:
			return int(v)
		}
	}
	return 0
}
