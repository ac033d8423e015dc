package llmprovider_test

import (
	"errors"
	"testing"

	"recall-assistant/config"
	"recall-assistant/pkg/llmprovider"
)

func TestInitializeProviders(t *testing.T) {
	cfg := &config.LLMConfig{
		Providers: []config.ProviderConfig{
			{Name: "gemini", Enabled: true, Priority: 2, APIKey: "g", Model: "gemini-2.5-flash"},
			{Name: "openai", Enabled: true, Priority: 1, APIKey: "o", Model: "gpt-4o-mini"},
			{Name: "qwen", Enabled: false, Priority: 0, APIKey: "q"},
			{Name: "deepseek", Enabled: true, Priority: 3},
		},
	}

	providers, warnings, err := llmprovider.InitializeProviders(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(providers) != 2 {
		t.Fatalf("expected 2 providers, got %d", len(providers))
	}
	if providers[0].Name() != "openai" || providers[1].Name() != "gemini" {
		t.Errorf("providers not sorted by priority: %s, %s", providers[0].Name(), providers[1].Name())
	}
	if len(warnings) != 1 {
		t.Errorf("expected 1 warning for keyless deepseek, got %v", warnings)
	}
	for _, p := range providers {
		if _, ok := p.(llmprovider.StreamProvider); !ok {
			t.Errorf("provider %s should support streaming", p.Name())
		}
	}
}

func TestInitializeProviders_NoneEnabled(t *testing.T) {
	_, _, err := llmprovider.InitializeProviders(&config.LLMConfig{
		Providers: []config.ProviderConfig{{Name: "openai", APIKey: "k"}},
	})
	if !errors.Is(err, llmprovider.ErrNoProvidersConfigured) {
		t.Fatalf("expected ErrNoProvidersConfigured, got %v", err)
	}
}

func TestInitializeProviders_Nil(t *testing.T) {
	if _, _, err := llmprovider.InitializeProviders(nil); err == nil {
		t.Fatalf("expected error for nil config")
	}
}
