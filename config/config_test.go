package config

import (
	"testing"
)

func TestValidateLLMConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     LLMConfig
		wantErr bool
	}{
		{name: "empty", cfg: LLMConfig{}, wantErr: true},
		{name: "none enabled", cfg: LLMConfig{Providers: []ProviderConfig{{Name: "openai"}}}, wantErr: true},
		{name: "missing name", cfg: LLMConfig{Providers: []ProviderConfig{{Enabled: true}}}, wantErr: true},
		{
			name: "duplicate priority",
			cfg: LLMConfig{Providers: []ProviderConfig{
				{Name: "openai", Enabled: true, Priority: 1},
				{Name: "gemini", Enabled: true, Priority: 1},
			}},
			wantErr: true,
		},
		{
			name: "disabled duplicates are ignored",
			cfg: LLMConfig{Providers: []ProviderConfig{
				{Name: "openai", Enabled: true, Priority: 1},
				{Name: "gemini", Enabled: false, Priority: 1},
			}},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := validateLLMConfig(&tc.cfg)
			if (err != nil) != tc.wantErr {
				t.Fatalf("validateLLMConfig() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestSplitList(t *testing.T) {
	got := splitList([]string{"google, facebook", " ", "tiktok"})
	want := []string{"google", "facebook", "tiktok"}
	if len(got) != len(want) {
		t.Fatalf("splitList() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("splitList()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestGetIntFromMap(t *testing.T) {
	m := map[string]interface{}{"a": 2, "b": float64(3), "c": "4"}
	if getIntFromMap(m, "a") != 2 || getIntFromMap(m, "b") != 3 || getIntFromMap(m, "c") != 0 {
		t.Errorf("unexpected getIntFromMap results")
	}
}

func TestExpandEnvVar(t *testing.T) {
	t.Setenv("RECALL_TEST_SECRET", "s3cret")
	if got := expandEnvVar("${RECALL_TEST_SECRET}"); got != "s3cret" {
		t.Errorf("expandEnvVar() = %q", got)
	}
	if got := expandEnvVar("plain"); got != "plain" {
		t.Errorf("expandEnvVar() = %q", got)
	}
}
