package providers

import (
	"testing"
)

func TestParseModel(t *testing.T) {
	tests := []struct {
		input      string
		wantVendor string
		wantName   string
	}{
		{"openai/gpt-4o-mini", "openai", "gpt-4o-mini"},
		{"anthropic/claude-sonnet-4-20250514", "anthropic", "claude-sonnet-4-20250514"},
		{"gpt-4o-mini", "openai", "gpt-4o-mini"},
		{"openai/", "openai", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			vendor, name := ParseModel(tt.input)
			if vendor != tt.wantVendor || name != tt.wantName {
				t.Errorf("ParseModel(%q) = (%q, %q), want (%q, %q)",
					tt.input, vendor, name, tt.wantVendor, tt.wantName)
			}
		})
	}
}

func TestFromModel(t *testing.T) {
	creds := Credentials{OpenAIAPIKey: "sk-test", AnthropicAPIKey: "sk-ant-test"}

	provider, name, err := FromModel("openai/gpt-4o-mini", creds)
	if err != nil {
		t.Fatalf("FromModel() error = %v", err)
	}
	if provider.Name() != "openai" || name != "gpt-4o-mini" {
		t.Errorf("FromModel() = (%s, %s), want (openai, gpt-4o-mini)", provider.Name(), name)
	}

	provider, name, err = FromModel("anthropic/claude-sonnet-4-20250514", creds)
	if err != nil {
		t.Fatalf("FromModel() error = %v", err)
	}
	if provider.Name() != "anthropic" || name != "claude-sonnet-4-20250514" {
		t.Errorf("FromModel() = (%s, %s), want anthropic provider", provider.Name(), name)
	}
}

func TestFromModelErrors(t *testing.T) {
	tests := []struct {
		name  string
		model string
		creds Credentials
	}{
		{"unknown vendor", "gemini/gemini-pro", Credentials{OpenAIAPIKey: "k"}},
		{"missing openai key", "openai/gpt-4o-mini", Credentials{}},
		{"missing anthropic key", "anthropic/claude-sonnet-4-20250514", Credentials{OpenAIAPIKey: "k"}},
		{"empty model name", "openai/", Credentials{OpenAIAPIKey: "k"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := FromModel(tt.model, tt.creds); err == nil {
				t.Errorf("FromModel(%q) error = nil, want error", tt.model)
			}
		})
	}
}

func TestClassifyStatus(t *testing.T) {
	tests := []struct {
		status int
		want   Reason
	}{
		{401, ReasonAuth},
		{403, ReasonAuth},
		{402, ReasonBilling},
		{429, ReasonRateLimit},
		{400, ReasonFormat},
		{503, ReasonOverloaded},
		{529, ReasonOverloaded},
		{500, ReasonOverloaded},
		{418, ReasonUnknown},
	}

	for _, tt := range tests {
		if got := classifyStatus(tt.status); got != tt.want {
			t.Errorf("classifyStatus(%d) = %s, want %s", tt.status, got, tt.want)
		}
	}
}
