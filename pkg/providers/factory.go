// DeskBot - Telegram customer support bot
// License: MIT
//
// Copyright (c) 2026 DeskBot contributors

package providers

import (
	"fmt"
	"strings"
)

// Credentials holds the per-vendor API configuration the factory needs.
type Credentials struct {
	OpenAIAPIKey    string
	OpenAIBaseURL   string
	AnthropicAPIKey string
}

// ParseModel splits a "vendor/model" identifier. A bare model name defaults
// to the openai vendor.
func ParseModel(model string) (vendor, name string) {
	if idx := strings.Index(model, "/"); idx >= 0 {
		return model[:idx], model[idx+1:]
	}
	return "openai", model
}

// FromModel builds the provider for a "vendor/model" identifier and returns
// it together with the bare model name to request.
func FromModel(model string, creds Credentials) (Provider, string, error) {
	vendor, name := ParseModel(model)
	if name == "" {
		return nil, "", fmt.Errorf("model identifier %q has no model name", model)
	}

	switch vendor {
	case "openai":
		if creds.OpenAIAPIKey == "" {
			return nil, "", fmt.Errorf("model %q requires OPENAI_API_KEY", model)
		}
		return NewOpenAIProvider(creds.OpenAIAPIKey, creds.OpenAIBaseURL), name, nil
	case "anthropic":
		if creds.AnthropicAPIKey == "" {
			return nil, "", fmt.Errorf("model %q requires ANTHROPIC_API_KEY", model)
		}
		return NewAnthropicProvider(creds.AnthropicAPIKey), name, nil
	default:
		return nil, "", fmt.Errorf("unknown model vendor %q (supported: openai, anthropic)", vendor)
	}
}
