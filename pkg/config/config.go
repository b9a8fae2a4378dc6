// DeskBot - Telegram customer support bot
// License: MIT
//
// Copyright (c) 2026 DeskBot contributors

package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"deskbot/pkg/providers"
)

// Config is the full runtime configuration, read from the environment. The
// handler never reads ambient state: everything it needs is injected from
// here at startup.
type Config struct {
	// BotToken is the Telegram bot token.
	BotToken string `env:"BOT_TOKEN,required"`

	// ListenAddr is the HTTP listen address for the webhook server.
	ListenAddr string `env:"LISTEN_ADDR" envDefault:"0.0.0.0:8000"`

	// Model selects the completion backend as "vendor/model",
	// e.g. "openai/gpt-4o-mini" or "anthropic/claude-sonnet-4-20250514".
	// A bare model name means the openai vendor.
	Model string `env:"MODEL" envDefault:"openai/gpt-4o-mini"`

	OpenAIAPIKey    string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL   string `env:"OPENAI_BASE_URL"`
	AnthropicAPIKey string `env:"ANTHROPIC_API_KEY"`

	// CompletionTimeout bounds each completion call; on expiry the handler
	// falls through to the fixed apology reply.
	CompletionTimeout time.Duration `env:"COMPLETION_TIMEOUT" envDefault:"30s"`

	// Workers is the number of concurrent responder workers.
	Workers int `env:"WORKERS" envDefault:"4"`

	// FAQFile optionally points at a JSON array of keyword/response entries.
	// Empty means the built-in table.
	FAQFile string `env:"FAQ_FILE"`

	// WebhookSecret, when set, is registered with Telegram and verified on
	// every webhook delivery.
	WebhookSecret string `env:"WEBHOOK_SECRET"`

	// Proxy is an optional HTTP proxy for Telegram API calls.
	Proxy string `env:"TELEGRAM_PROXY"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load parses the environment and validates the result.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate cross-checks fields that env tags alone cannot express.
func (c *Config) Validate() error {
	if c.CompletionTimeout <= 0 {
		return fmt.Errorf("COMPLETION_TIMEOUT must be positive, got %s", c.CompletionTimeout)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("WORKERS must be positive, got %d", c.Workers)
	}

	vendor, name := providers.ParseModel(c.Model)
	if name == "" {
		return fmt.Errorf("MODEL %q has no model name", c.Model)
	}
	switch vendor {
	case "openai":
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("MODEL %q requires OPENAI_API_KEY", c.Model)
		}
	case "anthropic":
		if c.AnthropicAPIKey == "" {
			return fmt.Errorf("MODEL %q requires ANTHROPIC_API_KEY", c.Model)
		}
	default:
		return fmt.Errorf("MODEL %q has unknown vendor %q", c.Model, vendor)
	}

	return nil
}
