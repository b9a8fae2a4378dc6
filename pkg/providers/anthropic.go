// DeskBot - Telegram customer support bot
// License: MIT
//
// Copyright (c) 2026 DeskBot contributors

package providers

import (
	"context"
	"errors"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// AnthropicProvider calls the Anthropic messages API.
type AnthropicProvider struct {
	client *anthropic.Client
}

func NewAnthropicProvider(apiKey string) *AnthropicProvider {
	client := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &AnthropicProvider{client: &client}
}

func (p *AnthropicProvider) Name() string { return "anthropic" }

func (p *AnthropicProvider) Complete(ctx context.Context, req Request) (*Response, error) {
	msg, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(req.Model),
		MaxTokens: maxCompletionTokens,
		System: []anthropic.TextBlockParam{
			{Text: req.System},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.UserText)),
		},
	})
	if err != nil {
		return nil, p.wrapError(req.Model, err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return nil, &ProviderError{
			Reason:   ReasonFormat,
			Provider: p.Name(),
			Model:    req.Model,
			Wrapped:  errors.New("response contains no text blocks"),
		}
	}

	return &Response{Text: text}, nil
}

func (p *AnthropicProvider) wrapError(model string, err error) error {
	perr := &ProviderError{
		Reason:   ReasonUnknown,
		Provider: p.Name(),
		Model:    model,
		Wrapped:  err,
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		perr.Reason = ReasonTimeout
		return perr
	}

	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		perr.Status = apiErr.StatusCode
		perr.Reason = classifyStatus(apiErr.StatusCode)
	}
	return perr
}
