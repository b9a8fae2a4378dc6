// DeskBot - Telegram customer support bot
// License: MIT
//
// Copyright (c) 2026 DeskBot contributors

package providers

import (
	"context"
	"errors"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// Generation limits carried over from the original deployment.
const (
	maxCompletionTokens = 300
	temperature         = 0.7
)

// OpenAIProvider calls the OpenAI chat completions API.
type OpenAIProvider struct {
	client *openai.Client
}

// NewOpenAIProvider builds a provider for the given key. baseURL overrides the
// API endpoint for OpenAI-compatible backends; empty means api.openai.com.
func NewOpenAIProvider(apiKey, baseURL string) *OpenAIProvider {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	client := openai.NewClient(opts...)
	return &OpenAIProvider{client: &client}
}

func (p *OpenAIProvider) Name() string { return "openai" }

func (p *OpenAIProvider) Complete(ctx context.Context, req Request) (*Response, error) {
	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(req.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.System),
			openai.UserMessage(req.UserText),
		},
		MaxTokens:   openai.Int(maxCompletionTokens),
		Temperature: openai.Float(temperature),
	})
	if err != nil {
		return nil, p.wrapError(req.Model, err)
	}

	if len(resp.Choices) == 0 {
		return nil, &ProviderError{
			Reason:   ReasonFormat,
			Provider: p.Name(),
			Model:    req.Model,
			Wrapped:  errors.New("response contains no choices"),
		}
	}

	return &Response{Text: strings.TrimSpace(resp.Choices[0].Message.Content)}, nil
}

func (p *OpenAIProvider) wrapError(model string, err error) error {
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

	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		perr.Status = apiErr.StatusCode
		perr.Reason = classifyStatus(apiErr.StatusCode)
		// OpenAI reports exhausted quota as a 429 with a billing code.
		if apiErr.StatusCode == 429 && strings.Contains(apiErr.Code, "insufficient_quota") {
			perr.Reason = ReasonBilling
		}
	}
	return perr
}
