// DeskBot - Telegram customer support bot
// License: MIT
//
// Copyright (c) 2026 DeskBot contributors

package providers

import (
	"context"
	"fmt"
)

// Request is one completion call: a fixed system persona plus the inbound
// user text. Constructed fresh per call, never retained.
type Request struct {
	System   string
	UserText string
	Model    string
}

// Response carries the completion text.
type Response struct {
	Text string
}

// Provider is the external completion mechanism. Implementations must honor
// context cancellation; the caller bounds every call with a deadline.
type Provider interface {
	Complete(ctx context.Context, req Request) (*Response, error)
	Name() string
}

// Reason classifies why a completion request failed. Used for logs and
// metrics only; the sender always receives the same fallback reply.
type Reason string

const (
	ReasonAuth       Reason = "auth"
	ReasonRateLimit  Reason = "rate_limit"
	ReasonBilling    Reason = "billing"
	ReasonTimeout    Reason = "timeout"
	ReasonFormat     Reason = "format"
	ReasonOverloaded Reason = "overloaded"
	ReasonUnknown    Reason = "unknown"
)

// ProviderError wraps a completion failure with classification metadata.
type ProviderError struct {
	Reason   Reason
	Provider string
	Model    string
	Status   int
	Wrapped  error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("completion(%s): provider=%s model=%s status=%d: %v",
		e.Reason, e.Provider, e.Model, e.Status, e.Wrapped)
}

func (e *ProviderError) Unwrap() error {
	return e.Wrapped
}

// classifyStatus maps an HTTP status from a vendor API to a Reason.
func classifyStatus(status int) Reason {
	switch {
	case status == 401 || status == 403:
		return ReasonAuth
	case status == 402:
		return ReasonBilling
	case status == 429:
		return ReasonRateLimit
	case status == 400 || status == 404 || status == 422:
		return ReasonFormat
	case status == 529 || status == 503:
		return ReasonOverloaded
	case status >= 500:
		return ReasonOverloaded
	default:
		return ReasonUnknown
	}
}
