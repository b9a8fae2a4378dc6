// DeskBot - Telegram customer support bot
// License: MIT
//
// Copyright (c) 2026 DeskBot contributors

package responder

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"deskbot/pkg/bus"
	"deskbot/pkg/faq"
	"deskbot/pkg/logger"
	"deskbot/pkg/metrics"
	"deskbot/pkg/providers"
)

// systemPrompt is the fixed persona for completion fallback requests.
const systemPrompt = "You are a helpful and friendly customer support agent. " +
	"Provide clear, concise, and professional responses to customer inquiries. " +
	"Be empathetic and solution-oriented. Keep responses under 200 words."

// apologyReply is substituted whenever the completion mechanism fails.
// The raw provider error never reaches the sender.
const apologyReply = "I apologize, but I'm having trouble processing your request right now. " +
	"Please try again in a moment or contact our support team directly."

// Outcome says how an inbound message was answered.
type Outcome string

const (
	// OutcomeSkipped: malformed input, no reply attempted.
	OutcomeSkipped Outcome = "skipped"
	// OutcomeCommand: recognized command, fixed reply.
	OutcomeCommand Outcome = "command"
	// OutcomeFAQ: keyword hit in the static table.
	OutcomeFAQ Outcome = "faq"
	// OutcomeCompletion: reply generated by the completion API.
	OutcomeCompletion Outcome = "completion"
	// OutcomeApology: completion failed, fixed fallback reply sent.
	OutcomeApology Outcome = "apology"
)

// Result reports what Handle decided and whether delivery worked. Delivery
// failure is recorded here, logged and counted, but never propagated: once
// the webhook is acked there is no channel back to the sender.
type Result struct {
	Outcome     Outcome
	Reply       string
	Keyword     string
	DeliveryErr error
}

// Sender is the outbound delivery mechanism.
type Sender interface {
	Send(ctx context.Context, msg bus.OutboundMessage) error
}

// Options tunes the responder.
type Options struct {
	// Model is the bare model name passed to the provider.
	Model string
	// CompletionTimeout bounds each completion call. Zero means 30s.
	CompletionTimeout time.Duration
	// Workers is the number of concurrent consumers. Zero means 4.
	Workers int
}

// Responder maps one inbound message to one outbound reply: command check,
// then FAQ scan, then completion fallback. It is stateless; every dependency
// is injected so tests can substitute fakes.
type Responder struct {
	table    *faq.Table
	provider providers.Provider
	sender   Sender
	broker   bus.Subscriber
	model    string
	timeout  time.Duration
	workers  int
}

func New(table *faq.Table, provider providers.Provider, sender Sender, broker bus.Subscriber, opts Options) *Responder {
	timeout := opts.CompletionTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = 4
	}
	return &Responder{
		table:    table,
		provider: provider,
		sender:   sender,
		broker:   broker,
		model:    opts.Model,
		timeout:  timeout,
		workers:  workers,
	}
}

// Run consumes the inbound queue until the context is cancelled or the bus
// closes. Messages are handled concurrently; the handler holds no shared
// mutable state, so no coordination is needed between workers.
func (r *Responder) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for i := 0; i < r.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				msg, ok := r.broker.ConsumeInbound(ctx)
				if !ok {
					return
				}
				r.Handle(ctx, msg)
			}
		}()
	}
	wg.Wait()
}

// Handle processes one inbound message and attempts exactly one delivery for
// every valid input. It never returns an error: all failure paths end in the
// fixed apology reply or, for malformed input, a silent skip.
//
// Commands are matched case-sensitively against the first whitespace token,
// with any "@BotName" suffix stripped (Telegram appends it in groups).
func (r *Responder) Handle(ctx context.Context, msg bus.InboundMessage) Result {
	text := strings.TrimSpace(msg.Content)
	if text == "" || msg.ChatID == "" {
		logger.WarnCF("responder", "Skipping malformed message", map[string]interface{}{
			"sender_id": msg.SenderID,
			"has_chat":  msg.ChatID != "",
		})
		metrics.MessagesHandled.WithLabelValues(string(OutcomeSkipped)).Inc()
		return Result{Outcome: OutcomeSkipped}
	}

	result := r.respond(ctx, msg, text)

	metrics.MessagesHandled.WithLabelValues(string(result.Outcome)).Inc()

	result.DeliveryErr = r.sender.Send(ctx, bus.OutboundMessage{
		ChatID:  msg.ChatID,
		Content: result.Reply,
	})
	if result.DeliveryErr != nil {
		metrics.DeliveryErrors.Inc()
		logger.ErrorCF("responder", "Delivery failed", map[string]interface{}{
			"chat_id": msg.ChatID,
			"outcome": string(result.Outcome),
			"error":   result.DeliveryErr.Error(),
		})
	}

	return result
}

func (r *Responder) respond(ctx context.Context, msg bus.InboundMessage, text string) Result {
	if reply, ok := r.handleCommand(msg, text); ok {
		return Result{Outcome: OutcomeCommand, Reply: reply}
	}

	if entry, ok := r.table.Match(text); ok {
		logger.InfoCF("responder", "FAQ match", map[string]interface{}{
			"sender_id": msg.SenderID,
			"keyword":   entry.Keyword,
		})
		return Result{Outcome: OutcomeFAQ, Reply: entry.Response, Keyword: entry.Keyword}
	}

	return r.complete(ctx, msg, text)
}

func (r *Responder) handleCommand(msg bus.InboundMessage, text string) (string, bool) {
	if !strings.HasPrefix(text, "/") {
		return "", false
	}

	cmd := strings.Fields(text)[0]
	if at := strings.Index(cmd, "@"); at >= 0 {
		cmd = cmd[:at]
	}

	switch cmd {
	case "/start":
		return r.welcome(msg), true
	case "/help":
		return r.helpText(), true
	}
	return "", false
}

func (r *Responder) welcome(msg bus.InboundMessage) string {
	name := msg.Metadata["first_name"]
	if name == "" {
		name = "there"
	}
	return fmt.Sprintf("👋 Hello %s! Welcome to our customer support.\n\n"+
		"I'm here to help you 24/7. You can ask me about:\n"+
		"• Business hours\n"+
		"• Location\n"+
		"• Contact information\n"+
		"• Shipping & returns\n"+
		"• Payment options\n"+
		"• Or anything else!\n\n"+
		"How can I assist you today?", name)
}

func (r *Responder) helpText() string {
	var sb strings.Builder
	sb.WriteString("I can answer instantly about:\n")
	for _, e := range r.table.Entries() {
		sb.WriteString("• ")
		sb.WriteString(e.Keyword)
		sb.WriteString("\n")
	}
	sb.WriteString("\nAnything else, just ask and I'll do my best to help.")
	return sb.String()
}

// complete delegates the text to the completion mechanism, bounded by the
// configured timeout. Completion finishes (or fails) before delivery is
// attempted; there is no speculative send.
func (r *Responder) complete(ctx context.Context, msg bus.InboundMessage, text string) Result {
	cctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	resp, err := r.provider.Complete(cctx, providers.Request{
		System:   systemPrompt,
		UserText: text,
		Model:    r.model,
	})
	metrics.CompletionDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		reason := providers.ReasonUnknown
		var perr *providers.ProviderError
		if errors.As(err, &perr) {
			reason = perr.Reason
		}
		metrics.CompletionErrors.WithLabelValues(string(reason)).Inc()
		logger.ErrorCF("responder", "Completion failed, sending fallback reply", map[string]interface{}{
			"sender_id": msg.SenderID,
			"reason":    string(reason),
			"error":     err.Error(),
		})
		return Result{Outcome: OutcomeApology, Reply: apologyReply}
	}

	if resp.Text == "" {
		metrics.CompletionErrors.WithLabelValues(string(providers.ReasonFormat)).Inc()
		logger.WarnC("responder", "Completion returned empty text, sending fallback reply")
		return Result{Outcome: OutcomeApology, Reply: apologyReply}
	}

	logger.InfoCF("responder", "Completion reply generated", map[string]interface{}{
		"sender_id": msg.SenderID,
		"elapsed":   time.Since(start).Round(time.Millisecond).String(),
	})
	return Result{Outcome: OutcomeCompletion, Reply: resp.Text}
}
