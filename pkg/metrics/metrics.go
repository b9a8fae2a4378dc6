// DeskBot - Telegram customer support bot
// License: MIT
//
// Copyright (c) 2026 DeskBot contributors

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// MessagesHandled counts processed inbound messages by handler outcome
	// (skipped, command, faq, completion, apology).
	MessagesHandled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "deskbot_messages_handled_total",
		Help: "Inbound messages handled, by outcome.",
	}, []string{"outcome"})

	// CompletionErrors counts failed completion calls by classified reason.
	CompletionErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "deskbot_completion_errors_total",
		Help: "Completion API failures, by classified reason.",
	}, []string{"reason"})

	// CompletionDuration observes completion call latency in seconds.
	CompletionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "deskbot_completion_duration_seconds",
		Help:    "Completion API call latency.",
		Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
	})

	// DeliveryErrors counts outbound sends that the platform rejected.
	DeliveryErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "deskbot_delivery_errors_total",
		Help: "Outbound deliveries that failed.",
	})

	// WebhookUpdates counts received webhook payloads by disposition
	// (accepted, ignored, malformed, unauthorized).
	WebhookUpdates = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "deskbot_webhook_updates_total",
		Help: "Webhook payloads received, by disposition.",
	}, []string{"disposition"})
)
