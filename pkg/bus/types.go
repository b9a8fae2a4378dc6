// DeskBot - Telegram customer support bot
// License: MIT
//
// Copyright (c) 2026 DeskBot contributors

package bus

// InboundMessage is one normalized chat message delivered by the webhook
// transport. SenderID identifies the author, ChatID the reply target.
type InboundMessage struct {
	SenderID string            `json:"sender_id"`
	ChatID   string            `json:"chat_id"`
	Content  string            `json:"content"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// OutboundMessage is one reply addressed to the chat it came from.
type OutboundMessage struct {
	ChatID  string `json:"chat_id"`
	Content string `json:"content"`
}
