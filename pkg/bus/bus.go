// DeskBot - Telegram customer support bot
// License: MIT
//
// Copyright (c) 2026 DeskBot contributors

package bus

import (
	"context"
	"sync"
)

// MessageBus is the in-memory queue between the webhook transport and the
// responder workers. The webhook publishes and returns its acknowledgement
// immediately; workers drain the queue in the background.
type MessageBus struct {
	inbound chan InboundMessage
	closed  bool
	mu      sync.RWMutex
}

func NewMessageBus() *MessageBus {
	return &MessageBus{
		inbound: make(chan InboundMessage, 100),
	}
}

func (mb *MessageBus) PublishInbound(msg InboundMessage) {
	mb.mu.RLock()
	defer mb.mu.RUnlock()
	if mb.closed {
		return
	}
	mb.inbound <- msg
}

// ConsumeInbound blocks until a message arrives, the context is cancelled, or
// the bus is closed. The second return value is false when no more messages
// will be delivered.
func (mb *MessageBus) ConsumeInbound(ctx context.Context) (InboundMessage, bool) {
	select {
	case msg, ok := <-mb.inbound:
		if !ok {
			return InboundMessage{}, false
		}
		return msg, true
	case <-ctx.Done():
		return InboundMessage{}, false
	}
}

func (mb *MessageBus) Close() {
	mb.mu.Lock()
	defer mb.mu.Unlock()
	if mb.closed {
		return
	}
	mb.closed = true
	close(mb.inbound)
}
