package bus

import (
	"context"
	"testing"
	"time"
)

func TestPublishConsume(t *testing.T) {
	mb := NewMessageBus()
	defer mb.Close()

	want := InboundMessage{SenderID: "42", ChatID: "42", Content: "hello"}
	mb.PublishInbound(want)

	got, ok := mb.ConsumeInbound(context.Background())
	if !ok {
		t.Fatal("ConsumeInbound() ok = false, want true")
	}
	if got.SenderID != want.SenderID || got.Content != want.Content {
		t.Errorf("ConsumeInbound() = %+v, want %+v", got, want)
	}
}

func TestConsumeContextCancelled(t *testing.T) {
	mb := NewMessageBus()
	defer mb.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, ok := mb.ConsumeInbound(ctx)
	if ok {
		t.Error("ConsumeInbound() ok = true on cancelled context, want false")
	}
}

func TestPublishAfterClose(t *testing.T) {
	mb := NewMessageBus()
	mb.Close()

	// Must not panic on a closed bus.
	mb.PublishInbound(InboundMessage{ChatID: "1", Content: "late"})
	mb.Close()

	_, ok := mb.ConsumeInbound(context.Background())
	if ok {
		t.Error("ConsumeInbound() ok = true after close, want false")
	}
}
