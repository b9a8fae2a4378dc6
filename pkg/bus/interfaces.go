// DeskBot - Telegram customer support bot
// License: MIT
//
// Copyright (c) 2026 DeskBot contributors

package bus

import "context"

type Publisher interface {
	PublishInbound(InboundMessage)
}

type Subscriber interface {
	ConsumeInbound(context.Context) (InboundMessage, bool)
}

type Broker interface {
	Publisher
	Subscriber
	Close()
}
