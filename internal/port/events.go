package port

import (
	"context"

	"github.com/bnema/thumbd/internal/domain"
)

type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event) error
}

// MessageHandler consumes one raw inbound message.
type MessageHandler func(ctx context.Context, payload []byte) error

// EventSubscriber delivers inbound messages from named channels.
type EventSubscriber interface {
	Subscribe(channel string, handler MessageHandler)
	Run(ctx context.Context) error
}
