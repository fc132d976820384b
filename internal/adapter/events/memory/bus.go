package memory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/bnema/thumbd/internal/domain"
	"github.com/bnema/thumbd/internal/infrastructure/logger"
	"github.com/bnema/thumbd/internal/port"
)

var ErrBusFull = errors.New("event bus buffer is full")

type message struct {
	channel string
	payload []byte
}

// Bus is an in-process message transport. Messages are buffered and handed
// to the handlers of their channel by Run, one at a time.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]port.MessageHandler
	queue    chan message
	outbound string
	log      zerolog.Logger
}

func New(outboundChannel string, buffer int, log zerolog.Logger) *Bus {
	return &Bus{
		handlers: make(map[string][]port.MessageHandler),
		queue:    make(chan message, buffer),
		outbound: outboundChannel,
		log:      logger.Component(log, "memory-bus"),
	}
}

func (b *Bus) Subscribe(channel string, handler port.MessageHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[channel] = append(b.handlers[channel], handler)
}

// Send enqueues a raw message, waiting for buffer space until ctx is done.
func (b *Bus) Send(ctx context.Context, channel string, payload []byte) error {
	select {
	case b.queue <- message{channel: channel, payload: payload}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Publish puts an outbound event on the outbound channel. It never blocks.
func (b *Bus) Publish(_ context.Context, event domain.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	select {
	case b.queue <- message{channel: b.outbound, payload: payload}:
		return nil
	default:
		return ErrBusFull
	}
}

func (b *Bus) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case m := <-b.queue:
			b.dispatch(ctx, m)
		}
	}
}

func (b *Bus) dispatch(ctx context.Context, m message) {
	b.mu.RLock()
	handlers := b.handlers[m.channel]
	b.mu.RUnlock()

	for _, h := range handlers {
		if err := h(ctx, m.payload); err != nil {
			b.log.Error().Err(err).Str("channel", m.channel).Msg("message handler failed")
		}
	}
}

// Ingress feeds upload service notifications received out of band, e.g.
// over HTTP, onto the bus.
type Ingress struct {
	bus      *Bus
	uploaded string
	deleted  string
}

func (b *Bus) Ingress(uploadedChannel, deletedChannel string) *Ingress {
	return &Ingress{bus: b, uploaded: uploadedChannel, deleted: deletedChannel}
}

func (i *Ingress) HandleUploaded(ctx context.Context, payload []byte) error {
	return i.bus.Send(ctx, i.uploaded, payload)
}

func (i *Ingress) HandleDeleted(ctx context.Context, payload []byte) error {
	return i.bus.Send(ctx, i.deleted, payload)
}

var (
	_ port.EventPublisher  = (*Bus)(nil)
	_ port.EventSubscriber = (*Bus)(nil)
)
