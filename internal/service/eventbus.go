package service

import (
	"context"
	"errors"
	"sync"

	"github.com/bnema/thumbd/internal/domain"
	"github.com/bnema/thumbd/internal/port"
)

// EventBus fans derivative events out to live subscribers of a source.
type EventBus struct {
	subscribers map[string][]chan domain.Event
	mu          sync.RWMutex
}

func NewEventBus() *EventBus {
	return &EventBus{
		subscribers: make(map[string][]chan domain.Event),
	}
}

func (eb *EventBus) Subscribe(sourceID string) chan domain.Event {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	ch := make(chan domain.Event, 16)
	eb.subscribers[sourceID] = append(eb.subscribers[sourceID], ch)
	return ch
}

func (eb *EventBus) Unsubscribe(sourceID string, ch chan domain.Event) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	subs := eb.subscribers[sourceID]
	for i, sub := range subs {
		if sub == ch {
			eb.subscribers[sourceID] = append(subs[:i], subs[i+1:]...)
			close(ch)
			break
		}
	}

	if len(eb.subscribers[sourceID]) == 0 {
		delete(eb.subscribers, sourceID)
	}
}

func (eb *EventBus) Publish(_ context.Context, event domain.Event) error {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	for _, ch := range eb.subscribers[event.SourceID] {
		select {
		case ch <- event:
		default:
			// Drop event if subscriber is slow
		}
	}
	return nil
}

// Publishers delivers every event to each publisher in turn.
type Publishers []port.EventPublisher

func (p Publishers) Publish(ctx context.Context, event domain.Event) error {
	var errs []error
	for _, pub := range p {
		if err := pub.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

var (
	_ port.EventPublisher = (*EventBus)(nil)
	_ port.EventPublisher = Publishers(nil)
)
