package events

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// EventHandler handles a published event.
type EventHandler func(context.Context, Event) error

// Dispatcher interface allows event publication/subscription.
type Dispatcher interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType EventType, handler EventHandler)
}

// syncDispatcher runs handlers on the publishing goroutine, in subscription order.
type syncDispatcher struct {
	mu       sync.RWMutex
	handlers map[EventType][]EventHandler
}

// NewInMemoryDispatcher creates a dispatcher instance.
func NewInMemoryDispatcher() Dispatcher {
	return &syncDispatcher{handlers: make(map[EventType][]EventHandler)}
}

// Publish invokes every handler subscribed to event.Type. A failing or
// panicking handler does not stop the rest; all failures are joined into the
// returned error.
func (d *syncDispatcher) Publish(ctx context.Context, event Event) error {
	d.mu.RLock()
	subscribed := d.handlers[event.Type]
	d.mu.RUnlock()

	var errs []error
	for i, handler := range subscribed {
		if err := invoke(ctx, handler, event); err != nil {
			errs = append(errs, fmt.Errorf("%s handler %d: %w", event.Type, i, err))
		}
	}
	return errors.Join(errs...)
}

// Subscribe registers a handler for the given event type.
func (d *syncDispatcher) Subscribe(eventType EventType, handler EventHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	// never append in place: Publish may be iterating the previous slice
	next := make([]EventHandler, len(d.handlers[eventType]), len(d.handlers[eventType])+1)
	copy(next, d.handlers[eventType])
	d.handlers[eventType] = append(next, handler)
}

func invoke(ctx context.Context, handler EventHandler, event Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return handler(ctx, event)
}
