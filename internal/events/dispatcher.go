// Package events implements the observer pattern used to fan domain
// events out to the API layer, the CLI, and logging.
package events

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Event is a domain event dispatched to observers.
type Event struct {
	// Type is the event type (e.g. "deck:updated", "assembly:stage").
	Type string

	// TypedData contains the event payload as a typed struct from
	// messages.go.
	TypedData any

	// Context provides execution context for the event.
	Context context.Context
}

// Observer is notified of dispatched events.
type Observer interface {
	// OnEvent is called when an event is dispatched.
	OnEvent(event Event) error

	// GetName returns a human-readable name for logging.
	GetName() string

	// ShouldHandle reports whether this observer wants the event type.
	ShouldHandle(eventType string) bool
}

// EventDispatcher distributes events to registered observers.
// Thread-safe for concurrent use.
type EventDispatcher struct {
	observers []Observer
	logger    *zap.Logger
	mu        sync.RWMutex
}

// NewEventDispatcher creates a dispatcher. A nil logger disables
// dispatcher logging.
func NewEventDispatcher(logger *zap.Logger) *EventDispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EventDispatcher{
		observers: make([]Observer, 0),
		logger:    logger,
	}
}

// Register adds an observer. It will receive all future events its
// ShouldHandle accepts.
func (d *EventDispatcher) Register(observer Observer) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.observers = append(d.observers, observer)
	d.logger.Debug("observer registered", zap.String("observer", observer.GetName()))
}

// Unregister removes an observer.
func (d *EventDispatcher) Unregister(observer Observer) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i, obs := range d.observers {
		if obs == observer {
			d.observers[i] = d.observers[len(d.observers)-1]
			d.observers = d.observers[:len(d.observers)-1]
			d.logger.Debug("observer unregistered", zap.String("observer", observer.GetName()))
			return
		}
	}
}

// Dispatch sends an event to all registered observers in registration
// order. Observer errors are logged and do not stop dispatch.
func (d *EventDispatcher) Dispatch(event Event) {
	d.mu.RLock()
	observers := make([]Observer, len(d.observers))
	copy(observers, d.observers)
	d.mu.RUnlock()

	for _, observer := range observers {
		if !observer.ShouldHandle(event.Type) {
			continue
		}
		if err := observer.OnEvent(event); err != nil {
			d.logger.Warn("observer failed to handle event",
				zap.String("observer", observer.GetName()),
				zap.String("event", event.Type),
				zap.Error(err))
		}
	}
}

// DispatchAsync notifies each observer in its own goroutine. Useful
// for slow handlers that must not block assembly progress.
func (d *EventDispatcher) DispatchAsync(event Event) {
	d.mu.RLock()
	observers := make([]Observer, len(d.observers))
	copy(observers, d.observers)
	d.mu.RUnlock()

	for _, observer := range observers {
		if !observer.ShouldHandle(event.Type) {
			continue
		}
		go func(obs Observer) {
			if err := obs.OnEvent(event); err != nil {
				d.logger.Warn("observer failed to handle event",
					zap.String("observer", obs.GetName()),
					zap.String("event", event.Type),
					zap.Error(err))
			}
		}(observer)
	}
}
