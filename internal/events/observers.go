package events

import (
	"go.uber.org/zap"
)

// LoggingObserver logs every event. Useful during development and for
// the CLI's verbose mode.
type LoggingObserver struct {
	name    string
	logger  *zap.Logger
	verbose bool
}

// NewLoggingObserver creates an observer that logs events. Verbose mode
// includes the typed payload.
func NewLoggingObserver(logger *zap.Logger, verbose bool) *LoggingObserver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoggingObserver{
		name:    "LoggingObserver",
		logger:  logger,
		verbose: verbose,
	}
}

// OnEvent logs the event details.
func (o *LoggingObserver) OnEvent(event Event) error {
	if o.verbose {
		o.logger.Info("event", zap.String("type", event.Type), zap.Any("data", event.TypedData))
	} else {
		o.logger.Info("event", zap.String("type", event.Type))
	}
	return nil
}

// GetName returns the observer's name.
func (o *LoggingObserver) GetName() string {
	return o.name
}

// ShouldHandle returns true for all events.
func (o *LoggingObserver) ShouldHandle(eventType string) bool {
	return true
}

// FuncObserver adapts a function into an Observer, filtered to a set
// of event types. An empty filter accepts everything.
type FuncObserver struct {
	name   string
	types  map[string]bool
	handle func(Event) error
}

// NewFuncObserver creates a function-backed observer.
func NewFuncObserver(name string, handle func(Event) error, eventTypes ...string) *FuncObserver {
	var types map[string]bool
	if len(eventTypes) > 0 {
		types = make(map[string]bool, len(eventTypes))
		for _, t := range eventTypes {
			types[t] = true
		}
	}
	return &FuncObserver{name: name, types: types, handle: handle}
}

// OnEvent invokes the wrapped function.
func (o *FuncObserver) OnEvent(event Event) error {
	return o.handle(event)
}

// GetName returns the observer's name.
func (o *FuncObserver) GetName() string {
	return o.name
}

// ShouldHandle applies the type filter.
func (o *FuncObserver) ShouldHandle(eventType string) bool {
	if o.types == nil {
		return true
	}
	return o.types[eventType]
}
