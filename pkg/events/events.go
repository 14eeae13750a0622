// Package events turns named-event subscriptions into lazy sequences
// via the bridge package.
package events

import (
	"sync"

	"github.com/vnykmshr/seqflow/pkg/bridge"
)

// Emitter is the event-subscription boundary: anything that can
// register a callback for a named event. The callback receives one
// payload value per event.
type Emitter interface {
	RegisterListener(event string, fn func(payload any))
}

// FromEvent creates a Bridge fed by every event named event on em.
// Payloads that are not of type T are ignored. Event payloads are
// subject to the bridge's coalescing: if events arrive faster than
// the consumer pulls, only the most recent pending payload survives.
//
// The returned bridge gives the caller the usual control surface:
// Sequence() for consumption, Complete/Fail to end it.
func FromEvent[T any](em Emitter, event string) *bridge.Bridge[T] {
	return FromEventWithConfig[T](em, event, bridge.DefaultConfig[T]())
}

// FromEventWithConfig is FromEvent with explicit bridge configuration,
// for callers that want more pending slots than the single coalescing
// one.
func FromEventWithConfig[T any](em Emitter, event string, config bridge.Config[T]) *bridge.Bridge[T] {
	b := bridge.NewWithConfig(config)
	em.RegisterListener(event, func(payload any) {
		if value, ok := payload.(T); ok {
			_ = b.Emit(value)
		}
	})
	return b
}

// SimpleEmitter is an in-memory Emitter for manual event dispatch.
type SimpleEmitter struct {
	mu        sync.RWMutex
	listeners map[string][]func(payload any)
}

// NewSimpleEmitter creates an empty SimpleEmitter.
func NewSimpleEmitter() *SimpleEmitter {
	return &SimpleEmitter{listeners: make(map[string][]func(payload any))}
}

// RegisterListener implements Emitter.
func (e *SimpleEmitter) RegisterListener(event string, fn func(payload any)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners[event] = append(e.listeners[event], fn)
}

// Dispatch delivers payload to every listener registered for event,
// in registration order, on the caller's goroutine.
func (e *SimpleEmitter) Dispatch(event string, payload any) {
	e.mu.RLock()
	fns := e.listeners[event]
	e.mu.RUnlock()

	for _, fn := range fns {
		fn(payload)
	}
}
