package events

import (
	"context"
	"sync"

	"github.com/redis/go-redis/v9"
)

// RedisEmitter adapts Redis Pub/Sub channels to the Emitter interface.
// Each event name maps to a Redis channel of the same name; listener
// callbacks receive the message payload as a string.
//
// Subscriptions are created lazily on first RegisterListener per
// event and pumped by one goroutine each until Close.
type RedisEmitter struct {
	client *redis.Client

	mu        sync.Mutex
	listeners map[string][]func(payload any)
	subs      map[string]*redis.PubSub
	closed    bool
}

// NewRedisEmitter creates a RedisEmitter on top of an existing client.
// The emitter does not own the client; closing the emitter leaves the
// client open.
func NewRedisEmitter(client *redis.Client) *RedisEmitter {
	return &RedisEmitter{
		client:    client,
		listeners: make(map[string][]func(payload any)),
		subs:      make(map[string]*redis.PubSub),
	}
}

// RegisterListener implements Emitter. The first listener for an event
// subscribes to the Redis channel of that name.
func (e *RedisEmitter) RegisterListener(event string, fn func(payload any)) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return
	}

	e.listeners[event] = append(e.listeners[event], fn)
	if _, ok := e.subs[event]; ok {
		return
	}

	sub := e.client.Subscribe(context.Background(), event)
	e.subs[event] = sub
	go e.pump(event, sub)
}

// pump forwards messages from one subscription to its listeners until
// the subscription channel closes.
func (e *RedisEmitter) pump(event string, sub *redis.PubSub) {
	for msg := range sub.Channel() {
		e.mu.Lock()
		fns := make([]func(payload any), len(e.listeners[event]))
		copy(fns, e.listeners[event])
		e.mu.Unlock()

		for _, fn := range fns {
			fn(msg.Payload)
		}
	}
}

// Publish sends payload to the Redis channel named event. It is a
// convenience for producers sharing the emitter's client.
func (e *RedisEmitter) Publish(ctx context.Context, event, payload string) error {
	return e.client.Publish(ctx, event, payload).Err()
}

// Close unsubscribes every event channel and drops all listeners.
func (e *RedisEmitter) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil
	}
	e.closed = true

	var firstErr error
	for _, sub := range e.subs {
		if err := sub.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	e.subs = make(map[string]*redis.PubSub)
	e.listeners = make(map[string][]func(payload any))
	return firstErr
}
