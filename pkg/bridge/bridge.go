// Package bridge adapts push-driven producers (events, timers, manual
// emission) to the pull-based iteration model of pkg/sequence.
//
// A Bridge holds a small ring of pending values with overwrite-on-send
// semantics: when a producer emits faster than the consumer pulls, the
// oldest pending value is dropped. With the default capacity of one
// this yields last-value-wins coalescing, which is the documented
// policy for push overload, not a defect.
package bridge

import (
	"context"
	"fmt"
	"sync"

	seqerrors "github.com/vnykmshr/seqflow/pkg/common/errors"
	"github.com/vnykmshr/seqflow/pkg/sequence"
)

// ErrBridgeClosed is returned by Emit after Complete or Fail. It
// matches errors.ErrClosed.
var ErrBridgeClosed = fmt.Errorf("bridge: %w", seqerrors.ErrClosed)

// state is the bridge liveness flag.
type state int32

const (
	stateActive state = iota
	stateCompleted
	stateFailed
)

// Config holds configuration for a Bridge.
type Config[T any] struct {
	// Capacity is the number of pending values held between consumer
	// pulls. Values beyond it overwrite the oldest pending value.
	Capacity int

	// OnDrop is called with each value discarded by coalescing.
	OnDrop func(value T)
}

// DefaultConfig returns the default configuration: a single pending
// slot, giving last-value-wins coalescing.
func DefaultConfig[T any]() Config[T] {
	return Config[T]{Capacity: 1}
}

// Stats holds counters describing bridge activity.
type Stats struct {
	// Emitted is the total number of accepted Emit calls.
	Emitted int64

	// Dropped is the number of values discarded by coalescing.
	Dropped int64

	// Delivered is the number of values pulled by consumers.
	Delivered int64
}

// Bridge lets an external producer drive a lazy sequence. It is
// designed for a single producer and one consumer at a time; all
// iterators obtained from it share the same pending values and
// liveness state.
type Bridge[T any] struct {
	config Config[T]

	mu      sync.Mutex
	buffer  []T
	head    int
	count   int
	state   state
	failure error
	stats   Stats

	// signal wakes a consumer blocked in Next. Capacity one with a
	// non-blocking send; a single consumer never misses a wakeup.
	signal chan struct{}
}

// New creates a Bridge with the default single-slot configuration.
func New[T any]() *Bridge[T] {
	return NewWithConfig(DefaultConfig[T]())
}

// NewWithConfig creates a Bridge with the given configuration.
func NewWithConfig[T any](config Config[T]) *Bridge[T] {
	if config.Capacity <= 0 {
		config.Capacity = DefaultConfig[T]().Capacity
	}
	return &Bridge[T]{
		config: config,
		buffer: make([]T, config.Capacity),
		signal: make(chan struct{}, 1),
	}
}

// Emit hands value to the consumer side. If no consumer pull happens
// before the next Emit and the pending slots are full, the oldest
// pending value is silently replaced. Emit returns ErrBridgeClosed
// after Complete or Fail.
func (b *Bridge[T]) Emit(value T) error {
	b.mu.Lock()
	if b.state != stateActive {
		b.mu.Unlock()
		return ErrBridgeClosed
	}

	var dropped T
	var didDrop bool
	if b.count == len(b.buffer) {
		dropped = b.removeLocked()
		didDrop = true
		b.stats.Dropped++
	}
	b.addLocked(value)
	b.stats.Emitted++
	b.mu.Unlock()

	if didDrop && b.config.OnDrop != nil {
		b.config.OnDrop(dropped)
	}
	b.wake()
	return nil
}

// Complete marks the bridge as cleanly finished. Values already
// pending are still delivered; the consumer observes the end of the
// sequence on the pull after the last pending value. Complete is
// terminal and idempotent.
func (b *Bridge[T]) Complete() {
	b.mu.Lock()
	if b.state == stateActive {
		b.state = stateCompleted
	}
	b.mu.Unlock()
	b.wake()
}

// Fail terminates the bridge with err. Pending values that were never
// pulled are discarded, and the active consumer's iteration surfaces
// err exactly once. Fail is terminal; after a Complete it has no
// effect.
func (b *Bridge[T]) Fail(err error) {
	b.mu.Lock()
	if b.state == stateActive {
		b.state = stateFailed
		b.failure = err
		// Emitted-but-unpulled values lose the race with the failure.
		var zero T
		for b.count > 0 {
			b.buffer[b.head] = zero
			b.head = (b.head + 1) % len(b.buffer)
			b.count--
		}
	}
	b.mu.Unlock()
	b.wake()
}

// Stats returns a snapshot of the bridge counters.
func (b *Bridge[T]) Stats() Stats {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stats
}

// Sequence returns the pull-side view of the bridge. Every iterator
// obtained from it shares the bridge's pending values and liveness
// state; concurrent consumers of the same bridge race for values.
func (b *Bridge[T]) Sequence() sequence.Sequence[T] {
	return sequence.FromFactory(func() sequence.Iterator[T] {
		return &bridgeIterator[T]{bridge: b}
	})
}

// bridgeIterator is the consumer side of a Bridge.
type bridgeIterator[T any] struct {
	bridge *Bridge[T]
	done   bool
}

func (it *bridgeIterator[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T
	if it.done {
		return zero, false, nil
	}

	b := it.bridge
	for {
		b.mu.Lock()
		if b.count > 0 {
			value := b.removeLocked()
			b.stats.Delivered++
			b.mu.Unlock()
			return value, true, nil
		}
		switch b.state {
		case stateFailed:
			err := b.failure
			b.mu.Unlock()
			it.done = true
			return zero, false, err
		case stateCompleted:
			b.mu.Unlock()
			it.done = true
			return zero, false, nil
		}
		b.mu.Unlock()

		select {
		case <-b.signal:
		case <-ctx.Done():
			return zero, false, ctx.Err()
		}
	}
}

// wake signals a blocked consumer without ever blocking the producer.
func (b *Bridge[T]) wake() {
	select {
	case b.signal <- struct{}{}:
	default:
	}
}

func (b *Bridge[T]) addLocked(value T) {
	tail := (b.head + b.count) % len(b.buffer)
	b.buffer[tail] = value
	b.count++
}

func (b *Bridge[T]) removeLocked() T {
	value := b.buffer[b.head]
	var zero T
	b.buffer[b.head] = zero
	b.head = (b.head + 1) % len(b.buffer)
	b.count--
	return value
}
