package sequence

import (
	"context"
	"fmt"

	seqerrors "github.com/vnykmshr/seqflow/pkg/common/errors"
)

// ErrNilFactory is returned when constructing a Sequence without an
// iterator factory. It matches errors.ErrInvalidConfiguration.
var ErrNilFactory = fmt.Errorf("sequence: nil iterator factory: %w", seqerrors.ErrInvalidConfiguration)

// Iterator produces the elements of a sequence one pull at a time.
// Iterators are driven entirely by the consumer; no work happens
// between calls to Next.
type Iterator[T any] interface {
	// Next returns the next element and true, or the zero value and
	// false once the sequence is exhausted. An error terminates the
	// iteration; Next must not be called again after it returns
	// false or an error.
	Next(ctx context.Context) (T, bool, error)
}

// NextFunc adapts a function to the Iterator interface.
type NextFunc[T any] func(ctx context.Context) (T, bool, error)

// Next implements Iterator.
func (f NextFunc[T]) Next(ctx context.Context) (T, bool, error) {
	return f(ctx)
}

// Sequence is a lazy, replayable description of an iteration. It wraps
// a factory that produces a fresh Iterator each time one is requested;
// no elements are computed until a consumer pulls them.
//
// If the factory is a pure function, every iteration is independent.
// A factory may instead close over shared mutable state (the bridge
// package does this), in which case repeated or concurrent iteration
// shares that state.
type Sequence[T any] struct {
	factory func() Iterator[T]
}

// New creates a Sequence from an iterator factory. It returns
// ErrNilFactory if factory is nil.
func New[T any](factory func() Iterator[T]) (Sequence[T], error) {
	if factory == nil {
		return Sequence[T]{}, ErrNilFactory
	}
	return Sequence[T]{factory: factory}, nil
}

// FromFactory creates a Sequence from a known-good iterator factory.
// It panics if factory is nil; operators use it internally where the
// factory is statically non-nil.
func FromFactory[T any](factory func() Iterator[T]) Sequence[T] {
	seq, err := New(factory)
	if err != nil {
		panic(err)
	}
	return seq
}

// Iterator invokes the factory and returns a fresh iterator over the
// sequence. Each call restarts the iteration.
func (s Sequence[T]) Iterator() Iterator[T] {
	return s.factory()
}
