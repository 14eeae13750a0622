package sequence

import (
	"context"
	"math"

	"github.com/vnykmshr/seqflow/pkg/promise"
)

// sliceIterator implements Iterator over a slice.
type sliceIterator[T any] struct {
	slice []T
	index int
}

func (s *sliceIterator[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T

	select {
	case <-ctx.Done():
		return zero, false, ctx.Err()
	default:
	}

	if s.index >= len(s.slice) {
		return zero, false, nil
	}

	value := s.slice[s.index]
	s.index++
	return value, true, nil
}

// FromSlice creates a Sequence over the elements of a slice, in order.
// Every iteration replays the slice from the start.
func FromSlice[T any](slice []T) Sequence[T] {
	return FromFactory(func() Iterator[T] {
		return &sliceIterator[T]{slice: slice}
	})
}

// FromChannel creates a Sequence that drains a channel. The sequence
// ends when the channel is closed. Re-iterating shares the channel:
// each iterator competes for the remaining values.
func FromChannel[T any](ch <-chan T) Sequence[T] {
	return FromFactory(func() Iterator[T] {
		return NextFunc[T](func(ctx context.Context) (T, bool, error) {
			var zero T
			select {
			case value, ok := <-ch:
				if !ok {
					return zero, false, nil
				}
				return value, true, nil
			case <-ctx.Done():
				return zero, false, ctx.Err()
			}
		})
	})
}

// Generate creates an infinite Sequence from a generator function.
// Consumers should bound it with Take or an equivalent operator.
func Generate[T any](generator func() T) Sequence[T] {
	return FromFactory(func() Iterator[T] {
		return NextFunc[T](func(ctx context.Context) (T, bool, error) {
			select {
			case <-ctx.Done():
				var zero T
				return zero, false, ctx.Err()
			default:
				return generator(), true, nil
			}
		})
	})
}

// Empty creates a Sequence that yields nothing and ends immediately.
func Empty[T any]() Sequence[T] {
	return FromFactory(func() Iterator[T] {
		return NextFunc[T](func(_ context.Context) (T, bool, error) {
			var zero T
			return zero, false, nil
		})
	})
}

// rangeIterator counts from current to end inclusive, mapping each
// index through fn.
type rangeIterator[T any] struct {
	current int
	end     int
	fn      func(int) T
}

func (r *rangeIterator[T]) Next(ctx context.Context) (T, bool, error) {
	var zero T

	select {
	case <-ctx.Done():
		return zero, false, ctx.Err()
	default:
	}

	if r.current > r.end {
		return zero, false, nil
	}

	value := r.fn(r.current)
	r.current++
	return value, true, nil
}

// Range creates a Sequence of the integers from start to end inclusive.
// An end below start yields an empty sequence.
func Range(start, end int) Sequence[int] {
	return RangeFunc(start, end, func(i int) int { return i })
}

// RangeFrom creates an unbounded Sequence counting up from start.
func RangeFrom(start int) Sequence[int] {
	return Range(start, math.MaxInt)
}

// RangeFunc creates a Sequence of mapper(i) for i from start to end
// inclusive.
func RangeFunc[T any](start, end int, mapper func(int) T) Sequence[T] {
	return FromFactory(func() Iterator[T] {
		return &rangeIterator[T]{current: start, end: end, fn: mapper}
	})
}

// FromPromise creates a Sequence that yields exactly one element, the
// settled value of p, then ends. A rejected promise propagates its
// error to the consumer once.
func FromPromise[T any](p *promise.Promise[T]) Sequence[T] {
	return FromFactory(func() Iterator[T] {
		done := false
		return NextFunc[T](func(ctx context.Context) (T, bool, error) {
			var zero T
			if done {
				return zero, false, nil
			}
			done = true

			value, err := p.Await(ctx)
			if err != nil {
				return zero, false, err
			}
			return value, true, nil
		})
	})
}
