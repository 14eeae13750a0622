package sequence

import (
	"context"
	"time"
)

// Map creates a Sequence yielding fn(v) for each upstream value v,
// preserving order.
func Map[T, U any](seq Sequence[T], fn func(T) U) Sequence[U] {
	return FromFactory(func() Iterator[U] {
		upstream := seq.Iterator()
		return NextFunc[U](func(ctx context.Context) (U, bool, error) {
			var zero U
			value, ok, err := upstream.Next(ctx)
			if err != nil || !ok {
				return zero, false, err
			}
			return fn(value), true, nil
		})
	})
}

// Filter creates a Sequence yielding only the upstream values for
// which predicate returns true.
func Filter[T any](seq Sequence[T], predicate func(T) bool) Sequence[T] {
	return FromFactory(func() Iterator[T] {
		upstream := seq.Iterator()
		return NextFunc[T](func(ctx context.Context) (T, bool, error) {
			var zero T
			for {
				value, ok, err := upstream.Next(ctx)
				if err != nil || !ok {
					return zero, false, err
				}
				if predicate(value) {
					return value, true, nil
				}
			}
		})
	})
}

// FlatMap creates a Sequence that, for each upstream value v, fully
// drains the sequence fn(v) before pulling the next upstream value.
// Sub-sequence order and upstream order are both preserved.
func FlatMap[T, U any](seq Sequence[T], fn func(T) Sequence[U]) Sequence[U] {
	return FromFactory(func() Iterator[U] {
		upstream := seq.Iterator()
		var inner Iterator[U]
		return NextFunc[U](func(ctx context.Context) (U, bool, error) {
			var zero U
			for {
				if inner != nil {
					value, ok, err := inner.Next(ctx)
					if err != nil {
						return zero, false, err
					}
					if ok {
						return value, true, nil
					}
					inner = nil
				}

				value, ok, err := upstream.Next(ctx)
				if err != nil || !ok {
					return zero, false, err
				}
				inner = fn(value).Iterator()
			}
		})
	})
}

// Take creates a Sequence yielding at most n upstream values. Once n
// values have been yielded no further upstream pulls are made; n <= 0
// yields nothing without ever pulling upstream.
func Take[T any](seq Sequence[T], n int) Sequence[T] {
	return FromFactory(func() Iterator[T] {
		upstream := seq.Iterator()
		remaining := n
		return NextFunc[T](func(ctx context.Context) (T, bool, error) {
			var zero T
			if remaining <= 0 {
				return zero, false, nil
			}
			value, ok, err := upstream.Next(ctx)
			if err != nil || !ok {
				return zero, false, err
			}
			remaining--
			return value, true, nil
		})
	})
}

// Skip creates a Sequence discarding the first n upstream values and
// yielding the rest.
func Skip[T any](seq Sequence[T], n int) Sequence[T] {
	return FromFactory(func() Iterator[T] {
		upstream := seq.Iterator()
		remaining := n
		return NextFunc[T](func(ctx context.Context) (T, bool, error) {
			var zero T
			for {
				value, ok, err := upstream.Next(ctx)
				if err != nil || !ok {
					return zero, false, err
				}
				if remaining > 0 {
					remaining--
					continue
				}
				return value, true, nil
			}
		})
	})
}

// TakeWhile creates a Sequence yielding upstream values until the
// first value for which predicate returns false. That value and all
// after it are discarded, and no further upstream pulls are made.
func TakeWhile[T any](seq Sequence[T], predicate func(T) bool) Sequence[T] {
	return takeUntil(seq, func(v T) bool { return !predicate(v) })
}

// TakeUntil creates a Sequence yielding upstream values until the
// first value for which predicate returns true. That value is
// discarded and the sequence ends.
func TakeUntil[T any](seq Sequence[T], predicate func(T) bool) Sequence[T] {
	return takeUntil(seq, predicate)
}

func takeUntil[T any](seq Sequence[T], stop func(T) bool) Sequence[T] {
	return FromFactory(func() Iterator[T] {
		upstream := seq.Iterator()
		done := false
		return NextFunc[T](func(ctx context.Context) (T, bool, error) {
			var zero T
			if done {
				return zero, false, nil
			}
			value, ok, err := upstream.Next(ctx)
			if err != nil || !ok {
				done = true
				return zero, false, err
			}
			if stop(value) {
				done = true
				return zero, false, nil
			}
			return value, true, nil
		})
	})
}

// SkipWhile creates a Sequence discarding the leading run of upstream
// values for which predicate returns true, then yielding every value
// thereafter exactly once, starting with the value that ended the run.
func SkipWhile[T any](seq Sequence[T], predicate func(T) bool) Sequence[T] {
	return skipUntil(seq, func(v T) bool { return !predicate(v) })
}

// SkipUntil creates a Sequence discarding the leading run of upstream
// values for which predicate returns false, then yielding every value
// thereafter exactly once, starting with the value that ended the run.
func SkipUntil[T any](seq Sequence[T], predicate func(T) bool) Sequence[T] {
	return skipUntil(seq, predicate)
}

func skipUntil[T any](seq Sequence[T], stop func(T) bool) Sequence[T] {
	return FromFactory(func() Iterator[T] {
		upstream := seq.Iterator()
		skipping := true
		return NextFunc[T](func(ctx context.Context) (T, bool, error) {
			var zero T
			for {
				value, ok, err := upstream.Next(ctx)
				if err != nil || !ok {
					return zero, false, err
				}
				if skipping {
					if !stop(value) {
						continue
					}
					// The value ending the skip run is the first one
					// yielded, exactly once.
					skipping = false
				}
				return value, true, nil
			}
		})
	})
}

// Tap creates a Sequence invoking fn on each upstream value as a side
// effect, then yielding the value unchanged.
func Tap[T any](seq Sequence[T], fn func(T)) Sequence[T] {
	return FromFactory(func() Iterator[T] {
		upstream := seq.Iterator()
		return NextFunc[T](func(ctx context.Context) (T, bool, error) {
			var zero T
			value, ok, err := upstream.Next(ctx)
			if err != nil || !ok {
				return zero, false, err
			}
			fn(value)
			return value, true, nil
		})
	})
}

// Delay creates a Sequence waiting d before yielding each upstream
// value; values pass through unchanged and in order.
func Delay[T any](seq Sequence[T], d time.Duration) Sequence[T] {
	return DelayWith(seq, d, nil)
}

// DelayWith is Delay with an injectable timer. after defaults to
// time.After when nil.
func DelayWith[T any](seq Sequence[T], d time.Duration, after func(time.Duration) <-chan time.Time) Sequence[T] {
	if after == nil {
		after = time.After
	}
	return FromFactory(func() Iterator[T] {
		upstream := seq.Iterator()
		return NextFunc[T](func(ctx context.Context) (T, bool, error) {
			var zero T
			value, ok, err := upstream.Next(ctx)
			if err != nil || !ok {
				return zero, false, err
			}
			select {
			case <-after(d):
				return value, true, nil
			case <-ctx.Done():
				return zero, false, ctx.Err()
			}
		})
	})
}

// pullResult carries one branch's pull outcome across the goroutine
// boundary in Merge.
type pullResult[T any] struct {
	value T
	ok    bool
	err   error
}

// Merge creates a Sequence advancing sequences a and b in lockstep and
// yielding combine(aValue, bValue) each step. Both branches are pulled
// concurrently once per step, and a step completes only when both
// pulls have settled. The merged sequence ends as soon as either
// branch is exhausted; the other branch is not pulled again.
func Merge[A, B, C any](combine func(A, B) C, a Sequence[A], b Sequence[B]) Sequence[C] {
	return FromFactory(func() Iterator[C] {
		aIter := a.Iterator()
		bIter := b.Iterator()
		done := false
		return NextFunc[C](func(ctx context.Context) (C, bool, error) {
			var zero C
			if done {
				return zero, false, nil
			}

			aCh := make(chan pullResult[A], 1)
			bCh := make(chan pullResult[B], 1)
			go func() {
				value, ok, err := aIter.Next(ctx)
				aCh <- pullResult[A]{value, ok, err}
			}()
			go func() {
				value, ok, err := bIter.Next(ctx)
				bCh <- pullResult[B]{value, ok, err}
			}()
			aRes, bRes := <-aCh, <-bCh

			if aRes.err != nil {
				done = true
				return zero, false, aRes.err
			}
			if bRes.err != nil {
				done = true
				return zero, false, bRes.err
			}
			if !aRes.ok || !bRes.ok {
				done = true
				return zero, false, nil
			}
			return combine(aRes.value, bRes.value), true, nil
		})
	})
}
