package sequence

import "context"

// ToSlice drives seq to completion and returns every value in order.
// It never returns for an infinite sequence; bound those with Take
// first.
func ToSlice[T any](ctx context.Context, seq Sequence[T]) ([]T, error) {
	var result []T
	err := ForEach(ctx, seq, func(v T) {
		result = append(result, v)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ForEach invokes action for every value of seq, in order, for its
// side effects only. It returns the first upstream error, or nil once
// the sequence is exhausted.
func ForEach[T any](ctx context.Context, seq Sequence[T], action func(T)) error {
	iter := seq.Iterator()
	for {
		value, ok, err := iter.Next(ctx)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		action(value)
	}
}

// Reduce applies accumulator over seq left to right starting from
// initial and returns the final accumulated value. An empty sequence
// reduces to initial.
func Reduce[T, A any](ctx context.Context, seq Sequence[T], initial A, accumulator func(A, T) A) (A, error) {
	result := initial
	err := ForEach(ctx, seq, func(v T) {
		result = accumulator(result, v)
	})
	if err != nil {
		return initial, err
	}
	return result, nil
}

// Count drives seq to completion and returns the number of values it
// produced.
func Count[T any](ctx context.Context, seq Sequence[T]) (int64, error) {
	var count int64
	err := ForEach(ctx, seq, func(T) { count++ })
	if err != nil {
		return 0, err
	}
	return count, nil
}

// First returns the first value of seq, pulling exactly once. The
// second return is false for an empty sequence.
func First[T any](ctx context.Context, seq Sequence[T]) (T, bool, error) {
	return seq.Iterator().Next(ctx)
}
