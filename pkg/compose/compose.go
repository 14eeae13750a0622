// Package compose provides function composition and partial
// application helpers used to build readable sequence pipelines.
package compose

import "github.com/vnykmshr/seqflow/pkg/sequence"

// Identity returns the supplied value unchanged.
func Identity[T any](v T) T {
	return v
}

// Pipe applies fns to value left to right.
func Pipe[T any](value T, fns ...func(T) T) T {
	result := value
	for _, fn := range fns {
		result = fn(result)
	}
	return result
}

// Compose composes fns in right-to-left order: Compose(f, g)(x) is
// f(g(x)).
func Compose[T any](fns ...func(T) T) func(T) T {
	return func(value T) T {
		result := value
		for i := len(fns) - 1; i >= 0; i-- {
			result = fns[i](result)
		}
		return result
	}
}

// Curry2 converts a binary function into its curried form.
func Curry2[A, B, C any](fn func(A, B) C) func(A) func(B) C {
	return func(a A) func(B) C {
		return func(b B) C {
			return fn(a, b)
		}
	}
}

// Curry3 converts a ternary function into its curried form.
func Curry3[A, B, C, D any](fn func(A, B, C) D) func(A) func(B) func(C) D {
	return func(a A) func(B) func(C) D {
		return func(b B) func(C) D {
			return func(c C) D {
				return fn(a, b, c)
			}
		}
	}
}

// Operator is a sequence transformation suitable for chaining.
type Operator[T any] func(sequence.Sequence[T]) sequence.Sequence[T]

// Chain composes operators into a single pipeline applied left to
// right, so Chain(f, g)(seq) pulls through f first, then g.
func Chain[T any](ops ...Operator[T]) Operator[T] {
	return func(seq sequence.Sequence[T]) sequence.Sequence[T] {
		result := seq
		for _, op := range ops {
			result = op(result)
		}
		return result
	}
}

// Partially applied operator constructors for pipeline building.

// MapWith returns a same-type Map operator for use with Chain.
func MapWith[T any](fn func(T) T) Operator[T] {
	return func(seq sequence.Sequence[T]) sequence.Sequence[T] {
		return sequence.Map(seq, fn)
	}
}

// FilterWith returns a Filter operator for use with Chain.
func FilterWith[T any](predicate func(T) bool) Operator[T] {
	return func(seq sequence.Sequence[T]) sequence.Sequence[T] {
		return sequence.Filter(seq, predicate)
	}
}

// TakeN returns a Take operator for use with Chain.
func TakeN[T any](n int) Operator[T] {
	return func(seq sequence.Sequence[T]) sequence.Sequence[T] {
		return sequence.Take(seq, n)
	}
}

// SkipN returns a Skip operator for use with Chain.
func SkipN[T any](n int) Operator[T] {
	return func(seq sequence.Sequence[T]) sequence.Sequence[T] {
		return sequence.Skip(seq, n)
	}
}

// TapWith returns a Tap operator for use with Chain.
func TapWith[T any](fn func(T)) Operator[T] {
	return func(seq sequence.Sequence[T]) sequence.Sequence[T] {
		return sequence.Tap(seq, fn)
	}
}
