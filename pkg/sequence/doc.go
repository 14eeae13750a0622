/*
Package sequence provides a lazy, pull-based sequence abstraction and
a library of composable operators over it.

A Sequence is a description of an iteration, not a container: it wraps
a factory producing a fresh Iterator on demand, and nothing is
computed until a consumer pulls. Operators wrap sequences in other
sequences; only terminal operations drive iteration.

Core Concepts:

  - Lazy: operators never consume eagerly; each pull from downstream
    causes at most the pulls it needs from upstream
  - Pull-based: exactly one in-flight pull per active iterator; an
    operator never requests a second upstream value before the first
    request settles
  - Replayable: a sequence over immutable data can be iterated any
    number of times independently; sequences whose factory closes over
    shared state (see the bridge package) share that state instead
  - Context-aware: every pull takes a context.Context and respects
    cancellation

Basic Usage:

	seq := sequence.Map(
		sequence.Filter(sequence.Range(1, 100), isPrime),
		func(n int) int { return n * n },
	)

	result, err := sequence.ToSlice(ctx, sequence.Take(seq, 10))

Error Handling:

Operators do not catch upstream errors; an error surfaced by a pull
propagates unchanged to the terminal operation and ends the
iteration. A clean end of sequence is never an error.

Infinite Sequences:

RangeFrom and Generate produce unbounded sequences. Bound them with
Take, TakeWhile, or TakeUntil before applying a terminal operation;
ToSlice on an infinite sequence never returns.
*/
package sequence
