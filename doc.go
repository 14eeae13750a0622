/*
Package seqflow provides lazy, pull-based asynchronous sequence
composition for Go: a small core sequence type, a push-to-pull bridge,
and a library of composable operators.

Sequences (pkg/sequence):
  - sources: slices, channels, ranges, generators, promises
  - transform operators: Map, Filter, FlatMap, Take, Skip, TakeWhile,
    TakeUntil, SkipWhile, SkipUntil, Tap, Delay, Merge
  - terminal operators: ToSlice, ForEach, Reduce, Count, First

Push sources:
  - bridge: single-slot rendezvous between push producers and pull
    consumers, with last-value-wins coalescing
  - events: named-event subscriptions, Redis Pub/Sub, cron schedules

Utilities:
  - compose: function composition, currying, operator pipelines
  - promise: single-value futures
  - metrics: Prometheus instrumentation

Example usage:

	import (
		"github.com/vnykmshr/seqflow/pkg/sequence"
	)

	evens := sequence.Filter(sequence.Range(1, 100),
		func(n int) bool { return n%2 == 0 })
	doubled := sequence.Map(evens, func(n int) int { return n * 2 })

	result, err := sequence.ToSlice(ctx, sequence.Take(doubled, 10))
*/
package seqflow
