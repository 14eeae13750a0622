package sequence

import (
	"context"
	"errors"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vnykmshr/seqflow/internal/testutil"
)

// countingSource wraps a slice and records how many upstream pulls the
// consumer performed.
func countingSource(values []int, pulls *int64) Sequence[int] {
	return FromFactory(func() Iterator[int] {
		index := 0
		return NextFunc[int](func(_ context.Context) (int, bool, error) {
			atomic.AddInt64(pulls, 1)
			if index >= len(values) {
				return 0, false, nil
			}
			value := values[index]
			index++
			return value, true, nil
		})
	})
}

// failAfter yields values then terminates with err.
func failAfter(values []int, err error) Sequence[int] {
	return FromFactory(func() Iterator[int] {
		index := 0
		return NextFunc[int](func(_ context.Context) (int, bool, error) {
			if index >= len(values) {
				return 0, false, err
			}
			value := values[index]
			index++
			return value, true, nil
		})
	})
}

func TestMap(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	result, err := ToSlice(ctx, Map(Range(1, 4), func(n int) int { return n * 2 }))
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, result, []int{2, 4, 6, 8})
}

func TestMapChangesType(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	result, err := ToSlice(ctx, Map(Range(1, 3), strconv.Itoa))
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, result, []string{"1", "2", "3"})
}

func TestFilter(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	result, err := ToSlice(ctx, Filter(Range(1, 10), func(n int) bool { return n%2 == 0 }))
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, result, []int{2, 4, 6, 8, 10})
}

func TestFlatMapDrainsInOrder(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	seq := FlatMap(Range(1, 3), func(n int) Sequence[int] {
		return FromSlice([]int{n, n * 10})
	})

	result, err := ToSlice(ctx, seq)
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, result, []int{1, 10, 2, 20, 3, 30})
}

func TestFlatMapEmptyInner(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	seq := FlatMap(Range(1, 4), func(n int) Sequence[int] {
		if n%2 == 0 {
			return Empty[int]()
		}
		return FromSlice([]int{n})
	})

	result, err := ToSlice(ctx, seq)
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, result, []int{1, 3})
}

func TestTake(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	result, err := ToSlice(ctx, Take(Range(1, 100), 3))
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, result, []int{1, 2, 3})
}

func TestTakeShorterUpstream(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	result, err := ToSlice(ctx, Take(Range(1, 2), 5))
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, result, []int{1, 2})
}

func TestTakeZeroNeverPulls(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	var pulls int64
	result, err := ToSlice(ctx, Take(countingSource([]int{1, 2, 3}, &pulls), 0))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(result), 0)
	testutil.AssertEqual(t, atomic.LoadInt64(&pulls), int64(0))
}

func TestTakeNeverOverPulls(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	var pulls int64
	result, err := ToSlice(ctx, Take(countingSource([]int{1, 2, 3, 4, 5}, &pulls), 2))
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, result, []int{1, 2})
	testutil.AssertEqual(t, atomic.LoadInt64(&pulls), int64(2))
}

func TestSkip(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	result, err := ToSlice(ctx, Skip(Range(1, 5), 2))
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, result, []int{3, 4, 5})
}

func TestSkipMoreThanLength(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	result, err := ToSlice(ctx, Skip(Range(1, 3), 10))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(result), 0)
}

func TestTakeWhile(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	result, err := ToSlice(ctx, TakeWhile(FromSlice([]int{1, 2, 3, 2, 1}), func(n int) bool { return n < 3 }))
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, result, []int{1, 2})
}

func TestTakeWhileStopsPulling(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	var pulls int64
	seq := TakeWhile(countingSource([]int{1, 2, 9, 3, 4}, &pulls), func(n int) bool { return n < 5 })

	result, err := ToSlice(ctx, seq)
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, result, []int{1, 2})
	// the run-ending value is pulled and discarded; nothing after it
	testutil.AssertEqual(t, atomic.LoadInt64(&pulls), int64(3))
}

func TestTakeUntil(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	result, err := ToSlice(ctx, TakeUntil(Range(1, 10), func(n int) bool { return n == 4 }))
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, result, []int{1, 2, 3})
}

func TestSkipWhileYieldsBoundaryOnce(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	result, err := ToSlice(ctx, SkipWhile(FromSlice([]int{1, 2, 3, 4, 1}), func(n int) bool { return n < 3 }))
	testutil.AssertNoError(t, err)
	// 3 ends the skip run and is yielded exactly once
	testutil.AssertSliceEqual(t, result, []int{3, 4, 1})
}

func TestSkipWhileNothingSkipped(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	result, err := ToSlice(ctx, SkipWhile(Range(5, 8), func(n int) bool { return n < 3 }))
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, result, []int{5, 6, 7, 8})
}

func TestSkipWhileAllSkipped(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	result, err := ToSlice(ctx, SkipWhile(Range(1, 5), func(int) bool { return true }))
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, len(result), 0)
}

func TestSkipUntilYieldsBoundaryOnce(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	result, err := ToSlice(ctx, SkipUntil(FromSlice([]int{1, 2, 3, 4, 1}), func(n int) bool { return n == 3 }))
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, result, []int{3, 4, 1})
}

func TestTap(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	var seen []int
	result, err := ToSlice(ctx, Tap(Range(1, 3), func(n int) { seen = append(seen, n) }))
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, result, []int{1, 2, 3})
	testutil.AssertSliceEqual(t, seen, []int{1, 2, 3})
}

func TestDelayPreservesOrder(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	const step = 5 * time.Millisecond
	start := time.Now()

	result, err := ToSlice(ctx, Delay(Range(1, 3), step))
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, result, []int{1, 2, 3})

	if elapsed := time.Since(start); elapsed < 3*step {
		t.Fatalf("elapsed %v, want at least %v", elapsed, 3*step)
	}
}

func TestDelayWithInjectedTimer(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	timer := testutil.NewMockTimer()
	seq := DelayWith(Range(1, 2), 30*time.Millisecond, timer.After)

	done := make(chan []int, 1)
	errCh := make(chan error, 1)
	go func() {
		result, err := ToSlice(ctx, seq)
		errCh <- err
		done <- result
	}()

	for fired := 0; fired < 2; {
		if timer.PendingCount() > 0 {
			timer.Fire()
			fired++
			continue
		}
		time.Sleep(time.Millisecond)
	}

	testutil.AssertNoError(t, <-errCh)
	testutil.AssertSliceEqual(t, <-done, []int{1, 2})

	waits := timer.Waits()
	testutil.AssertEqual(t, len(waits), 2)
	testutil.AssertEqual(t, waits[0], 30*time.Millisecond)
}

func TestMergePairwise(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	seq := Merge(func(a, b int) int { return a + b }, Range(1, 3), Range(1, 2))
	result, err := ToSlice(ctx, seq)
	testutil.AssertNoError(t, err)
	// stops once the shorter branch exhausts
	testutil.AssertSliceEqual(t, result, []int{2, 4})
}

func TestMergeFirstBranchShorter(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	seq := Merge(func(a, b int) int { return a * b }, Range(1, 2), Range(1, 5))
	result, err := ToSlice(ctx, seq)
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, result, []int{1, 4})
}

func TestMergeInfiniteBranches(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	seq := Take(Merge(func(a, b int) int { return a + b }, RangeFrom(1), RangeFrom(10)), 5)
	result, err := ToSlice(ctx, seq)
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, result, []int{11, 13, 15, 17, 19})
}

func TestMergeBranchError(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	boom := errors.New("branch failed")
	seq := Merge(func(a, b int) int { return a + b }, RangeFrom(1), failAfter([]int{1}, boom))

	result, err := ToSlice(ctx, seq)
	testutil.AssertEqual(t, errors.Is(err, boom), true)
	testutil.AssertEqual(t, len(result), 0)
}

func TestOperatorErrorPropagation(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	boom := errors.New("upstream failed")
	seq := Map(Filter(failAfter([]int{1, 2}, boom), func(int) bool { return true }), func(n int) int { return n })

	_, err := ToSlice(ctx, seq)
	testutil.AssertEqual(t, errors.Is(err, boom), true)
}

func TestPipelineEndToEnd(t *testing.T) {
	ctx, cancel := testutil.WithTimeout(t)
	defer cancel()

	seq := Map(
		Filter(Range(1, 5), func(n int) bool { return n%2 != 0 }),
		func(n int) int { return n * 2 },
	)

	result, err := ToSlice(ctx, seq)
	testutil.AssertNoError(t, err)
	testutil.AssertSliceEqual(t, result, []int{2, 6, 10})
}
