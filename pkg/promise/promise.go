// Package promise provides a single-value future settled exactly once
// by a producer and awaitable by any number of consumers.
package promise

import (
	"context"
	"sync"
)

// Promise represents a single asynchronous result. It starts pending
// and is settled at most once, by Resolve or Reject; settlement is
// permanent and later Resolve/Reject calls are ignored.
type Promise[T any] struct {
	done chan struct{}
	once sync.Once

	value T
	err   error
}

// New creates a pending Promise.
func New[T any]() *Promise[T] {
	return &Promise[T]{done: make(chan struct{})}
}

// Resolved creates a Promise already settled with value.
func Resolved[T any](value T) *Promise[T] {
	p := New[T]()
	p.Resolve(value)
	return p
}

// Rejected creates a Promise already settled with err.
func Rejected[T any](err error) *Promise[T] {
	p := New[T]()
	p.Reject(err)
	return p
}

// Resolve settles the promise with value. It is a no-op if the promise
// is already settled.
func (p *Promise[T]) Resolve(value T) {
	p.once.Do(func() {
		p.value = value
		close(p.done)
	})
}

// Reject settles the promise with err. It is a no-op if the promise is
// already settled.
func (p *Promise[T]) Reject(err error) {
	p.once.Do(func() {
		p.err = err
		close(p.done)
	})
}

// Await blocks until the promise is settled or ctx is done. Every
// caller observes the same settlement.
func (p *Promise[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-p.done:
		return p.value, p.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Settled reports whether the promise has been resolved or rejected.
func (p *Promise[T]) Settled() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}
