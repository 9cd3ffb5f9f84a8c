// Package deferred provides a lazily started, single-shot asynchronous result.
//
// A Deferred runs its producer at most once, on first subscription, and every
// subscriber observes the same value or error.
package deferred

import (
	"context"
	"sync"
	"sync/atomic"
)

// Deferred is the eventual result of one asynchronous operation
type Deferred[T any] struct {
	fn      func(ctx context.Context) (T, error)
	once    sync.Once
	started atomic.Bool
	done    chan struct{}

	value T
	err   error
}

// New creates a Deferred that runs fn on first subscription
func New[T any](fn func(ctx context.Context) (T, error)) *Deferred[T] {
	return &Deferred[T]{
		fn:   fn,
		done: make(chan struct{}),
	}
}

// Resolved returns a Deferred that already holds v
func Resolved[T any](v T) *Deferred[T] {
	return New(func(context.Context) (T, error) { return v, nil })
}

// Rejected returns a Deferred that already holds err
func Rejected[T any](err error) *Deferred[T] {
	return New(func(context.Context) (T, error) {
		var zero T
		return zero, err
	})
}

// Await starts the producer if needed and waits for its outcome.
// The context of the first caller is the one the producer runs with; later
// callers only use theirs to stop waiting.
func (d *Deferred[T]) Await(ctx context.Context) (T, error) {
	d.once.Do(func() {
		d.started.Store(true)
		go func() {
			defer close(d.done)
			d.value, d.err = d.fn(ctx)
		}()
	})

	select {
	case <-d.done:
		return d.value, d.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Subscribe awaits the result in the background and calls exactly one of
// onValue or onError. Either callback may be nil. The returned channel is
// closed once the callback has returned.
func (d *Deferred[T]) Subscribe(ctx context.Context, onValue func(T), onError func(error)) <-chan struct{} {
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		v, err := d.Await(ctx)
		if err != nil {
			if onError != nil {
				onError(err)
			}
			return
		}
		if onValue != nil {
			onValue(v)
		}
	}()
	return finished
}
