package async

import (
	"context"
	"errors"
)

// Future is a handle to a computation running in its own goroutine. The
// zero value is not usable; obtain one from Async.
type Future[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// Async runs fn(ctx, arg) in a new goroutine and returns a Future for its
// outcome. A context that is already canceled resolves the future to
// ctx.Err() without invoking fn at all; cancellation during fn is fn's own
// responsibility, as with any context-aware call.
func Async[A, T any](ctx context.Context, arg A, fn func(context.Context, A) (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		if err := ctx.Err(); err != nil {
			f.err = err
			return
		}
		f.value, f.err = fn(ctx, arg)
	}()
	return f
}

// Await blocks until the computation finishes and returns its outcome.
// It may be called any number of times, from any goroutine; every call
// returns the same values.
func (f *Future[T]) Await() (T, error) {
	<-f.done
	return f.value, f.err
}

// AwaitContext waits like Await but gives up when ctx is done and returns
// ctx.Err(). Only the wait is abandoned; the computation keeps running
// and a later Await still observes its outcome.
func (f *Future[T]) AwaitContext(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Done reports whether the computation has finished, without blocking.
func (f *Future[T]) Done() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// All awaits every future and returns their values in argument order.
// Failures do not short-circuit: every future is drained and all errors
// are joined, so a batch of independent tasks reports every problem in
// one pass instead of the first one hit.
func All[T any](futures ...*Future[T]) ([]T, error) {
	values := make([]T, len(futures))
	var errs []error
	for i, f := range futures {
		v, err := f.Await()
		values[i] = v
		if err != nil {
			errs = append(errs, err)
		}
	}
	return values, errors.Join(errs...)
}
