package effect

import (
	"context"
	"fmt"
)

// Effect is a deferred computation producing an A or an error.
// A nil Effect behaves like Pure of the zero value.
type Effect[A any] func(ctx context.Context) (A, error)

// Unit is the result type of effects run only for their side effects.
type Unit = Effect[struct{}]

// Run executes the effect. Panics inside the effect body are recovered and
// returned as errors wrapping ErrPanic.
func (e Effect[A]) Run(ctx context.Context) (a A, err error) {
	if e == nil {
		return a, nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()
	return e(ctx)
}

// Pure returns an effect that yields a without doing anything.
func Pure[A any](a A) Effect[A] {
	return func(context.Context) (A, error) { return a, nil }
}

// Fail returns an effect that fails with err.
func Fail[A any](err error) Effect[A] {
	return func(context.Context) (A, error) {
		var zero A
		return zero, err
	}
}

// Noop is the unit action.
func Noop() Unit {
	return Pure(struct{}{})
}

// Lift wraps a side-effecting function as a unit effect.
func Lift(fn func()) Unit {
	return func(context.Context) (struct{}, error) {
		fn()
		return struct{}{}, nil
	}
}

// FromFunc wraps a fallible function that ignores the context.
func FromFunc[A any](fn func() (A, error)) Effect[A] {
	return func(context.Context) (A, error) { return fn() }
}

// Void discards the result of e.
func Void[A any](e Effect[A]) Unit {
	return Map(e, func(A) struct{} { return struct{}{} })
}

// Go runs e on a new goroutine and reports the outcome to done, if non-nil.
// Use it to start effects from code that must not block, such as a host's
// update loop.
func Go[A any](ctx context.Context, e Effect[A], done func(A, error)) {
	ctx = context.WithValue(ctx, executorKey{}, nil)
	go func() {
		a, err := e.Run(ctx)
		if done != nil {
			done(a, err)
		}
	}()
}
