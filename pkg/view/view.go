package view

import (
	"context"
	"fmt"

	"github.com/vango-dev/viewkit/pkg/effect"
)

// ModifyFunc asks the state's owner to apply f and then runs cb with the new
// value. It returns the effect performing both.
type ModifyFunc[A any] func(f func(A) A, cb func(A) effect.Unit) effect.Unit

// View is a total projection: its snapshot always holds exactly one A.
// Views are values; zooming or adding hooks returns a new View.
type View[A any] struct {
	value  A
	modify ModifyFunc[A]
}

// New creates a View from a snapshot and a modify function.
// It panics if modify is nil.
func New[A any](value A, modify ModifyFunc[A]) View[A] {
	if modify == nil {
		panic("view: nil modify function")
	}
	return View[A]{value: value, modify: modify}
}

// Fixed creates a View that belongs to no owner. Modifications are applied to
// the captured value, handed to the continuation and then discarded.
func Fixed[A any](value A) View[A] {
	return View[A]{
		value: value,
		modify: func(f func(A) A, cb func(A) effect.Unit) effect.Unit {
			return effect.Bind(effect.Pure(value), func(a A) effect.Unit {
				return cb(f(a))
			})
		},
	}
}

// Get returns the snapshot taken when the view was built.
func (v View[A]) Get() A {
	return v.value
}

// Set replaces the value.
func (v View[A]) Set(a A) effect.Unit {
	return v.ModCB(constant(a), nil)
}

// Mod applies f to the owner's current value.
func (v View[A]) Mod(f func(A) A) effect.Unit {
	return v.ModCB(f, nil)
}

// ModCB applies f to the owner's current value, then runs cb with the new
// value. A nil cb does nothing. A failing cb fails the returned effect; the
// modification has already been applied by then.
func (v View[A]) ModCB(f func(A) A, cb func(A) effect.Unit) effect.Unit {
	if cb == nil {
		cb = noop[A]
	}
	return v.modify(f, cb)
}

// ModAndGet applies f and yields the value ModCB would hand its continuation.
// The result resolves once; when the modification fails it fails with the
// same error.
func (v View[A]) ModAndGet(f func(A) A) effect.Effect[A] {
	return bridge(func(ctx context.Context, resolve func(A)) error {
		_, err := v.ModCB(f, resolveWith(resolve)).Run(ctx)
		return err
	})
}

// WithOnMod returns a View that runs se after every modification, before the
// caller's continuation.
func (v View[A]) WithOnMod(se func(A) effect.Unit) View[A] {
	parent := v.modify
	return View[A]{
		value: v.value,
		modify: func(f func(A) A, cb func(A) effect.Unit) effect.Unit {
			return parent(f, func(a A) effect.Unit {
				return effect.Then(se(a), cb(a))
			})
		},
	}
}

// String implements fmt.Stringer.
func (v View[A]) String() string {
	return fmt.Sprintf("View(%v)", v.value)
}

// ModAndExtract applies f and yields the B it computed alongside the new A.
func ModAndExtract[A, B any](v View[A], f func(A) (A, B)) effect.Effect[B] {
	return func(ctx context.Context) (B, error) {
		var b B
		_, err := v.ModAndGet(func(a A) A {
			next, extracted := f(a)
			b = extracted
			return next
		}).Run(ctx)
		if err != nil {
			var zero B
			return zero, err
		}
		return b, nil
	}
}

func constant[A any](a A) func(A) A {
	return func(A) A { return a }
}

func noop[A any](A) effect.Unit {
	return effect.Noop()
}

// resolveWith is the continuation used by the ModAndGet bridges.
func resolveWith[A any](resolve func(A)) func(A) effect.Unit {
	return func(a A) effect.Unit {
		return effect.Lift(func() { resolve(a) })
	}
}

// bridge runs start inside an async bridge. start reports success through
// resolve; its error, if any, rejects the bridge. A start that returns
// without error and without resolving rejects with ErrNoValue, since the
// continuation can no longer run.
func bridge[A any](start func(ctx context.Context, resolve func(A)) error) effect.Effect[A] {
	return effect.Async(func(ctx context.Context, resolve func(A), reject func(error)) {
		if err := start(ctx, resolve); err != nil {
			reject(err)
			return
		}
		reject(ErrNoValue)
	})
}
