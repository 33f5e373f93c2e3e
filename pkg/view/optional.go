package view

import (
	"context"
	"fmt"

	"github.com/samber/mo"

	"github.com/vango-dev/viewkit/pkg/effect"
)

// OptModifyFunc is the modify function of an OptionalView. cb receives the
// focus after the modification, which may be absent.
type OptModifyFunc[A any] func(f func(A) A, cb func(mo.Option[A]) effect.Unit) effect.Unit

// OptModAndGetFunc applies f and yields the resulting focus.
type OptModAndGetFunc[A any] func(f func(A) A) effect.Effect[mo.Option[A]]

// OptionalView is a partial projection: its snapshot holds zero or one A.
//
// Every OptionalView carries its own ModAndGet closure, supplied where it was
// built. Zoom functions compose it from the parent's ModAndGet.
type OptionalView[A any] struct {
	value     mo.Option[A]
	modify    OptModifyFunc[A]
	modAndGet OptModAndGetFunc[A]
}

// NewOptional creates an OptionalView. When modAndGet is nil, ModAndGet is
// bridged from modify's continuation. It panics if modify is nil.
func NewOptional[A any](value mo.Option[A], modify OptModifyFunc[A], modAndGet OptModAndGetFunc[A]) OptionalView[A] {
	if modify == nil {
		panic("view: nil modify function")
	}
	ov := OptionalView[A]{value: value, modify: modify}
	if modAndGet == nil {
		modAndGet = func(f func(A) A) effect.Effect[mo.Option[A]] {
			return bridge(func(ctx context.Context, resolve func(mo.Option[A])) error {
				_, err := ov.ModCB(f, resolveWith(resolve)).Run(ctx)
				return err
			})
		}
	}
	ov.modAndGet = modAndGet
	return ov
}

// Get returns the snapshot taken when the view was built.
func (v OptionalView[A]) Get() mo.Option[A] {
	return v.value
}

// Set replaces the value if the focus is present when the modification runs.
func (v OptionalView[A]) Set(a A) effect.Unit {
	return v.ModCB(constant(a), nil)
}

// Mod applies f to the focus if present.
func (v OptionalView[A]) Mod(f func(A) A) effect.Unit {
	return v.ModCB(f, nil)
}

// ModCB applies f to the focus if present, then runs cb with the new focus.
func (v OptionalView[A]) ModCB(f func(A) A, cb func(mo.Option[A]) effect.Unit) effect.Unit {
	if cb == nil {
		cb = noop[mo.Option[A]]
	}
	return v.modify(f, cb)
}

// ModAndGet applies f and yields the resulting focus.
func (v OptionalView[A]) ModAndGet(f func(A) A) effect.Effect[mo.Option[A]] {
	return v.modAndGet(f)
}

// WithOnMod returns an OptionalView that runs se after every modification,
// before the caller's continuation. ModAndGet goes through the hook as well.
func (v OptionalView[A]) WithOnMod(se func(mo.Option[A]) effect.Unit) OptionalView[A] {
	parent := v.modify
	parentGet := v.modAndGet
	return OptionalView[A]{
		value: v.value,
		modify: func(f func(A) A, cb func(mo.Option[A]) effect.Unit) effect.Unit {
			return parent(f, func(a mo.Option[A]) effect.Unit {
				return effect.Then(se(a), cb(a))
			})
		},
		modAndGet: func(f func(A) A) effect.Effect[mo.Option[A]] {
			return effect.Bind(parentGet(f), func(a mo.Option[A]) effect.Effect[mo.Option[A]] {
				return effect.Then(se(a), effect.Pure(a))
			})
		},
	}
}

// String implements fmt.Stringer.
func (v OptionalView[A]) String() string {
	if a, ok := v.value.Get(); ok {
		return fmt.Sprintf("OptionalView(Some(%v))", a)
	}
	return "OptionalView(None)"
}

// ModAndExtractOpt applies f to the focus and yields the B it computed.
// The result is absent when the focus was absent and f never ran.
func ModAndExtractOpt[A, B any](v OptionalView[A], f func(A) (A, B)) effect.Effect[mo.Option[B]] {
	return func(ctx context.Context) (mo.Option[B], error) {
		var (
			b      B
			called bool
		)
		_, err := v.ModAndGet(func(a A) A {
			next, extracted := f(a)
			b, called = extracted, true
			return next
		}).Run(ctx)
		if err != nil {
			return mo.None[B](), err
		}
		return mo.TupleToOption(b, called), nil
	}
}

func flatMapOption[A, B any](o mo.Option[A], f func(A) mo.Option[B]) mo.Option[B] {
	if a, ok := o.Get(); ok {
		return f(a)
	}
	return mo.None[B]()
}

func optionToSlice[A any](o mo.Option[A]) []A {
	if a, ok := o.Get(); ok {
		return []A{a}
	}
	return nil
}
