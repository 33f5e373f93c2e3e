package view

import (
	"context"
	"fmt"

	"github.com/vango-dev/viewkit/pkg/effect"
)

// ListModifyFunc is the modify function of a ListView. f is applied to every
// focused element; cb receives all of them after the modification.
type ListModifyFunc[A any] func(f func(A) A, cb func([]A) effect.Unit) effect.Unit

// ListModAndGetFunc applies f to every focused element and yields them.
type ListModAndGetFunc[A any] func(f func(A) A) effect.Effect[[]A]

// ListView is a multi-valued projection: its snapshot holds zero or more A,
// in order. A modification is broadcast to every focused element in one
// update of the owner's state.
type ListView[A any] struct {
	value     []A
	modify    ListModifyFunc[A]
	modAndGet ListModAndGetFunc[A]
}

// NewList creates a ListView. When modAndGet is nil, ModAndGet is bridged
// from modify's continuation. It panics if modify is nil.
func NewList[A any](value []A, modify ListModifyFunc[A], modAndGet ListModAndGetFunc[A]) ListView[A] {
	if modify == nil {
		panic("view: nil modify function")
	}
	lv := ListView[A]{value: value, modify: modify}
	if modAndGet == nil {
		modAndGet = func(f func(A) A) effect.Effect[[]A] {
			return bridge(func(ctx context.Context, resolve func([]A)) error {
				_, err := lv.ModCB(f, resolveWith(resolve)).Run(ctx)
				return err
			})
		}
	}
	lv.modAndGet = modAndGet
	return lv
}

// Get returns the snapshot taken when the view was built.
func (v ListView[A]) Get() []A {
	return v.value
}

// Len returns the number of elements in the snapshot.
func (v ListView[A]) Len() int {
	return len(v.value)
}

// Set replaces every focused element with a.
func (v ListView[A]) Set(a A) effect.Unit {
	return v.ModCB(constant(a), nil)
}

// Mod applies f to every focused element.
func (v ListView[A]) Mod(f func(A) A) effect.Unit {
	return v.ModCB(f, nil)
}

// ModCB applies f to every focused element, then runs cb with all of them.
func (v ListView[A]) ModCB(f func(A) A, cb func([]A) effect.Unit) effect.Unit {
	if cb == nil {
		cb = noop[[]A]
	}
	return v.modify(f, cb)
}

// ModAndGet applies f to every focused element and yields them.
func (v ListView[A]) ModAndGet(f func(A) A) effect.Effect[[]A] {
	return v.modAndGet(f)
}

// WithOnMod returns a ListView that runs se after every modification, before
// the caller's continuation. ModAndGet goes through the hook as well.
func (v ListView[A]) WithOnMod(se func([]A) effect.Unit) ListView[A] {
	parent := v.modify
	parentGet := v.modAndGet
	return ListView[A]{
		value: v.value,
		modify: func(f func(A) A, cb func([]A) effect.Unit) effect.Unit {
			return parent(f, func(as []A) effect.Unit {
				return effect.Then(se(as), cb(as))
			})
		},
		modAndGet: func(f func(A) A) effect.Effect[[]A] {
			return effect.Bind(parentGet(f), func(as []A) effect.Effect[[]A] {
				return effect.Then(se(as), effect.Pure(as))
			})
		},
	}
}

// String implements fmt.Stringer.
func (v ListView[A]) String() string {
	return fmt.Sprintf("ListView(%v)", v.value)
}

// ModAndExtractList applies f to every focused element and yields the Bs it
// computed, in the order f ran.
func ModAndExtractList[A, B any](v ListView[A], f func(A) (A, B)) effect.Effect[[]B] {
	return func(ctx context.Context) ([]B, error) {
		var bs []B
		_, err := v.ModAndGet(func(a A) A {
			next, extracted := f(a)
			bs = append(bs, extracted)
			return next
		}).Run(ctx)
		if err != nil {
			return nil, err
		}
		return bs, nil
	}
}
