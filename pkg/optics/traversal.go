package optics

import "github.com/samber/lo"

// Traversal focuses on zero or more A inside an S. Modify applies the
// function to every target in a single pass.
type Traversal[S, A any] struct {
	getAll func(S) []A
	modify func(S, func(A) A) S
}

// NewTraversal creates a traversal from a collector and a modifier.
func NewTraversal[S, A any](getAll func(S) []A, modify func(S, func(A) A) S) Traversal[S, A] {
	return Traversal[S, A]{getAll: getAll, modify: modify}
}

// GetAll returns every focused value in order.
func (t Traversal[S, A]) GetAll(s S) []A {
	return t.getAll(s)
}

// Modify applies fn to every focused value.
func (t Traversal[S, A]) Modify(s S, fn func(A) A) S {
	return t.modify(s, fn)
}

// Set replaces every focused value with a.
func (t Traversal[S, A]) Set(s S, a A) S {
	return t.modify(s, func(A) A { return a })
}

// Modifier lifts fn into an update of the whole structure.
func (t Traversal[S, A]) Modifier(fn func(A) A) func(S) S {
	return func(s S) S { return t.modify(s, fn) }
}

// Each focuses on every element of a slice.
func Each[T any]() Traversal[[]T, T] {
	return Traversal[[]T, T]{
		getAll: func(s []T) []T {
			if s == nil {
				return nil
			}
			out := make([]T, len(s))
			copy(out, s)
			return out
		},
		modify: func(s []T, fn func(T) T) []T {
			if s == nil {
				return nil
			}
			return lo.Map(s, func(v T, _ int) T { return fn(v) })
		},
	}
}

// Filtered focuses on the slice elements matching pred at the time of access.
// It is only lawful when fn preserves pred.
func Filtered[T any](pred func(T) bool) Traversal[[]T, T] {
	return Traversal[[]T, T]{
		getAll: func(s []T) []T {
			return lo.Filter(s, func(v T, _ int) bool { return pred(v) })
		},
		modify: func(s []T, fn func(T) T) []T {
			if s == nil {
				return nil
			}
			return lo.Map(s, func(v T, _ int) T {
				if pred(v) {
					return fn(v)
				}
				return v
			})
		},
	}
}
