package optics

import "github.com/samber/mo"

// Optional focuses on zero or one A inside an S. Unlike a prism it needs the
// surrounding S to write the A back.
type Optional[S, A any] struct {
	getOption func(S) mo.Option[A]
	set       func(S, A) S
}

// NewOptional creates an optional from a partial getter and a setter.
// set is only called when getOption matched.
func NewOptional[S, A any](getOption func(S) mo.Option[A], set func(S, A) S) Optional[S, A] {
	return Optional[S, A]{getOption: getOption, set: set}
}

// GetOption returns the focused value if present.
func (o Optional[S, A]) GetOption(s S) mo.Option[A] {
	return o.getOption(s)
}

// Set replaces the focused value if present and returns s unchanged otherwise.
func (o Optional[S, A]) Set(s S, a A) S {
	if o.getOption(s).IsAbsent() {
		return s
	}
	return o.set(s, a)
}

// Modify applies fn to the focused value if present.
func (o Optional[S, A]) Modify(s S, fn func(A) A) S {
	if a, ok := o.getOption(s).Get(); ok {
		return o.set(s, fn(a))
	}
	return s
}

// Modifier lifts fn into an update of the whole structure.
func (o Optional[S, A]) Modifier(fn func(A) A) func(S) S {
	return func(s S) S { return o.Modify(s, fn) }
}

// AsTraversal views the optional as a traversal with at most one target.
func (o Optional[S, A]) AsTraversal() Traversal[S, A] {
	return Traversal[S, A]{
		getAll: func(s S) []A {
			if a, ok := o.getOption(s).Get(); ok {
				return []A{a}
			}
			return nil
		},
		modify: o.Modify,
	}
}

// Index focuses on the slice element at i, if it exists.
func Index[T any](i int) Optional[[]T, T] {
	return Optional[[]T, T]{
		getOption: func(s []T) mo.Option[T] {
			if i < 0 || i >= len(s) {
				return mo.None[T]()
			}
			return mo.Some(s[i])
		},
		set: func(s []T, v T) []T {
			result := make([]T, len(s))
			copy(result, s)
			result[i] = v
			return result
		},
	}
}

// Find focuses on the first slice element matching pred.
func Find[T any](pred func(T) bool) Optional[[]T, T] {
	index := func(s []T) int {
		for i, v := range s {
			if pred(v) {
				return i
			}
		}
		return -1
	}
	return Optional[[]T, T]{
		getOption: func(s []T) mo.Option[T] {
			if i := index(s); i >= 0 {
				return mo.Some(s[i])
			}
			return mo.None[T]()
		},
		set: func(s []T, v T) []T {
			i := index(s)
			result := make([]T, len(s))
			copy(result, s)
			result[i] = v
			return result
		},
	}
}

// Key focuses on the map value at k, if the key exists.
func Key[K comparable, V any](k K) Optional[map[K]V, V] {
	return Optional[map[K]V, V]{
		getOption: func(m map[K]V) mo.Option[V] {
			v, ok := m[k]
			return mo.TupleToOption(v, ok)
		},
		set: func(m map[K]V, v V) map[K]V {
			result := make(map[K]V, len(m))
			for key, val := range m {
				result[key] = val
			}
			result[k] = v
			return result
		},
	}
}
