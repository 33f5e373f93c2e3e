package optics

import "github.com/samber/mo"

// Lens focuses on exactly one A inside an S.
//
// A lawful lens satisfies:
//
//	Get(Set(s, a)) == a
//	Set(s, Get(s)) == s
type Lens[S, A any] struct {
	get func(S) A
	set func(S, A) S
}

// NewLens creates a lens from get and set functions.
func NewLens[S, A any](get func(S) A, set func(S, A) S) Lens[S, A] {
	return Lens[S, A]{get: get, set: set}
}

// Get retrieves the focused value.
func (l Lens[S, A]) Get(s S) A {
	return l.get(s)
}

// Set returns a new structure with the focused value replaced.
func (l Lens[S, A]) Set(s S, a A) S {
	return l.set(s, a)
}

// Modify applies fn to the focused value.
func (l Lens[S, A]) Modify(s S, fn func(A) A) S {
	return l.set(s, fn(l.get(s)))
}

// Modifier lifts fn into an update of the whole structure.
func (l Lens[S, A]) Modifier(fn func(A) A) func(S) S {
	return func(s S) S { return l.Modify(s, fn) }
}

// AsOptional views the lens as an optional that always matches.
func (l Lens[S, A]) AsOptional() Optional[S, A] {
	return Optional[S, A]{
		getOption: func(s S) mo.Option[A] { return mo.Some(l.get(s)) },
		set:       l.set,
	}
}

// AsTraversal views the lens as a traversal with exactly one target.
func (l Lens[S, A]) AsTraversal() Traversal[S, A] {
	return Traversal[S, A]{
		getAll: func(s S) []A { return []A{l.get(s)} },
		modify: l.Modify,
	}
}

// ComposeLens creates a lens focusing deeper.
func ComposeLens[S, A, B any](outer Lens[S, A], inner Lens[A, B]) Lens[S, B] {
	return Lens[S, B]{
		get: func(s S) B {
			return inner.get(outer.get(s))
		},
		set: func(s S, b B) S {
			return outer.set(s, inner.set(outer.get(s), b))
		},
	}
}

// Identity creates a lens focusing on the whole structure.
func Identity[S any]() Lens[S, S] {
	return Lens[S, S]{
		get: func(s S) S { return s },
		set: func(_ S, s S) S { return s },
	}
}

// SliceAt creates a lens for a slice element at a specific index.
// Reads outside the slice return defaultVal; writes outside it are ignored.
func SliceAt[T any](index int, defaultVal T) Lens[[]T, T] {
	return Lens[[]T, T]{
		get: func(s []T) T {
			if index >= 0 && index < len(s) {
				return s[index]
			}
			return defaultVal
		},
		set: func(s []T, v T) []T {
			if index < 0 || index >= len(s) {
				return s
			}
			result := make([]T, len(s))
			copy(result, s)
			result[index] = v
			return result
		},
	}
}

// MapAt creates a lens for a map value at a specific key.
// A missing key reads as defaultVal; a write always inserts the key.
func MapAt[K comparable, V any](key K, defaultVal V) Lens[map[K]V, V] {
	return Lens[map[K]V, V]{
		get: func(m map[K]V) V {
			if v, ok := m[key]; ok {
				return v
			}
			return defaultVal
		},
		set: func(m map[K]V, v V) map[K]V {
			result := make(map[K]V, len(m)+1)
			for k, val := range m {
				result[k] = val
			}
			result[key] = v
			return result
		},
	}
}
