package optics

import "github.com/samber/mo"

// Prism focuses on an A that may or may not be present in an S, such as one
// case of a sum type. An A alone is enough to rebuild an S.
type Prism[S, A any] struct {
	getOption  func(S) mo.Option[A]
	reverseGet func(A) S
}

// NewPrism creates a prism from a partial getter and a constructor.
func NewPrism[S, A any](getOption func(S) mo.Option[A], reverseGet func(A) S) Prism[S, A] {
	return Prism[S, A]{getOption: getOption, reverseGet: reverseGet}
}

// GetOption returns the focused value if the prism matches.
func (p Prism[S, A]) GetOption(s S) mo.Option[A] {
	return p.getOption(s)
}

// ReverseGet builds an S from an A.
func (p Prism[S, A]) ReverseGet(a A) S {
	return p.reverseGet(a)
}

// Modify applies fn when the prism matches and returns s unchanged otherwise.
func (p Prism[S, A]) Modify(s S, fn func(A) A) S {
	if a, ok := p.getOption(s).Get(); ok {
		return p.reverseGet(fn(a))
	}
	return s
}

// Modifier lifts fn into an update of the whole structure.
func (p Prism[S, A]) Modifier(fn func(A) A) func(S) S {
	return func(s S) S { return p.Modify(s, fn) }
}

// AsOptional views the prism as an optional.
func (p Prism[S, A]) AsOptional() Optional[S, A] {
	return Optional[S, A]{
		getOption: p.getOption,
		set: func(s S, a A) S {
			if p.getOption(s).IsPresent() {
				return p.reverseGet(a)
			}
			return s
		},
	}
}

// Some focuses on the value behind a non-nil pointer.
func Some[T any]() Prism[*T, T] {
	return Prism[*T, T]{
		getOption: func(p *T) mo.Option[T] {
			if p == nil {
				return mo.None[T]()
			}
			return mo.Some(*p)
		},
		reverseGet: func(v T) *T { return &v },
	}
}

// Present focuses on the value inside a present mo.Option.
func Present[T any]() Prism[mo.Option[T], T] {
	return Prism[mo.Option[T], T]{
		getOption:  func(o mo.Option[T]) mo.Option[T] { return o },
		reverseGet: mo.Some[T],
	}
}

// Case focuses on an interface value whose dynamic type is C.
func Case[S any, C any]() Prism[S, C] {
	return Prism[S, C]{
		getOption: func(s S) mo.Option[C] {
			c, ok := any(s).(C)
			return mo.TupleToOption(c, ok)
		},
		reverseGet: func(c C) S {
			s, _ := any(c).(S)
			return s
		},
	}
}
