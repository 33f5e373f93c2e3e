package optics

import (
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// ComposeOptional focuses on an optional inside an optional.
func ComposeOptional[S, A, B any](outer Optional[S, A], inner Optional[A, B]) Optional[S, B] {
	return Optional[S, B]{
		getOption: func(s S) mo.Option[B] {
			if a, ok := outer.getOption(s).Get(); ok {
				return inner.getOption(a)
			}
			return mo.None[B]()
		},
		set: func(s S, b B) S {
			return outer.Modify(s, func(a A) A { return inner.Set(a, b) })
		},
	}
}

// ComposeLensOptional focuses on an optional inside a lens.
func ComposeLensOptional[S, A, B any](outer Lens[S, A], inner Optional[A, B]) Optional[S, B] {
	return ComposeOptional(outer.AsOptional(), inner)
}

// ComposeOptionalLens focuses on a lens inside an optional.
func ComposeOptionalLens[S, A, B any](outer Optional[S, A], inner Lens[A, B]) Optional[S, B] {
	return ComposeOptional(outer, inner.AsOptional())
}

// ComposeLensPrism focuses on a prism inside a lens.
func ComposeLensPrism[S, A, B any](outer Lens[S, A], inner Prism[A, B]) Optional[S, B] {
	return ComposeOptional(outer.AsOptional(), inner.AsOptional())
}

// ComposeTraversal focuses on every inner target of every outer target.
func ComposeTraversal[S, A, B any](outer Traversal[S, A], inner Traversal[A, B]) Traversal[S, B] {
	return Traversal[S, B]{
		getAll: func(s S) []B {
			return lo.FlatMap(outer.getAll(s), func(a A, _ int) []B { return inner.getAll(a) })
		},
		modify: func(s S, fn func(B) B) S {
			return outer.modify(s, func(a A) A { return inner.modify(a, fn) })
		},
	}
}

// ComposeLensTraversal focuses on a traversal inside a lens.
func ComposeLensTraversal[S, A, B any](outer Lens[S, A], inner Traversal[A, B]) Traversal[S, B] {
	return ComposeTraversal(outer.AsTraversal(), inner)
}

// ComposeTraversalLens focuses on a lens inside every traversal target.
func ComposeTraversalLens[S, A, B any](outer Traversal[S, A], inner Lens[A, B]) Traversal[S, B] {
	return ComposeTraversal(outer, inner.AsTraversal())
}
