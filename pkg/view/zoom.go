package view

import (
	"github.com/samber/lo"
	"github.com/samber/mo"

	"github.com/vango-dev/viewkit/pkg/effect"
	"github.com/vango-dev/viewkit/pkg/optics"
)

// Zoom derives a View[B] from a View[A] with a forward projection and a
// backward updater. mod must lift a B update into an A update that leaves
// everything outside the B untouched.
func Zoom[A, B any](v View[A], get func(A) B, mod func(func(B) B) func(A) A) View[B] {
	parent := v.modify
	return View[B]{
		value: get(v.value),
		modify: func(f func(B) B, cb func(B) effect.Unit) effect.Unit {
			return parent(mod(f), func(a A) effect.Unit { return cb(get(a)) })
		},
	}
}

// ZoomLens derives a View through a lens.
func ZoomLens[A, B any](v View[A], l optics.Lens[A, B]) View[B] {
	return Zoom(v, l.Get, l.Modifier)
}

// ZoomOptional derives an OptionalView through an optional.
func ZoomOptional[A, B any](v View[A], o optics.Optional[A, B]) OptionalView[B] {
	return zoomOpt(v, o.GetOption, o.Modifier)
}

// ZoomPrism derives an OptionalView through a prism.
func ZoomPrism[A, B any](v View[A], p optics.Prism[A, B]) OptionalView[B] {
	return zoomOpt(v, p.GetOption, p.Modifier)
}

// ZoomTraversal derives a ListView through a traversal.
func ZoomTraversal[A, B any](v View[A], t optics.Traversal[A, B]) ListView[B] {
	parent := v.modify
	return ListView[B]{
		value: t.GetAll(v.value),
		modify: func(f func(B) B, cb func([]B) effect.Unit) effect.Unit {
			return parent(t.Modifier(f), func(a A) effect.Unit { return cb(t.GetAll(a)) })
		},
		modAndGet: func(f func(B) B) effect.Effect[[]B] {
			return effect.Map(v.ModAndGet(t.Modifier(f)), t.GetAll)
		},
	}
}

func zoomOpt[A, B any](v View[A], getOption func(A) mo.Option[B], mod func(func(B) B) func(A) A) OptionalView[B] {
	parent := v.modify
	return OptionalView[B]{
		value: getOption(v.value),
		modify: func(f func(B) B, cb func(mo.Option[B]) effect.Unit) effect.Unit {
			return parent(mod(f), func(a A) effect.Unit { return cb(getOption(a)) })
		},
		modAndGet: func(f func(B) B) effect.Effect[mo.Option[B]] {
			return effect.Map(v.ModAndGet(mod(f)), getOption)
		},
	}
}

// OptZoom derives an OptionalView[B] from an OptionalView[A] with a total
// forward projection and a backward updater.
func OptZoom[A, B any](v OptionalView[A], get func(A) B, mod func(func(B) B) func(A) A) OptionalView[B] {
	return optZoomOpt(v, func(a A) mo.Option[B] { return mo.Some(get(a)) }, mod)
}

// OptZoomLens narrows an OptionalView through a lens.
func OptZoomLens[A, B any](v OptionalView[A], l optics.Lens[A, B]) OptionalView[B] {
	return OptZoom(v, l.Get, l.Modifier)
}

// OptZoomOptional narrows an OptionalView through an optional.
func OptZoomOptional[A, B any](v OptionalView[A], o optics.Optional[A, B]) OptionalView[B] {
	return optZoomOpt(v, o.GetOption, o.Modifier)
}

// OptZoomPrism narrows an OptionalView through a prism.
func OptZoomPrism[A, B any](v OptionalView[A], p optics.Prism[A, B]) OptionalView[B] {
	return optZoomOpt(v, p.GetOption, p.Modifier)
}

// OptZoomTraversal widens an OptionalView's focus into a ListView through a
// traversal. An absent focus yields an empty list.
func OptZoomTraversal[A, B any](v OptionalView[A], t optics.Traversal[A, B]) ListView[B] {
	parent := v.modify
	getAll := func(o mo.Option[A]) []B {
		if a, ok := o.Get(); ok {
			return t.GetAll(a)
		}
		return nil
	}
	return ListView[B]{
		value: getAll(v.value),
		modify: func(f func(B) B, cb func([]B) effect.Unit) effect.Unit {
			return parent(t.Modifier(f), func(a mo.Option[A]) effect.Unit { return cb(getAll(a)) })
		},
		modAndGet: func(f func(B) B) effect.Effect[[]B] {
			return effect.Map(v.ModAndGet(t.Modifier(f)), getAll)
		},
	}
}

func optZoomOpt[A, B any](v OptionalView[A], getOption func(A) mo.Option[B], mod func(func(B) B) func(A) A) OptionalView[B] {
	parent := v.modify
	project := func(o mo.Option[A]) mo.Option[B] { return flatMapOption(o, getOption) }
	return OptionalView[B]{
		value: project(v.value),
		modify: func(f func(B) B, cb func(mo.Option[B]) effect.Unit) effect.Unit {
			return parent(mod(f), func(a mo.Option[A]) effect.Unit { return cb(project(a)) })
		},
		modAndGet: func(f func(B) B) effect.Effect[mo.Option[B]] {
			return effect.Map(v.ModAndGet(mod(f)), project)
		},
	}
}

// ListZoom maps a ListView through a total forward projection and a backward
// updater.
func ListZoom[A, B any](v ListView[A], get func(A) B, mod func(func(B) B) func(A) A) ListView[B] {
	return listZoom(v, func(a A) []B { return []B{get(a)} }, mod)
}

// ListZoomLens maps a ListView through a lens.
func ListZoomLens[A, B any](v ListView[A], l optics.Lens[A, B]) ListView[B] {
	return ListZoom(v, l.Get, l.Modifier)
}

// ListZoomOptional keeps, for each element, the focus of an optional.
func ListZoomOptional[A, B any](v ListView[A], o optics.Optional[A, B]) ListView[B] {
	return listZoom(v, func(a A) []B { return optionToSlice(o.GetOption(a)) }, o.Modifier)
}

// ListZoomPrism keeps the elements matched by a prism.
func ListZoomPrism[A, B any](v ListView[A], p optics.Prism[A, B]) ListView[B] {
	return listZoom(v, func(a A) []B { return optionToSlice(p.GetOption(a)) }, p.Modifier)
}

// ListZoomTraversal flattens the targets of a traversal across every element.
func ListZoomTraversal[A, B any](v ListView[A], t optics.Traversal[A, B]) ListView[B] {
	return listZoom(v, t.GetAll, t.Modifier)
}

func listZoom[A, B any](v ListView[A], getAll func(A) []B, mod func(func(B) B) func(A) A) ListView[B] {
	parent := v.modify
	project := func(as []A) []B {
		return lo.FlatMap(as, func(a A, _ int) []B { return getAll(a) })
	}
	return ListView[B]{
		value: project(v.value),
		modify: func(f func(B) B, cb func([]B) effect.Unit) effect.Unit {
			return parent(mod(f), func(as []A) effect.Unit { return cb(project(as)) })
		},
		modAndGet: func(f func(B) B) effect.Effect[[]B] {
			return effect.Map(v.ModAndGet(mod(f)), project)
		},
	}
}
