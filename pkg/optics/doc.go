// Package optics provides lenses, prisms, optionals and traversals as plain
// values holding paired pure functions.
//
// Each optic focuses on a part of a structure S:
//
//	Lens[S, A]       exactly one A
//	Prism[S, A]      zero or one A, and an A can rebuild a whole S
//	Optional[S, A]   zero or one A
//	Traversal[S, A]  zero or more A
//
// Optics compose by ordinary function composition. Composition never widens
// cardinality: a lens composed with an optional is an optional, anything
// composed with a traversal is a traversal.
//
//	title := optics.NewLens(
//	    func(s State) string { return s.Title },
//	    func(s State, t string) State { s.Title = t; return s },
//	)
//	first := optics.ComposeLensOptional(items, optics.Index[Item](0))
//	done := optics.ComposeTraversalLens(optics.ComposeLensTraversal(items, optics.Each[Item]()), itemDone)
//
// Optics never mutate their input. Slice and map helpers copy before writing.
package optics
