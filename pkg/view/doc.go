// Package view provides composable getter/modifier pairs over component
// state.
//
// A View[A] carries a snapshot of an A and a way to ask the state's owner to
// modify it. Components receive views instead of raw state, so they neither
// know nor care whether the state lives in their parent, a shared store or a
// remote backend.
//
//	func TitleEditor(ctx context.Context, title view.View[string]) *vdom.VNode {
//	    return vdom.Input(
//	        vdom.Value(title.Get()),
//	        vdom.OnInput(func(s string) { effect.Go(ctx, title.Set(s), nil) }),
//	    )
//	}
//
// # Snapshots
//
// Get returns the value captured when the view was built. It is not live.
// Mod and ModCB apply their function to whatever value the owner holds when
// the modification runs, which may differ from the snapshot.
//
// # Zooming
//
// Views narrow through optics. The result's cardinality follows the optic:
//
//	View         + Lens      -> View
//	View         + Optional  -> OptionalView
//	View         + Prism     -> OptionalView
//	View         + Traversal -> ListView
//	OptionalView + Lens/Optional/Prism -> OptionalView
//	OptionalView + Traversal -> ListView
//	ListView     + anything  -> ListView
//
// A modification through a ListView is applied to every matched element in a
// single update of the owner's state.
//
// # Continuations
//
// ModCB runs its continuation at most once, after the owner applied the
// modification, with the new projected value. Errors from the owner or from
// the continuation fail the returned effect. Nothing is retried.
package view
