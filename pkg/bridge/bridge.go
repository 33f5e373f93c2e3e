// Package bridge connects views to the host that owns their state.
//
// FromHost manufactures the root View of a component: Get reads the host's
// state once, and every modification is handed to the host's update queue.
// The modification's continuation runs on the given executor after the host
// applied the change. A continuation running on the host's own loop may
// modify the same host again: a host implementing ContextHost applies that
// nested change inline.
//
//	c := host.New("todo", State{})
//	root := bridge.FromHost(c, c)
//	title := view.ZoomLens(root, titleLens)
//	effect.Go(ctx, title.Set("groceries"), nil)
package bridge

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/vango-dev/viewkit/pkg/effect"
	"github.com/vango-dev/viewkit/pkg/vdom"
	"github.com/vango-dev/viewkit/pkg/view"
)

// SpanModify is the name of the span opened around every root modification.
const SpanModify = "viewkit.modify"

// Host owns authoritative state of type S.
type Host[S any] interface {
	// State returns the current state.
	State() S

	// Update enqueues f. done is called once, with the new state after f was
	// applied, or with an error if it was rejected.
	Update(f func(S) S, done func(S, error))
}

// ContextHost is a Host that can tell from ctx that the caller already runs
// on its update goroutine, and then applies f without queueing it.
// *host.Component implements it.
type ContextHost[S any] interface {
	Host[S]
	UpdateContext(ctx context.Context, f func(S) S, done func(S, error))
}

// FromHost returns a View over h's current state.
//
// Host failures propagate unchanged and the continuation does not run.
// A nil exec runs continuations on whichever goroutine observed the
// completion.
func FromHost[S any](h Host[S], exec effect.Executor) view.View[S] {
	return view.New(h.State(), func(f func(S) S, cb func(S) effect.Unit) effect.Unit {
		applied := effect.Traced(SpanModify, update(h, f), attribute.String("viewkit.kind", "root"))
		return effect.Bind(applied, func(s S) effect.Unit {
			return effect.Shift(exec, cb(s))
		})
	})
}

// Render returns a component that renders fn with a View built from h's state
// at render time, so each render observes a fresh snapshot.
func Render[S any](h Host[S], exec effect.Executor, fn func(view.View[S]) *vdom.VNode) vdom.Component {
	return vdom.Func(func() *vdom.VNode {
		return fn(FromHost(h, exec))
	})
}

func update[S any](h Host[S], f func(S) S) effect.Effect[S] {
	return effect.Async(func(ctx context.Context, resolve func(S), reject func(error)) {
		done := func(s S, err error) {
			if err != nil {
				reject(err)
				return
			}
			resolve(s)
		}
		if ch, ok := h.(ContextHost[S]); ok {
			ch.UpdateContext(ctx, f, done)
			return
		}
		h.Update(f, done)
	})
}
