// Package stream turns asynchronous sequences of values into UI fragments.
//
//	clock := stream.New(stream.Every(time.Second), nil, func(t time.Time) *vdom.VNode {
//	    return vdom.Span(t.Format(time.Kitchen))
//	})
//	if err := clock.Mount(component); err != nil {
//	    return err
//	}
//	defer clock.Unmount()
//
// Values are rendered on the executor passed to Mount, typically a host
// component or an effect.Loop. A fragment holds at most one value waiting to
// be rendered: a newer value replaces it, so a slow executor sees one task
// per burst and renders the newest value. Renders of one fragment never
// overlap, even on effect.Goroutine.
package stream
