// Package host provides Component, a minimal owner of authoritative UI state.
//
// A Component holds one value of type S and applies updates to it on a single
// goroutine, in the order they were submitted. After an update changes the
// state, every render subscriber is called with the new value, and then the
// update's completion callback runs.
//
//	c := host.New("todo", State{}, host.WithLogger(logger))
//	defer c.Unmount()
//
//	c.Subscribe(func(s State) { push(render(s)) })
//	c.Update(func(s State) State { s.Title = "groceries"; return s }, func(s State, err error) {
//	    ...
//	})
//
// # Teardown
//
// Unmount stops the update loop. Updates still queued at that point, and
// updates submitted afterwards, complete with ErrUnmounted; their functions
// never run. Each completion callback runs exactly once.
//
// # Thread Safety
//
// State, Update, Dispatch and Subscribe are safe for concurrent use.
// Subscribers and completion callbacks run on the update goroutine and must
// not wait for other updates of the same component.
package host
