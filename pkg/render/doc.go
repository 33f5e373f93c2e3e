// Package render writes vdom trees as HTML.
//
//	r := render.NewRenderer(render.Config{})
//	html, err := r.RenderToString(node)
//
// Text and attribute values are escaped. Raw nodes and page scripts are
// written as is and must only carry trusted content.
//
// # Hydration IDs
//
// Elements with event handlers receive a data-hid attribute plus a
// data-on-<event> marker per handler. The handlers stay on the server; look
// them up with Handler when the client reports an event:
//
//	h, ok := r.Handler("h3", "click")
//	if ok {
//	    err = vdom.Invoke(h, value)
//	}
//
// Call Reset before re-rendering so IDs start again at h1.
package render
