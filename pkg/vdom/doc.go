// Package vdom provides a small virtual UI tree.
//
// VNode represents elements, text, fragments, lazily rendered components and
// raw HTML. Props holds attributes and event handlers.
//
// # Element API
//
// Elements are created using variadic factory functions:
//
//	Div(Class("card"), ID("main"),
//	    H1(Text("Title")),
//	    P("Content"),
//	    Button(OnClick(handler), "Save"),
//	)
//
// Arguments are attributes (Attr, []Attr) or children (*VNode, []*VNode,
// Component, string). nil arguments are skipped, so If and When compose
// inline.
//
// # Events
//
// Handlers are stored in Props under "on"+event. The render package assigns
// hydration IDs to interactive elements and collects their handlers; Invoke
// calls one with the event's value.
package vdom
