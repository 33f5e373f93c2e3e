// Package demo is a todo list built only from views.
//
// The application state lives in a host.Component. Every widget receives a
// view derived from bridge.FromHost and changes state exclusively through it:
// the title through a lens, a single item through an optional found by ID,
// all items through a traversal and the completed ones through a filtered
// traversal. A clock rendered by a stream.Fragment ticks alongside.
//
// The server renders plain HTML, so the form routes work without
// JavaScript. With JavaScript, a small script connects to /ws, forwards
// clicks, changes and submits as events and replaces the page content with
// the HTML pushed after each render.
package demo
