package vdom

import "fmt"

// On attaches handler to the named DOM event ("click", "input", ...).
// Supported handler types are func() and func(string), where the string is
// the event's value (an input's text, a form's serialized field).
func On(event string, handler any) Attr {
	return attr("on"+event, handler)
}

func OnClick(handler any) Attr   { return On("click", handler) }
func OnInput(handler any) Attr   { return On("input", handler) }
func OnChange(handler any) Attr  { return On("change", handler) }
func OnSubmit(handler any) Attr  { return On("submit", handler) }
func OnKeyDown(handler any) Attr { return On("keydown", handler) }

// Invoke calls handler with value. It returns an error for unsupported
// handler types.
func Invoke(handler any, value string) error {
	switch h := handler.(type) {
	case func():
		h()
	case func(string):
		h(value)
	default:
		return fmt.Errorf("vdom: unsupported handler type %T", handler)
	}
	return nil
}
