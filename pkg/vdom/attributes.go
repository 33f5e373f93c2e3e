package vdom

import "strings"

// Attr is a single attribute or event handler.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// Prop sets an arbitrary attribute.
func Prop(key string, value any) Attr { return attr(key, value) }

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets the class attribute, joining non-empty classes with spaces.
func Class(classes ...string) Attr {
	parts := classes[:0:0]
	for _, c := range classes {
		if c != "" {
			parts = append(parts, c)
		}
	}
	return attr("class", strings.Join(parts, " "))
}

// Data creates a data-* attribute.
// Example: Data("id", "123") → data-id="123"
func Data(key, value string) Attr { return attr("data-"+key, value) }

// Form attributes

func Type(t string) Attr              { return attr("type", t) }
func Name(name string) Attr           { return attr("name", name) }
func Value(value string) Attr         { return attr("value", value) }
func Placeholder(text string) Attr    { return attr("placeholder", text) }
func Checked(checked bool) Attr       { return attr("checked", checked) }
func Disabled(disabled bool) Attr     { return attr("disabled", disabled) }
func Href(url string) Attr            { return attr("href", url) }
func Action(url string) Attr          { return attr("action", url) }
func Method(method string) Attr       { return attr("method", method) }
func Charset(charset string) Attr     { return attr("charset", charset) }
func AriaLabel(label string) Attr     { return attr("aria-label", label) }
func AriaLive(mode string) Attr       { return attr("aria-live", mode) }
func AriaPressed(pressed bool) Attr   { return attr("aria-pressed", pressed) }
func AriaCurrent(current string) Attr { return attr("aria-current", current) }
func AriaChecked(checked bool) Attr   { return attr("aria-checked", checked) }
func AriaHidden(hidden bool) Attr     { return attr("aria-hidden", hidden) }
func TabIndex(index int) Attr         { return attr("tabindex", index) }
func Autofocus(autofocus bool) Attr   { return attr("autofocus", autofocus) }
func Required(required bool) Attr     { return attr("required", required) }
func For(id string) Attr              { return attr("for", id) }
func Title_(title string) Attr        { return attr("title", title) }
func DateTime(datetime string) Attr   { return attr("datetime", datetime) }
func Rel(rel string) Attr             { return attr("rel", rel) }
func Autocomplete(value string) Attr  { return attr("autocomplete", value) }
func MaxLength(n int) Attr            { return attr("maxlength", n) }
func Role(role string) Attr           { return attr("role", role) }
