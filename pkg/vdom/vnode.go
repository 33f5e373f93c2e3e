package vdom

import "strings"

// Kind is the node type discriminator.
type Kind uint8

const (
	KindElement   Kind = iota // <div>, <button>, etc.
	KindText                  // Plain text node
	KindFragment              // Children without a wrapper
	KindComponent             // Rendered lazily through Comp
	KindRaw                   // Trusted HTML, written unescaped
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	case KindComponent:
		return "Component"
	case KindRaw:
		return "Raw"
	default:
		return "Unknown"
	}
}

// VNode is a node of a virtual UI tree.
type VNode struct {
	Kind     Kind
	Tag      string    // Element tag name
	Props    Props     // Attributes and event handlers
	Children []*VNode  // Child nodes
	Key      string    // Identity among siblings
	Text     string    // For KindText and KindRaw
	Comp     Component // For KindComponent
}

// Props holds attributes and event handlers. Handler keys start with "on".
type Props map[string]any

// Handlers returns the event handlers of an element keyed by event name
// ("click", "input", ...).
func (v *VNode) Handlers() map[string]any {
	if v == nil || v.Kind != KindElement {
		return nil
	}
	var handlers map[string]any
	for key, value := range v.Props {
		if !IsHandlerKey(key) || value == nil {
			continue
		}
		if handlers == nil {
			handlers = make(map[string]any)
		}
		handlers[strings.TrimPrefix(key, "on")] = value
	}
	return handlers
}

// IsInteractive reports whether the node is an element with event handlers.
func (v *VNode) IsInteractive() bool {
	return len(v.Handlers()) > 0
}

// IsHandlerKey reports whether a props key names an event handler.
func IsHandlerKey(key string) bool {
	return strings.HasPrefix(key, "on") && len(key) > 2
}

// Component is anything that can render to a VNode.
type Component interface {
	Render() *VNode
}

// FuncComponent wraps a render function.
type FuncComponent struct {
	render func() *VNode
}

// Render implements Component.
func (f *FuncComponent) Render() *VNode {
	return f.render()
}

// Func creates a component from a render function.
func Func(render func() *VNode) Component {
	return &FuncComponent{render: render}
}

// Embed wraps a component in a KindComponent node.
func Embed(c Component) *VNode {
	return &VNode{Kind: KindComponent, Comp: c}
}
