package render

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/vango-dev/viewkit/pkg/vdom"
)

// Config configures the HTML renderer.
type Config struct {
	// Pretty enables indented output. Use it for debugging only; whitespace
	// between inline elements becomes visible.
	Pretty bool

	// Indent is the string used for each indentation level in pretty mode.
	// Defaults to two spaces if not specified.
	Indent string
}

// Renderer writes VNode trees as HTML.
//
// Interactive elements receive a data-hid attribute and one data-on-<event>
// marker per handler. The handlers are collected and can be looked up with
// Handler after rendering. A Renderer is not safe for concurrent use.
type Renderer struct {
	config     Config
	hidCounter uint32
	handlers   map[string]map[string]any
}

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config Config) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{
		config:   config,
		handlers: make(map[string]map[string]any),
	}
}

// RenderToString renders a VNode tree to an HTML string.
func (r *Renderer) RenderToString(node *vdom.VNode) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams a VNode tree to w.
func (r *Renderer) RenderToWriter(w io.Writer, node *vdom.VNode) error {
	return r.renderNode(w, node, 0)
}

// Handler returns the handler registered for event on the element with the
// given hydration ID.
func (r *Renderer) Handler(hid, event string) (any, bool) {
	h, ok := r.handlers[hid][event]
	return h, ok
}

// HandlerCount returns how many handlers were collected.
func (r *Renderer) HandlerCount() int {
	n := 0
	for _, events := range r.handlers {
		n += len(events)
	}
	return n
}

// Reset clears the HID counter and handler registry.
func (r *Renderer) Reset() {
	r.hidCounter = 0
	r.handlers = make(map[string]map[string]any)
}

// String renders node with a fresh default renderer.
func String(node *vdom.VNode) (string, error) {
	return NewRenderer(Config{}).RenderToString(node)
}

func (r *Renderer) renderNode(w io.Writer, node *vdom.VNode, depth int) error {
	if node == nil {
		return nil
	}

	switch node.Kind {
	case vdom.KindElement:
		return r.renderElement(w, node, depth)
	case vdom.KindText:
		_, err := io.WriteString(w, escapeHTML(node.Text))
		return err
	case vdom.KindFragment:
		for _, child := range node.Children {
			if err := r.renderNode(w, child, depth); err != nil {
				return err
			}
		}
		return nil
	case vdom.KindComponent:
		if node.Comp == nil {
			return nil
		}
		return r.renderNode(w, node.Comp.Render(), depth)
	case vdom.KindRaw:
		_, err := io.WriteString(w, node.Text)
		return err
	default:
		return fmt.Errorf("render: unknown node kind %d", node.Kind)
	}
}

func (r *Renderer) renderElement(w io.Writer, node *vdom.VNode, depth int) error {
	tag := node.Tag
	if tag == "" {
		return fmt.Errorf("render: element without tag")
	}

	if r.config.Pretty && depth > 0 {
		r.writeIndent(w, depth)
	}
	if _, err := fmt.Fprintf(w, "<%s", tag); err != nil {
		return err
	}
	if err := r.renderAttributes(w, node); err != nil {
		return err
	}
	if handlers := node.Handlers(); len(handlers) > 0 {
		if err := r.renderHydration(w, handlers); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, ">"); err != nil {
		return err
	}

	if vdom.IsVoidElement(tag) {
		r.newline(w)
		return nil
	}

	block := !isInlineElement(tag) && hasElementChild(node)
	if block {
		r.newline(w)
	}
	for _, child := range node.Children {
		if err := r.renderNode(w, child, depth+1); err != nil {
			return err
		}
	}
	if block && r.config.Pretty {
		r.writeIndent(w, depth)
	}
	if _, err := fmt.Fprintf(w, "</%s>", tag); err != nil {
		return err
	}
	r.newline(w)
	return nil
}

// renderAttributes writes attributes in key order for deterministic output.
func (r *Renderer) renderAttributes(w io.Writer, node *vdom.VNode) error {
	keys := make([]string, 0, len(node.Props))
	for key := range node.Props {
		if vdom.IsHandlerKey(key) || strings.HasPrefix(key, "_") {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := node.Props[key]

		if isBooleanAttr(key) {
			if b, ok := value.(bool); ok {
				if b {
					if _, err := fmt.Fprintf(w, " %s", key); err != nil {
						return err
					}
				}
				continue
			}
		}

		s := attrToString(value)
		if s == "" {
			continue
		}
		if _, err := fmt.Fprintf(w, ` %s="%s"`, key, escapeAttr(s)); err != nil {
			return err
		}
	}
	return nil
}

// renderHydration assigns the next hydration ID and registers handlers.
func (r *Renderer) renderHydration(w io.Writer, handlers map[string]any) error {
	r.hidCounter++
	hid := fmt.Sprintf("h%d", r.hidCounter)
	if _, err := fmt.Fprintf(w, ` data-hid="%s"`, hid); err != nil {
		return err
	}

	events := make([]string, 0, len(handlers))
	for event := range handlers {
		events = append(events, event)
	}
	sort.Strings(events)

	r.handlers[hid] = handlers
	for _, event := range events {
		if _, err := fmt.Fprintf(w, ` data-on-%s="true"`, escapeAttr(strings.ToLower(event))); err != nil {
			return err
		}
	}
	return nil
}

func hasElementChild(node *vdom.VNode) bool {
	for _, child := range node.Children {
		if child != nil && child.Kind != vdom.KindText {
			return true
		}
	}
	return false
}

func attrToString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		if v {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprintf("%v", v)
	}
}

func (r *Renderer) newline(w io.Writer) {
	if r.config.Pretty {
		io.WriteString(w, "\n")
	}
}

func (r *Renderer) writeIndent(w io.Writer, depth int) {
	io.WriteString(w, strings.Repeat(r.config.Indent, depth))
}
