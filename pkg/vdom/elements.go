package vdom

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsVoidElement returns true if the tag is a void element.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

// El creates an element.
// Arguments can be: nil, Attr, []Attr, *VNode, []*VNode, Component, string.
func El(tag string, args ...any) *VNode {
	node := &VNode{
		Kind:  KindElement,
		Tag:   tag,
		Props: make(Props),
	}
	for _, arg := range args {
		switch v := arg.(type) {
		case Attr:
			setAttr(node, v)
		case []Attr:
			for _, a := range v {
				setAttr(node, a)
			}
		default:
			appendChild(node, arg)
		}
	}
	return node
}

func setAttr(node *VNode, a Attr) {
	if a.IsEmpty() {
		return
	}
	if a.Key == "key" {
		if s, ok := a.Value.(string); ok {
			node.Key = s
		}
		return
	}
	node.Props[a.Key] = a.Value
}

func appendChild(node *VNode, child any) {
	switch v := child.(type) {
	case *VNode:
		if v != nil {
			node.Children = append(node.Children, v)
		}
	case []*VNode:
		for _, c := range v {
			if c != nil {
				node.Children = append(node.Children, c)
			}
		}
	case string:
		node.Children = append(node.Children, Text(v))
	case Component:
		if v != nil {
			node.Children = append(node.Children, Embed(v))
		}
	}
}

// Document structure

func Html(args ...any) *VNode  { return El("html", args...) }
func Head(args ...any) *VNode  { return El("head", args...) }
func Body(args ...any) *VNode  { return El("body", args...) }
func Title(args ...any) *VNode { return El("title", args...) }
func Meta(args ...any) *VNode  { return El("meta", args...) }
func Script(args ...any) *VNode {
	return El("script", args...)
}

// Sectioning and text content

func Header(args ...any) *VNode  { return El("header", args...) }
func Footer(args ...any) *VNode  { return El("footer", args...) }
func Main(args ...any) *VNode    { return El("main", args...) }
func Section(args ...any) *VNode { return El("section", args...) }
func H1(args ...any) *VNode      { return El("h1", args...) }
func H2(args ...any) *VNode      { return El("h2", args...) }
func Div(args ...any) *VNode     { return El("div", args...) }
func P(args ...any) *VNode       { return El("p", args...) }
func Span(args ...any) *VNode    { return El("span", args...) }
func Ul(args ...any) *VNode      { return El("ul", args...) }
func Li(args ...any) *VNode      { return El("li", args...) }
func Strong(args ...any) *VNode  { return El("strong", args...) }
func Small(args ...any) *VNode   { return El("small", args...) }
func A(args ...any) *VNode       { return El("a", args...) }
func Br(args ...any) *VNode      { return El("br", args...) }

// Forms

func Form(args ...any) *VNode   { return El("form", args...) }
func Input(args ...any) *VNode  { return El("input", args...) }
func Button(args ...any) *VNode { return El("button", args...) }
func Label(args ...any) *VNode  { return El("label", args...) }
