package render

import (
	"strings"
	"testing"

	"github.com/vango-dev/viewkit/pkg/vdom"
)

func TestRenderToString(t *testing.T) {
	tests := []struct {
		name string
		node *vdom.VNode
		want string
	}{
		{"nil", nil, ""},
		{"text", vdom.Text("a < b & c"), "a &lt; b &amp; c"},
		{"raw", vdom.Raw("<b>ok</b>"), "<b>ok</b>"},
		{"element", vdom.P(vdom.Class("x"), "hi"), `<p class="x">hi</p>`},
		{"void", vdom.Input(vdom.Type("text"), vdom.Value(`"q"`)), `<input type="text" value="&quot;q&quot;">`},
		{"boolean true", vdom.Input(vdom.Checked(true)), `<input checked>`},
		{"boolean false", vdom.Input(vdom.Checked(false)), `<input>`},
		{"empty attr", vdom.Div(vdom.Class()), `<div></div>`},
		{"sorted attrs", vdom.Div(vdom.ID("b"), vdom.Class("a")), `<div class="a" id="b"></div>`},
		{"number attr", vdom.Input(vdom.MaxLength(12)), `<input maxlength="12">`},
		{"fragment", vdom.Fragment(vdom.Li("a"), vdom.Li("b")), `<li>a</li><li>b</li>`},
		{"component", vdom.Embed(vdom.Func(func() *vdom.VNode { return vdom.Span("c") })), `<span>c</span>`},
		{"key not rendered", vdom.Li(vdom.Key(3), "x"), `<li>x</li>`},
		{"attr newline", vdom.Div(vdom.Prop("title", "a\nb")), `<div title="a&#10;b"></div>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := String(tt.node)
			if err != nil {
				t.Fatalf("String: %v", err)
			}
			if got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderUnknownKind(t *testing.T) {
	if _, err := String(&vdom.VNode{Kind: vdom.Kind(42)}); err == nil {
		t.Error("unknown kind rendered, want error")
	}
	if _, err := String(&vdom.VNode{Kind: vdom.KindElement}); err == nil {
		t.Error("element without tag rendered, want error")
	}
}

func TestRenderHydration(t *testing.T) {
	var clicked, typed string
	node := vdom.Div(
		vdom.Button(vdom.OnClick(func() { clicked = "yes" }), "go"),
		vdom.Input(vdom.OnInput(func(s string) { typed = s }), vdom.OnChange(func(string) {})),
		vdom.Span("static"),
	)

	r := NewRenderer(Config{})
	html, err := r.RenderToString(node)
	if err != nil {
		t.Fatalf("RenderToString: %v", err)
	}

	want := `<div><button data-hid="h1" data-on-click="true">go</button>` +
		`<input data-hid="h2" data-on-change="true" data-on-input="true"><span>static</span></div>`
	if html != want {
		t.Errorf("html = %q, want %q", html, want)
	}
	if n := r.HandlerCount(); n != 3 {
		t.Errorf("HandlerCount() = %d, want 3", n)
	}

	h, ok := r.Handler("h1", "click")
	if !ok {
		t.Fatal("Handler(h1, click) not found")
	}
	if err := vdom.Invoke(h, ""); err != nil || clicked != "yes" {
		t.Errorf("click handler: err=%v clicked=%q", err, clicked)
	}
	h, _ = r.Handler("h2", "input")
	if err := vdom.Invoke(h, "milk"); err != nil || typed != "milk" {
		t.Errorf("input handler: err=%v typed=%q", err, typed)
	}
	if _, ok := r.Handler("h9", "click"); ok {
		t.Error("Handler(h9) found, want missing")
	}

	r.Reset()
	html, _ = r.RenderToString(node)
	if !strings.Contains(html, `data-hid="h1"`) {
		t.Errorf("after Reset html = %q, want IDs from h1", html)
	}
}

func TestRenderPretty(t *testing.T) {
	node := vdom.Ul(vdom.Li("a"), vdom.Li(vdom.Strong("b")))
	got, err := NewRenderer(Config{Pretty: true}).RenderToString(node)
	if err != nil {
		t.Fatalf("RenderToString: %v", err)
	}
	want := "<ul>\n  <li>a</li>\n  <li>\n    <strong>b</strong>\n  </li>\n</ul>\n"
	if got != want {
		t.Errorf("pretty = %q, want %q", got, want)
	}
}

func TestRenderPage(t *testing.T) {
	var buf strings.Builder
	err := NewRenderer(Config{}).RenderPage(&buf, PageData{
		Title:   "Todos <3",
		Styles:  []string{"body{margin:0}"},
		Body:    vdom.Main(vdom.ID("root"), "hi"),
		Scripts: []string{"console.log(1)"},
	})
	if err != nil {
		t.Fatalf("RenderPage: %v", err)
	}

	html := buf.String()
	for _, want := range []string{
		"<!DOCTYPE html>",
		`<html lang="en">`,
		"<title>Todos &lt;3</title>",
		"<style>body{margin:0}</style>",
		`<main id="root">hi</main>`,
		"<script>console.log(1)</script>",
		"</html>",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("page missing %q:\n%s", want, html)
		}
	}
}
