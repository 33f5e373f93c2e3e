package demo

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/vango-dev/viewkit/pkg/effect"
	"github.com/vango-dev/viewkit/pkg/vdom"
	"github.com/vango-dev/viewkit/pkg/view"
)

// todo renders the list. Every handler changes state through root or a view
// derived from it.
func (a *App) todo(root view.View[State]) *vdom.VNode {
	title := view.ZoomLens(root, titleLens)
	filter := view.ZoomLens(root, filterLens)
	items := view.ZoomTraversal(root, everyItem)
	done := view.ZoomTraversal(root, completed)

	visible := lo.Filter(items.Get(), func(it Item, _ int) bool {
		return filter.Get().Match(it)
	})

	return vdom.Main(vdom.Class("todo"),
		vdom.Header(
			vdom.H1(title.Get()),
			vdom.Form(vdom.Class("title"), vdom.Method("post"), vdom.Action("/title"),
				vdom.OnSubmit(func(s string) { a.run("set title", a.SetTitle(s)) }),
				vdom.Input(vdom.Type("text"), vdom.Name("title"), vdom.Value(title.Get()),
					vdom.AriaLabel("List title"), vdom.MaxLength(80)),
			),
		),
		vdom.Form(vdom.Class("new-item"), vdom.Method("post"), vdom.Action("/items"),
			vdom.OnSubmit(func(s string) { a.run("add item", effect.Void(a.AddItem(s))) }),
			vdom.Input(vdom.Type("text"), vdom.Name("title"), vdom.Placeholder("What needs doing?"),
				vdom.Required(true), vdom.Autofocus(true), vdom.Autocomplete("off")),
			vdom.Button(vdom.Type("submit"), "Add"),
		),
		vdom.Ul(vdom.Class("items"), vdom.Range(visible, func(it Item, _ int) *vdom.VNode {
			return a.item(it)
		})),
		vdom.When(len(visible) == 0, func() *vdom.VNode {
			return vdom.P(vdom.Class("empty"), "Nothing here.")
		}),
		vdom.Section(vdom.Class("actions"),
			vdom.Span(vdom.Class("count"), vdom.Textf("%d of %d done", done.Len(), items.Len())),
			vdom.Span(vdom.Class("filters"), vdom.Range(Filters, func(f Filter, _ int) *vdom.VNode {
				return vdom.Button(vdom.AriaPressed(filter.Get() == f),
					vdom.OnClick(func() { a.run("set filter", a.SetFilter(f)) }),
					string(f))
			})),
			vdom.Form(vdom.Method("post"), vdom.Action("/complete-all"),
				vdom.Button(vdom.Type("submit"), vdom.Disabled(items.Len() == 0),
					vdom.OnClick(func() { a.run("complete all", effect.Void(a.CompleteAll())) }),
					"Complete all"),
			),
			vdom.Button(vdom.Disabled(done.Len() == 0),
				vdom.OnClick(func() { a.run("reopen all", a.ReopenAll()) }),
				"Reopen all"),
			vdom.Button(vdom.Disabled(done.Len() == 0),
				vdom.OnClick(func() { a.run("clear completed", a.ClearCompleted()) }),
				"Clear completed"),
		),
	)
}

func (a *App) item(it Item) *vdom.VNode {
	return vdom.Li(vdom.Key(it.ID), vdom.Class("item", lo.Ternary(it.Done, "done", "")),
		vdom.Form(vdom.Method("post"), vdom.Action(fmt.Sprintf("/items/%d/toggle", it.ID)),
			vdom.Button(vdom.Type("submit"), vdom.AriaPressed(it.Done),
				vdom.OnClick(func() { a.run("toggle item", effect.Void(a.Toggle(it.ID))) }),
				lo.Ternary(it.Done, "Undo", "Done")),
		),
		vdom.Input(vdom.Type("text"), vdom.Value(it.Title), vdom.AriaLabel("Item title"),
			vdom.OnChange(func(s string) { a.run("rename item", a.Rename(it.ID, s)) })),
		vdom.Button(vdom.AriaLabel("Remove"),
			vdom.OnClick(func() { a.run("remove item", a.Remove(it.ID)) }),
			"×"),
	)
}

const pageCSS = `body{font-family:system-ui,sans-serif;max-width:36rem;margin:2rem auto;padding:0 1rem}
.items{list-style:none;padding:0}
.item{display:flex;gap:.5rem;align-items:center;margin:.25rem 0}
.item.done input{text-decoration:line-through;color:#888}
.item input{flex:1}
.actions{display:flex;flex-wrap:wrap;gap:.5rem;align-items:center}
.filters button[aria-pressed=true]{font-weight:bold}
.status{margin-top:2rem;color:#666}`

// liveScript forwards events over /ws and swaps in pushed HTML. Forms still
// post normally when the socket is down.
const liveScript = `(function(){
var app=document.getElementById("app");
var proto=location.protocol==="https:"?"wss://":"ws://";
var ws=new WebSocket(proto+location.host+"/ws");
ws.onmessage=function(m){
  var msg=JSON.parse(m.data);
  if(msg.type==="html"){app.innerHTML=msg.html;}
  else if(msg.type==="error"){console.warn("viewkit:",msg.error);}
};
["click","change","submit"].forEach(function(type){
  document.addEventListener(type,function(e){
    var el=e.target.closest("[data-on-"+type+"]");
    if(!el||ws.readyState!==1){return;}
    e.preventDefault();
    var value=el.value||"";
    if(type==="submit"){value=new FormData(el).get("title")||"";}
    ws.send(JSON.stringify({hid:el.getAttribute("data-hid"),event:type,value:value}));
  },true);
});
})();`
