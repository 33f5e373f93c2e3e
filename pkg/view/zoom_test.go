package view_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/samber/mo"

	"github.com/vango-dev/viewkit/pkg/effect"
	"github.com/vango-dev/viewkit/pkg/optics"
	"github.com/vango-dev/viewkit/pkg/view"
)

func TestListBroadcastIsOneUpdate(t *testing.T) {
	h := newHost(threeItems())
	all := view.ZoomTraversal(view.ZoomLens(h.root(), itemsLens), optics.Each[item]())

	var seen []item
	run(t, all.ModCB(func(i item) item { i.Title += "!"; return i }, func(items []item) effect.Unit {
		return effect.Lift(func() { seen = items })
	}))

	if h.updates != 1 {
		t.Errorf("host updates = %d, want 1", h.updates)
	}
	want := []item{{Title: "a!"}, {Title: "b!", Done: true}, {Title: "c!"}}
	if diff := cmp.Diff(want, h.State().Items); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, seen); diff != "" {
		t.Errorf("continuation items mismatch (-want +got):\n%s", diff)
	}

	fresh := view.ZoomTraversal(view.ZoomLens(h.root(), itemsLens), optics.Each[item]())
	if diff := cmp.Diff(want, fresh.Get()); diff != "" {
		t.Errorf("freshly zoomed items mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(threeItems().Items, all.Get()); diff != "" {
		t.Errorf("old view changed (-want +got):\n%s", diff)
	}
}

func TestZoomOptional(t *testing.T) {
	tests := []struct {
		name      string
		index     int
		wantGet   mo.Option[item]
		wantAfter mo.Option[item]
		wantItems []item
	}{
		{
			name:      "present",
			index:     1,
			wantGet:   mo.Some(item{Title: "b", Done: true}),
			wantAfter: mo.Some(item{Title: "B", Done: true}),
			wantItems: []item{{Title: "a"}, {Title: "B", Done: true}, {Title: "c"}},
		},
		{
			name:      "absent",
			index:     7,
			wantGet:   mo.None[item](),
			wantAfter: mo.None[item](),
			wantItems: threeItems().Items,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHost(threeItems())
			ov := view.ZoomOptional(view.ZoomLens(h.root(), itemsLens), optics.Index[item](tt.index))

			if got := ov.Get(); got != tt.wantGet {
				t.Errorf("Get = %v, want %v", got, tt.wantGet)
			}
			got := run(t, ov.ModAndGet(func(i item) item { i.Title = "B"; return i }))
			if got != tt.wantAfter {
				t.Errorf("ModAndGet = %v, want %v", got, tt.wantAfter)
			}
			if diff := cmp.Diff(tt.wantItems, h.State().Items); diff != "" {
				t.Errorf("items mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestZoomPrism(t *testing.T) {
	alice := "alice"
	h := newHost(todo{Owner: &alice})
	owner := view.ZoomPrism(view.ZoomLens(h.root(), ownerLens), optics.Some[string]())

	if got, ok := owner.Get().Get(); !ok || got != "alice" {
		t.Errorf("Get = (%q, %v), want (alice, true)", got, ok)
	}
	got := run(t, owner.ModAndGet(func(s string) string { return s + "!" }))
	if v, _ := got.Get(); v != "alice!" {
		t.Errorf("ModAndGet = %v, want Some(alice!)", got)
	}
	if *h.State().Owner != "alice!" {
		t.Errorf("Owner = %q, want alice!", *h.State().Owner)
	}

	empty := newHost(todo{})
	none := view.ZoomPrism(view.ZoomLens(empty.root(), ownerLens), optics.Some[string]())
	if none.Get().IsPresent() {
		t.Error("Get on nil owner is present")
	}
	run(t, none.Set("bob"))
	if empty.State().Owner != nil {
		t.Errorf("Set on absent focus created %q", *empty.State().Owner)
	}
}

func TestZoom(t *testing.T) {
	h := newHost(threeItems())
	count := view.Zoom(view.ZoomLens(h.root(), itemsLens),
		func(items []item) int { return len(items) },
		func(f func(int) int) func([]item) []item {
			return func(items []item) []item {
				n := f(len(items))
				for len(items) < n {
					items = append(items, item{Title: "new"})
				}
				return items[:n]
			}
		},
	)

	if count.Get() != 3 {
		t.Errorf("Get = %d, want 3", count.Get())
	}
	if got := run(t, count.ModAndGet(inc)); got != 4 {
		t.Errorf("ModAndGet = %d, want 4", got)
	}
	if got := h.State().Items[3].Title; got != "new" {
		t.Errorf("added item Title = %q, want new", got)
	}
}

func TestOptionalZooms(t *testing.T) {
	h := newHost(threeItems())
	items := view.ZoomLens(h.root(), itemsLens)
	second := view.ZoomOptional(items, optics.Index[item](1))
	missing := view.ZoomOptional(items, optics.Index[item](5))

	done := view.OptZoomLens(second, itemDone)
	if got := done.Get(); got != mo.Some(true) {
		t.Errorf("OptZoomLens Get = %v, want Some(true)", got)
	}
	if got := run(t, done.ModAndGet(func(b bool) bool { return !b })); got != mo.Some(false) {
		t.Errorf("OptZoomLens ModAndGet = %v, want Some(false)", got)
	}
	if got := view.OptZoomLens(missing, itemDone).Get(); got.IsPresent() {
		t.Errorf("OptZoomLens on absent = %v, want None", got)
	}

	// Optional within an optional: the item title, if non-empty.
	nonEmpty := optics.NewOptional(
		func(i item) mo.Option[string] { return mo.TupleToOption(i.Title, i.Title != "") },
		func(i item, s string) item { i.Title = s; return i },
	)
	title := view.OptZoomOptional(second, nonEmpty)
	if got := title.Get(); got != mo.Some("b") {
		t.Errorf("OptZoomOptional Get = %v, want Some(b)", got)
	}

	lower := optics.NewPrism(
		func(s string) mo.Option[string] { return mo.TupleToOption(s, s != "" && s[0] >= 'a' && s[0] <= 'z') },
		func(s string) string { return s },
	)
	letter := view.OptZoomPrism(title, lower)
	if got := run(t, letter.ModAndGet(func(s string) string { return s + "s" })); got != mo.Some("bs") {
		t.Errorf("OptZoomPrism ModAndGet = %v, want Some(bs)", got)
	}

	chars := view.OptZoom(title,
		func(s string) []rune { return []rune(s) },
		func(f func([]rune) []rune) func(string) string {
			return func(s string) string { return string(f([]rune(s))) }
		},
	)
	if got, _ := chars.Get().Get(); string(got) != "b" {
		t.Errorf("OptZoom Get = %q, want b (snapshot)", string(got))
	}

	titleOf := optics.NewTraversal(
		func(i item) []string { return []string{i.Title} },
		func(i item, f func(string) string) item { i.Title = f(i.Title); return i },
	)
	list := view.OptZoomTraversal(view.ZoomOptional(view.ZoomLens(h.root(), itemsLens), optics.Index[item](0)), titleOf)
	if got := run(t, list.ModAndGet(func(s string) string { return s + "?" })); !cmp.Equal(got, []string{"a?"}) {
		t.Errorf("OptZoomTraversal ModAndGet = %v, want [a?]", got)
	}
	absent := view.OptZoomTraversal(missing, titleOf)
	if absent.Len() != 0 {
		t.Errorf("OptZoomTraversal on absent Len = %d, want 0", absent.Len())
	}
}

func TestListZooms(t *testing.T) {
	h := newHost(threeItems())
	all := view.ZoomTraversal(view.ZoomLens(h.root(), itemsLens), optics.Each[item]())

	titles := view.ListZoomLens(all, itemTitle)
	if diff := cmp.Diff([]string{"a", "b", "c"}, titles.Get()); diff != "" {
		t.Errorf("ListZoomLens Get mismatch (-want +got):\n%s", diff)
	}

	done := optics.NewOptional(
		func(i item) mo.Option[item] { return mo.TupleToOption(i, i.Done) },
		func(_ item, v item) item { return v },
	)
	finished := view.ListZoomOptional(all, done)
	if finished.Len() != 1 {
		t.Errorf("ListZoomOptional Len = %d, want 1", finished.Len())
	}

	open := optics.NewPrism(
		func(i item) mo.Option[string] { return mo.TupleToOption(i.Title, !i.Done) },
		func(s string) item { return item{Title: s} },
	)
	openTitles := view.ListZoomPrism(all, open)
	got := run(t, openTitles.ModAndGet(func(s string) string { return s + s }))
	if diff := cmp.Diff([]string{"aa", "cc"}, got); diff != "" {
		t.Errorf("ListZoomPrism ModAndGet mismatch (-want +got):\n%s", diff)
	}

	letters := view.ListZoomTraversal(titles, optics.NewTraversal(
		func(s string) []byte { return []byte(s) },
		func(s string, f func(byte) byte) string {
			b := []byte(s)
			for i := range b {
				b[i] = f(b[i])
			}
			return string(b)
		},
	))
	if letters.Len() != 3 {
		t.Errorf("ListZoomTraversal snapshot Len = %d, want 3", letters.Len())
	}

	flags := view.ListZoom(all, func(i item) bool { return i.Done }, itemDone.Modifier)
	run(t, flags.Set(true))
	for i, it := range h.State().Items {
		if !it.Done {
			t.Errorf("Items[%d].Done = false after Set(true)", i)
		}
	}
	fresh := view.ZoomTraversal(view.ZoomLens(h.root(), itemsLens), optics.Each[item]())
	if diff := cmp.Diff([]string{"aa", "b", "cc"}, view.ListZoomLens(fresh, itemTitle).Get()); diff != "" {
		t.Errorf("fresh titles mismatch (-want +got):\n%s", diff)
	}
}

func TestEmptyListView(t *testing.T) {
	h := newHost(todo{})
	all := view.ZoomTraversal(view.ZoomLens(h.root(), itemsLens), optics.Each[item]())

	got := run(t, all.ModAndGet(func(i item) item { return i }))
	if got == nil || len(got) != 0 {
		t.Errorf("ModAndGet on empty = %#v, want empty non-nil slice", got)
	}
	if h.updates != 1 {
		t.Errorf("host updates = %d, want 1", h.updates)
	}
}

func TestModAndExtractVariants(t *testing.T) {
	h := newHost(threeItems())
	items := view.ZoomLens(h.root(), itemsLens)

	lengths, err := view.ModAndExtractList(view.ZoomTraversal(items, optics.Each[item]()), func(i item) (item, int) {
		return i, len(i.Title)
	}).Run(context.Background())
	if err != nil {
		t.Fatalf("ModAndExtractList: %v", err)
	}
	if diff := cmp.Diff([]int{1, 1, 1}, lengths); diff != "" {
		t.Errorf("ModAndExtractList mismatch (-want +got):\n%s", diff)
	}

	old := run(t, view.ModAndExtractOpt(view.ZoomOptional(items, optics.Index[item](2)), func(i item) (item, string) {
		prev := i.Title
		i.Title = "z"
		return i, prev
	}))
	if old != mo.Some("c") {
		t.Errorf("ModAndExtractOpt = %v, want Some(c)", old)
	}
	if h.State().Items[2].Title != "z" {
		t.Errorf("Items[2].Title = %q, want z", h.State().Items[2].Title)
	}

	none := run(t, view.ModAndExtractOpt(view.ZoomOptional(items, optics.Index[item](9)), func(i item) (item, string) {
		return i, "unreachable"
	}))
	if none.IsPresent() {
		t.Errorf("ModAndExtractOpt on absent = %v, want None", none)
	}
}

func TestCustomConstructors(t *testing.T) {
	state := []int{1, 2}
	lv := view.NewList(state, func(f func(int) int, cb func([]int) effect.Unit) effect.Unit {
		return effect.Bind(effect.FromFunc(func() ([]int, error) {
			for i := range state {
				state[i] = f(state[i])
			}
			return state, nil
		}), cb)
	}, nil)
	if got := run(t, lv.ModAndGet(inc)); !cmp.Equal(got, []int{2, 3}) {
		t.Errorf("NewList ModAndGet = %v, want [2 3]", got)
	}

	var hooked []int
	hookedList := lv.WithOnMod(func(ns []int) effect.Unit {
		return effect.Lift(func() { hooked = ns })
	})
	run(t, hookedList.ModAndGet(inc))
	if !cmp.Equal(hooked, []int{3, 4}) {
		t.Errorf("list hook saw %v, want [3 4]", hooked)
	}

	cell := 5
	ov := view.NewOptional(mo.Some(cell), func(f func(int) int, cb func(mo.Option[int]) effect.Unit) effect.Unit {
		return effect.Bind(effect.FromFunc(func() (mo.Option[int], error) {
			cell = f(cell)
			return mo.Some(cell), nil
		}), cb)
	}, nil)
	var seen mo.Option[int]
	hookedOpt := ov.WithOnMod(func(o mo.Option[int]) effect.Unit {
		return effect.Lift(func() { seen = o })
	})
	if got := run(t, hookedOpt.ModAndGet(inc)); got != mo.Some(6) {
		t.Errorf("NewOptional ModAndGet = %v, want Some(6)", got)
	}
	if seen != mo.Some(6) {
		t.Errorf("optional hook saw %v, want Some(6)", seen)
	}
	if ov.Get() != mo.Some(5) {
		t.Errorf("snapshot = %v, want Some(5)", ov.Get())
	}
}
