package bridge

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/vango-dev/viewkit/pkg/effect"
	"github.com/vango-dev/viewkit/pkg/host"
	"github.com/vango-dev/viewkit/pkg/optics"
	"github.com/vango-dev/viewkit/pkg/vdom"
	"github.com/vango-dev/viewkit/pkg/view"
)

type todo struct {
	Title string
	Items []string
}

var titleLens = optics.NewLens(
	func(t todo) string { return t.Title },
	func(t todo, s string) todo { t.Title = s; return t },
)

func newComponent(t *testing.T, initial todo) *host.Component[todo] {
	t.Helper()
	c := host.New("todo", initial, host.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	t.Cleanup(c.Unmount)
	return c
}

func ctxTimeout(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestFromHostReadsState(t *testing.T) {
	c := newComponent(t, todo{Title: "groceries"})
	v := FromHost[todo](c, c)
	if got := v.Get().Title; got != "groceries" {
		t.Errorf("Get().Title = %q, want groceries", got)
	}
}

func TestFromHostModAndGet(t *testing.T) {
	c := newComponent(t, todo{Title: "a"})
	v := FromHost[todo](c, c)

	got, err := v.ModAndGet(func(s todo) todo {
		s.Items = append(s.Items, "milk")
		return s
	}).Run(ctxTimeout(t))
	if err != nil {
		t.Fatalf("ModAndGet: %v", err)
	}
	want := todo{Title: "a", Items: []string{"milk"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ModAndGet mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, c.State()); diff != "" {
		t.Errorf("host state mismatch (-want +got):\n%s", diff)
	}

	// The snapshot is not live.
	if v.Get().Title != "a" || len(v.Get().Items) != 0 {
		t.Errorf("snapshot changed: %+v", v.Get())
	}
}

func TestFromHostModAppliesToCurrentValue(t *testing.T) {
	c := newComponent(t, todo{Title: "a"})
	stale := FromHost[todo](c, c)

	if _, err := view.ZoomLens(FromHost[todo](c, c), titleLens).Set("b").Run(ctxTimeout(t)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := view.ZoomLens(stale, titleLens).ModAndGet(func(s string) string { return s + "!" }).Run(ctxTimeout(t))
	if err != nil {
		t.Fatalf("ModAndGet: %v", err)
	}
	if got != "b!" {
		t.Errorf("ModAndGet = %q, want b!", got)
	}
}

func TestFromHostContinuationRunsOnExecutor(t *testing.T) {
	c := newComponent(t, todo{})

	var mu sync.Mutex
	var dispatched int
	exec := effect.ExecutorFunc(func(fn func()) error {
		mu.Lock()
		dispatched++
		mu.Unlock()
		return c.Dispatch(fn)
	})
	v := FromHost[todo](c, exec)

	var seen string
	_, err := v.ModCB(func(s todo) todo { s.Title = "x"; return s }, func(s todo) effect.Unit {
		return effect.Lift(func() { seen = s.Title })
	}).Run(ctxTimeout(t))
	if err != nil {
		t.Fatalf("ModCB: %v", err)
	}
	if seen != "x" {
		t.Errorf("continuation saw %q, want x", seen)
	}
	mu.Lock()
	defer mu.Unlock()
	if dispatched != 1 {
		t.Errorf("dispatched = %d, want 1", dispatched)
	}
}

// failingHost rejects every update.
type failingHost struct {
	err error
}

func (h failingHost) State() todo { return todo{Title: "stuck"} }

func (h failingHost) Update(_ func(todo) todo, done func(todo, error)) {
	done(todo{}, h.err)
}

func TestFromHostFailure(t *testing.T) {
	boom := errors.New("backend down")
	v := FromHost[todo](failingHost{err: boom}, effect.Immediate)

	called := false
	_, err := v.ModCB(func(s todo) todo { return s }, func(todo) effect.Unit {
		return effect.Lift(func() { called = true })
	}).Run(ctxTimeout(t))
	if !errors.Is(err, boom) {
		t.Errorf("ModCB err = %v, want %v", err, boom)
	}

	_, err = v.ModAndGet(func(s todo) todo { return s }).Run(ctxTimeout(t))
	if !errors.Is(err, boom) {
		t.Errorf("ModAndGet err = %v, want %v", err, boom)
	}
	if called {
		t.Error("continuation ran after host failure")
	}
}

func TestFromHostUnmounted(t *testing.T) {
	c := newComponent(t, todo{})
	v := FromHost[todo](c, c)
	c.Unmount()

	_, err := v.Set(todo{Title: "late"}).Run(ctxTimeout(t))
	if !errors.Is(err, host.ErrUnmounted) {
		t.Errorf("err = %v, want ErrUnmounted", err)
	}
}

type spanRecorder struct {
	noop.Tracer
	mu    sync.Mutex
	names []string
}

func (r *spanRecorder) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	r.mu.Lock()
	r.names = append(r.names, name)
	r.mu.Unlock()
	return r.Tracer.Start(ctx, name, opts...)
}

type recorderProvider struct {
	noop.TracerProvider
	tracer *spanRecorder
}

func (p recorderProvider) Tracer(string, ...trace.TracerOption) trace.Tracer {
	return p.tracer
}

func TestFromHostTracesModifications(t *testing.T) {
	rec := &spanRecorder{}
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(recorderProvider{tracer: rec})
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	c := newComponent(t, todo{})
	if _, err := FromHost[todo](c, c).Set(todo{Title: "t"}).Run(ctxTimeout(t)); err != nil {
		t.Fatalf("Set: %v", err)
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if diff := cmp.Diff([]string{SpanModify}, rec.names); diff != "" {
		t.Errorf("spans mismatch (-want +got):\n%s", diff)
	}
}

func TestRenderObservesFreshSnapshot(t *testing.T) {
	c := newComponent(t, todo{Title: "first"})
	comp := Render[todo](c, c, func(v view.View[todo]) *vdom.VNode {
		return vdom.Text(v.Get().Title)
	})

	if got := comp.Render().Text; got != "first" {
		t.Errorf("first render = %q, want first", got)
	}
	if _, err := FromHost[todo](c, c).Set(todo{Title: "second"}).Run(ctxTimeout(t)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if got := comp.Render().Text; got != "second" {
		t.Errorf("second render = %q, want second", got)
	}
}

func TestContinuationUpdatesSameHost(t *testing.T) {
	c := newComponent(t, todo{Title: "a"})
	root := FromHost[todo](c, c)

	tagged := root.WithOnMod(func(s todo) effect.Unit {
		return FromHost[todo](c, c).Mod(func(s todo) todo {
			s.Items = append(s.Items, "renamed to "+s.Title)
			return s
		})
	})
	got, err := tagged.ModAndGet(func(s todo) todo { s.Title = "b"; return s }).Run(ctxTimeout(t))
	if err != nil {
		t.Fatalf("ModAndGet: %v", err)
	}
	if diff := cmp.Diff(todo{Title: "b"}, got); diff != "" {
		t.Errorf("ModAndGet mismatch (-want +got):\n%s", diff)
	}
	want := todo{Title: "b", Items: []string{"renamed to b"}}
	if diff := cmp.Diff(want, c.State()); diff != "" {
		t.Errorf("host state mismatch (-want +got):\n%s", diff)
	}

	// The loop keeps serving updates afterwards.
	if _, err := FromHost[todo](c, c).Set(todo{Title: "c"}).Run(ctxTimeout(t)); err != nil {
		t.Fatalf("Set after nested update: %v", err)
	}
	if got := c.State().Title; got != "c" {
		t.Errorf("Title = %q, want c", got)
	}
}
