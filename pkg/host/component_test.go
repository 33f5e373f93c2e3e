package host

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/vango-dev/viewkit/pkg/effect"
	"github.com/vango-dev/viewkit/pkg/snapshot"
)

type counter struct {
	N     int
	Label string
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type result[S any] struct {
	state S
	err   error
}

// update runs Update and waits for its completion.
func update[S any](t *testing.T, c *Component[S], f func(S) S) (S, error) {
	t.Helper()
	ch := make(chan result[S], 1)
	c.Update(f, func(s S, err error) { ch <- result[S]{s, err} })
	select {
	case r := <-ch:
		return r.state, r.err
	case <-time.After(2 * time.Second):
		t.Fatal("update did not complete")
		var zero S
		return zero, nil
	}
}

func inc(c counter) counter {
	c.N++
	return c
}

func TestComponentUpdate(t *testing.T) {
	c := New("counter", counter{}, WithLogger(quietLogger()))
	defer c.Unmount()

	for i := 1; i <= 3; i++ {
		s, err := update(t, c, inc)
		if err != nil {
			t.Fatalf("update %d: %v", i, err)
		}
		if s.N != i {
			t.Errorf("update %d state.N = %d, want %d", i, s.N, i)
		}
	}
	if got := c.State().N; got != 3 {
		t.Errorf("State().N = %d, want 3", got)
	}
	if got := c.Version(); got != 3 {
		t.Errorf("Version() = %d, want 3", got)
	}
}

func TestComponentUpdatesAreOrdered(t *testing.T) {
	c := New("list", []int(nil), WithLogger(quietLogger()))
	defer c.Unmount()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		i := i
		wg.Add(1)
		c.Update(func(s []int) []int { return append(s, i) }, func([]int, error) { wg.Done() })
	}
	wg.Wait()

	got := c.State()
	if len(got) != 50 {
		t.Fatalf("len(State()) = %d, want 50", len(got))
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("State()[%d] = %d, want %d", i, v, i)
		}
	}
}

func TestComponentRendersBeforeDone(t *testing.T) {
	c := New("counter", counter{}, WithLogger(quietLogger()))
	defer c.Unmount()

	var mu sync.Mutex
	var events []string
	record := func(e string) {
		mu.Lock()
		events = append(events, e)
		mu.Unlock()
	}
	c.Subscribe(func(s counter) { record("render") })

	done := make(chan struct{})
	c.Update(inc, func(counter, error) {
		record("done")
		close(done)
	})
	<-done

	mu.Lock()
	defer mu.Unlock()
	if diff := cmp.Diff([]string{"render", "done"}, events); diff != "" {
		t.Errorf("event order mismatch (-want +got):\n%s", diff)
	}
}

func TestComponentUnsubscribe(t *testing.T) {
	c := New("counter", counter{}, WithLogger(quietLogger()))
	defer c.Unmount()

	var renders int
	unsubscribe := c.Subscribe(func(counter) { renders++ })
	update(t, c, inc)
	unsubscribe()
	update(t, c, inc)

	if renders != 1 {
		t.Errorf("renders = %d, want 1", renders)
	}
}

func TestComponentWithEquals(t *testing.T) {
	store := snapshot.NewMemoryStore()
	c := New("counter", counter{}, WithLogger(quietLogger()), WithSnapshots(store, "k")).
		WithEquals(func(a, b counter) bool { return a == b })
	defer c.Unmount()

	var renders int
	c.Subscribe(func(counter) { renders++ })

	s, err := update(t, c, func(s counter) counter { return s })
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if s != (counter{}) {
		t.Errorf("state = %+v, want zero", s)
	}
	if renders != 0 {
		t.Errorf("renders after no-op = %d, want 0", renders)
	}
	if store.Saves() != 0 {
		t.Errorf("saves after no-op = %d, want 0", store.Saves())
	}
	if c.Version() != 0 {
		t.Errorf("Version() = %d, want 0", c.Version())
	}

	update(t, c, inc)
	if renders != 1 {
		t.Errorf("renders after change = %d, want 1", renders)
	}
}

func TestComponentMutationPanic(t *testing.T) {
	c := New("counter", counter{N: 7}, WithLogger(quietLogger()))
	defer c.Unmount()

	_, err := update(t, c, func(counter) counter { panic("boom") })
	if !errors.Is(err, ErrMutationPanic) {
		t.Fatalf("err = %v, want ErrMutationPanic", err)
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("err = %q, want panic value in message", err)
	}
	if got := c.State().N; got != 7 {
		t.Errorf("State().N = %d, want 7", got)
	}

	// The component keeps working.
	if s, err := update(t, c, inc); err != nil || s.N != 8 {
		t.Errorf("update after panic = (%d, %v), want (8, nil)", s.N, err)
	}
}

func TestComponentSubscriberPanic(t *testing.T) {
	c := New("counter", counter{}, WithLogger(quietLogger()))
	defer c.Unmount()

	var calls int
	c.Subscribe(func(counter) { panic("render failed") })
	c.Subscribe(func(counter) { calls++ })

	if _, err := update(t, c, inc); err != nil {
		t.Fatalf("update: %v", err)
	}
	if calls != 1 {
		t.Errorf("healthy subscriber calls = %d, want 1", calls)
	}
}

func TestComponentUpdateAfterUnmount(t *testing.T) {
	c := New("counter", counter{}, WithLogger(quietLogger()))
	c.Unmount()
	c.Unmount()
	<-c.Done()

	var calls int
	var gotErr error
	c.Update(inc, func(_ counter, err error) {
		calls++
		gotErr = err
	})
	if calls != 1 {
		t.Errorf("done calls = %d, want 1", calls)
	}
	if !errors.Is(gotErr, ErrUnmounted) {
		t.Errorf("err = %v, want ErrUnmounted", gotErr)
	}
	if !c.Unmounted() {
		t.Error("Unmounted() = false, want true")
	}
	if err := c.Dispatch(func() {}); !errors.Is(err, ErrUnmounted) {
		t.Errorf("Dispatch err = %v, want ErrUnmounted", err)
	}
}

func TestComponentQueuedUpdatesCancelledOnUnmount(t *testing.T) {
	c := New("counter", counter{}, WithLogger(quietLogger()))

	release := make(chan struct{})
	started := make(chan struct{})
	c.Update(func(s counter) counter {
		close(started)
		<-release
		return inc(s)
	}, nil)
	<-started

	var mu sync.Mutex
	var errs []error
	ran := false
	for i := 0; i < 3; i++ {
		c.Update(func(s counter) counter {
			ran = true
			return s
		}, func(_ counter, err error) {
			mu.Lock()
			errs = append(errs, err)
			mu.Unlock()
		})
	}

	c.Unmount()
	close(release)
	<-c.Done()

	mu.Lock()
	defer mu.Unlock()
	if ran {
		t.Error("queued update ran after unmount")
	}
	if len(errs) != 3 {
		t.Fatalf("completions = %d, want 3", len(errs))
	}
	for i, err := range errs {
		if !errors.Is(err, ErrUnmounted) {
			t.Errorf("errs[%d] = %v, want ErrUnmounted", i, err)
		}
	}
}

func TestComponentQueueFull(t *testing.T) {
	c := New("counter", counter{}, WithLogger(quietLogger()), WithQueueSize(1))
	defer c.Unmount()

	release := make(chan struct{})
	started := make(chan struct{})
	c.Update(func(s counter) counter {
		close(started)
		<-release
		return s
	}, nil)
	<-started
	c.Update(inc, nil) // fills the queue

	var gotErr error
	c.Update(inc, func(_ counter, err error) { gotErr = err })
	close(release)

	if !errors.Is(gotErr, ErrQueueFull) {
		t.Errorf("err = %v, want ErrQueueFull", gotErr)
	}
}

func TestComponentDispatchOrdering(t *testing.T) {
	c := New("counter", counter{}, WithLogger(quietLogger()))
	defer c.Unmount()

	c.Update(inc, nil)
	seen := make(chan int, 1)
	if err := c.Dispatch(func() { seen <- c.State().N }); err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if got := <-seen; got != 1 {
		t.Errorf("state seen by dispatched fn = %d, want 1", got)
	}
}

func TestComponentUpdateContext(t *testing.T) {
	c := New("counter", counter{}, WithLogger(quietLogger()))
	defer c.Unmount()

	ch := make(chan result[counter], 1)
	c.UpdateContext(context.Background(), inc, func(s counter, err error) { ch <- result[counter]{s, err} })
	select {
	case r := <-ch:
		if r.err != nil || r.state.N != 1 {
			t.Errorf("queued UpdateContext = (%+v, %v), want N=1", r.state, r.err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("queued UpdateContext did not complete")
	}

	// Inside a task shifted onto c, the update is applied inline.
	nested := effect.Shift[int](c, func(ctx context.Context) (int, error) {
		var got counter
		var gotErr error
		completed := false
		c.UpdateContext(ctx, inc, func(s counter, err error) {
			got, gotErr, completed = s, err, true
		})
		if !completed {
			return 0, errors.New("update was queued behind the running task")
		}
		return got.N, gotErr
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	n, err := nested.Run(ctx)
	if err != nil || n != 2 {
		t.Errorf("nested UpdateContext = (%d, %v), want (2, nil)", n, err)
	}
	if got := c.State().N; got != 2 {
		t.Errorf("State().N = %d, want 2", got)
	}
}

func TestComponentSnapshots(t *testing.T) {
	store := snapshot.NewMemoryStore()

	c := New("counter", counter{Label: "fresh"}, WithLogger(quietLogger()), WithSnapshots(store, "counter/1"))
	update(t, c, func(s counter) counter {
		s.N = 41
		s.Label = "saved"
		return s
	})
	c.Unmount()
	<-c.Done()

	restored := New("counter", counter{Label: "fresh"}, WithLogger(quietLogger()), WithSnapshots(store, "counter/1"))
	defer restored.Unmount()
	if diff := cmp.Diff(counter{N: 41, Label: "saved"}, restored.State()); diff != "" {
		t.Errorf("restored state mismatch (-want +got):\n%s", diff)
	}

	other := New("counter", counter{Label: "fresh"}, WithLogger(quietLogger()), WithSnapshots(store, "counter/2"))
	defer other.Unmount()
	if got := other.State().Label; got != "fresh" {
		t.Errorf("state without snapshot Label = %q, want fresh", got)
	}
}

type failingStore struct{}

func (failingStore) Save(context.Context, string, []byte) error {
	return errors.New("disk full")
}

func (failingStore) Load(context.Context, string) ([]byte, error) {
	return []byte("corrupt"), nil
}

func TestComponentMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg), WithNamespace("test"))

	c := New("todo", counter{}, WithLogger(quietLogger()), WithMetrics(m), WithSnapshots(failingStore{}, "k"))
	update(t, c, inc)
	update(t, c, func(counter) counter { panic("x") })
	c.Unmount()
	<-c.Done()
	c.Update(inc, nil)

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"applied", testutil.ToFloat64(m.updates.WithLabelValues("todo", StatusApplied)), 1},
		{"failed", testutil.ToFloat64(m.updates.WithLabelValues("todo", StatusFailed)), 1},
		{"unmounted", testutil.ToFloat64(m.updates.WithLabelValues("todo", StatusUnmounted)), 1},
		{"renders", testutil.ToFloat64(m.renders.WithLabelValues("todo")), 1},
		// One failed restore, one failed save.
		{"snapshot errors", testutil.ToFloat64(m.snapshotErrors.WithLabelValues("todo")), 2},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}

	n, err := testutil.GatherAndCount(reg, "test_host_update_duration_seconds")
	if err != nil {
		t.Fatalf("GatherAndCount: %v", err)
	}
	if n != 1 {
		t.Errorf("update_duration_seconds series = %d, want 1", n)
	}
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	m.recordUpdate("x", StatusApplied, time.Now())
	m.recordRender("x")
	m.setQueueDepth("x", 3)
	m.recordSnapshotError("x")
}
