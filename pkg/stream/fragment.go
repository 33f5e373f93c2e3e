package stream

import (
	"errors"
	"log/slog"
	"runtime/debug"
	"sync"

	"github.com/vango-dev/viewkit/pkg/effect"
	"github.com/vango-dev/viewkit/pkg/vdom"
)

// ErrAlreadyMounted is returned by Mount on a fragment that was mounted
// before, including one that has since been unmounted.
var ErrAlreadyMounted = errors.New("stream: fragment already mounted")

// Option configures a Fragment.
type Option func(*config)

type config struct {
	placeholder *vdom.VNode
	logger      *slog.Logger
	name        string
}

// WithPlaceholder sets the node rendered before the first value arrives.
// Default: an empty fragment.
func WithPlaceholder(node *vdom.VNode) Option {
	return func(c *config) {
		c.placeholder = node
	}
}

// WithLogger sets the fragment's logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithName sets the name used in log records. Default: "stream".
func WithName(name string) Option {
	return func(c *config) {
		c.name = name
	}
}

// Fragment renders the latest value of a Source.
//
// After Mount, every value the source emits replaces a single pending slot,
// and one flush at a time is scheduled on the executor. The flush takes the
// pending value: if it is equivalent to the last rendered one it is dropped,
// otherwise it is rendered once and replaces the current node. Values
// overwritten before a flush ran are never rendered, so a burst costs one
// task and ends on its newest value. Fragment implements vdom.Component, so
// it can be embedded in a larger tree.
type Fragment[A any] struct {
	src    Source[A]
	eq     Equivalence[A]
	render func(A) *vdom.VNode
	logger *slog.Logger

	mu          sync.Mutex
	exec        effect.Executor
	node        *vdom.VNode
	last        A
	hasLast     bool
	pending     A
	hasPending  bool
	scheduled   bool
	renders     int
	mounted     bool
	unmounted   bool
	unsubscribe func()
	listeners   map[uint64]func(*vdom.VNode)
	nextID      uint64
}

// New creates an unmounted fragment. eq may be nil, in which case every
// value is rendered.
func New[A any](src Source[A], eq Equivalence[A], render func(A) *vdom.VNode, opts ...Option) *Fragment[A] {
	cfg := config{name: "stream"}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	if cfg.placeholder == nil {
		cfg.placeholder = vdom.Fragment()
	}
	if eq == nil {
		eq = Never[A]()
	}

	return &Fragment[A]{
		src:       src,
		eq:        eq,
		render:    render,
		logger:    cfg.logger.With("component", cfg.name),
		node:      cfg.placeholder,
		listeners: make(map[uint64]func(*vdom.VNode)),
	}
}

// Mount subscribes to the source. Values are processed on exec; a nil exec
// processes them on the source's goroutine.
func (f *Fragment[A]) Mount(exec effect.Executor) error {
	if exec == nil {
		exec = effect.Immediate
	}

	f.mu.Lock()
	if f.mounted {
		f.mu.Unlock()
		return ErrAlreadyMounted
	}
	f.mounted = true
	f.exec = exec
	f.mu.Unlock()

	unsubscribe := f.src.Subscribe(f.offer)

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.unmounted {
		// Unmount ran while Subscribe was in progress.
		unsubscribe()
		return nil
	}
	f.unsubscribe = unsubscribe
	return nil
}

// Unmount cancels the subscription. Values still in flight are dropped.
// Calling Unmount more than once is safe.
func (f *Fragment[A]) Unmount() {
	f.mu.Lock()
	if f.unmounted {
		f.mu.Unlock()
		return
	}
	f.unmounted = true
	unsubscribe := f.unsubscribe
	f.unsubscribe = nil
	var zero A
	f.pending, f.hasPending = zero, false
	f.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	f.logger.Debug("stream fragment unmounted")
}

// Render implements vdom.Component. It returns the node rendered for the
// latest accepted value, or the placeholder.
func (f *Fragment[A]) Render() *vdom.VNode {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.node
}

// Renders returns how many values were rendered.
func (f *Fragment[A]) Renders() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.renders
}

// OnRender registers fn to be called with every newly rendered node.
// The returned function removes the registration.
func (f *Fragment[A]) OnRender(fn func(*vdom.VNode)) (cancel func()) {
	f.mu.Lock()
	f.nextID++
	id := f.nextID
	f.listeners[id] = fn
	f.mu.Unlock()

	return func() {
		f.mu.Lock()
		delete(f.listeners, id)
		f.mu.Unlock()
	}
}

// offer stores a as the pending value and schedules a flush unless one is
// already scheduled or running.
func (f *Fragment[A]) offer(a A) {
	f.mu.Lock()
	if f.unmounted {
		f.mu.Unlock()
		return
	}
	f.pending, f.hasPending = a, true
	if f.scheduled {
		f.mu.Unlock()
		return
	}
	f.scheduled = true
	f.mu.Unlock()

	f.schedule()
}

// schedule dispatches a flush. If the executor refuses it, the pending value
// waits for the next emission.
func (f *Fragment[A]) schedule() {
	if err := f.exec.Dispatch(f.flush); err != nil {
		f.mu.Lock()
		f.scheduled = false
		f.mu.Unlock()
		f.logger.Debug("stream flush not scheduled", "error", err)
	}
}

// flush runs on the executor. At most one flush is scheduled or running at a
// time, so renders never overlap even on a concurrent executor.
func (f *Fragment[A]) flush() {
	f.mu.Lock()
	if f.unmounted || !f.hasPending {
		f.scheduled = false
		f.mu.Unlock()
		return
	}
	a := f.pending
	var zero A
	f.pending, f.hasPending = zero, false
	skip := f.hasLast && f.eq(f.last, a)
	f.mu.Unlock()

	var listeners []func(*vdom.VNode)
	var node *vdom.VNode
	if !skip {
		var ok bool
		node, ok = f.renderValue(a)
		f.mu.Lock()
		if ok && !f.unmounted {
			f.last = a
			f.hasLast = true
			f.node = node
			f.renders++
			listeners = make([]func(*vdom.VNode), 0, len(f.listeners))
			for _, fn := range f.listeners {
				listeners = append(listeners, fn)
			}
		}
		f.mu.Unlock()
	}

	for _, fn := range listeners {
		fn(node)
	}

	// Values that arrived meanwhile get a fresh task so the executor can
	// interleave other work.
	f.mu.Lock()
	again := f.hasPending && !f.unmounted
	if !again {
		f.scheduled = false
	}
	f.mu.Unlock()
	if again {
		f.schedule()
	}
}

// renderValue calls the render function. A panic is logged and reported as
// not ok, leaving the previous node in place.
func (f *Fragment[A]) renderValue(a A) (node *vdom.VNode, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			f.logger.Error("stream render panic",
				"panic", r,
				"stack", string(debug.Stack()))
			node, ok = nil, false
		}
	}()
	return f.render(a), true
}
