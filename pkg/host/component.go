package host

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/vango-dev/viewkit/pkg/effect"
	"github.com/vango-dev/viewkit/pkg/snapshot"
)

// Option configures a Component.
type Option func(*config)

type config struct {
	logger          *slog.Logger
	queueSize       int
	metrics         *Metrics
	store           snapshot.Store
	snapshotKey     string
	snapshotTimeout time.Duration
}

// WithLogger sets the component's logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithQueueSize sets how many updates may wait in the queue.
// Default: effect.DefaultQueueSize.
func WithQueueSize(n int) Option {
	return func(c *config) {
		c.queueSize = n
	}
}

// WithMetrics records the component's activity in m.
func WithMetrics(m *Metrics) Option {
	return func(c *config) {
		c.metrics = m
	}
}

// WithSnapshots restores the initial state from store under key, if present,
// and saves the state there after every applied update.
func WithSnapshots(store snapshot.Store, key string) Option {
	return func(c *config) {
		c.store = store
		c.snapshotKey = key
	}
}

// WithSnapshotTimeout bounds each snapshot load and save. Default: 5s.
func WithSnapshotTimeout(d time.Duration) Option {
	return func(c *config) {
		c.snapshotTimeout = d
	}
}

// Component owns a value of type S and serializes every change to it.
type Component[S any] struct {
	name    string
	logger  *slog.Logger
	metrics *Metrics
	loop    *effect.Loop

	// mu protects state and version. Only the loop goroutine writes them.
	mu      sync.RWMutex
	state   S
	version uint64

	// equal decides whether an update changed the state. Nil means every
	// update counts as a change.
	equal func(S, S) bool

	subMu   sync.RWMutex
	subs    map[uint64]func(S)
	nextSub uint64

	store           snapshot.Store
	snapshotKey     string
	snapshotTimeout time.Duration

	unmounted atomic.Bool
}

// New creates a component holding initial and starts its update loop.
func New[S any](name string, initial S, opts ...Option) *Component[S] {
	cfg := config{
		queueSize:       effect.DefaultQueueSize,
		snapshotTimeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}

	c := &Component[S]{
		name:            name,
		logger:          cfg.logger.With("component", name),
		metrics:         cfg.metrics,
		state:           initial,
		subs:            make(map[uint64]func(S)),
		store:           cfg.store,
		snapshotKey:     cfg.snapshotKey,
		snapshotTimeout: cfg.snapshotTimeout,
	}
	c.restore()
	c.loop = effect.NewLoop(
		effect.WithLoopName(name),
		effect.WithLoopLogger(cfg.logger),
		effect.WithQueueSize(cfg.queueSize),
	)
	return c
}

// WithEquals sets the function used to decide whether an update changed the
// state. Unchanged updates complete without re-rendering or saving a
// snapshot. It must be called before the first Update.
func (c *Component[S]) WithEquals(fn func(S, S) bool) *Component[S] {
	c.equal = fn
	return c
}

// Name returns the component's name.
func (c *Component[S]) Name() string {
	return c.name
}

// State returns the current state.
func (c *Component[S]) State() S {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Version returns how many updates changed the state so far.
func (c *Component[S]) Version() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.version
}

// Update queues f. Once f was applied, subscribers were notified and the
// snapshot was saved, done receives the new state. If f panics, or the
// component is unmounted or its queue full, done receives the zero value and
// an error. done runs exactly once and may be nil.
func (c *Component[S]) Update(f func(S) S, done func(S, error)) {
	finish := finishOnce(done)
	start := time.Now()

	err := c.loop.Submit(effect.Task{
		Run: func() { c.apply(f, finish, start) },
		Cancel: func(error) {
			c.metrics.recordUpdate(c.name, StatusUnmounted, start)
			c.logger.Debug("dropping queued update after unmount")
			var zero S
			finish(zero, ErrUnmounted)
		},
	})
	if err != nil {
		err = c.submitError(err)
		status := StatusUnmounted
		if errors.Is(err, ErrQueueFull) {
			status = StatusQueueFull
		}
		c.metrics.recordUpdate(c.name, status, start)
		var zero S
		finish(zero, err)
		return
	}
	c.metrics.setQueueDepth(c.name, c.loop.Len())
}

// UpdateContext is Update for callers that may already run on the update
// goroutine. When ctx comes from an effect shifted onto c, f is applied
// before UpdateContext returns instead of being queued behind the running
// task, which would be waiting for it.
func (c *Component[S]) UpdateContext(ctx context.Context, f func(S) S, done func(S, error)) {
	if !effect.On(ctx, c) {
		c.Update(f, done)
		return
	}

	finish := finishOnce(done)
	start := time.Now()
	if c.unmounted.Load() {
		c.metrics.recordUpdate(c.name, StatusUnmounted, start)
		var zero S
		finish(zero, ErrUnmounted)
		return
	}
	c.apply(f, finish, start)
}

func finishOnce[S any](done func(S, error)) func(S, error) {
	var once sync.Once
	return func(s S, err error) {
		once.Do(func() {
			if done != nil {
				done(s, err)
			}
		})
	}
}

// Dispatch runs fn on the update goroutine, ordered with updates.
// It implements effect.Executor.
func (c *Component[S]) Dispatch(fn func()) error {
	if err := c.loop.Dispatch(fn); err != nil {
		return c.submitError(err)
	}
	return nil
}

// Subscribe registers fn to be called with the new state after every update
// that changed it. The returned function removes the subscription.
func (c *Component[S]) Subscribe(fn func(S)) (unsubscribe func()) {
	c.subMu.Lock()
	c.nextSub++
	id := c.nextSub
	c.subs[id] = fn
	c.subMu.Unlock()

	return func() {
		c.subMu.Lock()
		delete(c.subs, id)
		c.subMu.Unlock()
	}
}

// Unmount stops the update loop. Queued updates complete with ErrUnmounted.
// Calling Unmount more than once is safe.
func (c *Component[S]) Unmount() {
	if c.unmounted.Swap(true) {
		return
	}
	c.loop.Close()
	c.logger.Debug("component unmounted")
}

// Unmounted reports whether Unmount has been called.
func (c *Component[S]) Unmounted() bool {
	return c.unmounted.Load()
}

// Done is closed once the update loop has exited after Unmount.
func (c *Component[S]) Done() <-chan struct{} {
	return c.loop.Stopped()
}

func (c *Component[S]) submitError(err error) error {
	switch {
	case errors.Is(err, effect.ErrQueueFull):
		return ErrQueueFull
	case errors.Is(err, effect.ErrClosed):
		return ErrUnmounted
	default:
		return err
	}
}

// apply runs on the loop goroutine.
func (c *Component[S]) apply(f func(S) S, finish func(S, error), start time.Time) {
	defer c.metrics.setQueueDepth(c.name, c.loop.Len())

	old := c.State()
	next, err := c.call(f, old)
	if err != nil {
		c.metrics.recordUpdate(c.name, StatusFailed, start)
		var zero S
		finish(zero, err)
		return
	}

	if c.equal != nil && c.equal(old, next) {
		c.metrics.recordUpdate(c.name, StatusUnchanged, start)
		finish(next, nil)
		return
	}

	c.mu.Lock()
	c.state = next
	c.version++
	c.mu.Unlock()

	c.save(next)
	c.render(next)
	c.metrics.recordUpdate(c.name, StatusApplied, start)
	finish(next, nil)
}

func (c *Component[S]) call(f func(S) S, s S) (next S, err error) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("update panic",
				"panic", r,
				"stack", string(debug.Stack()))
			err = fmt.Errorf("%w: %v", ErrMutationPanic, r)
		}
	}()
	return f(s), nil
}

// render notifies subscribers. A panicking subscriber is logged and skipped.
func (c *Component[S]) render(s S) {
	c.subMu.RLock()
	subs := make([]func(S), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	c.subMu.RUnlock()

	c.metrics.recordRender(c.name)
	for _, fn := range subs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					c.logger.Error("render subscriber panic",
						"panic", r,
						"stack", string(debug.Stack()))
				}
			}()
			fn(s)
		}()
	}
}

// save writes a snapshot. Failures are logged; the in-memory state stands.
func (c *Component[S]) save(s S) {
	if c.store == nil {
		return
	}
	data, err := snapshot.Encode(s)
	if err == nil {
		ctx, cancel := context.WithTimeout(context.Background(), c.snapshotTimeout)
		err = c.store.Save(ctx, c.snapshotKey, data)
		cancel()
	}
	if err != nil {
		c.metrics.recordSnapshotError(c.name)
		c.logger.Warn("snapshot save failed", "key", c.snapshotKey, "error", err)
	}
}

// restore replaces the initial state with the stored snapshot, if any.
func (c *Component[S]) restore() {
	if c.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), c.snapshotTimeout)
	defer cancel()

	data, err := c.store.Load(ctx, c.snapshotKey)
	if errors.Is(err, snapshot.ErrNotFound) {
		return
	}
	if err == nil {
		var s S
		if s, err = snapshot.Decode[S](data); err == nil {
			c.state = s
			c.logger.Debug("state restored from snapshot", "key", c.snapshotKey)
			return
		}
	}
	c.metrics.recordSnapshotError(c.name)
	c.logger.Warn("snapshot restore failed", "key", c.snapshotKey, "error", err)
}
