package effect

import (
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
)

// DefaultQueueSize is the task buffer of a Loop created without WithQueueSize.
const DefaultQueueSize = 256

// Task is a unit of work for a Loop. Cancel, if set, is called instead of Run
// when the loop closes before the task ran.
type Task struct {
	Run    func()
	Cancel func(err error)
}

// Loop is a single-goroutine executor. Tasks run one at a time in submission
// order. A panicking task is logged and does not stop the loop.
type Loop struct {
	name   string
	logger *slog.Logger
	tasks  chan Task

	// mu orders Submit against Close so no task is queued after close.
	mu        sync.RWMutex
	closed    atomic.Bool
	done      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once

	panics atomic.Int64
}

// LoopOption configures a Loop.
type LoopOption func(*loopConfig)

type loopConfig struct {
	name      string
	logger    *slog.Logger
	queueSize int
}

// WithLoopName sets the name used in log records.
func WithLoopName(name string) LoopOption {
	return func(c *loopConfig) {
		c.name = name
	}
}

// WithLoopLogger sets the loop's logger. Default: slog.Default().
func WithLoopLogger(logger *slog.Logger) LoopOption {
	return func(c *loopConfig) {
		c.logger = logger
	}
}

// WithQueueSize sets the task buffer size. Default: DefaultQueueSize.
func WithQueueSize(n int) LoopOption {
	return func(c *loopConfig) {
		c.queueSize = n
	}
}

// NewLoop creates a loop and starts its goroutine.
func NewLoop(opts ...LoopOption) *Loop {
	cfg := loopConfig{
		name:      "loop",
		queueSize: DefaultQueueSize,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	if cfg.queueSize <= 0 {
		cfg.queueSize = DefaultQueueSize
	}

	l := &Loop{
		name:    cfg.name,
		logger:  cfg.logger.With("component", cfg.name),
		tasks:   make(chan Task, cfg.queueSize),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go l.run()
	return l
}

// Submit queues t. It never blocks: a full queue returns ErrQueueFull and a
// closed loop returns ErrClosed. In both cases t is not run or cancelled.
func (l *Loop) Submit(t Task) error {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.closed.Load() {
		return ErrClosed
	}
	select {
	case l.tasks <- t:
		return nil
	default:
		l.logger.Warn("loop queue full, rejecting task")
		return ErrQueueFull
	}
}

// Dispatch implements Executor.
func (l *Loop) Dispatch(fn func()) error {
	return l.Submit(Task{Run: fn})
}

// Len returns the number of queued tasks.
func (l *Loop) Len() int {
	return len(l.tasks)
}

// Panics returns the number of task panics recovered so far.
func (l *Loop) Panics() int64 {
	return l.panics.Load()
}

// Close stops the loop after the running task, if any. Queued tasks are
// cancelled with ErrClosed on the loop goroutine. Close does not wait; use
// Stopped for that. Calling Close more than once is safe.
func (l *Loop) Close() {
	l.closeOnce.Do(func() {
		l.mu.Lock()
		l.closed.Store(true)
		close(l.done)
		l.mu.Unlock()
	})
}

// Closed reports whether Close has been called.
func (l *Loop) Closed() bool {
	return l.closed.Load()
}

// Stopped is closed once the loop goroutine has exited and every queued task
// was cancelled.
func (l *Loop) Stopped() <-chan struct{} {
	return l.stopped
}

func (l *Loop) run() {
	defer close(l.stopped)
	for {
		// Close takes priority over tasks that are already queued.
		select {
		case <-l.done:
			l.drain()
			return
		default:
		}

		select {
		case t := <-l.tasks:
			l.execute(t)
		case <-l.done:
			l.drain()
			return
		}
	}
}

// drain cancels the tasks left in the queue. Submit cannot add more once
// done is closed.
func (l *Loop) drain() {
	for {
		select {
		case t := <-l.tasks:
			if t.Cancel != nil {
				t.Cancel(ErrClosed)
			}
		default:
			return
		}
	}
}

func (l *Loop) execute(t Task) {
	defer func() {
		if r := recover(); r != nil {
			l.panics.Add(1)
			l.logger.Error("task panic",
				"panic", r,
				"stack", string(debug.Stack()))
		}
	}()
	if t.Run != nil {
		t.Run()
	}
}
