package effect

import (
	"context"
	"fmt"
	"reflect"
)

// Executor runs callbacks on an execution context it controls, such as a
// component's update loop.
//
// Dispatch must not run fn more than once. It returns an error when fn was
// not accepted, in which case fn never runs.
type Executor interface {
	Dispatch(fn func()) error
}

// ExecutorFunc adapts a function to the Executor interface.
type ExecutorFunc func(fn func()) error

// Dispatch implements Executor.
func (f ExecutorFunc) Dispatch(fn func()) error {
	return f(fn)
}

// Immediate runs callbacks inline on the calling goroutine.
var Immediate Executor = ExecutorFunc(func(fn func()) error {
	fn()
	return nil
})

// Goroutine runs each callback on a new goroutine.
var Goroutine Executor = ExecutorFunc(func(fn func()) error {
	go fn()
	return nil
})

// Shift runs e on exec and waits for its outcome. A nil exec runs e inline.
//
// The context e runs with records exec, so a Shift onto the same executor
// nested inside e runs inline instead of queueing behind its own caller.
// Outside of Shift, waiting on a serial executor from its own goroutine
// still deadlocks.
func Shift[A any](exec Executor, e Effect[A]) Effect[A] {
	if exec == nil {
		return e
	}
	shifted := Async(func(ctx context.Context, resolve func(A), reject func(error)) {
		err := exec.Dispatch(func() {
			a, err := e.Run(context.WithValue(ctx, executorKey{}, exec))
			if err != nil {
				reject(err)
				return
			}
			resolve(a)
		})
		if err != nil {
			reject(fmt.Errorf("%w: %w", ErrRejected, err))
		}
	})
	return func(ctx context.Context) (A, error) {
		if On(ctx, exec) {
			return e.Run(ctx)
		}
		return shifted.Run(ctx)
	}
}

type executorKey struct{}

// On reports whether ctx belongs to an effect that Shift is running on exec.
// Hosts use it to recognize calls made from their own update goroutine.
// Go clears the mark, so effects it starts elsewhere are never mistaken for
// work on exec.
func On(ctx context.Context, exec Executor) bool {
	if ctx == nil || exec == nil {
		return false
	}
	cur, ok := ctx.Value(executorKey{}).(Executor)
	return ok && sameExecutor(cur, exec)
}

// sameExecutor compares executors without panicking on uncomparable
// dynamic types such as ExecutorFunc.
func sameExecutor(a, b Executor) bool {
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	return a == b
}
