package effect

import (
	"context"
	"fmt"
	"sync"

	"github.com/samber/mo"
)

// Async bridges a single-shot callback API into an Effect.
//
// register is called once per Run with resolve and reject. The first call to
// either completes the effect; later calls are dropped. Rejecting with a nil
// error counts as a rejection, so a failure never reaches the success path.
// A panic in register rejects the effect with ErrPanic.
//
// Run blocks until completion or until ctx is done. resolve and reject may be
// called from any goroutine, before or after register returns.
func Async[A any](register func(ctx context.Context, resolve func(A), reject func(error))) Effect[A] {
	return func(ctx context.Context) (A, error) {
		done := make(chan mo.Result[A], 1)
		var once sync.Once
		complete := func(r mo.Result[A]) {
			once.Do(func() { done <- r })
		}
		resolve := func(a A) { complete(mo.Ok(a)) }
		reject := func(err error) {
			if err == nil {
				err = fmt.Errorf("%w: nil error", ErrRejected)
			}
			complete(mo.Err[A](err))
		}

		func() {
			defer func() {
				if r := recover(); r != nil {
					reject(fmt.Errorf("%w: %v", ErrPanic, r))
				}
			}()
			register(ctx, resolve, reject)
		}()

		// A completion that already happened wins over a cancelled context.
		select {
		case r := <-done:
			return r.Get()
		default:
		}

		select {
		case r := <-done:
			return r.Get()
		case <-ctx.Done():
			var zero A
			return zero, fmt.Errorf("%w: %w", ErrNotCompleted, ctx.Err())
		}
	}
}
