// Package effect provides the deferred-computation type the view layer is
// generic over.
//
// An Effect[A] is a function from a context to an A or an error. Nothing runs
// until Run is called, so effects can be built, combined and passed around
// freely:
//
//	save := effect.Then(v.Set(draft), effect.Lift(func() { log.Println("saved") }))
//	if _, err := save.Run(ctx); err != nil {
//	    ...
//	}
//
// # Sequencing
//
// Pure and Fail lift values and errors. Bind, Map and Then sequence effects.
// Noop is the unit action.
//
// # Async bridge
//
// Async turns a callback-style API into an Effect. The registration function
// receives resolve and reject; whichever is called first wins and every later
// call is dropped:
//
//	eff := effect.Async(func(ctx context.Context, resolve func(int), reject func(error)) {
//	    client.Fetch(func(n int, err error) {
//	        if err != nil {
//	            reject(err)
//	            return
//	        }
//	        resolve(n)
//	    })
//	})
//
// # Executors
//
// An Executor runs callbacks on some execution context, such as a component's
// update loop. Shift runs an effect on an executor and waits for the result.
//
// Effects never retry and never time out on their own. Bound them with
// context.WithTimeout.
package effect
