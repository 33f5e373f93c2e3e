package effect

import "context"

// Monad operations for effects.
//
// Bind and Pure are sufficient; Map and Then skip the intermediate closure.

// Bind sequences two effects (monadic bind).
// It runs m, then passes the result to f and runs the effect f returns.
// A failure of m short-circuits.
func Bind[A, B any](m Effect[A], f func(A) Effect[B]) Effect[B] {
	return func(ctx context.Context) (B, error) {
		a, err := m.Run(ctx)
		if err != nil {
			var zero B
			return zero, err
		}
		return f(a).Run(ctx)
	}
}

// Map applies a pure function to the result of an effect.
func Map[A, B any](m Effect[A], f func(A) B) Effect[B] {
	return func(ctx context.Context) (B, error) {
		a, err := m.Run(ctx)
		if err != nil {
			var zero B
			return zero, err
		}
		return f(a), nil
	}
}

// Then sequences two effects, discarding the first result.
func Then[A, B any](m Effect[A], n Effect[B]) Effect[B] {
	return func(ctx context.Context) (B, error) {
		if _, err := m.Run(ctx); err != nil {
			var zero B
			return zero, err
		}
		return n.Run(ctx)
	}
}

// Sequence runs unit effects in order and stops at the first failure.
func Sequence(effects ...Unit) Unit {
	return func(ctx context.Context) (struct{}, error) {
		for _, e := range effects {
			if _, err := e.Run(ctx); err != nil {
				return struct{}{}, err
			}
		}
		return struct{}{}, nil
	}
}

// Recover turns a failure of m into the effect produced by handler.
// The view layer never recovers on its own; this exists for callers.
func Recover[A any](m Effect[A], handler func(error) Effect[A]) Effect[A] {
	return func(ctx context.Context) (A, error) {
		a, err := m.Run(ctx)
		if err != nil {
			return handler(err).Run(ctx)
		}
		return a, nil
	}
}
