package effect

import "errors"

// ErrPanic wraps a panic recovered while running an effect or an async
// registration.
var ErrPanic = errors.New("effect: panic")

// ErrNotCompleted is returned when the context ends before an async bridge
// was resolved or rejected. It wraps the context's error.
var ErrNotCompleted = errors.New("effect: async bridge not completed")

// ErrRejected is returned when an executor refuses work or an async bridge
// is rejected without a cause.
var ErrRejected = errors.New("effect: rejected")

// ErrClosed is returned by a Loop that has been closed.
var ErrClosed = errors.New("effect: loop closed")

// ErrQueueFull is returned by a Loop whose queue is at capacity.
var ErrQueueFull = errors.New("effect: loop queue full")
