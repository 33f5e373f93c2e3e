package host

import "errors"

// ErrUnmounted is returned for updates submitted to, or still queued in, an
// unmounted component.
var ErrUnmounted = errors.New("host: component unmounted")

// ErrQueueFull is returned when the update queue is at capacity.
var ErrQueueFull = errors.New("host: update queue full")

// ErrMutationPanic wraps a panic raised by an update function. The state is
// left unchanged.
var ErrMutationPanic = errors.New("host: update function panicked")
