package stream

import (
	"iter"
	"reflect"
	"sync"
	"time"
)

// Source produces values over time.
type Source[A any] interface {
	// Subscribe registers handler for future values. Calling the returned
	// function stops delivery; it is safe to call more than once.
	Subscribe(handler func(A)) (unsubscribe func())
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc[A any] func(handler func(A)) (unsubscribe func())

// Subscribe implements Source.
func (f SourceFunc[A]) Subscribe(handler func(A)) func() {
	return f(handler)
}

// Equivalence decides whether two values render the same.
type Equivalence[A any] func(a, b A) bool

// Equal compares with ==.
func Equal[A comparable]() Equivalence[A] {
	return func(a, b A) bool { return a == b }
}

// DeepEqual compares with reflect.DeepEqual.
func DeepEqual[A any]() Equivalence[A] {
	return func(a, b A) bool { return reflect.DeepEqual(a, b) }
}

// Never treats every value as new.
func Never[A any]() Equivalence[A] {
	return func(A, A) bool { return false }
}

// FromChan delivers the values received from ch until ch is closed or the
// subscription is cancelled. Each subscriber reads from ch, so several
// subscribers split its values between them.
func FromChan[A any](ch <-chan A) Source[A] {
	return SourceFunc[A](func(handler func(A)) func() {
		stop := make(chan struct{})
		var once sync.Once
		go func() {
			for {
				select {
				case <-stop:
					return
				case a, ok := <-ch:
					if !ok {
						return
					}
					handler(a)
				}
			}
		}()
		return func() { once.Do(func() { close(stop) }) }
	})
}

// FromSeq delivers the values of seq on a new goroutine, stopping early when
// the subscription is cancelled.
func FromSeq[A any](seq iter.Seq[A]) Source[A] {
	return SourceFunc[A](func(handler func(A)) func() {
		stop := make(chan struct{})
		var once sync.Once
		go func() {
			for a := range seq {
				select {
				case <-stop:
					return
				default:
				}
				handler(a)
			}
		}()
		return func() { once.Do(func() { close(stop) }) }
	})
}

// Every emits the current time every d until cancelled.
func Every(d time.Duration) Source[time.Time] {
	return SourceFunc[time.Time](func(handler func(time.Time)) func() {
		ticker := time.NewTicker(d)
		stop := make(chan struct{})
		var once sync.Once
		go func() {
			defer ticker.Stop()
			for {
				select {
				case <-stop:
					return
				case t := <-ticker.C:
					handler(t)
				}
			}
		}()
		return func() { once.Do(func() { close(stop) }) }
	})
}

// Topic is a Source that delivers published values to every subscriber.
// Publish calls handlers synchronously, in subscription order.
type Topic[A any] struct {
	mu     sync.RWMutex
	subs   []*subscription[A]
	closed bool
}

type subscription[A any] struct {
	handler func(A)
	active  bool
}

// NewTopic creates an empty topic.
func NewTopic[A any]() *Topic[A] {
	return &Topic[A]{}
}

// Subscribe implements Source.
func (t *Topic[A]) Subscribe(handler func(A)) func() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return func() {}
	}
	sub := &subscription[A]{handler: handler, active: true}
	t.subs = append(t.subs, sub)

	return func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		sub.active = false
		for i, s := range t.subs {
			if s == sub {
				t.subs = append(t.subs[:i:i], t.subs[i+1:]...)
				break
			}
		}
	}
}

// Publish delivers a to the current subscribers.
func (t *Topic[A]) Publish(a A) {
	t.mu.RLock()
	subs := make([]*subscription[A], len(t.subs))
	copy(subs, t.subs)
	t.mu.RUnlock()

	for _, sub := range subs {
		t.mu.RLock()
		active := sub.active
		t.mu.RUnlock()
		if active {
			sub.handler(a)
		}
	}
}

// Len returns the number of subscribers.
func (t *Topic[A]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.subs)
}

// Close drops every subscriber. Later subscriptions receive nothing.
func (t *Topic[A]) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, sub := range t.subs {
		sub.active = false
	}
	t.subs = nil
	t.closed = true
}
