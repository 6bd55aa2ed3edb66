// Package debounce delays propagation of a changing value until it has
// remained unchanged for a fixed quiescence window.
package debounce

import (
	"sync"
	"time"
)

// Debouncer exposes the last value that stayed stable for at least the
// configured delay. Every Set cancels the pending emission and restarts the
// window; Set does not compare values, so setting an equal value still
// restarts the timer. A zero delay emits on the next timer tick, never
// synchronously from Set.
type Debouncer[T any] struct {
	mu      sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	value   T
	subs    []func(T)
	stopped bool
}

// New creates a Debouncer whose initial debounced value is the initial
// input value, with no delay applied to it.
func New[T any](initial T, delay time.Duration) *Debouncer[T] {
	return &Debouncer[T]{
		delay: delay,
		value: initial,
	}
}

// Set feeds a new input value, restarting the quiescence window
func (d *Debouncer[T]) Set(v T) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, func() {
		d.emit(v)
	})
}

// Value returns the current debounced value
func (d *Debouncer[T]) Value() T {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.value
}

// Subscribe registers a callback invoked with every emitted value.
// Callbacks run on the timer goroutine, outside the debouncer's lock.
func (d *Debouncer[T]) Subscribe(fn func(T)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.subs = append(d.subs, fn)
}

// Stop cancels any pending emission. No value is emitted and no subscriber
// runs after Stop returns; further Set calls are ignored.
func (d *Debouncer[T]) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

func (d *Debouncer[T]) emit(v T) {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.value = v
	subs := make([]func(T), len(d.subs))
	copy(subs, d.subs)
	d.mu.Unlock()

	for _, fn := range subs {
		fn(v)
	}
}
