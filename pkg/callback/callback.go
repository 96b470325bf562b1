// Package callback provides function values that external code, typically
// DOM event handlers, invokes to feed input back into a component.
package callback

import (
	"sync/atomic"

	"github.com/go-drift/vscope/pkg/errors"
)

// Callback wraps a function of one argument. A one-shot Callback may be
// emitted at most once; emitting it again is a contract violation.
// The zero Callback is valid and does nothing.
type Callback[T any] struct {
	fn    func(T)
	once  bool
	spent *atomic.Bool
}

// New wraps fn in a Callback that may be emitted any number of times.
func New[T any](fn func(T)) Callback[T] {
	return Callback[T]{fn: fn}
}

// Once wraps fn in a Callback that may be emitted at most once.
// Copies of the returned Callback share the spent state.
func Once[T any](fn func(T)) Callback[T] {
	return Callback[T]{fn: fn, once: true, spent: new(atomic.Bool)}
}

// Noop returns a Callback that ignores its input.
func Noop[T any]() Callback[T] {
	return Callback[T]{}
}

// Emit invokes the callback with value.
func (c Callback[T]) Emit(value T) {
	if c.fn == nil {
		return
	}
	if c.once && !c.spent.CompareAndSwap(false, true) {
		errors.Violation("callback.Emit", errors.ErrCallbackSpent, "")
	}
	c.fn(value)
}

// IsOnce reports whether the callback is one-shot.
func (c Callback[T]) IsOnce() bool {
	return c.once
}

// IsSpent reports whether a one-shot callback has already been emitted.
func (c Callback[T]) IsSpent() bool {
	return c.once && c.spent.Load()
}

// Func returns the callback as a plain function, suitable for event listeners.
func (c Callback[T]) Func() func(T) {
	return c.Emit
}

// Reform adapts cb to a different input type by transforming each input
// with fn first. A one-shot cb still rejects a second emit.
func Reform[In, T any](cb Callback[T], fn func(In) T) Callback[In] {
	return New(func(in In) { cb.Emit(fn(in)) })
}
