package scope

import "sync"

// Base provides default Change, Rendered and Teardown hooks. Embed it in a
// component so only Update and Render need writing.
//
//	type clock struct {
//	    scope.Base[Props, Msg]
//	    ticker *time.Ticker
//	}
//
//	func (c *clock) start() {
//	    c.ticker = time.NewTicker(time.Second)
//	    c.OnTeardown(c.ticker.Stop)
//	}
type Base[P, M any] struct {
	mu       sync.Mutex
	cleanups []func()
	tornDown bool
}

// Change accepts new properties and always asks to re-render.
func (b *Base[P, M]) Change(P) bool {
	return true
}

// Rendered is a no-op.
func (b *Base[P, M]) Rendered(bool) {}

// OnTeardown registers cleanup to run at teardown and returns a function
// that unregisters it. Registering after teardown runs cleanup immediately.
func (b *Base[P, M]) OnTeardown(cleanup func()) func() {
	if cleanup == nil {
		return func() {}
	}

	b.mu.Lock()
	if b.tornDown {
		b.mu.Unlock()
		cleanup()
		return func() {}
	}
	index := len(b.cleanups)
	b.cleanups = append(b.cleanups, cleanup)
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if index < len(b.cleanups) {
			b.cleanups[index] = nil
		}
	}
}

// Teardown runs registered cleanups in reverse order of registration.
// Components overriding Teardown should call b.Base.Teardown().
// Cleanups run without the lock held and may call back into b.
func (b *Base[P, M]) Teardown() {
	b.mu.Lock()
	if b.tornDown {
		b.mu.Unlock()
		return
	}
	b.tornDown = true
	cleanups := b.cleanups
	b.cleanups = nil
	b.mu.Unlock()

	for i := len(cleanups) - 1; i >= 0; i-- {
		if cleanups[i] != nil {
			cleanups[i]()
		}
	}
}

// IsTornDown reports whether Teardown has run.
func (b *Base[P, M]) IsTornDown() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.tornDown
}
