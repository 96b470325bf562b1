// Package scheduler runs deferred component work one unit at a time.
//
// Work is pushed into one of several queue classes and drained by Flush.
// Each Flush pass repeatedly takes the oldest unit from the highest-priority
// non-empty class, in the order Destroy, Update, Render, Rendered, Main.
// Units run to completion with no preemption; a Flush started from inside a
// running unit returns immediately and the outer pass picks up the new work.
//
// Push and Dispatch are safe to call from any goroutine. Execution is not
// concurrent: a single running flag guarantees that at most one unit is active
// on a Scheduler at any time.
//
//	s := scheduler.New(scheduler.WithMaxUnitsPerFlush(10_000))
//	s.Push(id, scheduler.ClassUpdate, unit)
//	s.Flush()
package scheduler
