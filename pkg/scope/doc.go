// Package scope owns mounted component state and turns messages, property
// changes and lifecycle events into scheduled units of work.
//
// A Scope is the handle a component uses to talk to itself: sending messages,
// building callbacks for event handlers, and scheduling lifecycle hooks. It
// never mutates component state synchronously. Every change is queued on a
// Scheduler as one of three units:
//
//   - Update applies a message, a message batch, new properties or a forced
//     render, and re-renders through the patch engine when the component asks.
//   - Rendered invokes the post-render hook once per render cycle.
//   - Destroy takes the state, tears the component down and detaches its tree.
//
// Units hold the scope's shared state cell. Once Destroy has run the cell is
// empty forever and any unit still queued for that component becomes a no-op.
//
// # Defining a component
//
//	type counter struct {
//	    scope.Base[int, bool]
//	    count int
//	}
//
//	func (c *counter) Update(inc bool) bool {
//	    if inc {
//	        c.count++
//	    }
//	    return inc
//	}
//
//	func (c *counter) Render() scope.VNode { ... }
//
//	var Counter = scope.NewKind("counter", func(start int, s *scope.Scope[int, bool]) scope.Component[int, bool] {
//	    return &counter{count: start}
//	})
//
// # Mounting
//
//	s := scope.New(Counter, nil)
//	s.MountInPlace(anchor, nil, noderef.New(), 0)
//	s.SendMessage(true)
//
// # Reentrancy
//
// The state cell is not guarded by a lock. Units run one at a time on the
// scheduler, and a hook that reaches back into its own cell synchronously
// (for example by mounting the same scope again from Update) panics with a
// contract violation. Sending messages from hooks is always safe because it
// only queues work.
package scope
