package scope

import (
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/go-drift/vscope/pkg/errors"
	"github.com/go-drift/vscope/pkg/noderef"
	"github.com/go-drift/vscope/pkg/scheduler"
)

// componentState is the record of a mounted component.
type componentState[P, M any] struct {
	anchor    Element
	nodeRef   *noderef.Ref
	scope     *Scope[P, M]
	component Component[P, M]
	lastRoot  VNode
	rendered  bool
}

// cell is the shared, optionally empty holder of a componentState. It is
// shared by a scope, its clones and every queued unit. state is nil exactly
// when the component is not mounted.
type cell[P, M any] struct {
	name string
	id   scheduler.ComponentID

	state    *componentState[P, M]
	borrowed bool

	// destroyed is set when Destroy is called, before the unit runs, and
	// forbids any further scheduling through the scope.
	destroyed atomic.Bool
}

func (c *cell[P, M]) mounted() bool {
	return c.state != nil
}

// borrow grants exclusive access for the duration of fn. fn receives nil
// when the cell is empty.
func (c *cell[P, M]) borrow(op string, fn func(st *componentState[P, M])) {
	if c.borrowed {
		errors.Violation(op, errors.ErrReentrantBorrow, c.name)
	}
	c.borrowed = true
	defer func() { c.borrowed = false }()
	fn(c.state)
}

// withState runs fn on the mounted state, or logs a stale skip when the
// component is gone.
func (c *cell[P, M]) withState(op string, fn func(st *componentState[P, M])) {
	c.borrow(op, func(st *componentState[P, M]) {
		if st == nil {
			Logger().Debug("stale unit skipped",
				zap.String("op", op),
				zap.String("kind", c.name),
				zap.Uint64("component", uint64(c.id)))
			return
		}
		fn(st)
	})
}

// apply mutates the component according to u and reports whether it asked
// to render.
func (st *componentState[P, M]) apply(u Update[P, M]) bool {
	switch u.Kind {
	case UpdateForce:
		return true
	case UpdateMessage:
		return st.component.Update(u.Message)
	case UpdateMessageBatch:
		// Every message is applied even after one asks to render.
		shouldRender := false
		for _, msg := range u.Batch {
			if st.component.Update(msg) {
				shouldRender = true
			}
		}
		return shouldRender
	case UpdateProperties:
		if u.NodeRef != nil {
			u.NodeRef.Link(st.nodeRef)
		}
		return st.component.Change(u.Props)
	default:
		return false
	}
}

// render builds a new tree, hands it to the patch engine and resolves the
// component's node reference.
func (st *componentState[P, M]) render() {
	st.rendered = false
	root := st.component.Render()
	last := st.lastRoot
	st.lastRoot = nil
	if root == nil {
		if last != nil {
			last.Detach(st.anchor)
		}
		st.nodeRef.Set(nil)
		return
	}
	if node := root.Apply(st.scope.AsAny(), st.anchor, nil, last); node != nil {
		st.nodeRef.Set(node)
	} else if child, ok := root.(ComponentNode); ok {
		// The child renders later; forward to its reference until it does.
		st.nodeRef.Link(child.NodeRef())
	}
	st.lastRoot = root
}
