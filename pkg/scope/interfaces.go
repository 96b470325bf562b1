package scope

import (
	"github.com/go-drift/vscope/pkg/noderef"
	"github.com/go-drift/vscope/pkg/scheduler"
)

// Node is a concrete DOM node produced by the patch engine.
type Node = noderef.Node

// Element is the DOM element a component renders under.
type Element = any

// Component is the capability set of a mountable component with properties
// P and messages M.
type Component[P, M any] interface {
	// Update applies a message and reports whether to re-render.
	Update(msg M) bool
	// Change applies new properties and reports whether to re-render.
	Change(props P) bool
	// Render builds the virtual tree for the current state.
	Render() VNode
	// Rendered is called after a render cycle has been applied.
	Rendered(firstRender bool)
	// Teardown releases resources before the component is discarded.
	Teardown()
}

// VNode is a virtual tree as seen by the patch engine.
type VNode interface {
	// Apply reconciles the tree against previous under anchor and returns the
	// concrete node it produced, or nil when it produced none yet.
	Apply(parent *AnyScope, anchor Element, sibling Node, previous VNode) Node
	// Detach removes the tree from anchor, releasing nested nodes and components.
	Detach(anchor Element)
}

// ComponentNode is a VNode that stands for a nested component. Its node is
// resolved asynchronously through NodeRef once the child renders.
type ComponentNode interface {
	VNode
	NodeRef() *noderef.Ref
}

// Scheduler accepts units of component work. *scheduler.Scheduler
// implements it.
type Scheduler interface {
	Push(id scheduler.ComponentID, class scheduler.QueueClass, unit scheduler.Runnable)
	NextComponentID() scheduler.ComponentID
}

var _ Scheduler = (*scheduler.Scheduler)(nil)
