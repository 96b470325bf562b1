// Package noderef provides deferred, possibly forwarding references to
// concrete DOM nodes.
//
// A Ref holds either a resolved node or a forwarding link to another Ref.
// Components render asynchronously, so a parent whose root is a nested
// component cannot know its node at render time. It links its Ref to the
// child's Ref instead, and Get walks the chain once the child resolves.
package noderef

import (
	"fmt"
	"sync"

	"github.com/go-drift/vscope/pkg/errors"
)

// Node is a concrete node produced by the patch engine.
type Node any

// Ref is a shared handle that eventually resolves to a Node.
// The zero value is an unresolved reference ready for use.
type Ref struct {
	mu   sync.Mutex
	node Node
	link *Ref
}

// New returns an unresolved reference.
func New() *Ref {
	return &Ref{}
}

// Get resolves the reference, following forwarding links.
// Returns nil while nothing in the chain is resolved.
func (r *Ref) Get() Node {
	for cur := r; cur != nil; {
		cur.mu.Lock()
		node, next := cur.node, cur.link
		cur.mu.Unlock()
		if node != nil {
			return node
		}
		cur = next
	}
	return nil
}

// IsResolved reports whether Get would return a node.
func (r *Ref) IsResolved() bool {
	return r.Get() != nil
}

// Set resolves the reference to node and drops any forwarding link.
func (r *Ref) Set(node Node) {
	r.mu.Lock()
	r.node = node
	r.link = nil
	r.mu.Unlock()
}

// Link makes r forward to other: r resolves to whatever other resolves to,
// now or later. Linking a reference to itself is a no-op. Linking into a
// chain that already leads back to r panics with a contract violation.
func (r *Ref) Link(other *Ref) {
	if other == nil || other == r {
		return
	}
	for cur := other; cur != nil; cur = cur.next() {
		if cur == r {
			errors.Violation("noderef.Link", errors.ErrLinkCycle, fmt.Sprintf("%p -> %p", r, other))
		}
	}
	r.mu.Lock()
	r.node = nil
	r.link = other
	r.mu.Unlock()
}

// Linked returns the reference r forwards to, or nil.
func (r *Ref) Linked() *Ref {
	return r.next()
}

func (r *Ref) next() *Ref {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.link
}

func (r *Ref) String() string {
	if node := r.Get(); node != nil {
		return fmt.Sprintf("Ref(%v)", node)
	}
	return "Ref(unresolved)"
}
