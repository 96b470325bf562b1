package scope

import (
	"fmt"

	"github.com/go-drift/vscope/pkg/errors"
	"github.com/go-drift/vscope/pkg/scheduler"
)

// AnyScope is a type-erased Scope. Ancestors that do not know a
// descendant's concrete component type hold this, and recover the typed
// Scope with Downcast given the matching Kind.
type AnyScope struct {
	kind   KindTag
	parent *AnyScope
	sched  Scheduler
	id     scheduler.ComponentID
	state  stateCell
}

// stateCell is the untyped view of a *cell.
type stateCell interface {
	mounted() bool
}

// Parent returns the parent scope, or nil for a root.
func (a *AnyScope) Parent() *AnyScope {
	return a.parent
}

// Kind returns the component kind of the linked component.
func (a *AnyScope) Kind() KindTag {
	return a.kind
}

// ID returns the component identity used with the scheduler.
func (a *AnyScope) ID() scheduler.ComponentID {
	return a.id
}

// Scheduler returns the scheduler the component's work is queued on.
func (a *AnyScope) Scheduler() Scheduler {
	return a.sched
}

// IsMounted reports whether the linked component currently holds state.
func (a *AnyScope) IsMounted() bool {
	return a.state != nil && a.state.mounted()
}

func (a *AnyScope) String() string {
	return fmt.Sprintf("AnyScope(%s#%d)", kindName(a.kind), a.id)
}

func kindName(k KindTag) string {
	if k == nil {
		return "<nil>"
	}
	return k.Name()
}

// TryDowncast recovers the typed scope behind a. It returns an error
// wrapping errors.ErrKindMismatch when a belongs to a different kind.
func TryDowncast[P, M any](a *AnyScope, kind *Kind[P, M]) (*Scope[P, M], error) {
	if a == nil || kind == nil {
		return nil, fmt.Errorf("scope.Downcast: %w: nil scope or kind", errors.ErrKindMismatch)
	}
	c, ok := a.state.(*cell[P, M])
	if !ok || a.kind != KindTag(kind) {
		return nil, fmt.Errorf("scope.Downcast: %w: want %s, got %s", errors.ErrKindMismatch, kind.Name(), kindName(a.kind))
	}
	return &Scope[P, M]{
		kind:   kind,
		parent: a.parent,
		sched:  a.sched,
		id:     a.id,
		state:  c,
	}, nil
}

// Downcast is like TryDowncast but panics with a contract violation on a
// kind mismatch. Use it only on handles received alongside their Kind.
func Downcast[P, M any](a *AnyScope, kind *Kind[P, M]) *Scope[P, M] {
	s, err := TryDowncast(a, kind)
	if err != nil {
		detail := "nil scope or kind"
		if a != nil && kind != nil {
			detail = fmt.Sprintf("want %s, got %s", kind.Name(), kindName(a.kind))
		}
		errors.Violation("scope.Downcast", errors.ErrKindMismatch, detail)
	}
	return s
}

// FindAncestor walks up from a's parent and returns the nearest ancestor of
// the given kind.
func FindAncestor[P, M any](a *AnyScope, kind *Kind[P, M]) (*Scope[P, M], bool) {
	if a == nil {
		return nil, false
	}
	for cur := a.parent; cur != nil; cur = cur.parent {
		if cur.kind == KindTag(kind) {
			return Downcast(cur, kind), true
		}
	}
	return nil, false
}
