package scope

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/go-drift/vscope/pkg/callback"
	"github.com/go-drift/vscope/pkg/errors"
	"github.com/go-drift/vscope/pkg/noderef"
	"github.com/go-drift/vscope/pkg/scheduler"
)

// Scope is the handle through which work is scheduled for one component
// with properties P and messages M. Clones share the same state cell and
// therefore observe the same component.
type Scope[P, M any] struct {
	kind   *Kind[P, M]
	parent *AnyScope
	sched  Scheduler
	id     scheduler.ComponentID
	state  *cell[P, M]
}

// New creates an unmounted scope of the given kind. The scope queues work on
// its parent's scheduler, or on scheduler.Default() when parent is nil.
func New[P, M any](kind *Kind[P, M], parent *AnyScope) *Scope[P, M] {
	var sched Scheduler
	if parent != nil {
		sched = parent.sched
	}
	return NewWithScheduler(kind, parent, sched)
}

// NewWithScheduler is like New but queues work on sched.
func NewWithScheduler[P, M any](kind *Kind[P, M], parent *AnyScope, sched Scheduler) *Scope[P, M] {
	if kind == nil {
		panic("scope: New requires a kind")
	}
	if sched == nil {
		sched = scheduler.Default()
	}
	id := sched.NextComponentID()
	return &Scope[P, M]{
		kind:   kind,
		parent: parent,
		sched:  sched,
		id:     id,
		state:  &cell[P, M]{name: kind.Name(), id: id},
	}
}

// Clone returns a scope sharing this scope's state.
func (s *Scope[P, M]) Clone() *Scope[P, M] {
	c := *s
	return &c
}

// Parent returns the parent scope, or nil for a root.
func (s *Scope[P, M]) Parent() *AnyScope {
	return s.parent
}

// Kind returns the scope's component kind.
func (s *Scope[P, M]) Kind() *Kind[P, M] {
	return s.kind
}

// ID returns the component identity used with the scheduler.
func (s *Scope[P, M]) ID() scheduler.ComponentID {
	return s.id
}

// AsAny erases the scope's type parameters.
func (s *Scope[P, M]) AsAny() *AnyScope {
	return &AnyScope{
		kind:   s.kind,
		parent: s.parent,
		sched:  s.sched,
		id:     s.id,
		state:  s.state,
	}
}

// IsMounted reports whether the component currently holds state.
func (s *Scope[P, M]) IsMounted() bool {
	return s.state.mounted()
}

// IsDestroyed reports whether Destroy has been called on this scope or a clone.
func (s *Scope[P, M]) IsDestroyed() bool {
	return s.state.destroyed.Load()
}

// Component returns the live component instance. It reports false when the
// component is not mounted or while one of its units is running.
func (s *Scope[P, M]) Component() (Component[P, M], bool) {
	if s.state.borrowed || s.state.state == nil {
		return nil, false
	}
	return s.state.state.component, true
}

func (s *Scope[P, M]) String() string {
	return fmt.Sprintf("Scope(%s#%d)", s.kind.Name(), s.id)
}

// MountInPlace creates the component from props under anchor and schedules
// its first render. previous is a tree already present under anchor that the
// first render reconciles against; ref receives the component's node.
func (s *Scope[P, M]) MountInPlace(anchor Element, previous VNode, ref *noderef.Ref, props P) *Scope[P, M] {
	s.ensureLive("scope.MountInPlace")
	if ref == nil {
		ref = noderef.New()
	}
	component := s.kind.Create(props, s.Clone())
	s.state.borrow("scope.MountInPlace", func(*componentState[P, M]) {
		s.state.state = &componentState[P, M]{
			anchor:    anchor,
			nodeRef:   ref,
			scope:     s.Clone(),
			component: component,
			lastRoot:  previous,
		}
	})
	Logger().Debug("component mounted",
		zap.String("kind", s.kind.Name()),
		zap.Uint64("component", uint64(s.id)))
	s.Update(ForceUpdate[P, M](), true)
	return s
}

// Update queues u, followed by a Rendered unit with firstRender set to
// firstUpdate. The scheduler drains Update work before Rendered work, so the
// Rendered unit observes the effect of u.
func (s *Scope[P, M]) Update(u Update[P, M], firstUpdate bool) {
	s.ensureLive("scope.Update")
	s.sched.Push(s.id, scheduler.ClassUpdate, &updateUnit[P, M]{state: s.state, update: u})
	s.ScheduleRendered(firstUpdate)
}

// ScheduleRendered queues a Rendered unit on its own.
func (s *Scope[P, M]) ScheduleRendered(firstRender bool) {
	s.ensureLive("scope.ScheduleRendered")
	s.sched.Push(s.id, scheduler.ClassRendered, &renderedUnit[P, M]{state: s.state, firstRender: firstRender})
}

// Destroy queues the component's teardown. The scope and its clones must not
// schedule any work afterwards.
func (s *Scope[P, M]) Destroy() {
	s.ensureLive("scope.Destroy")
	s.state.destroyed.Store(true)
	s.sched.Push(s.id, scheduler.ClassDestroy, &destroyUnit[P, M]{state: s.state})
}

// SendMessage queues msg for the component.
func (s *Scope[P, M]) SendMessage(msg M) {
	s.Update(MessageUpdate[P, M](msg), false)
}

// SendMessageBatch queues msgs to be applied together, rendering at most
// once. An empty batch queues nothing.
func (s *Scope[P, M]) SendMessageBatch(msgs []M) {
	if len(msgs) == 0 {
		return
	}
	s.Update(BatchUpdate[P, M](msgs), false)
}

func (s *Scope[P, M]) ensureLive(op string) {
	if s.state.destroyed.Load() {
		errors.Violation(op, errors.ErrScopeDestroyed, s.String())
	}
}

// Callback returns a callback that maps its input to a message with fn and
// sends it to s.
func Callback[P, M, In any](s *Scope[P, M], fn func(In) M) callback.Callback[In] {
	sc := s.Clone()
	return callback.New(func(in In) {
		sc.SendMessage(fn(in))
	})
}

// CallbackOnce is like Callback but the result may be emitted only once.
func CallbackOnce[P, M, In any](s *Scope[P, M], fn func(In) M) callback.Callback[In] {
	sc := s.Clone()
	return callback.Once(func(in In) {
		sc.SendMessage(fn(in))
	})
}

// BatchCallback returns a callback that maps its input to a batch of
// messages with fn and sends them to s together.
func BatchCallback[P, M, In any](s *Scope[P, M], fn func(In) []M) callback.Callback[In] {
	sc := s.Clone()
	return callback.New(func(in In) {
		sc.SendMessageBatch(fn(in))
	})
}
