package testing

import (
	"testing"

	"github.com/go-drift/vscope/pkg/memdom"
	"github.com/go-drift/vscope/pkg/noderef"
	"github.com/go-drift/vscope/pkg/scheduler"
	"github.com/go-drift/vscope/pkg/scope"
)

// Tester mounts components on an in-memory DOM and drives a private
// scheduler, so tests decide exactly when queued work runs.
type Tester struct {
	sched    *scheduler.Scheduler
	root     *memdom.Element
	recorder *Recorder
}

// NewTester creates a tester with a manual-flush scheduler configured by opts.
func NewTester(opts ...scheduler.Option) *Tester {
	return &Tester{
		sched:    scheduler.New(opts...),
		root:     memdom.NewElement("body"),
		recorder: &Recorder{},
	}
}

// NewTesterWithT creates a tester and installs its scheduler as
// scheduler.Default() until the test ends, so scopes created without a
// parent also queue on it.
func NewTesterWithT(t testing.TB, opts ...scheduler.Option) *Tester {
	t.Helper()
	tester := NewTester(opts...)
	prev := scheduler.SetDefault(tester.sched)
	t.Cleanup(func() {
		scheduler.SetDefault(prev)
	})
	return tester
}

// Scheduler returns the tester's scheduler.
func (t *Tester) Scheduler() *scheduler.Scheduler {
	return t.sched
}

// Root returns the element components are mounted under.
func (t *Tester) Root() *memdom.Element {
	return t.root
}

// Recorder returns the recorder used by TraceKind.
func (t *Tester) Recorder() *Recorder {
	return t.recorder
}

// Flush runs all queued work and returns how many units ran.
func (t *Tester) Flush() int {
	return t.sched.Flush()
}

// HTML renders everything mounted under the root.
func (t *Tester) HTML() string {
	return t.root.InnerHTML()
}

// CaptureSnapshot captures the DOM and the recorded lifecycle events.
func (t *Tester) CaptureSnapshot() *Snapshot {
	return &Snapshot{HTML: t.HTML(), Events: t.recorder.Events()}
}

// Mount mounts kind with props under the tester's root and returns its
// scope. Nothing renders until Flush.
func Mount[P, M any](t *Tester, kind *scope.Kind[P, M], props P) *scope.Scope[P, M] {
	s := scope.NewWithScheduler(kind, nil, t.sched)
	return s.MountInPlace(t.root, nil, noderef.New(), props)
}

// TraceKind wraps kind so its hooks are recorded on the tester's Recorder.
func TraceKind[P, M any](t *Tester, kind *scope.Kind[P, M]) *scope.Kind[P, M] {
	return Trace(kind, t.recorder)
}
