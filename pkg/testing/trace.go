package testing

import (
	"fmt"
	"slices"
	"sync"

	"github.com/go-drift/vscope/pkg/scope"
)

// Event is one lifecycle hook invocation seen by a Recorder.
type Event struct {
	Component string `json:"component"`
	Hook      string `json:"hook"`
	Detail    string `json:"detail,omitempty"`
}

func (e Event) String() string {
	if e.Detail == "" {
		return e.Component + "." + e.Hook
	}
	return e.Component + "." + e.Hook + "(" + e.Detail + ")"
}

// Recorder collects lifecycle events in the order hooks ran.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) add(component, hook, detail string) {
	r.mu.Lock()
	r.events = append(r.events, Event{Component: component, Hook: hook, Detail: detail})
	r.mu.Unlock()
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.events)
}

// Strings returns the recorded events formatted with Event.String.
func (r *Recorder) Strings() []string {
	events := r.Events()
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.String()
	}
	return out
}

// Count returns how many times hook ran for component.
func (r *Recorder) Count(component, hook string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.Component == component && e.Hook == hook {
			n++
		}
	}
	return n
}

// Reset discards recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}

// Trace returns a kind that behaves like kind but records every hook call
// on rec. The traced kind is a distinct kind for Downcast purposes.
func Trace[P, M any](kind *scope.Kind[P, M], rec *Recorder) *scope.Kind[P, M] {
	name := kind.Name()
	return scope.NewKind(name, func(props P, s *scope.Scope[P, M]) scope.Component[P, M] {
		rec.add(name, "create", fmt.Sprint(props))
		return &traced[P, M]{inner: kind.Create(props, s), name: name, rec: rec}
	})
}

type traced[P, M any] struct {
	inner scope.Component[P, M]
	name  string
	rec   *Recorder
}

func (t *traced[P, M]) Update(msg M) bool {
	render := t.inner.Update(msg)
	t.rec.add(t.name, "update", fmt.Sprintf("%v->%t", msg, render))
	return render
}

func (t *traced[P, M]) Change(props P) bool {
	render := t.inner.Change(props)
	t.rec.add(t.name, "change", fmt.Sprintf("%v->%t", props, render))
	return render
}

func (t *traced[P, M]) Render() scope.VNode {
	t.rec.add(t.name, "render", "")
	return t.inner.Render()
}

func (t *traced[P, M]) Rendered(firstRender bool) {
	t.rec.add(t.name, "rendered", fmt.Sprint(firstRender))
	t.inner.Rendered(firstRender)
}

func (t *traced[P, M]) Teardown() {
	t.rec.add(t.name, "teardown", "")
	t.inner.Teardown()
}
