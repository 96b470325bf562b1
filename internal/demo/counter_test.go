package demo

import (
	"errors"
	"slices"
	"testing"

	"github.com/go-drift/vscope/pkg/callback"
	scopeerrors "github.com/go-drift/vscope/pkg/errors"
	"github.com/go-drift/vscope/pkg/scope"
	scopetest "github.com/go-drift/vscope/pkg/testing"
)

func mountCounter(t *testing.T, props CounterProps) (*scopetest.Tester, *scope.Scope[CounterProps, Msg], *Counter) {
	t.Helper()
	tester := scopetest.NewTesterWithT(t)
	s := scopetest.Mount(tester, CounterKind, props)
	tester.Flush()
	c, ok := s.Component()
	if !ok {
		t.Fatal("expected mounted counter")
	}
	return tester, s, c.(*Counter)
}

func TestCounter_InitialRender(t *testing.T) {
	tester, _, _ := mountCounter(t, CounterProps{Label: "Clicks", Initial: 2})

	if got, want := tester.HTML(), "<div><h1>Clicks</h1><p>2</p><em>even</em></div>"; got != want {
		t.Errorf("HTML() = %q, want %q", got, want)
	}
}

func TestCounter_Controls(t *testing.T) {
	var changes []int
	tester, _, counter := mountCounter(t, CounterProps{
		Label:    "Clicks",
		OnChange: callback.New(func(n int) { changes = append(changes, n) }),
	})
	controls := counter.Controls()

	steps := []struct {
		name string
		emit func()
		want string
	}{
		{"increment", func() { controls.Increment.Emit(struct{}{}) }, "<div><h1>Clicks</h1><p>1</p><em>odd</em></div>"},
		{"bump", func() { controls.Bump.Emit(2) }, "<div><h1>Clicks</h1><p>3</p><em>odd</em></div>"},
		{"decrement", func() { controls.Decrement.Emit(struct{}{}) }, "<div><h1>Clicks</h1><p>2</p><em>even</em></div>"},
		{"reset", func() { controls.Reset.Emit(struct{}{}) }, "<div><h1>Clicks</h1><p>0</p><em>even</em></div>"},
	}
	for _, step := range steps {
		step.emit()
		tester.Flush()
		if got := tester.HTML(); got != step.want {
			t.Errorf("after %s: HTML() = %q, want %q", step.name, got, step.want)
		}
	}

	if want := []int{1, 2, 3, 2, 0}; !slices.Equal(changes, want) {
		t.Errorf("OnChange saw %v, want %v", changes, want)
	}
}

func TestCounter_BumpRendersOnce(t *testing.T) {
	tester := scopetest.NewTesterWithT(t)
	kind := scopetest.TraceKind(tester, CounterKind)
	s := scopetest.Mount(tester, kind, CounterProps{Label: "n"})
	tester.Flush()
	tester.Recorder().Reset()

	s.SendMessageBatch([]Msg{Increment, Increment, Increment})
	tester.Flush()

	if n := tester.Recorder().Count("counter", "update"); n != 3 {
		t.Errorf("update ran %d times, want 3", n)
	}
	if n := tester.Recorder().Count("counter", "render"); n != 1 {
		t.Errorf("render ran %d times, want 1", n)
	}
	if n := tester.Recorder().Count("counter", "rendered"); n != 1 {
		t.Errorf("rendered ran %d times, want 1", n)
	}
}

func TestCounter_ResetIsOneShot(t *testing.T) {
	_, _, counter := mountCounter(t, CounterProps{Label: "n"})
	reset := counter.Controls().Reset
	reset.Emit(struct{}{})

	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, scopeerrors.ErrCallbackSpent) {
			t.Fatalf("expected ErrCallbackSpent panic, got %v", r)
		}
	}()
	reset.Emit(struct{}{})
}

func TestCounter_ChangeRendersOnLabelOnly(t *testing.T) {
	tester, s, _ := mountCounter(t, CounterProps{Label: "a", Initial: 4})

	s.Update(scope.PropertiesUpdate[CounterProps, Msg](CounterProps{Label: "a", Initial: 9}, nil), false)
	tester.Flush()
	if got, want := tester.HTML(), "<div><h1>a</h1><p>4</p><em>even</em></div>"; got != want {
		t.Errorf("HTML() = %q, want %q", got, want)
	}

	s.Update(scope.PropertiesUpdate[CounterProps, Msg](CounterProps{Label: "b"}, nil), false)
	tester.Flush()
	if got, want := tester.HTML(), "<div><h1>b</h1><p>4</p><em>even</em></div>"; got != want {
		t.Errorf("HTML() = %q, want %q", got, want)
	}
}

func TestBadge_SkipsSameParity(t *testing.T) {
	b := &Badge{count: 1}
	tests := []struct {
		next int
		want bool
	}{
		{3, false},
		{4, true},
		{-2, false},
		{-1, true},
	}
	for _, tt := range tests {
		if got := b.Change(tt.next); got != tt.want {
			t.Errorf("Change(%d) = %v, want %v", tt.next, got, tt.want)
		}
	}
}
