// Package demo holds the sample components mounted by the vscope CLI.
package demo

import (
	"github.com/go-drift/vscope/pkg/callback"
	"github.com/go-drift/vscope/pkg/memdom"
	"github.com/go-drift/vscope/pkg/scope"
)

// Msg is a counter message.
type Msg int

const (
	Increment Msg = iota
	Decrement
	Reset
)

func (m Msg) String() string {
	switch m {
	case Increment:
		return "increment"
	case Decrement:
		return "decrement"
	case Reset:
		return "reset"
	default:
		return "unknown"
	}
}

// CounterProps configures a Counter.
type CounterProps struct {
	Label   string
	Initial int
	// OnChange receives the count after every change.
	OnChange callback.Callback[int]
}

// Controls are the inputs a host wires to its event listeners.
type Controls struct {
	Increment callback.Callback[struct{}]
	Decrement callback.Callback[struct{}]
	// Bump adds n in a single batch.
	Bump callback.Callback[int]
	// Reset may be used once.
	Reset callback.Callback[struct{}]
}

// Counter shows a labelled count and a parity badge.
type Counter struct {
	scope.Base[CounterProps, Msg]
	props    CounterProps
	count    int
	controls Controls
}

// CounterKind is the kind of Counter.
var CounterKind = scope.NewKind("counter", newCounter)

func newCounter(props CounterProps, s *scope.Scope[CounterProps, Msg]) scope.Component[CounterProps, Msg] {
	send := func(msg Msg) func(struct{}) Msg {
		return func(struct{}) Msg { return msg }
	}
	return &Counter{
		props: props,
		count: props.Initial,
		controls: Controls{
			Increment: scope.Callback(s, send(Increment)),
			Decrement: scope.Callback(s, send(Decrement)),
			Bump: scope.BatchCallback(s, func(n int) []Msg {
				msgs := make([]Msg, n)
				for i := range msgs {
					msgs[i] = Increment
				}
				return msgs
			}),
			Reset: scope.CallbackOnce(s, send(Reset)),
		},
	}
}

// Controls returns the counter's input callbacks.
func (c *Counter) Controls() Controls {
	return c.controls
}

// Count returns the current count.
func (c *Counter) Count() int {
	return c.count
}

func (c *Counter) Update(msg Msg) bool {
	prev := c.count
	switch msg {
	case Increment:
		c.count++
	case Decrement:
		c.count--
	case Reset:
		c.count = c.props.Initial
	}
	if c.count == prev {
		return false
	}
	c.props.OnChange.Emit(c.count)
	return true
}

func (c *Counter) Change(props CounterProps) bool {
	changed := props.Label != c.props.Label
	c.props = props
	return changed
}

func (c *Counter) Render() scope.VNode {
	return memdom.El("div",
		memdom.El("h1", memdom.Txt(c.props.Label)),
		memdom.El("p", memdom.Txtf("%d", c.count)),
		memdom.Comp(BadgeKind, c.count),
	)
}

// Badge shows whether a count is even or odd and skips renders that would
// not change the parity.
type Badge struct {
	scope.Base[int, struct{}]
	count int
}

// BadgeKind is the kind of Badge.
var BadgeKind = scope.NewKind("badge", func(count int, _ *scope.Scope[int, struct{}]) scope.Component[int, struct{}] {
	return &Badge{count: count}
})

func (b *Badge) Update(struct{}) bool { return false }

func (b *Badge) Change(count int) bool {
	render := count&1 != b.count&1
	b.count = count
	return render
}

func (b *Badge) Render() scope.VNode {
	if b.count%2 == 0 {
		return memdom.El("em", memdom.Txt("even"))
	}
	return memdom.El("em", memdom.Txt("odd"))
}
