package testing

import (
	"github.com/go-drift/vscope/pkg/memdom"
	"github.com/go-drift/vscope/pkg/scope"
)

type counterMsg int

const (
	increment counterMsg = iota
	decrement
	noop
)

func (m counterMsg) String() string {
	switch m {
	case increment:
		return "inc"
	case decrement:
		return "dec"
	default:
		return "noop"
	}
}

// counter displays a count changed by messages.
type counter struct {
	scope.Base[int, counterMsg]
	count int
}

var counterKind = scope.NewKind("counter", func(initial int, _ *scope.Scope[int, counterMsg]) scope.Component[int, counterMsg] {
	return &counter{count: initial}
})

func (c *counter) Update(msg counterMsg) bool {
	switch msg {
	case increment:
		c.count++
	case decrement:
		c.count--
	default:
		return false
	}
	return true
}

func (c *counter) Render() scope.VNode {
	return memdom.El("div", memdom.Txtf("%d", c.count))
}

// label renders its properties and re-renders only when they change.
type label struct {
	scope.Base[string, struct{}]
	text string
}

var labelKind = scope.NewKind("label", func(text string, _ *scope.Scope[string, struct{}]) scope.Component[string, struct{}] {
	return &label{text: text}
})

func (l *label) Update(struct{}) bool { return false }

func (l *label) Change(text string) bool {
	if text == l.text {
		return false
	}
	l.text = text
	return true
}

func (l *label) Render() scope.VNode {
	return memdom.El("span", memdom.Txt(l.text))
}

type panelProps struct {
	Title string
}

// panel shows a heading and, while open, a nested label.
type panel struct {
	scope.Base[panelProps, bool]
	props     panelProps
	open      bool
	labelKind *scope.Kind[string, struct{}]
	label     *memdom.VComp[string, struct{}]
}

func newPanelKind(child *scope.Kind[string, struct{}]) *scope.Kind[panelProps, bool] {
	return scope.NewKind("panel", func(props panelProps, _ *scope.Scope[panelProps, bool]) scope.Component[panelProps, bool] {
		return &panel{props: props, open: true, labelKind: child}
	})
}

func (p *panel) Update(open bool) bool {
	if open == p.open {
		return false
	}
	p.open = open
	return true
}

func (p *panel) Change(props panelProps) bool {
	p.props = props
	return true
}

func (p *panel) Render() scope.VNode {
	children := []scope.VNode{memdom.El("h1", memdom.Txt(p.props.Title))}
	if p.open {
		p.label = memdom.Comp(p.labelKind, p.props.Title)
		children = append(children, p.label)
	}
	return memdom.El("section", children...)
}
