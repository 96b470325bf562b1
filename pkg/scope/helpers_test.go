package scope

import (
	"fmt"

	"github.com/go-drift/vscope/pkg/noderef"
	"github.com/go-drift/vscope/pkg/scheduler"
)

// journal records lifecycle events across components in order.
type journal struct {
	events []string
}

func (j *journal) add(format string, args ...any) {
	j.events = append(j.events, fmt.Sprintf(format, args...))
}

// testTree is a VNode that records patch engine calls.
type testTree struct {
	label string
	node  Node
	j     *journal
}

func (t *testTree) Apply(parent *AnyScope, anchor Element, sibling Node, previous VNode) Node {
	prev := "none"
	if p, ok := previous.(*testTree); ok {
		prev = p.label
	}
	t.j.add("apply %s over %s", t.label, prev)
	return t.node
}

func (t *testTree) Detach(anchor Element) {
	t.j.add("detach %s", t.label)
}

// testPlaceholder stands for a nested component that resolves later.
type testPlaceholder struct {
	testTree
	ref *noderef.Ref
}

func (p *testPlaceholder) NodeRef() *noderef.Ref {
	return p.ref
}

// spy is a component whose hooks are scripted by the test.
type spy struct {
	Base[string, bool]
	j *journal

	props     string
	updates   []bool
	renders   int
	rendered  []bool
	teardowns int

	changeResult bool
	render       func(p *spy) VNode
	onUpdate     func(msg bool)
}

func (p *spy) Update(msg bool) bool {
	p.updates = append(p.updates, msg)
	p.j.add("update %v", msg)
	if p.onUpdate != nil {
		p.onUpdate(msg)
	}
	return msg
}

func (p *spy) Change(props string) bool {
	p.props = props
	p.j.add("change %s", props)
	return p.changeResult
}

func (p *spy) Render() VNode {
	p.renders++
	p.j.add("render %d", p.renders)
	if p.render != nil {
		return p.render(p)
	}
	return &testTree{label: fmt.Sprintf("tree%d", p.renders), node: fmt.Sprintf("node%d", p.renders), j: p.j}
}

func (p *spy) Rendered(first bool) {
	p.rendered = append(p.rendered, first)
	p.j.add("rendered %v", first)
}

func (p *spy) Teardown() {
	p.teardowns++
	p.j.add("teardown")
	p.Base.Teardown()
}

// spyKind returns a kind whose create hook stores the instance in *out.
func spyKind(name string, j *journal, out **spy, setup func(*spy, *Scope[string, bool])) *Kind[string, bool] {
	return NewKind(name, func(props string, s *Scope[string, bool]) Component[string, bool] {
		p := &spy{j: j, props: props, changeResult: true}
		if setup != nil {
			setup(p, s)
		}
		*out = p
		return p
	})
}

// captureScheduler holds units so a test can run them by hand.
type captureScheduler struct {
	next  scheduler.ComponentID
	units []captured
}

type captured struct {
	class scheduler.QueueClass
	unit  scheduler.Runnable
}

func (c *captureScheduler) Push(id scheduler.ComponentID, class scheduler.QueueClass, unit scheduler.Runnable) {
	c.units = append(c.units, captured{class: class, unit: unit})
}

func (c *captureScheduler) NextComponentID() scheduler.ComponentID {
	c.next++
	return c.next
}

func (c *captureScheduler) take(class scheduler.QueueClass) scheduler.Runnable {
	for i, u := range c.units {
		if u.class == class {
			c.units = append(c.units[:i], c.units[i+1:]...)
			return u.unit
		}
	}
	return nil
}
