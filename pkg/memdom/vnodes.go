package memdom

import (
	"fmt"

	"github.com/go-drift/vscope/pkg/noderef"
	"github.com/go-drift/vscope/pkg/scope"
)

// VElement is a virtual element. Reapplying it over a previous VElement with
// the same tag keeps the DOM element and reconciles children by position;
// anything else is replaced.
type VElement struct {
	Tag      string
	Children []scope.VNode
	node     *Element
}

// El builds a virtual element.
func El(tag string, children ...scope.VNode) *VElement {
	return &VElement{Tag: tag, Children: children}
}

// Node returns the DOM element produced by the last Apply.
func (v *VElement) Node() *Element {
	return v.node
}

func (v *VElement) Apply(parent *scope.AnyScope, anchor scope.Element, sibling scope.Node, previous scope.VNode) scope.Node {
	host := anchorElement(anchor)
	var prevChildren []scope.VNode
	if prev, ok := previous.(*VElement); ok && prev.Tag == v.Tag && prev.node != nil {
		v.node = prev.node
		prevChildren = prev.Children
	} else {
		v.node = NewElement(v.Tag)
		place(host, previous, v.node)
	}
	for i, child := range v.Children {
		var prevChild scope.VNode
		if i < len(prevChildren) {
			prevChild = prevChildren[i]
		}
		child.Apply(parent, v.node, nil, prevChild)
	}
	for i := len(v.Children); i < len(prevChildren); i++ {
		prevChildren[i].Detach(v.node)
	}
	return v.node
}

func (v *VElement) Detach(anchor scope.Element) {
	for _, child := range v.Children {
		child.Detach(v.node)
	}
	if v.node != nil {
		anchorElement(anchor).Remove(v.node)
	}
}

// VText is a virtual text node.
type VText struct {
	Content string
	node    *Text
}

// Txt builds a virtual text node.
func Txt(content string) *VText {
	return &VText{Content: content}
}

// Txtf builds a virtual text node from a format string.
func Txtf(format string, args ...any) *VText {
	return Txt(fmt.Sprintf(format, args...))
}

func (v *VText) Apply(parent *scope.AnyScope, anchor scope.Element, sibling scope.Node, previous scope.VNode) scope.Node {
	if prev, ok := previous.(*VText); ok && prev.node != nil {
		v.node = prev.node
		v.node.Content = v.Content
		return v.node
	}
	v.node = NewText(v.Content)
	place(anchorElement(anchor), previous, v.node)
	return v.node
}

func (v *VText) Detach(anchor scope.Element) {
	if v.node != nil {
		anchorElement(anchor).Remove(v.node)
	}
}

// VComp is a placeholder for a nested component. The first Apply mounts a
// child scope under the anchor; reapplying over a VComp of the same kind
// hands the new properties to the existing child. The child's node arrives
// later, through NodeRef.
type VComp[P, M any] struct {
	Kind  *scope.Kind[P, M]
	Props P
	Ref   *noderef.Ref
	scope *scope.Scope[P, M]
}

// Comp builds a nested component placeholder.
func Comp[P, M any](kind *scope.Kind[P, M], props P) *VComp[P, M] {
	return &VComp[P, M]{Kind: kind, Props: props, Ref: noderef.New()}
}

// NodeRef returns the reference the child resolves into.
func (c *VComp[P, M]) NodeRef() *noderef.Ref {
	return c.Ref
}

// Scope returns the child's scope once applied.
func (c *VComp[P, M]) Scope() *scope.Scope[P, M] {
	return c.scope
}

func (c *VComp[P, M]) Apply(parent *scope.AnyScope, anchor scope.Element, sibling scope.Node, previous scope.VNode) scope.Node {
	if c.Ref == nil {
		c.Ref = noderef.New()
	}
	if prev, ok := previous.(*VComp[P, M]); ok && prev.Kind == c.Kind && prev.scope != nil {
		c.scope = prev.scope
		c.scope.Update(scope.PropertiesUpdate[P, M](c.Props, c.Ref), false)
		return nil
	}
	if previous != nil {
		previous.Detach(anchor)
	}
	c.scope = scope.New(c.Kind, parent)
	c.scope.MountInPlace(anchor, nil, c.Ref, c.Props)
	return nil
}

func (c *VComp[P, M]) Detach(anchor scope.Element) {
	if c.scope != nil && !c.scope.IsDestroyed() {
		c.scope.Destroy()
	}
}

// place puts node where previous's node was under host, or appends it, and
// releases previous.
func place(host *Element, previous scope.VNode, node Node) {
	if old := nodeOf(previous); old != nil && old.Parent() == host {
		host.Replace(old, node)
	} else {
		host.Append(node)
	}
	if previous != nil {
		previous.Detach(host)
	}
}

func nodeOf(v scope.VNode) Node {
	switch n := v.(type) {
	case *VElement:
		if n.node != nil {
			return n.node
		}
	case *VText:
		if n.node != nil {
			return n.node
		}
	}
	return nil
}

func anchorElement(anchor scope.Element) *Element {
	el, ok := anchor.(*Element)
	if !ok {
		panic(fmt.Sprintf("memdom: anchor must be *memdom.Element, got %T", anchor))
	}
	return el
}
