// Package memdom is an in-memory DOM with a small patch engine.
//
// El, Txt and Comp build virtual nodes that implement scope.VNode. Applying
// an element over a previous one with the same tag keeps the DOM element and
// reconciles children by position; anything else is replaced. Comp mounts a
// nested component's scope under its anchor.
package memdom

import (
	"fmt"
	"slices"
	"strings"
)

// Node is a node of the in-memory DOM.
type Node interface {
	// Parent returns the element holding the node, or nil when detached.
	Parent() *Element
	setParent(*Element)
	writeHTML(sb *strings.Builder)
}

// Element is an in-memory element with ordered children.
type Element struct {
	Tag      string
	children []Node
	parent   *Element
}

// NewElement creates a detached element.
func NewElement(tag string) *Element {
	return &Element{Tag: tag}
}

// Parent returns the element holding e.
func (e *Element) Parent() *Element {
	return e.parent
}

func (e *Element) setParent(p *Element) {
	e.parent = p
}

// Children returns a copy of e's children.
func (e *Element) Children() []Node {
	return slices.Clone(e.children)
}

// Append adds child as e's last child, moving it from any previous parent.
func (e *Element) Append(child Node) {
	detachFromParent(child)
	e.children = append(e.children, child)
	child.setParent(e)
}

// Replace puts next in old's position. It appends next when old is not a
// child of e.
func (e *Element) Replace(old, next Node) {
	i := slices.Index(e.children, old)
	if i < 0 {
		e.Append(next)
		return
	}
	detachFromParent(next)
	old.setParent(nil)
	e.children[i] = next
	next.setParent(e)
}

// Remove detaches child from e and reports whether it was present.
func (e *Element) Remove(child Node) bool {
	i := slices.Index(e.children, child)
	if i < 0 {
		return false
	}
	e.children = slices.Delete(e.children, i, i+1)
	child.setParent(nil)
	return true
}

// HTML renders e and its subtree.
func (e *Element) HTML() string {
	var sb strings.Builder
	e.writeHTML(&sb)
	return sb.String()
}

// InnerHTML renders e's children only.
func (e *Element) InnerHTML() string {
	var sb strings.Builder
	for _, c := range e.children {
		c.writeHTML(&sb)
	}
	return sb.String()
}

func (e *Element) writeHTML(sb *strings.Builder) {
	fmt.Fprintf(sb, "<%s>", e.Tag)
	for _, c := range e.children {
		c.writeHTML(sb)
	}
	fmt.Fprintf(sb, "</%s>", e.Tag)
}

func (e *Element) String() string {
	return "<" + e.Tag + ">"
}

// Text is an in-memory text node.
type Text struct {
	Content string
	parent  *Element
}

// NewText creates a detached text node.
func NewText(content string) *Text {
	return &Text{Content: content}
}

// Parent returns the element holding t.
func (t *Text) Parent() *Element {
	return t.parent
}

func (t *Text) setParent(p *Element) {
	t.parent = p
}

func (t *Text) writeHTML(sb *strings.Builder) {
	sb.WriteString(t.Content)
}

func (t *Text) String() string {
	return fmt.Sprintf("%q", t.Content)
}

func detachFromParent(n Node) {
	if p := n.Parent(); p != nil {
		p.Remove(n)
	}
}
