package memdom

import "testing"

func TestElement_HTML(t *testing.T) {
	root := NewElement("div")
	p := NewElement("p")
	p.Append(NewText("hello"))
	root.Append(p)
	root.Append(NewText("!"))

	if got, want := root.HTML(), "<div><p>hello</p>!</div>"; got != want {
		t.Errorf("HTML() = %q, want %q", got, want)
	}
	if got, want := root.InnerHTML(), "<p>hello</p>!"; got != want {
		t.Errorf("InnerHTML() = %q, want %q", got, want)
	}
	if p.Parent() != root {
		t.Errorf("Parent() = %v, want root", p.Parent())
	}
}

func TestElement_AppendMovesNode(t *testing.T) {
	a := NewElement("a")
	b := NewElement("b")
	text := NewText("x")

	a.Append(text)
	b.Append(text)

	if len(a.Children()) != 0 {
		t.Errorf("expected node to leave its old parent, got %d children", len(a.Children()))
	}
	if text.Parent() != b {
		t.Errorf("Parent() = %v, want <b>", text.Parent())
	}
}

func TestElement_Replace(t *testing.T) {
	root := NewElement("ul")
	first := NewElement("li")
	second := NewElement("li")
	root.Append(first)
	root.Append(second)

	next := NewElement("p")
	root.Replace(first, next)

	if got, want := root.HTML(), "<ul><p></p><li></li></ul>"; got != want {
		t.Errorf("HTML() = %q, want %q", got, want)
	}
	if first.Parent() != nil {
		t.Error("expected replaced node to be detached")
	}

	// Unknown old node appends.
	root.Replace(NewText("missing"), NewText("tail"))
	if got, want := root.InnerHTML(), "<p></p><li></li>tail"; got != want {
		t.Errorf("InnerHTML() = %q, want %q", got, want)
	}
}

func TestElement_Remove(t *testing.T) {
	root := NewElement("div")
	child := NewText("x")
	root.Append(child)

	if !root.Remove(child) {
		t.Fatal("expected Remove to report the child")
	}
	if root.Remove(child) {
		t.Error("expected second Remove to report false")
	}
	if child.Parent() != nil {
		t.Error("expected removed child to have no parent")
	}
}
