package noderef

import (
	"testing"

	"github.com/go-drift/vscope/pkg/errors"
)

func TestRef_SetAndGet(t *testing.T) {
	r := New()
	if r.IsResolved() {
		t.Fatal("new ref should be unresolved")
	}
	r.Set("div")
	if got := r.Get(); got != "div" {
		t.Errorf("Get() = %v, want div", got)
	}
}

func TestRef_LinkResolvesRegardlessOfOrder(t *testing.T) {
	t.Run("resolve after link", func(t *testing.T) {
		existing, incoming := New(), New()
		incoming.Link(existing)
		existing.Set("span")
		if incoming.Get() != "span" || existing.Get() != "span" {
			t.Errorf("got %v / %v, want span for both", incoming.Get(), existing.Get())
		}
	})
	t.Run("resolve before link", func(t *testing.T) {
		existing, incoming := New(), New()
		existing.Set("span")
		incoming.Link(existing)
		if incoming.Get() != "span" || existing.Get() != "span" {
			t.Errorf("got %v / %v, want span for both", incoming.Get(), existing.Get())
		}
	})
}

func TestRef_ChainAcrossNestedComponents(t *testing.T) {
	parent, child, grandchild := New(), New(), New()
	parent.Link(child)
	child.Link(grandchild)
	if parent.IsResolved() {
		t.Fatal("chain should be unresolved before the grandchild renders")
	}
	grandchild.Set("p")
	if got := parent.Get(); got != "p" {
		t.Errorf("parent.Get() = %v, want p", got)
	}
}

func TestRef_SetDropsLink(t *testing.T) {
	a, b := New(), New()
	a.Link(b)
	b.Set("old")
	a.Set("new")
	if a.Linked() != nil {
		t.Error("Set should drop the forwarding link")
	}
	if a.Get() != "new" || b.Get() != "old" {
		t.Errorf("got %v / %v", a.Get(), b.Get())
	}
}

func TestRef_LinkSelfIsNoop(t *testing.T) {
	r := New()
	r.Set("x")
	r.Link(r)
	if r.Get() != "x" {
		t.Errorf("Get() = %v, want x", r.Get())
	}
}

func TestRef_LinkCyclePanics(t *testing.T) {
	a, b, c := New(), New(), New()
	a.Link(b)
	b.Link(c)
	defer func() {
		ce, ok := recover().(*errors.ContractError)
		if !ok || !errors.Is(ce, errors.ErrLinkCycle) {
			t.Fatalf("expected ErrLinkCycle contract violation, got %v", ce)
		}
	}()
	c.Link(a)
}

func TestRef_String(t *testing.T) {
	r := New()
	if r.String() != "Ref(unresolved)" {
		t.Errorf("String() = %q", r.String())
	}
	r.Set("li")
	if r.String() != "Ref(li)" {
		t.Errorf("String() = %q", r.String())
	}
}
