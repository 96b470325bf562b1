package scope

import (
	"slices"
	"testing"
	"time"
)

func TestBase_TeardownRunsCleanupsInReverse(t *testing.T) {
	var b Base[int, int]
	var order []int
	b.OnTeardown(func() { order = append(order, 1) })
	unregister := b.OnTeardown(func() { order = append(order, 2) })
	b.OnTeardown(func() { order = append(order, 3) })
	unregister()

	b.Teardown()
	b.Teardown()
	if !slices.Equal(order, []int{3, 1}) {
		t.Errorf("order = %v, want [3 1]", order)
	}
	if !b.IsTornDown() {
		t.Error("IsTornDown should be true")
	}
}

func TestBase_RegisterAfterTeardownRunsImmediately(t *testing.T) {
	var b Base[int, int]
	b.Teardown()
	ran := false
	b.OnTeardown(func() { ran = true })
	if !ran {
		t.Error("cleanup registered after teardown should run immediately")
	}
	b.OnTeardown(nil)()
}

func TestBase_Defaults(t *testing.T) {
	var b Base[string, int]
	if !b.Change("x") {
		t.Error("default Change should request a render")
	}
	b.Rendered(true)
}

func TestBase_CleanupMayCallBackIntoBase(t *testing.T) {
	var b Base[int, int]
	var order []string
	b.OnTeardown(func() {
		if !b.IsTornDown() {
			t.Error("IsTornDown should be true while cleanups run")
		}
		b.OnTeardown(func() { order = append(order, "late") })
		order = append(order, "outer")
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		b.Teardown()
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Teardown deadlocked on a cleanup that calls back into Base")
	}
	if !slices.Equal(order, []string{"late", "outer"}) {
		t.Errorf("order = %v, want [late outer]", order)
	}
}
