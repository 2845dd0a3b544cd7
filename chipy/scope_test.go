package chipy

import "testing"

func newTestScope() *Scope {
	e := &env{}
	return newRootScope(e)
}

func TestScopeWriteThrough(t *testing.T) {
	root := newTestScope()
	root.Bind("a", Integer(1))
	child := root.NewChildScope()
	child.Set("a", Integer(2))
	v, err := root.Get("a")
	if err != nil {
		t.Fatalf("root.Get(a) failed: %v", err)
	}
	if v != Integer(2) {
		t.Fatalf("write-through assignment did not update ancestor: got %v, want 2", v)
	}
}

func TestScopeSetCreatesLocalWhenUnbound(t *testing.T) {
	root := newTestScope()
	child := root.NewChildScope()
	child.Set("b", Integer(9))
	if root.Has("b") {
		t.Fatal("Set on an unbound name should not leak into the ancestor")
	}
	v, err := child.Get("b")
	if err != nil || v != Integer(9) {
		t.Fatalf("child.Get(b) = %v, %v, want 9, nil", v, err)
	}
}

func TestScopeGetSearchesAncestors(t *testing.T) {
	root := newTestScope()
	root.Bind("x", String("outer"))
	child := root.NewChildScope().NewChildScope()
	v, err := child.Get("x")
	if err != nil {
		t.Fatalf("Get through two ancestor frames failed: %v", err)
	}
	if v != String("outer") {
		t.Fatalf("got %v, want outer", v)
	}
}

func TestScopeGetUnboundNameFails(t *testing.T) {
	root := newTestScope()
	if _, err := root.Get("nope"); err == nil {
		t.Fatal("expected name-not-found error")
	}
}

func TestScopeBuiltinsResolveOnDemand(t *testing.T) {
	root := newTestScope()
	for _, name := range []string{"None", "True", "False", "range", "int", "str"} {
		if _, err := root.Get(name); err != nil {
			t.Errorf("Get(%q) failed: %v", name, err)
		}
	}
	if root.Has("range") {
		t.Error("builtins are synthesised on demand, not pre-bound into the frame")
	}
}

func TestScopeTerminateIsVisibleFromChildren(t *testing.T) {
	root := newTestScope()
	child := root.NewChildScope()
	child.Terminate(Bool(true))
	if !root.IsTerminated() {
		t.Fatal("Terminate on a child scope should mark the root as terminated")
	}
	if !child.IsTerminated() {
		t.Fatal("IsTerminated should see the root's terminated flag from a child")
	}
}
