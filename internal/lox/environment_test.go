package lox

import "testing"

func TestEnvironmentDefineAndGet(t *testing.T) {
	env := NewEnvironment(nil)
	env.Define("a", NewNumber(1))

	v, err := env.Get("a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n, _ := IsNumber(v); n != 1 {
		t.Errorf("got %v", v)
	}
}

func TestEnvironmentGetMissingIsRuntimeError(t *testing.T) {
	env := NewEnvironment(nil)
	if _, err := env.Get("missing"); err == nil {
		t.Fatal("expected an error")
	}
}

func TestEnvironmentAssignWalksParents(t *testing.T) {
	parent := NewEnvironment(nil)
	parent.Define("a", NewNumber(1))
	child := NewEnvironment(parent)

	if err := child.Assign("a", NewNumber(2)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, _ := parent.Get("a")
	if n, _ := IsNumber(v); n != 2 {
		t.Errorf("expected parent's slot updated, got %v", v)
	}
}

func TestEnvironmentAssignFailsWithoutExistingSlot(t *testing.T) {
	env := NewEnvironment(nil)
	if err := env.Assign("never_defined", NewNumber(1)); err == nil {
		t.Fatal("expected an error")
	}
}

func TestEnvironmentUninitializedSentinelErrorsOnRead(t *testing.T) {
	env := NewEnvironment(nil)
	env.DefineUninitialized("a")

	_, err := env.Get("a")
	if err == nil {
		t.Fatal("expected an error reading an uninitialized slot")
	}
	if err.Error() != "Uninitialized variable 'a'." {
		t.Errorf("got %q", err.Error())
	}
}

func TestEnvironmentGetAtAndAssignAt(t *testing.T) {
	grandparent := NewEnvironment(nil)
	grandparent.Define("a", NewNumber(1))
	parent := NewEnvironment(grandparent)
	child := NewEnvironment(parent)

	v, err := child.GetAt(2, "a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n, _ := IsNumber(v); n != 1 {
		t.Errorf("got %v", v)
	}

	child.AssignAt(2, "a", NewNumber(9))
	v, _ = grandparent.Get("a")
	if n, _ := IsNumber(v); n != 9 {
		t.Errorf("expected grandparent updated, got %v", v)
	}
}
