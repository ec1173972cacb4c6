package runtime

import (
	"errors"
	"testing"
)

func TestEnvironmentDefineAndGet(t *testing.T) {
	env := NewEnvironment()
	env.Define("a", NumberValue{Val: 1})
	env.Define("b", nil)

	got, err := env.Get("a")
	if err != nil {
		t.Fatalf("Get(a) failed: %v", err)
	}
	if !Equal(got, NumberValue{Val: 1}) {
		t.Fatalf("Get(a) = %#v", got)
	}
	got, err = env.Get("b")
	if err != nil || got.Kind() != KindNil {
		t.Fatalf("expected nil binding for b, got %#v (%v)", got, err)
	}

	env.Define("a", StringValue{Val: "again"})
	got, _ = env.Get("a")
	if !Equal(got, StringValue{Val: "again"}) {
		t.Fatalf("redeclaration should replace the binding, got %#v", got)
	}
}

func TestEnvironmentAssign(t *testing.T) {
	env := NewEnvironment()
	env.Define("x", NumberValue{Val: 1})
	if err := env.Assign("x", nil); err != nil {
		t.Fatalf("Assign failed: %v", err)
	}
	got, _ := env.Get("x")
	if got.Kind() != KindNil {
		t.Fatalf("expected nil after assigning nil, got %#v", got)
	}
}

func TestEnvironmentUndefined(t *testing.T) {
	env := NewEnvironment()
	if _, err := env.Get("missing"); !errors.Is(err, ErrUndefinedVariable) {
		t.Fatalf("expected ErrUndefinedVariable, got %v", err)
	}
	if err := env.Assign("missing", Nil); !errors.Is(err, ErrUndefinedVariable) {
		t.Fatalf("expected ErrUndefinedVariable from Assign, got %v", err)
	}
	if _, err := env.Get("missing"); err == nil {
		t.Fatalf("failed Assign must not create a binding")
	}
}

func TestEnvironmentSnapshot(t *testing.T) {
	env := NewEnvironment()
	env.Define("a", BoolValue{Val: true})
	snap := env.Snapshot()
	if len(snap) != 1 || !Equal(snap["a"], BoolValue{Val: true}) {
		t.Fatalf("Snapshot = %#v", snap)
	}
	snap["c"] = Nil
	if _, err := env.Get("c"); err == nil {
		t.Fatalf("snapshot mutation leaked into environment")
	}
}
