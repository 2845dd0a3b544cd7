package chipy

// This file defines tests of the Value API, the same remit
// starlark/value_test.go covers for the teacher's own value family.

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTruthy(t *testing.T) {
	for _, test := range []struct {
		v    Value
		want bool
	}{
		{Bool(true), true},
		{Bool(false), false},
		{Integer(0), false},
		{Integer(1), true},
		{Integer(-1), true},
		{String(""), true}, // spec §4.2: no empty-string falsiness
		{String("x"), true},
		{None, false},
		{NewList(nil), true},
		{NewDictionary(), true},
	} {
		if got := test.v.Truthy(); got != test.want {
			t.Errorf("%#v.Truthy() = %v, want %v", test.v, got, test.want)
		}
	}
}

func TestEquality(t *testing.T) {
	for _, test := range []struct {
		a, b Value
		want bool
	}{
		{Integer(1), Integer(1), true},
		{Integer(1), Integer(2), false},
		{String("a"), String("a"), true},
		{String("a"), String("b"), false},
		{Integer(1), String("1"), false},
		{Bool(true), Bool(true), false}, // equality undefined on Bool/Bool
		{None, None, true},
		{None, Integer(0), false},
		{NewList(nil), NewList(nil), false}, // undefined on container/container
	} {
		if got := valuesEqual(test.a, test.b); got != test.want {
			t.Errorf("valuesEqual(%#v, %#v) = %v, want %v", test.a, test.b, got, test.want)
		}
	}
}

func TestOrdering(t *testing.T) {
	for _, test := range []struct {
		a, b Value
		want bool
	}{
		{Integer(1), Integer(2), true},
		{Integer(2), Integer(1), false},
		{Integer(1), Integer(1), false},
		{String("a"), String("b"), false}, // ordering undefined on strings
	} {
		if got := valuesLess(test.a, test.b); got != test.want {
			t.Errorf("valuesLess(%#v, %#v) = %v, want %v", test.a, test.b, got, test.want)
		}
	}
}

func TestDuplicateIsIndependent(t *testing.T) {
	l := NewList([]Value{Integer(1), Integer(2)})
	dup := l.Duplicate().(*List)
	dup.Append(Integer(3))
	if l.Size() != 2 {
		t.Fatalf("original list mutated by appending to duplicate: size = %d, want 2", l.Size())
	}
	if dup.Size() != 3 {
		t.Fatalf("duplicate size = %d, want 3", dup.Size())
	}

	d := NewDictionary()
	d.Insert("a", Integer(1))
	dupD := d.Duplicate().(*Dictionary)
	dupD.Insert("b", Integer(2))
	if d.Size() != 1 {
		t.Fatalf("original dict mutated by inserting into duplicate: size = %d, want 1", d.Size())
	}

	tup := NewTuple(String("x"), Integer(1))
	dupT := tup.Duplicate().(*Tuple)
	if diff := cmp.Diff(tup.First(), dupT.First()); diff != "" {
		t.Errorf("tuple duplicate First() mismatch (-want +got):\n%s", diff)
	}
}

func TestAliasBoundName(t *testing.T) {
	for _, test := range []struct {
		a    AliasValue
		want string
	}{
		{AliasValue{Name: "randint"}, "randint"},
		{AliasValue{Name: "randint", AsName: "ri"}, "ri"},
	} {
		if got := test.a.BoundName(); got != test.want {
			t.Errorf("%#v.BoundName() = %q, want %q", test.a, got, test.want)
		}
	}
}

func TestFormatInt(t *testing.T) {
	for _, test := range []struct {
		i    Integer
		want string
	}{
		{0, "0"},
		{42, "42"},
		{-7, "-7"},
	} {
		if got := formatInt(test.i); got != test.want {
			t.Errorf("formatInt(%d) = %q, want %q", test.i, got, test.want)
		}
	}
}
