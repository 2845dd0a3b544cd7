package chipy

import "strconv"

// Value is the common capability surface every variant implements: a type
// tag, a truthiness projection, and a shallow duplicate. Equality and
// ordering are free functions below rather than methods, since they are
// only defined pairwise between a handful of variants (see valuesEqual,
// valuesLess) and a method would force every other variant to carry a
// meaningless implementation.
type Value interface {
	Type() string
	Truthy() bool
	Duplicate() Value
}

// Callable is satisfied by any Value invokable with a positional argument
// vector. Functions, Builtins and DictItems all implement it.
type Callable interface {
	Value
	Call(args []Value) (Value, error)
}

// Iterable is satisfied by a container that produces a fresh Iterator over
// its elements on demand (List, Dictionary).
type Iterable interface {
	Value
	Iterate() Iterator
}

// Iterator is satisfied both by dedicated iterator values (which are
// "generators": already their own iterator, no Iterate() step needed,
// e.g. Range) and by the fresh iterators Iterable.Iterate returns.
// Next reports ok=false at end of iteration, and again on every later call.
type Iterator interface {
	Value
	Next() (Value, bool)
}

func isCallable(v Value) bool {
	_, ok := v.(Callable)
	return ok
}

func canIterate(v Value) bool {
	_, ok := v.(Iterable)
	return ok
}

func isGenerator(v Value) bool {
	_, ok := v.(Iterator)
	return ok
}

// Bool is the boolean scalar.
type Bool bool

func (b Bool) Type() string     { return "bool" }
func (b Bool) Truthy() bool     { return bool(b) }
func (b Bool) Duplicate() Value { return b }

// Integer is a 32-bit signed integer scalar.
type Integer int32

func (i Integer) Type() string     { return "int" }
func (i Integer) Truthy() bool     { return i != 0 }
func (i Integer) Duplicate() Value { return i }

// Float is a 64-bit IEEE scalar. The grammar and compiler never produce
// float literals or float-typed operators, so this variant exists only to
// keep the Value family's closed sum complete and to give a host a type to
// hand in via a future extension; it is otherwise inert.
type Float float64

func (f Float) Type() string     { return "float" }
func (f Float) Truthy() bool     { return f != 0 }
func (f Float) Duplicate() Value { return f }

// String is a UTF-8 scalar.
type String string

func (s String) Type() string     { return "string" }
func (s String) Truthy() bool     { return true }
func (s String) Duplicate() Value { return s }

// NoneType is the single inhabitant of the "absence" variant. None is its
// sole value.
type NoneType struct{}

// None is the one instance of NoneType; every binding and comparison
// shares it.
var None = NoneType{}

func (NoneType) Type() string     { return "none" }
func (NoneType) Truthy() bool     { return false }
func (NoneType) Duplicate() Value { return None }

// AliasValue is the transient value produced by evaluating an Alias AST
// node during Import/ImportFrom. It is never bound to a name directly —
// Import/ImportFrom consume it and bind the resolved member instead.
type AliasValue struct {
	Name   string
	AsName string
}

func (a AliasValue) Type() string     { return "alias" }
func (a AliasValue) Truthy() bool     { return true }
func (a AliasValue) Duplicate() Value { return a }

// BoundName returns AsName if set, otherwise Name — the name an Import or
// ImportFrom binding uses.
func (a AliasValue) BoundName() string {
	if a.AsName != "" {
		return a.AsName
	}
	return a.Name
}

// valuesEqual implements the `==` rule (spec: defined only for matching
// String/String and Integer/Integer pairs, plus the None/None special
// case; every other pairing, including same-typed Bool/Bool or
// container/container, is false).
func valuesEqual(a, b Value) bool {
	switch x := a.(type) {
	case Integer:
		y, ok := b.(Integer)
		return ok && x == y
	case String:
		y, ok := b.(String)
		return ok && x == y
	case NoneType:
		_, ok := b.(NoneType)
		return ok
	default:
		return false
	}
}

// valuesLess implements `<` (and, negated/reflected, the other three
// ordering operators); only Integer/Integer pairs are defined, everything
// else is false.
func valuesLess(a, b Value) bool {
	x, ok := a.(Integer)
	if !ok {
		return false
	}
	y, ok := b.(Integer)
	if !ok {
		return false
	}
	return x < y
}

// formatInt renders an Integer the way the str() builtin does.
func formatInt(i Integer) string { return strconv.FormatInt(int64(i), 10) }
