package chipy

import "math/rand"

// newRandModule builds the reserved `rand` module: `from rand import
// randint`. randint(low, high) returns a uniformly distributed Integer in
// [low, high], matching the single function the source's modules/rand.cpp
// exposes — no floating-point random() is added, per the Non-goals'
// exclusion of float arithmetic.
func newRandModule() Module {
	return NewSimpleModule("rand", map[string]Value{
		"randint": NewBuiltin("randint", builtinRandint),
	})
}

func builtinRandint(args []Value) (Value, error) {
	if len(args) != 2 {
		return nil, newError(TypeError, "randint() takes 2 arguments, got %d", len(args))
	}
	low, ok := args[0].(Integer)
	if !ok {
		return nil, newError(TypeError, "randint() arguments must be int, got %s", args[0].Type())
	}
	high, ok := args[1].(Integer)
	if !ok {
		return nil, newError(TypeError, "randint() arguments must be int, got %s", args[1].Type())
	}
	if high < low {
		return nil, newError(TypeError, "randint(): low %d is greater than high %d", low, high)
	}
	span := int64(high) - int64(low) + 1
	return Integer(int64(low) + rand.Int63n(span)), nil
}
