package chipy

import "strconv"

// builtinRange implements the `range` built-in. Only the one-argument
// form is implemented; range(n) yields 0, 1, ..., n-1. The two/three
// argument forms are a named TODO: the grammar and compiler happily
// accept the extra arguments, but the evaluator rejects them rather than
// silently misinterpreting the call.
func builtinRange(args []Value) (Value, error) {
	switch len(args) {
	case 1:
		n, ok := args[0].(Integer)
		if !ok {
			return nil, newError(TypeError, "range() argument must be int, got %s", args[0].Type())
		}
		return NewRange(0, int32(n), 1)
	case 2, 3:
		return nil, newError(UnimplementedOp, "range() with %d arguments is not implemented, only range(n)", len(args))
	default:
		return nil, newError(TypeError, "range() takes 1 argument, got %d", len(args))
	}
}

// builtinInt implements `int`: identity on Integer, decimal parse on
// String. Per spec §9 it returns a (duplicated) value rather than
// synthesising a distinct object when the argument is already an Integer.
func builtinInt(args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, newError(TypeError, "int() takes 1 argument, got %d", len(args))
	}
	switch v := args[0].(type) {
	case Integer:
		return v.Duplicate(), nil
	case String:
		n, err := strconv.ParseInt(string(v), 10, 32)
		if err != nil {
			return nil, newError(TypeError, "int(): invalid literal %q", string(v))
		}
		return Integer(n), nil
	default:
		return nil, newError(TypeError, "int() argument must be int or string, got %s", v.Type())
	}
}

// builtinStr implements `str`: identity on String, decimal format on
// Integer.
func builtinStr(args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, newError(TypeError, "str() takes 1 argument, got %d", len(args))
	}
	switch v := args[0].(type) {
	case String:
		return v.Duplicate(), nil
	case Integer:
		return String(formatInt(v)), nil
	default:
		return nil, newError(TypeError, "str() argument must be int or string, got %s", v.Type())
	}
}

// builtinPrint implements `print`: one String argument, written to the
// interpreter's print sink, returning None.
func (i *Interpreter) builtinPrint(args []Value) (Value, error) {
	if len(args) != 1 {
		return nil, newError(TypeError, "print() takes 1 argument, got %d", len(args))
	}
	s, ok := args[0].(String)
	if !ok {
		return nil, newError(TypeError, "print() argument must be a string, got %s", args[0].Type())
	}
	i.printSink(string(s))
	return None, nil
}
