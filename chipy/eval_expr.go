package chipy

import (
	"github.com/chipy-lang/chipy/ast"
	"github.com/chipy-lang/chipy/compile"
)

// evalExprTagged evaluates the payload of an expression-shaped node whose
// NodeType byte has already been consumed as tag.
func (i *Interpreter) evalExprTagged(dec *compile.Decoder, scope *Scope, tag compile.NodeType) (Value, error) {
	switch tag {
	case compile.Name:
		name, err := dec.String()
		if err != nil {
			return nil, &Error{Kind: EncodingError, Msg: err.Error()}
		}
		return scope.Get(name)

	case compile.String:
		s, err := dec.String()
		if err != nil {
			return nil, &Error{Kind: EncodingError, Msg: err.Error()}
		}
		if err := i.alloc(len(s)); err != nil {
			return nil, err
		}
		return String(s), nil

	case compile.Integer:
		n, err := dec.Int32()
		if err != nil {
			return nil, &Error{Kind: EncodingError, Msg: err.Error()}
		}
		return Integer(n), nil

	case compile.List:
		n, err := dec.Uint32()
		if err != nil {
			return nil, &Error{Kind: EncodingError, Msg: err.Error()}
		}
		elems := make([]Value, 0, n)
		for idx := uint32(0); idx < n; idx++ {
			v, err := i.evalExpr(dec, scope)
			if err != nil {
				return nil, err
			}
			elems = append(elems, v)
		}
		if err := i.alloc(len(elems) * wordSize); err != nil {
			return nil, err
		}
		return NewList(elems), nil

	case compile.Tuple:
		n, err := dec.Uint32()
		if err != nil {
			return nil, &Error{Kind: EncodingError, Msg: err.Error()}
		}
		elems := make([]Value, 0, n)
		for idx := uint32(0); idx < n; idx++ {
			v, err := i.evalExpr(dec, scope)
			if err != nil {
				return nil, err
			}
			elems = append(elems, v)
		}
		if n != 2 {
			return nil, newError(ShapeError, "tuple must have exactly 2 elements, got %d", n)
		}
		if err := i.alloc(2 * wordSize); err != nil {
			return nil, err
		}
		return NewTuple(elems[0], elems[1]), nil

	case compile.Dictionary:
		n, err := dec.Uint32()
		if err != nil {
			return nil, &Error{Kind: EncodingError, Msg: err.Error()}
		}
		d := NewDictionary()
		for idx := uint32(0); idx < n; idx++ {
			key, err := dec.String()
			if err != nil {
				return nil, &Error{Kind: EncodingError, Msg: err.Error()}
			}
			v, err := i.evalExpr(dec, scope)
			if err != nil {
				return nil, err
			}
			if err := i.alloc(len(key) + wordSize); err != nil {
				return nil, err
			}
			d.Insert(key, v)
		}
		return d, nil

	case compile.Compare:
		return i.evalCompare(dec, scope)

	case compile.BoolOp:
		return i.evalBoolOp(dec, scope)

	case compile.BinaryOp:
		return i.evalBinaryOp(dec, scope)

	case compile.UnaryOp:
		return i.evalUnaryOp(dec, scope)

	case compile.Call:
		return i.evalCall(dec, scope)

	case compile.Attribute:
		return i.evalAttribute(dec, scope)

	case compile.Subscript:
		return i.evalSubscript(dec, scope)

	case compile.Alias:
		name, err := dec.String()
		if err != nil {
			return nil, &Error{Kind: EncodingError, Msg: err.Error()}
		}
		asName, err := dec.String()
		if err != nil {
			return nil, &Error{Kind: EncodingError, Msg: err.Error()}
		}
		return AliasValue{Name: name, AsName: asName}, nil

	default:
		return nil, &Error{Kind: EncodingError, Msg: "unexpected node type " + tag.String() + " in expression position"}
	}
}

// skipExprTagged mirrors evalExprTagged without evaluating anything.
func (i *Interpreter) skipExprTagged(dec *compile.Decoder, tag compile.NodeType) error {
	switch tag {
	case compile.Name:
		_, err := dec.String()
		return wrapEncoding(err)

	case compile.String:
		_, err := dec.String()
		return wrapEncoding(err)

	case compile.Integer:
		_, err := dec.Int32()
		return wrapEncoding(err)

	case compile.List, compile.Tuple:
		n, err := dec.Uint32()
		if err != nil {
			return wrapEncoding(err)
		}
		for idx := uint32(0); idx < n; idx++ {
			if err := i.skipExpr(dec); err != nil {
				return err
			}
		}
		return nil

	case compile.Dictionary:
		n, err := dec.Uint32()
		if err != nil {
			return wrapEncoding(err)
		}
		for idx := uint32(0); idx < n; idx++ {
			if _, err := dec.String(); err != nil {
				return wrapEncoding(err)
			}
			if err := i.skipExpr(dec); err != nil {
				return err
			}
		}
		return nil

	case compile.Compare:
		if err := i.skipExpr(dec); err != nil {
			return err
		}
		n, err := dec.Uint32()
		if err != nil {
			return wrapEncoding(err)
		}
		for idx := uint32(0); idx < n; idx++ {
			if _, err := dec.Byte(); err != nil {
				return wrapEncoding(err)
			}
			if err := i.skipExpr(dec); err != nil {
				return err
			}
		}
		return nil

	case compile.BoolOp:
		if _, err := dec.Byte(); err != nil {
			return wrapEncoding(err)
		}
		n, err := dec.Uint32()
		if err != nil {
			return wrapEncoding(err)
		}
		for idx := uint32(0); idx < n; idx++ {
			if err := i.skipExpr(dec); err != nil {
				return err
			}
		}
		return nil

	case compile.BinaryOp:
		if _, err := dec.Byte(); err != nil {
			return wrapEncoding(err)
		}
		if err := i.skipExpr(dec); err != nil {
			return err
		}
		return i.skipExpr(dec)

	case compile.UnaryOp:
		if _, err := dec.Byte(); err != nil {
			return wrapEncoding(err)
		}
		return i.skipExpr(dec)

	case compile.Call:
		if err := i.skipExpr(dec); err != nil {
			return err
		}
		n, err := dec.Uint32()
		if err != nil {
			return wrapEncoding(err)
		}
		for idx := uint32(0); idx < n; idx++ {
			if err := i.skipExpr(dec); err != nil {
				return err
			}
		}
		return nil

	case compile.Attribute:
		if err := i.skipExpr(dec); err != nil {
			return err
		}
		return i.skipNameNode(dec)

	case compile.Subscript:
		idxTag, err := dec.NodeType()
		if err != nil {
			return wrapEncoding(err)
		}
		if idxTag != compile.Index {
			return &Error{Kind: EncodingError, Msg: "expected Index node inside Subscript"}
		}
		if err := i.skipExpr(dec); err != nil {
			return err
		}
		return i.skipExpr(dec)

	case compile.Alias:
		if _, err := dec.String(); err != nil {
			return wrapEncoding(err)
		}
		_, err := dec.String()
		return wrapEncoding(err)

	default:
		return &Error{Kind: EncodingError, Msg: "unexpected node type " + tag.String() + " in expression position"}
	}
}

func wrapEncoding(err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: EncodingError, Msg: err.Error()}
}

// evalCompare implements spec §4.7's comparison semantics: each term is
// compared against the right-hand side freshly evaluated for that term,
// and the chain's result is the conjunction of every term (`a < b < c`
// means `a < b and b < c`, each comparison made against the original
// operand in that position, not an accumulated boolean).
func (i *Interpreter) evalCompare(dec *compile.Decoder, scope *Scope) (Value, error) {
	cur, err := i.evalExpr(dec, scope)
	if err != nil {
		return nil, err
	}
	n, err := dec.Uint32()
	if err != nil {
		return nil, wrapEncoding(err)
	}
	result := true
	for idx := uint32(0); idx < n; idx++ {
		opByte, err := dec.Byte()
		if err != nil {
			return nil, wrapEncoding(err)
		}
		right, err := i.evalExpr(dec, scope)
		if err != nil {
			return nil, err
		}
		res, err := compareValues(ast.CompareOp(opByte), cur, right)
		if err != nil {
			return nil, err
		}
		if !res {
			result = false
		}
		cur = right
	}
	return Bool(result), nil
}

func compareValues(op ast.CompareOp, left, right Value) (bool, error) {
	switch op {
	case ast.EQ:
		return valuesEqual(left, right), nil
	case ast.NE:
		return !valuesEqual(left, right), nil
	case ast.LT:
		return valuesLess(left, right), nil
	case ast.LE:
		return !valuesLess(right, left), nil
	case ast.GT:
		return valuesLess(right, left), nil
	case ast.GE:
		return !valuesLess(left, right), nil
	case ast.In, ast.NotIn:
		list, ok := right.(*List)
		if !ok {
			return false, newError(TypeError, "membership test requires a list, got %s", right.Type())
		}
		found := list.Contains(left)
		if op == ast.NotIn {
			return !found, nil
		}
		return found, nil
	default:
		return false, newError(UnimplementedOp, "comparison operator %s is not implemented", op)
	}
}

// evalBoolOp implements and/or with skip-not-execute short circuiting:
// `and` stops at the first falsey operand, `or` at the first truthy one.
// Every operand must be Bool or None.
func (i *Interpreter) evalBoolOp(dec *compile.Decoder, scope *Scope) (Value, error) {
	opByte, err := dec.Byte()
	if err != nil {
		return nil, wrapEncoding(err)
	}
	op := ast.BoolOp(opByte)
	n, err := dec.Uint32()
	if err != nil {
		return nil, wrapEncoding(err)
	}
	result := op == ast.And
	decided := false
	for idx := uint32(0); idx < n; idx++ {
		if decided {
			if err := i.skipExpr(dec); err != nil {
				return nil, err
			}
			continue
		}
		v, err := i.evalExpr(dec, scope)
		if err != nil {
			return nil, err
		}
		if !isBoolOrNone(v) {
			return nil, newError(TypeError, "%s operand must be bool or none, got %s", op, v.Type())
		}
		t := v.Truthy()
		result = t
		if op == ast.And && !t {
			decided = true
		}
		if op == ast.Or && t {
			decided = true
		}
	}
	return Bool(result), nil
}

func isBoolOrNone(v Value) bool {
	switch v.(type) {
	case Bool, NoneType:
		return true
	default:
		return false
	}
}

func (i *Interpreter) evalBinaryOp(dec *compile.Decoder, scope *Scope) (Value, error) {
	opByte, err := dec.Byte()
	if err != nil {
		return nil, wrapEncoding(err)
	}
	left, err := i.evalExpr(dec, scope)
	if err != nil {
		return nil, err
	}
	right, err := i.evalExpr(dec, scope)
	if err != nil {
		return nil, err
	}
	op := ast.BinaryOp(opByte)
	switch op {
	case ast.Add:
		return addValues(left, right)
	case ast.Sub:
		return subValues(left, right)
	default:
		return nil, newError(UnimplementedOp, "binary operator %s is not implemented", op)
	}
}

// addValues implements `+`: Integer+Integer or String+String, per spec §4.7.
func addValues(left, right Value) (Value, error) {
	switch l := left.(type) {
	case Integer:
		r, ok := right.(Integer)
		if !ok {
			return nil, newError(TypeError, "cannot add %s and %s", left.Type(), right.Type())
		}
		return l + r, nil
	case String:
		r, ok := right.(String)
		if !ok {
			return nil, newError(TypeError, "cannot add %s and %s", left.Type(), right.Type())
		}
		return l + r, nil
	default:
		return nil, newError(TypeError, "+ does not support %s", left.Type())
	}
}

// subValues implements `-`: Integer-Integer only.
func subValues(left, right Value) (Value, error) {
	l, ok := left.(Integer)
	if !ok {
		return nil, newError(TypeError, "- does not support %s", left.Type())
	}
	r, ok := right.(Integer)
	if !ok {
		return nil, newError(TypeError, "cannot subtract %s from %s", right.Type(), left.Type())
	}
	return l - r, nil
}

func (i *Interpreter) evalUnaryOp(dec *compile.Decoder, scope *Scope) (Value, error) {
	opByte, err := dec.Byte()
	if err != nil {
		return nil, wrapEncoding(err)
	}
	v, err := i.evalExpr(dec, scope)
	if err != nil {
		return nil, err
	}
	switch ast.UnaryOp(opByte) {
	case ast.Not:
		return Bool(!v.Truthy()), nil
	case ast.Neg:
		n, ok := v.(Integer)
		if !ok {
			return nil, newError(TypeError, "unary - does not support %s", v.Type())
		}
		return -n, nil
	default:
		return nil, newError(UnimplementedOp, "unary operator %s is not implemented", ast.UnaryOp(opByte))
	}
}

func (i *Interpreter) evalCall(dec *compile.Decoder, scope *Scope) (Value, error) {
	callee, err := i.evalExpr(dec, scope)
	if err != nil {
		return nil, err
	}
	n, err := dec.Uint32()
	if err != nil {
		return nil, wrapEncoding(err)
	}
	args := make([]Value, 0, n)
	for idx := uint32(0); idx < n; idx++ {
		v, err := i.evalExpr(dec, scope)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}
	if !isCallable(callee) {
		return nil, newError(TypeError, "%s is not callable", callee.Type())
	}
	return callee.(Callable).Call(args)
}

func (i *Interpreter) evalAttribute(dec *compile.Decoder, scope *Scope) (Value, error) {
	value, err := i.evalExpr(dec, scope)
	if err != nil {
		return nil, err
	}
	name, err := i.readNameNode(dec)
	if err != nil {
		return nil, err
	}
	switch v := value.(type) {
	case Module:
		return v.GetMember(name)
	case *Dictionary:
		if name == "items" {
			return &DictItems{dict: v}, nil
		}
		return nil, newError(TypeError, "dict has no attribute %q", name)
	default:
		return nil, newError(TypeError, "%s has no attribute %q", value.Type(), name)
	}
}

func (i *Interpreter) evalSubscript(dec *compile.Decoder, scope *Scope) (Value, error) {
	idxTag, err := dec.NodeType()
	if err != nil {
		return nil, wrapEncoding(err)
	}
	if idxTag != compile.Index {
		return nil, &Error{Kind: EncodingError, Msg: "expected Index node inside Subscript"}
	}
	index, err := i.evalExpr(dec, scope)
	if err != nil {
		return nil, err
	}
	base, err := i.evalExpr(dec, scope)
	if err != nil {
		return nil, err
	}
	switch b := base.(type) {
	case *Dictionary:
		key, ok := index.(String)
		if !ok {
			return nil, newError(TypeError, "dict subscript requires a string key, got %s", index.Type())
		}
		return b.Get(string(key)), nil
	case *List:
		n, ok := index.(Integer)
		if !ok {
			return nil, newError(TypeError, "list subscript requires an int index, got %s", index.Type())
		}
		return b.Get(int(n))
	default:
		return nil, newError(TypeError, "%s is not subscriptable", base.Type())
	}
}
