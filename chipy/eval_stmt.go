package chipy

import (
	"github.com/chipy-lang/chipy/ast"
	"github.com/chipy-lang/chipy/compile"
)

// execAssignTarget binds value into scope according to the single target
// node that follows an Assign's value and count (spec §4.7): a bare Name,
// a String treated as a name, or a 2-tuple of either, destructuring a
// Tuple value positionally.
func (i *Interpreter) execAssignTarget(dec *compile.Decoder, scope *Scope, value Value) error {
	tag, err := dec.NodeType()
	if err != nil {
		return wrapEncoding(err)
	}
	switch tag {
	case compile.Name, compile.String:
		name, err := dec.String()
		if err != nil {
			return wrapEncoding(err)
		}
		scope.Set(name, value)
		return nil

	case compile.Tuple:
		n, err := dec.Uint32()
		if err != nil {
			return wrapEncoding(err)
		}
		names := make([]string, 0, n)
		for idx := uint32(0); idx < n; idx++ {
			ntag, err := dec.NodeType()
			if err != nil {
				return wrapEncoding(err)
			}
			if ntag != compile.Name && ntag != compile.String {
				return &Error{Kind: EncodingError, Msg: "tuple assignment target element must be Name or String"}
			}
			s, err := dec.String()
			if err != nil {
				return wrapEncoding(err)
			}
			names = append(names, s)
		}
		if len(names) != 2 {
			return newError(ShapeError, "tuple assignment target must have exactly 2 names, got %d", len(names))
		}
		tup, ok := value.(*Tuple)
		if !ok {
			return newError(TypeError, "cannot unpack %s into 2 names", value.Type())
		}
		scope.Set(names[0], tup.First())
		scope.Set(names[1], tup.Second())
		return nil

	default:
		return &Error{Kind: EncodingError, Msg: "unexpected assignment target node"}
	}
}

// skipAssignTarget mirrors execAssignTarget without binding anything.
func (i *Interpreter) skipAssignTarget(dec *compile.Decoder) error {
	tag, err := dec.NodeType()
	if err != nil {
		return wrapEncoding(err)
	}
	switch tag {
	case compile.Name, compile.String:
		_, err := dec.String()
		return wrapEncoding(err)

	case compile.Tuple:
		n, err := dec.Uint32()
		if err != nil {
			return wrapEncoding(err)
		}
		for idx := uint32(0); idx < n; idx++ {
			if _, err := dec.NodeType(); err != nil {
				return wrapEncoding(err)
			}
			if _, err := dec.String(); err != nil {
				return wrapEncoding(err)
			}
		}
		return nil

	default:
		return &Error{Kind: EncodingError, Msg: "unexpected assignment target node"}
	}
}

// execAugmentedAssign implements `target += value`. Only Add is wired up;
// every other opcode in the table is reserved and fails unimplemented-op,
// matching the grammar's own single emitted case.
func (i *Interpreter) execAugmentedAssign(dec *compile.Decoder, scope *Scope) error {
	opByte, err := dec.Byte()
	if err != nil {
		return wrapEncoding(err)
	}
	name, err := i.readNameNode(dec)
	if err != nil {
		return err
	}
	value, err := i.evalExpr(dec, scope)
	if err != nil {
		return err
	}
	if ast.BinaryOp(opByte) != ast.Add {
		return newError(UnimplementedOp, "augmented assignment operator %s is not implemented", ast.BinaryOp(opByte))
	}
	cur, err := scope.Get(name)
	if err != nil {
		return err
	}
	next, err := addValues(cur, value)
	if err != nil {
		return err
	}
	scope.Set(name, next)
	return nil
}

// execIf runs or skips the body depending on the test, threading the
// loop-state that a break/continue/return reached through the body must
// carry back out to the enclosing statement list.
func (i *Interpreter) execIf(dec *compile.Decoder, scope *Scope, ls loopState) (loopState, error) {
	test, err := i.evalExpr(dec, scope)
	if err != nil {
		return ls, err
	}
	if test.Truthy() {
		return i.execStmt(dec, scope.NewChildScope(), ls)
	}
	return ls, i.skipStmt(dec)
}

// execIfElse mirrors execIf over a mandatory else branch; the branch not
// taken is always skipped to keep the cursor aligned.
func (i *Interpreter) execIfElse(dec *compile.Decoder, scope *Scope, ls loopState) (loopState, error) {
	test, err := i.evalExpr(dec, scope)
	if err != nil {
		return ls, err
	}
	if test.Truthy() {
		next, err := i.execStmt(dec, scope.NewChildScope(), ls)
		if err != nil {
			return ls, err
		}
		if err := i.skipStmt(dec); err != nil {
			return ls, err
		}
		return next, nil
	}
	if err := i.skipStmt(dec); err != nil {
		return ls, err
	}
	return i.execStmt(dec, scope.NewChildScope(), ls)
}

// readForTargets reads the 1-or-2-name header a ForLoop writes: a bare
// Name, or a Tuple of exactly 2 Names.
func (i *Interpreter) readForTargets(dec *compile.Decoder) ([]string, error) {
	tag, err := dec.NodeType()
	if err != nil {
		return nil, wrapEncoding(err)
	}
	switch tag {
	case compile.Name:
		name, err := dec.String()
		if err != nil {
			return nil, wrapEncoding(err)
		}
		return []string{name}, nil

	case compile.Tuple:
		n, err := dec.Uint32()
		if err != nil {
			return nil, wrapEncoding(err)
		}
		names := make([]string, 0, n)
		for idx := uint32(0); idx < n; idx++ {
			name, err := i.readNameNode(dec)
			if err != nil {
				return nil, err
			}
			names = append(names, name)
		}
		return names, nil

	default:
		return nil, &Error{Kind: EncodingError, Msg: "expected Name or Tuple for loop targets"}
	}
}

func (i *Interpreter) skipForTargets(dec *compile.Decoder) error {
	tag, err := dec.NodeType()
	if err != nil {
		return wrapEncoding(err)
	}
	switch tag {
	case compile.Name:
		_, err := dec.String()
		return wrapEncoding(err)

	case compile.Tuple:
		n, err := dec.Uint32()
		if err != nil {
			return wrapEncoding(err)
		}
		for idx := uint32(0); idx < n; idx++ {
			if err := i.skipNameNode(dec); err != nil {
				return err
			}
		}
		return nil

	default:
		return &Error{Kind: EncodingError, Msg: "expected Name or Tuple for loop targets"}
	}
}

func bindForTargets(scope *Scope, names []string, v Value) error {
	if len(names) == 1 {
		scope.Bind(names[0], v)
		return nil
	}
	tup, ok := v.(*Tuple)
	if !ok {
		return newError(TypeError, "cannot unpack %s into %d names", v.Type(), len(names))
	}
	scope.Bind(names[0], tup.First())
	scope.Bind(names[1], tup.Second())
	return nil
}

// iteratorOver produces the Iterator driving a for loop: a value that is
// already is_generator is used directly, otherwise can_iterate produces a
// fresh one. Anything else is not-iterable.
func iteratorOver(v Value) (Iterator, error) {
	if isGenerator(v) {
		return v.(Iterator), nil
	}
	if canIterate(v) {
		return v.(Iterable).Iterate(), nil
	}
	return nil, newError(TypeError, "%s is not iterable", v.Type())
}

// execForLoop binds the iterator's successive values into a fresh child
// scope per iteration, seeking the decoder back to the body's start for
// each repeat. When the iterator is exhausted the body is skipped once,
// leaving the cursor past the encoded body; on break or return the
// executed body's statement list has already skipped its remaining
// statements, so the cursor is past the body too (spec §4.7).
func (i *Interpreter) execForLoop(dec *compile.Decoder, scope *Scope) error {
	names, err := i.readForTargets(dec)
	if err != nil {
		return err
	}
	iterVal, err := i.evalExpr(dec, scope)
	if err != nil {
		return err
	}
	iter, err := iteratorOver(iterVal)
	if err != nil {
		return err
	}
	bodyStart := dec.Pos()
	for {
		v, ok := iter.Next()
		if !ok {
			dec.SeekTo(bodyStart)
			return i.skipStmt(dec)
		}
		dec.SeekTo(bodyStart)
		child := scope.NewChildScope()
		if err := bindForTargets(child, names, v); err != nil {
			return err
		}
		ls, err := i.execStmt(dec, child, loopTopLevel)
		if err != nil {
			return err
		}
		if child.IsTerminated() || ls == loopBreak {
			return nil
		}
	}
}

// execWhileLoop re-evaluates the test before each iteration, seeking back
// to the test's start every time. A falsey test skips the body once and
// exits.
func (i *Interpreter) execWhileLoop(dec *compile.Decoder, scope *Scope) error {
	testStart := dec.Pos()
	for {
		dec.SeekTo(testStart)
		test, err := i.evalExpr(dec, scope)
		if err != nil {
			return err
		}
		if !test.Truthy() {
			return i.skipStmt(dec)
		}
		child := scope.NewChildScope()
		ls, err := i.execStmt(dec, child, loopTopLevel)
		if err != nil {
			return err
		}
		if child.IsTerminated() || ls == loopBreak {
			return nil
		}
	}
}

// execImport binds each aliased module under its bound name, looked up
// through the host's module registry.
func (i *Interpreter) execImport(dec *compile.Decoder, scope *Scope) error {
	n, err := dec.Uint32()
	if err != nil {
		return wrapEncoding(err)
	}
	for idx := uint32(0); idx < n; idx++ {
		a, err := i.readAliasNode(dec)
		if err != nil {
			return err
		}
		m, err := i.getModule(a.Name)
		if err != nil {
			return err
		}
		scope.Set(a.BoundName(), m)
	}
	return nil
}

// execImportFrom binds individual members of one module under their
// (possibly rebound) names.
func (i *Interpreter) execImportFrom(dec *compile.Decoder, scope *Scope) error {
	modName, err := dec.String()
	if err != nil {
		return wrapEncoding(err)
	}
	n, err := dec.Uint32()
	if err != nil {
		return wrapEncoding(err)
	}
	m, err := i.getModule(modName)
	if err != nil {
		return err
	}
	for idx := uint32(0); idx < n; idx++ {
		a, err := i.readAliasNode(dec)
		if err != nil {
			return err
		}
		member, err := m.GetMember(a.Name)
		if err != nil {
			return err
		}
		scope.Set(a.BoundName(), member)
	}
	return nil
}
