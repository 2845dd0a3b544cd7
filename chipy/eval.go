package chipy

import (
	"github.com/chipy-lang/chipy/compile"
)

// loopState is the cascade threaded through every recursive statement
// evaluation to implement break/continue without a scheduler (spec §4.6).
type loopState int

const (
	loopNone loopState = iota
	loopTopLevel
	loopNormal
	loopBreak
	loopContinue
)

// execStatementList runs the payload of a StatementList node whose
// NodeType tag has already been consumed by the caller: a 4-byte count
// followed by that many statements. Once the scope terminates (Return) or
// ls becomes Break/Continue, every remaining statement is only skipped,
// never executed, keeping the cursor aligned with what skipStatementList
// would have consumed.
func (i *Interpreter) execStatementList(dec *compile.Decoder, scope *Scope, ls loopState) (loopState, error) {
	n, err := dec.Uint32()
	if err != nil {
		return ls, &Error{Kind: EncodingError, Msg: err.Error()}
	}
	cur := ls
	if cur == loopTopLevel {
		cur = loopNormal
	}
	for idx := uint32(0); idx < n; idx++ {
		if scope.IsTerminated() || cur == loopBreak || cur == loopContinue {
			if err := i.skipStmt(dec); err != nil {
				return cur, err
			}
			continue
		}
		if err := i.countStatement(); err != nil {
			return cur, err
		}
		next, err := i.execStmt(dec, scope, cur)
		if err != nil {
			return cur, err
		}
		cur = next
	}
	return cur, nil
}

// skipStatementList mirrors execStatementList's structural recursion
// without evaluating anything, for a StatementList whose tag has already
// been consumed.
func (i *Interpreter) skipStatementList(dec *compile.Decoder) error {
	n, err := dec.Uint32()
	if err != nil {
		return &Error{Kind: EncodingError, Msg: err.Error()}
	}
	for idx := uint32(0); idx < n; idx++ {
		if err := i.skipStmt(dec); err != nil {
			return err
		}
	}
	return nil
}

// execStmt reads one statement-position node and executes it. Most
// NodeType tags are statement-shaped and handled directly; any
// expression-shaped tag reaching this function is a bare expression
// statement (no dedicated wire tag — see chipy/compile), evaluated for
// its side effects and discarded.
func (i *Interpreter) execStmt(dec *compile.Decoder, scope *Scope, ls loopState) (loopState, error) {
	tag, err := dec.NodeType()
	if err != nil {
		return ls, &Error{Kind: EncodingError, Msg: err.Error()}
	}
	switch tag {
	case compile.StatementList:
		return i.execStatementList(dec, scope, ls)

	case compile.Assign:
		value, err := i.evalExpr(dec, scope)
		if err != nil {
			return ls, err
		}
		if _, err := dec.Uint32(); err != nil { // target count, always 1
			return ls, &Error{Kind: EncodingError, Msg: err.Error()}
		}
		if err := i.execAssignTarget(dec, scope, value); err != nil {
			return ls, err
		}
		return ls, nil

	case compile.AugmentedAssign:
		return ls, i.execAugmentedAssign(dec, scope)

	case compile.Return:
		value, err := i.evalExpr(dec, scope)
		if err != nil {
			return ls, err
		}
		scope.Terminate(value)
		return ls, nil

	case compile.Break:
		if ls == loopNone {
			return ls, newError(LoopControlOutsideLoop, "break outside of a loop")
		}
		return loopBreak, nil

	case compile.Continue:
		if ls == loopNone {
			return ls, newError(LoopControlOutsideLoop, "continue outside of a loop")
		}
		return loopContinue, nil

	case compile.If:
		return i.execIf(dec, scope, ls)

	case compile.IfElse:
		return i.execIfElse(dec, scope, ls)

	case compile.ForLoop:
		return ls, i.execForLoop(dec, scope)

	case compile.WhileLoop:
		return ls, i.execWhileLoop(dec, scope)

	case compile.Import:
		return ls, i.execImport(dec, scope)

	case compile.ImportFrom:
		return ls, i.execImportFrom(dec, scope)

	default:
		_, err := i.evalExprTagged(dec, scope, tag)
		return ls, err
	}
}

// skipStmt mirrors execStmt's dispatch without evaluating anything.
func (i *Interpreter) skipStmt(dec *compile.Decoder) error {
	tag, err := dec.NodeType()
	if err != nil {
		return &Error{Kind: EncodingError, Msg: err.Error()}
	}
	switch tag {
	case compile.StatementList:
		return i.skipStatementList(dec)

	case compile.Assign:
		if err := i.skipExpr(dec); err != nil {
			return err
		}
		n, err := dec.Uint32()
		if err != nil {
			return &Error{Kind: EncodingError, Msg: err.Error()}
		}
		for idx := uint32(0); idx < n; idx++ {
			if err := i.skipAssignTarget(dec); err != nil {
				return err
			}
		}
		return nil

	case compile.AugmentedAssign:
		if _, err := dec.Byte(); err != nil {
			return &Error{Kind: EncodingError, Msg: err.Error()}
		}
		if err := i.skipNameNode(dec); err != nil {
			return err
		}
		return i.skipExpr(dec)

	case compile.Return:
		return i.skipExpr(dec)

	case compile.Break, compile.Continue:
		return nil

	case compile.If:
		if err := i.skipExpr(dec); err != nil {
			return err
		}
		return i.skipStmt(dec)

	case compile.IfElse:
		if err := i.skipExpr(dec); err != nil {
			return err
		}
		if err := i.skipStmt(dec); err != nil {
			return err
		}
		return i.skipStmt(dec)

	case compile.ForLoop:
		if err := i.skipForTargets(dec); err != nil {
			return err
		}
		if err := i.skipExpr(dec); err != nil {
			return err
		}
		return i.skipStmt(dec)

	case compile.WhileLoop:
		if err := i.skipExpr(dec); err != nil {
			return err
		}
		return i.skipStmt(dec)

	case compile.Import:
		n, err := dec.Uint32()
		if err != nil {
			return &Error{Kind: EncodingError, Msg: err.Error()}
		}
		for idx := uint32(0); idx < n; idx++ {
			if err := i.skipAliasNode(dec); err != nil {
				return err
			}
		}
		return nil

	case compile.ImportFrom:
		if _, err := dec.String(); err != nil {
			return &Error{Kind: EncodingError, Msg: err.Error()}
		}
		n, err := dec.Uint32()
		if err != nil {
			return &Error{Kind: EncodingError, Msg: err.Error()}
		}
		for idx := uint32(0); idx < n; idx++ {
			if err := i.skipAliasNode(dec); err != nil {
				return err
			}
		}
		return nil

	default:
		return i.skipExprTagged(dec, tag)
	}
}

// evalExpr reads one expression-position node and evaluates it.
func (i *Interpreter) evalExpr(dec *compile.Decoder, scope *Scope) (Value, error) {
	tag, err := dec.NodeType()
	if err != nil {
		return nil, &Error{Kind: EncodingError, Msg: err.Error()}
	}
	return i.evalExprTagged(dec, scope, tag)
}

// skipExpr mirrors evalExpr without evaluating anything.
func (i *Interpreter) skipExpr(dec *compile.Decoder) error {
	tag, err := dec.NodeType()
	if err != nil {
		return &Error{Kind: EncodingError, Msg: err.Error()}
	}
	return i.skipExprTagged(dec, tag)
}

func (i *Interpreter) skipNameNode(dec *compile.Decoder) error {
	tag, err := dec.NodeType()
	if err != nil {
		return &Error{Kind: EncodingError, Msg: err.Error()}
	}
	if tag != compile.Name {
		return &Error{Kind: EncodingError, Msg: "expected Name node"}
	}
	_, err = dec.String()
	if err != nil {
		return &Error{Kind: EncodingError, Msg: err.Error()}
	}
	return nil
}

func (i *Interpreter) readNameNode(dec *compile.Decoder) (string, error) {
	tag, err := dec.NodeType()
	if err != nil {
		return "", &Error{Kind: EncodingError, Msg: err.Error()}
	}
	if tag != compile.Name {
		return "", &Error{Kind: EncodingError, Msg: "expected Name node"}
	}
	s, err := dec.String()
	if err != nil {
		return "", &Error{Kind: EncodingError, Msg: err.Error()}
	}
	return s, nil
}

func (i *Interpreter) skipAliasNode(dec *compile.Decoder) error {
	tag, err := dec.NodeType()
	if err != nil {
		return &Error{Kind: EncodingError, Msg: err.Error()}
	}
	if tag != compile.Alias {
		return &Error{Kind: EncodingError, Msg: "expected Alias node"}
	}
	if _, err := dec.String(); err != nil {
		return &Error{Kind: EncodingError, Msg: err.Error()}
	}
	if _, err := dec.String(); err != nil {
		return &Error{Kind: EncodingError, Msg: err.Error()}
	}
	return nil
}

func (i *Interpreter) readAliasNode(dec *compile.Decoder) (AliasValue, error) {
	tag, err := dec.NodeType()
	if err != nil {
		return AliasValue{}, &Error{Kind: EncodingError, Msg: err.Error()}
	}
	if tag != compile.Alias {
		return AliasValue{}, &Error{Kind: EncodingError, Msg: "expected Alias node"}
	}
	name, err := dec.String()
	if err != nil {
		return AliasValue{}, &Error{Kind: EncodingError, Msg: err.Error()}
	}
	asName, err := dec.String()
	if err != nil {
		return AliasValue{}, &Error{Kind: EncodingError, Msg: err.Error()}
	}
	return AliasValue{Name: name, AsName: asName}, nil
}

