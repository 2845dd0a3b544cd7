package compile

import (
	"fmt"

	"github.com/chipy-lang/chipy/ast"
)

// Compile walks a chipy/ast tree — produced by chipy/lexer and
// chipy/parser, or by any other front end shaped the same way — and emits
// a linear, self-describing byte encoding: a one-byte NodeType tag per
// node followed by its fixed payload, read back by chipy.Interpreter's
// paired execute/skip walker.
func Compile(filename string, file *ast.File) (*Program, error) {
	c := &compiler{}
	if err := c.statementList(file.Body); err != nil {
		return nil, err
	}
	return &Program{Filename: filename, Code: c.w.Bytes()}, nil
}

type compiler struct {
	w Writer
}

func (c *compiler) statementList(list *ast.StatementList) error {
	c.w.NodeType(StatementList)
	c.w.Uint32(uint32(len(list.Stmts)))
	for _, s := range list.Stmts {
		if err := c.stmt(s); err != nil {
			return err
		}
	}
	return nil
}

func (c *compiler) exprList(exprs []ast.Expr) error {
	c.w.Uint32(uint32(len(exprs)))
	for _, e := range exprs {
		if err := c.expr(e); err != nil {
			return err
		}
	}
	return nil
}

// name writes a Name node wrapping a single identifier; this is the shape
// both targets-of-assignment and attribute names take on the wire.
func (c *compiler) name(n string) {
	c.w.NodeType(Name)
	c.w.String(n)
}

func (c *compiler) alias(a *ast.Alias) {
	c.w.NodeType(Alias)
	c.w.String(a.Name)
	c.w.String(a.AsName)
}

// assignTarget writes the single node shape chipy.Interpreter's
// execAssignTarget expects: a bare
// Name/StringLit, or a 2-tuple of them.
func (c *compiler) assignTarget(target ast.Expr) error {
	switch t := target.(type) {
	case *ast.Name:
		c.name(t.Ident)
		return nil
	case *ast.StringLit:
		c.w.NodeType(String)
		c.w.String(t.Value)
		return nil
	case *ast.TupleLit:
		if len(t.Elems) != 2 {
			return fmt.Errorf("%w: assignment target tuple must have exactly 2 names, got %d", ErrShape, len(t.Elems))
		}
		c.w.NodeType(Tuple)
		c.w.Uint32(2)
		for _, e := range t.Elems {
			switch n := e.(type) {
			case *ast.Name:
				c.name(n.Ident)
			case *ast.StringLit:
				c.w.NodeType(String)
				c.w.String(n.Value)
			default:
				return fmt.Errorf("%w: tuple assignment target element must be a name", ErrShape)
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: assignment target must be a name, string, or 2-tuple of names", ErrShape)
	}
}

func (c *compiler) stmt(s ast.Stmt) error {
	switch n := s.(type) {
	case *ast.Assign:
		c.w.NodeType(Assign)
		if err := c.expr(n.Value); err != nil {
			return err
		}
		c.w.Uint32(1)
		return c.assignTarget(n.Target)

	case *ast.AugmentedAssign:
		c.w.NodeType(AugmentedAssign)
		c.w.Byte(byte(n.Op))
		c.name(n.Target.Ident)
		return c.expr(n.Value)

	case *ast.Return:
		c.w.NodeType(Return)
		return c.expr(n.Value)

	case *ast.Break:
		c.w.NodeType(Break)
		return nil

	case *ast.Continue:
		c.w.NodeType(Continue)
		return nil

	case *ast.If:
		c.w.NodeType(If)
		if err := c.expr(n.Test); err != nil {
			return err
		}
		return c.statementList(n.Body)

	case *ast.IfElse:
		c.w.NodeType(IfElse)
		if err := c.expr(n.Test); err != nil {
			return err
		}
		if err := c.statementList(n.Then); err != nil {
			return err
		}
		return c.statementList(n.Else)

	case *ast.ForLoop:
		c.w.NodeType(ForLoop)
		switch len(n.Targets) {
		case 1:
			c.name(n.Targets[0])
		case 2:
			c.w.NodeType(Tuple)
			c.w.Uint32(2)
			c.name(n.Targets[0])
			c.name(n.Targets[1])
		default:
			return fmt.Errorf("%w: for loop can only bind 1 or 2 names, got %d", ErrShape, len(n.Targets))
		}
		if err := c.expr(n.Iter); err != nil {
			return err
		}
		return c.statementList(n.Body)

	case *ast.WhileLoop:
		c.w.NodeType(WhileLoop)
		if err := c.expr(n.Test); err != nil {
			return err
		}
		return c.statementList(n.Body)

	case *ast.Import:
		c.w.NodeType(Import)
		c.w.Uint32(uint32(len(n.Names)))
		for _, a := range n.Names {
			c.alias(a)
		}
		return nil

	case *ast.ImportFrom:
		c.w.NodeType(ImportFrom)
		c.w.String(n.Module)
		c.w.Uint32(uint32(len(n.Names)))
		for _, a := range n.Names {
			c.alias(a)
		}
		return nil

	case *ast.StatementList:
		return c.statementList(n)

	default:
		// Every other statement form is a bare expression statement: the
		// reference front end emits no separate wire tag for it, so
		// neither do we. The evaluator treats any expression NodeType
		// encountered at statement position as one, discarding the value.
		if e, ok := s.(ast.Expr); ok {
			return c.expr(e)
		}
		return fmt.Errorf("%w: cannot compile statement %T", ErrShape, s)
	}
}

func (c *compiler) expr(e ast.Expr) error {
	switch n := e.(type) {
	case *ast.Name:
		c.name(n.Ident)
		return nil

	case *ast.StringLit:
		c.w.NodeType(String)
		c.w.String(n.Value)
		return nil

	case *ast.IntegerLit:
		c.w.NodeType(Integer)
		c.w.Int32(n.Value)
		return nil

	case *ast.ListLit:
		c.w.NodeType(List)
		return c.exprList(n.Elems)

	case *ast.TupleLit:
		c.w.NodeType(Tuple)
		return c.exprList(n.Elems)

	case *ast.DictionaryLit:
		c.w.NodeType(Dictionary)
		c.w.Uint32(uint32(len(n.Entries)))
		for _, ent := range n.Entries {
			c.w.String(ent.Key)
			if err := c.expr(ent.Value); err != nil {
				return err
			}
		}
		return nil

	case *ast.Compare:
		c.w.NodeType(Compare)
		if err := c.expr(n.Left); err != nil {
			return err
		}
		c.w.Uint32(uint32(len(n.Terms)))
		for _, t := range n.Terms {
			c.w.Byte(byte(t.Op))
			if err := c.expr(t.Right); err != nil {
				return err
			}
		}
		return nil

	case *ast.BoolOpExpr:
		c.w.NodeType(BoolOp)
		c.w.Byte(byte(n.Op))
		c.w.Uint32(uint32(len(n.Values)))
		for _, v := range n.Values {
			if err := c.expr(v); err != nil {
				return err
			}
		}
		return nil

	case *ast.BinaryOpExpr:
		c.w.NodeType(BinaryOp)
		c.w.Byte(byte(n.Op))
		if err := c.expr(n.Left); err != nil {
			return err
		}
		return c.expr(n.Right)

	case *ast.UnaryOpExpr:
		c.w.NodeType(UnaryOp)
		c.w.Byte(byte(n.Op))
		return c.expr(n.Value)

	case *ast.Call:
		c.w.NodeType(Call)
		if err := c.expr(n.Func); err != nil {
			return err
		}
		return c.exprList(n.Args)

	case *ast.Attribute:
		c.w.NodeType(Attribute)
		if err := c.expr(n.Value); err != nil {
			return err
		}
		c.name(n.Name.Ident)
		return nil

	case *ast.Subscript:
		idx, ok := n.Index.(*ast.IndexExpr)
		if !ok {
			return fmt.Errorf("%w: subscript index must be an IndexExpr", ErrShape)
		}
		c.w.NodeType(Subscript)
		c.w.NodeType(Index)
		if err := c.expr(idx.Value); err != nil {
			return err
		}
		return c.expr(n.Value)

	case *ast.Alias:
		c.alias(n)
		return nil

	default:
		return fmt.Errorf("%w: cannot compile expression %T", ErrShape, e)
	}
}

// ErrShape is wrapped by errors raised when an AST node's shape cannot be
// encoded (e.g. an assignment target that is neither a name nor a 2-tuple
// of names).
var ErrShape = fmt.Errorf("invalid node shape")
