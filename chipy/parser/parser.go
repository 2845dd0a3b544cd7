// Package parser turns a chipy/lexer token stream into a chipy/ast tree.
// Together with chipy/lexer it is the default front end feeding
// chipy/compile, which only depends on the chipy/ast shapes this package
// produces, not on this package itself.
package parser

import (
	"fmt"
	"strconv"

	"github.com/chipy-lang/chipy/ast"
	"github.com/chipy-lang/chipy/lexer"
)

// Parse lexes and parses src into a File ready for chipy/compile.Compile.
func Parse(src string) (*ast.File, error) {
	toks, err := lexer.Lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	body, err := p.parseBlockTopLevel()
	if err != nil {
		return nil, err
	}
	return &ast.File{Body: body}, nil
}

type parser struct {
	toks []lexer.Token
	pos  int
}

func (p *parser) cur() lexer.Token  { return p.toks[p.pos] }
func (p *parser) kind() lexer.Kind  { return p.toks[p.pos].Kind }
func (p *parser) pposition() ast.Position { return p.toks[p.pos].Pos }

func (p *parser) advance() lexer.Token {
	t := p.toks[p.pos]
	if p.pos < len(p.toks)-1 {
		p.pos++
	}
	return t
}

func (p *parser) errorf(format string, args ...interface{}) error {
	t := p.cur()
	return fmt.Errorf("chipy: parse error at %d:%d near %q: %s", t.Pos.Line, t.Pos.Col, t.Lit, fmt.Sprintf(format, args...))
}

func (p *parser) isOp(lit string) bool {
	return p.kind() == lexer.OP && p.cur().Lit == lit
}

func (p *parser) isName(lit string) bool {
	return p.kind() == lexer.NAME && p.cur().Lit == lit
}

func (p *parser) expectOp(lit string) (ast.Position, error) {
	if !p.isOp(lit) {
		return ast.Position{}, p.errorf("expected %q", lit)
	}
	pos := p.pposition()
	p.advance()
	return pos, nil
}

func (p *parser) expect(k lexer.Kind) (lexer.Token, error) {
	if p.kind() != k {
		return lexer.Token{}, p.errorf("expected %s", k)
	}
	return p.advance(), nil
}

// parseBlockTopLevel parses statements until EOF.
func (p *parser) parseBlockTopLevel() (*ast.StatementList, error) {
	pos := p.pposition()
	list := &ast.StatementList{}
	list.Position = pos
	for p.kind() != lexer.EOF {
		if p.kind() == lexer.NEWLINE {
			p.advance()
			continue
		}
		s, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		list.Stmts = append(list.Stmts, s)
	}
	return list, nil
}

// parseSuite parses ":" NEWLINE INDENT stmt+ DEDENT, the body of an
// if/for/while.
func (p *parser) parseSuite() (*ast.StatementList, error) {
	if _, err := p.expectOp(":"); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.NEWLINE); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.INDENT); err != nil {
		return nil, err
	}
	pos := p.pposition()
	list := &ast.StatementList{}
	list.Position = pos
	for p.kind() != lexer.DEDENT {
		if p.kind() == lexer.NEWLINE {
			p.advance()
			continue
		}
		if p.kind() == lexer.EOF {
			return nil, p.errorf("unexpected end of input inside block")
		}
		s, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		list.Stmts = append(list.Stmts, s)
	}
	p.advance() // consume DEDENT
	return list, nil
}

func (p *parser) parseStatement() (ast.Stmt, error) {
	switch {
	case p.isName("if"):
		return p.parseIf()
	case p.isName("for"):
		return p.parseFor()
	case p.isName("while"):
		return p.parseWhile()
	case p.isName("return"):
		pos := p.pposition()
		p.advance()
		v, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.endSimpleStatement(); err != nil {
			return nil, err
		}
		return &ast.Return{Base: ast.Base{Position: pos}, Value: v}, nil
	case p.isName("break"):
		pos := p.pposition()
		p.advance()
		if err := p.endSimpleStatement(); err != nil {
			return nil, err
		}
		return &ast.Break{ast.Base{Position: pos}}, nil
	case p.isName("continue"):
		pos := p.pposition()
		p.advance()
		if err := p.endSimpleStatement(); err != nil {
			return nil, err
		}
		return &ast.Continue{ast.Base{Position: pos}}, nil
	case p.isName("import"):
		return p.parseImport()
	case p.isName("from"):
		return p.parseImportFrom()
	default:
		return p.parseSimpleStatement()
	}
}

func (p *parser) endSimpleStatement() error {
	if p.kind() == lexer.NEWLINE {
		p.advance()
		return nil
	}
	if p.kind() == lexer.EOF {
		return nil
	}
	return p.errorf("expected end of statement")
}

func (p *parser) parseIf() (ast.Stmt, error) {
	pos := p.pposition()
	p.advance() // "if"
	test, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	body, err := p.parseSuite()
	if err != nil {
		return nil, err
	}
	if p.isName("elif") {
		// Desugar `elif` into a nested IfElse inside a synthetic Else block,
		// so the compiled encoding only ever sees If/IfElse.
		elsePos := p.pposition()
		p.toks[p.pos].Lit = "if" // reinterpret elif as if for the recursive call
		inner, err := p.parseIf()
		if err != nil {
			return nil, err
		}
		elseList := &ast.StatementList{Base: ast.Base{Position: elsePos}, Stmts: []ast.Stmt{inner}}
		return &ast.IfElse{Base: ast.Base{Position: pos}, Test: test, Then: body, Else: elseList}, nil
	}
	if p.isName("else") {
		p.advance()
		elseBody, err := p.parseSuite()
		if err != nil {
			return nil, err
		}
		return &ast.IfElse{Base: ast.Base{Position: pos}, Test: test, Then: body, Else: elseBody}, nil
	}
	return &ast.If{Base: ast.Base{Position: pos}, Test: test, Body: body}, nil
}

func (p *parser) parseFor() (ast.Stmt, error) {
	pos := p.pposition()
	p.advance() // "for"
	first, err := p.expect(lexer.NAME)
	if err != nil {
		return nil, err
	}
	targets := []string{first.Lit}
	if p.isOp(",") {
		p.advance()
		second, err := p.expect(lexer.NAME)
		if err != nil {
			return nil, err
		}
		targets = append(targets, second.Lit)
	}
	if !p.isName("in") {
		return nil, p.errorf("expected 'in'")
	}
	p.advance()
	iter, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	body, err := p.parseSuite()
	if err != nil {
		return nil, err
	}
	return &ast.ForLoop{Base: ast.Base{Position: pos}, Targets: targets, Iter: iter, Body: body}, nil
}

func (p *parser) parseWhile() (ast.Stmt, error) {
	pos := p.pposition()
	p.advance() // "while"
	test, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	body, err := p.parseSuite()
	if err != nil {
		return nil, err
	}
	return &ast.WhileLoop{Base: ast.Base{Position: pos}, Test: test, Body: body}, nil
}

func (p *parser) parseAlias() (*ast.Alias, error) {
	pos := p.pposition()
	name, err := p.expect(lexer.NAME)
	if err != nil {
		return nil, err
	}
	asName := ""
	if p.isName("as") {
		p.advance()
		as, err := p.expect(lexer.NAME)
		if err != nil {
			return nil, err
		}
		asName = as.Lit
	}
	return &ast.Alias{Base: ast.Base{Position: pos}, Name: name.Lit, AsName: asName}, nil
}

func (p *parser) parseImport() (ast.Stmt, error) {
	pos := p.pposition()
	p.advance() // "import"
	var names []*ast.Alias
	for {
		a, err := p.parseAlias()
		if err != nil {
			return nil, err
		}
		names = append(names, a)
		if p.isOp(",") {
			p.advance()
			continue
		}
		break
	}
	if err := p.endSimpleStatement(); err != nil {
		return nil, err
	}
	return &ast.Import{Base: ast.Base{Position: pos}, Names: names}, nil
}

func (p *parser) parseImportFrom() (ast.Stmt, error) {
	pos := p.pposition()
	p.advance() // "from"
	mod, err := p.expect(lexer.NAME)
	if err != nil {
		return nil, err
	}
	if !p.isName("import") {
		return nil, p.errorf("expected 'import'")
	}
	p.advance()
	var names []*ast.Alias
	for {
		a, err := p.parseAlias()
		if err != nil {
			return nil, err
		}
		names = append(names, a)
		if p.isOp(",") {
			p.advance()
			continue
		}
		break
	}
	if err := p.endSimpleStatement(); err != nil {
		return nil, err
	}
	return &ast.ImportFrom{Base: ast.Base{Position: pos}, Module: mod.Lit, Names: names}, nil
}

// parseSimpleStatement handles assignment, augmented assignment, and bare
// expression statements, all of which start with an expression.
func (p *parser) parseSimpleStatement() (ast.Stmt, error) {
	pos := p.pposition()
	e, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	switch {
	case p.isOp("="):
		p.advance()
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.endSimpleStatement(); err != nil {
			return nil, err
		}
		return &ast.Assign{Base: ast.Base{Position: pos}, Target: e, Value: value}, nil
	case p.isOp("+="):
		p.advance()
		name, ok := e.(*ast.Name)
		if !ok {
			return nil, p.errorf("augmented assignment target must be a name")
		}
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.endSimpleStatement(); err != nil {
			return nil, err
		}
		return &ast.AugmentedAssign{Base: ast.Base{Position: pos}, Op: ast.Add, Target: name, Value: value}, nil
	default:
		if err := p.endSimpleStatement(); err != nil {
			return nil, err
		}
		stmt, ok := e.(ast.Stmt)
		if !ok {
			return nil, p.errorf("expression cannot be used as a statement")
		}
		return stmt, nil
	}
}

// --- expressions, precedence climbing ---

func (p *parser) parseExpr() (ast.Expr, error) { return p.parseOr() }

func (p *parser) parseOr() (ast.Expr, error) {
	pos := p.pposition()
	first, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	values := []ast.Expr{first}
	for p.isName("or") {
		p.advance()
		next, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		values = append(values, next)
	}
	if len(values) == 1 {
		return first, nil
	}
	return &ast.BoolOpExpr{Base: ast.Base{Position: pos}, Op: ast.Or, Values: values}, nil
}

func (p *parser) parseAnd() (ast.Expr, error) {
	pos := p.pposition()
	first, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	values := []ast.Expr{first}
	for p.isName("and") {
		p.advance()
		next, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		values = append(values, next)
	}
	if len(values) == 1 {
		return first, nil
	}
	return &ast.BoolOpExpr{Base: ast.Base{Position: pos}, Op: ast.And, Values: values}, nil
}

func (p *parser) parseNot() (ast.Expr, error) {
	if p.isName("not") {
		pos := p.pposition()
		p.advance()
		v, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOpExpr{Base: ast.Base{Position: pos}, Op: ast.Not, Value: v}, nil
	}
	return p.parseCompare()
}

var compareOps = map[string]ast.CompareOp{
	"==": ast.EQ, "!=": ast.NE, "<": ast.LT, "<=": ast.LE, ">": ast.GT, ">=": ast.GE,
}

func (p *parser) parseCompare() (ast.Expr, error) {
	pos := p.pposition()
	left, err := p.parseAdd()
	if err != nil {
		return nil, err
	}
	var terms []ast.CompareTerm
	for {
		if p.kind() == lexer.OP {
			if op, ok := compareOps[p.cur().Lit]; ok {
				p.advance()
				right, err := p.parseAdd()
				if err != nil {
					return nil, err
				}
				terms = append(terms, ast.CompareTerm{Op: op, Right: right})
				continue
			}
		}
		if p.isName("in") {
			p.advance()
			right, err := p.parseAdd()
			if err != nil {
				return nil, err
			}
			terms = append(terms, ast.CompareTerm{Op: ast.In, Right: right})
			continue
		}
		if p.isName("not") {
			// Only "not in" is valid here; anything else is a syntax error
			// at the caller (a leading "not" is handled by parseNot).
			save := p.pos
			p.advance()
			if p.isName("in") {
				p.advance()
				right, err := p.parseAdd()
				if err != nil {
					return nil, err
				}
				terms = append(terms, ast.CompareTerm{Op: ast.NotIn, Right: right})
				continue
			}
			p.pos = save
		}
		break
	}
	if len(terms) == 0 {
		return left, nil
	}
	return &ast.Compare{Base: ast.Base{Position: pos}, Left: left, Terms: terms}, nil
}

// binaryOps maps the binary operator tokens to their opcodes. The reserved
// ones (*, /, %, **) are parsed at the same precedence as + and - and left
// associative; they exist only so the evaluator can reject them as
// unimplemented-op.
var binaryOps = map[string]ast.BinaryOp{
	"+": ast.Add, "-": ast.Sub, "*": ast.Mul, "/": ast.Div, "%": ast.Mod, "**": ast.Pow,
}

func (p *parser) parseAdd() (ast.Expr, error) {
	pos := p.pposition()
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.kind() == lexer.OP {
		op, ok := binaryOps[p.cur().Lit]
		if !ok {
			break
		}
		p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOpExpr{Base: ast.Base{Position: pos}, Op: op, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseUnary() (ast.Expr, error) {
	if p.isOp("-") {
		pos := p.pposition()
		p.advance()
		v, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOpExpr{Base: ast.Base{Position: pos}, Op: ast.Neg, Value: v}, nil
	}
	return p.parsePostfix()
}

func (p *parser) parsePostfix() (ast.Expr, error) {
	e, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.isOp("."):
			pos := p.pposition()
			p.advance()
			nameTok, err := p.expect(lexer.NAME)
			if err != nil {
				return nil, err
			}
			e = &ast.Attribute{Base: ast.Base{Position: pos}, Value: e, Name: &ast.Name{Base: ast.Base{Position: nameTok.Pos}, Ident: nameTok.Lit}}
		case p.isOp("("):
			pos := p.pposition()
			p.advance()
			var args []ast.Expr
			if !p.isOp(")") {
				for {
					a, err := p.parseExpr()
					if err != nil {
						return nil, err
					}
					args = append(args, a)
					if p.isOp(",") {
						p.advance()
						continue
					}
					break
				}
			}
			if _, err := p.expectOp(")"); err != nil {
				return nil, err
			}
			e = &ast.Call{Base: ast.Base{Position: pos}, Func: e, Args: args}
		case p.isOp("["):
			pos := p.pposition()
			p.advance()
			idx, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expectOp("]"); err != nil {
				return nil, err
			}
			e = &ast.Subscript{Base: ast.Base{Position: pos}, Index: &ast.IndexExpr{Base: ast.Base{Position: pos}, Value: idx}, Value: e}
		default:
			return e, nil
		}
	}
}

func (p *parser) parseAtom() (ast.Expr, error) {
	pos := p.pposition()
	switch p.kind() {
	case lexer.INT:
		t := p.advance()
		n, err := strconv.ParseInt(t.Lit, 10, 32)
		if err != nil {
			return nil, p.errorf("invalid integer literal %q", t.Lit)
		}
		return &ast.IntegerLit{Base: ast.Base{Position: pos}, Value: int32(n)}, nil
	case lexer.STRING:
		t := p.advance()
		return &ast.StringLit{Base: ast.Base{Position: pos}, Value: t.Lit}, nil
	case lexer.NAME:
		switch p.cur().Lit {
		case "True", "False", "None":
			t := p.advance()
			return &ast.Name{Base: ast.Base{Position: pos}, Ident: t.Lit}, nil
		}
		t := p.advance()
		return &ast.Name{Base: ast.Base{Position: pos}, Ident: t.Lit}, nil
	case lexer.OP:
		switch p.cur().Lit {
		case "(":
			p.advance()
			if p.isOp(")") {
				p.advance()
				return &ast.TupleLit{Base: ast.Base{Position: pos}}, nil
			}
			first, err := p.parseExpr()
			if err != nil {
				return nil, err
			}
			if p.isOp(",") {
				elems := []ast.Expr{first}
				for p.isOp(",") {
					p.advance()
					if p.isOp(")") {
						break
					}
					e, err := p.parseExpr()
					if err != nil {
						return nil, err
					}
					elems = append(elems, e)
				}
				if _, err := p.expectOp(")"); err != nil {
					return nil, err
				}
				return &ast.TupleLit{Base: ast.Base{Position: pos}, Elems: elems}, nil
			}
			if _, err := p.expectOp(")"); err != nil {
				return nil, err
			}
			return first, nil
		case "[":
			p.advance()
			var elems []ast.Expr
			if !p.isOp("]") {
				for {
					e, err := p.parseExpr()
					if err != nil {
						return nil, err
					}
					elems = append(elems, e)
					if p.isOp(",") {
						p.advance()
						continue
					}
					break
				}
			}
			if _, err := p.expectOp("]"); err != nil {
				return nil, err
			}
			return &ast.ListLit{Base: ast.Base{Position: pos}, Elems: elems}, nil
		case "{":
			p.advance()
			var entries []ast.DictEntry
			if !p.isOp("}") {
				for {
					key, err := p.expect(lexer.STRING)
					if err != nil {
						return nil, err
					}
					if _, err := p.expectOp(":"); err != nil {
						return nil, err
					}
					v, err := p.parseExpr()
					if err != nil {
						return nil, err
					}
					entries = append(entries, ast.DictEntry{Key: key.Lit, Value: v})
					if p.isOp(",") {
						p.advance()
						continue
					}
					break
				}
			}
			if _, err := p.expectOp("}"); err != nil {
				return nil, err
			}
			return &ast.DictionaryLit{Base: ast.Base{Position: pos}, Entries: entries}, nil
		}
	}
	return nil, p.errorf("unexpected token")
}
