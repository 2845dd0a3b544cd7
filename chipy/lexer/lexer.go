package lexer

import (
	"fmt"
	"strings"

	"github.com/chipy-lang/chipy/ast"
)

// unesc maps single-letter chars following \ to their actual byte value.
// Adapted from the quoting table the Starlark syntax package uses for its
// string literals, trimmed to the escapes this grammar's string literals
// support (no byte-string or raw-string prefixes, no triple-quoting —
// those are dialect features spec.md's String type has no use for).
var unesc = map[byte]byte{
	'n': '\n', 't': '\t', 'r': '\r', '\\': '\\', '\'': '\'', '"': '"', '0': 0,
}

// Lex tokenizes src into a flat token stream, already carrying
// synthesized NEWLINE/INDENT/DEDENT tokens so the parser never has to look
// at raw whitespace.
func Lex(src string) ([]Token, error) {
	l := &lexer{src: src, line: 1, col: 1, indents: []int{0}}
	return l.run()
}

type lexer struct {
	src        string
	pos        int
	line, col  int
	indents    []int
	atLineHead bool
	parenDepth int
	out        []Token
}

func (l *lexer) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("chipy: lex error at %d:%d: %s", l.line, l.col, fmt.Sprintf(format, args...))
}

func (l *lexer) peek() byte {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *lexer) peekAt(off int) byte {
	if l.pos+off >= len(l.src) {
		return 0
	}
	return l.src[l.pos+off]
}

func (l *lexer) advance() byte {
	c := l.src[l.pos]
	l.pos++
	if c == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return c
}

func (l *lexer) emit(k Kind, lit string, pos ast.Position) {
	l.out = append(l.out, Token{Kind: k, Lit: lit, Pos: pos})
}

func (l *lexer) run() ([]Token, error) {
	atLineStart := true
	for l.pos < len(l.src) {
		if atLineStart && l.parenDepth == 0 {
			indent, blank, err := l.measureIndent()
			if err != nil {
				return nil, err
			}
			if blank {
				// Consume the rest of the line, newline included.
				for l.pos < len(l.src) {
					if l.advance() == '\n' {
						break
					}
				}
				continue
			}
			if err := l.adjustIndent(indent); err != nil {
				return nil, err
			}
			atLineStart = false
		}

		c := l.peek()
		switch {
		case c == '#':
			for l.pos < len(l.src) && l.peek() != '\n' {
				l.advance()
			}
			continue
		case c == '\n':
			pos := ast.Position{Line: l.line, Col: l.col}
			l.advance()
			if l.parenDepth == 0 {
				l.emit(NEWLINE, "\n", pos)
				atLineStart = true
			}
			continue
		case c == ' ' || c == '\t':
			l.advance()
			continue
		case c == '\\' && l.peekAt(1) == '\n':
			l.advance()
			l.advance()
			continue
		case isDigit(c):
			if err := l.lexNumber(); err != nil {
				return nil, err
			}
		case isNameStart(c):
			l.lexName()
		case c == '\'' || c == '"':
			if err := l.lexString(); err != nil {
				return nil, err
			}
		default:
			if err := l.lexOp(); err != nil {
				return nil, err
			}
		}
	}

	// Final NEWLINE if the source didn't end with one, then close out
	// any open indentation.
	if len(l.out) > 0 && l.out[len(l.out)-1].Kind != NEWLINE {
		l.emit(NEWLINE, "\n", ast.Position{Line: l.line, Col: l.col})
	}
	for len(l.indents) > 1 {
		l.indents = l.indents[:len(l.indents)-1]
		l.emit(DEDENT, "", ast.Position{Line: l.line, Col: l.col})
	}
	l.emit(EOF, "", ast.Position{Line: l.line, Col: l.col})
	return l.out, nil
}

// measureIndent consumes leading whitespace on a new logical line and
// reports the column width, or blank=true for an empty/comment-only line
// that contributes no INDENT/DEDENT/NEWLINE at all.
func (l *lexer) measureIndent() (indent int, blank bool, err error) {
	start := l.pos
	for l.pos < len(l.src) {
		c := l.peek()
		if c == ' ' {
			indent++
			l.advance()
		} else if c == '\t' {
			indent += 8 - (indent % 8)
			l.advance()
		} else {
			break
		}
	}
	c := l.peek()
	if c == '\n' || c == '#' || c == 0 {
		_ = start
		return indent, true, nil
	}
	return indent, false, nil
}

func (l *lexer) adjustIndent(indent int) error {
	cur := l.indents[len(l.indents)-1]
	pos := ast.Position{Line: l.line, Col: l.col}
	if indent > cur {
		l.indents = append(l.indents, indent)
		l.emit(INDENT, "", pos)
	} else {
		for indent < l.indents[len(l.indents)-1] {
			l.indents = l.indents[:len(l.indents)-1]
			l.emit(DEDENT, "", pos)
		}
		if indent != l.indents[len(l.indents)-1] {
			return l.errorf("inconsistent indentation")
		}
	}
	return nil
}

func isDigit(c byte) bool      { return c >= '0' && c <= '9' }
func isNameStart(c byte) bool  { return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }
func isNameCont(c byte) bool   { return isNameStart(c) || isDigit(c) }

func (l *lexer) lexNumber() error {
	pos := ast.Position{Line: l.line, Col: l.col}
	start := l.pos
	for l.pos < len(l.src) && isDigit(l.peek()) {
		l.advance()
	}
	lit := l.src[start:l.pos]
	l.emit(INT, lit, pos)
	return nil
}

func (l *lexer) lexName() {
	pos := ast.Position{Line: l.line, Col: l.col}
	start := l.pos
	for l.pos < len(l.src) && isNameCont(l.peek()) {
		l.advance()
	}
	lit := l.src[start:l.pos]
	l.emit(NAME, lit, pos)
}

func (l *lexer) lexString() error {
	pos := ast.Position{Line: l.line, Col: l.col}
	quote := l.advance()
	var sb strings.Builder
	for {
		if l.pos >= len(l.src) {
			return l.errorf("unterminated string literal")
		}
		c := l.peek()
		if c == quote {
			l.advance()
			break
		}
		if c == '\n' {
			return l.errorf("unterminated string literal")
		}
		if c == '\\' {
			l.advance()
			if l.pos >= len(l.src) {
				return l.errorf("truncated escape sequence")
			}
			e := l.advance()
			v, ok := unesc[e]
			if !ok {
				return l.errorf("invalid escape sequence \\%c", e)
			}
			sb.WriteByte(v)
			continue
		}
		sb.WriteByte(l.advance())
	}
	l.emit(STRING, sb.String(), pos)
	return nil
}

// ops lists multi-character operators, longest first, so lexOp can match
// greedily with a simple prefix scan.
var ops = []string{
	"==", "!=", "<=", ">=", "+=", "**",
	"+", "-", "*", "/", "%", "<", ">", "=",
	"(", ")", "[", "]", "{", "}", ":", ",", ".",
}

func (l *lexer) lexOp() error {
	pos := ast.Position{Line: l.line, Col: l.col}
	rest := l.src[l.pos:]
	for _, op := range ops {
		if strings.HasPrefix(rest, op) {
			if op == "(" || op == "[" || op == "{" {
				l.parenDepth++
			} else if op == ")" || op == "]" || op == "}" {
				if l.parenDepth > 0 {
					l.parenDepth--
				}
			}
			for range op {
				l.advance()
			}
			l.emit(OP, op, pos)
			return nil
		}
	}
	return l.errorf("unexpected character %q", rest[:1])
}
