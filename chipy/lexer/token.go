// Package lexer tokenizes chipy source text into the indentation-sensitive
// token stream that chipy/parser consumes. It is the front half of the
// front end backing the Host API's compile_code (see chipy/interpreter.go).
package lexer

import "github.com/chipy-lang/chipy/ast"

// Kind identifies the lexical class of a Token.
type Kind int

const (
	EOF Kind = iota
	NEWLINE
	INDENT
	DEDENT
	NAME
	INT
	STRING
	OP // operators and punctuation; Token.Lit carries the exact text
)

func (k Kind) String() string {
	switch k {
	case EOF:
		return "EOF"
	case NEWLINE:
		return "NEWLINE"
	case INDENT:
		return "INDENT"
	case DEDENT:
		return "DEDENT"
	case NAME:
		return "NAME"
	case INT:
		return "INT"
	case STRING:
		return "STRING"
	case OP:
		return "OP"
	default:
		return "?"
	}
}

// Token is one lexical token with its source position.
type Token struct {
	Kind Kind
	Lit  string
	Pos  ast.Position
}

// keywords recognised by the grammar. Anything else lexes as NAME.
var keywords = map[string]bool{
	"if": true, "elif": true, "else": true,
	"for": true, "while": true, "break": true, "continue": true,
	"return": true, "import": true, "from": true, "as": true,
	"and": true, "or": true, "not": true, "in": true,
	"True": true, "False": true, "None": true,
}

// IsKeyword reports whether s lexes as a reserved word rather than a NAME.
func IsKeyword(s string) bool { return keywords[s] }
