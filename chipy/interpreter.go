// Package chipy is an embeddable interpreter for a small, indentation-
// structured scripting language used to write short boolean predicate
// scripts. A host compiles source text, pre-binds named values and
// modules, then asks the Interpreter to execute; execution must terminate
// with exactly one boolean value.
package chipy

import (
	"errors"
	"fmt"
	"os"

	"github.com/chipy-lang/chipy/compile"
	"github.com/chipy-lang/chipy/memory"
	"github.com/chipy-lang/chipy/parser"
)

// Interpreter walks one compiled Program against one arena, one root
// scope, and one module cache. It is not reentrant and must not be shared
// across goroutines.
type Interpreter struct {
	arena         *memory.Arena
	program       *compile.Program
	root          *Scope
	env           *env
	modules       map[string]Module
	maxStatements int
	stmtCount     int
	printSink     func(string)
}

// New constructs an Interpreter over a compiled Program, with a fresh
// arena and root scope.
func New(program *compile.Program, opts ...Option) (*Interpreter, error) {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}
	arena := memory.NewArena(cfg.arenaSize)
	if err := arena.Alloc(len(program.Code)); err != nil {
		return nil, &Error{Kind: OutOfMemory, Msg: err.Error()}
	}

	i := &Interpreter{
		arena:         arena,
		program:       program,
		modules:       cfg.modules,
		maxStatements: cfg.maxStatements,
		printSink:     cfg.printSink,
	}
	if i.modules == nil {
		i.modules = make(map[string]Module)
	}
	if _, ok := i.modules["rand"]; !ok {
		i.modules["rand"] = newRandModule()
	}
	if i.printSink == nil {
		i.printSink = func(s string) { fmt.Fprintln(os.Stdout, s) }
	}
	i.env = &env{interp: i}
	i.root = newRootScope(i.env)
	return i, nil
}

// CompileSource lexes, parses and compiles source text into a Program,
// the default (and only) implementation of the Host API's compile_code.
func CompileSource(filename, source string) (*compile.Program, error) {
	file, err := parser.Parse(source)
	if err != nil {
		return nil, &Error{Kind: ParseError, Msg: err.Error()}
	}
	prog, err := compile.Compile(filename, file)
	if err != nil {
		kind := EncodingError
		if errors.Is(err, compile.ErrShape) {
			kind = ShapeError
		}
		return nil, &Error{Kind: kind, Msg: err.Error()}
	}
	return prog, nil
}

// CompileFile reads path and compiles it, the Host API's compile_file.
func CompileFile(path string) (*compile.Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Kind: ParseError, Msg: err.Error()}
	}
	return CompileSource(path, string(data))
}

// SetString pre-binds a String value under name in the root scope.
func (i *Interpreter) SetString(name, value string) {
	i.root.Bind(name, String(value))
}

// SetList pre-binds a List of String values under name in the root scope.
func (i *Interpreter) SetList(name string, values []string) {
	elems := make([]Value, len(values))
	for idx, v := range values {
		elems[idx] = String(v)
	}
	i.root.Bind(name, NewList(elems))
}

// SetModule registers a host module under name, available to
// `import`/`from ... import` for the rest of this run.
func (i *Interpreter) SetModule(name string, m Module) {
	i.modules[name] = m
}

// Execute runs the compiled program to completion and returns its single
// top-level boolean value. A program that ends without executing a
// `return` fails result-type-error.
func (i *Interpreter) Execute() (bool, error) {
	defer i.arena.Reset()
	dec := compile.NewDecoder(i.program.Code)
	tag, err := dec.NodeType()
	if err != nil {
		return false, &Error{Kind: EncodingError, Msg: err.Error()}
	}
	if tag != compile.StatementList {
		return false, &Error{Kind: EncodingError, Msg: "program does not begin with a statement list"}
	}
	if _, err := i.execStatementList(dec, i.root, loopNone); err != nil {
		return false, i.wrapEvalError(err)
	}
	if !dec.AtEnd() {
		return false, i.wrapEvalError(&Error{Kind: EncodingError, Msg: "trailing bytes after top-level statement list"})
	}
	if !i.root.IsTerminated() {
		return false, i.wrapEvalError(&Error{Kind: ResultTypeError, Msg: "script did not return a value"})
	}
	b, ok := i.root.result.(Bool)
	if !ok {
		return false, i.wrapEvalError(&Error{Kind: ResultTypeError, Msg: fmt.Sprintf("top-level value must be bool, got %s", i.root.result.Type())})
	}
	return bool(b), nil
}

// wrapEvalError wraps a raw *Error with the single frame this interpreter
// can name — there are no user-defined functions to build a deeper
// backtrace from, since every run is one flat top-level script.
func (i *Interpreter) wrapEvalError(cause error) *EvalError {
	return evalError(cause, []CallFrame{{Pos: i.program.Filename, Desc: "top-level"}})
}

// getModule returns the module registered under name (by SetModule,
// WithModule, or the built-in rand module New adds). It only looks the
// name up: modules are not loaded or constructed on first reference.
func (i *Interpreter) getModule(name string) (Module, error) {
	if m, ok := i.modules[name]; ok {
		return m, nil
	}
	return nil, newError(NameNotFound, "no module registered under %q", name)
}

// wordSize is the abstract per-element/per-field byte cost charged against
// the arena for composite values: not a literal Go struct size, just a
// stand-in for "one machine word" the way the original region allocator
// would have rounded an allocation.
const wordSize = 8

// alloc charges n bytes against this run's arena, translating exhaustion
// into an OutOfMemory error. The String, List, Tuple and Dictionary
// literals evaluated by a script route through here (chipy/eval_expr.go),
// so a host that sets WithArenaSize small enough can actually observe
// out-of-memory from a real script, not only from an oversized compiled
// program. Other values (operator, builtin and host call results,
// iterators) are not charged.
func (i *Interpreter) alloc(n int) error {
	if err := i.arena.Alloc(n); err != nil {
		return newError(OutOfMemory, "%s (arena has used %d of %d bytes across %d allocations)",
			err, i.arena.Used(), i.arena.Size(), i.arena.Count())
	}
	return nil
}

// countStatement enforces WithMaxStatements, if set.
func (i *Interpreter) countStatement() error {
	if i.maxStatements <= 0 {
		return nil
	}
	i.stmtCount++
	if i.stmtCount > i.maxStatements {
		return newError(TypeError, "exceeded maximum of %d statements", i.maxStatements)
	}
	return nil
}
