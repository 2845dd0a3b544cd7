package chipy

// Scope is one frame of the lexical chain: a set of string→Value
// bindings, a parent pointer, and a terminated flag set by Return.
type Scope struct {
	parent     *Scope
	vars       map[string]Value
	terminated bool
	result     Value
	env        *env
}

// env is the state shared by every Scope in one interpreter run —
// reachable from any frame via the chain, without threading an
// *Interpreter parameter through every evaluator call.
type env struct {
	interp *Interpreter
}

func newRootScope(e *env) *Scope {
	return &Scope{vars: make(map[string]Value), env: e}
}

// NewChildScope opens a fresh frame whose parent is the receiver — used
// for if/for/while bodies the way the source's `Scope body_scope(mem,
// scope)` does.
func (s *Scope) NewChildScope() *Scope {
	return &Scope{parent: s, vars: make(map[string]Value), env: s.env}
}

// Has reports whether name is bound in this frame or any ancestor.
func (s *Scope) Has(name string) bool {
	for f := s; f != nil; f = f.parent {
		if _, ok := f.vars[name]; ok {
			return true
		}
	}
	return false
}

// Get resolves name by searching this frame then its ancestors; failing
// that, it synthesises one of the reserved built-in names on the fly.
func (s *Scope) Get(name string) (Value, error) {
	for f := s; f != nil; f = f.parent {
		if v, ok := f.vars[name]; ok {
			return v, nil
		}
	}
	if v, ok := s.builtin(name); ok {
		return v, nil
	}
	return nil, newError(NameNotFound, "name %q is not defined", name)
}

// Bind creates or overwrites a binding in this exact frame, with no
// write-through search. Used for loop-target binding and the root scope's
// pre-binding methods.
func (s *Scope) Bind(name string, v Value) {
	s.vars[name] = v
}

// Set implements write-through assignment: if any ancestor frame (or this
// one) already binds name, the existing frame is updated in place;
// otherwise a new binding is created in this frame.
func (s *Scope) Set(name string, v Value) {
	for f := s; f != nil; f = f.parent {
		if _, ok := f.vars[name]; ok {
			f.vars[name] = v
			return
		}
	}
	s.vars[name] = v
}

// Terminate marks the run as having executed a Return. There are no
// user-defined functions with their own call frames (see spec §4.2's
// closed Value family — Function/Builtin only wraps host callables), so
// a Return always ends the whole script: the flag is recorded on the
// root frame, visible through every child scope's IsTerminated.
func (s *Scope) Terminate(v Value) {
	root := s.root()
	root.terminated = true
	root.result = v
}

// IsTerminated reports whether Return has fired anywhere in this run.
func (s *Scope) IsTerminated() bool { return s.root().terminated }

func (s *Scope) root() *Scope {
	f := s
	for f.parent != nil {
		f = f.parent
	}
	return f
}

// builtin synthesises the reserved names spec.md §4.4/§6 require every
// scope to resolve, without the root frame needing to pre-populate them.
func (s *Scope) builtin(name string) (Value, bool) {
	switch name {
	case "None":
		return None, true
	case "True":
		return Bool(true), true
	case "False":
		return Bool(false), true
	case "range":
		return NewBuiltin("range", builtinRange), true
	case "int":
		return NewBuiltin("int", builtinInt), true
	case "str":
		return NewBuiltin("str", builtinStr), true
	case "print":
		return NewBuiltin("print", s.env.interp.builtinPrint), true
	default:
		return nil, false
	}
}
