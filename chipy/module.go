package chipy

// Module is the host-provided capability surface: a named-member
// container. A host registers one under a name with SetModule or
// WithModule; the interpreter resolves `import`/`from ... import` against
// it for the run's lifetime.
type Module interface {
	Value
	GetMember(name string) (Value, error)
}

// Function wraps a host-supplied positional closure as a callable Value —
// the shape Module.GetMember typically returns.
type Function struct {
	name string
	fn   func(args []Value) (Value, error)
}

// NewBuiltin constructs a Function from a plain Go closure. name is only
// reported by Name(); Type() is always "builtin_function".
func NewBuiltin(name string, fn func(args []Value) (Value, error)) *Function {
	return &Function{name: name, fn: fn}
}

func (f *Function) Type() string     { return "builtin_function" }
func (f *Function) Truthy() bool     { return true }
func (f *Function) Duplicate() Value { return f }
func (f *Function) Name() string     { return f.name }

func (f *Function) Call(args []Value) (Value, error) { return f.fn(args) }

// simpleModule is a Module backed by a plain name→Value map, enough for
// host code that just wants to publish a handful of functions without
// writing its own Module implementation.
type simpleModule struct {
	name    string
	members map[string]Value
}

// NewSimpleModule builds a Module whose GetMember looks up members in a
// fixed map, failing with name-not-found for anything else.
func NewSimpleModule(name string, members map[string]Value) Module {
	return &simpleModule{name: name, members: members}
}

func (m *simpleModule) Type() string     { return "module" }
func (m *simpleModule) Truthy() bool     { return true }
func (m *simpleModule) Duplicate() Value { return m }

func (m *simpleModule) GetMember(name string) (Value, error) {
	v, ok := m.members[name]
	if !ok {
		return nil, newError(NameNotFound, "module %q has no member %q", m.name, name)
	}
	return v, nil
}
