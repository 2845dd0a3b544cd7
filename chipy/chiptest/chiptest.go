// Package chiptest is the gocheck-based end-to-end harness for chipy
// scenario scripts, adapted from the teacher's startest.From(t) fluent
// runner onto gopkg.in/check.v1's Suite/Checker idiom (see DESIGN.md).
package chiptest

import (
	"gopkg.in/check.v1"

	"github.com/chipy-lang/chipy"
)

// Runner drives one chipy script against a fresh Interpreter per call,
// the way startest.From(t) drives one starlark thread per RunString call.
type Runner struct {
	c       *check.C
	strs    map[string]string
	lists   map[string][]string
	modules map[string]chipy.Module
	opts    []chipy.Option
}

// From builds a Runner bound to the running test's *check.C, the
// chiptest equivalent of startest.From(t).
func From(c *check.C) *Runner {
	return &Runner{
		c:       c,
		strs:    make(map[string]string),
		lists:   make(map[string][]string),
		modules: make(map[string]chipy.Module),
	}
}

// AddString pre-binds a string value, mirroring Interpreter.SetString.
func (r *Runner) AddString(name, value string) *Runner {
	r.strs[name] = value
	return r
}

// AddList pre-binds a list-of-string value, mirroring Interpreter.SetList.
func (r *Runner) AddList(name string, values []string) *Runner {
	r.lists[name] = values
	return r
}

// AddModule registers a host module, mirroring Interpreter.SetModule.
func (r *Runner) AddModule(name string, m chipy.Module) *Runner {
	r.modules[name] = m
	return r
}

// WithOption appends a chipy.Option applied at Interpreter construction,
// e.g. chiptest.From(c).WithOption(chipy.WithMaxStatements(1000)).
func (r *Runner) WithOption(opt chipy.Option) *Runner {
	r.opts = append(r.opts, opt)
	return r
}

func (r *Runner) newInterpreter(source string) (*chipy.Interpreter, error) {
	prog, err := chipy.CompileSource(r.c.TestName(), source)
	if err != nil {
		return nil, err
	}
	i, err := chipy.New(prog, r.opts...)
	if err != nil {
		return nil, err
	}
	for name, v := range r.strs {
		i.SetString(name, v)
	}
	for name, v := range r.lists {
		i.SetList(name, v)
	}
	for name, m := range r.modules {
		i.SetModule(name, m)
	}
	return i, nil
}

// RunBool compiles and executes source, asserting it succeeds, and
// returns the verdict for the caller to check.Assert/check.Check against.
func (r *Runner) RunBool(source string) bool {
	i, err := r.newInterpreter(source)
	r.c.Assert(err, check.IsNil)
	result, err := i.Execute()
	r.c.Assert(err, check.IsNil)
	return result
}

// RunTrue asserts source compiles, executes, and returns true — the shape
// every scenario in spec §8 with "Expected: true" uses.
func (r *Runner) RunTrue(source string) {
	r.c.Assert(r.RunBool(source), check.Equals, true)
}

// RunFalse is RunTrue's negative counterpart.
func (r *Runner) RunFalse(source string) {
	r.c.Assert(r.RunBool(source), check.Equals, false)
}

// RunFails asserts source compiles but execution fails, and that the
// failure message contains want.
func (r *Runner) RunFails(source, want string) {
	i, err := r.newInterpreter(source)
	r.c.Assert(err, check.IsNil)
	_, err = i.Execute()
	r.c.Assert(err, check.ErrorMatches, ".*"+want+".*")
}

// RunCompileFails asserts source fails to compile (parse/encode error),
// with a message containing want.
func (r *Runner) RunCompileFails(source, want string) {
	_, err := r.newInterpreter(source)
	r.c.Assert(err, check.ErrorMatches, ".*"+want+".*")
}
