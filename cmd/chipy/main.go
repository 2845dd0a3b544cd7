// Command chipy is a standalone host harness exercising the chipy Host
// API end-to-end: it compiles a script, pre-binds values from flags, runs
// it, and reports the boolean verdict — or drops into an interactive REPL.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chipy-lang/chipy"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "run":
		os.Exit(runCommand(os.Args[2:]))
	case "repl":
		os.Exit(replCommand(os.Args[2:]))
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: chipy run [-set name=value]... [-list name=a,b,c]... <file>")
	fmt.Fprintln(os.Stderr, "       chipy repl")
}

type assignFlags map[string]string

func (f assignFlags) String() string { return "" }
func (f assignFlags) Set(s string) error {
	name, value, ok := strings.Cut(s, "=")
	if !ok {
		return fmt.Errorf("expected name=value, got %q", s)
	}
	f[name] = value
	return nil
}

type listFlags map[string][]string

func (f listFlags) String() string { return "" }
func (f listFlags) Set(s string) error {
	name, value, ok := strings.Cut(s, "=")
	if !ok {
		return fmt.Errorf("expected name=a,b,c, got %q", s)
	}
	f[name] = strings.Split(value, ",")
	return nil
}

func runCommand(args []string) int {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	strs := assignFlags{}
	lists := listFlags{}
	fs.Var(strs, "set", "pre-bind a string value: -set name=value (repeatable)")
	fs.Var(lists, "list", "pre-bind a list value: -list name=a,b,c (repeatable)")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		usage()
		return 2
	}
	path := fs.Arg(0)

	prog, err := chipy.CompileFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "chipy: %v\n", err)
		return 2
	}
	interp, err := chipy.New(prog)
	if err != nil {
		fmt.Fprintf(os.Stderr, "chipy: %v\n", err)
		return 2
	}
	for name, v := range strs {
		interp.SetString(name, v)
	}
	for name, v := range lists {
		interp.SetList(name, v)
	}
	result, err := interp.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "chipy: %v\n", err)
		return 2
	}
	fmt.Println(result)
	if result {
		return 0
	}
	return 1
}
