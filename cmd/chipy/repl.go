package main

import (
	"fmt"
	"os"

	"github.com/chzyer/readline"
	"golang.org/x/term"

	"github.com/chipy-lang/chipy"
)

// replCommand opens an interactive line-edited session: each line is
// compiled and run as a standalone one-statement-per-line script, with
// `return` prepended when that parses, so a user can explore operators,
// containers, and built-ins without writing a whole predicate script.
// Only boolean results are printed; a line whose value is not a bool
// reports result-type-error, and no binding carries over between lines.
func replCommand(args []string) int {
	historyFile := ""
	if home, err := os.UserHomeDir(); err == nil {
		historyFile = home + "/.chipy_history"
	}

	prompt := "chipy> "
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		// Piped input: readline still works, but skip the banner noise a
		// human would see at an interactive terminal.
		prompt = ""
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "chipy: %v\n", err)
		return 2
	}
	defer rl.Close()

	if prompt != "" {
		fmt.Fprintln(os.Stdout, "chipy REPL — one script per line, blank line to quit")
	}

	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF or readline.ErrInterrupt
			return 0
		}
		if line == "" {
			return 0
		}
		evalLine(line)
	}
}

func evalLine(line string) {
	prog, err := chipy.CompileSource("<repl>", "return "+line+"\n")
	if err != nil {
		// Not every line is an expression (e.g. an assignment); fall back
		// to running it as a bare statement. That script ends without a
		// `return`, so Execute reports result-type-error, which is printed.
		prog, err = chipy.CompileSource("<repl>", line+"\n")
		if err != nil {
			fmt.Fprintf(os.Stderr, "chipy: %v\n", err)
			return
		}
	}
	interp, err := chipy.New(prog)
	if err != nil {
		fmt.Fprintf(os.Stderr, "chipy: %v\n", err)
		return
	}
	result, err := interp.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "chipy: %v\n", err)
		return
	}
	fmt.Println(result)
}
