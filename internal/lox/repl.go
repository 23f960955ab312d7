package lox

import (
	"bufio"
	"io"
	"strings"
)

// REPL implements the interactive prompt: a persistent global environment
// across lines, auto-appended trailing semicolons, and bare-expression
// echoing.
type REPL struct {
	reporter *DefaultReporter
	interp   *Interpreter
	out      io.Writer
	prompt   string
}

// NewREPL returns a REPL writing prompts and echoed values to out and
// reporting diagnostics through reporter.
func NewREPL(reporter *DefaultReporter, out io.Writer) *REPL {
	print := func(s string) { io.WriteString(out, s+"\n") }
	interp := NewInterpreter(reporter, print)
	return &REPL{reporter: reporter, interp: interp, out: out, prompt: "> "}
}

// Run reads lines from in until EOF, evaluating each against the REPL's
// persistent global environment.
func (r *REPL) Run(in io.Reader) {
	scanner := bufio.NewScanner(in)
	io.WriteString(r.out, r.prompt)

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) != "" {
			r.evalLine(line)
		}
		r.reporter.Reset()
		io.WriteString(r.out, r.prompt)
	}
}

func (r *REPL) evalLine(line string) {
	source := line
	if !strings.HasSuffix(strings.TrimSpace(source), ";") && !strings.HasSuffix(strings.TrimSpace(source), "}") {
		source += ";"
	}

	tokens := NewScanner(source, r.reporter).Scan()
	stmts := NewParser(tokens, r.reporter).Parse()
	if r.reporter.HadCompileError {
		return
	}

	// Bare-expression echo: a trailing expression statement is replaced
	// with a synthetic `var _ = <expr>; print _;` pair so its value is
	// visible without requiring an explicit `print`.
	if n := len(stmts); n > 0 {
		if exprStmt, ok := stmts[n-1].(*ExpressionStmt); ok {
			underscore := Token{Type: Identifier, Lexeme: "_"}
			stmts = append(stmts[:n-1],
				&VarStmt{Name: underscore, Initializer: exprStmt.Expr},
				&PrintStmt{Expr: &Variable{Name: underscore}},
			)
		}
	}

	resolver := NewResolver(r.reporter)
	locals := resolver.Resolve(stmts)
	if r.reporter.HadCompileError {
		return
	}

	for expr, depth := range locals {
		r.interp.locals[expr] = depth
	}
	r.interp.Interpret(stmts)
}
