package lox

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Reporter is the set of injected diagnostic sinks — compile-time errors,
// non-fatal compile-time warnings, and runtime errors. The core never writes to stderr directly; every diagnostic
// flows through here so the driver can decide the process exit code once
// all passes have run.
type Reporter interface {
	CompileError(line int, where, message string)
	RuntimeError(line int, message string)
	CompileWarning(line int, where, message string)
}

// DefaultReporter formats diagnostics in the classic jlox style and tracks
// whether any error was reported, colorizing the output the same way the
// conformance runner colorizes its pass/fail summaries.
type DefaultReporter struct {
	Out             io.Writer
	NoColor         bool
	HadCompileError bool
	HadRuntimeError bool
}

// NewDefaultReporter returns a Reporter writing to out.
func NewDefaultReporter(out io.Writer, noColor bool) *DefaultReporter {
	return &DefaultReporter{Out: out, NoColor: noColor}
}

func (r *DefaultReporter) CompileError(line int, where, message string) {
	r.HadCompileError = true
	line_ := fmt.Sprintf("[line %d] Error%s: %s", line, where, message)
	r.writeLine(line_)
}

// CompileWarning reports a non-fatal diagnostic — the unused-local-variable
// check — in the same format as CompileError, but without setting
// HadCompileError; it never changes the process exit code.
func (r *DefaultReporter) CompileWarning(line int, where, message string) {
	r.writeLine(fmt.Sprintf("[line %d] Warning%s: %s", line, where, message))
}

func (r *DefaultReporter) RuntimeError(line int, message string) {
	r.HadRuntimeError = true
	r.writeLine(message)
	r.writeLine(fmt.Sprintf("[line %d]", line))
}

func (r *DefaultReporter) writeLine(s string) {
	c := color.New(color.FgRed)
	c.DisableColor()
	if !r.NoColor {
		c.EnableColor()
	}
	fmt.Fprintln(r.Out, c.Sprint(s))
}

// Reset clears the error flags, used by the REPL between lines so an error
// on one line doesn't poison the exit status of the whole session.
func (r *DefaultReporter) Reset() {
	r.HadCompileError = false
	r.HadRuntimeError = false
}
