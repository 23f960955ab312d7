package lox

import (
	"strconv"
	"strings"
)

// Expectation is the parsed intent of one testdata/scripts/*.lox file: an
// in-process stand-in for diffing against a reference interpreter binary,
// driven by inline annotation comments instead.
//
// Annotation syntax, one per source line:
//
//	// expect: <value>                one per `print` statement, in order
//	// expect runtime error: <msg>    the run must hit a runtime error containing <msg>, exit 70
//	// expect compile error: <msg>    the run must hit a compile error containing <msg>, exit 65
type Expectation struct {
	StdoutLines          []string
	RuntimeErrorContains string
	CompileErrorContains string
}

// ExitCode reports the exit code a script satisfying this Expectation
// should produce.
func (e Expectation) ExitCode() int {
	switch {
	case e.RuntimeErrorContains != "":
		return ExitRuntimeErr
	case e.CompileErrorContains != "":
		return ExitCompileErr
	default:
		return ExitSuccess
	}
}

const (
	expectPrefix        = "// expect: "
	expectRuntimePrefix = "// expect runtime error: "
	expectCompilePrefix = "// expect compile error: "
)

// ParseExpectations scans source for the annotation comments described
// above. It does not otherwise parse Lox syntax, so annotations may sit
// anywhere, on their own line or trailing code.
func ParseExpectations(source string) Expectation {
	var exp Expectation
	for _, line := range strings.Split(source, "\n") {
		line = strings.TrimSpace(line)
		switch {
		case strings.Contains(line, expectRuntimePrefix):
			exp.RuntimeErrorContains = afterPrefix(line, expectRuntimePrefix)
		case strings.Contains(line, expectCompilePrefix):
			exp.CompileErrorContains = afterPrefix(line, expectCompilePrefix)
		case strings.Contains(line, expectPrefix):
			exp.StdoutLines = append(exp.StdoutLines, afterPrefix(line, expectPrefix))
		}
	}
	return exp
}

func afterPrefix(line, prefix string) string {
	idx := strings.Index(line, prefix)
	return strings.TrimSpace(line[idx+len(prefix):])
}

// ConformanceResult is one script's actual, captured run.
type ConformanceResult struct {
	StdoutLines []string
	Stderr      string
	ExitCode    int
}

// RunConformanceScript executes source through the normal driver pipeline
// with in-memory sinks, for use by both the test suite and
// cmd/lox-conformance.
func RunConformanceScript(source string) ConformanceResult {
	var stdout []string
	stderrBuf := &strings.Builder{}
	reporter := NewDefaultReporter(stderrBuf, true)

	code := Run(source, reporter, func(s string) { stdout = append(stdout, s) })

	return ConformanceResult{StdoutLines: stdout, Stderr: stderrBuf.String(), ExitCode: code}
}

// Matches reports whether result satisfies exp, returning a human-readable
// mismatch description when it does not.
func (exp Expectation) Matches(result ConformanceResult) (ok bool, reason string) {
	if result.ExitCode != exp.ExitCode() {
		return false, "exit code: expected " + strconv.Itoa(exp.ExitCode()) + " got " + strconv.Itoa(result.ExitCode)
	}

	switch {
	case exp.RuntimeErrorContains != "":
		if !strings.Contains(result.Stderr, exp.RuntimeErrorContains) {
			return false, "stderr missing runtime error text: " + exp.RuntimeErrorContains
		}
	case exp.CompileErrorContains != "":
		if !strings.Contains(result.Stderr, exp.CompileErrorContains) {
			return false, "stderr missing compile error text: " + exp.CompileErrorContains
		}
	default:
		if len(result.StdoutLines) != len(exp.StdoutLines) {
			return false, "stdout line count: expected " + strconv.Itoa(len(exp.StdoutLines)) + " got " + strconv.Itoa(len(result.StdoutLines))
		}
		for i, want := range exp.StdoutLines {
			if result.StdoutLines[i] != want {
				return false, "stdout line " + strconv.Itoa(i) + ": expected " + want + " got " + result.StdoutLines[i]
			}
		}
	}
	return true, ""
}
