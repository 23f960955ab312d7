package lox_test

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/sdecook/golox/internal/lox"
)

// TestASTPrinterSnapshots pins the Lisp-style AST printer's output for a
// handful of representative programs, the same way a fixture test pins
// interpreter output with go-snaps.
func TestASTPrinterSnapshots(t *testing.T) {
	programs := map[string]string{
		"arithmetic_precedence": `1 + 2 * 3 - 4 / 2;`,
		"ternary_and_comma":     `cond ? (1, 2) : 3;`,
		"class_with_super":      `class B < A { init() { super.init(); } }`,
		"closure":               `fun make() { var i = 0; fun inc() { return i = i + 1; } return inc; }`,
		"getter":                `class C { area { return 1; } }`,
	}

	for name, src := range programs {
		r := &noopReporter{}
		tokens := lox.NewScanner(src, r).Scan()
		stmts := lox.NewParser(tokens, r).Parse()

		var rendered string
		for _, s := range stmts {
			rendered += s.String() + "\n"
		}

		snaps.MatchSnapshot(t, name, rendered)
	}
}

type noopReporter struct{}

func (noopReporter) CompileError(int, string, string)   {}
func (noopReporter) CompileWarning(int, string, string) {}
func (noopReporter) RuntimeError(int, string)           {}
