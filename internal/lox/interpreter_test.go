package lox

import (
	"strings"
	"testing"
)

func runProgram(t *testing.T, src string) (stdout []string, stderr string, exitCode int) {
	t.Helper()
	var lines []string
	errBuf := &strings.Builder{}
	reporter := NewDefaultReporter(errBuf, true)
	code := Run(src, reporter, func(s string) { lines = append(lines, s) })
	return lines, errBuf.String(), code
}

func TestInterpretArithmetic(t *testing.T) {
	out, _, code := runProgram(t, `print 1 + 2;`)
	if code != ExitSuccess || len(out) != 1 || out[0] != "3" {
		t.Errorf("got %v code=%d", out, code)
	}
}

func TestInterpretClosuresCaptureByReference(t *testing.T) {
	out, _, code := runProgram(t, `
		fun make() {
			var i = 0;
			fun inc() {
				i = i + 1;
				return i;
			}
			return inc;
		}
		var c = make();
		print c();
		print c();
	`)
	if code != ExitSuccess || len(out) != 2 || out[0] != "1" || out[1] != "2" {
		t.Errorf("got %v code=%d", out, code)
	}
}

func TestInterpretClassesAndInheritance(t *testing.T) {
	out, _, code := runProgram(t, `
		class A { m() { print "A"; } }
		class B < A { m() { super.m(); print "B"; } }
		B().m();
	`)
	if code != ExitSuccess || len(out) != 2 || out[0] != "A" || out[1] != "B" {
		t.Errorf("got %v code=%d", out, code)
	}
}

func TestInterpretStringPlusNumberCoercion(t *testing.T) {
	out, _, code := runProgram(t, `print "a" + 1;`)
	if code != ExitSuccess || len(out) != 1 || out[0] != "a1" {
		t.Errorf("got %v code=%d", out, code)
	}
}

func TestInterpretDivideByZero(t *testing.T) {
	_, errOut, code := runProgram(t, `1 / 0;`)
	if code != ExitRuntimeErr || !strings.Contains(errOut, "Cannot divide by zero.") {
		t.Errorf("got err=%q code=%d", errOut, code)
	}
}

func TestInterpretUninitializedVariable(t *testing.T) {
	_, errOut, code := runProgram(t, `var a; print a;`)
	if code != ExitRuntimeErr || !strings.Contains(errOut, "Uninitialized variable 'a'.") {
		t.Errorf("got err=%q code=%d", errOut, code)
	}
}

func TestInterpretBreakExitsNearestLoopOnly(t *testing.T) {
	out, _, code := runProgram(t, `
		for (var i = 0; i < 2; i = i + 1) {
			for (var j = 0; j < 5; j = j + 1) {
				if (j == 1) break;
				print j;
			}
			print i;
		}
	`)
	want := []string{"0", "0", "0", "1"}
	if code != ExitSuccess || len(out) != len(want) {
		t.Fatalf("got %v code=%d", out, code)
	}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("line %d: got %s want %s", i, out[i], want[i])
		}
	}
}

func TestInterpretTernaryShortCircuitsBranch(t *testing.T) {
	out, _, code := runProgram(t, `
		fun bomb() { return 1/0; }
		print true ? "ok" : bomb();
	`)
	if code != ExitSuccess || len(out) != 1 || out[0] != "ok" {
		t.Errorf("got %v code=%d", out, code)
	}
}

func TestInterpretGetterInvokedImplicitly(t *testing.T) {
	out, _, code := runProgram(t, `
		class Box {
			init(v) { this.v = v; }
			doubled { return this.v * 2; }
		}
		print Box(21).doubled;
	`)
	if code != ExitSuccess || len(out) != 1 || out[0] != "42" {
		t.Errorf("got %v code=%d", out, code)
	}
}

func TestInterpretStaticMethodViaMetaclass(t *testing.T) {
	out, _, code := runProgram(t, `
		class Util {
			class twice(n) { return n * 2; }
		}
		print Util.twice(10);
	`)
	if code != ExitSuccess || len(out) != 1 || out[0] != "20" {
		t.Errorf("got %v code=%d", out, code)
	}
}

func TestInterpretInitializerAlwaysReturnsInstance(t *testing.T) {
	out, _, code := runProgram(t, `
		class C {
			init() { return; }
		}
		var c = C();
		print c;
	`)
	if code != ExitSuccess || len(out) != 1 || out[0] != "<C> instance" {
		t.Errorf("got %v code=%d", out, code)
	}
}
