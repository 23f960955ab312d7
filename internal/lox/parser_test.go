package lox

import "testing"

func parseExpr(t *testing.T, src string) Expr {
	t.Helper()
	r := &collectingReporter{}
	tokens := NewScanner(src, r).Scan()
	expr, err := NewParser(tokens, r).ParseExpression()
	if err != nil {
		t.Fatalf("parse error for %q: %v (%v)", src, err, r.compileErrors)
	}
	return expr
}

func TestParsePrecedence(t *testing.T) {
	cases := map[string]string{
		"1 + 2 * 3":       "(+ 1 (* 2 3))",
		"(1 + 2) * 3":     "(* (group (+ 1 2)) 3)",
		"1 < 2 == 3 < 4":  "(== (< 1 2) (< 3 4))",
		"-1 * 2":          "(* (- 1) 2)",
		"true ? 1 : 2":    "(?: true 1 2)",
		"1, 2, 3":         "(, 1 2 3)",
		"a.b.c":            "(. (. a b) c)",
	}

	for src, want := range cases {
		expr := parseExpr(t, src)
		if got := expr.String(); got != want {
			t.Errorf("%q: got %s, want %s", src, got, want)
		}
	}
}

func TestParseAssignmentTargetMustBeVariableOrGet(t *testing.T) {
	r := &collectingReporter{}
	tokens := NewScanner("1 = 2;", r).Scan()
	NewParser(tokens, r).Parse()

	if len(r.compileErrors) == 0 {
		t.Fatal("expected an invalid-assignment-target error")
	}
}

func TestForLoopDesugarsToWhile(t *testing.T) {
	r := &collectingReporter{}
	tokens := NewScanner("for (var i = 0; i < 3; i = i + 1) print i;", r).Scan()
	stmts := NewParser(tokens, r).Parse()

	if len(r.compileErrors) != 0 {
		t.Fatalf("unexpected parse errors: %v", r.compileErrors)
	}
	block, ok := stmts[0].(*Block)
	if !ok {
		t.Fatalf("expected desugared for-loop to be a Block, got %T", stmts[0])
	}
	if _, ok := block.Stmts[0].(*VarStmt); !ok {
		t.Errorf("expected initializer VarStmt, got %T", block.Stmts[0])
	}
	if _, ok := block.Stmts[1].(*WhileStmt); !ok {
		t.Errorf("expected desugared WhileStmt, got %T", block.Stmts[1])
	}
}

func TestGetterMethodHasNoParams(t *testing.T) {
	r := &collectingReporter{}
	tokens := NewScanner(`class C { area { return 1; } }`, r).Scan()
	stmts := NewParser(tokens, r).Parse()

	if len(r.compileErrors) != 0 {
		t.Fatalf("unexpected parse errors: %v", r.compileErrors)
	}
	class := stmts[0].(*ClassStmt)
	if !class.Methods[0].IsGetter {
		t.Error("expected area() to parse as a getter")
	}
}
