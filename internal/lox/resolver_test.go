package lox

import "testing"

func resolveSource(t *testing.T, src string) (*collectingReporter, []Stmt, map[Expr]int) {
	t.Helper()
	r := &collectingReporter{}
	tokens := NewScanner(src, r).Scan()
	stmts := NewParser(tokens, r).Parse()
	locals := NewResolver(r).Resolve(stmts)
	return r, stmts, locals
}

func TestResolverCatchesSelfReferencingInitializer(t *testing.T) {
	r, _, _ := resolveSource(t, `{ var a = a; }`)
	if len(r.compileErrors) != 1 || r.compileErrors[0] != "Can't read local variable in its own initializer." {
		t.Errorf("got %v", r.compileErrors)
	}
}

func TestResolverCatchesDuplicateDeclaration(t *testing.T) {
	r, _, _ := resolveSource(t, `{ var a = 1; var a = 2; }`)
	if len(r.compileErrors) != 1 {
		t.Errorf("got %v", r.compileErrors)
	}
}

func TestResolverCatchesTopLevelReturn(t *testing.T) {
	r, _, _ := resolveSource(t, `return 1;`)
	if len(r.compileErrors) != 1 || r.compileErrors[0] != "Can't return from top-level code." {
		t.Errorf("got %v", r.compileErrors)
	}
}

func TestResolverCatchesBreakOutsideLoop(t *testing.T) {
	r, _, _ := resolveSource(t, `break;`)
	if len(r.compileErrors) != 1 || r.compileErrors[0] != "Must be inside a loop to use 'break'." {
		t.Errorf("got %v", r.compileErrors)
	}
}

func TestResolverCatchesThisOutsideClass(t *testing.T) {
	r, _, _ := resolveSource(t, `print this;`)
	if len(r.compileErrors) != 1 {
		t.Errorf("got %v", r.compileErrors)
	}
}

func TestResolverCatchesSelfInheritance(t *testing.T) {
	r, _, _ := resolveSource(t, `class A < A {}`)
	if len(r.compileErrors) != 1 {
		t.Errorf("got %v", r.compileErrors)
	}
}

func TestResolverDoesNotFlagGlobalsAsUnusedLocals(t *testing.T) {
	r, _, _ := resolveSource(t, `var unused = 1;`)
	if len(r.compileErrors) != 0 || len(r.compileWarnings) != 0 {
		t.Errorf("globals must not trigger the unused-local warning, got %v %v", r.compileErrors, r.compileWarnings)
	}
}

func TestResolverProducesDepthForNestedBlock(t *testing.T) {
	_, stmts, locals := resolveSource(t, `{ var a = 1; { print a; } }`)
	outer := stmts[0].(*Block)
	inner := outer.Stmts[1].(*Block)
	printStmt := inner.Stmts[0].(*PrintStmt)
	varExpr := printStmt.Expr.(*Variable)

	if depth, ok := locals[varExpr]; !ok || depth != 1 {
		t.Errorf("expected depth 1 for nested read of a, got %v (ok=%v)", depth, ok)
	}
}
