package lox

import "fmt"

// FunctionType tracks what kind of function body the Resolver is currently
// inside, so `return` and `this` can be validated.
type FunctionType int

const (
	FunctionTypeNone FunctionType = iota
	FunctionTypeFunction
	FunctionTypeInitializer
	FunctionTypeMethod
)

// ClassType tracks whether the Resolver is inside a class body, and
// whether that class has a superclass, for `this`/`super` validation.
type ClassType int

const (
	ClassTypeNone ClassType = iota
	ClassTypeClass
	ClassTypeSubclass
)

// varState is a scope slot: declared/defined per the two-step dance the
// book uses to catch self-referencing initializers, plus a used flag for
// the unused-local-variable diagnostic.
type varState struct {
	token   Token
	defined bool
	used    bool
}

// Resolver performs the static scope-resolution pass between parsing and
// interpretation. Instead of aborting on the first error, every problem is
// reported through Reporter and resolution continues, so a single run can
// surface more than one mistake.
type Resolver struct {
	locals    map[Expr]int
	scopes    []map[string]*varState
	funcType  FunctionType
	classType ClassType
	loopDepth int
	reporter  Reporter
}

// NewResolver returns a Resolver that reports problems through reporter.
func NewResolver(reporter Reporter) *Resolver {
	return &Resolver{locals: make(map[Expr]int), reporter: reporter}
}

// Resolve walks the whole program and returns the depth map consumed by
// the Interpreter: for each expression node referencing a variable, how
// many scopes up the declaration sits. Top-level declarations are
// deliberately left out of any scope: globals are resolved dynamically at
// run time, not through the depth map, and so are never subject to the
// unused-local-variable diagnostic or the already-declared-in-this-scope
// check.
func (r *Resolver) Resolve(stmts []Stmt) map[Expr]int {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
	return r.locals
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]*varState))
}

func (r *Resolver) endScope() {
	scope := r.scopes[len(r.scopes)-1]
	for name, state := range scope {
		if state.defined && !state.used {
			r.reporter.CompileWarning(state.token.Line, " at '"+name+"'", "Unused local variable.")
		}
	}
	r.scopes = r.scopes[:len(r.scopes)-1]
}

// --------------- statements --------------- //

func (r *Resolver) resolveStmt(s Stmt) {
	switch stmt := s.(type) {
	case *Block:
		r.beginScope()
		for _, d := range stmt.Stmts {
			r.resolveStmt(d)
		}
		r.endScope()
	case *ClassStmt:
		r.resolveClass(stmt)
	case *ExpressionStmt:
		r.resolveExpr(stmt.Expr)
	case *FunctionStmt:
		r.declare(stmt.Name)
		r.define(stmt.Name)
		r.resolveFunction(stmt.Params, stmt.Body, FunctionTypeFunction)
	case *IfStmt:
		r.resolveExpr(stmt.Cond)
		r.resolveStmt(stmt.Then)
		if stmt.Else != nil {
			r.resolveStmt(stmt.Else)
		}
	case *PrintStmt:
		r.resolveExpr(stmt.Expr)
	case *ReturnStmt:
		if r.funcType == FunctionTypeNone {
			r.reporter.CompileError(stmt.Keyword.Line, " at 'return'", "Can't return from top-level code.")
		}
		if stmt.Value != nil {
			if r.funcType == FunctionTypeInitializer {
				r.reporter.CompileError(stmt.Keyword.Line, " at 'return'", "Can't return a value from an initializer.")
			}
			r.resolveExpr(stmt.Value)
		}
	case *VarStmt:
		r.declare(stmt.Name)
		if stmt.Initializer != nil {
			r.resolveExpr(stmt.Initializer)
		}
		r.define(stmt.Name)
	case *WhileStmt:
		r.resolveExpr(stmt.Cond)
		r.loopDepth++
		r.resolveStmt(stmt.Body)
		r.loopDepth--
	case *BreakStmt:
		if r.loopDepth == 0 {
			r.reporter.CompileError(stmt.Keyword.Line, " at 'break'", "Must be inside a loop to use 'break'.")
		}
	default:
		panic(fmt.Sprintf("resolver: unhandled statement type %T", s))
	}
}

func (r *Resolver) resolveClass(c *ClassStmt) {
	enclosingClass := r.classType
	r.classType = ClassTypeClass

	r.declare(c.Name)
	r.define(c.Name)

	if c.Superclass != nil {
		if c.Name.Lexeme == c.Superclass.Name.Lexeme {
			r.reporter.CompileError(c.Superclass.Name.Line, " at '"+c.Superclass.Name.Lexeme+"'", "A class can't inherit from itself.")
		} else {
			r.classType = ClassTypeSubclass
		}
		r.resolveExpr(c.Superclass)

		r.beginScope()
		r.scopes[len(r.scopes)-1]["super"] = &varState{defined: true, used: true}
	}

	r.beginScope()
	r.scopes[len(r.scopes)-1]["this"] = &varState{defined: true, used: true}

	for _, method := range c.Methods {
		fnType := FunctionTypeMethod
		if method.Name.Lexeme == "init" {
			fnType = FunctionTypeInitializer
		}
		r.resolveFunction(method.Params, method.Body, fnType)
	}
	for _, method := range c.ClassMethods {
		r.resolveFunction(method.Params, method.Body, FunctionTypeMethod)
	}

	r.endScope()
	if c.Superclass != nil {
		r.endScope()
	}

	r.classType = enclosingClass
}

func (r *Resolver) resolveFunction(params []Token, body []Stmt, fnType FunctionType) {
	enclosingFn := r.funcType
	enclosingLoop := r.loopDepth
	r.funcType = fnType
	r.loopDepth = 0

	r.beginScope()
	for _, p := range params {
		r.declare(p)
		r.define(p)
		r.scopes[len(r.scopes)-1][p.Lexeme].used = true
	}
	for _, s := range body {
		r.resolveStmt(s)
	}
	r.endScope()

	r.funcType = enclosingFn
	r.loopDepth = enclosingLoop
}

// --------------- expressions --------------- //

func (r *Resolver) resolveExpr(e Expr) {
	switch expr := e.(type) {
	case *Assign:
		r.resolveExpr(expr.Value)
		r.resolveLocal(expr, expr.Name.Lexeme)
	case *Binary:
		r.resolveExpr(expr.Left)
		r.resolveExpr(expr.Right)
	case *Logical:
		r.resolveExpr(expr.Left)
		r.resolveExpr(expr.Right)
	case *Unary:
		r.resolveExpr(expr.Right)
	case *LiteralExpr:
		// nothing to resolve
	case *Grouping:
		r.resolveExpr(expr.Inner)
	case *Comma:
		for _, x := range expr.List {
			r.resolveExpr(x)
		}
	case *Ternary:
		r.resolveExpr(expr.Cond)
		r.resolveExpr(expr.Then)
		r.resolveExpr(expr.Else)
	case *Variable:
		if len(r.scopes) > 0 {
			if state, ok := r.scopes[len(r.scopes)-1][expr.Name.Lexeme]; ok && !state.defined {
				r.reporter.CompileError(expr.Name.Line, " at '"+expr.Name.Lexeme+"'", "Can't read local variable in its own initializer.")
			}
		}
		r.resolveLocal(expr, expr.Name.Lexeme)
	case *Call:
		r.resolveExpr(expr.Callee)
		for _, a := range expr.Args {
			r.resolveExpr(a)
		}
	case *Get:
		r.resolveExpr(expr.Object)
	case *Set:
		r.resolveExpr(expr.Value)
		r.resolveExpr(expr.Object)
	case *This:
		if r.classType == ClassTypeNone {
			r.reporter.CompileError(expr.Keyword.Line, " at 'this'", "Can't use 'this' outside of a class.")
			return
		}
		r.resolveLocal(expr, "this")
	case *Super:
		if r.classType == ClassTypeNone {
			r.reporter.CompileError(expr.Keyword.Line, " at 'super'", "Can't use 'super' outside of a class.")
		} else if r.classType != ClassTypeSubclass {
			r.reporter.CompileError(expr.Keyword.Line, " at 'super'", "Can't use 'super' without a superclass.")
		}
		r.resolveLocal(expr, "super")
	case *FunctionExpr:
		r.resolveFunction(expr.Params, expr.Body, FunctionTypeFunction)
	default:
		panic(fmt.Sprintf("resolver: unhandled expression type %T", e))
	}
}

func (r *Resolver) declare(name Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, ok := scope[name.Lexeme]; ok {
		r.reporter.CompileError(name.Line, " at '"+name.Lexeme+"'", "Already a variable with this name in this scope.")
	}
	scope[name.Lexeme] = &varState{token: name}
}

func (r *Resolver) define(name Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if state, ok := scope[name.Lexeme]; ok {
		state.defined = true
	} else {
		scope[name.Lexeme] = &varState{token: name, defined: true}
	}
}

func (r *Resolver) resolveLocal(expr Expr, name string) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if state, ok := r.scopes[i][name]; ok {
			state.used = true
			r.locals[expr] = len(r.scopes) - 1 - i
			return
		}
	}
}
