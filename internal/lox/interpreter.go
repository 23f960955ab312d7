package lox

import (
	"fmt"
	"time"
)

// Interpreter walks the AST produced by the Parser, consuming the depth
// map produced by the Resolver. A single receiver owns both the global
// scope and the current environment, so every expression and statement
// dispatch has direct access to the scope chain.
type Interpreter struct {
	globals  *Environment
	env      *Environment
	locals   map[Expr]int
	reporter Reporter
	print    func(string)
}

// NewInterpreter builds an Interpreter with the native globals (`clock`)
// already defined. print receives each `print` statement's rendered line,
// letting callers (CLI, REPL, tests) capture output without going through
// os.Stdout directly.
func NewInterpreter(reporter Reporter, print func(string)) *Interpreter {
	globals := NewEnvironment(nil)
	globals.Define("clock", &nativeClock{})

	return &Interpreter{
		globals:  globals,
		env:      globals,
		locals:   make(map[Expr]int),
		reporter: reporter,
		print:    print,
	}
}

// SetLocals installs the Resolver's depth map; call this once per Resolve
// before Interpret.
func (in *Interpreter) SetLocals(locals map[Expr]int) {
	in.locals = locals
}

// Globals exposes the global environment.
func (in *Interpreter) Globals() *Environment { return in.globals }

// nativeClock implements the `clock()` native function.
type nativeClock struct{}

func (n *nativeClock) Type() ObjectType { return ObjFunction }
func (n *nativeClock) String() string   { return "<native fn>" }
func (n *nativeClock) Arity() int       { return 0 }
func (n *nativeClock) Call(*Interpreter, []Object) (Object, error) {
	return NewNumber(float64(time.Now().UnixNano()) / 1e9), nil
}

// Interpret runs a top-level statement list, reporting any runtime error
// through Reporter; a runtime error halts execution at that point and is
// reported once.
func (in *Interpreter) Interpret(stmts []Stmt) error {
	for _, s := range stmts {
		if err := in.execute(s); err != nil {
			if rerr, ok := err.(*runtimeError); ok {
				in.reporter.RuntimeError(rerr.Line, rerr.Message)
				return rerr
			}
			// A signal escaping the top level is an implementation bug,
			// not a user-facing error; surface it loudly.
			panic(fmt.Sprintf("interpreter: control signal escaped top level: %v", err))
		}
	}
	return nil
}

// --------------- statements --------------- //

func (in *Interpreter) execute(s Stmt) error {
	switch stmt := s.(type) {
	case *Block:
		return in.executeBlock(stmt.Stmts, NewEnvironment(in.env))
	case *ClassStmt:
		return in.executeClass(stmt)
	case *ExpressionStmt:
		_, err := in.evaluate(stmt.Expr)
		return err
	case *FunctionStmt:
		fn := NewFunction(stmt, in.env, false)
		in.env.Define(stmt.Name.Lexeme, fn)
		return nil
	case *IfStmt:
		cond, err := in.evaluate(stmt.Cond)
		if err != nil {
			return err
		}
		if IsTruthy(cond) {
			return in.execute(stmt.Then)
		}
		if stmt.Else != nil {
			return in.execute(stmt.Else)
		}
		return nil
	case *PrintStmt:
		v, err := in.evaluate(stmt.Expr)
		if err != nil {
			return err
		}
		in.print(Stringify(v))
		return nil
	case *ReturnStmt:
		var value Object = NewNil()
		if stmt.Value != nil {
			v, err := in.evaluate(stmt.Value)
			if err != nil {
				return err
			}
			value = v
		}
		return &returnSignal{Value: value}
	case *VarStmt:
		if stmt.Initializer == nil {
			in.env.DefineUninitialized(stmt.Name.Lexeme)
			return nil
		}
		value, err := in.evaluate(stmt.Initializer)
		if err != nil {
			return err
		}
		in.env.Define(stmt.Name.Lexeme, value)
		return nil
	case *WhileStmt:
		for {
			cond, err := in.evaluate(stmt.Cond)
			if err != nil {
				return err
			}
			if !IsTruthy(cond) {
				return nil
			}
			if err := in.execute(stmt.Body); err != nil {
				if _, ok := err.(*breakSignal); ok {
					return nil
				}
				return err
			}
		}
	case *BreakStmt:
		return &breakSignal{}
	default:
		panic(fmt.Sprintf("interpreter: unhandled statement type %T", s))
	}
}

// executeBlock runs stmts in env, restoring the previous environment
// before returning, including on error.
func (in *Interpreter) executeBlock(stmts []Stmt, env *Environment) error {
	previous := in.env
	in.env = env
	defer func() { in.env = previous }()

	for _, s := range stmts {
		if err := in.execute(s); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) executeClass(stmt *ClassStmt) error {
	var superclass *Class
	if stmt.Superclass != nil {
		v, err := in.evaluate(stmt.Superclass)
		if err != nil {
			return err
		}
		sc, ok := v.(*Class)
		if !ok {
			return newRuntimeErrorAt(stmt.Superclass.Name.Line, "Superclass must be a class.")
		}
		superclass = sc
	}

	in.env.Define(stmt.Name.Lexeme, NewNil())

	enclosing := in.env
	if superclass != nil {
		in.env = NewEnvironment(in.env)
		in.env.Define("super", superclass)
	}

	methods := make(map[string]*Function)
	for _, m := range stmt.Methods {
		methods[m.Name.Lexeme] = NewFunction(m, in.env, m.Name.Lexeme == "init")
	}
	classMethods := make(map[string]*Function)
	for _, m := range stmt.ClassMethods {
		classMethods[m.Name.Lexeme] = NewFunction(m, in.env, false)
	}

	class := NewClass(stmt.Name.Lexeme, superclass, methods, classMethods)

	if superclass != nil {
		in.env = enclosing
	}

	return in.env.Assign(stmt.Name.Lexeme, class)
}

// --------------- expressions --------------- //

func (in *Interpreter) evaluate(e Expr) (Object, error) {
	switch expr := e.(type) {
	case *Assign:
		value, err := in.evaluate(expr.Value)
		if err != nil {
			return nil, err
		}
		if err := in.assignVariable(expr, expr.Name.Lexeme, value); err != nil {
			return nil, err
		}
		return value, nil

	case *Binary:
		return in.evaluateBinary(expr)

	case *Logical:
		left, err := in.evaluate(expr.Left)
		if err != nil {
			return nil, err
		}
		if expr.Op.Type == Or {
			if IsTruthy(left) {
				return left, nil
			}
		} else if !IsTruthy(left) {
			return left, nil
		}
		return in.evaluate(expr.Right)

	case *Unary:
		right, err := in.evaluate(expr.Right)
		if err != nil {
			return nil, err
		}
		switch expr.Op.Type {
		case Bang:
			return NewBool(!IsTruthy(right)), nil
		case Minus:
			n, ok := IsNumber(right)
			if !ok {
				return nil, newRuntimeErrorAt(expr.Op.Line, "Operand must be a number.")
			}
			return NewNumber(-n), nil
		}
		panic("unreachable: unary operator")

	case *LiteralExpr:
		return expr.Value, nil

	case *Grouping:
		return in.evaluate(expr.Inner)

	case *Comma:
		var last Object = NewNil()
		for _, x := range expr.List {
			v, err := in.evaluate(x)
			if err != nil {
				return nil, err
			}
			last = v
		}
		return last, nil

	case *Ternary:
		cond, err := in.evaluate(expr.Cond)
		if err != nil {
			return nil, err
		}
		if IsTruthy(cond) {
			return in.evaluate(expr.Then)
		}
		return in.evaluate(expr.Else)

	case *Variable:
		return in.lookupVariable(expr, expr.Name.Lexeme)

	case *Call:
		return in.evaluateCall(expr)

	case *Get:
		obj, err := in.evaluate(expr.Object)
		if err != nil {
			return nil, err
		}
		switch o := obj.(type) {
		case *Instance:
			return o.Get(expr.Name, in)
		case *Class:
			return o.Get(expr.Name)
		default:
			return nil, newRuntimeErrorAt(expr.Name.Line, "Only instances have properties.")
		}

	case *Set:
		obj, err := in.evaluate(expr.Object)
		if err != nil {
			return nil, err
		}
		instance, ok := obj.(*Instance)
		if !ok {
			return nil, newRuntimeErrorAt(expr.Name.Line, "Only instances have fields.")
		}
		value, err := in.evaluate(expr.Value)
		if err != nil {
			return nil, err
		}
		instance.Set(expr.Name, value)
		return value, nil

	case *This:
		return in.lookupVariable(expr, "this")

	case *Super:
		return in.evaluateSuper(expr)

	case *FunctionExpr:
		return NewAnonymousFunction(expr, in.env), nil

	default:
		panic(fmt.Sprintf("interpreter: unhandled expression type %T", e))
	}
}

func (in *Interpreter) evaluateBinary(expr *Binary) (Object, error) {
	left, err := in.evaluate(expr.Left)
	if err != nil {
		return nil, err
	}
	right, err := in.evaluate(expr.Right)
	if err != nil {
		return nil, err
	}

	switch expr.Op.Type {
	case Plus:
		if a, ok := IsNumber(left); ok {
			if b, ok := IsNumber(right); ok {
				return NewNumber(a + b), nil
			}
		}
		// The `+` string overload is asymmetric: if either side is a
		// String, the other is stringified and concatenated —
		// `"a" + 1 == "a1"`, not an error.
		if a, ok := IsString(left); ok {
			return NewString(a + Stringify(right)), nil
		}
		if b, ok := IsString(right); ok {
			return NewString(Stringify(left) + b), nil
		}
		return nil, newRuntimeErrorAt(expr.Op.Line, "Operands must be two numbers or two strings.")
	case Minus:
		a, b, err := in.assertNumbers(expr.Op, left, right)
		if err != nil {
			return nil, err
		}
		return NewNumber(a - b), nil
	case Star:
		a, b, err := in.assertNumbers(expr.Op, left, right)
		if err != nil {
			return nil, err
		}
		return NewNumber(a * b), nil
	case Slash:
		a, b, err := in.assertNumbers(expr.Op, left, right)
		if err != nil {
			return nil, err
		}
		if b == 0 {
			return nil, newRuntimeErrorAt(expr.Op.Line, "Cannot divide by zero.")
		}
		return NewNumber(a / b), nil
	case Greater:
		a, b, err := in.assertNumbers(expr.Op, left, right)
		if err != nil {
			return nil, err
		}
		return NewBool(a > b), nil
	case GreaterEqual:
		a, b, err := in.assertNumbers(expr.Op, left, right)
		if err != nil {
			return nil, err
		}
		return NewBool(a >= b), nil
	case Less:
		a, b, err := in.assertNumbers(expr.Op, left, right)
		if err != nil {
			return nil, err
		}
		return NewBool(a < b), nil
	case LessEqual:
		a, b, err := in.assertNumbers(expr.Op, left, right)
		if err != nil {
			return nil, err
		}
		return NewBool(a <= b), nil
	case EqualEqual:
		return NewBool(isEqual(left, right)), nil
	case BangEqual:
		return NewBool(!isEqual(left, right)), nil
	}
	panic("unreachable: binary operator")
}

func (in *Interpreter) assertNumbers(op Token, left, right Object) (float64, float64, error) {
	a, aok := IsNumber(left)
	b, bok := IsNumber(right)
	if !aok || !bok {
		return 0, 0, newRuntimeErrorAt(op.Line, "Operands must be numbers.")
	}
	return a, b, nil
}

func (in *Interpreter) evaluateCall(expr *Call) (Object, error) {
	callee, err := in.evaluate(expr.Callee)
	if err != nil {
		return nil, err
	}

	fn, ok := callee.(Callable)
	if !ok {
		return nil, newRuntimeErrorAt(expr.Paren.Line, "Can only call functions and classes.")
	}

	args := make([]Object, 0, len(expr.Args))
	for _, a := range expr.Args {
		v, err := in.evaluate(a)
		if err != nil {
			return nil, err
		}
		args = append(args, v)
	}

	if len(args) != fn.Arity() {
		return nil, newRuntimeErrorAt(expr.Paren.Line,
			fmt.Sprintf("Expected %d arguments but got %d.", fn.Arity(), len(args)))
	}

	return fn.Call(in, args)
}

func (in *Interpreter) evaluateSuper(expr *Super) (Object, error) {
	distance, ok := in.locals[expr]
	if !ok {
		return nil, newRuntimeErrorAt(expr.Keyword.Line, "Undefined 'super'.")
	}

	superAny, err := in.env.GetAt(distance, "super")
	if err != nil {
		return nil, err
	}
	superclass := superAny.(*Class)

	thisAny, err := in.env.GetAt(distance-1, "this")
	if err != nil {
		return nil, err
	}
	instance := thisAny.(*Instance)

	method := superclass.FindMethod(expr.Method.Lexeme)
	if method == nil {
		return nil, newRuntimeErrorAt(expr.Method.Line, fmt.Sprintf("Undefined property '%s'.", expr.Method.Lexeme))
	}
	return method.bind(instance), nil
}

// lookupVariable consults the depth map first (a local resolved by the
// Resolver), falling back to the dynamic globals lookup for anything the
// Resolver left unresolved — globals are never depth-addressed.
func (in *Interpreter) lookupVariable(expr Expr, name string) (Object, error) {
	if distance, ok := in.locals[expr]; ok {
		return in.env.GetAt(distance, name)
	}
	return in.globals.Get(name)
}

func (in *Interpreter) assignVariable(expr Expr, name string, value Object) error {
	if distance, ok := in.locals[expr]; ok {
		in.env.AssignAt(distance, name, value)
		return nil
	}
	return in.globals.Assign(name, value)
}
