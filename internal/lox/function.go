package lox

import "fmt"

// Callable is any Object that can appear on the left of a call expression:
// user functions, native functions, and classes themselves (construction).
type Callable interface {
	Object
	Call(in *Interpreter, args []Object) (Object, error)
	Arity() int
}

// Function wraps a user-declared `fun` or method, closing over the
// environment active at its declaration site, with getter and initializer
// handling.
type Function struct {
	name          string
	params        []Token
	body          []Stmt
	closure       *Environment
	isInitializer bool
	isGetter      bool
}

func (f *Function) Type() ObjectType { return ObjFunction }
func (f *Function) String() string {
	if f.name == "" {
		return "<fn (anonymous)>"
	}
	return fmt.Sprintf("<fn %s>", f.name)
}

// NewFunction builds a Function from a declaration, used for both top-level
// `fun` declarations and class methods.
func NewFunction(decl *FunctionStmt, closure *Environment, isInitializer bool) *Function {
	return &Function{
		name:          decl.Name.Lexeme,
		params:        decl.Params,
		body:          decl.Body,
		closure:       closure,
		isInitializer: isInitializer,
		isGetter:      decl.IsGetter,
	}
}

// NewAnonymousFunction builds a Function from a `fun(...) {...}` expression;
// it is never a getter or initializer.
func NewAnonymousFunction(expr *FunctionExpr, closure *Environment) *Function {
	return &Function{params: expr.Params, body: expr.Body, closure: closure}
}

// bind returns a copy of f whose closure additionally defines "this" as
// instance, used when a method is looked up off an instance.
func (f *Function) bind(instance *Instance) *Function {
	env := NewEnvironment(f.closure)
	env.Define("this", instance)
	return &Function{
		name:          f.name,
		params:        f.params,
		body:          f.body,
		closure:       env,
		isInitializer: f.isInitializer,
		isGetter:      f.isGetter,
	}
}

func (f *Function) Arity() int { return len(f.params) }

// Call executes the function body in a fresh environment parented on its
// closure. A returnSignal propagating out of the body is caught here and
// only here; it must never escape further.
func (f *Function) Call(in *Interpreter, args []Object) (ret Object, err error) {
	env := NewEnvironment(f.closure)
	for i, param := range f.params {
		env.Define(param.Lexeme, args[i])
	}

	err = in.executeBlock(f.body, env)
	if err != nil {
		if rs, ok := err.(*returnSignal); ok {
			if f.isInitializer {
				return f.closure.GetAt(0, "this")
			}
			return rs.Value, nil
		}
		return nil, err
	}

	if f.isInitializer {
		return f.closure.GetAt(0, "this")
	}
	return NewNil(), nil
}
