package lox

import "fmt"

// Class is a Lox class object. It is itself Callable (construction) and,
// for static/class methods, looked up through its own metaclass — a
// *Class whose "instance" methods are the declared `class` methods.
type Class struct {
	name       string
	superclass *Class
	methods    map[string]*Function
	metaclass  *Class
}

func (c *Class) Type() ObjectType { return ObjClass }
func (c *Class) String() string   { return c.name }

// NewClass builds a Class together with its metaclass: classMethods become
// the metaclass's own methods, so `ClassName.staticMethod()` resolves via
// the same Get path as an instance method lookup.
func NewClass(name string, superclass *Class, methods map[string]*Function, classMethods map[string]*Function) *Class {
	var metaSuper *Class
	if superclass != nil {
		metaSuper = superclass.metaclass
	}
	meta := &Class{name: name + " metaclass", superclass: metaSuper, methods: classMethods}
	return &Class{name: name, superclass: superclass, methods: methods, metaclass: meta}
}

// FindMethod walks the superclass chain.
func (c *Class) FindMethod(name string) *Function {
	if m, ok := c.methods[name]; ok {
		return m
	}
	if c.superclass != nil {
		return c.superclass.FindMethod(name)
	}
	return nil
}

// Get resolves a class-level property access (a static/class method call)
// through the metaclass, mirroring Instance.Get.
func (c *Class) Get(name Token) (Object, error) {
	if c.metaclass != nil {
		if method := c.metaclass.FindMethod(name.Lexeme); method != nil {
			return method, nil
		}
	}
	return nil, newRuntimeErrorAt(name.Line, fmt.Sprintf("Undefined property '%s'.", name.Lexeme))
}

func (c *Class) Arity() int {
	if init := c.FindMethod("init"); init != nil {
		return init.Arity()
	}
	return 0
}

// Call constructs a new Instance, running `init` if the class declares one.
func (c *Class) Call(in *Interpreter, args []Object) (Object, error) {
	instance := NewInstance(c)
	if init := c.FindMethod("init"); init != nil {
		if _, err := init.bind(instance).Call(in, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

// Instance is a runtime instance of a Lox class, holding its own field map
// on top of its class's method table.
type Instance struct {
	class  *Class
	fields map[string]Object
}

func NewInstance(class *Class) *Instance {
	return &Instance{class: class, fields: make(map[string]Object)}
}

func (i *Instance) Type() ObjectType { return ObjInstance }
func (i *Instance) String() string   { return fmt.Sprintf("<%s> instance", i.class.name) }

// Get implements field-then-method lookup, auto-invoking zero-arg getter
// methods.
func (i *Instance) Get(name Token, in *Interpreter) (Object, error) {
	if v, ok := i.fields[name.Lexeme]; ok {
		return v, nil
	}

	method := i.class.FindMethod(name.Lexeme)
	if method == nil {
		return nil, newRuntimeErrorAt(name.Line, fmt.Sprintf("Undefined property '%s'.", name.Lexeme))
	}

	bound := method.bind(i)
	if bound.isGetter {
		return bound.Call(in, nil)
	}
	return bound, nil
}

func (i *Instance) Set(name Token, value Object) {
	i.fields[name.Lexeme] = value
}
