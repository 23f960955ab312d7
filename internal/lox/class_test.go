package lox

import "testing"

func TestClassFindMethodWalksSuperclassChain(t *testing.T) {
	base := NewClass("Base", nil, map[string]*Function{"m": {name: "m"}}, nil)
	derived := NewClass("Derived", base, map[string]*Function{}, nil)

	if derived.FindMethod("m") == nil {
		t.Fatal("expected Derived to inherit m from Base")
	}
	if derived.FindMethod("missing") != nil {
		t.Fatal("expected no method for an undeclared name")
	}
}

func TestClassArityMatchesInitializer(t *testing.T) {
	init := &Function{name: "init", params: []Token{{Lexeme: "a"}, {Lexeme: "b"}}}
	class := NewClass("C", nil, map[string]*Function{"init": init}, nil)

	if class.Arity() != 2 {
		t.Errorf("got arity %d, want 2", class.Arity())
	}
}

func TestClassWithNoInitializerHasZeroArity(t *testing.T) {
	class := NewClass("C", nil, map[string]*Function{}, nil)
	if class.Arity() != 0 {
		t.Errorf("got arity %d, want 0", class.Arity())
	}
}

func TestInstanceGetFallsBackToBoundMethod(t *testing.T) {
	method := &Function{name: "m", closure: NewEnvironment(nil)}
	class := NewClass("C", nil, map[string]*Function{"m": method}, nil)
	instance := NewInstance(class)

	v, err := instance.Get(Token{Lexeme: "m"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bound, ok := v.(*Function)
	if !ok || bound.name != "m" {
		t.Errorf("got %v", v)
	}
}

func TestInstanceSetThenGetReturnsField(t *testing.T) {
	class := NewClass("C", nil, map[string]*Function{}, nil)
	instance := NewInstance(class)
	instance.Set(Token{Lexeme: "x"}, NewNumber(5))

	v, err := instance.Get(Token{Lexeme: "x"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n, _ := IsNumber(v); n != 5 {
		t.Errorf("got %v", v)
	}
}

func TestClassGetResolvesStaticMethodThroughMetaclass(t *testing.T) {
	staticMethod := &Function{name: "make", closure: NewEnvironment(nil)}
	class := NewClass("C", nil, map[string]*Function{}, map[string]*Function{"make": staticMethod})

	v, err := class.Get(Token{Lexeme: "make"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fn, ok := v.(*Function); !ok || fn.name != "make" {
		t.Errorf("got %v", v)
	}
}
