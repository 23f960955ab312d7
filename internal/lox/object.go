package lox

import "fmt"

// ObjectType tags the runtime value union.
type ObjectType int

const (
	ObjNil ObjectType = iota
	ObjBool
	ObjNumber
	ObjString
	ObjFunction
	ObjClass
	ObjInstance
)

// Object is the tagged Value union: Nil | Boolean | Number | String |
// Callable (function, native function, or class) | Instance.
type Object interface {
	Type() ObjectType
	String() string
}

type LoxNil struct{}

func (n *LoxNil) Type() ObjectType { return ObjNil }
func (n *LoxNil) String() string   { return "nil" }

var theNil = &LoxNil{}

func NewNil() Object { return theNil }

type LoxBool struct{ value bool }

func (b *LoxBool) Type() ObjectType { return ObjBool }
func (b *LoxBool) String() string   { return fmt.Sprintf("%t", b.value) }

var (
	trueObj  = &LoxBool{value: true}
	falseObj = &LoxBool{value: false}
)

func NewBool(v bool) Object {
	if v {
		return trueObj
	}
	return falseObj
}

type LoxNumber struct{ value float64 }

func (n *LoxNumber) Type() ObjectType { return ObjNumber }
func (n *LoxNumber) String() string   { return formatNumber(n.value) }

func NewNumber(v float64) Object { return &LoxNumber{value: v} }

type LoxString struct{ value string }

func (s *LoxString) Type() ObjectType { return ObjString }
func (s *LoxString) String() string   { return s.value }

func NewString(v string) Object { return &LoxString{value: v} }

// --------------- extraction helpers --------------- //

func IsNumber(obj Object) (float64, bool) {
	if n, ok := obj.(*LoxNumber); ok {
		return n.value, true
	}
	return 0, false
}

func IsString(obj Object) (string, bool) {
	if s, ok := obj.(*LoxString); ok {
		return s.value, true
	}
	return "", false
}

func IsBool(obj Object) (bool, bool) {
	if b, ok := obj.(*LoxBool); ok {
		return b.value, true
	}
	return false, false
}

func IsNil(obj Object) bool {
	_, ok := obj.(*LoxNil)
	return ok
}

// IsTruthy applies Lox's truthiness rule: only nil and false are falsy.
func IsTruthy(obj Object) bool {
	switch v := obj.(type) {
	case *LoxNil:
		return false
	case *LoxBool:
		return v.value
	default:
		return true
	}
}

// isEqual applies Lox's equality rule: Nil==Nil, otherwise strict
// same-tag same-payload, no coercion.
func isEqual(left, right Object) bool {
	if IsNil(left) && IsNil(right) {
		return true
	}
	if IsNil(left) || IsNil(right) {
		return false
	}

	if n1, ok1 := IsNumber(left); ok1 {
		n2, ok2 := IsNumber(right)
		return ok2 && n1 == n2
	}
	if s1, ok1 := IsString(left); ok1 {
		s2, ok2 := IsString(right)
		return ok2 && s1 == s2
	}
	if b1, ok1 := IsBool(left); ok1 {
		b2, ok2 := IsBool(right)
		return ok2 && b1 == b2
	}

	return left == right
}
