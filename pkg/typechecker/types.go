package typechecker

import (
	"mypl/interpreter-go/pkg/ast"
	"mypl/interpreter-go/pkg/token"
)

// Type names a MyPL type: one of the scalar names below or a UDT name.
type Type string

const (
	TypeInt    Type = "int"
	TypeDouble Type = "double"
	TypeBool   Type = "bool"
	TypeChar   Type = "char"
	TypeString Type = "string"
	TypeNil    Type = "nil"

	// TypeAny only appears as a built-in parameter type (print).
	TypeAny Type = "any"
)

func (t Type) Name() string { return string(t) }

func (t Type) IsScalar() bool {
	switch t {
	case TypeInt, TypeDouble, TypeBool, TypeChar, TypeString:
		return true
	}
	return false
}

func isNumeric(t Type) bool {
	return t == TypeInt || t == TypeDouble
}

func isOrdered(t Type) bool {
	switch t {
	case TypeInt, TypeDouble, TypeChar, TypeString:
		return true
	}
	return false
}

func isText(t Type) bool {
	return t == TypeChar || t == TypeString
}

// compatible reports whether a value of type actual may flow into a slot of
// type expected. nil flows anywhere.
func compatible(expected, actual Type) bool {
	return expected == actual || actual == TypeNil || expected == TypeAny
}

// typeFromToken converts a type token (keyword, nil or UDT identifier).
func typeFromToken(tok token.Token) Type {
	switch tok.Kind {
	case token.IntType:
		return TypeInt
	case token.DoubleType:
		return TypeDouble
	case token.BoolType:
		return TypeBool
	case token.CharType:
		return TypeChar
	case token.StringType:
		return TypeString
	case token.Nil:
		return TypeNil
	}
	return Type(tok.Lexeme)
}

func literalType(tok token.Token) Type {
	switch tok.Kind {
	case token.IntVal:
		return TypeInt
	case token.DoubleVal:
		return TypeDouble
	case token.BoolVal:
		return TypeBool
	case token.CharVal:
		return TypeChar
	case token.StringVal:
		return TypeString
	}
	return TypeNil
}

// InferenceMap records the inferred type of every checked expression.
type InferenceMap map[*ast.Expr]Type

func (m InferenceMap) set(expr *ast.Expr, t Type) {
	if expr == nil {
		return
	}
	m[expr] = t
}
