package runtime

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindNil Kind = iota
	KindBool
	KindInt
	KindDouble
	KindChar
	KindString
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindDouble:
		return "double"
	case KindChar:
		return "char"
	case KindString:
		return "string"
	case KindObject:
		return "object"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Value is the closed set of MyPL runtime values. Every variant except
// ObjectRef is copied by value; an ObjectRef is a handle into the Heap.
type Value interface {
	Kind() Kind
}

type NilValue struct{}

func (NilValue) Kind() Kind { return KindNil }

type BoolValue struct {
	Val bool
}

func (BoolValue) Kind() Kind { return KindBool }

type IntValue struct {
	Val int64
}

func (IntValue) Kind() Kind { return KindInt }

type DoubleValue struct {
	Val float64
}

func (DoubleValue) Kind() Kind { return KindDouble }

type CharValue struct {
	Val rune
}

func (CharValue) Kind() Kind { return KindChar }

type StringValue struct {
	Val string
}

func (StringValue) Kind() Kind { return KindString }

// ObjectRef refers to a HeapObject by oid.
type ObjectRef struct {
	OID OID
}

func (ObjectRef) Kind() Kind { return KindObject }

// Nil is the shared nil value.
var Nil Value = NilValue{}

// IsNil reports whether v is nil (or an unset Go interface).
func IsNil(v Value) bool {
	return v == nil || v.Kind() == KindNil
}

// Format renders v the way print and the string conversions show it.
func Format(v Value) string {
	switch val := v.(type) {
	case nil, NilValue:
		return "nil"
	case BoolValue:
		return strconv.FormatBool(val.Val)
	case IntValue:
		return strconv.FormatInt(val.Val, 10)
	case DoubleValue:
		return FormatDouble(val.Val)
	case CharValue:
		return string(val.Val)
	case StringValue:
		return val.Val
	case ObjectRef:
		return fmt.Sprintf("<object %d>", val.OID)
	}
	return fmt.Sprintf("%v", v)
}

// FormatDouble uses the shortest representation that round-trips and always
// keeps a decimal point for finite values.
func FormatDouble(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// Unescape resolves the two escape sequences MyPL output honours: \n and \t.
func Unescape(s string) string {
	return escapeReplacer.Replace(s)
}

var escapeReplacer = strings.NewReplacer(`\n`, "\n", `\t`, "\t")
