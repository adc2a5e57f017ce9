package interpreter

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"mypl/interpreter-go/pkg/ast"
	"mypl/interpreter-go/pkg/runtime"
	"mypl/interpreter-go/pkg/token"
)

// evalExpr evaluates the first term, then the right-hand remainder.
func (i *Interpreter) evalExpr(e *ast.Expr) (runtime.Value, error) {
	v, err := i.evalTerm(e.First)
	if err != nil {
		return nil, err
	}
	if e.Negated {
		b, ok := v.(runtime.BoolValue)
		if !ok {
			return nil, runtimeError(e.FirstToken(), "expecting bool operand for 'not', found %s", kindName(v))
		}
		v = runtime.BoolValue{Val: !b.Val}
	}
	if e.Op == nil || e.Rest == nil {
		return v, nil
	}
	rest, err := i.evalExpr(e.Rest)
	if err != nil {
		return nil, err
	}
	return evalBinary(*e.Op, v, rest)
}

func (i *Interpreter) evalTerm(term ast.Term) (runtime.Value, error) {
	switch t := term.(type) {
	case *ast.SimpleTerm:
		return i.evalRValue(t.RValue)
	case *ast.ComplexTerm:
		return i.evalExpr(t.Expr)
	}
	return runtime.Nil, nil
}

func (i *Interpreter) evalRValue(rv ast.RValue) (runtime.Value, error) {
	switch v := rv.(type) {
	case *ast.SimpleRValue:
		return literalValue(v.Value)
	case *ast.NewRValue:
		return i.instantiate(v.TypeID)
	case *ast.CallExpr:
		return i.call(v)
	case *ast.IDRValue:
		return i.readPath(v.Path)
	case *ast.NegatedRValue:
		operand, err := i.evalExpr(v.Expr)
		if err != nil {
			return nil, err
		}
		switch n := operand.(type) {
		case runtime.IntValue:
			return runtime.IntValue{Val: -n.Val}, nil
		case runtime.DoubleValue:
			return runtime.DoubleValue{Val: -n.Val}, nil
		}
		return nil, runtimeError(v.Expr.FirstToken(), "expecting int or double operand for 'neg', found %s", kindName(operand))
	}
	return runtime.Nil, nil
}

func literalValue(tok token.Token) (runtime.Value, error) {
	switch tok.Kind {
	case token.IntVal:
		n, err := strconv.ParseInt(tok.Lexeme, 10, 64)
		if err != nil {
			return nil, runtimeError(tok, "integer literal %s out of range", tok.Lexeme)
		}
		return runtime.IntValue{Val: n}, nil
	case token.DoubleVal:
		f, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			return nil, runtimeError(tok, "invalid double literal %s", tok.Lexeme)
		}
		return runtime.DoubleValue{Val: f}, nil
	case token.BoolVal:
		return runtime.BoolValue{Val: tok.Lexeme == "true"}, nil
	case token.CharVal:
		r, _ := utf8.DecodeRuneInString(tok.Lexeme)
		return runtime.CharValue{Val: r}, nil
	case token.StringVal:
		return runtime.StringValue{Val: tok.Lexeme}, nil
	}
	return runtime.Nil, nil
}

// evalBinary applies op to evaluated operands. Only the combinations the type
// checker accepts are implemented; nil operands fail outside (in)equality.
func evalBinary(op token.Token, lhs, rhs runtime.Value) (runtime.Value, error) {
	switch op.Kind {
	case token.Equal:
		return runtime.BoolValue{Val: valuesEqual(lhs, rhs)}, nil
	case token.NotEqual:
		return runtime.BoolValue{Val: !valuesEqual(lhs, rhs)}, nil
	}
	if runtime.IsNil(lhs) || runtime.IsNil(rhs) {
		return nil, runtimeError(op, "nil operand for '%s'", op.Lexeme)
	}

	switch op.Kind {
	case token.And, token.Or:
		l, lok := lhs.(runtime.BoolValue)
		r, rok := rhs.(runtime.BoolValue)
		if lok && rok {
			if op.Kind == token.And {
				return runtime.BoolValue{Val: l.Val && r.Val}, nil
			}
			return runtime.BoolValue{Val: l.Val || r.Val}, nil
		}
	case token.Less, token.LessEqual, token.Greater, token.GreaterEqual:
		l, lok := lhs.(runtime.DoubleValue)
		r, rok := rhs.(runtime.DoubleValue)
		if lok && rok {
			return runtime.BoolValue{Val: orderDoubles(op.Kind, l.Val, r.Val)}, nil
		}
		if cmp, ok := compareOrdered(lhs, rhs); ok {
			return runtime.BoolValue{Val: orderHolds(op.Kind, cmp)}, nil
		}
	case token.Plus:
		if isText(lhs) && isText(rhs) {
			return runtime.StringValue{Val: runtime.Format(lhs) + runtime.Format(rhs)}, nil
		}
		return arithmetic(op, lhs, rhs)
	case token.Minus, token.Multiply, token.Divide, token.Modulo:
		return arithmetic(op, lhs, rhs)
	}
	return nil, runtimeError(op, "invalid operands %s and %s for '%s'", kindName(lhs), kindName(rhs), op.Lexeme)
}

func isText(v runtime.Value) bool {
	k := v.Kind()
	return k == runtime.KindChar || k == runtime.KindString
}

func arithmetic(op token.Token, lhs, rhs runtime.Value) (runtime.Value, error) {
	switch l := lhs.(type) {
	case runtime.IntValue:
		r, ok := rhs.(runtime.IntValue)
		if !ok {
			break
		}
		switch op.Kind {
		case token.Plus:
			return runtime.IntValue{Val: l.Val + r.Val}, nil
		case token.Minus:
			return runtime.IntValue{Val: l.Val - r.Val}, nil
		case token.Multiply:
			return runtime.IntValue{Val: l.Val * r.Val}, nil
		case token.Divide, token.Modulo:
			if r.Val == 0 {
				return nil, runtimeError(op, "integer division by zero")
			}
			if op.Kind == token.Divide {
				return runtime.IntValue{Val: l.Val / r.Val}, nil
			}
			return runtime.IntValue{Val: l.Val % r.Val}, nil
		}
	case runtime.DoubleValue:
		r, ok := rhs.(runtime.DoubleValue)
		if !ok {
			break
		}
		switch op.Kind {
		case token.Plus:
			return runtime.DoubleValue{Val: l.Val + r.Val}, nil
		case token.Minus:
			return runtime.DoubleValue{Val: l.Val - r.Val}, nil
		case token.Multiply:
			return runtime.DoubleValue{Val: l.Val * r.Val}, nil
		case token.Divide:
			return runtime.DoubleValue{Val: l.Val / r.Val}, nil
		}
	}
	return nil, runtimeError(op, "invalid operands %s and %s for '%s'", kindName(lhs), kindName(rhs), op.Lexeme)
}

func valuesEqual(lhs, rhs runtime.Value) bool {
	if runtime.IsNil(lhs) || runtime.IsNil(rhs) {
		return runtime.IsNil(lhs) && runtime.IsNil(rhs)
	}
	switch l := lhs.(type) {
	case runtime.BoolValue:
		r, ok := rhs.(runtime.BoolValue)
		return ok && l.Val == r.Val
	case runtime.IntValue:
		r, ok := rhs.(runtime.IntValue)
		return ok && l.Val == r.Val
	case runtime.DoubleValue:
		r, ok := rhs.(runtime.DoubleValue)
		return ok && l.Val == r.Val
	case runtime.CharValue:
		r, ok := rhs.(runtime.CharValue)
		return ok && l.Val == r.Val
	case runtime.StringValue:
		r, ok := rhs.(runtime.StringValue)
		return ok && l.Val == r.Val
	case runtime.ObjectRef:
		r, ok := rhs.(runtime.ObjectRef)
		return ok && l.OID == r.OID
	}
	return false
}

// orderDoubles compares directly so NaN orders false against everything.
func orderDoubles(kind token.Kind, l, r float64) bool {
	switch kind {
	case token.Less:
		return l < r
	case token.LessEqual:
		return l <= r
	case token.Greater:
		return l > r
	case token.GreaterEqual:
		return l >= r
	}
	return false
}

// compareOrdered returns -1, 0 or 1 for same-kind int, char or string operands.
func compareOrdered(lhs, rhs runtime.Value) (int, bool) {
	switch l := lhs.(type) {
	case runtime.IntValue:
		if r, ok := rhs.(runtime.IntValue); ok {
			return cmp3(l.Val < r.Val, l.Val > r.Val), true
		}
	case runtime.CharValue:
		if r, ok := rhs.(runtime.CharValue); ok {
			return cmp3(l.Val < r.Val, l.Val > r.Val), true
		}
	case runtime.StringValue:
		if r, ok := rhs.(runtime.StringValue); ok {
			return strings.Compare(l.Val, r.Val), true
		}
	}
	return 0, false
}

func cmp3(less, greater bool) int {
	switch {
	case less:
		return -1
	case greater:
		return 1
	}
	return 0
}

func orderHolds(kind token.Kind, cmp int) bool {
	switch kind {
	case token.Less:
		return cmp < 0
	case token.LessEqual:
		return cmp <= 0
	case token.Greater:
		return cmp > 0
	case token.GreaterEqual:
		return cmp >= 0
	}
	return false
}
