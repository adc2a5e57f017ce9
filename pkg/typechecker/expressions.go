package typechecker

import (
	"strings"

	"mypl/interpreter-go/pkg/ast"
	"mypl/interpreter-go/pkg/token"
)

func (c *Checker) checkExpr(e *ast.Expr) (Type, error) {
	t, err := c.checkTerm(e.First)
	if err != nil {
		return "", err
	}
	if e.Negated {
		if t != TypeBool {
			return "", c.errorf(e.FirstToken(), "expecting bool operand for 'not', found %s", t)
		}
	}
	if e.Op != nil && e.Rest != nil {
		rest, err := c.checkExpr(e.Rest)
		if err != nil {
			return "", err
		}
		t, err = c.binaryType(*e.Op, t, rest)
		if err != nil {
			return "", err
		}
	}
	c.infer.set(e, t)
	return t, nil
}

func (c *Checker) checkTerm(term ast.Term) (Type, error) {
	switch t := term.(type) {
	case *ast.SimpleTerm:
		return c.checkRValue(t.RValue)
	case *ast.ComplexTerm:
		return c.checkExpr(t.Expr)
	}
	return TypeNil, nil
}

func (c *Checker) checkRValue(rv ast.RValue) (Type, error) {
	switch v := rv.(type) {
	case *ast.SimpleRValue:
		return literalType(v.Value), nil
	case *ast.NewRValue:
		if _, ok := c.schemas[v.TypeID.Lexeme]; !ok {
			return "", c.errorf(v.TypeID, "undefined type '%s'", v.TypeID.Lexeme)
		}
		return Type(v.TypeID.Lexeme), nil
	case *ast.CallExpr:
		return c.checkCall(v)
	case *ast.IDRValue:
		return c.pathType(v.Path)
	case *ast.NegatedRValue:
		t, err := c.checkExpr(v.Expr)
		if err != nil {
			return "", err
		}
		if !isNumeric(t) {
			return "", c.errorf(v.Expr.FirstToken(), "expecting int or double operand for 'neg', found %s", t)
		}
		return t, nil
	}
	return TypeNil, nil
}

// pathType resolves a variable followed by zero or more attribute names.
func (c *Checker) pathType(path []token.Token) (Type, error) {
	root := path[0]
	sym, ok := c.table.Lookup(root.Lexeme)
	if !ok {
		return "", c.errorf(root, "undefined variable '%s'", root.Lexeme)
	}
	if sym.Kind != SymbolVariable {
		return "", c.errorf(root, "'%s' is a %s, not a variable", root.Lexeme, sym.Kind)
	}
	t := sym.Type
	for _, seg := range path[1:] {
		schema, ok := c.schemas[string(t)]
		if !ok {
			return "", c.errorf(seg, "cannot access attribute '%s' of non-object type %s", seg.Lexeme, t)
		}
		fieldType, ok := schema.Fields[seg.Lexeme]
		if !ok {
			return "", c.errorf(seg, "type %s has no attribute '%s'", t, seg.Lexeme)
		}
		t = fieldType
	}
	return t, nil
}

func (c *Checker) checkCall(call *ast.CallExpr) (Type, error) {
	name := call.FunID.Lexeme
	sym, ok := c.table.Lookup(name)
	if !ok {
		return "", c.errorf(call.FunID, "undefined function '%s'", name)
	}
	if sym.Kind != SymbolFunction {
		return "", c.errorf(call.FunID, "'%s' is a %s, not a function", name, sym.Kind)
	}
	sig := sym.Signature
	if len(call.Args) != len(sig.Params) {
		return "", c.errorf(call.FunID, "function '%s' expects %d argument(s), found %d", name, len(sig.Params), len(call.Args))
	}
	for i, arg := range call.Args {
		t, err := c.checkExpr(arg)
		if err != nil {
			return "", err
		}
		if !compatible(sig.Params[i], t) {
			return "", c.errorf(arg.FirstToken(), "argument %d of '%s' expects %s, found %s", i+1, name, sig.Params[i], t)
		}
	}
	return sig.Return, nil
}

// binaryType applies the operator typing rules to already-checked operands.
func (c *Checker) binaryType(op token.Token, lhs, rhs Type) (Type, error) {
	switch op.Kind {
	case token.Equal, token.NotEqual:
		if lhs == rhs || lhs == TypeNil || rhs == TypeNil {
			return TypeBool, nil
		}
	case token.Less, token.LessEqual, token.Greater, token.GreaterEqual:
		if lhs == rhs && isOrdered(lhs) {
			return TypeBool, nil
		}
	case token.Plus:
		if lhs == rhs && isNumeric(lhs) {
			return lhs, nil
		}
		if isText(lhs) && isText(rhs) {
			return TypeString, nil
		}
	case token.Minus, token.Multiply, token.Divide:
		if lhs == rhs && isNumeric(lhs) {
			return lhs, nil
		}
	case token.Modulo:
		if lhs == TypeInt && rhs == TypeInt {
			return TypeInt, nil
		}
	case token.And, token.Or:
		if lhs == TypeBool && rhs == TypeBool {
			return TypeBool, nil
		}
	}
	return "", c.errorf(op, "invalid operand types %s and %s for '%s'", lhs, rhs, op.Lexeme)
}

func joinPath(path []token.Token) string {
	names := make([]string, len(path))
	for i, tok := range path {
		names[i] = tok.Lexeme
	}
	return strings.Join(names, ".")
}
