package parser

import (
	"mypl/interpreter-go/pkg/ast"
	"mypl/interpreter-go/pkg/token"
)

// expr parses one expression. The operator tail recurses to the right, so
// `a - b - c` becomes a - (b - c).
func (p *Parser) expr() (*ast.Expr, error) {
	negated := false
	var first ast.Term
	switch p.cur.Kind {
	case token.Not:
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.expr()
		if err != nil {
			return nil, err
		}
		negated = true
		first = ast.NewComplexTerm(inner)
	case token.LParen:
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.expr()
		if err != nil {
			return nil, err
		}
		if _, err := p.eat(token.RParen, "expression"); err != nil {
			return nil, err
		}
		first = ast.NewComplexTerm(inner)
	default:
		rv, err := p.rvalue()
		if err != nil {
			return nil, err
		}
		first = ast.NewSimpleTerm(rv)
	}

	if !p.cur.Kind.IsBinaryOperator() {
		return ast.NewExpr(negated, first, nil, nil), nil
	}
	op := p.cur
	if err := p.advance(); err != nil {
		return nil, err
	}
	rest, err := p.expr()
	if err != nil {
		return nil, err
	}
	return ast.NewExpr(negated, first, &op, rest), nil
}

func (p *Parser) rvalue() (ast.RValue, error) {
	switch {
	case p.cur.Kind.IsLiteral():
		tok := p.cur
		return ast.NewSimpleRValue(tok), p.advance()
	case p.cur.Kind == token.NewKw:
		if err := p.advance(); err != nil {
			return nil, err
		}
		typeID, err := p.eat(token.ID, "new expression")
		if err != nil {
			return nil, err
		}
		return ast.NewNewRValue(typeID), nil
	case p.cur.Kind == token.Neg:
		if err := p.advance(); err != nil {
			return nil, err
		}
		inner, err := p.expr()
		if err != nil {
			return nil, err
		}
		return ast.NewNegatedRValue(inner), nil
	case p.cur.Kind == token.ID:
		id := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.cur.Kind == token.LParen {
			return p.callRest(id)
		}
		path, err := p.pathRest(id, "path expression")
		if err != nil {
			return nil, err
		}
		return ast.NewIDRValue(path), nil
	}
	return nil, p.unexpected("expression", "value")
}

// callRest parses the argument list after a function name.
func (p *Parser) callRest(id token.Token) (*ast.CallExpr, error) {
	if _, err := p.eat(token.LParen, "call"); err != nil {
		return nil, err
	}
	var args []*ast.Expr
	if p.cur.Kind != token.RParen {
		for {
			arg, err := p.expr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if p.cur.Kind != token.Comma {
				break
			}
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}
	if _, err := p.eat(token.RParen, "call"); err != nil {
		return nil, err
	}
	return ast.NewCallExpr(id, args), nil
}

// pathRest collects `.ID` segments following the first identifier.
func (p *Parser) pathRest(first token.Token, production string) ([]token.Token, error) {
	path := []token.Token{first}
	for p.cur.Kind == token.Dot {
		if err := p.advance(); err != nil {
			return nil, err
		}
		seg, err := p.eat(token.ID, production)
		if err != nil {
			return nil, err
		}
		path = append(path, seg)
	}
	return path, nil
}
