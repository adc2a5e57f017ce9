package parser

import (
	"mypl/interpreter-go/pkg/ast"
	"mypl/interpreter-go/pkg/token"
)

// stmts parses statements until one of the terminator kinds is current.
func (p *Parser) stmts(terminators ...token.Kind) ([]ast.Stmt, error) {
	var out []ast.Stmt
	for !p.at(terminators...) {
		stmt, err := p.stmt()
		if err != nil {
			return nil, err
		}
		out = append(out, stmt)
	}
	return out, nil
}

func (p *Parser) stmt() (ast.Stmt, error) {
	switch p.cur.Kind {
	case token.Var:
		return p.varDecl()
	case token.ID:
		return p.idStmt()
	case token.If:
		return p.ifStmt()
	case token.While:
		return p.whileStmt()
	case token.For:
		return p.forStmt()
	case token.Return:
		return p.returnStmt()
	}
	return nil, p.unexpected("statement", "statement")
}

func (p *Parser) varDecl() (*ast.VarDeclStmt, error) {
	if _, err := p.eat(token.Var, "variable declaration"); err != nil {
		return nil, err
	}
	id, err := p.eat(token.ID, "variable declaration")
	if err != nil {
		return nil, err
	}
	var typ *token.Token
	if p.cur.Kind == token.Colon {
		if err := p.advance(); err != nil {
			return nil, err
		}
		tok, err := p.dataType("variable declaration")
		if err != nil {
			return nil, err
		}
		typ = &tok
	}
	if _, err := p.eat(token.Assign, "variable declaration"); err != nil {
		return nil, err
	}
	expr, err := p.expr()
	if err != nil {
		return nil, err
	}
	return ast.NewVarDeclStmt(id, typ, expr), nil
}

// idStmt parses a call statement or an assignment, decided by whether '('
// follows the leading identifier.
func (p *Parser) idStmt() (ast.Stmt, error) {
	id, err := p.eat(token.ID, "statement")
	if err != nil {
		return nil, err
	}
	if p.cur.Kind == token.LParen {
		return p.callRest(id)
	}
	path, err := p.pathRest(id, "assignment")
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(token.Assign, "assignment"); err != nil {
		return nil, err
	}
	expr, err := p.expr()
	if err != nil {
		return nil, err
	}
	return ast.NewAssignStmt(path, expr), nil
}

func (p *Parser) ifStmt() (*ast.IfStmt, error) {
	if _, err := p.eat(token.If, "if statement"); err != nil {
		return nil, err
	}
	ifPart, err := p.basicIf()
	if err != nil {
		return nil, err
	}
	stmt := ast.NewIfStmt(ifPart, nil, nil, false)
	for p.cur.Kind == token.ElseIf {
		if err := p.advance(); err != nil {
			return nil, err
		}
		elif, err := p.basicIf()
		if err != nil {
			return nil, err
		}
		stmt.ElseIfs = append(stmt.ElseIfs, elif)
	}
	if p.cur.Kind == token.Else {
		if err := p.advance(); err != nil {
			return nil, err
		}
		body, err := p.stmts(token.End)
		if err != nil {
			return nil, err
		}
		stmt.ElseBody = body
		stmt.HasElse = true
	}
	if _, err := p.eat(token.End, "if statement"); err != nil {
		return nil, err
	}
	return stmt, nil
}

func (p *Parser) basicIf() (*ast.BasicIf, error) {
	cond, err := p.expr()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(token.Then, "if statement"); err != nil {
		return nil, err
	}
	body, err := p.stmts(token.ElseIf, token.Else, token.End)
	if err != nil {
		return nil, err
	}
	return ast.NewBasicIf(cond, body), nil
}

func (p *Parser) whileStmt() (*ast.WhileStmt, error) {
	if _, err := p.eat(token.While, "while statement"); err != nil {
		return nil, err
	}
	cond, err := p.expr()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(token.Do, "while statement"); err != nil {
		return nil, err
	}
	body, err := p.stmts(token.End)
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(token.End, "while statement"); err != nil {
		return nil, err
	}
	return ast.NewWhileStmt(cond, body), nil
}

func (p *Parser) forStmt() (*ast.ForStmt, error) {
	if _, err := p.eat(token.For, "for statement"); err != nil {
		return nil, err
	}
	v, err := p.eat(token.ID, "for statement")
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(token.Assign, "for statement"); err != nil {
		return nil, err
	}
	start, err := p.expr()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(token.To, "for statement"); err != nil {
		return nil, err
	}
	end, err := p.expr()
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(token.Do, "for statement"); err != nil {
		return nil, err
	}
	body, err := p.stmts(token.End)
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(token.End, "for statement"); err != nil {
		return nil, err
	}
	return ast.NewForStmt(v, start, end, body), nil
}

func (p *Parser) returnStmt() (*ast.ReturnStmt, error) {
	keyword, err := p.eat(token.Return, "return statement")
	if err != nil {
		return nil, err
	}
	expr, err := p.expr()
	if err != nil {
		return nil, err
	}
	return ast.NewReturnStmt(keyword, expr), nil
}
