// Package parser builds MyPL ASTs with a recursive-descent parser using one
// token of lookahead.
package parser

import (
	"io"

	"mypl/interpreter-go/pkg/ast"
	"mypl/interpreter-go/pkg/lexer"
	"mypl/interpreter-go/pkg/token"
)

// Parser consumes a token stream and produces a Program.
type Parser struct {
	lex *lexer.Lexer
	cur token.Token
}

func New(lex *lexer.Lexer) *Parser {
	return &Parser{lex: lex}
}

// ParseSource lexes and parses an entire program from r.
func ParseSource(r io.Reader) (*ast.Program, error) {
	return New(lexer.New(r)).Parse()
}

// Parse consumes the whole token stream. Lexer errors are returned unchanged;
// grammar violations become syntax diagnostics.
func (p *Parser) Parse() (*ast.Program, error) {
	if err := p.advance(); err != nil {
		return nil, err
	}
	var decls []ast.Decl
	for p.cur.Kind != token.EOS {
		switch p.cur.Kind {
		case token.Type:
			decl, err := p.typeDecl()
			if err != nil {
				return nil, err
			}
			decls = append(decls, decl)
		case token.Fun:
			decl, err := p.funDecl()
			if err != nil {
				return nil, err
			}
			decls = append(decls, decl)
		default:
			return nil, p.unexpected("program", "'type' or 'fun'")
		}
	}
	return ast.NewProgram(decls), nil
}

func (p *Parser) typeDecl() (*ast.TypeDecl, error) {
	if _, err := p.eat(token.Type, "type declaration"); err != nil {
		return nil, err
	}
	id, err := p.eat(token.ID, "type declaration")
	if err != nil {
		return nil, err
	}
	var fields []*ast.VarDeclStmt
	for p.cur.Kind == token.Var {
		field, err := p.varDecl()
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)
	}
	if _, err := p.eat(token.End, "type declaration"); err != nil {
		return nil, err
	}
	return ast.NewTypeDecl(id, fields), nil
}

func (p *Parser) funDecl() (*ast.FunDecl, error) {
	if _, err := p.eat(token.Fun, "function declaration"); err != nil {
		return nil, err
	}
	if p.cur.Kind != token.Nil && !p.cur.Kind.IsDataType() {
		return nil, p.unexpected("function declaration", "return type")
	}
	returnType := p.cur
	if err := p.advance(); err != nil {
		return nil, err
	}
	id, err := p.eat(token.ID, "function declaration")
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(token.LParen, "function declaration"); err != nil {
		return nil, err
	}
	var params []ast.FunParam
	if p.cur.Kind == token.ID {
		for {
			param, err := p.param()
			if err != nil {
				return nil, err
			}
			params = append(params, param)
			if p.cur.Kind != token.Comma {
				break
			}
			if err := p.advance(); err != nil {
				return nil, err
			}
		}
	}
	if _, err := p.eat(token.RParen, "function declaration"); err != nil {
		return nil, err
	}
	body, err := p.stmts(token.End)
	if err != nil {
		return nil, err
	}
	if _, err := p.eat(token.End, "function declaration"); err != nil {
		return nil, err
	}
	return ast.NewFunDecl(returnType, id, params, body), nil
}

func (p *Parser) param() (ast.FunParam, error) {
	id, err := p.eat(token.ID, "parameter")
	if err != nil {
		return ast.FunParam{}, err
	}
	if _, err := p.eat(token.Colon, "parameter"); err != nil {
		return ast.FunParam{}, err
	}
	typ, err := p.dataType("parameter")
	if err != nil {
		return ast.FunParam{}, err
	}
	return ast.FunParam{ID: id, Type: typ}, nil
}

func (p *Parser) dataType(production string) (token.Token, error) {
	if !p.cur.Kind.IsDataType() {
		return token.Token{}, p.unexpected(production, "type name")
	}
	tok := p.cur
	return tok, p.advance()
}
