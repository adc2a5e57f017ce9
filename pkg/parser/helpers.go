package parser

import (
	"fmt"

	"mypl/interpreter-go/pkg/diagnostics"
	"mypl/interpreter-go/pkg/token"
)

func (p *Parser) advance() error {
	tok, err := p.lex.NextToken()
	if err != nil {
		return err
	}
	p.cur = tok
	return nil
}

func (p *Parser) at(kinds ...token.Kind) bool {
	for _, kind := range kinds {
		if p.cur.Kind == kind {
			return true
		}
	}
	return false
}

// eat consumes the current token if it has the given kind.
func (p *Parser) eat(kind token.Kind, production string) (token.Token, error) {
	if p.cur.Kind != kind {
		return token.Token{}, p.unexpected(production, describeKind(kind))
	}
	tok := p.cur
	return tok, p.advance()
}

func (p *Parser) unexpected(production, expected string) error {
	return diagnostics.Errorf(diagnostics.KindSyntax, p.cur.Position(),
		"%s: expecting %s, found %s", production, expected, describeToken(p.cur))
}

var kindText = map[token.Kind]string{
	token.LParen: "(", token.RParen: ")", token.Dot: ".", token.Comma: ",", token.Colon: ":",
	token.Assign: "=",
}

func describeKind(kind token.Kind) string {
	switch kind {
	case token.ID:
		return "identifier"
	case token.EOS:
		return "end of input"
	}
	if text, ok := kindText[kind]; ok {
		return fmt.Sprintf("'%s'", text)
	}
	for lexeme, k := range keywordLexemes {
		if k == kind {
			return fmt.Sprintf("'%s'", lexeme)
		}
	}
	return kind.String()
}

// keywordLexemes covers the keywords the parser can demand by kind.
var keywordLexemes = map[string]token.Kind{
	"type": token.Type, "fun": token.Fun, "var": token.Var, "end": token.End,
	"if": token.If, "then": token.Then, "while": token.While, "do": token.Do,
	"for": token.For, "to": token.To, "return": token.Return,
}

func describeToken(tok token.Token) string {
	if tok.Kind == token.EOS {
		return "end of input"
	}
	return fmt.Sprintf("'%s'", tok.Lexeme)
}
