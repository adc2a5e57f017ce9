package ast

import (
	"strconv"
	"strings"

	"mypl/interpreter-go/pkg/token"
)

// Builder helpers for constructing ASTs in tests. Tokens built here carry no
// source position.

func Tok(kind token.Kind, lexeme string) token.Token {
	return token.Token{Kind: kind, Lexeme: lexeme}
}

func IDTok(name string) token.Token {
	return Tok(token.ID, name)
}

// TypeTok maps a type name to its keyword token, or an ID for UDT names.
func TypeTok(name string) token.Token {
	return Tok(token.LookupKeyword(name), name)
}

func lit(kind token.Kind, lexeme string) *Expr {
	return NewExpr(false, NewSimpleTerm(NewSimpleRValue(Tok(kind, lexeme))), nil, nil)
}

func Int(v int64) *Expr       { return lit(token.IntVal, strconv.FormatInt(v, 10)) }
func Dbl(lexeme string) *Expr { return lit(token.DoubleVal, lexeme) }
func Str(s string) *Expr      { return lit(token.StringVal, s) }
func Chr(r rune) *Expr        { return lit(token.CharVal, string(r)) }
func Nil() *Expr              { return lit(token.Nil, "nil") }

func Bool(v bool) *Expr {
	return lit(token.BoolVal, strconv.FormatBool(v))
}

// Path builds a path read from a dotted name such as "p.next.val".
func Path(dotted string) *Expr {
	return NewExpr(false, NewSimpleTerm(NewIDRValue(pathTokens(dotted))), nil, nil)
}

func pathTokens(dotted string) []token.Token {
	parts := strings.Split(dotted, ".")
	out := make([]token.Token, len(parts))
	for i, part := range parts {
		out[i] = IDTok(part)
	}
	return out
}

func Call(name string, args ...*Expr) *CallExpr {
	return NewCallExpr(IDTok(name), args)
}

func CallE(name string, args ...*Expr) *Expr {
	return NewExpr(false, NewSimpleTerm(Call(name, args...)), nil, nil)
}

func NewE(typeName string) *Expr {
	return NewExpr(false, NewSimpleTerm(NewNewRValue(IDTok(typeName))), nil, nil)
}

var opLexemes = map[token.Kind]string{
	token.Plus: "+", token.Minus: "-", token.Multiply: "*", token.Divide: "/", token.Modulo: "%",
	token.And: "and", token.Or: "or", token.Equal: "==", token.NotEqual: "!=",
	token.Less: "<", token.LessEqual: "<=", token.Greater: ">", token.GreaterEqual: ">=",
}

// Bin joins lhs and rhs with op. A compound lhs is wrapped in parentheses so
// the result mirrors what the parser builds for the same source.
func Bin(lhs *Expr, op token.Kind, rhs *Expr) *Expr {
	var first Term
	if lhs.Op == nil && !lhs.Negated {
		first = lhs.First
	} else {
		first = NewComplexTerm(lhs)
	}
	opTok := Tok(op, opLexemes[op])
	return NewExpr(false, first, &opTok, rhs)
}

func Paren(e *Expr) *Expr {
	return NewExpr(false, NewComplexTerm(e), nil, nil)
}

func Not(e *Expr) *Expr {
	return NewExpr(true, NewComplexTerm(e), nil, nil)
}

func Neg(e *Expr) *Expr {
	return NewExpr(false, NewSimpleTerm(NewNegatedRValue(e)), nil, nil)
}

// Statements

// Var declares name; an empty typ leaves the type implicit.
func Var(name, typ string, init *Expr) *VarDeclStmt {
	var typeTok *token.Token
	if typ != "" {
		tok := TypeTok(typ)
		typeTok = &tok
	}
	return NewVarDeclStmt(IDTok(name), typeTok, init)
}

func Assign(dotted string, e *Expr) *AssignStmt {
	return NewAssignStmt(pathTokens(dotted), e)
}

func Ret(e *Expr) *ReturnStmt {
	return NewReturnStmt(Tok(token.Return, "return"), e)
}

func If(cond *Expr, body ...Stmt) *IfStmt {
	return NewIfStmt(NewBasicIf(cond, body), nil, nil, false)
}

func (s *IfStmt) ElseIf(cond *Expr, body ...Stmt) *IfStmt {
	s.ElseIfs = append(s.ElseIfs, NewBasicIf(cond, body))
	return s
}

func (s *IfStmt) Else(body ...Stmt) *IfStmt {
	s.ElseBody = body
	s.HasElse = true
	return s
}

func While(cond *Expr, body ...Stmt) *WhileStmt {
	return NewWhileStmt(cond, body)
}

func For(v string, start, end *Expr, body ...Stmt) *ForStmt {
	return NewForStmt(IDTok(v), start, end, body)
}

// Declarations

func Param(name, typ string) FunParam {
	return FunParam{ID: IDTok(name), Type: TypeTok(typ)}
}

func Params(ps ...FunParam) []FunParam {
	return ps
}

func Fun(ret, name string, params []FunParam, body ...Stmt) *FunDecl {
	return NewFunDecl(TypeTok(ret), IDTok(name), params, body)
}

func TypeD(name string, fields ...*VarDeclStmt) *TypeDecl {
	return NewTypeDecl(IDTok(name), fields)
}

func Prog(decls ...Decl) *Program {
	return NewProgram(decls)
}
