package ast

import "mypl/interpreter-go/pkg/token"

type NodeType string

const (
	NodeProgram       NodeType = "Program"
	NodeFunDecl       NodeType = "FunDecl"
	NodeTypeDecl      NodeType = "TypeDecl"
	NodeVarDeclStmt   NodeType = "VarDeclStmt"
	NodeAssignStmt    NodeType = "AssignStmt"
	NodeReturnStmt    NodeType = "ReturnStmt"
	NodeIfStmt        NodeType = "IfStmt"
	NodeBasicIf       NodeType = "BasicIf"
	NodeWhileStmt     NodeType = "WhileStmt"
	NodeForStmt       NodeType = "ForStmt"
	NodeExpr          NodeType = "Expr"
	NodeSimpleTerm    NodeType = "SimpleTerm"
	NodeComplexTerm   NodeType = "ComplexTerm"
	NodeSimpleRValue  NodeType = "SimpleRValue"
	NodeNewRValue     NodeType = "NewRValue"
	NodeCallExpr      NodeType = "CallExpr"
	NodeIDRValue      NodeType = "IDRValue"
	NodeNegatedRValue NodeType = "NegatedRValue"
)

type Node interface {
	NodeType() NodeType
	isNode()
}

type nodeImpl struct {
	Type NodeType `json:"type"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (nodeImpl) isNode()              {}

// Marker interfaces.

type Decl interface {
	Node
	declNode()
}

type declMarker struct{}

func (declMarker) declNode() {}

type Stmt interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

type Term interface {
	Node
	termNode()
}

type termMarker struct{}

func (termMarker) termNode() {}

type RValue interface {
	Node
	rvalueNode()
}

type rvalueMarker struct{}

func (rvalueMarker) rvalueNode() {}

// Program is the root of one translation unit.
type Program struct {
	nodeImpl

	Decls []Decl `json:"decls"`
}

func NewProgram(decls []Decl) *Program {
	return &Program{nodeImpl: newNodeImpl(NodeProgram), Decls: decls}
}

// Declarations

type FunParam struct {
	ID   token.Token `json:"id"`
	Type token.Token `json:"type"`
}

type FunDecl struct {
	nodeImpl
	declMarker

	ReturnType token.Token `json:"returnType"`
	ID         token.Token `json:"id"`
	Params     []FunParam  `json:"params,omitempty"`
	Body       []Stmt      `json:"body"`
}

func NewFunDecl(returnType, id token.Token, params []FunParam, body []Stmt) *FunDecl {
	return &FunDecl{nodeImpl: newNodeImpl(NodeFunDecl), ReturnType: returnType, ID: id, Params: params, Body: body}
}

type TypeDecl struct {
	nodeImpl
	declMarker

	ID     token.Token    `json:"id"`
	Fields []*VarDeclStmt `json:"fields"`
}

func NewTypeDecl(id token.Token, fields []*VarDeclStmt) *TypeDecl {
	return &TypeDecl{nodeImpl: newNodeImpl(NodeTypeDecl), ID: id, Fields: fields}
}

// Statements

type VarDeclStmt struct {
	nodeImpl
	statementMarker

	ID   token.Token  `json:"id"`
	Type *token.Token `json:"type,omitempty"`
	Expr *Expr        `json:"expr"`
}

func NewVarDeclStmt(id token.Token, typ *token.Token, expr *Expr) *VarDeclStmt {
	return &VarDeclStmt{nodeImpl: newNodeImpl(NodeVarDeclStmt), ID: id, Type: typ, Expr: expr}
}

type AssignStmt struct {
	nodeImpl
	statementMarker

	Path []token.Token `json:"path"`
	Expr *Expr         `json:"expr"`
}

func NewAssignStmt(path []token.Token, expr *Expr) *AssignStmt {
	return &AssignStmt{nodeImpl: newNodeImpl(NodeAssignStmt), Path: path, Expr: expr}
}

type ReturnStmt struct {
	nodeImpl
	statementMarker

	Keyword token.Token `json:"keyword"`
	Expr    *Expr       `json:"expr"`
}

func NewReturnStmt(keyword token.Token, expr *Expr) *ReturnStmt {
	return &ReturnStmt{nodeImpl: newNodeImpl(NodeReturnStmt), Keyword: keyword, Expr: expr}
}

type BasicIf struct {
	nodeImpl

	Cond *Expr  `json:"cond"`
	Body []Stmt `json:"body"`
}

func NewBasicIf(cond *Expr, body []Stmt) *BasicIf {
	return &BasicIf{nodeImpl: newNodeImpl(NodeBasicIf), Cond: cond, Body: body}
}

// IfStmt records HasElse separately: an empty else body and a missing else
// execute the same way but print differently.
type IfStmt struct {
	nodeImpl
	statementMarker

	IfPart   *BasicIf   `json:"ifPart"`
	ElseIfs  []*BasicIf `json:"elseIfs,omitempty"`
	ElseBody []Stmt     `json:"elseBody,omitempty"`
	HasElse  bool       `json:"hasElse,omitempty"`
}

func NewIfStmt(ifPart *BasicIf, elseIfs []*BasicIf, elseBody []Stmt, hasElse bool) *IfStmt {
	return &IfStmt{nodeImpl: newNodeImpl(NodeIfStmt), IfPart: ifPart, ElseIfs: elseIfs, ElseBody: elseBody, HasElse: hasElse}
}

type WhileStmt struct {
	nodeImpl
	statementMarker

	Cond *Expr  `json:"cond"`
	Body []Stmt `json:"body"`
}

func NewWhileStmt(cond *Expr, body []Stmt) *WhileStmt {
	return &WhileStmt{nodeImpl: newNodeImpl(NodeWhileStmt), Cond: cond, Body: body}
}

// ForStmt iterates Var over the inclusive range [Start, End].
type ForStmt struct {
	nodeImpl
	statementMarker

	Var   token.Token `json:"var"`
	Start *Expr       `json:"start"`
	End   *Expr       `json:"end"`
	Body  []Stmt      `json:"body"`
}

func NewForStmt(v token.Token, start, end *Expr, body []Stmt) *ForStmt {
	return &ForStmt{nodeImpl: newNodeImpl(NodeForStmt), Var: v, Start: start, End: end, Body: body}
}

// Expressions

// Expr is right-recursive: Rest owns the whole remainder after Op.
type Expr struct {
	nodeImpl

	Negated bool         `json:"negated,omitempty"`
	First   Term         `json:"first"`
	Op      *token.Token `json:"op,omitempty"`
	Rest    *Expr        `json:"rest,omitempty"`
}

func NewExpr(negated bool, first Term, op *token.Token, rest *Expr) *Expr {
	return &Expr{nodeImpl: newNodeImpl(NodeExpr), Negated: negated, First: first, Op: op, Rest: rest}
}

// FirstToken returns the leftmost token of the expression, used to position
// diagnostics.
func (e *Expr) FirstToken() token.Token {
	if e == nil {
		return token.Token{}
	}
	switch term := e.First.(type) {
	case *SimpleTerm:
		return rvalueFirstToken(term.RValue)
	case *ComplexTerm:
		return term.Expr.FirstToken()
	}
	return token.Token{}
}

func rvalueFirstToken(rv RValue) token.Token {
	switch v := rv.(type) {
	case *SimpleRValue:
		return v.Value
	case *NewRValue:
		return v.TypeID
	case *CallExpr:
		return v.FunID
	case *IDRValue:
		if len(v.Path) > 0 {
			return v.Path[0]
		}
	case *NegatedRValue:
		return v.Expr.FirstToken()
	}
	return token.Token{}
}

type SimpleTerm struct {
	nodeImpl
	termMarker

	RValue RValue `json:"rvalue"`
}

func NewSimpleTerm(rv RValue) *SimpleTerm {
	return &SimpleTerm{nodeImpl: newNodeImpl(NodeSimpleTerm), RValue: rv}
}

// ComplexTerm is a parenthesized (or not-wrapped) expression.
type ComplexTerm struct {
	nodeImpl
	termMarker

	Expr *Expr `json:"expr"`
}

func NewComplexTerm(expr *Expr) *ComplexTerm {
	return &ComplexTerm{nodeImpl: newNodeImpl(NodeComplexTerm), Expr: expr}
}

// RValues

type SimpleRValue struct {
	nodeImpl
	rvalueMarker

	Value token.Token `json:"value"`
}

func NewSimpleRValue(value token.Token) *SimpleRValue {
	return &SimpleRValue{nodeImpl: newNodeImpl(NodeSimpleRValue), Value: value}
}

type NewRValue struct {
	nodeImpl
	rvalueMarker

	TypeID token.Token `json:"typeId"`
}

func NewNewRValue(typeID token.Token) *NewRValue {
	return &NewRValue{nodeImpl: newNodeImpl(NodeNewRValue), TypeID: typeID}
}

// CallExpr is both an rvalue and, on its own line, a statement.
type CallExpr struct {
	nodeImpl
	rvalueMarker
	statementMarker

	FunID token.Token `json:"funId"`
	Args  []*Expr     `json:"args,omitempty"`
}

func NewCallExpr(funID token.Token, args []*Expr) *CallExpr {
	return &CallExpr{nodeImpl: newNodeImpl(NodeCallExpr), FunID: funID, Args: args}
}

type IDRValue struct {
	nodeImpl
	rvalueMarker

	Path []token.Token `json:"path"`
}

func NewIDRValue(path []token.Token) *IDRValue {
	return &IDRValue{nodeImpl: newNodeImpl(NodeIDRValue), Path: path}
}

// NegatedRValue is numeric negation (`neg e`).
type NegatedRValue struct {
	nodeImpl
	rvalueMarker

	Expr *Expr `json:"expr"`
}

func NewNegatedRValue(expr *Expr) *NegatedRValue {
	return &NegatedRValue{nodeImpl: newNodeImpl(NodeNegatedRValue), Expr: expr}
}
