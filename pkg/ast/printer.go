package ast

import (
	"bufio"
	"io"
	"strings"

	"mypl/interpreter-go/pkg/token"
)

const indentUnit = "   "

// Print writes program as formatted MyPL source. The output parses back to an
// equivalent tree.
func Print(w io.Writer, program *Program) error {
	p := &printer{out: bufio.NewWriter(w)}
	for i, decl := range program.Decls {
		if i > 0 {
			p.out.WriteString("\n")
		}
		p.decl(decl)
	}
	return p.out.Flush()
}

// FormatExpr renders a single expression on one line.
func FormatExpr(e *Expr) string {
	var b strings.Builder
	p := &printer{out: bufio.NewWriter(&b)}
	p.expr(e)
	p.out.Flush()
	return b.String()
}

type printer struct {
	out    *bufio.Writer
	indent int
}

func (p *printer) line(parts ...string) {
	p.out.WriteString(strings.Repeat(indentUnit, p.indent))
	for _, part := range parts {
		p.out.WriteString(part)
	}
}

func (p *printer) block(stmts []Stmt) {
	p.indent++
	for _, stmt := range stmts {
		p.stmt(stmt)
	}
	p.indent--
}

func (p *printer) decl(decl Decl) {
	switch d := decl.(type) {
	case *TypeDecl:
		p.line("type ", d.ID.Lexeme, "\n")
		p.indent++
		for _, field := range d.Fields {
			p.stmt(field)
		}
		p.indent--
		p.line("end\n")
	case *FunDecl:
		params := make([]string, len(d.Params))
		for i, param := range d.Params {
			params[i] = param.ID.Lexeme + ": " + param.Type.Lexeme
		}
		p.line("fun ", d.ReturnType.Lexeme, " ", d.ID.Lexeme, "(", strings.Join(params, ", "), ")\n")
		p.block(d.Body)
		p.line("end\n")
	}
}

func (p *printer) stmt(stmt Stmt) {
	switch s := stmt.(type) {
	case *VarDeclStmt:
		if s.Type != nil {
			p.line("var ", s.ID.Lexeme, ": ", s.Type.Lexeme, " = ")
		} else {
			p.line("var ", s.ID.Lexeme, " = ")
		}
		p.expr(s.Expr)
		p.out.WriteString("\n")
	case *AssignStmt:
		p.line(joinPath(s.Path), " = ")
		p.expr(s.Expr)
		p.out.WriteString("\n")
	case *ReturnStmt:
		p.line("return ")
		p.expr(s.Expr)
		p.out.WriteString("\n")
	case *CallExpr:
		p.line()
		p.call(s)
		p.out.WriteString("\n")
	case *IfStmt:
		p.line("if ")
		p.expr(s.IfPart.Cond)
		p.out.WriteString(" then\n")
		p.block(s.IfPart.Body)
		for _, elif := range s.ElseIfs {
			p.line("elseif ")
			p.expr(elif.Cond)
			p.out.WriteString(" then\n")
			p.block(elif.Body)
		}
		if s.HasElse {
			p.line("else\n")
			p.block(s.ElseBody)
		}
		p.line("end\n")
	case *WhileStmt:
		p.line("while ")
		p.expr(s.Cond)
		p.out.WriteString(" do\n")
		p.block(s.Body)
		p.line("end\n")
	case *ForStmt:
		p.line("for ", s.Var.Lexeme, " = ")
		p.expr(s.Start)
		p.out.WriteString(" to ")
		p.expr(s.End)
		p.out.WriteString(" do\n")
		p.block(s.Body)
		p.line("end\n")
	}
}

func (p *printer) expr(e *Expr) {
	// neg and not absorb everything to their right when parsed, so a
	// trailing operator needs explicit grouping to keep its meaning.
	if e.Op != nil && (e.Negated || isNegatedTerm(e.First)) {
		p.out.WriteString("(")
		p.expr(NewExpr(e.Negated, e.First, nil, nil))
		p.out.WriteString(") " + e.Op.Lexeme + " ")
		p.expr(e.Rest)
		return
	}
	if e.Negated {
		p.out.WriteString("not ")
		if complex, ok := e.First.(*ComplexTerm); ok {
			p.expr(complex.Expr)
		} else {
			p.term(e.First)
		}
	} else {
		p.term(e.First)
	}
	if e.Op != nil && e.Rest != nil {
		p.out.WriteString(" " + e.Op.Lexeme + " ")
		p.expr(e.Rest)
	}
}

func isNegatedTerm(term Term) bool {
	simple, ok := term.(*SimpleTerm)
	if !ok {
		return false
	}
	_, ok = simple.RValue.(*NegatedRValue)
	return ok
}

func (p *printer) term(term Term) {
	switch t := term.(type) {
	case *ComplexTerm:
		p.out.WriteString("(")
		p.expr(t.Expr)
		p.out.WriteString(")")
	case *SimpleTerm:
		p.rvalue(t.RValue)
	}
}

func (p *printer) rvalue(rv RValue) {
	switch v := rv.(type) {
	case *SimpleRValue:
		p.out.WriteString(literalText(v.Value))
	case *NewRValue:
		p.out.WriteString("new " + v.TypeID.Lexeme)
	case *CallExpr:
		p.call(v)
	case *IDRValue:
		p.out.WriteString(joinPath(v.Path))
	case *NegatedRValue:
		p.out.WriteString("neg ")
		p.expr(v.Expr)
	}
}

func (p *printer) call(c *CallExpr) {
	p.out.WriteString(c.FunID.Lexeme + "(")
	for i, arg := range c.Args {
		if i > 0 {
			p.out.WriteString(", ")
		}
		p.expr(arg)
	}
	p.out.WriteString(")")
}

func literalText(tok token.Token) string {
	switch tok.Kind {
	case token.StringVal:
		return `"` + tok.Lexeme + `"`
	case token.CharVal:
		return "'" + tok.Lexeme + "'"
	}
	return tok.Lexeme
}

func joinPath(path []token.Token) string {
	names := make([]string, len(path))
	for i, tok := range path {
		names[i] = tok.Lexeme
	}
	return strings.Join(names, ".")
}
