// Package typechecker validates MyPL programs before evaluation. Checking
// stops at the first violation.
package typechecker

import (
	"fmt"

	"mypl/interpreter-go/pkg/ast"
	"mypl/interpreter-go/pkg/diagnostics"
	"mypl/interpreter-go/pkg/symtab"
	"mypl/interpreter-go/pkg/token"
)

// Checker holds the state of one checking run.
type Checker struct {
	table     *symtab.Table[Symbol]
	infer     InferenceMap
	schemas   map[string]*Schema
	returnTyp Type
}

// New returns a checker instance.
func New() *Checker {
	return &Checker{}
}

// Check validates program and returns the first semantic error found.
func (c *Checker) Check(program *ast.Program) error {
	if program == nil {
		return fmt.Errorf("typechecker: program is nil")
	}
	c.table = symtab.New[Symbol]()
	c.infer = make(InferenceMap)
	c.schemas = make(map[string]*Schema)

	c.table.PushEnvironment()
	defer c.table.PopEnvironment()
	c.seedBuiltins()

	if err := c.collectDeclarations(program); err != nil {
		return err
	}
	if err := c.checkMain(); err != nil {
		return err
	}
	for _, decl := range program.Decls {
		if td, ok := decl.(*ast.TypeDecl); ok {
			if err := c.checkTypeDecl(td); err != nil {
				return err
			}
		}
	}
	for _, decl := range program.Decls {
		if fd, ok := decl.(*ast.FunDecl); ok {
			if err := c.checkFunDecl(fd); err != nil {
				return err
			}
		}
	}
	return nil
}

// TypeOf returns the inferred type of an expression checked by the last run.
func (c *Checker) TypeOf(expr *ast.Expr) (Type, bool) {
	t, ok := c.infer[expr]
	return t, ok
}

// Schema returns the attribute schema of a checked UDT.
func (c *Checker) Schema(name string) (*Schema, bool) {
	s, ok := c.schemas[name]
	return s, ok
}

func (c *Checker) errorf(tok token.Token, format string, args ...any) error {
	return diagnostics.Errorf(diagnostics.KindSemantic, tok.Position(), format, args...)
}

// collectDeclarations registers every UDT name and function signature before
// any body is checked, so declaration order does not matter.
func (c *Checker) collectDeclarations(program *ast.Program) error {
	for _, decl := range program.Decls {
		var id token.Token
		var sym Symbol
		switch d := decl.(type) {
		case *ast.TypeDecl:
			id = d.ID
			schema := newSchema(d.ID.Lexeme)
			c.schemas[d.ID.Lexeme] = schema
			sym = Symbol{Kind: SymbolUDT, Schema: schema}
		case *ast.FunDecl:
			id = d.ID
			sym = Symbol{Kind: SymbolFunction, Signature: &Signature{}}
		default:
			continue
		}
		if c.table.NameExistsInCurrent(id.Lexeme) {
			return c.errorf(id, "redeclaration of '%s'", id.Lexeme)
		}
		c.table.AddName(id.Lexeme, sym)
	}

	for _, decl := range program.Decls {
		fd, ok := decl.(*ast.FunDecl)
		if !ok {
			continue
		}
		sym, _ := c.table.Lookup(fd.ID.Lexeme)
		sig := sym.Signature
		for _, param := range fd.Params {
			t, err := c.resolveType(param.Type)
			if err != nil {
				return err
			}
			sig.Params = append(sig.Params, t)
		}
		if fd.ReturnType.Kind == token.Nil {
			sig.Return = TypeNil
		} else {
			t, err := c.resolveType(fd.ReturnType)
			if err != nil {
				return err
			}
			sig.Return = t
		}
	}
	return nil
}

// resolveType validates a declared type name.
func (c *Checker) resolveType(tok token.Token) (Type, error) {
	t := typeFromToken(tok)
	if t.IsScalar() {
		return t, nil
	}
	if _, ok := c.schemas[string(t)]; ok {
		return t, nil
	}
	return "", c.errorf(tok, "undefined type '%s'", tok.Lexeme)
}

func (c *Checker) checkMain() error {
	sym, ok := c.table.Lookup("main")
	if !ok || sym.Kind != SymbolFunction || sym.Signature.Builtin {
		return diagnostics.New(diagnostics.KindSemantic, diagnostics.Position{}, "undefined 'main' function")
	}
	if n := len(sym.Signature.Params); n != 0 {
		return diagnostics.Errorf(diagnostics.KindSemantic, diagnostics.Position{}, "'main' must take no parameters, found %d", n)
	}
	return nil
}

func (c *Checker) checkTypeDecl(td *ast.TypeDecl) error {
	schema := c.schemas[td.ID.Lexeme]
	c.table.PushEnvironment()
	defer c.table.PopEnvironment()
	for _, field := range td.Fields {
		t, err := c.checkVarDecl(field)
		if err != nil {
			return err
		}
		schema.add(field.ID.Lexeme, t)
	}
	return nil
}

func (c *Checker) checkFunDecl(fd *ast.FunDecl) error {
	sym, _ := c.table.Lookup(fd.ID.Lexeme)
	sig := sym.Signature

	c.table.PushEnvironment()
	defer c.table.PopEnvironment()
	for i, param := range fd.Params {
		if c.table.NameExistsInCurrent(param.ID.Lexeme) {
			return c.errorf(param.ID, "redeclaration of parameter '%s'", param.ID.Lexeme)
		}
		c.table.AddName(param.ID.Lexeme, variable(sig.Params[i]))
	}
	c.returnTyp = sig.Return
	return c.checkStmts(fd.Body)
}
