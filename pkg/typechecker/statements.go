package typechecker

import (
	"mypl/interpreter-go/pkg/ast"
)

func (c *Checker) checkStmts(stmts []ast.Stmt) error {
	for _, stmt := range stmts {
		if err := c.checkStmt(stmt); err != nil {
			return err
		}
	}
	return nil
}

// checkBlock checks stmts inside a fresh scope.
func (c *Checker) checkBlock(stmts []ast.Stmt) error {
	c.table.PushEnvironment()
	defer c.table.PopEnvironment()
	return c.checkStmts(stmts)
}

func (c *Checker) checkStmt(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.VarDeclStmt:
		_, err := c.checkVarDecl(s)
		return err
	case *ast.AssignStmt:
		return c.checkAssign(s)
	case *ast.ReturnStmt:
		return c.checkReturn(s)
	case *ast.IfStmt:
		return c.checkIf(s)
	case *ast.WhileStmt:
		if err := c.checkCondition(s.Cond, "while"); err != nil {
			return err
		}
		return c.checkBlock(s.Body)
	case *ast.ForStmt:
		return c.checkFor(s)
	case *ast.CallExpr:
		_, err := c.checkCall(s)
		return err
	}
	return nil
}

// checkVarDecl binds the declared variable in the current scope and returns
// its type.
func (c *Checker) checkVarDecl(s *ast.VarDeclStmt) (Type, error) {
	name := s.ID.Lexeme
	if c.table.NameExistsInCurrent(name) {
		return "", c.errorf(s.ID, "redeclaration of variable '%s'", name)
	}
	initType, err := c.checkExpr(s.Expr)
	if err != nil {
		return "", err
	}
	varType := initType
	if s.Type != nil {
		declared, err := c.resolveType(*s.Type)
		if err != nil {
			return "", err
		}
		if !compatible(declared, initType) {
			return "", c.errorf(s.Expr.FirstToken(), "expecting %s, found %s in declaration of '%s'", declared, initType, name)
		}
		varType = declared
	}
	c.table.AddName(name, variable(varType))
	return varType, nil
}

func (c *Checker) checkAssign(s *ast.AssignStmt) error {
	rhs, err := c.checkExpr(s.Expr)
	if err != nil {
		return err
	}
	lhs, err := c.pathType(s.Path)
	if err != nil {
		return err
	}
	if !compatible(lhs, rhs) && lhs != TypeNil {
		return c.errorf(s.Path[0], "expecting %s, found %s in assignment to '%s'", lhs, rhs, joinPath(s.Path))
	}
	return nil
}

func (c *Checker) checkReturn(s *ast.ReturnStmt) error {
	t, err := c.checkExpr(s.Expr)
	if err != nil {
		return err
	}
	if t == TypeNil {
		return nil
	}
	if c.returnTyp == TypeNil {
		return c.errorf(s.Keyword, "function returning nil cannot return %s", t)
	}
	if t != c.returnTyp {
		return c.errorf(s.Keyword, "expecting return type %s, found %s", c.returnTyp, t)
	}
	return nil
}

func (c *Checker) checkCondition(cond *ast.Expr, construct string) error {
	t, err := c.checkExpr(cond)
	if err != nil {
		return err
	}
	if t != TypeBool {
		return c.errorf(cond.FirstToken(), "expecting bool condition in %s, found %s", construct, t)
	}
	return nil
}

func (c *Checker) checkIf(s *ast.IfStmt) error {
	if err := c.checkCondition(s.IfPart.Cond, "if"); err != nil {
		return err
	}
	if err := c.checkBlock(s.IfPart.Body); err != nil {
		return err
	}
	for _, elif := range s.ElseIfs {
		if err := c.checkCondition(elif.Cond, "elseif"); err != nil {
			return err
		}
		if err := c.checkBlock(elif.Body); err != nil {
			return err
		}
	}
	if s.HasElse {
		return c.checkBlock(s.ElseBody)
	}
	return nil
}

func (c *Checker) checkFor(s *ast.ForStmt) error {
	for _, bound := range []*ast.Expr{s.Start, s.End} {
		t, err := c.checkExpr(bound)
		if err != nil {
			return err
		}
		if t != TypeInt {
			return c.errorf(bound.FirstToken(), "expecting int bound in for, found %s", t)
		}
	}
	c.table.PushEnvironment()
	defer c.table.PopEnvironment()
	c.table.AddName(s.Var.Lexeme, variable(TypeInt))
	return c.checkBlock(s.Body)
}
