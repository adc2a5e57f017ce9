package interpreter

import (
	"mypl/interpreter-go/pkg/ast"
	"mypl/interpreter-go/pkg/runtime"
)

// outcome is the control result of executing a statement: either fall
// through to the next statement or unwind the current call with a value.
type outcome struct {
	returned bool
	value    runtime.Value
}

var proceed = outcome{}

func (i *Interpreter) execStmts(stmts []ast.Stmt) (outcome, error) {
	for _, stmt := range stmts {
		out, err := i.execStmt(stmt)
		if err != nil || out.returned {
			return out, err
		}
	}
	return proceed, nil
}

// execBlock runs stmts inside a fresh scope.
func (i *Interpreter) execBlock(stmts []ast.Stmt) (outcome, error) {
	i.env.PushEnvironment()
	defer i.env.PopEnvironment()
	return i.execStmts(stmts)
}

func (i *Interpreter) execStmt(stmt ast.Stmt) (outcome, error) {
	switch s := stmt.(type) {
	case *ast.VarDeclStmt:
		v, err := i.evalExpr(s.Expr)
		if err != nil {
			return proceed, err
		}
		i.env.AddName(s.ID.Lexeme, v)
		return proceed, nil
	case *ast.AssignStmt:
		v, err := i.evalExpr(s.Expr)
		if err != nil {
			return proceed, err
		}
		return proceed, i.assignPath(s.Path, v)
	case *ast.ReturnStmt:
		v, err := i.evalExpr(s.Expr)
		if err != nil {
			return proceed, err
		}
		return outcome{returned: true, value: v}, nil
	case *ast.IfStmt:
		return i.execIf(s)
	case *ast.WhileStmt:
		return i.execWhile(s)
	case *ast.ForStmt:
		return i.execFor(s)
	case *ast.CallExpr:
		_, err := i.call(s)
		return proceed, err
	}
	return proceed, nil
}

func (i *Interpreter) execIf(s *ast.IfStmt) (outcome, error) {
	clauses := append([]*ast.BasicIf{s.IfPart}, s.ElseIfs...)
	for _, clause := range clauses {
		ok, err := i.evalCondition(clause.Cond)
		if err != nil {
			return proceed, err
		}
		if ok {
			return i.execBlock(clause.Body)
		}
	}
	if s.HasElse {
		return i.execBlock(s.ElseBody)
	}
	return proceed, nil
}

// execWhile runs every iteration in one scope that lives until the loop ends.
func (i *Interpreter) execWhile(s *ast.WhileStmt) (outcome, error) {
	i.env.PushEnvironment()
	defer i.env.PopEnvironment()
	for {
		ok, err := i.evalCondition(s.Cond)
		if err != nil || !ok {
			return proceed, err
		}
		out, err := i.execStmts(s.Body)
		if err != nil || out.returned {
			return out, err
		}
	}
}

// execFor binds the loop variable in an outer scope and runs the body in one
// nested scope. The driver resets the variable before each iteration.
func (i *Interpreter) execFor(s *ast.ForStmt) (outcome, error) {
	start, err := i.evalInt(s.Start)
	if err != nil {
		return proceed, err
	}
	end, err := i.evalInt(s.End)
	if err != nil {
		return proceed, err
	}

	i.env.PushEnvironment()
	defer i.env.PopEnvironment()
	loopScope := i.env.Current()
	loopScope.Define(s.Var.Lexeme, runtime.IntValue{Val: start})

	i.env.PushEnvironment()
	defer i.env.PopEnvironment()
	for n := start; n <= end; n++ {
		loopScope.Define(s.Var.Lexeme, runtime.IntValue{Val: n})
		out, err := i.execStmts(s.Body)
		if err != nil || out.returned {
			return out, err
		}
		if n == end {
			break
		}
	}
	return proceed, nil
}

func (i *Interpreter) evalCondition(cond *ast.Expr) (bool, error) {
	v, err := i.evalExpr(cond)
	if err != nil {
		return false, err
	}
	b, ok := v.(runtime.BoolValue)
	if !ok {
		return false, runtimeError(cond.FirstToken(), "expecting bool condition, found %s", kindName(v))
	}
	return b.Val, nil
}

func (i *Interpreter) evalInt(e *ast.Expr) (int64, error) {
	v, err := i.evalExpr(e)
	if err != nil {
		return 0, err
	}
	n, ok := v.(runtime.IntValue)
	if !ok {
		return 0, runtimeError(e.FirstToken(), "expecting int, found %s", kindName(v))
	}
	return n.Val, nil
}

func kindName(v runtime.Value) string {
	if v == nil {
		return "nil"
	}
	return v.Kind().String()
}
