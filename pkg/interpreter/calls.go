package interpreter

import (
	"mypl/interpreter-go/pkg/ast"
	"mypl/interpreter-go/pkg/runtime"
	"mypl/interpreter-go/pkg/token"
)

// call evaluates a call expression; built-ins take precedence over user
// functions of the same name.
func (i *Interpreter) call(c *ast.CallExpr) (runtime.Value, error) {
	if _, ok := builtins[c.FunID.Lexeme]; ok {
		args, err := i.evalArgs(c.Args)
		if err != nil {
			return nil, err
		}
		return i.callBuiltin(c.FunID, args)
	}
	v, _, err := i.callFunction(c)
	return v, err
}

func (i *Interpreter) evalArgs(exprs []*ast.Expr) ([]runtime.Value, error) {
	args := make([]runtime.Value, len(exprs))
	for n, arg := range exprs {
		v, err := i.evalExpr(arg)
		if err != nil {
			return nil, err
		}
		args[n] = v
	}
	return args, nil
}

// callFunction runs a user function. Arguments are evaluated in the caller's
// scope, then the body runs in a fresh frame on top of the global scope. The
// caller's scope is restored on every exit path.
func (i *Interpreter) callFunction(c *ast.CallExpr) (runtime.Value, bool, error) {
	name := c.FunID.Lexeme
	decl, ok := i.functions[name]
	if !ok {
		return nil, false, runtimeError(c.FunID, "undefined function '%s'", name)
	}
	if len(decl.Params) != len(c.Args) {
		return nil, false, runtimeError(c.FunID, "function '%s' expects %d argument(s), found %d", name, len(decl.Params), len(c.Args))
	}
	args, err := i.evalArgs(c.Args)
	if err != nil {
		return nil, false, err
	}

	callerID := i.env.EnvironmentID()
	if err := i.env.SetEnvironmentID(i.globalID); err != nil {
		return nil, false, err
	}
	i.env.PushEnvironment()
	defer func() {
		i.env.PopEnvironment()
		_ = i.env.SetEnvironmentID(callerID)
	}()
	for n, param := range decl.Params {
		i.env.AddName(param.ID.Lexeme, args[n])
	}

	out, err := i.execStmts(decl.Body)
	if err != nil {
		return nil, false, err
	}
	if out.returned {
		return out.value, true, nil
	}
	return runtime.Nil, false, nil
}

// instantiate allocates a UDT instance and runs its field initializers in a
// fresh frame on the global scope, so later fields can read earlier ones.
func (i *Interpreter) instantiate(typeID token.Token) (runtime.Value, error) {
	name := typeID.Lexeme
	decl, ok := i.types[name]
	if !ok {
		return nil, runtimeError(typeID, "undefined type '%s'", name)
	}
	if i.initializing[name] {
		return nil, runtimeError(typeID, "default initialization of '%s' creates another '%s'", name, name)
	}
	i.initializing[name] = true
	defer delete(i.initializing, name)

	oid, obj := i.heap.Allocate(name)

	callerID := i.env.EnvironmentID()
	if err := i.env.SetEnvironmentID(i.globalID); err != nil {
		return nil, err
	}
	i.env.PushEnvironment()
	defer func() {
		i.env.PopEnvironment()
		_ = i.env.SetEnvironmentID(callerID)
	}()
	for _, field := range decl.Fields {
		v, err := i.evalExpr(field.Expr)
		if err != nil {
			return nil, err
		}
		obj.Set(field.ID.Lexeme, v)
		i.env.AddName(field.ID.Lexeme, v)
	}
	return runtime.ObjectRef{OID: oid}, nil
}

// readPath resolves a variable and then each attribute through the heap.
func (i *Interpreter) readPath(path []token.Token) (runtime.Value, error) {
	root := path[0]
	v, ok := i.env.Lookup(root.Lexeme)
	if !ok {
		return nil, runtimeError(root, "undefined variable '%s'", root.Lexeme)
	}
	for _, seg := range path[1:] {
		obj, err := i.deref(v, seg)
		if err != nil {
			return nil, err
		}
		v, ok = obj.Get(seg.Lexeme)
		if !ok {
			return nil, runtimeError(seg, "object of type %s has no attribute '%s'", obj.TypeName, seg.Lexeme)
		}
	}
	return v, nil
}

// assignPath rebinds a variable, or overwrites the final attribute in place on
// the object the rest of the path reaches.
func (i *Interpreter) assignPath(path []token.Token, v runtime.Value) error {
	if len(path) == 1 {
		if err := i.env.Set(path[0].Lexeme, v); err != nil {
			return runtimeError(path[0], "undefined variable '%s'", path[0].Lexeme)
		}
		return nil
	}
	holder, err := i.readPath(path[:len(path)-1])
	if err != nil {
		return err
	}
	last := path[len(path)-1]
	obj, err := i.deref(holder, last)
	if err != nil {
		return err
	}
	if !obj.Has(last.Lexeme) {
		return runtimeError(last, "object of type %s has no attribute '%s'", obj.TypeName, last.Lexeme)
	}
	obj.Set(last.Lexeme, v)
	return nil
}

// deref fetches the heap object behind v so attribute seg can be accessed.
func (i *Interpreter) deref(v runtime.Value, seg token.Token) (*runtime.HeapObject, error) {
	ref, ok := v.(runtime.ObjectRef)
	if !ok {
		if runtime.IsNil(v) {
			return nil, runtimeError(seg, "cannot access attribute '%s' of nil", seg.Lexeme)
		}
		return nil, runtimeError(seg, "cannot access attribute '%s' of %s value", seg.Lexeme, kindName(v))
	}
	obj, err := i.heap.Get(ref.OID)
	if err != nil {
		return nil, runtimeError(seg, "%v", err)
	}
	return obj, nil
}
