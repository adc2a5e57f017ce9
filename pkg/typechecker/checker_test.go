package typechecker

import (
	"strings"
	"testing"

	"mypl/interpreter-go/pkg/ast"
	"mypl/interpreter-go/pkg/diagnostics"
	"mypl/interpreter-go/pkg/parser"
	"mypl/interpreter-go/pkg/token"
)

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := parser.ParseSource(strings.NewReader(src))
	if err != nil {
		t.Fatalf("parse failed: %v\nsource:\n%s", err, src)
	}
	return prog
}

func checkSource(t *testing.T, src string) error {
	t.Helper()
	return New().Check(parse(t, src))
}

func inMain(body string) string {
	return "fun nil main()\n" + body + "\nend\n"
}

func TestWellTypedPrograms(t *testing.T) {
	cases := map[string]string{
		"arithmetic": inMain(`
  var x = 5
  x = x + 1
  var d: double = 1.0 / 0.0
  var m = 7 % 3
  var n = neg 2.5
  print(x)`),
		"text concatenation": inMain(`
  var s = "ab" + 'c'
  var t: string = 'a' + 'b'
  var u = s + t + "!"`),
		"comparisons": inMain(`
  var a = 1 < 2
  var b = 'a' >= 'b'
  var c = "x" != nil
  var d = not a and b or c
  var e = 2.0 <= 3.5`),
		"nil compatible everywhere": `
type Node
  var next: Node = nil
end
fun Node make(n: Node)
  return nil
end
fun nil main()
  var n: Node = nil
  var s: string = nil
  n = make(nil)
  n.next = nil
end`,
		"paths and reference types": `
type Point
  var x: int = 0
  var y: int = 0
end
type Segment
  var a: Point = new Point
  var b: Point = nil
end
fun nil main()
  var s = new Segment
  s.a.x = 3
  var x: int = s.a.x + s.a.y
end`,
		"forward references": `
fun nil main()
  print(itos(twice(3)))
  var l = new List
end
fun int twice(n: int)
  return n * 2
end
type List
  var head: Item = nil
end
type Item
  var val: int = 0
  var next: Item = nil
end`,
		"builtins": inMain(`
  var i: int = stoi("12")
  var d: double = stod("1.5")
  var s: string = itos(i) + dtos(d)
  var c: char = get(0, s)
  var n: int = length(s)
  var r: string = read()
  print(c)`),
		"block scoping": inMain(`
  var x = 1
  if x > 0 then
    var x = "inner"
  elseif x < 0 then
    var x = 'c'
  else
    var x = true
  end
  while x < 3 do
    var y = x
    x = x + 1
  end
  for i = 1 to x do
    var y = i
  end
  var y = 2`),
		"return types": `
fun int fact(n: int)
  if n <= 1 then
    return 1
  end
  return n * fact(n - 1)
end
fun nil log(s: string)
  print(s)
  return nil
end
fun nil main()
  log(itos(fact(5)))
end`,
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			if err := checkSource(t, src); err != nil {
				t.Fatalf("expected program to type check, got %v", err)
			}
		})
	}
}

func TestSemanticErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		snip string
	}{
		{"missing main", "fun nil helper()\nend", "undefined 'main' function"},
		{"main with params", "fun nil main(x: int)\nend", "'main' must take no parameters"},
		{"main is a type", "type main\nend", "undefined 'main' function"},
		{"duplicate function", "fun nil main()\nend\nfun nil main()\nend", "redeclaration of 'main'"},
		{"type and function clash", "type f\nend\nfun nil f()\nend\nfun nil main()\nend", "redeclaration of 'f'"},
		{"builtin clash", "fun nil print(s: string)\nend\nfun nil main()\nend", "redeclaration of 'print'"},
		{"duplicate variable", inMain("  var x = 1\n  var x = 2"), "redeclaration of variable 'x'"},
		{"duplicate parameter", "fun nil f(a: int, a: int)\nend\nfun nil main()\nend", "redeclaration of parameter 'a'"},
		{"unknown type", inMain("  var p: Point = nil"), "undefined type 'Point'"},
		{"unknown new", inMain("  var p = new Point"), "undefined type 'Point'"},
		{"declared mismatch", inMain("  var x: int = 1.5"), "expecting int, found double"},
		{"assign mismatch", inMain("  var x = 1\n  x = \"s\""), "expecting int, found string"},
		{"undefined variable", inMain("  x = 1"), "undefined variable 'x'"},
		{"function as variable", inMain("  var x = read"), "'read' is a function, not a variable"},
		{"int plus double", inMain("  var x = 1 + 2.0"), "invalid operand types int and double for '+'"},
		{"char minus char", inMain("  var x = 'a' - 'b'"), "invalid operand types char and char for '-'"},
		{"double modulo", inMain("  var x = 1.0 % 2.0"), "for '%'"},
		{"compare mismatch", inMain("  var x = 1 == \"1\""), "invalid operand types int and string for '=='"},
		{"order bools", inMain("  var x = true < false"), "for '<'"},
		{"and ints", inMain("  var x = 1 and 2"), "for 'and'"},
		{"not int", inMain("  var x = not 1"), "expecting bool operand for 'not', found int"},
		{"neg string", inMain("  var x = neg \"s\""), "expecting int or double operand for 'neg', found string"},
		{"neg bool", inMain("  var x = neg true"), "found bool"},
		{"if condition", inMain("  if 1 then\n  end"), "expecting bool condition in if, found int"},
		{"elseif condition", inMain("  if true then\n  elseif 'c' then\n  end"), "expecting bool condition in elseif, found char"},
		{"while condition", inMain("  while nil do\n  end"), "expecting bool condition in while, found nil"},
		{"for bound", inMain("  for i = 1 to 2.5 do\n  end"), "expecting int bound in for, found double"},
		{"undeclared function", inMain("  foo()"), "undefined function 'foo'"},
		{"wrong arity", "fun int f(a: int)\n  return a\nend\n" + inMain("  var x = f(1, 2)"), "function 'f' expects 1 argument(s), found 2"},
		{"builtin arity", inMain("  print()"), "function 'print' expects 1 argument(s), found 0"},
		{"argument type", inMain("  var x = itos(\"3\")"), "argument 1 of 'itos' expects int, found string"},
		{"call a variable", inMain("  var f = 1\n  f()"), "'f' is a variable, not a function"},
		{"unknown attribute", "type P\n  var x: int = 0\nend\n" + inMain("  var p = new P\n  p.y = 1"), "type P has no attribute 'y'"},
		{"attribute of scalar", inMain("  var n = 1\n  var m = n.x"), "cannot access attribute 'x' of non-object type int"},
		{"return mismatch", "fun int f()\n  return \"s\"\nend\n" + inMain(""), "expecting return type int, found string"},
		{"nil function returns value", "fun nil f()\n  return 1\nend\n" + inMain(""), "function returning nil cannot return int"},
		{"scope leak", inMain("  if true then\n    var y = 1\n  end\n  y = 2"), "undefined variable 'y'"},
		{"for variable scope", inMain("  for i = 1 to 2 do\n  end\n  print(i)"), "undefined variable 'i'"},
		{"bad param type", "fun nil f(p: Point)\nend\n" + inMain(""), "undefined type 'Point'"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := checkSource(t, tc.src)
			if err == nil {
				t.Fatalf("expected semantic error containing %q", tc.snip)
			}
			diag, ok := diagnostics.As(err)
			if !ok || diag.Kind != diagnostics.KindSemantic {
				t.Fatalf("expected semantic diagnostic, got %v", err)
			}
			if !strings.Contains(diag.Message, tc.snip) {
				t.Fatalf("expected message containing %q, got %q", tc.snip, diag.Message)
			}
		})
	}
}

func TestErrorPositionPointsAtOperator(t *testing.T) {
	err := checkSource(t, inMain("  var x = 1 + 2.0"))
	diag, ok := diagnostics.As(err)
	if !ok {
		t.Fatalf("expected diagnostic, got %v", err)
	}
	if diag.Position.Line != 2 || diag.Position.Column != 13 {
		t.Fatalf("expected error at 2:13, got %d:%d", diag.Position.Line, diag.Position.Column)
	}
}

func TestInferredTypesAreRecorded(t *testing.T) {
	prog := ast.Prog(
		ast.TypeD("P", ast.Var("v", "double", ast.Dbl("0.5"))),
		ast.Fun("nil", "main", nil,
			ast.Var("p", "", ast.NewE("P")),
			ast.Var("s", "", ast.Bin(ast.Str("a"), token.Plus, ast.Chr('b'))),
			ast.Var("d", "", ast.Path("p.v")),
		),
	)
	checker := New()
	if err := checker.Check(prog); err != nil {
		t.Fatalf("check failed: %v", err)
	}
	body := prog.Decls[1].(*ast.FunDecl).Body
	want := []Type{"P", TypeString, TypeDouble}
	for i, stmt := range body {
		expr := stmt.(*ast.VarDeclStmt).Expr
		got, ok := checker.TypeOf(expr)
		if !ok || got != want[i] {
			t.Fatalf("statement %d: expected %s, got %s (%v)", i, want[i], got, ok)
		}
	}
	schema, ok := checker.Schema("P")
	if !ok || schema.Fields["v"] != TypeDouble || len(schema.Order) != 1 {
		t.Fatalf("unexpected schema %#v", schema)
	}
}

func TestSignatureVector(t *testing.T) {
	vec := Builtins["get"].Vector()
	if len(vec) != 3 || vec[0] != TypeInt || vec[1] != TypeString || vec[2] != TypeChar {
		t.Fatalf("unexpected vector %v", vec)
	}
}
