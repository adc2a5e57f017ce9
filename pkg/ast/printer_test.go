package ast

import (
	"strings"
	"testing"

	"mypl/interpreter-go/pkg/token"
)

func TestPrintProgramLayout(t *testing.T) {
	prog := Prog(
		TypeD("Node",
			Var("val", "int", Int(0)),
			Var("next", "Node", Nil()),
		),
		Fun("int", "add", Params(Param("x", "int"), Param("y", "int")),
			Ret(Bin(Path("x"), token.Plus, Path("y"))),
		),
		Fun("nil", "main", nil,
			Var("n", "", NewE("Node")),
			Assign("n.val", CallE("add", Int(1), Int(2))),
			If(Bin(Path("n.val"), token.Greater, Int(2)),
				Call("print", Str("big\\n")),
			).ElseIf(Not(Bool(true)),
				Call("print", Chr('x')),
			).Else(),
			For("i", Int(1), Int(3),
				While(Bool(false)),
			),
		),
	)
	var b strings.Builder
	if err := Print(&b, prog); err != nil {
		t.Fatalf("print failed: %v", err)
	}
	want := `type Node
   var val: int = 0
   var next: Node = nil
end

fun int add(x: int, y: int)
   return x + y
end

fun nil main()
   var n = new Node
   n.val = add(1, 2)
   if n.val > 2 then
      print("big\n")
   elseif not true then
      print('x')
   else
   end
   for i = 1 to 3 do
      while false do
      end
   end
end
`
	if got := b.String(); got != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatExprGroupsNegation(t *testing.T) {
	cases := []struct {
		expr *Expr
		want string
	}{
		{Bin(Path("a"), token.Minus, Bin(Path("b"), token.Minus, Path("c"))), "a - b - c"},
		{Bin(Paren(Bin(Path("a"), token.Minus, Path("b"))), token.Minus, Path("c")), "(a - b) - c"},
		{Neg(Bin(Int(2), token.Multiply, Int(3))), "neg 2 * 3"},
		{NewExpr(false, Neg(Int(2)).First, &token.Token{Kind: token.Plus, Lexeme: "+"}, Int(1)), "(neg 2) + 1"},
		{Not(Bin(Path("a"), token.And, Path("b"))), "not a and b"},
	}
	for _, tc := range cases {
		if got := FormatExpr(tc.expr); got != tc.want {
			t.Fatalf("expected %q, got %q", tc.want, got)
		}
	}
}

func TestFirstToken(t *testing.T) {
	e := Paren(Bin(CallE("f", Int(1)), token.Plus, Int(2)))
	if tok := e.FirstToken(); tok.Lexeme != "f" {
		t.Fatalf("expected f, got %q", tok.Lexeme)
	}
	if tok := Neg(Path("p.x")).FirstToken(); tok.Lexeme != "p" {
		t.Fatalf("expected p, got %q", tok.Lexeme)
	}
}
