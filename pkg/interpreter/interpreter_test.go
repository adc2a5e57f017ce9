package interpreter

import (
	"bytes"
	"strings"
	"testing"

	"mypl/interpreter-go/pkg/ast"
	"mypl/interpreter-go/pkg/diagnostics"
	"mypl/interpreter-go/pkg/runtime"
	"mypl/interpreter-go/pkg/token"
)

func TestForLoopIsInclusive(t *testing.T) {
	expectOutput(t, mainBody(`  for i = 1 to 3 do print(i) end`), "123")
}

func TestForLoopSkipsEmptyRange(t *testing.T) {
	expectOutput(t, mainBody(`
  for i = 3 to 1 do
    print(i)
  end
  print("done")`), "done")
}

func TestForLoopVariableIsDrivenByLoop(t *testing.T) {
	expectOutput(t, mainBody(`
  for i = 1 to 3 do
    print(i)
    i = 100
  end`), "123")
}

func TestIncrement(t *testing.T) {
	expectOutput(t, mainBody(`
  var x = 5
  x = x + 1
  print(x)`), "6")
}

func TestArithmeticAndConcatenation(t *testing.T) {
	expectOutput(t, mainBody(`
  print("ab" + 'c')
  print(" ")
  print(1 + 2)
  print(" ")
  print(7 / 2)
  print(" ")
  print(7 % 3)
  print(" ")
  print(neg 2 * 3)
  print(" ")
  print(1.5 * 2.0)
  print(" ")
  print('x' + 'y')`), "abc 3 3 1 -6 3.0 xy")
}

func TestRightAssociativeEvaluation(t *testing.T) {
	expectOutput(t, mainBody(`
  print(8 - 4 - 2)
  print(" ")
  print((8 - 4) - 2)`), "6 2")
}

func TestDoubleDivisionFollowsIEEE(t *testing.T) {
	expectOutput(t, mainBody(`
  print(1.0 / 0.0)
  print(" ")
  print(neg 1.0 / 0.0)
  print(" ")
  print(dtos(0.1 + 0.2))`), "inf -inf 0.30000000000000004")
}

func TestIntegerDivisionByZeroIsRuntimeError(t *testing.T) {
	for _, op := range []string{"/", "%"} {
		res := runProgram(t, mainBody("  var z = 0\n  print(\"before\")\n  print(1 "+op+" z)"), "")
		kind, ok := diagnostics.KindOf(res.err)
		if !ok || kind != diagnostics.KindRuntime {
			t.Fatalf("%s: expected runtime error, got %v", op, res.err)
		}
		if res.stdout != "before" {
			t.Fatalf("%s: output before the error must be kept, got %q", op, res.stdout)
		}
	}
}

func TestComparisonsAndLogic(t *testing.T) {
	expectOutput(t, mainBody(`
  print(1 < 2)
  print(2.5 >= 2.5)
  print('a' > 'b')
  print("abc" < "abd")
  print("x" == "x")
  print(1 != 1)
  print(not true or false)
  print(true and not false)
  var n = nil
  print(n == nil)`), "truetruefalsetruetruefalsefalsetruetrue")
}

func TestReferenceSemantics(t *testing.T) {
	src := `
type Node
  var val: int = 0
  var next: Node = nil
end
fun nil main()
  var a = new Node
  var b = a
  b.val = 42
  print(a.val)
  a.next = new Node
  b.next.val = 7
  print(a.next.val)
  var c = new Node
  print(c == a)
  print(b == a)
end
`
	res := expectOutput(t, src, "427falsetrue")
	if res.interp.Heap().Len() != 3 {
		t.Fatalf("expected 3 heap objects, got %d", res.interp.Heap().Len())
	}
}

func TestDefaultFieldInitializers(t *testing.T) {
	src := `
type Counter
  var start: int = 10
  var next: int = start + 1
  var label: string = "c" + itos(next)
end
fun nil main()
  var c = new Counter
  print(c.label)
  print(c.start)
end
`
	expectOutput(t, src, "c1110")
}

func TestRecursiveDefaultInitializationIsRuntimeError(t *testing.T) {
	src := `
type Loop
  var self: Loop = new Loop
end
fun nil main()
  var l = new Loop
end
`
	res := runProgram(t, src, "")
	diag, ok := diagnostics.As(res.err)
	if !ok || diag.Kind != diagnostics.KindRuntime || !strings.Contains(diag.Message, "creates another 'Loop'") {
		t.Fatalf("expected recursive initialization error, got %v", res.err)
	}
}

func TestShadowingInsideIf(t *testing.T) {
	expectOutput(t, mainBody(`
  var x = 1
  if true then
    var x = 2
    print(x)
  end
  print(x)`), "21")
}

func TestIfChainPicksFirstTrueClause(t *testing.T) {
	src := `
fun string classify(n: int)
  if n < 0 then
    return "neg"
  elseif n == 0 then
    return "zero"
  elseif n < 10 then
    return "small"
  else
    return "big"
  end
end
fun nil main()
  print(classify(neg 5) + " " + classify(0) + " " + classify(3) + " " + classify(30))
end
`
	expectOutput(t, src, "neg zero small big")
}

func TestWhileLoop(t *testing.T) {
	expectOutput(t, mainBody(`
  var i = 0
  while i < 3 do
    var sq = i * i
    print(sq)
    i = i + 1
  end`), "014")
}

func TestReturnStopsExecution(t *testing.T) {
	src := `
fun int first(limit: int)
  var i = 0
  while true do
    for j = 1 to 10 do
      if (i + j) > limit then
        return j
      end
    end
    i = i + 1
  end
  print("unreachable")
  return 0
end
fun nil main()
  print(first(5))
end
`
	expectOutput(t, src, "6")
}

func TestRecursion(t *testing.T) {
	src := `
fun int fib(n: int)
  if n < 2 then
    return n
  end
  return fib(n - 1) + fib(n - 2)
end
fun nil main()
  print(fib(15))
end
`
	expectOutput(t, src, "610")
}

func TestCallsDoNotSeeCallerLocals(t *testing.T) {
	src := `
fun int bump(x: int)
  x = x + 1
  return x
end
fun nil main()
  var x = 10
  var y = bump(x)
  print(x)
  print(" ")
  print(y)
end
`
	expectOutput(t, src, "10 11")
}

func TestArgumentsEvaluateLeftToRight(t *testing.T) {
	src := `
fun int loud(n: int)
  print(n)
  return n
end
fun int add(a: int, b: int)
  return a + b
end
fun nil main()
  var total = add(loud(1), loud(2))
  print(total)
end
`
	expectOutput(t, src, "123")
}

func TestAssignmentEvaluatesRightHandSideFirst(t *testing.T) {
	src := `
type Box
  var v: int = 0
end
fun Box noisy(b: Box)
  print("rhs ")
  return b
end
fun nil main()
  var b = new Box
  var c: Box = nil
  c = noisy(b)
  c.v = 5
  print(b.v)
end
`
	expectOutput(t, src, "rhs 5")
}

func TestMainReturnIsEchoed(t *testing.T) {
	src := `
fun string main()
  print("hi")
  return "a\tb\n"
end
`
	res := expectOutput(t, src, "hi>>>a\tb\n\n")
	if !res.result.Returned {
		t.Fatalf("expected returned result")
	}
	if s, ok := res.result.Value.(runtime.StringValue); !ok || s.Val != `a\tb\n` {
		t.Fatalf("unexpected result value %#v", res.result.Value)
	}
}

func TestMainWithoutReturnPrintsNothingExtra(t *testing.T) {
	res := expectOutput(t, mainBody(`  print("x")`), "x")
	if res.result.Returned || !runtime.IsNil(res.result.Value) {
		t.Fatalf("expected no return value, got %#v", res.result)
	}
}

func TestPrintResolvesEscapes(t *testing.T) {
	expectOutput(t, mainBody(`  print("a\nb\tc")`), "a\nb\tc")
}

func TestBuiltins(t *testing.T) {
	expectOutput(t, mainBody(`
  print(stoi("41") + 1)
  print(" ")
  print(stod("2.5") * 2.0)
  print(" ")
  print(itos(7) + dtos(2.0))
  print(" ")
  print(get(1, "abc"))
  print(" ")
  print(length("hello"))`), "42 5.0 72.0 b 5")
}

func TestGetOutOfRangeIsRuntimeError(t *testing.T) {
	res := runProgram(t, mainBody(`  print(get(3, "abc"))`), "")
	diag, ok := diagnostics.As(res.err)
	if !ok || diag.Kind != diagnostics.KindRuntime || !strings.Contains(diag.Message, "out of range") {
		t.Fatalf("expected out of range error, got %v", res.err)
	}
	if diag.Position.Line != 2 {
		t.Fatalf("expected error on line 2, got %d", diag.Position.Line)
	}
}

func TestStoiRejectsGarbage(t *testing.T) {
	res := runProgram(t, mainBody(`  var n = stoi("12x")`), "")
	if kind, ok := diagnostics.KindOf(res.err); !ok || kind != diagnostics.KindRuntime {
		t.Fatalf("expected runtime error, got %v", res.err)
	}
}

func TestReadConsumesWhitespaceDelimitedTokens(t *testing.T) {
	src := mainBody(`
  var a = read()
  var b = read()
  var c = read()
  print(a + "|" + b + "|" + c + "|")
  print(stoi(a) + stoi(b))`)
	res := runProgram(t, src, "  12\n\t30  ")
	if res.err != nil {
		t.Fatalf("run failed: %v", res.err)
	}
	if res.stdout != "12|30||42" {
		t.Fatalf("unexpected output %q", res.stdout)
	}
}

func TestNilAttributeAccessIsRuntimeError(t *testing.T) {
	src := `
type Node
  var next: Node = nil
  var val: int = 1
end
fun nil main()
  var n = new Node
  print(n.next.val)
end
`
	res := runProgram(t, src, "")
	diag, ok := diagnostics.As(res.err)
	if !ok || diag.Kind != diagnostics.KindRuntime || !strings.Contains(diag.Message, "of nil") {
		t.Fatalf("expected nil access error, got %v", res.err)
	}
}

func TestNilArithmeticIsRuntimeError(t *testing.T) {
	res := runProgram(t, mainBody("  var x: int = nil\n  print(x + 1)"), "")
	diag, ok := diagnostics.As(res.err)
	if !ok || diag.Kind != diagnostics.KindRuntime || !strings.Contains(diag.Message, "nil operand for '+'") {
		t.Fatalf("expected nil operand error, got %v", res.err)
	}
}

func TestEnvironmentStackIsBalanced(t *testing.T) {
	src := `
fun int f(n: int)
  for i = 1 to 2 do
    while true do
      if n > 0 then
        return n
      end
    end
  end
  return 0
end
fun nil main()
  var a = f(1)
  var b = f(2)
  print(a + b)
end
`
	res := expectOutput(t, src, "3")
	if depth := res.interp.env.Depth(); depth != 0 {
		t.Fatalf("expected empty environment stack after run, got depth %d", depth)
	}
}

func TestRunFromBuiltAST(t *testing.T) {
	prog := ast.Prog(
		ast.Fun("int", "main", nil,
			ast.Var("x", "int", ast.Int(20)),
			ast.Assign("x", ast.Bin(ast.Path("x"), token.Multiply, ast.Int(2))),
			ast.Ret(ast.Bin(ast.Path("x"), token.Plus, ast.Int(2))),
		),
	)
	var out bytes.Buffer
	result, err := New(Options{Stdout: &out, Stdin: strings.NewReader("")}).Run(prog)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if n, ok := result.Value.(runtime.IntValue); !ok || n.Val != 42 {
		t.Fatalf("expected 42, got %#v", result.Value)
	}
	if out.String() != ">>>42\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
}
