package interpreter

import (
	"bytes"
	"strings"
	"testing"

	"mypl/interpreter-go/pkg/ast"
	"mypl/interpreter-go/pkg/parser"
	"mypl/interpreter-go/pkg/typechecker"
)

type runOutput struct {
	stdout string
	result Result
	err    error
	interp *Interpreter
}

func parseChecked(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := parser.ParseSource(strings.NewReader(src))
	if err != nil {
		t.Fatalf("parse failed: %v\nsource:\n%s", err, src)
	}
	if err := typechecker.New().Check(prog); err != nil {
		t.Fatalf("typecheck failed: %v\nsource:\n%s", err, src)
	}
	return prog
}

func runProgram(t *testing.T, src, stdin string) runOutput {
	t.Helper()
	prog := parseChecked(t, src)
	var out bytes.Buffer
	interp := New(Options{Stdin: strings.NewReader(stdin), Stdout: &out})
	result, err := interp.Run(prog)
	return runOutput{stdout: out.String(), result: result, err: err, interp: interp}
}

func expectOutput(t *testing.T, src, want string) runOutput {
	t.Helper()
	res := runProgram(t, src, "")
	if res.err != nil {
		t.Fatalf("run failed: %v\noutput so far: %q", res.err, res.stdout)
	}
	if res.stdout != want {
		t.Fatalf("expected output %q, got %q", want, res.stdout)
	}
	return res
}

func mainBody(body string) string {
	return "fun nil main()\n" + body + "\nend\n"
}
