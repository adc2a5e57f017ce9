// Package interpreter evaluates checked MyPL programs by walking the AST.
package interpreter

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"

	"mypl/interpreter-go/pkg/ast"
	"mypl/interpreter-go/pkg/diagnostics"
	"mypl/interpreter-go/pkg/runtime"
	"mypl/interpreter-go/pkg/symtab"
	"mypl/interpreter-go/pkg/token"
)

// Options configures the interpreter's I/O and logging.
type Options struct {
	Stdin  io.Reader
	Stdout io.Writer
	Logger *slog.Logger
}

// Result is the outcome of running main.
type Result struct {
	Value    runtime.Value
	Returned bool
}

// ReturnMarker prefixes main's returned value on stdout.
const ReturnMarker = ">>>"

// Interpreter drives evaluation of MyPL AST nodes.
type Interpreter struct {
	env       *symtab.Table[runtime.Value]
	heap      *runtime.Heap
	functions map[string]*ast.FunDecl
	types     map[string]*ast.TypeDecl
	globalID  int

	// types whose default field initializers are currently running
	initializing map[string]bool

	stdin  *bufio.Reader
	stdout *bufio.Writer
	logger *slog.Logger
}

// New returns an interpreter; unset options fall back to the process streams
// and the default logger.
func New(opts Options) *Interpreter {
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Interpreter{
		stdin:  bufio.NewReader(opts.Stdin),
		stdout: bufio.NewWriter(opts.Stdout),
		logger: opts.Logger,
	}
}

// Heap exposes the object arena of the last run.
func (i *Interpreter) Heap() *runtime.Heap {
	return i.heap
}

// Run registers every declaration and evaluates a call to main. When main
// executes a return, its value is echoed after ReturnMarker.
func (i *Interpreter) Run(program *ast.Program) (result Result, err error) {
	if program == nil {
		return Result{}, fmt.Errorf("interpreter: program is nil")
	}
	i.env = symtab.New[runtime.Value]()
	i.heap = runtime.NewHeap()
	i.functions = make(map[string]*ast.FunDecl)
	i.types = make(map[string]*ast.TypeDecl)
	i.initializing = make(map[string]bool)

	defer func() {
		if flushErr := i.stdout.Flush(); flushErr != nil && err == nil {
			err = fmt.Errorf("interpreter: flush output: %w", flushErr)
		}
	}()

	i.env.PushEnvironment()
	defer i.env.PopEnvironment()
	i.globalID = i.env.EnvironmentID()

	for _, decl := range program.Decls {
		switch d := decl.(type) {
		case *ast.FunDecl:
			i.functions[d.ID.Lexeme] = d
		case *ast.TypeDecl:
			i.types[d.ID.Lexeme] = d
		}
	}
	i.logger.Debug("interpreter: declarations registered", "functions", len(i.functions), "types", len(i.types))

	mainCall := ast.NewCallExpr(token.New(token.ID, "main", 0, 0), nil)
	value, returned, err := i.callFunction(mainCall)
	if err != nil {
		return Result{}, err
	}
	if returned {
		fmt.Fprintf(i.stdout, "%s%s\n", ReturnMarker, runtime.Unescape(runtime.Format(value)))
	}
	i.logger.Debug("interpreter: main finished", "returned", returned, "objects", i.heap.Len())
	return Result{Value: value, Returned: returned}, nil
}

func runtimeError(tok token.Token, format string, args ...any) error {
	return diagnostics.Errorf(diagnostics.KindRuntime, tok.Position(), format, args...)
}
