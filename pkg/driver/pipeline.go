// Package driver wires the lexer, parser, type checker and interpreter into
// runnable pipelines and loads project manifests and test fixtures.
package driver

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"mypl/interpreter-go/pkg/ast"
	"mypl/interpreter-go/pkg/interpreter"
	"mypl/interpreter-go/pkg/parser"
	"mypl/interpreter-go/pkg/typechecker"
)

// Options configures a pipeline run.
type Options struct {
	Stdin  io.Reader
	Stdout io.Writer
	Logger *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// Parse lexes and parses src.
func Parse(src io.Reader, opts Options) (*ast.Program, error) {
	prog, err := parser.ParseSource(src)
	if err != nil {
		return nil, err
	}
	opts.logger().Debug("driver: parsed", "decls", len(prog.Decls))
	return prog, nil
}

// Check parses and type checks src without running it.
func Check(src io.Reader, opts Options) (*ast.Program, error) {
	prog, err := Parse(src, opts)
	if err != nil {
		return nil, err
	}
	if err := typechecker.New().Check(prog); err != nil {
		return nil, err
	}
	opts.logger().Debug("driver: typecheck passed")
	return prog, nil
}

// Run parses, checks and evaluates src. No evaluation happens unless every
// earlier stage succeeds.
func Run(src io.Reader, opts Options) (interpreter.Result, error) {
	prog, err := Check(src, opts)
	if err != nil {
		return interpreter.Result{}, err
	}
	interp := interpreter.New(interpreter.Options{
		Stdin:  opts.Stdin,
		Stdout: opts.Stdout,
		Logger: opts.logger(),
	})
	return interp.Run(prog)
}

// RunFile runs the program stored at path.
func RunFile(path string, opts Options) (interpreter.Result, error) {
	file, err := os.Open(path)
	if err != nil {
		return interpreter.Result{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()
	opts.logger().Debug("driver: running file", "path", path)
	return Run(file, opts)
}

// RunManifest runs the manifest's main program, feeding its stdin file when
// one is configured.
func RunManifest(m *Manifest, opts Options) (interpreter.Result, error) {
	if path := m.StdinPath(); path != "" {
		in, err := os.Open(path)
		if err != nil {
			return interpreter.Result{}, fmt.Errorf("manifest stdin: %w", err)
		}
		defer in.Close()
		opts.Stdin = in
	}
	opts.logger().Debug("driver: running manifest", "name", m.Name, "main", m.Main)
	return RunFile(m.MainPath(), opts)
}
