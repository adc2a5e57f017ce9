package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/olekukonko/tablewriter"
	"github.com/peterh/liner"
	"gopkg.in/urfave/cli.v1"

	"mypl/interpreter-go/pkg/ast"
	"mypl/interpreter-go/pkg/driver"
	"mypl/interpreter-go/pkg/lexer"
)

const prompt = "mypl> "

var astDumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	DisableMethods:          true,
	SortKeys:                true,
}

func (s *session) rootAction(ctx *cli.Context) error {
	switch ctx.NArg() {
	case 0:
		return s.runStdin()
	case 1:
		return s.runPath(ctx.Args().First())
	default:
		return s.usageError(ctx, "unexpected arguments: %s", strings.Join(ctx.Args().Tail(), " "))
	}
}

func (s *session) runPath(path string) error {
	_, err := driver.RunFile(path, s.options())
	return s.report(err)
}

// runStdin treats the whole of standard input as one program. On a terminal
// the source is collected line by line until end of input.
func (s *session) runStdin() error {
	var src string
	if isTerminal(s.stdin) {
		text, err := readInteractive()
		if err != nil {
			return s.report(err)
		}
		src = text
	} else {
		data, err := io.ReadAll(s.stdin)
		if err != nil {
			return s.report(fmt.Errorf("read stdin: %w", err))
		}
		src = string(data)
	}
	s.log.Debug("cli: program read from stdin", "bytes", len(src))
	_, err := driver.Run(strings.NewReader(src), s.options())
	return s.report(err)
}

func readInteractive() (string, error) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	var b strings.Builder
	for {
		text, err := line.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return b.String(), nil
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", errors.New("input aborted")
		}
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(text) != "" {
			line.AppendHistory(text)
		}
		b.WriteString(text)
		b.WriteByte('\n')
	}
}

func (s *session) runCommand(ctx *cli.Context) error {
	switch ctx.NArg() {
	case 1:
		return s.runPath(ctx.Args().First())
	case 0:
	default:
		return s.usageError(ctx, "run expects at most one file, got %d", ctx.NArg())
	}

	cwd, err := os.Getwd()
	if err != nil {
		return s.report(err)
	}
	manifestPath, err := driver.FindManifest(cwd)
	if err != nil {
		if errors.Is(err, driver.ErrManifestNotFound) {
			return s.report(fmt.Errorf("run requires a file or a %s in %s or a parent directory", driver.ManifestFileName, cwd))
		}
		return s.report(err)
	}
	manifest, err := driver.LoadManifest(manifestPath)
	if err != nil {
		return s.report(err)
	}
	if err := s.applyManifestLogging(manifest); err != nil {
		return s.report(err)
	}
	_, err = driver.RunManifest(manifest, s.options())
	return s.report(err)
}

func (s *session) checkCommand(ctx *cli.Context) error {
	path, err := s.fileArg(ctx)
	if err != nil {
		return err
	}
	if err := withFile(path, func(r io.Reader) error {
		_, err := driver.Check(r, s.options())
		return err
	}); err != nil {
		return s.report(err)
	}
	fmt.Fprintf(s.stdout, "%s: ok\n", path)
	return nil
}

func (s *session) tokensCommand(ctx *cli.Context) error {
	path, err := s.fileArg(ctx)
	if err != nil {
		return err
	}
	return s.report(withFile(path, func(r io.Reader) error {
		tokens, lexErr := lexer.Tokenize(r)
		table := tablewriter.NewWriter(s.stdout)
		table.SetHeader([]string{"Line", "Column", "Kind", "Lexeme"})
		table.SetAutoWrapText(false)
		table.SetAutoFormatHeaders(false)
		for _, tok := range tokens {
			table.Append([]string{
				strconv.Itoa(tok.Line),
				strconv.Itoa(tok.Column),
				tok.Kind.String(),
				tok.Lexeme,
			})
		}
		table.Render()
		return lexErr
	}))
}

func (s *session) astCommand(ctx *cli.Context) error {
	path, err := s.fileArg(ctx)
	if err != nil {
		return err
	}
	return s.report(withFile(path, func(r io.Reader) error {
		prog, err := driver.Parse(r, s.options())
		if err != nil {
			return err
		}
		astDumper.Fdump(s.stdout, prog)
		return nil
	}))
}

func (s *session) fmtCommand(ctx *cli.Context) error {
	path, err := s.fileArg(ctx)
	if err != nil {
		return err
	}
	return s.report(withFile(path, func(r io.Reader) error {
		prog, err := driver.Parse(r, s.options())
		if err != nil {
			return err
		}
		return ast.Print(s.stdout, prog)
	}))
}

func withFile(path string, fn func(io.Reader) error) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return fn(file)
}
