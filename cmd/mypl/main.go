package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"gopkg.in/urfave/cli.v1"

	"mypl/interpreter-go/pkg/diagnostics"
	"mypl/interpreter-go/pkg/driver"
	"mypl/interpreter-go/pkg/logger"
)

const cliToolVersion = "0.1.0-dev"

// errReported marks failures whose message has already been written.
var errReported = errors.New("mypl: error reported")

var (
	logLevelFlag = cli.StringFlag{
		Name:   "log-level",
		Usage:  "Log level (debug, info, warn, error)",
		EnvVar: "MYPL_LOG_LEVEL",
	}
	logFormatFlag = cli.StringFlag{
		Name:  "log-format",
		Usage: "Log format (text, json)",
		Value: "text",
	}
	noColorFlag = cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured error output",
	}
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// session carries the streams and settings shared by every command.
type session struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	log       *slog.Logger
	logConfig logger.Config
	levelSet  bool
	colorize  bool
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	s := &session{stdin: stdin, stdout: stdout, stderr: stderr}
	app := s.newApp()
	if err := app.Run(append([]string{"mypl"}, args...)); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(stderr, "mypl: %v\n", err)
		}
		return 1
	}
	return 0
}

func (s *session) newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "mypl"
	app.Usage = "run, check and inspect MyPL programs"
	app.UsageText = "mypl [global options] [file]\n   mypl [global options] command [arguments...]"
	app.Version = cliToolVersion
	app.Writer = s.stdout
	app.ErrWriter = s.stderr
	app.Flags = []cli.Flag{logLevelFlag, logFormatFlag, noColorFlag}
	app.Before = s.configure
	app.Action = s.rootAction
	app.Commands = []cli.Command{
		{
			Action:    s.runCommand,
			Name:      "run",
			Usage:     "Run a program, or the main of the nearest " + driver.ManifestFileName,
			ArgsUsage: "[file]",
		},
		{
			Action:    s.checkCommand,
			Name:      "check",
			Usage:     "Lex, parse and type check a program without running it",
			ArgsUsage: "<file>",
		},
		{
			Action:    s.tokensCommand,
			Name:      "tokens",
			Usage:     "Print the token stream of a program",
			ArgsUsage: "<file>",
		},
		{
			Action:    s.astCommand,
			Name:      "ast",
			Usage:     "Dump the syntax tree of a program",
			ArgsUsage: "<file>",
		},
		{
			Action:    s.fmtCommand,
			Name:      "fmt",
			Usage:     "Pretty-print a program",
			ArgsUsage: "<file>",
		},
	}
	return app
}

func (s *session) configure(ctx *cli.Context) error {
	cfg := logger.DefaultConfig()
	cfg.Output = s.stderr
	if name := ctx.GlobalString(logLevelFlag.Name); name != "" {
		level, err := logger.ParseLevel(name)
		if err != nil {
			return err
		}
		cfg.Level = level
		s.levelSet = true
	}
	cfg.Format = ctx.GlobalString(logFormatFlag.Name)
	if err := s.installLogger(cfg); err != nil {
		return err
	}
	s.colorize = !ctx.GlobalBool(noColorFlag.Name) && isTerminal(s.stdout)
	return nil
}

// installLogger also makes the logger the slog default.
func (s *session) installLogger(cfg logger.Config) error {
	l, err := logger.Init(cfg)
	if err != nil {
		return err
	}
	s.log = l
	s.logConfig = cfg
	return nil
}

// applyManifestLogging lets the manifest pick the log settings unless the
// level came from the command line or environment.
func (s *session) applyManifestLogging(m *driver.Manifest) error {
	if s.levelSet {
		return nil
	}
	return s.installLogger(m.LoggerConfig(s.logConfig))
}

func (s *session) options() driver.Options {
	return driver.Options{Stdin: s.stdin, Stdout: s.stdout, Logger: s.log}
}

// report renders err and converts it into errReported. Language errors go to
// stdout after any program output; everything else goes to stderr.
func (s *session) report(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := diagnostics.As(err); ok {
		paint := color.New(color.FgRed, color.Bold)
		if s.colorize {
			paint.EnableColor()
		} else {
			paint.DisableColor()
		}
		paint.Fprintln(s.stdout, err.Error())
		return errReported
	}
	fmt.Fprintf(s.stderr, "mypl: %v\n", err)
	return errReported
}

func (s *session) usageError(ctx *cli.Context, format string, args ...any) error {
	fmt.Fprintf(s.stderr, "mypl: "+format+"\n", args...)
	if ctx.Command.Name != "" {
		cli.ShowCommandHelp(ctx, ctx.Command.Name)
	} else {
		cli.ShowAppHelp(ctx)
	}
	return errReported
}

func (s *session) fileArg(ctx *cli.Context) (string, error) {
	if ctx.NArg() != 1 {
		return "", s.usageError(ctx, "%s expects exactly one file, got %d", ctx.Command.Name, ctx.NArg())
	}
	return ctx.Args().First(), nil
}

func isTerminal(stream any) bool {
	f, ok := stream.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
