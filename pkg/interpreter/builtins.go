package interpreter

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"mypl/interpreter-go/pkg/runtime"
	"mypl/interpreter-go/pkg/token"
)

type builtinFunc func(i *Interpreter, name token.Token, args []runtime.Value) (runtime.Value, error)

var builtins map[string]builtinFunc

func init() {
	builtins = map[string]builtinFunc{
		"print":  builtinPrint,
		"stoi":   builtinStoi,
		"stod":   builtinStod,
		"itos":   builtinItos,
		"dtos":   builtinDtos,
		"get":    builtinGet,
		"length": builtinLength,
		"read":   builtinRead,
	}
}

func (i *Interpreter) callBuiltin(name token.Token, args []runtime.Value) (runtime.Value, error) {
	fn := builtins[name.Lexeme]
	return fn(i, name, args)
}

func arity(name token.Token, args []runtime.Value, n int) error {
	if len(args) != n {
		return runtimeError(name, "function '%s' expects %d argument(s), found %d", name.Lexeme, n, len(args))
	}
	for _, arg := range args {
		if runtime.IsNil(arg) && name.Lexeme != "print" {
			return runtimeError(name, "nil argument to '%s'", name.Lexeme)
		}
	}
	return nil
}

func stringArg(name token.Token, v runtime.Value) (string, error) {
	s, ok := v.(runtime.StringValue)
	if !ok {
		return "", runtimeError(name, "'%s' expects string, found %s", name.Lexeme, kindName(v))
	}
	return s.Val, nil
}

func builtinPrint(i *Interpreter, name token.Token, args []runtime.Value) (runtime.Value, error) {
	if err := arity(name, args, 1); err != nil {
		return nil, err
	}
	if _, err := io.WriteString(i.stdout, runtime.Unescape(runtime.Format(args[0]))); err != nil {
		return nil, runtimeError(name, "write failed: %v", err)
	}
	return runtime.Nil, nil
}

func builtinStoi(i *Interpreter, name token.Token, args []runtime.Value) (runtime.Value, error) {
	if err := arity(name, args, 1); err != nil {
		return nil, err
	}
	s, err := stringArg(name, args[0])
	if err != nil {
		return nil, err
	}
	n, convErr := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if convErr != nil {
		return nil, runtimeError(name, "cannot convert %q to int", s)
	}
	return runtime.IntValue{Val: n}, nil
}

func builtinStod(i *Interpreter, name token.Token, args []runtime.Value) (runtime.Value, error) {
	if err := arity(name, args, 1); err != nil {
		return nil, err
	}
	s, err := stringArg(name, args[0])
	if err != nil {
		return nil, err
	}
	f, convErr := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if convErr != nil {
		return nil, runtimeError(name, "cannot convert %q to double", s)
	}
	return runtime.DoubleValue{Val: f}, nil
}

func builtinItos(i *Interpreter, name token.Token, args []runtime.Value) (runtime.Value, error) {
	if err := arity(name, args, 1); err != nil {
		return nil, err
	}
	n, ok := args[0].(runtime.IntValue)
	if !ok {
		return nil, runtimeError(name, "'itos' expects int, found %s", kindName(args[0]))
	}
	return runtime.StringValue{Val: runtime.Format(n)}, nil
}

func builtinDtos(i *Interpreter, name token.Token, args []runtime.Value) (runtime.Value, error) {
	if err := arity(name, args, 1); err != nil {
		return nil, err
	}
	d, ok := args[0].(runtime.DoubleValue)
	if !ok {
		return nil, runtimeError(name, "'dtos' expects double, found %s", kindName(args[0]))
	}
	return runtime.StringValue{Val: runtime.FormatDouble(d.Val)}, nil
}

// builtinGet indexes characters (not bytes) and rejects out-of-range indexes.
func builtinGet(i *Interpreter, name token.Token, args []runtime.Value) (runtime.Value, error) {
	if err := arity(name, args, 2); err != nil {
		return nil, err
	}
	idx, ok := args[0].(runtime.IntValue)
	if !ok {
		return nil, runtimeError(name, "'get' expects int index, found %s", kindName(args[0]))
	}
	s, err := stringArg(name, args[1])
	if err != nil {
		return nil, err
	}
	runes := []rune(s)
	if idx.Val < 0 || idx.Val >= int64(len(runes)) {
		return nil, runtimeError(name, "index %d out of range for string of length %d", idx.Val, len(runes))
	}
	return runtime.CharValue{Val: runes[idx.Val]}, nil
}

func builtinLength(i *Interpreter, name token.Token, args []runtime.Value) (runtime.Value, error) {
	if err := arity(name, args, 1); err != nil {
		return nil, err
	}
	s, err := stringArg(name, args[0])
	if err != nil {
		return nil, err
	}
	return runtime.IntValue{Val: int64(utf8.RuneCountInString(s))}, nil
}

// builtinRead returns the next whitespace-delimited token from stdin, or ""
// once input is exhausted.
func builtinRead(i *Interpreter, name token.Token, args []runtime.Value) (runtime.Value, error) {
	if err := arity(name, args, 0); err != nil {
		return nil, err
	}
	if err := i.stdout.Flush(); err != nil {
		return nil, runtimeError(name, "write failed: %v", err)
	}
	word, err := readWord(i.stdin)
	if err != nil {
		return nil, runtimeError(name, "read failed: %v", err)
	}
	return runtime.StringValue{Val: word}, nil
}

func readWord(r io.RuneScanner) (string, error) {
	var b strings.Builder
	for {
		ch, _, err := r.ReadRune()
		if err == io.EOF {
			return b.String(), nil
		}
		if err != nil {
			return "", fmt.Errorf("stdin: %w", err)
		}
		if unicode.IsSpace(ch) {
			if b.Len() == 0 {
				continue
			}
			return b.String(), nil
		}
		b.WriteRune(ch)
	}
}
