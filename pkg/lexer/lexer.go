// Package lexer turns MyPL source text into a stream of tokens.
package lexer

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"unicode"

	"mypl/interpreter-go/pkg/diagnostics"
	"mypl/interpreter-go/pkg/token"
)

// Lexer produces one token per NextToken call. It never buffers more than a
// single peeked rune.
type Lexer struct {
	in     *bufio.Reader
	line   int
	column int
	done   bool
}

// New creates a lexer reading from r.
func New(r io.Reader) *Lexer {
	return &Lexer{in: bufio.NewReader(r), line: 1, column: 1}
}

// Tokenize drains r and returns every token up to and including EOS.
func Tokenize(r io.Reader) ([]token.Token, error) {
	lex := New(r)
	var out []token.Token
	for {
		tok, err := lex.NextToken()
		if err != nil {
			return out, err
		}
		out = append(out, tok)
		if tok.Kind == token.EOS {
			return out, nil
		}
	}
}

func (l *Lexer) pos() diagnostics.Position {
	return diagnostics.Position{Line: l.line, Column: l.column}
}

func (l *Lexer) errorAt(pos diagnostics.Position, format string, args ...any) error {
	return diagnostics.Errorf(diagnostics.KindLexer, pos, format, args...)
}

// peek returns the next rune without consuming it.
func (l *Lexer) peek() (rune, bool, error) {
	if l.done {
		return 0, false, nil
	}
	r, _, err := l.in.ReadRune()
	if err != nil {
		if errors.Is(err, io.EOF) {
			l.done = true
			return 0, false, nil
		}
		return 0, false, l.errorAt(l.pos(), "read failed: %v", err)
	}
	if err := l.in.UnreadRune(); err != nil {
		return 0, false, l.errorAt(l.pos(), "read failed: %v", err)
	}
	return r, true, nil
}

// advance consumes one rune and updates the cursor position.
func (l *Lexer) advance() (rune, bool, error) {
	if l.done {
		return 0, false, nil
	}
	r, _, err := l.in.ReadRune()
	if err != nil {
		if errors.Is(err, io.EOF) {
			l.done = true
			return 0, false, nil
		}
		return 0, false, l.errorAt(l.pos(), "read failed: %v", err)
	}
	if r == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return r, true, nil
}

func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n'
}

// skipTrivia consumes whitespace and '#' comments, including runs of comment
// lines separated only by whitespace.
func (l *Lexer) skipTrivia() error {
	for {
		r, ok, err := l.peek()
		if err != nil || !ok {
			return err
		}
		switch {
		case isWhitespace(r):
			if _, _, err := l.advance(); err != nil {
				return err
			}
		case r == '#':
			for {
				c, ok, err := l.advance()
				if err != nil {
					return err
				}
				if !ok || c == '\n' {
					break
				}
			}
		default:
			return nil
		}
	}
}

// NextToken returns the next token, or EOS once the input is exhausted.
func (l *Lexer) NextToken() (token.Token, error) {
	if err := l.skipTrivia(); err != nil {
		return token.Token{}, err
	}
	start := l.pos()
	ch, ok, err := l.advance()
	if err != nil {
		return token.Token{}, err
	}
	if !ok {
		return token.New(token.EOS, "", start.Line, start.Column), nil
	}
	single := func(kind token.Kind) (token.Token, error) {
		return token.New(kind, string(ch), start.Line, start.Column), nil
	}

	switch ch {
	case '(':
		return single(token.LParen)
	case ')':
		return single(token.RParen)
	case '.':
		return single(token.Dot)
	case ',':
		return single(token.Comma)
	case ':':
		return single(token.Colon)
	case '+':
		return single(token.Plus)
	case '-':
		return single(token.Minus)
	case '*':
		return single(token.Multiply)
	case '/':
		return single(token.Divide)
	case '%':
		return single(token.Modulo)
	case '=':
		return l.withOptionalEquals(start, token.Assign, token.Equal, "=")
	case '<':
		return l.withOptionalEquals(start, token.Less, token.LessEqual, "<")
	case '>':
		return l.withOptionalEquals(start, token.Greater, token.GreaterEqual, ">")
	case '!':
		next, ok, err := l.peek()
		if err != nil {
			return token.Token{}, err
		}
		if !ok || next != '=' {
			return token.Token{}, l.errorAt(start, "expecting '!=', found '!'")
		}
		l.advance()
		return token.New(token.NotEqual, "!=", start.Line, start.Column), nil
	case '\'':
		return l.lexChar(start)
	case '"':
		return l.lexString(start)
	}

	switch {
	case unicode.IsDigit(ch):
		return l.lexNumber(start, ch)
	case unicode.IsLetter(ch):
		return l.lexWord(start, ch)
	}
	return token.Token{}, l.errorAt(start, "unexpected character '%c'", ch)
}

func (l *Lexer) withOptionalEquals(start diagnostics.Position, plain, withEq token.Kind, lexeme string) (token.Token, error) {
	next, ok, err := l.peek()
	if err != nil {
		return token.Token{}, err
	}
	if ok && next == '=' {
		l.advance()
		return token.New(withEq, lexeme+"=", start.Line, start.Column), nil
	}
	return token.New(plain, lexeme, start.Line, start.Column), nil
}

func (l *Lexer) lexChar(start diagnostics.Position) (token.Token, error) {
	value, ok, err := l.advance()
	if err != nil {
		return token.Token{}, err
	}
	if !ok {
		return token.Token{}, l.errorAt(start, "unterminated character literal")
	}
	if value == '\'' || value == '\n' {
		return token.Token{}, l.errorAt(start, "character literal must contain exactly one character")
	}
	closing, ok, err := l.advance()
	if err != nil {
		return token.Token{}, err
	}
	if !ok || closing != '\'' {
		return token.Token{}, l.errorAt(start, "character literal must contain exactly one character")
	}
	return token.New(token.CharVal, string(value), start.Line, start.Column), nil
}

func (l *Lexer) lexString(start diagnostics.Position) (token.Token, error) {
	var b strings.Builder
	for {
		ch, ok, err := l.advance()
		if err != nil {
			return token.Token{}, err
		}
		if !ok {
			return token.Token{}, l.errorAt(start, "unterminated string literal")
		}
		if ch == '"' {
			return token.New(token.StringVal, b.String(), start.Line, start.Column), nil
		}
		if ch == '\n' {
			next, ok, err := l.peek()
			if err != nil {
				return token.Token{}, err
			}
			if ok && isWhitespace(next) {
				return token.Token{}, l.errorAt(start, "string literal cannot span lines")
			}
		}
		b.WriteRune(ch)
	}
}

func (l *Lexer) lexNumber(start diagnostics.Position, first rune) (token.Token, error) {
	var b strings.Builder
	b.WriteRune(first)
	kind := token.IntVal
	for {
		next, ok, err := l.peek()
		if err != nil {
			return token.Token{}, err
		}
		if !ok {
			break
		}
		if unicode.IsDigit(next) {
			l.advance()
			b.WriteRune(next)
			continue
		}
		if next == '.' && kind == token.DoubleVal {
			return token.Token{}, l.errorAt(l.pos(), "unexpected second '.' in '%s.'", b.String())
		}
		if next == '.' {
			dotPos := l.pos()
			l.advance()
			b.WriteRune(next)
			digit, ok, err := l.peek()
			if err != nil {
				return token.Token{}, err
			}
			if !ok || !unicode.IsDigit(digit) {
				return token.Token{}, l.errorAt(dotPos, "expecting digit after '.' in '%s'", b.String())
			}
			kind = token.DoubleVal
			continue
		}
		break
	}
	return token.New(kind, b.String(), start.Line, start.Column), nil
}

func isWordTerminator(r rune) bool {
	if isWhitespace(r) {
		return true
	}
	switch r {
	case '(', ')', '.', ',', ':', '+', '-', '*', '/', '%', '=', '<', '>', '!', '#':
		return true
	}
	return false
}

func (l *Lexer) lexWord(start diagnostics.Position, first rune) (token.Token, error) {
	var b strings.Builder
	b.WriteRune(first)
	for {
		next, ok, err := l.peek()
		if err != nil {
			return token.Token{}, err
		}
		if !ok || isWordTerminator(next) {
			break
		}
		l.advance()
		b.WriteRune(next)
	}
	lexeme := b.String()
	return token.New(token.LookupKeyword(lexeme), lexeme, start.Line, start.Column), nil
}
