// Package diagnostics defines the error values raised by every MyPL pass.
package diagnostics

import (
	"errors"
	"fmt"
	"strings"
)

// Kind identifies which pipeline stage raised an error.
type Kind int

const (
	KindLexer Kind = iota
	KindSyntax
	KindSemantic
	KindRuntime
)

func (k Kind) String() string {
	switch k {
	case KindLexer:
		return "Lexer"
	case KindSyntax:
		return "Syntax"
	case KindSemantic:
		return "Semantic"
	case KindRuntime:
		return "Runtime"
	default:
		return "Unknown"
	}
}

// ParseKind maps a lowercase kind name (as used by fixture manifests) to a Kind.
func ParseKind(name string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "lexer":
		return KindLexer, true
	case "syntax":
		return KindSyntax, true
	case "semantic":
		return KindSemantic, true
	case "runtime":
		return KindRuntime, true
	}
	return 0, false
}

// Position is a 1-based source location. The zero value means "unknown".
type Position struct {
	Line   int
	Column int
}

func (p Position) IsKnown() bool {
	return p.Line > 0
}

// Error carries a kind, message and optional source position.
type Error struct {
	Kind     Kind
	Message  string
	Position Position
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	b.WriteString(" Error: ")
	b.WriteString(e.Message)
	if e.Position.IsKnown() {
		fmt.Fprintf(&b, " at line %d column %d", e.Position.Line, e.Position.Column)
	}
	return b.String()
}

// New builds an error at the given position.
func New(kind Kind, pos Position, message string) *Error {
	return &Error{Kind: kind, Message: message, Position: pos}
}

// Errorf builds an error at the given position with a formatted message.
func Errorf(kind Kind, pos Position, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Position: pos}
}

// As extracts a diagnostics error from a (possibly wrapped) error chain.
func As(err error) (*Error, bool) {
	var diag *Error
	if errors.As(err, &diag) {
		return diag, true
	}
	return nil, false
}

// KindOf reports the kind of a diagnostics error found in err's chain.
func KindOf(err error) (Kind, bool) {
	diag, ok := As(err)
	if !ok {
		return 0, false
	}
	return diag.Kind, true
}
