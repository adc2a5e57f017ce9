package token

import "mypl/interpreter-go/pkg/diagnostics"

// Kind enumerates terminal categories produced by the lexer.
type Kind int

const (
	EOS Kind = iota
	ID

	// punctuation
	LParen
	RParen
	Dot
	Comma
	Colon

	// operators
	Plus
	Minus
	Multiply
	Divide
	Modulo
	Assign
	Equal
	NotEqual
	Less
	LessEqual
	Greater
	GreaterEqual

	// literals
	BoolVal
	IntVal
	DoubleVal
	CharVal
	StringVal
	Nil

	// type names
	BoolType
	IntType
	DoubleType
	CharType
	StringType

	// keywords
	Neg
	And
	Or
	Not
	Type
	While
	For
	To
	Do
	If
	Then
	ElseIf
	Else
	End
	Fun
	Var
	Return
	NewKw
)

var kindNames = [...]string{
	EOS:          "EOS",
	ID:           "ID",
	LParen:       "LPAREN",
	RParen:       "RPAREN",
	Dot:          "DOT",
	Comma:        "COMMA",
	Colon:        "COLON",
	Plus:         "PLUS",
	Minus:        "MINUS",
	Multiply:     "MULTIPLY",
	Divide:       "DIVIDE",
	Modulo:       "MODULO",
	Assign:       "ASSIGN",
	Equal:        "EQUAL",
	NotEqual:     "NOT_EQUAL",
	Less:         "LESS",
	LessEqual:    "LESS_EQUAL",
	Greater:      "GREATER",
	GreaterEqual: "GREATER_EQUAL",
	BoolVal:      "BOOL_VAL",
	IntVal:       "INT_VAL",
	DoubleVal:    "DOUBLE_VAL",
	CharVal:      "CHAR_VAL",
	StringVal:    "STRING_VAL",
	Nil:          "NIL",
	BoolType:     "BOOL_TYPE",
	IntType:      "INT_TYPE",
	DoubleType:   "DOUBLE_TYPE",
	CharType:     "CHAR_TYPE",
	StringType:   "STRING_TYPE",
	Neg:          "NEG",
	And:          "AND",
	Or:           "OR",
	Not:          "NOT",
	Type:         "TYPE",
	While:        "WHILE",
	For:          "FOR",
	To:           "TO",
	Do:           "DO",
	If:           "IF",
	Then:         "THEN",
	ElseIf:       "ELSEIF",
	Else:         "ELSE",
	End:          "END",
	Fun:          "FUN",
	Var:          "VAR",
	Return:       "RETURN",
	NewKw:        "NEW",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "UNKNOWN"
}

// IsBinaryOperator reports whether k may appear between two expressions.
func (k Kind) IsBinaryOperator() bool {
	switch k {
	case Plus, Minus, Multiply, Divide, Modulo, And, Or,
		Equal, NotEqual, Less, LessEqual, Greater, GreaterEqual:
		return true
	}
	return false
}

// IsDataType reports whether k names a declarable type (scalar keyword or ID).
func (k Kind) IsDataType() bool {
	switch k {
	case IntType, DoubleType, BoolType, CharType, StringType, ID:
		return true
	}
	return false
}

// IsLiteral reports whether k is a literal value token.
func (k Kind) IsLiteral() bool {
	switch k {
	case BoolVal, IntVal, DoubleVal, CharVal, StringVal, Nil:
		return true
	}
	return false
}

// Token is an immutable lexeme with its 1-based source position.
type Token struct {
	Kind   Kind
	Lexeme string
	Line   int
	Column int
}

func New(kind Kind, lexeme string, line, column int) Token {
	return Token{Kind: kind, Lexeme: lexeme, Line: line, Column: column}
}

// Position converts the token location for diagnostics.
func (t Token) Position() diagnostics.Position {
	return diagnostics.Position{Line: t.Line, Column: t.Column}
}

var keywords = map[string]Kind{
	"neg":    Neg,
	"and":    And,
	"or":     Or,
	"not":    Not,
	"type":   Type,
	"while":  While,
	"for":    For,
	"to":     To,
	"do":     Do,
	"if":     If,
	"then":   Then,
	"elseif": ElseIf,
	"else":   Else,
	"end":    End,
	"fun":    Fun,
	"var":    Var,
	"return": Return,
	"new":    NewKw,
	"bool":   BoolType,
	"int":    IntType,
	"double": DoubleType,
	"char":   CharType,
	"string": StringType,
	"nil":    Nil,
	"true":   BoolVal,
	"false":  BoolVal,
}

// LookupKeyword returns the keyword kind for lexeme, or ID.
func LookupKeyword(lexeme string) Kind {
	if kind, ok := keywords[lexeme]; ok {
		return kind
	}
	return ID
}
