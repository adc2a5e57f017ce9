package typechecker

// SymbolKind distinguishes the three payloads a checking scope can hold.
type SymbolKind int

const (
	SymbolVariable SymbolKind = iota
	SymbolFunction
	SymbolUDT
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolVariable:
		return "variable"
	case SymbolFunction:
		return "function"
	case SymbolUDT:
		return "type"
	}
	return "symbol"
}

// Symbol is the checker's symbol-table payload.
type Symbol struct {
	Kind      SymbolKind
	Type      Type
	Signature *Signature
	Schema    *Schema
}

// Signature is a function's parameter types followed by its return type.
type Signature struct {
	Params  []Type
	Return  Type
	Builtin bool
}

// Vector returns the signature as [params..., return].
func (s *Signature) Vector() []Type {
	out := make([]Type, 0, len(s.Params)+1)
	out = append(out, s.Params...)
	return append(out, s.Return)
}

// Schema maps a UDT's attribute names to their types, in declaration order.
type Schema struct {
	Name   string
	Fields map[string]Type
	Order  []string
}

func newSchema(name string) *Schema {
	return &Schema{Name: name, Fields: make(map[string]Type)}
}

func (s *Schema) add(name string, t Type) {
	s.Fields[name] = t
	s.Order = append(s.Order, name)
}

func variable(t Type) Symbol {
	return Symbol{Kind: SymbolVariable, Type: t}
}
