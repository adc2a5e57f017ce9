package typechecker

// Builtins lists the seeded built-in function signatures.
var Builtins = map[string]*Signature{
	"print":  {Params: []Type{TypeAny}, Return: TypeNil, Builtin: true},
	"stoi":   {Params: []Type{TypeString}, Return: TypeInt, Builtin: true},
	"stod":   {Params: []Type{TypeString}, Return: TypeDouble, Builtin: true},
	"itos":   {Params: []Type{TypeInt}, Return: TypeString, Builtin: true},
	"dtos":   {Params: []Type{TypeDouble}, Return: TypeString, Builtin: true},
	"get":    {Params: []Type{TypeInt, TypeString}, Return: TypeChar, Builtin: true},
	"length": {Params: []Type{TypeString}, Return: TypeInt, Builtin: true},
	"read":   {Params: nil, Return: TypeString, Builtin: true},
}

func (c *Checker) seedBuiltins() {
	for name, sig := range Builtins {
		c.table.AddName(name, Symbol{Kind: SymbolFunction, Signature: sig})
	}
}
