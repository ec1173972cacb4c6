package checker

// Environment tracks the static type of each declared global.
type Environment struct {
	symbols map[string]Type
}

func NewEnvironment() *Environment {
	return &Environment{symbols: make(map[string]Type)}
}

// Define binds a name to a type, replacing any earlier declaration.
func (e *Environment) Define(name string, typ Type) {
	e.symbols[name] = typ
}

func (e *Environment) Lookup(name string) (Type, bool) {
	typ, ok := e.symbols[name]
	return typ, ok
}

// Update rebinds a declared name and reports whether it existed.
func (e *Environment) Update(name string, typ Type) bool {
	if _, ok := e.symbols[name]; !ok {
		return false
	}
	e.symbols[name] = typ
	return true
}
