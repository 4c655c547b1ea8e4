package object

import "github.com/oxhq/veneer/internal/symbol"

// SymbolObject wraps an interned symbol.Symbol as a scripting-level value
// (`:name` literals). Equality is by interned identity.
type SymbolObject struct {
	Base
	sym symbol.Symbol
}

// NewSymbol wraps sym as a scripting-level Symbol value.
func NewSymbol(sym symbol.Symbol) *SymbolObject { return &SymbolObject{sym: sym} }

// SymbolValue returns the wrapped symbol.
func SymbolValue(o *SymbolObject) symbol.Symbol { return o.sym }

func (s *SymbolObject) Type() string     { return "Symbol" }
func (s *SymbolObject) ToString() string { return s.sym.String() }
func (s *SymbolObject) Inspect() string  { return ":" + s.sym.String() }
func (s *SymbolObject) IsTrue() bool     { return true }

func (s *SymbolObject) Eq(other Object) bool {
	o, ok := other.(*SymbolObject)
	return ok && o.sym == s.sym
}

func (s *SymbolObject) Cmp(other Object) (int, error) {
	o, ok := other.(*SymbolObject)
	if !ok {
		return 0, NewUnorderableTypesError(s, other)
	}
	a, b := s.sym.String(), o.sym.String()
	switch {
	case a < b:
		return -1, nil
	case a > b:
		return 1, nil
	default:
		return 0, nil
	}
}

func (s *SymbolObject) Hash() uint64 { return fnv1a(s.sym.String()) }

var symbolMethods = buildSymbolMethods()

func buildSymbolMethods() *MethodTable {
	t := NewMethodTable(nil)
	t.Define("to_s", func(self Object, args []Object) (Object, error) {
		return NewString(self.(*SymbolObject).sym.String()), nil
	})
	t.Define("to_sym", func(self Object, args []Object) (Object, error) { return self, nil })
	t.Define("inspect", func(self Object, args []Object) (Object, error) {
		return NewString(self.Inspect()), nil
	})
	return t
}

func (s *SymbolObject) MethodTable() *MethodTable { return symbolMethods }

func fnv1a(s string) uint64 {
	var h uint64 = 14695981039346656037
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= 1099511628211
	}
	return h
}
