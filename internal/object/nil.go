package object

// NilObject is the single nil value. Nil is a process-wide singleton; no
// other instance may equal it.
type NilObject struct{ Base }

// Nil is the one nil instance. Compare with == for identity.
var Nil Object = NilObject{}

func (NilObject) Type() string    { return "Nil" }
func (NilObject) ToString() string { return "" }
func (NilObject) Inspect() string  { return "nil" }
func (NilObject) IsTrue() bool     { return false }

func (NilObject) Eq(other Object) bool {
	_, ok := other.(NilObject)
	return ok
}

func (n NilObject) Cmp(other Object) (int, error) {
	if _, ok := other.(NilObject); ok {
		return 0, nil
	}
	return 0, NewUnorderableTypesError(n, other)
}

func (NilObject) Hash() uint64 { return 0x9e3779b97f4a7c15 }

var nilMethods = buildNilMethods()

func buildNilMethods() *MethodTable {
	t := NewMethodTable(nil)
	t.Define("to_s", func(self Object, args []Object) (Object, error) {
		return NewString(""), nil
	})
	t.Define("to_a", func(self Object, args []Object) (Object, error) {
		return NewArray(nil), nil
	})
	t.Define("nil?", func(self Object, args []Object) (Object, error) {
		return Bool(true), nil
	})
	t.Define("inspect", func(self Object, args []Object) (Object, error) {
		return NewString("nil"), nil
	})
	return t
}

func (NilObject) MethodTable() *MethodTable { return nilMethods }
