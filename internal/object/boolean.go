package object

// Boolean wraps a bool. True and False are the only two instances; no other
// Boolean value may be constructed.
type Boolean struct {
	Base
	v bool
}

var (
	trueObj  = &Boolean{v: true}
	falseObj = &Boolean{v: false}
)

// Bool returns the singleton Boolean for v.
func Bool(v bool) Object {
	if v {
		return trueObj
	}
	return falseObj
}

// BoolValue returns the underlying bool.
func BoolValue(o *Boolean) bool { return o.v }

func (b *Boolean) Type() string { return "Boolean" }
func (b *Boolean) ToString() string {
	if b.v {
		return "true"
	}
	return "false"
}
func (b *Boolean) Inspect() string { return b.ToString() }
func (b *Boolean) IsTrue() bool    { return b.v }

func (b *Boolean) Eq(other Object) bool {
	o, ok := other.(*Boolean)
	return ok && o.v == b.v
}

func (b *Boolean) Cmp(other Object) (int, error) {
	o, ok := other.(*Boolean)
	if !ok {
		return 0, NewUnorderableTypesError(b, other)
	}
	if b.v == o.v {
		return 0, nil
	}
	if !b.v && o.v {
		return -1, nil
	}
	return 1, nil
}

func (b *Boolean) Hash() uint64 {
	if b.v {
		return 1
	}
	return 0
}

var booleanMethods = buildBooleanMethods()

func buildBooleanMethods() *MethodTable {
	t := NewMethodTable(nil)
	t.Define("to_s", func(self Object, args []Object) (Object, error) {
		return NewString(self.ToString()), nil
	})
	t.Define("&", func(self Object, args []Object) (Object, error) {
		if len(args) != 1 {
			return nil, NewArgumentCountError("&", 1, len(args))
		}
		return Bool(self.IsTrue() && args[0].IsTrue()), nil
	})
	t.Define("|", func(self Object, args []Object) (Object, error) {
		if len(args) != 1 {
			return nil, NewArgumentCountError("|", 1, len(args))
		}
		return Bool(self.IsTrue() || args[0].IsTrue()), nil
	})
	return t
}

func (b *Boolean) MethodTable() *MethodTable { return booleanMethods }
