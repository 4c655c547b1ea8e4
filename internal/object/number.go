package object

import (
	"math"
	"strconv"
)

// Number is a 64-bit float. Integer-like methods truncate toward zero;
// there is no separate integer representation.
type Number struct {
	Base
	v float64
}

// NewNumber wraps v as a Number object.
func NewNumber(v float64) *Number { return &Number{v: v} }

// NumberValue returns the underlying float64.
func NumberValue(n *Number) float64 { return n.v }

func (n *Number) Type() string { return "Number" }

func (n *Number) ToString() string {
	if n.v == math.Trunc(n.v) && !math.IsInf(n.v, 0) && math.Abs(n.v) < 1e15 {
		return strconv.FormatFloat(n.v, 'f', -1, 64)
	}
	return strconv.FormatFloat(n.v, 'g', -1, 64)
}

func (n *Number) Inspect() string { return n.ToString() }
func (n *Number) IsTrue() bool    { return true } // only nil/false are falsy; 0 is truthy

func (n *Number) Eq(other Object) bool {
	o, ok := other.(*Number)
	return ok && o.v == n.v
}

func (n *Number) Cmp(other Object) (int, error) {
	o, ok := other.(*Number)
	if !ok {
		return 0, NewUnorderableTypesError(n, other)
	}
	switch {
	case n.v < o.v:
		return -1, nil
	case n.v > o.v:
		return 1, nil
	default:
		return 0, nil
	}
}

func (n *Number) Hash() uint64 {
	return math.Float64bits(n.v)
}

// AsInt truncates toward zero and fails with invalid-argument if the value
// is NaN or infinite (spec.md §9 open question (b)).
func (n *Number) AsInt() (int64, error) {
	if math.IsNaN(n.v) || math.IsInf(n.v, 0) {
		return 0, NewInvalidArgument("cannot convert %s to an integer", n.ToString())
	}
	return int64(math.Trunc(n.v)), nil
}

// AsExactInt is like AsInt but additionally fails with invalid-argument
// (bit-wise operators only accept integral values) if v has a non-zero
// fractional part.
func (n *Number) AsExactInt() (int64, error) {
	if math.IsNaN(n.v) || math.IsInf(n.v, 0) {
		return 0, NewInvalidArgument("cannot convert %s to an integer", n.ToString())
	}
	if n.v != math.Trunc(n.v) {
		return 0, NewInvalidArgument("value %s is not an integer", n.ToString())
	}
	return int64(n.v), nil
}

var numberMethods = buildNumberMethods()

func buildNumberMethods() *MethodTable {
	t := NewMethodTable(nil)

	t.Define("to_i", func(self Object, args []Object) (Object, error) {
		i, err := self.(*Number).AsInt()
		if err != nil {
			return nil, err
		}
		return NewNumber(float64(i)), nil
	})
	t.Define("to_f", func(self Object, args []Object) (Object, error) { return self, nil })
	t.Define("to_s", func(self Object, args []Object) (Object, error) {
		return NewString(self.ToString()), nil
	})
	t.Define("abs", func(self Object, args []Object) (Object, error) {
		return NewNumber(math.Abs(self.(*Number).v)), nil
	})
	t.Define("ceil", func(self Object, args []Object) (Object, error) {
		return NewNumber(math.Ceil(self.(*Number).v)), nil
	})
	t.Define("floor", func(self Object, args []Object) (Object, error) {
		return NewNumber(math.Floor(self.(*Number).v)), nil
	})
	t.Define("round", func(self Object, args []Object) (Object, error) {
		return NewNumber(math.Round(self.(*Number).v)), nil
	})
	t.Define("truncate", func(self Object, args []Object) (Object, error) {
		return NewNumber(math.Trunc(self.(*Number).v)), nil
	})
	t.Define("zero?", func(self Object, args []Object) (Object, error) {
		return Bool(self.(*Number).v == 0), nil
	})
	t.Define("positive?", func(self Object, args []Object) (Object, error) {
		return Bool(self.(*Number).v > 0), nil
	})
	t.Define("negative?", func(self Object, args []Object) (Object, error) {
		return Bool(self.(*Number).v < 0), nil
	})
	t.Define("even?", func(self Object, args []Object) (Object, error) {
		i, err := self.(*Number).AsExactInt()
		if err != nil {
			return nil, err
		}
		return Bool(i%2 == 0), nil
	})
	t.Define("odd?", func(self Object, args []Object) (Object, error) {
		i, err := self.(*Number).AsExactInt()
		if err != nil {
			return nil, err
		}
		return Bool(i%2 != 0), nil
	})
	t.Define("-@", func(self Object, args []Object) (Object, error) {
		return NewNumber(-self.(*Number).v), nil
	})
	t.Define("+@", func(self Object, args []Object) (Object, error) {
		return self, nil
	})
	return t
}

func (n *Number) MethodTable() *MethodTable { return numberMethods }
