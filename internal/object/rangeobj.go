package object

// RangeObject is a bounded Number range, inclusive or exclusive of its end.
type RangeObject struct {
	Base
	Start    *Number
	End      *Number
	Exclusive bool
}

// NewRange constructs a Range from start to end.
func NewRange(start, end *Number, exclusive bool) *RangeObject {
	return &RangeObject{Start: start, End: end, Exclusive: exclusive}
}

func (r *RangeObject) Type() string { return "Range" }

func (r *RangeObject) op() string {
	if r.Exclusive {
		return "..."
	}
	return ".."
}

func (r *RangeObject) ToString() string { return r.Start.ToString() + r.op() + r.End.ToString() }
func (r *RangeObject) Inspect() string  { return r.ToString() }
func (r *RangeObject) IsTrue() bool     { return true }

func (r *RangeObject) Eq(other Object) bool {
	o, ok := other.(*RangeObject)
	return ok && o.Exclusive == r.Exclusive && o.Start.Eq(r.Start) && o.End.Eq(r.End)
}

func (r *RangeObject) Cmp(other Object) (int, error) {
	return 0, NewUnorderableTypesError(r, other)
}

func (r *RangeObject) Hash() uint64 {
	h := r.Start.Hash() ^ (r.End.Hash() * 1099511628211)
	if r.Exclusive {
		h ^= 1
	}
	return h
}

// Includes reports whether n falls within the range.
func (r *RangeObject) Includes(n float64) bool {
	if n < r.Start.v || n > r.End.v {
		return false
	}
	if r.Exclusive && n == r.End.v {
		return false
	}
	return true
}

// ToArray materializes the range as an Array of Numbers, stepping by 1.
// Fails with invalid-argument if the bounds are not integral.
func (r *RangeObject) ToArray() (*Array, error) {
	start, err := r.Start.AsExactInt()
	if err != nil {
		return nil, err
	}
	end, err := r.End.AsExactInt()
	if err != nil {
		return nil, err
	}
	if r.Exclusive {
		end--
	}
	var out []Object
	for i := start; i <= end; i++ {
		out = append(out, NewNumber(float64(i)))
	}
	return NewArray(out), nil
}

var rangeMethods = buildRangeMethods()

func buildRangeMethods() *MethodTable {
	t := NewMethodTable(nil)
	self := func(o Object) *RangeObject { return o.(*RangeObject) }

	t.Define("first", func(self0 Object, args []Object) (Object, error) { return self(self0).Start, nil })
	t.Define("last", func(self0 Object, args []Object) (Object, error) { return self(self0).End, nil })
	t.Define("min", func(self0 Object, args []Object) (Object, error) { return self(self0).Start, nil })
	t.Define("max", func(self0 Object, args []Object) (Object, error) {
		r := self(self0)
		if r.Exclusive {
			return NewNumber(r.End.v - 1), nil
		}
		return r.End, nil
	})
	t.Define("exclude_end?", func(self0 Object, args []Object) (Object, error) {
		return Bool(self(self0).Exclusive), nil
	})

	t.DefineAliases(func(self0 Object, args []Object) (Object, error) {
		if len(args) != 1 {
			return nil, argErr("include?", args, 1)
		}
		n, ok := args[0].(*Number)
		if !ok {
			return Bool(false), nil
		}
		return Bool(self(self0).Includes(n.v)), nil
	}, "include?", "cover?", "===")

	t.Define("to_a", func(self0 Object, args []Object) (Object, error) {
		return self(self0).ToArray()
	})

	t.Define("each", func(self0 Object, args []Object) (Object, error) {
		if len(args) != 1 {
			return nil, argErr("each", args, 1)
		}
		p, err := asProc("each", args[0])
		if err != nil {
			return nil, err
		}
		arr, err := self(self0).ToArray()
		if err != nil {
			return nil, err
		}
		for _, e := range arr.elems {
			if _, err := p.Call([]Object{e}); err != nil {
				return nil, err
			}
		}
		return self0, nil
	})

	t.Define("map", func(self0 Object, args []Object) (Object, error) {
		if len(args) != 1 {
			return nil, argErr("map", args, 1)
		}
		p, err := asProc("map", args[0])
		if err != nil {
			return nil, err
		}
		arr, err := self(self0).ToArray()
		if err != nil {
			return nil, err
		}
		out := make([]Object, len(arr.elems))
		for i, e := range arr.elems {
			v, err := p.Call([]Object{e})
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return NewArray(out), nil
	})

	return t
}

func (r *RangeObject) MethodTable() *MethodTable { return rangeMethods }
