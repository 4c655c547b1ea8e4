package object

import "sort"

// Array is a mutable, ordered, zero-indexed sequence of Objects.
type Array struct {
	Base
	elems []Object
}

// NewArray wraps elems (taken by reference; callers should not mutate the
// slice afterward through another handle).
func NewArray(elems []Object) *Array { return &Array{elems: elems} }

// ArrayElems returns the underlying element slice.
func ArrayElems(a *Array) []Object { return a.elems }

func (a *Array) Type() string { return "Array" }

func (a *Array) ToString() string { return a.Inspect() }

func (a *Array) Inspect() string {
	s := "["
	for i, e := range a.elems {
		if i > 0 {
			s += ", "
		}
		s += e.Inspect()
	}
	return s + "]"
}

func (a *Array) IsTrue() bool { return true }

func (a *Array) Eq(other Object) bool {
	o, ok := other.(*Array)
	if !ok || len(o.elems) != len(a.elems) {
		return false
	}
	for i := range a.elems {
		if !a.elems[i].Eq(o.elems[i]) {
			return false
		}
	}
	return true
}

func (a *Array) Cmp(other Object) (int, error) {
	o, ok := other.(*Array)
	if !ok {
		return 0, NewUnorderableTypesError(a, other)
	}
	for i := 0; i < len(a.elems) && i < len(o.elems); i++ {
		c, err := a.elems[i].Cmp(o.elems[i])
		if err != nil {
			return 0, err
		}
		if c != 0 {
			return c, nil
		}
	}
	switch {
	case len(a.elems) < len(o.elems):
		return -1, nil
	case len(a.elems) > len(o.elems):
		return 1, nil
	default:
		return 0, nil
	}
}

func (a *Array) Hash() uint64 {
	var h uint64 = 14695981039346656037
	for _, e := range a.elems {
		h ^= e.Hash()
		h *= 1099511628211
	}
	return h
}

func (a *Array) ElRef(args []Object) (Object, error) {
	if len(args) != 1 {
		return nil, NewArgumentCountError("[]", 1, len(args))
	}
	n, ok := args[0].(*Number)
	if !ok {
		return nil, NewArgumentTypeError("array index must be a Number, got %s", args[0].Type())
	}
	i, err := n.AsExactInt()
	if err != nil {
		return nil, err
	}
	idx, ok := normalizeIndex(int(i), len(a.elems))
	if !ok {
		return Nil, nil
	}
	return a.elems[idx], nil
}

func argErr(method string, args []Object, want int) error {
	return NewArgumentCountError(method, want, len(args))
}

func asProc(method string, o Object) (*Proc, error) {
	p, ok := o.(*Proc)
	if !ok {
		return nil, NewArgumentTypeError("%s expects a block, got %s", method, o.Type())
	}
	return p, nil
}

var arrayMethods = buildArrayMethods()

func buildArrayMethods() *MethodTable {
	t := NewMethodTable(nil)
	self := func(o Object) *Array { return o.(*Array) }

	t.DefineAliases(func(self0 Object, args []Object) (Object, error) {
		return NewNumber(float64(len(self(self0).elems))), nil
	}, "length", "size", "count")

	t.Define("empty?", func(self0 Object, args []Object) (Object, error) {
		return Bool(len(self(self0).elems) == 0), nil
	})

	t.DefineAliases(func(self0 Object, args []Object) (Object, error) {
		a := self(self0)
		a.elems = append(a.elems, args...)
		return a, nil
	}, "push", "<<", "append")

	t.Define("pop", func(self0 Object, args []Object) (Object, error) {
		a := self(self0)
		if len(a.elems) == 0 {
			return Nil, nil
		}
		last := a.elems[len(a.elems)-1]
		a.elems = a.elems[:len(a.elems)-1]
		return last, nil
	})

	t.Define("shift", func(self0 Object, args []Object) (Object, error) {
		a := self(self0)
		if len(a.elems) == 0 {
			return Nil, nil
		}
		first := a.elems[0]
		a.elems = a.elems[1:]
		return first, nil
	})

	t.Define("unshift", func(self0 Object, args []Object) (Object, error) {
		a := self(self0)
		a.elems = append(append([]Object{}, args...), a.elems...)
		return a, nil
	})

	t.Define("first", func(self0 Object, args []Object) (Object, error) {
		a := self(self0)
		if len(args) == 0 {
			if len(a.elems) == 0 {
				return Nil, nil
			}
			return a.elems[0], nil
		}
		n, err := argInt(args[0])
		if err != nil {
			return nil, err
		}
		if n > len(a.elems) {
			n = len(a.elems)
		}
		return NewArray(append([]Object{}, a.elems[:n]...)), nil
	})

	t.Define("last", func(self0 Object, args []Object) (Object, error) {
		a := self(self0)
		if len(args) == 0 {
			if len(a.elems) == 0 {
				return Nil, nil
			}
			return a.elems[len(a.elems)-1], nil
		}
		n, err := argInt(args[0])
		if err != nil {
			return nil, err
		}
		if n > len(a.elems) {
			n = len(a.elems)
		}
		return NewArray(append([]Object{}, a.elems[len(a.elems)-n:]...)), nil
	})

	t.Define("include?", func(self0 Object, args []Object) (Object, error) {
		if len(args) != 1 {
			return nil, argErr("include?", args, 1)
		}
		for _, e := range self(self0).elems {
			if e.Eq(args[0]) {
				return Bool(true), nil
			}
		}
		return Bool(false), nil
	})

	t.DefineAliases(func(self0 Object, args []Object) (Object, error) {
		if len(args) != 1 {
			return nil, argErr("each", args, 1)
		}
		p, err := asProc("each", args[0])
		if err != nil {
			return nil, err
		}
		for _, e := range self(self0).elems {
			if _, err := p.Call([]Object{e}); err != nil {
				return nil, err
			}
		}
		return self0, nil
	}, "each")

	t.Define("each_with_index", func(self0 Object, args []Object) (Object, error) {
		if len(args) != 1 {
			return nil, argErr("each_with_index", args, 1)
		}
		p, err := asProc("each_with_index", args[0])
		if err != nil {
			return nil, err
		}
		for i, e := range self(self0).elems {
			if _, err := p.Call([]Object{e, NewNumber(float64(i))}); err != nil {
				return nil, err
			}
		}
		return self0, nil
	})

	t.DefineAliases(func(self0 Object, args []Object) (Object, error) {
		if len(args) != 1 {
			return nil, argErr("map", args, 1)
		}
		p, err := asProc("map", args[0])
		if err != nil {
			return nil, err
		}
		out := make([]Object, len(self(self0).elems))
		for i, e := range self(self0).elems {
			v, err := p.Call([]Object{e})
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return NewArray(out), nil
	}, "map", "collect")

	t.DefineAliases(func(self0 Object, args []Object) (Object, error) {
		if len(args) != 1 {
			return nil, argErr("select", args, 1)
		}
		p, err := asProc("select", args[0])
		if err != nil {
			return nil, err
		}
		var out []Object
		for _, e := range self(self0).elems {
			v, err := p.Call([]Object{e})
			if err != nil {
				return nil, err
			}
			if v.IsTrue() {
				out = append(out, e)
			}
		}
		return NewArray(out), nil
	}, "select", "filter")

	t.Define("reject", func(self0 Object, args []Object) (Object, error) {
		if len(args) != 1 {
			return nil, argErr("reject", args, 1)
		}
		p, err := asProc("reject", args[0])
		if err != nil {
			return nil, err
		}
		var out []Object
		for _, e := range self(self0).elems {
			v, err := p.Call([]Object{e})
			if err != nil {
				return nil, err
			}
			if !v.IsTrue() {
				out = append(out, e)
			}
		}
		return NewArray(out), nil
	})

	t.DefineAliases(func(self0 Object, args []Object) (Object, error) {
		elems := self(self0).elems
		var acc Object
		var body []Object
		switch len(args) {
		case 1:
			acc = Nil
			body = elems
			if len(elems) > 0 {
				acc = elems[0]
				body = elems[1:]
			}
		case 2:
			acc = args[0]
			body = elems
		default:
			return nil, NewArgumentCountRangeError("reduce", 1, 2, len(args))
		}
		p, err := asProc("reduce", args[len(args)-1])
		if err != nil {
			return nil, err
		}
		for _, e := range body {
			acc, err = p.Call([]Object{acc, e})
			if err != nil {
				return nil, err
			}
		}
		return acc, nil
	}, "reduce", "inject")

	t.DefineAliases(func(self0 Object, args []Object) (Object, error) {
		if len(args) != 1 {
			return nil, argErr("find", args, 1)
		}
		p, err := asProc("find", args[0])
		if err != nil {
			return nil, err
		}
		for _, e := range self(self0).elems {
			v, err := p.Call([]Object{e})
			if err != nil {
				return nil, err
			}
			if v.IsTrue() {
				return e, nil
			}
		}
		return Nil, nil
	}, "find", "detect")

	t.Define("all?", func(self0 Object, args []Object) (Object, error) {
		p, hasBlock, err := optionalProc("all?", args)
		if err != nil {
			return nil, err
		}
		for _, e := range self(self0).elems {
			truthy := e.IsTrue()
			if hasBlock {
				v, err := p.Call([]Object{e})
				if err != nil {
					return nil, err
				}
				truthy = v.IsTrue()
			}
			if !truthy {
				return Bool(false), nil
			}
		}
		return Bool(true), nil
	})

	t.Define("any?", func(self0 Object, args []Object) (Object, error) {
		p, hasBlock, err := optionalProc("any?", args)
		if err != nil {
			return nil, err
		}
		for _, e := range self(self0).elems {
			truthy := e.IsTrue()
			if hasBlock {
				v, err := p.Call([]Object{e})
				if err != nil {
					return nil, err
				}
				truthy = v.IsTrue()
			}
			if truthy {
				return Bool(true), nil
			}
		}
		return Bool(false), nil
	})

	t.Define("none?", func(self0 Object, args []Object) (Object, error) {
		p, hasBlock, err := optionalProc("none?", args)
		if err != nil {
			return nil, err
		}
		for _, e := range self(self0).elems {
			truthy := e.IsTrue()
			if hasBlock {
				v, err := p.Call([]Object{e})
				if err != nil {
					return nil, err
				}
				truthy = v.IsTrue()
			}
			if truthy {
				return Bool(false), nil
			}
		}
		return Bool(true), nil
	})

	t.Define("sort", func(self0 Object, args []Object) (Object, error) {
		a := self(self0)
		out := append([]Object{}, a.elems...)
		var sortErr error
		sort.SliceStable(out, func(i, j int) bool {
			if sortErr != nil {
				return false
			}
			c, err := out[i].Cmp(out[j])
			if err != nil {
				sortErr = err
				return false
			}
			return c < 0
		})
		if sortErr != nil {
			return nil, sortErr
		}
		return NewArray(out), nil
	})

	t.Define("sort_by", func(self0 Object, args []Object) (Object, error) {
		if len(args) != 1 {
			return nil, argErr("sort_by", args, 1)
		}
		p, err := asProc("sort_by", args[0])
		if err != nil {
			return nil, err
		}
		a := self(self0)
		keys := make([]Object, len(a.elems))
		for i, e := range a.elems {
			k, err := p.Call([]Object{e})
			if err != nil {
				return nil, err
			}
			keys[i] = k
		}
		idx := make([]int, len(a.elems))
		for i := range idx {
			idx[i] = i
		}
		var sortErr error
		sort.SliceStable(idx, func(i, j int) bool {
			if sortErr != nil {
				return false
			}
			c, err := keys[idx[i]].Cmp(keys[idx[j]])
			if err != nil {
				sortErr = err
				return false
			}
			return c < 0
		})
		if sortErr != nil {
			return nil, sortErr
		}
		out := make([]Object, len(a.elems))
		for i, j := range idx {
			out[i] = a.elems[j]
		}
		return NewArray(out), nil
	})

	t.Define("uniq", func(self0 Object, args []Object) (Object, error) {
		var out []Object
		for _, e := range self(self0).elems {
			dup := false
			for _, seen := range out {
				if seen.Eq(e) {
					dup = true
					break
				}
			}
			if !dup {
				out = append(out, e)
			}
		}
		return NewArray(out), nil
	})

	t.Define("reverse", func(self0 Object, args []Object) (Object, error) {
		a := self(self0)
		out := make([]Object, len(a.elems))
		for i, e := range a.elems {
			out[len(out)-1-i] = e
		}
		return NewArray(out), nil
	})

	t.Define("compact", func(self0 Object, args []Object) (Object, error) {
		var out []Object
		for _, e := range self(self0).elems {
			if _, isNil := e.(NilObject); !isNil {
				out = append(out, e)
			}
		}
		return NewArray(out), nil
	})

	t.Define("flatten", func(self0 Object, args []Object) (Object, error) {
		if len(args) > 1 {
			return nil, argErr("flatten", args, 1)
		}
		level := -1
		if len(args) == 1 {
			n, err := argInt(args[0])
			if err != nil {
				return nil, err
			}
			level = n
		}
		return NewArray(flattenElems(self(self0).elems, level)), nil
	})

	t.Define("join", func(self0 Object, args []Object) (Object, error) {
		sep := ""
		if len(args) == 1 {
			raw, ok := asRawString(args[0])
			if !ok {
				return nil, NewArgumentTypeError("join separator must be a String, got %s", args[0].Type())
			}
			sep = raw
		}
		s := ""
		for i, e := range self(self0).elems {
			if i > 0 {
				s += sep
			}
			s += e.ToString()
		}
		return NewString(s), nil
	})

	t.Define("index", func(self0 Object, args []Object) (Object, error) {
		if len(args) != 1 {
			return nil, argErr("index", args, 1)
		}
		for i, e := range self(self0).elems {
			if e.Eq(args[0]) {
				return NewNumber(float64(i)), nil
			}
		}
		return Nil, nil
	})

	t.Define("min", func(self0 Object, args []Object) (Object, error) {
		elems := self(self0).elems
		if len(elems) == 0 {
			return Nil, nil
		}
		best := elems[0]
		for _, e := range elems[1:] {
			c, err := e.Cmp(best)
			if err != nil {
				return nil, err
			}
			if c < 0 {
				best = e
			}
		}
		return best, nil
	})

	t.Define("max", func(self0 Object, args []Object) (Object, error) {
		elems := self(self0).elems
		if len(elems) == 0 {
			return Nil, nil
		}
		best := elems[0]
		for _, e := range elems[1:] {
			c, err := e.Cmp(best)
			if err != nil {
				return nil, err
			}
			if c > 0 {
				best = e
			}
		}
		return best, nil
	})

	t.Define("sum", func(self0 Object, args []Object) (Object, error) {
		total := 0.0
		for _, e := range self(self0).elems {
			n, ok := e.(*Number)
			if !ok {
				return nil, NewArgumentTypeError("sum expects Numbers, got %s", e.Type())
			}
			total += n.v
		}
		return NewNumber(total), nil
	})

	t.DefineAliases(func(self0 Object, args []Object) (Object, error) {
		return NewArray(append([]Object{}, self(self0).elems...)), nil
	}, "to_a", "dup", "clone")

	t.Define("+", func(self0 Object, args []Object) (Object, error) {
		if len(args) != 1 {
			return nil, argErr("+", args, 1)
		}
		other, ok := args[0].(*Array)
		if !ok {
			return nil, NewUnsupportedOperandError("+", self0, args[0])
		}
		out := append([]Object{}, self(self0).elems...)
		out = append(out, other.elems...)
		return NewArray(out), nil
	})

	return t
}

// flattenElems recurses into nested Array elements up to depth levels
// (depth < 0 means unlimited), leaving non-Array elements untouched.
// Shared by Array#flatten and Hash#flatten.
func flattenElems(elems []Object, depth int) []Object {
	var out []Object
	var walk func([]Object, int)
	walk = func(elems []Object, depth int) {
		for _, e := range elems {
			if sub, ok := e.(*Array); ok && depth != 0 {
				walk(sub.elems, depth-1)
			} else {
				out = append(out, e)
			}
		}
	}
	walk(elems, depth)
	return out
}

func argInt(o Object) (int, error) {
	n, ok := o.(*Number)
	if !ok {
		return 0, NewArgumentTypeError("expected a Number, got %s", o.Type())
	}
	i, err := n.AsExactInt()
	if err != nil {
		return 0, err
	}
	return int(i), nil
}

func optionalProc(method string, args []Object) (*Proc, bool, error) {
	if len(args) == 0 {
		return nil, false, nil
	}
	if len(args) != 1 {
		return nil, false, argErr(method, args, 1)
	}
	p, err := asProc(method, args[0])
	if err != nil {
		return nil, false, err
	}
	return p, true, nil
}

func (a *Array) MethodTable() *MethodTable { return arrayMethods }
