package object

// Hash is an insertion-ordered map keyed by arbitrary Objects. Keys are
// compared with Eq/Hash like any other Object; insertion order is
// preserved for iteration and inspection, matching the host language's
// Hash semantics.
type Hash struct {
	Base
	keys   []Object
	values map[uint64][]hashEntry
}

type hashEntry struct {
	key   Object
	value Object
}

// NewHash constructs an empty Hash.
func NewHash() *Hash {
	return &Hash{values: make(map[uint64][]hashEntry)}
}

func (h *Hash) find(key Object) (int, bool) {
	bucket := h.values[key.Hash()]
	for i, e := range bucket {
		if e.key.Eq(key) {
			return i, true
		}
	}
	return -1, false
}

// Get returns the value for key and whether it was present.
func (h *Hash) Get(key Object) (Object, bool) {
	if i, ok := h.find(key); ok {
		return h.values[key.Hash()][i].value, true
	}
	return nil, false
}

// Set inserts or overwrites key's value, preserving first-insertion order.
func (h *Hash) Set(key, value Object) {
	hv := key.Hash()
	if i, ok := h.find(key); ok {
		h.values[hv][i].value = value
		return
	}
	h.values[hv] = append(h.values[hv], hashEntry{key: key, value: value})
	h.keys = append(h.keys, key)
}

// Delete removes key if present, returning its value.
func (h *Hash) Delete(key Object) (Object, bool) {
	hv := key.Hash()
	bucket := h.values[hv]
	for i, e := range bucket {
		if e.key.Eq(key) {
			h.values[hv] = append(bucket[:i], bucket[i+1:]...)
			for j, k := range h.keys {
				if k.Eq(key) {
					h.keys = append(h.keys[:j], h.keys[j+1:]...)
					break
				}
			}
			return e.value, true
		}
	}
	return nil, false
}

// Keys returns keys in insertion order.
func (h *Hash) Keys() []Object { return h.keys }

func (h *Hash) Type() string { return "Hash" }

func (h *Hash) ToString() string { return h.Inspect() }

func (h *Hash) Inspect() string {
	s := "{"
	for i, k := range h.keys {
		if i > 0 {
			s += ", "
		}
		v, _ := h.Get(k)
		s += k.Inspect() + " => " + v.Inspect()
	}
	return s + "}"
}

func (h *Hash) IsTrue() bool { return true }

func (h *Hash) Eq(other Object) bool {
	o, ok := other.(*Hash)
	if !ok || len(o.keys) != len(h.keys) {
		return false
	}
	for _, k := range h.keys {
		v, ok := h.Get(k)
		ov, ook := o.Get(k)
		if !ook || !ok || !v.Eq(ov) {
			return false
		}
	}
	return true
}

func (h *Hash) Cmp(other Object) (int, error) {
	return 0, NewUnorderableTypesError(h, other)
}

func (h *Hash) Hash() uint64 {
	var acc uint64
	for _, k := range h.keys {
		v, _ := h.Get(k)
		acc ^= k.Hash()*1099511628211 + v.Hash()
	}
	return acc
}

func (h *Hash) ElRef(args []Object) (Object, error) {
	if len(args) != 1 {
		return nil, NewArgumentCountError("[]", 1, len(args))
	}
	if v, ok := h.Get(args[0]); ok {
		return v, nil
	}
	return Nil, nil
}

var hashMethods = buildHashMethods()

func buildHashMethods() *MethodTable {
	t := NewMethodTable(nil)
	self := func(o Object) *Hash { return o.(*Hash) }

	t.Define("[]=", func(self0 Object, args []Object) (Object, error) {
		if len(args) != 2 {
			return nil, NewArgumentCountError("[]=", 2, len(args))
		}
		self(self0).Set(args[0], args[1])
		return args[1], nil
	})

	t.DefineAliases(func(self0 Object, args []Object) (Object, error) {
		if len(args) != 1 {
			return nil, argErr("fetch", args, 1)
		}
		v, ok := self(self0).Get(args[0])
		if !ok {
			return nil, NewKeyError(args[0])
		}
		return v, nil
	}, "fetch")

	t.Define("key?", func(self0 Object, args []Object) (Object, error) {
		if len(args) != 1 {
			return nil, argErr("key?", args, 1)
		}
		_, ok := self(self0).Get(args[0])
		return Bool(ok), nil
	})
	t.DefineAliases(hashMethodKeyPresent, "has_key?", "include?", "member?")

	t.Define("delete", func(self0 Object, args []Object) (Object, error) {
		if len(args) != 1 {
			return nil, argErr("delete", args, 1)
		}
		v, ok := self(self0).Delete(args[0])
		if !ok {
			return Nil, nil
		}
		return v, nil
	})

	t.Define("keys", func(self0 Object, args []Object) (Object, error) {
		return NewArray(append([]Object{}, self(self0).Keys()...)), nil
	})

	t.Define("values", func(self0 Object, args []Object) (Object, error) {
		h := self(self0)
		out := make([]Object, 0, len(h.keys))
		for _, k := range h.keys {
			v, _ := h.Get(k)
			out = append(out, v)
		}
		return NewArray(out), nil
	})

	t.DefineAliases(func(self0 Object, args []Object) (Object, error) {
		return NewNumber(float64(len(self(self0).keys))), nil
	}, "length", "size", "count")

	t.Define("empty?", func(self0 Object, args []Object) (Object, error) {
		return Bool(len(self(self0).keys) == 0), nil
	})

	t.Define("each", func(self0 Object, args []Object) (Object, error) {
		if len(args) != 1 {
			return nil, argErr("each", args, 1)
		}
		p, err := asProc("each", args[0])
		if err != nil {
			return nil, err
		}
		h := self(self0)
		for _, k := range h.keys {
			v, _ := h.Get(k)
			if _, err := p.Call([]Object{k, v}); err != nil {
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
		h := self(self0)
		out := make([]Object, 0, len(h.keys))
		for _, k := range h.keys {
			v, _ := h.Get(k)
			r, err := p.Call([]Object{k, v})
			if err != nil {
				return nil, err
			}
			out = append(out, r)
		}
		return NewArray(out), nil
	})

	t.Define("merge", func(self0 Object, args []Object) (Object, error) {
		if len(args) != 1 {
			return nil, argErr("merge", args, 1)
		}
		other, ok := args[0].(*Hash)
		if !ok {
			return nil, NewArgumentTypeError("merge expects a Hash, got %s", args[0].Type())
		}
		out := NewHash()
		h := self(self0)
		for _, k := range h.keys {
			v, _ := h.Get(k)
			out.Set(k, v)
		}
		for _, k := range other.keys {
			v, _ := other.Get(k)
			out.Set(k, v)
		}
		return out, nil
	})

	t.Define("to_h", func(self0 Object, args []Object) (Object, error) { return self0, nil })

	t.Define("to_a", func(self0 Object, args []Object) (Object, error) {
		h := self(self0)
		out := make([]Object, 0, len(h.keys))
		for _, k := range h.keys {
			v, _ := h.Get(k)
			out = append(out, NewArray([]Object{k, v}))
		}
		return NewArray(out), nil
	})

	t.DefineAliases(func(self0 Object, args []Object) (Object, error) {
		if len(args) != 1 {
			return nil, argErr("has_value?", args, 1)
		}
		h := self(self0)
		for _, k := range h.keys {
			v, _ := h.Get(k)
			if v.Eq(args[0]) {
				return Bool(true), nil
			}
		}
		return Bool(false), nil
	}, "has_value?", "value?")

	t.Define("key", func(self0 Object, args []Object) (Object, error) {
		if len(args) != 1 {
			return nil, argErr("key", args, 1)
		}
		h := self(self0)
		for _, k := range h.keys {
			v, _ := h.Get(k)
			if v.Eq(args[0]) {
				return k, nil
			}
		}
		return Nil, nil
	})

	t.Define("invert", func(self0 Object, args []Object) (Object, error) {
		h := self(self0)
		out := NewHash()
		for _, k := range h.keys {
			v, _ := h.Get(k)
			out.Set(v, k)
		}
		return out, nil
	})

	t.Define("flatten", func(self0 Object, args []Object) (Object, error) {
		if len(args) > 1 {
			return nil, argErr("flatten", args, 1)
		}
		level := 0
		if len(args) == 1 {
			n, err := argInt(args[0])
			if err != nil {
				return nil, err
			}
			level = n
		}
		h := self(self0)
		out := make([]Object, 0, len(h.keys)*2)
		for _, k := range h.keys {
			v, _ := h.Get(k)
			out = append(out, k, v)
		}
		if level > 1 {
			out = flattenElems(out, level-1)
		}
		return NewArray(out), nil
	})

	return t
}

func hashMethodKeyPresent(self0 Object, args []Object) (Object, error) {
	if len(args) != 1 {
		return nil, argErr("key?", args, 1)
	}
	_, ok := self0.(*Hash).Get(args[0])
	return Bool(ok), nil
}

func (h *Hash) MethodTable() *MethodTable { return hashMethods }
