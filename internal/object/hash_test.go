package object

import "testing"

func buildHash(pairs ...Object) *Hash {
	h := NewHash()
	for i := 0; i+1 < len(pairs); i += 2 {
		h.Set(pairs[i], pairs[i+1])
	}
	return h
}

func TestHash_SizeEmptyKeyPresence(t *testing.T) {
	h := buildHash(NewString("a"), NewNumber(1), NewString("b"), NewNumber(2))
	if got := mustCall(t, h, "size").Inspect(); got != "2" {
		t.Errorf("size = %s", got)
	}
	if v := mustCall(t, h, "empty?"); v.IsTrue() {
		t.Error("empty? should be false")
	}
	if v := mustCall(t, NewHash(), "empty?"); !v.IsTrue() {
		t.Error("empty? on empty hash should be true")
	}
	for _, alias := range []string{"has_key?", "include?", "member?", "key?"} {
		if v := mustCall(t, h, alias, NewString("a")); !v.IsTrue() {
			t.Errorf("%s(a) should be true", alias)
		}
		if v := mustCall(t, h, alias, NewString("z")); v.IsTrue() {
			t.Errorf("%s(z) should be false", alias)
		}
	}
}

func TestHash_FetchMissing(t *testing.T) {
	h := buildHash(NewString("a"), NewNumber(1))
	got := mustCall(t, h, "fetch", NewString("a"))
	if got.Inspect() != "1" {
		t.Errorf("fetch(a) = %s", got.Inspect())
	}
	if _, err := call(t, h, "fetch", NewString("missing")); err == nil {
		t.Error("fetch(missing) should error")
	}
}

func TestHash_HasValueKeyInvert(t *testing.T) {
	h := buildHash(NewString("a"), NewNumber(1), NewString("b"), NewNumber(2))
	for _, alias := range []string{"has_value?", "value?"} {
		if v := mustCall(t, h, alias, NewNumber(2)); !v.IsTrue() {
			t.Errorf("%s(2) should be true", alias)
		}
	}
	got := mustCall(t, h, "key", NewNumber(2))
	if raw, _ := asRawString(got); raw != "b" {
		t.Errorf("key(2) = %s, want b", got.Inspect())
	}

	inv := mustCall(t, h, "invert")
	invHash := inv.(*Hash)
	v, ok := invHash.Get(NewNumber(1))
	if !ok || !v.Eq(NewString("a")) {
		t.Errorf("invert()[1] = %v, want a", v)
	}

	back := mustCall(t, inv, "invert")
	if !back.Eq(h) {
		t.Errorf("invert().invert() = %s, want %s", back.Inspect(), h.Inspect())
	}
}

func TestHash_KeysValuesToA(t *testing.T) {
	h := buildHash(NewString("a"), NewNumber(1), NewString("b"), NewNumber(2))
	keys := mustCall(t, h, "keys")
	if keys.Inspect() != `["a", "b"]` {
		t.Errorf("keys = %s", keys.Inspect())
	}
	values := mustCall(t, h, "values")
	if values.Inspect() != "[1, 2]" {
		t.Errorf("values = %s", values.Inspect())
	}
	toA := mustCall(t, h, "to_a")
	if toA.Inspect() != `[["a", 1], ["b", 2]]` {
		t.Errorf("to_a = %s", toA.Inspect())
	}
	if toH := mustCall(t, h, "to_h"); toH != Object(h) {
		t.Error("to_h should return self")
	}
}

func TestHash_Merge(t *testing.T) {
	a := buildHash(NewString("x"), NewNumber(1))
	b := buildHash(NewString("x"), NewNumber(9), NewString("y"), NewNumber(2))
	got := mustCall(t, a, "merge", b)
	merged := got.(*Hash)
	v, _ := merged.Get(NewString("x"))
	if v.Inspect() != "9" {
		t.Errorf("merge should let the argument win on conflicts, got x=%s", v.Inspect())
	}
	v, _ = merged.Get(NewString("y"))
	if v.Inspect() != "2" {
		t.Errorf("merge should bring in new keys, got y=%s", v.Inspect())
	}
	// original is untouched
	if _, ok := a.Get(NewString("y")); ok {
		t.Error("merge mutated the receiver")
	}
}

func TestHash_Flatten(t *testing.T) {
	nestedArr := func() *Hash {
		return buildHash(
			NewString("a"), NewNumber(1),
			NewString("b"), NewArray([]Object{NewNumber(2), NewNumber(3)}),
		)
	}

	tests := []struct {
		name string
		args []Object
		want string
	}{
		{"default_level_0_just_pairs", nil, `["a", 1, "b", [2, 3]]`},
		{"level_1_same_as_default", []Object{NewNumber(1)}, `["a", 1, "b", [2, 3]]`},
		{"level_2_recurses_into_nested_array", []Object{NewNumber(2)}, `["a", 1, "b", 2, 3]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustCall(t, nestedArr(), "flatten", tt.args...)
			if got.Inspect() != tt.want {
				t.Errorf("flatten(%v) = %s, want %s", tt.args, got.Inspect(), tt.want)
			}
		})
	}

	if _, err := call(t, NewHash(), "flatten", NewNumber(1), NewNumber(2)); err == nil {
		t.Error("flatten with too many args should error")
	}

	// A hash nested inside another hash's value is not itself recursed into;
	// only nested Arrays are walked, matching the array-delegated C++ semantics.
	withNestedHash := buildHash(NewString("a"), buildHash(NewString("b"), NewNumber(1)))
	got := mustCall(t, withNestedHash, "flatten", NewNumber(5))
	inner := got.(*Array).elems[1]
	if _, ok := inner.(*Hash); !ok {
		t.Errorf("flatten should not recurse into nested Hash values, got %T", inner)
	}
}
