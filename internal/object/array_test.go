package object

import "testing"

func strs(vals ...string) []Object {
	out := make([]Object, len(vals))
	for i, v := range vals {
		out[i] = NewString(v)
	}
	return out
}

func nums(vals ...float64) []Object {
	out := make([]Object, len(vals))
	for i, v := range vals {
		out[i] = NewNumber(v)
	}
	return out
}

func TestArray_SizeEmpty(t *testing.T) {
	tests := []struct {
		name string
		elems []Object
		size string
		empty string
	}{
		{"empty", nil, "0", "true"},
		{"three", nums(1, 2, 3), "3", "false"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewArray(tt.elems)
			if got := mustCall(t, a, "size").Inspect(); got != tt.size {
				t.Errorf("size = %s, want %s", got, tt.size)
			}
			if got := mustCall(t, a, "empty?").Inspect(); got != tt.empty {
				t.Errorf("empty? = %s, want %s", got, tt.empty)
			}
		})
	}
}

func TestArray_PushIndexElRef(t *testing.T) {
	a := NewArray(nums(1, 2))
	mustCall(t, a, "push", NewNumber(3))
	if a.Inspect() != "[1, 2, 3]" {
		t.Fatalf("after push = %s", a.Inspect())
	}
	got, err := a.ElRef([]Object{NewNumber(1)})
	if err != nil || got.Inspect() != "2" {
		t.Errorf("ElRef(1) = %v, %v", got, err)
	}
	got, _ = a.ElRef([]Object{NewNumber(-1)})
	if got.Inspect() != "3" {
		t.Errorf("ElRef(-1) = %s, want 3", got.Inspect())
	}
}

func TestArray_FirstLast(t *testing.T) {
	a := NewArray(nums(1, 2, 3))
	if got := mustCall(t, a, "first").Inspect(); got != "1" {
		t.Errorf("first = %s", got)
	}
	if got := mustCall(t, a, "last").Inspect(); got != "3" {
		t.Errorf("last = %s", got)
	}
	if got := mustCall(t, a, "first", NewNumber(2)).Inspect(); got != "[1, 2]" {
		t.Errorf("first(2) = %s", got)
	}
	empty := NewArray(nil)
	if got := mustCall(t, empty, "first"); got != Nil {
		t.Errorf("first on empty = %s, want nil", got.Inspect())
	}
}

func TestArray_IncludeIndex(t *testing.T) {
	a := NewArray(strs("a", "b", "c"))
	if v := mustCall(t, a, "include?", NewString("b")); !v.IsTrue() {
		t.Error("include? b should be true")
	}
	if v := mustCall(t, a, "include?", NewString("z")); v.IsTrue() {
		t.Error("include? z should be false")
	}
	if got := mustCall(t, a, "index", NewString("c")).Inspect(); got != "2" {
		t.Errorf("index c = %s, want 2", got)
	}
}

func TestArray_Sort(t *testing.T) {
	a := NewArray(nums(3, 1, 2))
	got := mustCall(t, a, "sort")
	if got.Inspect() != "[1, 2, 3]" {
		t.Errorf("sort = %s", got.Inspect())
	}
	// original is untouched
	if a.Inspect() != "[3, 1, 2]" {
		t.Errorf("sort mutated receiver: %s", a.Inspect())
	}
}

func TestArray_Uniq(t *testing.T) {
	a := NewArray(nums(1, 2, 2, 3, 1))
	got := mustCall(t, a, "uniq")
	if got.Inspect() != "[1, 2, 3]" {
		t.Errorf("uniq = %s", got.Inspect())
	}
}

func TestArray_Join(t *testing.T) {
	a := NewArray(strs("a", "b", "c"))
	got := mustCall(t, a, "join", NewString("-"))
	if raw, _ := asRawString(got); raw != "a-b-c" {
		t.Errorf("join = %q", raw)
	}
	got = mustCall(t, a, "join")
	if raw, _ := asRawString(got); raw != "abc" {
		t.Errorf("join with no sep = %q", raw)
	}
}

func TestArray_Reverse(t *testing.T) {
	a := NewArray(nums(1, 2, 3))
	got := mustCall(t, a, "reverse")
	if got.Inspect() != "[3, 2, 1]" {
		t.Errorf("reverse = %s", got.Inspect())
	}
	back := mustCall(t, got, "reverse")
	if !back.Eq(a) {
		t.Errorf("reverse().reverse() = %s, want %s", back.Inspect(), a.Inspect())
	}
}

func TestArray_ToA(t *testing.T) {
	a := NewArray(nums(1, 2))
	got := mustCall(t, a, "to_a")
	if got == Object(a) {
		t.Error("to_a should return a copy, not the same object")
	}
	if !got.Eq(a) {
		t.Errorf("to_a = %s, want equal to %s", got.Inspect(), a.Inspect())
	}
}

func TestArray_Flatten(t *testing.T) {
	nested := func() *Array {
		return NewArray([]Object{
			NewNumber(1),
			NewArray([]Object{NewNumber(2), NewArray([]Object{NewNumber(3), NewNumber(4)})}),
			NewNumber(5),
		})
	}

	tests := []struct {
		name string
		args []Object
		want string
	}{
		{"no_args_fully_recursive", nil, "[1, 2, 3, 4, 5]"},
		{"level_0_is_noop", []Object{NewNumber(0)}, "[1, [2, [3, 4]], 5]"},
		{"level_1_one_deep", []Object{NewNumber(1)}, "[1, 2, [3, 4], 5]"},
		{"level_2_fully_flat", []Object{NewNumber(2)}, "[1, 2, 3, 4, 5]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mustCall(t, nested(), "flatten", tt.args...)
			if got.Inspect() != tt.want {
				t.Errorf("flatten(%v) = %s, want %s", tt.args, got.Inspect(), tt.want)
			}
		})
	}

	if _, err := call(t, NewArray(nil), "flatten", NewNumber(1), NewNumber(2)); err == nil {
		t.Error("flatten with too many args should error")
	}
}

func TestArray_MapSelectReject(t *testing.T) {
	a := NewArray(nums(1, 2, 3, 4))
	double := NewProc(1, false, func(args []Object) (Object, error) {
		n := args[0].(*Number)
		return NewNumber(n.v * 2), nil
	})
	got := mustCall(t, a, "map", double)
	if got.Inspect() != "[2, 4, 6, 8]" {
		t.Errorf("map = %s", got.Inspect())
	}

	isEven := NewProc(1, false, func(args []Object) (Object, error) {
		n := args[0].(*Number)
		return Bool(int64(n.v)%2 == 0), nil
	})
	got = mustCall(t, a, "select", isEven)
	if got.Inspect() != "[2, 4]" {
		t.Errorf("select = %s", got.Inspect())
	}
	got = mustCall(t, a, "reject", isEven)
	if got.Inspect() != "[1, 3]" {
		t.Errorf("reject = %s", got.Inspect())
	}
}
