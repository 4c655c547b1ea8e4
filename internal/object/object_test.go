package object

import (
	"testing"

	"github.com/oxhq/veneer/internal/symbol"
)

func TestSingletons_NilAndBooleans(t *testing.T) {
	if Nil != Nil {
		t.Error("Nil is not its own identity")
	}
	if Bool(true) != Bool(true) {
		t.Error("Bool(true) should return the same singleton instance every call")
	}
	if Bool(false) != Bool(false) {
		t.Error("Bool(false) should return the same singleton instance every call")
	}
	if Bool(true) == Bool(false) {
		t.Error("Bool(true) and Bool(false) must be distinct instances")
	}
	if !Bool(true).IsTrue() || Bool(false).IsTrue() {
		t.Error("Bool truthiness mismatched")
	}
	if Nil.IsTrue() {
		t.Error("Nil must be falsy")
	}
}

// eqHashConsistent is spec.md §8's universal invariant: a.Eq(b) implies
// a.Hash() == b.Hash().
func eqHashConsistent(t *testing.T, a, b Object) {
	t.Helper()
	if a.Eq(b) && a.Hash() != b.Hash() {
		t.Errorf("%s.Eq(%s) is true but hashes differ: %d != %d", a.Inspect(), b.Inspect(), a.Hash(), b.Hash())
	}
}

func TestEqHashConsistency(t *testing.T) {
	pairs := [][2]Object{
		{NewString("abc"), NewString("abc")},
		{NewNumber(1), NewNumber(1)},
		{NewNumber(1.5), NewNumber(1.5)},
		{Bool(true), Bool(true)},
		{Nil, Nil},
		{NewArray(nums(1, 2)), NewArray(nums(1, 2))},
		{buildHash(NewString("a"), NewNumber(1)), buildHash(NewString("a"), NewNumber(1))},
		{NewSymbol(symbol.Intern("foo")), NewSymbol(symbol.Intern("foo"))},
		{NewRange(NewNumber(1), NewNumber(3), false), NewRange(NewNumber(1), NewNumber(3), false)},
	}
	for _, p := range pairs {
		eqHashConsistent(t, p[0], p[1])
	}
}

func TestString_EqDoesNotCrossHtmlSafeBoundary(t *testing.T) {
	// A plain String and an HtmlSafeString with identical text compare equal
	// (HtmlSafeString.Eq treats *String specially), but a plain String's own
	// Eq only recognizes other *String values.
	plain := NewString("hi")
	safe := NewHtmlSafeString("hi")
	if !safe.Eq(plain) {
		t.Error("HtmlSafeString.Eq should treat an equal-text plain String as equal")
	}
	if plain.Eq(safe) {
		t.Error("String.Eq should not treat an HtmlSafeString as equal")
	}
}

func TestArray_ReverseIdempotence(t *testing.T) {
	a := NewArray(strs("a", "b", "c", "d"))
	twice := mustCall(t, mustCall(t, a, "reverse"), "reverse")
	if !twice.Eq(a) {
		t.Errorf("reverse().reverse() = %s, want %s", twice.Inspect(), a.Inspect())
	}
}

func TestHash_InvertIdempotenceWithDistinctValues(t *testing.T) {
	h := buildHash(NewString("a"), NewNumber(1), NewString("b"), NewNumber(2))
	twice := mustCall(t, mustCall(t, h, "invert"), "invert")
	if !twice.Eq(h) {
		t.Errorf("invert().invert() = %s, want %s", twice.Inspect(), h.Inspect())
	}
}

func TestString_CenterSizing(t *testing.T) {
	for _, width := range []int{0, 1, 2, 5, 6, 10} {
		s := NewString("hi")
		got := mustCall(t, s, "center", NewNumber(float64(width)))
		raw, _ := asRawString(got)
		runes := len([]rune(raw))
		wantLen := width
		if wantLen < 2 {
			wantLen = 2 // center never truncates below the original length
		}
		if runes != wantLen {
			t.Errorf("center(%d) length = %d, want %d (result %q)", width, runes, wantLen, raw)
		}
	}
}

