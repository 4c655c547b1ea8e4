package hostvm

import (
	"testing"

	"github.com/oxhq/veneer/internal/eval"
	"github.com/oxhq/veneer/internal/object"
	"github.com/oxhq/veneer/internal/parser"
	"github.com/oxhq/veneer/internal/scope"
	"github.com/oxhq/veneer/internal/symbol"
)

func evalSrc(t *testing.T, src string, vm object.ViewModel) object.Object {
	t.Helper()
	node, err := parser.Parse(src, nil, map[symbol.Symbol]bool{symbol.Intern("raw"): true})
	if err != nil {
		t.Fatalf("parse(%q): %v", src, err)
	}
	got, err := eval.Eval(node, scope.New(vm))
	if err != nil {
		t.Fatalf("eval(%q): %v", src, err)
	}
	return got
}

func TestMapViewModel_AttrLookupAndMissingIsNil(t *testing.T) {
	vm := NewMapViewModel(map[symbol.Symbol]object.Object{
		symbol.Intern("title"): object.NewString("Hello"),
	}, nil)
	if got := evalSrc(t, "@title", vm); got.ToString() != "Hello" {
		t.Errorf("@title = %q", got.ToString())
	}
	if got := evalSrc(t, "@missing", vm); got != object.Nil {
		t.Errorf("@missing = %#v, want Nil", got)
	}
}

func TestMapViewModel_GlobalFunctionDispatch(t *testing.T) {
	vm := NewMapViewModel(nil, nil)
	got := evalSrc(t, `raw("<b>x</b>")`, vm)
	if !object.IsHtmlSafe(got) || got.ToString() != "<b>x</b>" {
		t.Errorf("raw(...) = %#v", got)
	}
}

type widget struct {
	Name string
	Qty  int
}

func (w widget) Label() string { return w.Name }

func TestStructViewModel_FieldAndMethodExposure(t *testing.T) {
	vm, err := NewStructViewModel(widget{Name: "bolt", Qty: 5}, nil)
	if err != nil {
		t.Fatalf("NewStructViewModel: %v", err)
	}
	if got := evalSrc(t, "@Name", vm); got.ToString() != "bolt" {
		t.Errorf("@Name = %q", got.ToString())
	}
	if got := evalSrc(t, "@Qty", vm); got.ToString() != "5" {
		t.Errorf("@Qty = %q", got.ToString())
	}
	if got := evalSrc(t, "label", vm); got.ToString() != "bolt" {
		t.Errorf("label() = %q", got.ToString())
	}
}

func TestStructViewModel_RejectsNonStruct(t *testing.T) {
	if _, err := NewStructViewModel(42, nil); err == nil {
		t.Fatal("expected an error wrapping a non-struct value")
	}
}
