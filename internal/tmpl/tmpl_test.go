package tmpl

import (
	"testing"

	"github.com/oxhq/veneer/internal/object"
	"github.com/oxhq/veneer/internal/render"
	"github.com/oxhq/veneer/internal/scope"
	"github.com/oxhq/veneer/internal/symbol"
)

type testSelf struct {
	object.Base
	attrs map[string]object.Object
}

func (s testSelf) Type() string     { return "TestSelf" }
func (s testSelf) ToString() string { return "#<TestSelf>" }
func (s testSelf) Inspect() string  { return "#<TestSelf>" }
func (s testSelf) IsTrue() bool     { return true }
func (s testSelf) Eq(other object.Object) bool {
	_, ok := other.(testSelf)
	return ok
}
func (s testSelf) Cmp(other object.Object) (int, error) {
	return 0, object.NewUnorderableTypesError(s, other)
}
func (s testSelf) Hash() uint64                     { return 0 }
func (s testSelf) MethodTable() *object.MethodTable { return object.NewMethodTable(nil) }
func (s testSelf) GetAttr(name symbol.Symbol) (object.Object, error) {
	if v, ok := s.attrs[name.String()]; ok {
		return v, nil
	}
	return object.Nil, nil
}

func TestParse_LiteralAndExprSplit(t *testing.T) {
	got, err := Parse("Hi #{@name}, bye", nil, nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len(parts) = %d, want 3", len(got))
	}
	if lit, ok := got[0].(render.Literal); !ok || lit.Text != "Hi " {
		t.Errorf("part[0] = %#v, want literal %q", got[0], "Hi ")
	}
	if _, ok := got[1].(render.Expr); !ok {
		t.Errorf("part[1] = %#v, want an Expr", got[1])
	}
	if lit, ok := got[2].(render.Literal); !ok || lit.Text != ", bye" {
		t.Errorf("part[2] = %#v, want literal %q", got[2], ", bye")
	}
}

func TestParse_NestedBracesInMarker(t *testing.T) {
	tmplSrc := `#{ {a: 1, b: 2}.to_a.length }`
	parts, err := Parse(tmplSrc, nil, nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(parts) != 1 {
		t.Fatalf("len(parts) = %d, want 1", len(parts))
	}
	if _, ok := parts[0].(render.Expr); !ok {
		t.Fatalf("expected a single Expr part, got %#v", parts[0])
	}
}

func TestParse_UnterminatedMarkerErrors(t *testing.T) {
	_, err := Parse("hello #{@name", nil, nil)
	if err == nil {
		t.Fatal("expected an error for an unterminated marker")
	}
}

func TestParse_EndToEndRender(t *testing.T) {
	tmplSrc := "Hello, #{@name}! You have #{@count} messages."
	parsed, err := Parse(tmplSrc, nil, nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	sc := scope.New(testSelf{attrs: map[string]object.Object{
		"name":  object.NewString("Ann"),
		"count": object.NewNumber(3),
	}})
	got, err := render.Render(parsed, sc)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := "Hello, Ann! You have 3 messages."
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}
