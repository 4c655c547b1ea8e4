package render

import (
	"testing"

	"github.com/oxhq/veneer/internal/object"
	"github.com/oxhq/veneer/internal/parser"
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

func exprNode(t *testing.T, src string) Expr {
	t.Helper()
	node, err := parser.Parse(src, nil, nil)
	if err != nil {
		t.Fatalf("parse(%q): %v", src, err)
	}
	return Expr{Node: node}
}

func TestRender_LiteralAndEscapedExpr(t *testing.T) {
	sc := scope.New(testSelf{attrs: map[string]object.Object{
		"name": object.NewString("<b>Ann</b>"),
	}})
	tmpl := Template{
		Literal{Text: "Hello, "},
		exprNode(t, "@name"),
		Literal{Text: "!"},
	}
	got, err := Render(tmpl, sc)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := "Hello, &lt;b&gt;Ann&lt;/b&gt;!"
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRender_HtmlSafeStringPassesThroughVerbatim(t *testing.T) {
	sc := scope.New(testSelf{attrs: map[string]object.Object{
		"markup": object.NewHtmlSafeString("<b>Ann</b>"),
	}})
	tmpl := Template{exprNode(t, "@markup")}
	got, err := Render(tmpl, sc)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got != "<b>Ann</b>" {
		t.Errorf("Render() = %q, want verbatim markup", got)
	}
}

func TestRender_NilRendersEmpty(t *testing.T) {
	sc := scope.New(testSelf{attrs: map[string]object.Object{}})
	tmpl := Template{Literal{Text: "x"}, exprNode(t, "@missing"), Literal{Text: "y"}}
	got, err := Render(tmpl, sc)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got != "xy" {
		t.Errorf("Render() = %q, want %q", got, "xy")
	}
}

func TestRender_EvaluatorErrorAbortsWithoutPartialOutput(t *testing.T) {
	sc := scope.New(testSelf{attrs: map[string]object.Object{}})
	tmpl := Template{Literal{Text: "x"}, exprNode(t, "undefined_call()")}
	got, err := Render(tmpl, sc)
	if err == nil {
		t.Fatalf("expected error, got result %q", got)
	}
	if got != "" {
		t.Errorf("expected empty output on error, got %q", got)
	}
}
