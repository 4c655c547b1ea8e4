package globals

import (
	"testing"

	"github.com/oxhq/veneer/internal/object"
	"github.com/oxhq/veneer/internal/symbol"
)

func TestRaw_MarksHtmlSafe(t *testing.T) {
	v, err := raw(object.Nil, []object.Object{object.NewString("<b>x</b>")})
	if err != nil {
		t.Fatalf("raw: %v", err)
	}
	if !object.IsHtmlSafe(v) {
		t.Errorf("raw() result is not HTML-safe: %#v", v)
	}
	if v.ToString() != "<b>x</b>" {
		t.Errorf("raw() = %q, want verbatim markup", v.ToString())
	}
}

func TestEscapeHTML_EscapesAndMarksSafe(t *testing.T) {
	v, err := escapeHTML(object.Nil, []object.Object{object.NewString("<b>x</b>")})
	if err != nil {
		t.Fatalf("escape_html: %v", err)
	}
	if v.ToString() != "&lt;b&gt;x&lt;/b&gt;" {
		t.Errorf("escape_html() = %q", v.ToString())
	}
	if !object.IsHtmlSafe(v) {
		t.Errorf("escape_html() result should be marked safe to avoid double-escaping")
	}
}

func TestCapture_WrapsBlockResultAsHtmlSafe(t *testing.T) {
	block := object.NewProc(0, false, func(args []object.Object) (object.Object, error) {
		return object.NewString("<i>hi</i>"), nil
	})
	v, err := capture(object.Nil, []object.Object{block})
	if err != nil {
		t.Fatalf("capture: %v", err)
	}
	if !object.IsHtmlSafe(v) || v.ToString() != "<i>hi</i>" {
		t.Errorf("capture() = %#v", v)
	}
}

func TestContentTag_WithTextAndAttrs(t *testing.T) {
	attrs := object.NewHash()
	attrs.Set(object.NewString("class"), object.NewString("a&b"))
	v, err := contentTag(object.Nil, []object.Object{
		object.NewSymbol(symbol.Intern("div")), object.NewString("hi"), attrs,
	})
	if err != nil {
		t.Fatalf("content_tag: %v", err)
	}
	want := `<div class="a&amp;b">hi</div>`
	if v.ToString() != want {
		t.Errorf("content_tag() = %q, want %q", v.ToString(), want)
	}
}

func TestContentTag_WithBlock(t *testing.T) {
	block := object.NewProc(0, false, func(args []object.Object) (object.Object, error) {
		return object.NewString("inner"), nil
	})
	v, err := contentTag(object.Nil, []object.Object{object.NewSymbol(symbol.Intern("span")), block})
	if err != nil {
		t.Fatalf("content_tag: %v", err)
	}
	if v.ToString() != "<span>inner</span>" {
		t.Errorf("content_tag() = %q", v.ToString())
	}
}

func TestCycle_RoundRobinsPerValueSet(t *testing.T) {
	r := NewRegistry()
	a, b := object.NewString("odd"), object.NewString("even")
	vals := []object.Object{a, b}
	first, err := r.cycle(object.Nil, vals)
	if err != nil {
		t.Fatalf("cycle: %v", err)
	}
	second, _ := r.cycle(object.Nil, vals)
	third, _ := r.cycle(object.Nil, vals)
	if first != a || second != b || third != a {
		t.Errorf("cycle sequence = %v, %v, %v; want odd, even, odd", first, second, third)
	}
}

func TestDefaultRegistry_ResolvesAllNames(t *testing.T) {
	r := NewDefaultRegistry()
	for _, name := range []string{"capture", "raw", "escape_html", "content_tag", "cycle"} {
		if _, ok := r.LookupGlobal(symbol.Intern(name)); !ok {
			t.Errorf("default registry missing %q", name)
		}
	}
}
