// Package globals implements the registry of unqualified, non-method
// functions a template can call — `capture`, `raw`, `escape_html`,
// `content_tag`, `cycle` — grounded in the Slim/Ruby template-authoring
// surface the original implementation exposes. A Registry satisfies
// internal/eval's GlobalFuncLookup interface, so a host view model can
// embed one to resolve GlobalFuncCall nodes.
package globals

import (
	"strings"
	"sync"

	"github.com/oxhq/veneer/internal/object"
	"github.com/oxhq/veneer/internal/render"
	"github.com/oxhq/veneer/internal/symbol"
)

// Registry is a name → native-function table, the same shape as
// internal/object's per-type method tables but keyed for top-level
// unqualified calls instead of receiver dispatch.
type Registry struct {
	mu     sync.Mutex
	fns    map[symbol.Symbol]object.NativeFunc
	cycles map[string]int
}

// NewRegistry returns an empty registry. Use NewDefaultRegistry for one
// pre-populated with the standard set of template helpers.
func NewRegistry() *Registry {
	return &Registry{fns: make(map[symbol.Symbol]object.NativeFunc), cycles: make(map[string]int)}
}

// NewDefaultRegistry returns a Registry pre-populated with capture, raw,
// escape_html, content_tag, and cycle.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("capture", capture)
	r.Register("raw", raw)
	r.Register("escape_html", escapeHTML)
	r.Register("content_tag", contentTag)
	r.Register("cycle", r.cycle)
	return r
}

// Register binds name to fn, overwriting any existing binding.
func (r *Registry) Register(name string, fn object.NativeFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fns[symbol.Intern(name)] = fn
}

// LookupGlobal implements eval.GlobalFuncLookup.
func (r *Registry) LookupGlobal(name symbol.Symbol) (object.NativeFunc, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn, ok := r.fns[name]
	return fn, ok
}

// trailingBlock splits a block off the end of args if the last element is
// a *object.Proc, returning the remaining positional args and the block
// (nil if none).
func trailingBlock(args []object.Object) ([]object.Object, *object.Proc) {
	if len(args) == 0 {
		return args, nil
	}
	if p, ok := args[len(args)-1].(*object.Proc); ok {
		return args[:len(args)-1], p
	}
	return args, nil
}

// capture evaluates its block and returns the result marked HTML-safe, so
// a caller can embed already-rendered output without double-escaping it —
// the same role Rails' `capture` helper plays.
func capture(_ object.Object, args []object.Object) (object.Object, error) {
	_, block := trailingBlock(args)
	if block == nil {
		return nil, object.NewInvalidArgument("capture requires a block")
	}
	v, err := block.Call(nil)
	if err != nil {
		return nil, err
	}
	return object.NewHtmlSafeString(v.ToString()), nil
}

// raw marks its single argument's string form as HTML-safe, bypassing
// escaping at the render site.
func raw(_ object.Object, args []object.Object) (object.Object, error) {
	if len(args) != 1 {
		return nil, object.NewArgumentCountError("raw", 1, len(args))
	}
	return object.NewHtmlSafeString(args[0].ToString()), nil
}

// escapeHTML force-escapes its argument and returns the escaped text
// marked HTML-safe, so composing it into further raw/content_tag calls
// doesn't escape it a second time.
func escapeHTML(_ object.Object, args []object.Object) (object.Object, error) {
	if len(args) != 1 {
		return nil, object.NewArgumentCountError("escape_html", 1, len(args))
	}
	return object.NewHtmlSafeString(render.EscapeHTML(args[0].ToString())), nil
}

// contentTag builds `<tag attrs>content</tag>` as an HTML-safe string.
// Accepted call shapes: content_tag(:div), content_tag(:div, "text"),
// content_tag(:div, "text", {class: "x"}), content_tag(:div, {class: "x"})
// { ... } (content from the block instead of a positional argument).
func contentTag(_ object.Object, args []object.Object) (object.Object, error) {
	if len(args) == 0 {
		return nil, object.NewArgumentCountError("content_tag", 1, len(args))
	}
	tagName := args[0].ToString()
	rest, block := trailingBlock(args[1:])

	var content string
	var attrs *object.Hash
	switch {
	case block != nil:
		v, err := block.Call(nil)
		if err != nil {
			return nil, err
		}
		content = stringifyEscaped(v)
		if len(rest) > 0 {
			attrs, _ = rest[0].(*object.Hash)
		}
	case len(rest) == 1:
		if h, ok := rest[0].(*object.Hash); ok {
			attrs = h
		} else {
			content = stringifyEscaped(rest[0])
		}
	case len(rest) >= 2:
		content = stringifyEscaped(rest[0])
		attrs, _ = rest[1].(*object.Hash)
	}

	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(tagName)
	if attrs != nil {
		for _, k := range attrs.Keys() {
			v, _ := attrs.Get(k)
			b.WriteByte(' ')
			b.WriteString(k.ToString())
			b.WriteString(`="`)
			b.WriteString(render.EscapeHTML(v.ToString()))
			b.WriteByte('"')
		}
	}
	b.WriteByte('>')
	b.WriteString(content)
	b.WriteString("</")
	b.WriteString(tagName)
	b.WriteByte('>')
	return object.NewHtmlSafeString(b.String()), nil
}

func stringifyEscaped(v object.Object) string {
	if object.IsHtmlSafe(v) {
		return v.ToString()
	}
	return render.EscapeHTML(v.ToString())
}

// cycle returns the next value from args in round-robin order each time
// it's called with the same set of values, keyed on their Inspect() forms
// joined together — the simplest stable identity available for a native
// function that only sees a flat Object slice, matching the stateful
// per-values-list behavior of Rails' `cycle` helper.
func (r *Registry) cycle(_ object.Object, args []object.Object) (object.Object, error) {
	if len(args) == 0 {
		return nil, object.NewArgumentCountError("cycle", 1, len(args))
	}
	key := cycleKey(args)
	r.mu.Lock()
	idx := r.cycles[key]
	r.cycles[key] = (idx + 1) % len(args)
	r.mu.Unlock()
	return args[idx], nil
}

func cycleKey(args []object.Object) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.Inspect()
	}
	return strings.Join(parts, "\x1f")
}
