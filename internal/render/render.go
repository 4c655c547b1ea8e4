// Package render implements the minimal template render loop SPEC_FULL
// layers over the evaluator: a Template is an ordered sequence of literal
// text and embedded expressions, and Render walks it against a scope,
// applying the HTML-safety marker propagation internal/object defines.
package render

import (
	"html"
	"strings"

	"github.com/oxhq/veneer/internal/ast"
	"github.com/oxhq/veneer/internal/eval"
	"github.com/oxhq/veneer/internal/object"
	"github.com/oxhq/veneer/internal/scope"
)

// Part is a sealed interface with two implementations: Literal (raw text,
// copied verbatim) and Expr (a parsed expression, evaluated and either
// escaped or passed through verbatim depending on HTML-safety).
type Part interface {
	part()
}

// Literal is raw template text outside any `#{...}` marker.
type Literal struct {
	Text string
}

func (Literal) part() {}

// Expr is a parsed expression embedded in the template source.
type Expr struct {
	Node ast.Node
}

func (Expr) part() {}

// Template is an ordered sequence of Parts produced by internal/tmpl.
type Template []Part

// Render evaluates tmpl against sc, concatenating each Part's contribution
// in order. Literal parts are copied verbatim. Expr parts are evaluated,
// stringified via ToString, and HTML-escaped unless the result is already
// an object.HtmlSafeString (or object.Nil, which renders as "").
// Any evaluator error aborts the render immediately and is returned to
// the caller without partial output, matching spec.md §7's propagation
// policy: there is no partial-render recovery.
func Render(tmpl Template, sc *scope.Scope) (string, error) {
	var b strings.Builder
	for _, p := range tmpl {
		switch part := p.(type) {
		case Literal:
			b.WriteString(part.Text)
		case Expr:
			v, err := eval.Eval(part.Node, sc)
			if err != nil {
				return "", err
			}
			b.WriteString(stringifyForOutput(v))
		}
	}
	return b.String(), nil
}

// stringifyForOutput renders v's display form, escaping it unless v is
// already marked HTML-safe.
func stringifyForOutput(v object.Object) string {
	s := v.ToString()
	if object.IsHtmlSafe(v) {
		return s
	}
	return EscapeHTML(s)
}

// EscapeHTML escapes s for safe inclusion in HTML text content. Nothing
// in the teacher's or the pack's dependency stack provides this escaping;
// the standard library's html package is the narrow, well-understood tool
// for exactly this one job, so it's used directly rather than introducing
// a templating engine dependency for a single function call.
func EscapeHTML(s string) string {
	return html.EscapeString(s)
}
