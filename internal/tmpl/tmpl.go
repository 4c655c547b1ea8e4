// Package tmpl is a deliberately thin host-side template tokenizer: it
// scans raw text for `#{ ... }` interpolation markers and hands each
// marked expression to internal/parser, producing an internal/render
// Template. It has no indentation sensitivity, no partials, and no layout
// composition — spec.md places the full template grammar out of scope,
// and this package exists only so the core is exercisable end to end.
package tmpl

import (
	"strings"

	"github.com/oxhq/veneer/internal/object"
	"github.com/oxhq/veneer/internal/parser"
	"github.com/oxhq/veneer/internal/render"
	"github.com/oxhq/veneer/internal/symbol"
)

// Parse scans source for `#{...}` markers, splitting it into render.Literal
// runs of plain text and render.Expr fragments whose contents are parsed
// as expressions via parser.Parse. Brace depth inside a marker is tracked
// so a nested hash or block literal (`#{ {a: 1} }`) doesn't close the
// marker early, mirroring how internal/lexer tracks brace depth for
// double-quoted string interpolation.
//
// locals and globals are threaded straight into parser.Parse for every
// expression fragment; a host with a fixed set of top-level local names
// (e.g. loop variables introduced by a surrounding control construct)
// passes them here.
func Parse(source string, locals, globals map[symbol.Symbol]bool) (render.Template, error) {
	var tmpl render.Template
	var lit strings.Builder

	flushLiteral := func() {
		if lit.Len() > 0 {
			tmpl = append(tmpl, render.Literal{Text: lit.String()})
			lit.Reset()
		}
	}

	i := 0
	n := len(source)
	for i < n {
		if source[i] == '#' && i+1 < n && source[i+1] == '{' {
			flushLiteral()
			exprSrc, next, err := scanMarker(source, i+2)
			if err != nil {
				return nil, err
			}
			node, err := parser.Parse(exprSrc, locals, globals)
			if err != nil {
				return nil, err
			}
			tmpl = append(tmpl, render.Expr{Node: node})
			i = next
			continue
		}
		lit.WriteByte(source[i])
		i++
	}
	flushLiteral()
	return tmpl, nil
}

// scanMarker finds the closing `}` for a `#{` marker whose body starts at
// start, accounting for nested braces, and returns the body text and the
// index just past the closing brace.
func scanMarker(source string, start int) (string, int, error) {
	depth := 1
	i := start
	for i < len(source) {
		switch source[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return source[start:i], i + 1, nil
			}
		}
		i++
	}
	return "", 0, object.NewParseError("unterminated #{...} template expression")
}
