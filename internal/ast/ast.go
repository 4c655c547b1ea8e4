// Package ast defines the immutable expression tree the parser builds and
// the evaluator walks. Every node variant from the node carries enough to
// re-render itself as source text (ToString) for diagnostics, and every
// node is owned exclusively by its parent once constructed.
package ast

import (
	"strings"

	"github.com/oxhq/veneer/internal/object"
	"github.com/oxhq/veneer/internal/rcache"
	"github.com/oxhq/veneer/internal/symbol"
)

// Node is the sealed interface every AST variant implements. There is no
// Eval method here: internal/eval walks the tree externally via a type
// switch, keeping this package free of any dependency on scope/object
// evaluation machinery beyond the literal object.Object values literals
// carry.
type Node interface {
	ToString() string
	node()
}

type base struct{}

func (base) node() {}

// Literal wraps a constant value produced entirely at parse time (numbers,
// booleans, nil, symbols, single-quoted/non-interpolated strings, and
// regex literals with no interpolation).
type Literal struct {
	base
	Value object.Object
}

func (n *Literal) ToString() string { return n.Value.Inspect() }

// Variable references a name already known to be a local at parse time.
type Variable struct {
	base
	Name symbol.Symbol
}

func (n *Variable) ToString() string { return n.Name.String() }

// Attribute is a `@name` reference, evaluated against scope.Self().
type Attribute struct {
	base
	Name symbol.Symbol
}

func (n *Attribute) ToString() string { return "@" + n.Name.String() }

// GlobalConstant is a bare leading-uppercase reference (`Foo`).
type GlobalConstant struct {
	base
	Name symbol.Symbol
}

func (n *GlobalConstant) ToString() string { return n.Name.String() }

// ConstantNav is `Lhs::Name`.
type ConstantNav struct {
	base
	Lhs  Node
	Name symbol.Symbol
}

func (n *ConstantNav) ToString() string { return n.Lhs.ToString() + "::" + n.Name.String() }

// Assignment is `name = expr`, writing through the scope chain.
type Assignment struct {
	base
	Name symbol.Symbol
	Expr Node
}

func (n *Assignment) ToString() string { return n.Name.String() + " = " + n.Expr.ToString() }

// GlobalFuncCall is an unqualified call resolved at parse time against a
// registry of known global function names, dispatched on self at eval
// time (e.g. `capture { ... }`, `content_tag :div, "x"`).
type GlobalFuncCall struct {
	base
	Name     symbol.Symbol
	Args     []Node
	Block    *Block // nil if no block given
	IsGlobal bool   // resolved at parse time against the global function registry
	Cache    rcache.Site
}

func (n *GlobalFuncCall) ToString() string { return callString(n.Name.String(), n.Args, n.Block) }

// MemberFuncCall is `lhs.name(args)`.
type MemberFuncCall struct {
	base
	Lhs   Node
	Name  symbol.Symbol
	Args  []Node
	Block *Block
	Cache rcache.Site
}

func (n *MemberFuncCall) ToString() string {
	return n.Lhs.ToString() + "." + callString(n.Name.String(), n.Args, n.Block)
}

// SafeNavMemberFuncCall is `lhs&.name(args)`: if lhs evaluates to nil, the
// whole expression is nil without evaluating Args.
type SafeNavMemberFuncCall struct {
	base
	Lhs   Node
	Name  symbol.Symbol
	Args  []Node
	Block *Block
	Cache rcache.Site
}

func (n *SafeNavMemberFuncCall) ToString() string {
	return n.Lhs.ToString() + "&." + callString(n.Name.String(), n.Args, n.Block)
}

// ElementRefOp is `lhs[args...]`.
type ElementRefOp struct {
	base
	Lhs  Node
	Args []Node
}

func (n *ElementRefOp) ToString() string {
	return n.Lhs.ToString() + "[" + joinNodes(n.Args) + "]"
}

// ArrayLiteral is `[a, b, c]`.
type ArrayLiteral struct {
	base
	Elems []Node
}

func (n *ArrayLiteral) ToString() string { return "[" + joinNodes(n.Elems) + "]" }

// HashPair is one `key => value` (or `key: value`) entry of a HashLiteral.
type HashPair struct {
	Key   Node
	Value Node
}

// HashLiteral is `{a: 1, b: 2}`. ToString renders pairs with "=>" purely
// for diagnostic readability; the source grammar only accepts ':'.
type HashLiteral struct {
	base
	Pairs []HashPair
}

func (n *HashLiteral) ToString() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, p := range n.Pairs {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Key.ToString())
		b.WriteString(" => ")
		b.WriteString(p.Value.ToString())
	}
	b.WriteByte('}')
	return b.String()
}

// RangeOp is `lhs..rhs` (Exclusive=false) or `lhs...rhs` (Exclusive=true).
type RangeOp struct {
	base
	Lhs, Rhs  Node
	Exclusive bool
}

func (n *RangeOp) ToString() string {
	op := ".."
	if n.Exclusive {
		op = "..."
	}
	return n.Lhs.ToString() + op + n.Rhs.ToString()
}

// StringPart is one element of an InterpolatedString's sequence: either
// literal text (Expr == nil) or a sub-expression (Text == "").
type StringPart struct {
	Text string
	Expr Node
}

// InterpolatedString is a double-quoted string literal containing one or
// more `#{...}` substitutions.
type InterpolatedString struct {
	base
	Parts []StringPart
}

func (n *InterpolatedString) ToString() string {
	var b strings.Builder
	b.WriteByte('"')
	for _, p := range n.Parts {
		if p.Expr != nil {
			b.WriteString("#{")
			b.WriteString(p.Expr.ToString())
			b.WriteByte('}')
		} else {
			b.WriteString(p.Text)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// InterpolatedRegex is a regex literal whose source text is itself an
// InterpolatedString, re-evaluated and compiled at each evaluation.
type InterpolatedRegex struct {
	base
	Source  *InterpolatedString
	Options string
}

func (n *InterpolatedRegex) ToString() string {
	return "/" + n.Source.ToString() + "/" + n.Options
}

// Block is `{ |params| body }` or `do |params| body end`, attached as a
// trailing argument to a call.
type Block struct {
	base
	Params []symbol.Symbol
	Body   Node
}

func (n *Block) ToString() string {
	var b strings.Builder
	b.WriteString("{ ")
	if len(n.Params) > 0 {
		b.WriteByte('|')
		for i, p := range n.Params {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(p.String())
		}
		b.WriteString("| ")
	}
	b.WriteString(n.Body.ToString())
	b.WriteString(" }")
	return b.String()
}

// Conditional is the ternary `cond ? then : else`. `&&`/`||` are kept as
// BinaryOp rather than rewritten into this node: see internal/eval's
// evalBinary for why (reusing one operand as both Cond and Else would
// evaluate it twice).
type Conditional struct {
	base
	Cond, Then, Else Node
}

func (n *Conditional) ToString() string {
	return n.Cond.ToString() + " ? " + n.Then.ToString() + " : " + n.Else.ToString()
}

// UnaryOp is `-x`, `+x`, or `!x`.
type UnaryOp struct {
	base
	Op      string
	Operand Node
}

func (n *UnaryOp) ToString() string { return n.Op + n.Operand.ToString() }

// BinaryOp covers every infix operator in the precedence table except
// assignment, which is its own node.
type BinaryOp struct {
	base
	Op          string
	Left, Right Node
}

func (n *BinaryOp) ToString() string {
	return n.Left.ToString() + " " + n.Op + " " + n.Right.ToString()
}

// Sequence evaluates each Exprs entry in order and yields the last one's
// value. It backs multi-statement block/lambda bodies; spec.md's AST
// variant list covers single-expression bodies, and this is the natural
// extension for `{ |x| a; b; c }`-style blocks.
type Sequence struct {
	base
	Exprs []Node
}

func (n *Sequence) ToString() string {
	parts := make([]string, len(n.Exprs))
	for i, e := range n.Exprs {
		parts[i] = e.ToString()
	}
	return strings.Join(parts, "; ")
}

func joinNodes(nodes []Node) string {
	parts := make([]string, len(nodes))
	for i, n := range nodes {
		parts[i] = n.ToString()
	}
	return strings.Join(parts, ", ")
}

func callString(name string, args []Node, block *Block) string {
	s := name + "(" + joinNodes(args) + ")"
	if block != nil {
		s += " " + block.ToString()
	}
	return s
}
