// Package eval implements the tree-walking evaluator: it walks an
// internal/ast tree against an internal/scope.Scope, dispatching method
// calls through each value's internal/object.MethodTable (optionally
// memoized per call site by internal/rcache) and returning either a
// result internal/object.Object or one of the typed errors from
// internal/object's Kind hierarchy.
package eval

import (
	"github.com/oxhq/veneer/internal/ast"
	"github.com/oxhq/veneer/internal/object"
	"github.com/oxhq/veneer/internal/rcache"
	"github.com/oxhq/veneer/internal/scope"
	"github.com/oxhq/veneer/internal/symbol"
)

// Eval walks node against sc, returning its value or the first error
// encountered. There is no recovery inside the evaluator: an error
// aborts the walk and propagates straight to the caller, matching
// spec.md §7's propagation policy.
func Eval(node ast.Node, sc *scope.Scope) (object.Object, error) {
	switch n := node.(type) {
	case *ast.Literal:
		return n.Value, nil

	case *ast.Variable:
		if v, ok := sc.Get(n.Name); ok {
			return v, nil
		}
		return nil, object.NewNoMethodError(sc.Self().Type(), n.Name.String())

	case *ast.Attribute:
		return sc.Self().GetAttr(n.Name)

	case *ast.GlobalConstant:
		return sc.Self().GetConstant(n.Name)

	case *ast.ConstantNav:
		lhs, err := Eval(n.Lhs, sc)
		if err != nil {
			return nil, err
		}
		return lhs.GetConstant(n.Name)

	case *ast.Assignment:
		value, err := Eval(n.Expr, sc)
		if err != nil {
			return nil, err
		}
		sc.Set(n.Name, value)
		return value, nil

	case *ast.GlobalFuncCall:
		return evalGlobalFuncCall(n, sc)

	case *ast.MemberFuncCall:
		lhs, err := Eval(n.Lhs, sc)
		if err != nil {
			return nil, err
		}
		return callMethod(&n.Cache, lhs, n.Name, n.Args, n.Block, sc)

	case *ast.SafeNavMemberFuncCall:
		lhs, err := Eval(n.Lhs, sc)
		if err != nil {
			return nil, err
		}
		if lhs == object.Nil {
			return object.Nil, nil
		}
		return callMethod(&n.Cache, lhs, n.Name, n.Args, n.Block, sc)

	case *ast.ElementRefOp:
		lhs, err := Eval(n.Lhs, sc)
		if err != nil {
			return nil, err
		}
		args, err := evalArgs(n.Args, sc)
		if err != nil {
			return nil, err
		}
		return lhs.ElRef(args)

	case *ast.ArrayLiteral:
		elems, err := evalArgs(n.Elems, sc)
		if err != nil {
			return nil, err
		}
		return object.NewArray(elems), nil

	case *ast.HashLiteral:
		h := object.NewHash()
		for _, pair := range n.Pairs {
			key, err := Eval(pair.Key, sc)
			if err != nil {
				return nil, err
			}
			value, err := Eval(pair.Value, sc)
			if err != nil {
				return nil, err
			}
			h.Set(key, value)
		}
		return h, nil

	case *ast.RangeOp:
		lhs, err := Eval(n.Lhs, sc)
		if err != nil {
			return nil, err
		}
		rhs, err := Eval(n.Rhs, sc)
		if err != nil {
			return nil, err
		}
		lnum, ok := lhs.(*object.Number)
		if !ok {
			return nil, object.NewArgumentTypeError("range endpoints must be numbers, got %s", lhs.Type())
		}
		rnum, ok := rhs.(*object.Number)
		if !ok {
			return nil, object.NewArgumentTypeError("range endpoints must be numbers, got %s", rhs.Type())
		}
		return object.NewRange(lnum, rnum, n.Exclusive), nil

	case *ast.InterpolatedString:
		return evalInterpolatedString(n, sc)

	case *ast.InterpolatedRegex:
		src, err := evalInterpolatedString(n.Source, sc)
		if err != nil {
			return nil, err
		}
		return object.NewRegex(src.ToString(), n.Options), nil

	case *ast.Block:
		return nil, object.NewTypeError("a block literal cannot be evaluated outside of a call")

	case *ast.Conditional:
		cond, err := Eval(n.Cond, sc)
		if err != nil {
			return nil, err
		}
		if cond.IsTrue() {
			return Eval(n.Then, sc)
		}
		return Eval(n.Else, sc)

	case *ast.UnaryOp:
		return evalUnary(n, sc)

	case *ast.BinaryOp:
		return evalBinary(n, sc)

	case *ast.Sequence:
		var result object.Object = object.Nil
		for _, expr := range n.Exprs {
			v, err := Eval(expr, sc)
			if err != nil {
				return nil, err
			}
			result = v
		}
		return result, nil
	}
	return nil, object.NewTypeError("unhandled AST node %T", node)
}

func evalArgs(nodes []ast.Node, sc *scope.Scope) ([]object.Object, error) {
	if len(nodes) == 0 {
		return nil, nil
	}
	args := make([]object.Object, len(nodes))
	for i, n := range nodes {
		v, err := Eval(n, sc)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return args, nil
}

func evalInterpolatedString(n *ast.InterpolatedString, sc *scope.Scope) (*object.String, error) {
	var b []byte
	for _, part := range n.Parts {
		if part.Expr != nil {
			v, err := Eval(part.Expr, sc)
			if err != nil {
				return nil, err
			}
			b = append(b, v.ToString()...)
		} else {
			b = append(b, part.Text...)
		}
	}
	return object.NewString(string(b)), nil
}

// evalGlobalFuncCall dispatches a parse-time-resolved unqualified call:
// IsGlobal routes through the caller-supplied global registry (reached
// through sc's view model, which must implement GlobalFuncLookup — see internal/globals
// for the concrete registry type consumed by internal/tmpl), otherwise it
// falls through to a zero-arg(-plus-given-args) method call on self,
// exactly as spec.md §4.2 specifies.
func evalGlobalFuncCall(n *ast.GlobalFuncCall, sc *scope.Scope) (object.Object, error) {
	if n.IsGlobal {
		globals, ok := sc.ViewModel().(GlobalFuncLookup)
		if !ok {
			return nil, object.NewNoMethodError("global", n.Name.String())
		}
		fn, ok := globals.LookupGlobal(n.Name)
		if !ok {
			return nil, object.NewNoMethodError("global", n.Name.String())
		}
		args, err := evalArgs(n.Args, sc)
		if err != nil {
			return nil, err
		}
		block, err := makeBlock(n.Block, sc)
		if err != nil {
			return nil, err
		}
		if block != nil {
			args = append(args, block)
		}
		return fn(sc.Self(), args)
	}
	self := sc.Self()
	return callMethod(&n.Cache, self, n.Name, n.Args, n.Block, sc)
}

// GlobalFuncLookup is an optional capability a ViewModel may implement to
// back GlobalFuncCall resolution; internal/hostvm's view models and
// internal/globals.Registry both implement it.
type GlobalFuncLookup interface {
	LookupGlobal(name symbol.Symbol) (object.NativeFunc, bool)
}

// callMethod resolves name against recv's method table (consulting cache
// first when non-nil), evaluates args and an optional trailing block, and
// invokes the native function.
func callMethod(cache *rcache.Site, recv object.Object, name symbol.Symbol, argNodes []ast.Node, blockNode *ast.Block, sc *scope.Scope) (object.Object, error) {
	var fn object.NativeFunc
	var ok bool
	if cache != nil {
		fn, ok = cache.Lookup(recv)
	}
	if !ok {
		fn, ok = recv.MethodTable().Lookup(name)
		if !ok {
			return nil, object.NewNoMethodError(recv.Type(), name.String())
		}
		if cache != nil {
			cache.Store(recv, fn)
		}
	}
	args, err := evalArgs(argNodes, sc)
	if err != nil {
		return nil, err
	}
	block, err := makeBlock(blockNode, sc)
	if err != nil {
		return nil, err
	}
	if block != nil {
		args = append(args, block)
	}
	return fn(recv, args)
}

// makeBlock builds an object.Proc closing over sc for a trailing Block
// literal, or returns nil if none was given.
func makeBlock(b *ast.Block, sc *scope.Scope) (*object.Proc, error) {
	if b == nil {
		return nil, nil
	}
	return object.NewProc(len(b.Params), false, func(args []object.Object) (object.Object, error) {
		child := sc.Child()
		for i, p := range b.Params {
			child.Define(p, args[i])
		}
		return Eval(b.Body, child)
	}), nil
}

func evalUnary(n *ast.UnaryOp, sc *scope.Scope) (object.Object, error) {
	operand, err := Eval(n.Operand, sc)
	if err != nil {
		return nil, err
	}
	if n.Op == "!" {
		return object.Bool(!operand.IsTrue()), nil
	}
	return object.EvalUnary(n.Op, operand)
}

// evalBinary special-cases `&&`/`||` so the right operand is evaluated at
// most once and only when needed (spec.md §5's short-circuit rule);
// every other operator evaluates both sides and defers to
// object.EvalBinary.
func evalBinary(n *ast.BinaryOp, sc *scope.Scope) (object.Object, error) {
	switch n.Op {
	case "&&":
		left, err := Eval(n.Left, sc)
		if err != nil {
			return nil, err
		}
		if !left.IsTrue() {
			return left, nil
		}
		return Eval(n.Right, sc)
	case "||":
		left, err := Eval(n.Left, sc)
		if err != nil {
			return nil, err
		}
		if left.IsTrue() {
			return left, nil
		}
		return Eval(n.Right, sc)
	}
	left, err := Eval(n.Left, sc)
	if err != nil {
		return nil, err
	}
	right, err := Eval(n.Right, sc)
	if err != nil {
		return nil, err
	}
	return object.EvalBinary(n.Op, left, right)
}
