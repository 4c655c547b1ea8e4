package object

import "math"

// EvalBinary implements every infix operator the parser recognizes as a
// BinaryOp node rather than a method call, except the short-circuiting
// `&&`/`||`, which internal/eval handles itself: arithmetic, bitwise, shift,
// equality, ordering, and regex match (`=~`). String/array concatenation
// and numeric math are
// handled here directly instead of through MethodTable dispatch because
// the host language treats them as true operators, not messages — there
// is no way to shadow `+` on Number from scripting-surface code.
func EvalBinary(op string, left, right Object) (Object, error) {
	switch op {
	case "==":
		return Bool(left.Eq(right)), nil
	case "!=":
		return Bool(!left.Eq(right)), nil
	case "=~":
		return evalMatch(left, right)
	case "<", "<=", ">", ">=", "<=>":
		c, err := left.Cmp(right)
		if err != nil {
			return nil, err
		}
		switch op {
		case "<":
			return Bool(c < 0), nil
		case "<=":
			return Bool(c <= 0), nil
		case ">":
			return Bool(c > 0), nil
		case ">=":
			return Bool(c >= 0), nil
		default: // <=>
			return NewNumber(float64(c)), nil
		}
	}

	if op == "+" {
		if lv, ok := left.(StringValue); ok {
			rv, ok := right.(StringValue)
			if !ok {
				return nil, NewUnsupportedOperandError(op, left, right)
			}
			combined := lv.RawString() + rv.RawString()
			if IsHtmlSafe(left) && IsHtmlSafe(right) {
				return NewHtmlSafeString(combined), nil
			}
			return NewString(combined), nil
		}
		if la, ok := left.(*Array); ok {
			ra, ok := right.(*Array)
			if !ok {
				return nil, NewUnsupportedOperandError(op, left, right)
			}
			out := append([]Object{}, la.elems...)
			out = append(out, ra.elems...)
			return NewArray(out), nil
		}
	}

	ln, lok := left.(*Number)
	rn, rok := right.(*Number)
	if !lok || !rok {
		return nil, NewUnsupportedOperandError(op, left, right)
	}

	switch op {
	case "+":
		return NewNumber(ln.v + rn.v), nil
	case "-":
		return NewNumber(ln.v - rn.v), nil
	case "*":
		return NewNumber(ln.v * rn.v), nil
	case "/":
		return NewNumber(ln.v / rn.v), nil
	case "%":
		return NewNumber(rubyMod(ln.v, rn.v)), nil
	case "**":
		return NewNumber(math.Pow(ln.v, rn.v)), nil
	case "&", "|", "^", "<<", ">>":
		li, err := ln.AsExactInt()
		if err != nil {
			return nil, err
		}
		ri, err := rn.AsExactInt()
		if err != nil {
			return nil, err
		}
		switch op {
		case "&":
			return NewNumber(float64(li & ri)), nil
		case "|":
			return NewNumber(float64(li | ri)), nil
		case "^":
			return NewNumber(float64(li ^ ri)), nil
		case "<<":
			return NewNumber(float64(li << uint(ri))), nil
		default: // >>
			return NewNumber(float64(li >> uint(ri))), nil
		}
	}

	return nil, NewUnsupportedOperandError(op, left, right)
}

// evalMatch implements `=~` on either (String, Regexp) or (Regexp, String)
// operand order, returning the byte offset of the first match or Nil.
func evalMatch(left, right Object) (Object, error) {
	var re *RegexObject
	var sv StringValue
	switch {
	case isRegex(left) && isStringValue(right):
		re, _ = left.(*RegexObject)
		sv, _ = right.(StringValue)
	case isStringValue(left) && isRegex(right):
		re, _ = right.(*RegexObject)
		sv, _ = left.(StringValue)
	default:
		return nil, NewUnsupportedOperandError("=~", left, right)
	}
	compiled, err := re.Compiled()
	if err != nil {
		return nil, err
	}
	loc := compiled.FindStringIndex(sv.RawString())
	if loc == nil {
		return Nil, nil
	}
	return NewNumber(float64(loc[0])), nil
}

func isRegex(o Object) bool {
	_, ok := o.(*RegexObject)
	return ok
}

func isStringValue(o Object) bool {
	_, ok := o.(StringValue)
	return ok
}

// rubyMod computes a % b with the result's sign following the divisor,
// matching Ruby's Numeric#% (Go's math.Mod follows the dividend instead).
func rubyMod(a, b float64) float64 {
	m := math.Mod(a, b)
	if m != 0 && (m < 0) != (b < 0) {
		m += b
	}
	return m
}

// EvalUnary implements the prefix operators `-` and `+`. Prefix `!` is
// evaluated directly against IsTrue() by the caller and never reaches
// here, since it is defined for every type, not just Number.
func EvalUnary(op string, operand Object) (Object, error) {
	n, ok := operand.(*Number)
	if !ok {
		return nil, NewUnsupportedUnaryOperandError(op, operand)
	}
	switch op {
	case "-":
		return NewNumber(-n.v), nil
	case "+":
		return n, nil
	}
	return nil, NewUnsupportedUnaryOperandError(op, operand)
}
