package object

import (
	"errors"
	"fmt"
)

// Kind identifies the distinguishable failure categories spec'd for the
// evaluator. Every failure raised by this package and by internal/eval
// carries one of these kinds.
type Kind string

const (
	KindLex                Kind = "lex-error"
	KindParse              Kind = "parse-error"
	KindNoMethod           Kind = "no-method"
	KindArgumentCount      Kind = "argument-count"
	KindArgumentType       Kind = "argument-type"
	KindInvalidArgument    Kind = "invalid-argument"
	KindType               Kind = "type-error"
	KindUnorderableTypes   Kind = "unorderable-types"
	KindUnsupportedOperand Kind = "unsupported-operand"
	KindKeyError           Kind = "key-error"
)

// ScriptError is the umbrella error type for every failure kind the core
// can raise. Call IsKind to check for a specific kind, or rely on it
// satisfying plain `error` for catch-all handling.
type ScriptError struct {
	Kind    Kind
	Message string
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func newErr(k Kind, format string, args ...any) *ScriptError {
	return &ScriptError{Kind: k, Message: fmt.Sprintf(format, args...)}
}

func NewLexError(format string, args ...any) *ScriptError { return newErr(KindLex, format, args...) }

func NewParseError(format string, args ...any) *ScriptError {
	return newErr(KindParse, format, args...)
}

func NewNoMethodError(receiverType, name string) *ScriptError {
	return newErr(KindNoMethod, "undefined method %q for %s", name, receiverType)
}

func NewArgumentCountError(method string, want, got int) *ScriptError {
	return newErr(KindArgumentCount, "wrong number of arguments for %s (given %d, expected %d)", method, got, want)
}

func NewArgumentCountRangeError(method string, min, max, got int) *ScriptError {
	return newErr(KindArgumentCount, "wrong number of arguments for %s (given %d, expected %d..%d)", method, got, min, max)
}

func NewArgumentTypeError(format string, args ...any) *ScriptError {
	return newErr(KindArgumentType, format, args...)
}

func NewInvalidArgument(format string, args ...any) *ScriptError {
	return newErr(KindInvalidArgument, format, args...)
}

func NewTypeError(format string, args ...any) *ScriptError {
	return newErr(KindType, format, args...)
}

func NewUnorderableTypesError(a, b Object) *ScriptError {
	return newErr(KindUnorderableTypes, "comparison of %s with %s failed", a.Type(), b.Type())
}

func NewUnsupportedOperandError(op string, a, b Object) *ScriptError {
	return newErr(KindUnsupportedOperand, "unsupported operand types for %s: %s and %s", op, a.Type(), b.Type())
}

func NewUnsupportedUnaryOperandError(op string, a Object) *ScriptError {
	return newErr(KindUnsupportedOperand, "unsupported operand type for unary %s: %s", op, a.Type())
}

func NewKeyError(key Object) *ScriptError {
	return newErr(KindKeyError, "key not found: %s", key.Inspect())
}

// IsKind reports whether err is a *ScriptError (possibly wrapped) of kind k.
func IsKind(err error, k Kind) bool {
	var se *ScriptError
	if errors.As(err, &se) {
		return se.Kind == k
	}
	return false
}
