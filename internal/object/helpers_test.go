package object

import (
	"testing"

	"github.com/oxhq/veneer/internal/symbol"
)

// call resolves name on obj's method table and invokes it with args,
// failing the test if the method is missing.
func call(t *testing.T, obj Object, name string, args ...Object) (Object, error) {
	t.Helper()
	fn, ok := obj.MethodTable().Lookup(symbol.Intern(name))
	if !ok {
		t.Fatalf("%s has no method %q", obj.Type(), name)
	}
	return fn(obj, args)
}

// mustCall is call but fails the test on error.
func mustCall(t *testing.T, obj Object, name string, args ...Object) Object {
	t.Helper()
	res, err := call(t, obj, name, args...)
	if err != nil {
		t.Fatalf("%s.%s(...) returned error: %v", obj.Type(), name, err)
	}
	return res
}
