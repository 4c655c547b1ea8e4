// Package object implements the polymorphic value hierarchy the evaluator
// operates on: nil, booleans, numbers, strings (plain and HTML-safe),
// symbols, arrays, hashes, ranges, regexps, procs/blocks, and the
// view-model contract a host application supplies.
//
// Every concrete type satisfies Object. Named method calls from the
// scripting surface (`.upcase`, `.push`, …) are resolved through a type's
// MethodTable, a process-wide, lazily-built, parent-chained name→function
// mapping. Interpreter-level operations — stringification, truthiness,
// equality, ordering, hashing — are plain Go interface methods, not table
// entries, since they are never invoked by scripting-surface call syntax.
package object

import "github.com/oxhq/veneer/internal/symbol"

// Object is the single abstract value every concrete type implements.
type Object interface {
	// Type names the concrete type, e.g. "String", "Array", "Nil".
	Type() string

	// ToString renders the display form: no quotes for strings, empty for
	// nil, decimal for numbers.
	ToString() string

	// Inspect renders the debug form: quoted/escaped for strings, "nil"
	// for nil, and otherwise round-trippable through the parser.
	Inspect() string

	// IsTrue reports whether the value is truthy in a conditional. Only
	// nil and false are falsy.
	IsTrue() bool

	// Eq reports value equality within a type. Cross-type comparisons are
	// false unless a type explicitly documents otherwise.
	Eq(other Object) bool

	// Cmp gives a three-way order within compatible types. It fails with
	// a ScriptError of KindUnorderableTypes when the types cannot be
	// ordered against each other.
	Cmp(other Object) (int, error)

	// Hash is consistent with Eq: Eq(a, b) implies Hash(a) == Hash(b).
	Hash() uint64

	// MethodTable returns the name→native-function mapping scripting-level
	// calls on this type resolve against.
	MethodTable() *MethodTable

	// GetAttr resolves an `@name` attribute reference against this value.
	// The default implementation (Base) always fails; view models and
	// module-like objects override it.
	GetAttr(sym symbol.Symbol) (Object, error)

	// GetConstant resolves an `A::B`-style constant navigation. The
	// default implementation always fails.
	GetConstant(sym symbol.Symbol) (Object, error)

	// ElRef implements `self[args...]`. The default implementation always
	// fails; arrays, hashes, and strings override it.
	ElRef(args []Object) (Object, error)
}

// Base provides the default, always-failing implementations of GetAttr,
// GetConstant, and ElRef so concrete types only override what they
// actually support. Embed Base by value in every concrete type.
type Base struct{}

func (Base) GetAttr(sym symbol.Symbol) (Object, error) {
	return nil, NewTypeError("value does not support attribute access (@%s)", sym.String())
}

func (Base) GetConstant(sym symbol.Symbol) (Object, error) {
	return nil, NewTypeError("value does not support constant navigation (::%s)", sym.String())
}

func (Base) ElRef(args []Object) (Object, error) {
	return nil, NewTypeError("value does not support element reference ([])")
}

// MethodTable is a name→native-function mapping chained to an optional
// parent table. Lookup walks the chain from the most specific table
// outward, mirroring single-inheritance virtual dispatch without an
// inheritance hierarchy in the Go type system.
type MethodTable struct {
	parent  *MethodTable
	methods map[symbol.Symbol]NativeFunc
}

// NativeFunc is a method table entry: a function taking the receiver and
// the already-evaluated argument list.
type NativeFunc func(self Object, args []Object) (Object, error)

// NewMethodTable creates a table chained to parent (nil for a root table).
func NewMethodTable(parent *MethodTable) *MethodTable {
	return &MethodTable{parent: parent, methods: make(map[symbol.Symbol]NativeFunc)}
}

// Define registers a native method under name, overwriting any previous
// definition of the same name in this table (not in the parent chain).
func (t *MethodTable) Define(name string, fn NativeFunc) {
	t.methods[symbol.Intern(name)] = fn
}

// DefineAliases registers the same native method under several names.
func (t *MethodTable) DefineAliases(fn NativeFunc, names ...string) {
	for _, n := range names {
		t.Define(n, fn)
	}
}

// Lookup resolves name by walking this table then its parent chain.
// The returned bool is false only when no table in the chain defines it.
func (t *MethodTable) Lookup(name symbol.Symbol) (NativeFunc, bool) {
	for table := t; table != nil; table = table.parent {
		if fn, ok := table.methods[name]; ok {
			return fn, true
		}
	}
	return nil, false
}

// Parent returns the table this one chains to, or nil for a root table.
func (t *MethodTable) Parent() *MethodTable { return t.parent }
