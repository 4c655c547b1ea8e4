// Package hostvm provides two ready-made object.ViewModel implementations
// a host application can hand straight to scope.New, instead of writing
// its own Object implementation to expose data to a template's top-level
// scope: MapViewModel for ad-hoc attribute maps, and StructViewModel for
// exposing an existing Go struct via reflection.
package hostvm

import (
	"fmt"
	"reflect"

	"github.com/oxhq/veneer/internal/globals"
	"github.com/oxhq/veneer/internal/object"
	"github.com/oxhq/veneer/internal/symbol"
)

// MapViewModel exposes a plain map as a view model: GetAttr resolves
// `@name` against the map, returning object.Nil for a missing key rather
// than erroring (an undeclared template variable reads as nil, not a
// failure). It has no constants; its self methods are those added with
// Define, and global functions come from the registry it embeds.
type MapViewModel struct {
	object.Base
	Attrs    map[symbol.Symbol]object.Object
	Globals  *globals.Registry
	methods  *object.MethodTable
}

// NewMapViewModel returns a MapViewModel backed by attrs, with globals
// pre-populated from globals.NewDefaultRegistry if reg is nil.
func NewMapViewModel(attrs map[symbol.Symbol]object.Object, reg *globals.Registry) *MapViewModel {
	if attrs == nil {
		attrs = make(map[symbol.Symbol]object.Object)
	}
	if reg == nil {
		reg = globals.NewDefaultRegistry()
	}
	return &MapViewModel{Attrs: attrs, Globals: reg, methods: object.NewMethodTable(nil)}
}

func (m *MapViewModel) Type() string     { return "MapViewModel" }
func (m *MapViewModel) ToString() string { return "#<MapViewModel>" }
func (m *MapViewModel) Inspect() string  { return "#<MapViewModel>" }
func (m *MapViewModel) IsTrue() bool     { return true }

func (m *MapViewModel) Eq(other object.Object) bool {
	o, ok := other.(*MapViewModel)
	return ok && o == m
}

func (m *MapViewModel) Cmp(other object.Object) (int, error) {
	return 0, object.NewUnorderableTypesError(m, other)
}

func (m *MapViewModel) Hash() uint64 { return 0 }

func (m *MapViewModel) GetAttr(name symbol.Symbol) (object.Object, error) {
	if v, ok := m.Attrs[name]; ok {
		return v, nil
	}
	return object.Nil, nil
}

// MethodTable returns the table of self methods added with Define (empty
// until Define is called); a call not resolved as a local, a global, or one
// of those methods fails with no-method.
func (m *MapViewModel) MethodTable() *object.MethodTable { return m.methods }

// Define adds a zero-arg self method, letting a host expose computed
// values (`helper_method`-style) without pre-baking them into Attrs.
func (m *MapViewModel) Define(name string, fn object.NativeFunc) { m.methods.Define(name, fn) }

// LookupGlobal implements eval.GlobalFuncLookup by delegating to Globals.
func (m *MapViewModel) LookupGlobal(name symbol.Symbol) (object.NativeFunc, bool) {
	return m.Globals.LookupGlobal(name)
}

// StructViewModel wraps an arbitrary Go struct via reflection: exported
// fields become `@Field` attributes, and exported zero-argument methods
// that return exactly one value become the view model's method table —
// the adapter a Go web handler reaches for to expose a domain struct
// without hand-writing a MapViewModel.
type StructViewModel struct {
	object.Base
	value   reflect.Value
	Globals *globals.Registry
	methods *object.MethodTable
}

// NewStructViewModel wraps v (a struct or pointer to struct) for template
// access, with globals pre-populated from globals.NewDefaultRegistry if
// reg is nil.
func NewStructViewModel(v any, reg *globals.Registry) (*StructViewModel, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("hostvm: StructViewModel requires a struct or struct pointer, got %T", v)
	}
	if reg == nil {
		reg = globals.NewDefaultRegistry()
	}
	svm := &StructViewModel{value: rv, Globals: reg, methods: object.NewMethodTable(nil)}
	svm.bindMethods(reflect.ValueOf(v))
	return svm, nil
}

func (s *StructViewModel) bindMethods(v reflect.Value) {
	t := v.Type()
	for i := 0; i < t.NumMethod(); i++ {
		m := t.Method(i)
		if !m.IsExported() {
			continue
		}
		mt := m.Func.Type()
		// mt's receiver is argument 0; a zero-arg method has arity 1 here.
		if mt.NumIn() != 1 || mt.NumOut() != 1 {
			continue
		}
		method := v.Method(i)
		// Script identifiers that can appear bare or after a `.` always
		// start lowercase (the lexer routes anything else to CONSTANT), so
		// an exported PascalCase Go method is exposed under its
		// lower-first form: Label -> label.
		name := lowerFirst(m.Name)
		s.methods.Define(name, func(_ object.Object, args []object.Object) (object.Object, error) {
			if len(args) != 0 {
				return nil, object.NewArgumentCountError(name, 0, len(args))
			}
			out := method.Call(nil)
			return goValueToObject(out[0].Interface())
		})
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	if r[0] >= 'A' && r[0] <= 'Z' {
		r[0] += 'a' - 'A'
	}
	return string(r)
}

func (s *StructViewModel) Type() string     { return "StructViewModel(" + s.value.Type().Name() + ")" }
func (s *StructViewModel) ToString() string { return fmt.Sprintf("#<%s>", s.Type()) }
func (s *StructViewModel) Inspect() string  { return s.ToString() }
func (s *StructViewModel) IsTrue() bool     { return true }

func (s *StructViewModel) Eq(other object.Object) bool {
	o, ok := other.(*StructViewModel)
	return ok && o == s
}

func (s *StructViewModel) Cmp(other object.Object) (int, error) {
	return 0, object.NewUnorderableTypesError(s, other)
}

func (s *StructViewModel) Hash() uint64 { return 0 }

func (s *StructViewModel) GetAttr(name symbol.Symbol) (object.Object, error) {
	fv := s.value.FieldByName(name.String())
	if !fv.IsValid() || !fv.CanInterface() {
		return object.Nil, nil
	}
	return goValueToObject(fv.Interface())
}

func (s *StructViewModel) MethodTable() *object.MethodTable { return s.methods }

func (s *StructViewModel) LookupGlobal(name symbol.Symbol) (object.NativeFunc, bool) {
	return s.Globals.LookupGlobal(name)
}

// goValueToObject converts a handful of common Go kinds into the object
// model's types. Anything it doesn't recognize is exposed as its
// fmt.Sprint string form rather than failing the whole render.
func goValueToObject(v any) (object.Object, error) {
	switch x := v.(type) {
	case nil:
		return object.Nil, nil
	case object.Object:
		return x, nil
	case string:
		return object.NewString(x), nil
	case bool:
		return object.Bool(x), nil
	case int:
		return object.NewNumber(float64(x)), nil
	case int64:
		return object.NewNumber(float64(x)), nil
	case float64:
		return object.NewNumber(x), nil
	case []string:
		elems := make([]object.Object, len(x))
		for i, s := range x {
			elems[i] = object.NewString(s)
		}
		return object.NewArray(elems), nil
	default:
		return object.NewString(fmt.Sprint(x)), nil
	}
}
