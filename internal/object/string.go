package object

// StringValue is implemented by both String and HtmlSafeString so the
// shared method table (built once, in string_methods.go) can operate on
// either concrete type generically and construct a same-type result.
type StringValue interface {
	Object
	RawString() string
	WithString(s string) Object
}

// String is a plain (escape-at-output-site) UTF-8 string.
type String struct {
	Base
	s string
}

// NewString wraps s as a plain String object.
func NewString(s string) *String { return &String{s: s} }

func (s *String) RawString() string          { return s.s }
func (s *String) WithString(v string) Object { return NewString(v) }

func (s *String) Type() string     { return "String" }
func (s *String) ToString() string { return s.s }
func (s *String) Inspect() string  { return inspectString(s.s) }
func (s *String) IsTrue() bool     { return true } // the empty string is truthy

func (s *String) Eq(other Object) bool {
	o, ok := other.(*String)
	return ok && o.s == s.s
}

func (s *String) Cmp(other Object) (int, error) {
	o, ok := other.(*String)
	if !ok {
		return 0, NewUnorderableTypesError(s, other)
	}
	return compareStrings(s.s, o.s), nil
}

func (s *String) Hash() uint64 { return fnv1a(s.s) }

func (s *String) MethodTable() *MethodTable { return stringMethods }

func (s *String) ElRef(args []Object) (Object, error) {
	return stringElRef(s, args)
}

func compareStrings(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
