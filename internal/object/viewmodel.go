package object

// ViewModel is the contract a host application implements to expose data
// to a template's top-level scope: `self()` is the view model itself,
// `get_attr`/`get_constant` are its Object.GetAttr/GetConstant, and its
// zero-arg method table entries are what an unqualified identifier that
// isn't a local or a known global function falls through to (a self
// method call, per internal/eval). internal/hostvm provides two
// ready-made implementations; callers may also implement it directly.
type ViewModel interface {
	Object
}
