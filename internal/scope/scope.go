// Package scope implements the chained variable environment the evaluator
// reads and writes as it walks an AST: local bindings plus a non-owning
// link to a parent scope and to the view model backing `self`.
package scope

import (
	"github.com/oxhq/veneer/internal/object"
	"github.com/oxhq/veneer/internal/symbol"
)

// Scope is stack-scoped to a single evaluation. It exclusively owns its
// locals map; Parent and ViewModel are non-owning back references.
type Scope struct {
	parent    *Scope
	viewModel object.ViewModel
	locals    map[symbol.Symbol]object.Object
}

// New creates a root scope backed by vm.
func New(vm object.ViewModel) *Scope {
	return &Scope{viewModel: vm, locals: make(map[symbol.Symbol]object.Object)}
}

// Child creates a scope nested under s, sharing its view model. Used for
// block/lambda invocation so the closure observes live mutations to s.
func (s *Scope) Child() *Scope {
	return &Scope{parent: s, viewModel: s.viewModel, locals: make(map[symbol.Symbol]object.Object)}
}

// Self returns the view model's self value.
func (s *Scope) Self() object.Object { return s.viewModel }

// ViewModel returns the scope's view model.
func (s *Scope) ViewModel() object.ViewModel { return s.viewModel }

// Get resolves sym against the locals of s, then of each parent scope.
// It does not fall back to a method call on self: ok is false whenever no
// scope in the chain binds sym.
func (s *Scope) Get(sym symbol.Symbol) (object.Object, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if v, ok := sc.locals[sym]; ok {
			return v, true
		}
	}
	return nil, false
}

// Set writes to the innermost scope in the chain that already binds sym,
// or creates the binding in s if none does.
func (s *Scope) Set(sym symbol.Symbol, value object.Object) {
	for sc := s; sc != nil; sc = sc.parent {
		if _, ok := sc.locals[sym]; ok {
			sc.locals[sym] = value
			return
		}
	}
	s.locals[sym] = value
}

// Define binds sym in this exact scope frame, shadowing any outer
// binding. Used to bind block/lambda parameters.
func (s *Scope) Define(sym symbol.Symbol, value object.Object) {
	s.locals[sym] = value
}

// Has reports whether sym is bound anywhere in the chain (not via
// self-dispatch fallback). The parser's LocalVarNames set mirrors this at
// parse time so `foo` after `foo = 1` resolves as a Variable, not a call.
func (s *Scope) Has(sym symbol.Symbol) bool {
	_, ok := s.Get(sym)
	return ok
}
