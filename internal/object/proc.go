package object

// Proc wraps a block or lambda literal. The evaluator constructs Proc
// values; object itself never references internal/ast, internal/scope, or
// internal/eval, so Invoke is an opaque closure supplied at
// construction time. This keeps object a leaf package with no import
// cycle back to the packages that consume it.
type Proc struct {
	Base
	Arity   int
	IsLambda bool
	invoke  func(args []Object) (Object, error)
}

// NewProc wraps invoke as a callable Proc. arity is the number of
// parameters the block/lambda declares (for arity-mismatch padding: extra
// args are ignored, missing args are filled with Nil, matching block
// semantics; a lambda additionally enforces exact arity at call time).
func NewProc(arity int, isLambda bool, invoke func(args []Object) (Object, error)) *Proc {
	return &Proc{Arity: arity, IsLambda: isLambda, invoke: invoke}
}

// Call invokes the wrapped body with args, applying block-style arity
// padding/truncation unless the Proc is a lambda.
func (p *Proc) Call(args []Object) (Object, error) {
	if p.IsLambda && len(args) != p.Arity {
		return nil, NewArgumentCountError("call", p.Arity, len(args))
	}
	if !p.IsLambda && p.Arity > 0 {
		if len(args) < p.Arity {
			padded := make([]Object, p.Arity)
			copy(padded, args)
			for i := len(args); i < p.Arity; i++ {
				padded[i] = Nil
			}
			args = padded
		} else if len(args) > p.Arity {
			args = args[:p.Arity]
		}
	}
	return p.invoke(args)
}

func (p *Proc) Type() string     { return "Proc" }
func (p *Proc) ToString() string { return "#<Proc>" }
func (p *Proc) Inspect() string  { return "#<Proc>" }
func (p *Proc) IsTrue() bool     { return true }

func (p *Proc) Eq(other Object) bool {
	o, ok := other.(*Proc)
	return ok && o == p
}

func (p *Proc) Cmp(other Object) (int, error) {
	return 0, NewUnorderableTypesError(p, other)
}

func (p *Proc) Hash() uint64 {
	return fnv1a(p.ToString()) // procs aren't meant as hash keys; identity equality is what matters
}

var procMethods = buildProcMethods()

func buildProcMethods() *MethodTable {
	t := NewMethodTable(nil)
	t.Define("call", func(self Object, args []Object) (Object, error) {
		return self.(*Proc).Call(args)
	})
	t.Define("arity", func(self Object, args []Object) (Object, error) {
		return NewNumber(float64(self.(*Proc).Arity)), nil
	})
	t.Define("lambda?", func(self Object, args []Object) (Object, error) {
		return Bool(self.(*Proc).IsLambda), nil
	})
	return t
}

func (p *Proc) MethodTable() *MethodTable { return procMethods }
