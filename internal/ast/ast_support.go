package ast

import "github.com/dafmig/yil/internal/paths"

// LocalDecl is a bound variable: a formal parameter, output value,
// local or binder variable. The name "_" is the anonymous wildcard.
type LocalDecl struct {
	Name  string
	Type  Type
	Ghost bool
}

// IsAnonymous reports whether the declaration binds the wildcard.
func (d *LocalDecl) IsAnonymous() bool { return d.Name == "_" }

// DatatypeConstructor is one case of a datatype.
// C(a: int, ghost b: bool)
type DatatypeConstructor struct {
	Name string
	Ins  []*LocalDecl
	Meta Meta
}

// Case is one arm of a match. Patterns are flattened to
// constructor(x1..xn) form only; BoundVars lists the xi in order.
type Case struct {
	BoundVars []*LocalDecl
	Pattern   Expr
	Body      Expr
}

// InputSpec bundles a callable's formals with its preconditions.
type InputSpec struct {
	Decls         []*LocalDecl
	Preconditions []Expr
}

// OutputSpec bundles a callable's outputs with its postconditions.
// An unnamed single return type is encoded as one anonymous LocalDecl,
// so named and unnamed outputs are handled uniformly.
type OutputSpec struct {
	Decls          []*LocalDecl
	Postconditions []Expr
}

// OutputType extracts the single anonymous return type, if that is how
// the output is encoded.
func (o *OutputSpec) OutputType() (Type, bool) {
	if o == nil || len(o.Decls) != 1 || !o.Decls[0].IsAnonymous() {
		return nil, false
	}
	return o.Decls[0].Type, true
}

// NamedDecls filters out the anonymous return slot.
func (o *OutputSpec) NamedDecls() []*LocalDecl {
	if o == nil {
		return nil
	}
	out := make([]*LocalDecl, 0, len(o.Decls))
	for _, d := range o.Decls {
		if !d.IsAnonymous() {
			out = append(out, d)
		}
	}
	return out
}

// ClassType is a reference to a class or module-qualified type with
// its type arguments.
type ClassType struct {
	Path     paths.Path
	TypeArgs []Type
}

// Receiver is the target of a member access or method call: either a
// static (module/class-qualified) or a dynamic (object-valued)
// reference.
type Receiver interface {
	receiverNode()
}

// StaticReceiver qualifies a member by class or module.
type StaticReceiver struct {
	Class ClassType
}

func (r *StaticReceiver) receiverNode() {}

// ObjectReceiver qualifies a member by an object expression.
type ObjectReceiver struct {
	Object Expr
}

func (r *ObjectReceiver) receiverNode() {}

// Quantifier selects the binder of an EQuantifier.
type Quantifier int

const (
	Forall Quantifier = iota
	Exists
)

func (q Quantifier) String() string {
	if q == Exists {
		return "exists"
	}
	return "forall"
}

// UpdateRHS is the right-hand side of a declaration or update. When
// MonadicType is set the computation may fail and the assignment uses
// the monadic operator (":-"), which desugars downstream to
// bind/short-circuit/extract; the printer only chooses the token.
type UpdateRHS struct {
	Value       Expr
	MonadicType Type // nil for a plain value
}

// DeclInit pairs one declared variable with its optional initializer.
type DeclInit struct {
	Decl *LocalDecl
	RHS  *UpdateRHS // nil when uninitialized
}
