package ast

import (
	"github.com/google/uuid"

	"github.com/dafmig/yil/internal/paths"
)

// Meta carries per-node source information: an optional human comment,
// an optional source position and a raw prelude string.
//
// Meta never participates in structural equality or hashing: two Meta
// values always compare equal through Equal/Hash regardless of content,
// so that diffing over the IR ignores position/comment noise by
// construction. See ast_equal.go.
type Meta struct {
	Comment string
	Pos     *Position
	Prelude string
}

// Position is a source location as reported by the front end.
type Position struct {
	Filename string
	Offset   int
	Line     int
	Col      int
}

// Program is the root of the IR. Name is the package/root-namespace
// name; Decls are the unnested root-level declarations.
//
// ID stamps the identity of the tree. Trees are immutable once built,
// so a cache keyed by ID (see resolve.Resolver) is automatically
// invalidated when a caller builds or loads a new tree. ID, like Meta,
// never participates in Equal/Hash.
type Program struct {
	ID    uuid.UUID
	Name  string
	Decls []Decl
	Meta  Meta
}

// NewProgram builds a program with a fresh identity stamp.
func NewProgram(name string, decls []Decl, meta Meta) *Program {
	return &Program{ID: uuid.New(), Name: name, Decls: decls, Meta: meta}
}

// Decl is a declaration node. The variant set is closed: every Decl in
// a well-formed tree is one of the structs below.
type Decl interface {
	declNode()
}

// Include is a preprocessor-like file inclusion directive.
// include "path/with/slashes"
type Include struct {
	Target string // included file path, slash-separated
	Meta   Meta
}

func (d *Include) declNode() {}

// Module is a pure namespace; children are statically visible at their
// fully qualified path. Module abstraction/inheritance is not modeled.
type Module struct {
	Name  string
	Decls []Decl
	Meta  Meta
}

func (d *Module) declNode() {}

// Datatype is a sum type. Each constructor introduces a distinct
// runtime tag even when structurally identical to another. Members are
// nested declarations such as helper methods.
type Datatype struct {
	Name       string
	TypeParams []TypeArg
	Ctors      []*DatatypeConstructor
	Members    []Decl
	Meta       Meta
}

func (d *Datatype) declNode() {}

// Class is a reference type, optionally a trait, with supertypes.
type Class struct {
	Name       string
	IsTrait    bool
	TypeParams []TypeArg
	SuperTypes []Type
	Members    []Decl
	Meta       Meta
}

func (d *Class) declNode() {}

// ClassConstructor initializes a class instance.
// constructor(x: int) ensures Valid() { ... }
type ClassConstructor struct {
	Name       string
	TypeParams []TypeArg
	Ins        *InputSpec
	Ensures    []Expr
	Body       Expr // nil when only declared
	Meta       Meta
}

func (d *ClassConstructor) declNode() {}

// TypeDef is a type synonym, or a subset type when Predicate is set:
// type Small = x: int | x < 10
// IsNewType marks a non-subtype numeric wrapper over the unbounded
// integer or real base type (no type parameters).
type TypeDef struct {
	Name       string
	TypeParams []TypeArg
	Super      Type
	SubsetVar  string // bound variable of the predicate, "" if none
	Predicate  Expr   // nil for a plain synonym
	IsNewType  bool
	Meta       Meta
}

func (d *TypeDef) declNode() {}

// Field is a class or datatype member.
//
// Mutable fields appear only inside classes and never carry an
// initializer at declaration site; initialization belongs to the
// constructor. Immutable fields may carry one.
type Field struct {
	Name      string
	Type      Type
	Init      Expr // nil when uninitialized
	Ghost     bool
	IsStatic  bool
	IsMutable bool
	Meta      Meta
}

func (d *Field) declNode() {}

// MethodKind distinguishes the callable declaration forms.
type MethodKind int

const (
	MethodKindMethod MethodKind = iota
	MethodKindFunctionMethod
	MethodKindFunction
	MethodKindLemma
	MethodKindPredicate
	MethodKindPredicateMethod
)

// IntrinsicGhost reports whether the kind is ghost regardless of the
// declaration's explicit ghost flag.
func (k MethodKind) IntrinsicGhost() bool {
	switch k {
	case MethodKindFunction, MethodKindLemma, MethodKindPredicate:
		return true
	default:
		return false
	}
}

// FunctionSyntax reports whether the kind prints with an expression
// body (function syntax) rather than a statement body.
func (k MethodKind) FunctionSyntax() bool {
	switch k {
	case MethodKindFunction, MethodKindFunctionMethod,
		MethodKindPredicate, MethodKindPredicateMethod:
		return true
	default:
		return false
	}
}

func (k MethodKind) String() string {
	switch k {
	case MethodKindMethod:
		return "method"
	case MethodKindFunctionMethod:
		return "function method"
	case MethodKindFunction:
		return "function"
	case MethodKindLemma:
		return "lemma"
	case MethodKindPredicate:
		return "predicate"
	case MethodKindPredicateMethod:
		return "predicate method"
	default:
		return "method"
	}
}

// Method is any callable member: method, function, lemma, predicate.
type Method struct {
	Kind       MethodKind
	Name       string
	TypeParams []TypeArg
	Ins        *InputSpec
	Outs       *OutputSpec
	Modifies   []Expr
	Reads      []Expr
	Decreases  []Expr
	Body       Expr // nil for a signature-only declaration
	Ghost      bool
	IsStatic   bool
	Meta       Meta
}

func (d *Method) declNode() {}

// IsGhost folds the explicit flag with the kind's intrinsic ghostness.
func (d *Method) IsGhost() bool {
	return d.Ghost || d.Kind.IntrinsicGhost()
}

// ImportMode selects the import directive form.
type ImportMode int

const (
	ImportDefault ImportMode = iota // import M
	ImportOpened                    // import opened M
	ImportAliased                   // import A = M
)

// Import is a module-visibility directive.
type Import struct {
	Mode   ImportMode
	Alias  string // set only for ImportAliased
	Target paths.Path
	Meta   Meta
}

func (d *Import) declNode() {}

// ExportSpec lists what an export set provides and reveals.
type ExportSpec struct {
	Name     string // "" for the default export set
	Provides []string
	Reveals  []string
}

// Export is a module export directive.
// export provides f, g reveals D
type Export struct {
	Spec ExportSpec
	Meta Meta
}

func (d *Export) declNode() {}

// DeclUnimplemented is the explicit placeholder for a front-end
// construct not yet modeled. It must never silently coerce to another
// variant; printing it yields a visible placeholder token.
type DeclUnimplemented struct {
	Note string
	Meta Meta
}

func (d *DeclUnimplemented) declNode() {}

// Variance of a type parameter.
type Variance int

const (
	VarianceNone Variance = iota
	VarianceCo
	VarianceContra
)

// TypeArg is a declared type parameter. RequiresEquality constrains
// instantiation to types supporting equality.
type TypeArg struct {
	Name             string
	Variance         Variance
	RequiresEquality bool
}

// NameOf returns the declaration's name; the directive-only variants
// (Include, Import, Export) have the empty name.
func NameOf(d Decl) string {
	switch n := d.(type) {
	case *Module:
		return n.Name
	case *Datatype:
		return n.Name
	case *Class:
		return n.Name
	case *ClassConstructor:
		return n.Name
	case *TypeDef:
		return n.Name
	case *Field:
		return n.Name
	case *Method:
		return n.Name
	default:
		return ""
	}
}

// MetaOf returns the declaration's Meta.
func MetaOf(d Decl) Meta {
	switch n := d.(type) {
	case *Include:
		return n.Meta
	case *Module:
		return n.Meta
	case *Datatype:
		return n.Meta
	case *Class:
		return n.Meta
	case *ClassConstructor:
		return n.Meta
	case *TypeDef:
		return n.Meta
	case *Field:
		return n.Meta
	case *Method:
		return n.Meta
	case *Import:
		return n.Meta
	case *Export:
		return n.Meta
	case *DeclUnimplemented:
		return n.Meta
	default:
		return Meta{}
	}
}

// TypeParamsOf returns the declaration's type parameters, if any.
func TypeParamsOf(d Decl) []TypeArg {
	switch n := d.(type) {
	case *Datatype:
		return n.TypeParams
	case *Class:
		return n.TypeParams
	case *ClassConstructor:
		return n.TypeParams
	case *TypeDef:
		return n.TypeParams
	case *Method:
		return n.TypeParams
	default:
		return nil
	}
}

// ChildrenOf returns the structural children of a declaration. Only
// Module, Datatype and Class have children.
func ChildrenOf(d Decl) []Decl {
	switch n := d.(type) {
	case *Module:
		return n.Decls
	case *Datatype:
		return n.Members
	case *Class:
		return n.Members
	default:
		return nil
	}
}
