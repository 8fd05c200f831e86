package ast

import (
	"math/big"

	"github.com/dafmig/yil/internal/paths"
)

// Expr is the unified statement/expression node. The source language
// treats most statements as unit-typed expressions, so one closed
// variant family covers both; the printer decides between statement
// and expression rendering from context.
type Expr interface {
	exprNode()
}

// --- Identifiers and member access ---

// EMemberRef is a member access through a receiver, e.g. r.f.
type EMemberRef struct {
	Receiver Receiver
	Name     string
}

func (e *EMemberRef) exprNode() {}

// EVar references a local or formal by name.
type EVar struct {
	Name string
}

func (e *EVar) exprNode() {}

// EThis is the current receiver object.
type EThis struct{}

func (e *EThis) exprNode() {}

// --- Object construction ---

// ENew allocates a class instance, e.g. new C<int>(args).
type ENew struct {
	Class ClassType
	Args  []Expr
}

func (e *ENew) exprNode() {}

type ENull struct{}

func (e *ENull) exprNode() {}

// EArrayAlloc allocates an uninitialized array, e.g. new int[n, m].
type EArrayAlloc struct {
	Elem Type
	Dims []Expr
}

func (e *EArrayAlloc) exprNode() {}

// --- Literals ---

type EBool struct {
	Value bool
}

func (e *EBool) exprNode() {}

type EChar struct {
	Value rune
}

func (e *EChar) exprNode() {}

type EString struct {
	Value string
}

func (e *EString) exprNode() {}

// EInt is an arbitrary-precision integer literal.
type EInt struct {
	Value *big.Int
}

func (e *EInt) exprNode() {}

// EReal is an arbitrary-precision real literal.
type EReal struct {
	Value *big.Rat
}

func (e *EReal) exprNode() {}

// EToString builds a string from its parts; each part is already
// string-typed when the front end emits it.
type EToString struct {
	Parts []Expr
}

func (e *EToString) exprNode() {}

// --- Binder forms ---

// EQuantifier is forall/exists over bound variables with an optional
// range, e.g. (forall x: int | 0 <= x :: P(x)).
type EQuantifier struct {
	Quant Quantifier
	Vars  []*LocalDecl
	Range Expr // nil when unguarded
	Body  Expr
}

func (e *EQuantifier) exprNode() {}

// EOld references the pre-state of its argument in a postcondition.
type EOld struct {
	Arg Expr
}

func (e *EOld) exprNode() {}

type ETuple struct {
	Elems []Expr
}

func (e *ETuple) exprNode() {}

// EProj selects a tuple component, e.g. t.0.
type EProj struct {
	Arg   Expr
	Index int
}

func (e *EProj) exprNode() {}

// EFun is an anonymous function, e.g. (x: int) => x + 1.
type EFun struct {
	Params []*LocalDecl
	Body   Expr
}

func (e *EFun) exprNode() {}

// --- Collection introduction and elimination ---

type ESetDisplay struct {
	Elems []Expr
}

func (e *ESetDisplay) exprNode() {}

// ESetComprehension is set x | range :: body.
type ESetComprehension struct {
	Vars  []*LocalDecl
	Range Expr
	Body  Expr // nil means the bound variable itself
}

func (e *ESetComprehension) exprNode() {}

type ESeqDisplay struct {
	Elems []Expr
}

func (e *ESeqDisplay) exprNode() {}

// ESeqConstruct is the bounded sequence constructor seq(n, i => f(i)).
type ESeqConstruct struct {
	Length Expr
	Init   Expr
}

func (e *ESeqConstruct) exprNode() {}

// EMapKeys projects a map's key set, e.g. m.Keys.
type EMapKeys struct {
	Arg Expr
}

func (e *EMapKeys) exprNode() {}

// ExprPair is one key/value entry of a map display.
type ExprPair struct {
	Key   Expr
	Value Expr
}

type EMapDisplay struct {
	Pairs []ExprPair
}

func (e *EMapDisplay) exprNode() {}

// EMapComprehension is map x | range :: key := value. Key is the
// optional domain-relabeling function; nil keeps the bound variable.
type EMapComprehension struct {
	Vars  []*LocalDecl
	Range Expr
	Key   Expr // nil means the bound variable itself
	Value Expr
}

func (e *EMapComprehension) exprNode() {}

// ESeqSelect is indexed or sliced access, polymorphic over sequences,
// maps and arrays: t[i], or t[lo..hi] with either end optional.
type ESeqSelect struct {
	Target  Expr
	IsSlice bool
	Low     Expr // nil in a slice means the start
	High    Expr // nil in a slice means the end; unused when !IsSlice
}

func (e *ESeqSelect) exprNode() {}

// EMultiSelect is multi-dimensional array access, e.g. a[i, j].
type EMultiSelect struct {
	Target  Expr
	Indices []Expr
}

func (e *EMultiSelect) exprNode() {}

// ESeqUpdate is the functional update t[i := v].
type ESeqUpdate struct {
	Target Expr
	Index  Expr
	Value  Expr
}

func (e *ESeqUpdate) exprNode() {}

// EArrayUpdate is the in-place statement a[i, j] := v.
type EArrayUpdate struct {
	Target  Expr
	Indices []Expr
	Value   Expr
}

func (e *EArrayUpdate) exprNode() {}

// --- Application forms ---

// EUnOpApply applies a built-in unary operator identified by its
// front-end name, e.g. "Not", "Cardinality".
type EUnOpApply struct {
	Op  string
	Arg Expr
}

func (e *EUnOpApply) exprNode() {}

// EBinOpApply applies a built-in binary operator identified by its
// front-end name, e.g. "And", "SetDifference".
type EBinOpApply struct {
	Op    string
	Left  Expr
	Right Expr
}

func (e *EBinOpApply) exprNode() {}

// EMethodApply invokes a method through a receiver. Ghost marks a
// specification-only call.
type EMethodApply struct {
	Receiver Receiver
	Name     string
	TypeArgs []Type
	Args     []Expr
	Ghost    bool
}

func (e *EMethodApply) exprNode() {}

// EAnonApply applies an anonymous-function value, e.g. f(x).
type EAnonApply struct {
	Fun  Expr
	Args []Expr
}

func (e *EAnonApply) exprNode() {}

// EConstructorApply applies a datatype constructor by path.
type EConstructorApply struct {
	Ctor paths.Path
	Args []Expr
}

func (e *EConstructorApply) exprNode() {}

// ETypeConversion is (e as T).
type ETypeConversion struct {
	Arg Expr
	To  Type
}

func (e *ETypeConversion) exprNode() {}

// ETypeTest is (e is T).
type ETypeTest struct {
	Arg Expr
	Is  Type
}

func (e *ETypeTest) exprNode() {}

// --- Control and statement forms ---

type EBlock struct {
	Stmts []Expr
}

func (e *EBlock) exprNode() {}

// ELet binds variables for the scope of Body. Exact binds values
// (var x := v; body); non-exact chooses witnesses (var x :| P; body).
type ELet struct {
	Vars   []*LocalDecl
	Exact  bool
	Values []Expr // one per var when exact; one condition when not
	Body   Expr
}

func (e *ELet) exprNode() {}

// EIf is both the statement (braced, optional else) and the expression
// (if c then a else b) conditional.
type EIf struct {
	Cond Expr
	Then Expr
	Else Expr // nil when absent; required in expression position
}

func (e *EIf) exprNode() {}

// EWhile is a labeled while loop.
type EWhile struct {
	Label string
	Cond  Expr
	Body  Expr
}

func (e *EWhile) exprNode() {}

// EFor is a labeled indexed loop with direction. Init is an EDecls
// printed without the declaration keyword in initializer position.
type EFor struct {
	Label string
	Init  Expr // an EDecls binding the index
	End   Expr
	Up    bool // true: to, false: downto
	Body  Expr
}

func (e *EFor) exprNode() {}

type EReturn struct {
	Values []Expr
}

func (e *EReturn) exprNode() {}

type EBreak struct {
	Label string // "" breaks the innermost loop
}

func (e *EBreak) exprNode() {}

// EMatch is a match over flattened constructor patterns with an
// optional default arm.
type EMatch struct {
	Target  Expr
	Cases   []*Case
	Default Expr // nil when absent
}

func (e *EMatch) exprNode() {}

// EDecls declares local variables, each with an optional right-hand
// side that is either a plain value or a monadic computation.
type EDecls struct {
	Items []*DeclInit
}

func (e *EDecls) exprNode() {}

// EUpdate is a multi-variable assignment.
type EUpdate struct {
	Targets []Expr
	Values  []*UpdateRHS
}

func (e *EUpdate) exprNode() {}

// EDeclChoice declares variables bound to non-deterministic witnesses
// of a condition: var x :| P(x);
type EDeclChoice struct {
	Vars []*LocalDecl
	Cond Expr
}

func (e *EDeclChoice) exprNode() {}

type EPrint struct {
	Args []Expr
}

func (e *EPrint) exprNode() {}

// --- Proof directives ---

type EAssert struct {
	Cond Expr
}

func (e *EAssert) exprNode() {}

type EExpect struct {
	Cond Expr
}

func (e *EExpect) exprNode() {}

type EAssume struct {
	Cond Expr
}

func (e *EAssume) exprNode() {}

type EReveal struct {
	Targets []Expr
}

func (e *EReveal) exprNode() {}

// ECommented wraps a node with a source comment.
type ECommented struct {
	Comment string
	Arg     Expr
}

func (e *ECommented) exprNode() {}

// EUnimplemented is the explicit placeholder for an unmodeled
// expression or statement.
type EUnimplemented struct {
	Note string
}

func (e *EUnimplemented) exprNode() {}
