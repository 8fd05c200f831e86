package ast

import "github.com/dafmig/yil/internal/paths"

// Type is a type node in the IR.
type Type interface {
	typeNode()
}

// TUnit is the empty tuple type ().
type TUnit struct{}

func (t *TUnit) typeNode() {}

type TBool struct{}

func (t *TBool) typeNode() {}

type TChar struct{}

func (t *TChar) typeNode() {}

// The numeric families each carry an optional bit-width bound.
// Bound == nil means the unbounded base type; for TReal a bound selects
// a fixed-size floating representation (32/64).

type TString struct {
	Bound *int
}

func (t *TString) typeNode() {}

type TNat struct {
	Bound *int
}

func (t *TNat) typeNode() {}

type TInt struct {
	Bound *int
}

func (t *TInt) typeNode() {}

type TReal struct {
	Bound *int
}

func (t *TReal) typeNode() {}

// TBitVector is a fixed-width bit vector, e.g. bv8.
type TBitVector struct {
	Width int
}

func (t *TBitVector) typeNode() {}

// TTuple is a structural tuple type, e.g. (int, bool).
type TTuple struct {
	Elems []Type
}

func (t *TTuple) typeNode() {}

// TFunc is a function type, e.g. (int, int) -> bool.
type TFunc struct {
	Ins []Type
	Out Type
}

func (t *TFunc) typeNode() {}

type TSeq struct {
	Bound *int
	Elem  Type
}

func (t *TSeq) typeNode() {}

type TSet struct {
	Bound *int
	Elem  Type
}

func (t *TSet) typeNode() {}

type TMap struct {
	Bound *int
	Key   Type
	Value Type
}

func (t *TMap) typeNode() {}

// TArray is an array type of any dimension; Dims == nil means
// one-dimensional. Prints as array<T>, array2<T>, ...
type TArray struct {
	Dims *int
	Elem Type
}

func (t *TArray) typeNode() {}

// TObject is the supertype of all reference types.
type TObject struct{}

func (t *TObject) typeNode() {}

// TNullable is a possibly-null reference type, e.g. C?.
type TNullable struct {
	Base Type
}

func (t *TNullable) typeNode() {}

// TApply is a nominal reference to a declared type.
type TApply struct {
	Path paths.Path
	Args []Type
}

func (t *TApply) typeNode() {}

// TVar is a type-parameter reference.
type TVar struct {
	Name string
}

func (t *TVar) typeNode() {}

// TUnimplemented is the explicit placeholder for an unmodeled type.
type TUnimplemented struct {
	Note string
}

func (t *TUnimplemented) typeNode() {}
