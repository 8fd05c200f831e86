package ast

import (
	"encoding/binary"
	"hash/fnv"
)

// Structural equality and hashing over the IR.
//
// This is the comparison API downstream diffing must use. Meta and
// Program.ID are excluded from both Equal and Hash, so trees that
// differ only in comments, source positions, preludes or identity
// stamps compare equal and hash identically.

// EqualPrograms compares two programs structurally.
func EqualPrograms(a, b *Program) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Name == b.Name && equalDeclSlices(a.Decls, b.Decls)
}

// EqualDecl compares two declarations structurally.
func EqualDecl(a, b Decl) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case *Include:
		y, ok := b.(*Include)
		return ok && x.Target == y.Target
	case *Module:
		y, ok := b.(*Module)
		return ok && x.Name == y.Name && equalDeclSlices(x.Decls, y.Decls)
	case *Datatype:
		y, ok := b.(*Datatype)
		return ok && x.Name == y.Name &&
			equalTypeArgs(x.TypeParams, y.TypeParams) &&
			equalCtors(x.Ctors, y.Ctors) &&
			equalDeclSlices(x.Members, y.Members)
	case *Class:
		y, ok := b.(*Class)
		return ok && x.Name == y.Name && x.IsTrait == y.IsTrait &&
			equalTypeArgs(x.TypeParams, y.TypeParams) &&
			equalTypeSlices(x.SuperTypes, y.SuperTypes) &&
			equalDeclSlices(x.Members, y.Members)
	case *ClassConstructor:
		y, ok := b.(*ClassConstructor)
		return ok && x.Name == y.Name &&
			equalTypeArgs(x.TypeParams, y.TypeParams) &&
			equalInputSpec(x.Ins, y.Ins) &&
			equalExprSlices(x.Ensures, y.Ensures) &&
			EqualExpr(x.Body, y.Body)
	case *TypeDef:
		y, ok := b.(*TypeDef)
		return ok && x.Name == y.Name &&
			equalTypeArgs(x.TypeParams, y.TypeParams) &&
			EqualType(x.Super, y.Super) &&
			x.SubsetVar == y.SubsetVar &&
			EqualExpr(x.Predicate, y.Predicate) &&
			x.IsNewType == y.IsNewType
	case *Field:
		y, ok := b.(*Field)
		return ok && x.Name == y.Name && EqualType(x.Type, y.Type) &&
			EqualExpr(x.Init, y.Init) && x.Ghost == y.Ghost &&
			x.IsStatic == y.IsStatic && x.IsMutable == y.IsMutable
	case *Method:
		y, ok := b.(*Method)
		return ok && x.Kind == y.Kind && x.Name == y.Name &&
			equalTypeArgs(x.TypeParams, y.TypeParams) &&
			equalInputSpec(x.Ins, y.Ins) &&
			equalOutputSpec(x.Outs, y.Outs) &&
			equalExprSlices(x.Modifies, y.Modifies) &&
			equalExprSlices(x.Reads, y.Reads) &&
			equalExprSlices(x.Decreases, y.Decreases) &&
			EqualExpr(x.Body, y.Body) &&
			x.Ghost == y.Ghost && x.IsStatic == y.IsStatic
	case *Import:
		y, ok := b.(*Import)
		return ok && x.Mode == y.Mode && x.Alias == y.Alias &&
			x.Target.Equal(y.Target)
	case *Export:
		y, ok := b.(*Export)
		return ok && x.Spec.Name == y.Spec.Name &&
			equalStringSlices(x.Spec.Provides, y.Spec.Provides) &&
			equalStringSlices(x.Spec.Reveals, y.Spec.Reveals)
	case *DeclUnimplemented:
		y, ok := b.(*DeclUnimplemented)
		return ok && x.Note == y.Note
	default:
		return false
	}
}

// EqualType compares two types structurally.
func EqualType(a, b Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case *TUnit:
		_, ok := b.(*TUnit)
		return ok
	case *TBool:
		_, ok := b.(*TBool)
		return ok
	case *TChar:
		_, ok := b.(*TChar)
		return ok
	case *TString:
		y, ok := b.(*TString)
		return ok && equalBound(x.Bound, y.Bound)
	case *TNat:
		y, ok := b.(*TNat)
		return ok && equalBound(x.Bound, y.Bound)
	case *TInt:
		y, ok := b.(*TInt)
		return ok && equalBound(x.Bound, y.Bound)
	case *TReal:
		y, ok := b.(*TReal)
		return ok && equalBound(x.Bound, y.Bound)
	case *TBitVector:
		y, ok := b.(*TBitVector)
		return ok && x.Width == y.Width
	case *TTuple:
		y, ok := b.(*TTuple)
		return ok && equalTypeSlices(x.Elems, y.Elems)
	case *TFunc:
		y, ok := b.(*TFunc)
		return ok && equalTypeSlices(x.Ins, y.Ins) && EqualType(x.Out, y.Out)
	case *TSeq:
		y, ok := b.(*TSeq)
		return ok && equalBound(x.Bound, y.Bound) && EqualType(x.Elem, y.Elem)
	case *TSet:
		y, ok := b.(*TSet)
		return ok && equalBound(x.Bound, y.Bound) && EqualType(x.Elem, y.Elem)
	case *TMap:
		y, ok := b.(*TMap)
		return ok && equalBound(x.Bound, y.Bound) &&
			EqualType(x.Key, y.Key) && EqualType(x.Value, y.Value)
	case *TArray:
		y, ok := b.(*TArray)
		return ok && equalBound(x.Dims, y.Dims) && EqualType(x.Elem, y.Elem)
	case *TObject:
		_, ok := b.(*TObject)
		return ok
	case *TNullable:
		y, ok := b.(*TNullable)
		return ok && EqualType(x.Base, y.Base)
	case *TApply:
		y, ok := b.(*TApply)
		return ok && x.Path.Equal(y.Path) && equalTypeSlices(x.Args, y.Args)
	case *TVar:
		y, ok := b.(*TVar)
		return ok && x.Name == y.Name
	case *TUnimplemented:
		y, ok := b.(*TUnimplemented)
		return ok && x.Note == y.Note
	default:
		return false
	}
}

// EqualExpr compares two expressions structurally.
func EqualExpr(a, b Expr) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case *EMemberRef:
		y, ok := b.(*EMemberRef)
		return ok && equalReceiver(x.Receiver, y.Receiver) && x.Name == y.Name
	case *EVar:
		y, ok := b.(*EVar)
		return ok && x.Name == y.Name
	case *EThis:
		_, ok := b.(*EThis)
		return ok
	case *ENew:
		y, ok := b.(*ENew)
		return ok && equalClassType(x.Class, y.Class) && equalExprSlices(x.Args, y.Args)
	case *ENull:
		_, ok := b.(*ENull)
		return ok
	case *EArrayAlloc:
		y, ok := b.(*EArrayAlloc)
		return ok && EqualType(x.Elem, y.Elem) && equalExprSlices(x.Dims, y.Dims)
	case *EBool:
		y, ok := b.(*EBool)
		return ok && x.Value == y.Value
	case *EChar:
		y, ok := b.(*EChar)
		return ok && x.Value == y.Value
	case *EString:
		y, ok := b.(*EString)
		return ok && x.Value == y.Value
	case *EInt:
		y, ok := b.(*EInt)
		return ok && x.Value.Cmp(y.Value) == 0
	case *EReal:
		y, ok := b.(*EReal)
		return ok && x.Value.Cmp(y.Value) == 0
	case *EToString:
		y, ok := b.(*EToString)
		return ok && equalExprSlices(x.Parts, y.Parts)
	case *EQuantifier:
		y, ok := b.(*EQuantifier)
		return ok && x.Quant == y.Quant && equalLocalSlices(x.Vars, y.Vars) &&
			EqualExpr(x.Range, y.Range) && EqualExpr(x.Body, y.Body)
	case *EOld:
		y, ok := b.(*EOld)
		return ok && EqualExpr(x.Arg, y.Arg)
	case *ETuple:
		y, ok := b.(*ETuple)
		return ok && equalExprSlices(x.Elems, y.Elems)
	case *EProj:
		y, ok := b.(*EProj)
		return ok && EqualExpr(x.Arg, y.Arg) && x.Index == y.Index
	case *EFun:
		y, ok := b.(*EFun)
		return ok && equalLocalSlices(x.Params, y.Params) && EqualExpr(x.Body, y.Body)
	case *ESetDisplay:
		y, ok := b.(*ESetDisplay)
		return ok && equalExprSlices(x.Elems, y.Elems)
	case *ESetComprehension:
		y, ok := b.(*ESetComprehension)
		return ok && equalLocalSlices(x.Vars, y.Vars) &&
			EqualExpr(x.Range, y.Range) && EqualExpr(x.Body, y.Body)
	case *ESeqDisplay:
		y, ok := b.(*ESeqDisplay)
		return ok && equalExprSlices(x.Elems, y.Elems)
	case *ESeqConstruct:
		y, ok := b.(*ESeqConstruct)
		return ok && EqualExpr(x.Length, y.Length) && EqualExpr(x.Init, y.Init)
	case *EMapKeys:
		y, ok := b.(*EMapKeys)
		return ok && EqualExpr(x.Arg, y.Arg)
	case *EMapDisplay:
		y, ok := b.(*EMapDisplay)
		if !ok || len(x.Pairs) != len(y.Pairs) {
			return false
		}
		for i := range x.Pairs {
			if !EqualExpr(x.Pairs[i].Key, y.Pairs[i].Key) ||
				!EqualExpr(x.Pairs[i].Value, y.Pairs[i].Value) {
				return false
			}
		}
		return true
	case *EMapComprehension:
		y, ok := b.(*EMapComprehension)
		return ok && equalLocalSlices(x.Vars, y.Vars) &&
			EqualExpr(x.Range, y.Range) &&
			EqualExpr(x.Key, y.Key) && EqualExpr(x.Value, y.Value)
	case *ESeqSelect:
		y, ok := b.(*ESeqSelect)
		return ok && EqualExpr(x.Target, y.Target) && x.IsSlice == y.IsSlice &&
			EqualExpr(x.Low, y.Low) && EqualExpr(x.High, y.High)
	case *EMultiSelect:
		y, ok := b.(*EMultiSelect)
		return ok && EqualExpr(x.Target, y.Target) && equalExprSlices(x.Indices, y.Indices)
	case *ESeqUpdate:
		y, ok := b.(*ESeqUpdate)
		return ok && EqualExpr(x.Target, y.Target) &&
			EqualExpr(x.Index, y.Index) && EqualExpr(x.Value, y.Value)
	case *EArrayUpdate:
		y, ok := b.(*EArrayUpdate)
		return ok && EqualExpr(x.Target, y.Target) &&
			equalExprSlices(x.Indices, y.Indices) && EqualExpr(x.Value, y.Value)
	case *EUnOpApply:
		y, ok := b.(*EUnOpApply)
		return ok && x.Op == y.Op && EqualExpr(x.Arg, y.Arg)
	case *EBinOpApply:
		y, ok := b.(*EBinOpApply)
		return ok && x.Op == y.Op &&
			EqualExpr(x.Left, y.Left) && EqualExpr(x.Right, y.Right)
	case *EMethodApply:
		y, ok := b.(*EMethodApply)
		return ok && equalReceiver(x.Receiver, y.Receiver) && x.Name == y.Name &&
			equalTypeSlices(x.TypeArgs, y.TypeArgs) &&
			equalExprSlices(x.Args, y.Args) && x.Ghost == y.Ghost
	case *EAnonApply:
		y, ok := b.(*EAnonApply)
		return ok && EqualExpr(x.Fun, y.Fun) && equalExprSlices(x.Args, y.Args)
	case *EConstructorApply:
		y, ok := b.(*EConstructorApply)
		return ok && x.Ctor.Equal(y.Ctor) && equalExprSlices(x.Args, y.Args)
	case *ETypeConversion:
		y, ok := b.(*ETypeConversion)
		return ok && EqualExpr(x.Arg, y.Arg) && EqualType(x.To, y.To)
	case *ETypeTest:
		y, ok := b.(*ETypeTest)
		return ok && EqualExpr(x.Arg, y.Arg) && EqualType(x.Is, y.Is)
	case *EBlock:
		y, ok := b.(*EBlock)
		return ok && equalExprSlices(x.Stmts, y.Stmts)
	case *ELet:
		y, ok := b.(*ELet)
		return ok && equalLocalSlices(x.Vars, y.Vars) && x.Exact == y.Exact &&
			equalExprSlices(x.Values, y.Values) && EqualExpr(x.Body, y.Body)
	case *EIf:
		y, ok := b.(*EIf)
		return ok && EqualExpr(x.Cond, y.Cond) &&
			EqualExpr(x.Then, y.Then) && EqualExpr(x.Else, y.Else)
	case *EWhile:
		y, ok := b.(*EWhile)
		return ok && x.Label == y.Label &&
			EqualExpr(x.Cond, y.Cond) && EqualExpr(x.Body, y.Body)
	case *EFor:
		y, ok := b.(*EFor)
		return ok && x.Label == y.Label && EqualExpr(x.Init, y.Init) &&
			EqualExpr(x.End, y.End) && x.Up == y.Up && EqualExpr(x.Body, y.Body)
	case *EReturn:
		y, ok := b.(*EReturn)
		return ok && equalExprSlices(x.Values, y.Values)
	case *EBreak:
		y, ok := b.(*EBreak)
		return ok && x.Label == y.Label
	case *EMatch:
		y, ok := b.(*EMatch)
		if !ok || len(x.Cases) != len(y.Cases) {
			return false
		}
		for i := range x.Cases {
			if !equalCase(x.Cases[i], y.Cases[i]) {
				return false
			}
		}
		return EqualExpr(x.Target, y.Target) && EqualExpr(x.Default, y.Default)
	case *EDecls:
		y, ok := b.(*EDecls)
		if !ok || len(x.Items) != len(y.Items) {
			return false
		}
		for i := range x.Items {
			if !equalLocal(x.Items[i].Decl, y.Items[i].Decl) ||
				!equalUpdateRHS(x.Items[i].RHS, y.Items[i].RHS) {
				return false
			}
		}
		return true
	case *EUpdate:
		y, ok := b.(*EUpdate)
		if !ok || len(x.Values) != len(y.Values) {
			return false
		}
		for i := range x.Values {
			if !equalUpdateRHS(x.Values[i], y.Values[i]) {
				return false
			}
		}
		return equalExprSlices(x.Targets, y.Targets)
	case *EDeclChoice:
		y, ok := b.(*EDeclChoice)
		return ok && equalLocalSlices(x.Vars, y.Vars) && EqualExpr(x.Cond, y.Cond)
	case *EPrint:
		y, ok := b.(*EPrint)
		return ok && equalExprSlices(x.Args, y.Args)
	case *EAssert:
		y, ok := b.(*EAssert)
		return ok && EqualExpr(x.Cond, y.Cond)
	case *EExpect:
		y, ok := b.(*EExpect)
		return ok && EqualExpr(x.Cond, y.Cond)
	case *EAssume:
		y, ok := b.(*EAssume)
		return ok && EqualExpr(x.Cond, y.Cond)
	case *EReveal:
		y, ok := b.(*EReveal)
		return ok && equalExprSlices(x.Targets, y.Targets)
	case *ECommented:
		y, ok := b.(*ECommented)
		// The comment text is Meta-like noise; only the wrapped node counts.
		return ok && EqualExpr(x.Arg, y.Arg)
	case *EUnimplemented:
		y, ok := b.(*EUnimplemented)
		return ok && x.Note == y.Note
	default:
		return false
	}
}

func equalDeclSlices(a, b []Decl) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !EqualDecl(a[i], b[i]) {
			return false
		}
	}
	return true
}

func equalTypeSlices(a, b []Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !EqualType(a[i], b[i]) {
			return false
		}
	}
	return true
}

func equalExprSlices(a, b []Expr) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !EqualExpr(a[i], b[i]) {
			return false
		}
	}
	return true
}

func equalStringSlices(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalBound(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func equalTypeArgs(a, b []TypeArg) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func equalLocal(a, b *LocalDecl) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Name == b.Name && EqualType(a.Type, b.Type) && a.Ghost == b.Ghost
}

func equalLocalSlices(a, b []*LocalDecl) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !equalLocal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func equalCtors(a, b []*DatatypeConstructor) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Name != b[i].Name || !equalLocalSlices(a[i].Ins, b[i].Ins) {
			return false
		}
	}
	return true
}

func equalInputSpec(a, b *InputSpec) bool {
	if a == nil || b == nil {
		return a == b
	}
	return equalLocalSlices(a.Decls, b.Decls) &&
		equalExprSlices(a.Preconditions, b.Preconditions)
}

func equalOutputSpec(a, b *OutputSpec) bool {
	if a == nil || b == nil {
		return a == b
	}
	return equalLocalSlices(a.Decls, b.Decls) &&
		equalExprSlices(a.Postconditions, b.Postconditions)
}

func equalClassType(a, b ClassType) bool {
	return a.Path.Equal(b.Path) && equalTypeSlices(a.TypeArgs, b.TypeArgs)
}

func equalReceiver(a, b Receiver) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case *StaticReceiver:
		y, ok := b.(*StaticReceiver)
		return ok && equalClassType(x.Class, y.Class)
	case *ObjectReceiver:
		y, ok := b.(*ObjectReceiver)
		return ok && EqualExpr(x.Object, y.Object)
	default:
		return false
	}
}

func equalCase(a, b *Case) bool {
	if a == nil || b == nil {
		return a == b
	}
	return equalLocalSlices(a.BoundVars, b.BoundVars) &&
		EqualExpr(a.Pattern, b.Pattern) && EqualExpr(a.Body, b.Body)
}

func equalUpdateRHS(a, b *UpdateRHS) bool {
	if a == nil || b == nil {
		return a == b
	}
	return EqualExpr(a.Value, b.Value) && EqualType(a.MonadicType, b.MonadicType)
}

// --- Hashing ---

type hasher struct {
	sum uint64
}

func newHasher() *hasher { return &hasher{sum: 14695981039346656037} }

func (h *hasher) bytes(p []byte) {
	f := fnv.New64a()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], h.sum)
	f.Write(buf[:])
	f.Write(p)
	h.sum = f.Sum64()
}

func (h *hasher) str(s string) { h.bytes([]byte(s)) }

func (h *hasher) tag(t string) { h.str("\x00" + t) }

func (h *hasher) num(n int) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(n))
	h.bytes(buf[:])
}

func (h *hasher) boolean(b bool) {
	if b {
		h.num(1)
	} else {
		h.num(0)
	}
}

func (h *hasher) bound(b *int) {
	if b == nil {
		h.num(-1)
	} else {
		h.num(*b)
	}
}

// HashProgram returns a structural hash consistent with EqualPrograms.
func HashProgram(p *Program) uint64 {
	h := newHasher()
	h.tag("program")
	h.str(p.Name)
	for _, d := range p.Decls {
		h.decl(d)
	}
	return h.sum
}

// HashDecl returns a structural hash consistent with EqualDecl.
func HashDecl(d Decl) uint64 {
	h := newHasher()
	h.decl(d)
	return h.sum
}

// HashExpr returns a structural hash consistent with EqualExpr.
func HashExpr(e Expr) uint64 {
	h := newHasher()
	h.expr(e)
	return h.sum
}

// HashType returns a structural hash consistent with EqualType.
func HashType(t Type) uint64 {
	h := newHasher()
	h.typ(t)
	return h.sum
}

func (h *hasher) decl(d Decl) {
	if d == nil {
		h.tag("nil")
		return
	}
	switch n := d.(type) {
	case *Include:
		h.tag("include")
		h.str(n.Target)
	case *Module:
		h.tag("module")
		h.str(n.Name)
		for _, c := range n.Decls {
			h.decl(c)
		}
	case *Datatype:
		h.tag("datatype")
		h.str(n.Name)
		h.typeArgs(n.TypeParams)
		for _, c := range n.Ctors {
			h.str(c.Name)
			h.locals(c.Ins)
		}
		for _, m := range n.Members {
			h.decl(m)
		}
	case *Class:
		h.tag("class")
		h.str(n.Name)
		h.boolean(n.IsTrait)
		h.typeArgs(n.TypeParams)
		for _, s := range n.SuperTypes {
			h.typ(s)
		}
		for _, m := range n.Members {
			h.decl(m)
		}
	case *ClassConstructor:
		h.tag("ctor")
		h.str(n.Name)
		h.typeArgs(n.TypeParams)
		h.inputSpec(n.Ins)
		h.exprs(n.Ensures)
		h.expr(n.Body)
	case *TypeDef:
		h.tag("typedef")
		h.str(n.Name)
		h.typeArgs(n.TypeParams)
		h.typ(n.Super)
		h.str(n.SubsetVar)
		h.expr(n.Predicate)
		h.boolean(n.IsNewType)
	case *Field:
		h.tag("field")
		h.str(n.Name)
		h.typ(n.Type)
		h.expr(n.Init)
		h.boolean(n.Ghost)
		h.boolean(n.IsStatic)
		h.boolean(n.IsMutable)
	case *Method:
		h.tag("method")
		h.num(int(n.Kind))
		h.str(n.Name)
		h.typeArgs(n.TypeParams)
		h.inputSpec(n.Ins)
		h.outputSpec(n.Outs)
		h.exprs(n.Modifies)
		h.exprs(n.Reads)
		h.exprs(n.Decreases)
		h.expr(n.Body)
		h.boolean(n.Ghost)
		h.boolean(n.IsStatic)
	case *Import:
		h.tag("import")
		h.num(int(n.Mode))
		h.str(n.Alias)
		h.str(n.Target.String())
	case *Export:
		h.tag("export")
		h.str(n.Spec.Name)
		for _, s := range n.Spec.Provides {
			h.str(s)
		}
		h.tag("reveals")
		for _, s := range n.Spec.Reveals {
			h.str(s)
		}
	case *DeclUnimplemented:
		h.tag("decl-unimplemented")
		h.str(n.Note)
	}
}

func (h *hasher) typ(t Type) {
	if t == nil {
		h.tag("nil")
		return
	}
	switch n := t.(type) {
	case *TUnit:
		h.tag("unit")
	case *TBool:
		h.tag("bool")
	case *TChar:
		h.tag("char")
	case *TString:
		h.tag("string")
		h.bound(n.Bound)
	case *TNat:
		h.tag("nat")
		h.bound(n.Bound)
	case *TInt:
		h.tag("int")
		h.bound(n.Bound)
	case *TReal:
		h.tag("real")
		h.bound(n.Bound)
	case *TBitVector:
		h.tag("bv")
		h.num(n.Width)
	case *TTuple:
		h.tag("tuple")
		h.types(n.Elems)
	case *TFunc:
		h.tag("func")
		h.types(n.Ins)
		h.typ(n.Out)
	case *TSeq:
		h.tag("seq")
		h.bound(n.Bound)
		h.typ(n.Elem)
	case *TSet:
		h.tag("set")
		h.bound(n.Bound)
		h.typ(n.Elem)
	case *TMap:
		h.tag("map")
		h.bound(n.Bound)
		h.typ(n.Key)
		h.typ(n.Value)
	case *TArray:
		h.tag("array")
		h.bound(n.Dims)
		h.typ(n.Elem)
	case *TObject:
		h.tag("object")
	case *TNullable:
		h.tag("nullable")
		h.typ(n.Base)
	case *TApply:
		h.tag("apply")
		h.str(n.Path.String())
		h.types(n.Args)
	case *TVar:
		h.tag("tvar")
		h.str(n.Name)
	case *TUnimplemented:
		h.tag("type-unimplemented")
		h.str(n.Note)
	}
}

func (h *hasher) expr(e Expr) {
	if e == nil {
		h.tag("nil")
		return
	}
	switch n := e.(type) {
	case *EMemberRef:
		h.tag("member")
		h.receiver(n.Receiver)
		h.str(n.Name)
	case *EVar:
		h.tag("var")
		h.str(n.Name)
	case *EThis:
		h.tag("this")
	case *ENew:
		h.tag("new")
		h.classType(n.Class)
		h.exprs(n.Args)
	case *ENull:
		h.tag("null")
	case *EArrayAlloc:
		h.tag("array-alloc")
		h.typ(n.Elem)
		h.exprs(n.Dims)
	case *EBool:
		h.tag("lit-bool")
		h.boolean(n.Value)
	case *EChar:
		h.tag("lit-char")
		h.num(int(n.Value))
	case *EString:
		h.tag("lit-string")
		h.str(n.Value)
	case *EInt:
		h.tag("lit-int")
		h.str(n.Value.String())
	case *EReal:
		h.tag("lit-real")
		h.str(n.Value.RatString())
	case *EToString:
		h.tag("tostring")
		h.exprs(n.Parts)
	case *EQuantifier:
		h.tag("quantifier")
		h.num(int(n.Quant))
		h.locals(n.Vars)
		h.expr(n.Range)
		h.expr(n.Body)
	case *EOld:
		h.tag("old")
		h.expr(n.Arg)
	case *ETuple:
		h.tag("tuple")
		h.exprs(n.Elems)
	case *EProj:
		h.tag("proj")
		h.expr(n.Arg)
		h.num(n.Index)
	case *EFun:
		h.tag("fun")
		h.locals(n.Params)
		h.expr(n.Body)
	case *ESetDisplay:
		h.tag("set-display")
		h.exprs(n.Elems)
	case *ESetComprehension:
		h.tag("set-comp")
		h.locals(n.Vars)
		h.expr(n.Range)
		h.expr(n.Body)
	case *ESeqDisplay:
		h.tag("seq-display")
		h.exprs(n.Elems)
	case *ESeqConstruct:
		h.tag("seq-construct")
		h.expr(n.Length)
		h.expr(n.Init)
	case *EMapKeys:
		h.tag("map-keys")
		h.expr(n.Arg)
	case *EMapDisplay:
		h.tag("map-display")
		for _, p := range n.Pairs {
			h.expr(p.Key)
			h.expr(p.Value)
		}
	case *EMapComprehension:
		h.tag("map-comp")
		h.locals(n.Vars)
		h.expr(n.Range)
		h.expr(n.Key)
		h.expr(n.Value)
	case *ESeqSelect:
		h.tag("seq-select")
		h.expr(n.Target)
		h.boolean(n.IsSlice)
		h.expr(n.Low)
		h.expr(n.High)
	case *EMultiSelect:
		h.tag("multi-select")
		h.expr(n.Target)
		h.exprs(n.Indices)
	case *ESeqUpdate:
		h.tag("seq-update")
		h.expr(n.Target)
		h.expr(n.Index)
		h.expr(n.Value)
	case *EArrayUpdate:
		h.tag("array-update")
		h.expr(n.Target)
		h.exprs(n.Indices)
		h.expr(n.Value)
	case *EUnOpApply:
		h.tag("unop")
		h.str(n.Op)
		h.expr(n.Arg)
	case *EBinOpApply:
		h.tag("binop")
		h.str(n.Op)
		h.expr(n.Left)
		h.expr(n.Right)
	case *EMethodApply:
		h.tag("method-apply")
		h.receiver(n.Receiver)
		h.str(n.Name)
		h.types(n.TypeArgs)
		h.exprs(n.Args)
		h.boolean(n.Ghost)
	case *EAnonApply:
		h.tag("anon-apply")
		h.expr(n.Fun)
		h.exprs(n.Args)
	case *EConstructorApply:
		h.tag("ctor-apply")
		h.str(n.Ctor.String())
		h.exprs(n.Args)
	case *ETypeConversion:
		h.tag("as")
		h.expr(n.Arg)
		h.typ(n.To)
	case *ETypeTest:
		h.tag("is")
		h.expr(n.Arg)
		h.typ(n.Is)
	case *EBlock:
		h.tag("block")
		h.exprs(n.Stmts)
	case *ELet:
		h.tag("let")
		h.locals(n.Vars)
		h.boolean(n.Exact)
		h.exprs(n.Values)
		h.expr(n.Body)
	case *EIf:
		h.tag("if")
		h.expr(n.Cond)
		h.expr(n.Then)
		h.expr(n.Else)
	case *EWhile:
		h.tag("while")
		h.str(n.Label)
		h.expr(n.Cond)
		h.expr(n.Body)
	case *EFor:
		h.tag("for")
		h.str(n.Label)
		h.expr(n.Init)
		h.expr(n.End)
		h.boolean(n.Up)
		h.expr(n.Body)
	case *EReturn:
		h.tag("return")
		h.exprs(n.Values)
	case *EBreak:
		h.tag("break")
		h.str(n.Label)
	case *EMatch:
		h.tag("match")
		h.expr(n.Target)
		for _, c := range n.Cases {
			h.locals(c.BoundVars)
			h.expr(c.Pattern)
			h.expr(c.Body)
		}
		h.expr(n.Default)
	case *EDecls:
		h.tag("decls")
		for _, it := range n.Items {
			h.local(it.Decl)
			h.updateRHS(it.RHS)
		}
	case *EUpdate:
		h.tag("update")
		h.exprs(n.Targets)
		for _, v := range n.Values {
			h.updateRHS(v)
		}
	case *EDeclChoice:
		h.tag("decl-choice")
		h.locals(n.Vars)
		h.expr(n.Cond)
	case *EPrint:
		h.tag("print")
		h.exprs(n.Args)
	case *EAssert:
		h.tag("assert")
		h.expr(n.Cond)
	case *EExpect:
		h.tag("expect")
		h.expr(n.Cond)
	case *EAssume:
		h.tag("assume")
		h.expr(n.Cond)
	case *EReveal:
		h.tag("reveal")
		h.exprs(n.Targets)
	case *ECommented:
		// Comment text is ignored, like Meta.
		h.expr(n.Arg)
	case *EUnimplemented:
		h.tag("expr-unimplemented")
		h.str(n.Note)
	}
}

func (h *hasher) exprs(es []Expr) {
	h.num(len(es))
	for _, e := range es {
		h.expr(e)
	}
}

func (h *hasher) types(ts []Type) {
	h.num(len(ts))
	for _, t := range ts {
		h.typ(t)
	}
}

func (h *hasher) local(d *LocalDecl) {
	if d == nil {
		h.tag("nil")
		return
	}
	h.str(d.Name)
	h.typ(d.Type)
	h.boolean(d.Ghost)
}

func (h *hasher) locals(ds []*LocalDecl) {
	h.num(len(ds))
	for _, d := range ds {
		h.local(d)
	}
}

func (h *hasher) typeArgs(as []TypeArg) {
	h.num(len(as))
	for _, a := range as {
		h.str(a.Name)
		h.num(int(a.Variance))
		h.boolean(a.RequiresEquality)
	}
}

func (h *hasher) inputSpec(s *InputSpec) {
	if s == nil {
		h.tag("nil")
		return
	}
	h.locals(s.Decls)
	h.exprs(s.Preconditions)
}

func (h *hasher) outputSpec(s *OutputSpec) {
	if s == nil {
		h.tag("nil")
		return
	}
	h.locals(s.Decls)
	h.exprs(s.Postconditions)
}

func (h *hasher) classType(c ClassType) {
	h.str(c.Path.String())
	h.types(c.TypeArgs)
}

func (h *hasher) receiver(r Receiver) {
	switch n := r.(type) {
	case *StaticReceiver:
		h.tag("static-recv")
		h.classType(n.Class)
	case *ObjectReceiver:
		h.tag("object-recv")
		h.expr(n.Object)
	default:
		h.tag("nil")
	}
}

func (h *hasher) updateRHS(u *UpdateRHS) {
	if u == nil {
		h.tag("nil")
		return
	}
	h.expr(u.Value)
	h.typ(u.MonadicType)
}
