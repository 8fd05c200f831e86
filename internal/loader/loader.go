// Package loader decodes an IR dump into a tree. Dumps are YAML
// documents in which every node is a mapping discriminated by its
// "kind" key; declaration paths are dotted strings.
//
// Unlike the in-process constructors, the loader consumes external
// input, so malformed dumps surface as returned errors rather than
// panics.
package loader

import (
	"fmt"
	"math/big"

	"gopkg.in/yaml.v3"

	"github.com/dafmig/yil/internal/ast"
	"github.com/dafmig/yil/internal/diagnostics"
	"github.com/dafmig/yil/internal/paths"
)

// Load decodes a YAML IR dump into a program. The returned program
// carries a fresh identity stamp.
func Load(data []byte) (prog *ast.Program, err error) {
	defer func() {
		if r := recover(); r != nil {
			if de, ok := r.(*diagnostics.DiagnosticError); ok {
				err = de
				return
			}
			panic(r)
		}
	}()
	var doc yaml.Node
	if uerr := yaml.Unmarshal(data, &doc); uerr != nil {
		return nil, diagnostics.NewErrorf(diagnostics.ErrL001, "malformed dump: %v", uerr)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) != 1 {
		return nil, diagnostics.NewError(diagnostics.ErrL001, "dump must hold a single document")
	}
	d := decoder{}
	root := d.mapping(doc.Content[0])
	name := d.str(root, "name")
	decls := d.declList(root, "decls")
	return ast.NewProgram(name, decls, d.meta(root)), nil
}

// decoder panics with a DiagnosticError on malformed structure; Load
// converts the panic back into a returned error at the boundary.
type decoder struct{}

func (d decoder) fail(n *yaml.Node, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	panic(diagnostics.NewErrorf(diagnostics.ErrL002, "line %d: %s", n.Line, msg))
}

type mapping struct {
	node    *yaml.Node
	entries map[string]*yaml.Node
}

func (d decoder) mapping(n *yaml.Node) mapping {
	if n.Kind == yaml.AliasNode {
		return d.mapping(n.Alias)
	}
	if n.Kind != yaml.MappingNode {
		d.fail(n, "expected a mapping")
	}
	m := mapping{node: n, entries: make(map[string]*yaml.Node, len(n.Content)/2)}
	for i := 0; i+1 < len(n.Content); i += 2 {
		m.entries[n.Content[i].Value] = n.Content[i+1]
	}
	return m
}

func (d decoder) str(m mapping, key string) string {
	n, ok := m.entries[key]
	if !ok {
		d.fail(m.node, "missing key %q", key)
	}
	var s string
	if err := n.Decode(&s); err != nil {
		d.fail(n, "key %q: %v", key, err)
	}
	return s
}

func (d decoder) optStr(m mapping, key string) string {
	if _, ok := m.entries[key]; !ok {
		return ""
	}
	return d.str(m, key)
}

func (d decoder) boolean(m mapping, key string) bool {
	n, ok := m.entries[key]
	if !ok {
		return false
	}
	var b bool
	if err := n.Decode(&b); err != nil {
		d.fail(n, "key %q: %v", key, err)
	}
	return b
}

func (d decoder) num(m mapping, key string) int {
	n, ok := m.entries[key]
	if !ok {
		d.fail(m.node, "missing key %q", key)
	}
	var v int
	if err := n.Decode(&v); err != nil {
		d.fail(n, "key %q: %v", key, err)
	}
	return v
}

func (d decoder) optNum(m mapping, key string) *int {
	if _, ok := m.entries[key]; !ok {
		return nil
	}
	v := d.num(m, key)
	return &v
}

func (d decoder) list(m mapping, key string) []*yaml.Node {
	n, ok := m.entries[key]
	if !ok {
		return nil
	}
	if n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	if n.Kind != yaml.SequenceNode {
		d.fail(n, "key %q: expected a sequence", key)
	}
	return n.Content
}

func (d decoder) req(m mapping, key string) *yaml.Node {
	n, ok := m.entries[key]
	if !ok {
		d.fail(m.node, "missing key %q", key)
	}
	return n
}

func (d decoder) path(m mapping, key string) paths.Path {
	return paths.Parse(d.str(m, key))
}

func (d decoder) meta(m mapping) ast.Meta {
	n, ok := m.entries["meta"]
	if !ok {
		return ast.Meta{}
	}
	mm := d.mapping(n)
	meta := ast.Meta{
		Comment: d.optStr(mm, "comment"),
		Prelude: d.optStr(mm, "prelude"),
	}
	if pn, ok := mm.entries["pos"]; ok {
		pm := d.mapping(pn)
		meta.Pos = &ast.Position{
			Filename: d.optStr(pm, "file"),
			Offset:   d.num(pm, "offset"),
			Line:     d.num(pm, "line"),
			Col:      d.num(pm, "col"),
		}
	}
	return meta
}

// --- Declarations ---

func (d decoder) declList(m mapping, key string) []ast.Decl {
	nodes := d.list(m, key)
	out := make([]ast.Decl, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, d.decl(n))
	}
	return out
}

func (d decoder) decl(n *yaml.Node) ast.Decl {
	m := d.mapping(n)
	kind := d.str(m, "kind")
	switch kind {
	case "Include":
		return &ast.Include{Target: d.str(m, "target"), Meta: d.meta(m)}
	case "Module":
		return &ast.Module{
			Name:  d.str(m, "name"),
			Decls: d.declList(m, "decls"),
			Meta:  d.meta(m),
		}
	case "Datatype":
		return &ast.Datatype{
			Name:       d.str(m, "name"),
			TypeParams: d.typeArgs(m, "typeParams"),
			Ctors:      d.ctors(m),
			Members:    d.declList(m, "members"),
			Meta:       d.meta(m),
		}
	case "Class":
		return &ast.Class{
			Name:       d.str(m, "name"),
			IsTrait:    d.boolean(m, "trait"),
			TypeParams: d.typeArgs(m, "typeParams"),
			SuperTypes: d.typeList(m, "superTypes"),
			Members:    d.declList(m, "members"),
			Meta:       d.meta(m),
		}
	case "ClassConstructor":
		return &ast.ClassConstructor{
			Name:       d.optStr(m, "name"),
			TypeParams: d.typeArgs(m, "typeParams"),
			Ins:        d.inputSpec(m),
			Ensures:    d.exprList(m, "ensures"),
			Body:       d.optExpr(m, "body"),
			Meta:       d.meta(m),
		}
	case "TypeDef":
		return &ast.TypeDef{
			Name:       d.str(m, "name"),
			TypeParams: d.typeArgs(m, "typeParams"),
			Super:      d.typ(d.req(m, "super")),
			SubsetVar:  d.optStr(m, "subsetVar"),
			Predicate:  d.optExpr(m, "predicate"),
			IsNewType:  d.boolean(m, "newtype"),
			Meta:       d.meta(m),
		}
	case "Field":
		return &ast.Field{
			Name:      d.str(m, "name"),
			Type:      d.typ(d.req(m, "type")),
			Init:      d.optExpr(m, "init"),
			Ghost:     d.boolean(m, "ghost"),
			IsStatic:  d.boolean(m, "static"),
			IsMutable: d.boolean(m, "mutable"),
			Meta:      d.meta(m),
		}
	case "Method":
		return &ast.Method{
			Kind:       d.methodKind(m),
			Name:       d.str(m, "name"),
			TypeParams: d.typeArgs(m, "typeParams"),
			Ins:        d.inputSpec(m),
			Outs:       d.outputSpec(m),
			Modifies:   d.exprList(m, "modifies"),
			Reads:      d.exprList(m, "reads"),
			Decreases:  d.exprList(m, "decreases"),
			Body:       d.optExpr(m, "body"),
			Ghost:      d.boolean(m, "ghost"),
			IsStatic:   d.boolean(m, "static"),
			Meta:       d.meta(m),
		}
	case "Import":
		return &ast.Import{
			Mode:   d.importMode(m),
			Alias:  d.optStr(m, "alias"),
			Target: d.path(m, "target"),
			Meta:   d.meta(m),
		}
	case "Export":
		return &ast.Export{
			Spec: ast.ExportSpec{
				Name:     d.optStr(m, "name"),
				Provides: d.strList(m, "provides"),
				Reveals:  d.strList(m, "reveals"),
			},
			Meta: d.meta(m),
		}
	case "DeclUnimplemented":
		return &ast.DeclUnimplemented{Note: d.optStr(m, "note"), Meta: d.meta(m)}
	default:
		d.fail(n, "unknown declaration kind %q", kind)
		return nil
	}
}

func (d decoder) methodKind(m mapping) ast.MethodKind {
	switch s := d.str(m, "methodKind"); s {
	case "method":
		return ast.MethodKindMethod
	case "function method":
		return ast.MethodKindFunctionMethod
	case "function":
		return ast.MethodKindFunction
	case "lemma":
		return ast.MethodKindLemma
	case "predicate":
		return ast.MethodKindPredicate
	case "predicate method":
		return ast.MethodKindPredicateMethod
	default:
		d.fail(m.node, "unknown method kind %q", s)
		return ast.MethodKindMethod
	}
}

func (d decoder) importMode(m mapping) ast.ImportMode {
	switch s := d.optStr(m, "mode"); s {
	case "", "default":
		return ast.ImportDefault
	case "opened":
		return ast.ImportOpened
	case "aliased":
		return ast.ImportAliased
	default:
		d.fail(m.node, "unknown import mode %q", s)
		return ast.ImportDefault
	}
}

func (d decoder) typeArgs(m mapping, key string) []ast.TypeArg {
	nodes := d.list(m, key)
	out := make([]ast.TypeArg, 0, len(nodes))
	for _, n := range nodes {
		tm := d.mapping(n)
		arg := ast.TypeArg{
			Name:             d.str(tm, "name"),
			RequiresEquality: d.boolean(tm, "requiresEquality"),
		}
		switch v := d.optStr(tm, "variance"); v {
		case "", "none":
			arg.Variance = ast.VarianceNone
		case "co":
			arg.Variance = ast.VarianceCo
		case "contra":
			arg.Variance = ast.VarianceContra
		default:
			d.fail(n, "unknown variance %q", v)
		}
		out = append(out, arg)
	}
	return out
}

func (d decoder) ctors(m mapping) []*ast.DatatypeConstructor {
	nodes := d.list(m, "ctors")
	out := make([]*ast.DatatypeConstructor, 0, len(nodes))
	for _, n := range nodes {
		cm := d.mapping(n)
		out = append(out, &ast.DatatypeConstructor{
			Name: d.str(cm, "name"),
			Ins:  d.locals(cm, "ins"),
			Meta: d.meta(cm),
		})
	}
	return out
}

func (d decoder) strList(m mapping, key string) []string {
	nodes := d.list(m, key)
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		var s string
		if err := n.Decode(&s); err != nil {
			d.fail(n, "key %q: %v", key, err)
		}
		out = append(out, s)
	}
	return out
}

func (d decoder) locals(m mapping, key string) []*ast.LocalDecl {
	nodes := d.list(m, key)
	out := make([]*ast.LocalDecl, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, d.local(n))
	}
	return out
}

func (d decoder) local(n *yaml.Node) *ast.LocalDecl {
	m := d.mapping(n)
	l := &ast.LocalDecl{Name: d.str(m, "name"), Ghost: d.boolean(m, "ghost")}
	if tn, ok := m.entries["type"]; ok {
		l.Type = d.typ(tn)
	}
	return l
}

func (d decoder) inputSpec(m mapping) *ast.InputSpec {
	n, ok := m.entries["ins"]
	if !ok {
		return &ast.InputSpec{}
	}
	im := d.mapping(n)
	return &ast.InputSpec{
		Decls:         d.locals(im, "decls"),
		Preconditions: d.exprList(im, "requires"),
	}
}

func (d decoder) outputSpec(m mapping) *ast.OutputSpec {
	n, ok := m.entries["outs"]
	if !ok {
		return &ast.OutputSpec{}
	}
	om := d.mapping(n)
	return &ast.OutputSpec{
		Decls:          d.locals(om, "decls"),
		Postconditions: d.exprList(om, "ensures"),
	}
}

// --- Types ---

func (d decoder) typeList(m mapping, key string) []ast.Type {
	nodes := d.list(m, key)
	out := make([]ast.Type, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, d.typ(n))
	}
	return out
}

func (d decoder) typ(n *yaml.Node) ast.Type {
	if n == nil {
		return nil
	}
	m := d.mapping(n)
	kind := d.str(m, "kind")
	switch kind {
	case "TUnit":
		return &ast.TUnit{}
	case "TBool":
		return &ast.TBool{}
	case "TChar":
		return &ast.TChar{}
	case "TString":
		return &ast.TString{Bound: d.optNum(m, "bound")}
	case "TNat":
		return &ast.TNat{Bound: d.optNum(m, "bound")}
	case "TInt":
		return &ast.TInt{Bound: d.optNum(m, "bound")}
	case "TReal":
		return &ast.TReal{Bound: d.optNum(m, "bound")}
	case "TBitVector":
		return &ast.TBitVector{Width: d.num(m, "width")}
	case "TTuple":
		return &ast.TTuple{Elems: d.typeList(m, "elems")}
	case "TFunc":
		return &ast.TFunc{Ins: d.typeList(m, "ins"), Out: d.typ(d.req(m, "out"))}
	case "TSeq":
		return &ast.TSeq{Bound: d.optNum(m, "bound"), Elem: d.typ(d.req(m, "elem"))}
	case "TSet":
		return &ast.TSet{Bound: d.optNum(m, "bound"), Elem: d.typ(d.req(m, "elem"))}
	case "TMap":
		return &ast.TMap{
			Bound: d.optNum(m, "bound"),
			Key:   d.typ(d.req(m, "key")),
			Value: d.typ(d.req(m, "value")),
		}
	case "TArray":
		return &ast.TArray{Dims: d.optNum(m, "dims"), Elem: d.typ(d.req(m, "elem"))}
	case "TObject":
		return &ast.TObject{}
	case "TNullable":
		return &ast.TNullable{Base: d.typ(d.req(m, "base"))}
	case "TApply":
		return &ast.TApply{Path: d.path(m, "path"), Args: d.typeList(m, "args")}
	case "TVar":
		return &ast.TVar{Name: d.str(m, "name")}
	case "TUnimplemented":
		return &ast.TUnimplemented{Note: d.optStr(m, "note")}
	default:
		d.fail(n, "unknown type kind %q", kind)
		return nil
	}
}

// --- Expressions ---

func (d decoder) exprList(m mapping, key string) []ast.Expr {
	nodes := d.list(m, key)
	out := make([]ast.Expr, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, d.expr(n))
	}
	return out
}

func (d decoder) optExpr(m mapping, key string) ast.Expr {
	n, ok := m.entries[key]
	if !ok {
		return nil
	}
	return d.expr(n)
}

func (d decoder) reqExpr(m mapping, key string) ast.Expr {
	n, ok := m.entries[key]
	if !ok {
		d.fail(m.node, "missing key %q", key)
	}
	return d.expr(n)
}

func (d decoder) receiver(m mapping) ast.Receiver {
	if n, ok := m.entries["static"]; ok {
		return &ast.StaticReceiver{Class: d.classType(n)}
	}
	if n, ok := m.entries["object"]; ok {
		return &ast.ObjectReceiver{Object: d.expr(n)}
	}
	d.fail(m.node, "receiver needs a static or object key")
	return nil
}

func (d decoder) classType(n *yaml.Node) ast.ClassType {
	m := d.mapping(n)
	return ast.ClassType{Path: d.path(m, "path"), TypeArgs: d.typeList(m, "typeArgs")}
}

func (d decoder) updateRHSList(m mapping, key string) []*ast.UpdateRHS {
	nodes := d.list(m, key)
	out := make([]*ast.UpdateRHS, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, d.updateRHS(n))
	}
	return out
}

func (d decoder) updateRHS(n *yaml.Node) *ast.UpdateRHS {
	m := d.mapping(n)
	rhs := &ast.UpdateRHS{Value: d.reqExpr(m, "value")}
	if tn, ok := m.entries["monadic"]; ok {
		rhs.MonadicType = d.typ(tn)
	}
	return rhs
}

func (d decoder) expr(n *yaml.Node) ast.Expr {
	m := d.mapping(n)
	kind := d.str(m, "kind")
	switch kind {
	case "EMemberRef":
		return &ast.EMemberRef{Receiver: d.receiver(m), Name: d.str(m, "name")}
	case "EVar":
		return &ast.EVar{Name: d.str(m, "name")}
	case "EThis":
		return &ast.EThis{}
	case "ENew":
		return &ast.ENew{
			Class: d.classType(d.req(m, "class")),
			Args:  d.exprList(m, "args"),
		}
	case "ENull":
		return &ast.ENull{}
	case "EArrayAlloc":
		return &ast.EArrayAlloc{Elem: d.typ(d.req(m, "elem")), Dims: d.exprList(m, "dims")}
	case "EBool":
		return &ast.EBool{Value: d.boolean(m, "value")}
	case "EChar":
		s := d.str(m, "value")
		runes := []rune(s)
		if len(runes) != 1 {
			d.fail(n, "char literal %q must hold exactly one rune", s)
		}
		return &ast.EChar{Value: runes[0]}
	case "EString":
		return &ast.EString{Value: d.str(m, "value")}
	case "EInt":
		v, ok := new(big.Int).SetString(d.str(m, "value"), 10)
		if !ok {
			d.fail(n, "bad integer literal %q", d.str(m, "value"))
		}
		return &ast.EInt{Value: v}
	case "EReal":
		v, ok := new(big.Rat).SetString(d.str(m, "value"))
		if !ok {
			d.fail(n, "bad real literal %q", d.str(m, "value"))
		}
		return &ast.EReal{Value: v}
	case "EToString":
		return &ast.EToString{Parts: d.exprList(m, "parts")}
	case "EQuantifier":
		q := ast.Forall
		if d.str(m, "quant") == "exists" {
			q = ast.Exists
		}
		return &ast.EQuantifier{
			Quant: q,
			Vars:  d.locals(m, "vars"),
			Range: d.optExpr(m, "range"),
			Body:  d.reqExpr(m, "body"),
		}
	case "EOld":
		return &ast.EOld{Arg: d.reqExpr(m, "arg")}
	case "ETuple":
		return &ast.ETuple{Elems: d.exprList(m, "elems")}
	case "EProj":
		return &ast.EProj{Arg: d.reqExpr(m, "arg"), Index: d.num(m, "index")}
	case "EFun":
		return &ast.EFun{Params: d.locals(m, "params"), Body: d.reqExpr(m, "body")}
	case "ESetDisplay":
		return &ast.ESetDisplay{Elems: d.exprList(m, "elems")}
	case "ESetComprehension":
		return &ast.ESetComprehension{
			Vars:  d.locals(m, "vars"),
			Range: d.reqExpr(m, "range"),
			Body:  d.optExpr(m, "body"),
		}
	case "ESeqDisplay":
		return &ast.ESeqDisplay{Elems: d.exprList(m, "elems")}
	case "ESeqConstruct":
		return &ast.ESeqConstruct{Length: d.reqExpr(m, "length"), Init: d.reqExpr(m, "init")}
	case "EMapKeys":
		return &ast.EMapKeys{Arg: d.reqExpr(m, "arg")}
	case "EMapDisplay":
		nodes := d.list(m, "pairs")
		pairs := make([]ast.ExprPair, 0, len(nodes))
		for _, pn := range nodes {
			pm := d.mapping(pn)
			pairs = append(pairs, ast.ExprPair{
				Key:   d.reqExpr(pm, "key"),
				Value: d.reqExpr(pm, "value"),
			})
		}
		return &ast.EMapDisplay{Pairs: pairs}
	case "EMapComprehension":
		return &ast.EMapComprehension{
			Vars:  d.locals(m, "vars"),
			Range: d.reqExpr(m, "range"),
			Key:   d.optExpr(m, "key"),
			Value: d.reqExpr(m, "value"),
		}
	case "ESeqSelect":
		return &ast.ESeqSelect{
			Target:  d.reqExpr(m, "target"),
			IsSlice: d.boolean(m, "slice"),
			Low:     d.optExpr(m, "low"),
			High:    d.optExpr(m, "high"),
		}
	case "EMultiSelect":
		return &ast.EMultiSelect{
			Target:  d.reqExpr(m, "target"),
			Indices: d.exprList(m, "indices"),
		}
	case "ESeqUpdate":
		return &ast.ESeqUpdate{
			Target: d.reqExpr(m, "target"),
			Index:  d.reqExpr(m, "index"),
			Value:  d.reqExpr(m, "value"),
		}
	case "EArrayUpdate":
		return &ast.EArrayUpdate{
			Target:  d.reqExpr(m, "target"),
			Indices: d.exprList(m, "indices"),
			Value:   d.reqExpr(m, "value"),
		}
	case "EUnOpApply":
		return &ast.EUnOpApply{Op: d.str(m, "op"), Arg: d.reqExpr(m, "arg")}
	case "EBinOpApply":
		return &ast.EBinOpApply{
			Op:    d.str(m, "op"),
			Left:  d.reqExpr(m, "left"),
			Right: d.reqExpr(m, "right"),
		}
	case "EMethodApply":
		return &ast.EMethodApply{
			Receiver: d.receiver(m),
			Name:     d.str(m, "name"),
			TypeArgs: d.typeList(m, "typeArgs"),
			Args:     d.exprList(m, "args"),
			Ghost:    d.boolean(m, "ghost"),
		}
	case "EAnonApply":
		return &ast.EAnonApply{Fun: d.reqExpr(m, "fun"), Args: d.exprList(m, "args")}
	case "EConstructorApply":
		return &ast.EConstructorApply{Ctor: d.path(m, "ctor"), Args: d.exprList(m, "args")}
	case "ETypeConversion":
		return &ast.ETypeConversion{Arg: d.reqExpr(m, "arg"), To: d.typ(d.req(m, "to"))}
	case "ETypeTest":
		return &ast.ETypeTest{Arg: d.reqExpr(m, "arg"), Is: d.typ(d.req(m, "is"))}
	case "EBlock":
		return &ast.EBlock{Stmts: d.exprList(m, "stmts")}
	case "ELet":
		return &ast.ELet{
			Vars:   d.locals(m, "vars"),
			Exact:  d.boolean(m, "exact"),
			Values: d.exprList(m, "values"),
			Body:   d.reqExpr(m, "body"),
		}
	case "EIf":
		return &ast.EIf{
			Cond: d.reqExpr(m, "cond"),
			Then: d.reqExpr(m, "then"),
			Else: d.optExpr(m, "else"),
		}
	case "EWhile":
		return &ast.EWhile{
			Label: d.optStr(m, "label"),
			Cond:  d.reqExpr(m, "cond"),
			Body:  d.reqExpr(m, "body"),
		}
	case "EFor":
		return &ast.EFor{
			Label: d.optStr(m, "label"),
			Init:  d.reqExpr(m, "init"),
			End:   d.reqExpr(m, "end"),
			Up:    d.boolean(m, "up"),
			Body:  d.reqExpr(m, "body"),
		}
	case "EReturn":
		return &ast.EReturn{Values: d.exprList(m, "values")}
	case "EBreak":
		return &ast.EBreak{Label: d.optStr(m, "label")}
	case "EMatch":
		nodes := d.list(m, "cases")
		cases := make([]*ast.Case, 0, len(nodes))
		for _, cn := range nodes {
			cm := d.mapping(cn)
			cases = append(cases, &ast.Case{
				BoundVars: d.locals(cm, "boundVars"),
				Pattern:   d.reqExpr(cm, "pattern"),
				Body:      d.reqExpr(cm, "body"),
			})
		}
		return &ast.EMatch{
			Target:  d.reqExpr(m, "target"),
			Cases:   cases,
			Default: d.optExpr(m, "default"),
		}
	case "EDecls":
		nodes := d.list(m, "items")
		items := make([]*ast.DeclInit, 0, len(nodes))
		for _, in := range nodes {
			im := d.mapping(in)
			dn, ok := im.entries["decl"]
			if !ok {
				d.fail(in, "missing key %q", "decl")
			}
			item := &ast.DeclInit{Decl: d.local(dn)}
			if rn, ok := im.entries["rhs"]; ok {
				item.RHS = d.updateRHS(rn)
			}
			items = append(items, item)
		}
		return &ast.EDecls{Items: items}
	case "EUpdate":
		return &ast.EUpdate{
			Targets: d.exprList(m, "targets"),
			Values:  d.updateRHSList(m, "values"),
		}
	case "EDeclChoice":
		return &ast.EDeclChoice{Vars: d.locals(m, "vars"), Cond: d.reqExpr(m, "cond")}
	case "EPrint":
		return &ast.EPrint{Args: d.exprList(m, "args")}
	case "EAssert":
		return &ast.EAssert{Cond: d.reqExpr(m, "cond")}
	case "EExpect":
		return &ast.EExpect{Cond: d.reqExpr(m, "cond")}
	case "EAssume":
		return &ast.EAssume{Cond: d.reqExpr(m, "cond")}
	case "EReveal":
		return &ast.EReveal{Targets: d.exprList(m, "targets")}
	case "ECommented":
		return &ast.ECommented{Comment: d.str(m, "comment"), Arg: d.reqExpr(m, "arg")}
	case "EUnimplemented":
		return &ast.EUnimplemented{Note: d.optStr(m, "note")}
	default:
		d.fail(n, "unknown expression kind %q", kind)
		return nil
	}
}
