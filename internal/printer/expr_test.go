package printer

import (
	"math/big"
	"testing"

	"github.com/dafmig/yil/internal/ast"
	"github.com/dafmig/yil/internal/config"
	"github.com/dafmig/yil/internal/paths"
	"github.com/dafmig/yil/internal/scope"
)

func intLit(v int64) *ast.EInt { return &ast.EInt{Value: big.NewInt(v)} }

func evar(name string) *ast.EVar { return &ast.EVar{Name: name} }

// --- Literals ---

func TestPrintLiterals(t *testing.T) {
	p := New(false)
	ctx := emptyCtx()
	cases := []struct {
		expr ast.Expr
		want string
	}{
		{&ast.EBool{Value: true}, "true"},
		{&ast.EBool{Value: false}, "false"},
		{&ast.EChar{Value: 'a'}, "'a'"},
		{&ast.EString{Value: "hi\n"}, `"hi\n"`},
		{intLit(42), "42"},
		{&ast.ENull{}, "null"},
		{&ast.EThis{}, "this"},
		{&ast.EUnimplemented{}, config.UnimplementedToken},
	}
	for _, c := range cases {
		if got := p.Expression(c.expr, ctx); got != c.want {
			t.Errorf("Expression(%T) = %q, want %q", c.expr, got, c.want)
		}
	}
}

func TestPrintBigIntegerLiteral(t *testing.T) {
	p := New(false)
	v := new(big.Int)
	v.SetString("340282366920938463463374607431768211456", 10)
	expectPrint(t, p.Expression(&ast.EInt{Value: v}, emptyCtx()),
		"340282366920938463463374607431768211456")
}

func TestPrintRealLiterals(t *testing.T) {
	p := New(false)
	expectPrint(t, p.Expression(&ast.EReal{Value: big.NewRat(5, 1)}, emptyCtx()), "5.0")
	expectPrint(t, p.Expression(&ast.EReal{Value: big.NewRat(1, 3)}, emptyCtx()), "(1.0 / 3.0)")
}

func TestPrintToString(t *testing.T) {
	p := New(false)
	expectPrint(t, p.Expression(&ast.EToString{}, emptyCtx()), `""`)
	e := &ast.EToString{Parts: []ast.Expr{&ast.EString{Value: "n="}, evar("s")}}
	expectPrint(t, p.Expression(e, emptyCtx()), `("n=" + s)`)
}

// --- Name cleanup ---

func TestPrintCleansMangledNames(t *testing.T) {
	p := New(false)
	expectPrint(t, p.Expression(evar("_anon3"), emptyCtx()), "_")
	expectPrint(t, p.Expression(evar("x#1"), emptyCtx()), "x_1")
	expectPrint(t, p.Expression(evar("plain"), emptyCtx()), "plain")
}

// --- Operators ---

func TestPrintBinOpAlwaysParenthesized(t *testing.T) {
	p := New(false)
	e := &ast.EBinOpApply{
		Op:   "And",
		Left: &ast.EBool{Value: true},
		Right: &ast.EBinOpApply{
			Op: "Or", Left: &ast.EBool{Value: false}, Right: evar("b"),
		},
	}
	expectPrint(t, p.Expression(e, emptyCtx()), "(true && (false || b))")
}

func TestPrintUnaryOps(t *testing.T) {
	p := New(false)
	ctx := emptyCtx()
	expectPrint(t, p.Expression(&ast.EUnOpApply{Op: "Not", Arg: evar("b")}, ctx), "!b")
	expectPrint(t, p.Expression(&ast.EUnOpApply{Op: "Cardinality", Arg: evar("s")}, ctx), "|s|")
	expectPrint(t, p.Expression(&ast.EUnOpApply{Op: "Fresh", Arg: evar("o")}, ctx), "fresh(o)")
}

func TestPrintCollectionOps(t *testing.T) {
	p := New(false)
	ctx := emptyCtx()
	cases := []struct {
		op   string
		want string
	}{
		{"In", "(x in s)"},
		{"NotIn", "(x !in s)"},
		{"Union", "(x + s)"},
		{"Intersection", "(x * s)"},
		{"Disjoint", "(x !! s)"},
		{"ProperSubset", "(x < s)"},
	}
	for _, c := range cases {
		e := &ast.EBinOpApply{Op: c.op, Left: evar("x"), Right: evar("s")}
		if got := p.Expression(e, ctx); got != c.want {
			t.Errorf("op %s = %q, want %q", c.op, got, c.want)
		}
	}
}

// --- Member access and application ---

func TestPrintMemberAccess(t *testing.T) {
	p := New(false)
	ctx := emptyCtx()
	obj := &ast.EMemberRef{Receiver: &ast.ObjectReceiver{Object: evar("o")}, Name: "f"}
	expectPrint(t, p.Expression(obj, ctx), "o.f")
	static := &ast.EMemberRef{
		Receiver: &ast.StaticReceiver{Class: ast.ClassType{Path: paths.Parse("M.C")}},
		Name:     "f",
	}
	expectPrint(t, p.Expression(static, ctx), "M.C.f")
}

func TestPrintMethodApply(t *testing.T) {
	p := New(false)
	e := &ast.EMethodApply{
		Receiver: &ast.ObjectReceiver{Object: evar("o")},
		Name:     "get",
		TypeArgs: []ast.Type{&ast.TInt{}},
		Args:     []ast.Expr{intLit(1), evar("k")},
	}
	expectPrint(t, p.Expression(e, emptyCtx()), "o.get<int>(1, k)")
}

func TestPrintAnonApply(t *testing.T) {
	p := New(false)
	e := &ast.EAnonApply{Fun: evar("f"), Args: []ast.Expr{intLit(1)}}
	expectPrint(t, p.Expression(e, emptyCtx()), "f(1)")
}

func TestPrintConstructorApply(t *testing.T) {
	p := New(false)
	ctx := emptyCtx()
	nullary := &ast.EConstructorApply{Ctor: paths.Parse("List.Nil")}
	expectPrint(t, p.Expression(nullary, ctx), "List.Nil")
	cons := &ast.EConstructorApply{
		Ctor: paths.Parse("List.Cons"),
		Args: []ast.Expr{intLit(1), nullary},
	}
	expectPrint(t, p.Expression(cons, ctx), "List.Cons(1, List.Nil)")
}

func TestPrintNullaryConstructorInPattern(t *testing.T) {
	// A bare name in a pattern would bind a variable; parentheses force
	// the constructor reading.
	p := New(false)
	ctx := emptyCtx().SetPosition(scope.PatternPosition)
	e := &ast.EConstructorApply{Ctor: paths.Parse("Nil")}
	expectPrint(t, p.Expression(e, ctx), "Nil()")
}

func TestPrintNewAndArrayAlloc(t *testing.T) {
	p := New(false)
	ctx := emptyCtx()
	n := &ast.ENew{
		Class: ast.ClassType{Path: paths.Parse("Cell"), TypeArgs: []ast.Type{&ast.TInt{}}},
		Args:  []ast.Expr{intLit(0)},
	}
	expectPrint(t, p.Expression(n, ctx), "new Cell<int>(0)")
	a := &ast.EArrayAlloc{Elem: &ast.TInt{}, Dims: []ast.Expr{intLit(3), intLit(4)}}
	expectPrint(t, p.Expression(a, ctx), "new int[3, 4]")
}

func TestPrintConversionAndTest(t *testing.T) {
	p := New(false)
	ctx := emptyCtx()
	expectPrint(t,
		p.Expression(&ast.ETypeConversion{Arg: evar("x"), To: &ast.TInt{}}, ctx),
		"(x as int)")
	expectPrint(t,
		p.Expression(&ast.ETypeTest{Arg: evar("x"), Is: &ast.TApply{Path: paths.Parse("C")}}, ctx),
		"(x is C)")
}

// --- Collections ---

func TestPrintDisplays(t *testing.T) {
	p := New(false)
	ctx := emptyCtx()
	expectPrint(t, p.Expression(&ast.ESetDisplay{Elems: []ast.Expr{intLit(1), intLit(2)}}, ctx), "{1, 2}")
	expectPrint(t, p.Expression(&ast.ESeqDisplay{}, ctx), "[]")
	expectPrint(t, p.Expression(&ast.ESeqDisplay{Elems: []ast.Expr{intLit(1)}}, ctx), "[1]")
	m := &ast.EMapDisplay{Pairs: []ast.ExprPair{{Key: intLit(1), Value: intLit(2)}}}
	expectPrint(t, p.Expression(m, ctx), "map[1 := 2]")
	expectPrint(t, p.Expression(&ast.EMapKeys{Arg: evar("m")}, ctx), "m.Keys")
}

func TestPrintSelects(t *testing.T) {
	p := New(false)
	ctx := emptyCtx()
	expectPrint(t,
		p.Expression(&ast.ESeqSelect{Target: evar("s"), Low: intLit(0)}, ctx),
		"s[0]")
	expectPrint(t,
		p.Expression(&ast.ESeqSelect{Target: evar("s"), IsSlice: true, Low: intLit(1)}, ctx),
		"s[1..]")
	expectPrint(t,
		p.Expression(&ast.ESeqSelect{Target: evar("s"), IsSlice: true, High: intLit(2)}, ctx),
		"s[..2]")
	expectPrint(t,
		p.Expression(&ast.ESeqSelect{Target: evar("s"), IsSlice: true}, ctx),
		"s[..]")
	expectPrint(t,
		p.Expression(&ast.EMultiSelect{Target: evar("a"), Indices: []ast.Expr{intLit(0), intLit(1)}}, ctx),
		"a[0, 1]")
	expectPrint(t,
		p.Expression(&ast.ESeqUpdate{Target: evar("s"), Index: intLit(0), Value: evar("x")}, ctx),
		"s[0 := x]")
}

func TestPrintSeqConstruct(t *testing.T) {
	p := New(false)
	f := &ast.EFun{
		Params: []*ast.LocalDecl{{Name: "i", Type: &ast.TNat{}}},
		Body:   evar("i"),
	}
	e := &ast.ESeqConstruct{Length: intLit(5), Init: f}
	expectPrint(t, p.Expression(e, emptyCtx()), "seq(5, ((i: nat) => i))")
}

func TestPrintComprehensions(t *testing.T) {
	p := New(false)
	ctx := emptyCtx()
	set := &ast.ESetComprehension{
		Vars:  []*ast.LocalDecl{{Name: "x", Type: &ast.TInt{}}},
		Range: &ast.EBinOpApply{Op: "In", Left: evar("x"), Right: evar("s")},
	}
	expectPrint(t, p.Expression(set, ctx), "(set x: int | (x in s))")
	set.Body = &ast.EBinOpApply{Op: "Mul", Left: evar("x"), Right: intLit(2)}
	expectPrint(t, p.Expression(set, ctx), "(set x: int | (x in s) :: (x * 2))")
	m := &ast.EMapComprehension{
		Vars:  []*ast.LocalDecl{{Name: "k", Type: &ast.TInt{}}},
		Range: &ast.EBinOpApply{Op: "In", Left: evar("k"), Right: evar("m")},
		Value: intLit(0),
	}
	expectPrint(t, p.Expression(m, ctx), "(map k: int | (k in m) :: 0)")
	m.Key = &ast.EBinOpApply{Op: "Add", Left: evar("k"), Right: intLit(1)}
	expectPrint(t, p.Expression(m, ctx), "(map k: int | (k in m) :: (k + 1) := 0)")
}

// --- Binder forms ---

func TestPrintQuantifiers(t *testing.T) {
	p := New(false)
	ctx := emptyCtx()
	body := &ast.EBinOpApply{Op: "Ge", Left: evar("x"), Right: intLit(0)}
	unguarded := &ast.EQuantifier{
		Quant: ast.Exists,
		Vars:  []*ast.LocalDecl{{Name: "x", Type: &ast.TInt{}}},
		Body:  body,
	}
	expectPrint(t, p.Expression(unguarded, ctx), "(exists x: int :: (x >= 0))")
	guarded := &ast.EQuantifier{
		Quant: ast.Forall,
		Vars:  []*ast.LocalDecl{{Name: "x", Type: &ast.TInt{}}},
		Range: &ast.EBinOpApply{Op: "Lt", Left: evar("x"), Right: intLit(10)},
		Body:  body,
	}
	expectPrint(t, p.Expression(guarded, ctx), "(forall x: int | (x < 10) :: (x >= 0))")
}

func TestPrintOldAndTuples(t *testing.T) {
	p := New(false)
	ctx := emptyCtx()
	expectPrint(t, p.Expression(&ast.EOld{Arg: evar("x")}, ctx), "old(x)")
	expectPrint(t, p.Expression(&ast.ETuple{Elems: []ast.Expr{intLit(1), intLit(2)}}, ctx), "(1, 2)")
	expectPrint(t, p.Expression(&ast.EProj{Arg: evar("t"), Index: 0}, ctx), "t.0")
}

func TestPrintLet(t *testing.T) {
	p := New(false)
	exact := &ast.ELet{
		Vars:   []*ast.LocalDecl{{Name: "x"}},
		Exact:  true,
		Values: []ast.Expr{intLit(1)},
		Body:   &ast.EBinOpApply{Op: "Add", Left: evar("x"), Right: evar("x")},
	}
	expectPrint(t, p.Expression(exact, emptyCtx()), "var x := 1; (x + x)")
	choose := &ast.ELet{
		Vars:   []*ast.LocalDecl{{Name: "x", Type: &ast.TInt{}}},
		Values: []ast.Expr{&ast.EBinOpApply{Op: "Gt", Left: evar("x"), Right: intLit(0)}},
		Body:   evar("x"),
	}
	expectPrint(t, p.Expression(choose, emptyCtx()), "var x: int :| (x > 0); x")
}

func TestPrintIfExpression(t *testing.T) {
	p := New(false)
	e := &ast.EIf{Cond: evar("c"), Then: intLit(1), Else: intLit(2)}
	expectPrint(t, p.Expression(e, emptyCtx()), "if c then 1 else 2")
	// A unit-valued conditional keeps a well-formed else arm.
	partial := &ast.EIf{Cond: evar("c"), Then: &ast.EBlock{}}
	expectPrint(t, p.Expression(partial, emptyCtx()), "if c then () else ()")
}

func TestPrintBlockExpression(t *testing.T) {
	p := New(false)
	ctx := emptyCtx()
	expectPrint(t, p.Expression(&ast.EBlock{}, ctx), "()")
	expectPrint(t, p.Expression(&ast.EBlock{Stmts: []ast.Expr{evar("x")}}, ctx), "(x)")
	multi := &ast.EBlock{Stmts: []ast.Expr{
		&ast.EAssert{Cond: &ast.EBool{Value: true}},
		evar("x"),
	}}
	expectPrint(t, p.Expression(multi, ctx), "(\n  assert true;\n  x\n)")
}

func TestPrintMatchExpression(t *testing.T) {
	p := New(false)
	e := &ast.EMatch{
		Target: evar("l"),
		Cases: []*ast.Case{{
			BoundVars: []*ast.LocalDecl{{Name: "h"}, {Name: "t"}},
			Pattern: &ast.EConstructorApply{
				Ctor: paths.Parse("Cons"),
				Args: []ast.Expr{evar("h"), evar("t")},
			},
			Body: evar("h"),
		}},
		Default: intLit(0),
	}
	expectPrint(t, p.Expression(e, emptyCtx()),
		"match l {\n  case Cons(h, t) => h\n  case _ => 0\n}")
}

func TestPrintCommented(t *testing.T) {
	p := New(false)
	e := &ast.ECommented{Comment: "original form", Arg: evar("x")}
	expectPrint(t, p.Expression(e, emptyCtx()), "/* original form */ x")
}

// --- Statements ---

func TestPrintDeclStatement(t *testing.T) {
	p := New(false)
	d := &ast.EDecls{Items: []*ast.DeclInit{{
		Decl: &ast.LocalDecl{Name: "x", Type: &ast.TInt{}},
		RHS:  &ast.UpdateRHS{Value: intLit(1)},
	}}}
	expectPrint(t, p.Statement(d, emptyCtx()), "var x: int := 1")
}

func TestPrintGhostDeclStatement(t *testing.T) {
	p := New(false)
	d := &ast.EDecls{Items: []*ast.DeclInit{{
		Decl: &ast.LocalDecl{Name: "g", Type: &ast.TInt{}, Ghost: true},
		RHS:  &ast.UpdateRHS{Value: intLit(0)},
	}}}
	expectPrint(t, p.Statement(d, emptyCtx()), "ghost var g: int := 0")
}

func TestPrintDeclWithoutKeywordInForInitializer(t *testing.T) {
	p := New(false)
	d := &ast.EDecls{Items: []*ast.DeclInit{{
		Decl: &ast.LocalDecl{Name: "i", Type: &ast.TInt{}},
		RHS:  &ast.UpdateRHS{Value: intLit(0)},
	}}}
	ctx := emptyCtx().SetPosition(scope.InForLoopInitializer)
	expectPrint(t, p.Statement(d, ctx), "i: int := 0")
}

func TestPrintMonadicAssignment(t *testing.T) {
	p := New(false)
	call := &ast.EMethodApply{
		Receiver: &ast.ObjectReceiver{Object: evar("o")},
		Name:     "tryGet",
	}
	u := &ast.EUpdate{
		Targets: []ast.Expr{evar("x")},
		Values:  []*ast.UpdateRHS{{Value: call, MonadicType: &ast.TInt{}}},
	}
	expectPrint(t, p.Statement(u, emptyCtx()), "x :- o.tryGet()")
	plain := &ast.EUpdate{
		Targets: []ast.Expr{evar("x"), evar("y")},
		Values:  []*ast.UpdateRHS{{Value: intLit(1)}, {Value: intLit(2)}},
	}
	expectPrint(t, p.Statement(plain, emptyCtx()), "x, y := 1, 2")
}

func TestPrintDeclChoice(t *testing.T) {
	p := New(false)
	d := &ast.EDeclChoice{
		Vars: []*ast.LocalDecl{{Name: "x", Type: &ast.TInt{}}},
		Cond: &ast.EBinOpApply{Op: "Gt", Left: evar("x"), Right: intLit(0)},
	}
	expectPrint(t, p.Statement(d, emptyCtx()), "var x: int :| (x > 0)")
}

func TestPrintIfStatementChain(t *testing.T) {
	p := New(false)
	e := &ast.EIf{
		Cond: evar("a"),
		Then: &ast.EBlock{Stmts: []ast.Expr{&ast.EReturn{Values: []ast.Expr{intLit(1)}}}},
		Else: &ast.EIf{
			Cond: evar("b"),
			Then: &ast.EBlock{Stmts: []ast.Expr{&ast.EReturn{Values: []ast.Expr{intLit(2)}}}},
			Else: &ast.EBlock{Stmts: []ast.Expr{&ast.EReturn{Values: []ast.Expr{intLit(3)}}}},
		},
	}
	expectPrint(t, p.Statement(e, emptyCtx()),
		"if a {\n  return 1;\n} else if b {\n  return 2;\n} else {\n  return 3;\n}")
}

func TestPrintWhile(t *testing.T) {
	p := New(false)
	w := &ast.EWhile{Cond: &ast.EBool{Value: true}, Body: &ast.EBlock{}}
	expectPrint(t, p.Statement(w, emptyCtx()), "while true {}")
	labeled := &ast.EWhile{Label: "outer", Cond: evar("c"), Body: &ast.EBlock{
		Stmts: []ast.Expr{&ast.EBreak{Label: "outer"}},
	}}
	expectPrint(t, p.Statement(labeled, emptyCtx()),
		"label outer: while c {\n  break outer;\n}")
}

func TestPrintForLoop(t *testing.T) {
	p := New(false)
	init := &ast.EDecls{Items: []*ast.DeclInit{{
		Decl: &ast.LocalDecl{Name: "i", Type: &ast.TInt{}},
		RHS:  &ast.UpdateRHS{Value: intLit(0)},
	}}}
	up := &ast.EFor{Init: init, End: intLit(10), Up: true, Body: &ast.EBlock{
		Stmts: []ast.Expr{&ast.EPrint{Args: []ast.Expr{evar("i")}}},
	}}
	expectPrint(t, p.Statement(up, emptyCtx()),
		"for i: int := 0 to 10 {\n  print i;\n}")
	down := &ast.EFor{Init: init, End: intLit(0), Up: false, Body: &ast.EBlock{}}
	expectPrint(t, p.Statement(down, emptyCtx()), "for i: int := 0 downto 0 {}")
}

func TestPrintSimpleStatements(t *testing.T) {
	p := New(false)
	ctx := emptyCtx()
	expectPrint(t, p.Statement(&ast.EReturn{}, ctx), "return")
	expectPrint(t, p.Statement(&ast.EReturn{Values: []ast.Expr{intLit(1), intLit(2)}}, ctx), "return 1, 2")
	expectPrint(t, p.Statement(&ast.EBreak{}, ctx), "break")
	expectPrint(t, p.Statement(&ast.EPrint{Args: []ast.Expr{evar("x"), evar("y")}}, ctx), "print x, y")
	expectPrint(t, p.Statement(&ast.EAssert{Cond: evar("c")}, ctx), "assert c")
	expectPrint(t, p.Statement(&ast.EExpect{Cond: evar("c")}, ctx), "expect c")
	expectPrint(t, p.Statement(&ast.EAssume{Cond: evar("c")}, ctx), "assume c")
	expectPrint(t, p.Statement(&ast.EReveal{Targets: []ast.Expr{evar("f")}}, ctx), "reveal f")
	upd := &ast.EArrayUpdate{Target: evar("a"), Indices: []ast.Expr{intLit(0)}, Value: evar("x")}
	expectPrint(t, p.Statement(upd, ctx), "a[0] := x")
}

func TestPrintMatchStatement(t *testing.T) {
	p := New(false)
	e := &ast.EMatch{
		Target: evar("l"),
		Cases: []*ast.Case{{
			BoundVars: []*ast.LocalDecl{{Name: "h"}},
			Pattern: &ast.EConstructorApply{
				Ctor: paths.Parse("Some"),
				Args: []ast.Expr{evar("h")},
			},
			Body: &ast.EReturn{Values: []ast.Expr{evar("h")}},
		}},
		Default: &ast.EReturn{Values: []ast.Expr{intLit(0)}},
	}
	expectPrint(t, p.Statement(e, emptyCtx()),
		"match l {\n  case Some(h) =>\n    return h;\n  case _ =>\n    return 0;\n}")
}

// --- Statement sequencing ---

func TestStatementSeparators(t *testing.T) {
	p := New(false)
	block := &ast.EBlock{Stmts: []ast.Expr{
		&ast.EIf{Cond: evar("c"), Then: &ast.EBlock{
			Stmts: []ast.Expr{&ast.EReturn{}},
		}},
		&ast.EAssert{Cond: evar("q")},
	}}
	// The else-less if manages its own block and takes no separator.
	expectPrint(t, p.Statement(block, emptyCtx()),
		"{\n  if c {\n    return;\n  }\n  assert q;\n}")
}

func TestEmptyBlocksFilteredFromSequences(t *testing.T) {
	p := New(false)
	block := &ast.EBlock{Stmts: []ast.Expr{
		&ast.EBlock{},
		&ast.ECommented{Comment: "erased", Arg: &ast.EBlock{}},
		&ast.EAssert{Cond: &ast.EBool{Value: true}},
	}}
	expectPrint(t, p.Statement(block, emptyCtx()), "{\n  assert true;\n}")
}

func TestCommentedStatementKeepsComment(t *testing.T) {
	p := New(false)
	block := &ast.EBlock{Stmts: []ast.Expr{
		&ast.ECommented{Comment: "ghost call erased", Arg: &ast.EReturn{}},
	}}
	expectPrint(t, p.Statement(block, emptyCtx()),
		"{\n  /* ghost call erased */ return;\n}")
}

func TestNoPrintSep(t *testing.T) {
	ifNoElse := &ast.EIf{Cond: evar("c"), Then: &ast.EBlock{}}
	if !NoPrintSep(ifNoElse) {
		t.Fatal("an else-less if must take no separator")
	}
	ifElse := &ast.EIf{Cond: evar("c"), Then: &ast.EBlock{}, Else: &ast.EBlock{}}
	if NoPrintSep(ifElse) {
		t.Fatal("an if with else takes a separator")
	}
	if !NoPrintSep(&ast.EWhile{Cond: evar("c"), Body: &ast.EBlock{}}) {
		t.Fatal("while takes no separator")
	}
	if !NoPrintSep(&ast.ECommented{Comment: "c", Arg: &ast.EWhile{Cond: evar("c"), Body: &ast.EBlock{}}}) {
		t.Fatal("a commented wrapper must defer to its argument")
	}
	if NoPrintSep(&ast.EReturn{}) {
		t.Fatal("return takes a separator")
	}
}
