package scope

import (
	"testing"

	"github.com/dafmig/yil/internal/ast"
	"github.com/dafmig/yil/internal/diagnostics"
	"github.com/dafmig/yil/internal/paths"
)

// testProgram builds module Outer { module Inner { class C { } } }.
func testProgram() *ast.Program {
	class := &ast.Class{Name: "C"}
	inner := &ast.Module{Name: "Inner", Decls: []ast.Decl{class}}
	outer := &ast.Module{Name: "Outer", Decls: []ast.Decl{inner}}
	return ast.NewProgram("P", []ast.Decl{outer}, ast.Meta{})
}

func expectFatal(t *testing.T, code diagnostics.ErrorCode, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected fatal %s, got none", code)
		}
		de, ok := r.(*diagnostics.DiagnosticError)
		if !ok {
			t.Fatalf("expected *DiagnosticError, got %T: %v", r, r)
		}
		if de.Code != code {
			t.Fatalf("expected code %s, got %s (%s)", code, de.Code, de.Message)
		}
	}()
	fn()
}

func TestNewContextStartsAtRoot(t *testing.T) {
	ctx := NewContext(testProgram())
	if !ctx.CurrentDecl.IsRoot() {
		t.Fatal("a fresh context must sit at the root")
	}
	if ctx.Position != BodyPosition {
		t.Fatalf("a fresh context must be in body position, got %v", ctx.Position)
	}
}

func TestEnterDoesNotMutateReceiver(t *testing.T) {
	base := NewContext(testProgram())
	inner := base.Enter("Outer").Enter("Inner")
	if inner.CurrentDecl.String() != "Outer.Inner" {
		t.Fatalf("expected Outer.Inner, got %q", inner.CurrentDecl.String())
	}
	if !base.CurrentDecl.IsRoot() {
		t.Fatal("Enter must leave the base context untouched")
	}
}

func TestLocalShadowing(t *testing.T) {
	ctx := NewContext(testProgram()).
		AddVar("x", &ast.TInt{}).
		AddVar("x", &ast.TBool{})
	d := ctx.LookupLocalDecl("x")
	if _, ok := d.Type.(*ast.TBool); !ok {
		t.Fatalf("lookup must return the most recent binding, got %T", d.Type)
	}
}

func TestSiblingContextsDoNotInterfere(t *testing.T) {
	base := NewContext(testProgram()).AddVar("x", &ast.TInt{})
	left := base.AddVar("y", &ast.TBool{})
	right := base.AddVar("z", &ast.TChar{})
	if _, ok := right.LookupLocalDeclOpt("y"); ok {
		t.Fatal("a binding added on one branch must not appear on a sibling")
	}
	if _, ok := left.LookupLocalDeclOpt("z"); ok {
		t.Fatal("a binding added on one branch must not appear on a sibling")
	}
	if _, ok := base.LookupLocalDeclOpt("y"); ok {
		t.Fatal("a binding added on a branch must not appear on the base")
	}
}

func TestLookupMissingLocalIsFatal(t *testing.T) {
	ctx := NewContext(testProgram())
	expectFatal(t, diagnostics.ErrS001, func() { ctx.LookupLocalDecl("nope") })
	if _, ok := ctx.LookupLocalDeclOpt("nope"); ok {
		t.Fatal("optional lookup must report absence")
	}
}

func TestTypeParamLookup(t *testing.T) {
	ctx := NewContext(testProgram()).
		AddTypeParams(ast.TypeArg{Name: "T"}).
		AddTypeParams(ast.TypeArg{Name: "T", RequiresEquality: true})
	if !ctx.LookupTypeParam("T").RequiresEquality {
		t.Fatal("lookup must return the innermost type parameter")
	}
	expectFatal(t, diagnostics.ErrS002, func() { ctx.LookupTypeParam("U") })
}

func TestSetPosition(t *testing.T) {
	base := NewContext(testProgram())
	init := base.SetPosition(InForLoopInitializer)
	if init.Position != InForLoopInitializer {
		t.Fatalf("expected initializer position, got %v", init.Position)
	}
	if base.Position != BodyPosition {
		t.Fatal("SetPosition must leave the base context untouched")
	}
}

func TestCurrentDeclNode(t *testing.T) {
	prog := testProgram()
	root := NewContext(prog)
	if mod, ok := CurrentDeclNode(root).(*ast.Module); !ok || mod.Name != "P" {
		t.Fatalf("the root context must resolve to the implicit module, got %T", CurrentDeclNode(root))
	}
	inClass := root.Enter("Outer").Enter("Inner").Enter("C")
	if _, ok := CurrentDeclNode(inClass).(*ast.Class); !ok {
		t.Fatalf("expected the class, got %T", CurrentDeclNode(inClass))
	}
}

func TestModulePath(t *testing.T) {
	prog := testProgram()
	ctx := NewContext(prog).Enter("Outer").Enter("Inner").Enter("C")
	if got := ctx.ModulePath(); got.String() != "Outer.Inner" {
		t.Fatalf("expected Outer.Inner, got %q", got.String())
	}
	atRoot := NewContext(prog)
	if !atRoot.ModulePath().Equal(paths.Root) {
		t.Fatal("the root context's module path must be the root")
	}
	inInner := NewContext(prog).Enter("Outer").Enter("Inner")
	if got := inInner.ModulePath(); got.String() != "Outer.Inner" {
		t.Fatalf("expected Outer.Inner, got %q", got.String())
	}
}

func TestAddImport(t *testing.T) {
	base := NewContext(testProgram())
	imp := &ast.Import{Mode: ast.ImportOpened, Target: paths.Parse("Outer.Inner")}
	with := base.AddImport(imp)
	if len(with.Imports) != 1 || with.Imports[0] != imp {
		t.Fatal("AddImport must record the directive")
	}
	if len(base.Imports) != 0 {
		t.Fatal("AddImport must leave the base context untouched")
	}
}
