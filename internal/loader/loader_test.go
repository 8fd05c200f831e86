package loader

import (
	"math/big"
	"strings"
	"testing"

	"github.com/dafmig/yil/internal/ast"
	"github.com/dafmig/yil/internal/diagnostics"
)

const sampleDump = `
name: Demo
decls:
  - kind: Module
    name: M
    meta:
      comment: arithmetic helpers
    decls:
      - kind: Method
        methodKind: function
        name: double
        ins:
          decls:
            - name: x
              type: {kind: TInt}
        outs:
          decls:
            - name: "_"
              type: {kind: TInt}
        body:
          kind: EBinOpApply
          op: Mul
          left: {kind: EVar, name: x}
          right: {kind: EInt, value: "2"}
`

func expectLoadError(t *testing.T, dump string, code diagnostics.ErrorCode) {
	t.Helper()
	_, err := Load([]byte(dump))
	if err == nil {
		t.Fatalf("expected error %s, got none", code)
	}
	de, ok := err.(*diagnostics.DiagnosticError)
	if !ok {
		t.Fatalf("expected *DiagnosticError, got %T: %v", err, err)
	}
	if de.Code != code {
		t.Fatalf("expected code %s, got %s (%s)", code, de.Code, de.Message)
	}
}

func TestLoadSampleDump(t *testing.T) {
	prog, err := Load([]byte(sampleDump))
	if err != nil {
		t.Fatal(err)
	}
	want := ast.NewProgram("Demo", []ast.Decl{
		&ast.Module{
			Name: "M",
			Meta: ast.Meta{Comment: "arithmetic helpers"},
			Decls: []ast.Decl{
				&ast.Method{
					Kind: ast.MethodKindFunction,
					Name: "double",
					Ins: &ast.InputSpec{
						Decls: []*ast.LocalDecl{{Name: "x", Type: &ast.TInt{}}},
					},
					Outs: &ast.OutputSpec{
						Decls: []*ast.LocalDecl{{Name: "_", Type: &ast.TInt{}}},
					},
					Body: &ast.EBinOpApply{
						Op:    "Mul",
						Left:  &ast.EVar{Name: "x"},
						Right: &ast.EInt{Value: big.NewInt(2)},
					},
				},
			},
		},
	}, ast.Meta{})
	if !ast.EqualPrograms(prog, want) {
		t.Fatal("decoded program does not match the expected tree")
	}
}

func TestLoadPreservesMeta(t *testing.T) {
	prog, err := Load([]byte(sampleDump))
	if err != nil {
		t.Fatal(err)
	}
	mod, ok := prog.Decls[0].(*ast.Module)
	if !ok {
		t.Fatalf("expected a module, got %T", prog.Decls[0])
	}
	if mod.Meta.Comment != "arithmetic helpers" {
		t.Fatalf("comment not preserved, got %q", mod.Meta.Comment)
	}
}

func TestLoadStampsFreshIdentity(t *testing.T) {
	a, err := Load([]byte(sampleDump))
	if err != nil {
		t.Fatal(err)
	}
	b, err := Load([]byte(sampleDump))
	if err != nil {
		t.Fatal(err)
	}
	if a.ID == b.ID {
		t.Fatal("each load must stamp a fresh identity")
	}
	if !ast.EqualPrograms(a, b) {
		t.Fatal("identity must not affect structural equality")
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	expectLoadError(t, "name: [unclosed", diagnostics.ErrL001)
}

func TestLoadNonMappingRoot(t *testing.T) {
	expectLoadError(t, "- just\n- a\n- list\n", diagnostics.ErrL002)
}

func TestLoadUnknownKinds(t *testing.T) {
	expectLoadError(t, `
name: P
decls:
  - kind: Gadget
`, diagnostics.ErrL002)
	expectLoadError(t, `
name: P
decls:
  - kind: Field
    name: f
    type: {kind: TRocket}
`, diagnostics.ErrL002)
}

func TestLoadMissingRequiredKey(t *testing.T) {
	expectLoadError(t, `
name: P
decls:
  - kind: Field
    name: f
`, diagnostics.ErrL002)
	expectLoadError(t, `
decls: []
`, diagnostics.ErrL002)
}

func TestLoadBadLiterals(t *testing.T) {
	expectLoadError(t, `
name: P
decls:
  - kind: Field
    name: f
    type: {kind: TInt}
    init: {kind: EInt, value: "twelve"}
`, diagnostics.ErrL002)
	expectLoadError(t, `
name: P
decls:
  - kind: Field
    name: f
    type: {kind: TChar}
    init: {kind: EChar, value: "ab"}
`, diagnostics.ErrL002)
}

func TestLoadErrorNamesLine(t *testing.T) {
	_, err := Load([]byte("name: P\ndecls:\n  - kind: Gadget\n"))
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "line 3") {
		t.Fatalf("error must carry the source line, got: %v", err)
	}
}
