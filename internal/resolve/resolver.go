package resolve

import (
	"github.com/dafmig/yil/internal/ast"
	"github.com/dafmig/yil/internal/diagnostics"
	"github.com/dafmig/yil/internal/paths"
)

// RootModule wraps the whole program in an implicit module so that the
// empty path resolves like any other declaration.
func RootModule(program *ast.Program) *ast.Module {
	return &ast.Module{Name: program.Name, Decls: program.Decls, Meta: program.Meta}
}

// LookupAncestorsByPath resolves path against program and returns the
// chain of declarations from the target up to the implicit root
// module, ordered target-first.
//
// Resolution first searches the parent's explicit children, then its
// implicit children (datatype selectors and testers). A path that does
// not resolve is a precondition violation and panics with ErrR001:
// callers must only query paths present in a well-formed program.
func LookupAncestorsByPath(program *ast.Program, path paths.Path) []ast.Decl {
	if path.IsRoot() {
		return []ast.Decl{RootModule(program)}
	}
	chain := LookupAncestorsByPath(program, path.Parent())
	parent := chain[0]
	name := path.Name()
	for _, child := range ast.ChildrenOf(parent) {
		if ast.NameOf(child) == name {
			return append([]ast.Decl{child}, chain...)
		}
	}
	for _, child := range ImplicitChildren(parent) {
		if ast.NameOf(child) == name {
			return append([]ast.Decl{child}, chain...)
		}
	}
	panic(diagnostics.NewErrorf(diagnostics.ErrR001, "path not valid: %s", path))
}

// LookupByPath resolves path to its declaration.
func LookupByPath(program *ast.Program, path paths.Path) ast.Decl {
	return LookupAncestorsByPath(program, path)[0]
}

// LookupConstructor resolves path.Parent() to a datatype and returns
// its constructor named path.Name(). Panics with ErrR002 when the
// parent is not a datatype or no constructor matches.
func LookupConstructor(program *ast.Program, path paths.Path) *ast.DatatypeConstructor {
	if path.IsRoot() {
		panic(diagnostics.NewError(diagnostics.ErrR002, "constructor path is root"))
	}
	parent := LookupByPath(program, path.Parent())
	dt, ok := parent.(*ast.Datatype)
	if !ok {
		panic(diagnostics.NewErrorf(diagnostics.ErrR002,
			"not a datatype: %s", path.Parent()))
	}
	for _, ctor := range dt.Ctors {
		if ctor.Name == path.Name() {
			return ctor
		}
	}
	panic(diagnostics.NewErrorf(diagnostics.ErrR002, "constructor not found: %s", path))
}

// ImplicitChildren derives the members that are addressable by path
// but absent from the explicit tree. They are synthesized on demand
// for lookup only; the printer never emits them.
//
// A datatype contributes one selector field per distinct constructor
// argument name (de-duplicated, ghost-ness taken from the argument)
// and one boolean tester field "C?" per constructor C. A module
// contributes the implicit children of its declared children,
// recursively. All other declarations contribute nothing.
func ImplicitChildren(d ast.Decl) []ast.Decl {
	switch n := d.(type) {
	case *ast.Datatype:
		var out []ast.Decl
		seen := make(map[string]bool)
		for _, ctor := range n.Ctors {
			for _, in := range ctor.Ins {
				if seen[in.Name] {
					continue
				}
				seen[in.Name] = true
				out = append(out, &ast.Field{
					Name:  in.Name,
					Type:  in.Type,
					Ghost: in.Ghost,
				})
			}
		}
		for _, ctor := range n.Ctors {
			out = append(out, &ast.Field{
				Name: ctor.Name + "?",
				Type: &ast.TBool{},
			})
		}
		return out
	case *ast.Module:
		var out []ast.Decl
		for _, child := range n.Decls {
			out = append(out, ImplicitChildren(child)...)
		}
		return out
	default:
		return nil
	}
}
