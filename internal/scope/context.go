package scope

import (
	"github.com/dafmig/yil/internal/ast"
	"github.com/dafmig/yil/internal/diagnostics"
	"github.com/dafmig/yil/internal/paths"
	"github.com/dafmig/yil/internal/resolve"
)

// Position tags where in the surrounding syntax a node is being
// visited. It only disambiguates otherwise-ambiguous printed forms.
type Position int

const (
	BodyPosition Position = iota
	InForLoopInitializer
	InForLoopBody
	PatternPosition
	OtherPosition
)

// Context is the immutable traversal state: which declaration we are
// inside, which type parameters and locals are in scope, the position
// tag and the imports seen so far.
//
// Every operation returns a new Context and shares no mutable state
// with its input, so a base context can be reused across sibling
// branches (both arms of an if, every case of a match) without
// cross-contamination, and independent traversals from copies of one
// base context are race-free.
type Context struct {
	Program     *ast.Program
	CurrentDecl paths.Path    // always resolvable in Program
	TypeParams  []ast.TypeArg // innermost last
	Vars        []*ast.LocalDecl
	Position    Position
	Imports     []*ast.Import
}

// NewContext roots a context at the program's implicit root module.
func NewContext(program *ast.Program) Context {
	return Context{Program: program, CurrentDecl: paths.Root, Position: BodyPosition}
}

// Enter descends into the named child declaration.
func (c Context) Enter(childName string) Context {
	c.CurrentDecl = c.CurrentDecl.Child(childName)
	return c
}

// AddTypeParams brings type parameters into scope, innermost last.
func (c Context) AddTypeParams(params ...ast.TypeArg) Context {
	tps := make([]ast.TypeArg, 0, len(c.TypeParams)+len(params))
	tps = append(tps, c.TypeParams...)
	tps = append(tps, params...)
	c.TypeParams = tps
	return c
}

// Add brings locals into scope. Later entries shadow earlier ones of
// the same name; lookup scans most-recent-first.
func (c Context) Add(locals ...*ast.LocalDecl) Context {
	vars := make([]*ast.LocalDecl, 0, len(c.Vars)+len(locals))
	vars = append(vars, c.Vars...)
	vars = append(vars, locals...)
	c.Vars = vars
	return c
}

// AddVar brings a single non-ghost local into scope.
func (c Context) AddVar(name string, typ ast.Type) Context {
	return c.Add(&ast.LocalDecl{Name: name, Type: typ})
}

// SetPosition returns the context with the position tag replaced.
func (c Context) SetPosition(p Position) Context {
	c.Position = p
	return c
}

// AddImport records an import directive.
func (c Context) AddImport(imp *ast.Import) Context {
	imports := make([]*ast.Import, 0, len(c.Imports)+1)
	imports = append(imports, c.Imports...)
	imports = append(imports, imp)
	c.Imports = imports
	return c
}

// LookupTypeParam returns the innermost type parameter with the given
// name. A missing name is a precondition violation: every
// type-parameter reference in a well-formed resolved program was bound
// when the tree was built.
func (c Context) LookupTypeParam(name string) ast.TypeArg {
	for i := len(c.TypeParams) - 1; i >= 0; i-- {
		if c.TypeParams[i].Name == name {
			return c.TypeParams[i]
		}
	}
	panic(diagnostics.NewErrorf(diagnostics.ErrS002, "type variable not visible: %s", name))
}

// LookupLocalDecl returns the innermost local with the given name.
// A missing name is a precondition violation, as for LookupTypeParam.
func (c Context) LookupLocalDecl(name string) *ast.LocalDecl {
	d, ok := c.LookupLocalDeclOpt(name)
	if !ok {
		panic(diagnostics.NewErrorf(diagnostics.ErrS001, "variable not visible: %s", name))
	}
	return d
}

// LookupLocalDeclOpt is the non-fatal form of LookupLocalDecl.
func (c Context) LookupLocalDeclOpt(name string) (*ast.LocalDecl, bool) {
	for i := len(c.Vars) - 1; i >= 0; i-- {
		if c.Vars[i].Name == name {
			return c.Vars[i], true
		}
	}
	return nil, false
}

// CurrentDeclNode resolves the context's current declaration (the
// implicit root module when the context is at the top level).
func CurrentDeclNode(c Context) ast.Decl {
	if c.CurrentDecl.IsRoot() {
		return resolve.RootModule(c.Program)
	}
	return resolve.LookupByPath(c.Program, c.CurrentDecl)
}

// ModulePath derives the fully qualified path of the nearest enclosing
// module: the longest prefix of CurrentDecl whose declarations are all
// modules (the implicit root module contributes no segment).
func (c Context) ModulePath() paths.Path {
	chain := resolve.LookupAncestorsByPath(c.Program, c.CurrentDecl)
	segs := c.CurrentDecl.Segments()
	out := paths.Root
	for i := 0; i < len(segs); i++ {
		// chain is target-first; chain[len(chain)-2-i] is the decl at
		// depth i+1 below the implicit root.
		decl := chain[len(chain)-2-i]
		if _, ok := decl.(*ast.Module); !ok {
			break
		}
		out = out.Child(segs[i])
	}
	return out
}
