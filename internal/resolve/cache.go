package resolve

import (
	"github.com/google/uuid"

	"github.com/dafmig/yil/internal/ast"
	"github.com/dafmig/yil/internal/paths"
)

// Resolver memoizes ancestor chains per program identity. Programs are
// immutable once built and every freshly built or loaded tree carries
// a new ID, so entries for one identity can never leak into another;
// swapping in a different tree amounts to invalidation.
//
// Resolver is not safe for concurrent use; traversals that need a
// shared cache across goroutines must synchronize externally, matching
// the single-writer/then-many-readers model of the core.
type Resolver struct {
	program *ast.Program
	id      uuid.UUID
	memo    map[string][]ast.Decl
}

func NewResolver(program *ast.Program) *Resolver {
	return &Resolver{
		program: program,
		id:      program.ID,
		memo:    make(map[string][]ast.Decl),
	}
}

// AncestorsByPath is the memoized form of LookupAncestorsByPath.
func (r *Resolver) AncestorsByPath(path paths.Path) []ast.Decl {
	key := path.String()
	if chain, ok := r.memo[key]; ok {
		return chain
	}
	chain := LookupAncestorsByPath(r.program, path)
	r.memo[key] = chain
	return chain
}

// ByPath is the memoized form of LookupByPath.
func (r *Resolver) ByPath(path paths.Path) ast.Decl {
	return r.AncestorsByPath(path)[0]
}

// Program returns the tree this resolver is bound to.
func (r *Resolver) Program() *ast.Program { return r.program }
