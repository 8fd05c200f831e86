package printer

import (
	"fmt"
	"strings"

	"github.com/dafmig/yil/internal/ast"
	"github.com/dafmig/yil/internal/config"
	"github.com/dafmig/yil/internal/diagnostics"
	"github.com/dafmig/yil/internal/scope"
)

// Printer unparses the IR to source text. It holds no per-call state;
// every method is a pure function of its node and context, so one
// Printer can serve concurrent traversals over disjoint branches.
//
// With strict set, only variants guaranteed to re-parse are emitted in
// canonical form and the passed context must be positionally accurate
// (it decides e.g. whether "static" is legal on a member).
type Printer struct {
	strict bool
}

func New(strict bool) *Printer {
	return &Printer{strict: strict}
}

// indent prefixes every inner newline with one indent unit, keeping
// nested rendering compositional: each recursive call returns a
// self-contained indented string.
func indent(s string) string {
	return config.IndentUnit + strings.ReplaceAll(s, "\n", "\n"+config.IndentUnit)
}

// braceBlock wraps an already-rendered body in braces, indenting it.
func braceBlock(body string) string {
	if body == "" {
		return "{}"
	}
	return "{\n" + indent(body) + "\n}"
}

// cleanName reverses front-end name mangling: names with the
// anonymous prefix collapse to the wildcard, and the match-compiler
// marker is rewritten to a printable character.
func cleanName(name string) string {
	if strings.HasPrefix(name, config.AnonymousPrefix) {
		return config.WildcardName
	}
	return strings.ReplaceAll(name, config.MatchCompilerMarker, "_")
}

// Program prints a whole program. Include directives anywhere in the
// top-level declaration list are hoisted first, one per line; a
// non-empty prelude is embedded between the sentinel markers; a
// program with no includes and no prelude still begins with a blank
// line for syntactic uniformity.
func (p *Printer) Program(prog *ast.Program, ctx scope.Context, prelude string) string {
	var b strings.Builder
	for _, d := range prog.Decls {
		if inc, ok := d.(*ast.Include); ok {
			b.WriteString("include \"" + inc.Target + "\"\n")
		}
	}
	b.WriteString("\n")
	if prelude != "" {
		b.WriteString(config.PreludeStartMarker + "\n")
		b.WriteString(prelude + "\n")
		b.WriteString(config.PreludeEndMarker + "\n\n")
	}
	for _, d := range prog.Decls {
		if _, ok := d.(*ast.Include); ok {
			continue
		}
		b.WriteString(p.Decl(d, ctx) + "\n")
		if imp, ok := d.(*ast.Import); ok {
			ctx = ctx.AddImport(imp)
		}
	}
	return b.String()
}

// Decl prints one declaration. Only the explicit tree is walked:
// implicit members synthesized by resolution are never printed.
func (p *Printer) Decl(d ast.Decl, ctx scope.Context) string {
	prefix := ""
	if c := ast.MetaOf(d).Comment; c != "" {
		prefix = "// " + strings.ReplaceAll(c, "\n", "\n// ") + "\n"
	}
	switch n := d.(type) {
	case *ast.Include:
		return prefix + "include \"" + n.Target + "\""
	case *ast.Module:
		inner := ctx.Enter(n.Name)
		var decls []string
		for _, child := range n.Decls {
			decls = append(decls, p.Decl(child, inner))
			if imp, ok := child.(*ast.Import); ok {
				inner = inner.AddImport(imp)
			}
		}
		return prefix + "module " + n.Name + " " + braceBlock(strings.Join(decls, "\n"))
	case *ast.Datatype:
		inner := ctx.Enter(n.Name).AddTypeParams(n.TypeParams...)
		var ctors []string
		for _, ctor := range n.Ctors {
			ctors = append(ctors, p.constructor(ctor, inner))
		}
		s := prefix + "datatype " + n.Name + p.typeParams(n.TypeParams) +
			" = " + strings.Join(ctors, " | ")
		if len(n.Members) > 0 {
			var members []string
			for _, m := range n.Members {
				members = append(members, p.Decl(m, inner))
			}
			s += " " + braceBlock(strings.Join(members, "\n"))
		}
		return s
	case *ast.Class:
		keyword := "class"
		if n.IsTrait {
			keyword = "trait"
		}
		inner := ctx.Enter(n.Name).AddTypeParams(n.TypeParams...)
		s := prefix + keyword + " " + n.Name + p.typeParams(n.TypeParams)
		if len(n.SuperTypes) > 0 {
			var supers []string
			for _, t := range n.SuperTypes {
				supers = append(supers, p.Type(t, inner))
			}
			s += " extends " + strings.Join(supers, ", ")
		}
		var members []string
		for _, m := range n.Members {
			members = append(members, p.Decl(m, inner))
		}
		return s + " " + braceBlock(strings.Join(members, "\n"))
	case *ast.ClassConstructor:
		inner := ctx.Enter(n.Name).AddTypeParams(n.TypeParams...)
		s := prefix + "constructor"
		if n.Name != "" {
			s += " " + n.Name
		}
		s += p.typeParams(n.TypeParams) + p.formals(n.Ins, inner)
		inner = inner.Add(inputDecls(n.Ins)...)
		s += p.clauses("requires", preconditions(n.Ins), inner)
		s += p.clauses("ensures", n.Ensures, inner)
		if n.Body != nil {
			s += "\n" + p.statementBlock(n.Body, inner)
		}
		return s
	case *ast.TypeDef:
		keyword := "type"
		if n.IsNewType {
			keyword = "newtype"
		}
		inner := ctx.Enter(n.Name).AddTypeParams(n.TypeParams...)
		s := prefix + keyword + " " + n.Name + p.typeParams(n.TypeParams) + " = "
		if n.Predicate != nil {
			inner = inner.AddVar(n.SubsetVar, n.Super)
			return s + n.SubsetVar + ": " + p.Type(n.Super, inner) +
				" | " + p.Expression(n.Predicate, inner)
		}
		return s + p.Type(n.Super, inner)
	case *ast.Field:
		inner := ctx.Enter(n.Name)
		s := prefix
		if n.Ghost {
			s += "ghost "
		}
		if n.IsStatic && p.staticAllowed(ctx) {
			s += "static "
		}
		if n.IsMutable {
			s += "var " + n.Name + ": " + p.Type(n.Type, inner)
		} else {
			s += "const " + n.Name + ": " + p.Type(n.Type, inner)
			if n.Init != nil {
				s += " := " + p.Expression(n.Init, inner)
			}
		}
		return s
	case *ast.Method:
		return prefix + p.method(n, ctx)
	case *ast.Import:
		s := prefix + "import "
		switch n.Mode {
		case ast.ImportOpened:
			s += "opened " + n.Target.String()
		case ast.ImportAliased:
			s += n.Alias + " = " + n.Target.String()
		default:
			s += n.Target.String()
		}
		return s
	case *ast.Export:
		s := prefix + "export"
		if n.Spec.Name != "" {
			s += " " + n.Spec.Name
		}
		if len(n.Spec.Provides) > 0 {
			s += " provides " + strings.Join(n.Spec.Provides, ", ")
		}
		if len(n.Spec.Reveals) > 0 {
			s += " reveals " + strings.Join(n.Spec.Reveals, ", ")
		}
		return s
	case *ast.DeclUnimplemented:
		if n.Note != "" {
			return prefix + config.UnimplementedToken + " // " + n.Note
		}
		return prefix + config.UnimplementedToken
	default:
		panic(diagnostics.NewErrorf(diagnostics.ErrP002,
			"unsupported declaration: %T", d))
	}
}

func (p *Printer) method(n *ast.Method, ctx scope.Context) string {
	inner := ctx.Enter(n.Name).AddTypeParams(n.TypeParams...)
	s := ""
	if n.Ghost && !n.Kind.IntrinsicGhost() {
		s += "ghost "
	}
	if n.IsStatic && p.staticAllowed(ctx) {
		s += "static "
	}
	s += n.Kind.String() + " " + n.Name + p.typeParams(n.TypeParams)
	s += p.formals(n.Ins, inner)
	inner = inner.Add(inputDecls(n.Ins)...)

	if n.Kind.FunctionSyntax() {
		if !isPredicateKind(n.Kind) {
			if t, ok := n.Outs.OutputType(); ok {
				s += ": " + p.Type(t, inner)
			} else if n.Outs != nil && len(n.Outs.Decls) == 1 {
				out := n.Outs.Decls[0]
				s += ": (" + out.Name + ": " + p.Type(out.Type, inner) + ")"
			}
		}
	} else if n.Outs != nil && len(n.Outs.Decls) > 0 {
		var outs []string
		for _, out := range n.Outs.Decls {
			outs = append(outs, cleanName(out.Name)+": "+p.Type(out.Type, inner))
		}
		s += " returns (" + strings.Join(outs, ", ") + ")"
	}
	if n.Outs != nil {
		inner = inner.Add(n.Outs.Decls...)
	}

	s += p.clauses("requires", preconditions(n.Ins), inner)
	s += p.clauses("reads", n.Reads, inner)
	s += p.clauses("modifies", n.Modifies, inner)
	if n.Outs != nil {
		s += p.clauses("ensures", n.Outs.Postconditions, inner)
	}
	s += p.clauses("decreases", n.Decreases, inner)

	if n.Body == nil {
		return s
	}
	if n.Kind.FunctionSyntax() {
		return s + "\n" + braceBlock(p.Expression(n.Body, inner))
	}
	return s + "\n" + p.statementBlock(n.Body, inner)
}

func isPredicateKind(k ast.MethodKind) bool {
	return k == ast.MethodKindPredicate || k == ast.MethodKindPredicateMethod
}

// staticAllowed reports whether "static" may be emitted for a member
// in the current context. Outside strict mode it always may; in
// strict mode the enclosing declaration must be a class.
func (p *Printer) staticAllowed(ctx scope.Context) bool {
	if !p.strict {
		return true
	}
	_, isClass := scope.CurrentDeclNode(ctx).(*ast.Class)
	return isClass
}

func (p *Printer) constructor(c *ast.DatatypeConstructor, ctx scope.Context) string {
	if len(c.Ins) == 0 {
		return c.Name
	}
	var ins []string
	for _, in := range c.Ins {
		s := ""
		if in.Ghost {
			s += "ghost "
		}
		ins = append(ins, s+in.Name+": "+p.Type(in.Type, ctx))
	}
	return c.Name + "(" + strings.Join(ins, ", ") + ")"
}

// typeParams renders a declaration-site type parameter list with
// variance and equality-bound annotations. Use sites never carry the
// annotations; they go through Type instead.
func (p *Printer) typeParams(params []ast.TypeArg) string {
	if len(params) == 0 {
		return ""
	}
	var out []string
	for _, tp := range params {
		s := ""
		switch tp.Variance {
		case ast.VarianceCo:
			s = "+"
		case ast.VarianceContra:
			s = "-"
		}
		s += tp.Name
		if tp.RequiresEquality {
			s += "(==)"
		}
		out = append(out, s)
	}
	return "<" + strings.Join(out, ", ") + ">"
}

func (p *Printer) formals(ins *ast.InputSpec, ctx scope.Context) string {
	var out []string
	if ins != nil {
		for _, d := range ins.Decls {
			s := ""
			if d.Ghost {
				s += "ghost "
			}
			out = append(out, s+cleanName(d.Name)+": "+p.Type(d.Type, ctx))
		}
	}
	return "(" + strings.Join(out, ", ") + ")"
}

// clauses renders one specification clause per line, indented under
// the signature.
func (p *Printer) clauses(keyword string, conds []ast.Expr, ctx scope.Context) string {
	s := ""
	for _, cond := range conds {
		s += "\n" + config.IndentUnit + keyword + " " + p.Expression(cond, ctx)
	}
	return s
}

func inputDecls(ins *ast.InputSpec) []*ast.LocalDecl {
	if ins == nil {
		return nil
	}
	return ins.Decls
}

func preconditions(ins *ast.InputSpec) []ast.Expr {
	if ins == nil {
		return nil
	}
	return ins.Preconditions
}

// Type prints a type reference.
func (p *Printer) Type(t ast.Type, ctx scope.Context) string {
	switch n := t.(type) {
	case *ast.TUnit:
		return "()"
	case *ast.TBool:
		return "bool"
	case *ast.TChar:
		return "char"
	case *ast.TString:
		return "string"
	case *ast.TNat:
		if n.Bound != nil {
			return fmt.Sprintf("nat%d", *n.Bound)
		}
		return "nat"
	case *ast.TInt:
		if n.Bound != nil {
			return fmt.Sprintf("int%d", *n.Bound)
		}
		return "int"
	case *ast.TReal:
		if n.Bound != nil {
			return fmt.Sprintf("float%d", *n.Bound)
		}
		return "real"
	case *ast.TBitVector:
		return fmt.Sprintf("bv%d", n.Width)
	case *ast.TTuple:
		var elems []string
		for _, e := range n.Elems {
			elems = append(elems, p.Type(e, ctx))
		}
		return "(" + strings.Join(elems, ", ") + ")"
	case *ast.TFunc:
		var ins []string
		for _, in := range n.Ins {
			ins = append(ins, p.Type(in, ctx))
		}
		return "(" + strings.Join(ins, ", ") + ") -> " + p.Type(n.Out, ctx)
	case *ast.TSeq:
		return "seq<" + p.Type(n.Elem, ctx) + ">"
	case *ast.TSet:
		return "set<" + p.Type(n.Elem, ctx) + ">"
	case *ast.TMap:
		return "map<" + p.Type(n.Key, ctx) + ", " + p.Type(n.Value, ctx) + ">"
	case *ast.TArray:
		name := "array"
		if n.Dims != nil && *n.Dims > 1 {
			name = fmt.Sprintf("array%d", *n.Dims)
		}
		return name + "<" + p.Type(n.Elem, ctx) + ">"
	case *ast.TObject:
		return "object"
	case *ast.TNullable:
		return p.Type(n.Base, ctx) + "?"
	case *ast.TApply:
		s := n.Path.String()
		if len(n.Args) > 0 {
			var args []string
			for _, a := range n.Args {
				args = append(args, p.Type(a, ctx))
			}
			s += "<" + strings.Join(args, ", ") + ">"
		}
		return s
	case *ast.TVar:
		return n.Name
	case *ast.TUnimplemented:
		return config.UnimplementedToken
	default:
		panic(diagnostics.NewErrorf(diagnostics.ErrP002, "unsupported type: %T", t))
	}
}

func (p *Printer) classType(c ast.ClassType, ctx scope.Context) string {
	s := c.Path.String()
	if len(c.TypeArgs) > 0 {
		var args []string
		for _, a := range c.TypeArgs {
			args = append(args, p.Type(a, ctx))
		}
		s += "<" + strings.Join(args, ", ") + ">"
	}
	return s
}

func (p *Printer) receiver(r ast.Receiver, ctx scope.Context) string {
	switch n := r.(type) {
	case *ast.StaticReceiver:
		return p.classType(n.Class, ctx)
	case *ast.ObjectReceiver:
		return p.Expression(n.Object, ctx)
	default:
		panic(diagnostics.NewErrorf(diagnostics.ErrP002, "unsupported receiver: %T", r))
	}
}
