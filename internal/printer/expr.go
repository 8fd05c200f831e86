package printer

import (
	"strconv"
	"strings"

	"github.com/dafmig/yil/internal/ast"
	"github.com/dafmig/yil/internal/config"
	"github.com/dafmig/yil/internal/diagnostics"
	"github.com/dafmig/yil/internal/scope"
)

// NoPrintSep identifies node kinds that manage their own trailing
// block and must not get a statement separator appended by the caller:
// an if without an explicit else, and the loop forms.
func NoPrintSep(e ast.Expr) bool {
	switch n := e.(type) {
	case *ast.EIf:
		return n.Else == nil
	case *ast.EFor, *ast.EWhile:
		return true
	case *ast.ECommented:
		return NoPrintSep(n.Arg)
	default:
		return false
	}
}

// isEmptyStmt recognizes degenerate nodes left behind by upstream
// transform passes (ghost erasure). They are dropped from statement
// sequences: printing them verbatim would flip the brace-vs-set-literal
// reading in expression position.
func isEmptyStmt(e ast.Expr) bool {
	switch n := e.(type) {
	case *ast.EBlock:
		return len(n.Stmts) == 0
	case *ast.ECommented:
		return isEmptyStmt(n.Arg)
	default:
		return false
	}
}

// statements renders a statement sequence, filtering empty blocks and
// appending separators where the node does not manage its own.
func (p *Printer) statements(stmts []ast.Expr, ctx scope.Context) string {
	var out []string
	for _, s := range stmts {
		if isEmptyStmt(s) {
			continue
		}
		line := p.Statement(s, ctx)
		if !NoPrintSep(s) {
			line += ";"
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// statementBlock renders e as a braced statement block, flattening a
// top-level EBlock instead of nesting braces twice.
func (p *Printer) statementBlock(e ast.Expr, ctx scope.Context) string {
	if b, ok := e.(*ast.EBlock); ok {
		return braceBlock(p.statements(b.Stmts, ctx))
	}
	return braceBlock(p.statements([]ast.Expr{e}, ctx))
}

// Statement prints e in statement position, without a trailing
// separator (the caller appends one unless NoPrintSep holds).
//
// Only control/statement forms and call shapes are legal here; any
// other variant reaching statement position is a fatal unsupported
// construct.
func (p *Printer) Statement(e ast.Expr, ctx scope.Context) string {
	switch n := e.(type) {
	case *ast.EBlock:
		return braceBlock(p.statements(n.Stmts, ctx))
	case *ast.EDecls:
		return p.decls(n, ctx)
	case *ast.EUpdate:
		var targets []string
		for _, t := range n.Targets {
			targets = append(targets, p.Expression(t, ctx))
		}
		op, values := p.updateValues(n.Values, ctx)
		return strings.Join(targets, ", ") + " " + op + " " + strings.Join(values, ", ")
	case *ast.EDeclChoice:
		var names []string
		inner := ctx
		for _, v := range n.Vars {
			names = append(names, p.localDecl(v, ctx))
			inner = inner.Add(v)
		}
		return "var " + strings.Join(names, ", ") + " :| " + p.Expression(n.Cond, inner)
	case *ast.EIf:
		s := "if " + p.Expression(n.Cond, ctx) + " " + p.statementBlock(n.Then, ctx)
		if n.Else != nil {
			if elseIf, ok := n.Else.(*ast.EIf); ok {
				s += " else " + p.Statement(elseIf, ctx)
			} else {
				s += " else " + p.statementBlock(n.Else, ctx)
			}
		}
		return s
	case *ast.EWhile:
		s := ""
		if n.Label != "" {
			s = "label " + n.Label + ": "
		}
		body := ctx.SetPosition(scope.BodyPosition)
		return s + "while " + p.Expression(n.Cond, ctx) + " " +
			p.statementBlock(n.Body, body)
	case *ast.EFor:
		s := ""
		if n.Label != "" {
			s = "label " + n.Label + ": "
		}
		direction := " to "
		if !n.Up {
			direction = " downto "
		}
		init := ctx.SetPosition(scope.InForLoopInitializer)
		body := ctx.SetPosition(scope.InForLoopBody)
		if decls, ok := n.Init.(*ast.EDecls); ok {
			for _, it := range decls.Items {
				body = body.Add(it.Decl)
			}
		}
		return s + "for " + p.Statement(n.Init, init) + direction +
			p.Expression(n.End, ctx) + " " + p.statementBlock(n.Body, body)
	case *ast.EReturn:
		if len(n.Values) == 0 {
			return "return"
		}
		var values []string
		for _, v := range n.Values {
			values = append(values, p.Expression(v, ctx))
		}
		return "return " + strings.Join(values, ", ")
	case *ast.EBreak:
		if n.Label == "" {
			return "break"
		}
		return "break " + n.Label
	case *ast.EMatch:
		return p.match(n, ctx, true)
	case *ast.EArrayUpdate:
		var indices []string
		for _, i := range n.Indices {
			indices = append(indices, p.Expression(i, ctx))
		}
		return p.Expression(n.Target, ctx) + "[" + strings.Join(indices, ", ") +
			"] := " + p.Expression(n.Value, ctx)
	case *ast.EPrint:
		var args []string
		for _, a := range n.Args {
			args = append(args, p.Expression(a, ctx))
		}
		return "print " + strings.Join(args, ", ")
	case *ast.EAssert:
		return "assert " + p.Expression(n.Cond, ctx)
	case *ast.EExpect:
		return "expect " + p.Expression(n.Cond, ctx)
	case *ast.EAssume:
		return "assume " + p.Expression(n.Cond, ctx)
	case *ast.EReveal:
		var targets []string
		for _, t := range n.Targets {
			targets = append(targets, p.Expression(t, ctx))
		}
		return "reveal " + strings.Join(targets, ", ")
	case *ast.EMethodApply:
		return p.Expression(n, ctx)
	case *ast.EAnonApply:
		return p.Expression(n, ctx)
	case *ast.ECommented:
		return "/* " + n.Comment + " */ " + p.Statement(n.Arg, ctx)
	case *ast.EUnimplemented:
		return config.UnimplementedToken
	default:
		panic(diagnostics.NewErrorf(diagnostics.ErrP002,
			"not a statement form: %T", e))
	}
}

// decls renders a local declaration statement. In a for-loop
// initializer the declaration keyword is omitted: the loop header
// already introduces the binding.
func (p *Printer) decls(n *ast.EDecls, ctx scope.Context) string {
	ghost := len(n.Items) > 0
	for _, it := range n.Items {
		if !it.Decl.Ghost {
			ghost = false
		}
	}
	var names []string
	var values []*ast.UpdateRHS
	haveRHS := false
	for _, it := range n.Items {
		names = append(names, p.localDecl(it.Decl, ctx))
		values = append(values, it.RHS)
		if it.RHS != nil {
			haveRHS = true
		}
	}
	s := ""
	if ctx.Position != scope.InForLoopInitializer {
		if ghost {
			s += "ghost "
		}
		s += "var "
	}
	s += strings.Join(names, ", ")
	if haveRHS {
		var rhs []*ast.UpdateRHS
		for _, v := range values {
			if v != nil {
				rhs = append(rhs, v)
			}
		}
		op, rendered := p.updateValues(rhs, ctx)
		s += " " + op + " " + strings.Join(rendered, ", ")
	}
	return s
}

// updateValues renders right-hand sides and picks the assignment
// token: the monadic operator when any side is a failure-propagating
// computation, plain assignment otherwise. The three-step desugaring
// of monadic updates is the target syntax's concern, not the
// printer's.
func (p *Printer) updateValues(values []*ast.UpdateRHS, ctx scope.Context) (string, []string) {
	op := ":="
	var out []string
	for _, v := range values {
		if v.MonadicType != nil {
			op = ":-"
		}
		out = append(out, p.Expression(v.Value, ctx))
	}
	return op, out
}

func (p *Printer) localDecl(d *ast.LocalDecl, ctx scope.Context) string {
	s := cleanName(d.Name)
	if d.Type != nil {
		s += ": " + p.Type(d.Type, ctx)
	}
	return s
}

func (p *Printer) match(n *ast.EMatch, ctx scope.Context, stmt bool) string {
	var arms []string
	for _, c := range n.Cases {
		inner := ctx.Add(c.BoundVars...)
		pattern := p.Expression(c.Pattern, ctx.SetPosition(scope.PatternPosition))
		if stmt {
			arms = append(arms, "case "+pattern+" =>\n"+
				indent(p.statements([]ast.Expr{c.Body}, inner)))
		} else {
			arms = append(arms, "case "+pattern+" => "+p.Expression(c.Body, inner))
		}
	}
	if n.Default != nil {
		if stmt {
			arms = append(arms, "case _ =>\n"+
				indent(p.statements([]ast.Expr{n.Default}, ctx)))
		} else {
			arms = append(arms, "case _ => "+p.Expression(n.Default, ctx))
		}
	}
	return "match " + p.Expression(n.Target, ctx) + " " +
		braceBlock(strings.Join(arms, "\n"))
}

// Expression prints e in expression position: value-producing, no
// trailing separator, parenthesized block forms (braces there would
// read as set literals).
func (p *Printer) Expression(e ast.Expr, ctx scope.Context) string {
	switch n := e.(type) {
	case *ast.EMemberRef:
		return p.receiver(n.Receiver, ctx) + "." + cleanName(n.Name)
	case *ast.EVar:
		return cleanName(n.Name)
	case *ast.EThis:
		return "this"
	case *ast.ENew:
		var args []string
		for _, a := range n.Args {
			args = append(args, p.Expression(a, ctx))
		}
		return "new " + p.classType(n.Class, ctx) + "(" + strings.Join(args, ", ") + ")"
	case *ast.ENull:
		return "null"
	case *ast.EArrayAlloc:
		var dims []string
		for _, d := range n.Dims {
			dims = append(dims, p.Expression(d, ctx))
		}
		return "new " + p.Type(n.Elem, ctx) + "[" + strings.Join(dims, ", ") + "]"
	case *ast.EBool:
		if n.Value {
			return "true"
		}
		return "false"
	case *ast.EChar:
		return strconv.QuoteRune(n.Value)
	case *ast.EString:
		return strconv.Quote(n.Value)
	case *ast.EInt:
		return n.Value.String()
	case *ast.EReal:
		if n.Value.IsInt() {
			return n.Value.Num().String() + ".0"
		}
		return "(" + n.Value.Num().String() + ".0 / " + n.Value.Denom().String() + ".0)"
	case *ast.EToString:
		if len(n.Parts) == 0 {
			return "\"\""
		}
		var parts []string
		for _, part := range n.Parts {
			parts = append(parts, p.Expression(part, ctx))
		}
		return "(" + strings.Join(parts, " + ") + ")"
	case *ast.EQuantifier:
		inner := ctx.Add(n.Vars...)
		s := "(" + n.Quant.String() + " " + p.binderVars(n.Vars, ctx)
		if n.Range != nil {
			s += " | " + p.Expression(n.Range, inner)
		}
		return s + " :: " + p.Expression(n.Body, inner) + ")"
	case *ast.EOld:
		return "old(" + p.Expression(n.Arg, ctx) + ")"
	case *ast.ETuple:
		var elems []string
		for _, el := range n.Elems {
			elems = append(elems, p.Expression(el, ctx))
		}
		return "(" + strings.Join(elems, ", ") + ")"
	case *ast.EProj:
		return p.Expression(n.Arg, ctx) + "." + strconv.Itoa(n.Index)
	case *ast.EFun:
		inner := ctx.Add(n.Params...)
		var params []string
		for _, param := range n.Params {
			params = append(params, p.localDecl(param, ctx))
		}
		return "((" + strings.Join(params, ", ") + ") => " +
			p.Expression(n.Body, inner) + ")"
	case *ast.ESetDisplay:
		var elems []string
		for _, el := range n.Elems {
			elems = append(elems, p.Expression(el, ctx))
		}
		return "{" + strings.Join(elems, ", ") + "}"
	case *ast.ESetComprehension:
		inner := ctx.Add(n.Vars...)
		s := "(set " + p.binderVars(n.Vars, ctx) + " | " + p.Expression(n.Range, inner)
		if n.Body != nil {
			s += " :: " + p.Expression(n.Body, inner)
		}
		return s + ")"
	case *ast.ESeqDisplay:
		var elems []string
		for _, el := range n.Elems {
			elems = append(elems, p.Expression(el, ctx))
		}
		return "[" + strings.Join(elems, ", ") + "]"
	case *ast.ESeqConstruct:
		return "seq(" + p.Expression(n.Length, ctx) + ", " + p.Expression(n.Init, ctx) + ")"
	case *ast.EMapKeys:
		return p.Expression(n.Arg, ctx) + ".Keys"
	case *ast.EMapDisplay:
		var pairs []string
		for _, pair := range n.Pairs {
			pairs = append(pairs, p.Expression(pair.Key, ctx)+" := "+p.Expression(pair.Value, ctx))
		}
		return "map[" + strings.Join(pairs, ", ") + "]"
	case *ast.EMapComprehension:
		inner := ctx.Add(n.Vars...)
		s := "(map " + p.binderVars(n.Vars, ctx) + " | " + p.Expression(n.Range, inner) + " :: "
		if n.Key != nil {
			s += p.Expression(n.Key, inner) + " := "
		}
		return s + p.Expression(n.Value, inner) + ")"
	case *ast.ESeqSelect:
		target := p.Expression(n.Target, ctx)
		if !n.IsSlice {
			return target + "[" + p.Expression(n.Low, ctx) + "]"
		}
		low, high := "", ""
		if n.Low != nil {
			low = p.Expression(n.Low, ctx)
		}
		if n.High != nil {
			high = p.Expression(n.High, ctx)
		}
		return target + "[" + low + ".." + high + "]"
	case *ast.EMultiSelect:
		var indices []string
		for _, i := range n.Indices {
			indices = append(indices, p.Expression(i, ctx))
		}
		return p.Expression(n.Target, ctx) + "[" + strings.Join(indices, ", ") + "]"
	case *ast.ESeqUpdate:
		return p.Expression(n.Target, ctx) + "[" + p.Expression(n.Index, ctx) +
			" := " + p.Expression(n.Value, ctx) + "]"
	case *ast.EUnOpApply:
		op := unaryOp(n.Op)
		return op[0] + p.Expression(n.Arg, ctx) + op[1]
	case *ast.EBinOpApply:
		// Unconditional parentheses sidestep precedence analysis.
		return "(" + p.Expression(n.Left, ctx) + " " + binaryOp(n.Op) + " " +
			p.Expression(n.Right, ctx) + ")"
	case *ast.EMethodApply:
		s := p.receiver(n.Receiver, ctx) + "." + cleanName(n.Name)
		if len(n.TypeArgs) > 0 {
			var targs []string
			for _, t := range n.TypeArgs {
				targs = append(targs, p.Type(t, ctx))
			}
			s += "<" + strings.Join(targs, ", ") + ">"
		}
		var args []string
		for _, a := range n.Args {
			args = append(args, p.Expression(a, ctx))
		}
		return s + "(" + strings.Join(args, ", ") + ")"
	case *ast.EAnonApply:
		var args []string
		for _, a := range n.Args {
			args = append(args, p.Expression(a, ctx))
		}
		return p.Expression(n.Fun, ctx) + "(" + strings.Join(args, ", ") + ")"
	case *ast.EConstructorApply:
		if len(n.Args) == 0 && ctx.Position != scope.PatternPosition {
			return n.Ctor.String()
		}
		var args []string
		for _, a := range n.Args {
			args = append(args, p.Expression(a, ctx))
		}
		return n.Ctor.String() + "(" + strings.Join(args, ", ") + ")"
	case *ast.ETypeConversion:
		return "(" + p.Expression(n.Arg, ctx) + " as " + p.Type(n.To, ctx) + ")"
	case *ast.ETypeTest:
		return "(" + p.Expression(n.Arg, ctx) + " is " + p.Type(n.Is, ctx) + ")"
	case *ast.EBlock:
		// Braces in expression position are set literals; blocks are
		// parenthesized instead. Leading statements keep statement
		// rendering, the final element produces the value.
		if len(n.Stmts) == 0 {
			return "()"
		}
		if len(n.Stmts) == 1 {
			return "(" + p.Expression(n.Stmts[0], ctx) + ")"
		}
		head := p.statements(n.Stmts[:len(n.Stmts)-1], ctx)
		last := p.Expression(n.Stmts[len(n.Stmts)-1], ctx)
		if head == "" {
			return "(" + last + ")"
		}
		return "(\n" + indent(head+"\n"+last) + "\n)"
	case *ast.ELet:
		inner := ctx.Add(n.Vars...)
		var names []string
		for _, v := range n.Vars {
			names = append(names, p.localDecl(v, ctx))
		}
		op := ":="
		if !n.Exact {
			op = ":|"
		}
		var values []string
		for _, v := range n.Values {
			values = append(values, p.Expression(v, ctx))
		}
		return "var " + strings.Join(names, ", ") + " " + op + " " +
			strings.Join(values, ", ") + "; " + p.Expression(n.Body, inner)
	case *ast.EIf:
		s := "if " + p.Expression(n.Cond, ctx) + " then " + p.Expression(n.Then, ctx) + " else "
		if n.Else == nil {
			return s + "()"
		}
		return s + p.Expression(n.Else, ctx)
	case *ast.EMatch:
		return p.match(n, ctx, false)
	case *ast.ECommented:
		return "/* " + n.Comment + " */ " + p.Expression(n.Arg, ctx)
	case *ast.EUnimplemented:
		return config.UnimplementedToken
	case *ast.EWhile, *ast.EFor, *ast.EReturn, *ast.EBreak, *ast.EUpdate,
		*ast.EDecls, *ast.EDeclChoice, *ast.EPrint, *ast.EArrayUpdate,
		*ast.EAssert, *ast.EExpect, *ast.EAssume, *ast.EReveal:
		panic(diagnostics.NewErrorf(diagnostics.ErrP003,
			"statement form in expression position: %T", e))
	default:
		panic(diagnostics.NewErrorf(diagnostics.ErrP002,
			"unsupported expression: %T", e))
	}
}

// binderVars renders quantifier/comprehension bound variables. Ghost
// flags are not surface syntax on binders and are not printed.
func (p *Printer) binderVars(vars []*ast.LocalDecl, ctx scope.Context) string {
	var out []string
	for _, v := range vars {
		out = append(out, p.localDecl(v, ctx))
	}
	return strings.Join(out, ", ")
}
