package printer

import "github.com/dafmig/yil/internal/diagnostics"

// Operator names arrive from the front end as opaque strings. The
// printer renders the closed subset below and fails fatally on
// anything else: an unknown opcode must never be dropped or guessed.

// unaryOps maps a unary operator name to the text placed before and
// after its rendered argument.
var unaryOps = map[string][2]string{
	"Not":         {"!", ""},
	"Cardinality": {"|", "|"},
	"Fresh":       {"fresh(", ")"},
	"Allocated":   {"allocated(", ")"},
	"Lit":         {"Lit(", ")"},
}

// binaryOps maps the front end's binary opcode names to their
// canonical surface syntax. Every binary application is parenthesized
// unconditionally, so no precedence table is needed.
var binaryOps = map[string]string{
	"Iff": "<==>",
	"Imp": "==>",
	"And": "&&",
	"Or":  "||",

	"Eq":  "==",
	"Neq": "!=",
	"Lt":  "<",
	"Le":  "<=",
	"Ge":  ">=",
	"Gt":  ">",

	"Add": "+",
	"Sub": "-",
	"Mul": "*",
	"Div": "/",
	"Mod": "%",

	"LeftShift":  "<<",
	"RightShift": ">>",
	"BitwiseAnd": "&",
	"BitwiseOr":  "|",
	"BitwiseXor": "^",

	"In":    "in",
	"NotIn": "!in",

	"Concat":         "+",
	"Union":          "+",
	"Intersection":   "*",
	"SetDifference":  "-",
	"MapMerge":       "+",
	"MapSubtraction": "-",

	"Subset":         "<=",
	"ProperSubset":   "<",
	"Superset":       ">=",
	"ProperSuperset": ">",
	"Disjoint":       "!!",
}

func unaryOp(name string) [2]string {
	op, ok := unaryOps[name]
	if !ok {
		panic(diagnostics.NewErrorf(diagnostics.ErrP001, "unsupported unary operator: %q", name))
	}
	return op
}

func binaryOp(name string) string {
	op, ok := binaryOps[name]
	if !ok {
		panic(diagnostics.NewErrorf(diagnostics.ErrP001, "unsupported binary operator: %q", name))
	}
	return op
}
