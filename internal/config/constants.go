package config

// IndentUnit is one level of indentation in printed output.
const IndentUnit = "  "

// Prelude sentinel comments. A caller-supplied prelude is embedded
// between these markers ahead of the printed declarations.
const (
	PreludeStartMarker = "/***** PRELUDE START *****/"
	PreludeEndMarker   = "/***** PRELUDE END *****/"
)

// Front-end name-mangling markers.
//
// The match compiler emits bound variables like "_mcc#0"; "#" is not
// legal in the target syntax and is rewritten on output. Names carrying
// the anonymous prefix collapse to the wildcard token.
const (
	MatchCompilerMarker = "#"
	AnonymousPrefix     = "_anon"
	WildcardName        = "_"
)

// UnimplementedToken is printed for the explicit Unimplemented
// placeholders in declarations, types and expressions. It is not valid
// syntax on purpose: it must stay visible and greppable in output.
const UnimplementedToken = "<<UNIMPLEMENTED>>"
