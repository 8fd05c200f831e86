package paths

import (
	"strings"

	"github.com/dafmig/yil/internal/diagnostics"
)

// Path is an immutable dotted sequence of name segments identifying a
// declaration's position in the program tree. The empty sequence is
// the program root. Path values are never mutated after construction;
// every operation returns a fresh value.
type Path struct {
	segs []string
}

// Root is the empty path.
var Root = Path{}

// New builds a path from segments. Empty segments are skipped.
func New(segs ...string) Path {
	out := make([]string, 0, len(segs))
	for _, s := range segs {
		if s != "" {
			out = append(out, s)
		}
	}
	return Path{segs: out}
}

// Parse splits a dotted string into a path. The empty string parses
// to the root.
func Parse(s string) Path {
	if s == "" {
		return Root
	}
	return New(strings.Split(s, ".")...)
}

func (p Path) IsRoot() bool { return len(p.segs) == 0 }

func (p Path) Len() int { return len(p.segs) }

// Segments returns a copy of the segment slice.
func (p Path) Segments() []string {
	out := make([]string, len(p.segs))
	copy(out, p.segs)
	return out
}

func (p Path) String() string { return strings.Join(p.segs, ".") }

// Child appends one segment. An empty name is a no-op.
func (p Path) Child(name string) Path {
	if name == "" {
		return p
	}
	segs := make([]string, len(p.segs), len(p.segs)+1)
	copy(segs, p.segs)
	return Path{segs: append(segs, name)}
}

// Append concatenates other onto p, skipping other's empty segments.
func (p Path) Append(other Path) Path {
	segs := make([]string, len(p.segs), len(p.segs)+len(other.segs))
	copy(segs, p.segs)
	for _, s := range other.segs {
		if s != "" {
			segs = append(segs, s)
		}
	}
	return Path{segs: segs}
}

// Prefix rewrites the first segment to "s.<first>". Used to namespace
// generated program variants (e.g. "Old"/"New"). On the root path it
// is a no-op: there is no first segment to rewrite.
func (p Path) Prefix(s string) Path {
	if p.IsRoot() || s == "" {
		return p
	}
	segs := make([]string, 0, len(p.segs)+1)
	segs = append(segs, s, p.segs[0])
	segs = append(segs, p.segs[1:]...)
	return Path{segs: segs}
}

// Parent drops the last segment. Undefined on the root.
func (p Path) Parent() Path {
	if p.IsRoot() {
		panic(diagnostics.NewError(diagnostics.ErrR001, "parent of root path"))
	}
	segs := make([]string, len(p.segs)-1)
	copy(segs, p.segs[:len(p.segs)-1])
	return Path{segs: segs}
}

// Name returns the last segment. Undefined on the root.
func (p Path) Name() string {
	if p.IsRoot() {
		panic(diagnostics.NewError(diagnostics.ErrR001, "name of root path"))
	}
	return p.segs[len(p.segs)-1]
}

// IsAncestorOf is a segment-wise prefix test. Every path is an
// ancestor of itself.
func (p Path) IsAncestorOf(q Path) bool {
	if len(p.segs) > len(q.segs) {
		return false
	}
	for i, s := range p.segs {
		if q.segs[i] != s {
			return false
		}
	}
	return true
}

// Relativize strips the ancestor prefix p from q. If p is not an
// ancestor of q, q is returned unchanged; this is not an error.
func (p Path) Relativize(q Path) Path {
	if !p.IsAncestorOf(q) {
		return q
	}
	segs := make([]string, len(q.segs)-len(p.segs))
	copy(segs, q.segs[len(p.segs):])
	return Path{segs: segs}
}

// Equal is structural equality over the segment sequence.
func (p Path) Equal(q Path) bool {
	if len(p.segs) != len(q.segs) {
		return false
	}
	for i, s := range p.segs {
		if q.segs[i] != s {
			return false
		}
	}
	return true
}

// Compare orders paths lexicographically by segments, shorter first on
// a shared prefix. Returns -1, 0 or 1.
func (p Path) Compare(q Path) int {
	n := len(p.segs)
	if len(q.segs) < n {
		n = len(q.segs)
	}
	for i := 0; i < n; i++ {
		if c := strings.Compare(p.segs[i], q.segs[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(p.segs) < len(q.segs):
		return -1
	case len(p.segs) > len(q.segs):
		return 1
	default:
		return 0
	}
}
