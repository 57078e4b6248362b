// Package symtab implements the Symbols contract (§4.B / §6): scope-chain
// lookup, typedef reduction, type qualification, and template default-type
// resolution. Its shape — a lookup table with a parent-scope chain and
// explicit, descriptive misses rather than panics — is grounded on
// internal/registry.Registry's name/alias/extension cascade, minus the
// concurrency guard: §5 states the core runs single-threaded, and all
// symbol-table writes happen between calls, so this package carries no
// mutex of its own.
package symtab

import (
	"strings"

	"github.com/MyroslavaStopets/swig/internal/ast"
	"github.com/MyroslavaStopets/swig/internal/swigtype"
)

// Scope is one level of a nested namespace/class scope chain.
type Scope struct {
	// Namespace is this scope's fully qualified prefix (e.g. "std::"),
	// used by TypeQualify to expand unqualified names.
	Namespace string

	// Parent is the enclosing scope, or nil at global scope.
	Parent *Scope

	names    map[string]*ast.Node
	typedefs map[string]swigtype.T
}

// NewScope creates an empty scope nested under parent (nil for global
// scope) with the given namespace prefix.
func NewScope(namespace string, parent *Scope) *Scope {
	return &Scope{
		Namespace: namespace,
		Parent:    parent,
		names:     make(map[string]*ast.Node),
		typedefs:  make(map[string]swigtype.T),
	}
}

// Declare registers name as resolving to node in this scope.
func (s *Scope) Declare(name string, node *ast.Node) {
	s.names[name] = node
}

// DeclareTypedef registers name as a typedef alias for underlying.
func (s *Scope) DeclareTypedef(name string, underlying swigtype.T) {
	s.typedefs[name] = underlying
}

// ClookupLocal looks up name in scope only, without walking Parent. This is
// the Symbols.clookup_local operation (§6).
func ClookupLocal(name string, scope *Scope) (*ast.Node, bool) {
	if scope == nil {
		return nil, false
	}
	n, ok := scope.names[name]
	return n, ok
}

// Clookup looks up name in scope, then scope.Parent, and so on to global
// scope. This is the Symbols.clookup operation (§6).
func Clookup(name string, scope *Scope) (*ast.Node, bool) {
	for s := scope; s != nil; s = s.Parent {
		if n, ok := s.names[name]; ok {
			return n, true
		}
	}
	return nil, false
}

// TypedefReduce strips one level of typedef alias from t's base name, per
// scope's typedef table. §6 describes the operation as reducing "one level
// at a time"; callers that need full reduction loop until the result stops
// changing.
func TypedefReduce(t swigtype.T, scope *Scope) swigtype.T {
	prefix := t.Prefix()
	base := t.Base()
	for s := scope; s != nil; s = s.Parent {
		if under, ok := s.typedefs[string(base)]; ok {
			return swigtype.T(prefix + string(under))
		}
	}
	return t
}

// TypedefReduceFull reduces t until a fixed point is reached (no typedef
// table entry matches the current base any further), guarding against a
// typedef cycle by capping iterations at the number of typedefs visible
// from scope.
func TypedefReduceFull(t swigtype.T, scope *Scope) swigtype.T {
	limit := 0
	for s := scope; s != nil; s = s.Parent {
		limit += len(s.typedefs)
	}
	cur := t
	for i := 0; i <= limit; i++ {
		next := TypedefReduce(cur, scope)
		if next == cur {
			return cur
		}
		cur = next
	}
	return cur
}

// TypeQualify expands an unqualified base name in t to scope's fully
// qualified namespace prefix, if the base isn't already qualified.
func TypeQualify(t swigtype.T, scope *Scope) swigtype.T {
	if scope == nil || scope.Namespace == "" {
		return t
	}
	prefix := t.Prefix()
	base := string(t.Base())
	if strings.Contains(base, "::") {
		return t
	}
	// Names declared in scope itself (for example a template parameter
	// placeholder like "T") are left unqualified. No other name is exempt:
	// built-in types are not recognized as such and get the prefix too
	// unless they are declared in scope.
	if _, ok := ClookupLocal(base, scope); ok {
		return t
	}
	return swigtype.T(prefix + scope.Namespace + base)
}

// TemplateDeftype is the Symbols.template_deftype operation. It looks up
// the template named by t's template prefix in tscope, but returns t
// unchanged in every case: default template arguments are not filled into
// t's template-argument tail.
func TemplateDeftype(t swigtype.T, tscope *Scope) swigtype.T {
	if !t.IsTemplate() {
		return t
	}
	name := string(t.TemplatePrefix())
	tmplNode, ok := Clookup(name, tscope)
	if !ok || tmplNode == nil || tmplNode.TemplateParms == nil {
		return t
	}
	// Defaults for an instantiation's own argument list are filled in by
	// template.PrepareArgs; nothing is added here.
	return t
}

// ScopenameLast returns the terminal segment of a "::"-qualified name.
func ScopenameLast(name string) string {
	idx := strings.LastIndex(name, "::")
	if idx < 0 {
		return name
	}
	return name[idx+2:]
}
