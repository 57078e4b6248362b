package template

import (
	"strconv"
	"strings"

	"github.com/MyroslavaStopets/swig/internal/ast"
	"github.com/MyroslavaStopets/swig/internal/diag"
	"github.com/MyroslavaStopets/swig/internal/symtab"
	"github.com/MyroslavaStopets/swig/internal/swigtype"
)

// Request describes one instantiation request: `%template(Symname) Name<Args>;`
// (§4.E). Parms must already be prepared (defaults filled in, pack flagged)
// via PrepareArgs — the Locator only consumes the resolved list, it does not
// build it.
type Request struct {
	Name    string
	Parms   *ast.Node // prepared parameter chain; each node's Type attr is the concrete arg
	Symname string    // "" for an anonymous/empty instantiation

	// LocalScope is the primary template's own scope, used to look up
	// explicit specializations declared alongside it. May be nil if the
	// primary has no local declarations of its own.
	LocalScope *symtab.Scope

	// Siblings lists other templates sharing Name in the enclosing scope,
	// used only for function-template overload resolution (§4.E step 7).
	Siblings []*ast.Node

	Location diag.Location
}

// Locator tracks prior instantiations to enforce the duplicate-instantiation
// rule across repeated calls (§3 invariant, §8 scenario S6). The zero value
// is ready to use.
type Locator struct {
	seen map[string]string // tname -> symname of the prior instantiation ("" = anonymous)
}

// NewLocator creates an empty Locator.
func NewLocator() *Locator {
	return &Locator{seen: make(map[string]string)}
}

func (l *Locator) ensureSeen() {
	if l.seen == nil {
		l.seen = make(map[string]string)
	}
}

// ArgsTail builds the encoded `<(arg1,arg2,...)>` tail from a prepared
// parameter chain, using each parameter's Value if present (§9: value wins
// over type for display), else its Type. Shared by the Locator (building
// `tname`) and by internal/expand (building the instance's display name).
func ArgsTail(parms *ast.Node) string {
	var parts []string
	for p := parms; p != nil; p = p.Next {
		v := p.Attr(ast.AttrValue)
		if v == "" {
			v = p.Attr(ast.AttrType)
		}
		parts = append(parts, v)
	}
	return "<(" + strings.Join(parts, ",") + ")>"
}

// Locate implements §4.E's orchestration: find the primary, then an
// explicit specialization, else a matching partial, else the primary
// itself, subject to arity validation and duplicate-instantiation
// suppression. Returns (nil, nil) when the request is dropped without
// error (silent duplicate, or the sole-loser side of an ignored
// duplicate) — diags carries the human-readable reason in that case.
func (l *Locator) Locate(req Request, scope *symtab.Scope, diags *diag.Diagnostics) (*ast.Node, error) {
	l.ensureSeen()

	primary, ok := symtab.Clookup(req.Name, scope)
	if !ok {
		return nil, diag.TemplateNotFound(req.Location, req.Name)
	}
	if primary.Type != ast.Template {
		return nil, diag.NotATemplate(req.Location, req.Name)
	}

	tname := req.Name + ArgsTail(req.Parms)

	if priorSymname, dup := l.seen[tname]; dup {
		switch {
		case req.Symname == "":
			// An empty instantiation is silently ignored if any prior
			// instantiation exists.
			return nil, nil
		case priorSymname == "":
			// A named instantiation may supersede a prior empty one.
			l.seen[tname] = req.Symname
		default:
			diags.DuplicateInstantiation(req.Location, tname)
			return nil, nil
		}
	} else {
		l.seen[tname] = req.Symname
	}

	// Explicit-specialization search.
	if req.LocalScope != nil {
		if found, ok := findExplicitSpecialization(tname, req.LocalScope); ok {
			if found.Type == ast.Template {
				found.Instantiate = true
				return found, nil
			}
			if found.Attr("template") != "" {
				// Already-instantiated marker node; the dup-check above
				// already resolved supersede/reject/ignore, so if we reach
				// here treat it as "use the existing instantiation" (no
				// new node to build).
				return nil, nil
			}
			return nil, diag.NotATemplate(req.Location, req.Name)
		}
	}

	args := make([]swigtype.T, 0, req.Parms.Len())
	for p := req.Parms; p != nil; p = p.Next {
		args = append(args, swigtype.T(p.Attr(ast.AttrType)))
	}

	isFunctionTemplate := primary.TemplateType == ast.Cdecl

	if isFunctionTemplate {
		return l.locateFunctionTemplate(req, primary, args)
	}

	var chosen *ast.Node
	if len(primary.Partials) > 0 {
		candidates := make([]Candidate, len(primary.Partials))
		for i, part := range primary.Partials {
			candidates[i] = Candidate{Node: part, Parms: partialParmTypes(part)}
		}
		chosen = MatchPartials(candidates, args, scope, req.Location, diags)
	}

	if chosen == nil {
		if err := validateArity(req.Location, req.Name, primary, len(args)); err != nil {
			return nil, err
		}
		primary.Instantiate = true
		return primary, nil
	}

	chosen.Instantiate = true
	return chosen, nil
}

// findExplicitSpecialization implements §4.E step 3's two-attempt lookup:
// look up tname directly in scope; if that misses, typedef-reduce tname to
// rname and, only if reduction actually changed it, look that up too.
func findExplicitSpecialization(tname string, scope *symtab.Scope) (*ast.Node, bool) {
	if found, ok := symtab.ClookupLocal(tname, scope); ok {
		return found, true
	}
	rname := string(symtab.TypedefReduce(swigtype.T(tname), scope))
	if rname == tname {
		return nil, false
	}
	return symtab.ClookupLocal(rname, scope)
}

func partialParmTypes(partial *ast.Node) []swigtype.T {
	parms := ast.ToSlice(partial.PartialParms)
	out := make([]swigtype.T, len(parms))
	for i, p := range parms {
		out[i] = swigtype.T(p.Attr(ast.AttrType))
	}
	return out
}

// validateArity implements §4.E step 6 for class templates: non-variadic
// primaries require len(args) in [numRequired, total]; variadic primaries
// lower the required bound by one (the pack itself may be empty).
func validateArity(loc diag.Location, name string, primary *ast.Node, got int) error {
	parms := ast.ToSlice(primary.TemplateParms)
	total := len(parms)

	variadic := total > 0 && swigtype.T(parms[total-1].Attr(ast.AttrType)).IsVariadic()

	required := 0
	for _, p := range parms {
		if p.Attr(ast.AttrDefault) == "1" {
			continue // has a default
		}
		required++
	}

	lower := required
	upper := total
	if variadic {
		lower = required - 1
		if lower < 0 {
			lower = 0
		}
		upper = 1 << 30 // unbounded
	}

	if got < lower || got > upper {
		return diag.ArityMismatch(loc, name, got, lower, total)
	}
	return nil
}

// locateFunctionTemplate implements §4.E step 7: function templates never
// run partial-spec matching. Every sibling (including primary) whose
// non-variadic parameter count matches exactly is flagged for
// instantiation; failing that, variadic siblings whose arity allows the
// given argument count are accepted as a fallback.
func (l *Locator) locateFunctionTemplate(req Request, primary *ast.Node, args []swigtype.T) (*ast.Node, error) {
	all := append([]*ast.Node{primary}, req.Siblings...)

	var nonVariadicMatch *ast.Node
	for _, sib := range all {
		parms := ast.ToSlice(sib.TemplateParms)
		if len(parms) == 0 {
			continue
		}
		variadic := swigtype.T(parms[len(parms)-1].Attr(ast.AttrType)).IsVariadic()
		if !variadic && len(parms) == len(args) {
			sib.Instantiate = true
			if nonVariadicMatch == nil {
				nonVariadicMatch = sib
			}
		}
	}
	if nonVariadicMatch != nil {
		return nonVariadicMatch, nil
	}

	for _, sib := range all {
		parms := ast.ToSlice(sib.TemplateParms)
		if len(parms) == 0 {
			continue
		}
		variadic := swigtype.T(parms[len(parms)-1].Attr(ast.AttrType)).IsVariadic()
		if variadic && len(args) >= len(parms)-1 {
			sib.Instantiate = true
			return sib, nil
		}
	}

	return nil, diag.NotATemplate(req.Location, req.Name+" (no matching overload, "+strconv.Itoa(len(args))+" args given)")
}
