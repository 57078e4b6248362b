// Package template implements the Argument Preparer, Partial-Spec Matcher,
// and Template Locator (§4.C/D/E) — the half of the core that decides
// *which* template node to instantiate and with what fully-resolved
// argument list. internal/expand takes over once that decision is made.
package template

import (
	"github.com/MyroslavaStopets/swig/internal/ast"
	"github.com/MyroslavaStopets/swig/internal/swigtype"
)

// PrepareArgs expands a list of concrete template arguments against a
// primary template's parameter list (§4.C): it fills in names/types from
// the primary, appends default parameters (substituted per §4.C step 4),
// and returns a fresh parameter chain of length >= len(instantiatedParms).
func PrepareArgs(instantiatedParms, primary *ast.Node) *ast.Node {
	instantiated := ast.ToSlice(instantiatedParms)
	primaryParms := ast.ToSlice(primary.TemplateParms)

	out := make([]*ast.Node, 0, len(primaryParms))

	// Step 1+2: copy instantiated args, merging in the primary's name and
	// (for non-type parameters with no explicit type) its type.
	for i, arg := range instantiated {
		copy := arg.Clone()
		if i < len(primaryParms) {
			copy.SetAttr(ast.AttrName, primaryParms[i].Attr(ast.AttrName))
			if !copy.HasAttr(ast.AttrType) || copy.Attr(ast.AttrType) == "" {
				copy.SetAttr(ast.AttrType, primaryParms[i].Attr(ast.AttrType))
			}
		}
		out = append(out, copy)
	}

	// Step 3: append the primary's default-parameter suffix, unless the
	// primary is variadic (a pack absorbs everything past the given args).
	primaryVariadic := len(primaryParms) > 0 &&
		swigtype.T(primaryParms[len(primaryParms)-1].Attr(ast.AttrType)).IsVariadic()

	if !primaryVariadic {
		for i := len(instantiated); i < len(primaryParms); i++ {
			copy := primaryParms[i].Clone()
			copy.SetAttr(ast.AttrDefault, "1")
			out = append(out, copy)
		}
	}

	// Step 4: realize "a default argument may reference an earlier
	// parameter" by substituting each parameter's name into every later
	// default value.
	expandDefaults(out)

	return ast.FromSlice(out)
}

// TemplateDefargs implements the Symbols.template_defargs contract (§6): a
// thin wrapper exposing PrepareArgs under the spec's own operation name, so
// a caller reasoning in terms of the Symbols contract has one entry point
// to reach for. It lives here rather than in internal/symtab because it
// must call PrepareArgs directly, and internal/template already depends on
// internal/symtab for lookup — the reverse import would cycle.
func TemplateDefargs(instantiatedParms, primary *ast.Node) *ast.Node {
	return PrepareArgs(instantiatedParms, primary)
}

// expandDefaults implements §4.C step 4: for each parameter P with a
// default value V, for every parameter Q in the list, replace identifier
// Q.name inside V with Q's value (or type, if Q has no value).
func expandDefaults(parms []*ast.Node) {
	for _, p := range parms {
		if p.Attr(ast.AttrDefault) != "1" {
			continue
		}
		v := p.Attr(ast.AttrValue)
		if v == "" {
			v = p.Attr(ast.AttrType)
		}
		if v == "" {
			continue
		}
		for _, q := range parms {
			if q == p {
				continue
			}
			qname := q.Attr(ast.AttrName)
			if qname == "" {
				continue
			}
			qval := q.Attr(ast.AttrValue)
			if qval == "" {
				qval = q.Attr(ast.AttrType)
			}
			v = swigtype.IdentifierReplace(v, qname, qval)
		}
		if p.HasAttr(ast.AttrValue) {
			p.SetAttr(ast.AttrValue, v)
		} else {
			p.SetAttr(ast.AttrType, v)
		}
	}
}
