package expand

import (
	"github.com/MyroslavaStopets/swig/internal/ast"
	"github.com/MyroslavaStopets/swig/internal/symtab"
	"github.com/MyroslavaStopets/swig/internal/swigtype"
)

// Substitute implements §4.H: for each (name, arg) pair in tparms, computes
// the resolved display string d, propagates it into later sibling default
// values, and applies it to the three patch lists, gated on the typelist by
// the typename-collision guard.
//
// Grounded on internal/core/manipulator.go's Apply: a deferred edit list
// built during a walk, then applied against live node references in one
// pass, plus a guard check before each mutating replace.
func Substitute(lists *PatchLists, tparms *ast.Node, scope, tscope *symtab.Scope, pack *Pack, tname, rname, primarySymName string) {
	parms := ast.ToSlice(tparms)

	for i, p := range parms {
		name := p.Attr(ast.AttrName)
		if name == "" {
			continue
		}

		raw := valueOrType(p)
		q := symtab.TypedefReduceFull(raw, scope)
		d := symtab.TypeQualify(q, scope)
		if d.IsTemplate() {
			d = symtab.TemplateDeftype(d, tscope)
		}
		valuestr := d.Str()

		for _, later := range parms[i+1:] {
			if later.HasAttr(ast.AttrValue) {
				later.SetAttr(ast.AttrValue, swigtype.IdentifierReplace(later.Attr(ast.AttrValue), name, string(d)))
			} else if later.HasAttr(ast.AttrType) {
				later.SetAttr(ast.AttrType, swigtype.IdentifierReplace(later.Attr(ast.AttrType), name, string(d)))
			}
		}

		for _, ref := range lists.Patch {
			ref.Set(swigtype.IdentifierReplace(ref.Get(), name, string(d)))
		}

		for _, ref := range lists.CPatch {
			v := swigtype.StringizeReplace(ref.Get(), name, valuestr)
			v = swigtype.IdentifierReplace(v, name, valuestr)
			ref.Set(v)
		}

		for _, ref := range lists.Type {
			cur := swigtype.T(ref.Get())
			if pack != nil {
				swigtype.VariadicReplace(&cur, pack.FormalName, pack.Actuals)
			}
			if typenameReplaceAllowed(cur, scope, primarySymName) {
				swigtype.TypenameReplace(&cur, name, d)
				if tname != "" {
					swigtype.TypenameReplace(&cur, tname, swigtype.T(rname))
				}
			}
			ref.Set(string(cur))
		}
	}
}

func valueOrType(n *ast.Node) swigtype.T {
	if n.HasAttr(ast.AttrValue) {
		return swigtype.T(n.Attr(ast.AttrValue))
	}
	return swigtype.T(n.Attr(ast.AttrType))
}

// typenameReplaceAllowed implements the collision guard (§4.H, §8 property
// 6): look up s in scope; skip the replace iff the found node's sym:name
// equals tsname (the primary's own sym:name) and the found node carries no
// templatetype (i.e. it is not itself a template).
func typenameReplaceAllowed(s swigtype.T, scope *symtab.Scope, tsname string) bool {
	found, ok := symtab.Clookup(string(s), scope)
	if !ok {
		return true
	}
	tyname := found.Attr(ast.AttrSymName)
	if tyname != "" && tsname != "" && tyname == tsname && found.TemplateType == "" {
		return false
	}
	return true
}
