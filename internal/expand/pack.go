// Package expand implements the Pack Expander, Tree Walker, Substitution
// Engine, and Post-Processor (§4.F/G/H/I): the half of the core that takes a
// node chosen by internal/template.Locate and mutates it in place into a
// concrete, fully substituted declaration.
package expand

import (
	"github.com/MyroslavaStopets/swig/internal/ast"
	"github.com/MyroslavaStopets/swig/internal/swigtype"
)

// Pack describes the trailing variadic formal parameter of a primary
// template and the concrete argument types bound to it for one
// instantiation.
type Pack struct {
	FormalName string
	Actuals    []swigtype.T
}

// ExpandVariadicParms implements §4.F: if the last node in the chain headed
// by head carries a variadic type, it is replaced by one fresh parameter
// node per pack.Actuals entry, each holding the formal's type with the
// variadic marker stripped and the pack placeholder name replaced by the
// actual's type. Everything before the variadic parameter is preserved.
// Returns head unchanged if there is no trailing variadic parameter, or if
// pack is nil.
func ExpandVariadicParms(head *ast.Node, pack *Pack) *ast.Node {
	slice := ast.ToSlice(head)
	if len(slice) == 0 {
		return head
	}
	last := slice[len(slice)-1]
	if !swigtype.T(last.Attr(ast.AttrType)).IsVariadic() {
		return head
	}
	if pack == nil {
		return head
	}

	before := slice[:len(slice)-1]
	expanded := make([]*ast.Node, len(pack.Actuals))
	for i, actual := range pack.Actuals {
		newtype := swigtype.T(last.Attr(ast.AttrType)).DelVariadic()
		newtype = swigtype.T(swigtype.IdentifierReplace(string(newtype), pack.FormalName, string(actual)))
		n := ast.New(ast.Parm)
		n.SetAttr(ast.AttrType, string(newtype))
		expanded[i] = n
	}

	out := make([]*ast.Node, 0, len(before)+len(expanded))
	out = append(out, before...)
	out = append(out, expanded...)
	return ast.FromSlice(out)
}

// computePack derives the Pack for one instantiation from the primary's own
// declared parameter list and the already-prepared, aligned actual argument
// chain: if the primary's last formal is variadic, every actual argument
// from that position onward belongs to the pack.
func computePack(tparms *ast.Node, primary *ast.Node) *Pack {
	formals := ast.ToSlice(primary.TemplateParms)
	if len(formals) == 0 {
		return nil
	}
	lastFormal := formals[len(formals)-1]
	if !swigtype.T(lastFormal.Attr(ast.AttrType)).IsVariadic() {
		return nil
	}

	actuals := ast.ToSlice(tparms)
	start := len(formals) - 1
	if start > len(actuals) {
		start = len(actuals)
	}

	pack := &Pack{FormalName: lastFormal.Attr(ast.AttrName)}
	for _, a := range actuals[start:] {
		pack.Actuals = append(pack.Actuals, swigtype.T(a.Attr(ast.AttrType)))
	}
	return pack
}
