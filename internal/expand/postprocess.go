package expand

import (
	"strings"

	"github.com/MyroslavaStopets/swig/internal/ast"
	"github.com/MyroslavaStopets/swig/internal/swigtype"
)

// FixFunctionDecl implements §4.I for a single cdecl node: when decl is a
// function type, the non-qualifier/non-array prefix fragments of type (the
// pointer/reference/function layers substitution may have injected) move
// onto the tail of decl, leaving only the qualifier/array fragments plus
// the base name as the new type.
func FixFunctionDecl(n *ast.Node) {
	if n.Type != ast.Cdecl {
		return
	}
	decl := swigtype.T(n.Attr(ast.AttrDecl))
	if !decl.IsFunction() {
		return
	}
	typ := swigtype.T(n.Attr(ast.AttrType))

	var keep, move []string
	for _, frag := range typ.Fragments() {
		if strings.HasPrefix(frag, "q(") || strings.HasPrefix(frag, "a(") {
			keep = append(keep, frag)
		} else {
			move = append(move, frag)
		}
	}
	if len(move) == 0 {
		return
	}

	n.SetAttr(ast.AttrDecl, string(decl)+strings.Join(move, ""))
	n.SetAttr(ast.AttrType, strings.Join(keep, "")+string(typ.Base()))
}

// postProcess walks the whole instantiated tree applying FixFunctionDecl,
// the last step of §4.G+H+I's pipeline.
func postProcess(n *ast.Node) {
	if n == nil {
		return
	}
	FixFunctionDecl(n)
	for _, c := range n.Children {
		postProcess(c)
	}
}
