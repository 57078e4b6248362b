package expand

import (
	"github.com/MyroslavaStopets/swig/internal/ast"
	"github.com/MyroslavaStopets/swig/internal/diag"
	"github.com/MyroslavaStopets/swig/internal/symtab"
	"github.com/MyroslavaStopets/swig/internal/swigtype"
	"github.com/MyroslavaStopets/swig/internal/template"
)

// Expand implements §6's exposed `template_expand` operation: mutates node
// (the instantiation target chosen by template.Locate, already cloned by
// the caller per §3's Lifecycle invariant) in place, substituting every
// template parameter in tparms with its resolved concrete argument.
//
// primary is the primary template declaration node (used for its own
// declared parameter list, to detect a trailing variadic formal, and for
// its sym:name in the typename collision guard). tname is the primary's
// bare declared name. rname is the requested %template symname, or "" for
// an anonymous instantiation (in which case the mangled tname+args form is
// used as the exposed name). scope resolves types in the calling context;
// tscope resolves template defaults.
func Expand(node, primary *ast.Node, tname, rname string, tparms *ast.Node, scope, tscope *symtab.Scope) error {
	if diag.Skip(node) {
		return nil
	}

	pack := computePack(tparms, primary)
	templateArgs := template.ArgsTail(tparms)
	if rname == "" {
		rname = tname + templateArgs
	}

	w := &Walker{
		TName:        tname,
		RName:        rname,
		TemplateArgs: templateArgs,
		Pack:         pack,
		Root:         node,
	}

	node.SetAttr(ast.AttrName, tname+templateArgs)
	w.Walk(node)

	Substitute(&w.Lists, tparms, scope, tscope, pack, tname, rname, primary.Attr(ast.AttrSymName))

	postProcess(node)

	for _, key := range []string{"baselist", "protectedbaselist", "privatebaselist"} {
		for item := node.NodeAttrs[key]; item != nil; item = item.Next {
			item.SetAttr(ast.AttrType, string(symtab.TypeQualify(swigtype.T(item.Attr(ast.AttrType)), scope)))
		}
	}

	return nil
}
