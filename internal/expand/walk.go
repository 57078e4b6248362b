package expand

import (
	"strings"

	"github.com/MyroslavaStopets/swig/internal/ast"
	"github.com/MyroslavaStopets/swig/internal/diag"
	"github.com/MyroslavaStopets/swig/internal/swigtype"
)

// PatchLists accumulates the three deferred-rewrite queues built during one
// tree walk (§3 Patch lists). Each entry is an ast.Ref so the substitution
// engine resolves the current live string at apply time, not a snapshot
// taken during the walk.
type PatchLists struct {
	Patch  []ast.Ref // name/value strings, identifier-replaced
	CPatch []ast.Ref // code strings, stringize + identifier-replaced
	Type   []ast.Ref // type strings, variadic + typename-replaced
}

func (p *PatchLists) AddPatch(n *ast.Node, attr string) {
	if n.HasAttr(attr) {
		p.Patch = append(p.Patch, ast.Ref{Node: n, Attr: attr})
	}
}

func (p *PatchLists) AddCPatch(n *ast.Node, attr string) {
	if n.HasAttr(attr) {
		p.CPatch = append(p.CPatch, ast.Ref{Node: n, Attr: attr})
	}
}

func (p *PatchLists) AddType(n *ast.Node, attr string) {
	if n.HasAttr(attr) {
		p.Type = append(p.Type, ast.Ref{Node: n, Attr: attr})
	}
}

// Walker implements §4.G's single recursive descent, dispatching per
// node-kind and building the three patch lists along the way. Grounded on
// internal/evaluator.UniversalEvaluator.Evaluate's shape: one generic walk
// that delegates to per-kind handlers instead of one switch per call site.
type Walker struct {
	Lists PatchLists

	// TName is the primary template's bare declared name (e.g. "Box").
	TName string
	// RName is the instantiation's exposed name (the %template symname, or
	// the mangled tname+templateargs form if anonymous).
	RName string
	// TemplateArgs is the encoded "<(...)>" tail for this instantiation.
	TemplateArgs string

	// Pack is non-nil when the primary is variadic.
	Pack *Pack

	// Root is the node passed to Expand, used by the destructor
	// name-rewrite predicate to detect one-level extend nesting.
	Root *ast.Node
}

// Walk descends from n, treating n as the outermost template node (per
// §9's explicit outer_template_seen argument, threaded here as the isRoot
// parameter rather than process-wide state).
func (w *Walker) Walk(n *ast.Node) {
	w.walk(n, true)
}

func (w *Walker) walk(n *ast.Node, isRoot bool) {
	if n == nil || diag.Skip(n) {
		return
	}

	if n.Type == ast.Template {
		orig := n.Type
		n.Type = n.TemplateType
		w.dispatch(n)
		for _, c := range n.Children {
			w.walk(c, false)
		}
		if !isRoot {
			n.Type = orig
		}
		return
	}

	w.dispatch(n)
	for _, c := range n.Children {
		w.walk(c, false)
	}
}

func (w *Walker) dispatch(n *ast.Node) {
	switch n.Type {
	case ast.Cdecl:
		w.cdecl(n)
	case ast.Class:
		w.class(n)
	case ast.Constructor:
		w.constructor(n)
	case ast.Destructor:
		w.destructor(n)
	case ast.Using:
		w.using(n)
	default:
		w.other(n)
	}
}

func (w *Walker) cdecl(n *ast.Node) {
	w.Lists.AddType(n, ast.AttrType)
	w.Lists.AddType(n, ast.AttrDecl)
	if n.Attr(ast.AttrStorage) == "friend" {
		w.Lists.AddType(n, ast.AttrName)
	}
	w.Lists.AddPatch(n, ast.AttrValue)
	w.Lists.AddCPatch(n, ast.AttrCode)
	if n.Attr(ast.AttrConversionOperator) != "" {
		w.Lists.AddCPatch(n, ast.AttrName)
		w.Lists.AddCPatch(n, ast.AttrSymName)
	}
	w.patchParmList(n, "parms")
	w.patchParmList(n, "throws")
}

func (w *Walker) class(n *ast.Node) {
	for _, key := range []string{"baselist", "protectedbaselist", "privatebaselist"} {
		head := n.NodeAttrs[key]
		var kept []*ast.Node
		for item := head; item != nil; {
			next := item.Next
			item.Next = nil
			if swigtype.T(item.Attr(ast.AttrType)).IsVariadic() {
				expanded := ExpandVariadicParms(item, w.Pack)
				for e := expanded; e != nil; e = e.Next {
					kept = append(kept, e)
					w.Lists.AddType(e, ast.AttrType)
				}
			} else {
				kept = append(kept, item)
				w.Lists.AddType(item, ast.AttrType)
			}
			item = next
		}
		n.NodeAttrs[key] = ast.FromSlice(kept)
	}
}

func (w *Walker) constructor(n *ast.Node) {
	w.rewriteCtorDtorName(n)
	w.Lists.AddCPatch(n, ast.AttrCode)
	w.Lists.AddType(n, ast.AttrDecl)
	w.patchParmList(n, "parms")
	w.patchParmList(n, "throws")
}

func (w *Walker) destructor(n *ast.Node) {
	if w.destructorRewritable(n) {
		w.rewriteCtorDtorName(n)
	}
	w.Lists.AddCPatch(n, ast.AttrCode)
}

func (w *Walker) using(n *ast.Node) {
	if strings.Contains(n.Attr(ast.AttrUname), "<") {
		w.Lists.AddPatch(n, ast.AttrUname)
	}
}

func (w *Walker) other(n *ast.Node) {
	w.Lists.AddCPatch(n, ast.AttrCode)
	w.Lists.AddType(n, ast.AttrType)
	w.Lists.AddType(n, ast.AttrDecl)
	w.Lists.AddPatch(n, "parms")
	w.Lists.AddPatch(n, "kwargs")
	w.Lists.AddPatch(n, "pattern")
	w.Lists.AddPatch(n, "throws")
}

// patchParmList runs pack expansion on the parameter chain held in node
// attribute key, then adds each resulting parameter's type to the type
// list and, if present, its default value to the patch list.
func (w *Walker) patchParmList(n *ast.Node, key string) {
	head := n.NodeAttrs[key]
	if head == nil {
		return
	}
	head = ExpandVariadicParms(head, w.Pack)
	n.NodeAttrs[key] = head
	for p := head; p != nil; p = p.Next {
		w.Lists.AddType(p, ast.AttrType)
		w.Lists.AddPatch(p, ast.AttrValue)
	}
}

// destructorRewritable implements the decided one-level `extend` exception
// (§9 Open Question): a destructor is rewritten if its parent is the root,
// or its parent is an extend node that is itself a direct child of root.
func (w *Walker) destructorRewritable(n *ast.Node) bool {
	p := n.Parent
	if p == w.Root {
		return true
	}
	if p != nil && p.Type == ast.Extend && p.Parent == w.Root {
		return true
	}
	return false
}

// rewriteCtorDtorName implements §4.G's name-rewriting rule shared by
// constructors and destructors.
func (w *Walker) rewriteCtorDtorName(n *ast.Node) {
	name := n.Attr(ast.AttrName)
	stripped := string(swigtype.T(name).TemplatePrefix())
	if stripped != "" && strings.Contains(w.TName, stripped) {
		name = swigtype.IdentifierReplace(name, stripped, w.TName)
	}
	if strings.Contains(name, "<") {
		n.SetAttr(ast.AttrName, name)
		w.Lists.AddPatch(n, ast.AttrName)
	} else {
		n.SetAttr(ast.AttrName, name+w.TemplateArgs)
	}

	symname := n.Attr(ast.AttrSymName)
	if strings.Contains(symname, "<") {
		symname = w.RName
	} else if w.TName != "" {
		symname = strings.ReplaceAll(symname, w.TName, w.RName)
	}
	n.SetAttr(ast.AttrSymName, symname)
}
