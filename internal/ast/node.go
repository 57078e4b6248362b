// Package ast defines the heterogeneous attribute-bag AST node used by the
// template instantiation core. A Node stands for any declaration, parameter,
// or sub-expression in a parsed C++ translation unit; the concrete shape of
// that tree (what the parser emits) is out of scope here — this package only
// defines what the core reads and mutates.
package ast

// NodeType tags the kind of declaration a Node represents.
type NodeType string

const (
	Template    NodeType = "template"
	Cdecl       NodeType = "cdecl"
	Class       NodeType = "class"
	Constructor NodeType = "constructor"
	Destructor  NodeType = "destructor"
	Using       NodeType = "using"
	Extend      NodeType = "extend"
	Parm        NodeType = "parm"
	Other       NodeType = "other"
)

// Well-known attribute keys. Not exhaustive — any string key may be stored in
// Attrs — but naming the ones the core itself reads avoids typos scattered
// across packages.
const (
	AttrType                = "type"
	AttrDecl                = "decl"
	AttrValue               = "value"
	AttrName                = "name"
	AttrSymName             = "sym:name"
	AttrCode                = "code"
	AttrStorage             = "storage"
	AttrConversionOperator  = "conversion_operator"
	AttrUname               = "uname"
	AttrDefault             = "default"
	AttrTemplateArgs        = "templateargs"
)

// Node is a tagged attribute map with an ordered child list, a parent link,
// and a parameter-chain link. The same struct represents both tree nodes and
// parameter-list entries (a ParmList is just a chain of Parm-typed nodes).
type Node struct {
	Type NodeType

	// Attrs holds string-valued attributes (type/decl/value/name/code/...).
	Attrs map[string]string

	// NodeAttrs holds node-valued attributes (e.g. a sub-tree hanging off a
	// key like "parms" or "throws" when that attribute is itself a node).
	NodeAttrs map[string]*Node

	Children []*Node
	Parent   *Node

	// Next chains parameter nodes into a ParmList. Nil for non-parameter
	// nodes or the last parameter in a list.
	Next *Node

	// TemplateType records the tag a `template` node should become once
	// instantiated (e.g. Class or Cdecl), per §4.G.
	TemplateType NodeType

	// Instantiate flags a node chosen by the Locator for instantiation.
	Instantiate bool

	// Error marks a node that already carries a diagnostic; traversal must
	// skip such nodes silently (§7 NodeInError).
	Error bool

	// Partials lists candidate partial specializations attached to a
	// primary template node.
	Partials []*Node

	// TemplateParms is the head of the primary template's own parameter
	// chain (the template<...> parameter list, not the instantiation args).
	TemplateParms *Node

	// PartialParms is the head of a partial specialization's parameter
	// chain — the `T*`, `const T*`-shaped patterns matched against concrete
	// arguments.
	PartialParms *Node
}

// New creates an empty Node of the given type with initialized maps.
func New(t NodeType) *Node {
	return &Node{
		Type:      t,
		Attrs:     make(map[string]string),
		NodeAttrs: make(map[string]*Node),
	}
}

// Attr returns a string attribute, or "" if absent.
func (n *Node) Attr(key string) string {
	if n == nil || n.Attrs == nil {
		return ""
	}
	return n.Attrs[key]
}

// SetAttr sets a string attribute.
func (n *Node) SetAttr(key, value string) {
	if n.Attrs == nil {
		n.Attrs = make(map[string]string)
	}
	n.Attrs[key] = value
}

// HasAttr reports whether a string attribute key is present at all
// (distinguishing "absent" from "present but empty").
func (n *Node) HasAttr(key string) bool {
	if n == nil || n.Attrs == nil {
		return false
	}
	_, ok := n.Attrs[key]
	return ok
}

// Len returns the number of nodes in the parameter chain starting at n
// (nil receiver has length 0).
func (n *Node) Len() int {
	count := 0
	for p := n; p != nil; p = p.Next {
		count++
	}
	return count
}

// At returns the i-th node (0-based) in the chain starting at n, or nil if
// the chain is shorter.
func (n *Node) At(i int) *Node {
	p := n
	for ; p != nil && i > 0; i-- {
		p = p.Next
	}
	return p
}

// Append adds node to the tail of the chain starting at head and returns the
// (possibly new) head.
func Append(head, node *Node) *Node {
	if head == nil {
		return node
	}
	tail := head
	for tail.Next != nil {
		tail = tail.Next
	}
	tail.Next = node
	return head
}

// ToSlice materializes the parameter chain as a slice, leaving the chain
// itself untouched.
func ToSlice(head *Node) []*Node {
	var out []*Node
	for p := head; p != nil; p = p.Next {
		out = append(out, p)
	}
	return out
}

// FromSlice builds a parameter chain from a slice, linking Next pointers in
// order. Mutates the Next field of each element.
func FromSlice(parms []*Node) *Node {
	for i := 0; i+1 < len(parms); i++ {
		parms[i].Next = parms[i+1]
	}
	if len(parms) > 0 {
		parms[len(parms)-1].Next = nil
		return parms[0]
	}
	return nil
}

// Clone deep-copies a single node (not its parameter chain or children's
// Next links across chains — use CloneTree for a full subtree, or
// CloneChain for a parameter list).
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	c := &Node{
		Type:          n.Type,
		TemplateType:  n.TemplateType,
		Instantiate:   n.Instantiate,
		Error:         n.Error,
		TemplateParms: n.TemplateParms,
		PartialParms:  n.PartialParms,
	}
	c.Attrs = make(map[string]string, len(n.Attrs))
	for k, v := range n.Attrs {
		c.Attrs[k] = v
	}
	c.NodeAttrs = make(map[string]*Node, len(n.NodeAttrs))
	for k, v := range n.NodeAttrs {
		c.NodeAttrs[k] = v
	}
	c.Partials = append([]*Node(nil), n.Partials...)
	return c
}

// CloneChain deep-copies an entire parameter chain, preserving order and
// relinking Next pointers in the copy.
func CloneChain(head *Node) *Node {
	var out []*Node
	for p := head; p != nil; p = p.Next {
		out = append(out, p.Clone())
	}
	return FromSlice(out)
}

// CloneTree deep-copies a node and its full Children/NodeAttrs subtree,
// fixing up Parent links in the copy. This is what the external caller
// described in §3's Lifecycle invariant runs before handing a template node
// to the Expander.
func CloneTree(n *Node) *Node {
	if n == nil {
		return nil
	}
	c := n.Clone()
	c.Children = make([]*Node, len(n.Children))
	for i, child := range n.Children {
		cc := CloneTree(child)
		cc.Parent = c
		c.Children[i] = cc
	}
	for k, v := range n.NodeAttrs {
		var chain []*Node
		for p := v; p != nil; p = p.Next {
			chain = append(chain, CloneTree(p))
		}
		c.NodeAttrs[k] = FromSlice(chain)
	}
	c.Partials = make([]*Node, len(n.Partials))
	for i, p := range n.Partials {
		c.Partials[i] = CloneTree(p)
	}
	return c
}

// Ref is a deferred reference to a mutable string attribute of a still-live
// node — the unit patch lists are built from (§3 Patch lists, §9 "store
// (node_id, attribute_tag) pairs and resolve to the current string at apply
// time"). A Ref never owns the node it points at.
type Ref struct {
	Node *Node
	Attr string
}

// Get reads the current value of the referenced attribute.
func (r Ref) Get() string {
	return r.Node.Attr(r.Attr)
}

// Set writes a new value to the referenced attribute.
func (r Ref) Set(v string) {
	r.Node.SetAttr(r.Attr, v)
}
