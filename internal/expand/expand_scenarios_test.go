package expand_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MyroslavaStopets/swig/internal/ast"
	"github.com/MyroslavaStopets/swig/internal/expand"
	"github.com/MyroslavaStopets/swig/internal/swigtype"
	"github.com/MyroslavaStopets/swig/internal/symtab"
	"github.com/MyroslavaStopets/swig/internal/template"
)

func namedParm(name, typ string) *ast.Node {
	n := ast.New(ast.Parm)
	if name != "" {
		n.SetAttr(ast.AttrName, name)
	}
	if typ != "" {
		n.SetAttr(ast.AttrType, typ)
	}
	return n
}

// TestExpandScenarioS1SimpleClassTemplate mirrors the S1 scenario: a plain
// class template instantiated with a single concrete type.
func TestExpandScenarioS1SimpleClassTemplate(t *testing.T) {
	primary := ast.New(ast.Template)
	primary.SetAttr(ast.AttrName, "Box")
	primary.SetAttr(ast.AttrSymName, "Box")
	primary.TemplateType = ast.Class
	primary.TemplateParms = ast.FromSlice([]*ast.Node{namedParm("T", "")})

	root := ast.New(ast.Template)
	root.SetAttr(ast.AttrName, "Box")
	root.TemplateType = ast.Class

	xField := ast.New(ast.Cdecl)
	xField.SetAttr(ast.AttrType, "T")
	xField.SetAttr(ast.AttrName, "x")
	root.Children = append(root.Children, xField)
	xField.Parent = root

	ctor := ast.New(ast.Constructor)
	ctor.SetAttr(ast.AttrName, "Box")
	ctor.SetAttr(ast.AttrSymName, "Box")
	ctor.NodeAttrs["parms"] = ast.FromSlice([]*ast.Node{namedParm("v", "r.q(const).T")})
	root.Children = append(root.Children, ctor)
	ctor.Parent = root

	given := ast.FromSlice([]*ast.Node{namedParm("", "int")})
	tparms := template.PrepareArgs(given, primary)

	scope := symtab.NewScope("", nil)
	err := expand.Expand(root, primary, "Box", "IntBox", tparms, scope, scope)
	require.NoError(t, err)

	assert.Equal(t, "Box<(int)>", root.Attr(ast.AttrName))
	assert.Equal(t, "int", xField.Attr(ast.AttrType))
	assert.Equal(t, "Box<(int)>", ctor.Attr(ast.AttrName))
	assert.Equal(t, "IntBox", ctor.Attr(ast.AttrSymName))

	parms := ast.ToSlice(ctor.NodeAttrs["parms"])
	require.Len(t, parms, 1)
	assert.Equal(t, "r.q(const).int", parms[0].Attr(ast.AttrType))
}

// TestExpandScenarioS2VariadicPack mirrors S2: a variadic pack template
// instantiated with two concrete types, leaving no variadic marker behind.
func TestExpandScenarioS2VariadicPack(t *testing.T) {
	primary := ast.New(ast.Template)
	primary.SetAttr(ast.AttrName, "Tup")
	primary.SetAttr(ast.AttrSymName, "Tup")
	primary.TemplateType = ast.Class
	primary.TemplateParms = ast.FromSlice([]*ast.Node{namedParm("T", "v.")})

	root := ast.New(ast.Template)
	root.SetAttr(ast.AttrName, "Tup")
	root.TemplateType = ast.Class

	ctor := ast.New(ast.Constructor)
	ctor.SetAttr(ast.AttrName, "Tup")
	ctor.SetAttr(ast.AttrSymName, "Tup")
	ctor.NodeAttrs["parms"] = ast.FromSlice([]*ast.Node{namedParm("t", "v.r.T")})
	root.Children = append(root.Children, ctor)
	ctor.Parent = root

	given := ast.FromSlice([]*ast.Node{namedParm("", "A"), namedParm("", "B")})
	tparms := template.PrepareArgs(given, primary)

	scope := symtab.NewScope("", nil)
	err := expand.Expand(root, primary, "Tup", "TupAB", tparms, scope, scope)
	require.NoError(t, err)

	parms := ast.ToSlice(ctor.NodeAttrs["parms"])
	require.Len(t, parms, 2)
	assert.Equal(t, "r.A", parms[0].Attr(ast.AttrType))
	assert.Equal(t, "r.B", parms[1].Attr(ast.AttrType))

	for _, p := range parms {
		assert.False(t, swigtype.T(p.Attr(ast.AttrType)).IsVariadic())
	}
}

// TestExpandScenarioS5DefaultArgumentBackReference mirrors S5 end to end
// through PrepareArgs (Expand itself does not re-derive defaults).
func TestExpandScenarioS5DefaultArgumentBackReference(t *testing.T) {
	primary := ast.New(ast.Template)
	primary.SetAttr(ast.AttrName, "Map")
	primary.TemplateParms = ast.FromSlice([]*ast.Node{namedParm("K", ""), namedParm("C", "Less<(K)>")})

	given := ast.FromSlice([]*ast.Node{namedParm("", "int")})
	tparms := template.PrepareArgs(given, primary)

	parms := ast.ToSlice(tparms)
	require.Len(t, parms, 2)
	assert.Equal(t, "int", parms[0].Attr(ast.AttrType))
	assert.Equal(t, "Less<(int)>", parms[1].Attr(ast.AttrType))
	assert.Equal(t, "1", parms[1].Attr(ast.AttrDefault))
}
