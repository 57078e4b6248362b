package template_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MyroslavaStopets/swig/internal/ast"
	"github.com/MyroslavaStopets/swig/internal/template"
)

func parm(name, typ, value string) *ast.Node {
	n := ast.New(ast.Parm)
	if name != "" {
		n.SetAttr(ast.AttrName, name)
	}
	if typ != "" {
		n.SetAttr(ast.AttrType, typ)
	}
	if value != "" {
		n.SetAttr(ast.AttrValue, value)
	}
	return n
}

func primaryWithParms(parms ...*ast.Node) *ast.Node {
	p := ast.New(ast.Template)
	p.TemplateParms = ast.FromSlice(parms)
	return p
}

func TestPrepareArgsCopiesNameAndType(t *testing.T) {
	primary := primaryWithParms(parm("T", "", ""), parm("N", "int", "10"))
	given := ast.FromSlice([]*ast.Node{parm("", "double", "")})

	out := template.PrepareArgs(given, primary)
	slice := ast.ToSlice(out)
	require.Len(t, slice, 2)

	assert.Equal(t, "T", slice[0].Attr(ast.AttrName))
	assert.Equal(t, "double", slice[0].Attr(ast.AttrType))

	assert.Equal(t, "N", slice[1].Attr(ast.AttrName))
	assert.Equal(t, "int", slice[1].Attr(ast.AttrType))
	assert.Equal(t, "10", slice[1].Attr(ast.AttrValue))
	assert.Equal(t, "1", slice[1].Attr(ast.AttrDefault))
}

func TestPrepareArgsDefaultBackReferencesEarlierParm(t *testing.T) {
	// template<class T, class Alloc = std::allocator<T>> — the default for
	// Alloc references the earlier parameter T by name.
	primary := primaryWithParms(
		parm("T", "", ""),
		parm("Alloc", "std::allocator<T>", ""),
	)
	given := ast.FromSlice([]*ast.Node{parm("", "MyClass", "")})

	out := template.PrepareArgs(given, primary)
	slice := ast.ToSlice(out)
	require.Len(t, slice, 2)

	assert.Equal(t, "MyClass", slice[0].Attr(ast.AttrType))
	assert.Equal(t, "std::allocator<MyClass>", slice[1].Attr(ast.AttrType))
}

func TestPrepareArgsVariadicPrimarySkipsDefaultSuffix(t *testing.T) {
	primary := primaryWithParms(
		parm("Head", "", ""),
		parm("Tail", "v.", ""),
	)
	given := ast.FromSlice([]*ast.Node{parm("", "int", ""), parm("", "double", ""), parm("", "float", "")})

	out := template.PrepareArgs(given, primary)
	slice := ast.ToSlice(out)
	require.Len(t, slice, 3)
	assert.Equal(t, "int", slice[0].Attr(ast.AttrType))
	assert.Equal(t, "double", slice[1].Attr(ast.AttrType))
	assert.Equal(t, "float", slice[2].Attr(ast.AttrType))
}

func TestPrepareArgsChainOfDefaultBackReferences(t *testing.T) {
	primary := primaryWithParms(
		parm("T", "", ""),
		parm("A", "", "T"),
		parm("B", "", "A"),
	)
	given := ast.FromSlice([]*ast.Node{parm("", "int", "")})

	out := template.PrepareArgs(given, primary)
	slice := ast.ToSlice(out)
	require.Len(t, slice, 3)
	assert.Equal(t, "int", slice[1].Attr(ast.AttrValue))
	assert.Equal(t, "int", slice[2].Attr(ast.AttrValue))
}
