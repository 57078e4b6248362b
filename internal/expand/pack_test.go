package expand_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MyroslavaStopets/swig/internal/ast"
	"github.com/MyroslavaStopets/swig/internal/expand"
	"github.com/MyroslavaStopets/swig/internal/swigtype"
)

func parmWithType(typ string) *ast.Node {
	n := ast.New(ast.Parm)
	n.SetAttr(ast.AttrType, typ)
	return n
}

func TestExpandVariadicParmsBuildsOneNodePerActual(t *testing.T) {
	head := ast.FromSlice([]*ast.Node{parmWithType("v.r.T")})
	pack := &expand.Pack{FormalName: "T", Actuals: []swigtype.T{"A", "B"}}

	out := expand.ExpandVariadicParms(head, pack)
	slice := ast.ToSlice(out)
	require.Len(t, slice, 2)
	assert.Equal(t, "r.A", slice[0].Attr(ast.AttrType))
	assert.Equal(t, "r.B", slice[1].Attr(ast.AttrType))

	for _, p := range slice {
		assert.False(t, swigtype.T(p.Attr(ast.AttrType)).IsVariadic())
	}
}

func TestExpandVariadicParmsPreservesLeadingFixedParms(t *testing.T) {
	head := ast.FromSlice([]*ast.Node{parmWithType("int"), parmWithType("v.T")})
	pack := &expand.Pack{FormalName: "T", Actuals: []swigtype.T{"double"}}

	out := expand.ExpandVariadicParms(head, pack)
	slice := ast.ToSlice(out)
	require.Len(t, slice, 2)
	assert.Equal(t, "int", slice[0].Attr(ast.AttrType))
	assert.Equal(t, "double", slice[1].Attr(ast.AttrType))
}

func TestExpandVariadicParmsNoOpWithoutTrailingVariadic(t *testing.T) {
	head := ast.FromSlice([]*ast.Node{parmWithType("int"), parmWithType("double")})
	out := expand.ExpandVariadicParms(head, &expand.Pack{FormalName: "T", Actuals: []swigtype.T{"float"}})
	slice := ast.ToSlice(out)
	require.Len(t, slice, 2)
	assert.Equal(t, "int", slice[0].Attr(ast.AttrType))
	assert.Equal(t, "double", slice[1].Attr(ast.AttrType))
}

func TestExpandVariadicParmsNoOpWithoutPack(t *testing.T) {
	head := ast.FromSlice([]*ast.Node{parmWithType("v.T")})
	out := expand.ExpandVariadicParms(head, nil)
	slice := ast.ToSlice(out)
	require.Len(t, slice, 1)
	assert.Equal(t, "v.T", slice[0].Attr(ast.AttrType))
}
