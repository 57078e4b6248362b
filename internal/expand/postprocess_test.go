package expand_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MyroslavaStopets/swig/internal/ast"
	"github.com/MyroslavaStopets/swig/internal/expand"
)

func TestFixFunctionDeclMovesPointerPrefixToDeclTail(t *testing.T) {
	n := ast.New(ast.Cdecl)
	n.SetAttr(ast.AttrDecl, "f(int).")
	n.SetAttr(ast.AttrType, "p.int")

	expand.FixFunctionDecl(n)

	assert.Equal(t, "f(int).p.", n.Attr(ast.AttrDecl))
	assert.Equal(t, "int", n.Attr(ast.AttrType))
}

func TestFixFunctionDeclKeepsQualifierAndArrayInType(t *testing.T) {
	n := ast.New(ast.Cdecl)
	n.SetAttr(ast.AttrDecl, "f(int).")
	n.SetAttr(ast.AttrType, "q(const).p.int")

	expand.FixFunctionDecl(n)

	assert.Equal(t, "f(int).p.", n.Attr(ast.AttrDecl))
	assert.Equal(t, "q(const).int", n.Attr(ast.AttrType))
}

func TestFixFunctionDeclNoOpWhenDeclNotFunction(t *testing.T) {
	n := ast.New(ast.Cdecl)
	n.SetAttr(ast.AttrDecl, "p.")
	n.SetAttr(ast.AttrType, "p.int")

	expand.FixFunctionDecl(n)

	assert.Equal(t, "p.", n.Attr(ast.AttrDecl))
	assert.Equal(t, "p.int", n.Attr(ast.AttrType))
}

func TestFixFunctionDeclSkipsNonCdeclNodes(t *testing.T) {
	n := ast.New(ast.Class)
	n.SetAttr(ast.AttrDecl, "f(int).")
	n.SetAttr(ast.AttrType, "p.int")

	expand.FixFunctionDecl(n)

	assert.Equal(t, "f(int).", n.Attr(ast.AttrDecl))
	assert.Equal(t, "p.int", n.Attr(ast.AttrType))
}
