package expand_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MyroslavaStopets/swig/internal/ast"
	"github.com/MyroslavaStopets/swig/internal/expand"
)

func TestWalkerRewritesDestructorOnlyOneExtendLevelDeep(t *testing.T) {
	root := ast.New(ast.Template)
	root.TemplateType = ast.Class

	extend := ast.New(ast.Extend)
	extend.Parent = root
	root.Children = append(root.Children, extend)

	dtor := ast.New(ast.Destructor)
	dtor.SetAttr(ast.AttrName, "Box")
	dtor.SetAttr(ast.AttrSymName, "Box")
	dtor.Parent = extend
	extend.Children = append(extend.Children, dtor)

	nestedExtend := ast.New(ast.Extend)
	nestedExtend.Parent = extend
	extend.Children = append(extend.Children, nestedExtend)

	deepDtor := ast.New(ast.Destructor)
	deepDtor.SetAttr(ast.AttrName, "Box")
	deepDtor.SetAttr(ast.AttrSymName, "Box")
	deepDtor.Parent = nestedExtend
	nestedExtend.Children = append(nestedExtend.Children, deepDtor)

	w := &expand.Walker{TName: "Box", RName: "IntBox", TemplateArgs: "<(int)>", Root: root}
	w.Walk(root)

	assert.Equal(t, "Box<(int)>", dtor.Attr(ast.AttrName))
	assert.Equal(t, "IntBox", dtor.Attr(ast.AttrSymName))

	assert.Equal(t, "Box", deepDtor.Attr(ast.AttrName))
	assert.Equal(t, "Box", deepDtor.Attr(ast.AttrSymName))
}

func TestWalkerUsingSchedulesPatchOnlyWithTemplateBrackets(t *testing.T) {
	root := ast.New(ast.Template)
	root.TemplateType = ast.Class

	plain := ast.New(ast.Using)
	plain.SetAttr(ast.AttrUname, "Alias")
	root.Children = append(root.Children, plain)
	plain.Parent = root

	templated := ast.New(ast.Using)
	templated.SetAttr(ast.AttrUname, "Box<T>::value_type")
	root.Children = append(root.Children, templated)
	templated.Parent = root

	w := &expand.Walker{TName: "Box", RName: "IntBox", TemplateArgs: "<(int)>", Root: root}
	w.Walk(root)

	require.Len(t, w.Lists.Patch, 1)
	assert.Same(t, templated, w.Lists.Patch[0].Node)
	_ = plain
	_ = templated
}
