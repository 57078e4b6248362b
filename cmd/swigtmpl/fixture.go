package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/MyroslavaStopets/swig/internal/ast"
)

// nodeJSON is the on-disk shape of one ast.Node, used to build a small fixture
// tree without a real C++ parser (§1 places the parser out of scope; the CLI
// driver needs *some* way to hand the core an already-parsed tree).
type nodeJSON struct {
	Type          string                `json:"type"`
	Attrs         map[string]string     `json:"attrs,omitempty"`
	TemplateType  string                `json:"templateType,omitempty"`
	Children      []nodeJSON            `json:"children,omitempty"`
	NodeAttrs     map[string][]nodeJSON `json:"nodeAttrs,omitempty"`
	TemplateParms []nodeJSON            `json:"templateParms,omitempty"`
	PartialParms  []nodeJSON            `json:"partialParms,omitempty"`
	Partials      []nodeJSON            `json:"partials,omitempty"`
}

// argJSON is one concrete instantiation argument: `%template(Name) T<Args>`'s
// Args, each either a type or a literal non-type value.
type argJSON struct {
	Type  string `json:"type,omitempty"`
	Value string `json:"value,omitempty"`
}

// requestJSON describes one `%template(symname) name<args>;` request.
type requestJSON struct {
	Name    string    `json:"name"`
	Args    []argJSON `json:"args"`
	Symname string    `json:"symname,omitempty"`
}

// fixtureJSON is the top-level document loaded by `swigtmpl expand`. Primary
// is the outer `template<...> ... { ... }` declaration: its own Children are
// the class/function body cloned and substituted when no partial
// specialization wins; each entry in Primary.Partials carries its own
// PartialParms pattern plus its own Children body, cloned instead when it
// is the chosen match.
type fixtureJSON struct {
	Primary nodeJSON    `json:"primary"`
	Request requestJSON `json:"request"`
}

func loadFixture(path string) (*fixtureJSON, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	var f fixtureJSON
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	return &f, nil
}

var nodeTypeByName = map[string]ast.NodeType{
	"template":    ast.Template,
	"cdecl":       ast.Cdecl,
	"class":       ast.Class,
	"constructor": ast.Constructor,
	"destructor":  ast.Destructor,
	"using":       ast.Using,
	"extend":      ast.Extend,
	"parm":        ast.Parm,
	"other":       ast.Other,
	"":            ast.Other,
}

// buildNode recursively turns one nodeJSON into a live *ast.Node, wiring
// Parent links, parameter chains, and the template-only fields.
func buildNode(nj nodeJSON) *ast.Node {
	t, ok := nodeTypeByName[nj.Type]
	if !ok {
		t = ast.Other
	}
	n := ast.New(t)
	for k, v := range nj.Attrs {
		n.SetAttr(k, v)
	}
	if nj.TemplateType != "" {
		n.TemplateType = nodeTypeByName[nj.TemplateType]
	}
	for _, cj := range nj.Children {
		c := buildNode(cj)
		c.Parent = n
		n.Children = append(n.Children, c)
	}
	for key, chain := range nj.NodeAttrs {
		n.NodeAttrs[key] = buildChain(chain)
	}
	if len(nj.TemplateParms) > 0 {
		n.TemplateParms = buildChain(nj.TemplateParms)
	}
	if len(nj.PartialParms) > 0 {
		n.PartialParms = buildChain(nj.PartialParms)
	}
	for _, pj := range nj.Partials {
		n.Partials = append(n.Partials, buildNode(pj))
	}
	return n
}

func buildChain(items []nodeJSON) *ast.Node {
	parms := make([]*ast.Node, len(items))
	for i, item := range items {
		parms[i] = buildNode(item)
	}
	return ast.FromSlice(parms)
}

// buildPreparedArgs turns the request's raw args into the parameter chain
// PrepareArgs expects as its instantiatedParms input: one Parm node per
// argument, carrying Type (or Value, for a non-type argument) only — names
// and defaults are filled in later by PrepareArgs itself.
func buildPreparedArgs(args []argJSON) *ast.Node {
	parms := make([]*ast.Node, len(args))
	for i, a := range args {
		n := ast.New(ast.Parm)
		if a.Type != "" {
			n.SetAttr(ast.AttrType, a.Type)
		}
		if a.Value != "" {
			n.SetAttr(ast.AttrValue, a.Value)
		}
		parms[i] = n
	}
	return ast.FromSlice(parms)
}
