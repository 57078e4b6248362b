package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/MyroslavaStopets/swig/internal/ast"
)

// dumpNode renders n and its subtree as a deterministic, indented text form:
// node kind, sorted attributes, then children. Used to produce the
// before/after text that cmd/swigtmpl diffs — a recursive pretty-printer,
// not a serialization format anything else in the module reads back.
func dumpNode(n *ast.Node) string {
	var sb strings.Builder
	dumpInto(&sb, n, 0)
	return sb.String()
}

func dumpInto(sb *strings.Builder, n *ast.Node, depth int) {
	if n == nil {
		return
	}
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(sb, "%s%s", indent, n.Type)

	keys := make([]string, 0, len(n.Attrs))
	for k := range n.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(sb, " %s=%q", k, n.Attrs[k])
	}
	sb.WriteString("\n")

	nodeAttrKeys := make([]string, 0, len(n.NodeAttrs))
	for k := range n.NodeAttrs {
		nodeAttrKeys = append(nodeAttrKeys, k)
	}
	sort.Strings(nodeAttrKeys)
	for _, k := range nodeAttrKeys {
		fmt.Fprintf(sb, "%s  [%s]\n", indent, k)
		for p := n.NodeAttrs[k]; p != nil; p = p.Next {
			dumpInto(sb, p, depth+2)
		}
	}

	for _, c := range n.Children {
		dumpInto(sb, c, depth+1)
	}
}
