package parser

import (
	"fmt"
	"strings"

	"github.com/mkorsbak/sattlint/pkg/lang"
)

// Node is one node of the concrete parse tree. The tree is owned by
// the unit it was parsed from and never shared between units.
type Node struct {
	Kind     string
	Text     string
	Loc      lang.Location
	Children []*Node
}

func (n *Node) add(kind, text string, loc lang.Location) *Node {
	child := &Node{Kind: kind, Text: text, Loc: loc}
	n.Children = append(n.Children, child)
	return child
}

// Pretty renders the tree as indented text, one node per line. Used by
// the --dump-parse-tree debug export.
func (n *Node) Pretty() string {
	var b strings.Builder
	n.pretty(&b, 0)
	return b.String()
}

func (n *Node) pretty(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	if n.Text != "" {
		fmt.Fprintf(b, "%s %q\n", n.Kind, n.Text)
	} else {
		fmt.Fprintf(b, "%s\n", n.Kind)
	}
	for _, c := range n.Children {
		c.pretty(b, depth+1)
	}
}

func tokenKind(t lang.Type) string {
	switch t {
	case lang.IDENT:
		return "ident"
	case lang.NUMBER:
		return "number"
	case lang.STRING:
		return "string"
	default:
		return "punct"
	}
}
