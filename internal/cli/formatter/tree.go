package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss/tree"
)

// TreeNode is one labelled node of an org chart. Badge is rendered dimmed
// after the label.
type TreeNode struct {
	Label    string
	Badge    string
	Children []*TreeNode
}

// RenderTree draws the node and its descendants with rounded connectors.
func RenderTree(root *TreeNode) string {
	if root == nil {
		return ""
	}
	return buildTree(root).String() + "\n"
}

func buildTree(n *TreeNode) *tree.Tree {
	t := tree.Root(treeLabel(n)).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(StyleDim).
		RootStyle(StyleBold)
	for _, c := range n.Children {
		if len(c.Children) == 0 {
			t.Child(treeLabel(c))
			continue
		}
		t.Child(buildTree(c))
	}
	return t
}

func treeLabel(n *TreeNode) string {
	if n.Badge == "" {
		return n.Label
	}
	return n.Label + " " + StyleDim.Render("["+n.Badge+"]")
}

// RenderPath joins a root-first chain of names into a breadcrumb.
func RenderPath(names []string) string {
	if len(names) == 0 {
		return ""
	}
	parts := make([]string, len(names))
	for i, n := range names {
		if i == len(names)-1 {
			parts[i] = StyleBold.Render(n)
			continue
		}
		parts[i] = n
	}
	return strings.Join(parts, StyleDim.Render(" › "))
}
