package formatter

import (
	"sort"
	"strconv"
	"strings"

	"github.com/alexanderramin/pmo/internal/domain"
	"github.com/alexanderramin/pmo/internal/graph"
)

// FormatGraphSummary reports where the graph of unit was written and how
// many nodes of each kind it holds.
func FormatGraphSummary(unit string, g *graph.Graph, path string) string {
	counts := g.CountByKind()
	kinds := make([]domain.Kind, 0, len(counts))
	for k := range counts {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

	rows := make([][]string, 0, len(kinds))
	for _, k := range kinds {
		rows = append(rows, []string{k.Label(), strconv.Itoa(counts[k])})
	}
	return StyleGreen.Render("✔ ") + "Graph generated for " + Bold(unit) + " in to " + path + "\n" +
		Dim(strconv.Itoa(len(g.Nodes))+" nodes, "+strconv.Itoa(len(g.Edges))+" edges") + "\n" +
		RenderTable([]string{"KIND", "NODES"}, rows)
}

// FormatGraphOutline prints the ownership edges as an indented tree,
// rooted at every node that owns something but has no owner itself.
func FormatGraphOutline(g *graph.Graph) string {
	children := make(map[string][]*graph.Node)
	owned := make(map[string]bool)
	for _, e := range g.Edges {
		if e.Kind != graph.EdgeOwner {
			continue
		}
		if n, ok := g.Node(e.From); ok {
			children[e.To] = append(children[e.To], n)
			owned[e.From] = true
		}
	}

	var b strings.Builder
	for _, n := range g.Nodes {
		if owned[n.ID] {
			continue
		}
		b.WriteString(RenderTree(outlineNode(n, children)))
	}
	return b.String()
}

func outlineNode(n *graph.Node, children map[string][]*graph.Node) *TreeNode {
	badge := n.Kind.Label()
	if n.Manager {
		badge += ", manager"
	}
	t := &TreeNode{Label: n.Label, Badge: badge}
	for _, c := range children[n.ID] {
		t.Children = append(t.Children, outlineNode(c, children))
	}
	return t
}
