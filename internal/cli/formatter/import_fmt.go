package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/pmo/internal/importer"
	"github.com/alexanderramin/pmo/internal/service"
)

// FormatImportPlan previews a converted file as a tree of units in the
// order they would be written.
func FormatImportPlan(file string, plan *importer.Plan) string {
	var b strings.Builder
	b.WriteString(Header("Import Preview") + "\n")
	b.WriteString(Dim(file) + "\n\n")

	children := make(map[string][]*importer.UnitPlan)
	var roots []*importer.UnitPlan
	for _, u := range plan.Units {
		if u.ParentRef == "" {
			roots = append(roots, u)
			continue
		}
		children[u.ParentRef] = append(children[u.ParentRef], u)
	}

	var build func(u *importer.UnitPlan) *TreeNode
	build = func(u *importer.UnitPlan) *TreeNode {
		n := &TreeNode{Label: u.Unit.Name, Badge: importCounts(u)}
		for _, c := range children[u.Ref] {
			n.Children = append(n.Children, build(c))
		}
		return n
	}
	for _, r := range roots {
		node := build(r)
		if r.Unit.ParentID != nil {
			node.Label += " " + Dim("(under "+ID(*r.Unit.ParentID)+")")
		}
		b.WriteString(RenderTree(node))
		b.WriteString("\n")
	}
	return b.String()
}

func importCounts(u *importer.UnitPlan) string {
	objectives := 0
	for _, p := range u.Plans {
		objectives += len(p.Objectives)
	}
	return fmt.Sprintf("%d positions, %d projects, %d plans, %d objectives",
		len(u.Positions), len(u.Projects), len(u.Plans), objectives)
}

// FormatImportResult reports what an import wrote.
func FormatImportResult(file string, res *service.ImportResult) string {
	ids := make([]string, len(res.BusinessUnitIDs))
	for i, id := range res.BusinessUnitIDs {
		ids[i] = ID(id)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s Imported %s\n", StyleGreen.Render("✔"), file)
	b.WriteString(Fields(
		[2]string{"Business units", fmt.Sprintf("%d (%s)", len(res.BusinessUnitIDs), strings.Join(ids, ", "))},
		[2]string{"Positions", fmt.Sprint(res.Positions)},
		[2]string{"Projects", fmt.Sprint(res.Projects)},
		[2]string{"Business plans", fmt.Sprint(res.Plans)},
		[2]string{"Objectives", fmt.Sprint(res.Objectives)},
	))
	b.WriteString("\n")
	return b.String()
}

// FormatImportProblems lists validation failures, one per line.
func FormatImportProblems(file string, errs []error) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s has %d problem(s):\n", StyleRed.Render("✖"), file, len(errs))
	for _, err := range errs {
		fmt.Fprintf(&b, "  %s %s\n", StyleRed.Render("•"), err)
	}
	return b.String()
}
