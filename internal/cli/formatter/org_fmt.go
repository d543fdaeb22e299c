package formatter

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/alexanderramin/pmo/internal/domain"
)

func FormatBusinessUnitList(units []*domain.BusinessUnit) string {
	if len(units) == 0 {
		return Dim("No business units found.") + "\n"
	}
	rows := make([][]string, 0, len(units))
	for _, u := range units {
		rows = append(rows, []string{
			strconv.FormatInt(u.ID, 10), u.Name, u.Type, OptionalID(u.ParentID), OptionalID(u.ManagerID),
		})
	}
	return Header("Business Units") + "\n" +
		RenderTable([]string{"ID", "NAME", "TYPE", "PARENT", "MANAGER"}, rows)
}

// FormatBusinessUnit shows one unit with its breadcrumb and, when it has
// positions, its org chart.
func FormatBusinessUnit(u *domain.BusinessUnit, path []*domain.BusinessUnit, positions []*domain.Position) string {
	body := Fields(
		[2]string{"ID", strconv.FormatInt(u.ID, 10)},
		[2]string{"Type", u.Type},
		[2]string{"Parent", OptionalID(u.ParentID)},
		[2]string{"Manager", OptionalID(u.ManagerID)},
		[2]string{"Path", RenderPath(unitNames(path))},
	)
	if len(positions) > 0 {
		body += "\n\n" + strings.TrimRight(FormatOrgChart(u, positions), "\n")
	}
	return RenderBox(u.Name, body) + "\n"
}

// FormatBusinessUnitPath takes the unit-first chain the hierarchy service
// returns and prints it root first.
func FormatBusinessUnitPath(path []*domain.BusinessUnit) string {
	return RenderPath(unitNames(path)) + "\n"
}

// FormatOrgChart nests the unit's positions under it by parent link. The
// unit's manager is tagged.
func FormatOrgChart(u *domain.BusinessUnit, positions []*domain.Position) string {
	root := &TreeNode{Label: u.Name, Badge: u.Type}
	nodes := make(map[int64]*TreeNode, len(positions))
	sorted := append([]*domain.Position(nil), positions...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	for _, p := range sorted {
		n := &TreeNode{Label: p.Name}
		if u.ManagerID != nil && *u.ManagerID == p.ID {
			n.Badge = "manager"
		}
		nodes[p.ID] = n
	}
	for _, p := range sorted {
		parent := root
		if p.ParentID != nil {
			if n, ok := nodes[*p.ParentID]; ok {
				parent = n
			}
		}
		parent.Children = append(parent.Children, nodes[p.ID])
	}
	return RenderTree(root)
}

func FormatPositionList(positions []*domain.Position, unitNames map[int64]string) string {
	if len(positions) == 0 {
		return Dim("No positions found.") + "\n"
	}
	rows := make([][]string, 0, len(positions))
	for _, p := range positions {
		rows = append(rows, []string{
			strconv.FormatInt(p.ID, 10), p.Name, p.Type, unitLabel(p.BusinessUnitID, unitNames), OptionalID(p.ParentID),
		})
	}
	return Header("Positions") + "\n" +
		RenderTable([]string{"ID", "NAME", "TYPE", "BUSINESS UNIT", "REPORTS TO"}, rows)
}

func FormatPositionPath(path []*domain.Position) string {
	names := make([]string, len(path))
	for i, p := range path {
		names[len(path)-1-i] = p.Name
	}
	return RenderPath(names) + "\n"
}

func FormatPlanList(plans []*domain.BusinessPlan, objectiveCounts map[int64]int, unitNames map[int64]string) string {
	if len(plans) == 0 {
		return Dim("No business plans found.") + "\n"
	}
	rows := make([][]string, 0, len(plans))
	for _, p := range plans {
		rows = append(rows, []string{
			strconv.FormatInt(p.ID, 10), p.Name, unitLabel(p.BusinessUnitID, unitNames),
			strconv.Itoa(objectiveCounts[p.ID]),
		})
	}
	return Header("Business Plans") + "\n" +
		RenderTable([]string{"ID", "NAME", "BUSINESS UNIT", "OBJECTIVES"}, rows)
}

func FormatObjectiveList(plan *domain.BusinessPlan, objectives []*domain.Objective) string {
	if len(objectives) == 0 {
		return Dim(fmt.Sprintf("No objectives found for %s.", plan.Name)) + "\n"
	}
	rows := make([][]string, 0, len(objectives))
	for _, o := range objectives {
		rows = append(rows, []string{strconv.FormatInt(o.ID, 10), o.Name})
	}
	return Header("Objectives · "+plan.Name) + "\n" +
		RenderTable([]string{"ID", "NAME"}, rows)
}

func unitNames(path []*domain.BusinessUnit) []string {
	names := make([]string, len(path))
	for i, u := range path {
		names[len(path)-1-i] = u.Name
	}
	return names
}

func unitLabel(id int64, names map[int64]string) string {
	if n, ok := names[id]; ok {
		return n
	}
	return strconv.FormatInt(id, 10)
}
