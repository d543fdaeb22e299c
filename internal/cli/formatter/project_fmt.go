package formatter

import (
	"strconv"
	"strings"

	"github.com/alexanderramin/pmo/internal/domain"
	"github.com/alexanderramin/pmo/internal/service"
)

func FormatProjectList(projects []*domain.Project, unitNames map[int64]string) string {
	if len(projects) == 0 {
		return Dim("No projects found.") + "\n"
	}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []string{
			strconv.FormatInt(p.ID, 10), p.Name, unitLabel(p.BusinessUnitID, unitNames),
			p.TenderNo, CategoryBadge(p.Category), FormatAmount(p.Budget),
			domain.FormatDate(p.BidDueDate),
		})
	}
	return Header("Projects") + "\n" +
		RenderTable([]string{"ID", "NAME", "BUSINESS UNIT", "TENDER", "CATEGORY", "BUDGET", "BID DUE"}, rows)
}

// FormatProjectDetail renders the project card followed by its status
// history and the registers attached to it.
func FormatProjectDetail(d *service.ProjectDetail, unitName string) string {
	p := d.Project
	stage := Dim("--")
	if n := len(d.StatusHistory); n > 0 {
		stage = StagePill(d.StatusHistory[n-1].Stage)
	}
	vat := "excluded"
	if p.IncludeVAT {
		vat = "included"
	}
	card := Fields(
		[2]string{"ID", strconv.FormatInt(p.ID, 10)},
		[2]string{"Business unit", unitName},
		[2]string{"Tender", p.TenderNo},
		[2]string{"Category", CategoryBadge(p.Category)},
		[2]string{"Stage", stage},
		[2]string{"Budget", FormatAmount(p.Budget) + " " + p.FundingCurrency},
		[2]string{"Bid value", FormatAmount(p.BidValue) + " " + p.FundingCurrency + Dim(" (VAT "+vat+")")},
		[2]string{"Bid due", domain.FormatDate(p.BidDueDate)},
		[2]string{"Completion", strconv.Itoa(p.CompletionPeriodM) + " months"},
		[2]string{"Bid validity", strconv.Itoa(p.BidValidityD) + " days"},
		[2]string{"Scope", p.ScopeOfWork},
	)
	if p.Description != "" {
		card += "\n\n" + p.Description
	}

	var b strings.Builder
	b.WriteString(RenderBox(p.Name, card))
	b.WriteString("\n")

	if len(d.StatusHistory) > 0 {
		b.WriteString("\n" + Header("Status History") + "\n")
		b.WriteString(statusTable(d.StatusHistory))
	}
	if len(d.ResourceAssignments) > 0 {
		rows := make([][]string, 0, len(d.ResourceAssignments))
		for _, a := range d.ResourceAssignments {
			rows = append(rows, []string{
				strconv.FormatInt(a.ID, 10), a.Name, a.Role, FormatPercent(a.AllocationPercent),
				a.EffectiveParent().String(),
			})
		}
		b.WriteString("\n" + Header("Resource Assignments") + "\n")
		b.WriteString(RenderTable([]string{"ID", "NAME", "ROLE", "ALLOCATION", "ON"}, rows))
	}
	if len(d.Issues) > 0 {
		rows := make([][]string, 0, len(d.Issues))
		for _, i := range d.Issues {
			rows = append(rows, []string{
				strconv.FormatInt(i.ID, 10), i.Name, SeverityBadge(i.Severity), IssueStatusPill(i.Status),
				i.EffectiveParent().String(),
			})
		}
		b.WriteString("\n" + Header("Issues") + "\n")
		b.WriteString(RenderTable([]string{"ID", "NAME", "SEVERITY", "STATUS", "ON"}, rows))
	}
	if len(d.ChangeRequests) > 0 {
		rows := make([][]string, 0, len(d.ChangeRequests))
		for _, c := range d.ChangeRequests {
			rows = append(rows, []string{
				strconv.FormatInt(c.ID, 10), c.Name, ChangeRequestStatusPill(c.Status), OptionalText(c.ImpactSummary),
			})
		}
		b.WriteString("\n" + Header("Change Requests") + "\n")
		b.WriteString(RenderTable([]string{"ID", "NAME", "STATUS", "IMPACT"}, rows))
	}
	return b.String()
}

// FormatSampleData lists the ids a seed run created.
func FormatSampleData(s *service.SampleData) string {
	return RenderBox("Sample data created", Fields(
		[2]string{"Business unit", ID(s.BusinessUnit.ID) + " " + s.BusinessUnit.Name},
		[2]string{"CEO", ID(s.CEO.ID) + " " + s.CEO.Name},
		[2]string{"COO", ID(s.COO.ID) + " " + s.COO.Name},
		[2]string{"Project manager", ID(s.PM.ID) + " " + s.PM.Name},
		[2]string{"Project", ID(s.Project.ID) + " " + s.Project.Name},
		[2]string{"Work package", ID(s.WorkPackage.ID) + " " + s.WorkPackage.Name},
	)) + "\n"
}

// FormatStatusHistory lists a project's stage log, oldest first.
func FormatStatusHistory(project string, history []*domain.ProjectStatusHistory) string {
	if len(history) == 0 {
		return Dim("No status recorded for "+project+".") + "\n"
	}
	return Header(project+" Status") + "\n" + statusTable(history)
}

func statusTable(history []*domain.ProjectStatusHistory) string {
	rows := make([][]string, 0, len(history))
	for _, h := range history {
		rows = append(rows, []string{domain.FormatDate(h.EffectiveDate), StagePill(h.Stage), OptionalText(h.Notes)})
	}
	return RenderTable([]string{"DATE", "STAGE", "NOTES"}, rows)
}
