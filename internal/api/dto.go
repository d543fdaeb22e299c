package api

import (
	"github.com/alexanderramin/pmo/internal/domain"
	"github.com/alexanderramin/pmo/internal/service"
)

type positionResponse struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	Type           string `json:"type"`
	ParentID       *int64 `json:"parent_id"`
	BusinessUnitID int64  `json:"businessunit_id"`
}

type businessPlanResponse struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	BusinessUnitID int64  `json:"businessunit_id"`
}

type businessUnitResponse struct {
	ID            int64                  `json:"id"`
	Name          string                 `json:"name"`
	Type          string                 `json:"type"`
	ParentID      *int64                 `json:"parent_id"`
	ManagerID     *int64                 `json:"manager_id"`
	Projects      []projectResponse      `json:"projects"`
	BusinessPlans []businessPlanResponse `json:"businessplans"`
	Positions     []positionResponse     `json:"positions"`
}

type statusResponse struct {
	ID            int64                 `json:"id"`
	Name          string                `json:"name"`
	Stage         domain.LifecycleStage `json:"stage"`
	EffectiveDate Date                  `json:"effective_date"`
	Notes         *string               `json:"notes"`
}

type resourceAssignmentResponse struct {
	ID                int64   `json:"id"`
	Name              string  `json:"name"`
	PositionID        int64   `json:"position_id"`
	ProjectID         int64   `json:"project_id"`
	WorkPackageID     *int64  `json:"workpackage_id"`
	TaskID            *int64  `json:"task_id"`
	Role              string  `json:"role"`
	AllocationPercent float64 `json:"allocation_percent"`
	StartDate         Date    `json:"start_date"`
	EndDate           *Date   `json:"end_date"`
}

type issueResponse struct {
	ID            int64              `json:"id"`
	Name          string             `json:"name"`
	ProjectID     int64              `json:"project_id"`
	WorkPackageID *int64             `json:"workpackage_id"`
	TaskID        *int64             `json:"task_id"`
	OwnerID       *int64             `json:"owner_id"`
	Status        domain.IssueStatus `json:"status"`
	Severity      string             `json:"severity"`
	OpenedOn      Date               `json:"opened_on"`
	ClosedOn      *Date              `json:"closed_on"`
	Description   *string            `json:"description"`
}

type changeRequestResponse struct {
	ID            int64                      `json:"id"`
	Name          string                     `json:"name"`
	ProjectID     int64                      `json:"project_id"`
	WorkPackageID *int64                     `json:"workpackage_id"`
	RequestedByID *int64                     `json:"requested_by_id"`
	Status        domain.ChangeRequestStatus `json:"status"`
	SubmittedOn   *Date                      `json:"submitted_on"`
	ApprovedOn    *Date                      `json:"approved_on"`
	Description   *string                    `json:"description"`
	ImpactSummary *string                    `json:"impact_summary"`
}

type projectResponse struct {
	ID                  int64                        `json:"id"`
	Name                string                       `json:"name"`
	BusinessUnitID      int64                        `json:"businessunit_id"`
	Description         string                       `json:"description"`
	TenderNo            string                       `json:"tender_no"`
	ScopeOfWork         string                       `json:"scope_of_work"`
	Category            domain.ProjectCategory       `json:"category"`
	FundingCurrency     string                       `json:"funding_currency"`
	BidIssueDate        Date                         `json:"bid_issue_date"`
	TenderPurchaseDate  Date                         `json:"tender_purchase_date"`
	TenderPurchaseFee   float64                      `json:"tender_purchase_fee"`
	BidDueDate          Date                         `json:"bid_due_date"`
	CompletionPeriodM   int                          `json:"completion_period_m"`
	BidValidityD        int                          `json:"bid_validity_d"`
	IncludeVAT          bool                         `json:"include_vat"`
	Budget              float64                      `json:"budget"`
	BidValue            float64                      `json:"bid_value"`
	PerfBondP           float64                      `json:"perf_bond_p"`
	AdvancePmtP         float64                      `json:"advance_pmt_p"`
	StatusHistory       []statusResponse             `json:"status_history"`
	ResourceAssignments []resourceAssignmentResponse `json:"resource_assignments"`
	Issues              []issueResponse              `json:"issues"`
	ChangeRequests      []changeRequestResponse      `json:"change_requests"`
}

type sampleDataResponse struct {
	BusinessUnitID int64 `json:"business_unit_id"`
	ProjectID      int64 `json:"project_id"`
}

func toPosition(p *domain.Position) positionResponse {
	return positionResponse{ID: p.ID, Name: p.Name, Type: p.Type, ParentID: p.ParentID, BusinessUnitID: p.BusinessUnitID}
}

func toBusinessPlan(p *domain.BusinessPlan) businessPlanResponse {
	return businessPlanResponse{ID: p.ID, Name: p.Name, BusinessUnitID: p.BusinessUnitID}
}

func toStatus(h *domain.ProjectStatusHistory) statusResponse {
	return statusResponse{ID: h.ID, Name: h.Name, Stage: h.Stage, EffectiveDate: dateOf(h.EffectiveDate), Notes: h.Notes}
}

func toResourceAssignment(a *domain.ResourceAssignment) resourceAssignmentResponse {
	return resourceAssignmentResponse{
		ID: a.ID, Name: a.Name, PositionID: a.PositionID, ProjectID: a.ProjectID,
		WorkPackageID: a.WorkPackageID, TaskID: a.TaskID, Role: a.Role,
		AllocationPercent: a.AllocationPercent, StartDate: dateOf(a.StartDate), EndDate: datePtr(a.EndDate),
	}
}

func toIssue(i *domain.Issue) issueResponse {
	return issueResponse{
		ID: i.ID, Name: i.Name, ProjectID: i.ProjectID, WorkPackageID: i.WorkPackageID, TaskID: i.TaskID,
		OwnerID: i.OwnerID, Status: i.Status, Severity: i.Severity, OpenedOn: dateOf(i.OpenedOn),
		ClosedOn: datePtr(i.ClosedOn), Description: i.Description,
	}
}

func toChangeRequest(c *domain.ChangeRequest) changeRequestResponse {
	return changeRequestResponse{
		ID: c.ID, Name: c.Name, ProjectID: c.ProjectID, WorkPackageID: c.WorkPackageID,
		RequestedByID: c.RequestedByID, Status: c.Status, SubmittedOn: datePtr(c.SubmittedOn),
		ApprovedOn: datePtr(c.ApprovedOn), Description: c.Description, ImpactSummary: c.ImpactSummary,
	}
}

func toProject(d *service.ProjectDetail) projectResponse {
	p := d.Project
	out := projectResponse{
		ID: p.ID, Name: p.Name, BusinessUnitID: p.BusinessUnitID, Description: p.Description,
		TenderNo: p.TenderNo, ScopeOfWork: p.ScopeOfWork, Category: p.Category, FundingCurrency: p.FundingCurrency,
		BidIssueDate: dateOf(p.BidIssueDate), TenderPurchaseDate: dateOf(p.TenderPurchaseDate),
		TenderPurchaseFee: p.TenderPurchaseFee, BidDueDate: dateOf(p.BidDueDate),
		CompletionPeriodM: p.CompletionPeriodM, BidValidityD: p.BidValidityD, IncludeVAT: p.IncludeVAT,
		Budget: p.Budget, BidValue: p.BidValue, PerfBondP: p.PerfBondP, AdvancePmtP: p.AdvancePmtP,
		StatusHistory:       make([]statusResponse, 0, len(d.StatusHistory)),
		ResourceAssignments: make([]resourceAssignmentResponse, 0, len(d.ResourceAssignments)),
		Issues:              make([]issueResponse, 0, len(d.Issues)),
		ChangeRequests:      make([]changeRequestResponse, 0, len(d.ChangeRequests)),
	}
	for _, h := range d.StatusHistory {
		out.StatusHistory = append(out.StatusHistory, toStatus(h))
	}
	for _, a := range d.ResourceAssignments {
		out.ResourceAssignments = append(out.ResourceAssignments, toResourceAssignment(a))
	}
	for _, i := range d.Issues {
		out.Issues = append(out.Issues, toIssue(i))
	}
	for _, c := range d.ChangeRequests {
		out.ChangeRequests = append(out.ChangeRequests, toChangeRequest(c))
	}
	return out
}
