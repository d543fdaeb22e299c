package api

import (
	"time"

	"github.com/alexanderramin/pmo/internal/domain"
	"github.com/alexanderramin/pmo/internal/service"
)

type businessUnitCreateRequest struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	ParentID  *int64 `json:"parent_id"`
	ManagerID *int64 `json:"manager_id"`
}

func (r businessUnitCreateRequest) toDomain() *domain.BusinessUnit {
	return &domain.BusinessUnit{Name: r.Name, Type: r.Type, ParentID: r.ParentID, ManagerID: r.ManagerID}
}

type businessUnitUpdateRequest struct {
	Name      Nullable[string] `json:"name"`
	Type      Nullable[string] `json:"type"`
	ParentID  Nullable[int64]  `json:"parent_id"`
	ManagerID Nullable[int64]  `json:"manager_id"`
}

func (r businessUnitUpdateRequest) toPatch() (service.BusinessUnitPatch, error) {
	var (
		p   service.BusinessUnitPatch
		err error
	)
	if p.Name, err = required("name", r.Name); err != nil {
		return p, err
	}
	if p.Type, err = required("type", r.Type); err != nil {
		return p, err
	}
	p.ParentID = optional(r.ParentID)
	p.ManagerID = optional(r.ManagerID)
	return p, nil
}

type projectCreateRequest struct {
	Name               string  `json:"name"`
	BusinessUnitID     int64   `json:"businessunit_id"`
	Description        string  `json:"description"`
	TenderNo           string  `json:"tender_no"`
	ScopeOfWork        string  `json:"scope_of_work"`
	Category           string  `json:"category"`
	FundingCurrency    string  `json:"funding_currency"`
	BidIssueDate       *Date   `json:"bid_issue_date"`
	TenderPurchaseDate *Date   `json:"tender_purchase_date"`
	TenderPurchaseFee  float64 `json:"tender_purchase_fee"`
	BidDueDate         *Date   `json:"bid_due_date"`
	CompletionPeriodM  int     `json:"completion_period_m"`
	BidValidityD       int     `json:"bid_validity_d"`
	IncludeVAT         bool    `json:"include_vat"`
	Budget             float64 `json:"budget"`
	BidValue           float64 `json:"bid_value"`
	PerfBondP          float64 `json:"perf_bond_p"`
	AdvancePmtP        float64 `json:"advance_pmt_p"`
}

func (r projectCreateRequest) toDomain() (*domain.Project, error) {
	p := &domain.Project{
		Name: r.Name, BusinessUnitID: r.BusinessUnitID, Description: r.Description, TenderNo: r.TenderNo,
		ScopeOfWork: r.ScopeOfWork, FundingCurrency: r.FundingCurrency,
		BidIssueDate: timeOf(r.BidIssueDate), TenderPurchaseDate: timeOf(r.TenderPurchaseDate),
		TenderPurchaseFee: r.TenderPurchaseFee, BidDueDate: timeOf(r.BidDueDate),
		CompletionPeriodM: r.CompletionPeriodM, BidValidityD: r.BidValidityD, IncludeVAT: r.IncludeVAT,
		Budget: r.Budget, BidValue: r.BidValue, PerfBondP: r.PerfBondP, AdvancePmtP: r.AdvancePmtP,
	}
	if r.Category != "" {
		c, err := domain.ParseProjectCategory(r.Category)
		if err != nil {
			return nil, err
		}
		p.Category = c
	}
	return p, nil
}

type projectUpdateRequest struct {
	Name               Nullable[string]  `json:"name"`
	BusinessUnitID     Nullable[int64]   `json:"businessunit_id"`
	Description        Nullable[string]  `json:"description"`
	TenderNo           Nullable[string]  `json:"tender_no"`
	ScopeOfWork        Nullable[string]  `json:"scope_of_work"`
	Category           Nullable[string]  `json:"category"`
	FundingCurrency    Nullable[string]  `json:"funding_currency"`
	BidIssueDate       Nullable[Date]    `json:"bid_issue_date"`
	TenderPurchaseDate Nullable[Date]    `json:"tender_purchase_date"`
	TenderPurchaseFee  Nullable[float64] `json:"tender_purchase_fee"`
	BidDueDate         Nullable[Date]    `json:"bid_due_date"`
	CompletionPeriodM  Nullable[int]     `json:"completion_period_m"`
	BidValidityD       Nullable[int]     `json:"bid_validity_d"`
	IncludeVAT         Nullable[bool]    `json:"include_vat"`
	Budget             Nullable[float64] `json:"budget"`
	BidValue           Nullable[float64] `json:"bid_value"`
	PerfBondP          Nullable[float64] `json:"perf_bond_p"`
	AdvancePmtP        Nullable[float64] `json:"advance_pmt_p"`
}

// fieldErrs collects the first conversion failure so toPatch reads as a
// flat list of assignments.
type fieldErrs struct{ err error }

func field[T any](fe *fieldErrs, name string, n Nullable[T]) service.Field[T] {
	f, err := required(name, n)
	if err != nil && fe.err == nil {
		fe.err = err
	}
	return f
}

func dateOn(fe *fieldErrs, name string, n Nullable[Date]) service.Field[time.Time] {
	f, err := dateField(name, n)
	if err != nil && fe.err == nil {
		fe.err = err
	}
	return f
}

func (r projectUpdateRequest) toPatch() (service.ProjectPatch, error) {
	var fe fieldErrs
	p := service.ProjectPatch{
		Name:               field(&fe, "name", r.Name),
		BusinessUnitID:     field(&fe, "businessunit_id", r.BusinessUnitID),
		Description:        field(&fe, "description", r.Description),
		TenderNo:           field(&fe, "tender_no", r.TenderNo),
		ScopeOfWork:        field(&fe, "scope_of_work", r.ScopeOfWork),
		FundingCurrency:    field(&fe, "funding_currency", r.FundingCurrency),
		BidIssueDate:       dateOn(&fe, "bid_issue_date", r.BidIssueDate),
		TenderPurchaseDate: dateOn(&fe, "tender_purchase_date", r.TenderPurchaseDate),
		TenderPurchaseFee:  field(&fe, "tender_purchase_fee", r.TenderPurchaseFee),
		BidDueDate:         dateOn(&fe, "bid_due_date", r.BidDueDate),
		CompletionPeriodM:  field(&fe, "completion_period_m", r.CompletionPeriodM),
		BidValidityD:       field(&fe, "bid_validity_d", r.BidValidityD),
		IncludeVAT:         field(&fe, "include_vat", r.IncludeVAT),
		Budget:             field(&fe, "budget", r.Budget),
		BidValue:           field(&fe, "bid_value", r.BidValue),
		PerfBondP:          field(&fe, "perf_bond_p", r.PerfBondP),
		AdvancePmtP:        field(&fe, "advance_pmt_p", r.AdvancePmtP),
	}
	if fe.err != nil {
		return p, fe.err
	}
	if cat := field(&fe, "category", r.Category); cat.Set {
		c, err := domain.ParseProjectCategory(cat.Value)
		if err != nil {
			return p, err
		}
		p.Category = service.SetTo(c)
	}
	return p, fe.err
}

type issueCreateRequest struct {
	Name          string  `json:"name"`
	WorkPackageID *int64  `json:"workpackage_id"`
	TaskID        *int64  `json:"task_id"`
	OwnerID       *int64  `json:"owner_id"`
	Status        string  `json:"status"`
	Severity      string  `json:"severity"`
	OpenedOn      *Date   `json:"opened_on"`
	ClosedOn      *Date   `json:"closed_on"`
	Description   *string `json:"description"`
}

func (r issueCreateRequest) toDomain(projectID int64) (*domain.Issue, error) {
	i := &domain.Issue{
		Name: r.Name, ProjectID: projectID, WorkPackageID: r.WorkPackageID, TaskID: r.TaskID,
		OwnerID: r.OwnerID, Severity: r.Severity, OpenedOn: timeOf(r.OpenedOn),
		ClosedOn: timePtr(r.ClosedOn), Description: r.Description,
	}
	if r.Status != "" {
		st, err := domain.ParseIssueStatus(r.Status)
		if err != nil {
			return nil, err
		}
		i.Status = st
	}
	return i, nil
}

type issueUpdateRequest struct {
	Name          Nullable[string] `json:"name"`
	WorkPackageID Nullable[int64]  `json:"workpackage_id"`
	TaskID        Nullable[int64]  `json:"task_id"`
	OwnerID       Nullable[int64]  `json:"owner_id"`
	Status        Nullable[string] `json:"status"`
	Severity      Nullable[string] `json:"severity"`
	OpenedOn      Nullable[Date]   `json:"opened_on"`
	ClosedOn      Nullable[Date]   `json:"closed_on"`
	Description   Nullable[string] `json:"description"`
}

func (r issueUpdateRequest) toPatch() (service.IssuePatch, error) {
	var fe fieldErrs
	p := service.IssuePatch{
		Name:          field(&fe, "name", r.Name),
		WorkPackageID: optional(r.WorkPackageID),
		TaskID:        optional(r.TaskID),
		OwnerID:       optional(r.OwnerID),
		Severity:      field(&fe, "severity", r.Severity),
		OpenedOn:      dateOn(&fe, "opened_on", r.OpenedOn),
		ClosedOn:      optionalDate(r.ClosedOn),
		Description:   optional(r.Description),
	}
	if st := field(&fe, "status", r.Status); st.Set {
		s, err := domain.ParseIssueStatus(st.Value)
		if err != nil {
			return p, err
		}
		p.Status = service.SetTo(s)
	}
	return p, fe.err
}

type changeRequestCreateRequest struct {
	Name          string  `json:"name"`
	WorkPackageID *int64  `json:"workpackage_id"`
	RequestedByID *int64  `json:"requested_by_id"`
	Status        string  `json:"status"`
	SubmittedOn   *Date   `json:"submitted_on"`
	ApprovedOn    *Date   `json:"approved_on"`
	Description   *string `json:"description"`
	ImpactSummary *string `json:"impact_summary"`
}

func (r changeRequestCreateRequest) toDomain(projectID int64) (*domain.ChangeRequest, error) {
	c := &domain.ChangeRequest{
		Name: r.Name, ProjectID: projectID, WorkPackageID: r.WorkPackageID, RequestedByID: r.RequestedByID,
		SubmittedOn: timePtr(r.SubmittedOn), ApprovedOn: timePtr(r.ApprovedOn),
		Description: r.Description, ImpactSummary: r.ImpactSummary,
	}
	if r.Status != "" {
		st, err := domain.ParseChangeRequestStatus(r.Status)
		if err != nil {
			return nil, err
		}
		c.Status = st
	}
	return c, nil
}

type changeRequestUpdateRequest struct {
	Name          Nullable[string] `json:"name"`
	WorkPackageID Nullable[int64]  `json:"workpackage_id"`
	RequestedByID Nullable[int64]  `json:"requested_by_id"`
	Status        Nullable[string] `json:"status"`
	SubmittedOn   Nullable[Date]   `json:"submitted_on"`
	ApprovedOn    Nullable[Date]   `json:"approved_on"`
	Description   Nullable[string] `json:"description"`
	ImpactSummary Nullable[string] `json:"impact_summary"`
}

func (r changeRequestUpdateRequest) toPatch() (service.ChangeRequestPatch, error) {
	var fe fieldErrs
	p := service.ChangeRequestPatch{
		Name:          field(&fe, "name", r.Name),
		WorkPackageID: optional(r.WorkPackageID),
		RequestedByID: optional(r.RequestedByID),
		SubmittedOn:   optionalDate(r.SubmittedOn),
		ApprovedOn:    optionalDate(r.ApprovedOn),
		Description:   optional(r.Description),
		ImpactSummary: optional(r.ImpactSummary),
	}
	if st := field(&fe, "status", r.Status); st.Set {
		s, err := domain.ParseChangeRequestStatus(st.Value)
		if err != nil {
			return p, err
		}
		p.Status = service.SetTo(s)
	}
	return p, fe.err
}
