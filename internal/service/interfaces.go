package service

import (
	"context"
	"time"

	"github.com/alexanderramin/pmo/internal/domain"
	"github.com/alexanderramin/pmo/internal/graph"
	"github.com/alexanderramin/pmo/internal/importer"
)

type BusinessUnitService interface {
	Create(ctx context.Context, b *domain.BusinessUnit) error
	GetByID(ctx context.Context, id int64) (*domain.BusinessUnit, error)
	List(ctx context.Context) ([]*domain.BusinessUnit, error)
	Update(ctx context.Context, id int64, patch BusinessUnitPatch) (*domain.BusinessUnit, error)
	Delete(ctx context.Context, id int64) error
}

type BusinessUnitPatch struct {
	Name      Field[string]
	Type      Field[string]
	ParentID  Field[*int64]
	ManagerID Field[*int64]
}

type PositionService interface {
	Create(ctx context.Context, p *domain.Position) error
	GetByID(ctx context.Context, id int64) (*domain.Position, error)
	List(ctx context.Context, businessUnitID *int64) ([]*domain.Position, error)
	Update(ctx context.Context, id int64, patch PositionPatch) (*domain.Position, error)
	Delete(ctx context.Context, id int64) error
}

type PositionPatch struct {
	Name     Field[string]
	Type     Field[string]
	ParentID Field[*int64]
}

type PlanService interface {
	CreatePlan(ctx context.Context, p *domain.BusinessPlan) error
	GetPlan(ctx context.Context, id int64) (*domain.BusinessPlan, error)
	ListPlans(ctx context.Context, businessUnitID *int64) ([]*domain.BusinessPlan, error)
	DeletePlan(ctx context.Context, id int64) error
	CreateObjective(ctx context.Context, o *domain.Objective) error
	ListObjectives(ctx context.Context, planID int64) ([]*domain.Objective, error)
	CreateKeyResult(ctx context.Context, k *domain.KeyResult) error
	ListKeyResults(ctx context.Context, objectiveID int64) ([]*domain.KeyResult, error)
	CreateInitiative(ctx context.Context, i *domain.Initiative) error
	ListInitiatives(ctx context.Context, keyResultID int64) ([]*domain.Initiative, error)
}

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id int64) (*domain.Project, error)
	List(ctx context.Context, businessUnitID *int64) ([]*domain.Project, error)
	Update(ctx context.Context, id int64, patch ProjectPatch) (*domain.Project, error)
	Delete(ctx context.Context, id int64) error
	Detail(ctx context.Context, id int64) (*ProjectDetail, error)
	AppendStatus(ctx context.Context, h *domain.ProjectStatusHistory) error
	StatusHistory(ctx context.Context, projectID int64) ([]*domain.ProjectStatusHistory, error)
}

type ProjectPatch struct {
	Name               Field[string]
	BusinessUnitID     Field[int64]
	Description        Field[string]
	TenderNo           Field[string]
	ScopeOfWork        Field[string]
	Category           Field[domain.ProjectCategory]
	FundingCurrency    Field[string]
	BidIssueDate       Field[time.Time]
	TenderPurchaseDate Field[time.Time]
	TenderPurchaseFee  Field[float64]
	BidDueDate         Field[time.Time]
	CompletionPeriodM  Field[int]
	BidValidityD       Field[int]
	IncludeVAT         Field[bool]
	Budget             Field[float64]
	BidValue           Field[float64]
	PerfBondP          Field[float64]
	AdvancePmtP        Field[float64]
}

// ProjectDetail is a project with the collections the project view embeds.
type ProjectDetail struct {
	Project             *domain.Project
	StatusHistory       []*domain.ProjectStatusHistory
	ResourceAssignments []*domain.ResourceAssignment
	Issues              []*domain.Issue
	ChangeRequests      []*domain.ChangeRequest
}

type WorkBreakdownService interface {
	CreateControlAccount(ctx context.Context, c *domain.ControlAccount) error
	ListControlAccounts(ctx context.Context, projectID int64) ([]*domain.ControlAccount, error)
	DeleteControlAccount(ctx context.Context, id int64) error
	CreateWorkPackage(ctx context.Context, w *domain.WorkPackage) error
	GetWorkPackage(ctx context.Context, id int64) (*domain.WorkPackage, error)
	ListWorkPackages(ctx context.Context, controlAccountID int64) ([]*domain.WorkPackage, error)
	DeleteWorkPackage(ctx context.Context, id int64) error
	CreateTask(ctx context.Context, t *domain.Task) error
	ListTasks(ctx context.Context, workPackageID int64) ([]*domain.Task, error)
	DeleteTask(ctx context.Context, id int64) error
	AddDependency(ctx context.Context, d *domain.Dependency) error
}

type RegisterService interface {
	CreateRisk(ctx context.Context, r *domain.Risk) error
	CreateContract(ctx context.Context, c *domain.Contract) error
	CreateMilestone(ctx context.Context, m *domain.Milestone) error
	CreateBudget(ctx context.Context, b *domain.Budget) error
	CreateExpense(ctx context.Context, e *domain.Expense) error
}

type IssueService interface {
	Create(ctx context.Context, i *domain.Issue) error
	GetByID(ctx context.Context, id int64) (*domain.Issue, error)
	ListByProject(ctx context.Context, projectID int64) ([]*domain.Issue, error)
	Update(ctx context.Context, id int64, patch IssuePatch) (*domain.Issue, error)
	Delete(ctx context.Context, id int64) error
}

type IssuePatch struct {
	Name          Field[string]
	WorkPackageID Field[*int64]
	TaskID        Field[*int64]
	OwnerID       Field[*int64]
	Status        Field[domain.IssueStatus]
	Severity      Field[string]
	OpenedOn      Field[time.Time]
	ClosedOn      Field[*time.Time]
	Description   Field[*string]
}

type ChangeRequestService interface {
	Create(ctx context.Context, c *domain.ChangeRequest) error
	GetByID(ctx context.Context, id int64) (*domain.ChangeRequest, error)
	ListByProject(ctx context.Context, projectID int64) ([]*domain.ChangeRequest, error)
	Update(ctx context.Context, id int64, patch ChangeRequestPatch) (*domain.ChangeRequest, error)
	Delete(ctx context.Context, id int64) error
}

type ChangeRequestPatch struct {
	Name          Field[string]
	WorkPackageID Field[*int64]
	RequestedByID Field[*int64]
	Status        Field[domain.ChangeRequestStatus]
	SubmittedOn   Field[*time.Time]
	ApprovedOn    Field[*time.Time]
	Description   Field[*string]
	ImpactSummary Field[*string]
}

type ResourceAssignmentService interface {
	Create(ctx context.Context, a *domain.ResourceAssignment) error
	GetByID(ctx context.Context, id int64) (*domain.ResourceAssignment, error)
	ListByProject(ctx context.Context, projectID int64) ([]*domain.ResourceAssignment, error)
	Update(ctx context.Context, id int64, patch ResourceAssignmentPatch) (*domain.ResourceAssignment, error)
	Delete(ctx context.Context, id int64) error
}

type ResourceAssignmentPatch struct {
	Name              Field[string]
	PositionID        Field[int64]
	WorkPackageID     Field[*int64]
	TaskID            Field[*int64]
	Role              Field[string]
	AllocationPercent Field[float64]
	StartDate         Field[time.Time]
	EndDate           Field[*time.Time]
}

// HierarchyService answers path and children questions over the
// organisation trees and the project ownership chain.
type HierarchyService interface {
	BusinessUnitPath(ctx context.Context, id int64) ([]*domain.BusinessUnit, error)
	PositionPath(ctx context.Context, id int64) ([]*domain.Position, error)
	BusinessUnitChildren(ctx context.Context, id int64) ([]*domain.BusinessUnit, error)
	PositionChildren(ctx context.Context, id int64) ([]*domain.Position, error)
	OwnershipChain(ctx context.Context, ref domain.Ref) ([]domain.Ref, error)
}

type GraphService interface {
	Build(ctx context.Context, businessUnitID int64) (*graph.Graph, error)
}

// ImportService writes a validated import file.
type ImportService interface {
	Import(ctx context.Context, plan *importer.Plan) (*ImportResult, error)
}

// ImportResult counts what an import created. BusinessUnitIDs follow the
// order the units were written in.
type ImportResult struct {
	BusinessUnitIDs []int64
	Positions       int
	Projects        int
	Plans           int
	Objectives      int
}

type SeedService interface {
	CreateSampleData(ctx context.Context) (*SampleData, error)
}

// SampleData names the rows the seed created that callers usually need.
type SampleData struct {
	BusinessUnit *domain.BusinessUnit
	CEO          *domain.Position
	COO          *domain.Position
	PM           *domain.Position
	Project      *domain.Project
	WorkPackage  *domain.WorkPackage
}
