package repository

import (
	"context"

	"github.com/alexanderramin/pmo/internal/domain"
)

type BusinessUnitRepo interface {
	Create(ctx context.Context, b *domain.BusinessUnit) error
	GetByID(ctx context.Context, id int64) (*domain.BusinessUnit, error)
	List(ctx context.Context) ([]*domain.BusinessUnit, error)
	ListChildren(ctx context.Context, parentID int64) ([]*domain.BusinessUnit, error)
	Update(ctx context.Context, b *domain.BusinessUnit) error
	Delete(ctx context.Context, id int64) error
}

type PositionRepo interface {
	Create(ctx context.Context, p *domain.Position) error
	GetByID(ctx context.Context, id int64) (*domain.Position, error)
	List(ctx context.Context) ([]*domain.Position, error)
	ListByBusinessUnit(ctx context.Context, businessUnitID int64) ([]*domain.Position, error)
	ListChildren(ctx context.Context, parentID int64) ([]*domain.Position, error)
	Update(ctx context.Context, p *domain.Position) error
	Delete(ctx context.Context, id int64) error
}

// PlanRepo stores the business plan chain: plan, objective, key result,
// initiative.
type PlanRepo interface {
	CreatePlan(ctx context.Context, p *domain.BusinessPlan) error
	GetPlan(ctx context.Context, id int64) (*domain.BusinessPlan, error)
	ListPlans(ctx context.Context, businessUnitID *int64) ([]*domain.BusinessPlan, error)
	DeletePlan(ctx context.Context, id int64) error
	CreateObjective(ctx context.Context, o *domain.Objective) error
	GetObjective(ctx context.Context, id int64) (*domain.Objective, error)
	ListObjectives(ctx context.Context, planID int64) ([]*domain.Objective, error)
	CreateKeyResult(ctx context.Context, k *domain.KeyResult) error
	GetKeyResult(ctx context.Context, id int64) (*domain.KeyResult, error)
	ListKeyResults(ctx context.Context, objectiveID int64) ([]*domain.KeyResult, error)
	CreateInitiative(ctx context.Context, i *domain.Initiative) error
	ListInitiatives(ctx context.Context, keyResultID int64) ([]*domain.Initiative, error)
}

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id int64) (*domain.Project, error)
	List(ctx context.Context, businessUnitID *int64) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id int64) error
}

// WorkBreakdownRepo stores control accounts, work packages, tasks and the
// dependencies between tasks.
type WorkBreakdownRepo interface {
	CreateControlAccount(ctx context.Context, c *domain.ControlAccount) error
	GetControlAccount(ctx context.Context, id int64) (*domain.ControlAccount, error)
	ListControlAccounts(ctx context.Context, projectID int64) ([]*domain.ControlAccount, error)
	DeleteControlAccount(ctx context.Context, id int64) error
	CreateWorkPackage(ctx context.Context, w *domain.WorkPackage) error
	GetWorkPackage(ctx context.Context, id int64) (*domain.WorkPackage, error)
	ListWorkPackages(ctx context.Context, controlAccountID int64) ([]*domain.WorkPackage, error)
	DeleteWorkPackage(ctx context.Context, id int64) error
	CreateTask(ctx context.Context, t *domain.Task) error
	GetTask(ctx context.Context, id int64) (*domain.Task, error)
	ListTasks(ctx context.Context, workPackageID int64) ([]*domain.Task, error)
	DeleteTask(ctx context.Context, id int64) error
	CreateDependency(ctx context.Context, d *domain.Dependency) error
	ListDependencies(ctx context.Context, taskID int64) ([]*domain.Dependency, error)
}

// RegisterRepo stores the project-level registers: risks, contracts,
// milestones, budgets, expenses and the status history log.
type RegisterRepo interface {
	CreateRisk(ctx context.Context, r *domain.Risk) error
	ListRisks(ctx context.Context, projectID int64) ([]*domain.Risk, error)
	CreateContract(ctx context.Context, c *domain.Contract) error
	ListContracts(ctx context.Context, projectID int64) ([]*domain.Contract, error)
	CreateMilestone(ctx context.Context, m *domain.Milestone) error
	ListMilestones(ctx context.Context, projectID int64) ([]*domain.Milestone, error)
	CreateBudget(ctx context.Context, b *domain.Budget) error
	ListBudgets(ctx context.Context, projectID int64) ([]*domain.Budget, error)
	CreateExpense(ctx context.Context, e *domain.Expense) error
	ListExpenses(ctx context.Context, projectID int64) ([]*domain.Expense, error)
	AppendStatus(ctx context.Context, h *domain.ProjectStatusHistory) error
	ListStatusHistory(ctx context.Context, projectID int64) ([]*domain.ProjectStatusHistory, error)
}

type ResourceAssignmentRepo interface {
	Create(ctx context.Context, a *domain.ResourceAssignment) error
	GetByID(ctx context.Context, id int64) (*domain.ResourceAssignment, error)
	ListByProject(ctx context.Context, projectID int64) ([]*domain.ResourceAssignment, error)
	Update(ctx context.Context, a *domain.ResourceAssignment) error
	Delete(ctx context.Context, id int64) error
}

type IssueRepo interface {
	Create(ctx context.Context, i *domain.Issue) error
	GetByID(ctx context.Context, id int64) (*domain.Issue, error)
	ListByProject(ctx context.Context, projectID int64) ([]*domain.Issue, error)
	Update(ctx context.Context, i *domain.Issue) error
	Delete(ctx context.Context, id int64) error
}

type ChangeRequestRepo interface {
	Create(ctx context.Context, c *domain.ChangeRequest) error
	GetByID(ctx context.Context, id int64) (*domain.ChangeRequest, error)
	ListByProject(ctx context.Context, projectID int64) ([]*domain.ChangeRequest, error)
	Update(ctx context.Context, c *domain.ChangeRequest) error
	Delete(ctx context.Context, id int64) error
}
