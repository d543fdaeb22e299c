package service

import (
	"context"

	"github.com/alexanderramin/pmo/internal/db"
	"github.com/alexanderramin/pmo/internal/domain"
	"github.com/alexanderramin/pmo/internal/repository"
)

type workBreakdownService struct {
	store    *repository.Store
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewWorkBreakdownService(conn db.DBTX, uow db.UnitOfWork, observers ...UseCaseObserver) WorkBreakdownService {
	return &workBreakdownService{
		store:    repository.NewStore(conn),
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *workBreakdownService) CreateControlAccount(ctx context.Context, c *domain.ControlAccount) (err error) {
	defer track(ctx, s.observer, "control_account.create", map[string]any{"project_id": c.ProjectID})(&err)
	if err := requireName(domain.KindControlAccount, c.Name); err != nil {
		return err
	}
	if c.Budget < 0 {
		return domain.Invalidf("control account budget must not be negative")
	}
	if err := requireProject(ctx, s.store, c.ProjectID); err != nil {
		return err
	}
	return s.store.WorkBreakdown.CreateControlAccount(ctx, c)
}

func (s *workBreakdownService) ListControlAccounts(ctx context.Context, projectID int64) ([]*domain.ControlAccount, error) {
	return s.store.WorkBreakdown.ListControlAccounts(ctx, projectID)
}

func (s *workBreakdownService) DeleteControlAccount(ctx context.Context, id int64) (err error) {
	defer track(ctx, s.observer, "control_account.delete", map[string]any{"id": id})(&err)
	return s.store.WorkBreakdown.DeleteControlAccount(ctx, id)
}

func (s *workBreakdownService) CreateWorkPackage(ctx context.Context, w *domain.WorkPackage) (err error) {
	defer track(ctx, s.observer, "work_package.create", map[string]any{"control_account_id": w.ControlAccountID})(&err)
	if err := requireName(domain.KindWorkPackage, w.Name); err != nil {
		return err
	}
	if err := checkDateRange(w.StartDate, w.EndDate); err != nil {
		return err
	}
	if _, err := s.store.WorkBreakdown.GetControlAccount(ctx, w.ControlAccountID); err != nil {
		return err
	}
	return s.store.WorkBreakdown.CreateWorkPackage(ctx, w)
}

func (s *workBreakdownService) GetWorkPackage(ctx context.Context, id int64) (*domain.WorkPackage, error) {
	return s.store.WorkBreakdown.GetWorkPackage(ctx, id)
}

func (s *workBreakdownService) ListWorkPackages(ctx context.Context, controlAccountID int64) ([]*domain.WorkPackage, error) {
	return s.store.WorkBreakdown.ListWorkPackages(ctx, controlAccountID)
}

// DeleteWorkPackage removes the package and its tasks. Issues, change
// requests, assignments, budgets and expenses attached to it fall back to
// the project.
func (s *workBreakdownService) DeleteWorkPackage(ctx context.Context, id int64) (err error) {
	defer track(ctx, s.observer, "work_package.delete", map[string]any{"id": id})(&err)
	return s.store.WorkBreakdown.DeleteWorkPackage(ctx, id)
}

func (s *workBreakdownService) CreateTask(ctx context.Context, t *domain.Task) (err error) {
	defer track(ctx, s.observer, "task.create", map[string]any{"work_package_id": t.WorkPackageID})(&err)
	if err := requireName(domain.KindTask, t.Name); err != nil {
		return err
	}
	if err := checkDateRange(t.StartDate, t.EndDate); err != nil {
		return err
	}
	if _, err := s.store.WorkBreakdown.GetWorkPackage(ctx, t.WorkPackageID); err != nil {
		return err
	}
	return s.store.WorkBreakdown.CreateTask(ctx, t)
}

func (s *workBreakdownService) ListTasks(ctx context.Context, workPackageID int64) ([]*domain.Task, error) {
	return s.store.WorkBreakdown.ListTasks(ctx, workPackageID)
}

func (s *workBreakdownService) DeleteTask(ctx context.Context, id int64) (err error) {
	defer track(ctx, s.observer, "task.delete", map[string]any{"id": id})(&err)
	return s.store.WorkBreakdown.DeleteTask(ctx, id)
}

// AddDependency links two existing tasks, predecessor first.
func (s *workBreakdownService) AddDependency(ctx context.Context, d *domain.Dependency) (err error) {
	defer track(ctx, s.observer, "dependency.create", map[string]any{
		"predecessor_id": d.PredecessorID, "successor_id": d.SuccessorID,
	})(&err)
	if d.PredecessorID == d.SuccessorID {
		return domain.Invalidf("task %d cannot depend on itself", d.PredecessorID)
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		st := repository.NewStore(tx)
		for _, id := range []int64{d.PredecessorID, d.SuccessorID} {
			if _, err := st.WorkBreakdown.GetTask(ctx, id); err != nil {
				return err
			}
		}
		return st.WorkBreakdown.CreateDependency(ctx, d)
	})
}
