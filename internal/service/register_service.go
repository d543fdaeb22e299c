package service

import (
	"context"

	"github.com/alexanderramin/pmo/internal/db"
	"github.com/alexanderramin/pmo/internal/domain"
	"github.com/alexanderramin/pmo/internal/repository"
)

const defaultContractStatus = "draft"

type registerService struct {
	uow      db.UnitOfWork
	clock    domain.Clock
	observer UseCaseObserver
}

// NewRegisterService writes the project-level registers. Every create runs
// its owner checks and the insert in one transaction.
func NewRegisterService(uow db.UnitOfWork, clock domain.Clock, observers ...UseCaseObserver) RegisterService {
	if clock == nil {
		clock = domain.SystemClock
	}
	return &registerService{uow: uow, clock: clock, observer: useCaseObserverOrNoop(observers)}
}

func (s *registerService) inProject(ctx context.Context, kind domain.Kind, name string, projectID int64, write func(ctx context.Context, st *repository.Store) error) error {
	if err := requireName(kind, name); err != nil {
		return err
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		st := repository.NewStore(tx)
		if err := requireProject(ctx, st, projectID); err != nil {
			return err
		}
		return write(ctx, st)
	})
}

func (s *registerService) CreateRisk(ctx context.Context, r *domain.Risk) (err error) {
	defer track(ctx, s.observer, "risk.create", map[string]any{"project_id": r.ProjectID})(&err)
	return s.inProject(ctx, domain.KindRisk, r.Name, r.ProjectID, func(ctx context.Context, st *repository.Store) error {
		return st.Registers.CreateRisk(ctx, r)
	})
}

func (s *registerService) CreateContract(ctx context.Context, c *domain.Contract) (err error) {
	defer track(ctx, s.observer, "contract.create", map[string]any{"project_id": c.ProjectID})(&err)
	c.Status = domain.CoalesceStr(c.Status, defaultContractStatus)
	if c.Value < 0 {
		return domain.Invalidf("contract value must not be negative")
	}
	return s.inProject(ctx, domain.KindContract, c.Name, c.ProjectID, func(ctx context.Context, st *repository.Store) error {
		return st.Registers.CreateContract(ctx, c)
	})
}

func (s *registerService) CreateMilestone(ctx context.Context, m *domain.Milestone) (err error) {
	defer track(ctx, s.observer, "milestone.create", map[string]any{"project_id": m.ProjectID})(&err)
	return s.inProject(ctx, domain.KindMilestone, m.Name, m.ProjectID, func(ctx context.Context, st *repository.Store) error {
		return st.Registers.CreateMilestone(ctx, m)
	})
}

func (s *registerService) CreateBudget(ctx context.Context, b *domain.Budget) (err error) {
	defer track(ctx, s.observer, "budget.create", map[string]any{"project_id": b.ProjectID})(&err)
	return s.inProject(ctx, domain.KindBudget, b.Name, b.ProjectID, func(ctx context.Context, st *repository.Store) error {
		if err := resolveAttachment(ctx, st, b.ProjectID, &b.WorkPackageID, nil); err != nil {
			return err
		}
		return st.Registers.CreateBudget(ctx, b)
	})
}

func (s *registerService) CreateExpense(ctx context.Context, e *domain.Expense) (err error) {
	defer track(ctx, s.observer, "expense.create", map[string]any{"project_id": e.ProjectID})(&err)
	if e.Date.IsZero() {
		e.Date = domain.DateOf(s.clock())
	}
	return s.inProject(ctx, domain.KindExpense, e.Name, e.ProjectID, func(ctx context.Context, st *repository.Store) error {
		if err := resolveAttachment(ctx, st, e.ProjectID, &e.WorkPackageID, nil); err != nil {
			return err
		}
		return st.Registers.CreateExpense(ctx, e)
	})
}
