package service

import (
	"context"

	"github.com/alexanderramin/pmo/internal/db"
	"github.com/alexanderramin/pmo/internal/domain"
	"github.com/alexanderramin/pmo/internal/repository"
)

type planService struct {
	store    *repository.Store
	observer UseCaseObserver
}

// NewPlanService manages the plan, objective, key result and initiative
// chain. Each create checks its owner first; the chain is single-writer so
// no transaction is needed.
func NewPlanService(conn db.DBTX, observers ...UseCaseObserver) PlanService {
	return &planService{store: repository.NewStore(conn), observer: useCaseObserverOrNoop(observers)}
}

func (s *planService) CreatePlan(ctx context.Context, p *domain.BusinessPlan) (err error) {
	defer track(ctx, s.observer, "business_plan.create", map[string]any{"business_unit_id": p.BusinessUnitID})(&err)
	if err := requireName(domain.KindBusinessPlan, p.Name); err != nil {
		return err
	}
	if _, err := s.store.BusinessUnits.GetByID(ctx, p.BusinessUnitID); err != nil {
		return err
	}
	return s.store.Plans.CreatePlan(ctx, p)
}

func (s *planService) GetPlan(ctx context.Context, id int64) (*domain.BusinessPlan, error) {
	return s.store.Plans.GetPlan(ctx, id)
}

func (s *planService) ListPlans(ctx context.Context, businessUnitID *int64) ([]*domain.BusinessPlan, error) {
	return s.store.Plans.ListPlans(ctx, businessUnitID)
}

func (s *planService) DeletePlan(ctx context.Context, id int64) (err error) {
	defer track(ctx, s.observer, "business_plan.delete", map[string]any{"id": id})(&err)
	return s.store.Plans.DeletePlan(ctx, id)
}

func (s *planService) CreateObjective(ctx context.Context, o *domain.Objective) (err error) {
	defer track(ctx, s.observer, "objective.create", map[string]any{"business_plan_id": o.BusinessPlanID})(&err)
	if err := requireName(domain.KindObjective, o.Name); err != nil {
		return err
	}
	if _, err := s.store.Plans.GetPlan(ctx, o.BusinessPlanID); err != nil {
		return err
	}
	return s.store.Plans.CreateObjective(ctx, o)
}

func (s *planService) ListObjectives(ctx context.Context, planID int64) ([]*domain.Objective, error) {
	if _, err := s.store.Plans.GetPlan(ctx, planID); err != nil {
		return nil, err
	}
	return s.store.Plans.ListObjectives(ctx, planID)
}

func (s *planService) CreateKeyResult(ctx context.Context, k *domain.KeyResult) (err error) {
	defer track(ctx, s.observer, "key_result.create", map[string]any{"objective_id": k.ObjectiveID})(&err)
	if err := requireName(domain.KindKeyResult, k.Name); err != nil {
		return err
	}
	if _, err := s.store.Plans.GetObjective(ctx, k.ObjectiveID); err != nil {
		return err
	}
	return s.store.Plans.CreateKeyResult(ctx, k)
}

func (s *planService) ListKeyResults(ctx context.Context, objectiveID int64) ([]*domain.KeyResult, error) {
	return s.store.Plans.ListKeyResults(ctx, objectiveID)
}

func (s *planService) CreateInitiative(ctx context.Context, i *domain.Initiative) (err error) {
	defer track(ctx, s.observer, "initiative.create", map[string]any{"key_result_id": i.KeyResultID})(&err)
	if err := requireName(domain.KindInitiative, i.Name); err != nil {
		return err
	}
	if _, err := s.store.Plans.GetKeyResult(ctx, i.KeyResultID); err != nil {
		return err
	}
	return s.store.Plans.CreateInitiative(ctx, i)
}

func (s *planService) ListInitiatives(ctx context.Context, keyResultID int64) ([]*domain.Initiative, error) {
	return s.store.Plans.ListInitiatives(ctx, keyResultID)
}
