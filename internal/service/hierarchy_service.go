package service

import (
	"context"
	"fmt"

	"github.com/alexanderramin/pmo/internal/db"
	"github.com/alexanderramin/pmo/internal/domain"
	"github.com/alexanderramin/pmo/internal/repository"
)

type hierarchyService struct {
	store *repository.Store
}

func NewHierarchyService(conn db.DBTX) HierarchyService {
	return &hierarchyService{store: repository.NewStore(conn)}
}

// BusinessUnitPath returns the unit followed by its ancestors up to the
// root unit.
func (s *hierarchyService) BusinessUnitPath(ctx context.Context, id int64) ([]*domain.BusinessUnit, error) {
	seen := make(map[int64]*domain.BusinessUnit)
	parentOf := func(id int64) (*int64, error) {
		b, err := s.store.BusinessUnits.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		seen[id] = b
		return b.ParentID, nil
	}
	ids, err := domain.PathToRoot(id, parentOf)
	if err != nil {
		return nil, err
	}
	path := make([]*domain.BusinessUnit, len(ids))
	for i, id := range ids {
		path[i] = seen[id]
	}
	return path, nil
}

func (s *hierarchyService) PositionPath(ctx context.Context, id int64) ([]*domain.Position, error) {
	seen := make(map[int64]*domain.Position)
	parentOf := func(id int64) (*int64, error) {
		p, err := s.store.Positions.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		seen[id] = p
		return p.ParentID, nil
	}
	ids, err := domain.PathToRoot(id, parentOf)
	if err != nil {
		return nil, err
	}
	path := make([]*domain.Position, len(ids))
	for i, id := range ids {
		path[i] = seen[id]
	}
	return path, nil
}

func (s *hierarchyService) BusinessUnitChildren(ctx context.Context, id int64) ([]*domain.BusinessUnit, error) {
	if _, err := s.store.BusinessUnits.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.store.BusinessUnits.ListChildren(ctx, id)
}

func (s *hierarchyService) PositionChildren(ctx context.Context, id int64) ([]*domain.Position, error) {
	if _, err := s.store.Positions.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.store.Positions.ListChildren(ctx, id)
}

// maxOwnershipHops is the longest owner chain: task, work package, control
// account, project, unit, plus the satellite record it may start from.
const maxOwnershipHops = 6

// OwnershipChain follows owner references from ref up to the business
// unit, e.g. task, work package, control account, project, unit. Satellite
// records start from their effective parent.
func (s *hierarchyService) OwnershipChain(ctx context.Context, ref domain.Ref) ([]domain.Ref, error) {
	chain := []domain.Ref{ref}
	cur := ref
	for cur.Kind != domain.KindBusinessUnit {
		next, err := s.owner(ctx, cur)
		if err != nil {
			return nil, err
		}
		if len(chain) > maxOwnershipHops {
			return nil, fmt.Errorf("ownership chain of %s: %w", ref, domain.ErrCycle)
		}
		chain = append(chain, next)
		cur = next
	}
	if _, err := s.store.BusinessUnits.GetByID(ctx, cur.ID); err != nil {
		return nil, err
	}
	return chain, nil
}

func (s *hierarchyService) owner(ctx context.Context, ref domain.Ref) (domain.Ref, error) {
	unit := func(id int64) domain.Ref { return domain.Ref{Kind: domain.KindBusinessUnit, ID: id} }
	project := func(id int64) domain.Ref { return domain.Ref{Kind: domain.KindProject, ID: id} }

	switch ref.Kind {
	case domain.KindTask:
		t, err := s.store.WorkBreakdown.GetTask(ctx, ref.ID)
		if err != nil {
			return domain.Ref{}, err
		}
		return domain.Ref{Kind: domain.KindWorkPackage, ID: t.WorkPackageID}, nil
	case domain.KindWorkPackage:
		w, err := s.store.WorkBreakdown.GetWorkPackage(ctx, ref.ID)
		if err != nil {
			return domain.Ref{}, err
		}
		return domain.Ref{Kind: domain.KindControlAccount, ID: w.ControlAccountID}, nil
	case domain.KindControlAccount:
		c, err := s.store.WorkBreakdown.GetControlAccount(ctx, ref.ID)
		if err != nil {
			return domain.Ref{}, err
		}
		return project(c.ProjectID), nil
	case domain.KindProject:
		p, err := s.store.Projects.GetByID(ctx, ref.ID)
		if err != nil {
			return domain.Ref{}, err
		}
		return unit(p.BusinessUnitID), nil
	case domain.KindPosition:
		p, err := s.store.Positions.GetByID(ctx, ref.ID)
		if err != nil {
			return domain.Ref{}, err
		}
		return unit(p.BusinessUnitID), nil
	case domain.KindBusinessPlan:
		p, err := s.store.Plans.GetPlan(ctx, ref.ID)
		if err != nil {
			return domain.Ref{}, err
		}
		return unit(p.BusinessUnitID), nil
	case domain.KindObjective:
		o, err := s.store.Plans.GetObjective(ctx, ref.ID)
		if err != nil {
			return domain.Ref{}, err
		}
		return domain.Ref{Kind: domain.KindBusinessPlan, ID: o.BusinessPlanID}, nil
	case domain.KindKeyResult:
		k, err := s.store.Plans.GetKeyResult(ctx, ref.ID)
		if err != nil {
			return domain.Ref{}, err
		}
		return domain.Ref{Kind: domain.KindObjective, ID: k.ObjectiveID}, nil
	case domain.KindIssue:
		i, err := s.store.Issues.GetByID(ctx, ref.ID)
		if err != nil {
			return domain.Ref{}, err
		}
		return i.EffectiveParent(), nil
	case domain.KindChangeRequest:
		c, err := s.store.ChangeRequests.GetByID(ctx, ref.ID)
		if err != nil {
			return domain.Ref{}, err
		}
		return c.EffectiveParent(), nil
	case domain.KindResourceAssignment:
		a, err := s.store.Assignments.GetByID(ctx, ref.ID)
		if err != nil {
			return domain.Ref{}, err
		}
		return a.EffectiveParent(), nil
	}
	return domain.Ref{}, domain.Invalidf("ownership chain is not available for %s", ref.Kind.Label())
}
