package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/pmo/internal/db"
	"github.com/alexanderramin/pmo/internal/domain"
	"github.com/alexanderramin/pmo/internal/importer"
	"github.com/alexanderramin/pmo/internal/repository"
)

type importService struct {
	uow      db.UnitOfWork
	clock    domain.Clock
	observer UseCaseObserver
}

func NewImportService(uow db.UnitOfWork, clock domain.Clock, observers ...UseCaseObserver) ImportService {
	if clock == nil {
		clock = domain.SystemClock
	}
	return &importService{uow: uow, clock: clock, observer: useCaseObserverOrNoop(observers)}
}

// Import writes a converted import file in one transaction. Refs are
// resolved to ids as rows are created, so the plan must list parents
// before children, which importer.Convert guarantees.
func (s *importService) Import(ctx context.Context, plan *importer.Plan) (out *ImportResult, err error) {
	defer track(ctx, s.observer, "import.apply", map[string]any{"units": len(plan.Units)})(&err)

	today := domain.DateOf(s.clock())
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		res, err := writeImport(ctx, repository.NewStore(tx), plan, today)
		if err != nil {
			return err
		}
		out = res
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("importing: %w", err)
	}
	return out, nil
}

func writeImport(ctx context.Context, st *repository.Store, plan *importer.Plan, today time.Time) (*ImportResult, error) {
	res := &ImportResult{}
	unitIDs := make(map[string]int64, len(plan.Units))

	for _, up := range plan.Units {
		u := up.Unit
		switch {
		case up.ParentRef != "":
			id := unitIDs[up.ParentRef]
			u.ParentID = &id
		case u.ParentID != nil:
			if _, err := st.BusinessUnits.GetByID(ctx, *u.ParentID); err != nil {
				return nil, fmt.Errorf("unit %q: %w", up.Ref, err)
			}
		}
		if err := st.BusinessUnits.Create(ctx, u); err != nil {
			return nil, fmt.Errorf("unit %q: %w", up.Ref, err)
		}
		unitIDs[up.Ref] = u.ID
		res.BusinessUnitIDs = append(res.BusinessUnitIDs, u.ID)

		posIDs := make(map[string]int64, len(up.Positions))
		for _, pp := range up.Positions {
			p := pp.Position
			p.BusinessUnitID = u.ID
			if pp.ParentRef != "" {
				id := posIDs[pp.ParentRef]
				p.ParentID = &id
			}
			if err := st.Positions.Create(ctx, p); err != nil {
				return nil, fmt.Errorf("position %q: %w", pp.Ref, err)
			}
			posIDs[pp.Ref] = p.ID
			res.Positions++
		}
		if up.ManagerRef != "" {
			id := posIDs[up.ManagerRef]
			u.ManagerID = &id
			if err := st.BusinessUnits.Update(ctx, u); err != nil {
				return nil, fmt.Errorf("unit %q: %w", up.Ref, err)
			}
		}

		for _, p := range up.Projects {
			p.BusinessUnitID = u.ID
			p.ApplyDefaults(today)
			if err := p.Validate(); err != nil {
				return nil, fmt.Errorf("project %q: %w", p.Name, err)
			}
			if err := st.Projects.Create(ctx, p); err != nil {
				return nil, fmt.Errorf("project %q: %w", p.Name, err)
			}
			res.Projects++
		}

		for _, bp := range up.Plans {
			bp.Plan.BusinessUnitID = u.ID
			if err := st.Plans.CreatePlan(ctx, bp.Plan); err != nil {
				return nil, fmt.Errorf("business plan %q: %w", bp.Plan.Name, err)
			}
			res.Plans++
			for _, o := range bp.Objectives {
				o.BusinessPlanID = bp.Plan.ID
				if err := st.Plans.CreateObjective(ctx, o); err != nil {
					return nil, fmt.Errorf("objective %q: %w", o.Name, err)
				}
				res.Objectives++
			}
		}
	}
	return res, nil
}
