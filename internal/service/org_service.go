package service

import (
	"context"

	"github.com/alexanderramin/pmo/internal/db"
	"github.com/alexanderramin/pmo/internal/domain"
	"github.com/alexanderramin/pmo/internal/repository"
)

type businessUnitService struct {
	store    *repository.Store
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewBusinessUnitService(conn db.DBTX, uow db.UnitOfWork, observers ...UseCaseObserver) BusinessUnitService {
	return &businessUnitService{
		store:    repository.NewStore(conn),
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *businessUnitService) Create(ctx context.Context, b *domain.BusinessUnit) (err error) {
	defer track(ctx, s.observer, "business_unit.create", map[string]any{"name": b.Name})(&err)

	if err := requireName(domain.KindBusinessUnit, b.Name); err != nil {
		return err
	}
	b.Type = domain.CoalesceStr(b.Type, domain.DefaultBusinessUnitType)

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		st := repository.NewStore(tx)
		if err := checkUnitParent(ctx, st, 0, b.ParentID); err != nil {
			return err
		}
		// A unit that does not exist yet owns no positions to be managed by.
		if err := checkManager(ctx, st, 0, b.ManagerID); err != nil {
			return err
		}
		return st.BusinessUnits.Create(ctx, b)
	})
}

func (s *businessUnitService) GetByID(ctx context.Context, id int64) (*domain.BusinessUnit, error) {
	return s.store.BusinessUnits.GetByID(ctx, id)
}

func (s *businessUnitService) List(ctx context.Context) ([]*domain.BusinessUnit, error) {
	return s.store.BusinessUnits.List(ctx)
}

func (s *businessUnitService) Update(ctx context.Context, id int64, patch BusinessUnitPatch) (b *domain.BusinessUnit, err error) {
	defer track(ctx, s.observer, "business_unit.update", map[string]any{"id": id})(&err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		st := repository.NewStore(tx)
		cur, err := st.BusinessUnits.GetByID(ctx, id)
		if err != nil {
			return err
		}
		patch.Name.applyTo(&cur.Name)
		patch.Type.applyTo(&cur.Type)
		patch.ParentID.applyTo(&cur.ParentID)
		patch.ManagerID.applyTo(&cur.ManagerID)

		if err := requireName(domain.KindBusinessUnit, cur.Name); err != nil {
			return err
		}
		cur.Type = domain.CoalesceStr(cur.Type, domain.DefaultBusinessUnitType)
		if patch.ParentID.Set {
			if err := checkUnitParent(ctx, st, id, cur.ParentID); err != nil {
				return err
			}
		}
		if patch.ManagerID.Set {
			if err := checkManager(ctx, st, id, cur.ManagerID); err != nil {
				return err
			}
		}
		if err := st.BusinessUnits.Update(ctx, cur); err != nil {
			return err
		}
		b = cur
		return nil
	})
	if err != nil {
		return nil, err
	}
	return b, nil
}

// Delete removes the unit and everything it owns. Child units and other
// units managed from its positions are detached, not deleted.
func (s *businessUnitService) Delete(ctx context.Context, id int64) (err error) {
	defer track(ctx, s.observer, "business_unit.delete", map[string]any{"id": id})(&err)
	return s.store.BusinessUnits.Delete(ctx, id)
}

type positionService struct {
	store    *repository.Store
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewPositionService(conn db.DBTX, uow db.UnitOfWork, observers ...UseCaseObserver) PositionService {
	return &positionService{
		store:    repository.NewStore(conn),
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *positionService) Create(ctx context.Context, p *domain.Position) (err error) {
	defer track(ctx, s.observer, "position.create", map[string]any{"business_unit_id": p.BusinessUnitID})(&err)

	if err := requireName(domain.KindPosition, p.Name); err != nil {
		return err
	}
	p.Type = domain.CoalesceStr(p.Type, domain.DefaultPositionType)

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		st := repository.NewStore(tx)
		if _, err := st.BusinessUnits.GetByID(ctx, p.BusinessUnitID); err != nil {
			return err
		}
		if err := checkPositionParent(ctx, st, p); err != nil {
			return err
		}
		return st.Positions.Create(ctx, p)
	})
}

func (s *positionService) GetByID(ctx context.Context, id int64) (*domain.Position, error) {
	return s.store.Positions.GetByID(ctx, id)
}

func (s *positionService) List(ctx context.Context, businessUnitID *int64) ([]*domain.Position, error) {
	if businessUnitID != nil {
		return s.store.Positions.ListByBusinessUnit(ctx, *businessUnitID)
	}
	return s.store.Positions.List(ctx)
}

func (s *positionService) Update(ctx context.Context, id int64, patch PositionPatch) (p *domain.Position, err error) {
	defer track(ctx, s.observer, "position.update", map[string]any{"id": id})(&err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		st := repository.NewStore(tx)
		cur, err := st.Positions.GetByID(ctx, id)
		if err != nil {
			return err
		}
		patch.Name.applyTo(&cur.Name)
		patch.Type.applyTo(&cur.Type)
		patch.ParentID.applyTo(&cur.ParentID)

		if err := requireName(domain.KindPosition, cur.Name); err != nil {
			return err
		}
		cur.Type = domain.CoalesceStr(cur.Type, domain.DefaultPositionType)
		if patch.ParentID.Set {
			if err := checkPositionParent(ctx, st, cur); err != nil {
				return err
			}
		}
		if err := st.Positions.Update(ctx, cur); err != nil {
			return err
		}
		p = cur
		return nil
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes the position. Subordinate positions become roots and a
// unit it managed is left without a manager.
func (s *positionService) Delete(ctx context.Context, id int64) (err error) {
	defer track(ctx, s.observer, "position.delete", map[string]any{"id": id})(&err)
	return s.store.Positions.Delete(ctx, id)
}
