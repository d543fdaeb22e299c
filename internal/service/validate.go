package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/pmo/internal/domain"
	"github.com/alexanderramin/pmo/internal/repository"
)

func requireName(kind domain.Kind, name string) error {
	if strings.TrimSpace(name) == "" {
		return domain.Invalidf("%s name is required", kind.Label())
	}
	return nil
}

func unitParentOf(ctx context.Context, st *repository.Store) domain.ParentFunc {
	return func(id int64) (*int64, error) {
		b, err := st.BusinessUnits.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return b.ParentID, nil
	}
}

func positionParentOf(ctx context.Context, st *repository.Store) domain.ParentFunc {
	return func(id int64) (*int64, error) {
		p, err := st.Positions.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return p.ParentID, nil
	}
}

// checkUnitParent verifies that parent exists and that hanging unit id
// (0 for a unit not yet stored) under it keeps the tree acyclic.
func checkUnitParent(ctx context.Context, st *repository.Store, id int64, parent *int64) error {
	if parent == nil {
		return nil
	}
	if _, err := st.BusinessUnits.GetByID(ctx, *parent); err != nil {
		return err
	}
	if id == 0 {
		return nil
	}
	cycle, err := domain.WouldCycle(id, parent, unitParentOf(ctx, st))
	if err != nil {
		return err
	}
	if cycle {
		return cycleError(domain.KindBusinessUnit, id, *parent)
	}
	return nil
}

// checkManager enforces that a unit is managed by one of its own positions.
func checkManager(ctx context.Context, st *repository.Store, unitID int64, manager *int64) error {
	if manager == nil {
		return nil
	}
	pos, err := st.Positions.GetByID(ctx, *manager)
	if err != nil {
		return err
	}
	if unitID == 0 || pos.BusinessUnitID != unitID {
		return domain.Invalidf("position %d does not belong to business unit %d and cannot manage it", pos.ID, unitID)
	}
	return nil
}

// checkPositionParent requires the parent to sit in the same unit and,
// for a stored position, not to be one of its descendants.
func checkPositionParent(ctx context.Context, st *repository.Store, p *domain.Position) error {
	if p.ParentID == nil {
		return nil
	}
	parent, err := st.Positions.GetByID(ctx, *p.ParentID)
	if err != nil {
		return err
	}
	if parent.BusinessUnitID != p.BusinessUnitID {
		return domain.Invalidf("parent position %d belongs to business unit %d, not %d",
			parent.ID, parent.BusinessUnitID, p.BusinessUnitID)
	}
	if p.ID == 0 {
		return nil
	}
	cycle, err := domain.WouldCycle(p.ID, p.ParentID, positionParentOf(ctx, st))
	if err != nil {
		return err
	}
	if cycle {
		return cycleError(domain.KindPosition, p.ID, *p.ParentID)
	}
	return nil
}

func cycleError(kind domain.Kind, id, parent int64) error {
	return fmt.Errorf("%s %d cannot be placed under %d: %w", kind.Label(), id, parent, domain.ErrCycle)
}

// projectOfWorkPackage follows work package to control account to project.
func projectOfWorkPackage(ctx context.Context, st *repository.Store, wpID int64) (int64, error) {
	wp, err := st.WorkBreakdown.GetWorkPackage(ctx, wpID)
	if err != nil {
		return 0, err
	}
	ca, err := st.WorkBreakdown.GetControlAccount(ctx, wp.ControlAccountID)
	if err != nil {
		return 0, err
	}
	return ca.ProjectID, nil
}

// resolveAttachment checks that the work package and task a satellite
// record is attached to belong to projectID. A task without a work package
// pulls in the task's own work package; a task under a different work
// package than the one given is rejected. task may be nil for records
// that only attach to work packages.
func resolveAttachment(ctx context.Context, st *repository.Store, projectID int64, wp **int64, task **int64) error {
	if task != nil && *task != nil {
		t, err := st.WorkBreakdown.GetTask(ctx, **task)
		if err != nil {
			return err
		}
		if *wp == nil {
			*wp = domain.Int64Ptr(t.WorkPackageID)
		} else if **wp != t.WorkPackageID {
			return domain.Invalidf("task %d belongs to work package %d, not %d", t.ID, t.WorkPackageID, **wp)
		}
	}
	if *wp == nil {
		return nil
	}
	owner, err := projectOfWorkPackage(ctx, st, **wp)
	if err != nil {
		return err
	}
	if owner != projectID {
		return domain.Invalidf("work package %d belongs to project %d, not %d", **wp, owner, projectID)
	}
	return nil
}

func requirePosition(ctx context.Context, st *repository.Store, id *int64) error {
	if id == nil {
		return nil
	}
	_, err := st.Positions.GetByID(ctx, *id)
	return err
}

func requireProject(ctx context.Context, st *repository.Store, id int64) error {
	_, err := st.Projects.GetByID(ctx, id)
	return err
}

// checkDateRange rejects an end date before the start date. Either may be
// open.
func checkDateRange(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return domain.Invalidf("end date %s is before start date %s", domain.FormatDate(*end), domain.FormatDate(*start))
	}
	return nil
}
