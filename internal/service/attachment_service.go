package service

import (
	"context"
	"strings"

	"github.com/alexanderramin/pmo/internal/db"
	"github.com/alexanderramin/pmo/internal/domain"
	"github.com/alexanderramin/pmo/internal/repository"
)

// Issues, change requests and resource assignments belong to a project and
// may additionally point at a work package or task of that project.

type issueService struct {
	store    *repository.Store
	uow      db.UnitOfWork
	clock    domain.Clock
	observer UseCaseObserver
}

func NewIssueService(conn db.DBTX, uow db.UnitOfWork, clock domain.Clock, observers ...UseCaseObserver) IssueService {
	if clock == nil {
		clock = domain.SystemClock
	}
	return &issueService{store: repository.NewStore(conn), uow: uow, clock: clock, observer: useCaseObserverOrNoop(observers)}
}

func (s *issueService) Create(ctx context.Context, i *domain.Issue) (err error) {
	defer track(ctx, s.observer, "issue.create", map[string]any{"project_id": i.ProjectID})(&err)

	if i.Status == "" {
		i.Status = domain.IssueOpen
	}
	i.Severity = domain.CoalesceStr(strings.TrimSpace(i.Severity), domain.DefaultIssueSeverity)
	if i.OpenedOn.IsZero() {
		i.OpenedOn = domain.DateOf(s.clock())
	}
	if err := validateIssue(i); err != nil {
		return err
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		st := repository.NewStore(tx)
		if err := checkIssueRefs(ctx, st, i); err != nil {
			return err
		}
		return st.Issues.Create(ctx, i)
	})
}

func validateIssue(i *domain.Issue) error {
	if err := requireName(domain.KindIssue, i.Name); err != nil {
		return err
	}
	if !i.Status.Valid() {
		return domain.Invalidf("issue status %q is not recognised", i.Status)
	}
	if i.ClosedOn != nil && i.ClosedOn.Before(i.OpenedOn) {
		return domain.Invalidf("issue cannot close before it opened")
	}
	return nil
}

func checkIssueRefs(ctx context.Context, st *repository.Store, i *domain.Issue) error {
	if err := requireProject(ctx, st, i.ProjectID); err != nil {
		return err
	}
	if err := resolveAttachment(ctx, st, i.ProjectID, &i.WorkPackageID, &i.TaskID); err != nil {
		return err
	}
	return requirePosition(ctx, st, i.OwnerID)
}

func (s *issueService) GetByID(ctx context.Context, id int64) (*domain.Issue, error) {
	return s.store.Issues.GetByID(ctx, id)
}

func (s *issueService) ListByProject(ctx context.Context, projectID int64) ([]*domain.Issue, error) {
	return s.store.Issues.ListByProject(ctx, projectID)
}

func (s *issueService) Update(ctx context.Context, id int64, patch IssuePatch) (out *domain.Issue, err error) {
	defer track(ctx, s.observer, "issue.update", map[string]any{"id": id})(&err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		st := repository.NewStore(tx)
		i, err := st.Issues.GetByID(ctx, id)
		if err != nil {
			return err
		}
		oldWP := i.WorkPackageID
		patch.Name.applyTo(&i.Name)
		patch.WorkPackageID.applyTo(&i.WorkPackageID)
		patch.TaskID.applyTo(&i.TaskID)
		patch.OwnerID.applyTo(&i.OwnerID)
		patch.Status.applyTo(&i.Status)
		patch.Severity.applyTo(&i.Severity)
		patch.OpenedOn.applyTo(&i.OpenedOn)
		patch.ClosedOn.applyTo(&i.ClosedOn)
		patch.Description.applyTo(&i.Description)

		followTask(patch.WorkPackageID.Set, patch.TaskID.Set, oldWP, &i.WorkPackageID, &i.TaskID)
		i.Severity = domain.CoalesceStr(strings.TrimSpace(i.Severity), domain.DefaultIssueSeverity)
		if err := validateIssue(i); err != nil {
			return err
		}
		if err := checkIssueRefs(ctx, st, i); err != nil {
			return err
		}
		if err := st.Issues.Update(ctx, i); err != nil {
			return err
		}
		out = i
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// followTask reconciles a patched work package and task the way Create
// does. A task named without a work package brings its own work package.
// Moving to another work package without naming a task drops the old task,
// which belonged to the old package.
func followTask(wpSet, taskSet bool, oldWP *int64, wp, task **int64) {
	switch {
	case taskSet && !wpSet && *task != nil:
		*wp = nil
	case !taskSet && !domain.SameID(oldWP, *wp):
		*task = nil
	}
}

func (s *issueService) Delete(ctx context.Context, id int64) (err error) {
	defer track(ctx, s.observer, "issue.delete", map[string]any{"id": id})(&err)
	return s.store.Issues.Delete(ctx, id)
}

type changeRequestService struct {
	store    *repository.Store
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewChangeRequestService(conn db.DBTX, uow db.UnitOfWork, observers ...UseCaseObserver) ChangeRequestService {
	return &changeRequestService{store: repository.NewStore(conn), uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *changeRequestService) Create(ctx context.Context, c *domain.ChangeRequest) (err error) {
	defer track(ctx, s.observer, "change_request.create", map[string]any{"project_id": c.ProjectID})(&err)

	if c.Status == "" {
		c.Status = domain.ChangeDraft
	}
	if err := validateChangeRequest(c); err != nil {
		return err
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		st := repository.NewStore(tx)
		if err := checkChangeRequestRefs(ctx, st, c); err != nil {
			return err
		}
		return st.ChangeRequests.Create(ctx, c)
	})
}

func validateChangeRequest(c *domain.ChangeRequest) error {
	if err := requireName(domain.KindChangeRequest, c.Name); err != nil {
		return err
	}
	if !c.Status.Valid() {
		return domain.Invalidf("change request status %q is not recognised", c.Status)
	}
	if c.SubmittedOn != nil && c.ApprovedOn != nil && c.ApprovedOn.Before(*c.SubmittedOn) {
		return domain.Invalidf("change request cannot be approved before it was submitted")
	}
	return nil
}

func checkChangeRequestRefs(ctx context.Context, st *repository.Store, c *domain.ChangeRequest) error {
	if err := requireProject(ctx, st, c.ProjectID); err != nil {
		return err
	}
	if err := resolveAttachment(ctx, st, c.ProjectID, &c.WorkPackageID, nil); err != nil {
		return err
	}
	return requirePosition(ctx, st, c.RequestedByID)
}

func (s *changeRequestService) GetByID(ctx context.Context, id int64) (*domain.ChangeRequest, error) {
	return s.store.ChangeRequests.GetByID(ctx, id)
}

func (s *changeRequestService) ListByProject(ctx context.Context, projectID int64) ([]*domain.ChangeRequest, error) {
	return s.store.ChangeRequests.ListByProject(ctx, projectID)
}

func (s *changeRequestService) Update(ctx context.Context, id int64, patch ChangeRequestPatch) (out *domain.ChangeRequest, err error) {
	defer track(ctx, s.observer, "change_request.update", map[string]any{"id": id})(&err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		st := repository.NewStore(tx)
		c, err := st.ChangeRequests.GetByID(ctx, id)
		if err != nil {
			return err
		}
		patch.Name.applyTo(&c.Name)
		patch.WorkPackageID.applyTo(&c.WorkPackageID)
		patch.RequestedByID.applyTo(&c.RequestedByID)
		patch.Status.applyTo(&c.Status)
		patch.SubmittedOn.applyTo(&c.SubmittedOn)
		patch.ApprovedOn.applyTo(&c.ApprovedOn)
		patch.Description.applyTo(&c.Description)
		patch.ImpactSummary.applyTo(&c.ImpactSummary)

		if err := validateChangeRequest(c); err != nil {
			return err
		}
		if err := checkChangeRequestRefs(ctx, st, c); err != nil {
			return err
		}
		if err := st.ChangeRequests.Update(ctx, c); err != nil {
			return err
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *changeRequestService) Delete(ctx context.Context, id int64) (err error) {
	defer track(ctx, s.observer, "change_request.delete", map[string]any{"id": id})(&err)
	return s.store.ChangeRequests.Delete(ctx, id)
}

type resourceAssignmentService struct {
	store    *repository.Store
	uow      db.UnitOfWork
	clock    domain.Clock
	observer UseCaseObserver
}

func NewResourceAssignmentService(conn db.DBTX, uow db.UnitOfWork, clock domain.Clock, observers ...UseCaseObserver) ResourceAssignmentService {
	if clock == nil {
		clock = domain.SystemClock
	}
	return &resourceAssignmentService{store: repository.NewStore(conn), uow: uow, clock: clock, observer: useCaseObserverOrNoop(observers)}
}

func (s *resourceAssignmentService) Create(ctx context.Context, a *domain.ResourceAssignment) (err error) {
	defer track(ctx, s.observer, "resource_assignment.create", map[string]any{"project_id": a.ProjectID, "position_id": a.PositionID})(&err)

	if a.StartDate.IsZero() {
		a.StartDate = domain.DateOf(s.clock())
	}
	if err := validateAssignment(a); err != nil {
		return err
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		st := repository.NewStore(tx)
		if err := checkAssignmentRefs(ctx, st, a); err != nil {
			return err
		}
		return st.Assignments.Create(ctx, a)
	})
}

func validateAssignment(a *domain.ResourceAssignment) error {
	if err := requireName(domain.KindResourceAssignment, a.Name); err != nil {
		return err
	}
	if a.AllocationPercent < 0 || a.AllocationPercent > 100 {
		return domain.Invalidf("allocation must be between 0 and 100 percent, got %.1f", a.AllocationPercent)
	}
	return checkDateRange(&a.StartDate, a.EndDate)
}

func checkAssignmentRefs(ctx context.Context, st *repository.Store, a *domain.ResourceAssignment) error {
	if err := requireProject(ctx, st, a.ProjectID); err != nil {
		return err
	}
	if err := requirePosition(ctx, st, &a.PositionID); err != nil {
		return err
	}
	return resolveAttachment(ctx, st, a.ProjectID, &a.WorkPackageID, &a.TaskID)
}

func (s *resourceAssignmentService) GetByID(ctx context.Context, id int64) (*domain.ResourceAssignment, error) {
	return s.store.Assignments.GetByID(ctx, id)
}

func (s *resourceAssignmentService) ListByProject(ctx context.Context, projectID int64) ([]*domain.ResourceAssignment, error) {
	return s.store.Assignments.ListByProject(ctx, projectID)
}

func (s *resourceAssignmentService) Update(ctx context.Context, id int64, patch ResourceAssignmentPatch) (out *domain.ResourceAssignment, err error) {
	defer track(ctx, s.observer, "resource_assignment.update", map[string]any{"id": id})(&err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		st := repository.NewStore(tx)
		a, err := st.Assignments.GetByID(ctx, id)
		if err != nil {
			return err
		}
		oldWP := a.WorkPackageID
		patch.Name.applyTo(&a.Name)
		patch.PositionID.applyTo(&a.PositionID)
		patch.WorkPackageID.applyTo(&a.WorkPackageID)
		patch.TaskID.applyTo(&a.TaskID)
		patch.Role.applyTo(&a.Role)
		patch.AllocationPercent.applyTo(&a.AllocationPercent)
		patch.StartDate.applyTo(&a.StartDate)
		patch.EndDate.applyTo(&a.EndDate)

		followTask(patch.WorkPackageID.Set, patch.TaskID.Set, oldWP, &a.WorkPackageID, &a.TaskID)
		if err := validateAssignment(a); err != nil {
			return err
		}
		if err := checkAssignmentRefs(ctx, st, a); err != nil {
			return err
		}
		if err := st.Assignments.Update(ctx, a); err != nil {
			return err
		}
		out = a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *resourceAssignmentService) Delete(ctx context.Context, id int64) (err error) {
	defer track(ctx, s.observer, "resource_assignment.delete", map[string]any{"id": id})(&err)
	return s.store.Assignments.Delete(ctx, id)
}
